// Package api defines the request and response messages of the sanagustin.v1
// services. Messages travel as JSON; field names follow the snake_case wire
// names used by the web client.
//
// Request fields carry `validate` tags checked by the service layer.
package api
