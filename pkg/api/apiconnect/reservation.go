package apiconnect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/sanagustin/backend/pkg/api"
)

// ReservationServiceName is the fully-qualified name of the ReservationService service.
const ReservationServiceName = "sanagustin.v1.ReservationService"

const (
	ReservationServiceCreateAmenityReservationProcedure = "/sanagustin.v1.ReservationService/CreateAmenityReservation"
	ReservationServiceCreateVisitorReservationProcedure = "/sanagustin.v1.ReservationService/CreateVisitorReservation"
	ReservationServiceAssignVisitorParkingProcedure     = "/sanagustin.v1.ReservationService/AssignVisitorParking"
	ReservationServiceCheckAvailabilityProcedure        = "/sanagustin.v1.ReservationService/CheckAvailability"
	ReservationServiceListMyReservationsProcedure       = "/sanagustin.v1.ReservationService/ListMyReservations"
)

// ReservationServiceHandler is implemented by the reservation RPC server.
type ReservationServiceHandler interface {
	CreateAmenityReservation(context.Context, *connect.Request[api.CreateAmenityReservationRequest]) (*connect.Response[api.CreateAmenityReservationResponse], error)
	CreateVisitorReservation(context.Context, *connect.Request[api.CreateVisitorReservationRequest]) (*connect.Response[api.CreateVisitorReservationResponse], error)
	AssignVisitorParking(context.Context, *connect.Request[api.AssignVisitorParkingRequest]) (*connect.Response[api.AssignVisitorParkingResponse], error)
	CheckAvailability(context.Context, *connect.Request[api.CheckAvailabilityRequest]) (*connect.Response[api.CheckAvailabilityResponse], error)
	ListMyReservations(context.Context, *connect.Request[api.ListMyReservationsRequest]) (*connect.Response[api.ListMyReservationsResponse], error)
}

// NewReservationServiceHandler builds an HTTP handler from the service
// implementation. It returns the path on which to mount the handler and the
// handler itself.
func NewReservationServiceHandler(svc ReservationServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	handlers := map[string]http.Handler{
		ReservationServiceCreateAmenityReservationProcedure: connect.NewUnaryHandler(ReservationServiceCreateAmenityReservationProcedure, svc.CreateAmenityReservation, opts...),
		ReservationServiceCreateVisitorReservationProcedure: connect.NewUnaryHandler(ReservationServiceCreateVisitorReservationProcedure, svc.CreateVisitorReservation, opts...),
		ReservationServiceAssignVisitorParkingProcedure:     connect.NewUnaryHandler(ReservationServiceAssignVisitorParkingProcedure, svc.AssignVisitorParking, opts...),
		ReservationServiceCheckAvailabilityProcedure:        connect.NewUnaryHandler(ReservationServiceCheckAvailabilityProcedure, svc.CheckAvailability, opts...),
		ReservationServiceListMyReservationsProcedure:       connect.NewUnaryHandler(ReservationServiceListMyReservationsProcedure, svc.ListMyReservations, opts...),
	}
	return "/" + ReservationServiceName + "/", route(handlers)
}

// ReservationServiceClient is a client for the sanagustin.v1.ReservationService service.
type ReservationServiceClient struct {
	createAmenityReservation *connect.Client[api.CreateAmenityReservationRequest, api.CreateAmenityReservationResponse]
	createVisitorReservation *connect.Client[api.CreateVisitorReservationRequest, api.CreateVisitorReservationResponse]
	assignVisitorParking     *connect.Client[api.AssignVisitorParkingRequest, api.AssignVisitorParkingResponse]
	checkAvailability        *connect.Client[api.CheckAvailabilityRequest, api.CheckAvailabilityResponse]
	listMyReservations       *connect.Client[api.ListMyReservationsRequest, api.ListMyReservationsResponse]
}

// NewReservationServiceClient constructs a client for the
// sanagustin.v1.ReservationService service. baseURL is the server root
// (e.g. http://localhost:8080).
func NewReservationServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *ReservationServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &ReservationServiceClient{
		createAmenityReservation: connect.NewClient[api.CreateAmenityReservationRequest, api.CreateAmenityReservationResponse](httpClient, baseURL+ReservationServiceCreateAmenityReservationProcedure, opts...),
		createVisitorReservation: connect.NewClient[api.CreateVisitorReservationRequest, api.CreateVisitorReservationResponse](httpClient, baseURL+ReservationServiceCreateVisitorReservationProcedure, opts...),
		assignVisitorParking:     connect.NewClient[api.AssignVisitorParkingRequest, api.AssignVisitorParkingResponse](httpClient, baseURL+ReservationServiceAssignVisitorParkingProcedure, opts...),
		checkAvailability:        connect.NewClient[api.CheckAvailabilityRequest, api.CheckAvailabilityResponse](httpClient, baseURL+ReservationServiceCheckAvailabilityProcedure, opts...),
		listMyReservations:       connect.NewClient[api.ListMyReservationsRequest, api.ListMyReservationsResponse](httpClient, baseURL+ReservationServiceListMyReservationsProcedure, opts...),
	}
}

func (c *ReservationServiceClient) CreateAmenityReservation(ctx context.Context, req *connect.Request[api.CreateAmenityReservationRequest]) (*connect.Response[api.CreateAmenityReservationResponse], error) {
	return c.createAmenityReservation.CallUnary(ctx, req)
}

func (c *ReservationServiceClient) CreateVisitorReservation(ctx context.Context, req *connect.Request[api.CreateVisitorReservationRequest]) (*connect.Response[api.CreateVisitorReservationResponse], error) {
	return c.createVisitorReservation.CallUnary(ctx, req)
}

func (c *ReservationServiceClient) AssignVisitorParking(ctx context.Context, req *connect.Request[api.AssignVisitorParkingRequest]) (*connect.Response[api.AssignVisitorParkingResponse], error) {
	return c.assignVisitorParking.CallUnary(ctx, req)
}

func (c *ReservationServiceClient) CheckAvailability(ctx context.Context, req *connect.Request[api.CheckAvailabilityRequest]) (*connect.Response[api.CheckAvailabilityResponse], error) {
	return c.checkAvailability.CallUnary(ctx, req)
}

func (c *ReservationServiceClient) ListMyReservations(ctx context.Context, req *connect.Request[api.ListMyReservationsRequest]) (*connect.Response[api.ListMyReservationsResponse], error) {
	return c.listMyReservations.CallUnary(ctx, req)
}

// UnimplementedReservationServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedReservationServiceHandler struct{}

func (UnimplementedReservationServiceHandler) CreateAmenityReservation(context.Context, *connect.Request[api.CreateAmenityReservationRequest]) (*connect.Response[api.CreateAmenityReservationResponse], error) {
	return nil, unimplemented(ReservationServiceCreateAmenityReservationProcedure)
}

func (UnimplementedReservationServiceHandler) CreateVisitorReservation(context.Context, *connect.Request[api.CreateVisitorReservationRequest]) (*connect.Response[api.CreateVisitorReservationResponse], error) {
	return nil, unimplemented(ReservationServiceCreateVisitorReservationProcedure)
}

func (UnimplementedReservationServiceHandler) AssignVisitorParking(context.Context, *connect.Request[api.AssignVisitorParkingRequest]) (*connect.Response[api.AssignVisitorParkingResponse], error) {
	return nil, unimplemented(ReservationServiceAssignVisitorParkingProcedure)
}

func (UnimplementedReservationServiceHandler) CheckAvailability(context.Context, *connect.Request[api.CheckAvailabilityRequest]) (*connect.Response[api.CheckAvailabilityResponse], error) {
	return nil, unimplemented(ReservationServiceCheckAvailabilityProcedure)
}

func (UnimplementedReservationServiceHandler) ListMyReservations(context.Context, *connect.Request[api.ListMyReservationsRequest]) (*connect.Response[api.ListMyReservationsResponse], error) {
	return nil, unimplemented(ReservationServiceListMyReservationsProcedure)
}

// route dispatches on the exact procedure path.
func route(handlers map[string]http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h, ok := handlers[r.URL.Path]; ok {
			h.ServeHTTP(w, r)
			return
		}
		http.NotFound(w, r)
	})
}

func unimplemented(procedure string) error {
	return connect.NewError(connect.CodeUnimplemented, errors.New(procedure+" is not implemented"))
}
