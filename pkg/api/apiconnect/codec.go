// Package apiconnect wires the sanagustin.v1 services onto Connect.
//
// Messages are plain structs from package api, so handlers and clients use a
// JSON codec instead of the protobuf ones Connect installs by default.
package apiconnect

import (
	"encoding/json"

	"connectrpc.com/connect"
)

// CodecName is the codec (and Content-Type suffix) every service speaks.
const CodecName = "json"

type jsonCodec struct{}

func (jsonCodec) Name() string { return CodecName }

func (jsonCodec) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{connect.WithCodec(jsonCodec{})}, opts...)
}

func clientOptions(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{connect.WithCodec(jsonCodec{})}, opts...)
}
