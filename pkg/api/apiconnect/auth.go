package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/sanagustin/backend/pkg/api"
)

// AuthServiceName is the fully-qualified name of the AuthService service.
const AuthServiceName = "sanagustin.v1.AuthService"

const (
	AuthServiceGetCurrentUserProcedure           = "/sanagustin.v1.AuthService/GetCurrentUser"
	AuthServiceRegisterProcedure                 = "/sanagustin.v1.AuthService/Register"
	AuthServiceListPendingRegistrationsProcedure = "/sanagustin.v1.AuthService/ListPendingRegistrations"
	AuthServiceApproveRegistrationProcedure      = "/sanagustin.v1.AuthService/ApproveRegistration"
)

// AuthServiceHandler is implemented by the auth RPC server.
type AuthServiceHandler interface {
	GetCurrentUser(context.Context, *connect.Request[api.GetCurrentUserRequest]) (*connect.Response[api.GetCurrentUserResponse], error)
	Register(context.Context, *connect.Request[api.RegisterRequest]) (*connect.Response[api.RegisterResponse], error)
	ListPendingRegistrations(context.Context, *connect.Request[api.ListPendingRegistrationsRequest]) (*connect.Response[api.ListPendingRegistrationsResponse], error)
	ApproveRegistration(context.Context, *connect.Request[api.ApproveRegistrationRequest]) (*connect.Response[api.ApproveRegistrationResponse], error)
}

// NewAuthServiceHandler builds an HTTP handler from the service implementation.
func NewAuthServiceHandler(svc AuthServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	handlers := map[string]http.Handler{
		AuthServiceGetCurrentUserProcedure:           connect.NewUnaryHandler(AuthServiceGetCurrentUserProcedure, svc.GetCurrentUser, opts...),
		AuthServiceRegisterProcedure:                 connect.NewUnaryHandler(AuthServiceRegisterProcedure, svc.Register, opts...),
		AuthServiceListPendingRegistrationsProcedure: connect.NewUnaryHandler(AuthServiceListPendingRegistrationsProcedure, svc.ListPendingRegistrations, opts...),
		AuthServiceApproveRegistrationProcedure:      connect.NewUnaryHandler(AuthServiceApproveRegistrationProcedure, svc.ApproveRegistration, opts...),
	}
	return "/" + AuthServiceName + "/", route(handlers)
}

// UnimplementedAuthServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedAuthServiceHandler struct{}

func (UnimplementedAuthServiceHandler) GetCurrentUser(context.Context, *connect.Request[api.GetCurrentUserRequest]) (*connect.Response[api.GetCurrentUserResponse], error) {
	return nil, unimplemented(AuthServiceGetCurrentUserProcedure)
}

func (UnimplementedAuthServiceHandler) Register(context.Context, *connect.Request[api.RegisterRequest]) (*connect.Response[api.RegisterResponse], error) {
	return nil, unimplemented(AuthServiceRegisterProcedure)
}

func (UnimplementedAuthServiceHandler) ListPendingRegistrations(context.Context, *connect.Request[api.ListPendingRegistrationsRequest]) (*connect.Response[api.ListPendingRegistrationsResponse], error) {
	return nil, unimplemented(AuthServiceListPendingRegistrationsProcedure)
}

func (UnimplementedAuthServiceHandler) ApproveRegistration(context.Context, *connect.Request[api.ApproveRegistrationRequest]) (*connect.Response[api.ApproveRegistrationResponse], error) {
	return nil, unimplemented(AuthServiceApproveRegistrationProcedure)
}

// AuthServiceClient is a client for the sanagustin.v1.AuthService service.
type AuthServiceClient struct {
	getCurrentUser           *connect.Client[api.GetCurrentUserRequest, api.GetCurrentUserResponse]
	register                 *connect.Client[api.RegisterRequest, api.RegisterResponse]
	listPendingRegistrations *connect.Client[api.ListPendingRegistrationsRequest, api.ListPendingRegistrationsResponse]
	approveRegistration      *connect.Client[api.ApproveRegistrationRequest, api.ApproveRegistrationResponse]
}

// NewAuthServiceClient constructs a client for the sanagustin.v1.AuthService service.
func NewAuthServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *AuthServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &AuthServiceClient{
		getCurrentUser:           connect.NewClient[api.GetCurrentUserRequest, api.GetCurrentUserResponse](httpClient, baseURL+AuthServiceGetCurrentUserProcedure, opts...),
		register:                 connect.NewClient[api.RegisterRequest, api.RegisterResponse](httpClient, baseURL+AuthServiceRegisterProcedure, opts...),
		listPendingRegistrations: connect.NewClient[api.ListPendingRegistrationsRequest, api.ListPendingRegistrationsResponse](httpClient, baseURL+AuthServiceListPendingRegistrationsProcedure, opts...),
		approveRegistration:      connect.NewClient[api.ApproveRegistrationRequest, api.ApproveRegistrationResponse](httpClient, baseURL+AuthServiceApproveRegistrationProcedure, opts...),
	}
}

func (c *AuthServiceClient) GetCurrentUser(ctx context.Context, req *connect.Request[api.GetCurrentUserRequest]) (*connect.Response[api.GetCurrentUserResponse], error) {
	return c.getCurrentUser.CallUnary(ctx, req)
}

func (c *AuthServiceClient) Register(ctx context.Context, req *connect.Request[api.RegisterRequest]) (*connect.Response[api.RegisterResponse], error) {
	return c.register.CallUnary(ctx, req)
}

func (c *AuthServiceClient) ListPendingRegistrations(ctx context.Context, req *connect.Request[api.ListPendingRegistrationsRequest]) (*connect.Response[api.ListPendingRegistrationsResponse], error) {
	return c.listPendingRegistrations.CallUnary(ctx, req)
}

func (c *AuthServiceClient) ApproveRegistration(ctx context.Context, req *connect.Request[api.ApproveRegistrationRequest]) (*connect.Response[api.ApproveRegistrationResponse], error) {
	return c.approveRegistration.CallUnary(ctx, req)
}
