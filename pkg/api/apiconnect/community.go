package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/sanagustin/backend/pkg/api"
)

// CommunityServiceName is the fully-qualified name of the CommunityService service.
const CommunityServiceName = "sanagustin.v1.CommunityService"

const (
	CommunityServiceListCommonAreasProcedure  = "/sanagustin.v1.CommunityService/ListCommonAreas"
	CommunityServiceListVisitorSpotsProcedure = "/sanagustin.v1.CommunityService/ListVisitorSpots"
	CommunityServiceGetResidentPanelProcedure = "/sanagustin.v1.CommunityService/GetResidentPanel"
	CommunityServiceUpdateVehicleProcedure    = "/sanagustin.v1.CommunityService/UpdateVehicle"
	CommunityServiceMarkDebtPaidProcedure     = "/sanagustin.v1.CommunityService/MarkDebtPaid"
)

// CommunityServiceHandler is implemented by the community RPC server.
type CommunityServiceHandler interface {
	ListCommonAreas(context.Context, *connect.Request[api.ListCommonAreasRequest]) (*connect.Response[api.ListCommonAreasResponse], error)
	ListVisitorSpots(context.Context, *connect.Request[api.ListVisitorSpotsRequest]) (*connect.Response[api.ListVisitorSpotsResponse], error)
	GetResidentPanel(context.Context, *connect.Request[api.GetResidentPanelRequest]) (*connect.Response[api.GetResidentPanelResponse], error)
	UpdateVehicle(context.Context, *connect.Request[api.UpdateVehicleRequest]) (*connect.Response[api.UpdateVehicleResponse], error)
	MarkDebtPaid(context.Context, *connect.Request[api.MarkDebtPaidRequest]) (*connect.Response[api.MarkDebtPaidResponse], error)
}

// NewCommunityServiceHandler builds an HTTP handler from the service
// implementation. It returns the path on which to mount the handler and the
// handler itself.
func NewCommunityServiceHandler(svc CommunityServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	handlers := map[string]http.Handler{
		CommunityServiceListCommonAreasProcedure:  connect.NewUnaryHandler(CommunityServiceListCommonAreasProcedure, svc.ListCommonAreas, opts...),
		CommunityServiceListVisitorSpotsProcedure: connect.NewUnaryHandler(CommunityServiceListVisitorSpotsProcedure, svc.ListVisitorSpots, opts...),
		CommunityServiceGetResidentPanelProcedure: connect.NewUnaryHandler(CommunityServiceGetResidentPanelProcedure, svc.GetResidentPanel, opts...),
		CommunityServiceUpdateVehicleProcedure:    connect.NewUnaryHandler(CommunityServiceUpdateVehicleProcedure, svc.UpdateVehicle, opts...),
		CommunityServiceMarkDebtPaidProcedure:     connect.NewUnaryHandler(CommunityServiceMarkDebtPaidProcedure, svc.MarkDebtPaid, opts...),
	}
	return "/" + CommunityServiceName + "/", route(handlers)
}

// CommunityServiceClient is a client for the sanagustin.v1.CommunityService service.
type CommunityServiceClient struct {
	listCommonAreas  *connect.Client[api.ListCommonAreasRequest, api.ListCommonAreasResponse]
	listVisitorSpots *connect.Client[api.ListVisitorSpotsRequest, api.ListVisitorSpotsResponse]
	getResidentPanel *connect.Client[api.GetResidentPanelRequest, api.GetResidentPanelResponse]
	updateVehicle    *connect.Client[api.UpdateVehicleRequest, api.UpdateVehicleResponse]
	markDebtPaid     *connect.Client[api.MarkDebtPaidRequest, api.MarkDebtPaidResponse]
}

// NewCommunityServiceClient constructs a client for the sanagustin.v1.CommunityService service.
func NewCommunityServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *CommunityServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &CommunityServiceClient{
		listCommonAreas:  connect.NewClient[api.ListCommonAreasRequest, api.ListCommonAreasResponse](httpClient, baseURL+CommunityServiceListCommonAreasProcedure, opts...),
		listVisitorSpots: connect.NewClient[api.ListVisitorSpotsRequest, api.ListVisitorSpotsResponse](httpClient, baseURL+CommunityServiceListVisitorSpotsProcedure, opts...),
		getResidentPanel: connect.NewClient[api.GetResidentPanelRequest, api.GetResidentPanelResponse](httpClient, baseURL+CommunityServiceGetResidentPanelProcedure, opts...),
		updateVehicle:    connect.NewClient[api.UpdateVehicleRequest, api.UpdateVehicleResponse](httpClient, baseURL+CommunityServiceUpdateVehicleProcedure, opts...),
		markDebtPaid:     connect.NewClient[api.MarkDebtPaidRequest, api.MarkDebtPaidResponse](httpClient, baseURL+CommunityServiceMarkDebtPaidProcedure, opts...),
	}
}

func (c *CommunityServiceClient) ListCommonAreas(ctx context.Context, req *connect.Request[api.ListCommonAreasRequest]) (*connect.Response[api.ListCommonAreasResponse], error) {
	return c.listCommonAreas.CallUnary(ctx, req)
}

func (c *CommunityServiceClient) ListVisitorSpots(ctx context.Context, req *connect.Request[api.ListVisitorSpotsRequest]) (*connect.Response[api.ListVisitorSpotsResponse], error) {
	return c.listVisitorSpots.CallUnary(ctx, req)
}

func (c *CommunityServiceClient) GetResidentPanel(ctx context.Context, req *connect.Request[api.GetResidentPanelRequest]) (*connect.Response[api.GetResidentPanelResponse], error) {
	return c.getResidentPanel.CallUnary(ctx, req)
}

func (c *CommunityServiceClient) UpdateVehicle(ctx context.Context, req *connect.Request[api.UpdateVehicleRequest]) (*connect.Response[api.UpdateVehicleResponse], error) {
	return c.updateVehicle.CallUnary(ctx, req)
}

func (c *CommunityServiceClient) MarkDebtPaid(ctx context.Context, req *connect.Request[api.MarkDebtPaidRequest]) (*connect.Response[api.MarkDebtPaidResponse], error) {
	return c.markDebtPaid.CallUnary(ctx, req)
}
