package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Types and routing for api/electrum-crawler.openapi.yaml.

// Transports defines model for Transports.
type Transports struct {
	TcpPort *int `json:"tcp_port,omitempty"`
	SslPort *int `json:"ssl_port,omitempty"`
	WsPort  *int `json:"ws_port,omitempty"`
	WssPort *int `json:"wss_port,omitempty"`
}

// Version defines model for Version.
type Version struct {
	Min *string `json:"min,omitempty"`
	Max *string `json:"max,omitempty"`
}

// AddServerRequest defines model for AddServerRequest.
type AddServerRequest struct {
	Host       string     `json:"host"`
	Version    *Version   `json:"version,omitempty"`
	Transports Transports `json:"transports"`
}

// ServerInfo defines model for ServerInfo.
type ServerInfo struct {
	Host       string     `json:"host"`
	Network    string     `json:"network"`
	Version    Version    `json:"version"`
	Transports Transports `json:"transports"`
	LastSeen   time.Time  `json:"last_seen"`
}

// ServersResponse defines model for ServersResponse.
type ServersResponse struct {
	Mainnet []ServerInfo `json:"mainnet"`
	Testnet []ServerInfo `json:"testnet"`
}

// StatusResponse defines model for StatusResponse.
type StatusResponse struct {
	Status string `json:"status"`
}

// ItemFailure defines model for ItemFailure.
type ItemFailure struct {
	Host    string `json:"host"`
	Network string `json:"network,omitempty"`
	Stage   string `json:"stage"`
	Error   string `json:"error"`
}

// CycleReport defines model for CycleReport.
type CycleReport struct {
	Id         uuid.UUID     `json:"id"`
	Task       string        `json:"task"`
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at"`
	Visited    int           `json:"visited"`
	Added      int           `json:"added"`
	Known      int           `json:"known"`
	Suppressed int           `json:"suppressed"`
	Refreshed  int           `json:"refreshed"`
	Stale      int           `json:"stale"`
	Evicted    int           `json:"evicted"`
	Failures   []ItemFailure `json:"failures"`
}

// SuccessResponse defines model for SuccessResponse.
type SuccessResponse struct {
	Status string       `json:"status"`
	Report *CycleReport `json:"report,omitempty"`
}

// StatusReportsResponse defines model for StatusReportsResponse.
type StatusReportsResponse struct {
	Reports []CycleReport `json:"reports"`
}

// ListServersParams defines parameters for ListServers.
type ListServersParams struct {
	Version   *string
	Secure    *bool
	Websocket *bool
}

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// (GET /)
	GetRoot(ctx echo.Context) error
	// (GET /seed)
	Seed(ctx echo.Context) error
	// (GET /servers)
	ListServers(ctx echo.Context, params ListServersParams) error
	// (POST /servers)
	AddServer(ctx echo.Context) error
	// (GET /status)
	GetStatus(ctx echo.Context) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

// ListServers binds the query parameters of GET /servers.
func (w *ServerInterfaceWrapper) ListServers(ctx echo.Context) error {
	var (
		params            ListServersParams
		version           string
		secure, websocket bool
	)
	err := echo.QueryParamsBinder(ctx).
		String("version", &version).
		Bool("secure", &secure).
		Bool("websocket", &websocket).
		BindError()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid format for query parameters").SetInternal(err)
	}

	query := ctx.QueryParams()
	if query.Has("version") {
		params.Version = &version
	}
	if query.Has("secure") {
		params.Secure = &secure
	}
	if query.Has("websocket") {
		params.Websocket = &websocket
	}
	return w.Handler.ListServers(ctx, params)
}

// EchoRouter is satisfied by *echo.Echo and *echo.Group.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	wrapper := ServerInterfaceWrapper{Handler: si}

	router.GET("/", si.GetRoot)
	router.GET("/seed", si.Seed)
	router.GET("/servers", wrapper.ListServers)
	router.POST("/servers", si.AddServer)
	router.GET("/status", si.GetStatus)
}
