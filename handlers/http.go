// Package handlers contains the http handlers of the crawler.
package handlers

import (
	"context"
	"fmt"
	"net/http"

	"electrumcrawler/domain"
	"electrumcrawler/helpers"
	"electrumcrawler/interfaces"
	"electrumcrawler/service"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/labstack/echo/v4"
)

const (
	statusOnline  = "online"
	statusSuccess = "success"
)

// HTTPServer implements ServerInterface.
type HTTPServer struct {
	registry interfaces.Registry
	status   interfaces.StatusProvider
	seeds    []domain.ServerReference
	logger   log.Logger
}

// NewHTTPServer creates a new HTTPServer. seeds are added on GET /seed.
func NewHTTPServer(registry interfaces.Registry, status interfaces.StatusProvider, seeds []domain.ServerReference, logger log.Logger) *HTTPServer {
	logger = log.WithPrefix(logger, "component", "HTTPServer")
	return &HTTPServer{
		registry: helpers.NilPanic(registry, "handlers.http.go: registry is required"),
		status:   helpers.NilPanic(status, "handlers.http.go: status is required"),
		seeds:    seeds,
		logger:   logger,
	}
}

// GetRoot (GET /) reports liveness.
func (h *HTTPServer) GetRoot(ectx echo.Context) error {
	return ectx.JSON(http.StatusOK, StatusResponse{Status: statusOnline})
}

// Seed (GET /seed) adds the configured seeds. Failing seeds are listed in the report, not returned as an error.
func (h *HTTPServer) Seed(ectx echo.Context) error {
	// a dropped client must not abort a seed midway
	report := h.registry.Seed(context.WithoutCancel(ectx.Request().Context()), h.seeds)
	level.Info(h.logger).Log("msg", "seeded", "seeds", len(h.seeds), "added", report.Added, "failures", len(report.Failures))

	return ectx.JSON(http.StatusOK, SuccessResponse{Status: statusSuccess, Report: helpers.Ptr(toCycleReport(report))})
}

// ListServers (GET /servers) returns the known servers by network.
func (h *HTTPServer) ListServers(ectx echo.Context, params ListServersParams) error {
	list, err := h.registry.ListServers(ectx.Request().Context(), fromListServersParams(params))
	if err != nil {
		return fmt.Errorf("listServers failed to list servers, err: %w", err)
	}

	return ectx.JSON(http.StatusOK, toServersResponse(list))
}

// AddServer (POST /servers) probes the server and stores it. Returns 400 on a bad body, 502 when the server can't be probed.
func (h *HTTPServer) AddServer(ectx echo.Context) error {
	var req AddServerRequest
	if err := ectx.Bind(&req); err != nil {
		return service.NewBadParameterError("invalid request body", err)
	}

	ref, err := fromAddServerRequest(req)
	if err != nil {
		return fmt.Errorf("addServer failed to convert request to reference, err: %w", err)
	}

	report, err := h.registry.AddServer(context.WithoutCancel(ectx.Request().Context()), ref)
	if err != nil {
		return fmt.Errorf("addServer failed to add %s, err: %w", ref.Host, err)
	}

	return ectx.JSON(http.StatusOK, SuccessResponse{Status: statusSuccess, Report: helpers.Ptr(toCycleReport(report))})
}

// GetStatus (GET /status) returns the last finished crawl and refresh.
func (h *HTTPServer) GetStatus(ectx echo.Context) error {
	return ectx.JSON(http.StatusOK, toStatusReportsResponse(h.status.LastReports()))
}
