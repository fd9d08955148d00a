package handlers

import (
	"strings"

	"electrumcrawler/domain"
	"electrumcrawler/helpers"
	"electrumcrawler/service"
)

// fromAddServerRequest converts AddServerRequest to domain.ServerReference.
// Returns service.BadParameterError on validation failure.
func fromAddServerRequest(req AddServerRequest) (domain.ServerReference, error) {
	host := strings.TrimSpace(req.Host)
	if host == "" {
		return domain.ServerReference{}, service.NewBadParameterError("host is required", nil)
	}

	transports := fromTransports(req.Transports)
	for _, port := range []*int{transports.TCPPort, transports.SSLPort, transports.WSPort, transports.WSSPort} {
		if port != nil && (*port < 1 || *port > 65535) {
			return domain.ServerReference{}, service.NewBadParameterError("port out of range", nil)
		}
	}
	if !transports.Probeable() {
		return domain.ServerReference{}, service.NewBadParameterError("ssl_port or tcp_port is required", nil)
	}

	var versionMax string
	if req.Version != nil {
		versionMax = strings.TrimSpace(helpers.Value(req.Version.Max))
	}

	return domain.ServerReference{
		Host:       host,
		VersionMax: versionMax,
		Transports: transports,
	}, nil
}

func fromTransports(t Transports) domain.Transports {
	return domain.Transports{
		TCPPort: t.TcpPort,
		SSLPort: t.SslPort,
		WSPort:  t.WsPort,
		WSSPort: t.WssPort,
	}
}

// fromListServersParams converts query parameters to a filter. Absent parameters match everything.
func fromListServersParams(params ListServersParams) domain.ServerFilter {
	return domain.ServerFilter{
		Version:   strings.TrimSpace(helpers.Value(params.Version)),
		Secure:    helpers.Value(params.Secure),
		Websocket: helpers.Value(params.Websocket),
	}
}
