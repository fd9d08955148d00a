package handlers

import (
	"electrumcrawler/domain"
)

// toServersResponse converts a listing to the API response. Both lists are always present.
func toServersResponse(list domain.ServerList) ServersResponse {
	return ServersResponse{
		Mainnet: toServerInfos(list.Mainnet),
		Testnet: toServerInfos(list.Testnet),
	}
}

func toServerInfos(records []domain.ServerRecord) []ServerInfo {
	out := make([]ServerInfo, 0, len(records))
	for _, r := range records {
		out = append(out, ServerInfo{
			Host:       r.Host,
			Network:    string(r.Network),
			Version:    toVersion(r.Version),
			Transports: toTransports(r.Transports),
			LastSeen:   r.LastSeen,
		})
	}
	return out
}

func toVersion(v domain.VersionRange) Version {
	var out Version
	if v.Min != "" {
		out.Min = &v.Min
	}
	if v.Max != "" {
		out.Max = &v.Max
	}
	return out
}

func toTransports(t domain.Transports) Transports {
	return Transports{
		TcpPort: t.TCPPort,
		SslPort: t.SSLPort,
		WsPort:  t.WSPort,
		WssPort: t.WSSPort,
	}
}

func toCycleReport(r domain.CycleReport) CycleReport {
	failures := make([]ItemFailure, 0, len(r.Failures))
	for _, f := range r.Failures {
		failures = append(failures, ItemFailure{
			Host:    f.Host,
			Network: string(f.Network),
			Stage:   string(f.Stage),
			Error:   f.Message,
		})
	}
	return CycleReport{
		Id:         r.ID,
		Task:       string(r.Task),
		StartedAt:  r.StartedAt,
		FinishedAt: r.FinishedAt,
		Visited:    r.Visited,
		Added:      r.Added,
		Known:      r.Known,
		Suppressed: r.Suppressed,
		Refreshed:  r.Refreshed,
		Stale:      r.Stale,
		Evicted:    r.Evicted,
		Failures:   failures,
	}
}

func toStatusReportsResponse(reports []domain.CycleReport) StatusReportsResponse {
	out := make([]CycleReport, 0, len(reports))
	for _, r := range reports {
		out = append(out, toCycleReport(r))
	}
	return StatusReportsResponse{Reports: out}
}
