package interfaces

import (
	"context"

	"electrumcrawler/domain"
)

// Registry is the facade the HTTP handlers call into.
//
//go:generate moq -stub -out mock/registry.go -pkg mock . Registry
type Registry interface {
	// AddServer probes ref, upserts the record and fans out one hop from it.
	// Returns:
	// 1) (report, nil) when the server itself was probed and stored; peer failures are in the report;
	// 2) (report, connect_error|protocol_error) when the probe fails or the server serves an unknown chain;
	// 3) (report, bad_parameter) when ref has no host or neither an ssl nor a tcp port;
	// 4) (report, internal_server_error) when the store write fails.
	AddServer(ctx context.Context, ref domain.ServerReference) (domain.CycleReport, error)

	// Seed runs AddServer for each ref in order. One failing seed does not stop the rest.
	Seed(ctx context.Context, refs []domain.ServerReference) domain.CycleReport

	// ListServers scans the store and returns the records matching filter, partitioned by network.
	// A version that cannot be coerced to semver yields empty lists, not an error.
	ListServers(ctx context.Context, filter domain.ServerFilter) (domain.ServerList, error)
}

// Cycler runs the scheduled registry workflows.
//
//go:generate moq -stub -out mock/cycler.go -pkg mock . Cycler
type Cycler interface {
	// Crawl fans out one hop from every stored record.
	Crawl(ctx context.Context) domain.CycleReport

	// Refresh re-probes every stored record and evicts those unreachable past the staleness threshold.
	Refresh(ctx context.Context) domain.CycleReport
}

// StatusProvider exposes the last finished report of each scheduled task.
//
//go:generate moq -stub -out mock/status_provider.go -pkg mock . StatusProvider
type StatusProvider interface {
	LastReports() []domain.CycleReport
}
