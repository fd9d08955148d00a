package service

import (
	"context"
	"fmt"

	"electrumcrawler/domain"

	"github.com/Masterminds/semver/v3"
	"github.com/go-kit/log/level"
)

// ListServers returns stored records partitioned by network, narrowed by filter.
// Filters apply in order: version range, then one of wss (secure+websocket), ws|wss (websocket) or ssl (secure).
func (m *RegistryManager) ListServers(ctx context.Context, filter domain.ServerFilter) (domain.ServerList, error) {
	ctx, span := tracer.Start(ctx, "RegistryManager.ListServers")
	defer span.End()

	list := domain.ServerList{
		Mainnet: []domain.ServerRecord{},
		Testnet: []domain.ServerRecord{},
	}

	var want *semver.Version
	if filter.Version != "" {
		v, err := semver.NewVersion(filter.Version)
		if err != nil {
			level.Debug(m.logger).Log("msg", "ignoring listing for non-semver version", "version", filter.Version, "err", err)
			return list, nil
		}
		want = v
	}
	keep := transportFilter(filter)

	err := m.store.Scan(ctx, func(_ string, record domain.ServerRecord) error {
		if !record.Network.Known() {
			return nil
		}
		if want != nil && !versionInRange(record.Version, want) {
			return nil
		}
		if keep != nil && !keep(record.Transports) {
			return nil
		}

		switch record.Network {
		case domain.NetworkMainnet:
			list.Mainnet = append(list.Mainnet, record)
		case domain.NetworkTestnet:
			list.Testnet = append(list.Testnet, record)
		}
		return nil
	})
	if err != nil {
		return domain.ServerList{}, fmt.Errorf("listServers failed to scan the store, err: %w", err)
	}

	if filter == (domain.ServerFilter{}) {
		m.metrics.SetServers(list)
	}

	return list, nil
}

func versionInRange(r domain.VersionRange, want *semver.Version) bool {
	minVersion, err := semver.NewVersion(r.Min)
	if err != nil {
		return false
	}
	maxVersion, err := semver.NewVersion(r.Max)
	if err != nil {
		return false
	}
	return !want.LessThan(minVersion) && !want.GreaterThan(maxVersion)
}

func transportFilter(filter domain.ServerFilter) func(domain.Transports) bool {
	switch {
	case filter.Secure && filter.Websocket:
		return func(t domain.Transports) bool { return t.Has(domain.TransportWSS) }
	case filter.Websocket:
		return func(t domain.Transports) bool { return t.Has(domain.TransportWS) || t.Has(domain.TransportWSS) }
	case filter.Secure:
		return func(t domain.Transports) bool { return t.Has(domain.TransportSSL) }
	default:
		return nil
	}
}
