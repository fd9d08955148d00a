package interfaces

import (
	"context"
	"iter"

	"electrumcrawler/domain"
)

// Prober turns a server reference into a record by asking the server for its features.
//
//go:generate moq -stub -out mock/prober.go -pkg mock . Prober
type Prober interface {
	// Probe connects once (ssl if advertised, else tcp) and returns the normalized record.
	// The record is not persisted.
	// Returns:
	// 1) (record, nil) on success; record.Network may be unknown;
	// 2) bad_parameter when ref has neither an ssl nor a tcp port;
	// 3) connect_error or protocol_error when the remote call fails.
	Probe(ctx context.Context, ref domain.ServerReference) (domain.ServerRecord, error)
}

// PeerDiscoverer lists the peers a known server advertises.
//
//go:generate moq -stub -out mock/peer_discoverer.go -pkg mock . PeerDiscoverer
type PeerDiscoverer interface {
	// DiscoverPeers fetches the peer list of record and returns a single-use sequence of references
	// in the order the server returned them. Onion hosts and malformed advertisements are dropped.
	// Returns connect_error or protocol_error when the remote call fails.
	DiscoverPeers(ctx context.Context, record domain.ServerRecord) (iter.Seq[domain.ServerReference], error)
}
