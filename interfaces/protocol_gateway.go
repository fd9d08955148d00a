package interfaces

import (
	"context"

	"electrumcrawler/domain"
)

// ProtocolGateway performs one request against one remote server: connect, handshake, request, response, close.
//
//go:generate moq -stub -out mock/protocol_gateway.go -pkg mock . ProtocolGateway
type ProtocolGateway interface {
	// FetchFeatures calls server.features on target.
	// Returns:
	// 1) (features, nil) on success;
	// 2) connect_error when the connection or handshake cannot be completed in time;
	// 3) protocol_error when the response is an RPC error or cannot be decoded.
	FetchFeatures(ctx context.Context, target domain.Target) (domain.Features, error)

	// FetchPeers calls server.peers.subscribe on target and returns the raw peer tuples in server order.
	// Errors as for FetchFeatures.
	FetchPeers(ctx context.Context, target domain.Target) ([]domain.PeerEntry, error)
}
