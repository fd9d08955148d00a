// Package electrum implements the Electrum protocol gateway: one short-lived
// JSON-RPC session per call over tcp, ssl, ws or wss.
package electrum

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"electrumcrawler/domain"
	"electrumcrawler/helpers"
	"electrumcrawler/service"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

const (
	methodVersion  = "server.version"
	methodFeatures = "server.features"
	methodPeers    = "server.peers.subscribe"
)

type request struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      uint64        `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e rpcError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

type response struct {
	ID     *uint64         `json:"id"`
	Method string          `json:"method,omitempty"`
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

// Gateway talks to remote servers. It holds no connections between calls.
type Gateway struct {
	clientName string
	dialer     *dialer
	logger     log.Logger
}

// NewGateway creates a Gateway that identifies itself as clientName in the version handshake.
func NewGateway(clientName string, dialTimeout time.Duration, logger log.Logger) *Gateway {
	if dialTimeout <= 0 {
		panic("electrum.gateway.go: dialTimeout must be positive")
	}
	return &Gateway{
		clientName: helpers.StrPanic(clientName, "electrum.gateway.go: clientName is required"),
		dialer:     newDialer(dialTimeout),
		logger:     log.With(logger, "component", "ElectrumGateway"),
	}
}

func (g *Gateway) FetchFeatures(ctx context.Context, target domain.Target) (domain.Features, error) {
	raw, err := g.call(ctx, target, methodFeatures)
	if err != nil {
		return domain.Features{}, err
	}

	var features domain.Features
	if err := json.Unmarshal(raw, &features); err != nil {
		return domain.Features{}, service.NewProtocolError("Malformed server.features response", fmt.Errorf("can't decode features of %s, err: %w", target.Addr(), err))
	}
	if features.GenesisHash == "" {
		return domain.Features{}, service.NewProtocolError("server.features response has no genesis_hash", nil)
	}

	return features, nil
}

func (g *Gateway) FetchPeers(ctx context.Context, target domain.Target) ([]domain.PeerEntry, error) {
	raw, err := g.call(ctx, target, methodPeers)
	if err != nil {
		return nil, err
	}

	peers, err := decodePeers(raw)
	if err != nil {
		return nil, service.NewProtocolError("Malformed server.peers.subscribe response", fmt.Errorf("can't decode peers of %s, err: %w", target.Addr(), err))
	}

	return peers, nil
}

// call runs one session: dial, version handshake, method, close.
func (g *Gateway) call(ctx context.Context, target domain.Target, method string) (json.RawMessage, error) {
	conn, err := g.dialer.dial(ctx, target)
	if err != nil {
		return nil, service.NewConnectError(fmt.Sprintf("Can't connect to %s over %s", target.Addr(), target.Transport), err)
	}
	defer func() {
		if err := conn.Close(); err != nil {
			level.Debug(g.logger).Log("msg", "close failed", "addr", target.Addr(), "err", err)
		}
	}()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}
	// Unblock pending reads when ctx ends without a deadline.
	stop := context.AfterFunc(ctx, func() { _ = conn.SetDeadline(time.Now()) })
	defer stop()

	session := &session{conn: conn}

	version := target.ProtocolVersion
	if version == "" {
		version = service.DefaultProtocolVersion
	}
	if _, err := session.roundTrip(ctx, methodVersion, g.clientName, version); err != nil {
		return nil, err
	}

	return session.roundTrip(ctx, method)
}

type session struct {
	conn   rpcConn
	nextID uint64
}

func (s *session) roundTrip(ctx context.Context, method string, params ...interface{}) (json.RawMessage, error) {
	s.nextID++
	id := s.nextID

	if params == nil {
		params = []interface{}{}
	}
	msg, err := json.Marshal(request{JSONRPC: "2.0", ID: id, Method: method, Params: params})
	if err != nil {
		return nil, service.NewInternalServerError("Can't encode request", err)
	}
	if err := s.conn.WriteMessage(msg); err != nil {
		return nil, transportError(ctx, method, err)
	}

	for {
		msg, err := s.conn.ReadMessage()
		if err != nil {
			return nil, transportError(ctx, method, err)
		}

		var resp response
		if err := json.Unmarshal(msg, &resp); err != nil {
			return nil, service.NewProtocolError(fmt.Sprintf("Malformed %s response", method), err)
		}
		if resp.ID == nil {
			// notification
			continue
		}
		if *resp.ID != id {
			continue
		}
		if resp.Error != nil {
			return nil, service.NewProtocolError(fmt.Sprintf("%s rejected", method), *resp.Error)
		}
		if len(resp.Result) == 0 || string(resp.Result) == "null" {
			return nil, service.NewProtocolError(fmt.Sprintf("%s returned no result", method), nil)
		}
		return resp.Result, nil
	}
}

func transportError(ctx context.Context, method string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		err = errors.Join(ctxErr, err)
	}
	return service.NewConnectError(fmt.Sprintf("Connection lost during %s", method), err)
}

// decodePeers parses [[address, host, [features...]], ...].
func decodePeers(raw json.RawMessage) ([]domain.PeerEntry, error) {
	var tuples [][]json.RawMessage
	if err := json.Unmarshal(raw, &tuples); err != nil {
		return nil, err
	}

	peers := make([]domain.PeerEntry, 0, len(tuples))
	for i, tuple := range tuples {
		if len(tuple) < 3 {
			return nil, fmt.Errorf("peer %d has %d fields, want 3", i, len(tuple))
		}
		var entry domain.PeerEntry
		if err := json.Unmarshal(tuple[0], &entry.Address); err != nil {
			return nil, fmt.Errorf("peer %d address: %w", i, err)
		}
		if err := json.Unmarshal(tuple[1], &entry.Host); err != nil {
			return nil, fmt.Errorf("peer %d host: %w", i, err)
		}
		if err := json.Unmarshal(tuple[2], &entry.Features); err != nil {
			return nil, fmt.Errorf("peer %d features: %w", i, err)
		}
		peers = append(peers, entry)
	}

	return peers, nil
}
