package service

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"electrumcrawler/domain"
	"electrumcrawler/helpers"
	"electrumcrawler/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	errOnionPeer       = errors.New("onion peers are not supported")
	errUnprobeablePeer = errors.New("peer advertises neither ssl nor tcp port")
)

type peerDiscoverer struct {
	gateway interfaces.ProtocolGateway
	timeout time.Duration
	logger  log.Logger
}

// NewPeerDiscoverer creates a PeerDiscoverer that reads peer lists through gateway.
func NewPeerDiscoverer(gateway interfaces.ProtocolGateway, timeout time.Duration, logger log.Logger) interfaces.PeerDiscoverer {
	if timeout <= 0 {
		panic("service.discoverer.go: timeout must be positive")
	}
	return &peerDiscoverer{
		gateway: helpers.NilPanic(gateway, "service.discoverer.go: gateway is required"),
		timeout: timeout,
		logger:  log.With(logger, "component", "PeerDiscoverer"),
	}
}

func (d *peerDiscoverer) DiscoverPeers(ctx context.Context, record domain.ServerRecord) (iter.Seq[domain.ServerReference], error) {
	ctx, span := tracer.Start(ctx, "PeerDiscoverer.DiscoverPeers", trace.WithAttributes(attribute.String("server.host", record.Host)))
	defer span.End()

	target, err := selectTarget(record.Reference())
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	entries, err := callWithTimeout(ctx, d.timeout, func(ctx context.Context) ([]domain.PeerEntry, error) {
		return d.gateway.FetchPeers(ctx, target)
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("peers.advertised", len(entries)))

	var consumed atomic.Bool
	return func(yield func(domain.ServerReference) bool) {
		if !consumed.CompareAndSwap(false, true) {
			return
		}
		for _, entry := range entries {
			ref, err := ParsePeer(entry)
			if err != nil {
				if !errors.Is(err, errOnionPeer) {
					level.Debug(d.logger).Log("msg", "skipping peer", "from", record.Host, "peer", entry.Host, "err", err)
				}
				continue
			}
			if !yield(ref) {
				return
			}
		}
	}, nil
}

// ParsePeer converts one advertised peer into a reference.
// Codes: "s<port>" ssl, "t<port>" tcp, "v<version>" max version. A bare "s" or "t" means the default port.
// Other codes are ignored.
func ParsePeer(entry domain.PeerEntry) (domain.ServerReference, error) {
	host := strings.TrimSpace(entry.Host)
	if host == "" {
		return domain.ServerReference{}, NewProtocolError("peer without host", nil)
	}
	if IsOnionHost(host) {
		return domain.ServerReference{}, errOnionPeer
	}

	ref := domain.ServerReference{Host: host}
	for _, code := range entry.Features {
		if code == "" {
			continue
		}
		payload := code[1:]
		switch code[0] {
		case 's':
			port, err := parsePort(payload, domain.DefaultSSLPort)
			if err != nil {
				return domain.ServerReference{}, NewProtocolError(fmt.Sprintf("peer %s: malformed feature %q", host, code), err)
			}
			ref.Transports.SSLPort = helpers.Ptr(port)
		case 't':
			port, err := parsePort(payload, domain.DefaultTCPPort)
			if err != nil {
				return domain.ServerReference{}, NewProtocolError(fmt.Sprintf("peer %s: malformed feature %q", host, code), err)
			}
			ref.Transports.TCPPort = helpers.Ptr(port)
		case 'v':
			if payload != "" {
				ref.VersionMax = payload
			}
		}
	}

	if !ref.Transports.Probeable() {
		return domain.ServerReference{}, errUnprobeablePeer
	}

	return ref, nil
}

// IsOnionHost reports whether host is an anonymous-overlay address.
func IsOnionHost(host string) bool {
	host = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(host)), ".")
	return strings.HasSuffix(host, ".onion")
}

func parsePort(payload string, defaultPort int) (int, error) {
	if payload == "" {
		return defaultPort, nil
	}
	for _, r := range payload {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("non-numeric port %q", payload)
		}
	}
	port, err := strconv.Atoi(payload)
	if err != nil {
		return 0, err
	}
	if port < 1 || port > 65535 {
		return 0, fmt.Errorf("port %d out of range", port)
	}
	return port, nil
}
