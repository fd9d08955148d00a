package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"electrumcrawler/domain"
	"electrumcrawler/helpers"
	"electrumcrawler/interfaces"
	"electrumcrawler/telemetry"

	"github.com/Masterminds/semver/v3"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// DefaultProtocolVersion is negotiated when a reference does not advertise a maximum version.
const DefaultProtocolVersion = "1.4"

var tracer = otel.Tracer("electrumcrawler/service")

type prober struct {
	gateway interfaces.ProtocolGateway
	clock   interfaces.TimeProvider
	metrics *telemetry.Metrics
	timeout time.Duration
	logger  log.Logger
}

// NewProber creates a Prober that asks servers for their features through gateway.
// Every gateway call is bounded by timeout; expiry is reported as connect_error.
func NewProber(gateway interfaces.ProtocolGateway, clock interfaces.TimeProvider, metrics *telemetry.Metrics, timeout time.Duration, logger log.Logger) interfaces.Prober {
	if timeout <= 0 {
		panic("service.prober.go: timeout must be positive")
	}
	return &prober{
		gateway: helpers.NilPanic(gateway, "service.prober.go: gateway is required"),
		clock:   helpers.NilPanic(clock, "service.prober.go: clock is required"),
		metrics: helpers.NilPanic(metrics, "service.prober.go: metrics is required"),
		timeout: timeout,
		logger:  log.With(logger, "component", "Prober"),
	}
}

func (p *prober) Probe(ctx context.Context, ref domain.ServerReference) (domain.ServerRecord, error) {
	ctx, span := tracer.Start(ctx, "Prober.Probe", trace.WithAttributes(attribute.String("server.host", ref.Host)))
	defer span.End()

	target, err := selectTarget(ref)
	if err != nil {
		p.metrics.ObserveProbe(telemetry.ResultRejected, 0)
		span.SetStatus(codes.Error, err.Error())
		return domain.ServerRecord{}, err
	}
	span.SetAttributes(attribute.String("server.transport", string(target.Transport)), attribute.Int("server.port", target.Port))

	start := p.clock.Now()
	features, err := callWithTimeout(ctx, p.timeout, func(ctx context.Context) (domain.Features, error) {
		return p.gateway.FetchFeatures(ctx, target)
	})
	if err == nil {
		var record domain.ServerRecord
		record, err = reconcile(ref, features)
		if err == nil {
			record.LastSeen = p.clock.Now()
			p.metrics.ObserveProbe(telemetry.ResultOK, record.LastSeen.Sub(start))
			span.SetAttributes(attribute.String("server.network", string(record.Network)))
			return record, nil
		}
	}

	result := telemetry.ResultConnect
	if IsProtocolError(err) {
		result = telemetry.ResultProtocol
	}
	p.metrics.ObserveProbe(result, p.clock.Now().Sub(start))
	span.RecordError(err)
	span.SetStatus(codes.Error, result)
	level.Debug(p.logger).Log(
		"msg", "probe failed",
		"host", ref.Host,
		"addr", target.Addr(),
		"transport", target.Transport,
		"err", err,
	)

	return domain.ServerRecord{}, err
}

// reconcile builds a record from the authoritative features response.
func reconcile(ref domain.ServerReference, features domain.Features) (domain.ServerRecord, error) {
	if features.ProtocolMin == "" || features.ProtocolMax == "" {
		return domain.ServerRecord{}, NewProtocolError("server.features response lacks protocol_min or protocol_max", nil)
	}
	minVersion, err := semver.NewVersion(features.ProtocolMin)
	if err != nil {
		return domain.ServerRecord{}, NewProtocolError(fmt.Sprintf("invalid protocol_min %q", features.ProtocolMin), err)
	}
	maxVersion, err := semver.NewVersion(features.ProtocolMax)
	if err != nil {
		return domain.ServerRecord{}, NewProtocolError(fmt.Sprintf("invalid protocol_max %q", features.ProtocolMax), err)
	}
	if minVersion.GreaterThan(maxVersion) {
		return domain.ServerRecord{}, NewProtocolError(fmt.Sprintf("protocol_min %s exceeds protocol_max %s", features.ProtocolMin, features.ProtocolMax), nil)
	}

	transports := ref.Transports
	for host, advertised := range features.Hosts {
		if strings.EqualFold(host, ref.Host) && !advertised.Empty() {
			transports = advertised
			break
		}
	}

	return domain.ServerRecord{
		Host:    ref.Host,
		Network: domain.NetworkFromGenesis(features.GenesisHash),
		Version: domain.VersionRange{
			Min: features.ProtocolMin,
			Max: features.ProtocolMax,
		},
		Transports: transports,
	}, nil
}

// selectTarget picks ssl when advertised, otherwise tcp. There is no fallback between them.
func selectTarget(ref domain.ServerReference) (domain.Target, error) {
	if ref.Host == "" {
		return domain.Target{}, NewBadParameterError("host is required", nil)
	}

	version := ref.VersionMax
	if version == "" {
		version = DefaultProtocolVersion
	}

	for _, kind := range []domain.TransportKind{domain.TransportSSL, domain.TransportTCP} {
		if port, ok := ref.Transports.Port(kind); ok {
			return domain.Target{
				Host:            ref.Host,
				Port:            port,
				Transport:       kind,
				ProtocolVersion: version,
			}, nil
		}
	}

	return domain.Target{}, NewBadParameterError(fmt.Sprintf("server %s advertises neither ssl nor tcp port", ref.Host), nil)
}

// callWithTimeout bounds one gateway call. Errors without a code become connect_error.
func callWithTimeout[T any](ctx context.Context, timeout time.Duration, call func(ctx context.Context) (T, error)) (T, error) {
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	res, err := call(callCtx)
	if err == nil {
		return res, nil
	}
	if IsProbeError(err) {
		return res, err
	}
	if errors.Is(callCtx.Err(), context.DeadlineExceeded) {
		return res, NewConnectError(fmt.Sprintf("no response within %s", timeout), err)
	}
	return res, NewConnectError("remote call failed", err)
}
