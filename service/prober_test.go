package service

import (
	"context"
	"testing"
	"time"

	"electrumcrawler/domain"
	"electrumcrawler/helpers"
	"electrumcrawler/interfaces/mock"
	"electrumcrawler/telemetry"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/go-kit/log"
	"github.com/lightningnetwork/lnd/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testNow = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

	mainnetGenesis = chaincfg.MainNetParams.GenesisHash.String()
	testnetGenesis = chaincfg.TestNet3Params.GenesisHash.String()
)

func newTestProber(gateway *mock.ProtocolGatewayMock, timeout time.Duration) *prober {
	return NewProber(gateway, clock.NewTestClock(testNow), telemetry.NewMetrics(), timeout, log.NewNopLogger()).(*prober)
}

func mainnetFeatures(min, max string) domain.Features {
	return domain.Features{
		GenesisHash: mainnetGenesis,
		ProtocolMin: min,
		ProtocolMax: max,
	}
}

func TestProber_Probe(t *testing.T) {
	tests := []struct {
		name          string
		ref           domain.ServerReference
		features      domain.Features
		gatewayErr    error
		wantTarget    *domain.Target
		wantErrCode   string
		wantRecord    domain.ServerRecord
		gatewayCalled bool
	}{
		{
			name: "ssl seed resolves to mainnet",
			ref: domain.ServerReference{
				Host:       "a.example",
				VersionMax: "1.4.4",
				Transports: domain.Transports{SSLPort: helpers.Ptr(50002)},
			},
			features: mainnetFeatures("1.4", "1.4.4"),
			wantTarget: &domain.Target{
				Host: "a.example", Port: 50002, Transport: domain.TransportSSL, ProtocolVersion: "1.4.4",
			},
			wantRecord: domain.ServerRecord{
				Host:       "a.example",
				Network:    domain.NetworkMainnet,
				Version:    domain.VersionRange{Min: "1.4", Max: "1.4.4"},
				Transports: domain.Transports{SSLPort: helpers.Ptr(50002)},
				LastSeen:   testNow,
			},
			gatewayCalled: true,
		},
		{
			name: "ssl preferred over tcp",
			ref: domain.ServerReference{
				Host:       "b.example",
				Transports: domain.Transports{TCPPort: helpers.Ptr(50001), SSLPort: helpers.Ptr(50012)},
			},
			features: domain.Features{GenesisHash: testnetGenesis, ProtocolMin: "1.4", ProtocolMax: "1.5"},
			wantTarget: &domain.Target{
				Host: "b.example", Port: 50012, Transport: domain.TransportSSL, ProtocolVersion: DefaultProtocolVersion,
			},
			wantRecord: domain.ServerRecord{
				Host:       "b.example",
				Network:    domain.NetworkTestnet,
				Version:    domain.VersionRange{Min: "1.4", Max: "1.5"},
				Transports: domain.Transports{TCPPort: helpers.Ptr(50001), SSLPort: helpers.Ptr(50012)},
				LastSeen:   testNow,
			},
			gatewayCalled: true,
		},
		{
			name:     "tcp when no ssl",
			ref:      domain.ServerReference{Host: "c.example", VersionMax: "1.4.2", Transports: domain.Transports{TCPPort: helpers.Ptr(50001)}},
			features: mainnetFeatures("1.4", "1.4.2"),
			wantTarget: &domain.Target{
				Host: "c.example", Port: 50001, Transport: domain.TransportTCP, ProtocolVersion: "1.4.2",
			},
			wantRecord: domain.ServerRecord{
				Host:       "c.example",
				Network:    domain.NetworkMainnet,
				Version:    domain.VersionRange{Min: "1.4", Max: "1.4.2"},
				Transports: domain.Transports{TCPPort: helpers.Ptr(50001)},
				LastSeen:   testNow,
			},
			gatewayCalled: true,
		},
		{
			name: "self-reported transports replace the reference",
			ref:  domain.ServerReference{Host: "D.example", Transports: domain.Transports{SSLPort: helpers.Ptr(50002)}},
			features: domain.Features{
				GenesisHash: mainnetGenesis,
				ProtocolMin: "1.4",
				ProtocolMax: "1.4.4",
				Hosts: map[string]domain.Transports{
					"other.example": {TCPPort: helpers.Ptr(1)},
					"d.example":     {SSLPort: helpers.Ptr(50002), WSSPort: helpers.Ptr(50004)},
				},
			},
			wantRecord: domain.ServerRecord{
				Host:       "D.example",
				Network:    domain.NetworkMainnet,
				Version:    domain.VersionRange{Min: "1.4", Max: "1.4.4"},
				Transports: domain.Transports{SSLPort: helpers.Ptr(50002), WSSPort: helpers.Ptr(50004)},
				LastSeen:   testNow,
			},
			gatewayCalled: true,
		},
		{
			name: "hosts map without probed host keeps the reference",
			ref:  domain.ServerReference{Host: "e.example", Transports: domain.Transports{SSLPort: helpers.Ptr(50002)}},
			features: domain.Features{
				GenesisHash: mainnetGenesis,
				ProtocolMin: "1.4",
				ProtocolMax: "1.4.4",
				Hosts: map[string]domain.Transports{
					"other.example": {TCPPort: helpers.Ptr(1)},
					"e.example":     {},
				},
			},
			wantRecord: domain.ServerRecord{
				Host:       "e.example",
				Network:    domain.NetworkMainnet,
				Version:    domain.VersionRange{Min: "1.4", Max: "1.4.4"},
				Transports: domain.Transports{SSLPort: helpers.Ptr(50002)},
				LastSeen:   testNow,
			},
			gatewayCalled: true,
		},
		{
			name:     "unknown genesis is not an error",
			ref:      domain.ServerReference{Host: "f.example", Transports: domain.Transports{TCPPort: helpers.Ptr(50001)}},
			features: domain.Features{GenesisHash: "00ff", ProtocolMin: "1.4", ProtocolMax: "1.4"},
			wantRecord: domain.ServerRecord{
				Host:       "f.example",
				Network:    domain.NetworkUnknown,
				Version:    domain.VersionRange{Min: "1.4", Max: "1.4"},
				Transports: domain.Transports{TCPPort: helpers.Ptr(50001)},
				LastSeen:   testNow,
			},
			gatewayCalled: true,
		},
		{
			name:        "no probeable transport",
			ref:         domain.ServerReference{Host: "g.example", Transports: domain.Transports{WSSPort: helpers.Ptr(50004)}},
			wantErrCode: ErrBadParameter,
		},
		{
			name:        "empty host",
			ref:         domain.ServerReference{Transports: domain.Transports{SSLPort: helpers.Ptr(50002)}},
			wantErrCode: ErrBadParameter,
		},
		{
			name:          "uncoded gateway error becomes connect_error",
			ref:           domain.ServerReference{Host: "h.example", Transports: domain.Transports{SSLPort: helpers.Ptr(50002)}},
			gatewayErr:    assert.AnError,
			wantErrCode:   ErrConnect,
			gatewayCalled: true,
		},
		{
			name:          "protocol error passes through",
			ref:           domain.ServerReference{Host: "h.example", Transports: domain.Transports{SSLPort: helpers.Ptr(50002)}},
			gatewayErr:    NewProtocolError("bad json", nil),
			wantErrCode:   ErrProtocol,
			gatewayCalled: true,
		},
		{
			name:          "missing protocol_min",
			ref:           domain.ServerReference{Host: "i.example", Transports: domain.Transports{SSLPort: helpers.Ptr(50002)}},
			features:      mainnetFeatures("", "1.4"),
			wantErrCode:   ErrProtocol,
			gatewayCalled: true,
		},
		{
			name:          "min above max",
			ref:           domain.ServerReference{Host: "j.example", Transports: domain.Transports{SSLPort: helpers.Ptr(50002)}},
			features:      mainnetFeatures("1.5", "1.4"),
			wantErrCode:   ErrProtocol,
			gatewayCalled: true,
		},
		{
			name:          "non-version protocol_max",
			ref:           domain.ServerReference{Host: "k.example", Transports: domain.Transports{SSLPort: helpers.Ptr(50002)}},
			features:      mainnetFeatures("1.4", "latest"),
			wantErrCode:   ErrProtocol,
			gatewayCalled: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gateway := &mock.ProtocolGatewayMock{
				FetchFeaturesFunc: func(ctx context.Context, target domain.Target) (domain.Features, error) {
					if tt.wantTarget != nil {
						assert.Equal(t, *tt.wantTarget, target)
					}
					return tt.features, tt.gatewayErr
				},
			}
			p := newTestProber(gateway, time.Second)

			record, err := p.Probe(context.Background(), tt.ref)

			if tt.gatewayCalled {
				assert.Len(t, gateway.FetchFeaturesCalls(), 1)
			} else {
				assert.Empty(t, gateway.FetchFeaturesCalls())
			}
			if tt.wantErrCode != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantErrCode, ToCrawlerErrorCode(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantRecord, record)
		})
	}
}

func TestProber_Probe_Timeout(t *testing.T) {
	gateway := &mock.ProtocolGatewayMock{
		FetchFeaturesFunc: func(ctx context.Context, target domain.Target) (domain.Features, error) {
			<-ctx.Done()
			return domain.Features{}, ctx.Err()
		},
	}
	p := newTestProber(gateway, 20*time.Millisecond)

	_, err := p.Probe(context.Background(), domain.ServerReference{
		Host:       "slow.example",
		Transports: domain.Transports{SSLPort: helpers.Ptr(50002)},
	})

	require.Error(t, err)
	assert.True(t, IsConnectError(err))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNewProber_PanicsOnMissingDependencies(t *testing.T) {
	metrics := telemetry.NewMetrics()
	clk := clock.NewTestClock(testNow)
	gateway := &mock.ProtocolGatewayMock{}

	assert.Panics(t, func() { NewProber(nil, clk, metrics, time.Second, log.NewNopLogger()) })
	assert.Panics(t, func() { NewProber(gateway, nil, metrics, time.Second, log.NewNopLogger()) })
	assert.Panics(t, func() { NewProber(gateway, clk, metrics, 0, log.NewNopLogger()) })
}
