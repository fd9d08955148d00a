package service

import (
	"context"
	"slices"
	"testing"
	"time"

	"electrumcrawler/domain"
	"electrumcrawler/helpers"
	"electrumcrawler/interfaces/mock"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePeer(t *testing.T) {
	tests := []struct {
		name    string
		entry   domain.PeerEntry
		want    domain.ServerReference
		wantErr bool
	}{
		{
			name:  "ssl port and version",
			entry: domain.PeerEntry{Address: "_", Host: "b.example", Features: []string{"s50004", "v1.4.5"}},
			want: domain.ServerReference{
				Host:       "b.example",
				VersionMax: "1.4.5",
				Transports: domain.Transports{SSLPort: helpers.Ptr(50004)},
			},
		},
		{
			name:  "tcp and ssl with pruning code ignored",
			entry: domain.PeerEntry{Host: "c.example", Features: []string{"v1.4", "p10000", "t50001", "s50002"}},
			want: domain.ServerReference{
				Host:       "c.example",
				VersionMax: "1.4",
				Transports: domain.Transports{TCPPort: helpers.Ptr(50001), SSLPort: helpers.Ptr(50002)},
			},
		},
		{
			name:  "bare codes mean default ports",
			entry: domain.PeerEntry{Host: "d.example", Features: []string{"s", "t"}},
			want: domain.ServerReference{
				Host:       "d.example",
				Transports: domain.Transports{TCPPort: helpers.Ptr(domain.DefaultTCPPort), SSLPort: helpers.Ptr(domain.DefaultSSLPort)},
			},
		},
		{
			name:    "non-numeric port",
			entry:   domain.PeerEntry{Host: "e.example", Features: []string{"s50x02"}},
			wantErr: true,
		},
		{
			name:    "signed port",
			entry:   domain.PeerEntry{Host: "e.example", Features: []string{"t+50001"}},
			wantErr: true,
		},
		{
			name:    "port out of range",
			entry:   domain.PeerEntry{Host: "e.example", Features: []string{"t70000"}},
			wantErr: true,
		},
		{
			name:    "onion host",
			entry:   domain.PeerEntry{Host: "abcdef.onion", Features: []string{"s50002"}},
			wantErr: true,
		},
		{
			name:    "only version",
			entry:   domain.PeerEntry{Host: "f.example", Features: []string{"v1.4"}},
			wantErr: true,
		},
		{
			name:    "empty host",
			entry:   domain.PeerEntry{Features: []string{"s50002"}},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePeer(tt.entry)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsOnionHost(t *testing.T) {
	assert.True(t, IsOnionHost("x.onion"))
	assert.True(t, IsOnionHost("X.ONION"))
	assert.True(t, IsOnionHost("x.onion."))
	assert.False(t, IsOnionHost("onion.example"))
	assert.False(t, IsOnionHost("x.onions"))
}

func TestPeerDiscoverer_DiscoverPeers(t *testing.T) {
	record := domain.ServerRecord{
		Host:       "a.example",
		Network:    domain.NetworkMainnet,
		Version:    domain.VersionRange{Min: "1.4", Max: "1.4.4"},
		Transports: domain.Transports{TCPPort: helpers.Ptr(50001), SSLPort: helpers.Ptr(50002)},
	}
	entries := []domain.PeerEntry{
		{Address: "1.2.3.4", Host: "z.example", Features: []string{"s50002"}},
		{Address: "_", Host: "x.onion", Features: []string{"s50002"}},
		{Address: "_", Host: "bad.example", Features: []string{"sxyz"}},
		{Address: "_", Host: "b.example", Features: []string{"s50004", "v1.4.5"}},
		{Address: "_", Host: "ws.example", Features: []string{"v1.4"}},
		{Address: "_", Host: "c.example", Features: []string{"t50001"}},
	}
	gateway := &mock.ProtocolGatewayMock{
		FetchPeersFunc: func(ctx context.Context, target domain.Target) ([]domain.PeerEntry, error) {
			assert.Equal(t, domain.TransportSSL, target.Transport)
			assert.Equal(t, 50002, target.Port)
			assert.Equal(t, "1.4.4", target.ProtocolVersion)
			return entries, nil
		},
	}
	d := NewPeerDiscoverer(gateway, time.Second, log.NewNopLogger())

	peers, err := d.DiscoverPeers(context.Background(), record)
	require.NoError(t, err)

	var hosts []string
	for ref := range peers {
		hosts = append(hosts, ref.Host)
		assert.False(t, IsOnionHost(ref.Host))
	}
	assert.Equal(t, []string{"z.example", "b.example", "c.example"}, hosts)

	t.Run("sequence is single-use", func(t *testing.T) {
		assert.Empty(t, slices.Collect(peers))
	})
}

func TestPeerDiscoverer_DiscoverPeers_EarlyStop(t *testing.T) {
	gateway := &mock.ProtocolGatewayMock{
		FetchPeersFunc: func(ctx context.Context, target domain.Target) ([]domain.PeerEntry, error) {
			return []domain.PeerEntry{
				{Host: "a.example", Features: []string{"t"}},
				{Host: "b.example", Features: []string{"t"}},
			}, nil
		},
	}
	d := NewPeerDiscoverer(gateway, time.Second, log.NewNopLogger())

	peers, err := d.DiscoverPeers(context.Background(), domain.ServerRecord{
		Host:       "seed.example",
		Transports: domain.Transports{TCPPort: helpers.Ptr(50001)},
	})
	require.NoError(t, err)

	var got []string
	for ref := range peers {
		got = append(got, ref.Host)
		break
	}
	assert.Equal(t, []string{"a.example"}, got)
}

func TestPeerDiscoverer_DiscoverPeers_Errors(t *testing.T) {
	tests := []struct {
		name     string
		record   domain.ServerRecord
		err      error
		wantCode string
	}{
		{
			name:     "connect failure",
			record:   domain.ServerRecord{Host: "a.example", Transports: domain.Transports{SSLPort: helpers.Ptr(50002)}},
			err:      assert.AnError,
			wantCode: ErrConnect,
		},
		{
			name:     "protocol failure",
			record:   domain.ServerRecord{Host: "a.example", Transports: domain.Transports{SSLPort: helpers.Ptr(50002)}},
			err:      NewProtocolError("not a list", nil),
			wantCode: ErrProtocol,
		},
		{
			name:     "no probeable transport",
			record:   domain.ServerRecord{Host: "a.example", Transports: domain.Transports{WSPort: helpers.Ptr(50003)}},
			wantCode: ErrBadParameter,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gateway := &mock.ProtocolGatewayMock{
				FetchPeersFunc: func(ctx context.Context, target domain.Target) ([]domain.PeerEntry, error) {
					return nil, tt.err
				},
			}
			d := NewPeerDiscoverer(gateway, time.Second, log.NewNopLogger())

			peers, err := d.DiscoverPeers(context.Background(), tt.record)
			require.Error(t, err)
			assert.Nil(t, peers)
			assert.Equal(t, tt.wantCode, ToCrawlerErrorCode(err))
		})
	}
}
