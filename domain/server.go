package domain

import (
	"net"
	"strconv"
	"time"
)

// TransportKind is a reachable endpoint kind advertised by a server.
type TransportKind string

const (
	TransportTCP TransportKind = "tcp"
	TransportSSL TransportKind = "ssl"
	TransportWS  TransportKind = "ws"
	TransportWSS TransportKind = "wss"
)

// Default ports of the protocol, used when a peer advertises a bare "t" or "s" code.
const (
	DefaultTCPPort = 50001
	DefaultSSLPort = 50002
)

// Transports is the set of endpoints of a server. Every port is optional.
// JSON keys match the per-host entries of a server.features "hosts" map.
type Transports struct {
	TCPPort *int `json:"tcp_port,omitempty"`
	SSLPort *int `json:"ssl_port,omitempty"`
	WSPort  *int `json:"ws_port,omitempty"`
	WSSPort *int `json:"wss_port,omitempty"`
}

// Port returns the port advertised for kind.
func (t Transports) Port(kind TransportKind) (int, bool) {
	var p *int
	switch kind {
	case TransportTCP:
		p = t.TCPPort
	case TransportSSL:
		p = t.SSLPort
	case TransportWS:
		p = t.WSPort
	case TransportWSS:
		p = t.WSSPort
	}
	if p == nil {
		return 0, false
	}
	return *p, true
}

// Has reports whether a port is advertised for kind.
func (t Transports) Has(kind TransportKind) bool {
	_, ok := t.Port(kind)
	return ok
}

// Probeable reports whether the crawler can open a feature probe: it speaks tcp and ssl only.
func (t Transports) Probeable() bool {
	return t.SSLPort != nil || t.TCPPort != nil
}

// Empty reports whether no port is advertised at all.
func (t Transports) Empty() bool {
	return t.TCPPort == nil && t.SSLPort == nil && t.WSPort == nil && t.WSSPort == nil
}

// VersionRange is the protocol version interval a server supports.
type VersionRange struct {
	Min string `json:"min,omitempty"`
	Max string `json:"max,omitempty"`
}

// ServerReference is the minimal input required to attempt a probe.
type ServerReference struct {
	Host       string     `json:"host"`
	VersionMax string     `json:"version_max,omitempty"`
	Transports Transports `json:"transports"`
}

// PeerAdvertisement is a ServerReference produced by peer discovery. It is never persisted.
type PeerAdvertisement = ServerReference

// ServerRecord is the unit of persistence. It is identified by (Network, Host).
type ServerRecord struct {
	Host       string       `json:"host"`
	Network    Network      `json:"network"`
	Version    VersionRange `json:"version"`
	Transports Transports   `json:"transports"`
	LastSeen   time.Time    `json:"last_seen"`
	// Revision increases by one on every upsert of the key.
	Revision uint64 `json:"revision"`
}

// Key returns the store key of the record.
func (r ServerRecord) Key() string {
	return Key(r.Network, r.Host)
}

// Reference demotes the record to the reference used to re-probe it.
func (r ServerRecord) Reference() ServerReference {
	return ServerReference{
		Host:       r.Host,
		VersionMax: r.Version.Max,
		Transports: r.Transports,
	}
}

// Age returns the time elapsed since the last successful probe.
func (r ServerRecord) Age(now time.Time) time.Duration {
	return now.Sub(r.LastSeen)
}

// Key builds the "network:host" store key.
func Key(network Network, host string) string {
	return string(network) + ":" + host
}

// Target is one concrete endpoint the gateway connects to.
type Target struct {
	Host            string
	Port            int
	Transport       TransportKind
	ProtocolVersion string
}

// Addr returns host:port, bracketing IPv6 literals.
func (t Target) Addr() string {
	return net.JoinHostPort(t.Host, strconv.Itoa(t.Port))
}
