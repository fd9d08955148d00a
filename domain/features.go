package domain

// Features is the part of a server.features response the crawler consumes.
type Features struct {
	GenesisHash   string                `json:"genesis_hash"`
	ProtocolMin   string                `json:"protocol_min"`
	ProtocolMax   string                `json:"protocol_max"`
	Hosts         map[string]Transports `json:"hosts"`
	ServerVersion string                `json:"server_version,omitempty"`
}

// PeerEntry is one [address, host, [feature codes]] tuple of a server.peers.subscribe response.
type PeerEntry struct {
	Address  string
	Host     string
	Features []string
}
