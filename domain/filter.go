package domain

// ServerFilter selects records in a listing. Zero value matches everything.
type ServerFilter struct {
	// Version keeps records whose [min, max] range contains it.
	Version string
	// Secure and Websocket select the transport filter:
	// both -> wss, Websocket only -> ws or wss, Secure only -> ssl.
	Secure    bool
	Websocket bool
}

// ServerList is the result of a listing, partitioned by network.
type ServerList struct {
	Mainnet []ServerRecord `json:"mainnet"`
	Testnet []ServerRecord `json:"testnet"`
}
