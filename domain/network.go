package domain

import (
	"strings"

	"github.com/btcsuite/btcd/chaincfg"
)

// Network identifies the chain a server indexes.
type Network string

const (
	NetworkMainnet Network = "mainnet"
	NetworkTestnet Network = "testnet"
	NetworkUnknown Network = "unknown"
)

var (
	mainnetGenesisHash = chaincfg.MainNetParams.GenesisHash.String()
	testnetGenesisHash = chaincfg.TestNet3Params.GenesisHash.String()
)

// NetworkFromGenesis classifies a genesis_hash value. Anything but the two known hashes is unknown.
func NetworkFromGenesis(genesisHash string) Network {
	switch strings.ToLower(strings.TrimSpace(genesisHash)) {
	case mainnetGenesisHash:
		return NetworkMainnet
	case testnetGenesisHash:
		return NetworkTestnet
	default:
		return NetworkUnknown
	}
}

// Known reports whether the network can be persisted.
func (n Network) Known() bool {
	return n == NetworkMainnet || n == NetworkTestnet
}
