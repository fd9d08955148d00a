package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"electrumcrawler/adapters/redisstore"
	"electrumcrawler/domain"
	"electrumcrawler/helpers"

	"gopkg.in/yaml.v3"
)

// Env variable names.
const (
	envHTTPPort          = "SERVICE_PORT_HTTP"
	envGRPCPort          = "SERVICE_PORT_GRPC"
	envStoreBackend      = "STORE_BACKEND"
	envRedisAddr         = "REDIS_ADDR"
	envLevelDBPath       = "LEVELDB_PATH"
	envPostgresDSN       = "POSTGRES_DSN"
	envCrawlInterval     = "CRAWL_INTERVAL"
	envRefreshInterval   = "REFRESH_INTERVAL"
	envStaleAfter        = "STALE_AFTER"
	envProbeTimeout      = "PROBE_TIMEOUT"
	envFanOutConcurrency = "FANOUT_CONCURRENCY"
	envPeerRetryAfter    = "PEER_RETRY_AFTER"
	envClientName        = "CLIENT_NAME"
	envSeedsPath         = "SEEDS_PATH"
	envOTLPEndpoint      = "OTEL_EXPORTER_OTLP_ENDPOINT"
)

// Store backends.
const (
	backendRedis    = "redis"
	backendLevelDB  = "leveldb"
	backendPostgres = "postgres"
)

// CrawlerConfig is the full service configuration.
type CrawlerConfig struct {
	HTTPPort int
	// GRPCPort serves the gRPC health service. Zero disables it.
	GRPCPort int

	Backend     string
	Redis       redisstore.RedisConfig
	LevelDBPath string
	PostgresDSN string

	CrawlInterval     time.Duration
	RefreshInterval   time.Duration
	StaleAfter        time.Duration
	ProbeTimeout      time.Duration
	FanOutConcurrency int
	PeerRetryAfter    time.Duration

	ClientName   string
	Seeds        []domain.ServerReference
	OTLPEndpoint string
}

type yamlSeeds struct {
	Seeds []yamlSeed `yaml:"seeds"`
}

type yamlSeed struct {
	Host       string         `yaml:"host"`
	Version    string         `yaml:"version"`
	Transports yamlTransports `yaml:"transports"`
}

type yamlTransports struct {
	TCPPort *int `yaml:"tcp_port"`
	SSLPort *int `yaml:"ssl_port"`
	WSPort  *int `yaml:"ws_port"`
	WSSPort *int `yaml:"wss_port"`
}

// defaultSeeds are added on GET /seed when SEEDS_PATH is unset.
func defaultSeeds() []domain.ServerReference {
	return []domain.ServerReference{
		{Host: "electrum.imaginary.cash", VersionMax: "1.4.4", Transports: domain.Transports{SSLPort: helpers.Ptr(domain.DefaultSSLPort)}},
		{Host: "testnet2.imaginary.cash", VersionMax: "1.4.4", Transports: domain.Transports{SSLPort: helpers.Ptr(domain.DefaultSSLPort)}},
	}
}

// LoadConfig loads configuration from environment variables.
// SERVICE_PORT_HTTP is required, as is the address of the chosen store backend.
func LoadConfig() (*CrawlerConfig, error) {
	httpPort, err := portEnv(envHTTPPort, true)
	if err != nil {
		return nil, err
	}
	grpcPort, err := portEnv(envGRPCPort, false)
	if err != nil {
		return nil, err
	}

	cfg := &CrawlerConfig{
		HTTPPort:     httpPort,
		GRPCPort:     grpcPort,
		Backend:      strings.ToLower(strings.TrimSpace(os.Getenv(envStoreBackend))),
		ClientName:   strings.TrimSpace(os.Getenv(envClientName)),
		OTLPEndpoint: strings.TrimSpace(os.Getenv(envOTLPEndpoint)),
	}
	if cfg.Backend == "" {
		cfg.Backend = backendRedis
	}
	if cfg.ClientName == "" {
		cfg.ClientName = "electrum-crawler"
	}

	switch cfg.Backend {
	case backendRedis:
		cfg.Redis.Addr = os.Getenv(envRedisAddr)
		if cfg.Redis.Addr == "" {
			return nil, fmt.Errorf("%s is required", envRedisAddr)
		}
	case backendLevelDB:
		cfg.LevelDBPath = os.Getenv(envLevelDBPath)
		if cfg.LevelDBPath == "" {
			return nil, fmt.Errorf("%s is required", envLevelDBPath)
		}
	case backendPostgres:
		cfg.PostgresDSN = os.Getenv(envPostgresDSN)
		if cfg.PostgresDSN == "" {
			return nil, fmt.Errorf("%s is required", envPostgresDSN)
		}
	default:
		return nil, fmt.Errorf("%s must be one of redis, leveldb, postgres, got %q", envStoreBackend, cfg.Backend)
	}

	durations := []struct {
		name     string
		def      time.Duration
		allowOff bool
		dst      *time.Duration
	}{
		{name: envCrawlInterval, def: 24 * time.Hour, dst: &cfg.CrawlInterval},
		{name: envRefreshInterval, def: time.Hour, dst: &cfg.RefreshInterval},
		{name: envStaleAfter, def: 7 * 24 * time.Hour, dst: &cfg.StaleAfter},
		{name: envProbeTimeout, def: 10 * time.Second, dst: &cfg.ProbeTimeout},
		{name: envPeerRetryAfter, def: time.Hour, allowOff: true, dst: &cfg.PeerRetryAfter},
	}
	for _, d := range durations {
		if *d.dst, err = durationEnv(d.name, d.def, d.allowOff); err != nil {
			return nil, err
		}
	}

	cfg.FanOutConcurrency = 8
	if s := strings.TrimSpace(os.Getenv(envFanOutConcurrency)); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("%s must be a positive integer, got %q", envFanOutConcurrency, s)
		}
		cfg.FanOutConcurrency = n
	}

	cfg.Seeds = defaultSeeds()
	if path := strings.TrimSpace(os.Getenv(envSeedsPath)); path != "" {
		if !filepath.IsAbs(path) {
			if path, err = filepath.Abs(path); err != nil {
				return nil, err
			}
		}
		if cfg.Seeds, err = loadSeeds(path); err != nil {
			return nil, fmt.Errorf("load seeds %s: %w", path, err)
		}
	}

	return cfg, nil
}

func portEnv(name string, required bool) (int, error) {
	s := strings.TrimSpace(os.Getenv(name))
	if s == "" {
		if required {
			return 0, fmt.Errorf("%s is required", name)
		}
		return 0, nil
	}
	port, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	if port < 0 || port > 65535 {
		return 0, fmt.Errorf("%s must be 0-65535, got %d", name, port)
	}
	return port, nil
}

// durationEnv parses a Go duration. Zero is accepted only when allowOff is set.
func durationEnv(name string, def time.Duration, allowOff bool) (time.Duration, error) {
	s := strings.TrimSpace(os.Getenv(name))
	if s == "" {
		return def, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	if d < 0 || (d == 0 && !allowOff) {
		return 0, fmt.Errorf("%s must be positive, got %s", name, s)
	}
	return d, nil
}

// loadSeeds reads the seeds YAML at path. Every seed needs a host and an ssl or tcp port.
func loadSeeds(path string) ([]domain.ServerReference, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw yamlSeeds
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	seeds := make([]domain.ServerReference, 0, len(raw.Seeds))
	for i, s := range raw.Seeds {
		ref := domain.ServerReference{
			Host:       strings.TrimSpace(s.Host),
			VersionMax: strings.TrimSpace(s.Version),
			Transports: domain.Transports{
				TCPPort: s.Transports.TCPPort,
				SSLPort: s.Transports.SSLPort,
				WSPort:  s.Transports.WSPort,
				WSSPort: s.Transports.WSSPort,
			},
		}
		if ref.Host == "" {
			return nil, fmt.Errorf("seed %d: host is required", i)
		}
		if !ref.Transports.Probeable() {
			return nil, fmt.Errorf("seed %d (%s): ssl_port or tcp_port is required", i, ref.Host)
		}
		seeds = append(seeds, ref)
	}
	return seeds, nil
}
