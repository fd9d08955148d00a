package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"electrumcrawler/domain"
	"electrumcrawler/helpers"
	"electrumcrawler/interfaces"
	"electrumcrawler/telemetry"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// DefaultStaleAfter is how long a server may fail refreshes before it is evicted.
const DefaultStaleAfter = 7 * 24 * time.Hour

const recentPeersSize = 4096

// RegistryConfig tunes the Registry Manager.
type RegistryConfig struct {
	// StaleAfter is the eviction threshold measured from last_seen.
	StaleAfter time.Duration
	// Concurrency caps in-flight probes per fan-out and per refresh.
	Concurrency int
	// PeerRetryAfter suppresses re-probing a peer that was just attempted. Zero disables it.
	PeerRetryAfter time.Duration
}

// RegistryManager owns the seed, add, fan-out, crawl, refresh and query workflows.
// Per-item failures never abort a workflow; they are collected into the returned CycleReport.
type RegistryManager struct {
	store      interfaces.Store[domain.ServerRecord]
	prober     interfaces.Prober
	discoverer interfaces.PeerDiscoverer
	clock      interfaces.TimeProvider
	metrics    *telemetry.Metrics
	logger     log.Logger

	staleAfter  time.Duration
	concurrency int
	recent      *expirable.LRU[string, struct{}]
	keys        *keyMutex
}

var (
	_ interfaces.Registry = (*RegistryManager)(nil)
	_ interfaces.Cycler   = (*RegistryManager)(nil)
)

// NewRegistryManager creates a RegistryManager.
func NewRegistryManager(
	store interfaces.Store[domain.ServerRecord],
	prober interfaces.Prober,
	discoverer interfaces.PeerDiscoverer,
	clock interfaces.TimeProvider,
	metrics *telemetry.Metrics,
	cfg RegistryConfig,
	logger log.Logger,
) *RegistryManager {
	if cfg.StaleAfter <= 0 {
		cfg.StaleAfter = DefaultStaleAfter
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}

	var recent *expirable.LRU[string, struct{}]
	if cfg.PeerRetryAfter > 0 {
		recent = expirable.NewLRU[string, struct{}](recentPeersSize, nil, cfg.PeerRetryAfter)
	}

	return &RegistryManager{
		store:       helpers.NilPanic(store, "service.registry.go: store is required"),
		prober:      helpers.NilPanic(prober, "service.registry.go: prober is required"),
		discoverer:  helpers.NilPanic(discoverer, "service.registry.go: discoverer is required"),
		clock:       helpers.NilPanic(clock, "service.registry.go: clock is required"),
		metrics:     helpers.NilPanic(metrics, "service.registry.go: metrics is required"),
		logger:      log.With(logger, "component", "RegistryManager"),
		staleAfter:  cfg.StaleAfter,
		concurrency: cfg.Concurrency,
		recent:      recent,
		keys:        newKeyMutex(),
	}
}

// AddServer probes ref, stores the record and fans out one hop from it.
func (m *RegistryManager) AddServer(ctx context.Context, ref domain.ServerReference) (domain.CycleReport, error) {
	ctx, span := tracer.Start(ctx, "RegistryManager.AddServer", trace.WithAttributes(attribute.String("server.host", ref.Host)))
	defer span.End()

	report, err := m.addAndFanOut(ctx, ref, domain.TaskAdd)
	m.finish(&report)
	if err != nil {
		span.RecordError(err)
	}
	return report, err
}

// Seed adds every ref in order. A failing seed does not stop the others.
func (m *RegistryManager) Seed(ctx context.Context, refs []domain.ServerReference) domain.CycleReport {
	ctx, span := tracer.Start(ctx, "RegistryManager.Seed", trace.WithAttributes(attribute.Int("seeds", len(refs))))
	defer span.End()

	report := domain.NewCycleReport(domain.TaskSeed, m.clock.Now())
	for i, ref := range refs {
		if err := ctx.Err(); err != nil {
			report.Fail("", "", domain.StageInterrupted, fmt.Errorf("seed stopped with %d of %d seeds left, err: %w", len(refs)-i, len(refs), err))
			break
		}
		r, err := m.addAndFanOut(ctx, ref, domain.TaskSeed)
		if err != nil {
			level.Warn(m.logger).Log("msg", "seed failed", "host", ref.Host, "code", ToCrawlerErrorCode(err), "err", err)
		}
		report.Absorb(r)
	}
	m.finish(&report)

	return report
}

func (m *RegistryManager) addAndFanOut(ctx context.Context, ref domain.ServerReference, task domain.Task) (domain.CycleReport, error) {
	report := domain.NewCycleReport(task, m.clock.Now())
	report.Visited++

	record, stage, err := m.add(ctx, ref)
	if err != nil {
		report.Fail(ref.Host, record.Network, stage, err)
		return report, err
	}
	report.Added++
	report.Absorb(m.FanOutPeers(ctx, record))

	return report, nil
}

// add runs the add-sequence: probe, classify, upsert. It never fans out.
func (m *RegistryManager) add(ctx context.Context, ref domain.ServerReference) (domain.ServerRecord, domain.Stage, error) {
	record, err := m.prober.Probe(ctx, ref)
	if err != nil {
		return record, domain.StageProbe, err
	}
	if !record.Network.Known() {
		return record, domain.StageProbe, NewProtocolError(fmt.Sprintf("server %s serves an unknown chain", ref.Host), nil)
	}

	stored, err := m.upsert(ctx, record)
	if err != nil {
		return record, domain.StageStore, err
	}

	return stored, "", nil
}

// upsert writes record under its key and stamps the next revision.
// Writes to one key are serialized; records of an unknown network are refused.
func (m *RegistryManager) upsert(ctx context.Context, record domain.ServerRecord) (domain.ServerRecord, error) {
	if !record.Network.Known() {
		return record, NewBadParameterError(fmt.Sprintf("refusing to store %s with network %q", record.Host, record.Network), nil)
	}

	key := record.Key()
	m.keys.Lock(key)
	defer m.keys.Unlock(key)

	prev, err := m.store.Get(ctx, key)
	switch {
	case err == nil:
		record.Revision = prev.Revision + 1
	case IsEntityNotFoundError(err):
		record.Revision = 1
	default:
		return record, fmt.Errorf("upsert failed to read %s, err: %w", key, err)
	}

	if err := m.store.Put(ctx, key, record); err != nil {
		return record, fmt.Errorf("upsert failed to write %s, err: %w", key, err)
	}

	return record, nil
}

type peerOutcome int

const (
	peerAdded peerOutcome = iota
	peerKnown
	peerSuppressed
	peerFailed
)

// FanOutPeers adds the unseen peers of record. It expands one hop only: new peers are not fanned out.
func (m *RegistryManager) FanOutPeers(ctx context.Context, record domain.ServerRecord) domain.CycleReport {
	ctx, span := tracer.Start(ctx, "RegistryManager.FanOutPeers", trace.WithAttributes(attribute.String("server.host", record.Host)))
	defer span.End()

	report := domain.NewCycleReport(domain.TaskFanOut, m.clock.Now())

	peers, err := m.discoverer.DiscoverPeers(ctx, record)
	if err != nil {
		level.Debug(m.logger).Log("msg", "peer discovery failed", "host", record.Host, "network", record.Network, "err", err)
		report.Fail(record.Host, record.Network, domain.StageDiscover, err)
		report.Finish(m.clock.Now())
		return report
	}

	var (
		mu          sync.Mutex
		wg          sync.WaitGroup
		sem         = semaphore.NewWeighted(int64(m.concurrency))
		interrupted error
	)
	for ref := range peers {
		if err := ctx.Err(); err != nil {
			interrupted = err
			break
		}
		if err := sem.Acquire(ctx, 1); err != nil {
			interrupted = err
			break
		}

		mu.Lock()
		report.Visited++
		mu.Unlock()

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer sem.Release(1)

			outcome, stage, err := m.addPeer(ctx, record.Network, ref)

			mu.Lock()
			defer mu.Unlock()
			switch outcome {
			case peerAdded:
				report.Added++
			case peerKnown:
				report.Known++
			case peerSuppressed:
				report.Suppressed++
			case peerFailed:
				report.Fail(ref.Host, record.Network, stage, err)
			}
		}()
	}
	wg.Wait()

	if interrupted != nil {
		report.Fail(record.Host, record.Network, domain.StageInterrupted, fmt.Errorf("fan-out stopped after %d peers, err: %w", report.Visited, interrupted))
	}
	report.Finish(m.clock.Now())
	span.SetAttributes(attribute.Int("peers.visited", report.Visited), attribute.Int("peers.added", report.Added))

	return report
}

func (m *RegistryManager) addPeer(ctx context.Context, network domain.Network, ref domain.ServerReference) (peerOutcome, domain.Stage, error) {
	key := domain.Key(network, ref.Host)

	_, err := m.store.Get(ctx, key)
	if err == nil {
		return peerKnown, "", nil
	}
	if !IsEntityNotFoundError(err) {
		level.Warn(m.logger).Log("msg", "peer lookup failed", "host", ref.Host, "network", network, "err", err)
		return peerFailed, domain.StageLookup, err
	}

	if m.recent != nil && m.recent.Contains(key) {
		return peerSuppressed, "", nil
	}

	if _, stage, err := m.add(ctx, ref); err != nil {
		level.Debug(m.logger).Log("msg", "peer add failed", "host", ref.Host, "network", network, "stage", stage, "code", ToCrawlerErrorCode(err), "err", err)
		// a peer cut short by our own cancellation is retried on the next fan-out
		if m.recent != nil && ctx.Err() == nil {
			m.recent.Add(key, struct{}{})
		}
		return peerFailed, stage, err
	}

	level.Info(m.logger).Log("msg", "discovered server", "host", ref.Host, "network", network)
	return peerAdded, "", nil
}

// Crawl fans out from every stored record. Records are read up front; servers added meanwhile wait for the next crawl.
func (m *RegistryManager) Crawl(ctx context.Context) domain.CycleReport {
	ctx, span := tracer.Start(ctx, "RegistryManager.Crawl")
	defer span.End()

	report := domain.NewCycleReport(domain.TaskCrawl, m.clock.Now())
	records, err := m.snapshot(ctx)
	if err != nil {
		report.Fail("", "", domain.StageLookup, err)
	}

	for i, record := range records {
		if err := ctx.Err(); err != nil {
			report.Fail("", "", domain.StageInterrupted, fmt.Errorf("crawl stopped with %d of %d records left, err: %w", len(records)-i, len(records), err))
			break
		}
		report.Absorb(m.FanOutPeers(ctx, record))
	}
	m.finish(&report)

	return report
}

// Refresh re-probes every stored record. A failing record older than the staleness threshold is deleted;
// a younger one is left untouched for the next cycle.
func (m *RegistryManager) Refresh(ctx context.Context) domain.CycleReport {
	ctx, span := tracer.Start(ctx, "RegistryManager.Refresh")
	defer span.End()

	report := domain.NewCycleReport(domain.TaskRefresh, m.clock.Now())
	records, err := m.snapshot(ctx)
	if err != nil {
		report.Fail("", "", domain.StageLookup, err)
	}

	var (
		mu sync.Mutex
		g  errgroup.Group
	)
	g.SetLimit(m.concurrency)
	for i, record := range records {
		if err := ctx.Err(); err != nil {
			mu.Lock()
			report.Fail("", "", domain.StageInterrupted, fmt.Errorf("refresh stopped with %d of %d records left, err: %w", len(records)-i, len(records), err))
			mu.Unlock()
			break
		}
		g.Go(func() error {
			r := m.refreshOne(ctx, record)
			mu.Lock()
			report.Absorb(r)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	m.finish(&report)

	return report
}

func (m *RegistryManager) refreshOne(ctx context.Context, record domain.ServerRecord) domain.CycleReport {
	report := domain.CycleReport{Visited: 1}

	fresh, err := m.prober.Probe(ctx, record.Reference())
	if err == nil && !fresh.Network.Known() {
		err = NewProtocolError(fmt.Sprintf("server %s now serves an unknown chain", record.Host), nil)
	}
	if err != nil && ctx.Err() != nil {
		// the attempt was aborted locally; the server has not failed it
		report.Fail(record.Host, record.Network, domain.StageInterrupted, err)
		return report
	}
	if err != nil {
		age := record.Age(m.clock.Now())
		if age <= m.staleAfter {
			report.Stale++
			report.Fail(record.Host, record.Network, domain.StageProbe, err)
			return report
		}

		if err := m.store.Delete(ctx, record.Key()); err != nil {
			report.Fail(record.Host, record.Network, domain.StageStore, err)
			return report
		}
		report.Evicted++
		level.Info(m.logger).Log("msg", "evicted stale server", "host", record.Host, "network", record.Network, "age", age, "err", err)
		return report
	}

	if _, err := m.upsert(ctx, fresh); err != nil {
		report.Fail(record.Host, fresh.Network, domain.StageStore, err)
		return report
	}
	if fresh.Network != record.Network {
		if err := m.store.Delete(ctx, record.Key()); err != nil {
			report.Fail(record.Host, record.Network, domain.StageStore, err)
			return report
		}
		level.Info(m.logger).Log("msg", "server moved network", "host", record.Host, "from", record.Network, "to", fresh.Network)
	}
	report.Refreshed++

	return report
}

func (m *RegistryManager) snapshot(ctx context.Context) ([]domain.ServerRecord, error) {
	var records []domain.ServerRecord
	err := m.store.Scan(ctx, func(_ string, record domain.ServerRecord) error {
		records = append(records, record)
		return nil
	})
	if err != nil {
		level.Error(m.logger).Log("msg", "store scan failed", "err", err)
		return records, fmt.Errorf("snapshot failed to scan the store, err: %w", err)
	}
	return records, nil
}

func (m *RegistryManager) finish(report *domain.CycleReport) {
	report.Finish(m.clock.Now())
	m.metrics.ObserveCycle(*report)

	logger := level.Info(m.logger)
	if err := report.Err(); err != nil {
		logger = log.With(level.Warn(m.logger), "err", err)
	}
	logger.Log(
		"msg", "cycle finished",
		"task", report.Task,
		"id", report.ID,
		"visited", report.Visited,
		"added", report.Added,
		"known", report.Known,
		"suppressed", report.Suppressed,
		"refreshed", report.Refreshed,
		"stale", report.Stale,
		"evicted", report.Evicted,
		"failures", len(report.Failures),
		"duration", report.Duration(),
	)
}
