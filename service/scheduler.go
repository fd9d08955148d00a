package service

import (
	"context"
	"sync"
	"sync/atomic"

	"electrumcrawler/domain"
	"electrumcrawler/helpers"
	"electrumcrawler/interfaces"
	"electrumcrawler/telemetry"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/lightningnetwork/lnd/ticker"
)

// Scheduler drives Crawl and Refresh from two independent tickers.
// A tick that arrives while the previous cycle of the same task is still running is dropped.
type Scheduler struct {
	cycler        interfaces.Cycler
	crawlTicker   ticker.Ticker
	refreshTicker ticker.Ticker
	metrics       *telemetry.Metrics
	logger        log.Logger

	crawlRunning   atomic.Bool
	refreshRunning atomic.Bool

	mu   sync.RWMutex
	last map[domain.Task]domain.CycleReport

	started atomic.Bool
	stopped atomic.Bool
	ctx     context.Context
	cancel  context.CancelFunc
	quit    chan struct{}
	wg      sync.WaitGroup
}

var _ interfaces.StatusProvider = (*Scheduler)(nil)

// NewScheduler creates a stopped Scheduler. Tickers are resumed by Start and stopped by Stop.
func NewScheduler(cycler interfaces.Cycler, crawlTicker, refreshTicker ticker.Ticker, metrics *telemetry.Metrics, logger log.Logger) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cycler:        helpers.NilPanic(cycler, "service.scheduler.go: cycler is required"),
		crawlTicker:   helpers.NilPanic(crawlTicker, "service.scheduler.go: crawlTicker is required"),
		refreshTicker: helpers.NilPanic(refreshTicker, "service.scheduler.go: refreshTicker is required"),
		metrics:       helpers.NilPanic(metrics, "service.scheduler.go: metrics is required"),
		logger:        log.With(logger, "component", "Scheduler"),
		last:          make(map[domain.Task]domain.CycleReport),
		ctx:           ctx,
		cancel:        cancel,
		quit:          make(chan struct{}),
	}
}

// Start resumes both tickers and begins dispatching cycles. Calling it twice has no effect.
func (s *Scheduler) Start() {
	if !s.started.CompareAndSwap(false, true) {
		return
	}

	s.crawlTicker.Resume()
	s.refreshTicker.Resume()

	s.wg.Add(1)
	go s.loop()

	level.Info(s.logger).Log("msg", "scheduler started")
}

// Stop cancels running cycles, stops the tickers and waits for all goroutines.
func (s *Scheduler) Stop() {
	if !s.started.Load() || !s.stopped.CompareAndSwap(false, true) {
		return
	}

	close(s.quit)
	s.cancel()
	s.crawlTicker.Stop()
	s.refreshTicker.Stop()
	s.wg.Wait()

	level.Info(s.logger).Log("msg", "scheduler stopped")
}

func (s *Scheduler) loop() {
	defer s.wg.Done()

	for {
		select {
		case <-s.crawlTicker.Ticks():
			s.spawn(domain.TaskCrawl)
		case <-s.refreshTicker.Ticks():
			s.spawn(domain.TaskRefresh)
		case <-s.quit:
			return
		}
	}
}

func (s *Scheduler) spawn(task domain.Task) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.run(s.ctx, task)
	}()
}

// RunCrawl runs one crawl now. It returns false if a crawl is already running.
func (s *Scheduler) RunCrawl(ctx context.Context) (domain.CycleReport, bool) {
	return s.run(ctx, domain.TaskCrawl)
}

// RunRefresh runs one refresh now. It returns false if a refresh is already running.
func (s *Scheduler) RunRefresh(ctx context.Context) (domain.CycleReport, bool) {
	return s.run(ctx, domain.TaskRefresh)
}

func (s *Scheduler) run(ctx context.Context, task domain.Task) (domain.CycleReport, bool) {
	guard, cycle := &s.crawlRunning, s.cycler.Crawl
	if task == domain.TaskRefresh {
		guard, cycle = &s.refreshRunning, s.cycler.Refresh
	}

	if !guard.CompareAndSwap(false, true) {
		s.metrics.SkipCycle(task)
		level.Warn(s.logger).Log("msg", "previous cycle still running, skipping tick", "task", task)
		return domain.CycleReport{}, false
	}
	defer guard.Store(false)

	report := cycle(ctx)

	s.mu.Lock()
	s.last[task] = report
	s.mu.Unlock()

	return report, true
}

// LastReports returns the last finished crawl and refresh reports, crawl first.
func (s *Scheduler) LastReports() []domain.CycleReport {
	s.mu.RLock()
	defer s.mu.RUnlock()

	reports := make([]domain.CycleReport, 0, len(s.last))
	for _, task := range []domain.Task{domain.TaskCrawl, domain.TaskRefresh} {
		if r, ok := s.last[task]; ok {
			reports = append(reports, r)
		}
	}
	return reports
}
