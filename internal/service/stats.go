package service

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/redditor-labs/redditor/internal/biz/repo"
)

// StatsRunner periodically logs the processed counters so operators can
// follow activity without scraping the store
type StatsRunner struct {
	store    repo.StoreRepo
	interval time.Duration

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

// NewStatsRunner creates a new stats runner
func NewStatsRunner(store repo.StoreRepo, interval time.Duration) *StatsRunner {
	if interval <= 0 {
		interval = time.Hour
	}
	return &StatsRunner{
		store:    store,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start starts the stats runner
func (r *StatsRunner) Start() {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return
	}
	r.running = true
	r.wg.Add(1)
	r.mu.Unlock()

	go r.loop()
	log.Infof("stats runner started, interval %v", r.interval)
}

// Stop stops the stats runner. Safe to call from a goroutine other than
// the one that called Start.
func (r *StatsRunner) Stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	r.running = false
	close(r.stopCh)
	r.mu.Unlock()

	r.wg.Wait()
	log.Info("stats runner stopped")
}

func (r *StatsRunner) loop() {
	defer r.wg.Done()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.logCounters()
		case <-r.stopCh:
			return
		}
	}
}

func (r *StatsRunner) logCounters() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	posts, err := r.store.Counter(ctx, "posts_processed")
	if err != nil {
		log.Warnf("failed to read posts counter: %v", err)
		return
	}
	comments, err := r.store.Counter(ctx, "comments_processed")
	if err != nil {
		log.Warnf("failed to read comments counter: %v", err)
		return
	}

	log.WithFields(log.Fields{
		"posts_processed":    posts,
		"comments_processed": comments,
	}).Info("processed totals")
}
