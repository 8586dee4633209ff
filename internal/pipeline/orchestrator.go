package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dgallion1/outliner/internal/config"
	"github.com/dgallion1/outliner/internal/outline"
	"github.com/dgallion1/outliner/internal/parser"
	"github.com/dgallion1/outliner/internal/sink"
)

// Orchestrator runs queued jobs on a fixed pool of workers.
type Orchestrator struct {
	jobs   *JobStore
	queue  chan *Job
	store  sink.Store
	stats  *LatencyStats
	worker *Worker
	log    *slog.Logger
	cfg    config.Config

	optMu   sync.RWMutex
	options outline.Options

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewOrchestrator creates the pipeline. Call Start to launch workers.
func NewOrchestrator(cfg config.Config, store sink.Store, log *slog.Logger) *Orchestrator {
	if store == nil {
		store = sink.NopStore{}
	}
	o := &Orchestrator{
		jobs:    NewJobStore(cfg.JobTTL),
		queue:   make(chan *Job, cfg.MaxQueueSize),
		store:   store,
		stats:   NewLatencyStats(time.Hour),
		log:     log,
		cfg:     cfg,
		options: cfg.Outline,
	}
	o.worker = NewWorker(store, o.stats, log, WorkerConfig{
		DocumentTimeout: cfg.DocumentTimeout,
		Parser:          parser.Options{MutoolFallback: cfg.PDFFallbackMutool},
	}, o.Options)
	return o
}

// Start launches worker goroutines.
func (o *Orchestrator) Start(ctx context.Context) {
	workerCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	for range o.cfg.WorkerCount {
		o.wg.Add(1)
		go func() {
			defer o.wg.Done()
			for {
				select {
				case <-workerCtx.Done():
					return
				case job, ok := <-o.queue:
					if !ok {
						return
					}
					o.worker.Process(workerCtx, job)
				}
			}
		}()
	}

	// Start job store cleanup.
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-workerCtx.Done():
				return
			case <-ticker.C:
				o.jobs.Cleanup()
			}
		}
	}()
}

// Stop gracefully shuts down the pipeline.
func (o *Orchestrator) Stop() {
	if o.cancel != nil {
		o.cancel()
	}
	close(o.queue)
	o.wg.Wait()
}

// Submit queues a new job for processing.
func (o *Orchestrator) Submit(job *Job) error {
	o.jobs.Put(job)
	select {
	case o.queue <- job:
		return nil
	default:
		job.AddError("queue full")
		job.SetStatus(StatusFailed, "queue_full")
		return fmt.Errorf("job queue is full (%d)", o.cfg.MaxQueueSize)
	}
}

// GetJob returns a job by ID.
func (o *Orchestrator) GetJob(id string) *Job {
	return o.jobs.Get(id)
}

// QueueDepth returns current queue depth.
func (o *Orchestrator) QueueDepth() int {
	return len(o.queue)
}

// Worker returns the worker used for synchronous requests.
func (o *Orchestrator) Worker() *Worker {
	return o.worker
}

// Store returns the result sink.
func (o *Orchestrator) Store() sink.Store {
	return o.store
}

// Stats returns the rolling latency snapshot.
func (o *Orchestrator) Stats() StatsSnapshot {
	return o.stats.Snapshot()
}

// Options returns the outline tuning applied to the next document.
func (o *Orchestrator) Options() outline.Options {
	o.optMu.RLock()
	defer o.optMu.RUnlock()
	return o.options
}

// SetOptions swaps the outline tuning. Documents already being processed
// keep the options they started with.
func (o *Orchestrator) SetOptions(opts outline.Options) {
	o.optMu.Lock()
	o.options = opts
	o.optMu.Unlock()
	o.log.Info("outline options updated",
		"max_levels", opts.MaxLevels,
		"title_policy", opts.TitlePolicy,
		"size_weight", opts.SizeWeight,
	)
}
