package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rcalloway/notesynth/internal/notedoc"
	"github.com/rcalloway/notesynth/internal/synth"
)

// Runner owns the job queue and the worker goroutines that execute report
// synthesis runs.
type Runner struct {
	store    *Store
	queue    chan *Job
	pipeline *synth.Pipeline
	sink     *notedoc.Client
	log      *slog.Logger
	workers  int

	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

func NewRunner(pipeline *synth.Pipeline, sink *notedoc.Client, log *slog.Logger, workers, queueSize int, jobTTL time.Duration) *Runner {
	if workers <= 0 {
		workers = 2
	}
	if queueSize <= 0 {
		queueSize = 50
	}
	return &Runner{
		store:    NewStore(jobTTL),
		queue:    make(chan *Job, queueSize),
		pipeline: pipeline,
		sink:     sink,
		log:      log,
		workers:  workers,
	}
}

// Start launches worker goroutines and the store cleanup loop.
func (r *Runner) Start(ctx context.Context) {
	workerCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	for i := 0; i < r.workers; i++ {
		r.wg.Add(1)
		go func() {
			defer r.wg.Done()
			for {
				select {
				case <-workerCtx.Done():
					return
				case job, ok := <-r.queue:
					if !ok {
						return
					}
					r.process(workerCtx, job)
				}
			}
		}()
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-workerCtx.Done():
				return
			case <-ticker.C:
				r.store.Cleanup()
			}
		}
	}()
}

// Stop gracefully shuts down the runner. Safe to call more than once;
// submissions racing a shutdown are rejected rather than sent to the closed
// queue.
func (r *Runner) Stop() {
	if r.cancel != nil {
		r.cancel()
	}
	r.mu.Lock()
	if !r.closed {
		r.closed = true
		close(r.queue)
	}
	r.mu.Unlock()
	r.wg.Wait()
}

// Submit queues a job for processing.
func (r *Runner) Submit(job *Job) error {
	r.store.Put(job)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		err := fmt.Errorf("runner is shutting down")
		job.SetError(err)
		job.SetStatus(StatusFailed)
		return err
	}
	select {
	case r.queue <- job:
		return nil
	default:
		err := fmt.Errorf("job queue is full (%d)", cap(r.queue))
		job.SetError(err)
		job.SetStatus(StatusFailed)
		return err
	}
}

// Get returns a job by ID, or nil.
func (r *Runner) Get(id string) *Job {
	return r.store.Get(id)
}

// QueueDepth returns the current queue depth.
func (r *Runner) QueueDepth() int {
	return len(r.queue)
}

// process runs the synthesis pipeline for one job and, on success, pushes the
// assembled document to the note sink.
func (r *Runner) process(ctx context.Context, job *Job) {
	log := r.log.With("job_id", job.ID, "note_id", job.NoteID)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	job.setCancel(cancel)
	job.SetStatus(StatusRunning)

	doc, err := r.pipeline.Run(runCtx, job.Instruction, job.ReferenceText(), job.RecordProgress)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			log.Info("report run cancelled")
			job.SetStatus(StatusCancelled)
			return
		}
		log.Error("report run failed", "error", err)
		job.SetError(err)
		job.SetStatus(StatusFailed)
		return
	}

	job.SetDocument(doc)

	if r.sink != nil && job.NoteID != "" {
		// Sink pushes use the parent context: a cancelled job should not
		// leave a half-appended note, but a finished document may still be
		// delivered after the per-job cancel window has closed.
		if err := r.sink.AppendDocument(ctx, job.NoteID, doc); err != nil {
			log.Error("note append failed", "error", err)
			job.SetError(fmt.Errorf("append to note: %w", err))
			job.SetStatus(StatusPartial)
			return
		}
	}

	log.Info("report run completed")
	job.SetStatus(StatusCompleted)
}
