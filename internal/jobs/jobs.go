package jobs

import (
	"context"
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/rcalloway/notesynth/internal/synth"
)

// Status represents the state of a report job.
type Status string

const (
	StatusQueued    Status = "queued"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusPartial   Status = "partial"
	StatusFailed    Status = "failed"
	StatusCancelled Status = "cancelled"
)

// Job tracks one asynchronous report synthesis run.
type Job struct {
	mu sync.Mutex

	ID          string
	NoteID      string
	Instruction string

	status   Status
	stage    synth.Stage
	message  string
	progress int
	document string
	errText  string

	CreatedAt time.Time
	updatedAt time.Time

	referenceText string
	cancel        context.CancelFunc
}

// NewJob builds a queued job. The reference text is held internally and never
// serialized back to callers.
func NewJob(noteID, instruction, referenceText string) *Job {
	now := time.Now()
	return &Job{
		ID:            newJobID(instruction, now),
		NoteID:        noteID,
		Instruction:   instruction,
		status:        StatusQueued,
		CreatedAt:     now,
		updatedAt:     now,
		referenceText: referenceText,
	}
}

func (j *Job) ReferenceText() string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.referenceText
}

func (j *Job) SetStatus(status Status) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.status = status
	j.updatedAt = time.Now()
}

// RecordProgress mirrors a pipeline progress event into job state.
func (j *Job) RecordProgress(ev synth.ProgressEvent) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.stage = ev.Stage
	j.message = ev.Message
	if ev.Progress > j.progress {
		j.progress = ev.Progress
	}
	j.updatedAt = time.Now()
}

func (j *Job) SetDocument(doc string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.document = doc
	j.updatedAt = time.Now()
}

func (j *Job) SetError(err error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.errText = err.Error()
	j.updatedAt = time.Now()
}

func (j *Job) setCancel(cancel context.CancelFunc) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.cancel = cancel
}

// Cancel aborts a running job. Safe to call at any point in the lifecycle.
func (j *Job) Cancel() {
	j.mu.Lock()
	cancel := j.cancel
	j.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Snapshot is a read-only, JSON-safe copy of job state.
type Snapshot struct {
	ID       string      `json:"job_id"`
	NoteID   string      `json:"note_id,omitempty"`
	Status   Status      `json:"status"`
	Stage    synth.Stage `json:"stage,omitempty"`
	Message  string      `json:"message,omitempty"`
	Progress int         `json:"progress"`
	Document string      `json:"document,omitempty"`
	Error    string      `json:"error,omitempty"`
}

func (j *Job) Snapshot() Snapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	return Snapshot{
		ID:       j.ID,
		NoteID:   j.NoteID,
		Status:   j.status,
		Stage:    j.stage,
		Message:  j.message,
		Progress: j.progress,
		Document: j.document,
		Error:    j.errText,
	}
}

// Store is a thread-safe in-memory job registry with TTL eviction.
type Store struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

func (s *Store) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *Store) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

// Cleanup removes jobs not updated within the TTL.
func (s *Store) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		job.mu.Lock()
		expired := now.Sub(job.updatedAt) > s.ttl
		job.mu.Unlock()
		if expired {
			delete(s.jobs, id)
		}
	}
}

func newJobID(instruction string, now time.Time) string {
	h := sha256.Sum256(fmt.Appendf(nil, "%s-%d", instruction, now.UnixNano()))
	return fmt.Sprintf("%x", h[:])[:20]
}
