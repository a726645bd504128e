package pipeline

import (
	"crypto/sha256"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/dgallion1/docoutline/internal/outline"
)

// JobStatus represents the state of an outline job.
type JobStatus string

const (
	StatusQueued      JobStatus = "queued"
	StatusParsing     JobStatus = "parsing"
	StatusClassifying JobStatus = "classifying"
	StatusCompleted   JobStatus = "completed"
	StatusFailed      JobStatus = "failed"
	StatusDupSkipped  JobStatus = "duplicate_skipped"
)

// Done reports whether the job has reached a final state.
func (s JobStatus) Done() bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusDupSkipped
}

// Job tracks the state of a single uploaded document.
type Job struct {
	mu sync.Mutex

	ID    string `json:"job_id"`
	DocID string `json:"doc_id"`

	Status   JobStatus `json:"status"`
	Phase    string    `json:"phase"`
	Filename string    `json:"filename"`
	Title    string    `json:"title"`

	Progress Progress `json:"progress"`

	ContentHash string    `json:"content_hash,omitempty"`
	DuplicateOf string    `json:"duplicate_of,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Internal: not serialized.
	fileData []byte
	result   *outline.Result
	errors   []string
}

// Progress reports what the worker has seen of the document so far.
type Progress struct {
	Pages    int      `json:"pages"`
	Glyphs   int      `json:"glyphs"`
	Headings int      `json:"headings"`
	Errors   []string `json:"errors"`
}

// NewJob creates a queued job for an uploaded file.
func NewJob(id, docID, filename, title string, data []byte) *Job {
	now := time.Now()
	return &Job{
		ID:          id,
		DocID:       docID,
		Status:      StatusQueued,
		Phase:       "queued",
		Filename:    filename,
		Title:       title,
		ContentHash: ContentHashHex(data),
		CreatedAt:   now,
		UpdatedAt:   now,
		fileData:    data,
	}
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

// Delete removes a job and reports whether it existed.
func (s *JobStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.jobs[id]
	delete(s.jobs, id)
	return ok
}

// List returns snapshots of all stored jobs, oldest first.
func (s *JobStore) List() []JobSnapshot {
	s.mu.Lock()
	jobs := make([]*Job, 0, len(s.jobs))
	for _, job := range s.jobs {
		jobs = append(jobs, job)
	}
	s.mu.Unlock()

	snaps := make([]JobSnapshot, 0, len(jobs))
	for _, job := range jobs {
		snaps = append(snaps, job.Snapshot())
	}
	sort.Slice(snaps, func(i, j int) bool {
		if !snaps[i].CreatedAt.Equal(snaps[j].CreatedAt) {
			return snaps[i].CreatedAt.Before(snaps[j].CreatedAt)
		}
		return snaps[i].ID < snaps[j].ID
	})
	return snaps
}

// Len returns the number of stored jobs.
func (s *JobStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jobs)
}

// FindCompleted returns a completed job, other than excludeID, whose upload
// had the given content hash.
func (s *JobStore) FindCompleted(hash, excludeID string) *Job {
	s.mu.Lock()
	jobs := make([]*Job, 0, len(s.jobs))
	for id, job := range s.jobs {
		if id != excludeID {
			jobs = append(jobs, job)
		}
	}
	s.mu.Unlock()

	for _, job := range jobs {
		job.mu.Lock()
		match := job.ContentHash == hash && job.Status == StatusCompleted && job.result != nil
		job.mu.Unlock()
		if match {
			return job
		}
	}
	return nil
}

// Cleanup removes expired jobs.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		job.mu.Lock()
		updated := job.UpdatedAt
		job.mu.Unlock()
		if now.Sub(updated) > s.ttl {
			delete(s.jobs, id)
		}
	}
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// AddError records an error.
func (j *Job) AddError(err string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.errors = append(j.errors, err)
	j.Progress.Errors = j.errors
	j.UpdatedAt = time.Now()
}

// SetParsed records the page and glyph counts of the parsed document.
func (j *Job) SetParsed(pages, glyphs int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.Pages = pages
	j.Progress.Glyphs = glyphs
	j.UpdatedAt = time.Now()
}

// Complete stores the outline and marks the job completed. duplicateOf is
// the ID of the job the result was copied from, if any.
func (j *Job) Complete(res *outline.Result, duplicateOf string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.result = res
	j.Progress.Headings = len(res.Outline)
	j.fileData = nil
	j.Status = StatusCompleted
	j.Phase = "done"
	if duplicateOf != "" {
		j.DuplicateOf = duplicateOf
		j.Status = StatusDupSkipped
		j.Phase = "dedup"
	}
	j.UpdatedAt = time.Now()
}

// Result returns the finished outline, or nil while the job is running or
// after it failed.
func (j *Job) Result() *outline.Result {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.result
}

// FileData returns the raw file bytes.
func (j *Job) FileData() []byte {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.fileData
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID          string    `json:"job_id"`
	DocID       string    `json:"doc_id"`
	Status      JobStatus `json:"status"`
	Phase       string    `json:"phase"`
	Filename    string    `json:"filename"`
	Title       string    `json:"title"`
	Progress    Progress  `json:"progress"`
	DuplicateOf string    `json:"duplicate_of,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	errs := make([]string, len(j.errors))
	copy(errs, j.errors)
	return JobSnapshot{
		ID:       j.ID,
		DocID:    j.DocID,
		Status:   j.Status,
		Phase:    j.Phase,
		Filename: j.Filename,
		Title:    j.Title,
		Progress: Progress{
			Pages:    j.Progress.Pages,
			Glyphs:   j.Progress.Glyphs,
			Headings: j.Progress.Headings,
			Errors:   errs,
		},
		DuplicateOf: j.DuplicateOf,
		CreatedAt:   j.CreatedAt,
		UpdatedAt:   j.UpdatedAt,
	}
}

// ContentHashHex computes SHA-256 of content and returns hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
