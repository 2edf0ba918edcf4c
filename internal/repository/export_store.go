package repository

import (
	"sync"

	"github.com/noah-isme/lms-papers-api/internal/models"
)

// ExportStore tracks asynchronous export jobs in memory.
type ExportStore struct {
	mu   sync.RWMutex
	jobs map[string]models.ExportJob
}

// NewExportStore builds an empty job store.
func NewExportStore() *ExportStore {
	return &ExportStore{jobs: make(map[string]models.ExportJob)}
}

// Create records a new job.
func (s *ExportStore) Create(job models.ExportJob) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

// Get returns a copy of the job with the given id.
func (s *ExportStore) Get(id string) (models.ExportJob, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	job, ok := s.jobs[id]
	return job, ok
}

// Update replaces the stored job record.
func (s *ExportStore) Update(job models.ExportJob) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.jobs[job.ID]; ok {
		s.jobs[job.ID] = job
	}
}
