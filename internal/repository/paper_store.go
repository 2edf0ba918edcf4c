package repository

import (
	"strings"
	"sync"

	"github.com/noah-isme/lms-papers-api/internal/models"
)

var seedPapers = []models.Paper{
	{
		ID:           "1",
		Title:        "Mathematics Grade 10 Past Paper 2024",
		Description:  "Final examination past paper for Grade 10 Mathematics from 2024",
		Category:     models.CategoryPastPaper,
		Subject:      models.SubjectMathematics,
		Grade:        models.Grade10,
		FileURL:      "/papers/math_g10_2024.pdf",
		ThumbnailURL: "https://images.pexels.com/photos/6238297/pexels-photo-6238297.jpeg",
		UploadDate:   "2024-05-15",
		UploadedBy:   "Admin User",
		Downloads:    45,
	},
	{
		ID:           "2",
		Title:        "Physics Model Paper for Grade 12",
		Description:  "Comprehensive model paper for Grade 12 Physics final examination preparation",
		Category:     models.CategoryModelPaper,
		Subject:      models.SubjectPhysics,
		Grade:        models.Grade12,
		FileURL:      "/papers/physics_g12_model.pdf",
		ThumbnailURL: "https://images.pexels.com/photos/2698519/pexels-photo-2698519.jpeg",
		UploadDate:   "2024-04-20",
		UploadedBy:   "Admin User",
		Downloads:    67,
	},
	{
		ID:           "3",
		Title:        "English Literature Past Paper 2023",
		Description:  "Past paper for Grade 11 English Literature from 2023 finals",
		Category:     models.CategoryPastPaper,
		Subject:      models.SubjectEnglish,
		Grade:        models.Grade11,
		FileURL:      "/papers/english_g11_2023.pdf",
		ThumbnailURL: "https://images.pexels.com/photos/1370296/pexels-photo-1370296.jpeg",
		UploadDate:   "2024-03-10",
		UploadedBy:   "Admin User",
		Downloads:    32,
	},
	{
		ID:           "4",
		Title:        "Chemistry Model Paper Grade 10",
		Description:  "Model paper for Grade 10 Chemistry with answers and explanations",
		Category:     models.CategoryModelPaper,
		Subject:      models.SubjectChemistry,
		Grade:        models.Grade10,
		FileURL:      "/papers/chemistry_g10_model.pdf",
		ThumbnailURL: "https://images.pexels.com/photos/2280549/pexels-photo-2280549.jpeg",
		UploadDate:   "2024-05-02",
		UploadedBy:   "Admin User",
		Downloads:    28,
	},
	{
		ID:           "5",
		Title:        "Biology Past Paper Grade 12 2024",
		Description:  "Past examination paper for Biology Grade 12 from 2024 session",
		Category:     models.CategoryPastPaper,
		Subject:      models.SubjectBiology,
		Grade:        models.Grade12,
		FileURL:      "/papers/biology_g12_2024.pdf",
		ThumbnailURL: "https://images.pexels.com/photos/356040/pexels-photo-356040.jpeg",
		UploadDate:   "2024-06-01",
		UploadedBy:   "Admin User",
		Downloads:    56,
	},
	{
		ID:           "6",
		Title:        "History Model Paper Grade 11",
		Description:  "Comprehensive model paper for History Grade 11 final examinations",
		Category:     models.CategoryModelPaper,
		Subject:      models.SubjectHistory,
		Grade:        models.Grade11,
		FileURL:      "/papers/history_g11_model.pdf",
		ThumbnailURL: "https://images.pexels.com/photos/2774556/pexels-photo-2774556.jpeg",
		UploadDate:   "2024-04-15",
		UploadedBy:   "Admin User",
		Downloads:    19,
	},
}

// PaperStore owns the full catalog and its derived filtered view. Mutations
// replace the backing slices wholesale so readers always see a consistent
// snapshot. Insertion order is newest-first.
type PaperStore struct {
	mu       sync.RWMutex
	papers   []models.Paper
	filtered []models.Paper
}

// NewPaperStore seeds the catalog; the filtered view starts as the full set.
func NewPaperStore() *PaperStore {
	papers := make([]models.Paper, len(seedPapers))
	copy(papers, seedPapers)
	filtered := make([]models.Paper, len(papers))
	copy(filtered, papers)
	return &PaperStore{papers: papers, filtered: filtered}
}

// Papers returns a snapshot of the full collection.
func (s *PaperStore) Papers() []models.Paper {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Paper, len(s.papers))
	copy(out, s.papers)
	return out
}

// Filtered returns a snapshot of the current filtered view.
func (s *PaperStore) Filtered() []models.Paper {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Paper, len(s.filtered))
	copy(out, s.filtered)
	return out
}

// FindByID returns the catalog entry with the given id.
func (s *PaperStore) FindByID(id string) (models.Paper, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.papers {
		if p.ID == id {
			return p, true
		}
	}
	return models.Paper{}, false
}

// Add prepends the paper to the full collection and, unconditionally, to the
// filtered view. New uploads surface even when they would not match the
// active criteria; dashboards rely on seeing their own upload immediately.
func (s *PaperStore) Add(paper models.Paper) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.papers = prepend(s.papers, paper)
	s.filtered = prepend(s.filtered, paper)
}

// Delete removes the entry from both collections. Absent ids are a no-op.
func (s *PaperStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.papers = without(s.papers, id)
	s.filtered = without(s.filtered, id)
}

// ApplyFilter recomputes the filtered view from the full collection and
// returns a snapshot of the result. Omitted criteria match everything; the
// supplied ones combine with logical AND.
func (s *PaperStore) ApplyFilter(filter models.PaperFilter) []models.Paper {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]models.Paper, 0, len(s.papers))
	search := strings.ToLower(filter.Search)
	for _, p := range s.papers {
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if filter.Subject != "" && p.Subject != filter.Subject {
			continue
		}
		if filter.Grade != "" && p.Grade != filter.Grade {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Title), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) {
			continue
		}
		result = append(result, p)
	}

	s.filtered = result

	out := make([]models.Paper, len(result))
	copy(out, result)
	return out
}

// IncrementDownloads bumps the counter by one in both collections, leaving
// every other field untouched. Absent ids are a no-op.
func (s *PaperStore) IncrementDownloads(id string) (models.Paper, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var updated models.Paper
	found := false
	s.papers = bump(s.papers, id, &updated, &found)
	s.filtered = bump(s.filtered, id, &updated, &found)
	return updated, found
}

func prepend(papers []models.Paper, paper models.Paper) []models.Paper {
	next := make([]models.Paper, 0, len(papers)+1)
	next = append(next, paper)
	next = append(next, papers...)
	return next
}

func without(papers []models.Paper, id string) []models.Paper {
	next := make([]models.Paper, 0, len(papers))
	for _, p := range papers {
		if p.ID != id {
			next = append(next, p)
		}
	}
	return next
}

func bump(papers []models.Paper, id string, updated *models.Paper, found *bool) []models.Paper {
	next := make([]models.Paper, 0, len(papers))
	for _, p := range papers {
		if p.ID == id {
			p.Downloads++
			*updated = p
			*found = true
		}
		next = append(next, p)
	}
	return next
}
