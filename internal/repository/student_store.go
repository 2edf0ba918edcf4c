package repository

import (
	"strings"
	"sync"

	"github.com/noah-isme/lms-papers-api/internal/models"
)

var seedStudents = []models.Student{
	{
		ID:             "1",
		Name:           "John Doe",
		Email:          "john.doe@example.com",
		Grade:          models.Grade10,
		EnrollmentDate: "2024-01-15",
		ProfileImage:   "https://images.pexels.com/photos/1681010/pexels-photo-1681010.jpeg",
		Status:         models.StudentActive,
	},
	{
		ID:             "2",
		Name:           "Jane Smith",
		Email:          "jane.smith@example.com",
		Grade:          models.Grade11,
		EnrollmentDate: "2024-02-20",
		ProfileImage:   "https://images.pexels.com/photos/1858175/pexels-photo-1858175.jpeg",
		Status:         models.StudentActive,
	},
	{
		ID:             "3",
		Name:           "Michael Johnson",
		Email:          "michael.j@example.com",
		Grade:          models.Grade9,
		EnrollmentDate: "2024-03-05",
		ProfileImage:   "https://images.pexels.com/photos/220453/pexels-photo-220453.jpeg",
		Status:         models.StudentActive,
	},
	{
		ID:             "4",
		Name:           "Emily Wilson",
		Email:          "emily.w@example.com",
		Grade:          models.Grade12,
		EnrollmentDate: "2024-01-30",
		ProfileImage:   "https://images.pexels.com/photos/1382731/pexels-photo-1382731.jpeg",
		Status:         models.StudentActive,
	},
	{
		ID:             "5",
		Name:           "David Lee",
		Email:          "david.lee@example.com",
		Grade:          models.Grade10,
		EnrollmentDate: "2024-02-10",
		ProfileImage:   "https://images.pexels.com/photos/1043471/pexels-photo-1043471.jpeg",
		Status:         models.StudentActive,
	},
}

// StudentStore owns the in-memory student roster shown on the admin
// dashboard. Mutations replace the backing slice wholesale.
type StudentStore struct {
	mu       sync.RWMutex
	students []models.Student
}

// NewStudentStore seeds the roster with the fixed demo students.
func NewStudentStore() *StudentStore {
	students := make([]models.Student, len(seedStudents))
	copy(students, seedStudents)
	return &StudentStore{students: students}
}

// List returns roster entries matching the filter, in insertion order.
func (s *StudentStore) List(filter models.StudentFilter) []models.Student {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]models.Student, 0, len(s.students))
	search := strings.ToLower(filter.Search)
	for _, st := range s.students {
		if filter.Grade != "" && st.Grade != filter.Grade {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(st.Name), search) &&
			!strings.Contains(strings.ToLower(st.Email), search) {
			continue
		}
		result = append(result, st)
	}
	return result
}

// FindByID returns the roster entry with the given id.
func (s *StudentStore) FindByID(id string) (models.Student, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, st := range s.students {
		if st.ID == id {
			return st, true
		}
	}
	return models.Student{}, false
}

// Add appends a new roster entry.
func (s *StudentStore) Add(student models.Student) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]models.Student, 0, len(s.students)+1)
	next = append(next, s.students...)
	next = append(next, student)
	s.students = next
}

// Update replaces the entry with a matching id. Returns false when absent.
func (s *StudentStore) Update(student models.Student) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]models.Student, len(s.students))
	found := false
	for i, st := range s.students {
		if st.ID == student.ID {
			next[i] = student
			found = true
			continue
		}
		next[i] = st
	}
	if found {
		s.students = next
	}
	return found
}

// Delete removes the entry with the given id. Absent ids are a no-op.
func (s *StudentStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]models.Student, 0, len(s.students))
	for _, st := range s.students {
		if st.ID != id {
			next = append(next, st)
		}
	}
	s.students = next
}
