package repository

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/lms-papers-api/internal/models"
)

type seedUser struct {
	user     models.User
	password string
}

// The fixed demo registry. Passwords are hashed at seed time; login compares
// the submitted password against the hash, so matching stays exact and
// case-sensitive.
var seedUsers = []seedUser{
	{
		user: models.User{
			ID:           "1",
			Name:         "Admin User",
			Email:        "admin@example.com",
			Role:         models.RoleAdmin,
			ProfileImage: "https://images.pexels.com/photos/220453/pexels-photo-220453.jpeg",
		},
		password: "admin123",
	},
	{
		user: models.User{
			ID:           "2",
			Name:         "Student One",
			Email:        "student1@example.com",
			Role:         models.RoleStudent,
			ProfileImage: "https://images.pexels.com/photos/1858175/pexels-photo-1858175.jpeg",
		},
		password: "student123",
	},
	{
		user: models.User{
			ID:           "3",
			Name:         "Student Two",
			Email:        "student2@example.com",
			Role:         models.RoleStudent,
			ProfileImage: "https://images.pexels.com/photos/1043471/pexels-photo-1043471.jpeg",
		},
		password: "student123",
	},
}

// UserRegistry is the process-wide set of known credentials. Mutations
// replace the backing slice wholesale so readers always observe a consistent
// snapshot.
type UserRegistry struct {
	mu    sync.RWMutex
	users []models.User
}

// NewUserRegistry seeds the registry with the fixed demo users.
func NewUserRegistry() (*UserRegistry, error) {
	users := make([]models.User, 0, len(seedUsers))
	for _, seed := range seedUsers {
		hash, err := bcrypt.GenerateFromPassword([]byte(seed.password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("seed registry user %s: %w", seed.user.Email, err)
		}
		u := seed.user
		u.PasswordHash = string(hash)
		users = append(users, u)
	}
	return &UserRegistry{users: users}, nil
}

// FindByEmail returns the registry entry with the exact (case-sensitive)
// email, or false when absent.
func (r *UserRegistry) FindByEmail(ctx context.Context, email string) (*models.User, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := u
			return &cp, true
		}
	}
	return nil, false
}

// ExistsByEmail reports whether the exact email is already registered.
func (r *UserRegistry) ExistsByEmail(ctx context.Context, email string) bool {
	_, ok := r.FindByEmail(ctx, email)
	return ok
}

// Add appends a new user, replacing the backing slice.
func (r *UserRegistry) Add(ctx context.Context, user models.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	next := make([]models.User, 0, len(r.users)+1)
	next = append(next, r.users...)
	next = append(next, user)
	r.users = next
}

// Count returns the number of registered users.
func (r *UserRegistry) Count(ctx context.Context) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users)
}
