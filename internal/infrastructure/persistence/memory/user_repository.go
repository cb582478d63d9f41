// Package memory holds process-local repositories used when no database
// is configured.
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"recruitai/internal/domain/user"
)

type UserRepository struct {
	mu       sync.RWMutex
	users    map[uuid.UUID]user.User
	byEmail  map[string]uuid.UUID
	profiles map[uuid.UUID]user.Profile
	now      func() time.Time
}

func NewUserRepository(now func() time.Time) *UserRepository {
	if now == nil {
		now = time.Now
	}
	return &UserRepository{
		users:    make(map[uuid.UUID]user.User),
		byEmail:  make(map[string]uuid.UUID),
		profiles: make(map[uuid.UUID]user.Profile),
		now:      now,
	}
}

func (r *UserRepository) CreateUser(_ context.Context, u user.User) error {
	email := strings.ToLower(u.Email)
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[email]; ok {
		return user.ErrEmailTaken
	}
	now := r.now().UTC()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = now
	}
	r.users[u.ID] = u
	r.byEmail[email] = u.ID
	return nil
}

func (r *UserRepository) GetUserByID(_ context.Context, id uuid.UUID) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (r *UserRepository) GetUserByEmail(_ context.Context, email string) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return r.users[id], nil
}

func (r *UserRepository) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byEmail[strings.ToLower(email)]
	return ok, nil
}

func (r *UserRepository) GetProfile(_ context.Context, id uuid.UUID) (user.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.profiles[id]
	if !ok {
		return user.Profile{}, user.ErrNotFound
	}
	return p, nil
}

func (r *UserRepository) CreateProfileIfAbsent(_ context.Context, p user.Profile) (user.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.profiles[p.ID]; ok {
		return existing, nil
	}
	now := r.now().UTC()
	p.CreatedAt, p.UpdatedAt = now, now
	r.profiles[p.ID] = p
	return p, nil
}

func (r *UserRepository) UpdateProfile(_ context.Context, id uuid.UUID, patch user.ProfilePatch) (user.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[id]
	if !ok {
		return user.Profile{}, user.ErrNotFound
	}
	if patch.FullName != nil {
		p.FullName = *patch.FullName
	}
	if patch.Company != nil {
		p.Company = *patch.Company
	}
	p.UpdatedAt = r.now().UTC()
	r.profiles[id] = p
	return p, nil
}

var _ user.Repository = (*UserRepository)(nil)
