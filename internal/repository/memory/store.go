// Package memory keeps users and resources in process memory. It backs
// STORE_DRIVER=memory and the service and router tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/baharkarakas/ong-backend/internal/models"
	"github.com/baharkarakas/ong-backend/internal/repository"
)

type store struct {
	mu sync.RWMutex

	users     map[string]models.User
	userOrder []string
	byEmail   map[string]string
	byName    map[string]string

	resources     map[string]models.Resource
	resourceOrder []string

	now func() time.Time
}

func NewRepositories() repository.Repositories {
	s := &store{
		users:     map[string]models.User{},
		byEmail:   map[string]string{},
		byName:    map[string]string{},
		resources: map[string]models.Resource{},
		now:       func() time.Time { return time.Now().UTC() },
	}
	return repository.Repositories{
		Users:     &users{s},
		Resources: &resources{s},
	}
}

type users struct{ s *store }

// Create checks and inserts under one lock so two writers cannot both claim an email.
func (u *users) Create(_ context.Context, in models.User) (models.User, error) {
	s := u.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byEmail[in.Email]; taken {
		return models.User{}, &repository.DuplicateError{Field: "email"}
	}
	if _, taken := s.byName[in.Username]; taken {
		return models.User{}, &repository.DuplicateError{Field: "username"}
	}
	if in.ID == "" {
		in.ID = uuid.NewString()
	}
	in.CreatedAt = s.now()

	s.users[in.ID] = in
	s.userOrder = append(s.userOrder, in.ID)
	s.byEmail[in.Email] = in.ID
	s.byName[in.Username] = in.ID
	return in, nil
}

func (u *users) GetByID(_ context.Context, id string) (models.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()
	usr, ok := u.s.users[id]
	if !ok {
		return models.User{}, repository.ErrNotFound
	}
	return usr, nil
}

func (u *users) GetByEmail(_ context.Context, email string) (models.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()
	id, ok := u.s.byEmail[email]
	if !ok {
		return models.User{}, repository.ErrNotFound
	}
	return u.s.users[id], nil
}

func (u *users) FindByEmailOrUsername(_ context.Context, email, username string) (models.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()
	if id, ok := u.s.byEmail[email]; ok {
		return u.s.users[id], nil
	}
	if id, ok := u.s.byName[username]; ok {
		return u.s.users[id], nil
	}
	return models.User{}, repository.ErrNotFound
}

func (u *users) List(_ context.Context) ([]models.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()
	out := make([]models.User, 0, len(u.s.userOrder))
	for _, id := range u.s.userOrder {
		out = append(out, u.s.users[id])
	}
	return out, nil
}

type resources struct{ s *store }

func (r *resources) Create(_ context.Context, in models.Resource) (models.Resource, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	owner, ok := s.users[in.Owner.ID]
	if !ok {
		return models.Resource{}, repository.ErrNotFound
	}
	if in.ID == "" {
		in.ID = uuid.NewString()
	}
	now := s.now()
	in.CreatedAt, in.UpdatedAt = now, now
	in.Owner = owner

	s.resources[in.ID] = in
	s.resourceOrder = append(s.resourceOrder, in.ID)
	return in, nil
}

func (r *resources) GetByID(_ context.Context, id string) (models.Resource, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.get(id)
}

func (r *resources) List(_ context.Context) ([]models.Resource, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]models.Resource, 0, len(r.s.resourceOrder))
	for _, id := range r.s.resourceOrder {
		res, _ := r.s.get(id)
		out = append(out, res)
	}
	return out, nil
}

func (r *resources) Update(_ context.Context, id string, patch models.ResourcePatch) (models.Resource, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.resources[id]
	if !ok {
		return models.Resource{}, repository.ErrNotFound
	}
	patch.Apply(&cur)
	cur.UpdatedAt = s.now()
	s.resources[id] = cur
	return s.get(id)
}

func (r *resources) Delete(_ context.Context, id string) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.resources[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.resources, id)
	for i, rid := range s.resourceOrder {
		if rid == id {
			s.resourceOrder = append(s.resourceOrder[:i], s.resourceOrder[i+1:]...)
			break
		}
	}
	return nil
}

func (r *resources) OwnedIDs(_ context.Context) (map[string][]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := map[string][]string{}
	for _, id := range r.s.resourceOrder {
		owner := r.s.resources[id].Owner.ID
		out[owner] = append(out[owner], id)
	}
	return out, nil
}

// get refreshes the owner snapshot. Callers hold mu.
func (s *store) get(id string) (models.Resource, error) {
	res, ok := s.resources[id]
	if !ok {
		return models.Resource{}, repository.ErrNotFound
	}
	if owner, ok := s.users[res.Owner.ID]; ok {
		res.Owner = owner
	}
	return res, nil
}
