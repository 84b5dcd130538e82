package memory

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/gestor-tienda/internal/domain"
	"github.com/jhoicas/gestor-tienda/internal/domain/entity"
	"github.com/jhoicas/gestor-tienda/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo guarda usuarios en memoria. El nombre es único (sin distinguir mayúsculas).
type UserRepo struct {
	mu     sync.RWMutex
	m      map[int64]entity.User
	lastID int64
}

// NewUserRepository construye el repositorio vacío.
func NewUserRepository() *UserRepo {
	return &UserRepo{m: make(map[int64]entity.User)}
}

// Create asigna ID y guarda el usuario.
func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.nameTaken(user.Name, 0) {
		return domain.ErrDuplicate
	}
	if user.ID == 0 {
		r.lastID++
		user.ID = r.lastID
	} else {
		if _, ok := r.m[user.ID]; ok {
			return domain.ErrDuplicate
		}
		r.lastID = max(r.lastID, user.ID)
	}
	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now
	r.m[user.ID] = *user
	return nil
}

// GetByID devuelve (nil, nil) si no existe.
func (r *UserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.m[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

// GetByName devuelve (nil, nil) si no existe.
func (r *UserRepo) GetByName(_ context.Context, name string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.m {
		if strings.EqualFold(u.Name, name) {
			return &u, nil
		}
	}
	return nil, nil
}

// List devuelve los usuarios ordenados por ID.
func (r *UserRepo) List(_ context.Context) ([]*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*entity.User, 0, len(r.m))
	for _, u := range r.m {
		list = append(list, &u)
	}
	slices.SortFunc(list, func(a, b *entity.User) int { return cmpID(a.ID, b.ID) })
	return list, nil
}

// Update reemplaza el usuario completo (incluido el hash de la contraseña).
func (r *UserRepo) Update(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.m[user.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if r.nameTaken(user.Name, user.ID) {
		return domain.ErrDuplicate
	}
	user.CreatedAt = cur.CreatedAt
	user.UpdatedAt = time.Now()
	r.m[user.ID] = *user
	return nil
}

// Delete elimina el usuario; ErrNotFound si no existe.
func (r *UserRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.m[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.m, id)
	return nil
}

func (r *UserRepo) nameTaken(name string, exceptID int64) bool {
	for id, u := range r.m {
		if id != exceptID && strings.EqualFold(u.Name, name) {
			return true
		}
	}
	return false
}
