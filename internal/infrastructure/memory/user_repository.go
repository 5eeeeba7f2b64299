package memory

import (
	"context"

	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepository)(nil)

// UserRepository implementación en memoria de repository.UserRepository.
type UserRepository struct {
	h handle
}

// Create inserta un usuario. Username duplicado -> ErrDuplicateUser (igual que el índice UNIQUE).
func (r *UserRepository) Create(_ context.Context, u *entity.User) error {
	return r.h.write(OpUserCreate, func(st *state) error {
		for _, existing := range st.users {
			if existing.Username == u.Username {
				return domain.ErrDuplicateUser
			}
		}
		st.users = append(st.users, *u)
		return nil
	})
}

// GetByID obtiene un usuario por ID.
func (r *UserRepository) GetByID(_ context.Context, id string) (*entity.User, error) {
	var out *entity.User
	err := r.h.read(func(st *state) error {
		if u := st.userByID(id); u != nil {
			cp := *u
			out = &cp
		}
		return nil
	})
	return out, err
}

// GetByUsername obtiene un usuario por username exacto.
func (r *UserRepository) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	var out *entity.User
	err := r.h.read(func(st *state) error {
		for _, u := range st.users {
			if u.Username == username {
				cp := u
				out = &cp
				break
			}
		}
		return nil
	})
	return out, err
}

// List devuelve todos los usuarios en orden de alta.
func (r *UserRepository) List(_ context.Context) ([]*entity.User, error) {
	var out []*entity.User
	err := r.h.read(func(st *state) error {
		out = make([]*entity.User, 0, len(st.users))
		for _, u := range st.users {
			cp := u
			out = append(out, &cp)
		}
		return nil
	})
	return out, err
}

// CountByRole cuenta usuarios con el rol dado.
func (r *UserRepository) CountByRole(_ context.Context, role string) (int, error) {
	n := 0
	err := r.h.read(func(st *state) error {
		for _, u := range st.users {
			if u.Role == role {
				n++
			}
		}
		return nil
	})
	return n, err
}
