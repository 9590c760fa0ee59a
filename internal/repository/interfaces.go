package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/baharkarakas/ong-backend/internal/models"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate")
)

// DuplicateError reports a unique-constraint violation caught at write time.
// Field is "email" or "username".
type DuplicateError struct {
	Field string
}

func (e *DuplicateError) Error() string        { return fmt.Sprintf("duplicate %s", e.Field) }
func (e *DuplicateError) Is(target error) bool { return target == ErrDuplicate }

// Users must enforce username and email uniqueness when writing.
type Users interface {
	Create(ctx context.Context, u models.User) (models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	// FindByEmailOrUsername returns any one user matching either field.
	FindByEmailOrUsername(ctx context.Context, email, username string) (models.User, error)
	List(ctx context.Context) ([]models.User, error)
}

// Resources returns records with Owner populated.
type Resources interface {
	Create(ctx context.Context, r models.Resource) (models.Resource, error)
	GetByID(ctx context.Context, id string) (models.Resource, error)
	List(ctx context.Context) ([]models.Resource, error)
	// Update writes only the fields set in patch, in one statement.
	Update(ctx context.Context, id string, patch models.ResourcePatch) (models.Resource, error)
	Delete(ctx context.Context, id string) error
	// OwnedIDs maps owner id to the ids of the records it owns.
	OwnedIDs(ctx context.Context) (map[string][]string, error)
}

type Repositories struct {
	Users     Users
	Resources Resources
}
