package repository

import (
	"context"
	"time"

	"github.com/01moynul/containerhub-golang/internal/models"
)

const userColumns = `id, email, password_hash, name, role, active, created_at`

// CreateUser inserts u and fills in its ID and CreatedAt.
// Returns ErrDuplicate when the email is taken.
func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	u.CreatedAt = time.Now().UTC()

	id, err := s.insert(ctx, `
		INSERT INTO users (email, password_hash, name, role, active, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		u.Email, u.PasswordHash, u.Name, u.Role, u.Active, u.CreatedAt)
	if err != nil {
		return err
	}
	u.ID = id
	return nil
}

func (s *Store) GetUser(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	if err := s.get(ctx, &u, `SELECT `+userColumns+` FROM users WHERE id = ?`, id); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.get(ctx, &u, `SELECT `+userColumns+` FROM users WHERE email = ?`, email); err != nil {
		return nil, err
	}
	return &u, nil
}

// ListActiveImporters returns importers a supplier may invite, by name.
func (s *Store) ListActiveImporters(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	err := s.sel(ctx, &users, `
		SELECT `+userColumns+`
		FROM users
		WHERE role = ? AND active = ?
		ORDER BY name ASC`,
		models.RoleImporter, true)
	return users, err
}
