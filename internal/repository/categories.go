package repository

import (
	"context"
	"time"

	"github.com/01moynul/containerhub-golang/internal/models"
)

// CreateCategory returns ErrDuplicate when the name exists.
func (s *Store) CreateCategory(ctx context.Context, c *models.Category) error {
	c.CreatedAt = time.Now().UTC()

	id, err := s.insert(ctx, `INSERT INTO categories (name, slug, created_at) VALUES (?, ?, ?)`,
		c.Name, c.Slug, c.CreatedAt)
	if err != nil {
		return err
	}
	c.ID = id
	return nil
}

func (s *Store) GetCategory(ctx context.Context, id int64) (*models.Category, error) {
	var c models.Category
	if err := s.get(ctx, &c, `SELECT id, name, slug, created_at FROM categories WHERE id = ?`, id); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Store) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories := []models.Category{}
	err := s.sel(ctx, &categories, `SELECT id, name, slug, created_at FROM categories ORDER BY name ASC`)
	return categories, err
}

// DeleteCategory returns ErrForeignKey while products still reference it.
func (s *Store) DeleteCategory(ctx context.Context, id int64) error {
	return s.execOne(ctx, `DELETE FROM categories WHERE id = ?`, id)
}
