package repository

import (
	"context"
	"time"

	"github.com/01moynul/containerhub-golang/internal/models"
	"github.com/jmoiron/sqlx"
)

const productSelect = `
	SELECT
		p.id, p.supplier_id, p.category_id, p.code, p.name, p.description, p.image_url,
		p.price, p.weight, p.length, p.width, p.height, p.created_at, p.updated_at,
		c.name AS category_name, u.name AS supplier_name, u.email AS supplier_email
	FROM products p
	LEFT JOIN categories c ON c.id = p.category_id
	LEFT JOIN users u ON u.id = p.supplier_id`

// CreateProduct returns ErrDuplicate when the supplier already uses the
// code and ErrForeignKey when the category does not exist.
func (s *Store) CreateProduct(ctx context.Context, p *models.Product) error {
	now := time.Now().UTC()
	p.CreatedAt, p.UpdatedAt = now, now

	id, err := s.insert(ctx, `
		INSERT INTO products
		(supplier_id, category_id, code, name, description, image_url, price, weight, length, width, height, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.SupplierID, p.CategoryID, p.Code, p.Name, p.Description, p.ImageURL,
		p.Price, p.Weight, p.Length, p.Width, p.Height, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return err
	}
	p.ID = id
	return nil
}

func (s *Store) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	var p models.Product
	if err := s.get(ctx, &p, productSelect+` WHERE p.id = ?`, id); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateProduct writes every editable column of p. The row must belong
// to p.SupplierID, otherwise ErrNotFound.
func (s *Store) UpdateProduct(ctx context.Context, p *models.Product) error {
	p.UpdatedAt = time.Now().UTC()

	return s.execOne(ctx, `
		UPDATE products
		SET category_id = ?, code = ?, name = ?, description = ?, image_url = ?,
			price = ?, weight = ?, length = ?, width = ?, height = ?, updated_at = ?
		WHERE id = ? AND supplier_id = ?`,
		p.CategoryID, p.Code, p.Name, p.Description, p.ImageURL,
		p.Price, p.Weight, p.Length, p.Width, p.Height, p.UpdatedAt,
		p.ID, p.SupplierID)
}

// DeleteProduct removes a supplier's product. Container items that point
// at it are left in place.
func (s *Store) DeleteProduct(ctx context.Context, id, supplierID int64) error {
	return s.execOne(ctx, `DELETE FROM products WHERE id = ? AND supplier_id = ?`, id, supplierID)
}

// ListProducts returns a supplier's products, or every product when
// supplierID is 0. Newest first.
func (s *Store) ListProducts(ctx context.Context, supplierID int64) ([]models.Product, error) {
	products := []models.Product{}
	if supplierID == 0 {
		err := s.sel(ctx, &products, productSelect+` ORDER BY p.created_at DESC, p.id DESC`)
		return products, err
	}
	err := s.sel(ctx, &products, productSelect+` WHERE p.supplier_id = ? ORDER BY p.created_at DESC, p.id DESC`, supplierID)
	return products, err
}

// ListProductsBySuppliers returns the products of the given suppliers,
// optionally restricted to one category (categoryID > 0).
func (s *Store) ListProductsBySuppliers(ctx context.Context, supplierIDs []int64, categoryID int64) ([]models.Product, error) {
	products := []models.Product{}
	if len(supplierIDs) == 0 {
		return products, nil
	}

	query := productSelect + ` WHERE p.supplier_id IN (?)`
	args := []any{supplierIDs}
	if categoryID > 0 {
		query += ` AND p.category_id = ?`
		args = append(args, categoryID)
	}
	query += ` ORDER BY u.name ASC, p.name ASC, p.id ASC`

	query, args, err := sqlx.In(query, args...)
	if err != nil {
		return nil, err
	}
	err = s.sel(ctx, &products, query, args...)
	return products, err
}
