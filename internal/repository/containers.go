package repository

import (
	"context"
	"errors"
	"time"

	"github.com/01moynul/containerhub-golang/internal/models"
	"github.com/shopspring/decimal"
)

const containerColumns = `id, importer_id, name, max_weight, max_volume, max_price, created_at`

func (s *Store) CreateContainer(ctx context.Context, c *models.Container) error {
	c.CreatedAt = time.Now().UTC()

	id, err := s.insert(ctx, `
		INSERT INTO containers (importer_id, name, max_weight, max_volume, max_price, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		c.ImporterID, c.Name, c.MaxWeight, c.MaxVolume, c.MaxPrice, c.CreatedAt)
	if err != nil {
		return err
	}
	c.ID = id
	return nil
}

// GetContainer returns ErrNotFound when the container does not exist or
// belongs to another importer.
func (s *Store) GetContainer(ctx context.Context, id, importerID int64) (*models.Container, error) {
	var c models.Container
	err := s.get(ctx, &c, `SELECT `+containerColumns+` FROM containers WHERE id = ? AND importer_id = ?`, id, importerID)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// LockContainer is GetContainer with a row lock held until the
// transaction ends, so admissions to one container run one at a time.
func (t *Tx) LockContainer(ctx context.Context, id, importerID int64) (*models.Container, error) {
	var c models.Container
	err := t.get(ctx, &c, `SELECT `+containerColumns+` FROM containers WHERE id = ? AND importer_id = ?`+t.dialect.ForUpdate, id, importerID)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListContainers returns an importer's containers with their item counts,
// newest first.
func (s *Store) ListContainers(ctx context.Context, importerID int64) ([]models.Container, error) {
	containers := []models.Container{}
	err := s.sel(ctx, &containers, `
		SELECT
			c.id, c.importer_id, c.name, c.max_weight, c.max_volume, c.max_price, c.created_at,
			(SELECT COUNT(*) FROM container_items ci WHERE ci.container_id = c.id) AS item_count
		FROM containers c
		WHERE c.importer_id = ?
		ORDER BY c.created_at DESC, c.id DESC`,
		importerID)
	return containers, err
}

// DeleteContainer removes the container and its items. Call it inside a
// transaction.
func (s *Store) DeleteContainer(ctx context.Context, id, importerID int64) error {
	if _, err := s.exec(ctx, `
		DELETE FROM container_items
		WHERE container_id IN (SELECT id FROM containers WHERE id = ? AND importer_id = ?)`,
		id, importerID); err != nil {
		return err
	}
	return s.execOne(ctx, `DELETE FROM containers WHERE id = ? AND importer_id = ?`, id, importerID)
}

// lineRow is one LEFT JOIN row of container_items and products.
type lineRow struct {
	models.ContainerItem
	PID        *int64              `db:"p_id"`
	SupplierID *int64              `db:"p_supplier_id"`
	Name       *string             `db:"p_name"`
	Price      decimal.NullDecimal `db:"p_price"`
	Weight     *float64            `db:"p_weight"`
	Length     *float64            `db:"p_length"`
	Width      *float64            `db:"p_width"`
	Height     *float64            `db:"p_height"`
}

func (r lineRow) line() models.ContainerLine {
	line := models.ContainerLine{ContainerItem: r.ContainerItem}
	if r.PID == nil {
		return line
	}
	line.Product = models.NewProductSummary(*r.PID, deref(r.SupplierID), deref(r.Name), r.Price.Decimal,
		deref(r.Weight), deref(r.Length), deref(r.Width), deref(r.Height))
	return line
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

// ContainerItemsWithProducts returns every item of the container with its
// product. Items whose product was deleted have a nil Product.
func (s *Store) ContainerItemsWithProducts(ctx context.Context, containerID int64) ([]models.ContainerLine, error) {
	var rows []lineRow
	err := s.sel(ctx, &rows, `
		SELECT
			ci.id, ci.container_id, ci.product_id, ci.quantity, ci.created_at, ci.updated_at,
			p.id AS p_id, p.supplier_id AS p_supplier_id, p.name AS p_name, p.price AS p_price,
			p.weight AS p_weight, p.length AS p_length, p.width AS p_width, p.height AS p_height
		FROM container_items ci
		LEFT JOIN products p ON p.id = ci.product_id
		WHERE ci.container_id = ?
		ORDER BY ci.id ASC`,
		containerID)
	if err != nil {
		return nil, err
	}

	lines := make([]models.ContainerLine, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, r.line())
	}
	return lines, nil
}

// UpsertContainerItem adds quantity to the product's existing row in the
// container, or inserts a new row. The resulting row is returned.
func (s *Store) UpsertContainerItem(ctx context.Context, containerID, productID int64, quantity int) (*models.ContainerItem, error) {
	now := time.Now().UTC()

	var item models.ContainerItem
	err := s.get(ctx, &item, `
		SELECT id, container_id, product_id, quantity, created_at, updated_at
		FROM container_items
		WHERE container_id = ? AND product_id = ?`,
		containerID, productID)

	switch {
	case err == nil:
		item.Quantity += quantity
		item.UpdatedAt = now
		if _, err := s.exec(ctx, `UPDATE container_items SET quantity = ?, updated_at = ? WHERE id = ?`,
			item.Quantity, item.UpdatedAt, item.ID); err != nil {
			return nil, err
		}
		return &item, nil

	case errors.Is(err, ErrNotFound):
		item = models.ContainerItem{
			ContainerID: containerID,
			ProductID:   productID,
			Quantity:    quantity,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		id, err := s.insert(ctx, `
			INSERT INTO container_items (container_id, product_id, quantity, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?)`,
			containerID, productID, quantity, now, now)
		if err != nil {
			return nil, err
		}
		item.ID = id
		return &item, nil

	default:
		return nil, err
	}
}

// DeleteContainerItem returns ErrNotFound when the item is not in the
// container.
func (s *Store) DeleteContainerItem(ctx context.Context, containerID, itemID int64) error {
	return s.execOne(ctx, `DELETE FROM container_items WHERE id = ? AND container_id = ?`, itemID, containerID)
}
