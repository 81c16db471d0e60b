package admission

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/01moynul/containerhub-golang/internal/apperr"
	"github.com/01moynul/containerhub-golang/internal/collab"
	"github.com/01moynul/containerhub-golang/internal/models"
	"github.com/01moynul/containerhub-golang/internal/repository"
	"github.com/01moynul/containerhub-golang/internal/totals"
	"github.com/shopspring/decimal"
)

func containerNotFound() error {
	return apperr.NotFound("Container not found")
}

// Service manages an importer's containers and their items.
type Service struct {
	repo *repository.Repository
}

func NewService(repo *repository.Repository) *Service {
	return &Service{repo: repo}
}

// CreateInput holds the fields of a new container. Nil limits are
// stored as the unbounded sentinels.
type CreateInput struct {
	Name      string
	MaxWeight *float64
	MaxVolume *float64
	MaxPrice  *decimal.Decimal
}

// View is a container with its items and their totals. The totals render
// next to container and items: {container, items, totalPrice,
// totalWeight, totalVolume}.
type View struct {
	Container *models.Container      `json:"container"`
	Items     []models.ContainerLine `json:"items"`
	totals.Totals
}

func (s *Service) Create(ctx context.Context, importerID int64, in CreateInput) (*models.Container, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperr.Validation("Container name is required")
	}

	c := &models.Container{
		ImporterID: importerID,
		Name:       name,
		MaxWeight:  UnboundedWeight,
		MaxVolume:  UnboundedVolume,
		MaxPrice:   UnboundedPrice,
	}
	if in.MaxWeight != nil {
		if *in.MaxWeight <= 0 {
			return nil, apperr.Validation("maxWeight must be greater than 0")
		}
		c.MaxWeight = *in.MaxWeight
	}
	if in.MaxVolume != nil {
		if *in.MaxVolume <= 0 {
			return nil, apperr.Validation("maxVolume must be greater than 0")
		}
		c.MaxVolume = *in.MaxVolume
	}
	if in.MaxPrice != nil {
		if !in.MaxPrice.IsPositive() {
			return nil, apperr.Validation("maxPrice must be greater than 0")
		}
		if !models.FitsMoney(*in.MaxPrice) {
			return nil, apperr.Validation("maxPrice must have at most 2 decimal places and not exceed " + models.MaxMoney.StringFixed(2))
		}
		c.MaxPrice = *in.MaxPrice
	}

	if err := s.repo.CreateContainer(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) List(ctx context.Context, importerID int64) ([]models.Container, error) {
	return s.repo.ListContainers(ctx, importerID)
}

// Get returns the container with its items and current totals.
func (s *Service) Get(ctx context.Context, containerID, importerID int64) (*View, error) {
	c, err := s.repo.GetContainer(ctx, containerID, importerID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, containerNotFound()
	}
	if err != nil {
		return nil, err
	}

	lines, err := s.repo.ContainerItemsWithProducts(ctx, c.ID)
	if err != nil {
		return nil, err
	}

	return &View{Container: c, Items: lines, Totals: Current(lines)}, nil
}

func (s *Service) Delete(ctx context.Context, containerID, importerID int64) error {
	err := s.repo.WithTx(ctx, func(tx *repository.Tx) error {
		return tx.DeleteContainer(ctx, containerID, importerID)
	})
	if errors.Is(err, repository.ErrNotFound) {
		return containerNotFound()
	}
	return err
}

func (s *Service) RemoveItem(ctx context.Context, containerID, itemID, importerID int64) error {
	if _, err := s.repo.GetContainer(ctx, containerID, importerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return containerNotFound()
		}
		return err
	}

	err := s.repo.DeleteContainerItem(ctx, containerID, itemID)
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound("Item not found")
	}
	return err
}

// AddItem packs quantity units of a product into the importer's
// container. The whole check-and-write runs in one transaction holding
// the container row, so nothing is written unless every check passes.
func (s *Service) AddItem(ctx context.Context, containerID, importerID, productID int64, quantity int) (*models.ContainerItem, error) {
	// 1. --- Validate input ---
	if quantity < 1 || quantity > models.MaxQuantity {
		return nil, apperr.Validation("quantity must be a positive integer")
	}

	var item *models.ContainerItem
	err := s.repo.WithTx(ctx, func(tx *repository.Tx) error {
		// 2. --- Lock the container (absent and foreign look the same) ---
		c, err := tx.LockContainer(ctx, containerID, importerID)
		if errors.Is(err, repository.ErrNotFound) {
			return containerNotFound()
		}
		if err != nil {
			return err
		}

		// 3. --- Load the product ---
		product, err := tx.GetProduct(ctx, productID)
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("Product not found")
		}
		if err != nil {
			return err
		}

		// 4. --- Collaboration gate ---
		ok, err := collab.NewGate(tx).IsAuthorized(ctx, importerID, product.SupplierID)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.Forbidden("No approved collaboration with this supplier")
		}

		// 5. --- Prospective totals against the limits ---
		lines, err := tx.ContainerItemsWithProducts(ctx, c.ID)
		if err != nil {
			return err
		}
		if quantityOf(lines, product.ID) > models.MaxQuantity-quantity {
			return apperr.Validation("quantity for this product would exceed " + strconv.Itoa(models.MaxQuantity))
		}
		if err := CheckLimits(LimitsOf(c), Prospective(lines, product, quantity)); err != nil {
			return err
		}

		// 6. --- Increment or insert ---
		item, err = tx.UpsertContainerItem(ctx, c.ID, product.ID, quantity)
		return err
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// quantityOf is the quantity already packed for the product.
func quantityOf(lines []models.ContainerLine, productID int64) int {
	for _, l := range lines {
		if l.ProductID == productID {
			return l.Quantity
		}
	}
	return 0
}
