// Package testutil sets up in-memory databases and fixtures for tests.
package testutil

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/01moynul/containerhub-golang/internal/database"
	"github.com/01moynul/containerhub-golang/internal/models"
	"github.com/01moynul/containerhub-golang/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var seq atomic.Int64

// OpenDB returns a repository over a fresh, migrated in-memory SQLite
// database that is closed when the test ends.
func OpenDB(t testing.TB) *repository.Repository {
	t.Helper()

	db, dialect, err := database.OpenDB("sqlite3", ":memory:?_foreign_keys=1")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.Migrate(context.Background(), db, dialect))
	return repository.New(db, dialect)
}

// User creates an active user with the given role. The password is
// "password123".
func User(t testing.TB, repo *repository.Repository, role string) *models.User {
	t.Helper()

	n := seq.Add(1)
	var pw models.Password
	require.NoError(t, pw.Set("password123"))

	u := &models.User{
		Email:        fmt.Sprintf("%s%d@example.com", role, n),
		PasswordHash: pw.Hash,
		Name:         fmt.Sprintf("%s %d", role, n),
		Role:         role,
		Active:       true,
	}
	require.NoError(t, repo.CreateUser(context.Background(), u))
	return u
}

func Category(t testing.TB, repo *repository.Repository) *models.Category {
	t.Helper()

	n := seq.Add(1)
	c := &models.Category{Name: fmt.Sprintf("Category %d", n), Slug: fmt.Sprintf("category-%d", n)}
	require.NoError(t, repo.CreateCategory(context.Background(), c))
	return c
}

// Product creates a product with the given unit price (as a decimal
// string), weight in kg and dimensions in cm.
func Product(t testing.TB, repo *repository.Repository, supplierID, categoryID int64, price string, weight, length, width, height float64) *models.Product {
	t.Helper()

	n := seq.Add(1)
	p := &models.Product{
		SupplierID:  supplierID,
		CategoryID:  categoryID,
		Code:        fmt.Sprintf("SKU-%d", n),
		Name:        fmt.Sprintf("Product %d", n),
		Description: "test product",
		Price:       decimal.RequireFromString(price),
		Weight:      weight,
		Length:      length,
		Width:       width,
		Height:      height,
	}
	require.NoError(t, repo.CreateProduct(context.Background(), p))
	return p
}

// Collaboration stores a collaboration in the given status.
func Collaboration(t testing.TB, repo *repository.Repository, supplierID, importerID int64, status models.CollaborationStatus) *models.Collaboration {
	t.Helper()

	c := &models.Collaboration{SupplierID: supplierID, ImporterID: importerID, Status: status}
	require.NoError(t, repo.CreateCollaboration(context.Background(), c))
	return c
}
