package store

import (
	"context"
	"errors"

	"github.com/kzmarket/productseed/internal/product"
)

// ErrNotFound is returned by Get when no document has the barcode
var ErrNotFound = errors.New("product not found")

// Store is a keyed product collection.
type Store interface {
	// Upsert creates or fully overwrites the document keyed by p.Barcode.
	// createdAt and updatedAt are set to the store's clock at write time.
	Upsert(ctx context.Context, p product.Product) error
	// Get reads the document keyed by barcode
	Get(ctx context.Context, barcode string) (product.Product, error)
	// Delete removes the document keyed by barcode. Deleting a missing document is not an error.
	Delete(ctx context.Context, barcode string) error
	// Count returns the number of documents in the collection
	Count(ctx context.Context) (int64, error)
	Close() error
}
