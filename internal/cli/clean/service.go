package clean

import (
	"context"
	"errors"
	"fmt"

	"github.com/kzmarket/productseed/internal/cli/ui"
	"github.com/kzmarket/productseed/internal/product"
	"github.com/kzmarket/productseed/internal/seeder"
	"github.com/kzmarket/productseed/internal/store"
	"go.uber.org/zap"
)

// Service handles cleanup of seeded products
type Service interface {
	// Clean removes barcode_1..count and reports what was deleted
	Clean(ctx context.Context, count int) (deleted []string, skipped []string, err error)
}

// service implements Service interface
type service struct {
	store  store.Store
	ui     ui.Service
	logger *zap.Logger
}

// ProvideCleanService creates a new clean service
func ProvideCleanService(st store.Store, uiService ui.Service, logger *zap.Logger) Service {
	return &service{
		store:  st,
		ui:     uiService,
		logger: logger,
	}
}

// Clean removes the seeded products. Documents that do not exist are skipped.
func (s *service) Clean(ctx context.Context, count int) ([]string, []string, error) {
	if count <= 0 {
		return nil, nil, fmt.Errorf("%w, got %d", seeder.ErrInvalidCount, count)
	}

	stopSpinner := s.ui.ShowSpinner("Deleting seeded products...")

	var deleted []string
	var skipped []string

	for i := 1; i <= count; i++ {
		barcode := product.Barcode(i)

		if _, err := s.store.Get(ctx, barcode); errors.Is(err, store.ErrNotFound) {
			skipped = append(skipped, barcode)
			continue
		} else if err != nil {
			stopSpinner("Clean completed with errors")
			return deleted, skipped, err
		}

		if err := s.store.Delete(ctx, barcode); err != nil {
			stopSpinner("Clean completed with errors")
			return deleted, skipped, err
		}
		deleted = append(deleted, barcode)
		s.logger.Debug("product deleted", zap.String("barcode", barcode))
	}

	stopSpinner("Clean completed successfully")
	return deleted, skipped, nil
}
