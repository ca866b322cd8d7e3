package verify

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

// Service checks a seeded collection
type Service interface {
	// Verify reads back barcode_1..count and checks every document
	Verify(ctx context.Context, count int) (*Report, error)
	// ShowReport displays a verification report to the user
	ShowReport(report *Report)
}

// Violation is a document that exists but breaks a generation rule
type Violation struct {
	Barcode string
	Err     error
}

// Report is the outcome of a verification
type Report struct {
	Expected int
	Found    int
	Total    int64 // documents in the whole collection
	Missing  []string
	Invalid  []Violation
}

// OK reports whether every expected document exists and is valid
func (r *Report) OK() bool {
	return len(r.Missing) == 0 && len(r.Invalid) == 0
}

// service implements Service interface
type service struct {
	store  store.Store
	ui     ui.Service
	logger *zap.Logger
}

// ProvideVerifyService creates a new verify service
func ProvideVerifyService(st store.Store, uiService ui.Service, logger *zap.Logger) Service {
	return &service{
		store:  st,
		ui:     uiService,
		logger: logger,
	}
}

func (s *service) Verify(ctx context.Context, count int) (*Report, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w, got %d", seeder.ErrInvalidCount, count)
	}

	stopSpinner := s.ui.ShowSpinner(fmt.Sprintf("Verifying %d products...", count))

	report := &Report{Expected: count}
	for i := 1; i <= count; i++ {
		barcode := product.Barcode(i)

		p, err := s.store.Get(ctx, barcode)
		if errors.Is(err, store.ErrNotFound) {
			report.Missing = append(report.Missing, barcode)
			continue
		}
		if err != nil {
			stopSpinner("Verification failed")
			return nil, fmt.Errorf("error reading %s: %w", barcode, err)
		}

		report.Found++
		if err := p.Validate(); err != nil {
			report.Invalid = append(report.Invalid, Violation{Barcode: barcode, Err: err})
		}
	}

	total, err := s.store.Count(ctx)
	if err != nil {
		stopSpinner("Verification failed")
		return nil, fmt.Errorf("error counting documents: %w", err)
	}
	report.Total = total

	s.logger.Info("verification finished",
		zap.Int("found", report.Found),
		zap.Int("missing", len(report.Missing)),
		zap.Int("invalid", len(report.Invalid)),
	)
	stopSpinner("Products verified")
	return report, nil
}

// ShowReport displays a verification report to the user
func (s *service) ShowReport(report *Report) {
	s.ui.Printf("\nVerification Results:\n")
	s.ui.Printf("  • Expected: %d\n", report.Expected)
	s.ui.Printf("  • Found: %d\n", report.Found)
	s.ui.Printf("  • Documents in collection: %d\n", report.Total)

	if len(report.Missing) > 0 {
		s.ui.Printf("\nMissing:\n")
		for _, barcode := range report.Missing {
			s.ui.Printf("  - %s\n", barcode)
		}
	}

	if len(report.Invalid) > 0 {
		s.ui.Printf("\nInvalid:\n")
		for _, v := range report.Invalid {
			s.ui.Printf("  - %s: %v\n", v.Barcode, v.Err)
		}
	}
}
