package seed

import (
	"context"

	"github.com/kzmarket/productseed/internal/cli/ui"
	"github.com/kzmarket/productseed/internal/seeder"
)

// Service handles seeding runs started from the command line
type Service interface {
	// Seed inserts count products and prints the elapsed time of a successful run
	Seed(ctx context.Context, count int) (seeder.Result, error)
}

// service implements Service interface
type service struct {
	seeder *seeder.Seeder
	ui     ui.Service
}

// ProvideSeedService creates a new seed service
func ProvideSeedService(s *seeder.Seeder, uiService ui.Service) Service {
	return &service{
		seeder: s,
		ui:     uiService,
	}
}

// Seed inserts count products. Progress and completion notices come from
// the seeder through the UI reporter; nothing is printed on failure.
func (s *service) Seed(ctx context.Context, count int) (seeder.Result, error) {
	result, err := s.seeder.Seed(ctx, count)
	if err != nil {
		return result, err
	}

	s.ui.Elapsed(result.Elapsed)
	return result, nil
}
