package cli

import (
	"github.com/kzmarket/productseed/internal/cli/clean"
	"github.com/kzmarket/productseed/internal/cli/seed"
	"github.com/kzmarket/productseed/internal/cli/ui"
	"github.com/kzmarket/productseed/internal/cli/verify"
	"github.com/kzmarket/productseed/internal/config"
	"github.com/kzmarket/productseed/internal/seeder"
	"go.uber.org/zap"
)

// Container holds all the injected services of a store-backed command
type Container struct {
	Config *config.Config
	Logger *zap.Logger
	UI     ui.Service
	Seed   seed.Service
	Verify verify.Service
	Clean  clean.Service
}

// ProvideReporter routes seeder notices to the console
func ProvideReporter(uiService ui.Service) seeder.Reporter {
	return uiService
}
