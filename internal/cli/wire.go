//go:build wireinject
// +build wireinject

package cli

import (
	"context"

	"github.com/google/wire"
	"github.com/kzmarket/productseed/internal/cli/clean"
	"github.com/kzmarket/productseed/internal/cli/file"
	"github.com/kzmarket/productseed/internal/cli/project"
	"github.com/kzmarket/productseed/internal/cli/seed"
	"github.com/kzmarket/productseed/internal/cli/ui"
	"github.com/kzmarket/productseed/internal/cli/verify"
	"github.com/kzmarket/productseed/internal/config"
	"github.com/kzmarket/productseed/internal/logger"
	"github.com/kzmarket/productseed/internal/product"
	"github.com/kzmarket/productseed/internal/seeder"
	"github.com/kzmarket/productseed/internal/store"
)

// ProviderSet is the Wire provider set for all CLI services
var ProviderSet = wire.NewSet(
	logger.ProvideLogger,
	ui.ProvideUIService,
	store.ProvideStore,
	product.ProvideGenerator,
	seeder.ProvideSeeder,
	ProvideReporter,
	seed.ProvideSeedService,
	verify.ProvideVerifyService,
	clean.ProvideCleanService,
)

// InitializeContainer initializes the dependency injection container
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, func(), error) {
	wire.Build(
		ProviderSet,
		wire.Struct(new(Container), "*"),
	)
	return &Container{}, nil, nil
}

// InitializeProjectService builds the service behind the init command, which needs no store
func InitializeProjectService() project.Service {
	wire.Build(
		ui.ProvideUIService,
		file.ProvideFileService,
		project.ProvideProjectService,
	)
	return nil
}
