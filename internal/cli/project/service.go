package project

import (
	"fmt"

	"github.com/kzmarket/productseed/internal/cli/file"
	"github.com/kzmarket/productseed/internal/cli/ui"
	"github.com/kzmarket/productseed/internal/config"
)

// Service handles project initialization
type Service interface {
	// InitConfig writes a default config file. An existing file is kept unless force is set.
	InitConfig(path string, force bool) (created bool, err error)
}

// service implements Service interface
type service struct {
	ui          ui.Service
	fileService file.Service
}

// ProvideProjectService creates a new project service
func ProvideProjectService(uiService ui.Service, fileService file.Service) Service {
	return &service{
		ui:          uiService,
		fileService: fileService,
	}
}

// InitConfig writes a default config file
func (s *service) InitConfig(path string, force bool) (bool, error) {
	if path == "" {
		path = config.DefaultConfigFile
	}

	exists, err := s.fileService.Exists(path)
	if err != nil {
		return false, fmt.Errorf("error checking %s: %w", path, err)
	}

	if exists && !force {
		s.ui.Printf("• Config file %s already exists\n", path)
		return false, nil
	}

	if exists {
		if _, err := s.fileService.DeleteIfExists(path); err != nil {
			return false, fmt.Errorf("error replacing %s: %w", path, err)
		}
	}

	cfg := config.Default()
	if err := cfg.Save(path); err != nil {
		return false, err
	}

	s.ui.Printf("● Created %s\n", path)
	s.ui.Printf("  Collection: %s\n", cfg.Firestore.Collection)
	s.ui.Printf("\nNext steps:\n")
	s.ui.Printf("  1. Set firestore.project_id and firestore.credentials_file in %s\n", path)
	s.ui.Printf("  2. Run 'productseed seed --dry-run 10' to preview a run\n")
	s.ui.Printf("  3. Run 'productseed seed 1000' to seed the collection\n")

	return true, nil
}
