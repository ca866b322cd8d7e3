package file

import (
	"os"
)

// Service handles file system operations
type Service interface {
	// Exists reports whether a file exists at path
	Exists(path string) (bool, error)
	// DeleteIfExists deletes a file if it exists, returns (deleted, error)
	DeleteIfExists(path string) (bool, error)
}

// service implements Service interface
type service struct{}

// ProvideFileService creates a new file service
func ProvideFileService() Service {
	return &service{}
}

// Exists reports whether a file exists at path
func (s *service) Exists(path string) (bool, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return false, nil
	} else if err != nil {
		return false, err
	}
	return true, nil
}

// DeleteIfExists deletes a file if it exists, returns (deleted, error)
func (s *service) DeleteIfExists(path string) (bool, error) {
	if exists, err := s.Exists(path); err != nil || !exists {
		return false, err
	}

	// File exists, try to delete it
	if err := os.Remove(path); err != nil {
		return false, err
	}

	return true, nil
}
