package e2e

import (
	"os/exec"
	"testing"
)

// getProductseedBinary returns the path to the productseed binary for testing
func getProductseedBinary(t *testing.T) string {
	// Look for productseed in PATH
	path, err := exec.LookPath("productseed")
	if err != nil {
		t.Skip("productseed binary not found in PATH, run 'go install ./cmd/productseed' first")
	}
	return path
}
