package e2e

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// TestConfigInitialization tests the init workflow
func TestConfigInitialization(t *testing.T) {
	bin := getProductseedBinary(t)
	testDir := t.TempDir()
	configPath := filepath.Join(testDir, "productseed.yaml")

	t.Run("01_create_config", func(t *testing.T) {
		cmd := exec.Command(bin, "init")
		cmd.Dir = testDir
		output, err := cmd.CombinedOutput()
		if err != nil {
			t.Fatalf("productseed init failed: %v \n Output: %s", err, string(output))
		}

		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			t.Fatalf("Config file was not created: %s", configPath)
		}

		t.Logf("✅ productseed init output: %s", string(output))
	})

	t.Run("02_verify_config_content", func(t *testing.T) {
		content, err := os.ReadFile(configPath)
		if err != nil {
			t.Fatalf("Failed to read config: %v", err)
		}

		expectedKeys := []string{"firestore", "collection: products", "progress_every: 100"}
		for _, key := range expectedKeys {
			if !strings.Contains(string(content), key) {
				t.Errorf("Config does not contain %q\nContent:\n%s", key, string(content))
			}
		}
	})

	t.Run("03_init_keeps_existing_config", func(t *testing.T) {
		cmd := exec.Command(bin, "init")
		cmd.Dir = testDir
		output, err := cmd.CombinedOutput()
		if err != nil {
			t.Fatalf("second productseed init failed: %v \n Output: %s", err, string(output))
		}

		if !strings.Contains(string(output), "already exists") {
			t.Errorf("Expected existing config to be kept, got: %s", string(output))
		}
	})
}
