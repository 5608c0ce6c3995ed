package secrets

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"relaykit/courier/pkg/config"
)

func TestManager_GetSecret_FromEnv(t *testing.T) {
	// Set up environment variable
	os.Setenv("COURIER_SECRET_TEST_KEY", "env-value")
	defer os.Unsetenv("COURIER_SECRET_TEST_KEY")

	envProvider := NewEnvProvider("COURIER_SECRET_")
	manager := NewManager([]SecretProvider{envProvider}, 0)

	value, err := manager.GetSecret(context.Background(), "test-key")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if value != "env-value" {
		t.Errorf("expected value 'env-value', got '%s'", value)
	}
}

func TestManager_GetSecret_FromFile(t *testing.T) {
	// Create temporary directory with secret
	tmpDir := t.TempDir()
	secretPath := filepath.Join(tmpDir, "file-secret")
	if err := os.WriteFile(secretPath, []byte("file-value"), 0600); err != nil {
		t.Fatal(err)
	}

	fileProvider, err := NewFileProvider(tmpDir, false)
	if err != nil {
		t.Fatalf("failed to create provider: %v", err)
	}
	defer fileProvider.Close()

	manager := NewManager([]SecretProvider{fileProvider}, 0)

	value, err := manager.GetSecret(context.Background(), "file-secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if value != "file-value" {
		t.Errorf("expected value 'file-value', got '%s'", value)
	}
}

func TestManager_GetSecret_ProviderPriority(t *testing.T) {
	// Set up environment variable
	os.Setenv("COURIER_SECRET_TEST_KEY", "env-value")
	defer os.Unsetenv("COURIER_SECRET_TEST_KEY")

	// Create file with different value
	tmpDir := t.TempDir()
	secretPath := filepath.Join(tmpDir, "test-key")
	if err := os.WriteFile(secretPath, []byte("file-value"), 0600); err != nil {
		t.Fatal(err)
	}

	envProvider := NewEnvProvider("COURIER_SECRET_")
	fileProvider, _ := NewFileProvider(tmpDir, false)
	defer fileProvider.Close()

	// Env provider is first, should take priority
	manager := NewManager([]SecretProvider{envProvider, fileProvider}, 0)

	value, err := manager.GetSecret(context.Background(), "test-key")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if value != "env-value" {
		t.Errorf("expected value from first provider 'env-value', got '%s'", value)
	}

	// Reverse order - file provider first
	manager2 := NewManager([]SecretProvider{fileProvider, envProvider}, 0)

	value2, err := manager2.GetSecret(context.Background(), "test-key")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if value2 != "file-value" {
		t.Errorf("expected value from first provider 'file-value', got '%s'", value2)
	}
}

func TestManager_GetSecret_NotFound(t *testing.T) {
	envProvider := NewEnvProvider("COURIER_SECRET_")
	manager := NewManager([]SecretProvider{envProvider}, 0)

	_, err := manager.GetSecret(context.Background(), "nonexistent-key")
	if err == nil {
		t.Error("expected error for nonexistent secret, got nil")
	}
}

func TestManager_GetSecret_Caching(t *testing.T) {
	// Set up environment variable
	os.Setenv("COURIER_SECRET_CACHED_KEY", "original-value")
	defer os.Unsetenv("COURIER_SECRET_CACHED_KEY")

	envProvider := NewEnvProvider("COURIER_SECRET_")
	manager := NewManager([]SecretProvider{envProvider}, 5*time.Minute)

	// First call - should fetch from provider
	value1, err := manager.GetSecret(context.Background(), "cached-key")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Change environment variable
	os.Setenv("COURIER_SECRET_CACHED_KEY", "new-value")

	// Second call - should return cached value
	value2, err := manager.GetSecret(context.Background(), "cached-key")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if value2 != value1 {
		t.Error("expected cached value to be returned")
	}

	if value2 != "original-value" {
		t.Errorf("expected cached value 'original-value', got '%s'", value2)
	}
}

func TestManager_Refresh(t *testing.T) {
	// Create file provider with a secret
	tmpDir := t.TempDir()
	secretPath := filepath.Join(tmpDir, "refresh-test")
	if err := os.WriteFile(secretPath, []byte("value1"), 0600); err != nil {
		t.Fatal(err)
	}

	fileProvider, err := NewFileProvider(tmpDir, false)
	if err != nil {
		t.Fatalf("failed to create provider: %v", err)
	}
	defer fileProvider.Close()

	manager := NewManager([]SecretProvider{fileProvider}, 5*time.Minute)

	// Get secret (populates cache)
	value1, err := manager.GetSecret(context.Background(), "refresh-test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Update file
	if err := os.WriteFile(secretPath, []byte("value2"), 0600); err != nil {
		t.Fatal(err)
	}

	// Get secret again (should return cached value)
	value2, err := manager.GetSecret(context.Background(), "refresh-test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if value2 != value1 {
		t.Error("expected cached value before refresh")
	}

	// Refresh
	if err := manager.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Get secret after refresh (should return new value)
	value3, err := manager.GetSecret(context.Background(), "refresh-test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if value3 != "value2" {
		t.Errorf("expected new value 'value2' after refresh, got '%s'", value3)
	}
}

func TestManager_ListSecrets(t *testing.T) {
	// Set up environment variables
	os.Setenv("COURIER_SECRET_ENV_SECRET", "value1")
	defer os.Unsetenv("COURIER_SECRET_ENV_SECRET")

	// Create file secrets
	tmpDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmpDir, "file-secret"), []byte("value2"), 0600); err != nil {
		t.Fatal(err)
	}

	envProvider := NewEnvProvider("COURIER_SECRET_")
	fileProvider, err := NewFileProvider(tmpDir, false)
	if err != nil {
		t.Fatalf("failed to create provider: %v", err)
	}
	defer fileProvider.Close()

	manager := NewManager([]SecretProvider{envProvider, fileProvider}, 0)

	secrets, err := manager.ListSecrets(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Should include secrets from both providers
	secretMap := make(map[string]bool)
	for _, secret := range secrets {
		secretMap[secret] = true
	}

	if !secretMap["env-secret"] {
		t.Error("expected 'env-secret' in list")
	}

	if !secretMap["file-secret"] {
		t.Error("expected 'file-secret' in list")
	}
}

func TestManager_FromConfig(t *testing.T) {
	t.Run("env source", func(t *testing.T) {
		os.Setenv("COURIER_SECRET_CONFIG_TEST", "config-value")
		defer os.Unsetenv("COURIER_SECRET_CONFIG_TEST")

		cfg := &config.SecretsConfig{
			Sources:  []string{"env"},
			CacheTTL: time.Minute,
		}

		manager, err := NewManagerFromConfig(cfg)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer manager.Close()

		value, err := manager.GetSecret(context.Background(), "config-test")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if value != "config-value" {
			t.Errorf("expected value 'config-value', got '%s'", value)
		}
	})

	t.Run("file source", func(t *testing.T) {
		tmpDir := t.TempDir()
		if err := os.WriteFile(filepath.Join(tmpDir, "config-file-test"), []byte("file-value"), 0600); err != nil {
			t.Fatal(err)
		}

		cfg := &config.SecretsConfig{
			Sources:   []string{"file"},
			Directory: tmpDir,
		}

		manager, err := NewManagerFromConfig(cfg)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer manager.Close()

		value, err := manager.GetSecret(context.Background(), "config-file-test")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if value != "file-value" {
			t.Errorf("expected value 'file-value', got '%s'", value)
		}
	})

	t.Run("unknown source", func(t *testing.T) {
		cfg := &config.SecretsConfig{
			Sources: []string{"vault"},
		}

		_, err := NewManagerFromConfig(cfg)
		if err == nil {
			t.Fatal("expected error for unknown source, got nil")
		}

		if !strings.Contains(err.Error(), "unknown secrets source") {
			t.Errorf("expected 'unknown secrets source' error, got: %v", err)
		}
	})

	t.Run("missing file directory", func(t *testing.T) {
		cfg := &config.SecretsConfig{
			Sources:   []string{"file"},
			Directory: "/nonexistent/secret/dir",
		}

		_, err := NewManagerFromConfig(cfg)
		if err == nil {
			t.Fatal("expected error for nonexistent directory, got nil")
		}
	})
}

func TestManager_ConcurrentAccess(t *testing.T) {
	// Set up test secrets
	os.Setenv("COURIER_SECRET_CONCURRENT", "value")
	defer os.Unsetenv("COURIER_SECRET_CONCURRENT")

	envProvider := NewEnvProvider("COURIER_SECRET_")
	manager := NewManager([]SecretProvider{envProvider}, 5*time.Minute)

	// Run concurrent GetSecret calls
	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func() {
			for j := 0; j < 100; j++ {
				_, err := manager.GetSecret(context.Background(), "concurrent")
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
			}
			done <- true
		}()
	}

	// Wait for all goroutines
	for i := 0; i < 10; i++ {
		<-done
	}
}

func TestManager_Close(t *testing.T) {
	tmpDir := t.TempDir()

	fileProvider, err := NewFileProvider(tmpDir, true)
	if err != nil {
		t.Fatalf("failed to create provider: %v", err)
	}

	envProvider := NewEnvProvider("COURIER_SECRET_")
	manager := NewManager([]SecretProvider{envProvider, fileProvider}, 0)

	if err := manager.Close(); err != nil {
		t.Errorf("unexpected error from Close: %v", err)
	}
}

func TestManager_RedactSecretName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "long name",
			input:    "openai-api-key",
			expected: "op...ey",
		},
		{
			name:     "short name",
			input:    "key",
			expected: "***",
		},
		{
			name:     "minimum length",
			input:    "abcd",
			expected: "***",
		},
		{
			name:     "exactly 5 chars",
			input:    "abcde",
			expected: "ab...de",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := redactSecretName(tt.input)
			if result != tt.expected {
				t.Errorf("expected '%s', got '%s'", tt.expected, result)
			}
		})
	}
}

func TestKeySource_Credential(t *testing.T) {
	os.Setenv("COURIER_SECRET_UPSTREAM_KEY", "sk-test-abc123")
	defer os.Unsetenv("COURIER_SECRET_UPSTREAM_KEY")

	envProvider := NewEnvProvider("COURIER_SECRET_")
	manager := NewManager([]SecretProvider{envProvider}, 0)

	source := NewKeySource(manager, "upstream-key")

	value, err := source.Credential(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if value != "sk-test-abc123" {
		t.Errorf("expected credential 'sk-test-abc123', got '%s'", value)
	}
}

func TestKeySource_Credential_Missing(t *testing.T) {
	envProvider := NewEnvProvider("COURIER_SECRET_")
	manager := NewManager([]SecretProvider{envProvider}, 0)

	source := NewKeySource(manager, "never-configured")

	_, err := source.Credential(context.Background())
	if err == nil {
		t.Error("expected error for missing credential, got nil")
	}
}
