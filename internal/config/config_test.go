package config

import (
	"os"
	"path/filepath"
	"testing"

	"go.trai.ch/zerr"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Dataset != "production" {
		t.Errorf("Dataset = %q, want \"production\"", cfg.Dataset)
	}
	if cfg.ProjectID != "" {
		t.Errorf("ProjectID = %q, want empty", cfg.ProjectID)
	}
	if cfg.Server.Port != DefaultPort {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, DefaultPort)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want \"info\"", cfg.Log.Level)
	}
	if cfg.AssetsDir != "assets" {
		t.Errorf("AssetsDir = %q, want \"assets\"", cfg.AssetsDir)
	}
}

func TestDefaultWithProject(t *testing.T) {
	cfg := DefaultWithProject("abc123", "staging")

	if cfg.ProjectID != "abc123" {
		t.Errorf("ProjectID = %q, want \"abc123\"", cfg.ProjectID)
	}
	if cfg.Dataset != "staging" {
		t.Errorf("Dataset = %q, want \"staging\"", cfg.Dataset)
	}

	// Empty dataset keeps the default
	cfg = DefaultWithProject("abc123", "")
	if cfg.Dataset != "production" {
		t.Errorf("Dataset = %q, want \"production\"", cfg.Dataset)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		projectID string
		dataset   string
		wantErr   bool
		wantKey   string
	}{
		{"valid", "abc123", "production", false, ""},
		{"dataset with dash and underscore", "abc123", "my-data_set", false, ""},
		{"missing project", "", "production", true, ""},
		{"missing dataset", "abc123", "", true, ""},
		{"uppercase project", "ABC", "production", true, "project_id"},
		{"project with dash", "abc-123", "production", true, "project_id"},
		{"dataset with space", "abc123", "prod uction", true, "dataset"},
		{"dataset leading dash", "abc123", "-prod", true, "dataset"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{ProjectID: tt.projectID, Dataset: tt.dataset}
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantKey == "" {
				return
			}
			zErr, ok := err.(*zerr.Error)
			if !ok {
				t.Fatalf("expected *zerr.Error, got %T", err)
			}
			if _, ok := zErr.Metadata()[tt.wantKey]; !ok {
				t.Errorf("expected metadata key %q, got %v", tt.wantKey, zErr.Metadata())
			}
		})
	}
}

func TestValidateMissingFields(t *testing.T) {
	if err := (&Config{Dataset: "production"}).Validate(); err != ErrMissingProjectID {
		t.Errorf("Validate() = %v, want ErrMissingProjectID", err)
	}
	if err := (&Config{ProjectID: "abc123"}).Validate(); err != ErrMissingDataset {
		t.Errorf("Validate() = %v, want ErrMissingDataset", err)
	}
}

func TestOverlayMode(t *testing.T) {
	cfg := Default()
	if got := cfg.OverlayMode(); got != "raw" {
		t.Errorf("OverlayMode() = %q, want \"raw\"", got)
	}
	cfg.OverlayDrafts = true
	if got := cfg.OverlayMode(); got != "overlayed" {
		t.Errorf("OverlayMode() = %q, want \"overlayed\"", got)
	}
}

func TestResolveAssetsDir(t *testing.T) {
	cfg := Default()
	if got := cfg.ResolveAssetsDir("/project"); got != filepath.Join("/project", "assets") {
		t.Errorf("ResolveAssetsDir() = %q", got)
	}
	cfg.AssetsDir = "/var/assets"
	if got := cfg.ResolveAssetsDir("/project"); got != "/var/assets" {
		t.Errorf("ResolveAssetsDir() = %q, want \"/var/assets\"", got)
	}
}

func TestLoadNonExistent(t *testing.T) {
	// Load from non-existent directory should return defaults
	cfg, err := Load("/nonexistent/path/that/does/not/exist")
	if err != nil {
		t.Fatalf("Load() error = %v, want nil", err)
	}

	if cfg.Dataset != "production" {
		t.Errorf("Dataset = %q, want \"production\"", cfg.Dataset)
	}
}

func TestLoadAndSave(t *testing.T) {
	tmpDir := t.TempDir()

	cfg := DefaultWithProject("abc123", "staging")
	cfg.OverlayDrafts = true
	cfg.Server.Port = 3000

	if err := cfg.Save(tmpDir); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if _, err := os.Stat(filepath.Join(tmpDir, ConfigFile)); err != nil {
		t.Fatalf("config file not created: %v", err)
	}

	loaded, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if loaded.ProjectID != "abc123" {
		t.Errorf("ProjectID = %q, want \"abc123\"", loaded.ProjectID)
	}
	if loaded.Dataset != "staging" {
		t.Errorf("Dataset = %q, want \"staging\"", loaded.Dataset)
	}
	if !loaded.OverlayDrafts {
		t.Error("OverlayDrafts = false, want true")
	}
	if loaded.Server.Port != 3000 {
		t.Errorf("Server.Port = %d, want 3000", loaded.Server.Port)
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	tmpDir := t.TempDir()

	content := `project_id = "abc123"
`
	if err := os.WriteFile(filepath.Join(tmpDir, ConfigFile), []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile error = %v", err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Dataset != "production" {
		t.Errorf("Dataset = %q, want \"production\"", cfg.Dataset)
	}
	if cfg.Server.Port != DefaultPort {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, DefaultPort)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want \"info\"", cfg.Log.Level)
	}
}

func TestLoadYAML(t *testing.T) {
	tmpDir := t.TempDir()

	content := `project_id: abc123
dataset: staging
watch_mode: true
server:
  port: 4000
`
	if err := os.WriteFile(filepath.Join(tmpDir, YAMLConfigFile), []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile error = %v", err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.ProjectID != "abc123" {
		t.Errorf("ProjectID = %q, want \"abc123\"", cfg.ProjectID)
	}
	if cfg.Dataset != "staging" {
		t.Errorf("Dataset = %q, want \"staging\"", cfg.Dataset)
	}
	if !cfg.WatchMode {
		t.Error("WatchMode = false, want true")
	}
	if cfg.Server.Port != 4000 {
		t.Errorf("Server.Port = %d, want 4000", cfg.Server.Port)
	}
}

func TestLoadTOMLTakesPrecedence(t *testing.T) {
	tmpDir := t.TempDir()

	if err := os.WriteFile(filepath.Join(tmpDir, ConfigFile), []byte("project_id = \"fromtoml\"\n"), 0644); err != nil {
		t.Fatalf("WriteFile error = %v", err)
	}
	if err := os.WriteFile(filepath.Join(tmpDir, YAMLConfigFile), []byte("project_id: fromyaml\n"), 0644); err != nil {
		t.Fatalf("WriteFile error = %v", err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ProjectID != "fromtoml" {
		t.Errorf("ProjectID = %q, want \"fromtoml\"", cfg.ProjectID)
	}
}

func TestLoadInvalidTOML(t *testing.T) {
	tmpDir := t.TempDir()

	if err := os.WriteFile(filepath.Join(tmpDir, ConfigFile), []byte("project_id = [unterminated"), 0644); err != nil {
		t.Fatalf("WriteFile error = %v", err)
	}

	if _, err := Load(tmpDir); err == nil {
		t.Error("Load() error = nil, want parse error")
	}
}
