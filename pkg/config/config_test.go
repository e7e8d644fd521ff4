package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.toml"), nil)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if cfg.Port != 8080 || cfg.History != 256 || cfg.Watch || cfg.Template != "" {
		t.Errorf("Unexpected defaults %+v", cfg)
	}
}

func TestLoadPriority(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graf-editor.toml")
	content := "port = 9000\nhistory = 10\ntemplate = \"from-file.svg\"\nverbosity = \"debug\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("GRAF_EDITOR_HISTORY", "20")
	t.Setenv("GRAF_EDITOR_LOG_JSON", "true")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("port", 8080, "")
	flags.String("template", "", "")
	if err := flags.Parse([]string{"--template", "from-flag.svg"}); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path, flags)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	// Unchanged flag does not override the file
	if cfg.Port != 9000 {
		t.Errorf("Expected port 9000 from file, got %d", cfg.Port)
	}
	if cfg.History != 20 {
		t.Errorf("Expected history 20 from env, got %d", cfg.History)
	}
	if cfg.Template != "from-flag.svg" {
		t.Errorf("Expected template from flag, got %q", cfg.Template)
	}
	if !cfg.LogJSON {
		t.Error("Expected log-json from env")
	}
	if cfg.Verbosity != "debug" {
		t.Errorf("Expected verbosity debug, got %q", cfg.Verbosity)
	}
}

func TestLoadRejectsBadPort(t *testing.T) {
	t.Setenv("GRAF_EDITOR_PORT", "70000")
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.toml"), nil); err == nil {
		t.Error("Expected error for out of range port")
	}
}
