package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hqlc/hql/internal/config"
)

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "hql.config.yaml"))
	if err != nil {
		t.Fatalf("Load returned error for a missing file: %v", err)
	}
	if !cfg.EmitHelpers {
		t.Fatalf("expected default EmitHelpers=true, got %v", cfg.EmitHelpers)
	}
	if cfg.RecursionLimit != 0 || cfg.IterationLimit != 0 {
		t.Fatalf("expected zero-value limits by default, got %+v", cfg)
	}
}

func TestLoadParsesYAMLFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hql.config.yaml")
	contents := `
recursionLimit: 128
iterationLimit: 64
emitHelpers: false
imports:
  lodash: https://cdn.skypack.dev/lodash
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.RecursionLimit != 128 || cfg.IterationLimit != 64 {
		t.Fatalf("expected parsed limits, got %+v", cfg)
	}
	if cfg.EmitHelpers {
		t.Fatalf("expected emitHelpers=false to be parsed, got true")
	}
	if cfg.Imports["lodash"] != "https://cdn.skypack.dev/lodash" {
		t.Fatalf("expected imports map to be parsed, got %+v", cfg.Imports)
	}
}

func TestLoadInvalidYAMLReturnsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hql.config.yaml")
	if err := os.WriteFile(path, []byte("recursionLimit: [this is not an int"), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	if _, err := config.Load(path); err == nil {
		t.Fatalf("expected an error for malformed YAML")
	}
}
