package config

import (
	"testing"
)

func TestConfigYAMLRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()

	cfg := DefaultConfig()
	cfg.Server.URL = "https://analyzer.example.com"
	cfg.Analyze.Method = "openai"

	if err := WriteConfig(tmpDir, cfg); err != nil {
		t.Fatalf("WriteConfig failed: %v", err)
	}

	loaded, err := ReadConfig(tmpDir)
	if err != nil {
		t.Fatalf("ReadConfig failed: %v", err)
	}

	if loaded.Server.URL != "https://analyzer.example.com" {
		t.Errorf("Server.URL: got %q, want %q", loaded.Server.URL, "https://analyzer.example.com")
	}
	if loaded.Analyze.Method != "openai" {
		t.Errorf("Analyze.Method: got %q, want %q", loaded.Analyze.Method, "openai")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Server.Timeout != 10 {
		t.Errorf("default Server.Timeout: got %d, want 10", cfg.Server.Timeout)
	}
	if cfg.Analyze.Method != "mt5" {
		t.Errorf("default Analyze.Method: got %q, want %q", cfg.Analyze.Method, "mt5")
	}
}

func TestReadConfigMissing(t *testing.T) {
	if _, err := ReadConfig(t.TempDir()); err == nil {
		t.Fatal("expected error for missing config")
	}
}

func TestHomeOverride(t *testing.T) {
	t.Setenv("DYSLEXIA_HOME", "/tmp/dyslexia-test-home")

	dir, err := Home()
	if err != nil {
		t.Fatalf("Home failed: %v", err)
	}
	if dir != "/tmp/dyslexia-test-home" {
		t.Errorf("Home: got %q, want DYSLEXIA_HOME override", dir)
	}
}
