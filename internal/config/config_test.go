package config

import (
	"testing"
	"time"
)

func TestLoadAppliesDefaults(t *testing.T) {
	t.Setenv("ROBOFLOW_API_KEY", "key-123")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}
	if cfg.ListenAddr != ":8080" {
		t.Fatalf("unexpected listen addr: %s", cfg.ListenAddr)
	}
	if cfg.RoboflowBaseURL != "https://classify.roboflow.com" {
		t.Fatalf("unexpected base url: %s", cfg.RoboflowBaseURL)
	}
	if cfg.UpstreamTimeout != 15*time.Second {
		t.Fatalf("unexpected upstream timeout: %v", cfg.UpstreamTimeout)
	}
	if cfg.MaxImageDimension != 1024 {
		t.Fatalf("unexpected max dimension: %d", cfg.MaxImageDimension)
	}
}

func TestLoadOverridesFromEnvironment(t *testing.T) {
	t.Setenv("ROBOFLOW_API_KEY", "key-123")
	t.Setenv("ROBOFLOW_MODEL_VERSION", "3")
	t.Setenv("UPSTREAM_TIMEOUT", "5s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}
	if cfg.RoboflowModelVersion != 3 {
		t.Fatalf("unexpected model version: %d", cfg.RoboflowModelVersion)
	}
	if cfg.UpstreamTimeout != 5*time.Second {
		t.Fatalf("unexpected upstream timeout: %v", cfg.UpstreamTimeout)
	}
}

func TestLoadRequiresAPIKey(t *testing.T) {
	t.Setenv("ROBOFLOW_API_KEY", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when api key is missing")
	}
}
