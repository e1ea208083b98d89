package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	m := NewManager(path)

	s, err := m.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if s.Server.Port != 7788 || s.Metadata.Language != "en" {
		t.Fatalf("unexpected defaults %+v", s)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected settings file to be written: %v", err)
	}
}

func TestLoadBackfillsMissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte(`{"metadata":{"tmdbApiKey":"secret"}}`), 0o644); err != nil {
		t.Fatalf("write settings: %v", err)
	}

	s, err := NewManager(path).Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if s.Metadata.TMDBAPIKey != "secret" {
		t.Fatalf("expected api key preserved, got %q", s.Metadata.TMDBAPIKey)
	}
	if s.Server.Port == 0 || s.History.SnapshotRefreshHours == 0 || s.Sessions.TTLDays == 0 {
		t.Fatalf("expected defaults backfilled, got %+v", s)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.json")
	m := NewManager(path)

	s := DefaultSettings()
	s.Server.Port = 9000
	if err := m.Save(s); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := m.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Server.Port != 9000 {
		t.Fatalf("expected saved port, got %d", loaded.Server.Port)
	}
}
