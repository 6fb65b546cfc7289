package db

import (
	"strings"
	"testing"

	"cloudbaro/internal/server/config"
)

func TestBuildDSN(t *testing.T) {
	t.Run("explicit DSN wins", func(t *testing.T) {
		cfg := config.Config{SQLiteDSN: "file::memory:?cache=shared"}
		dsn, err := buildDSN(cfg)
		if err != nil {
			t.Fatalf("buildDSN: %v", err)
		}
		if dsn != "file::memory:?cache=shared" {
			t.Errorf("dsn = %q; want explicit DSN unchanged", dsn)
		}
	})

	t.Run("plain path gets file prefix and pragmas", func(t *testing.T) {
		cfg := config.Config{SQLitePath: t.TempDir() + "/cloudbaro.db"}
		dsn, err := buildDSN(cfg)
		if err != nil {
			t.Fatalf("buildDSN: %v", err)
		}
		if !strings.HasPrefix(dsn, "file:") {
			t.Errorf("dsn = %q; want file: prefix", dsn)
		}
		for _, param := range []string{"_foreign_keys=on", "_busy_timeout=5000", "_journal_mode=WAL"} {
			if !strings.Contains(dsn, param) {
				t.Errorf("dsn = %q; missing %s", dsn, param)
			}
		}
	})

	t.Run("file path with query appends pragmas", func(t *testing.T) {
		cfg := config.Config{SQLitePath: "file:/tmp/a.db?cache=shared"}
		dsn, err := buildDSN(cfg)
		if err != nil {
			t.Fatalf("buildDSN: %v", err)
		}
		if !strings.Contains(dsn, "cache=shared&_foreign_keys=on") {
			t.Errorf("dsn = %q; want pragmas appended with &", dsn)
		}
	})
}
