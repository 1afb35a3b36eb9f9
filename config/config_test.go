package config

import (
	"os"
	"path/filepath"
	"testing"
)

const validConf = `[api]
environment: test
listen_port: 8080
warehouse_host: localhost
warehouse_port: 5432
warehouse_database: analytics
warehouse_username: api
warehouse_password: secret
cache_ttl_seconds: 60
`

func writeConf(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "api.conf")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("os.WriteFile() %+v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	if err := Load(writeConf(t, validConf)); err != nil {
		t.Fatalf("Load() %+v", err)
	}

	if got := ConfigStrings[Environment]; got != "test" {
		t.Errorf("ConfigStrings[Environment] = %q, expected %q", got, "test")
	}
	if got := ConfigInt64s[ListenPort]; got != 8080 {
		t.Errorf("ConfigInt64s[ListenPort] = %d, expected 8080", got)
	}
	if got := ConfigStrings[WarehousePassword]; got != "secret" {
		t.Errorf("ConfigStrings[WarehousePassword] = %q, expected %q", got, "secret")
	}
}

func TestLoadCacheTuningDefaults(t *testing.T) {
	if err := Load(writeConf(t, validConf)); err != nil {
		t.Fatalf("Load() %+v", err)
	}

	// Explicitly configured
	if got := ConfigInt64s[CacheTTLSeconds]; got != 60 {
		t.Errorf("ConfigInt64s[CacheTTLSeconds] = %d, expected 60", got)
	}

	// Defaulted
	defaults := map[string]int64{
		CacheRefreshSeconds: 600,
		CacheRetrySeconds:   60,
		CachePollSeconds:    2,
		CacheWorkers:        4,
	}
	for key, expected := range defaults {
		if got := ConfigInt64s[key]; got != expected {
			t.Errorf("ConfigInt64s[%s] = %d, expected default %d", key, got, expected)
		}
	}
}

func TestLoadMissingRequiredKey(t *testing.T) {
	conf := `[api]
environment: test
listen_port: 8080
`
	if err := Load(writeConf(t, conf)); err == nil {
		t.Error("Load() succeeded with warehouse keys missing")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if err := Load(filepath.Join(t.TempDir(), "absent.conf")); err == nil {
		t.Error("Load() succeeded for an absent file")
	}
}
