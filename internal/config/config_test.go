package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 4000 {
		t.Errorf("server.port = %d, want 4000", cfg.Server.Port)
	}
	if cfg.Server.MaxBodyBytes != 10<<20 {
		t.Errorf("server.max_body_bytes = %d, want %d", cfg.Server.MaxBodyBytes, 10<<20)
	}
	if cfg.VLM.Model != "gpt-4o" || cfg.VLM.MaxTokens != 500 {
		t.Errorf("vlm = %+v, want gpt-4o/500", cfg.VLM)
	}
	if cfg.VLM.Timeout != 0 {
		t.Errorf("vlm.timeout = %v, want 0", cfg.VLM.Timeout)
	}
	if cfg.Session.DefaultUserID != "guest" || cfg.Session.DefaultGoalCalories != 2000 {
		t.Errorf("session = %+v", cfg.Session)
	}
	if cfg.Storage.Enabled() {
		t.Error("storage should be disabled without an endpoint")
	}
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
server:
  port: 9090
vlm:
  provider: openai
  timeout: 30s
database:
  driver: postgres
  host: db
  user: cal
  password: secret
  dbname: calsnap
`)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("server.port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.VLM.Provider != "openai" || cfg.VLM.Timeout != 30*time.Second {
		t.Errorf("vlm = %+v", cfg.VLM)
	}
	if cfg.VLM.APIKey != "sk-test" {
		t.Errorf("vlm.api_key = %q, want from OPENAI_API_KEY", cfg.VLM.APIKey)
	}
	want := "host=db port=5432 user=cal password=secret dbname=calsnap sslmode=disable"
	if got := cfg.Database.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}

func TestSessionLocation(t *testing.T) {
	tests := []struct {
		tz   string
		want string
	}{
		{"", time.Local.String()},
		{"Local", time.Local.String()},
		{"UTC", "UTC"},
		{"Not/AZone", time.Local.String()},
	}
	for _, tt := range tests {
		c := SessionConfig{Timezone: tt.tz}
		if got := c.Location().String(); got != tt.want {
			t.Errorf("Location(%q) = %q, want %q", tt.tz, got, tt.want)
		}
	}
}
