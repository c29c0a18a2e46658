package config

import (
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DATA_FILE", "EXPORT_DIR", "CLEAN_BY_DEFAULT", "CLEAN_WORKERS"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("port = %q, want \"8080\"", cfg.Server.Port)
	}
	if cfg.Data.ExportDir != "exports" {
		t.Errorf("export dir = %q, want \"exports\"", cfg.Data.ExportDir)
	}
	if !cfg.Data.CleanByDefault {
		t.Error("cleaning should default on")
	}
	if cfg.Data.Workers != 0 {
		t.Errorf("workers = %d, want 0", cfg.Data.Workers)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATA_FILE", "/tmp/orders.csv")
	t.Setenv("CLEAN_BY_DEFAULT", "false")
	t.Setenv("CLEAN_WORKERS", "4")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Port != "9090" {
		t.Errorf("port = %q, want \"9090\"", cfg.Server.Port)
	}
	if cfg.Data.FilePath != "/tmp/orders.csv" {
		t.Errorf("file path = %q", cfg.Data.FilePath)
	}
	if cfg.Data.CleanByDefault {
		t.Error("CLEAN_BY_DEFAULT=false should disable cleaning")
	}
	if cfg.Data.Workers != 4 {
		t.Errorf("workers = %d, want 4", cfg.Data.Workers)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"empty port", func(c *Config) { c.Server.Port = "" }, true},
		{"negative workers", func(c *Config) { c.Data.Workers = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Server: ServerConfig{Port: "8080"}}
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
