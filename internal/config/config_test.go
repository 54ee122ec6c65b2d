package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-homedir"
)

func TestProfileValidate(t *testing.T) {
	tests := []struct {
		name    string
		profile Profile
		wantErr bool
	}{
		{
			name: "valid profile",
			profile: Profile{
				Host:     "mainframe.example.com",
				Port:     21,
				User:     "user",
				Password: "pass",
			},
			wantErr: false,
		},
		{
			name: "missing host",
			profile: Profile{
				Port:     21,
				User:     "user",
				Password: "pass",
			},
			wantErr: true,
		},
		{
			name: "missing user",
			profile: Profile{
				Host:     "mainframe.example.com",
				Port:     21,
				Password: "pass",
			},
			wantErr: true,
		},
		{
			name: "missing password",
			profile: Profile{
				Host: "mainframe.example.com",
				Port: 21,
				User: "user",
			},
			wantErr: true,
		},
		{
			name: "port out of range",
			profile: Profile{
				Host:     "mainframe.example.com",
				Port:     70000,
				User:     "user",
				Password: "pass",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.profile.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, ".zmconfig")

	original := &Config{
		Profiles: map[string]*Profile{
			"test": {
				Host:     "mainframe.example.com",
				Port:     2121,
				User:     "testuser",
				Password: "testpass",
				HLQ:      "TESTUSER",

				WarehouseDir: "/data/zos",
			},
		},
		DefaultProfile: "test",
	}

	if err := original.Save(configPath); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	info, err := os.Stat(configPath)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("file permissions = %o, want 0600", info.Mode().Perm())
	}

	loaded, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if loaded.DefaultProfile != original.DefaultProfile {
		t.Errorf("DefaultProfile = %q, want %q", loaded.DefaultProfile, original.DefaultProfile)
	}

	profile, err := loaded.GetProfile("test")
	if err != nil {
		t.Fatalf("GetProfile() error = %v", err)
	}

	if profile.Host != "mainframe.example.com" {
		t.Errorf("Host = %q, want mainframe.example.com", profile.Host)
	}
	if profile.Port != 2121 {
		t.Errorf("Port = %d, want 2121", profile.Port)
	}
	if profile.HLQ != "TESTUSER" {
		t.Errorf("HLQ = %q, want TESTUSER", profile.HLQ)
	}
	if profile.WarehouseDir != "/data/zos" {
		t.Errorf("WarehouseDir = %q, want /data/zos", profile.WarehouseDir)
	}
}

func TestConfigGetProfile(t *testing.T) {
	cfg := &Config{
		Profiles: map[string]*Profile{
			"prod": {Host: "prod.example.com"},
			"dev":  {Host: "dev.example.com"},
		},
		DefaultProfile: "prod",
	}

	t.Run("get by name", func(t *testing.T) {
		p, err := cfg.GetProfile("dev")
		if err != nil {
			t.Fatalf("error: %v", err)
		}
		if p.Host != "dev.example.com" {
			t.Errorf("Host = %q, want dev.example.com", p.Host)
		}
	})

	t.Run("get default", func(t *testing.T) {
		p, err := cfg.GetProfile("")
		if err != nil {
			t.Fatalf("error: %v", err)
		}
		if p.Host != "prod.example.com" {
			t.Errorf("Host = %q, want prod.example.com", p.Host)
		}
	})

	t.Run("not found", func(t *testing.T) {
		_, err := cfg.GetProfile("nonexistent")
		if err == nil {
			t.Error("expected error for nonexistent profile")
		}
	})

	t.Run("no default", func(t *testing.T) {
		empty := &Config{}
		if _, err := empty.GetProfile(""); err == nil {
			t.Error("expected error without a default profile")
		}
	})
}

func TestLoadDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, ".zmconfig")

	// Config without port
	content := `profiles:
  test:
    host: mainframe.example.com
    user: user
    password: pass
default_profile: test
`
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	profile, _ := cfg.GetProfile("test")
	if profile.Port != DefaultPort {
		t.Errorf("Port = %d, want %d", profile.Port, DefaultPort)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent"))
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestPath(t *testing.T) {
	home, err := homedir.Dir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	got, err := Path("")
	if err != nil {
		t.Fatalf("Path() error = %v", err)
	}
	if want := filepath.Join(home, ".zmconfig"); got != want {
		t.Errorf("Path(\"\") = %q, want %q", got, want)
	}

	got, err = Path("/etc/zm.yaml")
	if err != nil {
		t.Fatalf("Path() error = %v", err)
	}
	if got != "/etc/zm.yaml" {
		t.Errorf("Path(/etc/zm.yaml) = %q", got)
	}
}
