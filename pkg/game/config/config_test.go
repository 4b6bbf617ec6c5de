package config

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/spf13/pflag"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	s, err := Load("", nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	def := DefaultSettings()
	if s.MaxAttempts != DefaultMaxAttempts {
		t.Errorf("MaxAttempts = %d, want %d", s.MaxAttempts, DefaultMaxAttempts)
	}
	if !s.CreateSpoiler || s.Hints || s.Report {
		t.Errorf("flags = spoiler:%v hints:%v report:%v", s.CreateSpoiler, s.Hints, s.Report)
	}
	if s.Output != def.Output || s.Locale != def.Locale {
		t.Errorf("Output = %q, Locale = %q", s.Output, s.Locale)
	}
	if !slices.Equal(s.NoteworthyExclusions, def.NoteworthyExclusions) {
		t.Errorf("NoteworthyExclusions = %v", s.NoteworthyExclusions)
	}
	if s.Logging.Level != "info" || s.Logging.Format != "text" {
		t.Errorf("Logging = %+v", s.Logging)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, "seedsolver.yaml", `
seed: ABCDEF
world_file: worlds.yaml
hints: true
max_attempts: 4
noteworthy_exclusions: [Magic Bean]
logging:
  level: debug
  format: json
`)
	s, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.Seed != "ABCDEF" || s.WorldFile != "worlds.yaml" || !s.Hints || s.MaxAttempts != 4 {
		t.Errorf("settings = %+v", s)
	}
	if !slices.Equal(s.NoteworthyExclusions, []string{"Magic Bean"}) {
		t.Errorf("NoteworthyExclusions = %v", s.NoteworthyExclusions)
	}
	if s.Logging.Level != "debug" || s.Logging.Format != "json" {
		t.Errorf("Logging = %+v", s.Logging)
	}
	// untouched keys keep their defaults
	if !s.CreateSpoiler {
		t.Error("CreateSpoiler lost its default")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil); err == nil {
		t.Error("expected an error for an explicit missing file")
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "seedsolver.yaml", "max_attempts: 4\nlogging:\n  level: debug\n")
	t.Setenv("SEEDSOLVER_MAX_ATTEMPTS", "7")
	t.Setenv("SEEDSOLVER_LOGGING_LEVEL", "warn")

	s, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.MaxAttempts != 7 {
		t.Errorf("MaxAttempts = %d, want 7", s.MaxAttempts)
	}
	if s.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want warn", s.Logging.Level)
	}
}

func TestLoadFlagsOverrideEverything(t *testing.T) {
	path := writeConfig(t, "seedsolver.yaml", "max_attempts: 4\nworld_file: from-file.yaml\n")
	t.Setenv("SEEDSOLVER_MAX_ATTEMPTS", "7")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Int("max-attempts", DefaultMaxAttempts, "")
	fs.String("world", "", "")
	fs.Bool("hints", false, "")
	if err := fs.Parse([]string{"--max-attempts=2", "--hints"}); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path, fs)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.MaxAttempts != 2 || !s.Hints {
		t.Errorf("MaxAttempts = %d, Hints = %v", s.MaxAttempts, s.Hints)
	}
	if s.WorldFile != "from-file.yaml" {
		t.Errorf("unset flag overrode the file: WorldFile = %q", s.WorldFile)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Settings {
		s := DefaultSettings()
		s.WorldFile = "worlds.yaml"
		return s
	}

	tests := []struct {
		name   string
		modify func(*Settings)
		field  string
	}{
		{"valid", func(*Settings) {}, ""},
		{"no world file", func(s *Settings) { s.WorldFile = "" }, "world_file"},
		{"zero attempts", func(s *Settings) { s.MaxAttempts = 0 }, "max_attempts"},
		{"bad format", func(s *Settings) { s.Logging.Format = "xml" }, "logging.format"},
		{"unknown locale", func(s *Settings) { s.Locale = "xx_XX" }, "locale"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid()
			tt.modify(s)
			err := s.Validate()
			if tt.field == "" {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("Validate() error = %v, want *ConfigError", err)
			}
			if cfgErr.Field != tt.field {
				t.Errorf("Field = %q, want %q", cfgErr.Field, tt.field)
			}
		})
	}
}
