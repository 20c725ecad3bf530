package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/balzaczyy/goluke/core/index"
	"github.com/op/go-logging"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "luke.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
log_level = "debug"
deletion_policy = "none"
format = "json"

[export]
compress_level = 4
`)
	conf, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	assertEquals(t, path, conf.Source)
	assertEquals(t, FORMAT_JSON, conf.Format)
	assertEquals(t, 4, conf.Export.CompressLevel)
	level, err := conf.Level()
	assertEquals(t, nil, err)
	assertEquals(t, logging.DEBUG, level)
	assertEquals(t, index.IndexDeletionPolicy(index.NO_DELETION_POLICY), conf.Policy())
}

func TestLoadFileKeepsDefaults(t *testing.T) {
	conf, err := LoadFile(writeConfig(t, `format = "text"`))
	if err != nil {
		t.Fatal(err)
	}
	assertEquals(t, "WARNING", conf.LogLevel)
	assertEquals(t, 2, conf.Export.CompressLevel)
	assertEquals(t, index.IndexDeletionPolicy(index.KEEP_ONLY_LAST_COMMIT_DELETION_POLICY), conf.Policy())
}

func TestLoadFileRejects(t *testing.T) {
	for _, content := range []string{
		`log_level = "loud"`,
		`deletion_policy = "keep-all"`,
		`format = "xml"`,
		"[export]\ncompress_level = 9",
		`colour = "blue"`,
		`format = `,
	} {
		if _, err := LoadFile(writeConfig(t, content)); err == nil {
			t.Errorf("expected error for %q", content)
		}
	}
}

func TestLoadOrder(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(ENV_CONFIG, "")

	// nothing anywhere: defaults
	conf, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	assertEquals(t, "", conf.Source)
	assertEquals(t, FORMAT_TEXT, conf.Format)

	homeFile := filepath.Join(home, DEFAULT_FILENAME)
	if err = os.WriteFile(homeFile, []byte(`format = "json"`), 0o644); err != nil {
		t.Fatal(err)
	}
	conf, err = Load("")
	if err != nil {
		t.Fatal(err)
	}
	assertEquals(t, homeFile, conf.Source)

	envFile := writeConfig(t, `log_level = "info"`)
	t.Setenv(ENV_CONFIG, envFile)
	conf, err = Load("")
	if err != nil {
		t.Fatal(err)
	}
	assertEquals(t, envFile, conf.Source)

	explicit := writeConfig(t, `log_level = "error"`)
	conf, err = Load(explicit)
	if err != nil {
		t.Fatal(err)
	}
	assertEquals(t, explicit, conf.Source)
	assertEquals(t, "error", conf.LogLevel)
}

func TestLoadMissingExplicit(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assertEquals(t, true, errors.Is(err, os.ErrNotExist))
	assertEquals(t, true, strings.Contains(err.Error(), "missing.toml"))
}

func assertEquals(t *testing.T, a, b interface{}) {
	t.Helper()
	if a != b {
		t.Errorf("Expected '%v', but '%v'", a, b)
	}
}
