package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestResolveDataDir(t *testing.T) {
	tmpDir := t.TempDir()

	originalDir := os.Getenv(EnvDataDir)
	defer os.Setenv(EnvDataDir, originalDir)
	originalHome := os.Getenv("HOME")
	defer os.Setenv("HOME", originalHome)

	os.Setenv(EnvDataDir, filepath.Join(tmpDir, "from-env"))
	dir, err := ResolveDataDir("/explicit")
	if err != nil || dir != "/explicit" {
		t.Errorf("Expected explicit dir to win, got %q (%v)", dir, err)
	}

	dir, err = ResolveDataDir("")
	if err != nil || dir != filepath.Join(tmpDir, "from-env") {
		t.Errorf("Expected env dir, got %q (%v)", dir, err)
	}

	os.Setenv(EnvDataDir, "")
	os.Setenv("HOME", tmpDir)
	dir, err = ResolveDataDir("")
	if err != nil || dir != filepath.Join(tmpDir, ".pocket-debrief") {
		t.Errorf("Expected home default, got %q (%v)", dir, err)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DateLocale != LocaleEnglish || cfg.Theme != ThemeAuto || !cfg.ConfirmDestructive {
		t.Errorf("Unexpected defaults: %+v", cfg)
	}
}

func TestLoadReadsYAML(t *testing.T) {
	dir := t.TempDir()
	content := "date_locale: JA\ntheme: dark\nconfirm_destructive: false\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DateLocale != LocaleJapanese {
		t.Errorf("Expected ja locale, got %q", cfg.DateLocale)
	}
	if cfg.Theme != ThemeDark {
		t.Errorf("Expected dark theme, got %q", cfg.Theme)
	}
	if cfg.ConfirmDestructive {
		t.Error("Expected confirm_destructive to be false")
	}
}

func TestLoadMalformedFallsBackToDefaults(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("date_locale: [unclosed"), 0644)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Malformed config must not be fatal: %v", err)
	}
	if cfg.DateLocale != LocaleEnglish {
		t.Errorf("Expected default locale, got %q", cfg.DateLocale)
	}
}

func TestUnknownValuesAreNormalized(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("date_locale: fr\ntheme: neon\n"), 0644)

	cfg, _ := Load(dir)
	if cfg.DateLocale != LocaleEnglish || cfg.Theme != ThemeAuto {
		t.Errorf("Expected normalized values, got %+v", cfg)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	cfg := Default(dir)
	cfg.DateLocale = LocaleJapanese
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.DateLocale != LocaleJapanese {
		t.Errorf("Expected saved locale to persist, got %q", loaded.DateLocale)
	}
}

func TestDateLayout(t *testing.T) {
	date := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	cfg := Default("")
	if got := date.Format(cfg.DateLayout()); got != "Mar 5, 2024" {
		t.Errorf("Unexpected English date %q", got)
	}

	cfg.DateLocale = LocaleJapanese
	if got := date.Format(cfg.DateLayout()); got != "2024年3月5日" {
		t.Errorf("Unexpected Japanese date %q", got)
	}
}

func TestGlamourStyle(t *testing.T) {
	original := os.Getenv("GLAMOUR_STYLE")
	defer os.Setenv("GLAMOUR_STYLE", original)
	os.Setenv("GLAMOUR_STYLE", "")

	cfg := Default("")
	if cfg.GlamourStyle() != "" {
		t.Error("Expected auto detection by default")
	}
	cfg.Theme = ThemeLight
	if cfg.GlamourStyle() != "light" {
		t.Errorf("Expected light, got %q", cfg.GlamourStyle())
	}
	os.Setenv("GLAMOUR_STYLE", "dracula")
	if cfg.GlamourStyle() != "dracula" {
		t.Errorf("Expected env override, got %q", cfg.GlamourStyle())
	}
}
