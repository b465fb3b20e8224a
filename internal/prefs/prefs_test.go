package prefs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	p, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if p.Theme != defaultTheme {
		t.Fatalf("Theme = %q, want %q", p.Theme, defaultTheme)
	}
	if p.DiscordID != "" {
		t.Fatalf("DiscordID = %q, want empty", p.DiscordID)
	}
}

func TestLoad_ReadsExistingFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	prefsDir := filepath.Join(home, ".config", "nowplaying")
	if err := os.MkdirAll(prefsDir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	prefsFile := filepath.Join(prefsDir, "prefs.toml")
	body := "discord_id = \" 94490510688792576 \"\ntheme = \"Slate\"\n"
	if err := os.WriteFile(prefsFile, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if p.Theme != "Slate" {
		t.Fatalf("Theme = %q, want %q", p.Theme, "Slate")
	}
	if p.DiscordID != "94490510688792576" {
		t.Fatalf("DiscordID = %q, want trimmed id", p.DiscordID)
	}
}

func TestSave_CreatesFileAndDirs(t *testing.T) {
	tmp := t.TempDir()
	prefsFile := filepath.Join(tmp, "subdir", "prefs.toml")

	p := Prefs{DiscordID: "123", Theme: "Slate"}
	if err := Save(prefsFile, p); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	loaded, err := Load(prefsFile)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if loaded != p {
		t.Fatalf("Load = %#v, want %#v", loaded, p)
	}
}

func TestLoad_EmptyThemeFallsBackToDefault(t *testing.T) {
	tmp := t.TempDir()
	prefsFile := filepath.Join(tmp, "prefs.toml")
	if err := os.WriteFile(prefsFile, []byte("theme = \"\"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p, err := Load(prefsFile)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if p.Theme != defaultTheme {
		t.Fatalf("Theme = %q, want %q", p.Theme, defaultTheme)
	}
}

func TestLoad_InvalidTOMLFallsBackToDefault(t *testing.T) {
	tmp := t.TempDir()
	prefsFile := filepath.Join(tmp, "prefs.toml")
	if err := os.WriteFile(prefsFile, []byte("not valid toml {{{\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p, err := Load(prefsFile)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if p.Theme != defaultTheme || p.DiscordID != "" {
		t.Fatalf("Load = %#v, want defaults", p)
	}
}

func TestStore_IdentifierLifecycle(t *testing.T) {
	prefsFile := filepath.Join(t.TempDir(), "prefs.toml")
	s := NewStore(prefsFile)

	id, err := s.LoadIdentifier()
	if err != nil {
		t.Fatalf("LoadIdentifier returned error: %v", err)
	}
	if id != "" {
		t.Fatalf("LoadIdentifier = %q, want empty", id)
	}

	if err := s.SetTheme("Kanagawa"); err != nil {
		t.Fatalf("SetTheme returned error: %v", err)
	}
	if err := s.SaveIdentifier("123"); err != nil {
		t.Fatalf("SaveIdentifier returned error: %v", err)
	}

	// A fresh store on the same file sees the saved id.
	id, err = NewStore(prefsFile).LoadIdentifier()
	if err != nil {
		t.Fatalf("LoadIdentifier returned error: %v", err)
	}
	if id != "123" {
		t.Fatalf("LoadIdentifier = %q, want %q", id, "123")
	}

	if err := s.ClearIdentifier(); err != nil {
		t.Fatalf("ClearIdentifier returned error: %v", err)
	}
	p, err := s.Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if p.DiscordID != "" {
		t.Fatalf("DiscordID = %q, want cleared", p.DiscordID)
	}
	if p.Theme != "Kanagawa" {
		t.Fatalf("Theme = %q, want preserved %q", p.Theme, "Kanagawa")
	}
}
