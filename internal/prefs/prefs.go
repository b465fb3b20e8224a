// Package prefs handles user preference persistence for the player.
// Preferences are stored in ~/.config/nowplaying/prefs.toml and hold the
// Discord identifier between runs along with the selected theme.
package prefs

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
)

// Prefs holds user preferences.
type Prefs struct {
	DiscordID string `toml:"discord_id"`
	Theme     string `toml:"theme"`
}

const (
	defaultPrefsPath = "~/.config/nowplaying/prefs.toml"
	defaultTheme     = "Spotify"
)

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// Load reads preferences from the given path, falling back to defaults if missing.
func Load(path string) (Prefs, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Prefs{Theme: defaultTheme}, nil
	}

	prefs := Prefs{Theme: defaultTheme}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return prefs, nil
		}
		return prefs, nil // Graceful degradation
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return prefs, nil // Graceful degradation
	}

	if err := toml.Unmarshal(bytes, &prefs); err != nil {
		return Prefs{Theme: defaultTheme}, nil // Graceful degradation
	}

	prefs.DiscordID = strings.TrimSpace(prefs.DiscordID)
	if strings.TrimSpace(prefs.Theme) == "" {
		prefs.Theme = defaultTheme
	}

	return prefs, nil
}

// Save writes preferences to the given path, creating directories as needed.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	dir := filepath.Dir(resolved)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	bytes, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	if err := os.WriteFile(resolved, bytes, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}

	return nil
}

// Store is a read-modify-write view of one prefs file. Each setter rewrites
// the whole file and leaves the other fields as they were.
type Store struct {
	path string
	mu   sync.Mutex
}

// NewStore returns a Store for path. An empty path means DefaultPath.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load returns the current preferences.
func (s *Store) Load() (Prefs, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Load(s.path)
}

// LoadIdentifier returns the persisted Discord ID, or "" when none is saved.
func (s *Store) LoadIdentifier() (string, error) {
	p, err := s.Load()
	if err != nil {
		return "", err
	}
	return p.DiscordID, nil
}

// SaveIdentifier persists id.
func (s *Store) SaveIdentifier(id string) error {
	return s.update(func(p *Prefs) { p.DiscordID = strings.TrimSpace(id) })
}

// ClearIdentifier removes the persisted Discord ID.
func (s *Store) ClearIdentifier() error {
	return s.update(func(p *Prefs) { p.DiscordID = "" })
}

// SetTheme persists the theme name.
func (s *Store) SetTheme(name string) error {
	return s.update(func(p *Prefs) { p.Theme = name })
}

func (s *Store) update(fn func(*Prefs)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := Load(s.path)
	if err != nil {
		return err
	}
	fn(&p)
	return Save(s.path, p)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultPrefsPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
