// Package settings persists operator preferences of the admin dashboard as a
// YAML file. The whole object is loaded, changed and written back on every
// update.
package settings

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/agrodash/agroadmin/internal/filex"
	"github.com/agrodash/agroadmin/internal/logging"
	"gopkg.in/yaml.v3"
)

// ErrInvalid marks settings values out of range.
var ErrInvalid = errors.New("invalid settings")

// Settings is the persisted preference object.
type Settings struct {
	DarkMode bool   `yaml:"dark_mode" json:"dark_mode"`
	Locale   string `yaml:"locale" json:"locale"`
	Currency string `yaml:"currency" json:"currency"`
	PageSize int    `yaml:"page_size" json:"page_size"`
}

// Defaults returns the settings used when nothing is stored.
func Defaults() Settings {
	return Settings{
		DarkMode: false,
		Locale:   "en",
		Currency: "USD",
		PageSize: 20,
	}
}

// Validate checks value ranges.
func (s Settings) Validate() error {
	if s.PageSize < 1 || s.PageSize > 200 {
		return fmt.Errorf("%w: page_size must be between 1 and 200, got %d", ErrInvalid, s.PageSize)
	}
	if len(s.Currency) != 3 {
		return fmt.Errorf("%w: currency must be a 3-letter code, got %q", ErrInvalid, s.Currency)
	}
	if s.Locale == "" {
		return fmt.Errorf("%w: locale is required", ErrInvalid)
	}
	return nil
}

// Store reads and writes Settings at a file path.
type Store struct {
	path string
	log  logging.Logger
	mu   sync.Mutex
}

func NewStore(path string, log logging.Logger) *Store {
	return &Store{path: path, log: log.With("module", "settings")}
}

// Load returns the stored settings merged over Defaults. A missing file
// yields the defaults. An unreadable or malformed file is logged and also
// yields the defaults.
func (s *Store) Load(ctx context.Context) Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *Store) load(ctx context.Context) Settings {
	out := Defaults()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.log.Warn(ctx, "cannot read settings, using defaults", "path", s.path, "error", err)
		}
		return out
	}

	// Decode into a copy so a half-parsed file does not leak into the result.
	merged := Defaults()
	if err := yaml.Unmarshal(data, &merged); err != nil {
		s.log.Warn(ctx, "cannot parse settings, using defaults", "path", s.path, "error", err)
		return out
	}
	if err := merged.Validate(); err != nil {
		s.log.Warn(ctx, "stored settings invalid, using defaults", "path", s.path, "error", err)
		return out
	}
	return merged
}

// Update loads the settings, applies fn, validates and saves the result.
func (s *Store) Update(ctx context.Context, fn func(*Settings)) (Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.load(ctx)
	fn(&cur)
	if err := cur.Validate(); err != nil {
		return Settings{}, err
	}

	data, err := yaml.Marshal(cur)
	if err != nil {
		return Settings{}, fmt.Errorf("encode settings: %w", err)
	}
	if err := filex.WriteFileAtomic(s.path, data, 0o600); err != nil {
		return Settings{}, fmt.Errorf("save settings: %w", err)
	}
	return cur, nil
}

// Reset removes the stored file so Defaults apply again.
func (s *Store) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("reset settings: %w", err)
	}
	return nil
}

// Patch is a partial update of Settings; nil fields are left unchanged.
type Patch struct {
	DarkMode *bool   `json:"dark_mode"`
	Locale   *string `json:"locale"`
	Currency *string `json:"currency"`
	PageSize *int    `json:"page_size"`
}

// Apply copies the set fields of p onto s.
func (p Patch) Apply(s *Settings) {
	if p.DarkMode != nil {
		s.DarkMode = *p.DarkMode
	}
	if p.Locale != nil {
		s.Locale = *p.Locale
	}
	if p.Currency != nil {
		s.Currency = *p.Currency
	}
	if p.PageSize != nil {
		s.PageSize = *p.PageSize
	}
}
