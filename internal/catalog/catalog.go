// internal/catalog/catalog.go
//
// Provides the language catalog the deck is dealt from.
//
// Responsibilities:
//   - Load the catalog from a configured YAML file or fall back to the embedded default.
//   - Validate entries (ids unique and positive, names present, at least two entries).
//   - Supply Languages and Stats to the rest of the server.
//
// Initialization behavior (Init):
//   1. If a path is given (config CATALOG_FILE), load the catalog from that file.
//   2. Otherwise use the embedded assets/catalog.yaml (the eight default languages).
//
// Initialization is run once (sync.Once).

package catalog

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/robalobadob/codememory/assets"
)

// Language is one catalog entry. Its ID becomes the pair id of both cards dealt for it.
type Language struct {
	ID    int    `yaml:"id" json:"id"`
	Name  string `yaml:"name" json:"name"`
	Icon  string `yaml:"icon" json:"icon"`
	Color string `yaml:"color" json:"color"`
}

// document is the on-disk shape of a catalog file.
type document struct {
	Languages []Language `yaml:"languages"`
}

var (
	initOnce   sync.Once
	languages  []Language
	initialErr error
)

// Init loads the catalog from path (embedded default when empty) exactly once.
// Later calls return the first result whatever path they pass.
func Init(path string) error {
	initOnce.Do(func() {
		languages, initialErr = Load(path)
	})
	return initialErr
}

// Load reads and validates a catalog without touching the shared one.
func Load(path string) ([]Language, error) {
	var (
		raw []byte
		err error
	)
	if path != "" {
		raw, err = os.ReadFile(path)
	} else {
		raw, err = assets.Catalog()
	}
	if err != nil {
		return nil, fmt.Errorf("catalog: read: %w", err)
	}
	return Parse(raw)
}

// Parse decodes and validates a catalog document.
func Parse(raw []byte) ([]Language, error) {
	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("catalog: decode: %w", err)
	}
	if err := validate(doc.Languages); err != nil {
		return nil, err
	}
	return doc.Languages, nil
}

// validate enforces the rules a deck relies on: every id pairs exactly two cards.
func validate(list []Language) error {
	if len(list) < 2 {
		return errors.New("catalog: need at least two languages")
	}
	seen := make(map[int]struct{}, len(list))
	for i, l := range list {
		if l.ID <= 0 {
			return fmt.Errorf("catalog: entry %d: id must be positive", i)
		}
		if strings.TrimSpace(l.Name) == "" {
			return fmt.Errorf("catalog: entry %d: name is empty", i)
		}
		if _, dup := seen[l.ID]; dup {
			return fmt.Errorf("catalog: duplicate id %d", l.ID)
		}
		seen[l.ID] = struct{}{}
	}
	return nil
}

// Languages returns a copy of the loaded catalog.
// Init must have succeeded; otherwise the result is empty.
func Languages() []Language {
	return append([]Language(nil), languages...)
}

// Stats returns the number of languages and the resulting deck size.
func Stats() (languageCount int, deckSize int) {
	return len(languages), len(languages) * 2
}
