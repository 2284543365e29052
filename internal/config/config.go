// Package config loads the optional codectl.toml tool configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/joshuapare/codectable/internal/iana"
	"github.com/joshuapare/codectable/pkg/types"
)

// DefaultPath is read when no --config flag is given. Its absence is not an
// error.
const DefaultPath = "codectl.toml"

// Config is the resolved tool configuration.
type Config struct {
	Table    string
	Schema   string
	Source   string
	LogLevel string
	Aliases  [][]string
	Sections []types.Section
}

type fileConfig struct {
	Table    string            `toml:"table"`
	Schema   string            `toml:"schema"`
	Source   string            `toml:"source"`
	LogLevel string            `toml:"log_level"`
	Aliases  [][]string        `toml:"aliases"`
	Sections map[string]string `toml:"sections"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Table:    "table.csv",
		Schema:   types.SchemaStrict,
		Source:   iana.DefaultURL,
		LogLevel: "info",
		Aliases:  types.DefaultAliases(),
		Sections: types.DefaultSections(),
	}
}

// Load overlays the keys defined in the file at path on Default. When
// optional is set, a missing file yields the defaults.
func Load(path string, optional bool) (Config, error) {
	cfg := Default()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return Config{}, fmt.Errorf("load config: unknown keys: %s", strings.Join(keys, ", "))
	}

	if meta.IsDefined("table") {
		if v := strings.TrimSpace(raw.Table); v != "" {
			cfg.Table = v
		}
	}

	if meta.IsDefined("schema") {
		if _, err := types.SchemaByName(raw.Schema); err != nil {
			return Config{}, fmt.Errorf("parse schema: %w", err)
		}
		cfg.Schema = strings.ToLower(strings.TrimSpace(raw.Schema))
	}

	if meta.IsDefined("source") {
		if v := strings.TrimSpace(raw.Source); v != "" {
			cfg.Source = v
		}
	}

	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}

	if meta.IsDefined("aliases") {
		cfg.Aliases = normalizeAliases(raw.Aliases)
	}

	if meta.IsDefined("sections") {
		sections, err := parseSections(raw.Sections)
		if err != nil {
			return Config{}, err
		}
		cfg.Sections = sections
	}

	if _, err := cfg.Catalog(); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// Catalog builds the immutable catalog from the configured sections and
// alias groups.
func (c Config) Catalog() (*types.Catalog, error) {
	return types.NewCatalog(c.Sections, c.Aliases)
}

// SchemaDef resolves the configured schema generation.
func (c Config) SchemaDef() (types.Schema, error) {
	return types.SchemaByName(c.Schema)
}

func normalizeAliases(in [][]string) [][]string {
	out := make([][]string, 0, len(in))
	for _, group := range in {
		var names []string
		for _, n := range group {
			if v := strings.TrimSpace(n); v != "" {
				names = append(names, v)
			}
		}
		if len(names) > 1 {
			out = append(out, names)
		}
	}
	return out
}

// parseSections reads "name = base" pairs, bases written as hex strings.
// The result is ordered by base.
func parseSections(in map[string]string) ([]types.Section, error) {
	out := make([]types.Section, 0, len(in))
	for name, raw := range in {
		v := strings.TrimSpace(raw)
		base, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(v), "0x"), 16, 64)
		if err != nil || !strings.HasPrefix(strings.ToLower(v), "0x") {
			return nil, fmt.Errorf("parse section %s: base %q is not a hex code", name, raw)
		}
		out = append(out, types.Section{Name: strings.TrimSpace(name), Base: base})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Base < out[j].Base })
	return out, nil
}
