package config

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

//go:embed assets/*.yaml
var defaultAssets embed.FS

// Bundle is everything a battle needs from data files.
type Bundle struct {
	Balance BalanceConfig
	Parts   *PartsConfig
	Medals  *MedalsConfig
	Teams   *TeamsConfig
}

func loadYAML(fsys fs.FS, path string, out any) error {
	b, err := fs.ReadFile(fsys, path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// LoadAll reads balance.yaml, parts.yaml, medals.yaml and teams.yaml from dir.
// An empty dir loads the embedded defaults.
func LoadAll(dir string) (*Bundle, error) {
	if dir == "" {
		sub, err := fs.Sub(defaultAssets, "assets")
		if err != nil {
			return nil, err
		}
		return loadFrom(sub, "embedded")
	}
	return loadFrom(os.DirFS(dir), dir)
}

// LoadDefault loads the embedded asset set.
func LoadDefault() (*Bundle, error) {
	return LoadAll("")
}

func loadFrom(fsys fs.FS, origin string) (*Bundle, error) {
	var bc BalanceConfig
	var pc PartsConfig
	var mc MedalsConfig
	var tc TeamsConfig
	if err := loadYAML(fsys, "balance.yaml", &bc); err != nil {
		return nil, err
	}
	if err := loadYAML(fsys, "parts.yaml", &pc); err != nil {
		return nil, err
	}
	if err := loadYAML(fsys, "medals.yaml", &mc); err != nil {
		return nil, err
	}
	if err := loadYAML(fsys, "teams.yaml", &tc); err != nil {
		return nil, err
	}
	b := &Bundle{Balance: bc.withDefaults(), Parts: &pc, Medals: &mc, Teams: &tc}
	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", filepath.ToSlash(origin), err)
	}
	return b, nil
}
