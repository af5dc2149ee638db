package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Site is the page content and lookup data shown around the resolver
type Site struct {
	Title       string `yaml:"title"`
	Subtitle    string `yaml:"subtitle"`
	Description string `yaml:"description"`
	Date        string `yaml:"date"`
	PlaylistURL string `yaml:"playlistURL"`

	ParticipantsDir string   `yaml:"participantsDir"`
	PhotoFilename   string   `yaml:"photoFilename"`
	ImageExtensions []string `yaml:"imageExtensions"`

	// Aliases maps nicknames to canonical display names
	Aliases map[string]string `yaml:"aliases"`
	// Redirects maps an input to the page shown after the gate
	Redirects map[string]string `yaml:"redirects"`
}

// DefaultSite returns the built-in page content
func DefaultSite() Site {
	return Site{
		Title:           "One Day",
		Subtitle:        "In July",
		Description:     "A little letter for everyone who was there.",
		Date:            "18-07-2024",
		ParticipantsDir: "Peserta",
		PhotoFilename:   "Photo1.jpg",
		ImageExtensions: []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".avif"},
		Aliases:         map[string]string{},
		Redirects:       map[string]string{},
	}
}

// LoadSite reads a YAML site file over the defaults. An empty path
// returns the defaults.
func LoadSite(path string) (Site, error) {
	site := DefaultSite()
	if path == "" {
		return site, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Site{}, fmt.Errorf("failed to read site file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &site); err != nil {
		return Site{}, fmt.Errorf("failed to parse site file %s: %w", path, err)
	}
	return site, nil
}
