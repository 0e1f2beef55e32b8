package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Presentation holds the cosmetic parts of outbound messages. Every field has
// a compiled-in default; a YAML file may override any subset.
type Presentation struct {
	ServerName    string `yaml:"server_name"`
	ServerAddress string `yaml:"server_address"`
	ThumbnailURL  string `yaml:"thumbnail_url"`

	Icons struct {
		Brand       string `yaml:"brand"`
		Online      string `yaml:"online"`
		Offline     string `yaml:"offline"`
		Total       string `yaml:"total"`
		Achievement string `yaml:"achievement"`
		Join        string `yaml:"join"`
		Leave       string `yaml:"leave"`
		Warning     string `yaml:"warning"`
	} `yaml:"icons"`

	Colors struct {
		Warning     int `yaml:"warning"`
		Maintenance int `yaml:"maintenance"`
		Normal      int `yaml:"normal"`
	} `yaml:"colors"`

	Webhook struct {
		Username  string `yaml:"username"`
		AvatarURL string `yaml:"avatar_url"`
	} `yaml:"webhook"`
}

func DefaultPresentation() Presentation {
	var p Presentation
	p.ServerName = "Minecraft"
	p.ServerAddress = "localhost"
	p.Icons.Brand = "⛏️"
	p.Icons.Online = "🟢"
	p.Icons.Offline = "🔴"
	p.Icons.Total = "👥"
	p.Icons.Achievement = "🏆"
	p.Icons.Join = "📥"
	p.Icons.Leave = "📤"
	p.Icons.Warning = "⚠️"
	p.Colors.Warning = 0xF1C40F
	p.Colors.Maintenance = 0xE67E22
	p.Colors.Normal = 0x2F3136
	p.Webhook.Username = "Server"
	return p
}

// LoadPresentation returns the defaults overlaid with path. An empty path is
// not an error.
func LoadPresentation(path string) (Presentation, error) {
	p := DefaultPresentation()
	if path == "" {
		return p, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("read presentation file: %w", err)
	}
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return p, fmt.Errorf("parse presentation file %s: %w", path, err)
	}
	return p, nil
}
