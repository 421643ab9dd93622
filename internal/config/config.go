package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// DefaultModel is the model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// Config holds the top-level habitflow configuration.
type Config struct {
	User   UserConfig   `toml:"user"`
	AI     AIConfig     `toml:"ai"`
	UI     UIConfig     `toml:"ui"`
	Habits HabitsConfig `toml:"habits"`
}

type UserConfig struct {
	Name  string `toml:"name"`
	Email string `toml:"email"`
}

type AIConfig struct {
	Provider string `toml:"provider"` // gemini, claude
	Model    string `toml:"model"`
	// SystemInstructions is appended to the coaching prompts.
	SystemInstructions string `toml:"system_instructions"`
}

// UIConfig controls terminal output rendering.
type UIConfig struct {
	// Markdown controls whether AI output is rendered as styled markdown.
	// Defaults to true when not set in config.
	Markdown *bool `toml:"markdown,omitempty"`
}

// RenderMarkdown returns whether markdown rendering is enabled.
// Treats nil (missing from config) as true.
func (u UIConfig) RenderMarkdown() bool {
	if u.Markdown == nil {
		return true
	}
	return *u.Markdown
}

type HabitsConfig struct {
	// ExportDir is where stats reports and retrospective exports land.
	// Empty means the current working directory.
	ExportDir string `toml:"export_dir"`
}

// Paths returns standard XDG-compliant paths.
type Paths struct {
	ConfigDir  string
	DataDir    string
	CacheDir   string
	StateDir   string
	ConfigFile string
	DBFile     string
}

// GetPaths returns the resolved paths, respecting XDG env vars.
func GetPaths() Paths {
	home, _ := os.UserHomeDir()

	configDir := envOr("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	dataDir := envOr("XDG_DATA_HOME", filepath.Join(home, ".local", "share"))
	cacheDir := envOr("XDG_CACHE_HOME", filepath.Join(home, ".cache"))
	stateDir := envOr("XDG_STATE_HOME", filepath.Join(home, ".local", "state"))

	appConfig := filepath.Join(configDir, "habitflow")
	appData := filepath.Join(dataDir, "habitflow")

	return Paths{
		ConfigDir:  appConfig,
		DataDir:    appData,
		CacheDir:   filepath.Join(cacheDir, "habitflow"),
		StateDir:   filepath.Join(stateDir, "habitflow"),
		ConfigFile: filepath.Join(appConfig, "config.toml"),
		DBFile:     filepath.Join(appData, "habitflow.db"),
	}
}

// EnsureDirs creates all required directories.
func (p Paths) EnsureDirs() error {
	dirs := []string{p.ConfigDir, p.DataDir, p.CacheDir, p.StateDir}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return err
		}
	}
	return nil
}

// Load reads config from disk, returning defaults if not found.
func Load() (*Config, error) {
	paths := GetPaths()
	cfg := &Config{}

	data, err := os.ReadFile(paths.ConfigFile)
	if err != nil {
		if os.IsNotExist(err) {
			return defaultConfig(), nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes config to disk.
func Save(cfg *Config) error {
	paths := GetPaths()
	if err := paths.EnsureDirs(); err != nil {
		return err
	}

	f, err := os.Create(paths.ConfigFile)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// Initialized returns true if habitflow has been set up.
func Initialized() bool {
	paths := GetPaths()
	_, err := os.Stat(paths.ConfigFile)
	return err == nil
}

// BoolPtr returns a pointer to a bool value.
func BoolPtr(v bool) *bool {
	return &v
}

func defaultConfig() *Config {
	return &Config{
		AI: AIConfig{
			Provider: "gemini",
			Model:    DefaultModel,
		},
		UI: UIConfig{
			Markdown: BoolPtr(true),
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
