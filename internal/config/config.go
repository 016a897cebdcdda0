package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/user"
	"path"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/joho/godotenv"

	"github.com/ryan-gang/bookmark-convert/internal/encoder"
	"github.com/ryan-gang/bookmark-convert/internal/source"
)

type Config struct {
	DefaultFormat string   `json:"default_format"`
	OutputDir     string   `json:"output_dir"`
	Locale        string   `json:"locale"`
	Encodings     []string `json:"encodings"`
	LogPath       string   `json:"log_path"`

	WatchPath     string `json:"watch_path"`
	WatchInterval int    `json:"watch_interval_minutes"`
	StatePath     string `json:"state_path"`
	PidFile       string `json:"pid_file"`
}

const XdgConfigHome = "XDG_CONFIG_HOME"
const ConfigFolderName = "bookmark-convert"
const EnvPrefix = "BOOKMARK_CONVERT_"

func DefaultConfigPath() (string, error) {
	configFolder, err := defaultConfigDir()
	if err != nil {
		return "", err
	}
	return path.Join(configFolder, "config.json"), nil
}

func defaultConfigDir() (string, error) {
	xdgConfigHome := os.Getenv(XdgConfigHome)
	if len(xdgConfigHome) != 0 {
		return path.Join(xdgConfigHome, ConfigFolderName), nil
	}
	user, err := user.Current()
	if err != nil {
		return "", fmt.Errorf("couldn't get current user: %w", err)
	}
	return path.Join(user.HomeDir, ".config", ConfigFolderName), nil
}

func NewConfig() *Config {
	config := Config{}
	config.DefaultFormat = "excel"
	config.Locale = "en"
	config.Encodings = append([]string(nil), source.DefaultEncodings...)
	config.WatchInterval = 15
	return &config
}

// SetDefaults fills the file locations left empty, next to the config file.
func SetDefaults(c *Config, configPath string) {
	configDir := path.Dir(configPath)
	if c.LogPath == "" {
		c.LogPath = path.Join(configDir, "bookmark.log")
	}
	if c.StatePath == "" {
		c.StatePath = path.Join(configDir, "processed_exports.json")
	}
	if c.PidFile == "" {
		c.PidFile = path.Join(configDir, "bookmark-convert.pid")
	}
	if len(c.Encodings) == 0 {
		c.Encodings = append([]string(nil), source.DefaultEncodings...)
	}
}

// ApplyEnv overrides fields from BOOKMARK_CONVERT_* variables, reading a
// .env file in the working directory first when one exists.
func ApplyEnv(c *Config) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	if v := os.Getenv(EnvPrefix + "FORMAT"); v != "" {
		c.DefaultFormat = v
	}
	if v := os.Getenv(EnvPrefix + "OUTPUT_DIR"); v != "" {
		c.OutputDir = v
	}
	if v := os.Getenv(EnvPrefix + "LOCALE"); v != "" {
		c.Locale = v
	}
	if v := os.Getenv(EnvPrefix + "ENCODINGS"); v != "" {
		c.Encodings = splitList(v)
	}
	if v := os.Getenv(EnvPrefix + "LOG_PATH"); v != "" {
		c.LogPath = v
	}
	if v := os.Getenv(EnvPrefix + "WATCH_PATH"); v != "" {
		c.WatchPath = v
	}
	if v := os.Getenv(EnvPrefix + "WATCH_INTERVAL"); v != "" {
		interval, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sWATCH_INTERVAL: %w", EnvPrefix, err)
		}
		c.WatchInterval = interval
	}
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate checks field values against the available output formats.
func (c Config) Validate(formats []string) error {
	locales := make([]interface{}, len(encoder.Locales))
	for i, l := range encoder.Locales {
		locales[i] = l
	}
	allowed := make([]interface{}, len(formats))
	for i, f := range formats {
		allowed[i] = f
	}

	return validation.ValidateStruct(&c,
		validation.Field(&c.DefaultFormat, validation.Required, validation.In(allowed...)),
		validation.Field(&c.Locale, validation.In(locales...)),
		validation.Field(&c.WatchInterval, validation.Required, validation.Min(1)),
		validation.Field(&c.Encodings, validation.Each(validation.By(supportedEncoding))),
	)
}

func supportedEncoding(value interface{}) error {
	name, _ := value.(string)
	if !source.Supported(name) {
		return fmt.Errorf("unsupported encoding %q", name)
	}
	return nil
}

// Load reads filename, falling back to defaults when it does not exist, then
// applies environment overrides.
func Load(filename string) (Config, error) {
	c := *NewConfig()

	data, err := os.ReadFile(filename)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, &c); err != nil {
			return Config{}, fmt.Errorf("parsing config %s: %w", filename, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return Config{}, fmt.Errorf("reading config %s: %w", filename, err)
	}

	if err := ApplyEnv(&c); err != nil {
		return Config{}, err
	}
	SetDefaults(&c, filename)
	return c, nil
}

func LoadProvider(filename string) (ConfigProvider, error) {
	cfg, err := Load(filename)
	if err != nil {
		return nil, err
	}
	return NewConfigProvider(&cfg), nil
}

func Save(c Config, filename string) error {
	if err := os.MkdirAll(path.Dir(filename), os.ModePerm); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := json.MarshalIndent(c, "", "	")
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0644)
}
