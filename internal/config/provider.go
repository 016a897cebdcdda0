package config

// ConfigProvider defines the interface for configuration access
type ConfigProvider interface {
	GetDefaultFormat() string
	GetOutputDir() string
	GetLocale() string
	GetEncodings() []string
	GetLogPath() string
	GetWatchPath() string
	GetWatchInterval() int
	GetStatePath() string
	GetPidFile() string
	Validate(formats []string) error
}

// ConfigImpl implements ConfigProvider interface
type ConfigImpl struct {
	cfg *Config
}

// NewConfigProvider creates a new ConfigProvider instance
func NewConfigProvider(cfg *Config) ConfigProvider {
	return &ConfigImpl{cfg: cfg}
}

func (c *ConfigImpl) GetDefaultFormat() string {
	return c.cfg.DefaultFormat
}

func (c *ConfigImpl) GetOutputDir() string {
	return c.cfg.OutputDir
}

func (c *ConfigImpl) GetLocale() string {
	return c.cfg.Locale
}

func (c *ConfigImpl) GetEncodings() []string {
	return c.cfg.Encodings
}

func (c *ConfigImpl) GetLogPath() string {
	return c.cfg.LogPath
}

func (c *ConfigImpl) GetWatchPath() string {
	return c.cfg.WatchPath
}

func (c *ConfigImpl) GetWatchInterval() int {
	return c.cfg.WatchInterval
}

func (c *ConfigImpl) GetStatePath() string {
	return c.cfg.StatePath
}

func (c *ConfigImpl) GetPidFile() string {
	return c.cfg.PidFile
}

func (c *ConfigImpl) Validate(formats []string) error {
	return c.cfg.Validate(formats)
}
