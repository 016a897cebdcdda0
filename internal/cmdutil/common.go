package cmdutil

import (
	"os"

	"github.com/ryan-gang/bookmark-convert/internal/config"
	"github.com/ryan-gang/bookmark-convert/internal/converter"
	"github.com/ryan-gang/bookmark-convert/internal/decoder"
	"github.com/ryan-gang/bookmark-convert/internal/encoder"
	"github.com/ryan-gang/bookmark-convert/internal/logger"
	"github.com/ryan-gang/bookmark-convert/internal/source"
	"github.com/ryan-gang/bookmark-convert/internal/util"
	"github.com/spf13/cobra"
)

// LoadConfigFromFlags loads configuration using the config flag from the command
func LoadConfigFromFlags(cmd *cobra.Command) (config.ConfigProvider, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	return config.LoadProvider(configPath)
}

// LoadConfigOrExit loads and validates configuration, exiting with an error
// message if either step fails
func LoadConfigOrExit(cmd *cobra.Command, registry *encoder.Registry) config.ConfigProvider {
	cfg, err := LoadConfigFromFlags(cmd)
	if err != nil {
		util.LogError(util.ConfigError, "loading configuration", err)
		os.Exit(1)
	}
	if err := cfg.Validate(registry.AvailableFormats()); err != nil {
		util.LogError(util.ConfigError, "validating configuration", err)
		os.Exit(1)
	}
	return cfg
}

// LoggerOrExit opens the log file named in cfg, mirroring to stdout
func LoggerOrExit(cmd *cobra.Command, cfg config.ConfigProvider) logger.LoggerInterface {
	verbose, _ := cmd.Flags().GetBool("verbose")
	log, err := logger.NewLogger(cfg.GetLogPath(), os.Stdout, verbose)
	if err != nil {
		util.LogError(util.FileError, "opening log file", err)
		os.Exit(1)
	}
	return log
}

// NewConverter wires a converter from configuration; opts override the
// configured defaults
func NewConverter(cfg config.ConfigProvider, registry *encoder.Registry, log logger.LoggerInterface, opts ...converter.Option) *converter.Converter {
	registry.SetLogger(log)
	return converter.New(registry, append([]converter.Option{
		converter.WithLogger(log),
		converter.WithReader(source.NewReader(cfg.GetEncodings()...)),
		converter.WithDecoder(decoder.New(decoder.WithLogger(log))),
	}, opts...)...)
}
