package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/nicwaller/fleece"
	"github.com/nicwaller/fleece/framing"
)

const (
	defaultLogLevel  = "info"
	defaultLogFormat = "text"
)

// appConfig is everything the command line, environment and config file can say.
type appConfig struct {
	Host        string   `mapstructure:"host"`
	Port        int      `mapstructure:"port"`
	WindowSize  int      `mapstructure:"window_size"`
	Fields      []string `mapstructure:"field"`
	FieldsFile  string   `mapstructure:"fields-file"`
	Hostname    string   `mapstructure:"hostname"`
	LogLevel    string   `mapstructure:"log-level"`
	LogFormat   string   `mapstructure:"log-format"`
	MetricsAddr string   `mapstructure:"metrics-addr"`
	DryRun      bool     `mapstructure:"dry-run"`
	Decompress  string   `mapstructure:"decompress"`
	ConfigPath  string   `mapstructure:"-"`
	ShowHelp    bool     `mapstructure:"-"`
	ShowVersion bool     `mapstructure:"-"`
}

func newFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SortFlags = false
	fs.BoolP("help", "h", false, "show this help")
	fs.BoolP("version", "v", false, "show the version of fleece")
	fs.StringArray("field", nil, "Add a custom key-value mapping to every line emitted")
	fs.String("host", "", "The hostname to send udp messages to")
	fs.Int("port", 0, "The port to connect on the udp server")
	fs.Int("window_size", fleece.DefaultWindowSize, "The window size")
	fs.String("fields-file", "", "YAML file of key-value mappings added before any --field")
	fs.String("hostname", "", "Value of the host field (default is this machine's hostname)")
	fs.String("config", "", "config file (YAML, TOML or JSON)")
	fs.String("log-level", defaultLogLevel, "debug, info, warn or error")
	fs.String("log-format", defaultLogFormat, "text or json")
	fs.String("metrics-addr", "", "serve Prometheus metrics on this address (eg. 127.0.0.1:9100)")
	fs.Bool("dry-run", false, "print events to stdout instead of sending them")
	fs.String("decompress", "none", "decompress stdin first: "+strings.Join(framing.DecompressorNames(), ", "))
	return fs
}

// loadConfig layers flags over FLEECE_* environment variables over the config file.
func loadConfig(fs *pflag.FlagSet, args []string) (appConfig, error) {
	var cfg appConfig

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	cfg.ShowHelp, _ = fs.GetBool("help")
	cfg.ShowVersion, _ = fs.GetBool("version")
	if cfg.ShowHelp || cfg.ShowVersion {
		return cfg, nil
	}

	v := viper.New()
	v.SetEnvPrefix("FLEECE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("window_size", fleece.DefaultWindowSize)
	v.SetDefault("log-level", defaultLogLevel)
	v.SetDefault("log-format", defaultLogFormat)
	v.SetDefault("decompress", "none")

	if err := v.BindPFlags(fs); err != nil {
		return cfg, err
	}

	if configPath, _ := fs.GetString("config"); configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if errors.As(err, &notFound) || os.IsNotExist(err) {
				return cfg, fmt.Errorf("config file %s not found", configPath)
			}
			return cfg, fmt.Errorf("read config %s: %w", configPath, err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	cfg.ConfigPath = v.ConfigFileUsed()

	// viper round-trips string arrays through CSV; take repeated flags verbatim
	if fs.Changed("field") {
		cfg.Fields, _ = fs.GetStringArray("field")
	}

	return cfg, nil
}

// resolve turns the loose app configuration into the pipeline's immutable Config.
func resolve(app appConfig, lookupHostname func() (string, error)) (fleece.Config, error) {
	cfg := fleece.Config{
		Destination: fleece.Endpoint{Host: app.Host},
		WindowSize:  app.WindowSize,
	}

	if app.Port < 0 || app.Port > 65535 {
		return cfg, fmt.Errorf("invalid --port %d: must be between 1 and 65535", app.Port)
	}
	cfg.Destination.Port = uint16(app.Port)

	if app.FieldsFile != "" {
		fields, err := loadFieldsFile(app.FieldsFile)
		if err != nil {
			return cfg, err
		}
		cfg.StaticFields = append(cfg.StaticFields, fields...)
	}
	for _, raw := range app.Fields {
		field, err := fleece.ParseStaticField(raw)
		if err != nil {
			return cfg, err
		}
		cfg.StaticFields = append(cfg.StaticFields, field)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	hostname := app.Hostname
	if hostname == "" {
		var err error
		hostname, err = lookupHostname()
		if err != nil {
			return cfg, fmt.Errorf("resolve local hostname: %w", err)
		}
	}
	cfg.Hostname = fleece.CoalesceStr(hostname, "localhost")

	return cfg, nil
}
