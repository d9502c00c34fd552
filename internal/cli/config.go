package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/snakecodec/internal/api"
	"github.com/matzehuels/snakecodec/pkg/codec"
	"github.com/matzehuels/snakecodec/pkg/errors"
	"github.com/matzehuels/snakecodec/pkg/history"
	"github.com/matzehuels/snakecodec/pkg/script"
)

// envPrefix prefixes the environment variables read by LoadConfig.
const envPrefix = "SNAKECODEC_"

// Config holds all CLI configuration options.
type Config struct {
	Layout        string `koanf:"layout"`
	Shift         int    `koanf:"shift"`
	CodePage      string `koanf:"code_page"`
	MaxTextLength int    `koanf:"max_text_length"`

	DataDir        string `koanf:"data_dir"`
	HistoryBackend string `koanf:"history_backend"`
	HistoryPath    string `koanf:"history_path"`
	JournalPath    string `koanf:"journal_path"`

	RedisAddr     string `koanf:"redis_addr"`
	RedisPassword string `koanf:"redis_password"`
	RedisDB       int    `koanf:"redis_db"`
	RedisKey      string `koanf:"redis_key"`

	MongoURI        string `koanf:"mongo_uri"`
	MongoDatabase   string `koanf:"mongo_database"`
	MongoCollection string `koanf:"mongo_collection"`

	ListenAddr string `koanf:"listen_addr"`

	// Record switches recording of successful operations to history and
	// journal.
	Record bool `koanf:"record"`

	// File is the config file that was loaded, if any.
	File string `koanf:"-"`
}

func defaults() map[string]interface{} {
	data, err := dataDir()
	if err != nil {
		data = "." + appName
	}
	return map[string]interface{}{
		"layout":           script.LayoutAuto.String(),
		"shift":            3,
		"code_page":        codec.DefaultCodePage,
		"max_text_length":  errors.DefaultMaxTextLength,
		"data_dir":         data,
		"history_backend":  history.BackendFile,
		"history_path":     "",
		"journal_path":     "",
		"redis_addr":       "localhost:6379",
		"redis_password":   "",
		"redis_db":         0,
		"redis_key":        history.DefaultRedisKey,
		"mongo_uri":        "mongodb://localhost:27017",
		"mongo_database":   history.DefaultMongoDatabase,
		"mongo_collection": history.DefaultMongoCollection,
		"listen_addr":      api.DefaultAddr,
		"record":           true,
	}
}

// DefaultConfig returns the configuration used when nothing overrides the
// defaults.
func DefaultConfig() *Config {
	k := koanf.New(".")
	_ = k.Load(confmap.Provider(defaults(), "."), nil)
	var cfg Config
	_ = k.Unmarshal("", &cfg)
	return &cfg
}

// flagKeys maps flag names that differ from their config key.
var flagKeys = map[string]string{
	"listen":    "listen_addr",
	"no-record": "record",
}

// LoadConfig loads configuration from defaults, file, environment variables,
// and flags. Precedence (highest to lowest): flags > env vars > config file >
// defaults. Only flags that were explicitly set and name a config key are
// applied.
func LoadConfig(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Load defaults
	defs := defaults()
	if err := k.Load(confmap.Provider(defs, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Load the config file. An explicit path must exist, the default
	// location is optional.
	used, err := findConfigFile(cfgFile)
	if err != nil {
		return nil, err
	}
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", used, err)
		}
	}

	// 3. Load environment variables
	// Transform: SNAKECODEC_HISTORY_BACKEND -> history_backend
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Load flags
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			key, ok := flagKeys[f.Name]
			if !ok {
				key = strings.ReplaceAll(f.Name, "-", "_")
			}
			if _, known := defs[key]; !known {
				return "", nil
			}
			if f.Name == "no-record" {
				noRecord, _ := flags.GetBool(f.Name)
				return key, !noRecord
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	// 5. Unmarshal into Config struct
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.File = used

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func findConfigFile(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file: %w", err)
		}
		return explicit, nil
	}
	dir, err := configDir()
	if err != nil {
		return "", nil
	}
	for _, name := range []string{"config.yaml", "config.yml"} {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", nil
}

func (c *Config) validate() error {
	if _, err := script.ParseLayout(c.Layout); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid layout")
	}
	if _, err := codec.LookupCodePage(c.CodePage); err != nil {
		return err
	}
	if err := errors.ValidateShift(c.Shift); err != nil {
		return err
	}
	if c.MaxTextLength <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "max_text_length must be positive, got %d", c.MaxTextLength)
	}
	return nil
}

// Params returns the transform parameters configured by c.
func (c *Config) Params() codec.Params {
	layout, _ := script.ParseLayout(c.Layout)
	return codec.Params{Shift: c.Shift, Layout: layout, CodePage: c.CodePage}
}

// History returns the history store configuration.
func (c *Config) History() history.Config {
	return history.Config{
		Backend: c.HistoryBackend,
		Path:    c.HistoryPath,
		DataDir: c.DataDir,
		Redis: history.RedisConfig{
			Addr:     c.RedisAddr,
			Password: c.RedisPassword,
			DB:       c.RedisDB,
			Key:      c.RedisKey,
		},
		Mongo: history.MongoConfig{
			URI:        c.MongoURI,
			Database:   c.MongoDatabase,
			Collection: c.MongoCollection,
		},
	}
}

// JournalFile returns the journal path, defaulting to journal.log in the
// data directory.
func (c *Config) JournalFile() string {
	if c.JournalPath != "" {
		return c.JournalPath
	}
	return filepath.Join(c.DataDir, "journal.log")
}

// =============================================================================
// config command
// =============================================================================

func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the effective configuration",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.cfg()
			source := "defaults"
			if cfg.File != "" {
				source = cfg.File
			}
			printInfo("Configuration (%s)", source)
			printKeyValue("layout", cfg.Layout)
			printKeyValue("shift", fmt.Sprint(cfg.Shift))
			printKeyValue("code_page", cfg.CodePage)
			printKeyValue("max_length", fmt.Sprint(cfg.MaxTextLength))
			printKeyValue("data_dir", cfg.DataDir)
			printKeyValue("history", cfg.HistoryBackend)
			if p := cfg.HistoryPath; p != "" {
				printKeyValue("history_path", p)
			}
			switch cfg.HistoryBackend {
			case history.BackendRedis:
				printKeyValue("redis", fmt.Sprintf("%s db=%d key=%s", cfg.RedisAddr, cfg.RedisDB, cfg.RedisKey))
			case history.BackendMongo:
				printKeyValue("mongo", fmt.Sprintf("%s/%s.%s", cfg.MongoURI, cfg.MongoDatabase, cfg.MongoCollection))
			}
			printKeyValue("journal", cfg.JournalFile())
			printKeyValue("listen", cfg.ListenAddr)
			printKeyValue("record", fmt.Sprint(cfg.Record))
			return nil
		},
	})
	return cmd
}
