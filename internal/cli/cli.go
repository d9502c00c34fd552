package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/snakecodec/internal/activity"
	"github.com/matzehuels/snakecodec/pkg/buildinfo"
	"github.com/matzehuels/snakecodec/pkg/history"
	"github.com/matzehuels/snakecodec/pkg/journal"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "snakecodec"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	cfgFile string
	config  *Config

	// stdin replaces os.Stdin when reading input, for tests.
	stdin io.Reader
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Snakecodec encodes and decodes text with classic ciphers",
		Long: `Snakecodec is a text codec toolbox: Caesar and ROT-n shifts that understand both
Latin and Cyrillic, Morse, binary, character codes, A1Z26, Base32 and Base64.
Every operation can be recorded to a history store and an action journal.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(c.cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			c.config = cfg
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.cfgFile, "config", "", "config file (default $XDG_CONFIG_HOME/snakecodec/config.yaml)")
	root.PersistentFlags().String("data-dir", "", "directory for history and journal files")
	root.PersistentFlags().String("history-backend", "", "history backend: file, sqlite, redis, mongo or memory")

	installHooks(c.Logger)

	// Register all subcommands
	root.AddCommand(c.encodeCommand())
	root.AddCommand(c.decodeCommand())
	root.AddCommand(c.rot13Command())
	root.AddCommand(c.chainCommand())
	root.AddCommand(c.detectCommand())
	root.AddCommand(c.listCommand())
	root.AddCommand(c.morseCommand())
	root.AddCommand(c.historyCommand())
	root.AddCommand(c.logCommand())
	root.AddCommand(c.signCommand())
	root.AddCommand(c.verifyCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	registerFlagCompletions(root)
	return root
}

// =============================================================================
// Collaborators
// =============================================================================

// cfg returns the loaded configuration, or the defaults when a command runs
// without the root pre-run (as in tests that call RunE directly).
func (c *CLI) cfg() *Config {
	if c.config == nil {
		c.config = DefaultConfig()
	}
	return c.config
}

// openHistory opens the configured history store.
func (c *CLI) openHistory(ctx context.Context) (history.Store, error) {
	st, err := history.Open(ctx, c.cfg().History())
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	return st, nil
}

// openJournal opens the configured journal.
func (c *CLI) openJournal() (*journal.Journal, error) {
	return journal.New(c.cfg().JournalFile())
}

// openRecorder opens the collaborators that record successful operations.
// It returns a nil recorder when recording is switched off.
func (c *CLI) openRecorder(ctx context.Context) (*activity.Recorder, error) {
	if !c.cfg().Record {
		return nil, nil
	}
	st, err := c.openHistory(ctx)
	if err != nil {
		return nil, err
	}
	j, err := c.openJournal()
	if err != nil {
		st.Close()
		return nil, err
	}
	return &activity.Recorder{History: st, Journal: j}, nil
}

// record runs fn against the recorder and logs failures as warnings. A
// failed recording never fails the operation itself.
func (c *CLI) record(ctx context.Context, fn func(r *activity.Recorder) error) {
	r, err := c.openRecorder(ctx)
	if err != nil {
		c.Logger.Warn("recording disabled", "err", err)
		return
	}
	defer r.Close()
	if err := fn(r); err != nil {
		c.Logger.Warn("recording failed", "err", err)
	}
}

// =============================================================================
// Paths
// =============================================================================

// dataDir returns the data directory using XDG standard (~/.local/share/snakecodec/).
func dataDir() (string, error) {
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", appName), nil
}

// configDir returns the config directory using XDG standard (~/.config/snakecodec/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}
