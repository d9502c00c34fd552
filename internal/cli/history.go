package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/snakecodec/internal/activity"
	"github.com/matzehuels/snakecodec/pkg/errors"
	"github.com/matzehuels/snakecodec/pkg/history"
)

// historyCommand creates the history management command.
func (c *CLI) historyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Manage the history of recorded operations",
	}

	cmd.AddCommand(c.historyListCommand())
	cmd.AddCommand(c.historyRemoveCommand())
	cmd.AddCommand(c.historyClearCommand())
	cmd.AddCommand(c.historyExportCommand())
	cmd.AddCommand(c.historyImportCommand())
	cmd.AddCommand(c.historyBrowseCommand())

	return cmd
}

// withHistory opens the store and a journal-only recorder for the history
// subcommands, and closes them after fn.
func (c *CLI) withHistory(ctx context.Context, fn func(st history.Store, rec *activity.Recorder) error) error {
	st, err := c.openHistory(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	var rec *activity.Recorder
	if c.cfg().Record {
		j, err := c.openJournal()
		if err != nil {
			return err
		}
		rec = &activity.Recorder{Journal: j}
	}
	return fn(st, rec)
}

// listed returns the entries shown by "history list", newest first.
func listed(ctx context.Context, st history.Store, all bool) ([]history.Entry, error) {
	entries, err := st.List(ctx)
	if err != nil {
		return nil, err
	}
	if !all {
		entries = history.Filter(entries, history.Transforms...)
	}
	return entries, nil
}

func (c *CLI) historyListCommand() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded encryptions and decryptions",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return c.withHistory(ctx, func(st history.Store, _ *activity.Recorder) error {
				entries, err := listed(ctx, st, all)
				if err != nil {
					return err
				}
				if len(entries) == 0 {
					printInfo("History is empty")
					printNextStep("Record an operation", "snakecodec encode caesar hello")
					return nil
				}
				out := cmd.OutOrStdout()
				width := len(strconv.Itoa(len(entries)))
				for i, e := range entries {
					fmt.Fprintf(out, "%s %s\n", StyleNumber.Render(fmt.Sprintf("%*d.", width, i+1)), e)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "include signatures")
	return cmd
}

func (c *CLI) historyRemoveCommand() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "remove <n|id>",
		Short: "Remove one entry by list position or ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return c.withHistory(ctx, func(st history.Store, rec *activity.Recorder) error {
				e, err := resolveEntry(ctx, st, args[0], all)
				if err != nil {
					return err
				}
				if err := st.Remove(ctx, e.ID); err != nil {
					return err
				}
				if err := rec.HistoryRemoved(e); err != nil {
					c.Logger.Warn("recording failed", "err", err)
				}
				printSuccess("Removed %s", e)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "count positions over every entry, as in list --all")
	return cmd
}

// resolveEntry finds an entry by its 1-based position in the list view or
// by ID.
func resolveEntry(ctx context.Context, st history.Store, ref string, all bool) (history.Entry, error) {
	if n, err := strconv.Atoi(ref); err == nil {
		entries, err := listed(ctx, st, all)
		if err != nil {
			return history.Entry{}, err
		}
		if n < 1 || n > len(entries) {
			return history.Entry{}, errors.New(errors.ErrCodeNotFound, "no history entry at position %d (have %d)", n, len(entries))
		}
		return entries[n-1], nil
	}
	return st.Get(ctx, ref)
}

func (c *CLI) historyClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every history entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return c.withHistory(ctx, func(st history.Store, rec *activity.Recorder) error {
				n, err := st.Count(ctx)
				if err != nil {
					return err
				}
				if err := st.Clear(ctx); err != nil {
					return err
				}
				if err := rec.HistoryCleared(n); err != nil {
					c.Logger.Warn("recording failed", "err", err)
				}
				printSuccess("Cleared %d entries", n)
				printDetail("Backend: %s", history.Backend(st))
				return nil
			})
		},
	}
}

func (c *CLI) historyExportCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Export the history as JSON or TOML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			path := args[0]
			if err := errors.ValidateExportPath(path); err != nil {
				return err
			}
			if format == "" {
				format = history.FormatFromPath(path)
			}

			return c.withHistory(ctx, func(st history.Store, rec *activity.Recorder) error {
				entries, err := st.List(ctx)
				if err != nil {
					return err
				}
				f, err := os.Create(path)
				if err != nil {
					return fmt.Errorf("create export: %w", err)
				}
				if err := history.Export(f, entries, format); err != nil {
					f.Close()
					return err
				}
				if err := f.Close(); err != nil {
					return fmt.Errorf("write export: %w", err)
				}
				if err := rec.HistoryExported(path, len(entries)); err != nil {
					c.Logger.Warn("recording failed", "err", err)
				}
				printSuccess("Exported %d entries", len(entries))
				printFile(path)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "json or toml (default from the file extension)")
	return cmd
}

func (c *CLI) historyImportCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import entries written by export",
		Long:  `Import entries from a file written by "history export". Entries with an ID that already exists replace the stored entry.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			path := args[0]
			if format == "" {
				format = history.FormatFromPath(path)
			}
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("open import: %w", err)
			}
			defer f.Close()
			entries, err := history.Import(f, format)
			if err != nil {
				return err
			}

			return c.withHistory(ctx, func(st history.Store, rec *activity.Recorder) error {
				prog := newProgress(loggerFromContext(ctx))
				for _, e := range entries {
					if err := st.Add(ctx, e); err != nil {
						return err
					}
				}
				prog.done("Imported %d entries into %s", len(entries), history.Backend(st))
				if err := rec.HistoryImported(path, len(entries)); err != nil {
					c.Logger.Warn("recording failed", "err", err)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "json or toml (default from the file extension)")
	return cmd
}

func (c *CLI) historyBrowseCommand() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the history interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return c.withHistory(ctx, func(st history.Store, rec *activity.Recorder) error {
				entries, err := listed(ctx, st, all)
				if err != nil {
					return err
				}
				if len(entries) == 0 {
					printInfo("History is empty")
					return nil
				}

				final, err := tea.NewProgram(NewHistoryListModel(entries), tea.WithContext(ctx)).Run()
				if err != nil {
					return fmt.Errorf("history browser: %w", err)
				}
				m := final.(HistoryListModel)
				for _, e := range m.Removed {
					if err := st.Remove(ctx, e.ID); err != nil {
						return err
					}
					if err := rec.HistoryRemoved(e); err != nil {
						c.Logger.Warn("recording failed", "err", err)
					}
				}
				if len(m.Removed) > 0 {
					printSuccess("Removed %d entries", len(m.Removed))
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "include signatures")
	return cmd
}
