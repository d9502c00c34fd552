package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/matzehuels/snakecodec/pkg/errors"
	"github.com/matzehuels/snakecodec/pkg/journal"
)

// logCommand creates the journal command.
func (c *CLI) logCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Inspect the action journal",
	}

	cmd.AddCommand(c.logShowCommand())
	cmd.AddCommand(c.logClearCommand())
	cmd.AddCommand(c.logExportCommand())
	cmd.AddCommand(c.logStatsCommand())

	return cmd
}

func (c *CLI) logShowCommand() *cobra.Command {
	var (
		n      int
		follow bool
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the most recent journal lines",
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := c.openJournal()
			if err != nil {
				return err
			}
			lines, err := j.RecentLines(n)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, line := range lines {
				fmt.Fprintln(out, styleJournalLine(line))
			}
			if !follow {
				if len(lines) == 0 {
					printInfo("Journal is empty")
				}
				return nil
			}

			c.Logger.Debug("following journal", "path", j.Path())
			return j.Follow(cmd.Context(), func(line string) {
				fmt.Fprintln(out, styleJournalLine(line))
			})
		},
	}

	cmd.Flags().IntVarP(&n, "lines", "n", journal.DefaultRecent, "number of lines (0 for all)")
	cmd.Flags().BoolVarP(&follow, "follow", "F", false, "keep printing lines as they are recorded")
	return cmd
}

// styleJournalLine dims the timestamp and highlights the action.
func styleJournalLine(s string) string {
	l, ok := journal.Parse(s)
	if !ok {
		return s
	}
	return StyleDim.Render("["+l.Time.Format(journal.TimeLayout)+"]") + " " +
		lipgloss.NewStyle().Foreground(operationColor(l.Action)).Render(l.Action) + ": " + l.Details
}

func (c *CLI) logClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every journal line",
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := c.openJournal()
			if err != nil {
				return err
			}
			if err := j.Clear(); err != nil {
				return err
			}
			printSuccess("Journal cleared")
			printDetail("File: %s", j.Path())
			return nil
		},
	}
}

func (c *CLI) logExportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export <file>",
		Short: "Copy the journal to a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if err := errors.ValidateExportPath(path); err != nil {
				return err
			}
			j, err := c.openJournal()
			if err != nil {
				return err
			}
			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("create export: %w", err)
			}
			if err := j.Export(f); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("write export: %w", err)
			}
			printSuccess("Journal exported")
			printFile(path)
			return nil
		},
	}
}

func (c *CLI) logStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Summarise the journal",
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := c.openJournal()
			if err != nil {
				return err
			}
			st, err := j.Stats()
			if err != nil {
				return err
			}
			if st.Lines == 0 {
				printInfo("Journal is empty")
				return nil
			}

			printKeyValue("file", j.Path())
			printKeyValue("size", humanize.Bytes(uint64(st.SizeBytes)))
			printKeyValue("lines", humanize.Comma(int64(st.Lines)))
			if st.Malformed > 0 {
				printKeyValue("malformed", StyleWarning.Render(fmt.Sprint(st.Malformed)))
			}
			if !st.First.IsZero() {
				printKeyValue("first", fmt.Sprintf("%s (%s)", st.First.Format(journal.TimeLayout), humanize.Time(st.First)))
				printKeyValue("last", fmt.Sprintf("%s (%s)", st.Last.Format(journal.TimeLayout), humanize.Time(st.Last)))
			}
			printNewline()

			countStyle := lipgloss.NewStyle().Foreground(colorCyan).Width(6).Align(lipgloss.Right)
			for _, action := range st.ActionNames() {
				fmt.Println(countStyle.Render(fmt.Sprint(st.Actions[action])) + "  " + action)
			}
			return nil
		},
	}
}
