package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/snakecodec/pkg/codec"
)

// detectCommand creates the detect command.
func (c *CLI) detectCommand() *cobra.Command {
	var (
		flags textFlags
		try   bool
	)

	cmd := &cobra.Command{
		Use:   "detect [text...]",
		Short: "Guess which transform produced a text",
		Long: `Guess the encoding of a text from its character classes. Guesses are ranked
by confidence; with --try every keyless guess is decoded as well.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := c.readText(args, flags.file)
			if err != nil {
				return err
			}

			if try {
				candidates, err := codec.DecodeCandidates(cmd.Context(), text, c.cfg().Params())
				if err != nil {
					return err
				}
				if len(candidates) == 0 {
					printWarning("No guess decoded cleanly")
					return nil
				}
				rows := make([][]string, len(candidates))
				for i, cand := range candidates {
					rows[i] = []string{cand.Transform, cand.Label, cand.Output}
				}
				fmt.Fprintln(cmd.OutOrStdout(), detectTable([]string{"Transform", "Confidence", "Output"}, rows))
				return nil
			}

			detections, err := codec.Detect(text)
			if err != nil {
				return err
			}
			if len(detections) == 0 {
				printWarning("Nothing recognised")
				return nil
			}
			rows := make([][]string, len(detections))
			for i, d := range detections {
				rows[i] = []string{d.Transform, fmt.Sprintf("%s (%.2f)", d.Label, d.Confidence), d.Reasoning}
			}
			fmt.Fprintln(cmd.OutOrStdout(), detectTable([]string{"Transform", "Confidence", "Reasoning"}, rows))
			return nil
		},
	}

	cmd.Flags().StringVarP(&flags.file, "file", "f", "", "read the text from a file (- for stdin)")
	cmd.Flags().BoolVar(&try, "try", false, "decode with every keyless guess")
	return cmd
}

func detectTable(headers []string, rows [][]string) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case row == 0 && col == 0:
				return StyleSuccess.Bold(true)
			case col == 0:
				return StyleHighlight
			}
			return lipgloss.NewStyle()
		}).
		Render()
}
