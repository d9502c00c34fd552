package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/snakecodec/pkg/codec"
)

// morseCommand groups the Morse helpers.
func (c *CLI) morseCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "morse",
		Short: "Morse code helpers",
	}
	cmd.AddCommand(c.morseTreeCommand())
	cmd.AddCommand(c.morseTableCommand())
	return cmd
}

// morseTreeCommand renders the dichotomic Morse tree.
func (c *CLI) morseTreeCommand() *cobra.Command {
	var (
		output string
		format string
	)

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Render the Morse dichotomic tree",
		Long: `Render the Morse code as a binary tree: a dot goes left, a dash goes right.
DOT output needs no external tools; svg and png are rendered with an embedded
Graphviz.`,
		Example: `  snakecodec morse tree > morse.dot
  snakecodec morse tree --format svg -o morse.svg`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var data []byte
			switch strings.ToLower(format) {
			case "dot":
				data = []byte(codec.MorseTreeDOT())
			case "svg", "png":
				if format == "png" && output == "" {
					return fmt.Errorf("png output needs --output")
				}
				spinner := newSpinnerWithContext(cmd.Context(), "Rendering Morse tree...")
				spinner.Start()
				rendered, err := codec.RenderMorseTree(cmd.Context(), format)
				if err != nil {
					spinner.StopWithError("Rendering failed")
					return err
				}
				spinner.Stop()
				data = rendered
			default:
				return fmt.Errorf("unsupported format %q (want dot, svg or png)", format)
			}

			if output == "" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			printSuccess("Morse tree rendered")
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVar(&format, "format", "dot", "output format: dot, svg or png")
	return cmd
}

// morseTableCommand prints the code of every supported character.
func (c *CLI) morseTableCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "table",
		Short: "Print the Morse code table",
		RunE: func(cmd *cobra.Command, args []string) error {
			var rows [][]string
			for _, r := range codec.MorseAlphabet() {
				code, _ := codec.MorseCode(r)
				rows = append(rows, []string{string(r), code})
			}
			fmt.Fprintln(cmd.OutOrStdout(), detectTable([]string{"Char", "Code"}, rows))
			return nil
		},
	}
}
