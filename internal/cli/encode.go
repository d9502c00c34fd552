package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/snakecodec/internal/activity"
	"github.com/matzehuels/snakecodec/pkg/codec"
	"github.com/matzehuels/snakecodec/pkg/errors"
)

// encodeCommand creates the encode command.
func (c *CLI) encodeCommand() *cobra.Command {
	return c.transformCommand(codec.Encode, "encode", "Encode text with a transform", `  # Caesar with the default shift of 3
  snakecodec encode caesar "Привет, мир"

  # Morse from a file
  snakecodec encode morse -f message.txt

  # Piped input, custom shift
  echo "attack at dawn" | snakecodec encode rot --shift 13`)
}

// decodeCommand creates the decode command.
func (c *CLI) decodeCommand() *cobra.Command {
	return c.transformCommand(codec.Decode, "decode", "Decode text with a transform", `  snakecodec decode morse "... --- ..."
  snakecodec decode base64 SGVsbG8=
  snakecodec decode ascii --code-page cp1251 "207 240 232 226 229 242"`)
}

func (c *CLI) transformCommand(dir codec.Direction, use, short, example string) *cobra.Command {
	var flags textFlags

	cmd := &cobra.Command{
		Use:     use + " <transform> [text...]",
		Short:   short,
		Example: example,
		Args:    cobra.MinimumNArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveDefault
			}
			return codec.Names(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			t, ok := codec.Lookup(args[0])
			if !ok {
				return errors.New(errors.ErrCodeUnknownTransform, "unknown transform %q (available: %s)", args[0], strings.Join(codec.Names(), ", "))
			}

			text, err := c.readText(args[1:], flags.file)
			if err != nil {
				return err
			}
			out, err := codec.Run(ctx, t.Name(), dir, text, c.cfg().Params())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)

			c.record(ctx, func(r *activity.Recorder) error {
				return r.Transform(ctx, t.Name(), dir, text)
			})
			return nil
		},
	}

	addTextFlags(cmd, &flags)
	addRecordFlag(cmd)
	return cmd
}

// rot13Command creates the rot13 quick action.
func (c *CLI) rot13Command() *cobra.Command {
	var flags textFlags

	cmd := &cobra.Command{
		Use:   "rot13 [text...]",
		Short: "Quick ROT13 over the printable characters",
		Long: `Rotate text by 13 over the 95 printable ASCII characters. The operation is
journaled as QUICK_ENCRYPT but not added to the history.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			text, err := c.readText(args, flags.file)
			if err != nil {
				return err
			}
			out, err := codec.Run(ctx, codec.NameRot, codec.Encode, text, codec.Params{Shift: 13})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)

			c.record(ctx, func(r *activity.Recorder) error {
				return r.QuickEncrypt()
			})
			return nil
		},
	}

	cmd.Flags().StringVarP(&flags.file, "file", "f", "", "read the text from a file (- for stdin)")
	addRecordFlag(cmd)
	return cmd
}

// listCommand creates the list command.
func (c *CLI) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the available transforms",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), transformTable(codec.List()))
			return nil
		},
	}
}

func transformTable(transforms []codec.Transform) string {
	rows := make([][]string, 0, len(transforms))
	for _, t := range transforms {
		rows = append(rows, []string{t.Name(), strings.Join(t.Aliases(), ", "), needsString(t.Needs()), t.Description()})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Transform", "Aliases", "Params", "Description").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col == 0:
				return StyleHighlight
			case col == 1 || col == 2:
				return StyleDim
			}
			return lipgloss.NewStyle()
		}).
		Render()
}

func needsString(n codec.Needs) string {
	var parts []string
	if n.Has(codec.NeedsShift) {
		parts = append(parts, "shift")
	}
	if n.Has(codec.NeedsLayout) {
		parts = append(parts, "layout")
	}
	if n.Has(codec.NeedsCodePage) {
		parts = append(parts, "code-page")
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ", ")
}
