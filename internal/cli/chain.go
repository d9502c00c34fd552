package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/snakecodec/pkg/codec"
)

// chainCommand creates the chain command that runs a pipeline of transforms.
func (c *CLI) chainCommand() *cobra.Command {
	var (
		flags   textFlags
		steps   []string
		reverse bool
		explain bool
	)

	cmd := &cobra.Command{
		Use:   "chain --step <transform:direction>... [text...]",
		Short: "Apply several transforms in sequence",
		Long: `Apply a pipeline of transforms. Steps run in the order given; --reverse runs
them backwards with every direction flipped, undoing the pipeline.`,
		Example: `  snakecodec chain --step caesar:encode --step base64:encode "hello"
  snakecodec chain --step caesar:encode --step base64:encode --reverse "a2hvb3I="`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if len(steps) == 0 {
				return fmt.Errorf("at least one --step is required")
			}
			parsed, err := codec.ParseSteps(steps)
			if err != nil {
				return err
			}
			p := codec.Pipeline{Steps: parsed, Params: c.cfg().Params()}
			if reverse {
				p = p.Reverse()
			}

			text, err := c.readText(args, flags.file)
			if err != nil {
				return err
			}
			loggerFromContext(ctx).Debug("running pipeline", "steps", p.String())

			out, err := p.Run(ctx, text)
			if err != nil {
				return err
			}
			if explain {
				printDetail("%s", p.String())
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	addTextFlags(cmd, &flags)
	cmd.Flags().StringArrayVar(&steps, "step", nil, "pipeline step as transform:direction (repeatable)")
	cmd.Flags().BoolVar(&reverse, "reverse", false, "undo the pipeline")
	cmd.Flags().BoolVar(&explain, "explain", false, "print the steps that ran")
	return cmd
}
