package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/snakecodec/internal/activity"
	"github.com/matzehuels/snakecodec/pkg/signature"
)

// signCommand creates the sign command.
func (c *CLI) signCommand() *cobra.Command {
	var (
		flags    textFlags
		describe bool
	)

	cmd := &cobra.Command{
		Use:   "sign [text...]",
		Short: "Sign text with a salted SHA-256 digest",
		Long: `Print a signature of the form salt:digest, where salt is 16 random hex
characters and digest is the hex SHA-256 of the text followed by the salt.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			text, err := c.readText(args, flags.file)
			if err != nil {
				return err
			}
			sig, err := signature.Sign(text)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), sig)
			if describe {
				d, _ := signature.Describe(sig)
				printDetail("%s", d)
			}

			c.record(ctx, func(r *activity.Recorder) error {
				return r.Sign(ctx, text)
			})
			return nil
		},
	}

	cmd.Flags().StringVarP(&flags.file, "file", "f", "", "read the text from a file (- for stdin)")
	cmd.Flags().BoolVar(&describe, "describe", false, "also print the salt and digest")
	addRecordFlag(cmd)
	return cmd
}

// verifyCommand creates the verify command.
func (c *CLI) verifyCommand() *cobra.Command {
	var flags textFlags

	cmd := &cobra.Command{
		Use:   "verify <signature> [text...]",
		Short: "Check a signature produced by sign",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sig := args[0]
			text, err := c.readText(args[1:], flags.file)
			if err != nil {
				return err
			}

			valid := signature.Verify(text, sig)
			c.record(ctx, func(r *activity.Recorder) error {
				return r.Verify(text, valid)
			})

			if !valid {
				if _, _, err := signature.Parse(sig); err != nil {
					printDetail("%s", err.Error())
				}
				return fmt.Errorf("signature does not match")
			}
			printSuccess("Signature is valid")
			return nil
		},
	}

	cmd.Flags().StringVarP(&flags.file, "file", "f", "", "read the text from a file (- for stdin)")
	addRecordFlag(cmd)
	return cmd
}
