package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/matzehuels/snakecodec/pkg/errors"
)

// textFlags are the input and parameter flags shared by the text commands.
type textFlags struct {
	file string
}

func addTextFlags(cmd *cobra.Command, f *textFlags) {
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "read the text from a file (- for stdin)")
	cmd.Flags().IntP("shift", "s", 0, "shift for caesar and rot (1-25)")
	cmd.Flags().StringP("layout", "l", "", "alphabet layout: auto, latin or cyrillic")
	cmd.Flags().String("code-page", "", "code page for ascii: ascii, latin1, cp1251, koi8r, cp866")
}

// addRecordFlag adds --no-record. The config loader maps it onto the
// record key.
func addRecordFlag(cmd *cobra.Command) {
	cmd.Flags().Bool("no-record", false, "do not record to history and journal")
}

// readText resolves the input text: positional arguments joined by spaces,
// then --file, then piped stdin. The result is checked against the
// configured maximum length.
func (c *CLI) readText(args []string, file string) (string, error) {
	var text string
	switch {
	case len(args) > 0:
		text = strings.Join(args, " ")
	case file != "" && file != "-":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		text = trimNewline(string(data))
	default:
		in, err := c.input(file == "-")
		if err != nil {
			return "", err
		}
		data, err := io.ReadAll(in)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		text = trimNewline(string(data))
	}
	if err := errors.ValidateText(text, c.cfg().MaxTextLength); err != nil {
		return "", err
	}
	return text, nil
}

// input returns the reader for stdin. An interactive terminal is refused
// unless stdin was asked for explicitly.
func (c *CLI) input(explicit bool) (io.Reader, error) {
	if c.stdin != nil {
		return c.stdin, nil
	}
	if !explicit && isatty.IsTerminal(os.Stdin.Fd()) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no input: pass text as arguments, with --file, or on stdin")
	}
	return os.Stdin, nil
}

// trimNewline drops one trailing line break, as left by echo and editors.
func trimNewline(s string) string {
	s = strings.TrimSuffix(s, "\n")
	return strings.TrimSuffix(s, "\r")
}
