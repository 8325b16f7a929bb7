// Command lncat copies an input stream to an output stream line by line,
// optionally numbering lines. It is the worked example of embedding
// clifile handles in a cobra command.
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/gifnksm/clifile"
	"github.com/spf13/cobra"
)

func main() {
	if err := newLncatCommand().Execute(); err != nil {
		log.Fatalf("command execution failed: %v", err)
	}
}

type lncatOptions struct {
	input  clifile.Input
	output clifile.Output
	number bool
}

func newLncatCommand() *cobra.Command {
	o := &lncatOptions{}

	cmd := &cobra.Command{
		Use:          "lncat [input [output]]",
		Short:        "Copy input to output line by line",
		Long:         `Copy input to output line by line, where either side may be "-" for the corresponding standard stream.`,
		Args:         cobra.MaximumNArgs(2),
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, args []string) error {
			if err := o.complete(args); err != nil {
				return err
			}

			return o.run()
		},
	}

	flags := cmd.Flags()
	flags.VarP(&o.input, "input", "i", `input file ("-" for stdin)`)
	flags.VarP(&o.output, "output", "o", `output file ("-" for stdout)`)
	flags.BoolVarP(&o.number, "number", "n", false, "number output lines")

	return cmd
}

// complete resolves positional arguments that were not already given as
// flags. Files open here, so a bad path fails before any copying starts.
func (o *lncatOptions) complete(args []string) error {
	if len(args) > 0 && o.input.IsStdin() {
		in, err := clifile.ParseInput(args[0])
		if err != nil {
			return err
		}

		o.input = in
	}

	if len(args) > 1 && o.output.IsStdout() {
		out, err := clifile.ParseOutput(args[1])
		if err != nil {
			return err
		}

		o.output = out
	}

	return nil
}

func (o *lncatOptions) run() error {
	if o.input.IsTerminal() {
		fmt.Fprintln(os.Stderr, "lncat: reading from terminal; end input with ctrl-d")
	}

	in := o.input.Lock()
	defer func() { _ = in.Close() }()

	out := o.output.Lock()
	defer func() { _ = out.Close() }()

	for n := 1; ; n++ {
		line, err := in.ReadString('\n')
		if len(line) > 0 {
			if werr := o.writeLine(out, n, line); werr != nil {
				return werr
			}
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}

			return err
		}
	}

	return out.Flush()
}

func (o *lncatOptions) writeLine(out *clifile.LockedOutput, n int, line string) error {
	if o.number {
		_, err := fmt.Fprintf(out, "%6d\t%s", n, line)

		return err
	}

	_, err := out.WriteString(line)

	return err
}
