// Package clifile provides input and output values for command-line
// programs that accept either a file path or a standard stream as a
// single uniform argument.
//
// An [Input] or [Output] is resolved once from its textual argument: the
// literal "-" selects the corresponding standard stream, anything else is
// opened immediately as a file, so configuration errors surface during
// argument resolution rather than mid-stream. Both types are plain
// values that can be copied freely and stored in flag or options structs;
// all copies share the single underlying descriptor and buffer. Both
// implement [github.com/spf13/pflag.Value] and can be registered
// directly:
//
//	var opts struct {
//		Input  clifile.Input
//		Output clifile.Output
//	}
//
//	flags.VarP(&opts.Input, "input", "i", `input file ("-" for stdin)`)
//	flags.VarP(&opts.Output, "output", "o", `output file ("-" for stdout)`)
//
// Actual I/O goes through a short-lived guard that serializes access
// across all copies of a handle:
//
//	in := opts.Input.Lock()
//	defer in.Close()
//
//	data, err := io.ReadAll(in)
//
// Input reads are buffered; output is line buffered, flushing whenever a
// newline is written so interactive consumers see each line promptly.
package clifile
