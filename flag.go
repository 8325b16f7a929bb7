package clifile

import "github.com/spf13/pflag"

// *Input and *Output plug directly into declarative flag structs. Set
// resolves the argument eagerly, so a missing input file or an unwritable
// output path fails flag parsing before the program body runs.
var (
	_ pflag.Value = (*Input)(nil)
	_ pflag.Value = (*Output)(nil)
)

// Set implements [pflag.Value] by parsing s with [ParseInput].
func (in *Input) Set(s string) error {
	v, err := ParseInput(s)
	if err != nil {
		return err
	}

	*in = v

	return nil
}

// String implements [pflag.Value], returning the opened path, or "-" for
// the standard-input variant. The zero value therefore prints as "-",
// which doubles as the flag's displayed default.
func (in *Input) String() string {
	if path, ok := in.Path(); ok {
		return path
	}

	return "-"
}

// Type implements [pflag.Value].
func (in *Input) Type() string { return "input" }

// Set implements [pflag.Value] by parsing s with [ParseOutput].
func (out *Output) Set(s string) error {
	v, err := ParseOutput(s)
	if err != nil {
		return err
	}

	*out = v

	return nil
}

// String implements [pflag.Value], returning the opened path, or "-" for
// the standard-output variant.
func (out *Output) String() string {
	if path, ok := out.Path(); ok {
		return path
	}

	return "-"
}

// Type implements [pflag.Value].
func (out *Output) Type() string { return "output" }
