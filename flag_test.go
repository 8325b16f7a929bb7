package clifile_test

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"

	"github.com/gifnksm/clifile"
)

// fileOptions mimics an embedding application's declarative options
// struct holding the handles by value.
type fileOptions struct {
	Input  clifile.Input
	Output clifile.Output
}

func newTestFlagSet(o *fileOptions) *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.VarP(&o.Input, "input", "i", `input file ("-" for stdin)`)
	flags.VarP(&o.Output, "output", "o", `output file ("-" for stdout)`)

	return flags
}

func TestFlagValue_DefaultsToStandardStreams(t *testing.T) {
	t.Parallel()

	var o fileOptions

	flags := newTestFlagSet(&o)

	if err := flags.Parse(nil); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if !o.Input.IsStdin() {
		t.Error("unset --input is not the stdin variant")
	}

	if !o.Output.IsStdout() {
		t.Error("unset --output is not the stdout variant")
	}

	if got := flags.Lookup("input").DefValue; got != "-" {
		t.Errorf("input default = %q, want %q", got, "-")
	}

	if got := flags.Lookup("input").Value.Type(); got != "input" {
		t.Errorf("input type = %q, want %q", got, "input")
	}

	if got := flags.Lookup("output").Value.Type(); got != "output" {
		t.Errorf("output type = %q, want %q", got, "output")
	}
}

func TestFlagValue_DashSelectsStandardStreams(t *testing.T) {
	t.Parallel()

	var o fileOptions

	flags := newTestFlagSet(&o)

	if err := flags.Parse([]string{"--input", "-", "--output", "-"}); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if !o.Input.IsStdin() || !o.Output.IsStdout() {
		t.Errorf("dash arguments: IsStdin() = %v, IsStdout() = %v; want true, true",
			o.Input.IsStdin(), o.Output.IsStdout())
	}
}

func TestFlagValue_ParseOpensFiles(t *testing.T) {
	t.Parallel()

	inPath := writeTestFile(t, "in.txt", "flag data")
	outPath := filepath.Join(t.TempDir(), "out.txt")

	var o fileOptions

	flags := newTestFlagSet(&o)

	if err := flags.Parse([]string{"-i", inPath, "-o", outPath}); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	defer func() { _ = o.Input.Close() }()
	defer func() { _ = o.Output.Close() }()

	if got, ok := o.Input.Path(); !ok || got != inPath {
		t.Errorf("Input.Path() = %q, %v; want %q, true", got, ok, inPath)
	}

	if got, ok := o.Output.Path(); !ok || got != outPath {
		t.Errorf("Output.Path() = %q, %v; want %q, true", got, ok, outPath)
	}

	if got := o.Input.String(); got != inPath {
		t.Errorf("Input.String() = %q, want %q", got, inPath)
	}

	g := o.Input.Lock()
	defer func() { _ = g.Close() }()

	content, err := io.ReadAll(g)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}

	if string(content) != "flag data" {
		t.Errorf("content = %q, want %q", content, "flag data")
	}
}

func TestFlagValue_BadPathFailsParse(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "missing.txt")

	var o fileOptions

	flags := newTestFlagSet(&o)

	if err := flags.Parse([]string{"--input", missing}); err == nil {
		t.Error("Parse with a missing input file succeeded, want error")
	}

	flags = newTestFlagSet(&o)

	badOut := filepath.Join(t.TempDir(), "no", "such", "dir", "out.txt")

	if err := flags.Parse([]string{"--output", badOut}); err == nil {
		t.Error("Parse with an unwritable output path succeeded, want error")
	}
}
