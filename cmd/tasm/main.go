package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/golang/glog"
	"github.com/k0kubun/pp/v3"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Urethramancer/tinyvm/assembler"
)

const defaultOutput = "tvmimage.bin"

var (
	output string
	strict bool
	dump   bool
)

func main() {
	root := &cobra.Command{
		Use:   "tasm FILE",
		Short: "The TinyVM assembler",
		Long: `Tasm assembles one TinyVM source file into a raw memory image of
65536 little-endian 64-bit words, ready to be loaded by the VM.

Nothing is written unless the whole file assembles.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0], output)
		},
	}
	root.Flags().StringVarP(&output, "output", "o", defaultOutput, "name of the output memory image, - for stdout")
	root.Flags().BoolVar(&strict, "strict", false, "reject inline labels, label redefinition and unaligned .base")
	root.Flags().BoolVarP(&dump, "dump", "d", false, "print parsed lines and labels to stderr")

	// glog registers its flags (-v, -logtostderr, ...) on the standard flag set.
	// Log to stderr unless asked otherwise, and show that as the default.
	if err := flag.Set("logtostderr", "true"); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	flag.Lookup("logtostderr").DefValue = "true"
	root.PersistentFlags().AddGoFlagSet(flag.CommandLine)

	err := root.Execute()
	glog.Flush()
	if err != nil {
		os.Exit(1)
	}
}

func run(path, out string) error {
	// Load the source file specified as the only argument.
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var opts []assembler.Option
	if strict {
		opts = append(opts, assembler.WithStrict())
	}
	asm := assembler.New(opts...)
	img, err := asm.Assemble(string(data))
	if dump {
		dumpState(os.Stderr, asm)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	if err := writeImage(img, out); err != nil {
		return err
	}
	glog.V(1).Infof("wrote %s", out)
	return nil
}

func dumpState(w io.Writer, asm *assembler.Assembler) {
	fmt.Fprintln(w, "parsed lines")
	for _, l := range asm.Lines() {
		pp.Fprintln(w, l)
	}
	fmt.Fprintln(w, "labels")
	pp.Fprintln(w, asm.Labels())
}

// writeImage writes img to path through a temporary file in the same
// directory, so a failed write never leaves a truncated image behind.
func writeImage(img *assembler.Image, path string) error {
	if path == "-" {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return errors.New("refusing to write a binary image to a terminal")
		}
		_, err := img.WriteTo(os.Stdout)
		return err
	}

	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer os.Remove(tmp)

	if _, err := img.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Chmod(0644); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
