package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/golang/glog"
	"github.com/spf13/cobra"

	"github.com/Urethramancer/tinyvm/disassembler"
)

func main() {
	root := &cobra.Command{
		Use:          "tdis IMAGE [OUTFILE]",
		Short:        "Disassemble a TinyVM memory image",
		Args:         cobra.RangeArgs(1, 2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var out string
			if len(args) == 2 {
				out = args[1]
			}
			return run(args[0], out)
		},
	}
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

func run(in, out string) error {
	// Read the image directly. Do NOT modify it.
	code, err := os.ReadFile(in)
	if err != nil {
		return fmt.Errorf("reading input file: %w", err)
	}

	text, err := disassembler.Disassemble(code)
	if err != nil {
		return fmt.Errorf("disassembly: %w", err)
	}

	if out == "" {
		fmt.Print(text)
		return nil
	}

	if err := os.WriteFile(out, []byte(text), 0644); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}
	glog.Infof("disassembly written to %s", out)
	return nil
}
