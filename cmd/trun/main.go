package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/golang/glog"
	"github.com/spf13/cobra"

	"github.com/Urethramancer/tinyvm/cpu"
)

var (
	entry     uint64
	stackBase uint64
	maxSteps  uint64
	registers bool
)

func main() {
	root := &cobra.Command{
		Use:   "trun IMAGE",
		Short: "Run a TinyVM memory image",
		Long: `Trun loads a raw memory image at address 0 and executes it from the
entry address until HALT or a fault.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := run(args[0])
			if registers && c != nil {
				if derr := c.DumpRegisters(os.Stdout); derr != nil && err == nil {
					err = derr
				}
			}
			return err
		},
	}
	root.Flags().Uint64Var(&entry, "entry", 0, "word address of the first instruction")
	root.Flags().Uint64Var(&stackBase, "stack", cpu.DefaultStackBase, "word address of the stack base")
	root.Flags().Uint64Var(&maxSteps, "max-steps", 0, "stop after this many instructions, 0 for no limit")
	root.Flags().BoolVarP(&registers, "registers", "r", false, "print the registers when the program stops")

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

// run loads the image and executes it. The CPU is returned even when the
// program faults, so its state can be inspected.
func run(path string) (*cpu.CPU, error) {
	image, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading image: %w", err)
	}

	c := cpu.New()
	if err := c.LoadImage(image); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	c.Registers[cpu.RIP] = entry
	c.Registers[cpu.RSBP] = stackBase
	glog.V(1).Infof("loaded %d bytes from %s, entry %d", len(image), path, entry)

	if err := c.Run(maxSteps); err != nil {
		return c, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}
