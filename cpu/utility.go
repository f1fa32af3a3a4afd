package cpu

import (
	"fmt"
	"io"
	"strings"
)

// DumpRegisters writes every register, four to a line.
func (c *CPU) DumpRegisters(w io.Writer) error {
	var b strings.Builder
	for i, v := range c.Registers {
		fmt.Fprintf(&b, "%-4s = %016x", registerNames[i], v)
		if i%4 == 3 || i == len(c.Registers)-1 {
			b.WriteByte('\n')
		} else {
			b.WriteString("  ")
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
