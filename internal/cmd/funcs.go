package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/emucore/dosmouse/dosdriver"
)

// Funcs prints the INT 33h function table with emulation status.
type Funcs struct {
	All bool `help:"Include functions that are recognized but not emulated" default:"true" negatable:""`
}

func (c *Funcs) Run() error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, f := range dosdriver.Functions() {
		if !f.Implemented && !c.All {
			continue
		}
		status := "emulated"
		if !f.Implemented {
			status = "stub"
		}
		fmt.Fprintf(w, "%04xh\t%s\t%s\n", f.Number, status, f.Name)
	}
	return w.Flush()
}
