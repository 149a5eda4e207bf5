package commands

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"
	"github.com/teranos/stackgrid/errors"
	"github.com/teranos/stackgrid/layout"
	"github.com/teranos/stackgrid/sym"
)

// PrintError writes err and any hints attached to it
func PrintError(w io.Writer, err error) {
	fmt.Fprintln(w, pterm.Red(sym.Error+" "+err.Error()))
	for _, hint := range errors.GetAllHints(err) {
		fmt.Fprintln(w, pterm.Gray("  hint: "+hint))
	}
}

// printSummary reports rendered and failed stacks on w
func printSummary(w io.Writer, res *layout.Result, dest string) {
	ok := res.Count - len(res.Failures)
	fmt.Fprintf(w, "%s Rendered %d stack(s) to %s\n", pterm.Green(sym.OK), ok, dest)
	for _, f := range res.Failures {
		fmt.Fprintf(w, "%s Stack %d (%s): %s\n", pterm.Red(sym.Error), f.Index+1, f.Stack, f.Message)
	}
}
