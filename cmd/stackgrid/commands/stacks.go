package commands

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/teranos/stackgrid/am"
	"github.com/teranos/stackgrid/display"
	"github.com/teranos/stackgrid/extract"
	"github.com/teranos/stackgrid/logger"
	"github.com/teranos/stackgrid/sym"
)

// StacksCmd lists the stacks resolved from an instance
var StacksCmd = &cobra.Command{
	Use:   "stacks <instance>",
	Short: sym.Prefixed("stacks", sym.CommandDescriptions["stacks"]),
	Long: sym.Stacks + ` stacks — List technology stacks resolved from an instance

Prints one line per stack with its components and overall qualities, without
laying anything out. Useful to check what render will draw.

Examples:
  stackgrid stacks stacks.xml
  stackgrid stacks stacks.xml --json`,
	Args: cobra.ExactArgs(1),
	RunE: runStacks,
}

func init() {
	StacksCmd.Flags().String("signature", am.DefaultSignature, "Signature whose atoms are stacks")
	StacksCmd.Flags().Bool("strict", false, "Report a stack as failed when any field cannot be resolved")
}

// stackView is the JSON form of a resolved stack
type stackView struct {
	Index    int    `json:"index"`
	Atom     string `json:"atom"`
	Frontend string `json:"frontend"`
	Backend  string `json:"backend"`
	Database string `json:"database"`
	ORM      string `json:"orm"`
	Auth     string `json:"auth"`

	FrontendBackendQualities []string `json:"frontend_backend_qualities"`
	BackendDatabaseQualities []string `json:"backend_database_qualities"`
	DatabaseORMQualities     []string `json:"database_orm_qualities"`
	AuthQualities            []string `json:"auth_qualities"`
	OverallQualities         []string `json:"overall_qualities"`

	Error string `json:"error,omitempty"`
}

func newStackView(idx int, s extract.Stack) stackView {
	nonNil := func(in []string) []string {
		if in == nil {
			return []string{}
		}
		return in
	}
	return stackView{
		Index:                    idx,
		Atom:                     s.Atom.String(),
		Frontend:                 s.Frontend,
		Backend:                  s.Backend,
		Database:                 s.Database,
		ORM:                      s.ORM,
		Auth:                     s.Auth,
		FrontendBackendQualities: nonNil(s.FrontendBackendQualities),
		BackendDatabaseQualities: nonNil(s.BackendDatabaseQualities),
		DatabaseORMQualities:     nonNil(s.DatabaseORMQualities),
		AuthQualities:            nonNil(s.AuthQualities),
		OverallQualities:         nonNil(s.OverallQualities),
	}
}

func runStacks(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	inst, atoms, err := stackAtoms(cfg, args[0])
	if err != nil {
		return err
	}

	resolver := extract.NewResolver(inst, cfg.Extract.Strict)
	views := make([]stackView, 0, len(atoms))
	for idx, atom := range atoms {
		s, err := resolver.ReadStack(atom)
		view := newStackView(idx, s)
		if err != nil {
			logger.Errorw("Error reading stack",
				logger.FieldStack, atom.String(),
				logger.FieldError, err.Error())
			view.Error = err.Error()
		}
		views = append(views, view)
	}

	if display.ShouldOutputJSON(cmd) {
		return display.WriteJSON(cmd.OutOrStdout(), views)
	}

	if len(views) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "%s No %s atoms in %s\n", sym.None, cfg.Instance.Signature, args[0])
		return nil
	}

	data := pterm.TableData{{"#", "Stack", "Frontend", "Backend", "Database", "ORM", "Auth", "Overall"}}
	for _, v := range views {
		overall := strings.Join(v.OverallQualities, ", ")
		if v.Error != "" {
			overall = pterm.Red(sym.Error + " " + v.Error)
		}
		data = append(data, []string{
			fmt.Sprint(v.Index + 1), v.Atom,
			orNone(v.Frontend), orNone(v.Backend), orNone(v.Database), orNone(v.ORM), orNone(v.Auth),
			overall,
		})
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), table)
	return nil
}

func orNone(name string) string {
	if name == extract.None {
		return pterm.Gray(sym.None)
	}
	return name
}
