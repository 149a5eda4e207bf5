package testing

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/teranos/stackgrid/instance"
)

// StackSignature is the signature name BuildInstance declares stacks under
const StackSignature = "TechnologyStack"

// Stack describes one technology stack for BuildInstance. Empty component
// strings produce no tuple, so the field is absent for that stack.
type Stack struct {
	Frontend string
	Backend  string
	Database string
	ORM      string
	Auth     string

	FrontendBackendQualities []string
	BackendDatabaseQualities []string
	DatabaseORMQualities     []string
	AuthQualities            []string
	OverallQualities         []string
}

// BuildInstance builds an in-memory instance with one TechnologyStack atom
// per stack, named TechnologyStack0, TechnologyStack1, ...
// Every stack field is declared even when no stack uses it.
func BuildInstance(t *testing.T, stacks ...Stack) *instance.Instance {
	t.Helper()

	inst := instance.New()
	inst.Command = "run test"

	owners := make([]instance.Atom, len(stacks))
	for n := range stacks {
		owners[n] = instance.NewAtom(StackSignature + strconv.Itoa(n))
	}
	inst.AddSignature(StackSignature, false, owners...)

	singular := map[string]func(Stack) string{
		"frontend": func(s Stack) string { return s.Frontend },
		"backend":  func(s Stack) string { return s.Backend },
		"database": func(s Stack) string { return s.Database },
		"orm":      func(s Stack) string { return s.ORM },
		"auth":     func(s Stack) string { return s.Auth },
	}
	for _, name := range []string{"frontend", "backend", "database", "orm", "auth"} {
		var tuples []instance.Tuple
		for n, s := range stacks {
			if v := singular[name](s); v != "" {
				tuples = append(tuples, instance.NewTuple(owners[n], instance.NewAtom(v)))
			}
		}
		inst.AddField(name, StackSignature, tuples...)
	}

	plural := map[string]func(Stack) []string{
		"frontendBackendQualities": func(s Stack) []string { return s.FrontendBackendQualities },
		"backendDatabaseQualities": func(s Stack) []string { return s.BackendDatabaseQualities },
		"databaseORMQualities":     func(s Stack) []string { return s.DatabaseORMQualities },
		"authQualities":            func(s Stack) []string { return s.AuthQualities },
		"overallQualities":         func(s Stack) []string { return s.OverallQualities },
	}
	for _, name := range []string{"frontendBackendQualities", "backendDatabaseQualities",
		"databaseORMQualities", "authQualities", "overallQualities"} {
		var tuples []instance.Tuple
		for n, s := range stacks {
			for _, q := range plural[name](s) {
				tuples = append(tuples, instance.NewTuple(owners[n], instance.NewAtom(q)))
			}
		}
		inst.AddField(name, StackSignature, tuples...)
	}

	return inst
}

// WriteFile writes content to name inside a per-test temp directory and
// returns the full path. The directory is removed by t.Cleanup.
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}
