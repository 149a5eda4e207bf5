// Package extract turns joins against a technology stack atom into display
// names.
//
// Singular fields resolve to one name or None. Plural quality fields resolve
// to an ordered list with None entries dropped. A failing field never aborts
// the stack: it is logged and degrades to None or an empty list, unless the
// Resolver runs in strict mode.
package extract

import (
	"strings"

	"github.com/teranos/stackgrid/instance"
)

// None is the placeholder for a singular field with no value
const None = "none"

// Stack field names
const (
	FieldFrontend = "frontend"
	FieldBackend  = "backend"
	FieldDatabase = "database"
	FieldORM      = "orm"
	FieldAuth     = "auth"

	FieldFrontendBackendQualities = "frontendBackendQualities"
	FieldBackendDatabaseQualities = "backendDatabaseQualities"
	FieldDatabaseORMQualities     = "databaseORMQualities"
	FieldAuthQualities            = "authQualities"
	FieldOverallQualities         = "overallQualities"
)

// FirstAtomOf returns the first atom of the first tuple, or None when the
// relation is empty.
func FirstAtomOf(r instance.Relation) string {
	if r.Empty() {
		return None
	}
	atoms := r.Tuples()[0].Atoms()
	if len(atoms) == 0 {
		return None
	}
	return atoms[0].String()
}

// Name strips any namespace prefix from an atom label, keeping the text
// after the last '/'. Empty and None labels yield None.
//
//	Name("TechStack/ReactJS") == "ReactJS"
//	Name("ReactJS") == "ReactJS"
func Name(atom string) string {
	if atom == "" || atom == None {
		return None
	}
	if idx := strings.LastIndex(atom, "/"); idx >= 0 {
		return atom[idx+1:]
	}
	return atom
}
