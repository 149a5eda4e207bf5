// Package instance is the relational query layer over a solved model
// instance: signatures with ordered atoms, fields as ordered tuples, and
// joins of an atom against a field.
//
// Order is significant everywhere. Atoms, tuples and join results keep the
// order they were loaded in and are never re-sorted.
package instance

import (
	"sort"
	"strings"

	"github.com/teranos/stackgrid/errors"
)

// Atom is an opaque named entity of an instance
type Atom struct {
	label string
}

// NewAtom returns the atom with the given label
func NewAtom(label string) Atom {
	return Atom{label: label}
}

// String returns the atom's label, e.g. "ReactJS0" or "TechStack/ReactJS"
func (a Atom) String() string {
	return a.label
}

// IsZero reports whether the atom has no label
func (a Atom) IsZero() bool {
	return a.label == ""
}

// Tuple is one relational fact: an ordered sequence of atoms
type Tuple struct {
	atoms []Atom
}

// NewTuple builds a tuple from atoms
func NewTuple(atoms ...Atom) Tuple {
	return Tuple{atoms: atoms}
}

// Atoms returns the tuple's atoms in order
func (t Tuple) Atoms() []Atom {
	return t.atoms
}

// Arity is the number of atoms in the tuple
func (t Tuple) Arity() int {
	return len(t.atoms)
}

// Relation is an ordered collection of tuples, the result of a join.
// An empty relation means the field has no value for the joined atom.
type Relation struct {
	tuples []Tuple
}

// NewRelation builds a relation from tuples
func NewRelation(tuples ...Tuple) Relation {
	return Relation{tuples: tuples}
}

// Empty reports whether the relation has no tuples
func (r Relation) Empty() bool {
	return len(r.tuples) == 0
}

// Tuples returns the tuples in order
func (r Relation) Tuples() []Tuple {
	return r.tuples
}

// Len is the number of tuples
func (r Relation) Len() int {
	return len(r.tuples)
}

// Signature is a named set of atoms
type Signature struct {
	Name    string
	Builtin bool
	atoms   []Atom
}

// Atoms returns the signature's atoms in order
func (s *Signature) Atoms() []Atom {
	return s.atoms
}

// Field is a relation owned by a signature. The first column of every tuple
// is an atom of the parent signature.
type Field struct {
	Name   string
	Parent string
	tuples []Tuple
}

// Tuples returns the field's tuples in order
func (f *Field) Tuples() []Tuple {
	return f.tuples
}

// Join composes atom with the field: each tuple whose first atom is a
// contributes its remaining atoms, in field order.
func (a Atom) Join(f *Field) Relation {
	var out []Tuple
	for _, t := range f.tuples {
		if len(t.atoms) < 2 || t.atoms[0] != a {
			continue
		}
		rest := make([]Atom, len(t.atoms)-1)
		copy(rest, t.atoms[1:])
		out = append(out, Tuple{atoms: rest})
	}
	return Relation{tuples: out}
}

// Instance is one solved model instance
type Instance struct {
	Command  string
	Bitwidth int

	signatures []*Signature
	fields     []*Field
}

// New returns an empty instance
func New() *Instance {
	return &Instance{}
}

// AddSignature appends a signature with its atoms. Adding a name twice
// appends atoms to the existing signature.
func (i *Instance) AddSignature(name string, builtin bool, atoms ...Atom) *Signature {
	for _, s := range i.signatures {
		if s.Name == name {
			s.atoms = append(s.atoms, atoms...)
			return s
		}
	}
	s := &Signature{Name: name, Builtin: builtin, atoms: atoms}
	i.signatures = append(i.signatures, s)
	return s
}

// AddField appends a field owned by parent
func (i *Instance) AddField(name, parent string, tuples ...Tuple) *Field {
	f := &Field{Name: name, Parent: parent, tuples: tuples}
	i.fields = append(i.fields, f)
	return f
}

// Signatures returns all signatures in load order
func (i *Instance) Signatures() []*Signature {
	return i.signatures
}

// Fields returns all fields in load order
func (i *Instance) Fields() []*Field {
	return i.fields
}

// Signature returns the named signature. Names match exactly or by their
// last path segment, so "TechnologyStack" finds "this/TechnologyStack".
func (i *Instance) Signature(name string) (*Signature, error) {
	for _, s := range i.signatures {
		if s.Name == name {
			return s, nil
		}
	}
	for _, s := range i.signatures {
		if lastSegment(s.Name) == name {
			return s, nil
		}
	}
	return nil, errors.WithHintf(
		errors.NewNotFoundError("signature %q", name),
		"signatures in this instance: %s", strings.Join(i.userSignatureNames(), ", "))
}

// Field returns the named field. A name declared on more than one signature
// is ambiguous and rejected.
func (i *Instance) Field(name string) (*Field, error) {
	var matches []*Field
	for _, f := range i.fields {
		if f.Name == name {
			matches = append(matches, f)
		}
	}

	switch len(matches) {
	case 0:
		return nil, errors.NewNotFoundError("field %q", name)
	case 1:
		return matches[0], nil
	default:
		parents := make([]string, len(matches))
		for n, f := range matches {
			parents[n] = f.Parent
		}
		return nil, errors.WithHintf(
			errors.NewInvalidRequestError("field %q is ambiguous", name),
			"declared on: %s", strings.Join(parents, ", "))
	}
}

// Join looks up a field by name and joins atom against it
func (i *Instance) Join(atom Atom, fieldName string) (Relation, error) {
	f, err := i.Field(fieldName)
	if err != nil {
		return Relation{}, err
	}
	return atom.Join(f), nil
}

func (i *Instance) userSignatureNames() []string {
	var names []string
	for _, s := range i.signatures {
		if !s.Builtin {
			names = append(names, s.Name)
		}
	}
	sort.Strings(names)
	return names
}

func lastSegment(s string) string {
	if idx := strings.LastIndex(s, "/"); idx >= 0 {
		return s[idx+1:]
	}
	return s
}
