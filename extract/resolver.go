package extract

import (
	"fmt"

	"github.com/teranos/stackgrid/errors"
	"github.com/teranos/stackgrid/instance"
	"github.com/teranos/stackgrid/logger"
	"go.uber.org/zap"
)

// Source answers joins of a stack atom against a named field.
// *instance.Instance satisfies it.
type Source interface {
	Join(atom instance.Atom, field string) (instance.Relation, error)
}

// Stack holds the display names resolved for one technology stack
type Stack struct {
	Atom     instance.Atom
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

// HasORM reports whether the stack has an ORM row. A blank name counts as
// no ORM.
func (s Stack) HasORM() bool {
	return s.ORM != "" && s.ORM != None
}

// HasAuth reports whether the stack has an authentication row
func (s Stack) HasAuth() bool {
	return s.Auth != "" && s.Auth != None
}

// Resolver reads stack fields from a Source.
type Resolver struct {
	Source Source
	Logger *zap.SugaredLogger
	// Strict turns a failed field into a ReadStack error instead of None
	Strict bool
}

// NewResolver returns a resolver over src logging to the "extract" component
func NewResolver(src Source, strict bool) *Resolver {
	return &Resolver{
		Source: src,
		Logger: logger.ComponentLogger("extract"),
		Strict: strict,
	}
}

// Component resolves a singular field to one display name.
func (r *Resolver) Component(stack instance.Atom, field string) Value {
	rel, err := r.join(stack, field)
	if err != nil {
		r.logFailure(stack, field, err)
		return failed(err)
	}
	return present(Name(FirstAtomOf(rel)))
}

// Qualities resolves a plural field to display names in join order.
func (r *Resolver) Qualities(stack instance.Atom, field string) Values {
	rel, err := r.join(stack, field)
	if err != nil {
		r.logFailure(stack, field, err)
		return Values{Kind: Failed, Err: err}
	}

	var names []string
	for _, t := range rel.Tuples() {
		atoms := t.Atoms()
		if len(atoms) == 0 {
			continue
		}
		if name := Name(atoms[0].String()); name != None {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return Values{Kind: Absent}
	}
	return Values{Kind: Present, Names: names}
}

// ReadStack resolves every field of a stack. Outside strict mode it never
// returns an error; failed fields read as None or empty.
func (r *Resolver) ReadStack(atom instance.Atom) (Stack, error) {
	s := Stack{Atom: atom}
	var firstErr error
	note := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	for _, c := range []struct {
		field string
		dst   *string
	}{
		{FieldFrontend, &s.Frontend},
		{FieldBackend, &s.Backend},
		{FieldDatabase, &s.Database},
		{FieldORM, &s.ORM},
		{FieldAuth, &s.Auth},
	} {
		v := r.Component(atom, c.field)
		*c.dst = v.Name
		note(v.Err)
	}

	for _, q := range []struct {
		field string
		dst   *[]string
	}{
		{FieldFrontendBackendQualities, &s.FrontendBackendQualities},
		{FieldBackendDatabaseQualities, &s.BackendDatabaseQualities},
		{FieldDatabaseORMQualities, &s.DatabaseORMQualities},
		{FieldAuthQualities, &s.AuthQualities},
		{FieldOverallQualities, &s.OverallQualities},
	} {
		v := r.Qualities(atom, q.field)
		*q.dst = v.Names
		note(v.Err)
	}

	if r.Strict && firstErr != nil {
		return s, errors.Wrapf(firstErr, "stack %s", atom)
	}
	return s, nil
}

// join calls the source, converting a panic inside it into an error
func (r *Resolver) join(stack instance.Atom, field string) (rel instance.Relation, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = errors.Newf("panic joining %s: %v", field, rec)
		}
	}()

	if r.Source == nil {
		return instance.Relation{}, errors.New("no instance source")
	}
	rel, err = r.Source.Join(stack, field)
	if err != nil {
		return instance.Relation{}, errors.Wrapf(err, "failed to join %s", field)
	}
	return rel, nil
}

func (r *Resolver) logFailure(stack instance.Atom, field string, err error) {
	log := r.Logger
	if log == nil {
		log = logger.Logger
	}
	log.Warnw(fmt.Sprintf("Error resolving %s", field),
		logger.FieldStack, stack.String(),
		logger.FieldField, field,
		logger.FieldError, err.Error(),
	)
}
