package instance

import (
	"io"

	"github.com/BurntSushi/toml"
	"github.com/teranos/stackgrid/errors"
	"gopkg.in/yaml.v3"
)

// fixture is the hand-written instance format used for examples and tests.
// Lists rather than maps keep signature, atom and tuple order.
//
//	signatures:
//	  - name: TechnologyStack
//	    atoms: [TechnologyStack0]
//	fields:
//	  - name: frontend
//	    parent: TechnologyStack
//	    tuples:
//	      - [TechnologyStack0, ReactJS0]
type fixture struct {
	Command    string             `yaml:"command" toml:"command"`
	Bitwidth   int                `yaml:"bitwidth" toml:"bitwidth"`
	Signatures []fixtureSignature `yaml:"signatures" toml:"signatures"`
	Fields     []fixtureField     `yaml:"fields" toml:"fields"`
}

type fixtureSignature struct {
	Name    string   `yaml:"name" toml:"name"`
	Builtin bool     `yaml:"builtin" toml:"builtin"`
	Atoms   []string `yaml:"atoms" toml:"atoms"`
}

type fixtureField struct {
	Name   string     `yaml:"name" toml:"name"`
	Parent string     `yaml:"parent" toml:"parent"`
	Tuples [][]string `yaml:"tuples" toml:"tuples"`
}

// ParseYAML reads an instance fixture in YAML
func ParseYAML(r io.Reader) (*Instance, error) {
	var fx fixture
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&fx); err != nil {
		if err == io.EOF {
			return nil, errors.NewInvalidRequestError("yaml instance is empty")
		}
		return nil, errors.Wrap(errors.NewInvalidRequestError("%v", err), "failed to decode yaml instance")
	}
	return fx.build()
}

// ParseTOML reads an instance fixture in TOML
func ParseTOML(r io.Reader) (*Instance, error) {
	var fx fixture
	md, err := toml.NewDecoder(r).Decode(&fx)
	if err != nil {
		return nil, errors.Wrap(errors.NewInvalidRequestError("%v", err), "failed to decode toml instance")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.NewInvalidRequestError("unknown key %q in toml instance", undecoded[0].String())
	}
	return fx.build()
}

func (fx *fixture) build() (*Instance, error) {
	inst := &Instance{
		Command:  fx.Command,
		Bitwidth: fx.Bitwidth,
	}

	for _, s := range fx.Signatures {
		if s.Name == "" {
			return nil, errors.NewInvalidRequestError("signature without a name")
		}
		atoms := make([]Atom, len(s.Atoms))
		for n, a := range s.Atoms {
			atoms[n] = NewAtom(a)
		}
		inst.AddSignature(s.Name, s.Builtin, atoms...)
	}

	for _, f := range fx.Fields {
		if f.Name == "" {
			return nil, errors.NewInvalidRequestError("field without a name")
		}
		tuples := make([]Tuple, 0, len(f.Tuples))
		for n, t := range f.Tuples {
			if len(t) == 0 {
				return nil, errors.NewInvalidRequestError("field %q tuple %d is empty", f.Name, n)
			}
			atoms := make([]Atom, len(t))
			for k, a := range t {
				atoms[k] = NewAtom(a)
			}
			tuples = append(tuples, NewTuple(atoms...))
		}
		inst.AddField(f.Name, f.Parent, tuples...)
	}

	return inst, nil
}
