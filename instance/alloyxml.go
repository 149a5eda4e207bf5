package instance

import (
	"encoding/xml"
	"io"

	"github.com/teranos/stackgrid/errors"
)

// XML shape written by Alloy and Forge for instance visualisers:
//
//	<alloy>
//	  <instance bitwidth="4" command="run {}">
//	    <sig label="TechnologyStack" ID="4" parentID="2"><atom label="TechnologyStack0"/></sig>
//	    <field label="frontend" ID="9" parentID="4">
//	      <tuple><atom label="TechnologyStack0"/><atom label="ReactJS0"/></tuple>
//	    </field>
//	  </instance>
//	</alloy>
type xmlDocument struct {
	XMLName   xml.Name      `xml:"alloy"`
	Instances []xmlInstance `xml:"instance"`
}

type xmlInstance struct {
	Bitwidth int        `xml:"bitwidth,attr"`
	Command  string     `xml:"command,attr"`
	Sigs     []xmlSig   `xml:"sig"`
	Fields   []xmlField `xml:"field"`
}

type xmlSig struct {
	Label    string    `xml:"label,attr"`
	ID       string    `xml:"ID,attr"`
	ParentID string    `xml:"parentID,attr"`
	Builtin  string    `xml:"builtin,attr"`
	Atoms    []xmlAtom `xml:"atom"`
}

type xmlField struct {
	Label    string     `xml:"label,attr"`
	ParentID string     `xml:"parentID,attr"`
	Tuples   []xmlTuple `xml:"tuple"`
}

type xmlTuple struct {
	Atoms []xmlAtom `xml:"atom"`
}

type xmlAtom struct {
	Label string `xml:"label,attr"`
}

// ParseAlloyXML reads an Alloy/Forge XML instance. When the document holds
// several instances (temporal traces) the first one is used.
//
// A signature's atoms include the atoms of its sub-signatures, matching how
// visualisers expose them.
func ParseAlloyXML(r io.Reader) (*Instance, error) {
	var doc xmlDocument
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.NewInvalidRequestError("%v", err), "failed to decode alloy xml")
	}
	if len(doc.Instances) == 0 {
		return nil, errors.WithHint(
			errors.NewInvalidRequestError("alloy xml has no <instance> element"),
			"export the instance from the solver's visualiser, not the model source")
	}

	src := doc.Instances[0]
	inst := &Instance{
		Command:  src.Command,
		Bitwidth: src.Bitwidth,
	}

	labelByID := make(map[string]string, len(src.Sigs))
	children := make(map[string][]int)
	for n, s := range src.Sigs {
		labelByID[s.ID] = s.Label
		if s.ParentID != "" {
			children[s.ParentID] = append(children[s.ParentID], n)
		}
	}

	for n, s := range src.Sigs {
		atoms := collectAtoms(src.Sigs, children, n, make(map[int]bool))
		inst.AddSignature(s.Label, s.Builtin == "yes", dedupe(atoms)...)
	}

	for _, f := range src.Fields {
		tuples := make([]Tuple, 0, len(f.Tuples))
		for _, t := range f.Tuples {
			atoms := make([]Atom, len(t.Atoms))
			for k, a := range t.Atoms {
				atoms[k] = NewAtom(a.Label)
			}
			tuples = append(tuples, NewTuple(atoms...))
		}
		inst.AddField(f.Label, labelByID[f.ParentID], tuples...)
	}

	return inst, nil
}

// collectAtoms returns the signature's own atoms followed by those of its
// descendants, depth first in document order.
func collectAtoms(sigs []xmlSig, children map[string][]int, idx int, seen map[int]bool) []Atom {
	if seen[idx] {
		return nil
	}
	seen[idx] = true

	s := sigs[idx]
	atoms := make([]Atom, 0, len(s.Atoms))
	for _, a := range s.Atoms {
		atoms = append(atoms, NewAtom(a.Label))
	}
	// univ and other roots with an empty ID have no children to descend into
	if s.ID == "" {
		return atoms
	}
	for _, child := range children[s.ID] {
		atoms = append(atoms, collectAtoms(sigs, children, child, seen)...)
	}
	return atoms
}

func dedupe(atoms []Atom) []Atom {
	seen := make(map[Atom]bool, len(atoms))
	out := atoms[:0]
	for _, a := range atoms {
		if seen[a] {
			continue
		}
		seen[a] = true
		out = append(out, a)
	}
	return out
}
