package extract

// Kind says whether a field resolved to a value
type Kind int

const (
	// Absent means the field has no value for the stack
	Absent Kind = iota
	// Present means the field resolved to at least one name
	Present
	// Failed means the lookup or join failed; the failure has been logged
	Failed
)

func (k Kind) String() string {
	switch k {
	case Present:
		return "present"
	case Absent:
		return "absent"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Value is the resolution of a singular field. Name is None unless Kind is
// Present.
type Value struct {
	Kind Kind
	Name string
	Err  error
}

// Values is the resolution of a plural field. Names is empty unless Kind is
// Present, and never contains None.
type Values struct {
	Kind  Kind
	Names []string
	Err   error
}

func present(name string) Value {
	if name == None {
		return absent()
	}
	return Value{Kind: Present, Name: name}
}

func absent() Value {
	return Value{Kind: Absent, Name: None}
}

func failed(err error) Value {
	return Value{Kind: Failed, Name: None, Err: err}
}
