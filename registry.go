package beacon

// Format names the advertisement format of a Packet.
type Format string

// Built-in formats.
const (
	FormatEddystone    Format = "eddystone"
	FormatIBeacon      Format = "ibeacon"
	FormatManufacturer Format = "manufacturer"
)

// Packet is a structured advertisement produced by an Interpreter.
// The registry never looks past this interface.
type Packet interface {
	Format() Format
	Bytes() []byte
}

// Interpreter recognizes and parses one advertisement format.
// CouldInterpret must not have side effects. Interpret is only called with
// payloads for which CouldInterpret reported true.
type Interpreter interface {
	CouldInterpret(b []byte) bool
	Interpret(b []byte) Packet
}

// Priority selects where Register inserts an interpreter.
type Priority int

// Priorities
const (
	Append  Priority = iota // Lowest precedence, tried after all existing interpreters.
	Prepend                 // Highest precedence, shadows all existing interpreters.
)

// Registry dispatches advertising payloads to the first Interpreter that can parse them.
//
// A Registry is not safe for concurrent mutation; callers sharing one across
// goroutines must serialize Register calls against lookups.
type Registry struct {
	interpreters []Interpreter
}

// NewRegistry returns a registry that tries the given interpreters in order.
func NewRegistry(is ...Interpreter) *Registry {
	return &Registry{interpreters: append([]Interpreter(nil), is...)}
}

// NewDefaultRegistry returns a registry seeded with the built-in interpreters.
// Eddystone is tried before iBeacon. The two formats live in different AD
// structures, so the order only matters once custom interpreters are added.
func NewDefaultRegistry() *Registry {
	return NewRegistry(Eddystone{}, IBeacon{})
}

// FindMatching returns the first interpreter, in registry order, that reports it
// could interpret b.
func (r *Registry) FindMatching(b []byte) (Interpreter, bool) {
	for _, i := range r.interpreters {
		if i.CouldInterpret(b) {
			return i, true
		}
	}
	return nil, false
}

// CouldInterpret reports whether any registered interpreter matches b.
func (r *Registry) CouldInterpret(b []byte) bool {
	_, ok := r.FindMatching(b)
	return ok
}

// Interpret parses b with the first matching interpreter.
// It returns false if no interpreter matched.
func (r *Registry) Interpret(b []byte) (Packet, bool) {
	i, ok := r.FindMatching(b)
	if !ok {
		return nil, false
	}
	return i.Interpret(b), true
}

// Register adds i at the end (Append) or at the front (Prepend) of the registry.
func (r *Registry) Register(i Interpreter, p Priority) {
	if p == Prepend {
		r.interpreters = append([]Interpreter{i}, r.interpreters...)
		return
	}
	r.interpreters = append(r.interpreters, i)
}

// Append registers i with the lowest precedence.
func (r *Registry) Append(i Interpreter) { r.Register(i, Append) }

// Prepend registers i with the highest precedence.
func (r *Registry) Prepend(i Interpreter) { r.Register(i, Prepend) }

// Interpreters returns a copy of the registered interpreters in match order.
func (r *Registry) Interpreters() []Interpreter {
	return append([]Interpreter(nil), r.interpreters...)
}

// Len returns the number of registered interpreters.
func (r *Registry) Len() int { return len(r.interpreters) }
