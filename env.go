// env.go: lexical environments.
package cortado

// Env is a lexical environment frame with a parent link. Lookups walk
// parent-ward; a Define in a child frame shadows but never mutates an outer
// binding. The interpreter keeps two well-known frames: Core (builtins) and
// Global (program state, child of Core). A call frame is a fresh child of
// the method's captured Env and is discarded when the call returns, unless
// a closure keeps it alive.
type Env struct {
	parent *Env
	table  map[string]Value
}

// NewEnv creates a new lexical frame with the given parent (which may be nil).
func NewEnv(parent *Env) *Env {
	return &Env{parent: parent, table: make(map[string]Value)}
}

// Define binds name to v in the current frame, shadowing any outer binding.
func (e *Env) Define(name string, v Value) {
	e.table[name] = v
}

// Get retrieves the nearest visible binding for name.
func (e *Env) Get(name string) (Value, bool) {
	for f := e; f != nil; f = f.parent {
		if v, ok := f.table[name]; ok {
			return v, true
		}
	}
	return Value{}, false
}
