package intexpr

import "math/big"

// Env is a mutable store of variable bindings. The zero value is not usable;
// create one with NewEnv. An Env is owned by the caller and passed into every
// evaluation; it is not safe to use concurrently.
type Env struct {
	vars map[string]*big.Int
}

// NewEnv creates an empty environment.
func NewEnv() *Env {
	return &Env{vars: make(map[string]*big.Int)}
}

// Get returns a copy of the value bound to name and whether the binding
// exists.
func (e *Env) Get(name string) (*big.Int, bool) {
	v, ok := e.vars[name]
	if !ok {
		return nil, false
	}
	return new(big.Int).Set(v), true
}

// Set binds name to a copy of value, inserting or overwriting. Returns e for
// chaining.
func (e *Env) Set(name string, value *big.Int) *Env {
	e.vars[name] = new(big.Int).Set(value)
	return e
}

// Has reports whether name is bound.
func (e *Env) Has(name string) bool {
	_, ok := e.vars[name]
	return ok
}

// Len returns the number of bindings.
func (e *Env) Len() int {
	return len(e.vars)
}

// Names returns the bound names in sorted order.
func (e *Env) Names() []string {
	names := make([]string, 0, len(e.vars))
	for k := range e.vars {
		names = append(names, k)
	}
	sortstrs(names)
	return names
}

// lookup returns the stored value without copying. Evaluation must not
// modify the result.
func (e *Env) lookup(name string) (*big.Int, bool) {
	v, ok := e.vars[name]
	return v, ok
}
