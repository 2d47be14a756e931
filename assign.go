package intexpr

import (
	"errors"
	"strconv"
	"strings"
)

// Assign parses a line of the form "name = expression", evaluates the right
// side against env, and on success binds the result to name in env. The name
// must be a non-empty run of ASCII letters. A missing-variable failure from
// the right side propagates unchanged; any other failure is reported as an
// AssignError. A failed assignment never modifies env.
func Assign(raw string, env *Env) error {
	name, rhs, ok := strings.Cut(raw, "=")
	if !ok {
		return &AssignError{Name: strings.TrimSpace(raw)}
	}
	name = strings.TrimSpace(name)
	if !validName(name) {
		return &IdentError{Text: name, Col: 1}
	}
	r, err := EvalString(rhs, env)
	if err != nil {
		var missing *NameError
		if errors.As(err, &missing) {
			return err
		}
		return &AssignError{Name: name, Err: err}
	}
	env.Set(name, r)
	return nil
}

// validName reports whether s is a legal variable name: one or more ASCII
// letters, nothing else.
func validName(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !isLetter(r) {
			return false
		}
	}
	return true
}

// AssignError is an error from an assignment whose right side failed for any
// reason other than a missing variable, or from an assignment with no =.
type AssignError struct {
	// Name is the assignment target.
	Name string
	// Err is the failure from the right side, or nil if the input had no =.
	Err error
}

func (err *AssignError) Error() string {
	if err.Err == nil {
		return "no = in assignment to " + strconv.Quote(err.Name)
	}
	return "cannot assign " + strconv.Quote(err.Name) + ": " + err.Err.Error()
}

func (err *AssignError) Unwrap() error {
	return err.Err
}
