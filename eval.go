package intexpr

import (
	"io"
	"math/big"
	"strconv"
	"strings"
)

// Context is a context for evaluating expressions. It holds the evaluation
// stack and a cache of parsed literals, so reusing one context across many
// evaluations avoids reparsing shared literals. It is not safe to use a
// Context concurrently.
type Context struct {
	stack []*big.Int
	nums  map[string]*big.Int
	err   error
}

// NewContext creates a new evaluation context.
func NewContext() *Context {
	return &Context{nums: make(map[string]*big.Int)}
}

// Eval evaluates an expression against an environment and returns the result.
// The environment is only read, never modified; evaluating the same
// expression against an unchanged environment always yields the same result.
// If an error occurs, e.g. a variable missing from env or a division by zero,
// then the result is nil and ctx.Err returns the error.
func (ctx *Context) Eval(e *Expr, env *Env) *big.Int {
	switch len(ctx.stack) {
	case 0: // do nothing
	case 1:
		ctx.stack[0] = new(big.Int)
		ctx.stack = ctx.stack[:0]
	default:
		panic("intexpr: Eval during Eval")
	}
	err := e.n.eval(ctx, env)
	ctx.err = err
	if err != nil {
		// Abandon any partial computation so the context can be reused.
		ctx.stack = ctx.stack[:0]
		return nil
	}
	return ctx.Result()
}

// Result returns the result obtained after evaluating an expression. Panics
// if ctx has not been used to evaluate an expression. Returns nil if an error
// occurred during evaluation.
func (ctx *Context) Result() *big.Int {
	if ctx.err != nil {
		return nil
	}
	switch len(ctx.stack) {
	case 0:
		panic("intexpr: Context.Result called before evaluating any expression")
	case 1:
		return ctx.stack[0]
	default:
		panic("intexpr: inconsistent stack: " + strconv.Itoa(len(ctx.stack)) + " items (bad AST?)")
	}
}

// Err returns the first error that occurred while evaluating an expression
// with ctx, if any.
func (ctx *Context) Err() error {
	return ctx.err
}

// push ensures a settable value on the stack.
func (ctx *Context) push() *big.Int {
	if len(ctx.stack) < cap(ctx.stack) {
		ctx.stack = ctx.stack[:len(ctx.stack)+1]
		if ctx.stack[len(ctx.stack)-1] == nil {
			ctx.stack[len(ctx.stack)-1] = new(big.Int)
		}
	} else {
		ctx.stack = append(ctx.stack, new(big.Int))
	}
	return ctx.stack[len(ctx.stack)-1]
}

// pop removes the top from the stack and returns it. The returned value may
// be modified by future node evaluations.
func (ctx *Context) pop() *big.Int {
	r := ctx.stack[len(ctx.stack)-1]
	ctx.stack = ctx.stack[:len(ctx.stack)-1]
	return r
}

// top is a shortcut to get the top element of the stack.
func (ctx *Context) top() *big.Int {
	return ctx.stack[len(ctx.stack)-1]
}

// num gets a possibly cached literal from its text.
func (ctx *Context) num(s string) *big.Int {
	if r := ctx.nums[s]; r != nil {
		return r
	}
	r, ok := new(big.Int).SetString(s, 10)
	if !ok {
		// The lexer admits only digit runs, possibly with a folded sign.
		panic("intexpr: invalid literal: " + strconv.Quote(s))
	}
	ctx.nums[s] = r
	return r
}

// eval pushes the node's value to the context's stack.
func (n *node) eval(ctx *Context, env *Env) error {
	switch n.kind {
	case nodeNum:
		ctx.push().Set(ctx.num(n.name))
	case nodeName:
		v, ok := env.lookup(n.name)
		if !ok {
			return &NameError{Name: n.name}
		}
		ctx.push().Set(v)
	case nodeNeg:
		if err := n.left.eval(ctx, env); err != nil {
			return err
		}
		v := ctx.top()
		v.Neg(v)
	case nodeAdd:
		if err := n.left.eval(ctx, env); err != nil {
			return err
		}
		if err := n.right.eval(ctx, env); err != nil {
			return err
		}
		r := ctx.pop()
		l := ctx.top()
		l.Add(l, r)
	case nodeSub:
		if err := n.left.eval(ctx, env); err != nil {
			return err
		}
		if err := n.right.eval(ctx, env); err != nil {
			return err
		}
		r := ctx.pop()
		l := ctx.top()
		l.Sub(l, r)
	case nodeMul:
		if err := n.left.eval(ctx, env); err != nil {
			return err
		}
		if err := n.right.eval(ctx, env); err != nil {
			return err
		}
		r := ctx.pop()
		l := ctx.top()
		l.Mul(l, r)
	case nodeDiv:
		if err := n.left.eval(ctx, env); err != nil {
			return err
		}
		if err := n.right.eval(ctx, env); err != nil {
			return err
		}
		r := ctx.pop()
		l := ctx.top()
		if r.Sign() == 0 {
			return &DivisionError{}
		}
		// Quo truncates toward zero.
		l.Quo(l, r)
	case nodePow:
		if err := n.left.eval(ctx, env); err != nil {
			return err
		}
		if err := n.right.eval(ctx, env); err != nil {
			return err
		}
		r := ctx.pop()
		l := ctx.top()
		// The exponent must be non-negative and machine-sized.
		if r.Sign() < 0 || !r.IsInt64() {
			return &ExponentError{Exponent: new(big.Int).Set(r)}
		}
		l.Exp(l, r, nil)
	default:
		panic("intexpr: invalid AST node " + n.kind.String())
	}
	return nil
}

// Eval is a shortcut to parse an expression and evaluate it against an
// environment.
func Eval(src io.RuneScanner, env *Env) (*big.Int, error) {
	a, err := Parse(src)
	if err != nil {
		return nil, err
	}
	ctx := NewContext()
	ctx.Eval(a, env)
	return ctx.Result(), ctx.Err()
}

// EvalString is a shortcut to parse and evaluate a string expression against
// an environment.
func EvalString(src string, env *Env) (*big.Int, error) {
	return Eval(strings.NewReader(src), env)
}

// NameError is an error from a lookup for a variable that is missing from the
// environment.
type NameError struct {
	// Name is the name that was missing.
	Name string
}

func (err *NameError) Error() string {
	return "undefined variable: " + strconv.Quote(err.Name)
}

// DivisionError is an error from a division by zero.
type DivisionError struct{}

func (err *DivisionError) Error() string {
	return "division by zero"
}

// ExponentError is an error from an exponent that is negative or too large
// for a machine-sized integer.
type ExponentError struct {
	// Exponent is the offending exponent.
	Exponent *big.Int
}

func (err *ExponentError) Error() string {
	if err.Exponent.Sign() < 0 {
		return "negative exponent " + err.Exponent.String()
	}
	return "exponent " + err.Exponent.String() + " too large"
}
