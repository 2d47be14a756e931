package intexpr

import (
	"io"
	"math/big"
	"strings"
)

// Expr = Operand | Expr op Expr
// Operand = { '+' | '-' } ( num | name | '(' Expr ')' )
// op = '+' | '-' | '*' | '/' | '^'
//
// All binary operators are left-associative. ^ binds tightest, then * and /,
// then + and -. A run of signs before an operand folds to its parity and
// becomes part of the operand, so signs bind tighter than ^: -2^2 is (-2)^2.
// Two operands in a row never multiply implicitly; they are an error.

// Expr is a parsed expression that can be evaluated against an environment.
type Expr struct {
	// n is the root node of the expression.
	n *node
	// names is the list of variable names used in the expression.
	names []string
}

// Parse parses an expression so it can be evaluated with a context. The given
// options are applied in order.
func Parse(src io.RuneScanner, opts ...ParseOption) (*Expr, error) {
	scan := lex(src)
	p := parsectx{
		names: make(map[string]bool),
	}
	for _, opt := range opts {
		p = opt.parseOption(p)
	}
	n, err := parseterm(scan, &p, exprprec)
	if err != nil {
		return nil, err
	}
	tok := scan.must()
	if tok.kind != tokenEOF {
		return nil, itShouldNotHaveEndedThisWay(tok, "")
	}
	if n == nil {
		return nil, &EmptyExpressionError{Col: tok.pos, End: ""}
	}
	ex := Expr{
		n:     n,
		names: make([]string, 0, len(p.names)),
	}
	for k := range p.names {
		ex.names = append(ex.names, k)
	}
	sortstrs(ex.names)
	return &ex, nil
}

// ParseString is a shortcut to parse an expression from a string.
func ParseString(src string, opts ...ParseOption) (*Expr, error) {
	return Parse(strings.NewReader(src), opts...)
}

// sortstrs sorts a string slice without using package sort because that has
// reflection and allocation problems.
func sortstrs(names []string) {
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j] < names[j-1]; j-- {
			names[j], names[j-1] = names[j-1], names[j]
		}
	}
}

// parseterm parses a term up to the first operator that binds no more tightly
// than until. If there is no error, then parseterm pushes the last token it
// scans, including EOF. If the input is an empty subexpression, the result is
// nil with no error; callers must create an error in contexts where empty
// subexpressions are illegal.
func parseterm(scan *lexer, p *parsectx, until operator) (*node, error) {
	n, err := parselhs(scan, p)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, nil
	}
	for {
		tok, err := scan.next(p.wseof)
		if err != nil {
			return nil, err
		}
		switch tok.kind {
		case tokenNum, tokenIdent, tokenOpen:
			// Two operands in a row. The source grammar has no implicit
			// multiplication, so this is a structural fault.
			return nil, &AdjacencyError{Col: tok.pos, Token: tok.text}
		case tokenOp:
			prec := binop(tok.text)
			if prec.op == nodeNone {
				return nil, &OperatorError{Col: tok.pos, Operator: tok.text, Unary: false}
			}
			if !prec.moreBinding(until) {
				scan.push(tok)
				return n, nil
			}
			rhs, err := parseterm(scan, p, prec)
			if err != nil {
				return nil, err
			}
			if rhs == nil {
				end := scan.must()
				return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
			}
			n = &node{kind: prec.op, left: n, right: rhs}
		case tokenClose, tokenEOF:
			// End of expression.
			scan.push(tok)
			return n, nil
		default:
			panic("intexpr: unknown token: " + tok.String())
		}
	}
}

// parselhs parses a single operand: a run of unary signs folded to one
// parity, followed by a literal, a name, or a parenthesized subexpression.
// Whitespace normally lexed as EOF is ignored where an operand is expected.
func parselhs(scan *lexer, p *parsectx) (*node, error) {
	// Don't use EOF whitespace for LHS.
	tok, err := scan.next("")
	if err != nil {
		return nil, err
	}
	var neg, signed bool
	for tok.kind == tokenOp && (tok.text == "+" || tok.text == "-") {
		if tok.text == "-" {
			neg = !neg
		}
		signed = true
		tok, err = scan.next("")
		if err != nil {
			return nil, err
		}
	}
	var n *node
	switch tok.kind {
	case tokenNum:
		name := tok.text
		if neg {
			name = "-" + name
		}
		n = &node{kind: nodeNum, name: name}
	case tokenIdent:
		p.names[tok.text] = true
		n = &node{kind: nodeName, name: tok.text}
		if neg {
			n = &node{kind: nodeNeg, left: n}
		}
	case tokenOp:
		// * / ^ have no unary meaning.
		return nil, &OperatorError{Col: tok.pos, Operator: tok.text, Unary: true}
	case tokenOpen:
		rhs, err := parseterm(scan, p, exprprec)
		if err != nil {
			return nil, err
		}
		end := scan.must()
		if end.kind != tokenClose {
			return nil, itShouldNotHaveEndedThisWay(end, tok.text)
		}
		if rhs == nil {
			return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
		}
		n = rhs
		if neg {
			n = &node{kind: nodeNeg, left: n}
		}
	case tokenClose:
		if signed {
			return nil, &EmptyExpressionError{Col: tok.pos, End: tok.text}
		}
		// This might close an empty group, so just let the caller decide
		// what to do.
		scan.push(tok)
		return nil, nil
	case tokenEOF:
		return nil, &EmptyExpressionError{Col: tok.pos, End: ""}
	default:
		panic("intexpr: unknown token: " + tok.String())
	}
	return n, nil
}

// itShouldNotHaveEndedThisWay returns an error appropriate for an unexpected
// token at the end of a subexpression. open is the bracket the expression
// should have matched, or the empty string if none.
func itShouldNotHaveEndedThisWay(tok lexToken, open string) error {
	switch tok.kind {
	case tokenEOF:
		// Unexpected EOF implies an open bracket that was not closed.
		return &BracketError{Col: tok.pos, Left: open, Right: ""}
	case tokenClose:
		// A close bracket here is either unmatched or one too many.
		return &BracketError{Col: tok.pos, Left: open, Right: tok.text}
	default:
		panic("intexpr: it really should not have ended this way: " + tok.String())
	}
}

// Vars returns the variable names used when evaluating the expression.
func (e *Expr) Vars() []string {
	return append(([]string)(nil), e.names...)
}

// Eval is a shortcut to evaluate the expression on a context. See
// Context.Eval.
func (e *Expr) Eval(ctx *Context, env *Env) *big.Int {
	return ctx.Eval(e, env)
}

// String creates a string representation of the parsed expression, with
// alternating round and square brackets grouping each term.
func (e *Expr) String() string {
	var b strings.Builder
	e.n.fmt(&b, false)
	return b.String()
}

type operator struct {
	// prec is the precedence value. Higher is more binding.
	prec int8
	// right indicates right-associativity.
	right bool
	// op is the node kind to use when this operator is selected.
	op nodeKind
}

func (p operator) moreBinding(than operator) bool {
	if p.prec != than.prec {
		return p.prec > than.prec
	}
	return p.right
}

// binop gets a binary operator for a token string. If there is no such binary
// operator, then the result has an op of nodeNone. Every operator is
// left-associative, including ^, so 2^3^2 is (2^3)^2.
func binop(text string) operator {
	switch text {
	case "+":
		return operator{1, false, nodeAdd}
	case "-":
		return operator{1, false, nodeSub}
	case "*":
		return operator{5, false, nodeMul}
	case "/":
		return operator{5, false, nodeDiv}
	case "^":
		return operator{15, false, nodePow}
	default:
		return operator{}
	}
}

// exprprec is the precedence required to parse an entire subexpression.
var exprprec = operator{-128, true, nodeNone}
