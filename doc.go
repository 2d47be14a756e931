// Package intexpr implements an arbitrary-precision integer calculator with
// named variables.
//
// Expressions are built from integer literals, letters-only variable names,
// the binary operators + - * / ^, parentheses, and unary sign chains. All
// five operators are left-associative, with ^ binding tightest, then * and /,
// then + and -. A run of unary signs folds into the operand it precedes, so
// "--5" is 5 and "6^-2" raises six to a negative exponent (and fails).
// There is no implicit multiplication: "3 4" and "2(3)" are errors.
//
// Variables live in an Env owned by the caller and passed into every
// evaluation; the evaluator never stores one and never mutates one except
// through Assign, which evaluates the right side of "name = expression" and
// commits the result only on success.
package intexpr
