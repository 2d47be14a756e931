package intexpr_test

import (
	"strings"
	"testing"

	"github.com/calclab/intexpr"
)

func FuzzParse(f *testing.F) {
	f.Add("x")
	f.Add("-x^2")
	f.Add("(1 + 2) * 3")
	f.Add("3 4")
	f.Fuzz(func(t *testing.T, s string) {
		intexpr.Parse(strings.NewReader(s))
	})
}
