package exercise

import (
	"fmt"
	"io"

	"github.com/psantana5/es123/internal/console"
)

// ValuePrompt is the prompt of the operators program
const ValuePrompt = "Please enter a floating point value: "

// Operation is one derived expression and its value
type Operation struct {
	Expr  string  `json:"expr" yaml:"expr"`
	Value float64 `json:"value" yaml:"value"`
}

// String renders "<expr> == <value>" with stream float formatting
func (o Operation) String() string {
	return o.Expr + " == " + console.FormatFloat(o.Value)
}

// Operators applies the course's six operators to v, in print order
func Operators(v float64) []Operation {
	return []Operation{
		{Expr: "v", Value: v},
		{Expr: "v+1", Value: v + 1},
		{Expr: "3*v", Value: 3 * v},
		{Expr: "v+v", Value: v + v},
		{Expr: "v*v", Value: v * v},
		{Expr: "v/2", Value: v / 2},
	}
}

// ReadValue prompts for the floating-point input
func ReadValue(s *console.Scanner) (float64, error) {
	return s.ReadFloat(ValuePrompt, "floating point value")
}

// WriteOperations writes one line per operation
func WriteOperations(w io.Writer, ops []Operation) error {
	for _, op := range ops {
		if _, err := fmt.Fprintln(w, op.String()); err != nil {
			return err
		}
	}
	return nil
}
