package exercise

import (
	"fmt"
	"io"

	"github.com/psantana5/es123/internal/console"
)

// Prompts used by the greeting program
const (
	NamePrompt = "Please enter your first name: "
	AgePrompt  = "Please enter your age: "
)

// Greeting is the input of the greeting program
type Greeting struct {
	FirstName string `json:"first_name" yaml:"first_name"`
	Age       int    `json:"age" yaml:"age"`
}

// Message returns "Hello, <name> (age <age>)"
func (g Greeting) Message() string {
	return fmt.Sprintf("Hello, %s (age %d)", g.FirstName, g.Age)
}

// ReadGreeting prompts for a first name and an age
func ReadGreeting(s *console.Scanner) (Greeting, error) {
	name, err := s.ReadString(NamePrompt, "first name")
	if err != nil {
		return Greeting{}, err
	}
	age, err := s.ReadInt(AgePrompt, "age")
	if err != nil {
		return Greeting{}, err
	}
	return Greeting{FirstName: name, Age: age}, nil
}

// WriteGreeting writes the greeting line
func WriteGreeting(w io.Writer, g Greeting) error {
	_, err := fmt.Fprintln(w, g.Message())
	return err
}
