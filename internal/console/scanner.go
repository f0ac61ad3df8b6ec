package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
)

// ErrNoInput is returned when the input ends before a token is read
var ErrNoInput = errors.New("no input")

// ParseError reports a token that could not be read as the wanted type
type ParseError struct {
	Field string
	Input string
	Err   error
}

// Error implements error interface
func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Input, e.Err)
}

// Unwrap implements error unwrapping
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Scanner reads whitespace-delimited tokens and writes prompts
type Scanner struct {
	sc  *bufio.Scanner
	out io.Writer
}

// NewScanner creates a scanner reading tokens from in and prompting on out
func NewScanner(in io.Reader, out io.Writer) *Scanner {
	sc := bufio.NewScanner(in)
	sc.Split(bufio.ScanWords)
	return &Scanner{sc: sc, out: out}
}

// Prompt writes msg without a trailing newline
func (s *Scanner) Prompt(msg string) error {
	if msg == "" {
		return nil
	}
	_, err := io.WriteString(s.out, msg)
	return err
}

// Token returns the next whitespace-delimited token
func (s *Scanner) Token() (string, error) {
	if s.sc.Scan() {
		return s.sc.Text(), nil
	}
	if err := s.sc.Err(); err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return "", ErrNoInput
}

// ReadString prompts and reads one token
func (s *Scanner) ReadString(prompt, field string) (string, error) {
	if err := s.Prompt(prompt); err != nil {
		return "", err
	}
	tok, err := s.Token()
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", field, err)
	}
	return tok, nil
}

// ReadInt prompts and reads one base-10 integer
func (s *Scanner) ReadInt(prompt, field string) (int, error) {
	tok, err := s.ReadString(prompt, field)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(tok)
	if err != nil {
		return 0, &ParseError{Field: field, Input: tok, Err: unwrapNum(err)}
	}
	return v, nil
}

// decimalFloat is the plain decimal notation a console user types.
// inf, nan and hex floats are left out.
var decimalFloat = regexp.MustCompile(`^[+-]?([0-9]+\.?[0-9]*|\.[0-9]+)([eE][+-]?[0-9]+)?$`)

// ReadFloat prompts and reads one floating-point value in decimal notation
func (s *Scanner) ReadFloat(prompt, field string) (float64, error) {
	tok, err := s.ReadString(prompt, field)
	if err != nil {
		return 0, err
	}
	if !decimalFloat.MatchString(tok) {
		return 0, &ParseError{Field: field, Input: tok, Err: strconv.ErrSyntax}
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, &ParseError{Field: field, Input: tok, Err: unwrapNum(err)}
	}
	return v, nil
}

// unwrapNum drops strconv's echo of the input, ParseError already carries it
func unwrapNum(err error) error {
	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		return numErr.Err
	}
	return err
}
