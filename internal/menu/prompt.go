package menu

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ariefcatur/stockmate.git/internal/inventory"
)

// Prompter reads operator input line by line. Malformed or negative numeric
// input re-prompts; read failure (EOF, closed terminal) propagates so the
// session can end.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewScanner(in), out: out}
}

func (p *Prompter) Line(label string) (string, error) {
	fmt.Fprint(p.out, label)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(p.in.Text()), nil
}

// Int re-prompts until it gets a non-negative integer.
func (p *Prompter) Int(label string) (int64, error) {
	for {
		s, err := p.Line(label)
		if err != nil {
			return 0, err
		}
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			fmt.Fprintln(p.out, "Invalid input. Please enter a valid integer.")
			continue
		}
		if v < 0 {
			fmt.Fprintln(p.out, "Please enter a non-negative integer.")
			continue
		}
		return v, nil
	}
}

// Price re-prompts until it gets a non-negative decimal, returned as cents.
func (p *Prompter) Price(label string) (int64, error) {
	for {
		s, err := p.Line(label)
		if err != nil {
			return 0, err
		}
		cents, err := inventory.ParsePrice(s)
		if err != nil {
			fmt.Fprintln(p.out, "Invalid input. Please enter a non-negative number.")
			continue
		}
		return cents, nil
	}
}

func (p *Prompter) YesNo(label string) (bool, error) {
	s, err := p.Line(label)
	if err != nil {
		return false, err
	}
	return strings.EqualFold(s, "y") || strings.EqualFold(s, "yes"), nil
}
