package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"park-system/internal/models"
)

// Prompter reads line-oriented input and re-prompts until it gets a
// usable answer. Once the input stream is exhausted every prompt returns
// its zero value immediately, so menu loops unwind instead of spinning.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
	eof bool
}

// NewPrompter creates a prompter over the given streams
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewScanner(in), out: out}
}

// EOF reports whether the input stream has run out.
func (p *Prompter) EOF() bool {
	return p.eof
}

// Printf writes formatted output to the terminal.
func (p *Prompter) Printf(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...)
}

// Println writes a line to the terminal.
func (p *Prompter) Println(args ...any) {
	fmt.Fprintln(p.out, args...)
}

// Line prompts once and returns the trimmed answer. Returns "" on EOF.
func (p *Prompter) Line(label string) string {
	if p.eof {
		return ""
	}
	fmt.Fprint(p.out, label)
	if !p.in.Scan() {
		p.eof = true
		return ""
	}
	return strings.TrimSpace(p.in.Text())
}

// NonEmpty re-prompts until the answer is non-blank, or "" on EOF.
func (p *Prompter) NonEmpty(label string) string {
	for {
		value := p.Line(label)
		if p.eof || value != "" {
			return value
		}
		p.Println("Value cannot be empty.")
	}
}

// Int re-prompts until the answer parses as an integer, or 0 on EOF.
func (p *Prompter) Int(label string) int {
	for {
		value := p.Line(label)
		if p.eof {
			return 0
		}
		n, err := strconv.Atoi(value)
		if err != nil {
			p.Println("Invalid input. Enter a number.")
			continue
		}
		return n
	}
}

// PositiveInt re-prompts until the answer is an integer >= 1, or 0 on EOF.
func (p *Prompter) PositiveInt(label string) int {
	for {
		n := p.Int(label)
		if p.eof {
			return 0
		}
		if n > 0 {
			return n
		}
		p.Println("Please enter a positive integer.")
	}
}

// Money re-prompts until the answer parses as a price like 12.50 and
// returns it in cents, or 0 on EOF.
func (p *Prompter) Money(label string) int {
	for {
		value := p.Line(label)
		if p.eof {
			return 0
		}
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			p.Println("Enter a valid numeric price (e.g. 12.50).")
			continue
		}
		if f < 0 {
			p.Println("Price must be non-negative.")
			continue
		}
		return int(f*100 + 0.5)
	}
}

// Date re-prompts until the answer is a valid YYYY-MM-DD date, or ""
// on EOF.
func (p *Prompter) Date(label string) string {
	for {
		value := p.Line(label)
		if p.eof {
			return ""
		}
		if err := models.ValidateVisitDate(value); err != nil {
			p.Println("Invalid date format. Use YYYY-MM-DD.")
			continue
		}
		return value
	}
}

// YesNo re-prompts until the answer is y or n, or false on EOF.
func (p *Prompter) YesNo(label string) bool {
	for {
		switch strings.ToLower(p.Line(label)) {
		case "y", "yes":
			return true
		case "n", "no":
			return false
		}
		if p.eof {
			return false
		}
		p.Println("Please enter 'y' or 'n'.")
	}
}

// Select prompts for a 1-based pick from a list of n items; 0 or a blank
// answer goes back. Returns the zero-based index and false when the user
// backs out.
func (p *Prompter) Select(label string, n int) (int, bool) {
	for {
		value := p.Line(label)
		if value == "" || value == "0" {
			return 0, false
		}
		idx, err := strconv.Atoi(value)
		if err != nil || idx < 1 || idx > n {
			p.Println("Invalid selection.")
			continue
		}
		return idx - 1, true
	}
}

// FormatMoney renders cents as a dollar amount.
func FormatMoney(cents int) string {
	return fmt.Sprintf("$%.2f", float64(cents)/100.0)
}
