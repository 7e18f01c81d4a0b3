// Package fuzzy provides interactive selection of one or more items,
// backed by the fzf library with a plain numbered prompt as fallback
// for terminals that cannot run it.
package fuzzy

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// Picker selects a subset of items interactively.
type Picker struct {
	prompt string
	items  []string
}

// New creates a picker with the given prompt.
func New(prompt string) *Picker {
	return &Picker{prompt: prompt}
}

// SetItems sets the selectable items.
func (p *Picker) SetItems(items []string) {
	p.items = make([]string, len(items))
	copy(p.items, items)
}

// Pick runs the selection and returns the chosen items in the order
// the user picked them. It prefers fzf and falls back to a numbered
// prompt when the terminal does not support it.
func (p *Picker) Pick() ([]string, error) {
	if len(p.items) == 0 {
		return nil, fmt.Errorf("no items available")
	}
	if terminalSupported() {
		picked, err := p.pickWithFzf()
		if err == nil {
			return picked, nil
		}
		// fzf unavailable or failed to start; fall through.
	}
	return p.pickNumbered()
}

// pickNumbered is the dumb-terminal path: print the items and read a
// comma- or space-separated list of numbers.
func (p *Picker) pickNumbered() ([]string, error) {
	fmt.Println(p.prompt)
	fmt.Println(strings.Repeat("-", len(p.prompt)))
	for i, item := range p.items {
		fmt.Printf("%d. %s\n", i+1, item)
	}
	fmt.Printf("\nSelect items (e.g. 1,3) or 'all': ")

	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	return parseSelection(input, p.items)
}

// parseSelection interprets the numbered-prompt reply: 'all', or a
// comma- or space-separated list of 1-based indexes.
func parseSelection(input string, items []string) ([]string, error) {
	input = strings.TrimSpace(input)
	if input == "all" {
		out := make([]string, len(items))
		copy(out, items)
		return out, nil
	}

	var picked []string
	for _, field := range strings.FieldsFunc(input, func(r rune) bool { return r == ',' || r == ' ' }) {
		n, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("invalid selection: %s", field)
		}
		if n < 1 || n > len(items) {
			return nil, fmt.Errorf("selection out of range: %d", n)
		}
		picked = append(picked, items[n-1])
	}
	if len(picked) == 0 {
		return nil, fmt.Errorf("no selection made")
	}
	return picked, nil
}

func terminalSupported() bool {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return false
	}
	termType := os.Getenv("TERM")
	return termType != "" && termType != "dumb"
}
