package fuzzy

import (
	"fmt"
	"io"
	"os"
	"strings"

	fzf "github.com/junegunn/fzf/src"
)

// Runner abstracts fzf execution so tests can substitute their own.
type Runner interface {
	Run(opts *fzf.Options) (int, error)
}

type defaultRunner struct{}

func (defaultRunner) Run(opts *fzf.Options) (int, error) {
	return fzf.Run(opts)
}

// runner is swapped out in tests.
var runner Runner = defaultRunner{}

// pickWithFzf runs fzf in multi-select mode over the picker's items,
// feeding them through a temporary file on stdin and capturing the
// selected lines from stdout.
func (p *Picker) pickWithFzf() ([]string, error) {
	tmp, err := os.CreateTemp("", "reporules-pick-*.txt")
	if err != nil {
		return nil, fmt.Errorf("failed to create temporary file: %w", err)
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()

	for _, item := range p.items {
		if _, err := fmt.Fprintln(tmp, item); err != nil {
			return nil, fmt.Errorf("failed to write item: %w", err)
		}
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("failed to close temporary file: %w", err)
	}

	args := []string{
		"--prompt=" + p.prompt + " ",
		"--height=12",
		"--layout=default",
		"--multi",
		"--cycle",
		"--no-mouse",
		"--no-reverse",
		"--border=none",
		"--clear",
	}
	opts, err := fzf.ParseOptions(true, args)
	if err != nil {
		return nil, fmt.Errorf("failed to parse fzf options: %w", err)
	}

	in, err := os.Open(tmp.Name())
	if err != nil {
		return nil, fmt.Errorf("failed to reopen temporary file: %w", err)
	}
	defer func() {
		_ = in.Close()
	}()

	r, w, err := os.Pipe()
	if err != nil {
		return nil, fmt.Errorf("failed to create pipe: %w", err)
	}
	defer func() {
		_ = r.Close()
	}()

	originalStdin, originalStdout := os.Stdin, os.Stdout
	os.Stdin, os.Stdout = in, w
	exitCode, runErr := runner.Run(opts)
	_ = w.Close()
	os.Stdin, os.Stdout = originalStdin, originalStdout

	if runErr != nil {
		return nil, runErr
	}
	if exitCode != fzf.ExitOk {
		return nil, fmt.Errorf("selection cancelled")
	}

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read fzf result: %w", err)
	}

	var picked []string
	for _, line := range strings.Split(strings.TrimSpace(string(out)), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			picked = append(picked, line)
		}
	}
	if len(picked) == 0 {
		return nil, fmt.Errorf("no selection made")
	}
	return picked, nil
}
