package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Prompter reads interactive answers from a single input stream. When not
// interactive, every widget returns its default without touching the stream,
// so pre-seeded flags and piped stdin behave identically.
type Prompter struct {
	reader      *bufio.Reader
	out         io.Writer
	interactive bool
}

// New constructs a Prompter. Pass interactive=false to suppress all prompts.
func New(in io.Reader, out io.Writer, interactive bool) *Prompter {
	return &Prompter{reader: bufio.NewReader(in), out: out, interactive: interactive}
}

// Interactive reports whether prompts will actually be shown.
func (p *Prompter) Interactive() bool {
	return p.interactive
}

// Text asks a free-form question. Empty input (or EOF) yields the default.
func (p *Prompter) Text(label, defaultValue string) string {
	if !p.interactive {
		return defaultValue
	}
	if defaultValue != "" {
		fmt.Fprintf(p.out, "%s [%s]: ", label, defaultValue)
	} else {
		fmt.Fprintf(p.out, "%s: ", label)
	}
	answer := p.readLine()
	if answer == "" {
		return defaultValue
	}
	return answer
}

// YesNo asks a binary question. Empty input yields the default; an explicit
// yes or no wins; anything else resolves to the No branch.
func (p *Prompter) YesNo(label string, defaultYes bool) bool {
	if !p.interactive {
		return defaultYes
	}
	suffix := "y/N"
	if defaultYes {
		suffix = "Y/n"
	}
	fmt.Fprintf(p.out, "%s [%s]: ", label, suffix)
	switch strings.ToLower(p.readLine()) {
	case "":
		return defaultYes
	case "y", "yes":
		return true
	default:
		return false
	}
}

// Choice asks for a 1-based numeric selection among options, printing the
// numbered list first. Empty, non-numeric, or out-of-range input silently
// keeps the default. A verbatim option name is also accepted.
func (p *Prompter) Choice(label string, options []string, defaultValue string) string {
	if !p.interactive {
		return defaultValue
	}
	fmt.Fprintln(p.out, label)
	for i, opt := range options {
		fmt.Fprintf(p.out, "  %d) %s\n", i+1, opt)
	}
	fmt.Fprintf(p.out, "Choice (1-%d) [%s]: ", len(options), defaultValue)

	answer := p.readLine()
	if answer == "" {
		return defaultValue
	}
	if idx, err := strconv.Atoi(answer); err == nil {
		if idx >= 1 && idx <= len(options) {
			return options[idx-1]
		}
		return defaultValue
	}
	for _, opt := range options {
		if strings.EqualFold(answer, opt) {
			return opt
		}
	}
	return defaultValue
}

func (p *Prompter) readLine() string {
	line, err := p.reader.ReadString('\n')
	if err != nil && line == "" {
		return ""
	}
	return strings.TrimSpace(line)
}
