// Package presenter renders a command for the terminal.
package presenter

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"

	"github.com/starford/vimcmd/internal/models"
)

const headerPrefix = "VIM COMMAND OF THE DAY"

// Presenter formats commands as a titled, underlined block.
type Presenter struct {
	header lipgloss.Style
	styled bool
}

// New returns a presenter. When styled is true the header is rendered bold.
func New(styled bool) *Presenter {
	return &Presenter{
		header: lipgloss.NewStyle().Bold(true),
		styled: styled,
	}
}

// Header returns the unstyled header line for cmd.
func Header(cmd models.Command) string {
	return fmt.Sprintf("%s: %s (%s)", headerPrefix, cmd.Keys, cmd.Short)
}

// Render formats cmd as
//
//	VIM COMMAND OF THE DAY: <keys> (<short>)
//	=========================================
//	<long description wrapped to the header width, or an empty line>
//	-----------------------------------------
func (p *Presenter) Render(cmd models.Command) string {
	header := Header(cmd)
	width := lipgloss.Width(header)

	var b strings.Builder
	if p.styled {
		b.WriteString(p.header.Render(header))
	} else {
		b.WriteString(header)
	}
	b.WriteByte('\n')
	b.WriteString(strings.Repeat("=", width))
	b.WriteByte('\n')
	b.WriteString(Fill(cmd.Long, width))
	b.WriteByte('\n')
	b.WriteString(strings.Repeat("-", width))
	b.WriteByte('\n')
	return b.String()
}

// Fprint writes the rendered command to w.
func (p *Presenter) Fprint(w io.Writer, cmd models.Command) error {
	_, err := io.WriteString(w, p.Render(cmd))
	return err
}

// Fill turns every whitespace character in text into a space, trims both
// ends and wraps the result to width columns, breaking words longer than a
// line. Runs of spaces inside a line are kept.
func Fill(text string, width int) string {
	text = strings.TrimSpace(strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return ' '
		}
		return r
	}, text))
	if text == "" || width <= 0 {
		return text
	}
	return wrap.String(wordwrap.String(text, width), width)
}
