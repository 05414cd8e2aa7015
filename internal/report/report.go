// Package report prints run summaries for humans.
package report

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/evgfitil/cmdcopy/internal/site"
)

// Printer writes styled lines. Colors are only used when out is a terminal.
type Printer struct {
	out      io.Writer
	renderer *lipgloss.Renderer
}

// New creates a Printer for out.
func New(out io.Writer) *Printer {
	r := lipgloss.NewRenderer(out)
	if f, ok := out.(*os.File); !ok || !(isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		r.SetColorProfile(termenv.Ascii)
	}
	return &Printer{out: out, renderer: r}
}

func (p *Printer) okStyle() lipgloss.Style {
	return p.renderer.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
}

func (p *Printer) warnStyle() lipgloss.Style {
	return p.renderer.NewStyle().Foreground(lipgloss.Color("214"))
}

func (p *Printer) errorStyle() lipgloss.Style {
	return p.renderer.NewStyle().Foreground(lipgloss.Color("196"))
}

func (p *Printer) dimStyle() lipgloss.Style {
	return p.renderer.NewStyle().Foreground(lipgloss.Color("241"))
}

// Summary prints the outcome of a patch run. A dry run also lists the pages
// that would be rewritten.
func (p *Printer) Summary(sum site.Summary, dryRun bool) {
	verb := "patched"
	if dryRun {
		verb = "would patch"
		for _, path := range sum.Changed {
			fmt.Fprintf(p.out, "%s %s\n", p.dimStyle().Render("would write"), path)
		}
	}

	fmt.Fprintf(p.out, "%s %d of %d copy buttons in %d pages %s\n",
		p.okStyle().Render(verb),
		sum.Patched, sum.Triggers, sum.Files,
		p.dimStyle().Render(fmt.Sprintf("(%d files written)", sum.Written)))

	if sum.Unresolved > 0 {
		fmt.Fprintln(p.out, p.warnStyle().Render(fmt.Sprintf("%d copy buttons point at missing code blocks", sum.Unresolved)))
	}
	if sum.SecretWarnings > 0 {
		fmt.Fprintln(p.out, p.warnStyle().Render(fmt.Sprintf("%d copied commands may contain secrets", sum.SecretWarnings)))
	}
	if sum.FailedFiles > 0 {
		fmt.Fprintln(p.out, p.errorStyle().Render(fmt.Sprintf("%d pages could not be processed", sum.FailedFiles)))
	}
}

// Copied confirms a clipboard write.
func (p *Printer) Copied(source string) {
	fmt.Fprintf(p.out, "%s %s\n", p.okStyle().Render("copied"), p.dimStyle().Render(source))
}
