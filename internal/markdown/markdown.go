// Package markdown extracts commands from console-style fenced code blocks
// in markdown sources, before the site is rendered.
package markdown

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/evgfitil/cmdcopy/internal/copyfilter"
)

// DefaultPromptPattern matches "$ ", "# " and "% " prompts, optionally
// preceded by a virtualenv marker such as "(venv) ".
const DefaultPromptPattern = `^(?:\(\S+\)\s*)?[$#%] `

// secondaryPrompt is the PS2 marker shells print before continuation lines.
const secondaryPrompt = "> "

var (
	DefaultLanguages = []string{"console", "shell-session", "sh-session"}

	defaultPrompt = regexp.MustCompile(DefaultPromptPattern)
	lineFilter    = copyfilter.New(copyfilter.DefaultExcluded())
)

// Options selects the fenced blocks to read and how prompts are recognized.
// Zero values fall back to the defaults.
type Options struct {
	Languages []string
	Prompt    *regexp.Regexp
}

func (o Options) withDefaults() Options {
	if len(o.Languages) == 0 {
		o.Languages = DefaultLanguages
	}
	if o.Prompt == nil {
		o.Prompt = defaultPrompt
	}
	return o
}

// Extract returns the filtered text of every matching fenced code block.
// Each line matching the prompt is split into a prompt segment and the
// command. A command ending in a backslash continues on the next line, which
// is kept with any leading "> " stripped. Every other line is command output.
func Extract(source []byte, opts Options) ([]copyfilter.Block, error) {
	opts = opts.withDefaults()
	langs := make(map[string]struct{}, len(opts.Languages))
	for _, l := range opts.Languages {
		langs[strings.ToLower(l)] = struct{}{}
	}

	var blocks []copyfilter.Block
	root := goldmark.DefaultParser().Parse(text.NewReader(source))

	walker := func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		fenced, ok := node.(*ast.FencedCodeBlock)
		if !ok || fenced.Info == nil {
			return ast.WalkContinue, nil
		}

		lang := strings.ToLower(string(fenced.Language(source)))
		if _, ok := langs[lang]; !ok {
			return ast.WalkSkipChildren, nil
		}

		block := classify(fenced, source, opts.Prompt)
		blocks = append(blocks, copyfilter.Block{
			Index:  len(blocks),
			Source: fmt.Sprintf("line %d", lineNumber(source, fenced.Info.Segment.Start)),
			Text:   lineFilter.Text(block),
		})
		return ast.WalkSkipChildren, nil
	}

	if err := ast.Walk(root, walker); err != nil {
		return nil, err
	}

	return blocks, nil
}

func classify(fenced *ast.FencedCodeBlock, source []byte, prompt *regexp.Regexp) copyfilter.CodeBlock {
	var block copyfilter.CodeBlock
	continued := false
	lines := fenced.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		line := string(seg.Value(source))

		if continued {
			group := copyfilter.LineGroup{{Text: line}}
			if strings.HasPrefix(line, secondaryPrompt) {
				group = copyfilter.LineGroup{
					{Text: secondaryPrompt, Element: true, Classes: []string{copyfilter.ClassPrompt}},
					{Text: line[len(secondaryPrompt):]},
				}
			}
			block.Lines = append(block.Lines, group)
			continued = endsWithContinuation(line)
			continue
		}

		loc := prompt.FindStringIndex(line)
		if loc == nil || loc[0] != 0 {
			block.Lines = append(block.Lines, copyfilter.LineGroup{
				{Text: line, Element: true, Classes: []string{copyfilter.ClassOutput}},
			})
			continue
		}

		block.Lines = append(block.Lines, copyfilter.LineGroup{
			{Text: line[:loc[1]], Element: true, Classes: []string{copyfilter.ClassPrompt}},
			{Text: line[loc[1]:]},
		})
		continued = endsWithContinuation(line)
	}
	return block
}

// endsWithContinuation reports whether a command line carries on to the next one.
func endsWithContinuation(line string) bool {
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return strings.HasSuffix(line, `\`)
}

func lineNumber(source []byte, offset int) int {
	if offset > len(source) {
		offset = len(source)
	}
	return bytes.Count(source[:offset], []byte("\n")) + 1
}
