// Package page adapts rendered HTML documents to the copyfilter model.
package page

import (
	"fmt"
	"io"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"github.com/evgfitil/cmdcopy/internal/copyfilter"
)

const (
	DefaultTriggerSelector = "button.md-clipboard"
	DefaultTargetAttr      = "data-clipboard-target"
	DefaultTextAttr        = "data-clipboard-text"
)

// Options configures how copy controls are found and patched.
type Options struct {
	TriggerSelector string
	TargetAttr      string
	TextAttr        string
}

func (o Options) withDefaults() Options {
	if o.TriggerSelector == "" {
		o.TriggerSelector = DefaultTriggerSelector
	}
	if o.TargetAttr == "" {
		o.TargetAttr = DefaultTargetAttr
	}
	if o.TextAttr == "" {
		o.TextAttr = DefaultTextAttr
	}
	return o
}

// Document is a parsed HTML page.
type Document struct {
	root    *html.Node
	opts    Options
	trigger cascadia.Selector
}

// Load parses an HTML page.
func Load(r io.Reader, opts Options) (*Document, error) {
	opts = opts.withDefaults()

	sel, err := cascadia.Compile(opts.TriggerSelector)
	if err != nil {
		return nil, fmt.Errorf("invalid trigger selector %q: %w", opts.TriggerSelector, err)
	}

	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing html: %w", err)
	}

	return &Document{root: root, opts: opts, trigger: sel}, nil
}

// Triggers returns the copy controls in document order.
func (d *Document) Triggers() []*Button {
	nodes := d.trigger.MatchAll(d.root)
	buttons := make([]*Button, 0, len(nodes))
	for _, n := range nodes {
		buttons = append(buttons, &Button{node: n, targetAttr: d.opts.TargetAttr, textAttr: d.opts.TextAttr})
	}
	return buttons
}

// Resolve returns the first element matching the selector ref as a code block.
func (d *Document) Resolve(ref string) (copyfilter.CodeBlock, error) {
	if strings.TrimSpace(ref) == "" {
		return copyfilter.CodeBlock{}, &copyfilter.ResolutionError{Ref: ref, Err: copyfilter.ErrNotFound}
	}

	sel, err := cascadia.Compile(ref)
	if err != nil {
		return copyfilter.CodeBlock{}, &copyfilter.ResolutionError{Ref: ref, Err: err}
	}

	n := sel.MatchFirst(d.root)
	if n == nil {
		return copyfilter.CodeBlock{}, &copyfilter.ResolutionError{Ref: ref, Err: copyfilter.ErrNotFound}
	}
	return codeBlock(n), nil
}

// Patch sets the clipboard text on every copy control.
func (d *Document) Patch(f *copyfilter.Filter) copyfilter.Report {
	buttons := d.Triggers()
	triggers := make([]copyfilter.Trigger, len(buttons))
	for i, b := range buttons {
		triggers[i] = b
	}
	return f.Initialize(d, triggers)
}

// Render writes the document as HTML.
func (d *Document) Render(w io.Writer) error {
	if err := html.Render(w, d.root); err != nil {
		return fmt.Errorf("rendering html: %w", err)
	}
	return nil
}

// codeBlock converts a container element. Element children are lines;
// within a line, text nodes and elements are segments.
func codeBlock(container *html.Node) copyfilter.CodeBlock {
	var block copyfilter.CodeBlock
	for line := container.FirstChild; line != nil; line = line.NextSibling {
		if line.Type != html.ElementNode {
			continue
		}
		var group copyfilter.LineGroup
		for n := line.FirstChild; n != nil; n = n.NextSibling {
			switch n.Type {
			case html.TextNode:
				group = append(group, copyfilter.Segment{Text: n.Data})
			case html.ElementNode:
				group = append(group, copyfilter.Segment{
					Text:    textContent(n),
					Element: true,
					Classes: strings.Fields(attr(n, "class")),
				})
			}
		}
		block.Lines = append(block.Lines, group)
	}
	return block
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			b.WriteString(node.Data)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func setAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}
