package page

import (
	"golang.org/x/net/html"

	"github.com/evgfitil/cmdcopy/internal/copyfilter"
)

// Button is a copy control in a parsed page.
type Button struct {
	node       *html.Node
	targetAttr string
	textAttr   string
}

// Target returns the selector of the code block the button copies.
func (b *Button) Target() string {
	return attr(b.node, b.targetAttr)
}

// SetClipboardText stores the text the clipboard mechanism will copy.
func (b *Button) SetClipboardText(text string) {
	setAttr(b.node, b.textAttr, text)
}

// ClipboardText returns the stored text and whether it is present.
func (b *Button) ClipboardText() (string, bool) {
	for _, a := range b.node.Attr {
		if a.Key == b.textAttr {
			return a.Val, true
		}
	}
	return "", false
}

// Blocks returns the filtered text of every copy control whose target resolves.
func (d *Document) Blocks(f *copyfilter.Filter) []copyfilter.Block {
	var blocks []copyfilter.Block
	for _, b := range d.Triggers() {
		text, err := f.ExtractCommandText(d, b.Target())
		if err != nil {
			continue
		}
		blocks = append(blocks, copyfilter.Block{Index: len(blocks), Source: b.Target(), Text: text})
	}
	return blocks
}

var _ copyfilter.Trigger = (*Button)(nil)
var _ copyfilter.Resolver = (*Document)(nil)
