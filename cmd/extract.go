package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/evgfitil/cmdcopy/internal/clipboard"
	"github.com/evgfitil/cmdcopy/internal/config"
	"github.com/evgfitil/cmdcopy/internal/copyfilter"
	"github.com/evgfitil/cmdcopy/internal/guard"
	"github.com/evgfitil/cmdcopy/internal/markdown"
	"github.com/evgfitil/cmdcopy/internal/page"
	"github.com/evgfitil/cmdcopy/internal/picker"
	"github.com/evgfitil/cmdcopy/internal/report"
	"github.com/evgfitil/cmdcopy/internal/stdin"
)

const (
	formatAuto     = "auto"
	formatHTML     = "html"
	formatMarkdown = "markdown"
)

var (
	copyFlag   bool
	pickFlag   bool
	indexFlag  int
	forceCopy  bool
	formatFlag string
)

// ErrNoBlocks indicates the input has no code blocks with commands.
var ErrNoBlocks = errors.New("no code blocks found")

// ErrNoInput indicates neither a file nor piped input was given.
var ErrNoInput = errors.New("no input: pass a file or pipe a page")

var extractCmd = &cobra.Command{
	Use:   "extract [file]",
	Short: "Print or copy the commands of a page or markdown file",
	Long: `extract lists the command text of every code block in an HTML page
(one block per copy button) or every console block in a markdown file.
Without a file argument the input is read from stdin.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().BoolVarP(&copyFlag, "copy", "c", false, "copy the selected block to the clipboard")
	extractCmd.Flags().BoolVarP(&pickFlag, "pick", "p", false, "choose a block with a fuzzy picker")
	extractCmd.Flags().IntVarP(&indexFlag, "index", "n", -1, "select the block at this zero-based index")
	extractCmd.Flags().BoolVar(&forceCopy, "force", false, "copy even if secrets are detected")
	extractCmd.Flags().StringVar(&formatFlag, "format", formatAuto, "input format (auto|html|markdown)")
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}

	name, data, err := readInput(args)
	if err != nil {
		return err
	}

	format, err := detectFormat(formatFlag, name, data)
	if err != nil {
		return err
	}
	logger.Debug("extracting blocks", "input", name, "format", format)

	blocks, err := extractBlocks(data, format, cfg)
	if err != nil {
		return err
	}
	if len(blocks) == 0 {
		return ErrNoBlocks
	}

	interactive := isatty.IsTerminal(os.Stdout.Fd())
	if indexFlag < 0 && !pickFlag && !copyFlag {
		return writeBlocks(cmd.OutOrStdout(), blocks)
	}

	block, err := selectBlock(blocks, indexFlag, pickFlag || (copyFlag && interactive))
	if err != nil {
		return err
	}

	if !copyFlag {
		return writeBlocks(cmd.OutOrStdout(), []copyfilter.Block{block})
	}
	return copyBlock(cmd.ErrOrStderr(), block, forceCopy)
}

func readInput(args []string) (string, []byte, error) {
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", nil, fmt.Errorf("failed to read input: %w", err)
		}
		return args[0], data, nil
	}

	data, err := stdin.New(os.Stdin).Read()
	if err != nil {
		return "", nil, err
	}
	if data == nil {
		return "", nil, ErrNoInput
	}
	return "stdin", data, nil
}

// detectFormat resolves "auto" from the file extension, or for unnamed
// input from whether it starts with markup.
func detectFormat(format, name string, data []byte) (string, error) {
	switch format {
	case formatHTML, formatMarkdown:
		return format, nil
	case formatAuto, "":
	default:
		return "", fmt.Errorf("unknown format %q (want auto, html or markdown)", format)
	}

	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".markdown":
		return formatMarkdown, nil
	case ".html", ".htm":
		return formatHTML, nil
	}

	if bytes.HasPrefix(bytes.TrimSpace(data), []byte("<")) {
		return formatHTML, nil
	}
	return formatMarkdown, nil
}

func extractBlocks(data []byte, format string, cfg *config.Config) ([]copyfilter.Block, error) {
	if format == formatMarkdown {
		return markdown.Extract(data, cfg.Markdown.MarkdownOptions())
	}

	doc, err := page.Load(bytes.NewReader(data), cfg.Page.PageOptions())
	if err != nil {
		return nil, err
	}
	return doc.Blocks(cfg.Filter.NewFilter()), nil
}

func selectBlock(blocks []copyfilter.Block, index int, pick bool) (copyfilter.Block, error) {
	if index >= 0 {
		if index >= len(blocks) {
			return copyfilter.Block{}, fmt.Errorf("block index %d out of range (found %d blocks)", index, len(blocks))
		}
		return blocks[index], nil
	}

	if len(blocks) == 1 {
		return blocks[0], nil
	}
	if !pick {
		return copyfilter.Block{}, fmt.Errorf("found %d blocks; choose one with --index or --pick", len(blocks))
	}

	idx, err := picker.Pick(len(blocks), func(i int) string {
		return firstLine(blocks[i].Text)
	}, func(i int) string {
		return blocks[i].Source + "\n\n" + blocks[i].Text
	})
	if err != nil {
		if errors.Is(err, picker.ErrAborted) {
			return copyfilter.Block{}, ErrCancelled
		}
		return copyfilter.Block{}, fmt.Errorf("failed to pick block: %w", err)
	}
	return blocks[idx], nil
}

// writeBlocks prints block texts separated by blank lines.
func writeBlocks(w io.Writer, blocks []copyfilter.Block) error {
	for i, b := range blocks {
		text := b.Text
		if !strings.HasSuffix(text, "\n") {
			text += "\n"
		}
		if i > 0 {
			text = "\n" + text
		}
		if _, err := io.WriteString(w, text); err != nil {
			return err
		}
	}
	return nil
}

func copyBlock(status io.Writer, block copyfilter.Block, force bool) error {
	text := guard.SanitizeOutput(block.Text)
	if err := guard.CheckCommand(text, force); err != nil {
		return err
	}
	if err := clipboard.Copy(text); err != nil {
		return err
	}
	report.New(status).Copied(block.Source)
	return nil
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " …"
	}
	return s
}
