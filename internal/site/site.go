// Package site patches the copy buttons of every page in a built site.
package site

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/evgfitil/cmdcopy/internal/copyfilter"
	"github.com/evgfitil/cmdcopy/internal/guard"
	"github.com/evgfitil/cmdcopy/internal/page"
)

// Summary counts what a Run did. Changed lists the pages that were written,
// or in a dry run the pages that would be.
type Summary struct {
	Files          int
	Written        int
	FailedFiles    int
	Triggers       int
	Patched        int
	Unresolved     int
	SecretWarnings int
	Changed        []string
}

// Options configures a Patcher.
type Options struct {
	Page    page.Options
	Include []string
	DryRun  bool
}

// Patcher rewrites HTML files so each copy button carries its filtered text.
type Patcher struct {
	opts      Options
	filter    *copyfilter.Filter
	sanitizer *guard.Sanitizer
	logger    *slog.Logger
}

// NewPatcher creates a Patcher. A nil logger uses slog.Default().
func NewPatcher(opts Options, filter *copyfilter.Filter, logger *slog.Logger) *Patcher {
	if len(opts.Include) == 0 {
		opts.Include = []string{"*.html"}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Patcher{opts: opts, filter: filter, sanitizer: guard.New(), logger: logger}
}

// Run patches every path. Directories are walked recursively and only files
// matching the include patterns are touched; files named directly are always
// patched. A page that cannot be processed is logged and counted, and the run
// goes on with the next one.
func (p *Patcher) Run(ctx context.Context, paths ...string) (Summary, error) {
	var sum Summary
	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return sum, fmt.Errorf("reading %s: %w", root, err)
		}

		if !info.IsDir() {
			if err := ctx.Err(); err != nil {
				return sum, err
			}
			p.patchFile(root, &sum)
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if d.IsDir() || !p.included(d.Name()) {
				return nil
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			p.patchFile(path, &sum)
			return nil
		})
		if err != nil {
			return sum, fmt.Errorf("walking %s: %w", root, err)
		}
	}
	return sum, nil
}

func (p *Patcher) included(name string) bool {
	for _, pattern := range p.opts.Include {
		if ok, _ := filepath.Match(pattern, name); ok {
			return true
		}
	}
	return false
}

func (p *Patcher) patchFile(path string, sum *Summary) {
	sum.Files++
	written, err := p.patch(path, sum)
	if err != nil {
		sum.FailedFiles++
		p.logger.Error("failed to patch page", "path", path, "error", err)
		return
	}
	if written {
		sum.Written++
	}
}

func (p *Patcher) patch(path string, sum *Summary) (bool, error) {
	original, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("reading page: %w", err)
	}

	doc, err := page.Load(bytes.NewReader(original), p.opts.Page)
	if err != nil {
		return false, err
	}

	buttons := doc.Triggers()
	if len(buttons) == 0 {
		p.logger.Debug("no copy buttons", "path", path)
		return false, nil
	}

	report := doc.Patch(p.filter)
	sum.Triggers += report.Triggers
	sum.Patched += report.Patched
	sum.Unresolved += len(report.Failures)
	unresolved := make(map[string]struct{}, len(report.Failures))
	for _, f := range report.Failures {
		unresolved[f.Ref] = struct{}{}
		p.logger.Warn("copy button target not resolved", "path", path, "ref", f.Ref, "error", f.Err)
	}

	for _, b := range buttons {
		if _, skip := unresolved[b.Target()]; skip {
			continue
		}
		text, ok := b.ClipboardText()
		if !ok {
			continue
		}
		if res := p.sanitizer.Check(text); res.HasSecrets {
			sum.SecretWarnings++
			p.logger.Warn("copied text may contain secrets", "path", path, "ref", b.Target(), "rules", res.RuleIDs())
		}
	}

	var buf bytes.Buffer
	if err := doc.Render(&buf); err != nil {
		return false, err
	}

	if bytes.Equal(buf.Bytes(), original) {
		p.logger.Debug("page unchanged", "path", path)
		return false, nil
	}
	if p.opts.DryRun {
		sum.Changed = append(sum.Changed, path)
		p.logger.Info("would patch page", "path", path, "patched", report.Patched)
		return false, nil
	}

	if err := writeAtomic(path, buf.Bytes()); err != nil {
		return false, err
	}
	sum.Changed = append(sum.Changed, path)
	p.logger.Info("patched page", "path", path, "patched", report.Patched)
	return true, nil
}

// writeAtomic replaces path with data through a temp file, keeping the file mode.
func writeAtomic(path string, data []byte) error {
	mode := fs.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, mode); err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("renaming temp file: %w", err)
	}

	return nil
}
