package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/muesli/termenv"

	"github.com/growler/go-mdflat"
	"github.com/growler/go-mdflat/flat"
	"github.com/growler/go-mdflat/internal/preview"
)

// FoldCmd flattens a document.
type FoldCmd struct {
	File   string `arg:"" optional:"" help:"Markdown file (stdin if omitted or -)"`
	Format string `name:"format" short:"f" help:"Output format (text, json); defaults to output.format"`
	Tree   bool   `name:"tree" help:"Read a JSON block tree instead of Markdown"`
}

func (c *FoldCmd) Run(e *env) error {
	var (
		doc *mdflat.Doc
		err error
	)
	if c.Tree {
		doc, err = e.readTree(c.File)
	} else {
		doc, err = e.parse(c.File)
	}
	if err != nil {
		return err
	}
	els := doc.FlatElements()
	e.log.Debug("folded", "blocks", len(doc.Blocks), "elements", len(els))

	format := c.Format
	if format == "" {
		format = e.cfg.Output.Format
	}
	switch format {
	case "text":
		return writeText(e.out, els)
	case "json":
		if err := mdflat.WriteElements(e.out, els); err != nil {
			return err
		}
		_, err := fmt.Fprintln(e.out)
		return err
	}
	return fmt.Errorf("invalid format %q, must be one of: text, json", format)
}

func writeText(w io.Writer, els []flat.Element) error {
	for _, el := range els {
		if _, err := fmt.Fprintln(w, el.String()); err != nil {
			return err
		}
	}
	return nil
}

// TreeCmd dumps the block tree.
type TreeCmd struct {
	File      string `arg:"" optional:"" help:"Markdown file (stdin if omitted or -)"`
	StripHTML bool   `name:"strip-html" help:"Drop raw HTML blocks and inline HTML"`
}

func (c *TreeCmd) Run(e *env) error {
	doc, err := e.parse(c.File)
	if err != nil {
		return err
	}
	if c.StripHTML {
		doc = mdflat.StripHTML(doc)
	}
	if err := mdflat.Write(e.out, doc); err != nil {
		return err
	}
	_, err = fmt.Fprintln(e.out)
	return err
}

// HTMLCmd renders HTML.
type HTMLCmd struct {
	File string `arg:"" optional:"" help:"Markdown file (stdin if omitted or -)"`
}

func (c *HTMLCmd) Run(e *env) error {
	src, err := e.source(c.File)
	if err != nil {
		return err
	}
	return mdflat.RenderHTML(e.out, src, e.conf)
}

// PreviewCmd draws the flattened document on the terminal.
type PreviewCmd struct {
	File  string `arg:"" optional:"" help:"Markdown file (stdin if omitted or -)"`
	Width int    `name:"width" short:"w" help:"Wrap width; defaults to preview.width or the terminal width"`
	Watch bool   `name:"watch" help:"Re-render when the file changes"`
}

func (c *PreviewCmd) Run(e *env) error {
	width := c.Width
	if width == 0 {
		width = e.cfg.Preview.Width
	}
	opts := preview.Options{Width: width, CodeStyle: e.cfg.Preview.CodeStyle}
	if f, ok := e.out.(*os.File); ok {
		opts = preview.Resolve(f, width, e.cfg.Preview.Color, e.cfg.Preview.CodeStyle)
	} else if e.cfg.Preview.Color == "always" {
		opts.Color = true
	}
	r := preview.New(opts)

	if !c.Watch {
		return c.render(e, r)
	}
	if c.File == "" || c.File == "-" {
		return errors.New("--watch needs a file")
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return c.watch(ctx, e, r)
}

func (c *PreviewCmd) render(e *env, r *preview.Renderer) error {
	doc, err := e.parse(c.File)
	if err != nil {
		return err
	}
	els := doc.FlatElements()
	e.log.Debug("rendering preview", "file", c.File, "elements", len(els))
	return r.Write(e.out, els)
}

// watch renders the file and then again after every change until ctx is
// done. The directory is watched so editors that replace the file on save
// are followed.
func (c *PreviewCmd) watch(ctx context.Context, e *env, r *preview.Renderer) error {
	path, err := filepath.Abs(c.File)
	if err != nil {
		return fmt.Errorf("invalid path: %w", err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.Add(filepath.Dir(path)); err != nil {
		return err
	}

	out := termenv.NewOutput(e.out)
	redraw := func() {
		out.ClearScreen()
		if err := c.render(e, r); err != nil {
			e.log.Error("preview failed", "file", c.File, "error", err)
		}
	}
	redraw()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				redraw()
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			e.log.Warn("watch error", "error", err)
		}
	}
}

// CheckCmd toggles a checkbox in the source.
type CheckCmd struct {
	File  string `arg:"" help:"Markdown file" type:"existingfile"`
	Index int    `arg:"" help:"Checkbox number, counting from 1 in document order"`
	Write bool   `name:"write" help:"Rewrite the file in place instead of printing the result"`
}

func (c *CheckCmd) Run(e *env) error {
	src, err := os.ReadFile(c.File)
	if err != nil {
		return err
	}
	doc := mdflat.Parse(src, e.conf)
	if doc == nil {
		return fmt.Errorf("%s: %w", c.File, mdflat.ErrNoDocument)
	}
	boxes := doc.Checkboxes()
	if c.Index < 1 || c.Index > len(boxes) {
		return fmt.Errorf("checkbox %d out of range, %s has %d", c.Index, c.File, len(boxes))
	}
	cb := boxes[c.Index-1]
	out, err := mdflat.ToggleCheckbox(src, cb)
	if err != nil {
		return err
	}
	e.log.Debug("toggled checkbox", "file", c.File, "index", c.Index, "checked", !cb.Checked)
	if !c.Write {
		_, err = e.out.Write(out)
		return err
	}
	info, err := os.Stat(c.File)
	if err != nil {
		return err
	}
	return os.WriteFile(c.File, out, info.Mode().Perm())
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run(e *env) error {
	_, err := fmt.Fprintf(e.out, "mdflat %s (tree format %s)\n", version, mdflat.Version)
	return err
}

// source reads the named file, or standard input when file is empty or "-".
func (e *env) source(file string) ([]byte, error) {
	if file == "" || file == "-" {
		return io.ReadAll(e.in)
	}
	return os.ReadFile(file)
}

func (e *env) parse(file string) (*mdflat.Doc, error) {
	src, err := e.source(file)
	if err != nil {
		return nil, err
	}
	doc := mdflat.Parse(src, e.conf)
	if doc == nil {
		return nil, mdflat.ErrNoDocument
	}
	e.log.Debug("parsed", "bytes", len(src), "blocks", len(doc.Blocks))
	return doc, nil
}

func (e *env) readTree(file string) (*mdflat.Doc, error) {
	if file == "" || file == "-" {
		return mdflat.ReadDoc(e.in)
	}
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	doc, err := mdflat.ReadDoc(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	return doc, nil
}
