package preview

import (
	"os"

	"golang.org/x/term"
)

// Detect reports whether f is a terminal and, if so, its width in cells.
// The width is 0 when it cannot be determined.
func Detect(f *os.File) (width int, tty bool) {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return 0, false
	}
	w, _, err := term.GetSize(fd)
	if err != nil {
		return 0, true
	}
	return w, true
}

// Resolve fills Options from the configured width and color mode
// ("auto", "always" or "never") for output going to f.
func Resolve(f *os.File, width int, color, codeStyle string) Options {
	w, tty := Detect(f)
	opts := Options{Width: width, CodeStyle: codeStyle}
	if opts.Width == 0 {
		opts.Width = w
	}
	switch color {
	case "always":
		opts.Color = true
	case "auto":
		opts.Color = tty
	}
	return opts
}
