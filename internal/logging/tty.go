package logging

import (
	"io"
	"os"

	"golang.org/x/term"
)

// IsTTY reports whether w is a terminal. Anything with an Fd method, such
// as *os.File, is checked.
func IsTTY(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}

// UseColor decides whether output to w is colorized. mode "always" and
// "never" are final; anything else means auto, which requires a terminal
// and is disabled by NO_COLOR (https://no-color.org) or TERM=dumb.
func UseColor(w io.Writer, mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	return autoColor(IsTTY(w))
}

func autoColor(isTTY bool) bool {
	if _, set := os.LookupEnv("NO_COLOR"); set {
		return false
	}
	return isTTY && os.Getenv("TERM") != "dumb"
}
