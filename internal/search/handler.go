package search

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Color modes accepted by ColorEnabled.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// defaultHandler returns a handler that prints matching paths to stdout.
func defaultHandler() MatchHandler {
	return PrintHandler(os.Stdout)
}

// PrintHandler returns a handler that writes one path per line to w.
func PrintHandler(w io.Writer) MatchHandler {
	return func(_ context.Context, e Entry) error {
		_, err := fmt.Fprintln(w, e.Path)
		return err
	}
}

// FormatHandler returns a handler that writes each match rendered through
// template, one per line.
func FormatHandler(w io.Writer, template string) MatchHandler {
	return func(_ context.Context, e Entry) error {
		_, err := fmt.Fprintln(w, formatEntry(template, e))
		return err
	}
}

// formatEntry replaces placeholders in a template with values from the entry.
func formatEntry(template string, e Entry) string {
	ext, _ := e.Ext()
	dir := filepath.Dir(e.Path)

	str := template

	// Quoted forms first so "{}" does not eat the inside of `{""}`.
	str = strings.ReplaceAll(str, `{""}`, strconv.Quote(e.Path))
	str = strings.ReplaceAll(str, `{"base"}`, strconv.Quote(e.Name))
	str = strings.ReplaceAll(str, `{"dir"}`, strconv.Quote(dir))

	str = strings.ReplaceAll(str, "{}", e.Path)
	str = strings.ReplaceAll(str, "{base}", e.Name)
	str = strings.ReplaceAll(str, "{dir}", dir)
	str = strings.ReplaceAll(str, "{ext}", ext)
	str = strings.ReplaceAll(str, "{kind}", e.Kind.String())
	str = strings.ReplaceAll(str, "{depth}", strconv.Itoa(e.Depth))

	return str
}

// HighlightHandler returns a handler that writes each path with the
// occurrences of the fragment in its base name colored.
func HighlightHandler(w io.Writer, cfg *Config) MatchHandler {
	match := color.New(color.FgRed, color.Bold)
	match.EnableColor()
	return func(_ context.Context, e Entry) error {
		_, err := fmt.Fprintln(w, highlight(cfg, e, match))
		return err
	}
}

// highlight colors every occurrence of the fragment in the base name. When
// folding changes the byte length of the name the path is returned plain,
// since offsets in the folded name no longer line up.
func highlight(cfg *Config, e Entry, c *color.Color) string {
	if !strings.HasSuffix(e.Path, e.Name) {
		return e.Path
	}
	folded := cfg.fold(e.Name)
	if len(folded) != len(e.Name) || cfg.needle == "" {
		return e.Path
	}

	var b strings.Builder
	b.WriteString(e.Path[:len(e.Path)-len(e.Name)])
	rest, name := folded, e.Name
	for {
		i := strings.Index(rest, cfg.needle)
		if i < 0 {
			b.WriteString(name)
			break
		}
		j := i + len(cfg.needle)
		b.WriteString(name[:i])
		b.WriteString(c.Sprint(name[i:j]))
		rest, name = rest[j:], name[j:]
	}
	return b.String()
}

// ColorEnabled resolves a color mode against the writer results go to. In auto
// mode only a terminal gets color, and NO_COLOR turns it off.
func ColorEnabled(mode string, w io.Writer) (bool, error) {
	switch mode {
	case ColorAlways:
		return true, nil
	case ColorNever:
		return false, nil
	case ColorAuto, "":
		f, ok := w.(*os.File)
		if !ok || os.Getenv("NO_COLOR") != "" {
			return false, nil
		}
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()), nil
	default:
		return false, fmt.Errorf("invalid color mode %q (want %s, %s or %s)", mode, ColorAuto, ColorAlways, ColorNever)
	}
}
