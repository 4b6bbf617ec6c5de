package tui

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/gookit/color"
	"github.com/leonelquinteros/gotext"

	"seedsolver/pkg/engine/terminal"
	"seedsolver/pkg/game/renderer"
	"seedsolver/pkg/game/spoiler"
)

// dynamicGet is used for runtime translation key lookups.
// We use a function variable to avoid go vet's non-constant format string check,
// since we intentionally look up translation keys dynamically from markup.
var dynamicGet = gotext.Get

// TUIRenderer is the terminal-based renderer implementation
type TUIRenderer struct {
	colorHeading  color.Style
	colorSphere   color.Style
	colorLocation color.Style
	colorItem     color.Style
	colorEntrance color.Style
	colorDenied   color.Style
	colorSubtle   color.Style

	out          io.Writer
	colors       bool
	translations renderer.Translator

	regexpStringFunctions *regexp.Regexp
}

// Option configures a TUIRenderer
type Option func(*TUIRenderer)

// WithTranslations sets the translations used for headings. Without it the
// package level gotext configuration is used.
func WithTranslations(tr renderer.Translator) Option {
	return func(t *TUIRenderer) {
		if tr != nil {
			t.translations = tr
		}
	}
}

// WithColors forces colored output on or off
func WithColors(enabled bool) Option {
	return func(t *TUIRenderer) {
		t.colors = enabled
	}
}

// New creates a new TUI renderer writing to out. Colors are enabled when out
// is a terminal.
func New(out io.Writer, opts ...Option) *TUIRenderer {
	t := &TUIRenderer{
		out:          out,
		colors:       terminal.IsTerminal(out),
		translations: renderer.TranslatorFunc(dynamicGet),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Init initializes the TUI renderer (colors, etc.)
func (t *TUIRenderer) Init() {
	t.colorHeading = color.Style{color.FgCyan, color.OpBold}
	t.colorSphere = color.Style{color.FgBlue, color.OpBold}
	t.colorLocation = color.Style{color.FgWhite}
	t.colorItem = color.Style{color.FgMagenta}
	t.colorEntrance = color.Style{color.FgGreen}
	t.colorDenied = color.Style{color.FgRed, color.OpBold}
	t.colorSubtle = color.Style{color.FgGray}

	t.regexpStringFunctions = regexp.MustCompile(`([A-Z_]+){([^{}]+)}`)
}

// Width returns the report width of the output terminal
func (t *TUIRenderer) Width() int {
	return terminal.GetWidth(t.out)
}

// Translate returns the translated string for key
func (t *TUIRenderer) Translate(key string, vars ...any) string {
	return t.translations.Get(key, vars...)
}

// StyleText applies a style to text
func (t *TUIRenderer) StyleText(text string, style renderer.TextStyle) string {
	if !t.colors {
		return text
	}
	switch style {
	case renderer.StyleHeading:
		return t.colorHeading.Sprint(text)
	case renderer.StyleSphere:
		return t.colorSphere.Sprint(text)
	case renderer.StyleLocation:
		return t.colorLocation.Sprint(text)
	case renderer.StyleItem:
		return t.colorItem.Sprint(text)
	case renderer.StyleEntrance:
		return t.colorEntrance.Sprint(text)
	case renderer.StyleDenied:
		return t.colorDenied.Sprint(text)
	case renderer.StyleSubtle:
		return t.colorSubtle.Sprint(text)
	default:
		return text
	}
}

// FormatText formats a message with the markup system
func (t *TUIRenderer) FormatText(msg string, args ...any) string {
	ret := fmt.Sprintf(msg, args...)

	matches := t.regexpStringFunctions.FindAllStringSubmatch(ret, -1)

	for _, match := range matches {
		function := match[1]
		operand := match[2]

		var val string

		switch function {
		case "GT":
			val = t.Translate(operand)
		case "ITEM":
			val = t.StyleText(operand, renderer.StyleItem)
		case "LOC":
			val = t.StyleText(operand, renderer.StyleLocation)
		case "ENTRANCE":
			val = t.StyleText(operand, renderer.StyleEntrance)
		case "DENIED":
			val = t.StyleText(operand, renderer.StyleDenied)
		default:
			continue
		}

		ret = strings.Replace(ret, match[0], val, -1)
	}

	return ret
}

// Render writes the report for s to the renderer's output
func (t *TUIRenderer) Render(s *spoiler.Spoiler) error {
	return renderer.Write(t.out, t, s)
}
