package renderer

// TextStyle represents different text styling options
type TextStyle int

const (
	StyleNormal TextStyle = iota
	StyleHeading
	StyleSphere
	StyleLocation
	StyleItem
	StyleEntrance
	StyleDenied
	StyleSubtle
)

// Translator looks up a translated string by key, formatting it with vars
type Translator interface {
	Get(key string, vars ...any) string
}

// TranslatorFunc adapts a function to the Translator interface
type TranslatorFunc func(key string, vars ...any) string

// Get calls f
func (f TranslatorFunc) Get(key string, vars ...any) string {
	return f(key, vars...)
}

// Renderer defines the interface for report rendering backends
type Renderer interface {
	// Init initializes the renderer (colors, markup)
	Init()

	// StyleText applies a style to text and returns the styled string
	StyleText(text string, style TextStyle) string

	// FormatText formats a message with the renderer's markup system
	FormatText(msg string, args ...any) string

	// Translate returns the translated string for key
	Translate(key string, vars ...any) string

	// Width returns the number of columns available to the report
	Width() int
}
