package latex

// Defaults applied by DefaultOptions.
const (
	DefaultRound    = 2
	DefaultCaption  = "My Table"
	DefaultLabel    = "table"
	DefaultLocation = "t"
)

// Options configures Render. The zero value renders every column without
// rounding and with empty caption, label, and placement; use DefaultOptions
// for the documented defaults.
type Options struct {
	// Columns projects the table to these columns, in order. Empty means all.
	Columns []string
	// Round is the number of decimal places for float cells. Nil disables rounding.
	Round *int
	// Align is the tabular column specification. Empty derives "l|c|c|...".
	Align string
	// Caption is the \caption text.
	Caption string
	// Label is the suffix of \label{table:<label>}.
	Label string
	// Location is the float placement, e.g. "t", "h", "b", "!htbp".
	Location string
	// Escape escapes LaTeX special characters in header names and string cells.
	Escape bool
	// Template replaces the built-in skeleton with a pongo2 template.
	Template string
	// TemplateName identifies Template in error messages.
	TemplateName string
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Round:    Places(DefaultRound),
		Caption:  DefaultCaption,
		Label:    DefaultLabel,
		Location: DefaultLocation,
	}
}

// Places returns a rounding precision for Options.Round.
func Places(n int) *int {
	return &n
}
