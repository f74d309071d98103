package cheby

// Config carries generator-wide options that apply to a whole
// invocation rather than to a single node. Unlike the grammar
// compiler's Config (a runtime-typed map, because grammar.* options
// are queried dynamically across many passes that don't all know
// each other's key set), cheby's option set is small and fixed, so a
// plain struct is more direct.
type Config struct {
	// WordBitsDefault is used only when a Root omits CWordBits
	// (malformed input the layout pass should have caught; this is
	// a last-ditch guard, not a substitute for validation).
	WordBitsDefault int

	// EmitComments is carried with the other options but is not read
	// by Generate or hdl.Print; the printer never emits Reg/Field
	// description comments.
	EmitComments bool

	// Edge3ToolVersion is interpolated into the Edge3 CSV header
	// line ("#Encore Driver GEnerator version: <value>").
	Edge3ToolVersion string
}

// NewConfig returns a Config primed with the defaults every
// invocation expects.
func NewConfig() *Config {
	return &Config{
		WordBitsDefault:  32,
		EmitComments:     false,
		Edge3ToolVersion: "3.0",
	}
}
