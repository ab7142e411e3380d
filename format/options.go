package format

import "strings"

// KeywordCase controls how reserved words are emitted.
type KeywordCase int

const (
	KeywordUpper KeywordCase = iota
	KeywordLower
	KeywordAsWritten // rendered as uppercase; the source spelling is not kept
)

// ParameterStyle controls how parameter markers are re-emitted, independent
// of how they were written in the source.
type ParameterStyle int

const (
	ParamStyleAsParsed ParameterStyle = iota // keep each Param's own Type
	ParamStyleAnonymous                      // force "?"
	ParamStyleIndexed                        // force "$1", "$2", ...
	ParamStyleNamed                           // force ":name" using Param.Name, falling back to positional name
)

// CommentExportMode selects a comment export level. Render emits no
// comments in any mode.
type CommentExportMode int

const (
	CommentExportNone CommentExportMode = iota
	CommentExportHeaderOnly
	CommentExportFull
)

// IdentifierQuoting configures the delimiter pair used to quote identifiers
// that need it (reserved words, empty names, special characters).
type IdentifierQuoting struct {
	Start byte
	End   byte
}

var (
	DoubleQuoteIdentifiers = IdentifierQuoting{Start: '"', End: '"'}
	BacktickIdentifiers    = IdentifierQuoting{Start: '`', End: '`'}
	BracketIdentifiers     = IdentifierQuoting{Start: '[', End: ']'}
)

// Options controls formatting behavior. The formatter reads the keyword
// case, IdentifierQuoting and ParameterStyle and always renders a single
// line; the layout fields (Indent, IndentSize, IndentChar, Newline,
// CommaBreak, AndOrBreak), ParameterSymbol, CommentExportMode and
// PreserveOriginalFormatting do not change the rendered text.
type Options struct {
	// Deprecated convenience fields, kept so existing call sites that only
	// care about case/indent width keep working; KeywordCase/IndentSize
	// are authoritative when both are set (keywordCase and indentUnit
	// reconcile them).
	Uppercase bool
	Indent    string

	ParameterSymbol            string // e.g. "$", "?", ":" used when ParameterStyle forces a style
	ParameterStyle             ParameterStyle
	IdentifierQuoting          IdentifierQuoting
	KeywordCase                KeywordCase
	IndentSize                 int
	IndentChar                 byte
	Newline                    string
	CommaBreak                 bool // break before each column/arg on its own line
	AndOrBreak                 bool // break before each AND/OR in a WHERE/HAVING chain
	CommentExportMode          CommentExportMode
	PreserveOriginalFormatting bool
}

// DefaultOptions are the default formatting options: uppercase keywords,
// double-quoted identifiers, single-line output, no comment export.
var DefaultOptions = NewOptions()

// NewOptions returns the library default Options, mirroring the historical
// zero-config single-line formatter behavior.
func NewOptions() Options {
	return Options{
		Uppercase:         true,
		Indent:            "  ",
		ParameterStyle:    ParamStyleAsParsed,
		IdentifierQuoting: DoubleQuoteIdentifiers,
		KeywordCase:       KeywordUpper,
		IndentSize:        2,
		IndentChar:        ' ',
		Newline:           "\n",
		CommentExportMode: CommentExportNone,
	}
}

func (o Options) keywordCase() KeywordCase {
	if !o.Uppercase && o.KeywordCase == KeywordUpper {
		return KeywordLower
	}
	return o.KeywordCase
}

func (o Options) indentUnit() string {
	if o.IndentSize > 0 {
		c := o.IndentChar
		if c == 0 {
			c = ' '
		}
		return strings.Repeat(string(c), o.IndentSize)
	}
	if o.Indent != "" {
		return o.Indent
	}
	return "  "
}

// FormatResult is the outcome of Render: the generated SQL text plus the
// parameters encountered, in emission order, each recorded with its 1-based
// position and, for named markers, its name.
type FormatResult struct {
	SQL    string
	Params []FormatParam
}

// FormatParam describes one parameter marker as it was emitted.
type FormatParam struct {
	Position int    // 1-based left-to-right emission order
	Name     string // non-empty only for named markers
	Value    any    // bound value, populated when the ast.Param carries one; nil for params parsed from source text with no bound value
}
