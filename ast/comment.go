package ast

import "github.com/relquery/relquery/token"

// CommentAttach says where a Comment sits relative to the component it is
// recorded against.
type CommentAttach int

const (
	// CommentHeader marks a comment block preceding the whole statement,
	// separated from it by a blank line (or at the very start of input).
	CommentHeader CommentAttach = iota
	// CommentBefore marks a comment immediately preceding a component.
	CommentBefore
	// CommentAfter marks a trailing comment on the same source line as
	// the component it follows.
	CommentAfter
)

// Comment is a single attached comment, in either -- or /* */ form.
type Comment struct {
	Pos    token.Pos
	Text   string // without the leading -- or /* */ delimiters
	Block  bool   // true for /* */, false for --
	Attach CommentAttach
}

// Commented is implemented by the handful of top-level statement and CTE
// nodes that carry attached comments (SPEC_FULL §3 Comment model).
type Commented interface {
	HeaderComments() []Comment
	Before() []Comment
	After() []Comment
}

// comments is embedded (by value, zero-cost when unused) into the
// statement kinds that support comment attachment.
type comments struct {
	header []Comment
	before []Comment
	after  []Comment
}

func (c *comments) HeaderComments() []Comment { return c.header }
func (c *comments) Before() []Comment         { return c.before }
func (c *comments) After() []Comment          { return c.after }

func (c *comments) SetHeaderComments(cs []Comment) { c.header = cs }
func (c *comments) SetBefore(cs []Comment)         { c.before = cs }
func (c *comments) SetAfter(cs []Comment)          { c.after = cs }
