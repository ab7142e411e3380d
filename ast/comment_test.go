package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/relquery/relquery/token"
)

func TestCommentsAccessorsReturnSetValues(t *testing.T) {
	var c comments
	header := []Comment{{Text: "header", Pos: token.Pos{Offset: 0}}}
	before := []Comment{{Text: "before", Block: true}}
	after := []Comment{{Text: "after", Attach: CommentAfter}}

	c.SetHeaderComments(header)
	c.SetBefore(before)
	c.SetAfter(after)

	assert.Equal(t, header, c.HeaderComments())
	assert.Equal(t, before, c.Before())
	assert.Equal(t, after, c.After())
}

func TestCommentsZeroValueIsEmpty(t *testing.T) {
	var c comments
	assert.Empty(t, c.HeaderComments())
	assert.Empty(t, c.Before())
	assert.Empty(t, c.After())
}

func TestSelectStmtImplementsCommented(t *testing.T) {
	sel := &SelectStmt{}
	var _ Commented = sel
	sel.CommentInfo.SetHeaderComments([]Comment{{Text: "top"}})
	assert.Equal(t, "top", sel.HeaderComments()[0].Text)
}
