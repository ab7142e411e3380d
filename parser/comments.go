package parser

import (
	"github.com/relquery/relquery/ast"
	"github.com/relquery/relquery/token"
)

// toASTComments converts the lexer's trivia comments (captured per-lexeme
// in token.Item.Leading/Trailing) into the ast.Comment form statements and
// CTEs carry, tagging each with attach to record where it sat.
func toASTComments(cs []token.Comment, attach ast.CommentAttach) []ast.Comment {
	if len(cs) == 0 {
		return nil
	}
	out := make([]ast.Comment, len(cs))
	for i, c := range cs {
		out[i] = ast.Comment{Pos: c.Pos, Text: c.Text, Block: c.Block, Attach: attach}
	}
	return out
}

// attachComments records the comment block preceding a top-level statement
// (its header) and the same-line comment trailing its last token (its
// after), on the handful of statement kinds that implement ast.Commented.
// leading is the Leading trivia captured off the statement's first token,
// before parseStatement consumed it; trailing is the last-consumed token's
// Trailing comment, if any.
func attachComments(stmt ast.Statement, leading []token.Comment, trailing *token.Comment) {
	header := toASTComments(leading, ast.CommentHeader)
	var after []ast.Comment
	if trailing != nil {
		after = toASTComments([]token.Comment{*trailing}, ast.CommentAfter)
	}
	if len(header) == 0 && len(after) == 0 {
		return
	}

	switch s := stmt.(type) {
	case *ast.SelectStmt:
		s.CommentInfo.SetHeaderComments(header)
		s.CommentInfo.SetAfter(after)
	case *ast.InsertStmt:
		s.CommentInfo.SetHeaderComments(header)
		s.CommentInfo.SetAfter(after)
	case *ast.UpdateStmt:
		s.CommentInfo.SetHeaderComments(header)
		s.CommentInfo.SetAfter(after)
	case *ast.DeleteStmt:
		s.CommentInfo.SetHeaderComments(header)
		s.CommentInfo.SetAfter(after)
	case *ast.MergeStmt:
		s.CommentInfo.SetHeaderComments(header)
		s.CommentInfo.SetAfter(after)
	}
}
