package scripts

import (
	"fmt"

	"go.starlark.net/syntax"
)

const (
	loopBuiltin  = "__loop"
	whileBuiltin = "__while"
	stepBuiltin  = "__step"
)

// yieldingLoops rewrites every for and while statement of f so that each
// iteration goes through the loop runner of the running Thread:
//
//	for x in E: body   =>  for x in __loop(E): body
//
//	while C: body      =>  for $while in __while():
//	                           if not C: break
//	                           __step($while)
//	                           body
//
// Comprehensions are expressions and are left as is.
func yieldingLoops(f *syntax.File) {
	r := new(loopRewriter)
	f.Stmts = r.stmts(f.Stmts)
}

type loopRewriter struct {
	depth int
}

func (r *loopRewriter) stmts(stmts []syntax.Stmt) []syntax.Stmt {
	for i, stmt := range stmts {
		stmts[i] = r.stmt(stmt)
	}
	return stmts
}

func (r *loopRewriter) stmt(stmt syntax.Stmt) syntax.Stmt {
	switch s := stmt.(type) {
	case *syntax.DefStmt:
		s.Body = r.stmts(s.Body)
	case *syntax.IfStmt:
		s.True = r.stmts(s.True)
		s.False = r.stmts(s.False)
	case *syntax.ForStmt:
		start, end := s.X.Span()
		s.X = builtinCall(loopBuiltin, start, end, s.X)
		r.depth++
		s.Body = r.stmts(s.Body)
		r.depth--
	case *syntax.WhileStmt:
		return r.lowerWhile(s)
	}
	return stmt
}

func (r *loopRewriter) lowerWhile(s *syntax.WhileStmt) syntax.Stmt {
	pos := s.While
	// nested loops get distinct handles
	name := fmt.Sprintf("$while%d", r.depth)
	handle := func() *syntax.Ident {
		return &syntax.Ident{
			NamePos: pos,
			Name:    name,
		}
	}
	condStart, _ := s.Cond.Span()
	body := []syntax.Stmt{
		&syntax.IfStmt{
			If: condStart,
			Cond: &syntax.UnaryExpr{
				OpPos: condStart,
				Op:    syntax.NOT,
				X:     s.Cond,
			},
			True: []syntax.Stmt{
				&syntax.BranchStmt{
					Token:    syntax.BREAK,
					TokenPos: pos,
				},
			},
		},
		&syntax.ExprStmt{
			X: builtinCall(stepBuiltin, pos, pos, handle()),
		},
	}
	r.depth++
	body = append(body, r.stmts(s.Body)...)
	r.depth--
	return &syntax.ForStmt{
		For:  pos,
		Vars: handle(),
		X:    builtinCall(whileBuiltin, pos, pos),
		Body: body,
	}
}

func builtinCall(name string, start, end syntax.Position, args ...syntax.Expr) *syntax.CallExpr {
	return &syntax.CallExpr{
		Fn: &syntax.Ident{
			NamePos: start,
			Name:    name,
		},
		Lparen: start,
		Args:   args,
		Rparen: end,
	}
}
