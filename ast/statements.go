package ast

import (
	"bytes"

	"github.com/drizzle-lingo/lingo/token"
)

// Assign is a statement that stores a value: "target = value". The target is
// a variable, a "the" property, a property access or an index expression.
type Assign struct {
	Target Expr
	Value  Expr
}

func (s *Assign) stmtNode() {}

func (s *Assign) Pos() token.Position { return s.Target.Pos() }

func (s *Assign) String() string {
	return s.Target.String() + " = " + s.Value.String()
}

// Return is a statement that returns from the current handler. Value is nil
// for a bare "return".
type Return struct {
	ReturnPos token.Position // position of "return" keyword
	Value     Expr           // returned value; nil if none
}

func (s *Return) stmtNode() {}

func (s *Return) Pos() token.Position { return s.ReturnPos }

func (s *Return) String() string {
	if s.Value == nil {
		return "return"
	}
	return "return " + s.Value.String()
}

// Exit leaves the current handler.
type Exit struct {
	ExitPos token.Position // position of "exit" keyword
}

func (s *Exit) stmtNode() {}

func (s *Exit) Pos() token.Position { return s.ExitPos }

func (s *Exit) String() string { return "exit" }

// ExitRepeat leaves the innermost repeat loop. Whether it appears inside a
// loop at all is checked by package syntax, not by the parser.
type ExitRepeat struct {
	ExitPos token.Position // position of "exit" keyword
}

func (s *ExitRepeat) stmtNode() {}

func (s *ExitRepeat) Pos() token.Position { return s.ExitPos }

func (s *ExitRepeat) String() string { return "exit repeat" }

// If is a conditional statement. Else-if chains are represented as nested
// If statements, each being the only statement of the enclosing Else block.
type If struct {
	IfPos token.Position // position of "if" keyword
	Cond  Expr           // condition
	Then  *Block         // consequence
	Else  *Block         // alternative; empty when there is no else
}

func (s *If) stmtNode() {}

func (s *If) Pos() token.Position { return s.IfPos }

// ElseIf returns the nested If when the else branch is exactly one If
// statement, which is how "else if" is represented.
func (s *If) ElseIf() (*If, bool) {
	if s.Else == nil || len(s.Else.Stmts) != 1 {
		return nil, false
	}
	nested, ok := s.Else.Stmts[0].(*If)
	return nested, ok
}

func (s *If) String() string {
	var out bytes.Buffer
	out.WriteString("if ")
	out.WriteString(s.Cond.String())
	out.WriteString(" then\n")
	out.WriteString(indent(s.Then.String()))
	if s.Else.Len() > 0 {
		out.WriteString("else\n")
		out.WriteString(indent(s.Else.String()))
	}
	out.WriteString("end if")
	return out.String()
}

// CaseAlt is one alternative of a case statement. It matches when the subject
// equals any of its labels.
type CaseAlt struct {
	Labels []Expr
	Body   *Block
}

func (a *CaseAlt) Pos() token.Position {
	if len(a.Labels) > 0 {
		return a.Labels[0].Pos()
	}
	return a.Body.Pos()
}

func (a *CaseAlt) String() string {
	return joinExprs(a.Labels) + ":\n" + indent(a.Body.String())
}

// Case is a multi-way branch statement.
type Case struct {
	CasePos   token.Position // position of "case" keyword
	Subject   Expr           // value being matched
	Alts      []*CaseAlt     // alternatives in source order
	Otherwise *Block         // otherwise block; nil when absent
}

func (s *Case) stmtNode() {}

func (s *Case) Pos() token.Position { return s.CasePos }

func (s *Case) String() string {
	var out bytes.Buffer
	out.WriteString("case ")
	out.WriteString(s.Subject.String())
	out.WriteString(" of\n")
	for _, alt := range s.Alts {
		out.WriteString(indent(alt.String()))
	}
	if s.Otherwise != nil {
		out.WriteString(indent("otherwise:\n" + indent(s.Otherwise.String())))
	}
	out.WriteString("end case")
	return out.String()
}

// RepeatWhile loops while the condition holds.
type RepeatWhile struct {
	RepeatPos token.Position // position of "repeat" keyword
	Cond      Expr
	Body      *Block
}

func (s *RepeatWhile) stmtNode() {}

func (s *RepeatWhile) Pos() token.Position { return s.RepeatPos }

func (s *RepeatWhile) String() string {
	return "repeat while " + s.Cond.String() + "\n" + indent(s.Body.String()) + "end repeat"
}

// RepeatWithList binds Var to each element of the evaluated list in order.
type RepeatWithList struct {
	RepeatPos token.Position // position of "repeat" keyword
	Var       *Ident
	List      Expr
	Body      *Block
}

func (s *RepeatWithList) stmtNode() {}

func (s *RepeatWithList) Pos() token.Position { return s.RepeatPos }

func (s *RepeatWithList) String() string {
	return "repeat with " + s.Var.Name + " in " + s.List.String() + "\n" +
		indent(s.Body.String()) + "end repeat"
}

// RepeatWithCounter is an inclusive ascending integer loop from Start to End.
type RepeatWithCounter struct {
	RepeatPos token.Position // position of "repeat" keyword
	Var       *Ident
	Start     Expr
	End       Expr
	Body      *Block
}

func (s *RepeatWithCounter) stmtNode() {}

func (s *RepeatWithCounter) Pos() token.Position { return s.RepeatPos }

func (s *RepeatWithCounter) String() string {
	return "repeat with " + s.Var.Name + " = " + s.Start.String() + " to " + s.End.String() + "\n" +
		indent(s.Body.String()) + "end repeat"
}

// ExprStmt is an expression evaluated for its side effects, typically a call.
type ExprStmt struct {
	X Expr
}

func (s *ExprStmt) stmtNode() {}

func (s *ExprStmt) Pos() token.Position { return s.X.Pos() }

func (s *ExprStmt) String() string { return s.X.String() }
