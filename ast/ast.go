/*
 * CQL
 *
 * Copyright 2026 The CQL Authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

/*
Package ast defines the closed set of CQL abstract syntax tree node
variants produced by package parser, their structural equality, and a
deterministic renderer.

Unlike EliasDB's own ASTNode (an open tree of a string Name plus
[]*ASTNode Children, walked generically by its interpreter), nodes here
are a closed, statically typed sum: one concrete Go type per variant in
the closed set, each implementing an unexported marker method so the
compiler - not a runtime tag - enforces that every Predicate and every
Expression is one of the listed kinds. This is the same shape used by
the Go-native ast.Node types in the oarkflow/sqlparser package elsewhere
in this retrieval pack.
*/
package ast

/*
Node is implemented by every AST node, predicate or expression.
*/
type Node interface {
	node()
}

/*
Predicate is a boolean-valued AST node.
*/
type Predicate interface {
	Node
	predicateNode()
}

/*
Expression is a value-valued AST node.
*/
type Expression interface {
	Node
	expressionNode()
}

// ---------------------------------------------------------------------
// Operators
// ---------------------------------------------------------------------

/*
LogicalOp is the operator of a Combination node.
*/
type LogicalOp string

const (
	AND LogicalOp = "AND"
	OR  LogicalOp = "OR"
)

/*
ComparisonOp is the operator of a Comparison node.
*/
type ComparisonOp string

const (
	CmpEQ ComparisonOp = "="
	CmpNE ComparisonOp = "<>"
	CmpLT ComparisonOp = "<"
	CmpLE ComparisonOp = "<="
	CmpGT ComparisonOp = ">"
	CmpGE ComparisonOp = ">="
)

/*
TemporalOp is the operator of a Temporal node.
*/
type TemporalOp string

const (
	Before         TemporalOp = "BEFORE"
	BeforeOrDuring TemporalOp = "BEFORE OR DURING"
	During         TemporalOp = "DURING"
	DuringOrAfter  TemporalOp = "DURING OR AFTER"
	After          TemporalOp = "AFTER"
)

/*
SpatialOp is the operator of a Spatial node.
*/
type SpatialOp string

const (
	Intersects SpatialOp = "INTERSECTS"
	Disjoint   SpatialOp = "DISJOINT"
	Contains   SpatialOp = "CONTAINS"
	Within     SpatialOp = "WITHIN"
	Touches    SpatialOp = "TOUCHES"
	Crosses    SpatialOp = "CROSSES"
	Overlaps   SpatialOp = "OVERLAPS"
	SEquals    SpatialOp = "EQUALS"
	Relate     SpatialOp = "RELATE"
	DWithin    SpatialOp = "DWITHIN"
	Beyond     SpatialOp = "BEYOND"
)

/*
ArithmeticOp is the operator of an Arithmetic node.
*/
type ArithmeticOp string

const (
	Add ArithmeticOp = "+"
	Sub ArithmeticOp = "-"
	Mul ArithmeticOp = "*"
	Div ArithmeticOp = "/"
)

// ---------------------------------------------------------------------
// Predicates
// ---------------------------------------------------------------------

/*
Not is the logical negation of a predicate.
*/
type Not struct {
	Predicate Predicate
}

func (*Not) node()          {}
func (*Not) predicateNode() {}

/*
NewNot builds a Not node.
*/
func NewNot(p Predicate) *Not {
	return &Not{Predicate: p}
}

/*
Combination is a binary logical combination of two predicates. The
parser never produces one with a nil operand.
*/
type Combination struct {
	LHS, RHS Predicate
	Op       LogicalOp
}

func (*Combination) node()          {}
func (*Combination) predicateNode() {}

/*
NewCombination builds a Combination node.
*/
func NewCombination(lhs, rhs Predicate, op LogicalOp) *Combination {
	return &Combination{LHS: lhs, RHS: rhs, Op: op}
}

/*
Comparison is a binary comparison between two expressions.
*/
type Comparison struct {
	LHS, RHS Expression
	Op       ComparisonOp
}

func (*Comparison) node()          {}
func (*Comparison) predicateNode() {}

/*
NewComparison builds a Comparison node.
*/
func NewComparison(lhs, rhs Expression, op ComparisonOp) *Comparison {
	return &Comparison{LHS: lhs, RHS: rhs, Op: op}
}

/*
Between tests whether LHS falls within [Low, High]. Negated flips the
test.
*/
type Between struct {
	LHS, Low, High Expression
	Negated        bool
}

func (*Between) node()          {}
func (*Between) predicateNode() {}

/*
NewBetween builds a Between node.
*/
func NewBetween(lhs, low, high Expression, negated bool) *Between {
	return &Between{LHS: lhs, Low: low, High: high, Negated: negated}
}

/*
Like tests LHS against a wildcard string Pattern ('%' is the wildcard).
CaseSensitive distinguishes LIKE (true) from ILIKE (false).
*/
type Like struct {
	LHS           Expression
	Pattern       Expression
	CaseSensitive bool
	Negated       bool
}

func (*Like) node()          {}
func (*Like) predicateNode() {}

/*
NewLike builds a Like node.
*/
func NewLike(lhs, pattern Expression, caseSensitive, negated bool) *Like {
	return &Like{LHS: lhs, Pattern: pattern, CaseSensitive: caseSensitive, Negated: negated}
}

/*
In tests LHS for membership in a non-empty, ordered list of Choices.
*/
type In struct {
	LHS     Expression
	Choices []Expression
	Negated bool
}

func (*In) node()          {}
func (*In) predicateNode() {}

/*
NewIn builds an In node.
*/
func NewIn(lhs Expression, choices []Expression, negated bool) *In {
	return &In{LHS: lhs, Choices: choices, Negated: negated}
}

/*
Null tests whether LHS is (or, negated, is not) NULL.
*/
type Null struct {
	LHS     Expression
	Negated bool
}

func (*Null) node()          {}
func (*Null) predicateNode() {}

/*
NewNull builds a Null node.
*/
func NewNull(lhs Expression, negated bool) *Null {
	return &Null{LHS: lhs, Negated: negated}
}

/*
TemporalRHS is the right-hand side of a Temporal predicate: either a
single instant (Instant set, Start/End nil) or a period (Start and End
set, Instant nil). Each of Start/End is itself either an instant or a
duration literal expression; the parser carries both components through
unresolved; resolving a duration against an instant is a translator's job.
*/
type TemporalRHS struct {
	Instant    Expression
	Start, End Expression
}

/*
Temporal compares a temporal attribute against an instant or period.
*/
type Temporal struct {
	LHS Expression
	RHS TemporalRHS
	Op  TemporalOp
}

func (*Temporal) node()          {}
func (*Temporal) predicateNode() {}

/*
NewTemporalInstant builds a Temporal node whose RHS is a single instant.
*/
func NewTemporalInstant(lhs Expression, instant Expression, op TemporalOp) *Temporal {
	return &Temporal{LHS: lhs, RHS: TemporalRHS{Instant: instant}, Op: op}
}

/*
NewTemporalPeriod builds a Temporal node whose RHS is a (start, end)
pair.
*/
func NewTemporalPeriod(lhs Expression, start, end Expression, op TemporalOp) *Temporal {
	return &Temporal{LHS: lhs, RHS: TemporalRHS{Start: start, End: end}, Op: op}
}

/*
Spatial is a spatial relationship test between LHS and RHS. Pattern is
only populated for RELATE; Distance and Units are only populated for
DWITHIN and BEYOND.
*/
type Spatial struct {
	LHS, RHS Expression
	Op       SpatialOp
	Pattern  Expression
	Distance *float64
	Units    string
}

func (*Spatial) node()          {}
func (*Spatial) predicateNode() {}

/*
NewSpatial builds a Spatial node.
*/
func NewSpatial(lhs, rhs Expression, op SpatialOp) *Spatial {
	return &Spatial{LHS: lhs, RHS: rhs, Op: op}
}

/*
NewRelate builds a RELATE Spatial node.
*/
func NewRelate(lhs, rhs Expression, pattern Expression) *Spatial {
	return &Spatial{LHS: lhs, RHS: rhs, Op: Relate, Pattern: pattern}
}

/*
NewDistanceSpatial builds a DWITHIN or BEYOND Spatial node.
*/
func NewDistanceSpatial(lhs, rhs Expression, op SpatialOp, distance float64, units string) *Spatial {
	return &Spatial{LHS: lhs, RHS: rhs, Op: op, Distance: &distance, Units: units}
}

/*
BBox tests whether LHS intersects the rectangle [MinX, MinY, MaxX,
MaxY]. CRS, when present, is a non-empty coordinate reference system
identifier carried opaquely.
*/
type BBox struct {
	LHS                    Expression
	MinX, MinY, MaxX, MaxY float64
	CRS                    *string
}

func (*BBox) node()          {}
func (*BBox) predicateNode() {}

/*
NewBBox builds a BBox node.
*/
func NewBBox(lhs Expression, minx, miny, maxx, maxy float64, crs *string) *BBox {
	return &BBox{LHS: lhs, MinX: minx, MinY: miny, MaxX: maxx, MaxY: maxy, CRS: crs}
}

// ---------------------------------------------------------------------
// Expressions
// ---------------------------------------------------------------------

/*
Attribute is a named field reference.
*/
type Attribute struct {
	Name string
}

func (*Attribute) node()           {}
func (*Attribute) expressionNode() {}

/*
NewAttribute builds an Attribute node.
*/
func NewAttribute(name string) *Attribute {
	return &Attribute{Name: name}
}

/*
LiteralKind tags what a Literal's Value holds.
*/
type LiteralKind string

const (
	KindNumber   LiteralKind = "number"
	KindString   LiteralKind = "string"
	KindGeometry LiteralKind = "geometry"
	KindBBox     LiteralKind = "bbox"
	KindTime     LiteralKind = "time"
	KindDuration LiteralKind = "duration"
)

/*
Literal is a value-bearing expression. For KindNumber and KindString,
Value holds the native float64/string. For KindGeometry, KindBBox,
KindTime and KindDuration, Value holds whatever the caller-supplied
factory returned, and Raw holds the verbatim source text of the literal
(for KindBBox the ENVELOPE(...) text whose four coordinates the factory
was given; for the other kinds the text the factory was given). The
renderer uses Raw, since Value is opaque and not every factory output is
itself printable or even comparable.
*/
type Literal struct {
	Kind  LiteralKind
	Value interface{}
	Raw   string
}

func (*Literal) node()           {}
func (*Literal) expressionNode() {}

/*
NewNumberLiteral builds a number Literal.
*/
func NewNumberLiteral(v float64) *Literal {
	return &Literal{Kind: KindNumber, Value: v}
}

/*
NewStringLiteral builds a string Literal.
*/
func NewStringLiteral(v string) *Literal {
	return &Literal{Kind: KindString, Value: v}
}

/*
NewGeometryLiteral builds a geometry Literal from a geometry_factory
result and the raw WKT text it was produced from.
*/
func NewGeometryLiteral(value interface{}, rawWKT string) *Literal {
	return &Literal{Kind: KindGeometry, Value: value, Raw: rawWKT}
}

/*
NewBBoxLiteral builds a bbox Literal from a bbox_factory result and the
raw ENVELOPE(...) text it was produced from.
*/
func NewBBoxLiteral(value interface{}, rawEnvelope string) *Literal {
	return &Literal{Kind: KindBBox, Value: value, Raw: rawEnvelope}
}

/*
NewTimeLiteral builds a time Literal from a time_factory result and the
raw ISO 8601 instant text it was produced from.
*/
func NewTimeLiteral(value interface{}, rawInstant string) *Literal {
	return &Literal{Kind: KindTime, Value: value, Raw: rawInstant}
}

/*
NewDurationLiteral builds a duration Literal from a duration_factory
result and the raw ISO 8601 duration text it was produced from.
*/
func NewDurationLiteral(value interface{}, rawDuration string) *Literal {
	return &Literal{Kind: KindDuration, Value: value, Raw: rawDuration}
}

/*
Arithmetic is a binary arithmetic expression honouring standard
precedence: '*' and '/' bind tighter than '+' and '-',
left-associative.
*/
type Arithmetic struct {
	LHS, RHS Expression
	Op       ArithmeticOp
}

func (*Arithmetic) node()           {}
func (*Arithmetic) expressionNode() {}

/*
NewArithmetic builds an Arithmetic node.
*/
func NewArithmetic(lhs, rhs Expression, op ArithmeticOp) *Arithmetic {
	return &Arithmetic{LHS: lhs, RHS: rhs, Op: op}
}
