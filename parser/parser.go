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
Package parser implements a recursive-descent, operator-precedence
parser which turns a CQL input string into a closed AST (package ast),
invoking caller-supplied factories to construct geometry, bounding box,
instant and duration literal values.
*/
package parser

import (
	"github.com/krotik/cql/ast"
	"github.com/krotik/cql/lexer"
	"github.com/krotik/cql/token"
)

/*
GeometryFactory turns the raw text of a WKT literal (e.g. "POINT(1
1.0)") into an opaque, caller-defined geometry value.
*/
type GeometryFactory func(wkt string) (interface{}, error)

/*
BBoxFactory turns four already-parsed coordinates into an opaque,
caller-defined bounding box value.
*/
type BBoxFactory func(minx, miny, maxx, maxy float64) (interface{}, error)

/*
TimeFactory turns the raw text of an ISO 8601 instant into an opaque,
caller-defined value.
*/
type TimeFactory func(text string) (interface{}, error)

/*
DurationFactory turns the raw text of an ISO 8601 duration into an
opaque, caller-defined value.
*/
type DurationFactory func(text string) (interface{}, error)

var comparisonOps = map[token.Kind]ast.ComparisonOp{
	token.EQ: ast.CmpEQ,
	token.NE: ast.CmpNE,
	token.LT: ast.CmpLT,
	token.LE: ast.CmpLE,
	token.GT: ast.CmpGT,
	token.GE: ast.CmpGE,
}

var spatialOps = map[token.Kind]ast.SpatialOp{
	token.INTERSECTS: ast.Intersects,
	token.DISJOINT:   ast.Disjoint,
	token.CONTAINS:   ast.Contains,
	token.WITHIN:     ast.Within,
	token.TOUCHES:    ast.Touches,
	token.CROSSES:    ast.Crosses,
	token.OVERLAPS:   ast.Overlaps,
	token.EQUALS:     ast.SEquals,
	token.RELATE:     ast.Relate,
	token.DWITHIN:    ast.DWithin,
	token.BEYOND:     ast.Beyond,
}

/*
parser holds the token stream and the caller's literal factories. It is
stateless beyond its own cursor, so a fresh parser is built per Parse
call and never shared.
*/
type parser struct {
	tokens []token.Token
	pos    int

	geometryFactory GeometryFactory
	bboxFactory     BBoxFactory
	timeFactory     TimeFactory
	durationFactory DurationFactory
}

/*
Parse lexes and parses a CQL input string, invoking the supplied
factories for any geometry, bounding box, instant or duration literal
encountered. The factories are required; a parse that touches none of
those literal kinds simply never calls them.
*/
func Parse(input string, geometry GeometryFactory, bbox BBoxFactory, t TimeFactory, d DurationFactory) (ast.Node, error) {
	tokens := lexer.LexToList(input)

	if last := tokens[len(tokens)-1]; last.Kind == token.ERROR {
		return nil, &LexicalError{Offset: last.Pos, Message: last.Val}
	}

	p := &parser{
		tokens:          tokens,
		geometryFactory: geometry,
		bboxFactory:     bbox,
		timeFactory:     t,
		durationFactory: d,
	}

	root, err := p.parseSearchCondition()
	if err != nil {
		return nil, err
	}

	if p.cur().Kind != token.EOF {
		return nil, &SyntaxError{
			Offset: p.cur().Pos, Message: "unexpected trailing input after a complete expression",
			Expected: []token.Kind{token.EOF},
		}
	}

	return root, nil
}

// ---------------------------------------------------------------------
// Cursor helpers
// ---------------------------------------------------------------------

func (p *parser) cur() token.Token {
	return p.tokens[p.pos]
}

func (p *parser) peek(n int) token.Token {
	idx := p.pos + n
	if idx >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[idx]
}

func (p *parser) advance() token.Token {
	t := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return t
}

func (p *parser) expect(k token.Kind) (token.Token, error) {
	if p.cur().Kind != k {
		return token.Token{}, p.syntaxError(p.cur(), "expected "+k.String(), k)
	}
	return p.advance(), nil
}

func (p *parser) syntaxError(tok token.Token, msg string, expected ...token.Kind) error {
	return &SyntaxError{Offset: tok.Pos, Message: msg, Expected: expected}
}

// ---------------------------------------------------------------------
// Boolean grammar
// ---------------------------------------------------------------------

func (p *parser) parseSearchCondition() (ast.Predicate, error) {
	lhs, err := p.parseBooleanTerm()
	if err != nil {
		return nil, err
	}
	for p.cur().Kind == token.OR {
		p.advance()
		rhs, err := p.parseBooleanTerm()
		if err != nil {
			return nil, err
		}
		lhs = ast.NewCombination(lhs, rhs, ast.OR)
	}
	return lhs, nil
}

func (p *parser) parseBooleanTerm() (ast.Predicate, error) {
	lhs, err := p.parseBooleanFactor()
	if err != nil {
		return nil, err
	}
	for p.cur().Kind == token.AND {
		p.advance()
		rhs, err := p.parseBooleanFactor()
		if err != nil {
			return nil, err
		}
		lhs = ast.NewCombination(lhs, rhs, ast.AND)
	}
	return lhs, nil
}

func (p *parser) parseBooleanFactor() (ast.Predicate, error) {
	if p.cur().Kind == token.NOT {
		p.advance()
		inner, err := p.parseBooleanPrimary()
		if err != nil {
			return nil, err
		}
		return ast.NewNot(inner), nil
	}
	return p.parseBooleanPrimary()
}

func (p *parser) parseBooleanPrimary() (ast.Predicate, error) {
	if p.cur().Kind == token.LPAREN {
		p.advance()
		inner, err := p.parseSearchCondition()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		return inner, nil
	}
	return p.parsePredicate()
}

// ---------------------------------------------------------------------
// Predicates
// ---------------------------------------------------------------------

func (p *parser) parsePredicate() (ast.Predicate, error) {
	if op, ok := spatialOps[p.cur().Kind]; ok {
		return p.parseSpatialPredicate(op)
	}
	if p.cur().Kind == token.BBOX {
		return p.parseBBoxPredicate()
	}

	lhs, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	switch p.cur().Kind {
	case token.EQ, token.NE, token.LT, token.LE, token.GT, token.GE:
		return p.parseComparison(lhs)
	case token.BETWEEN:
		return p.parseBetween(lhs, false)
	case token.NOT:
		return p.parseNegatedPredicate(lhs)
	case token.LIKE, token.ILIKE:
		return p.parseLike(lhs, false)
	case token.IN:
		return p.parseIn(lhs, false)
	case token.IS:
		return p.parseNull(lhs)
	case token.BEFORE, token.AFTER, token.DURING:
		return p.parseTemporal(lhs)
	}

	return nil, p.syntaxError(p.cur(), "expected a comparison, BETWEEN, LIKE, ILIKE, IN, IS NULL or a temporal operator")
}

func (p *parser) parseComparison(lhs ast.Expression) (ast.Predicate, error) {
	op := comparisonOps[p.cur().Kind]
	p.advance()
	rhs, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return ast.NewComparison(lhs, rhs, op), nil
}

func (p *parser) parseBetween(lhs ast.Expression, negated bool) (ast.Predicate, error) {
	p.advance() // BETWEEN
	low, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.AND); err != nil {
		return nil, err
	}
	high, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return ast.NewBetween(lhs, low, high, negated), nil
}

func (p *parser) parseLike(lhs ast.Expression, negated bool) (ast.Predicate, error) {
	caseSensitive := p.cur().Kind == token.LIKE
	p.advance() // LIKE or ILIKE
	pattern, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return ast.NewLike(lhs, pattern, caseSensitive, negated), nil
}

func (p *parser) parseIn(lhs ast.Expression, negated bool) (ast.Predicate, error) {
	p.advance() // IN
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}

	var choices []ast.Expression
	for {
		e, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		choices = append(choices, e)
		if p.cur().Kind != token.COMMA {
			break
		}
		p.advance()
	}

	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}

	return ast.NewIn(lhs, choices, negated), nil
}

func (p *parser) parseNull(lhs ast.Expression) (ast.Predicate, error) {
	p.advance() // IS
	negated := false
	if p.cur().Kind == token.NOT {
		negated = true
		p.advance()
	}
	if _, err := p.expect(token.NULL); err != nil {
		return nil, err
	}
	return ast.NewNull(lhs, negated), nil
}

func (p *parser) parseNegatedPredicate(lhs ast.Expression) (ast.Predicate, error) {
	p.advance() // NOT
	switch p.cur().Kind {
	case token.BETWEEN:
		return p.parseBetween(lhs, true)
	case token.LIKE, token.ILIKE:
		return p.parseLike(lhs, true)
	case token.IN:
		return p.parseIn(lhs, true)
	}
	return nil, p.syntaxError(p.cur(), "expected BETWEEN, LIKE, ILIKE or IN after NOT",
		token.BETWEEN, token.LIKE, token.ILIKE, token.IN)
}

func (p *parser) parseTemporal(lhs ast.Expression) (ast.Predicate, error) {
	var op ast.TemporalOp

	switch p.cur().Kind {
	case token.BEFORE:
		p.advance()
		if p.cur().Kind == token.OR && p.peek(1).Kind == token.DURING {
			p.advance()
			p.advance()
			op = ast.BeforeOrDuring
		} else {
			op = ast.Before
		}
	case token.DURING:
		p.advance()
		if p.cur().Kind == token.OR && p.peek(1).Kind == token.AFTER {
			p.advance()
			p.advance()
			op = ast.DuringOrAfter
		} else {
			op = ast.During
		}
	case token.AFTER:
		p.advance()
		op = ast.After
	}

	rhs, err := p.parseTemporalRHS()
	if err != nil {
		return nil, err
	}

	return &ast.Temporal{LHS: lhs, RHS: rhs, Op: op}, nil
}

func (p *parser) parseTemporalRHS() (ast.TemporalRHS, error) {
	if p.cur().Kind == token.DURATION && p.peek(1).Kind != token.SLASH {
		return ast.TemporalRHS{}, p.syntaxError(p.cur(), "expected a timestamp or a period", token.TIMESTAMP)
	}

	first, err := p.parseInstantOrDuration()
	if err != nil {
		return ast.TemporalRHS{}, err
	}

	if p.cur().Kind == token.SLASH {
		p.advance()
		second, err := p.parseInstantOrDuration()
		if err != nil {
			return ast.TemporalRHS{}, err
		}
		return ast.TemporalRHS{Start: first, End: second}, nil
	}

	return ast.TemporalRHS{Instant: first}, nil
}

func (p *parser) parseInstantOrDuration() (ast.Expression, error) {
	tok := p.cur()
	switch tok.Kind {
	case token.TIMESTAMP:
		p.advance()
		value, err := p.timeFactory(tok.Val)
		if err != nil {
			return nil, &LiteralError{Offset: tok.Pos, Cause: err}
		}
		return ast.NewTimeLiteral(value, tok.Val), nil
	case token.DURATION:
		p.advance()
		value, err := p.durationFactory(tok.Val)
		if err != nil {
			return nil, &LiteralError{Offset: tok.Pos, Cause: err}
		}
		return ast.NewDurationLiteral(value, tok.Val), nil
	}
	return nil, p.syntaxError(tok, "expected a timestamp or a duration", token.TIMESTAMP, token.DURATION)
}

// ---------------------------------------------------------------------
// Spatial and BBox predicates
// ---------------------------------------------------------------------

func (p *parser) parseAttributeArg() (ast.Expression, error) {
	tok, err := p.expect(token.IDENTIFIER)
	if err != nil {
		return nil, err
	}
	return ast.NewAttribute(tok.Val), nil
}

func (p *parser) parseSignedNumber() (float64, error) {
	neg := false
	if p.cur().Kind == token.MINUS {
		neg = true
		p.advance()
	}
	tok, err := p.expect(token.NUMBER)
	if err != nil {
		return 0, err
	}
	if neg {
		return -tok.Num, nil
	}
	return tok.Num, nil
}

func (p *parser) parseSpatialPredicate(op ast.SpatialOp) (ast.Predicate, error) {
	p.advance() // operator keyword
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}

	lhs, err := p.parseAttributeArg()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.COMMA); err != nil {
		return nil, err
	}

	geomTok, err := p.expect(token.GEOMETRY)
	if err != nil {
		return nil, err
	}
	geomVal, err := p.geometryFactory(geomTok.Val)
	if err != nil {
		return nil, &LiteralError{Offset: geomTok.Pos, Cause: err}
	}

	node := &ast.Spatial{LHS: lhs, RHS: ast.NewGeometryLiteral(geomVal, geomTok.Val), Op: op}

	switch op {
	case ast.Relate:
		if _, err := p.expect(token.COMMA); err != nil {
			return nil, err
		}
		patTok, err := p.expect(token.STRING)
		if err != nil {
			return nil, err
		}
		node.Pattern = ast.NewStringLiteral(patTok.Val)

	case ast.DWithin, ast.Beyond:
		if _, err := p.expect(token.COMMA); err != nil {
			return nil, err
		}
		distance, err := p.parseSignedNumber()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.COMMA); err != nil {
			return nil, err
		}
		units, err := p.parseUnits()
		if err != nil {
			return nil, err
		}
		node.Distance = &distance
		node.Units = units
	}

	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}

	return node, nil
}

func (p *parser) parseUnits() (string, error) {
	switch p.cur().Kind {
	case token.FEET:
		p.advance()
		return "feet", nil
	case token.METERS:
		p.advance()
		return "meters", nil
	case token.KILOMETERS:
		p.advance()
		return "kilometers", nil
	case token.STATUTE:
		p.advance()
		if _, err := p.expect(token.MILES); err != nil {
			return "", err
		}
		return "statute miles", nil
	case token.NAUTICAL:
		p.advance()
		if _, err := p.expect(token.MILES); err != nil {
			return "", err
		}
		return "nautical miles", nil
	}
	return "", p.syntaxError(p.cur(), "expected a distance unit",
		token.FEET, token.METERS, token.KILOMETERS, token.STATUTE, token.NAUTICAL)
}

func (p *parser) parseBBoxPredicate() (ast.Predicate, error) {
	p.advance() // BBOX
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}

	lhs, err := p.parseAttributeArg()
	if err != nil {
		return nil, err
	}

	var coords [4]float64
	for i := range coords {
		if _, err := p.expect(token.COMMA); err != nil {
			return nil, err
		}
		v, err := p.parseSignedNumber()
		if err != nil {
			return nil, err
		}
		coords[i] = v
	}

	var crs *string
	if p.cur().Kind == token.COMMA {
		p.advance()
		tok, err := p.expect(token.STRING)
		if err != nil {
			return nil, err
		}
		if tok.Val == "" {
			return nil, p.syntaxError(tok, "expected a non-empty CRS identifier")
		}
		s := tok.Val
		crs = &s
	}

	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}

	return ast.NewBBox(lhs, coords[0], coords[1], coords[2], coords[3], crs), nil
}

// ---------------------------------------------------------------------
// Arithmetic expressions
// ---------------------------------------------------------------------

func (p *parser) parseExpression() (ast.Expression, error) {
	lhs, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.cur().Kind == token.PLUS || p.cur().Kind == token.MINUS {
		op := ast.Add
		if p.cur().Kind == token.MINUS {
			op = ast.Sub
		}
		p.advance()
		rhs, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		lhs = ast.NewArithmetic(lhs, rhs, op)
	}
	return lhs, nil
}

func (p *parser) parseTerm() (ast.Expression, error) {
	lhs, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for p.cur().Kind == token.STAR || p.cur().Kind == token.SLASH {
		op := ast.Mul
		if p.cur().Kind == token.SLASH {
			op = ast.Div
		}
		p.advance()
		rhs, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		lhs = ast.NewArithmetic(lhs, rhs, op)
	}
	return lhs, nil
}

func (p *parser) parseFactor() (ast.Expression, error) {
	tok := p.cur()

	switch tok.Kind {
	case token.MINUS:
		p.advance()
		operand, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		return ast.NewArithmetic(ast.NewNumberLiteral(0), operand, ast.Sub), nil

	case token.LPAREN:
		p.advance()
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		return inner, nil

	case token.NUMBER:
		p.advance()
		return ast.NewNumberLiteral(tok.Num), nil

	case token.STRING:
		p.advance()
		return ast.NewStringLiteral(tok.Val), nil

	case token.IDENTIFIER:
		p.advance()
		return ast.NewAttribute(tok.Val), nil

	case token.ENVELOPE:
		p.advance()
		value, err := p.bboxFactory(tok.Nums[0], tok.Nums[1], tok.Nums[2], tok.Nums[3])
		if err != nil {
			return nil, &LiteralError{Offset: tok.Pos, Cause: err}
		}
		return ast.NewBBoxLiteral(value, tok.Val), nil
	}

	return nil, p.syntaxError(tok, "expected an expression",
		token.NUMBER, token.STRING, token.IDENTIFIER, token.LPAREN, token.MINUS, token.ENVELOPE)
}
