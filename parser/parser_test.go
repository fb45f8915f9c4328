/*
 * CQL
 *
 * Copyright 2026 The CQL Authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package parser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/krotik/cql/ast"
)

func identityGeometry(wkt string) (interface{}, error) { return wkt, nil }
func identityBBox(minx, miny, maxx, maxy float64) (interface{}, error) {
	return [4]float64{minx, miny, maxx, maxy}, nil
}
func identityTime(text string) (interface{}, error)     { return text, nil }
func identityDuration(text string) (interface{}, error) { return text, nil }

func mustParse(t *testing.T, input string) ast.Node {
	t.Helper()
	n, err := Parse(input, identityGeometry, identityBBox, identityTime, identityDuration)
	if err != nil {
		t.Fatalf("Parse(%q) returned unexpected error: %v", input, err)
	}
	return n
}

func TestPrecedenceLaw(t *testing.T) {
	got := mustParse(t, "a = b + c * d")
	want := ast.NewComparison(
		ast.NewAttribute("a"),
		ast.NewArithmetic(
			ast.NewAttribute("b"),
			ast.NewArithmetic(ast.NewAttribute("c"), ast.NewAttribute("d"), ast.Mul),
			ast.Add,
		),
		ast.CmpEQ,
	)
	assert.True(t, ast.Equal(got, want), "got %s, want %s", ast.Render(got), ast.Render(want))
}

func TestAssociativityLaw(t *testing.T) {
	got := mustParse(t, "a = 1 AND b = 2 AND c = 3")

	isAttr := func(n ast.Node, name string) bool {
		c, ok := n.(*ast.Comparison)
		if !ok {
			return false
		}
		a, ok := c.LHS.(*ast.Attribute)
		return ok && a.Name == name
	}

	comb, ok := got.(*ast.Combination)
	if !ok || comb.Op != ast.AND {
		t.Fatalf("expected a top-level AND Combination, got %T", got)
	}
	inner, ok := comb.LHS.(*ast.Combination)
	if !ok || inner.Op != ast.AND {
		t.Fatalf("expected left-associative nesting, got %T as LHS", comb.LHS)
	}
	if !isAttr(inner.LHS, "a") || !isAttr(inner.RHS, "b") || !isAttr(comb.RHS, "c") {
		t.Errorf("unexpected operand shape: %s", ast.Render(got))
	}
}

func TestNegationLawNot(t *testing.T) {
	got := mustParse(t, "NOT (x = 1)")
	want := ast.NewNot(ast.NewComparison(ast.NewAttribute("x"), ast.NewNumberLiteral(1), ast.CmpEQ))
	assert.True(t, ast.Equal(got, want))
}

func TestNegationLawNotBetween(t *testing.T) {
	got := mustParse(t, "a NOT BETWEEN 1 AND 2")
	want := ast.NewBetween(ast.NewAttribute("a"), ast.NewNumberLiteral(1), ast.NewNumberLiteral(2), true)
	assert.True(t, ast.Equal(got, want))
}

func TestRoundTripForFactorylessInput(t *testing.T) {
	inputs := []string{
		`attr = "A"`,
		"attr BETWEEN 2 AND 5",
		`attr NOT IN ("A", 'B')`,
		"attr IS NOT NULL",
		"attr = 3 + 5 * 2",
	}
	for _, input := range inputs {
		first := mustParse(t, input)
		rendered := ast.Render(first)
		second := mustParse(t, rendered)
		assert.True(t, ast.Equal(first, second),
			"round-trip mismatch for %q: rendered as %q, reparsed to %s, want %s",
			input, rendered, ast.Render(second), ast.Render(first))
	}
}

func TestConcreteScenarios(t *testing.T) {
	tests := []struct {
		input string
		want  ast.Node
	}{
		{
			`attr = "A"`,
			ast.NewComparison(ast.NewAttribute("attr"), ast.NewStringLiteral("A"), ast.CmpEQ),
		},
		{
			"attr BETWEEN 2 AND 5",
			ast.NewBetween(ast.NewAttribute("attr"), ast.NewNumberLiteral(2), ast.NewNumberLiteral(5), false),
		},
		{
			`attr NOT IN ("A", 'B')`,
			ast.NewIn(ast.NewAttribute("attr"), []ast.Expression{ast.NewStringLiteral("A"), ast.NewStringLiteral("B")}, true),
		},
		{
			"attr IS NOT NULL",
			ast.NewNull(ast.NewAttribute("attr"), true),
		},
		{
			"attr = 3 + 5 * 2",
			ast.NewComparison(
				ast.NewAttribute("attr"),
				ast.NewArithmetic(ast.NewNumberLiteral(3), ast.NewArithmetic(ast.NewNumberLiteral(5), ast.NewNumberLiteral(2), ast.Mul), ast.Add),
				ast.CmpEQ,
			),
		},
	}

	for _, test := range tests {
		got := mustParse(t, test.input)
		assert.True(t, ast.Equal(got, test.want),
			"Parse(%q) = %s, want %s", test.input, ast.Render(got), ast.Render(test.want))
	}
}

func TestSpatialScenarios(t *testing.T) {
	got := mustParse(t, "INTERSECTS(geometry, POINT(1 1.0))")
	sp, ok := got.(*ast.Spatial)
	if !ok {
		t.Fatalf("expected *ast.Spatial, got %T", got)
	}
	if sp.Op != ast.Intersects {
		t.Errorf("Op = %v, want Intersects", sp.Op)
	}
	attr, ok := sp.LHS.(*ast.Attribute)
	if !ok || attr.Name != "geometry" {
		t.Errorf("LHS = %v, want Attribute(geometry)", sp.LHS)
	}
	lit, ok := sp.RHS.(*ast.Literal)
	if !ok || lit.Kind != ast.KindGeometry || lit.Raw != "POINT(1 1.0)" {
		t.Errorf("RHS = %v, want a geometry literal POINT(1 1.0)", sp.RHS)
	}

	got = mustParse(t, "DWITHIN(geometry, POINT(0 0), 10, meters)")
	dw, ok := got.(*ast.Spatial)
	if !ok || dw.Op != ast.DWithin || dw.Distance == nil || *dw.Distance != 10 || dw.Units != "meters" {
		t.Errorf("unexpected DWITHIN parse result: %v", got)
	}
}

func TestBBoxScenario(t *testing.T) {
	got := mustParse(t, `BBOX(geometry, 0, 0, 1, 1, "EPSG:4326")`)
	bb, ok := got.(*ast.BBox)
	if !ok {
		t.Fatalf("expected *ast.BBox, got %T", got)
	}
	if bb.MinX != 0 || bb.MinY != 0 || bb.MaxX != 1 || bb.MaxY != 1 {
		t.Errorf("unexpected coordinates: %+v", bb)
	}
	if bb.CRS == nil || *bb.CRS != "EPSG:4326" {
		t.Errorf("CRS = %v, want EPSG:4326", bb.CRS)
	}
}

func TestLikeScenarios(t *testing.T) {
	got := mustParse(t, `attr LIKE "A%"`)
	lk, ok := got.(*ast.Like)
	if !ok || !lk.CaseSensitive || lk.Negated {
		t.Fatalf("expected a case-sensitive, non-negated Like, got %v", got)
	}

	got = mustParse(t, `attr NOT ILIKE "a%"`)
	lk, ok = got.(*ast.Like)
	if !ok || lk.CaseSensitive || !lk.Negated {
		t.Fatalf("expected a case-insensitive, negated Like, got %v", got)
	}
}

func TestRelateScenario(t *testing.T) {
	got := mustParse(t, `RELATE(geometry, POLYGON((0 0, 1 0, 1 1, 0 0)), "T*T***T**")`)
	sp, ok := got.(*ast.Spatial)
	if !ok || sp.Op != ast.Relate {
		t.Fatalf("expected *ast.Spatial(Relate), got %v", got)
	}
	pat, ok := sp.Pattern.(*ast.Literal)
	if !ok || pat.Kind != ast.KindString || pat.Value.(string) != "T*T***T**" {
		t.Errorf("Pattern = %v, want string literal \"T*T***T**\"", sp.Pattern)
	}
}

func TestBeyondWithUnitScenarios(t *testing.T) {
	tests := []struct {
		input string
		units string
	}{
		{"BEYOND(geometry, POINT(0 0), 5, feet)", "feet"},
		{"BEYOND(geometry, POINT(0 0), 5, kilometers)", "kilometers"},
		{"BEYOND(geometry, POINT(0 0), 5, statute miles)", "statute miles"},
		{"BEYOND(geometry, POINT(0 0), 5, nautical miles)", "nautical miles"},
	}
	for _, test := range tests {
		got := mustParse(t, test.input)
		sp, ok := got.(*ast.Spatial)
		if !ok || sp.Op != ast.Beyond || sp.Distance == nil || *sp.Distance != 5 || sp.Units != test.units {
			t.Errorf("Parse(%q) = %v, want Beyond with units %q", test.input, got, test.units)
		}
	}
}

func TestDuringOrAfterScenario(t *testing.T) {
	got := mustParse(t, "datetimeAttribute DURING OR AFTER 2000-01-01T00:00:00Z / PT4S")
	tmp, ok := got.(*ast.Temporal)
	if !ok || tmp.Op != ast.DuringOrAfter {
		t.Fatalf("expected *ast.Temporal(DuringOrAfter), got %v", got)
	}
	if tmp.RHS.Instant != nil {
		t.Error("expected a period RHS, not a single instant")
	}
}

func TestEnvelopeLiteralScenario(t *testing.T) {
	got := mustParse(t, "BBOX(geometry, 0, 0, 1, 1) AND attr = ENVELOPE(0 0 1 1)")
	comb, ok := got.(*ast.Combination)
	if !ok || comb.Op != ast.AND {
		t.Fatalf("expected a top-level AND Combination, got %T", got)
	}
	cmp, ok := comb.RHS.(*ast.Comparison)
	if !ok {
		t.Fatalf("expected RHS *ast.Comparison, got %T", comb.RHS)
	}
	lit, ok := cmp.RHS.(*ast.Literal)
	if !ok || lit.Kind != ast.KindBBox || lit.Raw != "ENVELOPE(0 0 1 1)" {
		t.Errorf("RHS = %v, want a bbox literal ENVELOPE(0 0 1 1)", cmp.RHS)
	}
	if bbox, ok := lit.Value.([4]float64); !ok || bbox != [4]float64{0, 0, 1, 1} {
		t.Errorf("Value = %v, want [4]float64{0, 0, 1, 1}", lit.Value)
	}
}

func TestEnvelopeLiteralFactoryFailure(t *testing.T) {
	boom := errors.New("rejected")
	failingBBox := func(_, _, _, _ float64) (interface{}, error) { return nil, boom }

	_, err := Parse("attr = ENVELOPE(0 0 1 1)", identityGeometry, failingBBox, identityTime, identityDuration)

	var litErr *LiteralError
	if !errors.As(err, &litErr) {
		t.Fatalf("expected a LiteralError, got %v", err)
	}
	if !errors.Is(litErr, boom) {
		t.Errorf("LiteralError does not unwrap to the factory's error")
	}
}

func TestTemporalPeriodScenario(t *testing.T) {
	got := mustParse(t, "datetimeAttribute BEFORE OR DURING 2000-01-01T00:00:00Z / PT4S")
	tmp, ok := got.(*ast.Temporal)
	if !ok {
		t.Fatalf("expected *ast.Temporal, got %T", got)
	}
	if tmp.Op != ast.BeforeOrDuring {
		t.Errorf("Op = %v, want BeforeOrDuring", tmp.Op)
	}
	if tmp.RHS.Instant != nil {
		t.Error("expected a period RHS, not a single instant")
	}
	start, ok := tmp.RHS.Start.(*ast.Literal)
	if !ok || start.Kind != ast.KindTime {
		t.Errorf("Start = %v, want a time literal", tmp.RHS.Start)
	}
	end, ok := tmp.RHS.End.(*ast.Literal)
	if !ok || end.Kind != ast.KindDuration {
		t.Errorf("End = %v, want a duration literal", tmp.RHS.End)
	}
}

func TestBoundaryEmptyInput(t *testing.T) {
	_, err := Parse("", identityGeometry, identityBBox, identityTime, identityDuration)
	var synErr *SyntaxError
	if !errors.As(err, &synErr) || synErr.Offset != 0 {
		t.Errorf("Parse(\"\") error = %v, want a SyntaxError at offset 0", err)
	}
}

func TestBoundaryUnterminatedString(t *testing.T) {
	_, err := Parse(`attr = "A`, identityGeometry, identityBBox, identityTime, identityDuration)
	var lexErr *LexicalError
	if !errors.As(err, &lexErr) {
		t.Errorf("Parse(unterminated string) error = %v, want a LexicalError", err)
	}
}

func TestBoundaryTrailingGarbage(t *testing.T) {
	_, err := Parse("attr = 1 )", identityGeometry, identityBBox, identityTime, identityDuration)
	var synErr *SyntaxError
	if !errors.As(err, &synErr) {
		t.Errorf("Parse(trailing garbage) error = %v, want a SyntaxError", err)
	}
}

func TestBoundaryNotWithoutPredicate(t *testing.T) {
	_, err := Parse("NOT", identityGeometry, identityBBox, identityTime, identityDuration)
	var synErr *SyntaxError
	if !errors.As(err, &synErr) {
		t.Errorf("Parse(\"NOT\") error = %v, want a SyntaxError", err)
	}
}

func TestErrorOffsetsAreWithinBounds(t *testing.T) {
	inputs := []string{"", "attr = ", "attr = 1 )", "NOT", `"unterminated`}
	for _, input := range inputs {
		_, err := Parse(input, identityGeometry, identityBBox, identityTime, identityDuration)
		if err == nil {
			t.Fatalf("Parse(%q) unexpectedly succeeded", input)
		}

		var offset int
		switch e := err.(type) {
		case *SyntaxError:
			offset = e.Offset
		case *LexicalError:
			offset = e.Offset
		case *LiteralError:
			offset = e.Offset
		default:
			t.Fatalf("Parse(%q) returned unexpected error type %T", input, err)
		}

		if offset < 0 || offset > len(input) {
			t.Errorf("Parse(%q) error offset %d out of bounds [0, %d]", input, offset, len(input))
		}
	}
}

func TestLiteralErrorWrapsFactoryFailure(t *testing.T) {
	boom := errors.New("rejected")
	failingGeometry := func(wkt string) (interface{}, error) { return nil, boom }

	_, err := Parse("INTERSECTS(geometry, POINT(1 1))", failingGeometry, identityBBox, identityTime, identityDuration)

	var litErr *LiteralError
	if !errors.As(err, &litErr) {
		t.Fatalf("expected a LiteralError, got %v", err)
	}
	if !errors.Is(litErr, boom) {
		t.Errorf("LiteralError does not unwrap to the factory's error")
	}
}
