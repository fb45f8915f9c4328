/*
 * CQL
 *
 * Copyright 2026 The CQL Authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package ast

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"github.com/krotik/common/errorutil"
)

/*
Map of render templates keyed by node variant. Each template is handed
a map of already-rendered child strings and operator words, keyed by
role (l, r, op, neg, ...), the same "render children first, then
execute the parent's template against that map" structure used by
EliasDB's own AST pretty printer - adapted here from
EQL's keyword-ish surface syntax to a fully bracketed form, so that
every node's rendering is unambiguous without relying on the reader
knowing CQL's operator precedence.
*/
var renderTemplates = map[string]*template.Template{
	"Not":         template.Must(template.New("Not").Parse("NOT ({{.p}})")),
	"Combination": template.Must(template.New("Combination").Parse("({{.l}} {{.op}} {{.r}})")),
	"Comparison":  template.Must(template.New("Comparison").Parse("({{.l}} {{.op}} {{.r}})")),
	"Between":     template.Must(template.New("Between").Parse("({{.l}} {{.neg}}BETWEEN {{.low}} AND {{.high}})")),
	"Like":        template.Must(template.New("Like").Parse("({{.l}} {{.neg}}{{.op}} {{.pattern}})")),
	"In":          template.Must(template.New("In").Parse("({{.l}} {{.neg}}IN ({{.choices}}))")),
	"Null":        template.Must(template.New("Null").Parse("({{.l}} IS {{.neg}}NULL)")),
	"Temporal":    template.Must(template.New("Temporal").Parse("({{.l}} {{.op}} {{.rhs}})")),
	"Spatial":     template.Must(template.New("Spatial").Parse("{{.op}}({{.l}}, {{.r}}{{.extra}})")),
	"BBox":        template.Must(template.New("BBox").Parse("BBOX({{.l}}, {{.minx}}, {{.miny}}, {{.maxx}}, {{.maxy}}{{.crs}})")),
	"Arithmetic":  template.Must(template.New("Arithmetic").Parse("({{.l}} {{.op}} {{.r}})")),
	"Attribute":   template.Must(template.New("Attribute").Parse("{{.name}}")),
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func quoteString(s string) string {
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		return fmt.Sprintf("\"%s\"", s)
	}
	return fmt.Sprintf("'%s'", strings.ReplaceAll(s, "'", "''"))
}

func negWord(neg bool) string {
	if neg {
		return "NOT "
	}
	return ""
}

func execute(name string, data map[string]string) string {
	var buf bytes.Buffer
	temp, ok := renderTemplates[name]
	errorutil.AssertTrue(ok, fmt.Sprintf("ast: no render template for %s", name))
	errorutil.AssertOk(temp.Execute(&buf, data))
	return buf.String()
}

/*
Render produces a deterministic, fully bracketed textual form of n.
Two structurally equal trees (per Equal) always render identically, and
distinct trees never collide on the same rendering - parentheses are
emitted unconditionally around every Combination, Comparison, Between,
Temporal and Arithmetic rather than only where operator precedence
requires them.
*/
func Render(n Node) string {
	switch v := n.(type) {

	case *Not:
		return execute("Not", map[string]string{"p": Render(v.Predicate)})

	case *Combination:
		return execute("Combination", map[string]string{
			"l": Render(v.LHS), "r": Render(v.RHS), "op": string(v.Op),
		})

	case *Comparison:
		return execute("Comparison", map[string]string{
			"l": Render(v.LHS), "r": Render(v.RHS), "op": string(v.Op),
		})

	case *Between:
		return execute("Between", map[string]string{
			"l": Render(v.LHS), "low": Render(v.Low), "high": Render(v.High),
			"neg": negWord(v.Negated),
		})

	case *Like:
		op := "LIKE"
		if !v.CaseSensitive {
			op = "ILIKE"
		}
		return execute("Like", map[string]string{
			"l": Render(v.LHS), "pattern": Render(v.Pattern),
			"op": op, "neg": negWord(v.Negated),
		})

	case *In:
		parts := make([]string, len(v.Choices))
		for i, c := range v.Choices {
			parts[i] = Render(c)
		}
		return execute("In", map[string]string{
			"l": Render(v.LHS), "choices": strings.Join(parts, ", "),
			"neg": negWord(v.Negated),
		})

	case *Null:
		return execute("Null", map[string]string{"l": Render(v.LHS), "neg": negWord(v.Negated)})

	case *Temporal:
		var rhs string
		if v.RHS.Instant != nil {
			rhs = Render(v.RHS.Instant)
		} else {
			rhs = fmt.Sprintf("%s/%s", Render(v.RHS.Start), Render(v.RHS.End))
		}
		return execute("Temporal", map[string]string{
			"l": Render(v.LHS), "op": string(v.Op), "rhs": rhs,
		})

	case *Spatial:
		extra := ""
		if v.Pattern != nil {
			extra = ", " + Render(v.Pattern)
		} else if v.Distance != nil {
			extra = fmt.Sprintf(", %s, %s", formatNumber(*v.Distance), v.Units)
		}
		return execute("Spatial", map[string]string{
			"l": Render(v.LHS), "r": Render(v.RHS), "op": string(v.Op), "extra": extra,
		})

	case *BBox:
		crs := ""
		if v.CRS != nil {
			crs = ", " + quoteString(*v.CRS)
		}
		return execute("BBox", map[string]string{
			"l": Render(v.LHS),
			"minx": formatNumber(v.MinX), "miny": formatNumber(v.MinY),
			"maxx": formatNumber(v.MaxX), "maxy": formatNumber(v.MaxY),
			"crs": crs,
		})

	case *Attribute:
		return execute("Attribute", map[string]string{"name": v.Name})

	case *Literal:
		switch v.Kind {
		case KindNumber:
			return formatNumber(v.Value.(float64))
		case KindString:
			return quoteString(v.Value.(string))
		default:
			return v.Raw
		}

	case *Arithmetic:
		return execute("Arithmetic", map[string]string{
			"l": Render(v.LHS), "r": Render(v.RHS), "op": string(v.Op),
		})
	}

	panic(fmt.Sprintf("ast: Render: unhandled node type %T", n))
}
