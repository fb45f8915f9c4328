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
Package cql contains the main API for the CQL front end.

Example CQL filter:

	attr = "A" AND INTERSECTS(geometry, POINT(1 1.0))

Parse turns such a string into an ast.Node. Geometry, bounding box,
instant and duration literals are constructed by factories the caller
supplies, so this package itself never depends on a geospatial or
calendar library.
*/
package cql

import (
	"github.com/krotik/cql/ast"
	"github.com/krotik/cql/parser"
)

/*
GeometryFactory turns the raw text of a WKT literal into an opaque,
caller-defined geometry value.
*/
type GeometryFactory = parser.GeometryFactory

/*
BBoxFactory turns four already-parsed coordinates into an opaque,
caller-defined bounding box value.
*/
type BBoxFactory = parser.BBoxFactory

/*
TimeFactory turns the raw text of an ISO 8601 instant into an opaque,
caller-defined value.
*/
type TimeFactory = parser.TimeFactory

/*
DurationFactory turns the raw text of an ISO 8601 duration into an
opaque, caller-defined value.
*/
type DurationFactory = parser.DurationFactory

/*
LexicalError is returned for an unrecognised character or an
unterminated string, geometry or envelope literal.
*/
type LexicalError = parser.LexicalError

/*
SyntaxError is returned when the token stream does not match any
production.
*/
type SyntaxError = parser.SyntaxError

/*
LiteralError is returned when a factory rejects a literal.
*/
type LiteralError = parser.LiteralError

/*
Parse parses a CQL filter expression into an AST. geometry, bbox, t and
d are invoked at most once per matching literal in the input; if the
input contains no literal of a given kind, the corresponding factory is
never called, but all four parameters must still be supplied.
*/
func Parse(input string, geometry GeometryFactory, bbox BBoxFactory, t TimeFactory, d DurationFactory) (ast.Node, error) {
	return parser.Parse(input, geometry, bbox, t, d)
}
