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
	"fmt"
	"strings"

	"github.com/krotik/cql/token"
)

/*
LexicalError is returned when the lexer encounters an unrecognised
character or an unterminated string, geometry or envelope literal.
*/
type LexicalError struct {
	Offset  int
	Message string
}

func (e *LexicalError) Error() string {
	return fmt.Sprintf("lexical error at offset %d: %s", e.Offset, e.Message)
}

/*
SyntaxError is returned when the current token does not match any
production. Expected lists the token kinds that would have been
accepted at that point; it may be empty when no single kind describes
the expectation (e.g. the operator expected after a predicate's
left-hand side).
*/
type SyntaxError struct {
	Offset   int
	Message  string
	Expected []token.Kind
}

func (e *SyntaxError) Error() string {
	if len(e.Expected) == 0 {
		return fmt.Sprintf("syntax error at offset %d: %s", e.Offset, e.Message)
	}
	names := make([]string, len(e.Expected))
	for i, k := range e.Expected {
		names[i] = k.String()
	}
	return fmt.Sprintf("syntax error at offset %d: %s (expected %s)",
		e.Offset, e.Message, strings.Join(names, ", "))
}

/*
LiteralError is returned when a geometry, bbox, time or duration factory
rejects a literal. Cause is the error the factory returned.
*/
type LiteralError struct {
	Offset int
	Cause  error
}

func (e *LiteralError) Error() string {
	return fmt.Sprintf("literal error at offset %d: %s", e.Offset, e.Cause)
}

func (e *LiteralError) Unwrap() error {
	return e.Cause
}
