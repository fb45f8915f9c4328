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

import "reflect"

/*
Equal reports whether a and b are structurally identical trees: same
variant at every position, same operators, same literal kinds and
values, same operand order. A nil Node is only equal to another nil
Node.
*/
func Equal(a, b Node) bool {
	return reflect.DeepEqual(a, b)
}
