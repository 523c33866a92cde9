// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package mvt

import "unsafe"

// unsafeString aliases b as a string without copying. The caller must
// not mutate b for as long as the returned string is reachable; every
// caller here holds b from a reader view over an immutable,
// caller-owned tile buffer.
func unsafeString(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(&b[0], len(b))
}
