// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package build

import "github.com/gogama/vectortile/mvterr"

// state is a feature builder's position in its lifecycle: Init ->
// HasID -> Geometry -> Properties -> Committed. HasID is optional;
// Geometry may be entered directly from Init.
type state uint8

const (
	stateInit state = iota
	stateHasID
	stateGeometry
	stateProperties
	stateCommitted
)

func (s state) String() string {
	switch s {
	case stateInit:
		return "Init"
	case stateHasID:
		return "HasID"
	case stateGeometry:
		return "Geometry"
	case stateProperties:
		return "Properties"
	case stateCommitted:
		return "Committed"
	default:
		return "Invalid"
	}
}

// stateful tracks a feature builder's current state and enforces legal
// transitions. Unlike a reader's malformed-input errors, an illegal
// call sequence here is a programmer error in the caller, so require
// panics with a mvterr Assert-kind error rather than returning one.
type stateful struct {
	state state
}

// require panics unless the current state is one of ok.
func (s *stateful) require(op string, ok ...state) {
	for _, want := range ok {
		if s.state == want {
			return
		}
	}
	mvterr.PanicAssertf("build: %s: illegal in state %s", op, s.state)
}

// advance transitions to the given state, after checking the current
// state is one of ok via require.
func (s *stateful) advance(op string, to state, ok ...state) {
	s.require(op, ok...)
	s.state = to
}
