// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package mvterr defines the error kinds shared by every package in
// this module: the wire-format reader, the geometry decoder, the
// builders, and the key/value indexes all report failures through the
// same small, kind-tagged error type so callers can discriminate
// failure modes with errors.As instead of string matching.
package mvterr

import "fmt"

// Kind discriminates the class of failure reported by an *Error.
type Kind int

const (
	// Format indicates a structural violation of the wire format:
	// an unknown field, a missing required field, a duplicate
	// scalar in a value record, a misaligned tag list, or a
	// malformed length-delimited payload.
	Format Kind = iota
	// Version indicates a layer declared a version outside {1, 2}.
	Version
	// Geometry indicates a command-stream violation: an unexpected
	// command, truncated parameters, trailing data, a ClosePath
	// with the wrong count, or a strict-mode constraint.
	Geometry
	// Type indicates a property value or geometry was accessed as
	// the wrong scalar or geometry type.
	Type
	// OutOfRange indicates a tag index beyond a dictionary's size.
	OutOfRange
	// Assert indicates a builder precondition was violated by the
	// caller; this is a programmer error, not a runtime format
	// error, and is reported by panicking with an *Error of this
	// kind.
	Assert
)

func (k Kind) String() string {
	switch k {
	case Format:
		return "FormatError"
	case Version:
		return "VersionError"
	case Geometry:
		return "GeometryError"
	case Type:
		return "TypeError"
	case OutOfRange:
		return "OutOfRange"
	case Assert:
		return "AssertError"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error is the error type returned (or, for Kind == Assert, panicked
// with) by every package in this module.
type Error struct {
	Kind    Kind
	Msg     string
	Version uint32 // populated only when Kind == Version
}

func (e *Error) Error() string {
	if e.Kind == Version {
		return fmt.Sprintf("mvt: %s: unsupported layer version %d", e.Kind, e.Version)
	}
	return fmt.Sprintf("mvt: %s: %s", e.Kind, e.Msg)
}

// Formatf builds a Format-kind error.
func Formatf(format string, a ...any) *Error {
	return &Error{Kind: Format, Msg: fmt.Sprintf(format, a...)}
}

// Versionf builds a Version-kind error carrying the observed version.
func Versionf(v uint32) *Error {
	return &Error{Kind: Version, Version: v}
}

// Geometryf builds a Geometry-kind error.
func Geometryf(format string, a ...any) *Error {
	return &Error{Kind: Geometry, Msg: fmt.Sprintf(format, a...)}
}

// Typef builds a Type-kind error.
func Typef(format string, a ...any) *Error {
	return &Error{Kind: Type, Msg: fmt.Sprintf(format, a...)}
}

// OutOfRangef builds an OutOfRange-kind error for index into a
// dictionary of the given size.
func OutOfRangef(index, size int) *Error {
	return &Error{Kind: OutOfRange, Msg: fmt.Sprintf("index %d not in range [0,%d)", index, size)}
}

// Assertf builds an Assert-kind error. Callers in this module panic
// with the result; it is exported so tests and recover() sites can
// type-assert on *Error and check Kind == Assert.
func Assertf(format string, a ...any) *Error {
	return &Error{Kind: Assert, Msg: fmt.Sprintf(format, a...)}
}

// PanicAssertf panics with an Assert-kind error. This is the
// module's equivalent of vtzero's assert()-and-terminate builder
// preconditions, translated into Go's panic/recover idiom: a
// precondition violation is a programmer error, and it is reported
// immediately rather than threaded through every builder method's
// return value.
func PanicAssertf(format string, a ...any) {
	panic(Assertf(format, a...))
}
