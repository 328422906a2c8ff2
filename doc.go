package treebind

// Package treebind provides:
//
// - A format-agnostic tree value (Node: Scalar, Mapping, Sequence)
// - A fallible conversion protocol between trees and typed Go values (ToValue/FromValue)
// - Extraction algorithms for structs, arrays, enums, variants and constrained values
// - A stable error model (code, message, typed location path)
//
// Design policy:
// - Nodes are immutable; extraction never mutates its input.
// - Per-type code implements NodeDecoder/NodeEncoder; the core never special-cases user types.
// - Format adapters live in jsontree/ and yamltree/; the CLI lives in cmd/treebind.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	n, err := jsontree.FromJSONString(`{"w": "1.5", "h": "2"}`)
//	size, err := treebind.ToValue[geometry.Size](n).Unpack()
//
//	out := treebind.FromValue(size)
//	s, err := yamltree.ToYAMLString(out)
