// Package query holds the engine-neutral query description compiled by the
// dialect builders: the AST types, their decoding from JSON/YAML/TOML
// documents and their validation.
//
// A Query is built per request, validated once and compiled once. Nothing in
// this package mutates a Query after decoding.
package query
