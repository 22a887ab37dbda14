// Package version parses normalized version numbers and version predicates
// used by package metadata documents.
//
// A normalized version is a dotted numeric release of at least two segments,
// optionally followed by a pre-release tag, a post-release and a development
// release:
//
//	version := N "." N ("." N)* [pre] [".post" N] [".dev" N]
//	pre     := ("a" | "b" | "c" | "rc") N ("." N)*
//	N       := "0" | [1-9][0-9]*
//
// "rc" is an alias for "c" and trailing zero release segments are not
// significant, so "1.0.0rc1" and "1.0c1" are the same version. Versions sort
// as
//
//	1.0a1 < 1.0b2 < 1.0c1 < 1.0.dev3 < 1.0 < 1.0.post1.dev2 < 1.0.post1
//
// A version predicate names a distribution and optionally constrains its
// version with comma separated clauses, with or without parentheses:
//
//	foo
//	foo (>=1.0, <2.0)
//	foo-bar 1.4
//
// A clause without an operator means "==".
package version
