// Package expand implements a shell-style string-expansion engine
// supporting two dialects — POSIX ($ / \) and symmetric (% / ^) — with
// parameter-expansion operators, glob-pattern substring/substitution,
// escape processing, quote handling, and optional subprocess command
// substitution gated behind explicit safety flags.
//
// The entry point is Expand, which detects the dialect of a line (see
// DetectDialect), unquotes and optionally strips a trailing line
// comment, then recursively expands variable and command references.
// Expand never touches process-global state: the environment is always
// the caller-supplied vars map, and subprocess execution is always
// mediated by an injectable SubprocessRunner.
package expand
