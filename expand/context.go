// Copyright (c) 2024, The yash-go Authors

// Package expand implements the seven-phase word expansion pipeline,
// the central algorithm of this module. It turns a parsed ast.Word
// into the final argument vector a process receives.
//
// Context carries the dispatcher callbacks and a nil-able OnError
// hook; the phase breakdown and the splittability-map representation
// (wordbuf.Fragment, which exposes the map as a first-class datum)
// are this package's own.
package expand

import (
	"context"
	"errors"
	"regexp"

	"github.com/vigoux/yash/expand/ast"
	"github.com/vigoux/yash/pattern"
	"github.com/vigoux/yash/sherr"
	"github.com/vigoux/yash/vars"
)

// TildeMode selects how aggressively Phase 1 treats a leading "~".
type TildeMode uint8

const (
	// TildeNone disables tilde expansion entirely.
	TildeNone TildeMode = iota
	// TildeSingle expands a single leading "~..." segment (used by
	// single-string expansion contexts).
	TildeSingle
	// TildeAll expands every "~..." segment, including after ':' inside
	// an assignment's value.
	TildeAll
)

// CommandSubstituter executes a deferred command tree and returns its
// captured, newline-trimmed standard output. This is the hook the
// dispatcher supplies; the core never interprets command.CommandTree
// itself, which stays out of scope and is named only by the
// interfaces the core needs.
type CommandSubstituter func(ctx context.Context, tree ast.CommandTree) (string, error)

// ArithEvaluator evaluates a deferred arithmetic expression. The
// core leaves arithmetic evaluation undictated; the default in
// DefaultArithEvaluator returns ErrArithNotImplemented.
type ArithEvaluator func(ctx context.Context, tree ast.ArithTree) (int64, error)

// ErrArithNotImplemented is returned by DefaultArithEvaluator.
// Arithmetic substitution must fail loudly rather than silently
// succeed when no evaluator is wired in.
var ErrArithNotImplemented = errors.New("expand: arithmetic substitution is not implemented")

// DefaultArithEvaluator is the zero-value ArithEvaluator behavior.
func DefaultArithEvaluator(context.Context, ast.ArithTree) (int64, error) {
	return 0, ErrArithNotImplemented
}

// GlobFunc performs Phase 7 pathname expansion: given an escaped
// pattern (glob metacharacters of interest left bare, everything else
// backslash-escaped) and the current directory, it returns matching
// paths. Consumed as a library rather than implemented inline, since
// glob matching is excluded from this package's scope.
type GlobFunc func(pattern, dir string) ([]string, error)

// Options mirrors the shell-option/environment-variable surface the
// expander reads.
type Options struct {
	POSIX       bool // POSIXLY_CORRECT
	NoGlob      bool // "noglob" shell option
	BraceExpand bool // "braceexpand" shell option (default true)
	GlobStar    bool // "globstar" option; not read by this package, so "**" handling is up to GlobFunc
}

// Context holds the state the expander needs across a single
// expand_line/expand_single call: the variable store, the dispatcher
// callbacks, the options, and the running per-word error count.
type Context struct {
	Vars vars.Reader

	Subst  CommandSubstituter
	Arith  ArithEvaluator
	Glob   GlobFunc
	Assign func(name, value string) error // backs AssignDefault

	// HomeLookup resolves "~login"; Home is the current user's own home
	// directory, substituted for a bare "~". Both are dispatcher-
	// supplied; os/user lookups stay out of the core.
	HomeLookup HomeDirLookup
	Home       string

	// PWD and OldPWD back "~+" and "~-" respectively (read from the
	// $PWD/$OLDPWD variables by the caller).
	PWD    string
	OldPWD string

	Opts Options

	// OnError, if non-nil, is called to report a per-word expansion
	// error (typically to print a diagnostic to stderr); this is the
	// hook that keeps one bad word from aborting the rest. The word
	// itself is always dropped and the error counter always
	// incremented regardless of whether a hook is set.
	OnError func(error)

	errCount int
}

func (c *Context) err(err error) {
	c.errCount++
	if c.OnError != nil {
		c.OnError(err)
	}
}

// ErrorCount reports how many per-word expansion errors have occurred
// since the Context was created: the overall builtin returns failure
// iff the counter is non-zero at completion.
func (c *Context) ErrorCount() int { return c.errCount }

func (c *Context) ifsRune(r rune) bool {
	for _, r2 := range c.ifs() {
		if r == r2 {
			return true
		}
	}
	return false
}

func (c *Context) ifs() string {
	if c.Vars == nil {
		return " \t\n"
	}
	return c.Vars.IFS()
}

func (c *Context) ifsFirst() string {
	ifs := c.ifs()
	if ifs == "" {
		return ""
	}
	return string([]rune(ifs)[0])
}

func (c *Context) substitute(ctx context.Context, tree ast.CommandTree) (string, error) {
	if c.Subst == nil {
		return "", errors.New("expand: no CommandSubstituter configured")
	}
	return c.Subst(ctx, tree)
}

func (c *Context) evalArith(ctx context.Context, tree ast.ArithTree) (int64, error) {
	if c.Arith == nil {
		return DefaultArithEvaluator(ctx, tree)
	}
	return c.Arith(ctx, tree)
}

// compilePattern compiles an already-expanded pattern string and
// wraps compile errors as sherr.BadOperand, matching the propagation
// policy for malformed Strip/Subst patterns.
func (c *Context) compilePattern(pat string, mode pattern.MatchMode, flags pattern.Flags) (*pattern.Pattern, error) {
	p, err := pattern.Compile(pat, mode, flags)
	if err != nil {
		return nil, &sherr.BadOperand{Detail: err.Error()}
	}
	return p, nil
}

var identRx = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func isValidName(name string) bool { return identRx.MatchString(name) }
