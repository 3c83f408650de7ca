// Copyright (c) 2024, The yash-go Authors

package expand

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/vigoux/yash/expand/ast"
	"github.com/vigoux/yash/sherr"
)

// ExpandLine runs the full seven-phase pipeline over a command line's
// words, producing the final argument vector: tilde, substitution,
// quote flattening, brace expansion, empty-word preservation, field
// splitting, and pathname expansion, in that order.
func (c *Context) ExpandLine(ctx context.Context, words []ast.Word, dir string) ([]string, error) {
	var out []string
	for _, w := range words {
		fields, err := c.expandWordToFields(ctx, w, dir, true)
		if err != nil {
			c.err(err)
			continue
		}
		for _, f := range fields {
			if !utf8.ValidString(f) {
				c.err(&sherr.EncodingError{Detail: "word could not be encoded in the active locale"})
				f = ""
			}
			out = append(out, f)
		}
	}
	return out, nil
}

func (c *Context) expandWordToFields(ctx context.Context, w ast.Word, dir string, glob bool) ([]string, error) {
	w = c.applyTilde(w)

	subs, err := c.expandUnits(ctx, w)
	if err != nil {
		return nil, err
	}

	var out []string
	for _, sub := range subs {
		for _, alt := range c.expandBraces(sub) {
			fields := c.splitField(alt)
			for _, f := range fields {
				if !glob {
					out = append(out, f)
					continue
				}
				matches, err := c.expandGlob(f, dir)
				if err != nil {
					return nil, err
				}
				out = append(out, matches...)
			}
		}
	}
	return out, nil
}

// applyTilde runs Phase 1 over the word's leading literal run, leaving
// every other unit untouched. It only inspects the first Literal unit,
// since a tilde segment by definition precedes any substitution. If
// the segment isn't fully contained in that unquoted run (i.e. a
// quote starts before the terminating "/"), expansion is abandoned,
// matching the quoting-character rule.
func (c *Context) applyTilde(w ast.Word) ast.Word {
	if len(w) == 0 {
		return w
	}
	lit, ok := w[0].(*ast.Literal)
	if !ok || len(lit.Runs) == 0 || lit.Runs[0].Quote != ast.Unquoted {
		return w
	}
	first := lit.Runs[0].Text
	if len(lit.Runs) > 1 && !strings.Contains(first, "/") {
		return w
	}
	expanded, ok := c.expandTildeText(first, false)
	if !ok {
		return w
	}
	newRuns := append([]ast.Run(nil), lit.Runs...)
	newRuns[0] = ast.Run{Text: expanded, Quote: ast.Unquoted}
	newLit := &ast.Literal{Runs: newRuns}
	out := append(ast.Word(nil), w...)
	out[0] = newLit
	return out
}

// ExpandSingle runs Phases 1-3 only, collapsing the result to one
// string with no field splitting or pathname expansion: the mode used
// for case patterns, here-document delimiters, and similar "single
// word" contexts.
func (c *Context) ExpandSingle(ctx context.Context, w ast.Word) (string, error) {
	w = c.applyTilde(w)
	return c.expandWordToString(ctx, w)
}

// ExpandSingleWithGlob behaves like ExpandSingle but additionally
// applies brace and pathname expansion, requiring the result to
// collapse back to exactly one field; more than one glob match or
// brace alternative is an ambiguity error (the redirection-target use
// case).
func (c *Context) ExpandSingleWithGlob(ctx context.Context, w ast.Word, dir string) (string, error) {
	w = c.applyTilde(w)
	subs, err := c.expandUnits(ctx, w)
	if err != nil {
		return "", err
	}
	var fields []string
	for _, sub := range subs {
		for _, alt := range c.expandBraces(sub) {
			matches, err := c.expandGlob(alt.String(), dir)
			if err != nil {
				return "", err
			}
			fields = append(fields, matches...)
		}
	}
	switch len(fields) {
	case 0:
		return "", nil
	case 1:
		return fields[0], nil
	default:
		return "", &sherr.BadOperand{Detail: fmt.Sprintf("ambiguous: expanded to %d words", len(fields))}
	}
}

// ExpandString implements the here-document-body expansion mode:
// Phases 4 (brace), 6 (field splitting) and 7 (pathname expansion) are
// always skipped. When honorEscapes is true (an unquoted heredoc
// delimiter), Phases 1-3 (tilde, parameter/command/arithmetic
// substitution, quote flattening) run exactly as in ExpandSingle; when
// false (a quoted delimiter), the body is POSIX-literal and returned
// with no interpretation at all.
func (c *Context) ExpandString(ctx context.Context, w ast.Word, honorEscapes bool) (string, error) {
	if !honorEscapes {
		return literalText(w), nil
	}
	return c.ExpandSingle(ctx, w)
}

// ExpandAssignmentValue runs the colon-aware tilde variant ("~…:~…")
// used for the right-hand side of an assignment like PATH=~/bin:~x,
// over an already-fully-expanded value (phases 2-7 having already
// produced a flat string for this one field).
func (c *Context) ExpandAssignmentValue(s string) string {
	return c.expandTildeAll(s)
}

func literalText(w ast.Word) string {
	var sb strings.Builder
	for _, u := range w {
		if lit, ok := u.(*ast.Literal); ok {
			sb.WriteString(lit.Text())
		}
	}
	return sb.String()
}
