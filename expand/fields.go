// Copyright (c) 2024, The yash-go Authors

package expand

import (
	"context"
	"strconv"
	"strings"

	"github.com/vigoux/yash/expand/ast"
	"github.com/vigoux/yash/wordbuf"
)

// expandUnits runs Phase 2 (parameter/command/arithmetic substitution)
// and Phase 3 (quote flattening) together over one ast.Word, producing
// a list of subword fragments. Every call returns exactly one fragment
// except when a double-quoted bare "$@" is expanded to more than one
// positional parameter, in which case each parameter that is not
// adjacent to surrounding literal text becomes its own fragment
// (array and positional-parameter expansions are never joined, never split).
//
// Quoting is read per-unit from each ParamRef/CommandSub's own Quote
// field (set by the parser to the quoting in force at that unit's
// position), not from a single flag for the whole word: a word can
// mix quoted and unquoted units, e.g. "pre"$(cmd)"post".
func (c *Context) expandUnits(ctx context.Context, word ast.Word) ([]wordbuf.Fragment, error) {
	var subwords []wordbuf.Fragment
	var buf wordbuf.Buffer
	forced := false

	flush := func() {
		frag := buf.Fragment()
		frag.Force = forced
		subwords = append(subwords, frag)
		buf.Reset()
		forced = false
	}

	appendElems := func(elems []string, isAt bool, dq bool) {
		if isAt && dq {
			switch len(elems) {
			case 0:
				return
			case 1:
				buf.WriteString(wordbuf.QuoteMetaRunes(elems[0]), false)
				forced = true
				return
			}
			buf.WriteString(wordbuf.QuoteMetaRunes(elems[0]), false)
			forced = true
			flush()
			for i := 1; i < len(elems)-1; i++ {
				f := wordbuf.NewFragment(wordbuf.QuoteMetaRunes(elems[i]), false)
				f.Force = true
				subwords = append(subwords, f)
			}
			buf.WriteString(wordbuf.QuoteMetaRunes(elems[len(elems)-1]), false)
			forced = true
			return
		}
		joined := strings.Join(elems, c.ifsFirst())
		if dq {
			buf.WriteString(wordbuf.QuoteMetaRunes(joined), false)
			forced = true
		} else {
			// Glob-meta characters introduced by substitution are left
			// unescaped outside double quotes: they participate in field
			// splitting first and may still glob in Phase 7.
			buf.WriteString(joined, true)
		}
	}

	for _, u := range word {
		switch x := u.(type) {
		case *ast.Literal:
			for _, run := range x.Runs {
				if run.Quote == ast.Unquoted {
					writeUnquotedLiteral(&buf, run.Text)
				} else {
					buf.WriteString(wordbuf.QuoteMetaRunes(run.Text), false)
					forced = true
				}
			}
		case *ast.ParamRef:
			elems, isAt, err := c.expandParam(ctx, x)
			if err != nil {
				return nil, err
			}
			appendElems(elems, isAt, x.Quote == ast.DoubleQuoted)
		case *ast.CommandSub:
			s, err := c.substitute(ctx, x.Command)
			if err != nil {
				return nil, err
			}
			if x.Quote == ast.DoubleQuoted {
				buf.WriteString(wordbuf.QuoteMetaRunes(s), false)
				forced = true
			} else {
				buf.WriteString(s, true)
			}
		case *ast.ArithSub:
			n, err := c.evalArith(ctx, x.Expr)
			if err != nil {
				return nil, err
			}
			// ArithSub carries no Quote field of its own (spec.md
			// leaves its quoting contract undictated); its decimal
			// rendering never contains IFS characters in practice, so
			// it is always marked splittable.
			buf.WriteString(strconv.FormatInt(n, 10), true)
		}
	}
	flush()
	return subwords, nil
}

// writeUnquotedLiteral copies an unquoted literal run into buf,
// honoring the rule that a backslash outside quotes escapes the next
// character: the escaped character is written back with its backslash
// (so pathname expansion still treats it as literal) but marked
// non-splittable, since "backslash-escaped characters are never split
// on, irrespective of the map.
func writeUnquotedLiteral(buf *wordbuf.Buffer, s string) {
	rs := []rune(s)
	for i := 0; i < len(rs); i++ {
		if rs[i] == '\\' && i+1 < len(rs) {
			buf.WriteRune('\\', false)
			buf.WriteRune(rs[i+1], false)
			i++
			continue
		}
		buf.WriteRune(rs[i], true)
	}
}

// expandWordToString expands word as a nested, non-field-splitting,
// non-globbing word (the context Strip/Subst patterns, replacement
// text, and default-value words all run in), joining any "$@"-style
// multi-element result with the first IFS character the way a
// double-quoted context would.
func (c *Context) expandWordToString(ctx context.Context, word ast.Word) (string, error) {
	if word == nil {
		return "", nil
	}
	subs, err := c.expandUnits(ctx, word)
	if err != nil {
		return "", err
	}
	parts := make([]string, len(subs))
	for i, f := range subs {
		parts[i] = wordbuf.StripBackslashEscapes(f.String())
	}
	return strings.Join(parts, c.ifsFirst()), nil
}
