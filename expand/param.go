// Copyright (c) 2024, The yash-go Authors

package expand

import (
	"context"
	"strconv"

	"github.com/vigoux/yash/expand/ast"
	"github.com/vigoux/yash/pattern"
	"github.com/vigoux/yash/sherr"
	"github.com/vigoux/yash/vars"
)

// resolveBase looks up a ParamRef's raw value(s), before any operator
// is applied. isAt reports whether the reference is a bare "@" (or
// "${@}") expansion, the only case Phase 2 keeps as a sequence rather
// than collapsing to one string.
func (c *Context) resolveBase(ctx context.Context, pr *ast.ParamRef) (elems []string, isAt, unset bool, err error) {
	if pr.Flags&ast.NestedExpansion != 0 {
		s, err := c.expandWordToString(ctx, pr.NestedWord)
		if err != nil {
			return nil, false, false, err
		}
		return []string{s}, false, false, nil
	}

	switch pr.Name {
	case "@":
		elems = c.Vars.GetAllPositional()
		return elems, true, false, nil
	case "*":
		elems = c.Vars.GetAllPositional()
		return elems, false, false, nil
	case "#":
		return []string{strconv.Itoa(len(c.Vars.GetAllPositional()))}, false, false, nil
	}

	if n, convErr := strconv.Atoi(pr.Name); convErr == nil {
		s, ok := c.Vars.GetPositional(n)
		if !ok {
			return []string{""}, false, true, nil
		}
		return []string{s}, false, false, nil
	}

	v := c.Vars.Get(pr.Name)
	if !v.IsSet() {
		return []string{""}, false, true, nil
	}
	if v.Kind == vars.Sequence {
		return v.Seq, false, false, nil
	}
	return []string{v.Str}, false, false, nil
}

// expandParam applies a ParamRef's operator to its base value and
// returns the resulting element set.
func (c *Context) expandParam(ctx context.Context, pr *ast.ParamRef) (elems []string, isAt bool, err error) {
	elems, isAt, unset, err := c.resolveBase(ctx, pr)
	if err != nil {
		return nil, false, err
	}
	if !unset && pr.Flags&ast.ColonTestsEmpty != 0 && len(elems) <= 1 && (len(elems) == 0 || elems[0] == "") {
		unset = true
	}

	switch pr.Op {
	case ast.Plain, ast.Length:
		// handled below uniformly
	case ast.UseDefault:
		if unset {
			s, err := c.expandWordToString(ctx, pr.SubstWord)
			if err != nil {
				return nil, false, err
			}
			return []string{s}, false, nil
		}
		return elems, isAt, nil
	case ast.AssignDefault:
		if unset {
			s, err := c.expandWordToString(ctx, pr.SubstWord)
			if err != nil {
				return nil, false, err
			}
			if !isValidName(pr.Name) {
				return nil, false, &sherr.InvalidAssignment{Name: pr.Name, Reason: "not a valid identifier"}
			}
			if c.Assign != nil {
				if err := c.Assign(pr.Name, s); err != nil {
					return nil, false, err
				}
			}
			return []string{s}, false, nil
		}
		return elems, isAt, nil
	case ast.ErrorIfUnset:
		if unset {
			msg := pr.Name + ": parameter not set"
			if pr.SubstWord != nil {
				s, err := c.expandWordToString(ctx, pr.SubstWord)
				if err != nil {
					return nil, false, err
				}
				if s != "" {
					msg = s
				}
			}
			return nil, false, &sherr.BadOperand{Detail: msg}
		}
		return elems, isAt, nil
	case ast.UseAlt:
		if unset {
			return []string{""}, false, nil
		}
		s, err := c.expandWordToString(ctx, pr.SubstWord)
		if err != nil {
			return nil, false, err
		}
		return []string{s}, false, nil
	}

	switch pr.Op {
	case ast.Length:
		out := make([]string, len(elems))
		for i, e := range elems {
			out[i] = strconv.Itoa(len([]rune(e)))
		}
		return out, isAt, nil
	case ast.StripPrefixShort, ast.StripPrefixLong, ast.StripSuffixShort, ast.StripSuffixLong:
		return c.applyStrip(ctx, pr, elems, isAt)
	case ast.SubstFirst, ast.SubstAll, ast.SubstPrefix, ast.SubstSuffix, ast.SubstWhole:
		return c.applySubst(ctx, pr, elems, isAt)
	}
	return elems, isAt, nil
}

func (c *Context) applyStrip(ctx context.Context, pr *ast.ParamRef, elems []string, isAt bool) ([]string, bool, error) {
	pat, err := c.expandWordToString(ctx, pr.MatchPattern)
	if err != nil {
		return nil, false, err
	}
	if pat == "" {
		return elems, isAt, nil
	}
	mode := pattern.Longest
	var flags pattern.Flags
	switch pr.Op {
	case ast.StripPrefixShort:
		mode, flags = pattern.Shortest, pattern.HeadOnly
	case ast.StripPrefixLong:
		mode, flags = pattern.Longest, pattern.HeadOnly
	case ast.StripSuffixShort:
		mode, flags = pattern.Shortest, pattern.TailOnly
	case ast.StripSuffixLong:
		mode, flags = pattern.Longest, pattern.TailOnly
	}
	p, err := c.compilePattern(pat, mode, flags)
	if err != nil {
		return nil, false, err
	}
	out := make([]string, len(elems))
	for i, e := range elems {
		start, end, ferr := p.Find(e)
		if ferr != nil {
			out[i] = e
			continue
		}
		out[i] = e[:start] + e[end:]
	}
	return out, isAt, nil
}

func (c *Context) applySubst(ctx context.Context, pr *ast.ParamRef, elems []string, isAt bool) ([]string, bool, error) {
	pat, err := c.expandWordToString(ctx, pr.MatchPattern)
	if err != nil {
		return nil, false, err
	}
	repl, err := c.expandWordToString(ctx, pr.ReplWith)
	if err != nil {
		return nil, false, err
	}
	if pat == "" {
		return elems, isAt, nil
	}
	var flags pattern.Flags
	switch pr.Op {
	case ast.SubstPrefix:
		flags = pattern.HeadOnly
	case ast.SubstSuffix:
		flags = pattern.TailOnly
	case ast.SubstWhole:
		flags = pattern.HeadOnly | pattern.TailOnly
	}
	p, err := c.compilePattern(pat, pattern.Longest, flags)
	if err != nil {
		return nil, false, err
	}
	out := make([]string, len(elems))
	for i, e := range elems {
		out[i] = substOne(p, e, repl, pr.Op == ast.SubstAll)
	}
	return out, isAt, nil
}

func substOne(p *pattern.Pattern, s, repl string, all bool) string {
	var result []byte
	pos := 0
	for pos <= len(s) {
		start, end, err := p.Find(s[pos:])
		if err != nil || start < 0 {
			result = append(result, s[pos:]...)
			break
		}
		result = append(result, s[pos:pos+start]...)
		result = append(result, repl...)
		if end == start {
			if pos+start < len(s) {
				result = append(result, s[pos+start])
			}
			pos = pos + start + 1
		} else {
			pos = pos + end
		}
		if !all {
			result = append(result, s[pos:]...)
			break
		}
	}
	return string(result)
}
