// Copyright (c) 2024, The yash-go Authors

package expand

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/vigoux/yash/wordbuf"
)

// expandBraces implements brace expansion over one concatenated
// fragment: list form "{a,b,c}" and sequence form "{x..y[..incr]}",
// skipping constructs whose braces or commas are backslash- or
// quote-protected (the unescaped-rune test below is exactly the
// splittability map, since both escaped and quoted runes are marked
// non-splittable by Phase 3). Recursion re-scans every produced
// fragment so nested and sibling brace groups both expand.
func (c *Context) expandBraces(frag wordbuf.Fragment) []wordbuf.Fragment {
	if !c.Opts.BraceExpand {
		return []wordbuf.Fragment{frag}
	}
	return braceExpandOnce(frag)
}

func braceExpandOnce(frag wordbuf.Fragment) []wordbuf.Fragment {
	open, branches, close, ok := findBraceGroup(frag)
	if !ok {
		return []wordbuf.Fragment{frag}
	}

	prefix := sliceFragment(frag, 0, open)
	suffix := sliceFragment(frag, close+1, frag.Len())

	var alts []wordbuf.Fragment
	if len(branches) > 1 {
		alts = branches
	} else {
		body := branches[0]
		seqAlts, ok := expandSequence(body.String())
		if !ok {
			// No comma and not a valid sequence: "{...}" is literal text.
			return []wordbuf.Fragment{frag}
		}
		for _, s := range seqAlts {
			alts = append(alts, wordbuf.NewFragment(s, true))
		}
	}

	var out []wordbuf.Fragment
	for _, alt := range alts {
		assembled := wordbuf.Join(prefix, alt, suffix)
		out = append(out, braceExpandOnce(assembled)...)
	}
	return out
}

func sliceFragment(f wordbuf.Fragment, start, end int) wordbuf.Fragment {
	return wordbuf.Fragment{
		Runes: append([]rune(nil), f.Runes[start:end]...),
		Split: append([]bool(nil), f.Split[start:end]...),
	}
}

// findBraceGroup locates the first brace-syntax group whose braces are
// unescaped (Split[i] true), returning the group's top-level comma-
// delimited branches (as fragments, preserving their own splittability
// so nested groups remain detectable on recursion).
func findBraceGroup(f wordbuf.Fragment) (open int, branches []wordbuf.Fragment, close int, ok bool) {
	n := f.Len()
	for i := 0; i < n; i++ {
		if f.Runes[i] != '{' || !f.Split[i] {
			continue
		}
		depth := 1
		var commaAt []int
		j := i + 1
		for ; j < n; j++ {
			if !f.Split[j] {
				continue
			}
			switch f.Runes[j] {
			case '{':
				depth++
			case '}':
				depth--
				if depth == 0 {
					goto found
				}
			case ',':
				if depth == 1 {
					commaAt = append(commaAt, j)
				}
			}
		}
		continue
	found:
		bodyStart, bodyEnd := i+1, j
		if len(commaAt) == 0 {
			body := sliceFragment(f, bodyStart, bodyEnd)
			if _, ok := expandSequence(body.String()); !ok {
				// Not a list and not a sequence: resume scanning just
				// after this opening brace, so an inner or later group
				// can still expand ("{{a,b}}" gives "{a}" and "{b}").
				continue
			}
			return i, []wordbuf.Fragment{body}, j, true
		}
		var parts []wordbuf.Fragment
		prev := bodyStart
		for _, c := range commaAt {
			parts = append(parts, sliceFragment(f, prev, c))
			prev = c + 1
		}
		parts = append(parts, sliceFragment(f, prev, bodyEnd))
		return i, parts, j, true
	}
	return 0, nil, 0, false
}

var numSeqRx = regexp.MustCompile(`^([-+]?[0-9]+)\.\.([-+]?[0-9]+)(?:\.\.(-?[0-9]+))?$`)
var alphaSeqRx = regexp.MustCompile(`^([A-Za-z])\.\.([A-Za-z])(?:\.\.(-?[0-9]+))?$`)

// expandSequence recognizes the "{x..y[..incr]}" form; body is the
// brace's inner text with no top-level comma.
func expandSequence(body string) ([]string, bool) {
	if m := numSeqRx.FindStringSubmatch(body); m != nil {
		// A leading '+' on either bound forces an explicit '+' on
		// positive results.
		plus := strings.HasPrefix(m[1], "+") || strings.HasPrefix(m[2], "+")
		m[1], m[2] = strings.TrimPrefix(m[1], "+"), strings.TrimPrefix(m[2], "+")
		start, _ := strconv.Atoi(m[1])
		end, _ := strconv.Atoi(m[2])
		width := 0
		if hasLeadingZero(m[1]) || hasLeadingZero(m[2]) {
			width = max(len(strings.TrimPrefix(m[1], "-")), len(strings.TrimPrefix(m[2], "-")))
		}
		incr := 1
		if m[3] != "" {
			incr, _ = strconv.Atoi(m[3])
			if incr == 0 {
				incr = 1
			}
		}
		seq := numericRange(start, end, incr, width)
		if plus {
			for i, s := range seq {
				if s[0] != '-' && strings.Trim(s, "0") != "" {
					seq[i] = "+" + s
				}
			}
		}
		return seq, true
	}
	if m := alphaSeqRx.FindStringSubmatch(body); m != nil {
		start, end := rune(m[1][0]), rune(m[2][0])
		incr := 1
		if m[3] != "" {
			incr, _ = strconv.Atoi(m[3])
			if incr == 0 {
				incr = 1
			}
		}
		return alphaRange(start, end, incr), true
	}
	return nil, false
}

func hasLeadingZero(s string) bool {
	s = strings.TrimPrefix(s, "-")
	return len(s) > 1 && s[0] == '0'
}

func numericRange(start, end, incr, width int) []string {
	if incr < 0 {
		incr = -incr
	}
	var out []string
	if start <= end {
		for v := start; v <= end; v += incr {
			out = append(out, padInt(v, width))
		}
	} else {
		for v := start; v >= end; v -= incr {
			out = append(out, padInt(v, width))
		}
	}
	return out
}

func padInt(v, width int) string {
	if width == 0 {
		return strconv.Itoa(v)
	}
	neg := v < 0
	s := strconv.Itoa(v)
	s = strings.TrimPrefix(s, "-")
	for len(s) < width {
		s = "0" + s
	}
	if neg {
		s = "-" + s
	}
	return s
}

func alphaRange(start, end rune, incr int) []string {
	if incr < 0 {
		incr = -incr
	}
	var out []string
	if start <= end {
		for v := start; v <= end; v += rune(incr) {
			out = append(out, fmt.Sprintf("%c", v))
		}
	} else {
		for v := start; v >= end; v -= rune(incr) {
			out = append(out, fmt.Sprintf("%c", v))
		}
	}
	return out
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
