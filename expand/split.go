// Copyright (c) 2024, The yash-go Authors

package expand

import (
	"strings"

	"github.com/vigoux/yash/wordbuf"
)

// splitField implements Phase 5 (empty-word preservation)
// and Phase 6 (field splitting) together for one fragment: a run of
// IFS-whitespace together with at most one IFS non-whitespace
// character delimits a field, and a fragment that is empty and was
// never explicitly quoted contributes no fields at all.
func (c *Context) splitField(frag wordbuf.Fragment) []string {
	ifs := c.ifs()
	if frag.Len() == 0 {
		if frag.Force {
			return []string{""}
		}
		return nil
	}
	if ifs == "" {
		return []string{frag.String()}
	}

	runes, split := frag.Runes, frag.Split
	n := len(runes)

	isWS := func(r rune) bool {
		return (r == ' ' || r == '\t' || r == '\n') && strings.ContainsRune(ifs, r)
	}
	isIFS := func(r rune) bool { return strings.ContainsRune(ifs, r) }
	isDelim := func(i int) bool { return split[i] && isIFS(runes[i]) }
	var fields []string

	i := 0
	for i < n && split[i] && isWS(runes[i]) {
		i++
	}
	if i == n {
		// The whole fragment was leading IFS whitespace: nothing to
		// split and no delimiter was crossed, so it contributes no
		// fields at all (as opposed to one empty field).
		return nil
	}
	for {
		start := i
		for i < n && !isDelim(i) {
			i++
		}
		fields = append(fields, string(runes[start:i]))
		if i == n {
			break
		}

		// A delimiter is either a run of IFS whitespace (which absorbs
		// one following non-whitespace IFS character plus its own
		// trailing whitespace run), or a single non-whitespace IFS
		// character (which absorbs only its own trailing whitespace
		// run). Two non-whitespace IFS characters with nothing
		// whitespace between them are two separate delimiters, and so
		// yield an empty field between them.
		if isWS(runes[i]) {
			for i < n && split[i] && isWS(runes[i]) {
				i++
			}
			if i < n && isDelim(i) && !isWS(runes[i]) {
				i++
				for i < n && split[i] && isWS(runes[i]) {
					i++
				}
			}
		} else {
			i++
			for i < n && split[i] && isWS(runes[i]) {
				i++
			}
		}
		if i == n {
			break
		}
	}
	return fields
}
