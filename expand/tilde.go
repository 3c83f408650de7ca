// Copyright (c) 2024, The yash-go Authors

package expand

import (
	"strings"

	"github.com/vigoux/yash/wordbuf"
)

// HomeDirLookup resolves a login name to its home directory. The core
// never calls os/user itself; the dispatcher supplies this, typically backed by
// os/user.Lookup.
type HomeDirLookup func(login string) (dir string, ok bool)

// resolveTildeLogin expands one "~login" segment's login part: "" means
// the current user's $HOME, "+" means $PWD, "-" means $OLDPWD (both
// disabled outside the bare-"~"/"~name" forms POSIX-strict mode
// recognises), and anything else is looked up via HomeLookup.
func (c *Context) resolveTildeLogin(login string) (dir string, ok bool) {
	switch {
	case login == "":
		if c.Home == "" {
			return "", false
		}
		return c.Home, true
	case login == "+" && !c.Opts.POSIX:
		if c.PWD == "" {
			return "", false
		}
		return c.PWD, true
	case login == "-" && !c.Opts.POSIX:
		if c.OldPWD == "" {
			return "", false
		}
		return c.OldPWD, true
	default:
		if c.HomeLookup == nil {
			return "", false
		}
		return c.HomeLookup(login)
	}
}

// expandTildeText implements Phase 1 over a single unquoted run of
// text: a leading "~" segment running up to the first "/" (or, for the
// assignment-value variant, the first "/" or ":") names the login
// whose home directory replaces it, with no further expansion applied
// to the substituted text. The expanded home directory is returned
// with every glob metacharacter pre-escaped, so later phases treat it
// as literal.
func (c *Context) expandTildeText(s string, stopAtColon bool) (string, bool) {
	if !strings.HasPrefix(s, "~") {
		return s, false
	}
	rest := s[1:]
	end := strings.IndexByte(rest, '/')
	if stopAtColon {
		if ce := strings.IndexByte(rest, ':'); ce >= 0 && (end < 0 || ce < end) {
			end = ce
		}
	}
	login := rest
	suffix := ""
	if end >= 0 {
		login = rest[:end]
		suffix = rest[end:]
	}
	if strings.ContainsAny(login, `"'\`) {
		// A quoting character inside the login segment abandons
		// tilde-expansion; the text is left literal.
		return s, false
	}
	dir, ok := c.resolveTildeLogin(login)
	if !ok {
		return s, false
	}
	return wordbuf.QuoteMetaRunes(dir) + suffix, true
}

// expandTildeAll expands every "~..." segment that begins the word or
// follows a ':' (the assignment-value variant), used for
// variable-assignment right-hand sides such as
// PATH=~/bin:~other/bin.
func (c *Context) expandTildeAll(s string) string {
	var sb strings.Builder
	start := 0
	for start <= len(s) {
		segEnd := strings.IndexByte(s[start:], ':')
		var seg string
		if segEnd < 0 {
			seg = s[start:]
		} else {
			seg = s[start : start+segEnd]
		}
		expanded, _ := c.expandTildeText(seg, true)
		sb.WriteString(expanded)
		if segEnd < 0 {
			break
		}
		sb.WriteByte(':')
		start += segEnd + 1
	}
	return sb.String()
}
