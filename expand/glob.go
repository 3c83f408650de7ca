// Copyright (c) 2024, The yash-go Authors

package expand

import (
	"github.com/vigoux/yash/pattern"
	"github.com/vigoux/yash/wordbuf"
)

// expandGlob implements pathname expansion: a field containing an
// unescaped glob metacharacter is matched against the filesystem via
// the configured GlobFunc; a field with no metacharacters, or one
// where nothing matched, passes through unchanged (after quote
// removal) rather than disappearing. The "noglob" option and a nil
// GlobFunc both disable this phase outright.
func (c *Context) expandGlob(field, dir string) ([]string, error) {
	if c.Opts.NoGlob || c.Glob == nil || !pattern.HasMeta(field) {
		return []string{wordbuf.StripBackslashEscapes(field)}, nil
	}
	matches, err := c.Glob(field, dir)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return []string{wordbuf.StripBackslashEscapes(field)}, nil
	}
	return matches, nil
}
