// Copyright (c) 2024, The yash-go Authors

package format

import "strings"

// Style selects the echo built-in's flavor: it picks three independent
// booleans rather than being interpreted directly.
type Style uint8

const (
	SysV Style = iota // also XSI; the default
	BSD
	GNU
	ZSH
	DASH
	RAW
)

// ParseStyle maps the first character of $ECHO_STYLE to a Style,
// defaulting to SysV/XSI for anything unrecognized (including an
// unset variable), matching the source's switch on echo_style[0].
func ParseStyle(envValue string) Style {
	if envValue == "" {
		return SysV
	}
	switch envValue[0] {
	case 'B', 'b':
		return BSD
	case 'G', 'g':
		return GNU
	case 'Z', 'z':
		return ZSH
	case 'D', 'd':
		return DASH
	case 'R', 'r':
		return RAW
	default:
		return SysV
	}
}

// behavior returns the three independent booleans a Style selects:
// escapeByDefault, recognizeN, recognizeE.
func (s Style) behavior() (escapeByDefault, recognizeN, recognizeE bool) {
	switch s {
	case BSD:
		return false, true, false
	case GNU:
		return false, true, true
	case ZSH:
		return true, true, true
	case DASH:
		return true, true, false
	case RAW:
		return false, false, false
	default: // SysV / XSI
		return true, false, false
	}
}

// Echo renders the echo built-in's output for the given style and
// arguments: arguments are joined with single spaces, escape
// sequences are interpreted per the style's rules, and a trailing
// newline is appended unless suppressed by -n or a mid-stream "\c".
func Echo(style Style, args []string) (output []byte, exitCode int) {
	escapeByDefault, recognizeN, recognizeE := style.behavior()
	escape := escapeByDefault
	noNewline := false

	i := 0
	if recognizeN || recognizeE {
	flagLoop:
		for i < len(args) {
			a := args[i]
			if len(a) < 2 || a[0] != '-' || strings.Trim(a[1:], "neE") != "" {
				break
			}
			// An argument with any flag letter the style does not
			// recognize is an operand as a whole: none of its letters
			// take effect.
			for _, f := range a[1:] {
				if (f == 'n' && !recognizeN) || (f != 'n' && !recognizeE) {
					break flagLoop
				}
			}
			for _, f := range a[1:] {
				switch f {
				case 'n':
					noNewline = true
				case 'e':
					escape = true
				case 'E':
					escape = false
				}
			}
			i++
		}
	}

	var sb strings.Builder
	truncated := false
	for j := i; j < len(args); j++ {
		if j > i {
			sb.WriteByte(' ')
		}
		if escape {
			s, stop := unescape(args[j])
			sb.WriteString(s)
			if stop {
				truncated = true
				break
			}
		} else {
			sb.WriteString(args[j])
		}
	}
	if !noNewline && !truncated {
		sb.WriteByte('\n')
	}
	return []byte(sb.String()), 0
}
