// Copyright (c) 2024, The yash-go Authors

package format

import (
	"strconv"
	"strings"
)

// Compile parses a printf format string into a Program: backslash
// escapes become Raw bytes, each '%' opens a Conversion (flags,
// width, precision, verb), and the
// trailing text after the last conversion is a final Raw.
func Compile(format string) (*Program, error) {
	p := &Program{}
	var raw []byte
	flushRaw := func() {
		if len(raw) > 0 {
			p.Directives = append(p.Directives, Raw{Bytes: raw})
			raw = nil
		}
	}

	i := 0
	for i < len(format) {
		c := format[i]
		switch c {
		case '%':
			flushRaw()
			d, next, err := parseConv(format, i)
			if err != nil {
				return nil, err
			}
			p.Directives = append(p.Directives, d)
			i = next
		case '\\':
			b, next, ok := parseBackslashEscape(format, i)
			if ok {
				raw = append(raw, b)
				i = next
			} else {
				raw = append(raw, c)
				i++
			}
		default:
			raw = append(raw, c)
			i++
		}
	}
	flushRaw()
	return p, nil
}

// parseBackslashEscape parses one \a \b \f \n \r \t \v \\ \" \' or
// \NNN (up to three octal digits) escape starting at format[i] (which
// must be '\\'). ok is false if format[i+1] is not a recognized escape
// introducer, in which case the backslash is literal.
func parseBackslashEscape(format string, i int) (b byte, next int, ok bool) {
	if i+1 >= len(format) {
		return 0, i, false
	}
	switch format[i+1] {
	case 'a':
		return '\a', i + 2, true
	case 'b':
		return '\b', i + 2, true
	case 'f':
		return '\f', i + 2, true
	case 'n':
		return '\n', i + 2, true
	case 'r':
		return '\r', i + 2, true
	case 't':
		return '\t', i + 2, true
	case 'v':
		return '\v', i + 2, true
	case '\\':
		return '\\', i + 2, true
	case '"':
		return '"', i + 2, true
	case '\'':
		return '\'', i + 2, true
	case '0', '1', '2', '3', '4', '5', '6', '7':
		j := i + 1
		val := 0
		for k := 0; k < 3 && j < len(format) && format[j] >= '0' && format[j] <= '7'; k++ {
			val = val*8 + int(format[j]-'0')
			j++
		}
		return byte(val), j, true
	default:
		return 0, i, false
	}
}

// parseConv parses the conversion starting at format[i] == '%'.
func parseConv(format string, i int) (Directive, int, error) {
	i++ // skip '%'
	var spec ConvSpec

	// flags
flags:
	for i < len(format) {
		switch format[i] {
		case '#':
			spec.Hash = true
			i++
		case '0':
			spec.Zero = true
			i++
		case '-':
			spec.Minus = true
			i++
		case '+':
			spec.Plus = true
			i++
		case ' ':
			spec.Space = true
			i++
		default:
			break flags
		}
	}

	// width
	start := i
	for i < len(format) && format[i] >= '0' && format[i] <= '9' {
		i++
	}
	if i > start {
		spec.HasWidth = true
		spec.Width, _ = strconv.Atoi(format[start:i])
	}

	// precision
	if i < len(format) && format[i] == '.' {
		i++
		start = i
		for i < len(format) && format[i] >= '0' && format[i] <= '9' {
			i++
		}
		spec.HasPrecision = true
		if i > start {
			spec.Precision, _ = strconv.Atoi(format[start:i])
		}
	}

	if i >= len(format) {
		return nil, i, syntaxErrorf("the conversion specifier is missing")
	}
	verb := format[i]
	spec.Verb = verb

	switch verb {
	case 'd', 'i':
		if spec.Hash {
			return nil, i, syntaxErrorf("invalid flag for conversion specifier `%c'", verb)
		}
		return Conv{Kind: SignedInt, Spec: spec}, i + 1, nil
	case 'u', 'o', 'x', 'X':
		if verb == 'u' && spec.Hash {
			return nil, i, syntaxErrorf("invalid flag for conversion specifier `%c'", verb)
		}
		return Conv{Kind: UnsignedInt, Spec: spec}, i + 1, nil
	case 'f', 'F', 'e', 'E', 'g', 'G':
		return Conv{Kind: Float, Spec: spec}, i + 1, nil
	case 'c':
		if spec.Hash || spec.Zero {
			return nil, i, syntaxErrorf("invalid flag for conversion specifier `%c'", verb)
		}
		return Conv{Kind: Char, Spec: spec}, i + 1, nil
	case 's':
		if spec.Hash || spec.Zero {
			return nil, i, syntaxErrorf("invalid flag for conversion specifier `%c'", verb)
		}
		return Conv{Kind: String, Spec: spec}, i + 1, nil
	case 'b':
		if spec.Hash || spec.Zero {
			return nil, i, syntaxErrorf("invalid flag for conversion specifier `%c'", verb)
		}
		max := -1 // unbounded
		if spec.HasPrecision {
			max = spec.Precision
		}
		return Conv{Kind: EscapedString, EscWidth: spec.Width, EscMax: max, EscLeft: spec.Minus}, i + 1, nil
	case '%':
		return Percent{}, i + 1, nil
	default:
		return nil, i, syntaxErrorf("`%c' is not a valid conversion specifier", verb)
	}
}

// stopSignal is returned internally by Program.Run's escaped-string path to
// signal that a "\c" escape truncates the whole printf invocation
// immediately.
type stopSignal struct{}

func (stopSignal) Error() string { return "printf: \\c encountered" }

// Result carries a single Run's output.
type Result struct {
	Output   []byte
	Consumed int // number of argument-stream elements consumed
	BadArg   bool
}

// Run executes the program once against args, returning the produced
// bytes and how many leading elements of args were consumed. Missing
// arguments default to empty string (String/Char/EscapedString) or
// zero (numeric). A malformed numeric argument sets BadArg but still
// produces zero rather than aborting; Run itself prints no diagnostic.
func (p *Program) Run(args []string) (Result, error) {
	var out strings.Builder
	rest := args
	badArg := false
	for _, d := range p.Directives {
		switch x := d.(type) {
		case Raw:
			out.Write(x.Bytes)
		case Percent:
			out.WriteByte('%')
		case Conv:
			var arg string
			var have bool
			if len(rest) > 0 {
				arg, rest = rest[0], rest[1:]
				have = true
			}
			switch x.Kind {
			case String:
				out.WriteString(formatString(arg, x.Spec))
			case Char:
				out.WriteString(formatChar(arg, x.Spec))
			case SignedInt:
				n, bad := parseSignedArg(arg, have)
				if bad {
					badArg = true
				}
				out.WriteString(formatInt(n, x.Spec))
			case UnsignedInt:
				n, bad := parseUnsignedArg(arg, have)
				if bad {
					badArg = true
				}
				out.WriteString(formatUint(n, x.Spec))
			case Float:
				f, bad := parseFloatArg(arg, have)
				if bad {
					badArg = true
				}
				out.WriteString(formatFloat(f, x.Spec))
			case EscapedString:
				s, truncated := unescape(arg)
				s = applyWidth(s, x.EscWidth, x.EscMax, x.EscLeft)
				out.WriteString(s)
				if truncated {
					consumed := len(args) - len(rest)
					return Result{Output: []byte(out.String()), Consumed: consumed, BadArg: badArg}, stopSignal{}
				}
			}
		}
	}
	consumed := len(args) - len(rest)
	return Result{Output: []byte(out.String()), Consumed: consumed, BadArg: badArg}, nil
}

// RunAll executes the program repeatedly, consuming arguments until
// either the argument stream is exhausted, a directive signals early
// termination ("\c"), or an iteration completes having consumed no
// arguments, which avoids an infinite loop on argument-less formats.
func RunAll(p *Program, args []string) (output []byte, badArg bool, stopped bool) {
	var out []byte
	for {
		res, err := p.Run(args)
		out = append(out, res.Output...)
		if res.BadArg {
			badArg = true
		}
		if _, isStop := err.(stopSignal); isStop {
			return out, badArg, true
		}
		args = args[res.Consumed:]
		if len(args) == 0 {
			return out, badArg, false
		}
		if res.Consumed == 0 {
			return out, badArg, false
		}
	}
}
