package latex

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	clierrors "github.com/salmonumbrella/tabtex/internal/errors"
)

// DefaultAlign returns the derived alignment for n columns: the first column
// left-aligned, the rest centered, separated by vertical rules.
func DefaultAlign(n int) string {
	if n <= 0 {
		return ""
	}
	specs := make([]string, n)
	specs[0] = "l"
	for i := 1; i < n; i++ {
		specs[i] = "c"
	}
	return strings.Join(specs, "|")
}

// ResolveAlign returns align when it describes exactly n columns, the derived
// default when align is empty, and an AlignmentMismatchError otherwise.
func ResolveAlign(align string, n int) (string, error) {
	if strings.TrimSpace(align) == "" {
		return DefaultAlign(n), nil
	}
	got, err := CountColumns(align)
	if err != nil {
		return "", err
	}
	if got != n {
		return "", &clierrors.AlignmentMismatchError{Align: align, Want: n, Got: got, Suggested: DefaultAlign(n)}
	}
	return align, nil
}

// CountColumns counts the column specifiers in a tabular preamble.
// Rules, spaces, and the argument-taking decorations @{} !{} >{} <{} do not
// count; p{} m{} b{} count once; *{n}{spec} counts n times spec.
func CountColumns(spec string) (int, error) {
	count := 0
	rest := spec
	for rest != "" {
		r := rune(rest[0])
		rest = rest[1:]
		switch {
		case r == '|' || unicode.IsSpace(r):
		case r == '@' || r == '!' || r == '>' || r == '<':
			var err error
			if _, rest, err = takeGroup(rest, spec); err != nil {
				return 0, err
			}
		case r == 'p' || r == 'm' || r == 'b':
			var err error
			if _, rest, err = takeGroup(rest, spec); err != nil {
				return 0, err
			}
			count++
		case r == '*':
			times, after, err := takeGroup(rest, spec)
			if err != nil {
				return 0, err
			}
			inner, after, err := takeGroup(after, spec)
			if err != nil {
				return 0, err
			}
			n, err := strconv.Atoi(strings.TrimSpace(times))
			if err != nil || n < 0 {
				return 0, alignSyntaxError(spec, fmt.Sprintf("invalid repeat count %q", times))
			}
			sub, err := CountColumns(inner)
			if err != nil {
				return 0, err
			}
			count += n * sub
			rest = after
		case r < unicode.MaxASCII && unicode.IsLetter(r):
			count++
		case r == '{' || r == '}':
			return 0, alignSyntaxError(spec, "unexpected brace")
		}
	}
	return count, nil
}

// takeGroup consumes a leading {...} group (nested braces allowed) and
// returns its contents and the remainder.
func takeGroup(s, spec string) (string, string, error) {
	s = strings.TrimLeft(s, " ")
	if s == "" || s[0] != '{' {
		return "", "", alignSyntaxError(spec, "expected {")
	}
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[1:i], s[i+1:], nil
			}
		}
	}
	return "", "", alignSyntaxError(spec, "unbalanced braces")
}

func alignSyntaxError(spec, msg string) error {
	return &clierrors.ValidationError{Field: "align", Message: fmt.Sprintf("%s in %q", msg, spec)}
}
