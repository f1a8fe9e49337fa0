// Package timefmt converts custom date and time format strings such as
// "yyyy-MM-dd HH:mm:ss" into Go reference layouts.
//
// Formats that already contain the Go reference year "2006" are used as is.
//
// Known limits of the conversion:
//   - Go has no unpadded 24-hour token, so "H" formats as "HH" (parsing accepts both).
//   - Fraction tokens (f, F) must follow a '.' or ',' literal.
//   - Literal text must not contain Go layout tokens such as "Jan" or "2".
package timefmt

import (
	"strings"
	"time"
)

// run length -> layout; the longest entry covers longer runs
var tokens = map[byte]map[int]string{
	'y': {1: "06", 2: "06", 3: "2006", 4: "2006"},
	'M': {1: "1", 2: "01", 3: "Jan", 4: "January"},
	'd': {1: "2", 2: "02", 3: "Mon", 4: "Monday"},
	'H': {1: "15", 2: "15"},
	'h': {1: "3", 2: "03"},
	'm': {1: "4", 2: "04"},
	's': {1: "5", 2: "05"},
	't': {1: "PM", 2: "PM"},
	'z': {1: "-07", 2: "-07", 3: "-07:00"},
	'K': {1: "Z07:00"},
}

// Layout returns the Go layout for format.
func Layout(format string) string {
	if strings.Contains(format, "2006") {
		return format
	}

	var b strings.Builder
	for i := 0; i < len(format); {
		c := format[i]
		switch {
		case c == '\'' || c == '"':
			end := strings.IndexByte(format[i+1:], c)
			if end < 0 {
				b.WriteString(format[i+1:])
				return b.String()
			}
			b.WriteString(format[i+1 : i+1+end])
			i += end + 2
		case c == '\\' && i+1 < len(format):
			b.WriteByte(format[i+1])
			i += 2
		case c == 'f' || c == 'F':
			n := run(format, i)
			digit := "0"
			if c == 'F' {
				digit = "9"
			}
			b.WriteString(strings.Repeat(digit, min(n, 9)))
			i += n
		default:
			layouts, ok := tokens[c]
			if !ok {
				b.WriteByte(c)
				i++
				continue
			}
			n := run(format, i)
			b.WriteString(pick(layouts, n))
			i += n
		}
	}
	return b.String()
}

// Format renders t with format.
func Format(t time.Time, format string) string {
	return t.Format(Layout(format))
}

// Parse reads value written with format, interpreting it in loc.
func Parse(format, value string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(Layout(format), value, loc)
}

func run(s string, i int) int {
	n := 1
	for i+n < len(s) && s[i+n] == s[i] {
		n++
	}
	return n
}

func pick(layouts map[int]string, n int) string {
	if l, ok := layouts[n]; ok {
		return l
	}
	longest := 0
	for k := range layouts {
		longest = max(longest, k)
	}
	return layouts[longest]
}
