package viewmodel

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// String returns a string representation of the tone.
func (t Tone) String() string {
	switch t {
	case ToneInfo:
		return "info"
	case ToneSuccess:
		return "success"
	case ToneWarning:
		return "warning"
	case ToneError:
		return "error"
	default:
		return fmt.Sprintf("tone(%d)", int(t))
	}
}

// OneLine flattens s for a single display line: runs of whitespace and
// control characters become one space and the result is cut to maxLen runes,
// ending in "..." when cut. maxLen <= 0 disables the cut.
func OneLine(s string, maxLen int) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsControl(r)
	})
	line := strings.Join(words, " ")

	if maxLen <= 0 || utf8.RuneCountInString(line) <= maxLen {
		return line
	}
	runes := []rune(line)
	if maxLen <= len(ellipsis) {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-len(ellipsis)]) + ellipsis
}

const ellipsis = "..."

// FormatElapsed formats a classifier round trip for a status line.
func FormatElapsed(d time.Duration) string {
	switch {
	case d <= 0:
		return ""
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	default:
		minutes := int(d.Minutes())
		seconds := int(d.Seconds()) % 60
		if seconds > 0 {
			return fmt.Sprintf("%dm %ds", minutes, seconds)
		}
		return fmt.Sprintf("%dm", minutes)
	}
}
