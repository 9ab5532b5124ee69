package viewmodel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTone_String(t *testing.T) {
	assert.Equal(t, "info", ToneInfo.String())
	assert.Equal(t, "success", ToneSuccess.String())
	assert.Equal(t, "warning", ToneWarning.String())
	assert.Equal(t, "error", ToneError.String())
	assert.Equal(t, "tone(9)", Tone(9).String())
}

func TestOneLine(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		maxLen int
	}{
		{name: "short", input: "Dell", maxLen: 10, want: "Dell"},
		{name: "exact", input: "Dell", maxLen: 4, want: "Dell"},
		{name: "ellipsis", input: "Amazon Web Services", maxLen: 10, want: "Amazon ..."},
		{name: "tiny limit", input: "Amazon", maxLen: 2, want: "Am"},
		{name: "multibyte", input: "Bürobedarf GmbH", maxLen: 8, want: "Bürob..."},
		{name: "no limit", input: "Amazon Web Services", want: "Amazon Web Services"},
		{name: "newlines and escapes", input: "Annual\ncloud \x1b hosting\r\n", want: "Annual cloud hosting"},
		{name: "blank", input: "  \n\t ", want: ""},
		{name: "flattened before cut", input: "Office\n\n\nchairs and desks", maxLen: 13, want: "Office cha..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OneLine(tt.input, tt.maxLen))
		})
	}
}

func TestFormatElapsed(t *testing.T) {
	assert.Equal(t, "", FormatElapsed(0))
	assert.Equal(t, "250ms", FormatElapsed(250*time.Millisecond))
	assert.Equal(t, "1.5s", FormatElapsed(1500*time.Millisecond))
	assert.Equal(t, "2m", FormatElapsed(2*time.Minute))
	assert.Equal(t, "1m 5s", FormatElapsed(65*time.Second))
}
