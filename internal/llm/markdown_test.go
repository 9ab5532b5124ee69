package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanMarkdownWrapper(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain json", input: `{"L1":"IT"}`, want: `{"L1":"IT"}`},
		{name: "json fence", input: "```json\n{\"L1\":\"IT\"}\n```", want: `{"L1":"IT"}`},
		{name: "bare fence", input: "```\n{\"L1\":\"IT\"}\n```", want: `{"L1":"IT"}`},
		{name: "fence with surrounding space", input: "\n ```json\n{}\n``` \n", want: `{}`},
		{name: "one-line fence left alone", input: "```{\"L1\":\"IT\"}```", want: "```{\"L1\":\"IT\"}```"},
		{name: "text before fence left alone", input: "Here you go:\n```json\n{}\n```", want: "Here you go:\n```json\n{}\n```"},
		{name: "not json", input: "NOT_JSON", want: "NOT_JSON"},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanMarkdownWrapper(tt.input))
		})
	}
}
