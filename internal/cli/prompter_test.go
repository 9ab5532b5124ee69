package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/Veraticus/potax/internal/flow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrompter_PromptRequest(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  flow.Request
	}{
		{
			name:  "description and supplier",
			input: "Annual subscription for cloud hosting services\nAmazon Web Services\n",
			want: flow.Request{
				Description: "Annual subscription for cloud hosting services",
				Supplier:    "Amazon Web Services",
			},
		},
		{
			name:  "supplier skipped",
			input: "Office chairs\n\n",
			want:  flow.Request{Description: "Office chairs"},
		},
		{
			name:  "input ends after description",
			input: "Office chairs\n",
			want:  flow.Request{Description: "Office chairs"},
		},
		{
			name:  "blank description passed through",
			input: "   \nDell\n",
			want:  flow.Request{Description: "   ", Supplier: "Dell"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := NewPrompter(strings.NewReader(tt.input), &out, false)

			got, err := p.PromptRequest(context.Background())

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "PO description: ")
			assert.Contains(t, out.String(), "Supplier (optional): ")
		})
	}
}

func TestPrompter_PromptRequest_NoInput(t *testing.T) {
	p := NewPrompter(strings.NewReader(""), &bytes.Buffer{}, false)

	_, err := p.PromptRequest(context.Background())
	assert.Error(t, err)
}

func TestPrompter_PromptRequest_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewPrompter(strings.NewReader("Chairs\n"), &bytes.Buffer{}, false)

	_, err := p.PromptRequest(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
