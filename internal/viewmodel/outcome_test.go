package viewmodel

import (
	"errors"
	"testing"

	"github.com/Veraticus/potax/internal/flow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decoded(t *testing.T, raw string) flow.Result {
	t.Helper()
	result, err := flow.Decode(raw)
	require.NoError(t, err)
	return result
}

func TestFromOutcome_Success(t *testing.T) {
	o := flow.Outcome{
		ID:      "abc",
		State:   flow.StateSuccess,
		Message: flow.MessageSuccess,
		Request: flow.Request{Description: "Cloud hosting", Supplier: "AWS"},
		Result:  decoded(t, `{"L1":"IT","L3":"Hosting"}`),
		Raw:     `{"L1":"IT","L3":"Hosting"}`,
	}

	view := FromOutcome(o)

	assert.Equal(t, ToneSuccess, view.Tone)
	assert.Equal(t, flow.MessageSuccess, view.Message)
	assert.True(t, view.HasResult())
	assert.True(t, view.Exportable)
	assert.True(t, view.ShowRaw)
	assert.Equal(t, []LevelView{
		{Key: "L1", Label: "L1 · Domain", Value: "IT"},
		{Key: "L2", Label: "L2 · Category", Value: flow.Unclassified, Missing: true},
		{Key: "L3", Label: "L3 · Sub-group", Value: "Hosting"},
	}, view.Levels)
	assert.Equal(t, "{\n    \"L1\": \"IT\",\n    \"L3\": \"Hosting\"\n}", view.ExportJSON)
	assert.Equal(t, view.ExportJSON, view.RawText)
	assert.Equal(t, "AWS", view.Supplier)
}

func TestFromOutcome_Failures(t *testing.T) {
	tests := []struct {
		name       string
		outcome    flow.Outcome
		wantTone   Tone
		wantRaw    string
		wantDetail string
		wantShow   bool
	}{
		{
			name:     "idle",
			outcome:  flow.Idle(),
			wantTone: ToneInfo,
		},
		{
			name:     "invalid input",
			outcome:  flow.Outcome{State: flow.StateInvalidInput, Message: flow.MessageInvalidInput},
			wantTone: ToneWarning,
		},
		{
			name:     "parse error keeps raw text",
			outcome:  flow.Outcome{State: flow.StateParseError, Message: flow.MessageParseError, Raw: "NOT_JSON"},
			wantTone: ToneError,
			wantRaw:  "NOT_JSON",
			wantShow: true,
		},
		{
			name: "unavailable carries cause",
			outcome: flow.Outcome{
				State:   flow.StateUnavailable,
				Message: flow.MessageUnavailable,
				Err:     errors.New("connection refused"),
			},
			wantTone:   ToneError,
			wantDetail: "connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := FromOutcome(tt.outcome)

			assert.Equal(t, tt.wantTone, view.Tone)
			assert.Equal(t, tt.outcome.Message, view.Message)
			assert.Equal(t, tt.wantRaw, view.RawText)
			assert.Equal(t, tt.wantShow, view.ShowRaw)
			assert.Equal(t, tt.wantDetail, view.Detail)
			assert.False(t, view.Exportable)
			assert.Empty(t, view.ExportJSON)
			assert.False(t, view.HasResult())
		})
	}
}

func TestFromOutcome_ZeroValueIsIdle(t *testing.T) {
	view := FromOutcome(flow.Outcome{})

	assert.Equal(t, ToneInfo, view.Tone)
	assert.Equal(t, flow.MessageIdle, view.Message)
}
