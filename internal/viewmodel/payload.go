package viewmodel

import (
	"github.com/Veraticus/potax/internal/flow"
)

// Payload is the machine-readable form of an outcome, used by the JSON API
// and the CLI's --json output.
type Payload struct {
	Result    flow.Result    `json:"result,omitempty"`
	Levels    []PayloadLevel `json:"levels,omitempty"`
	Request   flow.Request   `json:"request"`
	ID        string         `json:"id,omitempty"`
	State     flow.State     `json:"state"`
	Message   string         `json:"message"`
	Raw       *string        `json:"raw,omitempty"`
	Error     string         `json:"error,omitempty"`
	ElapsedMS int64          `json:"elapsed_ms,omitempty"`
}

// PayloadLevel is one taxonomy level in a Payload.
type PayloadLevel struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// ToPayload converts o to its machine-readable form. Raw is included,
// even when empty, whenever the classifier replied.
func ToPayload(o flow.Outcome) Payload {
	p := Payload{
		ID:        o.ID,
		State:     o.State,
		Message:   o.Message,
		Request:   o.Request,
		ElapsedMS: o.Elapsed.Milliseconds(),
	}
	if p.Message == "" {
		p.Message = flow.MessageIdle
	}
	if raw, ok := o.RawOutput(); ok {
		p.Raw = &raw
	}
	if o.Err != nil {
		p.Error = o.Err.Error()
	}
	if o.State == flow.StateSuccess {
		p.Result = o.Result
		for _, level := range o.Levels() {
			p.Levels = append(p.Levels, PayloadLevel{Key: level.Key, Value: level.Value})
		}
	}
	return p
}
