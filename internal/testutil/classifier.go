// Package testutil provides test doubles shared by the view packages.
//
// Example:
//
//	classifier := testutil.NewClassifier().
//		ReplyTo("Office chairs", testutil.ReplyFurniture).
//		Fail(errors.New("upstream timeout"))
//
//	f := flow.New(classifier, flow.WithLogger(testutil.DiscardLogger()))
package testutil

import (
	"context"
	"io"
	"log/slog"
	"sync"
)

// Canned classifier replies.
const (
	ReplyCloudHosting = `{"L1":"Information Technology","L2":"Cloud Services","L3":"Hosting"}`
	ReplyFurniture    = `{"L1":"Facilities","L2":"Furniture","L3":"Seating"}`
	ReplyL1Only       = `{"L1":"IT"}`
	ReplyNotJSON      = "NOT_JSON"
)

// Call is one recorded Classify invocation.
type Call struct {
	Description string
	Supplier    string
}

// Classifier is a scripted classifier. Replies registered with ReplyTo win,
// then the error set by Fail, then the default reply. It is safe for
// concurrent use.
type Classifier struct {
	err      error
	replies  map[string]string
	fallback string
	calls    []Call
	mu       sync.Mutex
}

// NewClassifier returns a Classifier that replies with empty text.
func NewClassifier() *Classifier {
	return &Classifier{replies: make(map[string]string)}
}

// Reply sets the default reply.
func (c *Classifier) Reply(raw string) *Classifier {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fallback = raw
	return c
}

// ReplyTo sets the reply for one description.
func (c *Classifier) ReplyTo(description, raw string) *Classifier {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.replies[description] = raw
	return c
}

// Fail makes every call without a ReplyTo entry return err.
func (c *Classifier) Fail(err error) *Classifier {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.err = err
	return c
}

// Classify records the call and returns the scripted reply.
func (c *Classifier) Classify(_ context.Context, description, supplier string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.calls = append(c.calls, Call{Description: description, Supplier: supplier})
	if raw, ok := c.replies[description]; ok {
		return raw, nil
	}
	if c.err != nil {
		return "", c.err
	}
	return c.fallback, nil
}

// Calls returns a copy of the recorded calls.
func (c *Classifier) Calls() []Call {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Call(nil), c.calls...)
}

// CallCount returns how many times Classify ran.
func (c *Classifier) CallCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.calls)
}

// DiscardLogger returns a logger that drops everything.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
