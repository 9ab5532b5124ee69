package llm

import "context"

// staticClient answers every prompt with the same configured text. It is
// used for demos and for exercising the views without network access.
type staticClient struct {
	response string
}

func newStaticClient(cfg Config) Client {
	response := cfg.StaticResponse
	if response == "" {
		response = `{"L1":"Unclassified","L2":"Unclassified","L3":"Unclassified"}`
	}
	return &staticClient{response: response}
}

func (c *staticClient) Complete(ctx context.Context, _, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return c.response, nil
}
