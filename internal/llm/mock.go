package llm

import "context"

// MockGenerator implements TextGenerator for testing purposes.
type MockGenerator struct {
	Response string
	Err      error
	// Responses, when non-empty, is consumed one entry per call before
	// falling back to Response.
	Responses []string
	Prompts   []string
	LastOpts  Options
}

// Name returns the provider identifier.
func (m *MockGenerator) Name() string { return "mock" }

// Generate records the prompt and returns the canned response.
func (m *MockGenerator) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	m.Prompts = append(m.Prompts, prompt)
	m.LastOpts = opts
	if m.Err != nil {
		return "", m.Err
	}
	if len(m.Responses) > 0 {
		next := m.Responses[0]
		m.Responses = m.Responses[1:]
		return next, nil
	}
	return m.Response, nil
}
