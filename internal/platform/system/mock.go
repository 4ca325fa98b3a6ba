package system

import (
	"context"
	"strings"
	"sync"
)

// MockResponse is a canned response for a command matched by prefix.
type MockResponse struct {
	Output string
	Err    error
}

// MockRunner records executed commands and serves canned responses.
// Commands with no matching response succeed with empty output.
type MockRunner struct {
	mu        sync.Mutex
	calls     []string
	responses map[string]MockResponse
}

// NewMockRunner creates an empty mock runner.
func NewMockRunner() *MockRunner {
	return &MockRunner{
		responses: make(map[string]MockResponse),
	}
}

// Respond registers a canned response for any command whose full command
// line starts with prefix. Later registrations win on longer prefixes.
func (m *MockRunner) Respond(prefix string, output string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[prefix] = MockResponse{Output: output, Err: err}
}

// Run implements Runner.
func (m *MockRunner) Run(_ context.Context, name string, args ...string) (string, error) {
	line := strings.Join(append([]string{name}, args...), " ")

	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, line)

	// Longest matching prefix wins
	var best string
	for prefix := range m.responses {
		if strings.HasPrefix(line, prefix) && len(prefix) > len(best) {
			best = prefix
		}
	}
	if best != "" {
		resp := m.responses[best]
		return resp.Output, resp.Err
	}
	return "", nil
}

// Calls returns the command lines executed so far.
func (m *MockRunner) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.calls))
	copy(out, m.calls)
	return out
}

// CalledWith reports whether any recorded command line starts with prefix.
func (m *MockRunner) CalledWith(prefix string) bool {
	for _, call := range m.Calls() {
		if strings.HasPrefix(call, prefix) {
			return true
		}
	}
	return false
}
