package ssh

import (
	"context"
	"os"
	"strings"
	"sync"
)

// MockCommand records one executed remote command.
type MockCommand struct {
	Command string
}

// MockUpload records one uploaded file.
type MockUpload struct {
	Path    string
	Content []byte
	Mode    os.FileMode
}

// MockCommunicator is a Communicator for tests. Commands succeed with empty
// output unless a canned response is registered.
type MockCommunicator struct {
	mu        sync.Mutex
	commands  []MockCommand
	uploads   []MockUpload
	responses map[string]mockResponse
	uploadErr error
}

type mockResponse struct {
	output string
	err    error
}

// NewMockCommunicator creates an empty mock communicator.
func NewMockCommunicator() *MockCommunicator {
	return &MockCommunicator{
		responses: make(map[string]mockResponse),
	}
}

// Respond registers a canned response for any command containing substr.
func (m *MockCommunicator) Respond(substr, output string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[substr] = mockResponse{output: output, err: err}
}

// FailUploads makes every subsequent UploadFile return err.
func (m *MockCommunicator) FailUploads(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.uploadErr = err
}

// Execute implements Communicator.
func (m *MockCommunicator) Execute(_ context.Context, command string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commands = append(m.commands, MockCommand{Command: command})

	for substr, resp := range m.responses {
		if strings.Contains(command, substr) {
			return resp.output, resp.err
		}
	}
	return "", nil
}

// UploadFile implements Communicator.
func (m *MockCommunicator) UploadFile(_ context.Context, path string, content []byte, mode os.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.uploadErr != nil {
		return m.uploadErr
	}
	m.uploads = append(m.uploads, MockUpload{Path: path, Content: content, Mode: mode})
	return nil
}

// Commands returns the executed command lines so far.
func (m *MockCommunicator) Commands() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.commands))
	for i, c := range m.commands {
		out[i] = c.Command
	}
	return out
}

// Uploads returns the uploaded files so far.
func (m *MockCommunicator) Uploads() []MockUpload {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MockUpload, len(m.uploads))
	copy(out, m.uploads)
	return out
}

// ExecutedWith reports whether any executed command contains substr.
func (m *MockCommunicator) ExecutedWith(substr string) bool {
	for _, command := range m.Commands() {
		if strings.Contains(command, substr) {
			return true
		}
	}
	return false
}
