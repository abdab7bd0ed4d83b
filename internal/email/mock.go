package email

import "sync"

// MockProvider records sends instead of dialing SMTP. Used in tests
// and local development.
type MockProvider struct {
	mu   sync.Mutex
	Sent []*Email
}

func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (m *MockProvider) Send(email *Email) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, email)
	return nil
}

func (m *MockProvider) SendTemplate(to []string, subject, templateName string, data TemplateData) error {
	return m.Send(&Email{
		To:       to,
		Subject:  subject,
		Body:     templateName,
		HTMLBody: data.ActionURL,
	})
}

// SentCount returns how many messages have been dispatched.
func (m *MockProvider) SentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Sent)
}
