package email

// Provider sends mail. The SMTP implementation is used in production;
// tests and local development use MockProvider.
type Provider interface {
	// Send dispatches a prepared message. Delivery failures are
	// returned to the caller; there are no retries.
	Send(email *Email) error

	// SendTemplate renders the named template with data, inlines its
	// styles, derives a plaintext fallback and dispatches the result.
	SendTemplate(to []string, subject, templateName string, data TemplateData) error
}

// TemplateRenderer renders a named HTML template with data.
type TemplateRenderer interface {
	Render(templateName string, data TemplateData) (string, error)
}
