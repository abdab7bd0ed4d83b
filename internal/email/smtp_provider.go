package email

import (
	"fmt"

	"github.com/jaytaylor/html2text"
	"github.com/vanng822/go-premailer/premailer"
	"gopkg.in/gomail.v2"
)

// SMTPProvider sends mail over SMTP via gomail. Rendered HTML has its
// styles inlined and a plaintext alternative derived before dispatch.
type SMTPProvider struct {
	config   Config
	renderer TemplateRenderer
}

func NewSMTPProvider(config Config, renderer TemplateRenderer) (*SMTPProvider, error) {
	if config.Host == "" {
		return nil, fmt.Errorf("SMTP host is required")
	}
	if config.Port <= 0 || config.Port > 65535 {
		return nil, fmt.Errorf("invalid SMTP port: %d", config.Port)
	}
	if config.FromEmail == "" {
		return nil, fmt.Errorf("from email is required")
	}

	return &SMTPProvider{
		config:   config,
		renderer: renderer,
	}, nil
}

func (p *SMTPProvider) Send(email *Email) error {
	if len(email.To) == 0 {
		return fmt.Errorf("no recipients specified")
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", p.config.FromEmail, p.config.FromName)
	m.SetHeader("To", email.To...)
	m.SetHeader("Subject", email.Subject)
	m.SetBody("text/plain", email.Body)
	if email.HTMLBody != "" {
		m.AddAlternative("text/html", email.HTMLBody)
	}

	d := gomail.NewDialer(p.config.Host, p.config.Port, p.config.Username, p.config.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (p *SMTPProvider) SendTemplate(to []string, subject, templateName string, data TemplateData) error {
	if data.FromName == "" {
		data.FromName = p.config.FromName
	}

	html, err := p.renderer.Render(templateName, data)
	if err != nil {
		return fmt.Errorf("failed to render template: %w", err)
	}

	inlined, err := inlineStyles(html)
	if err != nil {
		return fmt.Errorf("failed to inline styles: %w", err)
	}

	text, err := html2text.FromString(inlined, html2text.Options{TextOnly: true})
	if err != nil {
		return fmt.Errorf("failed to derive text body: %w", err)
	}

	return p.Send(&Email{
		To:       to,
		Subject:  subject,
		Body:     text,
		HTMLBody: inlined,
	})
}

// inlineStyles moves <style> rules onto the elements so the markup
// survives mail clients that strip style blocks.
func inlineStyles(html string) (string, error) {
	prem, err := premailer.NewPremailerFromString(html, premailer.NewOptions())
	if err != nil {
		return "", err
	}
	return prem.Transform()
}
