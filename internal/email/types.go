package email

// Email is one outgoing message. Body is the plaintext alternative,
// HTMLBody the rendered template.
type Email struct {
	To       []string
	Subject  string
	Body     string
	HTMLBody string
}

// TemplateData carries the variables available to email templates.
type TemplateData struct {
	UserName   string
	Subject    string
	Message    string
	ActionURL  string
	ActionText string
	FromName   string
}

// Config for the SMTP provider.
type Config struct {
	Host         string
	Port         int
	Username     string
	Password     string
	FromEmail    string
	FromName     string
	TemplatesDir string
}
