package email

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
)

// TemplateManager loads and renders HTML email templates. Templates
// live as {name}.html files under the configured directory, each
// defining a "content" block wrapped by base.html; built-in templates
// serve as fallback when no file exists.
type TemplateManager struct {
	templates map[string]*template.Template
	dir       string
}

// KnownTemplates are loaded eagerly so a missing template fails at
// startup rather than at send time.
var KnownTemplates = []string{
	"password-reset",
	"welcome",
}

func NewTemplateManager(dir string) (*TemplateManager, error) {
	tm := &TemplateManager{
		templates: make(map[string]*template.Template),
		dir:       dir,
	}

	for _, name := range KnownTemplates {
		tpl, err := tm.loadTemplate(name)
		if err != nil {
			return nil, fmt.Errorf("failed to load template %s: %w", name, err)
		}
		tm.templates[name] = tpl
	}

	return tm, nil
}

// Render executes the named template with data and returns the HTML.
func (tm *TemplateManager) Render(name string, data TemplateData) (string, error) {
	tpl, ok := tm.templates[name]
	if !ok {
		return "", fmt.Errorf("unknown email template: %s", name)
	}

	var buf bytes.Buffer
	if err := tpl.ExecuteTemplate(&buf, "base", data); err != nil {
		return "", fmt.Errorf("failed to render template %s: %w", name, err)
	}
	return buf.String(), nil
}

func (tm *TemplateManager) loadTemplate(name string) (*template.Template, error) {
	basePath := filepath.Join(tm.dir, "base.html")
	contentPath := filepath.Join(tm.dir, name+".html")

	if fileExists(basePath) && fileExists(contentPath) {
		return template.ParseFiles(basePath, contentPath)
	}

	return tm.builtinTemplate(name)
}

func (tm *TemplateManager) builtinTemplate(name string) (*template.Template, error) {
	content, ok := builtinTemplates[name]
	if !ok {
		return nil, fmt.Errorf("no builtin template for %s", name)
	}
	return template.New(name).Parse(builtinBase + content)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Built-in fallbacks. The style block is inlined by the provider
// before sending.
const builtinBase = `{{define "base"}}<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  body { font-family: sans-serif; color: #333; }
  .wrap { max-width: 560px; margin: 0 auto; padding: 24px; }
  .button { display: inline-block; padding: 12px 20px; background: #364faa; color: #fff; text-decoration: none; border-radius: 4px; }
  .muted { color: #888; font-size: 12px; }
</style>
</head>
<body>
<div class="wrap">
{{template "content" .}}
<p class="muted">{{.FromName}}</p>
</div>
</body>
</html>{{end}}`

var builtinTemplates = map[string]string{
	"password-reset": `{{define "content"}}
<h2>Password reset</h2>
<p>Hi {{.UserName}},</p>
<p>A password reset was requested for your account. The link below is
valid for one hour and can be used once.</p>
<p><a class="button" href="{{.ActionURL}}">{{.ActionText}}</a></p>
<p>If you did not request this, you can ignore this email.</p>
{{end}}`,

	"welcome": `{{define "content"}}
<h2>Welcome, {{.UserName}}!</h2>
<p>Your account is ready. Add your first store and start collecting
reviews.</p>
<p><a class="button" href="{{.ActionURL}}">{{.ActionText}}</a></p>
{{end}}`,
}
