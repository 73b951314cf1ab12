package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

var welcomeTmpl = template.Must(template.New("welcome").Parse(`
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333; max-width: 560px; margin: 0 auto;">
  <h2>Welcome{{if .Name}}, {{.Name}}{{end}}!</h2>
  <p>Your account is ready. Sign in to start managing customers and invoices from your dashboard.</p>
  <p style="color: #888; font-size: 12px;">If you did not create this account, you can ignore this email.</p>
</body>
</html>
`))

// Render produces the subject and HTML body for a job template.
func Render(tmpl string, data map[string]any) (subject, html string, err error) {
	switch tmpl {
	case TemplateWelcome:
		var buf bytes.Buffer
		if err := welcomeTmpl.Execute(&buf, data); err != nil {
			return "", "", err
		}
		return "Welcome to your dashboard", buf.String(), nil
	default:
		return "", "", fmt.Errorf("unknown email template %q", tmpl)
	}
}
