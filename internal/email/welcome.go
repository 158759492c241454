package email

import (
	"bytes"
	"fmt"
	"html/template"
)

// welcomeTemplate is the HTML fallback sent when no Brevo template is
// configured for the account.
var welcomeTemplate = template.Must(template.New("welcome").Parse(`<!DOCTYPE html>
<html lang="es">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="margin: 0; padding: 0; background-color: #f8fafc; font-family: system-ui, -apple-system, 'Segoe UI', Roboto, sans-serif;">
  <div style="max-width: 600px; margin: 0 auto; padding: 24px;">
    <div style="background: #1f2937; border-radius: 16px; padding: 32px; color: #f3f4f6;">
      <h1 style="margin-top: 0; font-size: 24px;">¡Bienvenido{{if .Name}}, {{.Name}}{{end}}! 🎮</h1>
      <p style="line-height: 1.6; color: #d1d5db;">
        Gracias por suscribirte a nuestra newsletter de gaming móvil. A partir de ahora
        recibirás lo mejor del mundo de los juegos móviles directamente en tu bandeja:
      </p>
      <ul style="line-height: 1.8; color: #d1d5db;">
        <li>Los TOP 5 semanales de cada género</li>
        <li>Análisis y tendencias del sector</li>
        <li>Noticias de última hora</li>
      </ul>
      <p style="line-height: 1.6; color: #d1d5db;">
        Nos vemos en la próxima edición.
      </p>
      <p style="color: #9ca3af; font-size: 13px; margin-bottom: 0;">
        Recibes este correo porque te suscribiste en nuestra web.
      </p>
    </div>
  </div>
</body>
</html>`))

// RenderWelcome produces the welcome email HTML for a subscriber name (which
// may be empty).
func RenderWelcome(name string) (string, error) {
	var buf bytes.Buffer
	if err := welcomeTemplate.Execute(&buf, struct{ Name string }{Name: name}); err != nil {
		return "", fmt.Errorf("failed to render welcome email: %w", err)
	}
	return buf.String(), nil
}
