package email

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/vetcarepro/clinic-api/internal/model"
)

var subjects = map[model.NotificationKind]string{
	model.NotificationBookingConfirmation: "Cita agendada - VetCare Pro",
	model.NotificationReminder:            "Recordatorio de cita - VetCare Pro",
	model.NotificationPaymentConfirmation: "Pago confirmado - VetCare Pro",
	model.NotificationWelcome:             "Bienvenido a VetCare Pro",
	model.NotificationCancellation:        "Cita cancelada - VetCare Pro",
	model.NotificationReschedule:          "Cita reprogramada - VetCare Pro",
}

var bodies = map[model.NotificationKind]string{
	model.NotificationBookingConfirmation: `
<h2>Hola {{.ClientName}},</h2>
<p>Tu cita para <strong>{{.PetName}}</strong> ha sido agendada.</p>
<ul>
  <li>Servicio: {{.ServiceName}}</li>
  {{if .VetName}}<li>Veterinario: {{.VetName}}</li>{{end}}
  <li>Fecha: {{.Date}}</li>
  <li>Hora: {{.Time}}</li>
</ul>
<p>Te esperamos.</p>`,
	model.NotificationReminder: `
<h2>Hola {{.ClientName}},</h2>
<p>Te recordamos la cita de <strong>{{.PetName}}</strong> el {{.Date}} a las {{.Time}}.</p>`,
	model.NotificationPaymentConfirmation: `
<h2>Hola {{.ClientName}},</h2>
<p>Hemos recibido tu pago de <strong>${{printf "%.0f" .Amount}}</strong>.</p>
<ul>
  {{if .InvoiceNumber}}<li>Factura: {{.InvoiceNumber}}</li>{{end}}
  <li>Medio de pago: {{.PaymentMethod}}</li>
</ul>
<p>Gracias por confiar en nosotros.</p>`,
	model.NotificationWelcome: `
<h2>Hola {{.ClientName}},</h2>
<p>Tu cuenta en VetCare Pro fue creada. Ya puedes agendar citas para tus mascotas.</p>`,
	model.NotificationCancellation: `
<h2>Hola {{.ClientName}},</h2>
<p>La cita de <strong>{{.PetName}}</strong> del {{.Date}} a las {{.Time}} fue cancelada.</p>
{{if .Reason}}<p>Motivo: {{.Reason}}</p>{{end}}`,
	model.NotificationReschedule: `
<h2>Hola {{.ClientName}},</h2>
<p>La cita de <strong>{{.PetName}}</strong> fue reprogramada.</p>
<ul>
  <li>Nueva fecha: {{.Date}}</li>
  <li>Nueva hora: {{.Time}}</li>
</ul>`,
}

var templates = func() map[model.NotificationKind]*template.Template {
	out := make(map[model.NotificationKind]*template.Template, len(bodies))
	for kind, body := range bodies {
		out[kind] = template.Must(template.New(string(kind)).Parse(body))
	}
	return out
}()

// Render produces the subject and HTML body for a notification kind.
func Render(kind model.NotificationKind, payload model.NotificationPayload) (subject, body string, err error) {
	tmpl, ok := templates[kind]
	if !ok {
		return "", "", fmt.Errorf("unknown notification kind %q", kind)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, payload); err != nil {
		return "", "", fmt.Errorf("failed to render %s template: %w", kind, err)
	}
	return subjects[kind], buf.String(), nil
}
