package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vetcarepro/clinic-api/internal/model"
)

func TestRenderBookingConfirmation(t *testing.T) {
	subject, body, err := Render(model.NotificationBookingConfirmation, model.NotificationPayload{
		ClientName:  "Maria Lopez",
		PetName:     "Rocky",
		ServiceName: "Consulta General",
		VetName:     "Dr. Perez",
		Date:        "2025-03-10",
		Time:        "09:30",
	})
	require.NoError(t, err)
	assert.Contains(t, subject, "Cita agendada")
	assert.Contains(t, body, "Rocky")
	assert.Contains(t, body, "Dr. Perez")
	assert.Contains(t, body, "09:30")
}

func TestRenderOmitsEmptyVet(t *testing.T) {
	_, body, err := Render(model.NotificationBookingConfirmation, model.NotificationPayload{
		ClientName:  "Maria Lopez",
		PetName:     "Rocky",
		ServiceName: "Consulta General",
		Date:        "2025-03-10",
		Time:        "09:30",
	})
	require.NoError(t, err)
	assert.NotContains(t, body, "Veterinario")
}

func TestRenderPaymentConfirmation(t *testing.T) {
	subject, body, err := Render(model.NotificationPaymentConfirmation, model.NotificationPayload{
		ClientName:    "Maria Lopez",
		InvoiceNumber: "FAC-000042",
		Amount:        29750,
		PaymentMethod: "card",
	})
	require.NoError(t, err)
	assert.Contains(t, subject, "Pago confirmado")
	assert.Contains(t, body, "FAC-000042")
	assert.Contains(t, body, "$29750")
}

func TestRenderUnknownKind(t *testing.T) {
	_, _, err := Render(model.NotificationKind("nope"), model.NotificationPayload{})
	assert.Error(t, err)
}

func TestRenderEveryKind(t *testing.T) {
	payload := model.NotificationPayload{
		ClientName: "Ana", PetName: "Luna", ServiceName: "Vacunacion",
		Date: "2025-03-11", Time: "10:00", InvoiceNumber: "FAC-000001",
		Amount: 15000, PaymentMethod: "cash", Reason: "viaje",
	}
	for kind := range templates {
		subject, body, err := Render(kind, payload)
		require.NoError(t, err, "kind %s", kind)
		assert.NotEmpty(t, subject)
		assert.NotEmpty(t, body)
	}
}
