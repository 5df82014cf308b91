package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vetcarepro/clinic-api/internal/model"
	"github.com/vetcarepro/clinic-api/pkg/apperror"
)

type appointmentFixture struct {
	svc          *AppointmentService
	appointments *fakeAppointmentRepo
	staff        *fakeStaffRepo
	client       *model.Client
	pet          *model.Pet
	vet          *model.StaffUser
	catalog      *model.Service
}

func newAppointmentFixture(t *testing.T) *appointmentFixture {
	t.Helper()
	ctx := context.Background()

	clients := newFakeClientRepo()
	pets := newFakePetRepo()
	staff := newFakeStaffRepo()
	services := newFakeServiceRepo()
	appointments := newFakeAppointmentRepo()

	client := &model.Client{FirstName: "Maria", LastName: "Lopez", Email: "maria@example.com"}
	require.NoError(t, clients.Create(ctx, client))

	pet := &model.Pet{ClientID: client.ID, Name: "Rocky", Species: "dog"}
	require.NoError(t, pets.Create(ctx, pet))

	vet := &model.StaffUser{FirstName: "Ana", LastName: "Perez", Email: "ana@clinic.com", Role: model.RoleVeterinarian}
	require.NoError(t, staff.Create(ctx, vet))

	catalog := &model.Service{Name: "Consulta General", BasePrice: 25000, DurationMinutes: 30}
	require.NoError(t, services.Create(ctx, catalog))

	svc := NewAppointmentService(appointments, clients, pets, services, staff, DefaultClinicHours(), testLogger())
	return &appointmentFixture{
		svc:          svc,
		appointments: appointments,
		staff:        staff,
		client:       client,
		pet:          pet,
		vet:          vet,
		catalog:      catalog,
	}
}

func (fx *appointmentFixture) bookRequest() *model.CreateAppointmentRequest {
	return &model.CreateAppointmentRequest{
		ClientID:  fx.client.ID,
		PetID:     fx.pet.ID,
		VetID:     &fx.vet.ID,
		ServiceID: fx.catalog.ID,
		Date:      "2025-03-10",
		Time:      "09:30",
		Reason:    "control anual",
	}
}

func TestBookSnapshotsPrice(t *testing.T) {
	fx := newAppointmentFixture(t)
	ctx := context.Background()

	apt, err := fx.svc.Book(ctx, fx.bookRequest())
	require.NoError(t, err)
	assert.Equal(t, 25000.0, apt.PriceAtBooking)
	assert.Equal(t, model.AppointmentStatusPending, apt.Status)
	assert.Equal(t, model.PaymentStatusPending, apt.PaymentStatus)

	fx.catalog.BasePrice = 30000
	stored, err := fx.svc.Get(ctx, apt.ID)
	require.NoError(t, err)
	assert.Equal(t, 25000.0, stored.PriceAtBooking)
}

func TestBookQueuesConfirmationEmail(t *testing.T) {
	fx := newAppointmentFixture(t)

	_, err := fx.svc.Book(context.Background(), fx.bookRequest())
	require.NoError(t, err)

	require.Len(t, fx.appointments.events, 1)
	evt := fx.appointments.events[0]
	assert.Equal(t, string(model.NotificationBookingConfirmation), evt.EventType)

	var payload model.NotificationPayload
	require.NoError(t, json.Unmarshal(evt.Payload, &payload))
	assert.Equal(t, "maria@example.com", payload.Recipient)
	assert.Equal(t, "Rocky", payload.PetName)
	assert.Equal(t, "Ana Perez", payload.VetName)
	assert.Equal(t, "09:30", payload.Time)
}

func TestBookRejectsOffGridSlot(t *testing.T) {
	fx := newAppointmentFixture(t)

	for _, slot := range []string{"08:30", "18:00", "09:15"} {
		req := fx.bookRequest()
		req.Time = slot
		_, err := fx.svc.Book(context.Background(), req)
		assert.True(t, apperror.Is(err, apperror.CodeValidation), "slot %s", slot)
	}
}

func TestBookConflictOnTakenSlot(t *testing.T) {
	fx := newAppointmentFixture(t)
	ctx := context.Background()

	_, err := fx.svc.Book(ctx, fx.bookRequest())
	require.NoError(t, err)

	_, err = fx.svc.Book(ctx, fx.bookRequest())
	assert.True(t, apperror.Is(err, apperror.CodeConflict))
}

func TestBookRejectsForeignPet(t *testing.T) {
	fx := newAppointmentFixture(t)
	ctx := context.Background()

	other := &model.Client{FirstName: "Juan", LastName: "Soto", Email: "juan@example.com"}
	require.NoError(t, newFakeClientRepo().Create(ctx, other))

	req := fx.bookRequest()
	req.PetID = uuid.New()
	_, err := fx.svc.Book(ctx, req)
	assert.True(t, apperror.Is(err, apperror.CodeNotFound))
}

func TestAvailabilityExcludesBooked(t *testing.T) {
	fx := newAppointmentFixture(t)
	ctx := context.Background()

	_, err := fx.svc.Book(ctx, fx.bookRequest())
	require.NoError(t, err)

	avail, err := fx.svc.Availability(ctx, "2025-03-10", fx.catalog.ID, &fx.vet.ID)
	require.NoError(t, err)
	assert.Len(t, avail.Slots, 17)
	assert.NotContains(t, avail.Slots, "09:30")
	assert.Equal(t, "Consulta General", avail.ServiceName)
	assert.Equal(t, 30, avail.DurationMinutes)
}

func TestAvailabilityWithoutVetBlocksGlobally(t *testing.T) {
	fx := newAppointmentFixture(t)
	ctx := context.Background()

	_, err := fx.svc.Book(ctx, fx.bookRequest())
	require.NoError(t, err)

	avail, err := fx.svc.Availability(ctx, "2025-03-10", fx.catalog.ID, nil)
	require.NoError(t, err)
	assert.NotContains(t, avail.Slots, "09:30")
}

func TestCancelAppendsReasonAndKeepsPayment(t *testing.T) {
	fx := newAppointmentFixture(t)
	ctx := context.Background()

	apt, err := fx.svc.Book(ctx, fx.bookRequest())
	require.NoError(t, err)

	cancelled, err := fx.svc.Cancel(ctx, apt.ID, "viaje imprevisto")
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusCancelled, cancelled.Status)
	assert.Contains(t, cancelled.Notes, "Cancelada: viaje imprevisto")
	assert.Equal(t, model.PaymentStatusPending, cancelled.PaymentStatus)

	last := fx.appointments.events[len(fx.appointments.events)-1]
	assert.Equal(t, string(model.NotificationCancellation), last.EventType)
}

func TestDoubleCancelConflicts(t *testing.T) {
	fx := newAppointmentFixture(t)
	ctx := context.Background()

	apt, err := fx.svc.Book(ctx, fx.bookRequest())
	require.NoError(t, err)
	_, err = fx.svc.Cancel(ctx, apt.ID, "primera")
	require.NoError(t, err)

	_, err = fx.svc.Cancel(ctx, apt.ID, "segunda")
	assert.True(t, apperror.Is(err, apperror.CodeConflict))
}

func TestCancelCompletedRejected(t *testing.T) {
	fx := newAppointmentFixture(t)
	ctx := context.Background()

	apt, err := fx.svc.Book(ctx, fx.bookRequest())
	require.NoError(t, err)
	fx.appointments.appointments[apt.ID].Status = model.AppointmentStatusCompleted

	_, err = fx.svc.Cancel(ctx, apt.ID, "")
	assert.True(t, apperror.Is(err, apperror.CodeInvalidState))
}

func TestCancelFreesSlot(t *testing.T) {
	fx := newAppointmentFixture(t)
	ctx := context.Background()

	apt, err := fx.svc.Book(ctx, fx.bookRequest())
	require.NoError(t, err)
	_, err = fx.svc.Cancel(ctx, apt.ID, "")
	require.NoError(t, err)

	_, err = fx.svc.Book(ctx, fx.bookRequest())
	assert.NoError(t, err)
}

func TestRescheduleQueuesNotification(t *testing.T) {
	fx := newAppointmentFixture(t)
	ctx := context.Background()

	apt, err := fx.svc.Book(ctx, fx.bookRequest())
	require.NoError(t, err)

	newTime := "11:00"
	updated, err := fx.svc.Update(ctx, apt.ID, &model.UpdateAppointmentRequest{Time: &newTime})
	require.NoError(t, err)
	assert.Equal(t, "11:00", updated.Time)

	last := fx.appointments.events[len(fx.appointments.events)-1]
	assert.Equal(t, string(model.NotificationReschedule), last.EventType)
}

func TestVetChangeQueuesReschedule(t *testing.T) {
	fx := newAppointmentFixture(t)
	ctx := context.Background()

	apt, err := fx.svc.Book(ctx, fx.bookRequest())
	require.NoError(t, err)

	other := &model.StaffUser{FirstName: "Diego", LastName: "Soto", Email: "diego@clinic.com", Role: model.RoleVeterinarian}
	require.NoError(t, fx.staff.Create(ctx, other))

	updated, err := fx.svc.Update(ctx, apt.ID, &model.UpdateAppointmentRequest{VetID: &other.ID})
	require.NoError(t, err)
	require.NotNil(t, updated.VetID)
	assert.Equal(t, other.ID, *updated.VetID)

	last := fx.appointments.events[len(fx.appointments.events)-1]
	assert.Equal(t, string(model.NotificationReschedule), last.EventType)
}

func TestVetChangeToTakenSlotConflicts(t *testing.T) {
	fx := newAppointmentFixture(t)
	ctx := context.Background()

	other := &model.StaffUser{FirstName: "Diego", LastName: "Soto", Email: "diego@clinic.com", Role: model.RoleVeterinarian}
	require.NoError(t, fx.staff.Create(ctx, other))

	apt, err := fx.svc.Book(ctx, fx.bookRequest())
	require.NoError(t, err)

	taken := fx.bookRequest()
	taken.VetID = &other.ID
	_, err = fx.svc.Book(ctx, taken)
	require.NoError(t, err)

	_, err = fx.svc.Update(ctx, apt.ID, &model.UpdateAppointmentRequest{VetID: &other.ID})
	assert.True(t, apperror.Is(err, apperror.CodeConflict))
}

func TestRescheduleToTakenSlotConflicts(t *testing.T) {
	fx := newAppointmentFixture(t)
	ctx := context.Background()

	first, err := fx.svc.Book(ctx, fx.bookRequest())
	require.NoError(t, err)

	second := fx.bookRequest()
	second.Time = "10:00"
	other, err := fx.svc.Book(ctx, second)
	require.NoError(t, err)

	target := first.Time
	_, err = fx.svc.Update(ctx, other.ID, &model.UpdateAppointmentRequest{Time: &target})
	assert.True(t, apperror.Is(err, apperror.CodeConflict))
}

func TestUpdateTerminalRejected(t *testing.T) {
	fx := newAppointmentFixture(t)
	ctx := context.Background()

	apt, err := fx.svc.Book(ctx, fx.bookRequest())
	require.NoError(t, err)
	_, err = fx.svc.Cancel(ctx, apt.ID, "")
	require.NoError(t, err)

	notes := "late edit"
	_, err = fx.svc.Update(ctx, apt.ID, &model.UpdateAppointmentRequest{Notes: &notes})
	assert.True(t, apperror.Is(err, apperror.CodeInvalidState))
}

func TestDayStats(t *testing.T) {
	fx := newAppointmentFixture(t)
	ctx := context.Background()

	first, err := fx.svc.Book(ctx, fx.bookRequest())
	require.NoError(t, err)

	second := fx.bookRequest()
	second.Time = "10:00"
	_, err = fx.svc.Book(ctx, second)
	require.NoError(t, err)

	third := fx.bookRequest()
	third.Time = "11:00"
	cancelled, err := fx.svc.Book(ctx, third)
	require.NoError(t, err)
	_, err = fx.svc.Cancel(ctx, cancelled.ID, "")
	require.NoError(t, err)

	confirmed := model.AppointmentStatusConfirmed
	_, err = fx.svc.Update(ctx, first.ID, &model.UpdateAppointmentRequest{Status: &confirmed})
	require.NoError(t, err)

	stats, err := fx.svc.DayStats(ctx, "2025-03-10")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.Pending)
	assert.Equal(t, 1, stats.Confirmed)
	assert.Equal(t, 0, stats.Completed)
}
