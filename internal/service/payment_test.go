package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vetcarepro/clinic-api/internal/model"
	"github.com/vetcarepro/clinic-api/internal/payment"
	"github.com/vetcarepro/clinic-api/pkg/apperror"
)

type fakeProvider struct {
	sessions map[string]*payment.Session
	fail     bool
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{sessions: make(map[string]*payment.Session)}
}

func (f *fakeProvider) CreateSession(_ context.Context, params payment.CreateSessionParams) (*payment.Session, error) {
	if f.fail {
		return nil, errors.New("provider down")
	}
	id := "sess_" + params.Reference
	s := &payment.Session{
		ID:          id,
		URL:         "https://pay.example.com/" + id,
		Status:      payment.SessionStatusOpen,
		AmountTotal: params.Amount,
		Currency:    params.Currency,
		Reference:   params.Reference,
	}
	f.sessions[id] = s
	return s, nil
}

func (f *fakeProvider) RetrieveSession(_ context.Context, sessionID string) (*payment.Session, error) {
	if f.fail {
		return nil, errors.New("provider down")
	}
	s, ok := f.sessions[sessionID]
	if !ok {
		return nil, errors.New("no such session")
	}
	return s, nil
}

func (f *fakeProvider) Refund(_ context.Context, transactionID string, amount float64) (*payment.Refund, error) {
	if f.fail {
		return nil, errors.New("provider down")
	}
	if _, ok := f.sessions[transactionID]; !ok {
		return nil, errors.New("no such transaction")
	}
	return &payment.Refund{
		ID:            "re_" + transactionID,
		TransactionID: transactionID,
		Amount:        amount,
		Status:        "succeeded",
	}, nil
}

func (f *fakeProvider) complete(sessionID string) {
	s := f.sessions[sessionID]
	s.Status = payment.SessionStatusComplete
	s.PaymentStatus = "paid"
}

type paymentFixture struct {
	appointments *fakeAppointmentRepo
	invoices     *fakeInvoiceRepo
	provider     *fakeProvider
	payments     *PaymentService
	booking      *AppointmentService
	fx           *appointmentFixture
}

func newPaymentFixture(t *testing.T) *paymentFixture {
	t.Helper()
	fx := newAppointmentFixture(t)

	clients := newFakeClientRepo()
	require.NoError(t, clients.Create(context.Background(), fx.client))
	services := newFakeServiceRepo()
	require.NoError(t, services.Create(context.Background(), fx.catalog))

	invoices := newFakeInvoiceRepo(fx.appointments)
	provider := newFakeProvider()
	payments := NewPaymentService(
		fx.appointments, clients, services, invoices, provider,
		PaymentConfig{SuccessURL: "https://clinic/success", CancelURL: "https://clinic/cancel"},
		testLogger(),
	)
	return &paymentFixture{
		appointments: fx.appointments,
		invoices:     invoices,
		provider:     provider,
		payments:     payments,
		booking:      fx.svc,
		fx:           fx,
	}
}

func TestCreateSessionChargesPriceSnapshot(t *testing.T) {
	pf := newPaymentFixture(t)
	ctx := context.Background()

	apt, err := pf.booking.Book(ctx, pf.fx.bookRequest())
	require.NoError(t, err)

	session, err := pf.payments.CreateSession(ctx, apt.ID)
	require.NoError(t, err)
	assert.Equal(t, 25000.0, session.Amount)
	assert.NotEmpty(t, session.URL)
}

func TestCreateSessionRejectsCancelled(t *testing.T) {
	pf := newPaymentFixture(t)
	ctx := context.Background()

	apt, err := pf.booking.Book(ctx, pf.fx.bookRequest())
	require.NoError(t, err)
	_, err = pf.booking.Cancel(ctx, apt.ID, "")
	require.NoError(t, err)

	_, err = pf.payments.CreateSession(ctx, apt.ID)
	assert.True(t, apperror.Is(err, apperror.CodeInvalidState))
}

func TestCreateSessionProviderDown(t *testing.T) {
	pf := newPaymentFixture(t)
	ctx := context.Background()

	apt, err := pf.booking.Book(ctx, pf.fx.bookRequest())
	require.NoError(t, err)

	pf.provider.fail = true
	_, err = pf.payments.CreateSession(ctx, apt.ID)
	assert.True(t, apperror.Is(err, apperror.CodeUpstream))
}

func TestConfirmSettlesAppointment(t *testing.T) {
	pf := newPaymentFixture(t)
	ctx := context.Background()

	apt, err := pf.booking.Book(ctx, pf.fx.bookRequest())
	require.NoError(t, err)
	session, err := pf.payments.CreateSession(ctx, apt.ID)
	require.NoError(t, err)
	pf.provider.complete(session.SessionID)

	inv, err := pf.payments.Confirm(ctx, session.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 25000.0, inv.Subtotal)
	assert.Equal(t, 4750.0, inv.Tax)
	assert.Equal(t, 29750.0, inv.Total)
	assert.Equal(t, "FAC-000001", inv.Number)
	assert.Equal(t, model.InvoiceStatusPaid, inv.PaymentStatus)

	settled, err := pf.booking.Get(ctx, apt.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusConfirmed, settled.Status)
	assert.Equal(t, model.PaymentStatusPaid, settled.PaymentStatus)

	pays, err := pf.invoices.ListPayments(ctx)
	require.NoError(t, err)
	require.Len(t, pays, 1)
	assert.Equal(t, session.SessionID, pays[0].TransactionID)
	assert.Equal(t, 25000.0, pays[0].Amount)
}

func TestConfirmTwiceCreatesOneInvoice(t *testing.T) {
	pf := newPaymentFixture(t)
	ctx := context.Background()

	apt, err := pf.booking.Book(ctx, pf.fx.bookRequest())
	require.NoError(t, err)
	session, err := pf.payments.CreateSession(ctx, apt.ID)
	require.NoError(t, err)
	pf.provider.complete(session.SessionID)

	_, err = pf.payments.Confirm(ctx, session.SessionID)
	require.NoError(t, err)

	_, err = pf.payments.Confirm(ctx, session.SessionID)
	assert.True(t, apperror.Is(err, apperror.CodeConflict))

	invs, err := pf.invoices.List(ctx)
	require.NoError(t, err)
	assert.Len(t, invs, 1)
}

func TestConfirmRejectsUnpaidSession(t *testing.T) {
	pf := newPaymentFixture(t)
	ctx := context.Background()

	apt, err := pf.booking.Book(ctx, pf.fx.bookRequest())
	require.NoError(t, err)
	session, err := pf.payments.CreateSession(ctx, apt.ID)
	require.NoError(t, err)

	_, err = pf.payments.Confirm(ctx, session.SessionID)
	assert.True(t, apperror.Is(err, apperror.CodeInvalidState))
}

func TestConfirmQueuesPaymentEmail(t *testing.T) {
	pf := newPaymentFixture(t)
	ctx := context.Background()

	apt, err := pf.booking.Book(ctx, pf.fx.bookRequest())
	require.NoError(t, err)
	session, err := pf.payments.CreateSession(ctx, apt.ID)
	require.NoError(t, err)
	pf.provider.complete(session.SessionID)

	_, err = pf.payments.Confirm(ctx, session.SessionID)
	require.NoError(t, err)

	require.Len(t, pf.invoices.events, 1)
	evt := pf.invoices.events[0]
	assert.Equal(t, string(model.NotificationPaymentConfirmation), evt.EventType)

	var payload model.NotificationPayload
	require.NoError(t, json.Unmarshal(evt.Payload, &payload))
	assert.Equal(t, 25000.0, payload.Amount)
	assert.Equal(t, "FAC-000001", payload.InvoiceNumber)
	assert.Equal(t, "card", payload.PaymentMethod)
}

func TestRefundMarksPaymentRefunded(t *testing.T) {
	pf := newPaymentFixture(t)
	ctx := context.Background()

	apt, err := pf.booking.Book(ctx, pf.fx.bookRequest())
	require.NoError(t, err)
	session, err := pf.payments.CreateSession(ctx, apt.ID)
	require.NoError(t, err)
	pf.provider.complete(session.SessionID)
	inv, err := pf.payments.Confirm(ctx, session.SessionID)
	require.NoError(t, err)

	pay, err := pf.payments.Refund(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentRecordRefunded, pay.Status)
	assert.Equal(t, session.SessionID, pay.TransactionID)
}

func TestRefundRejectsUnpaidInvoice(t *testing.T) {
	pf := newPaymentFixture(t)
	ctx := context.Background()

	inv := &model.Invoice{
		ClientID:      pf.fx.client.ID,
		Subtotal:      10000,
		Tax:           1900,
		Total:         11900,
		PaymentStatus: model.InvoiceStatusPending,
		Items: []*model.InvoiceItem{{
			ServiceID:   &pf.fx.catalog.ID,
			Description: pf.fx.catalog.Name,
			Quantity:    1,
			UnitPrice:   10000,
			Subtotal:    10000,
		}},
	}
	require.NoError(t, pf.invoices.CreateWithItems(ctx, inv))

	_, err := pf.payments.Refund(ctx, inv.ID)
	assert.True(t, apperror.Is(err, apperror.CodeInvalidState))
}
