package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vetcarepro/clinic-api/internal/model"
	"github.com/vetcarepro/clinic-api/internal/repository"
	"github.com/vetcarepro/clinic-api/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(&logger.Config{Level: logger.ErrorLevel})
}

type fakeClientRepo struct {
	mu      sync.Mutex
	clients map[uuid.UUID]*model.Client
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{clients: make(map[uuid.UUID]*model.Client)}
}

func (f *fakeClientRepo) Create(_ context.Context, c *model.Client) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.clients {
		if existing.Email == c.Email {
			return repository.ErrDuplicate
		}
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.Active = true
	f.clients[c.ID] = c
	return nil
}

func (f *fakeClientRepo) Get(_ context.Context, id uuid.UUID) (*model.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.clients[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return c, nil
}

func (f *fakeClientRepo) GetByEmail(_ context.Context, email string) (*model.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.clients {
		if c.Email == email && c.Active {
			return c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeClientRepo) List(_ context.Context, includeInactive bool) ([]*model.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.Client
	for _, c := range f.clients {
		if includeInactive || c.Active {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeClientRepo) Search(_ context.Context, term string) ([]*model.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	term = strings.ToLower(term)
	var out []*model.Client
	for _, c := range f.clients {
		if !c.Active {
			continue
		}
		haystack := strings.ToLower(c.FirstName + " " + c.LastName + " " + c.Email + " " + c.LegalID)
		if strings.Contains(haystack, term) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeClientRepo) Update(_ context.Context, c *model.Client) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.clients[c.ID]; !ok {
		return repository.ErrNotFound
	}
	f.clients[c.ID] = c
	return nil
}

func (f *fakeClientRepo) Deactivate(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.clients[id]
	if !ok || !c.Active {
		return repository.ErrNotFound
	}
	c.Active = false
	return nil
}

type fakePetRepo struct {
	mu   sync.Mutex
	pets map[uuid.UUID]*model.Pet
}

func newFakePetRepo() *fakePetRepo {
	return &fakePetRepo{pets: make(map[uuid.UUID]*model.Pet)}
}

func (f *fakePetRepo) Create(_ context.Context, p *model.Pet) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.Active = true
	f.pets[p.ID] = p
	return nil
}

func (f *fakePetRepo) Get(_ context.Context, id uuid.UUID) (*model.Pet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.pets[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return p, nil
}

func (f *fakePetRepo) GetOwned(_ context.Context, id, clientID uuid.UUID) (*model.Pet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.pets[id]
	if !ok || p.ClientID != clientID || !p.Active {
		return nil, repository.ErrNotFound
	}
	return p, nil
}

func (f *fakePetRepo) ListByClient(_ context.Context, clientID uuid.UUID) ([]*model.Pet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.Pet
	for _, p := range f.pets {
		if p.ClientID == clientID && p.Active {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePetRepo) List(_ context.Context, includeInactive bool) ([]*model.Pet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.Pet
	for _, p := range f.pets {
		if includeInactive || p.Active {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePetRepo) Update(_ context.Context, p *model.Pet) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.pets[p.ID]; !ok {
		return repository.ErrNotFound
	}
	f.pets[p.ID] = p
	return nil
}

func (f *fakePetRepo) Deactivate(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.pets[id]
	if !ok || !p.Active {
		return repository.ErrNotFound
	}
	p.Active = false
	return nil
}

type fakeStaffRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*model.StaffUser
}

func newFakeStaffRepo() *fakeStaffRepo {
	return &fakeStaffRepo{users: make(map[uuid.UUID]*model.StaffUser)}
}

func (f *fakeStaffRepo) Create(_ context.Context, u *model.StaffUser) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return repository.ErrDuplicate
		}
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	u.Active = true
	f.users[u.ID] = u
	return nil
}

func (f *fakeStaffRepo) Get(_ context.Context, id uuid.UUID) (*model.StaffUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func (f *fakeStaffRepo) GetByEmail(_ context.Context, email string) (*model.StaffUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email && u.Active {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeStaffRepo) List(_ context.Context, role *model.Role) ([]*model.StaffUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.StaffUser
	for _, u := range f.users {
		if !u.Active {
			continue
		}
		if role != nil && u.Role != *role {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeStaffRepo) Update(_ context.Context, u *model.StaffUser) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[u.ID]; !ok {
		return repository.ErrNotFound
	}
	f.users[u.ID] = u
	return nil
}

func (f *fakeStaffRepo) Deactivate(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok || !u.Active {
		return repository.ErrNotFound
	}
	u.Active = false
	return nil
}

type fakeServiceRepo struct {
	mu       sync.Mutex
	services map[uuid.UUID]*model.Service
}

func newFakeServiceRepo() *fakeServiceRepo {
	return &fakeServiceRepo{services: make(map[uuid.UUID]*model.Service)}
}

func (f *fakeServiceRepo) Create(_ context.Context, s *model.Service) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	s.Active = true
	f.services[s.ID] = s
	return nil
}

func (f *fakeServiceRepo) Get(_ context.Context, id uuid.UUID) (*model.Service, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.services[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return s, nil
}

func (f *fakeServiceRepo) List(_ context.Context, activeOnly bool) ([]*model.Service, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.Service
	for _, s := range f.services {
		if !activeOnly || s.Active {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeServiceRepo) Update(_ context.Context, s *model.Service) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.services[s.ID]; !ok {
		return repository.ErrNotFound
	}
	f.services[s.ID] = s
	return nil
}

type fakeAppointmentRepo struct {
	mu           sync.Mutex
	appointments map[uuid.UUID]*model.Appointment
	events       []*model.OutboxEvent
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{appointments: make(map[uuid.UUID]*model.Appointment)}
}

func (f *fakeAppointmentRepo) slotTaken(apt *model.Appointment) bool {
	for _, other := range f.appointments {
		if other.ID == apt.ID || other.Status == model.AppointmentStatusCancelled {
			continue
		}
		if other.Date != apt.Date || other.Time != apt.Time {
			continue
		}
		if apt.VetID == nil || (other.VetID != nil && *other.VetID == *apt.VetID) {
			return true
		}
	}
	return false
}

func (f *fakeAppointmentRepo) CreateBooked(_ context.Context, apt *model.Appointment, evt *model.OutboxEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.slotTaken(apt) {
		return repository.ErrSlotTaken
	}
	if apt.ID == uuid.Nil {
		apt.ID = uuid.New()
	}
	apt.CreatedAt = time.Now()
	apt.UpdatedAt = apt.CreatedAt
	f.appointments[apt.ID] = apt
	if evt != nil {
		f.events = append(f.events, evt)
	}
	return nil
}

func (f *fakeAppointmentRepo) Get(_ context.Context, id uuid.UUID) (*model.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	apt, ok := f.appointments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *apt
	return &copied, nil
}

func (f *fakeAppointmentRepo) List(_ context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.Appointment
	for _, apt := range f.appointments {
		if filters != nil {
			if filters.ClientID != nil && apt.ClientID != *filters.ClientID {
				continue
			}
			if filters.Status != nil && apt.Status != *filters.Status {
				continue
			}
			if filters.DateFrom != "" && apt.Date < filters.DateFrom {
				continue
			}
			if filters.DateTo != "" && apt.Date > filters.DateTo {
				continue
			}
		}
		copied := *apt
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeAppointmentRepo) BookedTimes(_ context.Context, date string, vetID *uuid.UUID) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, apt := range f.appointments {
		if apt.Date != date || apt.Status == model.AppointmentStatusCancelled {
			continue
		}
		if vetID != nil && (apt.VetID == nil || *apt.VetID != *vetID) {
			continue
		}
		out = append(out, apt.Time)
	}
	return out, nil
}

func (f *fakeAppointmentRepo) Update(_ context.Context, apt *model.Appointment, evt *model.OutboxEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.appointments[apt.ID]; !ok {
		return repository.ErrNotFound
	}
	copied := *apt
	f.appointments[apt.ID] = &copied
	if evt != nil {
		f.events = append(f.events, evt)
	}
	return nil
}

type fakeInvoiceRepo struct {
	mu       sync.Mutex
	invoices map[uuid.UUID]*model.Invoice
	payments []*model.PaymentRecord
	events   []*model.OutboxEvent
	seq      int

	appointments *fakeAppointmentRepo
}

func newFakeInvoiceRepo(appointments *fakeAppointmentRepo) *fakeInvoiceRepo {
	return &fakeInvoiceRepo{invoices: make(map[uuid.UUID]*model.Invoice), appointments: appointments}
}

func (f *fakeInvoiceRepo) nextNumber() string {
	f.seq++
	return fmt.Sprintf("FAC-%06d", f.seq)
}

func (f *fakeInvoiceRepo) CreateWithItems(_ context.Context, inv *model.Invoice) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	inv.ID = uuid.New()
	inv.Number = f.nextNumber()
	inv.IssuedAt = time.Now()
	f.invoices[inv.ID] = inv
	return nil
}

func (f *fakeInvoiceRepo) CreateSettlement(_ context.Context, apt *model.Appointment, inv *model.Invoice, pay *model.PaymentRecord, payload model.NotificationPayload) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.appointments.mu.Lock()
	stored, ok := f.appointments.appointments[apt.ID]
	if !ok {
		f.appointments.mu.Unlock()
		return repository.ErrNotFound
	}
	if stored.PaymentStatus == model.PaymentStatusPaid {
		f.appointments.mu.Unlock()
		return repository.ErrAlreadyPaid
	}
	stored.Status = model.AppointmentStatusConfirmed
	stored.PaymentStatus = model.PaymentStatusPaid
	f.appointments.mu.Unlock()

	inv.ID = uuid.New()
	inv.Number = f.nextNumber()
	inv.IssuedAt = time.Now()
	f.invoices[inv.ID] = inv

	pay.ID = uuid.New()
	pay.InvoiceID = inv.ID
	pay.PaidAt = time.Now()
	f.payments = append(f.payments, pay)

	payload.InvoiceNumber = inv.Number
	evt, err := model.NewOutboxEvent(model.NotificationPaymentConfirmation, payload)
	if err != nil {
		return err
	}
	f.events = append(f.events, evt)
	return nil
}

func (f *fakeInvoiceRepo) Get(_ context.Context, id uuid.UUID) (*model.Invoice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	inv, ok := f.invoices[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return inv, nil
}

func (f *fakeInvoiceRepo) List(_ context.Context) ([]*model.Invoice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.Invoice
	for _, inv := range f.invoices {
		out = append(out, inv)
	}
	return out, nil
}

func (f *fakeInvoiceRepo) ListByClient(_ context.Context, clientID uuid.UUID) ([]*model.Invoice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.Invoice
	for _, inv := range f.invoices {
		if inv.ClientID == clientID {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (f *fakeInvoiceRepo) UpdateStatus(_ context.Context, id uuid.UUID, status model.InvoiceStatus, method *string) (*model.Invoice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	inv, ok := f.invoices[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	inv.PaymentStatus = status
	if method != nil {
		inv.PaymentMethod = *method
	}
	return inv, nil
}

func (f *fakeInvoiceRepo) ListPayments(_ context.Context) ([]*model.PaymentRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*model.PaymentRecord(nil), f.payments...), nil
}

func (f *fakeInvoiceRepo) ListPaymentsByInvoice(_ context.Context, invoiceID uuid.UUID) ([]*model.PaymentRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.PaymentRecord
	for _, p := range f.payments {
		if p.InvoiceID == invoiceID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeInvoiceRepo) MarkPaymentRefunded(_ context.Context, paymentID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.payments {
		if p.ID == paymentID && p.Status != model.PaymentRecordRefunded {
			p.Status = model.PaymentRecordRefunded
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[uuid.UUID]*model.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[uuid.UUID]*model.Product)}
}

func (f *fakeProductRepo) Create(_ context.Context, p *model.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.Active = true
	f.products[p.ID] = p
	return nil
}

func (f *fakeProductRepo) Get(_ context.Context, id uuid.UUID) (*model.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return p, nil
}

func (f *fakeProductRepo) List(_ context.Context, activeOnly bool) ([]*model.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.Product
	for _, p := range f.products {
		if !activeOnly || p.Active {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) Update(_ context.Context, p *model.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.products[p.ID]; !ok {
		return repository.ErrNotFound
	}
	f.products[p.ID] = p
	return nil
}

type fakeInventoryRepo struct {
	mu        sync.Mutex
	movements []*model.InventoryMovement
	products  *fakeProductRepo
}

func newFakeInventoryRepo(products *fakeProductRepo) *fakeInventoryRepo {
	return &fakeInventoryRepo{products: products}
}

func (f *fakeInventoryRepo) CreateMovement(_ context.Context, mv *model.InventoryMovement) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.products.mu.Lock()
	defer f.products.mu.Unlock()
	p, ok := f.products.products[mv.ProductID]
	if !ok || !p.Active {
		return repository.ErrNotFound
	}

	mv.StockBefore = p.Stock
	switch mv.Type {
	case model.MovementIn:
		mv.StockAfter = p.Stock + mv.Quantity
	case model.MovementOut:
		if p.Stock < mv.Quantity {
			return repository.ErrInsufficientStock
		}
		mv.StockAfter = p.Stock - mv.Quantity
	case model.MovementAdjust:
		mv.StockAfter = mv.Quantity
	}

	mv.ID = uuid.New()
	mv.CreatedAt = time.Now()
	p.Stock = mv.StockAfter
	f.movements = append(f.movements, mv)
	return nil
}

func (f *fakeInventoryRepo) Get(_ context.Context, id uuid.UUID) (*model.InventoryMovement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, mv := range f.movements {
		if mv.ID == id {
			return mv, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeInventoryRepo) List(_ context.Context) ([]*model.InventoryMovement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*model.InventoryMovement(nil), f.movements...), nil
}

func (f *fakeInventoryRepo) ListByProduct(_ context.Context, productID uuid.UUID) ([]*model.InventoryMovement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.InventoryMovement
	for _, mv := range f.movements {
		if mv.ProductID == productID {
			out = append(out, mv)
		}
	}
	return out, nil
}

func (f *fakeInventoryRepo) ListByType(_ context.Context, t model.MovementType) ([]*model.InventoryMovement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.InventoryMovement
	for _, mv := range f.movements {
		if mv.Type == t {
			out = append(out, mv)
		}
	}
	return out, nil
}

type fakeMedicalRepo struct {
	mu           sync.Mutex
	records      map[uuid.UUID]*model.MedicalRecord
	appointments *fakeAppointmentRepo
}

func newFakeMedicalRepo(appointments *fakeAppointmentRepo) *fakeMedicalRepo {
	return &fakeMedicalRepo{records: make(map[uuid.UUID]*model.MedicalRecord), appointments: appointments}
}

func (f *fakeMedicalRepo) CreateAndComplete(_ context.Context, rec *model.MedicalRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, other := range f.records {
		if other.AppointmentID == rec.AppointmentID {
			return repository.ErrDuplicate
		}
	}
	rec.ID = uuid.New()
	rec.AttendedAt = time.Now()
	f.records[rec.ID] = rec

	f.appointments.mu.Lock()
	if apt, ok := f.appointments.appointments[rec.AppointmentID]; ok {
		apt.Status = model.AppointmentStatusCompleted
	}
	f.appointments.mu.Unlock()
	return nil
}

func (f *fakeMedicalRepo) Get(_ context.Context, id uuid.UUID) (*model.MedicalRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.records[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return rec, nil
}

func (f *fakeMedicalRepo) GetByAppointment(_ context.Context, appointmentID uuid.UUID) (*model.MedicalRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, rec := range f.records {
		if rec.AppointmentID == appointmentID {
			return rec, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeMedicalRepo) ListByPet(_ context.Context, petID uuid.UUID) ([]*model.MedicalRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.MedicalRecord
	for _, rec := range f.records {
		if rec.PetID == petID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakeMedicalRepo) List(_ context.Context) ([]*model.MedicalRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.MedicalRecord
	for _, rec := range f.records {
		out = append(out, rec)
	}
	return out, nil
}

func (f *fakeMedicalRepo) Update(_ context.Context, rec *model.MedicalRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.records[rec.ID]; !ok {
		return repository.ErrNotFound
	}
	f.records[rec.ID] = rec
	return nil
}

type fakeOutboxRepo struct {
	mu     sync.Mutex
	events []*model.OutboxEvent
}

func newFakeOutboxRepo() *fakeOutboxRepo {
	return &fakeOutboxRepo{}
}

func (f *fakeOutboxRepo) Create(_ context.Context, evt *model.OutboxEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, evt)
	return nil
}

func (f *fakeOutboxRepo) GetPendingWithLock(_ context.Context, limit int) ([]*model.OutboxEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.OutboxEvent
	for _, evt := range f.events {
		if evt.Status == model.OutboxStatusPending {
			out = append(out, evt)
			if len(out) >= limit {
				break
			}
		}
	}
	return out, nil
}

func (f *fakeOutboxRepo) MarkProcessed(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, evt := range f.events {
		if evt.ID == id {
			now := time.Now()
			evt.Status = model.OutboxStatusProcessed
			evt.ProcessedAt = &now
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeOutboxRepo) MarkFailed(_ context.Context, id uuid.UUID, errMsg string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, evt := range f.events {
		if evt.ID == id {
			evt.Status = model.OutboxStatusFailed
			evt.ErrorMessage = &errMsg
			evt.RetryCount++
			return nil
		}
	}
	return repository.ErrNotFound
}
