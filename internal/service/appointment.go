package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/vetcarepro/clinic-api/internal/model"
	"github.com/vetcarepro/clinic-api/internal/repository"
	"github.com/vetcarepro/clinic-api/pkg/apperror"
	"github.com/vetcarepro/clinic-api/pkg/logger"
)

// AppointmentService owns booking, rescheduling and cancellation.
type AppointmentService struct {
	appointments repository.AppointmentRepository
	clients      repository.ClientRepository
	pets         repository.PetRepository
	services     repository.ServiceRepository
	staff        repository.StaffRepository
	hours        ClinicHours
	logger       *logger.Logger
}

func NewAppointmentService(
	appointments repository.AppointmentRepository,
	clients repository.ClientRepository,
	pets repository.PetRepository,
	services repository.ServiceRepository,
	staff repository.StaffRepository,
	hours ClinicHours,
	log *logger.Logger,
) *AppointmentService {
	return &AppointmentService{
		appointments: appointments,
		clients:      clients,
		pets:         pets,
		services:     services,
		staff:        staff,
		hours:        hours,
		logger:       log,
	}
}

// Availability lists the free slot labels for a date. When vetID is nil the
// whole clinic is treated as one resource and any booking blocks the slot.
func (s *AppointmentService) Availability(ctx context.Context, date string, serviceID uuid.UUID, vetID *uuid.UUID) (*model.Availability, error) {
	svc, err := s.services.Get(ctx, serviceID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("service not found")
		}
		return nil, apperror.Internal("failed to load service", err)
	}
	if !svc.Active {
		return nil, apperror.Validation("service is not active")
	}

	all, err := GenerateSlots(s.hours)
	if err != nil {
		return nil, apperror.Internal("failed to generate slots", err)
	}

	booked, err := s.appointments.BookedTimes(ctx, date, vetID)
	if err != nil {
		return nil, apperror.Internal("failed to load booked times", err)
	}

	return &model.Availability{
		Date:            date,
		ServiceName:     svc.Name,
		DurationMinutes: svc.DurationMinutes,
		Slots:           FilterSlots(all, booked),
	}, nil
}

// Book creates a pending appointment, snapshotting the service price so later
// catalog edits never change what was agreed. The confirmation email is queued
// in the same transaction as the insert.
func (s *AppointmentService) Book(ctx context.Context, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	all, err := GenerateSlots(s.hours)
	if err != nil {
		return nil, apperror.Internal("failed to generate slots", err)
	}
	if !ContainsSlot(all, req.Time) {
		return nil, apperror.Validation("time is outside clinic hours")
	}

	client, err := s.clients.Get(ctx, req.ClientID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("client not found")
		}
		return nil, apperror.Internal("failed to load client", err)
	}
	if !client.Active {
		return nil, apperror.Validation("client is not active")
	}

	pet, err := s.pets.GetOwned(ctx, req.PetID, req.ClientID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("pet not found for client")
		}
		return nil, apperror.Internal("failed to load pet", err)
	}

	svc, err := s.services.Get(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("service not found")
		}
		return nil, apperror.Internal("failed to load service", err)
	}
	if !svc.Active {
		return nil, apperror.Validation("service is not active")
	}

	var vetName string
	if req.VetID != nil {
		vet, err := s.staff.Get(ctx, *req.VetID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, apperror.NotFound("veterinarian not found")
			}
			return nil, apperror.Internal("failed to load veterinarian", err)
		}
		if vet.Role != model.RoleVeterinarian || !vet.Active {
			return nil, apperror.Validation("staff member is not an active veterinarian")
		}
		vetName = vet.FullName()
	}

	price := svc.BasePrice
	if req.Price != nil {
		price = *req.Price
	}

	apt := &model.Appointment{
		ClientID:       req.ClientID,
		PetID:          req.PetID,
		VetID:          req.VetID,
		ServiceID:      req.ServiceID,
		Date:           req.Date,
		Time:           req.Time,
		Status:         model.AppointmentStatusPending,
		PaymentStatus:  model.PaymentStatusPending,
		Reason:         req.Reason,
		PriceAtBooking: price,
		Notes:          req.Notes,
	}

	evt, err := model.NewOutboxEvent(model.NotificationBookingConfirmation, model.NotificationPayload{
		Recipient:   client.Email,
		ClientName:  client.FullName(),
		PetName:     pet.Name,
		ServiceName: svc.Name,
		VetName:     vetName,
		Date:        req.Date,
		Time:        req.Time,
	})
	if err != nil {
		return nil, apperror.Internal("failed to build notification", err)
	}

	if err := s.appointments.CreateBooked(ctx, apt, evt); err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			return nil, apperror.Conflict("slot is already booked")
		}
		return nil, apperror.Internal("failed to create appointment", err)
	}

	s.logger.Info("appointment booked",
		"appointment_id", apt.ID.String(),
		"date", apt.Date,
		"time", apt.Time,
	)
	return apt, nil
}

func (s *AppointmentService) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	apt, err := s.appointments.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("appointment not found")
		}
		return nil, apperror.Internal("failed to load appointment", err)
	}
	return apt, nil
}

func (s *AppointmentService) List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	apts, err := s.appointments.List(ctx, filters)
	if err != nil {
		return nil, apperror.Internal("failed to list appointments", err)
	}
	return apts, nil
}

// DayStats aggregates the dashboard counters for a single date.
func (s *AppointmentService) DayStats(ctx context.Context, date string) (*model.DayStats, error) {
	apts, err := s.appointments.List(ctx, &model.AppointmentFilters{DateFrom: date, DateTo: date})
	if err != nil {
		return nil, apperror.Internal("failed to list appointments", err)
	}
	stats := &model.DayStats{}
	for _, apt := range apts {
		switch apt.Status {
		case model.AppointmentStatusPending:
			stats.Pending++
		case model.AppointmentStatusConfirmed:
			stats.Confirmed++
		case model.AppointmentStatusCompleted:
			stats.Completed++
		}
		if apt.Status != model.AppointmentStatusCancelled {
			stats.Total++
		}
	}
	return stats, nil
}

// Update reschedules or edits an appointment. Terminal appointments reject
// every change. Moving the slot or reassigning the vet re-validates the target
// slot and queues a reschedule notification.
func (s *AppointmentService) Update(ctx context.Context, id uuid.UUID, req *model.UpdateAppointmentRequest) (*model.Appointment, error) {
	apt, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if apt.Status.Terminal() {
		return nil, apperror.InvalidState("appointment is " + string(apt.Status))
	}

	rescheduled := false
	if req.Date != nil && *req.Date != apt.Date {
		apt.Date = *req.Date
		rescheduled = true
	}
	if req.Time != nil && *req.Time != apt.Time {
		apt.Time = *req.Time
		rescheduled = true
	}
	if req.VetID != nil {
		if apt.VetID == nil || *apt.VetID != *req.VetID {
			rescheduled = true
		}
		apt.VetID = req.VetID
	}
	if req.ServiceID != nil {
		apt.ServiceID = *req.ServiceID
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, apperror.Validation("invalid status")
		}
		apt.Status = *req.Status
	}
	if req.PaymentStatus != nil {
		if !req.PaymentStatus.Valid() {
			return nil, apperror.Validation("invalid payment status")
		}
		apt.PaymentStatus = *req.PaymentStatus
	}
	if req.Reason != nil {
		apt.Reason = *req.Reason
	}
	if req.Price != nil {
		apt.PriceAtBooking = *req.Price
	}
	if req.Notes != nil {
		apt.Notes = *req.Notes
	}

	var evt *model.OutboxEvent
	if rescheduled {
		all, err := GenerateSlots(s.hours)
		if err != nil {
			return nil, apperror.Internal("failed to generate slots", err)
		}
		if !ContainsSlot(all, apt.Time) {
			return nil, apperror.Validation("time is outside clinic hours")
		}

		booked, err := s.appointments.BookedTimes(ctx, apt.Date, apt.VetID)
		if err != nil {
			return nil, apperror.Internal("failed to load booked times", err)
		}
		for _, b := range booked {
			if b == apt.Time {
				return nil, apperror.Conflict("slot is already booked")
			}
		}

		payload, err := s.notificationPayload(ctx, apt, "")
		if err != nil {
			return nil, err
		}
		evt, err = model.NewOutboxEvent(model.NotificationReschedule, payload)
		if err != nil {
			return nil, apperror.Internal("failed to build notification", err)
		}
	}

	if err := s.appointments.Update(ctx, apt, evt); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, apperror.NotFound("appointment not found")
		case errors.Is(err, repository.ErrSlotTaken):
			return nil, apperror.Conflict("slot is already booked")
		}
		return nil, apperror.Internal("failed to update appointment", err)
	}
	return apt, nil
}

// Cancel marks the appointment cancelled and appends the reason to its notes.
// The payment status is left untouched; refunds are a manual process.
func (s *AppointmentService) Cancel(ctx context.Context, id uuid.UUID, reason string) (*model.Appointment, error) {
	apt, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if apt.Status == model.AppointmentStatusCancelled {
		return nil, apperror.Conflict("appointment is already cancelled")
	}
	if apt.Status.Terminal() {
		return nil, apperror.InvalidState("appointment is " + string(apt.Status))
	}

	apt.Status = model.AppointmentStatusCancelled
	if reason != "" {
		note := "Cancelada: " + reason
		if apt.Notes != "" {
			apt.Notes = strings.TrimRight(apt.Notes, "\n") + "\n" + note
		} else {
			apt.Notes = note
		}
	}

	payload, err := s.notificationPayload(ctx, apt, reason)
	if err != nil {
		return nil, err
	}
	evt, err := model.NewOutboxEvent(model.NotificationCancellation, payload)
	if err != nil {
		return nil, apperror.Internal("failed to build notification", err)
	}

	if err := s.appointments.Update(ctx, apt, evt); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("appointment not found")
		}
		return nil, apperror.Internal("failed to cancel appointment", err)
	}

	s.logger.Info("appointment cancelled", "appointment_id", apt.ID.String())
	return apt, nil
}

func (s *AppointmentService) notificationPayload(ctx context.Context, apt *model.Appointment, reason string) (model.NotificationPayload, error) {
	client, err := s.clients.Get(ctx, apt.ClientID)
	if err != nil {
		return model.NotificationPayload{}, apperror.Internal("failed to load client", err)
	}
	pet, err := s.pets.Get(ctx, apt.PetID)
	if err != nil {
		return model.NotificationPayload{}, apperror.Internal("failed to load pet", err)
	}
	return model.NotificationPayload{
		Recipient:  client.Email,
		ClientName: client.FullName(),
		PetName:    pet.Name,
		Date:       apt.Date,
		Time:       apt.Time,
		Reason:     reason,
	}, nil
}
