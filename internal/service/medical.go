package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/vetcarepro/clinic-api/internal/model"
	"github.com/vetcarepro/clinic-api/internal/repository"
	"github.com/vetcarepro/clinic-api/pkg/apperror"
	"github.com/vetcarepro/clinic-api/pkg/logger"
)

// MedicalService manages consultation records. Writing a record is what moves
// an appointment to completed, and each appointment gets at most one record.
type MedicalService struct {
	records      repository.MedicalRecordRepository
	appointments repository.AppointmentRepository
	pets         repository.PetRepository
	staff        repository.StaffRepository
	logger       *logger.Logger
}

func NewMedicalService(
	records repository.MedicalRecordRepository,
	appointments repository.AppointmentRepository,
	pets repository.PetRepository,
	staff repository.StaffRepository,
	log *logger.Logger,
) *MedicalService {
	return &MedicalService{
		records:      records,
		appointments: appointments,
		pets:         pets,
		staff:        staff,
		logger:       log,
	}
}

func (s *MedicalService) Create(ctx context.Context, req *model.CreateMedicalRecordRequest) (*model.MedicalRecord, error) {
	apt, err := s.appointments.Get(ctx, req.AppointmentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("appointment not found")
		}
		return nil, apperror.Internal("failed to load appointment", err)
	}
	if apt.Status == model.AppointmentStatusCancelled {
		return nil, apperror.InvalidState("appointment is cancelled")
	}
	if apt.PetID != req.PetID {
		return nil, apperror.Validation("pet does not match appointment")
	}

	if _, err := s.records.GetByAppointment(ctx, req.AppointmentID); err == nil {
		return nil, apperror.Conflict("appointment already has a medical record")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.Internal("failed to check existing record", err)
	}

	vet, err := s.staff.Get(ctx, req.VetID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("veterinarian not found")
		}
		return nil, apperror.Internal("failed to load veterinarian", err)
	}
	if vet.Role != model.RoleVeterinarian {
		return nil, apperror.Validation("staff member is not a veterinarian")
	}

	rec := &model.MedicalRecord{
		PetID:           req.PetID,
		AppointmentID:   req.AppointmentID,
		VetID:           req.VetID,
		Symptoms:        req.Symptoms,
		Diagnosis:       req.Diagnosis,
		Treatment:       req.Treatment,
		Medication:      req.Medication,
		Weight:          req.Weight,
		Temperature:     req.Temperature,
		Observations:    req.Observations,
		Recommendations: req.Recommendations,
		NextVisit:       req.NextVisit,
	}

	if err := s.records.CreateAndComplete(ctx, rec); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperror.Conflict("appointment already has a medical record")
		}
		return nil, apperror.Internal("failed to create medical record", err)
	}

	s.logger.Info("medical record created",
		"record_id", rec.ID.String(),
		"appointment_id", rec.AppointmentID.String(),
	)
	return rec, nil
}

func (s *MedicalService) Get(ctx context.Context, id uuid.UUID) (*model.MedicalRecord, error) {
	rec, err := s.records.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("medical record not found")
		}
		return nil, apperror.Internal("failed to load medical record", err)
	}
	return rec, nil
}

// History returns a pet's records, newest first.
func (s *MedicalService) History(ctx context.Context, petID uuid.UUID) ([]*model.MedicalRecord, error) {
	if _, err := s.pets.Get(ctx, petID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("pet not found")
		}
		return nil, apperror.Internal("failed to load pet", err)
	}
	recs, err := s.records.ListByPet(ctx, petID)
	if err != nil {
		return nil, apperror.Internal("failed to list medical records", err)
	}
	return recs, nil
}

func (s *MedicalService) List(ctx context.Context) ([]*model.MedicalRecord, error) {
	recs, err := s.records.List(ctx)
	if err != nil {
		return nil, apperror.Internal("failed to list medical records", err)
	}
	return recs, nil
}

func (s *MedicalService) Update(ctx context.Context, id uuid.UUID, req *model.UpdateMedicalRecordRequest) (*model.MedicalRecord, error) {
	rec, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Symptoms != nil {
		rec.Symptoms = *req.Symptoms
	}
	if req.Diagnosis != nil {
		rec.Diagnosis = *req.Diagnosis
	}
	if req.Treatment != nil {
		rec.Treatment = *req.Treatment
	}
	if req.Medication != nil {
		rec.Medication = req.Medication
	}
	if req.Weight != nil {
		rec.Weight = req.Weight
	}
	if req.Temperature != nil {
		rec.Temperature = req.Temperature
	}
	if req.Observations != nil {
		rec.Observations = req.Observations
	}
	if req.Recommendations != nil {
		rec.Recommendations = req.Recommendations
	}
	if req.NextVisit != nil {
		rec.NextVisit = req.NextVisit
	}

	if err := s.records.Update(ctx, rec); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("medical record not found")
		}
		return nil, apperror.Internal("failed to update medical record", err)
	}
	return rec, nil
}
