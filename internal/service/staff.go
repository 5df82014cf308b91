package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/vetcarepro/clinic-api/internal/model"
	"github.com/vetcarepro/clinic-api/internal/repository"
	"github.com/vetcarepro/clinic-api/pkg/apperror"
	"github.com/vetcarepro/clinic-api/pkg/logger"
	"github.com/vetcarepro/clinic-api/pkg/security"
)

type StaffService struct {
	staff  repository.StaffRepository
	hasher security.PasswordHasher
	logger *logger.Logger
}

func NewStaffService(staff repository.StaffRepository, hasher security.PasswordHasher, log *logger.Logger) *StaffService {
	return &StaffService{staff: staff, hasher: hasher, logger: log}
}

func (s *StaffService) Create(ctx context.Context, req *model.CreateStaffRequest) (*model.StaffUser, error) {
	if !req.Role.Valid() {
		return nil, apperror.Validation("invalid role")
	}
	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		if errors.Is(err, security.ErrPasswordTooShort) {
			return nil, apperror.Validation("password too short")
		}
		return nil, apperror.Internal("failed to hash password", err)
	}

	user := &model.StaffUser{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		LegalID:      req.LegalID,
		Email:        req.Email,
		Phone:        req.Phone,
		Role:         req.Role,
		PasswordHash: hash,
	}
	if err := s.staff.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperror.Conflict("email already in use")
		}
		return nil, apperror.Internal("failed to create staff user", err)
	}

	s.logger.Info("staff user created", "user_id", user.ID.String(), "role", string(user.Role))
	return user, nil
}

func (s *StaffService) Get(ctx context.Context, id uuid.UUID) (*model.StaffUser, error) {
	user, err := s.staff.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("staff user not found")
		}
		return nil, apperror.Internal("failed to load staff user", err)
	}
	return user, nil
}

func (s *StaffService) List(ctx context.Context, role *model.Role) ([]*model.StaffUser, error) {
	if role != nil && !role.Valid() {
		return nil, apperror.Validation("invalid role")
	}
	users, err := s.staff.List(ctx, role)
	if err != nil {
		return nil, apperror.Internal("failed to list staff users", err)
	}
	return users, nil
}

// Veterinarians lists the active vets, used to populate booking forms.
func (s *StaffService) Veterinarians(ctx context.Context) ([]*model.StaffUser, error) {
	role := model.RoleVeterinarian
	return s.List(ctx, &role)
}

func (s *StaffService) Update(ctx context.Context, id uuid.UUID, req *model.UpdateStaffRequest) (*model.StaffUser, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Role != nil {
		if !req.Role.Valid() {
			return nil, apperror.Validation("invalid role")
		}
		user.Role = *req.Role
	}
	if req.Active != nil {
		user.Active = *req.Active
	}

	if err := s.staff.Update(ctx, user); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, apperror.NotFound("staff user not found")
		case errors.Is(err, repository.ErrDuplicate):
			return nil, apperror.Conflict("email already in use")
		}
		return nil, apperror.Internal("failed to update staff user", err)
	}
	return user, nil
}

func (s *StaffService) Deactivate(ctx context.Context, id uuid.UUID) error {
	if err := s.staff.Deactivate(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.NotFound("staff user not found")
		}
		return apperror.Internal("failed to deactivate staff user", err)
	}
	return nil
}
