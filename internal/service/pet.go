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

type PetService struct {
	pets    repository.PetRepository
	clients repository.ClientRepository
	logger  *logger.Logger
}

func NewPetService(pets repository.PetRepository, clients repository.ClientRepository, log *logger.Logger) *PetService {
	return &PetService{pets: pets, clients: clients, logger: log}
}

func (s *PetService) Create(ctx context.Context, req *model.CreatePetRequest) (*model.Pet, error) {
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

	pet := &model.Pet{
		ClientID:  req.ClientID,
		Name:      req.Name,
		Species:   req.Species,
		Breed:     req.Breed,
		BirthDate: req.BirthDate,
		Sex:       req.Sex,
		Color:     req.Color,
		Weight:    req.Weight,
		Microchip: req.Microchip,
		PhotoURL:  req.PhotoURL,
		Notes:     req.Notes,
	}
	if err := s.pets.Create(ctx, pet); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperror.Conflict("microchip already registered")
		}
		return nil, apperror.Internal("failed to create pet", err)
	}
	return pet, nil
}

func (s *PetService) Get(ctx context.Context, id uuid.UUID) (*model.Pet, error) {
	pet, err := s.pets.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("pet not found")
		}
		return nil, apperror.Internal("failed to load pet", err)
	}
	return pet, nil
}

func (s *PetService) List(ctx context.Context, clientID *uuid.UUID, includeInactive bool) ([]*model.Pet, error) {
	var (
		pets []*model.Pet
		err  error
	)
	if clientID != nil {
		pets, err = s.pets.ListByClient(ctx, *clientID)
	} else {
		pets, err = s.pets.List(ctx, includeInactive)
	}
	if err != nil {
		return nil, apperror.Internal("failed to list pets", err)
	}
	return pets, nil
}

func (s *PetService) Update(ctx context.Context, id uuid.UUID, req *model.UpdatePetRequest) (*model.Pet, error) {
	pet, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		pet.Name = *req.Name
	}
	if req.Breed != nil {
		pet.Breed = *req.Breed
	}
	if req.BirthDate != nil {
		pet.BirthDate = req.BirthDate
	}
	if req.Sex != nil {
		pet.Sex = *req.Sex
	}
	if req.Color != nil {
		pet.Color = *req.Color
	}
	if req.Weight != nil {
		pet.Weight = req.Weight
	}
	if req.Microchip != nil {
		pet.Microchip = req.Microchip
	}
	if req.PhotoURL != nil {
		pet.PhotoURL = req.PhotoURL
	}
	if req.Notes != nil {
		pet.Notes = *req.Notes
	}

	if err := s.pets.Update(ctx, pet); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("pet not found")
		}
		return nil, apperror.Internal("failed to update pet", err)
	}
	return pet, nil
}

func (s *PetService) Deactivate(ctx context.Context, id uuid.UUID) error {
	if err := s.pets.Deactivate(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.NotFound("pet not found")
		}
		return apperror.Internal("failed to deactivate pet", err)
	}
	return nil
}
