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

// ClientService manages pet owners. Setting a password on creation enables the
// client portal and queues a welcome email.
type ClientService struct {
	clients repository.ClientRepository
	outbox  repository.OutboxRepository
	hasher  security.PasswordHasher
	logger  *logger.Logger
}

func NewClientService(clients repository.ClientRepository, outbox repository.OutboxRepository, hasher security.PasswordHasher, log *logger.Logger) *ClientService {
	return &ClientService{clients: clients, outbox: outbox, hasher: hasher, logger: log}
}

func (s *ClientService) Create(ctx context.Context, req *model.CreateClientRequest) (*model.Client, error) {
	client := &model.Client{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		LegalID:   req.LegalID,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
	}

	if req.Password != "" {
		hash, err := s.hasher.Hash(req.Password)
		if err != nil {
			if errors.Is(err, security.ErrPasswordTooShort) {
				return nil, apperror.Validation("password too short")
			}
			return nil, apperror.Internal("failed to hash password", err)
		}
		client.PasswordHash = &hash
	}

	if err := s.clients.Create(ctx, client); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperror.Conflict("client already exists")
		}
		return nil, apperror.Internal("failed to create client", err)
	}

	evt, err := model.NewOutboxEvent(model.NotificationWelcome, model.NotificationPayload{
		Recipient:  client.Email,
		ClientName: client.FullName(),
	})
	if err == nil {
		if err := s.outbox.Create(ctx, evt); err != nil {
			s.logger.Error(err, "failed to queue welcome email", "client_id", client.ID.String())
		}
	}

	return client, nil
}

func (s *ClientService) Get(ctx context.Context, id uuid.UUID) (*model.Client, error) {
	client, err := s.clients.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("client not found")
		}
		return nil, apperror.Internal("failed to load client", err)
	}
	return client, nil
}

func (s *ClientService) List(ctx context.Context, includeInactive bool) ([]*model.Client, error) {
	clients, err := s.clients.List(ctx, includeInactive)
	if err != nil {
		return nil, apperror.Internal("failed to list clients", err)
	}
	return clients, nil
}

func (s *ClientService) Search(ctx context.Context, term string) ([]*model.Client, error) {
	clients, err := s.clients.Search(ctx, term)
	if err != nil {
		return nil, apperror.Internal("failed to search clients", err)
	}
	return clients, nil
}

func (s *ClientService) Update(ctx context.Context, id uuid.UUID, req *model.UpdateClientRequest) (*model.Client, error) {
	client, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		client.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		client.LastName = *req.LastName
	}
	if req.Email != nil {
		client.Email = *req.Email
	}
	if req.Phone != nil {
		client.Phone = *req.Phone
	}
	if req.Address != nil {
		client.Address = *req.Address
	}

	if err := s.clients.Update(ctx, client); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, apperror.NotFound("client not found")
		case errors.Is(err, repository.ErrDuplicate):
			return nil, apperror.Conflict("email already in use")
		}
		return nil, apperror.Internal("failed to update client", err)
	}
	return client, nil
}

func (s *ClientService) Deactivate(ctx context.Context, id uuid.UUID) error {
	if err := s.clients.Deactivate(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.NotFound("client not found")
		}
		return apperror.Internal("failed to deactivate client", err)
	}
	return nil
}
