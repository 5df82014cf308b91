package service

import (
	"context"
	"errors"

	"github.com/vetcarepro/clinic-api/internal/model"
	"github.com/vetcarepro/clinic-api/internal/repository"
	"github.com/vetcarepro/clinic-api/pkg/apperror"
	"github.com/vetcarepro/clinic-api/pkg/auth"
	"github.com/vetcarepro/clinic-api/pkg/logger"
	"github.com/vetcarepro/clinic-api/pkg/security"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  interface{} `json:"user"`
}

// AuthService signs in staff and portal clients. Both flows return a JWT; the
// token kind keeps the two surfaces apart.
type AuthService struct {
	staff   repository.StaffRepository
	clients repository.ClientRepository
	hasher  security.PasswordHasher
	jwt     auth.JWTService
	logger  *logger.Logger
}

func NewAuthService(
	staff repository.StaffRepository,
	clients repository.ClientRepository,
	hasher security.PasswordHasher,
	jwt auth.JWTService,
	log *logger.Logger,
) *AuthService {
	return &AuthService{staff: staff, clients: clients, hasher: hasher, jwt: jwt, logger: log}
}

func (s *AuthService) StaffLogin(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	user, err := s.staff.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.Unauthorized("invalid credentials")
		}
		return nil, apperror.Internal("failed to load staff user", err)
	}
	if err := s.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		return nil, apperror.Unauthorized("invalid credentials")
	}

	token, err := s.jwt.Generate(user.ID, user.Email, string(user.Role), auth.TokenKindStaff)
	if err != nil {
		return nil, apperror.Internal("failed to generate token", err)
	}

	s.logger.Info("staff login", "user_id", user.ID.String())
	return &LoginResponse{Token: token, User: user}, nil
}

func (s *AuthService) ClientLogin(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	client, err := s.clients.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.Unauthorized("invalid credentials")
		}
		return nil, apperror.Internal("failed to load client", err)
	}
	if client.PasswordHash == nil {
		return nil, apperror.Unauthorized("portal access not enabled")
	}
	if err := s.hasher.Compare(*client.PasswordHash, req.Password); err != nil {
		return nil, apperror.Unauthorized("invalid credentials")
	}

	token, err := s.jwt.Generate(client.ID, client.Email, "", auth.TokenKindClient)
	if err != nil {
		return nil, apperror.Internal("failed to generate token", err)
	}

	s.logger.Info("client login", "client_id", client.ID.String())
	return &LoginResponse{Token: token, User: client}, nil
}

// ClientFromClaims resolves the portal account behind a validated token.
func (s *AuthService) ClientFromClaims(ctx context.Context, claims *auth.Claims) (*model.Client, error) {
	if claims.Kind != auth.TokenKindClient {
		return nil, apperror.Forbidden("not a client token")
	}
	client, err := s.clients.Get(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.Unauthorized("account no longer exists")
		}
		return nil, apperror.Internal("failed to load client", err)
	}
	return client, nil
}
