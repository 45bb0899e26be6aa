package service

import (
	"context"

	"github.com/ardentinvoicing/ardent/internal/api/dto"
	"github.com/ardentinvoicing/ardent/internal/auth"
	"github.com/ardentinvoicing/ardent/internal/domain/tenant"
	"github.com/ardentinvoicing/ardent/internal/domain/user"
	ierr "github.com/ardentinvoicing/ardent/internal/errors"
	"github.com/ardentinvoicing/ardent/internal/types"
)

// AuthService handles signup and login. Signup creates the user and their
// tenant atomically; a user without a tenant must never be observable.
type AuthService interface {
	Signup(ctx context.Context, req *dto.SignupRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
}

type authService struct {
	ServiceParams
}

// NewAuthService creates a new auth service
func NewAuthService(params ServiceParams) AuthService {
	return &authService{ServiceParams: params}
}

func (s *authService) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if existing, err := s.UserRepo.GetByEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, ierr.NewError("email already registered").
			WithHint("an account with this email already exists").
			Mark(ierr.ErrAlreadyExists)
	} else if err != nil && !ierr.IsNotFound(err) {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	u := user.New(ctx, req.Email, types.UserRoleSME)
	u.PasswordHash = hash

	t := tenant.New(ctx, req.BusinessName, u.ID)
	t.ContactEmail = req.Email
	t.ContactPhone = req.ContactPhone
	t.Country = req.Country

	u.OwnedTenantID = &t.ID
	u.TenantID = t.ID

	err = s.DB.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.UserRepo.Create(txCtx, u); err != nil {
			return err
		}
		return s.TenantRepo.Create(txCtx, t)
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("registered new tenant",
		"user_id", u.ID,
		"tenant_id", t.ID,
		"business_name", t.BusinessName)

	return s.buildAuthResponse(u)
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.UserRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if ierr.IsNotFound(err) {
			return nil, ierr.NewError("invalid credentials").
				WithHint("email or password is incorrect").
				Mark(ierr.ErrPermissionDenied)
		}
		return nil, err
	}

	if err := auth.CheckPassword(u.PasswordHash, req.Password); err != nil {
		return nil, err
	}

	return s.buildAuthResponse(u)
}

func (s *authService) buildAuthResponse(u *user.User) (*dto.AuthResponse, error) {
	tenantID := ""
	if u.OwnedTenantID != nil {
		tenantID = *u.OwnedTenantID
	}

	token, err := s.Auth.GenerateToken(u.ID, tenantID, u.Role)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Token:    token,
		UserID:   u.ID,
		TenantID: tenantID,
		Email:    u.Email,
		Role:     u.Role,
		Tier:     u.SubscriptionTier,
	}, nil
}
