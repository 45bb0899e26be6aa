package service

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/ardentinvoicing/ardent/internal/api/dto"
	ierr "github.com/ardentinvoicing/ardent/internal/errors"
	"github.com/ardentinvoicing/ardent/internal/testutil"
	"github.com/ardentinvoicing/ardent/internal/types"
)

type AuthServiceSuite struct {
	testutil.BaseServiceTestSuite
	service AuthService
}

func TestAuthService(t *testing.T) {
	suite.Run(t, new(AuthServiceSuite))
}

func (s *AuthServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewAuthService(newTestParams(&s.BaseServiceTestSuite))
}

func (s *AuthServiceSuite) TestSignupCreatesUserAndTenant() {
	resp, err := s.service.Signup(s.GetContext(), &dto.SignupRequest{
		Email:        "ama@kente.gh",
		Password:     "correct-horse",
		BusinessName: "Kente Designs",
		Country:      "GH",
	})
	s.NoError(err)
	s.NotEmpty(resp.Token)
	s.Equal(types.UserRoleSME, resp.Role)
	s.Equal(types.SubscriptionTierFree, resp.Tier)
	s.NotEmpty(resp.TenantID)

	u, err := s.GetStores().UserRepo.GetByEmail(s.GetContext(), "ama@kente.gh")
	s.NoError(err)
	s.NotNil(u.OwnedTenantID)
	s.Equal(resp.TenantID, *u.OwnedTenantID)
	s.NotEqual("correct-horse", u.PasswordHash)

	t, err := s.GetStores().TenantRepo.Get(s.GetContext(), resp.TenantID)
	s.NoError(err)
	s.Equal("Kente Designs", t.BusinessName)
	s.Equal(u.ID, t.OwnerUserID)
	s.Equal("ama@kente.gh", t.ContactEmail)
}

func (s *AuthServiceSuite) TestSignupRejectsDuplicateEmail() {
	req := &dto.SignupRequest{
		Email:        "ama@kente.gh",
		Password:     "correct-horse",
		BusinessName: "Kente Designs",
	}
	_, err := s.service.Signup(s.GetContext(), req)
	s.NoError(err)

	_, err = s.service.Signup(s.GetContext(), req)
	s.Error(err)
	s.True(ierr.IsAlreadyExists(err))
}

func (s *AuthServiceSuite) TestSignupRejectsShortPassword() {
	_, err := s.service.Signup(s.GetContext(), &dto.SignupRequest{
		Email:        "ama@kente.gh",
		Password:     "short",
		BusinessName: "Kente Designs",
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *AuthServiceSuite) TestLogin() {
	_, err := s.service.Signup(s.GetContext(), &dto.SignupRequest{
		Email:        "ama@kente.gh",
		Password:     "correct-horse",
		BusinessName: "Kente Designs",
	})
	s.NoError(err)

	resp, err := s.service.Login(s.GetContext(), &dto.LoginRequest{
		Email:    "ama@kente.gh",
		Password: "correct-horse",
	})
	s.NoError(err)
	s.NotEmpty(resp.Token)
	s.NotEmpty(resp.TenantID)

	claims, err := s.GetAuth().ValidateToken(resp.Token)
	s.NoError(err)
	s.Equal(resp.UserID, claims.UserID)
	s.Equal(resp.TenantID, claims.TenantID)
}

func (s *AuthServiceSuite) TestLoginWrongPassword() {
	_, err := s.service.Signup(s.GetContext(), &dto.SignupRequest{
		Email:        "ama@kente.gh",
		Password:     "correct-horse",
		BusinessName: "Kente Designs",
	})
	s.NoError(err)

	_, err = s.service.Login(s.GetContext(), &dto.LoginRequest{
		Email:    "ama@kente.gh",
		Password: "wrong-horse",
	})
	s.Error(err)
}

func (s *AuthServiceSuite) TestLoginUnknownEmail() {
	_, err := s.service.Login(s.GetContext(), &dto.LoginRequest{
		Email:    "nobody@kente.gh",
		Password: "whatever-password",
	})
	s.Error(err)
	s.True(ierr.Is(err, ierr.ErrPermissionDenied))
}
