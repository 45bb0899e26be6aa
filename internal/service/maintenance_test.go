package service

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/ardentinvoicing/ardent/internal/testutil"
)

type MaintenanceServiceSuite struct {
	testutil.BaseServiceTestSuite
	service MaintenanceService
}

func TestMaintenanceService(t *testing.T) {
	suite.Run(t, new(MaintenanceServiceSuite))
}

func (s *MaintenanceServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewMaintenanceService(newTestParams(&s.BaseServiceTestSuite))
}

func (s *MaintenanceServiceSuite) TestCheckHealthProbesAllDependencies() {
	status := s.service.CheckHealth(s.GetContext())

	s.True(status.Healthy)
	s.Equal("ok", status.Checks["postgres"])
	s.Equal("ok", status.Checks["redis"])
	s.Equal("ok", status.Checks["paystack"])
	s.Empty(s.GetEmail().Sent)
}

func (s *MaintenanceServiceSuite) TestBackupSkipsWhenStorageDisabled() {
	result, err := s.service.BackupTables(s.GetContext())
	s.NoError(err)
	s.Equal(0, result.Succeeded)
	s.Equal(0, result.Errors)
}
