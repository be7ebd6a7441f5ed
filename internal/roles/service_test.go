package roles_test

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks DirectoryClient,Cache

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"citizengw/internal/roles"
	"citizengw/internal/roles/mocks"
	dErrors "citizengw/pkg/domain-errors"
)

const operatorOID = "5a6b2d0a-7c2f-4f9e-9df3-1f1a2b3c4d5e"

type ServiceSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	directory *mocks.MockDirectoryClient
	cache     *mocks.MockCache
	service   *roles.Service
	ctx       context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.directory = mocks.NewMockDirectoryClient(s.ctrl)
	s.cache = mocks.NewMockCache(s.ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.service = roles.NewService(s.directory, s.cache, logger)
	s.ctx = context.Background()
}

func (s *ServiceSuite) TestCacheHitSkipsDirectory() {
	s.cache.EXPECT().Get(gomock.Any(), operatorOID).Return([]string{"Admin"}, true, nil)

	groups, err := s.service.Groups(s.ctx, operatorOID)
	s.Require().NoError(err)
	s.Equal([]string{"Admin"}, groups)
}

func (s *ServiceSuite) TestMissResolvesAndCaches() {
	s.cache.EXPECT().Get(gomock.Any(), operatorOID).Return(nil, false, nil)
	s.directory.EXPECT().MemberGroupIDs(gomock.Any(), operatorOID).Return([]string{"g1", "g2"}, nil)
	s.directory.EXPECT().GroupDisplayName(gomock.Any(), "g1").Return("Admin", nil)
	s.directory.EXPECT().GroupDisplayName(gomock.Any(), "g2").Return("Helpdesk", nil)
	s.cache.EXPECT().Set(gomock.Any(), operatorOID, []string{"Admin", "Helpdesk"}).Return(nil)

	groups, err := s.service.Groups(s.ctx, operatorOID)
	s.Require().NoError(err)
	s.Equal([]string{"Admin", "Helpdesk"}, groups)
}

func (s *ServiceSuite) TestPartialNameFailureDiscardsWholeResult() {
	s.cache.EXPECT().Get(gomock.Any(), operatorOID).Return(nil, false, nil)
	s.directory.EXPECT().MemberGroupIDs(gomock.Any(), operatorOID).Return([]string{"g1", "g2"}, nil)
	s.directory.EXPECT().GroupDisplayName(gomock.Any(), "g1").Return("Admin", nil).AnyTimes()
	s.directory.EXPECT().GroupDisplayName(gomock.Any(), "g2").
		Return("", dErrors.New(dErrors.CodeNotFound, "directory object not found"))

	_, err := s.service.Groups(s.ctx, operatorOID)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
}

func (s *ServiceSuite) TestDirectoryFailureIsInternal() {
	s.cache.EXPECT().Get(gomock.Any(), operatorOID).Return(nil, false, nil)
	s.directory.EXPECT().MemberGroupIDs(gomock.Any(), operatorOID).
		Return(nil, errors.New("connection refused"))

	_, err := s.service.Groups(s.ctx, operatorOID)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
}

func (s *ServiceSuite) TestDegradedCacheFallsThroughToDirectory() {
	s.cache.EXPECT().Get(gomock.Any(), operatorOID).Return(nil, false, errors.New("redis down"))
	s.directory.EXPECT().MemberGroupIDs(gomock.Any(), operatorOID).Return([]string{"g1"}, nil)
	s.directory.EXPECT().GroupDisplayName(gomock.Any(), "g1").Return("Helpdesk", nil)
	s.cache.EXPECT().Set(gomock.Any(), operatorOID, []string{"Helpdesk"}).Return(errors.New("redis down"))

	groups, err := s.service.Groups(s.ctx, operatorOID)
	s.Require().NoError(err)
	s.Equal([]string{"Helpdesk"}, groups)
}

func (s *ServiceSuite) TestIsPrivileged() {
	s.cache.EXPECT().Get(gomock.Any(), operatorOID).
		Return([]string{"Helpdesk", "Admin"}, true, nil).Times(2)

	privileged, err := s.service.IsPrivileged(s.ctx, operatorOID, "Admin")
	s.Require().NoError(err)
	s.True(privileged)

	privileged, err = s.service.IsPrivileged(s.ctx, operatorOID, "Auditors")
	s.Require().NoError(err)
	s.False(privileged)
}
