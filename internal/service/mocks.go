package service

import (
	"context"
	"io"

	"github.com/Gaut2812/TECHXAURA-2K26-main/internal/export"
	"github.com/Gaut2812/TECHXAURA-2K26-main/internal/model"
	"github.com/Gaut2812/TECHXAURA-2K26-main/internal/notify"
	"github.com/Gaut2812/TECHXAURA-2K26-main/internal/repository"
	"github.com/stretchr/testify/mock"
)

type MockTransactor struct {
	mock.Mock
}

func (m *MockTransactor) WithinTransaction(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *repository.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Get(ctx context.Context, userID string) (*repository.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*repository.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.User), args.Error(1)
}

func (m *MockUserRepository) Patch(ctx context.Context, patch *repository.UserPatch) (*repository.User, error) {
	args := m.Called(ctx, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.User), args.Error(1)
}

type MockRegistrationRepository struct {
	mock.Mock
}

func (m *MockRegistrationRepository) Create(ctx context.Context, reg *repository.Registration) error {
	args := m.Called(ctx, reg)
	return args.Error(0)
}

func (m *MockRegistrationRepository) Get(ctx context.Context, id string) (*repository.Registration, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.Registration), args.Error(1)
}

func (m *MockRegistrationRepository) UpdateStatus(ctx context.Context, id string, status model.PaymentStatus) (*repository.Registration, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.Registration), args.Error(1)
}

func (m *MockRegistrationRepository) List(ctx context.Context) ([]*repository.Registration, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*repository.Registration), args.Error(1)
}

type MockTeamMemberRepository struct {
	mock.Mock
}

func (m *MockTeamMemberRepository) CreateBatch(ctx context.Context, members []*repository.TeamMember) error {
	args := m.Called(ctx, members)
	return args.Error(0)
}

func (m *MockTeamMemberRepository) List(ctx context.Context) ([]*repository.TeamMember, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*repository.TeamMember), args.Error(1)
}

type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) Upload(ctx context.Context, path, contentType string, r io.Reader) (string, error) {
	args := m.Called(ctx, path, contentType, r)
	return args.String(0), args.Error(1)
}

type MockSheetsPublisher struct {
	mock.Mock
}

func (m *MockSheetsPublisher) Publish(ctx context.Context, t *export.Table) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

type MockNotifyPublisher struct {
	mock.Mock
}

func (m *MockNotifyPublisher) Publish(ctx context.Context, msg *notify.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}
