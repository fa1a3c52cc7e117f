// Package mocks provides testify-based test doubles for the domain interfaces.
package mocks

import (
	"context"
	"io"
	"time"

	"passport/internal/domain/entity"
	"passport/internal/domain/repository"
	"passport/internal/domain/service"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)

	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) FindByName(ctx context.Context, name string) (*entity.User, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]*entity.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)

	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

// MockPasswordHasher is a mock implementation of service.PasswordHasher.
type MockPasswordHasher struct {
	mock.Mock
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Check(password, hash string) bool {
	args := m.Called(password, hash)

	return args.Bool(0)
}

// MockTokenService is a mock implementation of service.TokenService.
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) Issue(userID primitive.ObjectID) (string, error) {
	args := m.Called(userID)

	return args.String(0), args.Error(1)
}

func (m *MockTokenService) Verify(token string) (primitive.ObjectID, error) {
	args := m.Called(token)

	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockTokenService) TokenTTL() time.Duration {
	args := m.Called()

	return args.Get(0).(time.Duration)
}

// MockAvatarStorage is a mock implementation of service.AvatarStorage.
type MockAvatarStorage struct {
	mock.Mock
}

func (m *MockAvatarStorage) Store(ctx context.Context, userID primitive.ObjectID, filename string, r io.Reader) (string, error) {
	args := m.Called(ctx, userID, filename, r)

	return args.String(0), args.Error(1)
}

// MockRecoveryNotifier is a mock implementation of service.RecoveryNotifier.
type MockRecoveryNotifier struct {
	mock.Mock
}

func (m *MockRecoveryNotifier) NotifyPasswordRecovery(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)

	return args.Error(0)
}

// StubTransactionManager runs the transactional function directly against a
// fixed repository, without any real transaction semantics.
type StubTransactionManager struct {
	Repo repository.UserRepository
}

func (s *StubTransactionManager) Execute(_ context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	return fn(&stubRepositoryFactory{repo: s.Repo})
}

type stubRepositoryFactory struct {
	repo repository.UserRepository
}

func (f *stubRepositoryFactory) UserRepo() repository.UserRepository {
	return f.repo
}

// Interface conformance checks.
var (
	_ repository.UserRepository     = (*MockUserRepository)(nil)
	_ service.PasswordHasher        = (*MockPasswordHasher)(nil)
	_ service.TokenService          = (*MockTokenService)(nil)
	_ service.AvatarStorage         = (*MockAvatarStorage)(nil)
	_ service.RecoveryNotifier      = (*MockRecoveryNotifier)(nil)
	_ repository.TransactionManager = (*StubTransactionManager)(nil)
)
