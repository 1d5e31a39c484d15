package usecases_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"contract-hub.backend/internal/domain/entities"
	domainRepos "contract-hub.backend/internal/domain/repositories"
)

// Mock UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Do(ctx context.Context, f func(context.Context) error) error {
	m.Called(ctx, f)
	return f(ctx)
}

// Mock ContractRepository
type MockContractRepository struct {
	mock.Mock
}

func (m *MockContractRepository) Create(ctx context.Context, contract *entities.Contract) error {
	args := m.Called(ctx, contract)
	return args.Error(0)
}

func (m *MockContractRepository) GetByID(ctx context.Context, id uuid.UUID, includeDeleted bool) (*entities.Contract, error) {
	args := m.Called(ctx, id, includeDeleted)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Contract), args.Error(1)
}

func (m *MockContractRepository) List(ctx context.Context, ownerID uuid.UUID, query entities.ContractListQuery) ([]*entities.Contract, int64, error) {
	args := m.Called(ctx, ownerID, query)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Contract), args.Get(1).(int64), args.Error(2)
}

func (m *MockContractRepository) Update(ctx context.Context, id uuid.UUID, patch domainRepos.ContractPatch) error {
	args := m.Called(ctx, id, patch)
	return args.Error(0)
}

func (m *MockContractRepository) UpdateStatusCAS(ctx context.Context, id uuid.UUID, expected, next entities.ContractStatus, signedAt bool) (bool, error) {
	args := m.Called(ctx, id, expected, next, signedAt)
	return args.Bool(0), args.Error(1)
}

func (m *MockContractRepository) SoftDelete(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockContractRepository) HardDelete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockContractRepository) Stats(ctx context.Context, ownerID uuid.UUID) (*entities.ContractStats, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ContractStats), args.Error(1)
}

func (m *MockContractRepository) Recent(ctx context.Context, ownerID uuid.UUID, limit int) ([]*entities.Contract, error) {
	args := m.Called(ctx, ownerID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Contract), args.Error(1)
}

func (m *MockContractRepository) Pending(ctx context.Context, ownerID uuid.UUID) ([]*entities.Contract, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Contract), args.Error(1)
}

// Mock ContractVersionRepository
type MockContractVersionRepository struct {
	mock.Mock
}

func (m *MockContractVersionRepository) GetAll(ctx context.Context, contractID uuid.UUID) ([]*entities.ContractVersion, error) {
	args := m.Called(ctx, contractID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.ContractVersion), args.Error(1)
}

func (m *MockContractVersionRepository) GetLatest(ctx context.Context, contractID uuid.UUID) (*entities.ContractVersion, error) {
	args := m.Called(ctx, contractID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ContractVersion), args.Error(1)
}

func (m *MockContractVersionRepository) Append(ctx context.Context, contractID uuid.UUID, content string, source entities.VersionSource, createdBy uuid.UUID) (*entities.ContractVersion, error) {
	args := m.Called(ctx, contractID, content, source, createdBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ContractVersion), args.Error(1)
}

// Mock ContractPartyRepository
type MockContractPartyRepository struct {
	mock.Mock
}

func (m *MockContractPartyRepository) GetAll(ctx context.Context, contractID uuid.UUID) ([]*entities.ContractParty, error) {
	args := m.Called(ctx, contractID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.ContractParty), args.Error(1)
}

func (m *MockContractPartyRepository) GetByID(ctx context.Context, partyID uuid.UUID) (*entities.ContractParty, error) {
	args := m.Called(ctx, partyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ContractParty), args.Error(1)
}

func (m *MockContractPartyRepository) Create(ctx context.Context, party *entities.ContractParty) error {
	args := m.Called(ctx, party)
	return args.Error(0)
}

func (m *MockContractPartyRepository) Delete(ctx context.Context, partyID, contractID uuid.UUID) (bool, error) {
	args := m.Called(ctx, partyID, contractID)
	return args.Bool(0), args.Error(1)
}

func (m *MockContractPartyRepository) UpdateStatus(ctx context.Context, partyID uuid.UUID, status entities.PartySignatureStatus, signedAt *time.Time) error {
	args := m.Called(ctx, partyID, status, signedAt)
	return args.Error(0)
}

func (m *MockContractPartyRepository) CountUnsigned(ctx context.Context, contractID uuid.UUID) (int64, error) {
	args := m.Called(ctx, contractID)
	return args.Get(0).(int64), args.Error(1)
}

// Mock ActivityLogRepository
type MockActivityLogRepository struct {
	mock.Mock
}

func (m *MockActivityLogRepository) GetAll(ctx context.Context, contractID uuid.UUID) ([]*entities.ActivityLog, error) {
	args := m.Called(ctx, contractID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.ActivityLog), args.Error(1)
}

func (m *MockActivityLogRepository) Create(ctx context.Context, log *entities.ActivityLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

// Mock SignatureRepository
type MockSignatureRepository struct {
	mock.Mock
}

func (m *MockSignatureRepository) Create(ctx context.Context, sig *entities.Signature) error {
	args := m.Called(ctx, sig)
	return args.Error(0)
}

func (m *MockSignatureRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Signature, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Signature), args.Error(1)
}

func (m *MockSignatureRepository) GetByContract(ctx context.Context, contractID uuid.UUID) ([]*entities.Signature, error) {
	args := m.Called(ctx, contractID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Signature), args.Error(1)
}

func (m *MockSignatureRepository) GetByParty(ctx context.Context, partyID uuid.UUID) (*entities.Signature, error) {
	args := m.Called(ctx, partyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Signature), args.Error(1)
}

// Mock SignatureTokenRepository
type MockSignatureTokenRepository struct {
	mock.Mock
}

func (m *MockSignatureTokenRepository) Create(ctx context.Context, token *entities.SignatureToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockSignatureTokenRepository) Validate(ctx context.Context, token string) (*entities.SignatureToken, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.SignatureToken), args.Error(1)
}

func (m *MockSignatureTokenRepository) MarkUsed(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockSignatureTokenRepository) PurgeExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

// Mock GenerationJobRepository
type MockGenerationJobRepository struct {
	mock.Mock
}

func (m *MockGenerationJobRepository) Create(ctx context.Context, job *entities.GenerationJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockGenerationJobRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.GenerationJob, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.GenerationJob), args.Error(1)
}

func (m *MockGenerationJobRepository) MarkProcessing(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockGenerationJobRepository) MarkCompleted(ctx context.Context, id uuid.UUID, content string) error {
	args := m.Called(ctx, id, content)
	return args.Error(0)
}

func (m *MockGenerationJobRepository) MarkFailed(ctx context.Context, id uuid.UUID, errorMsg string) error {
	args := m.Called(ctx, id, errorMsg)
	return args.Error(0)
}

// Mock GenerationCacheRepository
type MockGenerationCacheRepository struct {
	mock.Mock
}

func (m *MockGenerationCacheRepository) Get(ctx context.Context, cacheKey string) (string, bool, error) {
	args := m.Called(ctx, cacheKey)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockGenerationCacheRepository) Put(ctx context.Context, cacheKey, content string) error {
	args := m.Called(ctx, cacheKey, content)
	return args.Error(0)
}

// Mock UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entities.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetOrCreate(ctx context.Context, id uuid.UUID, email, name string) (*entities.User, error) {
	args := m.Called(ctx, id, email, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}
