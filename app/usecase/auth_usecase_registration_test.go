package usecase

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"user-auth-service/app/domain"
	mock_port "user-auth-service/app/mocks"
	"user-auth-service/app/utils/logger"
)

func newTestAuthUseCase(t *testing.T) (*AuthUseCase, *mock_port.MockUserRepository, *mock_port.MockPasswordHasher, *mock_port.MockTokenSource) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockRepo := mock_port.NewMockUserRepository(ctrl)
	mockHasher := mock_port.NewMockPasswordHasher(ctrl)
	mockTokens := mock_port.NewMockTokenSource(ctrl)

	var buf bytes.Buffer
	testLogger, err := logger.NewWithWriter("debug", &buf)
	require.NoError(t, err)

	uc := NewAuthUseCase(mockRepo, mockHasher, mockTokens, testLogger)
	return uc, mockRepo, mockHasher, mockTokens
}

func TestAuthUseCase_RegisterUser(t *testing.T) {
	tests := []struct {
		name       string
		email      string
		password   string
		setupMocks func(*mock_port.MockUserRepository, *mock_port.MockPasswordHasher)
		wantErr    error
	}{
		{
			name:     "successful registration",
			email:    "bob@example.com",
			password: "correct horse battery staple",
			setupMocks: func(repo *mock_port.MockUserRepository, hasher *mock_port.MockPasswordHasher) {
				hasher.EXPECT().Hash("correct horse battery staple").Return("hashed-password", nil)
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name:     "duplicate email",
			email:    "bob@example.com",
			password: "pw",
			setupMocks: func(repo *mock_port.MockUserRepository, hasher *mock_port.MockPasswordHasher) {
				hasher.EXPECT().Hash("pw").Return("hashed-password", nil)
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(domain.ErrUserAlreadyExists)
			},
			wantErr: domain.ErrUserAlreadyExists,
		},
		{
			name:     "invalid email",
			email:    "not-an-email",
			password: "pw",
			setupMocks: func(repo *mock_port.MockUserRepository, hasher *mock_port.MockPasswordHasher) {
				// Hashing happens before address validation; the store is never touched.
				hasher.EXPECT().Hash("pw").Return("hashed-password", nil)
			},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:     "hasher failure",
			email:    "bob@example.com",
			password: "pw",
			setupMocks: func(repo *mock_port.MockUserRepository, hasher *mock_port.MockPasswordHasher) {
				hasher.EXPECT().Hash("pw").Return("", assert.AnError)
			},
			wantErr: assert.AnError,
		},
		{
			name:     "repository failure",
			email:    "bob@example.com",
			password: "pw",
			setupMocks: func(repo *mock_port.MockUserRepository, hasher *mock_port.MockPasswordHasher) {
				hasher.EXPECT().Hash("pw").Return("hashed-password", nil)
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(assert.AnError)
			},
			wantErr: assert.AnError,
		},
		{
			name:     "repository failure marked internal",
			email:    "bob@example.com",
			password: "pw",
			setupMocks: func(repo *mock_port.MockUserRepository, hasher *mock_port.MockPasswordHasher) {
				hasher.EXPECT().Hash("pw").Return("hashed-password", nil)
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(assert.AnError)
			},
			wantErr: domain.ErrInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, mockRepo, mockHasher, _ := newTestAuthUseCase(t)
			tt.setupMocks(mockRepo, mockHasher)

			user, err := uc.RegisterUser(context.Background(), tt.email, tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.Equal(t, tt.email, user.Email)
				assert.Equal(t, "hashed-password", user.HashedPassword)
				assert.Nil(t, user.SessionID)
				assert.Nil(t, user.ResetToken)
			}
		})
	}
}

func TestAuthUseCase_RegisterUser_DoesNotStorePlaintext(t *testing.T) {
	uc, mockRepo, mockHasher, _ := newTestAuthUseCase(t)

	mockHasher.EXPECT().Hash("plaintext-secret").Return("opaque-hash", nil)
	mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, user *domain.User) error {
			assert.NotContains(t, user.HashedPassword, "plaintext-secret")
			return nil
		})

	_, err := uc.RegisterUser(context.Background(), "bob@example.com", "plaintext-secret")
	assert.NoError(t, err)
}
