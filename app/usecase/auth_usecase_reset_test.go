package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"user-auth-service/app/domain"
)

func TestAuthUseCase_GetResetPasswordToken(t *testing.T) {
	t.Run("token issued", func(t *testing.T) {
		uc, mockRepo, _, mockTokens := newTestAuthUseCase(t)

		user, err := domain.NewUser("bob@example.com", "stored-hash")
		require.NoError(t, err)

		mockRepo.EXPECT().GetByEmail(gomock.Any(), "bob@example.com").Return(user, nil)
		mockTokens.EXPECT().NewToken().Return("reset-token-1", nil)
		mockRepo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, u *domain.User) error {
				require.NotNil(t, u.ResetToken)
				assert.Equal(t, "reset-token-1", *u.ResetToken)
				return nil
			})

		token, err := uc.GetResetPasswordToken(context.Background(), "bob@example.com")
		require.NoError(t, err)
		assert.Equal(t, "reset-token-1", token)
	})

	t.Run("reissue replaces pending token", func(t *testing.T) {
		uc, mockRepo, _, mockTokens := newTestAuthUseCase(t)

		user, err := domain.NewUser("bob@example.com", "stored-hash")
		require.NoError(t, err)
		user.StartPasswordReset("old-reset-token")

		mockRepo.EXPECT().GetByEmail(gomock.Any(), "bob@example.com").Return(user, nil)
		mockTokens.EXPECT().NewToken().Return("new-reset-token", nil)
		mockRepo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, u *domain.User) error {
				require.NotNil(t, u.ResetToken)
				assert.Equal(t, "new-reset-token", *u.ResetToken)
				return nil
			})

		token, err := uc.GetResetPasswordToken(context.Background(), "bob@example.com")
		require.NoError(t, err)
		assert.Equal(t, "new-reset-token", token)
	})

	t.Run("unknown email", func(t *testing.T) {
		uc, mockRepo, _, _ := newTestAuthUseCase(t)

		mockRepo.EXPECT().GetByEmail(gomock.Any(), "nobody@example.com").Return(nil, domain.ErrUserNotFound)

		token, err := uc.GetResetPasswordToken(context.Background(), "nobody@example.com")
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
		assert.Empty(t, token)
	})

	t.Run("token generation failure", func(t *testing.T) {
		uc, mockRepo, _, mockTokens := newTestAuthUseCase(t)

		user, err := domain.NewUser("bob@example.com", "stored-hash")
		require.NoError(t, err)

		mockRepo.EXPECT().GetByEmail(gomock.Any(), "bob@example.com").Return(user, nil)
		mockTokens.EXPECT().NewToken().Return("", assert.AnError)

		token, err := uc.GetResetPasswordToken(context.Background(), "bob@example.com")
		assert.ErrorIs(t, err, assert.AnError)
		assert.Empty(t, token)
	})
}

func TestAuthUseCase_UpdatePassword(t *testing.T) {
	t.Run("password updated and token consumed", func(t *testing.T) {
		uc, mockRepo, mockHasher, _ := newTestAuthUseCase(t)

		mockHasher.EXPECT().Hash("new-password").Return("new-hash", nil)
		mockRepo.EXPECT().ConsumeResetToken(gomock.Any(), "reset-token-1", "new-hash").Return(nil)

		assert.NoError(t, uc.UpdatePassword(context.Background(), "reset-token-1", "new-password"))
	})

	t.Run("empty token rejected without hashing", func(t *testing.T) {
		uc, _, _, _ := newTestAuthUseCase(t)

		err := uc.UpdatePassword(context.Background(), "", "new-password")
		assert.ErrorIs(t, err, domain.ErrResetTokenNotFound)
	})

	t.Run("stale token", func(t *testing.T) {
		uc, mockRepo, mockHasher, _ := newTestAuthUseCase(t)

		mockHasher.EXPECT().Hash("new-password").Return("new-hash", nil)
		mockRepo.EXPECT().ConsumeResetToken(gomock.Any(), "stale-token", "new-hash").
			Return(domain.ErrResetTokenNotFound)

		err := uc.UpdatePassword(context.Background(), "stale-token", "new-password")
		assert.ErrorIs(t, err, domain.ErrResetTokenNotFound)
	})

	t.Run("hasher failure", func(t *testing.T) {
		uc, _, mockHasher, _ := newTestAuthUseCase(t)

		mockHasher.EXPECT().Hash("new-password").Return("", assert.AnError)

		err := uc.UpdatePassword(context.Background(), "reset-token-1", "new-password")
		assert.ErrorIs(t, err, assert.AnError)
	})

	t.Run("store failure marked internal", func(t *testing.T) {
		uc, mockRepo, mockHasher, _ := newTestAuthUseCase(t)

		mockHasher.EXPECT().Hash("new-password").Return("new-hash", nil)
		mockRepo.EXPECT().ConsumeResetToken(gomock.Any(), "reset-token-1", "new-hash").
			Return(assert.AnError)

		err := uc.UpdatePassword(context.Background(), "reset-token-1", "new-password")
		assert.ErrorIs(t, err, assert.AnError)
		assert.ErrorIs(t, err, domain.ErrInternal)
	})
}
