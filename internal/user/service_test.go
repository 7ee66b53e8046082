package user

import (
	"context"
	"errors"
	"testing"

	"cinemacompanion/internal/content"
	"cinemacompanion/internal/platform/crypto"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := NewMockRepository(ctrl)
	svc := NewService(repo, content.NewMockRepository(ctrl))

	t.Run("hashes the password", func(t *testing.T) {
		repo.EXPECT().CreateUser(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, in NewUser) (User, error) {
			assert.Equal(t, "ana", in.Username)
			assert.Equal(t, "ana@example.com", in.Email)
			assert.NotEqual(t, "password123", in.PasswordHash)
			assert.True(t, crypto.VerifyPassword(in.PasswordHash, "password123"))
			return User{ID: 1, Username: in.Username, Email: in.Email, PasswordHash: in.PasswordHash, Favorites: []int64{}}, nil
		})

		u, err := svc.Register(context.Background(), " ana ", "ana@example.com ", "password123")

		require.NoError(t, err)
		assert.Equal(t, int64(1), u.ID)
	})

	t.Run("conflict", func(t *testing.T) {
		repo.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(User{}, ErrEmailTaken)

		_, err := svc.Register(context.Background(), "ana", "ana@example.com", "password123")

		assert.ErrorIs(t, err, ErrAlreadyExists)
	})
}

func TestService_Authenticate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := NewMockRepository(ctrl)
	svc := NewService(repo, content.NewMockRepository(ctrl))

	hash, err := crypto.HashPassword("password123")
	require.NoError(t, err)
	stored := User{ID: 1, Email: "ana@example.com", PasswordHash: hash}

	t.Run("success", func(t *testing.T) {
		repo.EXPECT().GetUserByEmail(gomock.Any(), "ana@example.com").Return(stored, nil)

		u, err := svc.Authenticate(context.Background(), "ana@example.com", "password123")

		require.NoError(t, err)
		assert.Equal(t, int64(1), u.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		repo.EXPECT().GetUserByEmail(gomock.Any(), "ana@example.com").Return(stored, nil)

		_, err := svc.Authenticate(context.Background(), "ana@example.com", "wrong")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		repo.EXPECT().GetUserByEmail(gomock.Any(), "bob@example.com").Return(User{}, ErrNotFound)

		_, err := svc.Authenticate(context.Background(), "bob@example.com", "password123")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("store failure", func(t *testing.T) {
		repo.EXPECT().GetUserByEmail(gomock.Any(), "ana@example.com").Return(User{}, errors.New("db down"))

		_, err := svc.Authenticate(context.Background(), "ana@example.com", "password123")

		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestService_SetFavorites(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := NewMockRepository(ctrl)
	svc := NewService(repo, content.NewMockRepository(ctrl))

	repo.EXPECT().SetFavorites(gomock.Any(), int64(1), []int64{4, 2}).Return(User{ID: 1, Favorites: []int64{4, 2}}, nil)

	u, err := svc.SetFavorites(context.Background(), 1, []int64{4, 2, 4})

	require.NoError(t, err)
	assert.Equal(t, []int64{4, 2}, u.Favorites)
}

func TestService_Favorites(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := NewMockRepository(ctrl)
	catalog := content.NewMockRepository(ctrl)
	svc := NewService(repo, catalog)

	t.Run("skips dangling ids and keeps catalog order", func(t *testing.T) {
		repo.EXPECT().GetUser(gomock.Any(), int64(1)).Return(User{ID: 1, Favorites: []int64{3, 99, 1}}, nil)
		catalog.EXPECT().List(gomock.Any()).Return([]content.Item{
			{ID: 1, Title: "A"}, {ID: 2, Title: "B"}, {ID: 3, Title: "C"},
		}, nil)

		items, err := svc.Favorites(context.Background(), 1)

		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, int64(1), items[0].ID)
		assert.Equal(t, int64(3), items[1].ID)
	})

	t.Run("unknown user", func(t *testing.T) {
		repo.EXPECT().GetUser(gomock.Any(), int64(2)).Return(User{}, ErrNotFound)

		_, err := svc.Favorites(context.Background(), 2)

		assert.ErrorIs(t, err, ErrNotFound)
	})
}
