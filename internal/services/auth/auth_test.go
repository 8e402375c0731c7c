package auth

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/mindspace-backend/internal/lib/jwt"
	"github.com/magabrotheeeer/mindspace-backend/internal/lib/password"
	"github.com/magabrotheeeer/mindspace-backend/internal/models"
	"github.com/magabrotheeeer/mindspace-backend/internal/storage/repository"
)

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) RegisterUser(ctx context.Context, user models.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *UserRepoMock) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *UserRepoMock) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	args := m.Called(ctx, userUID)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

type MakerMock struct{ mock.Mock }

func (m *MakerMock) GenerateToken(userUID, username, role string) (string, error) {
	args := m.Called(userUID, username, role)
	return args.String(0), args.Error(1)
}

func (m *MakerMock) ParseToken(tokenStr string) (*jwt.CustomClaims, error) {
	args := m.Called(tokenStr)
	claims, _ := args.Get(0).(*jwt.CustomClaims)
	return claims, args.Error(1)
}

func TestAuth_Register(t *testing.T) {
	tests := []struct {
		name       string
		username   string
		setupMocks func(repo *UserRepoMock)
		wantUID    string
		wantErr    error
	}{
		{
			name:     "успешная регистрация",
			username: "new_user42",
			setupMocks: func(repo *UserRepoMock) {
				repo.On("RegisterUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
					return u.Username == "new_user42" &&
						u.Email == "newuser42@mindspace.app" &&
						u.Role == models.RoleUser &&
						u.IsActive &&
						strings.HasPrefix(u.AnonymousID, "anon_") &&
						strings.HasPrefix(u.DisplayName, "Anonymous") &&
						password.CompareHash(u.PasswordHash, "secret123") == nil
				})).Return("uid-new", nil).Once()
			},
			wantUID: "uid-new",
		},
		{
			name:     "имя занято",
			username: "taken",
			setupMocks: func(repo *UserRepoMock) {
				repo.On("RegisterUser", mock.Anything, mock.Anything).
					Return("", repository.ErrAlreadyExists).Once()
			},
			wantErr: ErrUsernameTaken,
		},
		{
			name:     "ошибка базы данных",
			username: "someone",
			setupMocks: func(repo *UserRepoMock) {
				repo.On("RegisterUser", mock.Anything, mock.Anything).
					Return("", errors.New("connection refused")).Once()
			},
			wantErr: errors.New("connection refused"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			maker := new(MakerMock)
			svc := New(repo, maker)

			tt.setupMocks(repo)

			uid, err := svc.Register(context.Background(), tt.username, "secret123")
			if tt.wantErr != nil {
				assert.Error(t, err)
				assert.EqualError(t, err, tt.wantErr.Error())
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantUID, uid)
			}

			repo.AssertExpectations(t)
			maker.AssertExpectations(t)
		})
	}
}

func TestAuth_Login(t *testing.T) {
	hashed, err := password.GetHash("correct_password")
	if err != nil {
		t.Fatalf("failed to hash test password: %v", err)
	}
	storedUser := &models.User{
		UID:          "uid-1",
		Username:     "testuser",
		PasswordHash: hashed,
		Role:         models.RoleUser,
	}

	tests := []struct {
		name        string
		rawPassword string
		setupMocks  func(repo *UserRepoMock, maker *MakerMock)
		wantToken   string
		wantErr     error
	}{
		{
			name:        "успешный вход",
			rawPassword: "correct_password",
			setupMocks: func(repo *UserRepoMock, maker *MakerMock) {
				repo.On("GetUserByUsername", mock.Anything, "testuser").
					Return(storedUser, nil).Once()
				maker.On("GenerateToken", "uid-1", "testuser", models.RoleUser).
					Return("signed.jwt.token", nil).Once()
			},
			wantToken: "signed.jwt.token",
		},
		{
			name:        "неизвестное имя пользователя",
			rawPassword: "correct_password",
			setupMocks: func(repo *UserRepoMock, _ *MakerMock) {
				repo.On("GetUserByUsername", mock.Anything, "testuser").
					Return(nil, repository.ErrNotFound).Once()
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name:        "неверный пароль",
			rawPassword: "wrong_password",
			setupMocks: func(repo *UserRepoMock, _ *MakerMock) {
				repo.On("GetUserByUsername", mock.Anything, "testuser").
					Return(storedUser, nil).Once()
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name:        "ошибка базы данных",
			rawPassword: "correct_password",
			setupMocks: func(repo *UserRepoMock, _ *MakerMock) {
				repo.On("GetUserByUsername", mock.Anything, "testuser").
					Return(nil, errors.New("connection refused")).Once()
			},
			wantErr: errors.New("connection refused"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			maker := new(MakerMock)
			svc := New(repo, maker)

			tt.setupMocks(repo, maker)

			token, err := svc.Login(context.Background(), "testuser", tt.rawPassword)
			if tt.wantErr != nil {
				assert.Error(t, err)
				assert.EqualError(t, err, tt.wantErr.Error())
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantToken, token)
			}

			repo.AssertExpectations(t)
			maker.AssertExpectations(t)
		})
	}
}

func TestAuth_Profile(t *testing.T) {
	storedUser := &models.User{
		UID:         "uid-1",
		Username:    "testuser",
		Role:        models.RoleUser,
		AnonymousID: "anon_a1b2c3d",
		DisplayName: "Anonymous2c3d",
	}

	tests := []struct {
		name       string
		setupMocks func(repo *UserRepoMock)
		wantErr    error
	}{
		{
			name: "успешное чтение профиля",
			setupMocks: func(repo *UserRepoMock) {
				repo.On("GetUser", mock.Anything, "uid-1").
					Return(storedUser, nil).Once()
			},
		},
		{
			name: "пользователь не найден",
			setupMocks: func(repo *UserRepoMock) {
				repo.On("GetUser", mock.Anything, "uid-1").
					Return(nil, repository.ErrNotFound).Once()
			},
			wantErr: ErrUserNotFound,
		},
		{
			name: "ошибка базы данных",
			setupMocks: func(repo *UserRepoMock) {
				repo.On("GetUser", mock.Anything, "uid-1").
					Return(nil, errors.New("connection refused")).Once()
			},
			wantErr: errors.New("connection refused"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			svc := New(repo, new(MakerMock))

			tt.setupMocks(repo)

			user, err := svc.Profile(context.Background(), "uid-1")
			if tt.wantErr != nil {
				assert.Error(t, err)
				assert.EqualError(t, err, tt.wantErr.Error())
			} else {
				assert.NoError(t, err)
				assert.Equal(t, storedUser, user)
			}

			repo.AssertExpectations(t)
		})
	}
}

func TestAuth_Login_UnknownUsernameAndWrongPasswordLookAlike(t *testing.T) {
	hashed, err := password.GetHash("real_password")
	if err != nil {
		t.Fatalf("failed to hash test password: %v", err)
	}

	repo := new(UserRepoMock)
	repo.On("GetUserByUsername", mock.Anything, "exists").
		Return(&models.User{UID: "uid-1", Username: "exists", PasswordHash: hashed}, nil).Once()
	repo.On("GetUserByUsername", mock.Anything, "ghost").
		Return(nil, repository.ErrNotFound).Once()

	svc := New(repo, new(MakerMock))

	_, errWrongPassword := svc.Login(context.Background(), "exists", "bad")
	_, errUnknownUser := svc.Login(context.Background(), "ghost", "bad")

	assert.ErrorIs(t, errWrongPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, errUnknownUser, ErrInvalidCredentials)
	assert.EqualError(t, errWrongPassword, errUnknownUser.Error())
}
