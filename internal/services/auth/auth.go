// Package auth содержит логику бизнес-уровня для регистрации и аутентификации пользователей.
package auth

import (
	"context"
	"errors"
	"regexp"

	"github.com/magabrotheeeer/mindspace-backend/internal/lib/anon"
	"github.com/magabrotheeeer/mindspace-backend/internal/lib/jwt"
	"github.com/magabrotheeeer/mindspace-backend/internal/lib/password"
	"github.com/magabrotheeeer/mindspace-backend/internal/models"
	"github.com/magabrotheeeer/mindspace-backend/internal/storage/repository"
)

// Ошибки сервиса аутентификации.
var (
	// ErrUsernameTaken возвращается при попытке занять существующее имя.
	ErrUsernameTaken = errors.New("username already exists")
	// ErrInvalidCredentials возвращается при неизвестном имени или неверном
	// пароле. Сообщение намеренно одинаковое в обоих случаях, чтобы ответ
	// не раскрывал существование имени пользователя.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserNotFound возвращается, когда пользователь с таким UID отсутствует,
	// например после удаления учётной записи при живом токене.
	ErrUserNotFound = errors.New("user not found")
)

// emailDomain — домен синтетических адресов, выводимых из имени пользователя.
const emailDomain = "mindspace.app"

var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9]`)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя и возвращает его UID.
	RegisterUser(ctx context.Context, user models.User) (string, error)

	// GetUserByUsername возвращает пользователя по имени, включая хэш пароля,
	// или ошибку, если не найден.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// GetUser возвращает пользователя по UID или ошибку, если не найден.
	GetUser(ctx context.Context, userUID string) (*models.User, error)
}

// Service отвечает за регистрацию и авторизацию пользователей.
type Service struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// New создает новый экземпляр Service.
func New(users UserRepository, jwtMaker jwt.Maker) *Service {
	return &Service{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Register создает нового пользователя: хэширует пароль, выводит синтетический
// email из очищенного имени и генерирует анонимный профиль. Токен при
// регистрации не выдаётся.
func (s *Service) Register(ctx context.Context, username, rawPassword string) (string, error) {
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", err
	}
	anonymousID := anon.NewID()
	user := models.User{
		Username:     username,
		Email:        nonAlphanumeric.ReplaceAllString(username, "") + "@" + emailDomain,
		PasswordHash: hashed,
		Role:         models.RoleUser,
		IsActive:     true,
		AnonymousID:  anonymousID,
		DisplayName:  anon.DisplayName(anonymousID),
	}
	uid, err := s.users.RegisterUser(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return "", ErrUsernameTaken
		}
		return "", err
	}
	return uid, nil
}

// Login проверяет пароль пользователя и генерирует JWT.
// Неизвестное имя и неверный пароль дают один и тот же результат.
func (s *Service) Login(ctx context.Context, username, rawPassword string) (string, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", ErrInvalidCredentials
	}
	return s.jwtMaker.GenerateToken(user.UID, user.Username, user.Role)
}

// Profile возвращает профиль пользователя по UID из токена.
func (s *Service) Profile(ctx context.Context, userUID string) (*models.User, error) {
	user, err := s.users.GetUser(ctx, userUID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
