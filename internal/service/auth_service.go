package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"todolist-be/internal/dto"
	"todolist-be/internal/entity"
	"todolist-be/internal/pkg/apperror"
	"todolist-be/internal/repository/specification"
	"todolist-be/internal/repository/unitofwork"
	"todolist-be/pkg/events"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (int64, error)
	LinkTelegram(ctx context.Context, username, password string, telegramId int64) error
	ResolveTelegram(ctx context.Context, telegramId int64) (*entity.User, error)
	HasTelegram(ctx context.Context, userId int64) (bool, error)
}

type authService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher IPublisherService
	queryTimeout   time.Duration
}

func NewAuthService(uowFactory unitofwork.RepositoryFactory, eventPublisher IPublisherService, queryTimeout time.Duration) IAuthService {
	return &authService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
		queryTimeout:   queryTimeout,
	}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, apperror.ErrValidation
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	// 1. Check for existing user
	existing, err := uow.UserRepository().FindOne(ctx, specification.ByUsername{Username: username})
	if err != nil {
		return nil, apperror.Storage(err)
	}
	if existing != nil {
		return nil, apperror.ErrUsernameTaken
	}

	// 2. Hash password
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	// 3. Create User Entity
	user := &entity.User{
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	// 4. Save to DB. The unique index backs up the existence check for
	// concurrent registrations of the same name.
	if err := uow.UserRepository().Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.ErrUsernameTaken
		}
		return nil, apperror.Storage(err)
	}

	return &dto.RegisterResponse{Id: user.Id, Username: user.Username}, nil
}

// Login returns the account id on success. Unknown username and wrong
// password yield the same error so the response never reveals which field
// was wrong.
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	user, err := s.verify(ctx, req.Username, req.Password)
	if err != nil {
		return 0, err
	}

	if s.eventPublisher != nil {
		event := events.BaseEvent{
			Type: events.TypeUserLogin,
			Data: map[string]interface{}{
				"user_id": user.Id,
			},
			OccurredAt: time.Now(),
		}
		// auxiliary; a publish failure must not fail the login
		_ = s.eventPublisher.PublishEvent(ctx, event)
	}

	return user.Id, nil
}

func (s *authService) verify(ctx context.Context, username, password string) (*entity.User, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByUsername{Username: strings.TrimSpace(username)})
	if err != nil {
		return nil, apperror.Storage(err)
	}
	if user == nil {
		return nil, apperror.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperror.ErrInvalidCredentials
	}

	return user, nil
}

// LinkTelegram re-verifies credentials, then binds the chat identity.
// Relinking the same identity to the same account is an idempotent success.
// Everything else is a conflict: an identity held by a different account, or
// an account that already carries a different identity.
func (s *authService) LinkTelegram(ctx context.Context, username, password string, telegramId int64) error {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	user, err := s.verify(ctx, username, password)
	if err != nil {
		return err
	}
	if user.HasTelegram() {
		if *user.TelegramId == telegramId {
			return nil
		}
		return apperror.ErrTelegramAlreadyLinked
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	holder, err := uow.UserRepository().FindOne(ctx, specification.ByTelegramId{TelegramId: telegramId})
	if err != nil {
		return apperror.Storage(err)
	}
	if holder != nil {
		return apperror.ErrTelegramAlreadyLinked
	}

	if err := uow.UserRepository().SetTelegramId(ctx, user.Id, &telegramId); err != nil {
		// concurrent link of the same identity surfaces as a unique violation
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperror.ErrTelegramAlreadyLinked
		}
		return apperror.Storage(err)
	}
	return nil
}

func (s *authService) ResolveTelegram(ctx context.Context, telegramId int64) (*entity.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByTelegramId{TelegramId: telegramId})
	if err != nil {
		return nil, apperror.Storage(err)
	}
	if user == nil {
		return nil, apperror.ErrTelegramNotLinked
	}
	return user, nil
}

func (s *authService) HasTelegram(ctx context.Context, userId int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return false, apperror.Storage(err)
	}
	if user == nil {
		return false, nil
	}
	return user.HasTelegram(), nil
}
