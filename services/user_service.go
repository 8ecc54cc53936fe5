package services

import (
	"context"
	"encoding/json"
	"time"

	"todo-service/models"
	"todo-service/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Cache is the subset of cache.Store the services read through
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration)
	Delete(key string)
}

type UserService interface {
	GetByUsername(ctx context.Context, principal, username string) (*models.UserDto, error)
	Create(ctx context.Context, req models.RegisterUserRequest) (*models.UserDto, error)
	ChangeUsername(ctx context.Context, principal, oldUsername, newUsername string) (*models.UserDto, error)
	ChangeEmail(ctx context.Context, principal, username, email string) (*models.UserDto, error)
	ChangePassword(ctx context.Context, principal, username, rawPassword string) error
	Delete(ctx context.Context, principal, username string) error
	Exists(ctx context.Context, username string) (bool, error)
	// Authenticate checks a username/password pair for the Basic auth middleware
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
}

// UserOptions tunes hashing cost and caching of user lookups
type UserOptions struct {
	BcryptCost int
	Cache      Cache
	CacheTTL   time.Duration
}

type userService struct {
	store  *repository.Store
	mapper models.Mapper
	opts   UserOptions
	now    func() time.Time
}

func NewUserService(store *repository.Store, mapper models.Mapper, opts UserOptions) UserService {
	if opts.BcryptCost == 0 {
		opts.BcryptCost = bcrypt.DefaultCost
	}
	return &userService{store: store, mapper: mapper, opts: opts, now: models.Now}
}

func userCacheKey(username string) string {
	return "user:" + username
}

func (s *userService) GetByUsername(ctx context.Context, principal, username string) (*models.UserDto, error) {
	if err := Authorize(principal, username); err != nil {
		return nil, err
	}

	if s.opts.Cache != nil {
		if cached, ok := s.opts.Cache.Get(userCacheKey(username)); ok {
			var dto models.UserDto
			if err := json.Unmarshal(cached, &dto); err == nil {
				return &dto, nil
			}
		}
	}

	u, err := s.store.Users.FindByUsername(ctx, username)
	if err != nil {
		return nil, translate(err, "get user", ErrUserNotFound)
	}

	dto := s.mapper.ToUserDto(u)
	if s.opts.Cache != nil {
		if data, err := json.Marshal(dto); err == nil {
			s.opts.Cache.Set(userCacheKey(username), data, s.opts.CacheTTL)
		}
	}
	return &dto, nil
}

func (s *userService) Create(ctx context.Context, req models.RegisterUserRequest) (*models.UserDto, error) {
	exists, err := s.Exists(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUsernameAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.opts.BcryptCost)
	if err != nil {
		return nil, err
	}

	now := s.now()
	u := &models.User{
		ID:        uuid.NewString(),
		Username:  req.Username,
		Password:  string(hash),
		Email:     req.Email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Users.Create(ctx, u); err != nil {
		return nil, translate(err, "create user", ErrUserNotFound)
	}

	dto := s.mapper.ToUserDto(u)
	return &dto, nil
}

// load fetches a user the principal is allowed to modify
func (s *userService) load(ctx context.Context, principal, username string) (*models.User, error) {
	if err := Authorize(principal, username); err != nil {
		return nil, err
	}
	u, err := s.store.Users.FindByUsername(ctx, username)
	if err != nil {
		return nil, translate(err, "get user", ErrUserNotFound)
	}
	return u, nil
}

func (s *userService) save(ctx context.Context, u *models.User, previous string) error {
	u.UpdatedAt = s.now()
	if err := s.store.Users.Update(ctx, u); err != nil {
		return translate(err, "update user", ErrUserNotFound)
	}
	s.invalidate(previous, u.Username)
	return nil
}

func (s *userService) invalidate(usernames ...string) {
	if s.opts.Cache == nil {
		return
	}
	for _, name := range usernames {
		s.opts.Cache.Delete(userCacheKey(name))
	}
}

func (s *userService) ChangeUsername(ctx context.Context, principal, oldUsername, newUsername string) (*models.UserDto, error) {
	u, err := s.load(ctx, principal, oldUsername)
	if err != nil {
		return nil, err
	}

	if newUsername != oldUsername {
		exists, err := s.Exists(ctx, newUsername)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrUsernameAlreadyExists
		}
	}

	u.Username = newUsername
	if err := s.save(ctx, u, oldUsername); err != nil {
		return nil, err
	}
	dto := s.mapper.ToUserDto(u)
	return &dto, nil
}

func (s *userService) ChangeEmail(ctx context.Context, principal, username, email string) (*models.UserDto, error) {
	u, err := s.load(ctx, principal, username)
	if err != nil {
		return nil, err
	}

	u.Email = email
	if err := s.save(ctx, u, username); err != nil {
		return nil, err
	}
	dto := s.mapper.ToUserDto(u)
	return &dto, nil
}

func (s *userService) ChangePassword(ctx context.Context, principal, username, rawPassword string) error {
	u, err := s.load(ctx, principal, username)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(rawPassword), s.opts.BcryptCost)
	if err != nil {
		return err
	}
	u.Password = string(hash)
	return s.save(ctx, u, username)
}

func (s *userService) Delete(ctx context.Context, principal, username string) error {
	u, err := s.load(ctx, principal, username)
	if err != nil {
		return err
	}

	err = s.store.WithTransaction(ctx, func(repos repository.Repositories) error {
		return repos.Users.Delete(ctx, u.ID)
	})
	if err != nil {
		return translate(err, "delete user", ErrUserNotFound)
	}
	s.invalidate(username)
	return nil
}

func (s *userService) Exists(ctx context.Context, username string) (bool, error) {
	exists, err := s.store.Users.ExistsByUsername(ctx, username)
	if err != nil {
		return false, translate(err, "check username", ErrUserNotFound)
	}
	return exists, nil
}

func (s *userService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	u, err := s.store.Users.FindByUsername(ctx, username)
	if err != nil {
		return nil, translate(err, "authenticate", ErrInvalidCredentials)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

