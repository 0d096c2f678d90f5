package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"durianfarm/internal/auth"
	"durianfarm/internal/cache"
	apperrors "durianfarm/internal/errors"
	"durianfarm/internal/model"
	"durianfarm/internal/repository"
)

const userCacheTTL = 5 * time.Minute

// UserInput carries user fields for create and update. A nil field was
// not submitted.
type UserInput struct {
	Username *string
	Email    *string
	Password *string
	UserRole *int
}

// UserService exposes user domain operations.
type UserService interface {
	CreateUser(ctx context.Context, in UserInput) (*model.User, string, error)
	GetAllUsers(ctx context.Context) ([]model.User, error)
	GetUser(ctx context.Context, id uint) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	UpdateUser(ctx context.Context, id uint, in UserInput) (*model.User, error)
	DeleteUser(ctx context.Context, id uint) error
	Login(ctx context.Context, username, password string) (*model.User, string, error)
	FarmsForUsername(ctx context.Context, username string) ([]model.UserFarmTable, error)
}

type userService struct {
	userRepo     repository.UserRepository
	userFarmRepo repository.UserFarmRepository
	jwtService   *auth.JWTService
	cache        *cache.Client
}

// NewUserService builds a UserService with its repositories, token
// service and cache.
func NewUserService(
	userRepo repository.UserRepository,
	userFarmRepo repository.UserFarmRepository,
	jwtService *auth.JWTService,
	cacheClient *cache.Client,
) UserService {
	return &userService{
		userRepo:     userRepo,
		userFarmRepo: userFarmRepo,
		jwtService:   jwtService,
		cache:        cacheClient,
	}
}

func userCacheKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

// CreateUser registers a user and issues a session token. Duplicate
// username or email yields ErrUserConflict and creates no row.
func (s *userService) CreateUser(ctx context.Context, in UserInput) (*model.User, string, error) {
	var username, email, password string
	if in.Username != nil {
		username = *in.Username
	}
	if in.Email != nil {
		email = *in.Email
	}
	if in.Password != nil {
		password = *in.Password
	}

	taken, err := s.userRepo.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, "", fmt.Errorf("check user existence: %w", err)
	}
	if taken {
		return nil, "", apperrors.ErrUserConflict
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}
	if in.UserRole != nil {
		user.UserRole = *in.UserRole
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.jwtService.GenerateToken(user.UserID, user.Username, user.UserRole)
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}
	return user, token, nil
}

func (s *userService) GetAllUsers(ctx context.Context) ([]model.User, error) {
	return s.userRepo.List(ctx)
}

func (s *userService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	if data, _ := s.cache.Get(ctx, userCacheKey(id)); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("User", id)
		}
		return nil, err
	}

	if payload, err := json.Marshal(user); err == nil {
		_ = s.cache.Set(ctx, userCacheKey(id), payload, userCacheTTL)
	}
	return user, nil
}

func (s *userService) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundByUsername("User", username)
		}
		return nil, err
	}
	return user, nil
}

// UpdateUser writes submitted fields. A submitted password is hashed
// exactly once before storage.
func (s *userService) UpdateUser(ctx context.Context, id uint, in UserInput) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("User", id)
		}
		return nil, err
	}

	if in.Username != nil {
		user.Username = *in.Username
	}
	if in.Email != nil {
		user.Email = *in.Email
	}
	if in.UserRole != nil {
		user.UserRole = *in.UserRole
	}
	if in.Password != nil && *in.Password != "" {
		hash, err := auth.HashPassword(*in.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = hash
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	_ = s.cache.Delete(ctx, userCacheKey(id))
	return user, nil
}

// DeleteUser removes the user row. Farm links are left in place; farm
// deletion is the cascade point.
func (s *userService) DeleteUser(ctx context.Context, id uint) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NewNotFound("User", id)
		}
		return err
	}
	_ = s.cache.Delete(ctx, userCacheKey(id))
	return nil
}

// Login authenticates by username and password. Unknown username and
// wrong password return the identical error.
func (s *userService) Login(ctx context.Context, username, password string) (*model.User, string, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", apperrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, "", apperrors.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(user.UserID, user.Username, user.UserRole)
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}
	return user, token, nil
}

// FarmsForUsername returns the user's farm links with farms preloaded.
// An unknown username yields an empty list, not an error.
func (s *userService) FarmsForUsername(ctx context.Context, username string) ([]model.UserFarmTable, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []model.UserFarmTable{}, nil
		}
		return nil, err
	}
	return s.userFarmRepo.ListByUserWithFarms(ctx, user.UserID)
}
