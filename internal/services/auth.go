package services

import (
	"context"
	"fmt"
	"net/http"

	"quote-system/internal/dto"
	"quote-system/internal/entities"
	"quote-system/internal/repositories"
	"quote-system/pkg/config"
	apperrors "quote-system/pkg/errors"
	"quote-system/pkg/service"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceInterface interface {
	Login(ctx context.Context, data dto.LoginDTO) (*dto.TokenPairDTO, error)
	Refresh(ctx context.Context, data dto.RefreshDTO) (*dto.TokenPairDTO, error)
	Me(ctx context.Context, userID uint64) (*dto.UserDTO, error)
	CreateUser(ctx context.Context, data dto.CreateUserDTO) (int, error)
	GetUsers(ctx context.Context, limit, offset uint64) ([]dto.UserDTO, uint64, error)
	SetUserActive(ctx context.Context, id uint64, active bool) error
}

type AuthService struct {
	userRepo  repositories.UserRepositoryInterface
	cacheRepo repositories.CacheRepositoryInterface
	jwtSvc    service.JWTService
	logger    *zap.Logger
	cfg       *config.AuthConfig
}

func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	jwtSvc service.JWTService,
	logger *zap.Logger,
	cfg *config.AuthConfig,
) AuthServiceInterface {
	return &AuthService{
		userRepo:  userRepo,
		cacheRepo: cacheRepo,
		jwtSvc:    jwtSvc,
		logger:    logger,
		cfg:       cfg,
	}
}

func loginAttemptsKey(login string) string {
	return fmt.Sprintf("auth:attempts:%s", login)
}

// Login проверяет учетные данные и выдает пару токенов.
// После cfg.MaxLoginAttempts неудачных попыток вход блокируется
// на cfg.LockoutDuration.
func (s *AuthService) Login(ctx context.Context, data dto.LoginDTO) (*dto.TokenPairDTO, error) {
	key := loginAttemptsKey(data.Login)

	if raw, err := s.cacheRepo.Get(ctx, key); err == nil && raw != "" {
		var attempts int
		fmt.Sscanf(raw, "%d", &attempts)
		if attempts >= s.cfg.MaxLoginAttempts {
			return nil, apperrors.NewHttpError(http.StatusTooManyRequests,
				"Слишком много неудачных попыток входа, попробуйте позже", nil, nil)
		}
	}

	user, err := s.userRepo.FindByLogin(ctx, data.Login)
	if err != nil {
		if err == apperrors.ErrNotFound {
			s.registerFailedAttempt(ctx, key)
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, apperrors.NewHttpError(http.StatusForbidden,
			"Учетная запись отключена", nil, nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(data.Password)); err != nil {
		s.registerFailedAttempt(ctx, key)
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := s.cacheRepo.Del(ctx, key); err != nil {
		s.logger.Warn("Не удалось сбросить счетчик попыток входа", zap.Error(err))
	}

	access, refresh, err := s.jwtSvc.GenerateTokens(user.ID, user.Role)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Пользователь вошел в систему",
		zap.Int("userId", user.ID), zap.String("role", user.Role))

	return &dto.TokenPairDTO{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *AuthService) registerFailedAttempt(ctx context.Context, key string) {
	attempts, err := s.cacheRepo.Incr(ctx, key)
	if err != nil {
		s.logger.Warn("Не удалось увеличить счетчик попыток входа", zap.Error(err))
		return
	}
	if attempts == 1 {
		if _, err := s.cacheRepo.Expire(ctx, key, s.cfg.LockoutDuration); err != nil {
			s.logger.Warn("Не удалось выставить TTL счетчика попыток", zap.Error(err))
		}
	}
}

// Refresh обменивает refresh-токен на новую пару. Access-токены не принимаются.
func (s *AuthService) Refresh(ctx context.Context, data dto.RefreshDTO) (*dto.TokenPairDTO, error) {
	claims, err := s.jwtSvc.ValidateToken(data.RefreshToken)
	if err != nil {
		return nil, err
	}
	if !claims.IsRefreshToken {
		return nil, apperrors.ErrTokenIsNotRefresh
	}

	user, err := s.userRepo.FindByID(ctx, uint64(claims.UserID))
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}
	if !user.IsActive {
		return nil, apperrors.NewHttpError(http.StatusForbidden,
			"Учетная запись отключена", nil, nil)
	}

	// Роль берется из БД, а не из токена: смена роли вступает в силу
	// при ближайшем обновлении пары.
	access, refresh, err := s.jwtSvc.GenerateTokens(user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	return &dto.TokenPairDTO{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *AuthService) Me(ctx context.Context, userID uint64) (*dto.UserDTO, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return userToDTO(user), nil
}

func (s *AuthService) CreateUser(ctx context.Context, data dto.CreateUserDTO) (int, error) {
	if _, err := s.userRepo.FindByLogin(ctx, data.Login); err == nil {
		return 0, apperrors.NewHttpError(http.StatusConflict,
			fmt.Sprintf("Пользователь с логином '%s' уже существует", data.Login), nil, nil)
	} else if err != apperrors.ErrNotFound {
		return 0, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(data.Password), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("ошибка хеширования пароля: %w", err)
	}

	id, err := s.userRepo.CreateUser(ctx, entities.User{
		Login:        data.Login,
		PasswordHash: string(hash),
		Role:         data.Role,
		IsActive:     true,
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("Создан пользователь", zap.Int("userId", id), zap.String("role", data.Role))
	return id, nil
}

func (s *AuthService) GetUsers(ctx context.Context, limit, offset uint64) ([]dto.UserDTO, uint64, error) {
	users, total, err := s.userRepo.GetUsers(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.UserDTO, 0, len(users))
	for i := range users {
		out = append(out, *userToDTO(&users[i]))
	}
	return out, total, nil
}

func (s *AuthService) SetUserActive(ctx context.Context, id uint64, active bool) error {
	return s.userRepo.SetActive(ctx, id, active)
}

func userToDTO(u *entities.User) *dto.UserDTO {
	return &dto.UserDTO{
		ID:       u.ID,
		Login:    u.Login,
		Role:     u.Role,
		IsActive: u.IsActive,
	}
}
