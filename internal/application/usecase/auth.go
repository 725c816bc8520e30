package usecase

import (
	"context"
	"errors"

	"courseplatform/internal/domain"
	"courseplatform/internal/infrastructure/cache"
	"courseplatform/internal/infrastructure/repository"
	"courseplatform/internal/infrastructure/security"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type AuthUseCase struct {
	userRepo     *repository.UserRepository
	tokenCache   *cache.TokenCache
	hasher       *security.PasswordHasher
	tokenManager *security.TokenManager
	log          *zap.SugaredLogger
}

func NewAuthUseCase(
	ur *repository.UserRepository,
	tc *cache.TokenCache,
	h *security.PasswordHasher,
	tm *security.TokenManager,
	log *zap.SugaredLogger,
) *AuthUseCase {
	return &AuthUseCase{
		userRepo:     ur,
		tokenCache:   tc,
		hasher:       h,
		tokenManager: tm,
		log:          log,
	}
}

// Register всегда создает CLIENT. Роль после создания не меняется,
// админ заводится сидом при старте.
func (uc *AuthUseCase) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	hash, err := uc.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:       uuid.New(),
		Name:     name,
		Email:    email,
		Password: hash,
		Role:     domain.RoleClient,
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (string, string, error) {
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", "", ErrInvalidCredentials
	}
	if err := uc.hasher.Compare(user.Password, password); err != nil {
		return "", "", ErrInvalidCredentials
	}

	return uc.generateAndSaveTokens(ctx, user.ID.String(), user.Role)
}

func (uc *AuthUseCase) Refresh(ctx context.Context, oldRefreshToken string) (string, string, error) {
	claims, err := uc.tokenManager.ValidateRefreshToken(oldRefreshToken)
	if err != nil {
		return "", "", err
	}

	cachedID, err := uc.tokenCache.CheckRefresh(ctx, oldRefreshToken)
	if err != nil || cachedID != claims.UserID {
		return "", "", errors.New("token revoked")
	}
	// Удаляем старый
	_ = uc.tokenCache.DeleteRefresh(ctx, oldRefreshToken)

	return uc.generateAndSaveTokens(ctx, claims.UserID, claims.Role)
}

func (uc *AuthUseCase) Logout(ctx context.Context, refreshToken string) error {
	return uc.tokenCache.DeleteRefresh(ctx, refreshToken)
}

func (uc *AuthUseCase) ValidateAccess(token string) (*security.Claims, error) {
	return uc.tokenManager.ValidateAccessToken(token)
}

// SeedAdmin заводит первого админа из конфига, если админов еще нет.
// Пароль в конфиге пустой — просто ничего не делаем.
func (uc *AuthUseCase) SeedAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	exists, err := uc.userRepo.HasAdmin(ctx)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	hash, err := uc.hasher.Hash(password)
	if err != nil {
		return err
	}

	admin := &domain.User{
		ID:       uuid.New(),
		Name:     "Admin",
		Email:    email,
		Password: hash,
		Role:     domain.RoleAdmin,
	}
	if err := uc.userRepo.Create(ctx, admin); err != nil {
		return err
	}

	uc.log.Infow("seeded initial admin", "email", email)
	return nil
}

func (uc *AuthUseCase) generateAndSaveTokens(ctx context.Context, userID, role string) (string, string, error) {
	access, refresh, err := uc.tokenManager.Generate(userID, role)
	if err != nil {
		return "", "", err
	}
	if err := uc.tokenCache.SaveRefresh(ctx, userID, refresh); err != nil {
		return "", "", err
	}
	return access, refresh, nil
}
