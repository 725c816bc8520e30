package usecase

import (
	"context"

	"courseplatform/internal/domain"
	"courseplatform/internal/infrastructure/repository"
)

// UserSearchUseCase — выборка клиентов для админской формы выдачи доступа
type UserSearchUseCase struct {
	userRepo *repository.UserRepository
}

func NewUserSearchUseCase(ur *repository.UserRepository) *UserSearchUseCase {
	return &UserSearchUseCase{userRepo: ur}
}

func (uc *UserSearchUseCase) SearchClients(ctx context.Context, query string, limit, offset int) ([]domain.User, int64, error) {
	return uc.userRepo.SearchClients(ctx, query, limit, offset)
}
