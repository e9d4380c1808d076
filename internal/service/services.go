package service

import (
	"fmt"

	"github.com/MKhiriev/go-todo-keeper/internal/config"
	"github.com/MKhiriev/go-todo-keeper/internal/crypto"
	"github.com/MKhiriev/go-todo-keeper/internal/logger"
	"github.com/MKhiriev/go-todo-keeper/internal/store"
	"github.com/MKhiriev/go-todo-keeper/internal/validators"
)

type Services struct {
	AuthService    AuthService
	UserService    UserService
	TodoService    TodoService
	AppInfoService AppInfoService
}

func NewServices(repositories *store.Repositories, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	codec, err := crypto.NewTokenCodec(crypto.TokenConfig{
		SignKey: cfg.App.TokenSignKey,
		Issuer:  cfg.App.TokenIssuer,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating token codec: %w", err)
	}

	appInfoService, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	hasher := crypto.NewBcryptHasher(cfg.App.BcryptCost)
	validator := validators.NewStructValidator()

	return &Services{
		AuthService:    NewAuthService(repositories.UserRepository, hasher, codec, validator, cfg.App, logger),
		UserService:    NewUserService(repositories.UserRepository, hasher, validator, logger),
		TodoService:    NewTodoService(repositories.TodoRepository, validator, logger),
		AppInfoService: appInfoService,
	}, nil
}
