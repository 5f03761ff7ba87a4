package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"bookcourier-backend/internal/domains/user/model"
	"bookcourier-backend/internal/domains/user/repository"
	"bookcourier-backend/internal/shared"
	"bookcourier-backend/internal/shared/apperror"
	"bookcourier-backend/pkg/cache"
	"bookcourier-backend/pkg/jwt"
	"bookcourier-backend/pkg/logger"
)

// IdentityVerifier checks a credential issued by the external identity
// provider and returns the verified email and display name.
type IdentityVerifier interface {
	VerifyIdentity(token string) (email, name string, err error)
}

// =====================================================
// SERVICE INTERFACE
// =====================================================
type UserService interface {
	// Login verifies the provider credential, upserts the user record and
	// issues an API token. Identity is never taken from the raw body.
	Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error)

	// GetRole returns the role for an email. NotFound for unknown users.
	GetRole(ctx context.Context, email string) (string, error)

	// UpdateRole changes a user's role and drops the cached lookup.
	UpdateRole(ctx context.Context, id uuid.UUID, req model.UpdateRoleRequest) (*model.User, error)

	// ResolveRole satisfies the access-guard middleware contract.
	ResolveRole(ctx context.Context, email string) (string, error)
}

// =====================================================
// SERVICE IMPLEMENTATION
// =====================================================

const (
	roleCacheKeyPrefix = "user:role:"
	roleCacheTTL       = 10 * time.Minute
	tokenTTL           = 24 * time.Hour
)

type userService struct {
	repo     repository.UserRepository
	cache    cache.Cache
	identity IdentityVerifier
	jwt      *jwt.Manager
}

func NewUserService(repo repository.UserRepository, c cache.Cache, identity IdentityVerifier, jwtManager *jwt.Manager) UserService {
	return &userService{
		repo:     repo,
		cache:    c,
		identity: identity,
		jwt:      jwtManager,
	}
}

func (s *userService) Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, apperror.Wrap(apperror.KindInvalidArgument, err.Error(), err)
	}

	email, name, err := s.identity.VerifyIdentity(req.IDToken)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindUnauthenticated, "identity credential is invalid", err)
	}
	if name == "" {
		name = email
	}

	user := &model.User{
		ID:    uuid.New(),
		Email: email,
		Name:  name,
		Role:  shared.RoleUser,
	}

	if err := s.repo.UpsertByEmail(ctx, user); err != nil {
		return nil, apperror.FromStorage(err, "failed to record login")
	}

	token, err := s.jwt.GenerateToken(user.Email, tokenTTL)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindInternal, "failed to issue token", err)
	}

	logger.Info("User logged in", map[string]interface{}{
		"email": user.Email,
		"role":  user.Role,
	})

	return &model.LoginResponse{User: *user, Token: token}, nil
}

func (s *userService) GetRole(ctx context.Context, email string) (string, error) {
	return s.ResolveRole(ctx, email)
}

func (s *userService) UpdateRole(ctx context.Context, id uuid.UUID, req model.UpdateRoleRequest) (*model.User, error) {
	if err := req.Validate(); err != nil {
		return nil, apperror.Wrap(apperror.KindInvalidArgument, err.Error(), err)
	}

	user, err := s.repo.UpdateRole(ctx, id, req.Role)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, apperror.New(apperror.KindNotFound, "user not found")
		}
		return nil, apperror.FromStorage(err, "failed to update role")
	}

	// Drop the stale cache entry so the new role takes effect on the next
	// guarded request, not after the TTL.
	if err := s.cache.Delete(ctx, roleCacheKeyPrefix+user.Email); err != nil {
		logger.Warn("Failed to invalidate role cache", map[string]interface{}{
			"email": user.Email,
			"error": err.Error(),
		})
	}

	logger.Info("User role updated", map[string]interface{}{
		"user_id": user.ID.String(),
		"role":    user.Role,
	})

	return user, nil
}

// ResolveRole serves the access guard on every guarded request, so lookups
// go through the cache. A role change invalidates the entry explicitly;
// the TTL only bounds staleness after a missed invalidation.
func (s *userService) ResolveRole(ctx context.Context, email string) (string, error) {
	key := roleCacheKeyPrefix + email

	var role string
	found, err := s.cache.Get(ctx, key, &role)
	if err != nil {
		logger.Warn("Role cache read failed", map[string]interface{}{
			"email": email,
			"error": err.Error(),
		})
	}
	if found {
		return role, nil
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return "", apperror.New(apperror.KindNotFound, "user not found")
		}
		return "", apperror.FromStorage(err, "failed to look up user")
	}

	if err := s.cache.Set(ctx, key, user.Role, roleCacheTTL); err != nil {
		logger.Warn("Role cache write failed", map[string]interface{}{
			"email": email,
			"error": err.Error(),
		})
	}

	return user.Role, nil
}
