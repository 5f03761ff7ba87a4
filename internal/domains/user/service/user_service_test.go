package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookcourier-backend/internal/domains/user/model"
	"bookcourier-backend/internal/shared"
	"bookcourier-backend/internal/shared/apperror"
	"bookcourier-backend/pkg/jwt"
)

// =====================================================
// IN-MEMORY FAKES
// =====================================================

type memUserRepo struct {
	byEmail map[string]*model.User
	gets    int
}

func newMemUserRepo(users ...*model.User) *memUserRepo {
	r := &memUserRepo{byEmail: make(map[string]*model.User)}
	for _, u := range users {
		r.byEmail[u.Email] = u
	}
	return r
}

func (r *memUserRepo) UpsertByEmail(ctx context.Context, user *model.User) error {
	if existing, ok := r.byEmail[user.Email]; ok {
		existing.Name = user.Name
		existing.LastLoggedIn = time.Now()
		*user = *existing
		return nil
	}
	user.CreatedAt = time.Now()
	user.LastLoggedIn = user.CreatedAt
	r.byEmail[user.Email] = user
	return nil
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	r.gets++
	user, ok := r.byEmail[email]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *memUserRepo) UpdateRole(ctx context.Context, id uuid.UUID, role string) (*model.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			u.Role = role
			copied := *u
			return &copied, nil
		}
	}
	return nil, model.ErrUserNotFound
}

type memCache struct {
	values map[string][]byte
}

func newMemCache() *memCache {
	return &memCache{values: make(map[string][]byte)}
}

func (c *memCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, ok := c.values[key]
	if !ok {
		return false, nil
	}
	*(dest.(*string)) = string(data)
	return true, nil
}

func (c *memCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	c.values[key] = []byte(value.(string))
	return nil
}

func (c *memCache) Delete(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.values, k)
	}
	return nil
}

func (c *memCache) Ping(ctx context.Context) error { return nil }

// =====================================================
// TESTS
// =====================================================

var identityProvider = jwt.NewManager("identity-test-secret")

func newTestService(users ...*model.User) (UserService, *memUserRepo, *memCache) {
	repo := newMemUserRepo(users...)
	cache := newMemCache()
	return NewUserService(repo, cache, identityProvider, jwt.NewManager("test-secret")), repo, cache
}

// idToken mints a provider credential the way the identity provider would.
func idToken(t *testing.T, email, name string) string {
	t.Helper()
	token, err := identityProvider.GenerateTokenWithName(email, name, time.Hour)
	require.NoError(t, err)
	return token
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("new user starts with the default role", func(t *testing.T) {
		svc, _, _ := newTestService()

		resp, err := svc.Login(ctx, model.LoginRequest{IDToken: idToken(t, "new@example.com", "New Reader")})
		require.NoError(t, err)

		assert.Equal(t, shared.RoleUser, resp.User.Role)
		assert.Equal(t, "new@example.com", resp.User.Email)
		assert.Equal(t, "New Reader", resp.User.Name)
		assert.NotEmpty(t, resp.Token)
	})

	t.Run("repeat login keeps a promoted role", func(t *testing.T) {
		admin := &model.User{ID: uuid.New(), Email: "admin@example.com", Name: "Admin", Role: shared.RoleAdmin}
		svc, _, _ := newTestService(admin)

		resp, err := svc.Login(ctx, model.LoginRequest{IDToken: idToken(t, "admin@example.com", "Admin Renamed")})
		require.NoError(t, err)

		assert.Equal(t, shared.RoleAdmin, resp.User.Role)
		assert.Equal(t, "Admin Renamed", resp.User.Name)
	})

	t.Run("credential signed with the wrong key yields no token", func(t *testing.T) {
		admin := &model.User{ID: uuid.New(), Email: "admin@example.com", Name: "Admin", Role: shared.RoleAdmin}
		svc, _, _ := newTestService(admin)

		// A client knowing an admin's email must not be able to log in with
		// a self-signed credential naming it.
		forged, err := jwt.NewManager("attacker-secret").GenerateTokenWithName("admin@example.com", "Admin", time.Hour)
		require.NoError(t, err)

		resp, err := svc.Login(ctx, model.LoginRequest{IDToken: forged})
		assert.Nil(t, resp)
		assert.True(t, apperror.Is(err, apperror.KindUnauthenticated))
	})

	t.Run("garbage credential is rejected", func(t *testing.T) {
		svc, _, _ := newTestService()

		resp, err := svc.Login(ctx, model.LoginRequest{IDToken: "not-a-jwt"})
		assert.Nil(t, resp)
		assert.True(t, apperror.Is(err, apperror.KindUnauthenticated))
	})

	t.Run("missing credential fails validation", func(t *testing.T) {
		svc, _, _ := newTestService()

		_, err := svc.Login(ctx, model.LoginRequest{})
		assert.True(t, apperror.Is(err, apperror.KindInvalidArgument))
	})
}

func TestResolveRole(t *testing.T) {
	ctx := context.Background()

	t.Run("caches the lookup", func(t *testing.T) {
		user := &model.User{ID: uuid.New(), Email: "reader@example.com", Role: shared.RoleUser}
		svc, repo, _ := newTestService(user)

		role, err := svc.ResolveRole(ctx, "reader@example.com")
		require.NoError(t, err)
		assert.Equal(t, shared.RoleUser, role)

		role, err = svc.ResolveRole(ctx, "reader@example.com")
		require.NoError(t, err)
		assert.Equal(t, shared.RoleUser, role)

		assert.Equal(t, 1, repo.gets, "second resolve should hit the cache")
	})

	t.Run("unknown email is NotFound", func(t *testing.T) {
		svc, _, _ := newTestService()

		_, err := svc.ResolveRole(ctx, "ghost@example.com")
		assert.True(t, apperror.Is(err, apperror.KindNotFound))
	})
}

func TestUpdateRole(t *testing.T) {
	ctx := context.Background()

	t.Run("invalidates the cached role", func(t *testing.T) {
		user := &model.User{ID: uuid.New(), Email: "reader@example.com", Role: shared.RoleUser}
		svc, _, cache := newTestService(user)

		// Prime the cache.
		_, err := svc.ResolveRole(ctx, "reader@example.com")
		require.NoError(t, err)
		assert.Contains(t, cache.values, "user:role:reader@example.com")

		updated, err := svc.UpdateRole(ctx, user.ID, model.UpdateRoleRequest{Role: shared.RoleLibrarian})
		require.NoError(t, err)
		assert.Equal(t, shared.RoleLibrarian, updated.Role)
		assert.NotContains(t, cache.values, "user:role:reader@example.com")

		role, err := svc.ResolveRole(ctx, "reader@example.com")
		require.NoError(t, err)
		assert.Equal(t, shared.RoleLibrarian, role)
	})

	t.Run("rejects unrecognised roles", func(t *testing.T) {
		user := &model.User{ID: uuid.New(), Email: "reader@example.com", Role: shared.RoleUser}
		svc, _, _ := newTestService(user)

		_, err := svc.UpdateRole(ctx, user.ID, model.UpdateRoleRequest{Role: "superuser"})
		assert.True(t, apperror.Is(err, apperror.KindInvalidArgument))
	})

	t.Run("unknown user is NotFound", func(t *testing.T) {
		svc, _, _ := newTestService()

		_, err := svc.UpdateRole(ctx, uuid.New(), model.UpdateRoleRequest{Role: shared.RoleAdmin})
		assert.True(t, apperror.Is(err, apperror.KindNotFound))
	})
}
