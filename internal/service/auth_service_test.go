package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/CroSSer23/spa-procurement/internal/config"
	"github.com/CroSSer23/spa-procurement/internal/dto"
	"github.com/CroSSer23/spa-procurement/internal/model"
)

func testCfg() *config.Config {
	return &config.Config{
		JWTSecret:          "test_jwt_secret_32_chars_minimum!",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
	}
}

func seedUser(t *testing.T, repo *memUserRepo, email, password string, role model.Role, locs ...model.Location) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	require.NoError(t, err)
	u := &model.User{
		ID: uuid.New(), Email: email, Name: "Test User",
		PasswordHash: string(hash), Role: role, Active: true,
		Locations: locs,
	}
	repo.users[u.ID] = u
	return u
}

func TestLogin_Success(t *testing.T) {
	repo := newMemUserRepo()
	seedUser(t, repo, "admin@spa.test", "password123", model.RoleAdmin)
	svc := NewAuthService(repo, testCfg())

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Email: "admin@spa.test", Password: "password123"})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, string(model.RoleAdmin), resp.User.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := newMemUserRepo()
	seedUser(t, repo, "admin@spa.test", "password123", model.RoleAdmin)
	svc := NewAuthService(repo, testCfg())

	_, err := svc.Login(context.Background(), dto.LoginRequest{Email: "admin@spa.test", Password: "nope-nope"})
	var aerr *AuthorizationError
	assert.ErrorAs(t, err, &aerr)
}

func TestLogin_InactiveUser(t *testing.T) {
	repo := newMemUserRepo()
	u := seedUser(t, repo, "gone@spa.test", "password123", model.RoleRequester)
	u.Active = false
	svc := NewAuthService(repo, testCfg())

	_, err := svc.Login(context.Background(), dto.LoginRequest{Email: "gone@spa.test", Password: "password123"})
	assert.Error(t, err)
}

func TestRefresh_RoundTrip(t *testing.T) {
	repo := newMemUserRepo()
	seedUser(t, repo, "buyer@spa.test", "password123", model.RoleProcurement)
	svc := NewAuthService(repo, testCfg())

	login, err := svc.Login(context.Background(), dto.LoginRequest{Email: "buyer@spa.test", Password: "password123"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Equal(t, "buyer@spa.test", refreshed.User.Email)
}

func TestRefresh_GarbageTokenRejected(t *testing.T) {
	svc := NewAuthService(newMemUserRepo(), testCfg())
	_, err := svc.Refresh(context.Background(), "not-a-jwt")
	assert.Error(t, err)
}

func TestResolveActor_CarriesRoleAndLocations(t *testing.T) {
	repo := newMemUserRepo()
	locID := uuid.New()
	u := seedUser(t, repo, "front@spa.test", "password123", model.RoleRequester,
		model.Location{ID: locID, Name: "Spa Downtown", Active: true})
	svc := NewAuthService(repo, testCfg())

	actor, err := svc.ResolveActor(context.Background(), u.ID)
	require.NoError(t, err)

	assert.Equal(t, u.ID, actor.UserID)
	assert.Equal(t, model.RoleRequester, actor.Role)
	assert.Equal(t, []uuid.UUID{locID}, actor.LocationIDs)
}

func TestResolveActor_InactiveUserRejected(t *testing.T) {
	repo := newMemUserRepo()
	u := seedUser(t, repo, "gone@spa.test", "password123", model.RoleRequester)
	u.Active = false
	svc := NewAuthService(repo, testCfg())

	_, err := svc.ResolveActor(context.Background(), u.ID)
	assert.Error(t, err)
}

func TestCreateUser_DuplicateEmailRejected(t *testing.T) {
	repo := newMemUserRepo()
	seedUser(t, repo, "admin@spa.test", "password123", model.RoleAdmin)
	svc := NewAuthService(repo, testCfg())

	_, err := svc.CreateUser(context.Background(), dto.CreateUserRequest{
		Email: "admin@spa.test", Name: "Imposter", Password: "password456", Role: "REQUESTER",
	})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestUpdateUserRole(t *testing.T) {
	repo := newMemUserRepo()
	u := seedUser(t, repo, "front@spa.test", "password123", model.RoleRequester)
	svc := NewAuthService(repo, testCfg())

	resp, err := svc.UpdateUserRole(context.Background(), u.ID, model.RoleProcurement)
	require.NoError(t, err)
	assert.Equal(t, string(model.RoleProcurement), resp.Role)

	_, err = svc.UpdateUserRole(context.Background(), u.ID, model.Role("WIZARD"))
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}
