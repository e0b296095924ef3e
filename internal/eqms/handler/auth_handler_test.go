package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/bitfantasy/eqms/internal/config"
	"github.com/bitfantasy/eqms/internal/eqms/entity"
	"github.com/bitfantasy/eqms/internal/eqms/repository"
	"github.com/bitfantasy/eqms/internal/eqms/service"
	"github.com/bitfantasy/eqms/internal/eqms/testutil"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func setupAuthTest(t *testing.T, authCfg config.AuthConfig) *testutil.TestEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)
	router := testutil.SetupRouter()

	repos := repository.NewRepositories(db)
	jwtCfg := config.JWTConfig{
		Secret:            testutil.JWTSecret,
		AccessTokenExpire: 24 * time.Hour,
		Issuer:            "eqms",
	}
	authSvc := service.NewAuthService(repos.User, jwtCfg, authCfg, zap.NewNop())
	h := NewAuthHandler(authSvc)

	router.POST("/api/v1/auth/login", h.Login)
	api := testutil.AuthGroup(router, "/api/v1")
	api.GET("/auth/me", h.Me)

	return &testutil.TestEnv{DB: db, Router: router, T: t}
}

func seedUser(t *testing.T, env *testutil.TestEnv, username, password, role string, active bool) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	now := time.Now()
	user := &entity.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     active,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := env.DB.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
}

func TestLoginAndMe(t *testing.T) {
	env := setupAuthTest(t, config.AuthConfig{})
	seedUser(t, env, "operator1", "secret-pass-1", entity.RoleUser, true)

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/auth/login", map[string]interface{}{
		"username": "operator1",
		"password": "secret-pass-1",
	}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	token, _ := data["token"].(string)
	if token == "" {
		t.Fatal("Expected token in login response")
	}
	if data["role"] != entity.RoleUser {
		t.Fatalf("Expected role user, got %v", data["role"])
	}

	w = testutil.DoRequest(env.Router, "GET", "/api/v1/auth/me", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 from /auth/me, got %d: %s", w.Code, w.Body.String())
	}
	me := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if me["username"] != "operator1" {
		t.Fatalf("Expected username operator1, got %v", me["username"])
	}
}

func TestLoginWrongPassword(t *testing.T) {
	env := setupAuthTest(t, config.AuthConfig{})
	seedUser(t, env, "operator2", "right-pass", entity.RoleUser, true)

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/auth/login", map[string]interface{}{
		"username": "operator2",
		"password": "wrong-pass",
	}, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("Expected 401, got %d: %s", w.Code, w.Body.String())
	}
}

func TestLoginInactiveUser(t *testing.T) {
	env := setupAuthTest(t, config.AuthConfig{})
	seedUser(t, env, "retired", "some-pass", entity.RoleUser, false)

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/auth/login", map[string]interface{}{
		"username": "retired",
		"password": "some-pass",
	}, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("Expected 401 for inactive user, got %d", w.Code)
	}
}

func TestLoginSystemAdminOverride(t *testing.T) {
	env := setupAuthTest(t, config.AuthConfig{
		SystemAdminEmail:    "admin@factory.vn",
		SystemAdminPassword: "env-admin-pass",
	})

	// users 테이블에 없어도 환경 변수 계정으로 로그인된다.
	w := testutil.DoRequest(env.Router, "POST", "/api/v1/auth/login", map[string]interface{}{
		"username": "admin@factory.vn",
		"password": "env-admin-pass",
	}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if data["role"] != entity.RoleSystemAdmin {
		t.Fatalf("Expected system_admin role, got %v", data["role"])
	}
}
