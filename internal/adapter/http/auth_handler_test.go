package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"sync"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"loanledger-backend/internal/adapter/middleware"
	userDom "loanledger-backend/internal/domain/user"
	"loanledger-backend/internal/testutil/usermock"
	"loanledger-backend/internal/usecase/auth"
)

// mapSessions is an in-memory SessionStore, enough for handler tests.
type mapSessions struct {
	mu       sync.Mutex
	sessions map[string]auth.Session
}

func newMapSessions() *mapSessions {
	return &mapSessions{sessions: make(map[string]auth.Session)}
}

func (m *mapSessions) Create(ctx context.Context, s auth.Session, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.Token] = s
	return nil
}

func (m *mapSessions) Get(ctx context.Context, token string) (*auth.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[token]
	if !ok {
		return nil, auth.ErrUnauthorized
	}
	return &s, nil
}

func (m *mapSessions) Delete(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
	return nil
}

func newAuthHandler(users *usermock.Repo, sessions auth.SessionStore) *AuthHandler {
	if users == nil {
		users = &usermock.Repo{}
	}
	if sessions == nil {
		sessions = newMapSessions()
	}
	return NewAuthHandler(auth.NewUsecase(users, sessions, time.Hour, bcrypt.MinCost), time.Hour)
}

func hashPW(t *testing.T, pw string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	return string(h)
}

func storedBorrower(t *testing.T, password string) *userDom.User {
	t.Helper()
	return &userDom.User{
		UserID:       testBorrowerID,
		Name:         "Ama Mensah",
		Email:        "ama@example.com",
		PasswordHash: hashPW(t, password),
		Role:         userDom.RoleUser,
	}
}

func TestRegister_Handler(t *testing.T) {
	e := newEchoWithValidator()

	var created *userDom.User
	users := &usermock.Repo{
		GetByEmailFn: func(ctx context.Context, email string) (*userDom.User, error) {
			return nil, gorm.ErrRecordNotFound
		},
		CreateFn: func(ctx context.Context, u *userDom.User) error {
			created = u
			return nil
		},
	}
	h := newAuthHandler(users, nil)

	body := map[string]any{"name": "Ama Mensah", "email": "Ama@Example.com", "password": "s3cret-pw"}
	c, rec := newCtx(e, stdhttp.MethodPost, "/api/auth/register", mustJSON(body), nil)

	if err := h.Register(c); err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("status = %d, body=%s", rec.Code, rec.Body.String())
	}
	if created == nil || created.Email != "ama@example.com" {
		t.Fatalf("stored user: %+v", created)
	}
	if created.PasswordHash == "s3cret-pw" {
		t.Fatal("password stored in the clear")
	}
}

func TestRegister_Handler_DuplicateEmail409(t *testing.T) {
	e := newEchoWithValidator()
	users := &usermock.Repo{
		GetByEmailFn: func(ctx context.Context, email string) (*userDom.User, error) {
			return &userDom.User{Email: email}, nil
		},
	}
	h := newAuthHandler(users, nil)

	body := map[string]any{"name": "Ama", "email": "ama@example.com", "password": "s3cret-pw"}
	c, rec := newCtx(e, stdhttp.MethodPost, "/api/auth/register", mustJSON(body), nil)

	if err := h.Register(c); err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if rec.Code != stdhttp.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
}

func TestRegister_Handler_ShortPassword422(t *testing.T) {
	e := newEchoWithValidator()
	h := newAuthHandler(nil, nil)

	body := map[string]any{"name": "Ama", "email": "ama@example.com", "password": "short"}
	c, rec := newCtx(e, stdhttp.MethodPost, "/api/auth/register", mustJSON(body), nil)

	if err := h.Register(c); err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
}

func TestLogin_Handler_SetsSessionCookie(t *testing.T) {
	e := newEchoWithValidator()

	stored := storedBorrower(t, "s3cret-pw")
	users := &usermock.Repo{
		GetByEmailFn: func(ctx context.Context, email string) (*userDom.User, error) {
			if email != stored.Email {
				return nil, gorm.ErrRecordNotFound
			}
			return stored, nil
		},
	}
	sessions := newMapSessions()
	h := newAuthHandler(users, sessions)

	body := map[string]any{"email": "ama@example.com", "password": "s3cret-pw"}
	c, rec := newCtx(e, stdhttp.MethodPost, "/api/auth/login", mustJSON(body), nil)

	if err := h.Login(c); err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, body=%s", rec.Code, rec.Body.String())
	}

	var cookie *stdhttp.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == middleware.SessionCookie {
			cookie = ck
		}
	}
	if cookie == nil || cookie.Value == "" || !cookie.HttpOnly {
		t.Fatalf("session cookie: %+v", cookie)
	}
	if _, err := sessions.Get(context.Background(), cookie.Value); err != nil {
		t.Fatalf("cookie token not in store: %v", err)
	}

	var dto auth.UserDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &dto); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if dto.UserID != testBorrowerID || dto.Role != "user" {
		t.Fatalf("dto: %+v", dto)
	}
}

func TestLogin_Handler_WrongPassword401(t *testing.T) {
	e := newEchoWithValidator()

	stored := storedBorrower(t, "s3cret-pw")
	users := &usermock.Repo{
		GetByEmailFn: func(ctx context.Context, email string) (*userDom.User, error) {
			return stored, nil
		},
	}
	h := newAuthHandler(users, nil)

	body := map[string]any{"email": "ama@example.com", "password": "wrong-password"}
	c, rec := newCtx(e, stdhttp.MethodPost, "/api/auth/login", mustJSON(body), nil)

	if err := h.Login(c); err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if rec.Code != stdhttp.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestAdminLogin_Handler_RejectsBorrower(t *testing.T) {
	e := newEchoWithValidator()

	stored := storedBorrower(t, "s3cret-pw")
	users := &usermock.Repo{
		GetByEmailFn: func(ctx context.Context, email string) (*userDom.User, error) {
			return stored, nil
		},
	}
	h := newAuthHandler(users, nil)

	body := map[string]any{"email": "ama@example.com", "password": "s3cret-pw"}
	c, rec := newCtx(e, stdhttp.MethodPost, "/api/auth/adminLogin", mustJSON(body), nil)

	if err := h.AdminLogin(c); err != nil {
		t.Fatalf("AdminLogin error: %v", err)
	}
	if rec.Code != stdhttp.StatusUnauthorized {
		t.Fatalf("status = %d, want 401, body=%s", rec.Code, rec.Body.String())
	}
}

func TestLogout_Handler_DropsSessionAndCookie(t *testing.T) {
	e := newEchoWithValidator()

	sessions := newMapSessions()
	_ = sessions.Create(context.Background(), auth.Session{Token: "tok-1", UserID: testBorrowerID}, time.Hour)
	h := newAuthHandler(nil, sessions)

	c, rec := newCtx(e, stdhttp.MethodPost, "/api/auth/logout", nil, nil)
	c.Request().AddCookie(&stdhttp.Cookie{Name: middleware.SessionCookie, Value: "tok-1"})

	if err := h.Logout(c); err != nil {
		t.Fatalf("Logout error: %v", err)
	}
	if rec.Code != stdhttp.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
	if _, err := sessions.Get(context.Background(), "tok-1"); err == nil {
		t.Fatal("session survived logout")
	}

	var cleared *stdhttp.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == middleware.SessionCookie {
			cleared = ck
		}
	}
	if cleared == nil || cleared.MaxAge != -1 {
		t.Fatalf("clearing cookie: %+v", cleared)
	}
}

func TestUpdateProfile_Handler_FlipsCompleteFlag(t *testing.T) {
	e := newEchoWithValidator()

	stored := storedBorrower(t, "s3cret-pw")
	users := &usermock.Repo{
		GetByUserIDFn: func(ctx context.Context, id string) (*userDom.User, error) {
			return stored, nil
		},
		SaveFn: func(ctx context.Context, u *userDom.User) error {
			stored = u
			return nil
		},
	}
	h := newAuthHandler(users, nil)

	body := map[string]any{
		"phone":          "+233201234567",
		"address":        "12 Ring Road, Accra",
		"employment":     "trader",
		"monthlyIncome":  "1500.00",
		"identification": "GHA-000000000-1",
		"nextOfKin":      "Kofi Mensah",
	}
	c, rec := newCtx(e, stdhttp.MethodPut, "/api/auth/profile", mustJSON(body), borrowerSession())

	if err := h.UpdateProfile(c); err != nil {
		t.Fatalf("UpdateProfile error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, body=%s", rec.Code, rec.Body.String())
	}
	var dto auth.UserDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &dto); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if !dto.ProfileComplete {
		t.Fatalf("profile should be complete: %+v", dto)
	}
	if !stored.ProfileComplete {
		t.Fatalf("flag not persisted: %+v", stored)
	}
}

func TestUpdateProfile_Handler_MissingField422(t *testing.T) {
	e := newEchoWithValidator()
	h := newAuthHandler(nil, nil)

	body := map[string]any{
		"phone":      "+233201234567",
		"address":    "12 Ring Road, Accra",
		"employment": "trader",
	}
	c, rec := newCtx(e, stdhttp.MethodPut, "/api/auth/profile", mustJSON(body), borrowerSession())

	if err := h.UpdateProfile(c); err != nil {
		t.Fatalf("UpdateProfile error: %v", err)
	}
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	var er ErrorResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &er)
	if !containsFieldMsg(er.Details, "NextOfKin", "required") {
		t.Fatalf("details: %+v", er.Details)
	}
}

func TestCurrentUser_Handler(t *testing.T) {
	e := newEchoWithValidator()

	users := &usermock.Repo{
		GetByUserIDFn: func(ctx context.Context, id string) (*userDom.User, error) {
			if id != testBorrowerID {
				return nil, gorm.ErrRecordNotFound
			}
			return &userDom.User{UserID: testBorrowerID, Name: "Ama Mensah", Role: userDom.RoleUser}, nil
		},
	}
	h := newAuthHandler(users, nil)

	c, rec := newCtx(e, stdhttp.MethodGet, "/api/auth/me", nil, borrowerSession())
	if err := h.CurrentUser(c); err != nil {
		t.Fatalf("CurrentUser error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var dto auth.UserDTO
	_ = json.Unmarshal(rec.Body.Bytes(), &dto)
	if dto.Name != "Ama Mensah" {
		t.Fatalf("dto: %+v", dto)
	}
}
