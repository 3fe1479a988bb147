package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"github.com/omnimind-research/omnimind/internal/store"
)

func setupAuth(t *testing.T) (*AuthHandler, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	h := &AuthHandler{Store: &store.Store{DB: db}, Secret: []byte("test-secret")}
	return h, mock, func() { db.Close() }
}

func TestSignup(t *testing.T) {
	h, mock, cleanup := setupAuth(t)
	defer cleanup()

	query := regexp.QuoteMeta(`INSERT INTO users (email, username, password_hash) VALUES ($1,$2,$3) RETURNING id`)
	mock.ExpectQuery(query).
		WithArgs("a@example.com", "ada", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("user-1"))

	e := echo.New()
	body := `{"email":"a@example.com","username":"ada","password":"longenough"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	if err := h.signup(e.NewContext(req, rec)); err != nil {
		t.Fatalf("signup: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	var out map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &out)
	if out["id"] != "user-1" || out["email"] != "a@example.com" {
		t.Fatalf("unexpected payload: %v", out)
	}
}

func TestSignupRejectsShortPassword(t *testing.T) {
	h, _, cleanup := setupAuth(t)
	defer cleanup()

	e := echo.New()
	body := `{"email":"a@example.com","username":"ada","password":"short"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	err := h.signup(e.NewContext(req, rec))
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestSignupConflict(t *testing.T) {
	h, mock, cleanup := setupAuth(t)
	defer cleanup()

	query := regexp.QuoteMeta(`INSERT INTO users (email, username, password_hash) VALUES ($1,$2,$3) RETURNING id`)
	mock.ExpectQuery(query).WillReturnError(&pq.Error{Code: "23505"})

	e := echo.New()
	body := `{"email":"a@example.com","username":"ada","password":"longenough"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	err := h.signup(e.NewContext(req, rec))
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	h, mock, cleanup := setupAuth(t)
	defer cleanup()

	hash, _ := bcrypt.GenerateFromPassword([]byte("longenough"), bcrypt.DefaultCost)
	query := regexp.QuoteMeta(`SELECT id, password_hash FROM users WHERE email=$1`)
	mock.ExpectQuery(query).
		WithArgs("a@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "password_hash"}).AddRow("user-1", string(hash)))

	e := echo.New()
	body := `{"email":"a@example.com","password":"longenough"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	if err := h.login(e.NewContext(req, rec)); err != nil {
		t.Fatalf("login: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var out TokenResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &out)
	if out.Token == "" || out.TokenType != "bearer" {
		t.Fatalf("unexpected token payload: %+v", out)
	}
	cookies := rec.Result().Cookies()
	found := false
	for _, ck := range cookies {
		if ck.Name == "auth" && ck.Value != "" && ck.HttpOnly {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected http-only auth cookie, got %v", cookies)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	h, mock, cleanup := setupAuth(t)
	defer cleanup()

	hash, _ := bcrypt.GenerateFromPassword([]byte("rightpassword"), bcrypt.DefaultCost)
	query := regexp.QuoteMeta(`SELECT id, password_hash FROM users WHERE email=$1`)
	mock.ExpectQuery(query).
		WillReturnRows(sqlmock.NewRows([]string{"id", "password_hash"}).AddRow("user-1", string(hash)))

	e := echo.New()
	body := `{"email":"a@example.com","password":"wrongpassword"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	err := h.login(e.NewContext(req, rec))
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	h, _, cleanup := setupAuth(t)
	defer cleanup()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	rec := httptest.NewRecorder()

	if err := h.logout(e.NewContext(req, rec)); err != nil {
		t.Fatalf("logout: %v", err)
	}
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == "auth" && ck.MaxAge < 0 {
			return
		}
	}
	t.Fatalf("expected expired auth cookie")
}
