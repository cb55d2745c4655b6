package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/Tomlord1122/weather-todo/internal/domain"
	"github.com/Tomlord1122/weather-todo/internal/service"
)

var (
	alice = domain.AuthUser{ID: 1, Email: "alice@example.com", UserRole: domain.RoleUser}
	admin = domain.AuthUser{ID: 9, Email: "admin@example.com", UserRole: domain.RoleAdmin}
)

// stubServices implements every service interface the router depends on.
// Unset function fields fail the call with an unexpected error.
type stubServices struct {
	signup         func(service.SignupRequest) (*service.SignupResponse, error)
	signin         func(service.SigninRequest) (*service.SigninResponse, error)
	getUser        func(uint) (*service.UserResponse, error)
	changePassword func(uint, service.ChangePasswordRequest) error
	changeUserRole func(domain.AuthUser, uint, service.ChangeUserRoleRequest) error
	saveTodo       func(domain.AuthUser, service.TodoSaveRequest) (*service.TodoSaveResponse, error)
	getTodos       func(page, size int) (*service.PageResponse[service.TodoResponse], error)
	getTodo        func(uint) (*service.TodoResponse, error)
	saveManager    func(domain.AuthUser, uint, service.ManagerSaveRequest) (*service.ManagerSaveResponse, error)
	getManagers    func(uint) ([]service.ManagerResponse, error)
	deleteManager  func(domain.AuthUser, uint, uint) error
	saveComment    func(domain.AuthUser, uint, service.CommentSaveRequest) (*service.CommentSaveResponse, error)
	getComments    func(uint) ([]service.CommentResponse, error)
	deleteComment  func(domain.AuthUser, uint) error
}

var errNotStubbed = errors.New("not stubbed")

func (s *stubServices) Signup(_ context.Context, req service.SignupRequest) (*service.SignupResponse, error) {
	if s.signup == nil {
		return nil, errNotStubbed
	}
	return s.signup(req)
}

func (s *stubServices) Signin(_ context.Context, req service.SigninRequest) (*service.SigninResponse, error) {
	if s.signin == nil {
		return nil, errNotStubbed
	}
	return s.signin(req)
}

// ResolveToken accepts "Bearer user" and "Bearer admin".
func (s *stubServices) ResolveToken(_ context.Context, token string) (domain.AuthUser, error) {
	switch strings.TrimPrefix(token, "Bearer ") {
	case "user":
		return alice, nil
	case "admin":
		return admin, nil
	}
	return domain.AuthUser{}, &service.Error{Kind: service.ErrUnauthorized, Message: "invalid or expired token"}
}

func (s *stubServices) GetUser(_ context.Context, userID uint) (*service.UserResponse, error) {
	if s.getUser == nil {
		return nil, errNotStubbed
	}
	return s.getUser(userID)
}

func (s *stubServices) ChangePassword(_ context.Context, userID uint, req service.ChangePasswordRequest) error {
	if s.changePassword == nil {
		return errNotStubbed
	}
	return s.changePassword(userID, req)
}

func (s *stubServices) ChangeUserRole(_ context.Context, actor domain.AuthUser, userID uint, req service.ChangeUserRoleRequest) error {
	if s.changeUserRole == nil {
		return errNotStubbed
	}
	return s.changeUserRole(actor, userID, req)
}

func (s *stubServices) SaveTodo(_ context.Context, authUser domain.AuthUser, req service.TodoSaveRequest) (*service.TodoSaveResponse, error) {
	if s.saveTodo == nil {
		return nil, errNotStubbed
	}
	return s.saveTodo(authUser, req)
}

func (s *stubServices) GetTodos(_ context.Context, page, size int) (*service.PageResponse[service.TodoResponse], error) {
	if s.getTodos == nil {
		return nil, errNotStubbed
	}
	return s.getTodos(page, size)
}

func (s *stubServices) GetTodo(_ context.Context, id uint) (*service.TodoResponse, error) {
	if s.getTodo == nil {
		return nil, errNotStubbed
	}
	return s.getTodo(id)
}

func (s *stubServices) SaveManager(_ context.Context, authUser domain.AuthUser, todoID uint, req service.ManagerSaveRequest) (*service.ManagerSaveResponse, error) {
	if s.saveManager == nil {
		return nil, errNotStubbed
	}
	return s.saveManager(authUser, todoID, req)
}

func (s *stubServices) GetManagers(_ context.Context, todoID uint) ([]service.ManagerResponse, error) {
	if s.getManagers == nil {
		return nil, errNotStubbed
	}
	return s.getManagers(todoID)
}

func (s *stubServices) DeleteManager(_ context.Context, authUser domain.AuthUser, todoID, managerID uint) error {
	if s.deleteManager == nil {
		return errNotStubbed
	}
	return s.deleteManager(authUser, todoID, managerID)
}

func (s *stubServices) SaveComment(_ context.Context, authUser domain.AuthUser, todoID uint, req service.CommentSaveRequest) (*service.CommentSaveResponse, error) {
	if s.saveComment == nil {
		return nil, errNotStubbed
	}
	return s.saveComment(authUser, todoID, req)
}

func (s *stubServices) GetComments(_ context.Context, todoID uint) ([]service.CommentResponse, error) {
	if s.getComments == nil {
		return nil, errNotStubbed
	}
	return s.getComments(todoID)
}

func (s *stubServices) DeleteComment(_ context.Context, actor domain.AuthUser, commentID uint) error {
	if s.deleteComment == nil {
		return errNotStubbed
	}
	return s.deleteComment(actor, commentID)
}

// memoryUseTimes implements repository.ApiUseTimeRepository.
type memoryUseTimes struct {
	mu     sync.Mutex
	totals map[uint]int64
}

func (m *memoryUseTimes) AddUseTime(_ context.Context, userID uint, millis int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.totals == nil {
		m.totals = map[uint]int64{}
	}
	m.totals[userID] += millis
	return nil
}

func (m *memoryUseTimes) FindByUserID(_ context.Context, userID uint) (*domain.ApiUseTime, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	millis, ok := m.totals[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &domain.ApiUseTime{UserID: userID, CumulativeMillis: millis}, nil
}

type staticHealth map[string]string

func (h staticHealth) Health() map[string]string { return h }

// fixedStepClock advances by step on every reading.
func fixedStepClock(step time.Duration) func() time.Time {
	var mu sync.Mutex
	now := time.Date(2024, 10, 1, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now = now.Add(step)
		return now
	}
}

type testServer struct {
	handler  http.Handler
	stubs    *stubServices
	useTimes *memoryUseTimes
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	stubs := &stubServices{}
	useTimes := &memoryUseTimes{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := New(Dependencies{
		Auth:         stubs,
		Users:        stubs,
		UserAdmin:    stubs,
		Todos:        stubs,
		Managers:     stubs,
		Comments:     stubs,
		CommentAdmin: stubs,
		Usage:        service.NewUsageRecorder(useTimes, fixedStepClock(5*time.Millisecond), logger),
		DB:           staticHealth{"status": "up"},
	}, logger)
	return &testServer{handler: srv.RegisterRoutes(), stubs: stubs, useTimes: useTimes}
}

// do sends a request with an optional bearer token ("user" or "admin").
func (ts *testServer) do(method, target, token, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}
