package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/Tomlord1122/weather-todo/internal/domain"
)

var errDatabaseDown = errors.New("connection refused")

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// store is an in-memory stand-in for the database shared by the fake repositories.
type store struct {
	mu       sync.Mutex
	nextID   uint
	users    map[uint]domain.User
	todos    map[uint]domain.Todo
	managers map[uint]domain.Manager
	comments map[uint]domain.Comment
	useTimes map[uint]int64
	clock    time.Time
	failAll  bool
}

func newStore() *store {
	return &store{
		users:    map[uint]domain.User{},
		todos:    map[uint]domain.Todo{},
		managers: map[uint]domain.Manager{},
		comments: map[uint]domain.Comment{},
		useTimes: map[uint]int64{},
		clock:    time.Date(2024, 10, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (s *store) id() uint {
	s.nextID++
	return s.nextID
}

func (s *store) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func (s *store) touch(todoID uint) {
	todo := s.todos[todoID]
	todo.ModifiedAt = s.tick()
	s.todos[todoID] = todo
}

func (s *store) addUser(email string, role domain.UserRole) domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := domain.User{ID: s.id(), Email: email, Password: "digest", UserRole: role}
	s.users[u.ID] = u
	return u
}

// fakeUsers implements repository.UserRepository.
type fakeUsers struct{ *store }

func (f fakeUsers) Create(_ context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return errDatabaseDown
	}
	for _, u := range f.users {
		if u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	user.ID = f.id()
	f.users[user.ID] = *user
	return nil
}

func (f fakeUsers) FindByID(_ context.Context, id uint) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return nil, errDatabaseDown
	}
	u, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &u, nil
}

func (f fakeUsers) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return nil, errDatabaseDown
	}
	for _, u := range f.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f fakeUsers) ExistsByEmail(_ context.Context, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return false, errDatabaseDown
	}
	for _, u := range f.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f fakeUsers) Update(_ context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return errDatabaseDown
	}
	f.users[user.ID] = *user
	return nil
}

// fakeTodos implements repository.TodoRepository.
type fakeTodos struct{ *store }

func (f fakeTodos) Create(_ context.Context, todo *domain.Todo) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return errDatabaseDown
	}
	now := f.tick()
	todo.ID = f.id()
	todo.CreatedAt, todo.ModifiedAt = now, now
	f.todos[todo.ID] = *todo
	owner := domain.Manager{ID: f.id(), TodoID: todo.ID, UserID: todo.UserID}
	f.managers[owner.ID] = owner
	return nil
}

func (f fakeTodos) FindByID(_ context.Context, id uint) (*domain.Todo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return nil, errDatabaseDown
	}
	t, ok := f.todos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &t, nil
}

func (f fakeTodos) FindByIDWithUser(ctx context.Context, id uint) (*domain.Todo, error) {
	t, err := f.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	t.User = f.users[t.UserID]
	f.mu.Unlock()
	return t, nil
}

func (f fakeTodos) FindAllOrderByModifiedAtDesc(_ context.Context, offset, limit int) ([]domain.Todo, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return nil, 0, errDatabaseDown
	}
	all := make([]domain.Todo, 0, len(f.todos))
	for _, t := range f.todos {
		t.User = f.users[t.UserID]
		all = append(all, t)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].ModifiedAt.Equal(all[j].ModifiedAt) {
			return all[i].ID > all[j].ID
		}
		return all[i].ModifiedAt.After(all[j].ModifiedAt)
	})
	total := int64(len(all))
	if offset >= len(all) {
		return []domain.Todo{}, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (f fakeTodos) ExistsByID(_ context.Context, id uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return false, errDatabaseDown
	}
	_, ok := f.todos[id]
	return ok, nil
}

// fakeManagers implements repository.ManagerRepository, including the
// unique (todo_id, user_id) index.
type fakeManagers struct{ *store }

func (f fakeManagers) Create(_ context.Context, manager *domain.Manager) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return errDatabaseDown
	}
	for _, m := range f.managers {
		if m.TodoID == manager.TodoID && m.UserID == manager.UserID {
			return gorm.ErrDuplicatedKey
		}
	}
	manager.ID = f.id()
	f.managers[manager.ID] = *manager
	f.touch(manager.TodoID)
	return nil
}

func (f fakeManagers) FindByID(_ context.Context, id uint) (*domain.Manager, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return nil, errDatabaseDown
	}
	m, ok := f.managers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &m, nil
}

func (f fakeManagers) FindByTodoID(_ context.Context, todoID uint) ([]domain.Manager, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return nil, errDatabaseDown
	}
	var out []domain.Manager
	for _, m := range f.managers {
		if m.TodoID == todoID {
			m.User = f.users[m.UserID]
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f fakeManagers) ExistsByTodoIDAndUserID(_ context.Context, todoID, userID uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return false, errDatabaseDown
	}
	for _, m := range f.managers {
		if m.TodoID == todoID && m.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (f fakeManagers) Delete(_ context.Context, manager *domain.Manager) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return errDatabaseDown
	}
	delete(f.managers, manager.ID)
	f.touch(manager.TodoID)
	return nil
}

func (f *store) managersFor(todoID uint) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, m := range f.managers {
		if m.TodoID == todoID {
			n++
		}
	}
	return n
}

// fakeComments implements repository.CommentRepository.
type fakeComments struct{ *store }

func (f fakeComments) Create(_ context.Context, comment *domain.Comment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return errDatabaseDown
	}
	comment.ID = f.id()
	comment.CreatedAt = f.tick()
	f.comments[comment.ID] = *comment
	f.touch(comment.TodoID)
	return nil
}

func (f fakeComments) FindByID(_ context.Context, id uint) (*domain.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return nil, errDatabaseDown
	}
	c, ok := f.comments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &c, nil
}

func (f fakeComments) FindByTodoID(_ context.Context, todoID uint) ([]domain.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return nil, errDatabaseDown
	}
	var out []domain.Comment
	for _, c := range f.comments {
		if c.TodoID == todoID {
			c.User = f.users[c.UserID]
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f fakeComments) Delete(_ context.Context, comment *domain.Comment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return errDatabaseDown
	}
	delete(f.comments, comment.ID)
	f.touch(comment.TodoID)
	return nil
}

// fakeUseTimes implements repository.ApiUseTimeRepository.
type fakeUseTimes struct{ *store }

func (f fakeUseTimes) AddUseTime(ctx context.Context, userID uint, millis int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	if f.failAll {
		return errDatabaseDown
	}
	f.useTimes[userID] += millis
	return nil
}

func (f fakeUseTimes) FindByUserID(_ context.Context, userID uint) (*domain.ApiUseTime, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	millis, ok := f.useTimes[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &domain.ApiUseTime{UserID: userID, CumulativeMillis: millis}, nil
}

// plainEncoder is a fast PasswordEncoder for tests.
type plainEncoder struct{}

func (plainEncoder) Hash(plaintext string) (string, error) {
	if plaintext == "" {
		return "", errors.New("empty password")
	}
	return "hashed:" + plaintext, nil
}

func (plainEncoder) Matches(plaintext, digest string) bool {
	return strings.TrimPrefix(digest, "hashed:") == plaintext && strings.HasPrefix(digest, "hashed:")
}

// weatherFunc adapts a function to WeatherClient.
type weatherFunc func(ctx context.Context) (string, error)

func (f weatherFunc) TodayWeather(ctx context.Context) (string, error) { return f(ctx) }

func sunny(context.Context) (string, error) { return "Sunny", nil }
