package service

import (
	"context"
	"log/slog"
	"math"
	"strings"

	"github.com/Tomlord1122/weather-todo/internal/domain"
	"github.com/Tomlord1122/weather-todo/internal/repository"
)

// MaxPageSize bounds the size of a todo listing page.
const MaxPageSize = 100

// TodoService defines the operations for managing todos.
type TodoService interface {
	// SaveTodo creates a todo owned by authUser, annotated with today's weather.
	SaveTodo(ctx context.Context, authUser domain.AuthUser, req TodoSaveRequest) (*TodoSaveResponse, error)

	// GetTodos returns one 1-indexed page of todos, most recently modified first.
	GetTodos(ctx context.Context, page, size int) (*PageResponse[TodoResponse], error)

	// GetTodo returns a single todo with its owner.
	GetTodo(ctx context.Context, id uint) (*TodoResponse, error)
}

// todoService implements the TodoService interface.
type todoService struct {
	repo    repository.TodoRepository
	weather WeatherClient
	logger  *slog.Logger
}

// NewTodoService creates a new instance of todoService.
func NewTodoService(repo repository.TodoRepository, weather WeatherClient, logger *slog.Logger) TodoService {
	return &todoService{
		repo:    repo,
		weather: weather,
		logger:  defaultLogger(logger),
	}
}

func (s *todoService) SaveTodo(ctx context.Context, authUser domain.AuthUser, req TodoSaveRequest) (resp *TodoSaveResponse, err error) {
	defer func() { logResult(ctx, s.logger, "TodoService", "SaveTodo", err, "user_id", authUser.ID) }()

	// 1. Validation
	if strings.TrimSpace(req.Title) == "" {
		return nil, invalidRequest("title cannot be empty")
	}
	if strings.TrimSpace(req.Contents) == "" {
		return nil, invalidRequest("contents cannot be empty")
	}

	// 2. Weather snapshot, taken once
	weather, err := s.weather.TodayWeather(ctx)
	if err != nil {
		return nil, unavailable("weather service unavailable", err)
	}

	// 3. Persist the todo together with the owner's manager row
	todo := &domain.Todo{
		Title:    req.Title,
		Contents: req.Contents,
		Weather:  weather,
		UserID:   authUser.ID,
	}
	if err := s.repo.Create(ctx, todo); err != nil {
		return nil, unavailable("failed to create todo item", err)
	}

	// 4. Convert to the response DTO
	return &TodoSaveResponse{
		ID:       todo.ID,
		Title:    todo.Title,
		Contents: todo.Contents,
		Weather:  todo.Weather,
		User:     toUserResponse(domain.FromAuthUser(authUser)),
	}, nil
}

func (s *todoService) GetTodos(ctx context.Context, page, size int) (*PageResponse[TodoResponse], error) {
	if page < 1 {
		return nil, invalidRequest("page must be at least 1")
	}
	if size < 1 || size > MaxPageSize {
		return nil, invalidRequest("size must be between 1 and 100")
	}
	if page > math.MaxInt/size+1 {
		return nil, invalidRequest("page is out of range")
	}

	todos, total, err := s.repo.FindAllOrderByModifiedAtDesc(ctx, (page-1)*size, size)
	if err != nil {
		logResult(ctx, s.logger, "TodoService", "GetTodos", err)
		return nil, unavailable("failed to retrieve todo items", err)
	}

	content := make([]TodoResponse, 0, len(todos))
	for _, todo := range todos {
		content = append(content, toTodoResponse(todo))
	}

	return &PageResponse[TodoResponse]{
		Content:       content,
		Page:          page,
		Size:          size,
		TotalElements: total,
		TotalPages:    int((total + int64(size) - 1) / int64(size)),
	}, nil
}

func (s *todoService) GetTodo(ctx context.Context, id uint) (*TodoResponse, error) {
	todo, err := s.repo.FindByIDWithUser(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Todo not found")
	}
	resp := toTodoResponse(*todo)
	return &resp, nil
}
