package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskhive/taskhive-backend/internal/auth"
	"github.com/taskhive/taskhive-backend/internal/domain"
	apphttp "github.com/taskhive/taskhive-backend/internal/http"
	"github.com/taskhive/taskhive-backend/internal/router"
	"github.com/taskhive/taskhive-backend/internal/tasks"
	"github.com/taskhive/taskhive-backend/internal/users"
)

// In-memory stores so the gateway tests run the real services and
// middleware without Postgres.

type memUserRepo struct {
	mu      sync.Mutex
	byEmail map[string]*domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byEmail: make(map[string]*domain.User)}
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[user.Email]; ok {
		return nil, domain.ErrEmailTaken
	}
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now()
	cp := *user
	r.byEmail[user.Email] = &cp
	return user, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.byEmail[email]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byEmail {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

type memTaskRepo struct {
	mu    sync.Mutex
	items map[string]*tasks.Task
	order []string
}

func newMemTaskRepo() *memTaskRepo {
	return &memTaskRepo{items: make(map[string]*tasks.Task)}
}

func (r *memTaskRepo) Insert(_ context.Context, t *tasks.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t.ID = uuid.NewString()
	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now
	cp := *t
	r.items[t.ID] = &cp
	r.order = append(r.order, t.ID)
	return nil
}

func (r *memTaskRepo) ListByOwner(_ context.Context, userID string) ([]tasks.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]tasks.Task, 0)
	for _, id := range r.order {
		if t, ok := r.items[id]; ok && t.UserID == userID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *memTaskRepo) GetByID(_ context.Context, id string) (*tasks.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.items[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (r *memTaskRepo) Update(_ context.Context, t *tasks.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[t.ID]; !ok {
		return domain.ErrNotFound
	}
	t.UpdatedAt = time.Now()
	cp := *t
	r.items[t.ID] = &cp
	return nil
}

func (r *memTaskRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func newTestApp() *fiber.App {
	secret := []byte("test-secret")
	userSvc := users.NewService(newMemUserRepo(), secret, time.Hour)
	taskSvc := tasks.NewService(newMemTaskRepo())

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	r := &router.Router{
		AuthHandler: apphttp.NewAuthHandler(userSvc),
		TaskHandler: apphttp.NewTaskHandler(taskSvc),
		AuthMW:      auth.Middleware(secret),
	}
	r.RegisterRoutes(app)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func register(t *testing.T, app *fiber.App, name, email, password string) (token string, userID string) {
	t.Helper()

	status, raw := doJSON(t, app, fiber.MethodPost, "/api/auth/register", "", fiber.Map{
		"name": name, "email": email, "password": password,
	})
	require.Equal(t, http.StatusOK, status, "register response: %s", raw)

	var resp struct {
		Token string      `json:"token"`
		User  domain.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(raw, &resp))
	require.NotEmpty(t, resp.Token)
	require.NotEmpty(t, resp.User.ID)
	return resp.Token, resp.User.ID
}

func TestRegisterLoginProfileFlow(t *testing.T) {
	t.Parallel()
	app := newTestApp()

	regToken, userID := register(t, app, "Alice", "alice@example.com", "hunter22")

	status, raw := doJSON(t, app, fiber.MethodPost, "/api/auth/login", "", fiber.Map{
		"email": "alice@example.com", "password": "hunter22",
	})
	require.Equal(t, http.StatusOK, status)
	var login struct {
		Token string      `json:"token"`
		User  domain.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(raw, &login))
	assert.Equal(t, userID, login.User.ID)

	for _, token := range []string{regToken, login.Token} {
		status, raw = doJSON(t, app, fiber.MethodGet, "/api/auth/profile", token, nil)
		require.Equal(t, http.StatusOK, status)
		var profile domain.User
		require.NoError(t, json.Unmarshal(raw, &profile))
		assert.Equal(t, userID, profile.ID)
		assert.Equal(t, "Alice", profile.Name)
		assert.NotContains(t, string(raw), "password")
	}
}

func TestRegister_Failures(t *testing.T) {
	t.Parallel()
	app := newTestApp()

	// Missing fields.
	status, raw := doJSON(t, app, fiber.MethodPost, "/api/auth/register", "", fiber.Map{
		"email": "alice@example.com",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, string(raw), "error")

	// Duplicate email.
	register(t, app, "Alice", "alice@example.com", "hunter22")
	status, raw = doJSON(t, app, fiber.MethodPost, "/api/auth/register", "", fiber.Map{
		"name": "Imposter", "email": "alice@example.com", "password": "hunter23",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, string(raw), "already exists")
}

func TestLogin_InvalidCredentials(t *testing.T) {
	t.Parallel()
	app := newTestApp()
	register(t, app, "Alice", "alice@example.com", "hunter22")

	status, rawWrong := doJSON(t, app, fiber.MethodPost, "/api/auth/login", "", fiber.Map{
		"email": "alice@example.com", "password": "nope-nope",
	})
	assert.Equal(t, http.StatusBadRequest, status)

	status, rawUnknown := doJSON(t, app, fiber.MethodPost, "/api/auth/login", "", fiber.Map{
		"email": "ghost@example.com", "password": "hunter22",
	})
	assert.Equal(t, http.StatusBadRequest, status)

	// Same message either way: no oracle on which half was wrong.
	assert.Equal(t, string(rawWrong), string(rawUnknown))
}

func TestBearerGate(t *testing.T) {
	t.Parallel()
	app := newTestApp()

	for _, tc := range []struct {
		name  string
		token string
	}{
		{"missing token", ""},
		{"garbage token", "not.a.jwt"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			status, raw := doJSON(t, app, fiber.MethodGet, "/api/tasks", tc.token, nil)
			assert.Equal(t, http.StatusUnauthorized, status)
			assert.Contains(t, string(raw), "error")
		})
	}
}

func TestMalformedJSONBody(t *testing.T) {
	t.Parallel()
	app := newTestApp()
	token, _ := register(t, app, "Alice", "alice@example.com", "hunter22")

	for _, path := range []string{"/api/auth/register", "/api/tasks"} {
		req := httptest.NewRequest(fiber.MethodPost, path, strings.NewReader("{not json"))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "path %s", path)
		assert.Contains(t, string(raw), "error")
	}
}

func TestTaskCRUDFlow(t *testing.T) {
	t.Parallel()
	app := newTestApp()
	token, userID := register(t, app, "Alice", "alice@example.com", "hunter22")

	// Create with an explicit priority.
	status, raw := doJSON(t, app, fiber.MethodPost, "/api/tasks", token, fiber.Map{
		"title": "Ship report", "priority": "High", "estimatedHours": 3.5,
	})
	require.Equal(t, http.StatusOK, status, "create response: %s", raw)
	var created tasks.Task
	require.NoError(t, json.Unmarshal(raw, &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, tasks.PriorityHigh, created.Priority)
	assert.Equal(t, userID, created.UserID)

	// List shows it.
	status, raw = doJSON(t, app, fiber.MethodGet, "/api/tasks", token, nil)
	require.Equal(t, http.StatusOK, status)
	var list []tasks.Task
	require.NoError(t, json.Unmarshal(raw, &list))
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)
	assert.Equal(t, tasks.PriorityHigh, list[0].Priority)

	// Partial update: only the priority changes.
	status, raw = doJSON(t, app, fiber.MethodPut, "/api/tasks/"+created.ID, token, fiber.Map{
		"priority": "Low",
	})
	require.Equal(t, http.StatusOK, status, "update response: %s", raw)
	var updated tasks.Task
	require.NoError(t, json.Unmarshal(raw, &updated))
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, tasks.PriorityLow, updated.Priority)
	assert.Equal(t, "Ship report", updated.Title)
	assert.Equal(t, 3.5, updated.EstimatedHours)

	// Delete confirms, and a second delete is 404.
	status, raw = doJSON(t, app, fiber.MethodDelete, "/api/tasks/"+created.ID, token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"msg":"Task deleted"}`, string(raw))

	status, _ = doJSON(t, app, fiber.MethodDelete, "/api/tasks/"+created.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestTaskCreate_MissingTitle(t *testing.T) {
	t.Parallel()
	app := newTestApp()
	token, _ := register(t, app, "Alice", "alice@example.com", "hunter22")

	status, raw := doJSON(t, app, fiber.MethodPost, "/api/tasks", token, fiber.Map{
		"description": "no title here",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, string(raw), "title")

	status, raw = doJSON(t, app, fiber.MethodGet, "/api/tasks", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[]`, string(raw))
}

func TestCrossUserAccessForbidden(t *testing.T) {
	t.Parallel()
	app := newTestApp()
	tokenA, _ := register(t, app, "Alice", "alice@example.com", "hunter22")
	tokenB, _ := register(t, app, "Bob", "bob@example.com", "hunter22")

	status, raw := doJSON(t, app, fiber.MethodPost, "/api/tasks", tokenA, fiber.Map{
		"title": "Alice's task",
	})
	require.Equal(t, http.StatusOK, status)
	var created tasks.Task
	require.NoError(t, json.Unmarshal(raw, &created))

	status, _ = doJSON(t, app, fiber.MethodPut, "/api/tasks/"+created.ID, tokenB, fiber.Map{
		"title": "Hijacked",
	})
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = doJSON(t, app, fiber.MethodDelete, "/api/tasks/"+created.ID, tokenB, nil)
	assert.Equal(t, http.StatusForbidden, status)

	// B's list never contains A's task, and A's record is unchanged.
	status, raw = doJSON(t, app, fiber.MethodGet, "/api/tasks", tokenB, nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[]`, string(raw))

	status, raw = doJSON(t, app, fiber.MethodGet, "/api/tasks", tokenA, nil)
	require.Equal(t, http.StatusOK, status)
	var list []tasks.Task
	require.NoError(t, json.Unmarshal(raw, &list))
	require.Len(t, list, 1)
	assert.Equal(t, "Alice's task", list[0].Title)
}

func TestTaskUnknownID(t *testing.T) {
	t.Parallel()
	app := newTestApp()
	token, _ := register(t, app, "Alice", "alice@example.com", "hunter22")

	for _, id := range []string{uuid.NewString(), "not-a-uuid"} {
		status, _ := doJSON(t, app, fiber.MethodPut, "/api/tasks/"+id, token, fiber.Map{
			"title": "whatever",
		})
		assert.Equal(t, http.StatusNotFound, status, "update id %q", id)

		status, _ = doJSON(t, app, fiber.MethodDelete, "/api/tasks/"+id, token, nil)
		assert.Equal(t, http.StatusNotFound, status, "delete id %q", id)
	}
}
