package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"todolist-be/internal/bootstrap"
	"todolist-be/internal/config"
	"todolist-be/internal/dto"
	"todolist-be/internal/model"
	"todolist-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Task{}))

	cfg := &config.Config{
		App: config.AppConfig{
			Port:               "0",
			Environment:        "test",
			LogFilePath:        filepath.Join(t.TempDir(), "test.log"),
			ViewsDir:           "../../web/views",
			StaticDir:          "../../web/static",
			CorsAllowedOrigins: "http://localhost:3000",
			TaskEventsTopic:    "TASK_EVENTS",
		},
		Database: config.DatabaseConfig{QueryTimeout: 5 * time.Second},
		Session:  config.SessionConfig{Store: "memory", TTL: time.Hour},
	}

	container := bootstrap.NewContainer(db, cfg)
	return New(cfg, container).GetApp()
}

func postForm(t *testing.T, app *fiber.App, path string, form url.Values, cookie *http.Cookie) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func get(t *testing.T, app *fiber.App, path string, cookie *http.Cookie) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func sessionCookie(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()
	for _, c := range resp.Cookies() {
		if c.Name == serverutils.SessionCookieName && c.Value != "" {
			return c
		}
	}
	t.Fatal("no session cookie in response")
	return nil
}

func registerAndLogin(t *testing.T, app *fiber.App, username, password string) *http.Cookie {
	t.Helper()
	creds := url.Values{"username": {username}, "password": {password}}

	resp := postForm(t, app, "/register", creds, nil)
	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Equal(t, "/login", resp.Header.Get("Location"))

	resp = postForm(t, app, "/login", creds, nil)
	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Equal(t, "/", resp.Header.Get("Location"))
	return sessionCookie(t, resp)
}

func listTasks(t *testing.T, app *fiber.App, cookie *http.Cookie) []dto.TaskResponse {
	t.Helper()
	resp := get(t, app, "/list", cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var tasks []dto.TaskResponse
	require.NoError(t, json.Unmarshal(body, &tasks))
	return tasks
}

func TestLoginPageRenders(t *testing.T) {
	app := newTestApp(t)

	resp := get(t, app, "/login", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "/login")
	assert.NotContains(t, string(body), "Invalid username or password")

	// the failure flag shows the message
	resp = get(t, app, "/login?error=1", nil)
	body, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Invalid username or password")
}

func TestUnauthenticatedBrowserIsRedirected(t *testing.T) {
	app := newTestApp(t)

	resp := get(t, app, "/", nil)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestUnauthenticatedAPIGets401(t *testing.T) {
	app := newTestApp(t)

	resp := get(t, app, "/list", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLoginFailureRedirectsWithFlag(t *testing.T) {
	app := newTestApp(t)

	resp := postForm(t, app, "/login", url.Values{
		"username": {"ghost"},
		"password": {"whatever"},
	}, nil)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login?error=1", resp.Header.Get("Location"))
}

func TestDuplicateRegistration(t *testing.T) {
	app := newTestApp(t)
	creds := url.Values{"username": {"alice"}, "password": {"secret123"}}

	resp := postForm(t, app, "/register", creds, nil)
	require.Equal(t, http.StatusFound, resp.StatusCode)

	resp = postForm(t, app, "/register", creds, nil)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/register?error=taken", resp.Header.Get("Location"))
}

func TestTaskLifecycle(t *testing.T) {
	app := newTestApp(t)
	cookie := registerAndLogin(t, app, "alice", "secret123")

	// empty list to start
	assert.Empty(t, listTasks(t, app, cookie))

	// add two tasks
	resp := postForm(t, app, "/add", url.Values{"text": {"buy milk"}}, cookie)
	require.Equal(t, http.StatusFound, resp.StatusCode)
	resp = postForm(t, app, "/add", url.Values{"text": {"walk dog"}}, cookie)
	require.Equal(t, http.StatusFound, resp.StatusCode)

	// listed in insertion order
	tasks := listTasks(t, app, cookie)
	require.Len(t, tasks, 2)
	assert.Equal(t, "buy milk", tasks[0].Text)
	assert.Equal(t, "walk dog", tasks[1].Text)

	// the page renders them too
	resp = get(t, app, "/", cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "buy milk")
	assert.Contains(t, string(body), "walk dog")

	// edit over JSON
	payload, _ := json.Marshal(dto.UpdateTaskRequest{Id: tasks[0].Id, Text: "buy oat milk"})
	req := httptest.NewRequest(http.MethodPost, "/update", strings.NewReader(string(payload)))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(cookie)
	updateResp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, updateResp.StatusCode)

	tasks = listTasks(t, app, cookie)
	assert.Equal(t, "buy oat milk", tasks[0].Text)

	// delete the first task
	resp = postForm(t, app, "/delete", url.Values{"id": {strconv.FormatInt(tasks[0].Id, 10)}}, cookie)
	require.Equal(t, http.StatusFound, resp.StatusCode)

	tasks = listTasks(t, app, cookie)
	require.Len(t, tasks, 1)
	assert.Equal(t, "walk dog", tasks[0].Text)
}

func TestTasksAreScopedToTheAccount(t *testing.T) {
	app := newTestApp(t)
	alice := registerAndLogin(t, app, "alice", "secret123")
	bob := registerAndLogin(t, app, "bob", "secret456")

	resp := postForm(t, app, "/add", url.Values{"text": {"alice's task"}}, alice)
	require.Equal(t, http.StatusFound, resp.StatusCode)

	assert.Len(t, listTasks(t, app, alice), 1)
	assert.Empty(t, listTasks(t, app, bob))

	// bob cannot delete alice's task
	aliceTasks := listTasks(t, app, alice)
	resp = postForm(t, app, "/delete", url.Values{"id": {strconv.FormatInt(aliceTasks[0].Id, 10)}}, bob)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Len(t, listTasks(t, app, alice), 1)
}

func TestLogout(t *testing.T) {
	app := newTestApp(t)
	cookie := registerAndLogin(t, app, "alice", "secret123")

	resp := get(t, app, "/logout", cookie)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	// the old cookie no longer works
	resp = get(t, app, "/", cookie)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestCheckTelegram(t *testing.T) {
	app := newTestApp(t)
	cookie := registerAndLogin(t, app, "alice", "secret123")

	resp := get(t, app, "/check-telegram", cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var status dto.TelegramStatusResponse
	require.NoError(t, json.Unmarshal(body, &status))
	assert.False(t, status.HasTelegram)
}

