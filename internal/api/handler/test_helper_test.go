package handler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/martijn/miniblog/internal/api/middleware"
	"github.com/martijn/miniblog/internal/api/templates"
	"github.com/martijn/miniblog/internal/core/service"
	"github.com/martijn/miniblog/internal/infrastructure/sqlite"
	"golang.org/x/crypto/bcrypt"
)

// testEnv holds all test dependencies
type testEnv struct {
	db     *sqlite.DB
	router *gin.Engine
	auth   *service.AuthService
}

// setupTestEnv creates a test environment with an in-memory SQLite
// database and the full route table, guards included.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	userRepo := sqlite.NewUserRepository(db)
	postRepo := sqlite.NewPostRepository(db)
	commentRepo := sqlite.NewCommentRepository(db)

	authService := service.NewAuthService(userRepo, service.WithBcryptCost(bcrypt.MinCost))
	blogService := service.NewBlogService(postRepo, commentRepo)

	pageHandler := NewPageHandler()
	authHandler := NewAuthHandler(authService)
	blogHandler := NewBlogHandler(blogService)

	gin.SetMode(gin.TestMode)
	router := gin.New()

	tmpl, err := templates.Load()
	if err != nil {
		t.Fatalf("failed to load templates: %v", err)
	}
	router.SetHTMLTemplate(tmpl)
	router.Use(middleware.ErrorHandlerMiddleware())

	requireUser := middleware.RequireUser(authService)
	provideUser := middleware.ProvideUser(authService)

	router.GET("/", pageHandler.Home)
	router.GET("/login", authHandler.ShowLogin)
	router.POST("/login", authHandler.Login)
	router.GET("/about", provideUser, pageHandler.About)
	router.GET("/logout", provideUser, authHandler.Logout)
	router.GET("/faq", requireUser, pageHandler.FAQ)
	router.GET("/blog", requireUser, blogHandler.ListPosts)
	router.POST("/blog", requireUser, blogHandler.CreatePost)
	router.GET("/posts/:id", requireUser, blogHandler.ShowPost)
	router.POST("/posts/:id", requireUser, blogHandler.AddComment)

	return &testEnv{
		db:     db,
		router: router,
		auth:   authService,
	}
}

// cleanup closes the test database
func (env *testEnv) cleanup() {
	if env.db != nil {
		env.db.Close()
	}
}

// get performs a GET request, optionally carrying a session cookie
func (env *testEnv) get(t *testing.T, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, path, nil)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

// postForm performs a form POST, optionally carrying a session cookie
func (env *testEnv) postForm(t *testing.T, path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	req, err := http.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

// login runs the login form and returns the issued session cookie
func (env *testEnv) login(t *testing.T, username, password string) *http.Cookie {
	t.Helper()

	w := env.postForm(t, "/login", url.Values{
		"username": {username},
		"password": {password},
	}, nil)

	if w.Code != http.StatusFound {
		t.Fatalf("expected login redirect, got %d\nBody: %s", w.Code, w.Body.String())
	}

	cookie := sessionCookie(w)
	if cookie == nil {
		t.Fatal("expected a session cookie to be set")
	}
	return cookie
}

// sessionCookie extracts the session cookie from a response, nil if absent
func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.SessionCookieName {
			return c
		}
	}
	return nil
}
