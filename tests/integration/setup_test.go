package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"fintrack/internal/handlers"
	"fintrack/internal/logger"
	"fintrack/internal/middleware"
	"fintrack/internal/models"
	"fintrack/internal/services"
	"fintrack/internal/token"
	"fintrack/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
	Tokens *token.Manager
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:integrationdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.User{},
		&models.Category{},
		&models.Expense{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	tokens := token.NewManager(token.Config{
		AccessSecret:  "integration-access-secret",
		AccessTTL:     15 * time.Minute,
		RefreshSecret: "integration-refresh-secret",
		RefreshTTL:    7 * 24 * time.Hour,
	})

	// Services
	userService := services.NewUserService(db)
	categoryService := services.NewCategoryService(db)
	expenseService := services.NewExpenseService(db, categoryService)
	authService := services.NewAuthService(db, userService, categoryService, expenseService, tokens)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	expenseHandler := handlers.NewExpenseHandler(expenseService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	auth := router.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/guest", authHandler.GuestLogin)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	authProtected := auth.Group("/")
	authProtected.Use(middleware.Auth(tokens))
	authProtected.POST("/logout", authHandler.Logout)
	authProtected.GET("/me", authHandler.GetMe)
	authProtected.DELETE("/delete-account", authHandler.DeleteAccount)

	protected := router.Group("/")
	protected.Use(middleware.Auth(tokens))

	categories := protected.Group("/categories")
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("", categoryHandler.GetUserCategories)
	categories.GET("/:id", categoryHandler.GetCategoryByID)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	expenses := protected.Group("/expenses")
	expenses.POST("", expenseHandler.CreateExpense)
	expenses.GET("", expenseHandler.GetUserExpenses)
	expenses.GET("/summary/monthly", expenseHandler.GetMonthlySummary)
	expenses.GET("/summary/dashboard", expenseHandler.GetDashboard)
	expenses.GET("/:id", expenseHandler.GetExpenseByID)
	expenses.DELETE("/:id", expenseHandler.DeleteExpense)

	return &testApp{DB: db, Router: router, Tokens: tokens}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// registerUser registers a new user and returns the access token, refresh token, and user ID.
func (app *testApp) registerUser(t *testing.T, email, password string) (accessToken, refreshToken, userID string) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q}`, email, password)
	rec := app.request("POST", "/auth/register", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	user := result["user"].(map[string]interface{})
	return result["access_token"].(string), result["refresh_token"].(string), user["id"].(string)
}

// loginUser logs in and returns the access and refresh tokens.
func (app *testApp) loginUser(t *testing.T, email, password string) (accessToken, refreshToken string) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q}`, email, password)
	rec := app.request("POST", "/auth/login", body, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	return result["access_token"].(string), result["refresh_token"].(string)
}

// createCategory creates a category and returns its ID.
func (app *testApp) createCategory(t *testing.T, access, name, icon string) string {
	t.Helper()
	body := fmt.Sprintf(`{"name":%q,"icon":%q}`, name, icon)
	rec := app.request("POST", "/categories", body, access)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create category failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	category := result["category"].(map[string]interface{})
	return category["id"].(string)
}

// createExpense creates an expense and returns its ID.
func (app *testApp) createExpense(t *testing.T, access, categoryID string, amount int64, description, date string) string {
	t.Helper()
	body := fmt.Sprintf(`{"amount":%d,"category_id":%q,"description":%q`, amount, categoryID, description)
	if date != "" {
		body += fmt.Sprintf(`,"date":%q`, date)
	}
	body += "}"
	rec := app.request("POST", "/expenses", body, access)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create expense failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	expense := result["expense"].(map[string]interface{})
	return expense["id"].(string)
}
