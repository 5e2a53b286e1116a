package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"numbers/internal/events"
	"numbers/internal/handlers"
	"numbers/internal/logger"
	"numbers/internal/middleware"
	"numbers/internal/models"
	"numbers/internal/services"
	"numbers/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
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
		&models.PaymentMethod{},
		&models.Transaction{},
		&models.CreditCardBill{},
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

	// Services
	ledgerService := services.NewLedgerService(db, events.Noop{})
	billService := services.NewBillService(db, events.Noop{})
	importService := services.NewImportService(ledgerService, billService, events.Noop{})
	summaryService := services.NewSummaryService(ledgerService, billService)

	// Handlers
	transactionHandler := handlers.NewTransactionHandler(ledgerService)
	accountHandler := handlers.NewAccountHandler(ledgerService, summaryService)
	billHandler := handlers.NewBillHandler(billService)
	importHandler := handlers.NewImportHandler(importService)
	summaryHandler := handlers.NewSummaryHandler(summaryService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	transactions := v1.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.ListTransactions)
	transactions.GET("/:id", transactionHandler.GetTransactionByID)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	accounts := v1.Group("/accounts")
	accounts.GET("", accountHandler.ListAccounts)
	accounts.GET("/:title/outstanding", accountHandler.GetOutstanding)

	bills := v1.Group("/bills")
	bills.POST("", billHandler.SaveBill)
	bills.GET("", billHandler.ListBills)
	bills.GET("/:id", billHandler.GetBillByID)
	bills.DELETE("/:id", billHandler.DeleteBill)

	imports := v1.Group("/import")
	imports.POST("/transactions", importHandler.ImportTransactions)
	imports.POST("/bills", importHandler.ImportBills)

	v1.GET("/summary/:period", summaryHandler.GetPeriodSummary)

	return &testApp{DB: db, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// upload posts a multipart file upload to the test router.
func (app *testApp) upload(t *testing.T, path, content string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", "statement.csv")
	if err != nil {
		t.Fatalf("failed to build multipart body: %v", err)
	}
	if _, err := fw.Write([]byte(content)); err != nil {
		t.Fatalf("failed to write multipart body: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest("POST", path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
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

// createTransaction posts a transaction and returns its id.
func (app *testApp) createTransaction(t *testing.T, body string) string {
	t.Helper()
	rec := app.request("POST", "/api/v1/transactions", body)
	if rec.Code != 201 {
		t.Fatalf("create transaction failed: %d %s", rec.Code, rec.Body.String())
	}
	tx := parseJSON(t, rec)["transaction"].(map[string]interface{})
	return tx["id"].(string)
}
