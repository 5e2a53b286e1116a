package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "numbers/internal/errors"
	"numbers/internal/models"
	"numbers/internal/pagination"
	"numbers/internal/services"
	"numbers/internal/validator"
)

// --- mock ledger service ---

type mockLedgerService struct {
	saveTransactionFn      func(draft models.TransactionDraft) (*models.Transaction, error)
	saveBatchFn            func(drafts []models.TransactionDraft) ([]models.Transaction, error)
	deleteTransactionFn    func(id string) (bool, error)
	getTransactionByIDFn   func(id string) (*models.Transaction, error)
	listTransactionsFn     func(filter services.TransactionFilter) ([]models.Transaction, error)
	listTransactionsPageFn func(filter services.TransactionFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error)
	listAccountsFn         func() ([]models.PaymentMethod, error)
}

func (m *mockLedgerService) SaveTransaction(draft models.TransactionDraft) (*models.Transaction, error) {
	if m.saveTransactionFn != nil {
		return m.saveTransactionFn(draft)
	}
	return &models.Transaction{}, nil
}

func (m *mockLedgerService) SaveBatch(drafts []models.TransactionDraft) ([]models.Transaction, error) {
	if m.saveBatchFn != nil {
		return m.saveBatchFn(drafts)
	}
	return nil, nil
}

func (m *mockLedgerService) DeleteTransaction(id string) (bool, error) {
	if m.deleteTransactionFn != nil {
		return m.deleteTransactionFn(id)
	}
	return true, nil
}

func (m *mockLedgerService) GetTransactionByID(id string) (*models.Transaction, error) {
	if m.getTransactionByIDFn != nil {
		return m.getTransactionByIDFn(id)
	}
	return &models.Transaction{}, nil
}

func (m *mockLedgerService) ListTransactions(filter services.TransactionFilter) ([]models.Transaction, error) {
	if m.listTransactionsFn != nil {
		return m.listTransactionsFn(filter)
	}
	return nil, nil
}

func (m *mockLedgerService) ListTransactionsPage(filter services.TransactionFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error) {
	if m.listTransactionsPageFn != nil {
		return m.listTransactionsPageFn(filter, page)
	}
	resp := pagination.NewPageResponse([]models.Transaction{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockLedgerService) ListAccounts() ([]models.PaymentMethod, error) {
	if m.listAccountsFn != nil {
		return m.listAccountsFn()
	}
	return nil, nil
}

var _ services.LedgerServicer = (*mockLedgerService)(nil)

// --- test helpers ---

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

func setupTransactionRouter(handler *TransactionHandler) *gin.Engine {
	r := gin.New()
	r.POST("/transactions", handler.CreateTransaction)
	r.GET("/transactions", handler.ListTransactions)
	r.GET("/transactions/:id", handler.GetTransactionByID)
	r.DELETE("/transactions/:id", handler.DeleteTransaction)
	return r
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}

// --- tests ---

func TestTransactionHandler_CreateTransaction(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		ledger := &mockLedgerService{
			saveTransactionFn: func(draft models.TransactionDraft) (*models.Transaction, error) {
				tx := &models.Transaction{
					Title:    *draft.Title,
					Amount:   *draft.Amount,
					Category: *draft.Category,
				}
				tx.ID = "0190a8c0-0000-7000-8000-000000000001"
				return tx, nil
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(ledger))

		rec := doRequest(r, "POST", "/transactions",
			`{"title":"Coffee","amount":4.5,"category":"want","subcategory":"Food & Drinks","debit_account":"HDFC Debit"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		tx := result["transaction"].(map[string]interface{})
		if tx["title"] != "Coffee" {
			t.Errorf("expected title Coffee, got %v", tx["title"])
		}
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockLedgerService{}))

		rec := doRequest(r, "POST", "/transactions",
			`{"title":"Coffee","amount":4.5,"category":"splurge","subcategory":"Food & Drinks","debit_account":"HDFC Debit"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
		assertErrorCode(t, parseJSON(t, rec), "VALIDATION_FAILED")
	})

	t.Run("rejects zero amount", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockLedgerService{}))

		rec := doRequest(r, "POST", "/transactions",
			`{"title":"Coffee","amount":0,"category":"want","subcategory":"Food & Drinks","debit_account":"HDFC Debit"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("rejects unparseable date", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockLedgerService{}))

		rec := doRequest(r, "POST", "/transactions",
			`{"title":"Coffee","amount":4.5,"category":"want","subcategory":"Food & Drinks","debit_account":"HDFC Debit","date":"March 3rd"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("accepts day-first date", func(t *testing.T) {
		var gotDate time.Time
		ledger := &mockLedgerService{
			saveTransactionFn: func(draft models.TransactionDraft) (*models.Transaction, error) {
				gotDate = *draft.Date
				return &models.Transaction{}, nil
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(ledger))

		rec := doRequest(r, "POST", "/transactions",
			`{"title":"Coffee","amount":4.5,"category":"want","subcategory":"Food & Drinks","debit_account":"HDFC Debit","date":"15/03/2026"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		want := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
		if !gotDate.Equal(want) {
			t.Errorf("expected date %v, got %v", want, gotDate)
		}
	})
}

func TestTransactionHandler_ListTransactions(t *testing.T) {
	t.Run("passes filters through", func(t *testing.T) {
		var gotFilter services.TransactionFilter
		var gotPage pagination.PageRequest
		ledger := &mockLedgerService{
			listTransactionsPageFn: func(filter services.TransactionFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error) {
				gotFilter = filter
				gotPage = page
				resp := pagination.NewPageResponse([]models.Transaction{}, page.Page, page.PageSize, 0)
				return &resp, nil
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(ledger))

		rec := doRequest(r, "GET", "/transactions?page=2&page_size=10&since=2026-03-01&account=Amex", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotPage.Page != 2 || gotPage.PageSize != 10 {
			t.Errorf("expected page 2 size 10, got %+v", gotPage)
		}
		if gotFilter.Since == nil || gotFilter.Since.Day() != 1 {
			t.Error("expected since filter parsed")
		}
		if gotFilter.AccountTitle == nil || *gotFilter.AccountTitle != "Amex" {
			t.Error("expected account filter passed through")
		}
	})

	t.Run("rejects bad since date", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockLedgerService{}))

		rec := doRequest(r, "GET", "/transactions?since=whenever", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
	})
}

func TestTransactionHandler_GetTransactionByID(t *testing.T) {
	t.Run("returns 404 for unknown id", func(t *testing.T) {
		ledger := &mockLedgerService{
			getTransactionByIDFn: func(id string) (*models.Transaction, error) {
				return nil, apperrors.ErrTransactionNotFound
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(ledger))

		rec := doRequest(r, "GET", "/transactions/missing", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "TRANSACTION_NOT_FOUND")
	})
}

func TestTransactionHandler_DeleteTransaction(t *testing.T) {
	t.Run("reports deleted flag", func(t *testing.T) {
		ledger := &mockLedgerService{
			deleteTransactionFn: func(id string) (bool, error) { return false, nil },
		}
		r := setupTransactionRouter(NewTransactionHandler(ledger))

		rec := doRequest(r, "DELETE", "/transactions/unknown", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		if result["deleted"] != false {
			t.Errorf("expected deleted=false, got %v", result["deleted"])
		}
	})
}
