package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"carteirab3/internal/api/handlers"
	"carteirab3/internal/testutil"
)

func TestReviewHandlerPortfolio(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := handlers.NewReviewHandler(testutil.NewTestReviewService(t, db))
	userID := testutil.CreateTestUser(t, db)

	t.Run("missing date", func(t *testing.T) {
		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/reviews/portfolio", nil)
		w := httptest.NewRecorder()
		handler.Portfolio(w, testutil.AsUser(req, userID))

		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d", w.Code)
		}
		if msg := decodeError(t, w); msg != "Date is required" {
			t.Errorf("error = %q", msg)
		}
	})

	t.Run("invalid asset type", func(t *testing.T) {
		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/reviews/portfolio",
			map[string]string{"date": "31/01/2024", "assetType": "CRYPTO"})
		w := httptest.NewRecorder()
		handler.Portfolio(w, testutil.AsUser(req, userID))

		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d", w.Code)
		}
		if msg := decodeError(t, w); msg != "Invalid asset type" {
			t.Errorf("error = %q", msg)
		}
	})

	t.Run("dates listing starts empty", func(t *testing.T) {
		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/reviews/portfolio/dates", nil)
		w := httptest.NewRecorder()
		handler.PortfolioDates(w, testutil.AsUser(req, userID))

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
		}
		var body struct {
			Dates []string `json:"dates"`
		}
		if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
			t.Fatalf("failed to decode dates: %v", err)
		}
		if len(body.Dates) != 0 {
			t.Errorf("expected no dates, got %v", body.Dates)
		}
	})

	t.Run("empty snapshot returns a valid page", func(t *testing.T) {
		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/reviews/portfolio",
			map[string]string{"date": "31/01/2024", "assetType": "TODOS"})
		w := httptest.NewRecorder()
		handler.Portfolio(w, testutil.AsUser(req, userID))

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
		}
		var page struct {
			Records    []json.RawMessage `json:"records"`
			TotalValue float64           `json:"totalValue"`
		}
		if err := json.NewDecoder(w.Body).Decode(&page); err != nil {
			t.Fatalf("failed to decode page: %v", err)
		}
		if len(page.Records) != 0 || page.TotalValue != 0 {
			t.Errorf("unexpected page %+v", page)
		}
	})
}

func TestReviewHandlerDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := handlers.NewReviewHandler(testutil.NewTestReviewService(t, db))
	userID := testutil.CreateTestUser(t, db)

	t.Run("missing id", func(t *testing.T) {
		req := testutil.NewRequestWithQueryParams(http.MethodDelete, "/api/reviews/proventos", nil)
		w := httptest.NewRecorder()
		handler.DeleteProvento(w, testutil.AsUser(req, userID))

		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d", w.Code)
		}
		if msg := decodeError(t, w); msg != "Record ID is required" {
			t.Errorf("error = %q", msg)
		}
	})

	t.Run("non-numeric id", func(t *testing.T) {
		req := testutil.NewRequestWithQueryParams(http.MethodDelete, "/api/reviews/proventos",
			map[string]string{"id": "abc"})
		w := httptest.NewRecorder()
		handler.DeleteProvento(w, testutil.AsUser(req, userID))

		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d", w.Code)
		}
	})

	t.Run("unknown record is 404", func(t *testing.T) {
		req := testutil.NewRequestWithQueryParams(http.MethodDelete, "/api/reviews/proventos",
			map[string]string{"id": "9999"})
		w := httptest.NewRecorder()
		handler.DeleteProvento(w, testutil.AsUser(req, userID))

		if w.Code != http.StatusNotFound {
			t.Fatalf("status = %d", w.Code)
		}
	})

	t.Run("owned record deletes", func(t *testing.T) {
		testutil.NewProvento(userID).Build(t, db)
		var id int64
		if err := db.QueryRow("SELECT id FROM proventos_consolidado WHERE user_id = ?", userID).Scan(&id); err != nil {
			t.Fatal(err)
		}

		req := testutil.NewRequestWithQueryParams(http.MethodDelete, "/api/reviews/proventos",
			map[string]string{"id": strconv.FormatInt(id, 10)})
		w := httptest.NewRecorder()
		handler.DeleteProvento(w, testutil.AsUser(req, userID))

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
		}
	})
}
