package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"carteirab3/internal/api/handlers"
	"carteirab3/internal/model"
	"carteirab3/internal/testutil"
)

const portfolioUploadCSV = "Produto,Instituição,Conta,Código de Negociação,Quantidade,Preço de Fechamento,Valor Atualizado\n" +
	`PETR4 - PETROBRAS,XP,123,PETR4,100,"R$ 30,50","R$ 3.050,00"`

const proventosUploadCSV = "Produto,Pagamento,Tipo de Evento,Instituição,Quantidade,Preço unitário,Valor líquido\n" +
	`PETR4 - PETROBRAS,15/05/2024,Dividendo,XP,100,"R$ 0,25","R$ 25,00"`

const movimentacoesUploadCSV = "Entrada/Saída,Data Movimentação,Produto,Instituição,Quantidade,Preço unitário,Valor da Operação\n" +
	`Crédito,15/05/2024,PETR4 - PETROBRAS,XP,100,"R$ 30,50","R$ 3.050,00"`

func decodeImportResult(t *testing.T, w *httptest.ResponseRecorder) model.ImportResult {
	t.Helper()

	var result model.ImportResult
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode import result: %v", err)
	}
	return result
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()

	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	return body.Error
}

func TestImportHandlerPortfolio(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := handlers.NewImportHandler(testutil.NewTestImportService(t, db))
	userID := testutil.CreateTestUser(t, db)

	t.Run("valid upload imports the snapshot", func(t *testing.T) {
		req := testutil.NewCSVUploadRequest(t, "/api/imports/portfolio", "posicao.csv", portfolioUploadCSV,
			map[string]string{"assetType": "acoes", "date": "31/01/2024"})
		w := httptest.NewRecorder()
		handler.Portfolio(w, testutil.AsUser(req, userID))

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
		}
		result := decodeImportResult(t, w)
		if !result.Success || result.RecordsImported != 1 {
			t.Errorf("unexpected result %+v", result)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/imports/portfolio", strings.NewReader(""))
		w := httptest.NewRecorder()
		handler.Portfolio(w, testutil.AsUser(req, userID))

		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d", w.Code)
		}
		if msg := decodeError(t, w); msg != "CSV file is required" {
			t.Errorf("error = %q", msg)
		}
	})

	t.Run("non-csv filename", func(t *testing.T) {
		req := testutil.NewCSVUploadRequest(t, "/api/imports/portfolio", "posicao.xlsx", portfolioUploadCSV,
			map[string]string{"assetType": "acoes", "date": "31/01/2024"})
		w := httptest.NewRecorder()
		handler.Portfolio(w, testutil.AsUser(req, userID))

		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d", w.Code)
		}
		if msg := decodeError(t, w); msg != "File must be a CSV" {
			t.Errorf("error = %q", msg)
		}
	})

	t.Run("missing asset type", func(t *testing.T) {
		req := testutil.NewCSVUploadRequest(t, "/api/imports/portfolio", "posicao.csv", portfolioUploadCSV,
			map[string]string{"date": "31/01/2024"})
		w := httptest.NewRecorder()
		handler.Portfolio(w, testutil.AsUser(req, userID))

		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d", w.Code)
		}
		if msg := decodeError(t, w); msg != "Asset type is required" {
			t.Errorf("error = %q", msg)
		}
	})

	t.Run("bad date format", func(t *testing.T) {
		req := testutil.NewCSVUploadRequest(t, "/api/imports/portfolio", "posicao.csv", portfolioUploadCSV,
			map[string]string{"assetType": "acoes", "date": "2024-01-31"})
		w := httptest.NewRecorder()
		handler.Portfolio(w, testutil.AsUser(req, userID))

		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d", w.Code)
		}
		if msg := decodeError(t, w); msg != "Invalid date format. Use DD/MM/YYYY" {
			t.Errorf("error = %q", msg)
		}
	})

	t.Run("unknown asset type", func(t *testing.T) {
		req := testutil.NewCSVUploadRequest(t, "/api/imports/portfolio", "posicao.csv", portfolioUploadCSV,
			map[string]string{"assetType": "crypto", "date": "31/01/2024"})
		w := httptest.NewRecorder()
		handler.Portfolio(w, testutil.AsUser(req, userID))

		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d", w.Code)
		}
		if msg := decodeError(t, w); msg != "Invalid asset type" {
			t.Errorf("error = %q", msg)
		}
	})

	t.Run("file with no data rows", func(t *testing.T) {
		header := "Produto,Código de Negociação,Quantidade\n"
		req := testutil.NewCSVUploadRequest(t, "/api/imports/portfolio", "posicao.csv", header,
			map[string]string{"assetType": "acoes", "date": "31/01/2024"})
		w := httptest.NewRecorder()
		handler.Portfolio(w, testutil.AsUser(req, userID))

		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
		}
	})
}

func TestImportHandlerProventos(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := handlers.NewImportHandler(testutil.NewTestImportService(t, db))
	userID := testutil.CreateTestUser(t, db)

	t.Run("valid upload imports records", func(t *testing.T) {
		req := testutil.NewCSVUploadRequest(t, "/api/imports/proventos", "proventos.csv", proventosUploadCSV, nil)
		w := httptest.NewRecorder()
		handler.Proventos(w, testutil.AsUser(req, userID))

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
		}
		result := decodeImportResult(t, w)
		if result.RecordsImported != 1 {
			t.Errorf("unexpected result %+v", result)
		}
	})

	t.Run("re-upload reports duplicates with 200", func(t *testing.T) {
		req := testutil.NewCSVUploadRequest(t, "/api/imports/proventos", "proventos.csv", proventosUploadCSV, nil)
		w := httptest.NewRecorder()
		handler.Proventos(w, testutil.AsUser(req, userID))

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d", w.Code)
		}
		result := decodeImportResult(t, w)
		if result.Success || result.RecordsDeleted != 1 {
			t.Errorf("unexpected result %+v", result)
		}
		if result.Message != "Nenhum registro foi importado" {
			t.Errorf("message = %q", result.Message)
		}
	})

	t.Run("structural failure returns the result with 400", func(t *testing.T) {
		req := testutil.NewCSVUploadRequest(t, "/api/imports/proventos", "vazio.csv", "Produto,Pagamento\n", nil)
		w := httptest.NewRecorder()
		handler.Proventos(w, testutil.AsUser(req, userID))

		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
		}
	})
}

func TestImportHandlerMovimentacoes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := handlers.NewImportHandler(testutil.NewTestImportService(t, db))
	userID := testutil.CreateTestUser(t, db)

	t.Run("valid upload appends records", func(t *testing.T) {
		req := testutil.NewCSVUploadRequest(t, "/api/imports/movimentacoes", "mov.csv", movimentacoesUploadCSV, nil)
		w := httptest.NewRecorder()
		handler.Movimentacoes(w, testutil.AsUser(req, userID))

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
		}
		result := decodeImportResult(t, w)
		if !result.Success || result.Message != "Importação realizada com sucesso" {
			t.Errorf("unexpected result %+v", result)
		}
	})

	t.Run("missing file returns an import result body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/imports/movimentacoes", strings.NewReader(""))
		w := httptest.NewRecorder()
		handler.Movimentacoes(w, testutil.AsUser(req, userID))

		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d", w.Code)
		}
		result := decodeImportResult(t, w)
		if result.Message != "Falha na importação" {
			t.Errorf("message = %q", result.Message)
		}
		if len(result.Errors) != 1 || result.Errors[0] != "Nenhum arquivo enviado" {
			t.Errorf("errors = %v", result.Errors)
		}
	})

	t.Run("missing column fails with its message", func(t *testing.T) {
		csv := "Entrada/Saída,Data Movimentação,Produto\nCrédito,15/05/2024,PETR4"
		req := testutil.NewCSVUploadRequest(t, "/api/imports/movimentacoes", "mov.csv", csv, nil)
		w := httptest.NewRecorder()
		handler.Movimentacoes(w, testutil.AsUser(req, userID))

		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d", w.Code)
		}
		result := decodeImportResult(t, w)
		if result.Message != "Falha na importação" || len(result.Errors) != 1 {
			t.Errorf("unexpected result %+v", result)
		}
	})
}
