package testutil

import (
	"database/sql"
	"testing"
	"time"

	"carteirab3/internal/model"
	"carteirab3/internal/repository"
)

// ProventoBuilder provides a fluent interface for creating test income
// events.
//
// Example usage:
//
//	rec := testutil.NewProvento(userID).
//	    WithTicker("PETR4").
//	    WithValorLiquido(25.0).
//	    Build(t, db)
type ProventoBuilder struct {
	rec model.ProventoRecord
}

// NewProvento creates a ProventoBuilder with sensible defaults.
func NewProvento(userID string) *ProventoBuilder {
	valor := 10.0
	return &ProventoBuilder{rec: model.ProventoRecord{
		UserID:           userID,
		CodigoNegociacao: "PETR4",
		ProdutoDescricao: "PETR4 - PETROBRAS",
		DataPagamento:    MakeDate(2024, 5, 15),
		ValorLiquido:     &valor,
	}}
}

// WithTicker sets the trading code and a matching product description.
func (b *ProventoBuilder) WithTicker(ticker string) *ProventoBuilder {
	b.rec.CodigoNegociacao = ticker
	b.rec.ProdutoDescricao = ticker + " - " + ticker
	return b
}

// WithDataPagamento sets the payment date.
func (b *ProventoBuilder) WithDataPagamento(d time.Time) *ProventoBuilder {
	b.rec.DataPagamento = d
	return b
}

// WithValorLiquido sets the net value.
func (b *ProventoBuilder) WithValorLiquido(v float64) *ProventoBuilder {
	b.rec.ValorLiquido = &v
	return b
}

// Build inserts the record and returns it.
func (b *ProventoBuilder) Build(t *testing.T, db *sql.DB) model.ProventoRecord {
	t.Helper()

	if err := repository.NewProventoRepository(db).Insert(b.rec); err != nil {
		t.Fatalf("Failed to insert test provento: %v", err)
	}
	return b.rec
}

// MovimentacaoBuilder provides a fluent interface for creating test ledger
// movements.
type MovimentacaoBuilder struct {
	rec model.MovimentacaoRecord
}

// NewMovimentacao creates a MovimentacaoBuilder with sensible defaults.
func NewMovimentacao(userID string) *MovimentacaoBuilder {
	return &MovimentacaoBuilder{rec: model.MovimentacaoRecord{
		UserID:           userID,
		EntradaSaida:     model.MovimentacaoCredito,
		DataMovimentacao: MakeDate(2024, 5, 15),
		Produto:          "PETR4 - PETROBRAS",
		Instituicao:      "XP INVESTIMENTOS",
		Quantidade:       100,
		PrecoUnitario:    30.50,
		ValorOperacao:    3050,
		CodigoNegociacao: "PETR4",
	}}
}

// WithTicker sets the trading code and a matching product description.
func (b *MovimentacaoBuilder) WithTicker(ticker string) *MovimentacaoBuilder {
	b.rec.CodigoNegociacao = ticker
	b.rec.Produto = ticker + " - " + ticker
	return b
}

// WithData sets the movement date.
func (b *MovimentacaoBuilder) WithData(d time.Time) *MovimentacaoBuilder {
	b.rec.DataMovimentacao = d
	return b
}

// Debito flips the movement direction.
func (b *MovimentacaoBuilder) Debito() *MovimentacaoBuilder {
	b.rec.EntradaSaida = model.MovimentacaoDebito
	return b
}

// WithValorOperacao sets the operation value.
func (b *MovimentacaoBuilder) WithValorOperacao(v float64) *MovimentacaoBuilder {
	b.rec.ValorOperacao = v
	return b
}

// Build inserts the record and returns it.
func (b *MovimentacaoBuilder) Build(t *testing.T, db *sql.DB) model.MovimentacaoRecord {
	t.Helper()

	if err := repository.NewMovimentacaoRepository(db).BulkInsert([]model.MovimentacaoRecord{b.rec}); err != nil {
		t.Fatalf("Failed to insert test movimentacao: %v", err)
	}
	return b.rec
}

// CreateCategoria registers a trading-code mapping and returns it.
func CreateCategoria(t *testing.T, db *sql.DB, ticker string, tipo model.TipoAtivo) model.CategoriaAtivo {
	t.Helper()

	cat, err := repository.NewCategoriaRepository(db).Create(ticker, tipo)
	if err != nil {
		t.Fatalf("Failed to insert test categoria: %v", err)
	}
	return cat
}
