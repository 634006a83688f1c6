package model

import "time"

// TipoMovimentacao is the direction of a ledger movement.
type TipoMovimentacao string

const (
	MovimentacaoCredito TipoMovimentacao = "CREDITO"
	MovimentacaoDebito  TipoMovimentacao = "DEBITO"
)

// MovimentacaoRecord is one cash or asset movement from a brokerage
// statement. Movements are append-only: imports never deduplicate them.
type MovimentacaoRecord struct {
	ID               int64            `json:"id"`
	UserID           string           `json:"-"`
	EntradaSaida     TipoMovimentacao `json:"entradaSaida"`
	DataMovimentacao time.Time        `json:"dataMovimentacao"`
	Produto          string           `json:"produto"`
	Instituicao      string           `json:"instituicao"`
	Quantidade       float64          `json:"quantidade"`
	PrecoUnitario    float64          `json:"precoUnitario"`
	ValorOperacao    float64          `json:"valorOperacao"`
	CodigoNegociacao string           `json:"codigoNegociacao"`
}
