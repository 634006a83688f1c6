package model

import "time"

// ProventoRecord is one income/dividend event tied to a holding.
//
// CodigoNegociacao is always derived from ProdutoDescricao by the ticker
// extractor, never supplied independently. The tuple
// (UserID, CodigoNegociacao, DataPagamento, Instituicao, TipoEvento) is the
// identity key used to skip duplicates on re-import.
type ProventoRecord struct {
	ID               int64     `json:"id"`
	UserID           string    `json:"-"`
	CodigoNegociacao string    `json:"codigoNegociacao"`
	ProdutoDescricao string    `json:"produtoDescricao"`
	DataPagamento    time.Time `json:"dataPagamento"`
	TipoEvento       *string   `json:"tipoEvento"`
	Instituicao      *string   `json:"instituicao"`
	Quantidade       *float64  `json:"quantidade"`
	PrecoUnitario    *float64  `json:"precoUnitario"`
	ValorLiquido     *float64  `json:"valorLiquido"`
}
