package model

import "time"

// CategoriaAtivo maps a trading code to its asset-type category.
// Maintained by the user; consumed by movement review filtering and the
// dashboard aggregations.
type CategoriaAtivo struct {
	ID               string    `json:"id"`
	CodigoNegociacao string    `json:"codigoNegociacao"`
	Tipo             TipoAtivo `json:"tipo"`
	CreatedAt        time.Time `json:"createdAt"`
}
