package repository

import (
	"database/sql"
	"fmt"
	"time"

	"carteirab3/internal/model"
)

// ProventoRepository provides data access methods for the
// proventos_consolidado table.
type ProventoRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewProventoRepository creates a new ProventoRepository with the provided
// database connection.
func NewProventoRepository(db *sql.DB) *ProventoRepository {
	return &ProventoRepository{db: db}
}

func (r *ProventoRepository) WithTx(tx *sql.Tx) *ProventoRepository {
	return &ProventoRepository{db: r.db, tx: tx}
}

func (r *ProventoRepository) getQuerier() interface {
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
	Exec(query string, args ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// Exists reports whether a record with the same identity key
// (user, trading code, payment date, institution, event type) is already
// stored. NULL institution/event compare as equal to NULL.
func (r *ProventoRepository) Exists(rec model.ProventoRecord) (bool, error) {
	var count int
	err := r.getQuerier().QueryRow(`
		SELECT COUNT(*) FROM proventos_consolidado
		WHERE user_id = ? AND codigo_negociacao = ? AND data_pagamento = ?
		  AND instituicao IS ? AND tipo_evento IS ?`,
		rec.UserID, rec.CodigoNegociacao, rec.DataPagamento.Format(dateLayout),
		rec.Instituicao, rec.TipoEvento).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check provento existence: %w", err)
	}
	return count > 0, nil
}

// Insert stores one income event.
func (r *ProventoRepository) Insert(rec model.ProventoRecord) error {
	_, err := r.getQuerier().Exec(`
		INSERT INTO proventos_consolidado (
			user_id, codigo_negociacao, produto_descricao, data_pagamento,
			tipo_evento, instituicao, quantidade, preco_unitario, valor_liquido
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.UserID, rec.CodigoNegociacao, rec.ProdutoDescricao,
		rec.DataPagamento.Format(dateLayout), rec.TipoEvento, rec.Instituicao,
		rec.Quantidade, rec.PrecoUnitario, rec.ValorLiquido)
	if err != nil {
		return fmt.Errorf("failed to insert provento: %w", err)
	}
	return nil
}

// ProventoFilter narrows income listings. Zero values mean "no filter".
// Ticker and Instituicao are case-insensitive substring matches.
type ProventoFilter struct {
	DataPagamento *time.Time
	Ticker        string
	Instituicao   string
}

func (f ProventoFilter) where() (string, []any) {
	clause := "WHERE user_id = ?"
	var args []any
	if f.DataPagamento != nil {
		clause += " AND data_pagamento = ?"
		args = append(args, f.DataPagamento.Format(dateLayout))
	}
	if f.Ticker != "" {
		clause += " AND codigo_negociacao LIKE ? COLLATE NOCASE"
		args = append(args, "%"+f.Ticker+"%")
	}
	if f.Instituicao != "" {
		clause += " AND instituicao LIKE ? COLLATE NOCASE"
		args = append(args, "%"+f.Instituicao+"%")
	}
	return clause, args
}

// proventoSortColumns whitelists user-supplied sort keys.
var proventoSortColumns = map[string]string{
	"dataPagamento":    "data_pagamento",
	"codigoNegociacao": "codigo_negociacao",
	"valorLiquido":     "valor_liquido",
	"tipoEvento":       "tipo_evento",
	"quantidade":       "quantidade",
	"precoUnitario":    "preco_unitario",
	"instituicao":      "instituicao",
}

// ListPage returns one page of income events. sortBy must be one of the
// whitelisted keys; anything else falls back to payment date descending.
func (r *ProventoRepository) ListPage(userID string, filter ProventoFilter, sortBy, sortDir string, page, pageSize int) ([]model.ProventoRecord, error) {
	column, ok := proventoSortColumns[sortBy]
	if !ok {
		column = "data_pagamento"
	}
	dir := "DESC"
	if sortDir == "asc" {
		dir = "ASC"
	}

	clause, filterArgs := filter.where()
	args := append([]any{userID}, filterArgs...)
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := r.getQuerier().Query(fmt.Sprintf(`
		SELECT id, user_id, codigo_negociacao, produto_descricao, data_pagamento,
			tipo_evento, instituicao, quantidade, preco_unitario, valor_liquido
		FROM proventos_consolidado %s
		ORDER BY %s %s, id ASC
		LIMIT ? OFFSET ?`, clause, column, dir), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query proventos: %w", err)
	}
	defer rows.Close()

	records := []model.ProventoRecord{}
	for rows.Next() {
		var rec model.ProventoRecord
		var dataPagamento string
		var tipoEvento, instituicao sql.NullString
		var quantidade, precoUnitario, valorLiquido sql.NullFloat64

		err := rows.Scan(&rec.ID, &rec.UserID, &rec.CodigoNegociacao, &rec.ProdutoDescricao,
			&dataPagamento, &tipoEvento, &instituicao, &quantidade, &precoUnitario, &valorLiquido)
		if err != nil {
			return nil, fmt.Errorf("failed to scan provento: %w", err)
		}
		rec.DataPagamento, err = ParseTime(dataPagamento)
		if err != nil {
			return nil, err
		}
		rec.TipoEvento = strPtr(tipoEvento)
		rec.Instituicao = strPtr(instituicao)
		rec.Quantidade = floatPtr(quantidade)
		rec.PrecoUnitario = floatPtr(precoUnitario)
		rec.ValorLiquido = floatPtr(valorLiquido)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Count returns how many income events match the filter.
func (r *ProventoRepository) Count(userID string, filter ProventoFilter) (int, error) {
	clause, filterArgs := filter.where()
	args := append([]any{userID}, filterArgs...)

	var count int
	err := r.getQuerier().QueryRow(
		"SELECT COUNT(*) FROM proventos_consolidado "+clause, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count proventos: %w", err)
	}
	return count, nil
}

// SumValorLiquido totals the net value of the events matching the filter.
func (r *ProventoRepository) SumValorLiquido(userID string, filter ProventoFilter) (float64, error) {
	clause, filterArgs := filter.where()
	args := append([]any{userID}, filterArgs...)

	var sum float64
	err := r.getQuerier().QueryRow(
		"SELECT COALESCE(SUM(valor_liquido), 0) FROM proventos_consolidado "+clause, args...).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("failed to sum proventos: %w", err)
	}
	return sum, nil
}

// Delete removes one income event owned by the user. Returns sql.ErrNoRows
// when nothing matched.
func (r *ProventoRepository) Delete(id int64, userID string) error {
	result, err := r.getQuerier().Exec(
		"DELETE FROM proventos_consolidado WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete provento: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to count deleted rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// MonthlySums returns total net income grouped by month since the cutoff,
// oldest first. Each point is dated on the first of its month so the chart
// can parse it as a full date. A zero cutoff means the full history.
func (r *ProventoRepository) MonthlySums(userID string, since time.Time) ([]model.SeriesPoint, error) {
	query := `
		SELECT strftime('%Y-%m', data_pagamento) || '-01' AS month,
			COALESCE(SUM(valor_liquido), 0)
		FROM proventos_consolidado
		WHERE user_id = ?`
	args := []any{userID}
	if !since.IsZero() {
		query += " AND data_pagamento >= ?"
		args = append(args, since.Format(dateLayout))
	}
	query += " GROUP BY month ORDER BY month ASC"

	rows, err := r.getQuerier().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly sums: %w", err)
	}
	defer rows.Close()

	points := []model.SeriesPoint{}
	for rows.Next() {
		var p model.SeriesPoint
		if err := rows.Scan(&p.Date, &p.Value); err != nil {
			return nil, fmt.Errorf("failed to scan monthly sum: %w", err)
		}
		points = append(points, p)
	}
	return points, rows.Err()
}
