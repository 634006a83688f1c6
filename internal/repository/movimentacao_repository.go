package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"carteirab3/internal/model"
)

// MovimentacaoRepository provides data access methods for the movimentacao
// table.
type MovimentacaoRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewMovimentacaoRepository creates a new MovimentacaoRepository with the
// provided database connection.
func NewMovimentacaoRepository(db *sql.DB) *MovimentacaoRepository {
	return &MovimentacaoRepository{db: db}
}

func (r *MovimentacaoRepository) WithTx(tx *sql.Tx) *MovimentacaoRepository {
	return &MovimentacaoRepository{db: r.db, tx: tx}
}

func (r *MovimentacaoRepository) getQuerier() interface {
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
	Exec(query string, args ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// BulkInsert appends all movements. The ledger is append-only, so there is
// no duplicate guard here.
func (r *MovimentacaoRepository) BulkInsert(records []model.MovimentacaoRecord) error {
	q := r.getQuerier()
	for _, rec := range records {
		_, err := q.Exec(`
			INSERT INTO movimentacao (
				user_id, entrada_saida, data_movimentacao, produto, instituicao,
				quantidade, preco_unitario, valor_operacao, codigo_negociacao
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			rec.UserID, string(rec.EntradaSaida), rec.DataMovimentacao.Format(dateLayout),
			rec.Produto, rec.Instituicao, rec.Quantidade, rec.PrecoUnitario,
			rec.ValorOperacao, rec.CodigoNegociacao)
		if err != nil {
			return fmt.Errorf("failed to insert movimentacao: %w", err)
		}
	}
	return nil
}

// MovimentacaoFilter narrows movement listings. TickersIn restricts to an
// explicit set of trading codes (used for asset-type filtering through the
// category mapping); nil means no restriction, an empty non-nil slice
// matches nothing.
type MovimentacaoFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Ticker    string // case-insensitive substring match
	TickersIn []string
}

func (f MovimentacaoFilter) where() (string, []any) {
	clause := "WHERE user_id = ?"
	var args []any
	if f.StartDate != nil && f.EndDate != nil {
		clause += " AND data_movimentacao >= ? AND data_movimentacao <= ?"
		args = append(args, f.StartDate.Format(dateLayout), f.EndDate.Format(dateLayout))
	}
	if f.Ticker != "" {
		clause += " AND codigo_negociacao LIKE ? COLLATE NOCASE"
		args = append(args, "%"+f.Ticker+"%")
	}
	if f.TickersIn != nil {
		if len(f.TickersIn) == 0 {
			clause += " AND 1 = 0"
		} else {
			placeholders := strings.TrimSuffix(strings.Repeat("?,", len(f.TickersIn)), ",")
			clause += " AND codigo_negociacao IN (" + placeholders + ")"
			for _, t := range f.TickersIn {
				args = append(args, t)
			}
		}
	}
	return clause, args
}

// movimentacaoSortColumns whitelists user-supplied sort keys.
var movimentacaoSortColumns = map[string]string{
	"dataMovimentacao": "data_movimentacao",
	"codigoNegociacao": "codigo_negociacao",
	"valorOperacao":    "valor_operacao",
	"quantidade":       "quantidade",
	"precoUnitario":    "preco_unitario",
	"entradaSaida":     "entrada_saida",
}

// ListPage returns one page of movements. sortBy must be one of the
// whitelisted keys; anything else falls back to movement date descending.
func (r *MovimentacaoRepository) ListPage(userID string, filter MovimentacaoFilter, sortBy, sortDir string, page, pageSize int) ([]model.MovimentacaoRecord, error) {
	column, ok := movimentacaoSortColumns[sortBy]
	if !ok {
		column = "data_movimentacao"
	}
	dir := "DESC"
	if sortDir == "asc" {
		dir = "ASC"
	}

	clause, filterArgs := filter.where()
	args := append([]any{userID}, filterArgs...)
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := r.getQuerier().Query(fmt.Sprintf(`
		SELECT id, user_id, entrada_saida, data_movimentacao, produto, instituicao,
			quantidade, preco_unitario, valor_operacao, codigo_negociacao
		FROM movimentacao %s
		ORDER BY %s %s, id DESC
		LIMIT ? OFFSET ?`, clause, column, dir), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query movimentacoes: %w", err)
	}
	defer rows.Close()

	records := []model.MovimentacaoRecord{}
	for rows.Next() {
		var rec model.MovimentacaoRecord
		var entradaSaida, dataMovimentacao string

		err := rows.Scan(&rec.ID, &rec.UserID, &entradaSaida, &dataMovimentacao,
			&rec.Produto, &rec.Instituicao, &rec.Quantidade, &rec.PrecoUnitario,
			&rec.ValorOperacao, &rec.CodigoNegociacao)
		if err != nil {
			return nil, fmt.Errorf("failed to scan movimentacao: %w", err)
		}
		rec.EntradaSaida = model.TipoMovimentacao(entradaSaida)
		rec.DataMovimentacao, err = ParseTime(dataMovimentacao)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Count returns how many movements match the filter.
func (r *MovimentacaoRepository) Count(userID string, filter MovimentacaoFilter) (int, error) {
	clause, filterArgs := filter.where()
	args := append([]any{userID}, filterArgs...)

	var count int
	err := r.getQuerier().QueryRow(
		"SELECT COUNT(*) FROM movimentacao "+clause, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count movimentacoes: %w", err)
	}
	return count, nil
}

// SumValorOperacao totals the operation value of the movements matching the
// filter.
func (r *MovimentacaoRepository) SumValorOperacao(userID string, filter MovimentacaoFilter) (float64, error) {
	clause, filterArgs := filter.where()
	args := append([]any{userID}, filterArgs...)

	var sum float64
	err := r.getQuerier().QueryRow(
		"SELECT COALESCE(SUM(valor_operacao), 0) FROM movimentacao "+clause, args...).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("failed to sum movimentacoes: %w", err)
	}
	return sum, nil
}

// Delete removes one movement owned by the user. Returns sql.ErrNoRows when
// nothing matched.
func (r *MovimentacaoRepository) Delete(id int64, userID string) error {
	result, err := r.getQuerier().Exec(
		"DELETE FROM movimentacao WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete movimentacao: %w", err)
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
