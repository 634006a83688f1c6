package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"carteirab3/internal/apperrors"
	"carteirab3/internal/model"
)

// CategoriaRepository provides data access methods for the categoria_ativo
// table.
type CategoriaRepository struct {
	db *sql.DB
}

// NewCategoriaRepository creates a new CategoriaRepository with the provided
// database connection.
func NewCategoriaRepository(db *sql.DB) *CategoriaRepository {
	return &CategoriaRepository{db: db}
}

// List returns every trading-code mapping ordered by trading code.
func (r *CategoriaRepository) List() ([]model.CategoriaAtivo, error) {
	rows, err := r.db.Query(`
		SELECT id, codigo_negociacao, tipo, created_at
		FROM categoria_ativo ORDER BY codigo_negociacao ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query categorias: %w", err)
	}
	defer rows.Close()

	categorias := []model.CategoriaAtivo{}
	for rows.Next() {
		cat, err := scanCategoria(rows.Scan)
		if err != nil {
			return nil, err
		}
		categorias = append(categorias, cat)
	}
	return categorias, rows.Err()
}

// GetByID returns one mapping or apperrors.ErrCategoriaNotFound.
func (r *CategoriaRepository) GetByID(id string) (model.CategoriaAtivo, error) {
	row := r.db.QueryRow(`
		SELECT id, codigo_negociacao, tipo, created_at
		FROM categoria_ativo WHERE id = ?`, id)
	cat, err := scanCategoria(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return cat, apperrors.ErrCategoriaNotFound
	}
	return cat, err
}

// Create inserts a new mapping. A duplicate trading code maps to
// apperrors.ErrDuplicateCategoria.
func (r *CategoriaRepository) Create(codigoNegociacao string, tipo model.TipoAtivo) (model.CategoriaAtivo, error) {
	cat := model.CategoriaAtivo{
		ID:               uuid.New().String(),
		CodigoNegociacao: codigoNegociacao,
		Tipo:             tipo,
		CreatedAt:        time.Now().UTC(),
	}
	_, err := r.db.Exec(`
		INSERT INTO categoria_ativo (id, codigo_negociacao, tipo, created_at)
		VALUES (?, ?, ?, ?)`,
		cat.ID, cat.CodigoNegociacao, string(cat.Tipo), cat.CreatedAt.Format(time.RFC3339))
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return cat, apperrors.ErrDuplicateCategoria
		}
		return cat, fmt.Errorf("failed to insert categoria: %w", err)
	}
	return cat, nil
}

// Update changes a mapping. Empty codigoNegociacao or tipo means "leave
// unchanged". A trading code collision maps to
// apperrors.ErrDuplicateCategoria.
func (r *CategoriaRepository) Update(id string, codigoNegociacao string, tipo model.TipoAtivo) error {
	sets := []string{}
	args := []any{}
	if codigoNegociacao != "" {
		sets = append(sets, "codigo_negociacao = ?")
		args = append(args, codigoNegociacao)
	}
	if tipo != "" {
		sets = append(sets, "tipo = ?")
		args = append(args, string(tipo))
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)

	result, err := r.db.Exec(
		"UPDATE categoria_ativo SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return apperrors.ErrDuplicateCategoria
		}
		return fmt.Errorf("failed to update categoria: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to count updated rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrCategoriaNotFound
	}
	return nil
}

// Delete removes a mapping.
func (r *CategoriaRepository) Delete(id string) error {
	result, err := r.db.Exec("DELETE FROM categoria_ativo WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete categoria: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to count deleted rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrCategoriaNotFound
	}
	return nil
}

// TickersByTipo returns the trading codes mapped to an asset type.
func (r *CategoriaRepository) TickersByTipo(tipo model.TipoAtivo) ([]string, error) {
	rows, err := r.db.Query(
		"SELECT codigo_negociacao FROM categoria_ativo WHERE tipo = ?", string(tipo))
	if err != nil {
		return nil, fmt.Errorf("failed to query tickers by tipo: %w", err)
	}
	defer rows.Close()

	tickers := []string{}
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("failed to scan ticker: %w", err)
		}
		tickers = append(tickers, t)
	}
	return tickers, rows.Err()
}

func scanCategoria(scan func(dest ...any) error) (model.CategoriaAtivo, error) {
	var cat model.CategoriaAtivo
	var tipo, createdAt string
	if err := scan(&cat.ID, &cat.CodigoNegociacao, &tipo, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return cat, err
		}
		return cat, fmt.Errorf("failed to scan categoria: %w", err)
	}
	cat.Tipo = model.TipoAtivo(tipo)
	t, err := parseTimestamp(createdAt)
	if err != nil {
		return cat, err
	}
	cat.CreatedAt = t
	return cat, nil
}
