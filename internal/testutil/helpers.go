package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"

	"carteirab3/internal/repository"
	"carteirab3/internal/service"
)

// MakeID generates a unique identifier for test entities.
func MakeID() string {
	return uuid.New().String()
}

// MakeDate builds a UTC midnight date the way imported dates are stored.
func MakeDate(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// CreateTestUser inserts a user row and returns its ID. Imported records
// reference it via foreign key.
func CreateTestUser(t *testing.T, db *sql.DB) string {
	t.Helper()

	id := MakeID()
	_, err := db.Exec(
		"INSERT INTO usuario (id, email, password_hash, role) VALUES (?, ?, ?, 'ADMIN')",
		id, id+"@test.local", "x")
	if err != nil {
		t.Fatalf("Failed to insert test user: %v", err)
	}
	return id
}

func NewTestImportService(t *testing.T, db *sql.DB) *service.ImportService {
	t.Helper()

	return service.NewImportService(
		db,
		repository.NewPortfolioRepository(db),
		repository.NewProventoRepository(db),
		repository.NewMovimentacaoRepository(db),
	)
}

func NewTestReviewService(t *testing.T, db *sql.DB) *service.ReviewService {
	t.Helper()

	return service.NewReviewService(
		repository.NewPortfolioRepository(db),
		repository.NewProventoRepository(db),
		repository.NewMovimentacaoRepository(db),
		repository.NewCategoriaRepository(db),
	)
}

func NewTestDashboardService(t *testing.T, db *sql.DB) *service.DashboardService {
	t.Helper()

	return service.NewDashboardService(
		repository.NewPortfolioRepository(db),
		repository.NewProventoRepository(db),
	)
}
