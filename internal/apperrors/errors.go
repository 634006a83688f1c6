package apperrors

import "errors"

// Parsing errors raised while normalizing statement CSVs. They are wrapped
// with the offending raw text (and line number where applicable) at the call
// site, so errors.Is still matches the sentinel.
var (
	// ErrInvalidNumber indicates a numeric/currency token that could not be
	// normalized into a float.
	ErrInvalidNumber = errors.New("invalid numeric value")

	// ErrInvalidDate indicates a malformed or calendar-invalid DD/MM/YYYY date.
	ErrInvalidDate = errors.New("invalid date")

	// ErrMissingColumn indicates a structurally required CSV column is absent
	// from the header. Raised before any row is parsed.
	ErrMissingColumn = errors.New("missing required column")

	// ErrEmptyFile indicates the CSV has no header or no data rows.
	ErrEmptyFile = errors.New("CSV file is empty or has no data rows")

	// ErrTickerNotFound indicates no trading code could be derived from the
	// product description.
	ErrTickerNotFound = errors.New("could not extract trading code")

	// ErrRowErrors aggregates per-row failures of an all-or-nothing import.
	ErrRowErrors = errors.New("row parsing errors")

	// ErrNoRecords indicates parsing completed but produced zero valid records.
	ErrNoRecords = errors.New("no valid records found in CSV")
)

// Business and entity errors.
var (
	// ErrRecordNotFound indicates a requested record does not exist or is not
	// owned by the requesting user.
	ErrRecordNotFound = errors.New("record not found")

	// ErrCategoriaNotFound indicates an asset category with the given ID does
	// not exist.
	ErrCategoriaNotFound = errors.New("asset category not found")

	// ErrDuplicateCategoria indicates the trading code is already registered.
	ErrDuplicateCategoria = errors.New("trading code already registered")

	// ErrInvalidTipoAtivo indicates an unknown asset-type value.
	ErrInvalidTipoAtivo = errors.New("invalid asset type")

	// ErrInvalidCredentials indicates a failed login attempt.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrSessionExpired indicates a session token that is missing, invalid,
	// or past its TTL.
	ErrSessionExpired = errors.New("session is invalid or expired")
)

// Operation failure errors surfaced by handlers as 500s.
var (
	ErrFailedToImport           = errors.New("failed to import records")
	ErrFailedToRetrieveRecords  = errors.New("failed to retrieve records")
	ErrFailedToDeleteRecord     = errors.New("failed to delete record")
	ErrFailedToRetrieveChart    = errors.New("failed to retrieve chart data")
	ErrFailedToManageCategorias = errors.New("failed to manage asset categories")
)
