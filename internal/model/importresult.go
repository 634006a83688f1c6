package model

// ImportResult is the uniform outcome of every import operation.
//
// RecordsDeleted doubles as the "skipped duplicates" counter for provento
// imports, matching the statement-import contract the dashboard consumes.
type ImportResult struct {
	Success         bool     `json:"success"`
	RecordsImported int      `json:"recordsImported"`
	RecordsDeleted  int      `json:"recordsDeleted"`
	Errors          []string `json:"errors"`
	Message         string   `json:"message"`
}
