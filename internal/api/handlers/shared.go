package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
)

// maxUploadSize caps statement uploads at 10 MiB.
const maxUploadSize = 10 << 20

// parseJSON decodes a JSON request body into dst.
func parseJSON(r *http.Request, dst interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(dst)
}

// csvFromRequest extracts the uploaded CSV from the multipart "file" field.
// The second return value is a user-facing validation message; empty means
// the upload is valid.
func csvFromRequest(r *http.Request) (string, string) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return "", "CSV file is required"
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return "", "CSV file is required"
	}
	defer file.Close()

	if !strings.HasSuffix(strings.ToLower(header.Filename), ".csv") {
		return "", "File must be a CSV"
	}

	content, err := io.ReadAll(io.LimitReader(file, maxUploadSize+1))
	if err != nil {
		return "", "Failed to read uploaded file"
	}
	if len(content) > maxUploadSize {
		return "", "File exceeds the 10 MiB limit"
	}
	return string(content), ""
}
