// Package handler — export.go implements GET /logs/{date}/export.
// Returns the day log flattened to one row per hour slot.
// Supports content negotiation via ?format=csv (CSV) or default (JSON).
package handler

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/openeld/eld-dashboard/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{"date", "start_time", "end_time", "status", "location"}

// exportRow is the JSON shape of one exported hour slot.
type exportRow struct {
	Date      openapi_types.Date `json:"date"`
	StartTime string             `json:"start_time"`
	EndTime   string             `json:"end_time"`
	Status    string             `json:"status,omitempty"`
	Location  string             `json:"location,omitempty"`
}

// ExportLog handles GET /logs/{date}/export.
// It returns the 24 hour slots as a flat table, one row per hour.
// Use ?format=csv to receive CSV; default is JSON.
func (s *Server) ExportLog(w http.ResponseWriter, r *http.Request) {
	rows, err := s.logs.Export(r.Context(), chi.URLParam(r, "date"))
	if err != nil {
		writeError(w, err)
		return
	}

	if r.URL.Query().Get("format") == "csv" {
		writeCSVExport(w, rows)
		return
	}
	writeJSON(w, http.StatusOK, buildJSONExport(rows))
}

// buildJSONExport converts domain rows to the typed JSON response.
func buildJSONExport(rows []domain.ExportRow) []exportRow {
	out := make([]exportRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, exportRow{
			Date:      mustParseDate(r.Date),
			StartTime: r.StartTime,
			EndTime:   r.EndTime,
			Status:    r.Status,
			Location:  r.Location,
		})
	}
	return out
}

// writeCSVExport encodes domain rows as CSV.
func writeCSVExport(w http.ResponseWriter, rows []domain.ExportRow) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	//nolint:errcheck — bytes.Buffer.Write never returns an error.
	cw.Write(csvHeaders)
	for _, r := range rows {
		//nolint:errcheck
		cw.Write([]string{r.Date, r.StartTime, r.EndTime, r.Status, r.Location})
	}
	cw.Flush()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Length", fmt.Sprint(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// mustParseDate parses a "2006-01-02" string into an openapi_types.Date.
// Panics on malformed input; callers are expected to pass service-generated dates.
func mustParseDate(s string) openapi_types.Date {
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		panic("handler: malformed date from service: " + s)
	}
	return openapi_types.Date{Time: t}
}
