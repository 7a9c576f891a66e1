// Package export serializes the comic collection for download.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"comicvault/internal/microservices/http-api/dto"
	"comicvault/internal/microservices/http-api/models"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// ErrUnknownFormat is returned by ParseFormat for anything outside json/csv.
type ErrUnknownFormat struct {
	Raw string
}

func (e *ErrUnknownFormat) Error() string {
	if e.Raw == "" {
		return "format query parameter is required (json or csv)"
	}
	return fmt.Sprintf("unsupported export format %q (json or csv)", e.Raw)
}

func ParseFormat(raw string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(raw))); f {
	case FormatJSON, FormatCSV:
		return f, nil
	default:
		return "", &ErrUnknownFormat{Raw: raw}
	}
}

func (f Format) Extension() string {
	return string(f)
}

func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	default:
		return "application/json; charset=utf-8"
	}
}

// Filename is the download name, e.g. comics-export-20260102-150405.csv.
func Filename(f Format, at time.Time) string {
	return fmt.Sprintf("comics-export-%s.%s", at.UTC().Format("20060102-150405"), f.Extension())
}

// Write serializes comics to w in format f.
func Write(w io.Writer, f Format, comics []models.Comic) error {
	switch f {
	case FormatJSON:
		return writeJSON(w, comics)
	case FormatCSV:
		return writeCSV(w, comics)
	default:
		return &ErrUnknownFormat{Raw: string(f)}
	}
}

func writeJSON(w io.Writer, comics []models.Comic) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(dto.FromModelsToResponse(comics))
}

var csvHeader = []string{
	"id", "title", "author", "issue", "volume", "publisher", "releaseDate",
	"rating", "purchasePrice", "currentValue", "condition", "isRead", "genre",
	"tags", "notes", "createdAt", "updatedAt",
}

func writeCSV(w io.Writer, comics []models.Comic) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, c := range comics {
		r := dto.FromModelToResponse(c)
		row := []string{
			r.ID,
			r.Title,
			r.Author,
			intCell(r.Issue),
			intCell(r.Volume),
			strCell(r.Publisher),
			strCell(r.ReleaseDate),
			floatCell(r.Rating),
			floatCell(r.PurchasePrice),
			floatCell(r.CurrentValue),
			strCell(r.Condition),
			strconv.FormatBool(r.IsRead),
			strCell(r.Genre),
			strings.Join(r.Tags, ";"),
			strCell(r.Notes),
			r.CreatedAt,
			r.UpdatedAt,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func strCell(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func intCell(i *int) string {
	if i == nil {
		return ""
	}
	return strconv.Itoa(*i)
}

func floatCell(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}
