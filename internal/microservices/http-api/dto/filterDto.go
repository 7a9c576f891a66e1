package dto

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"comicvault/internal/microservices/http-api/models"
)

// ParseComicFilter builds the filter for GET /comics/filter from the title,
// author, volume and publisher query parameters. Blank parameters are left
// out of the filter entirely.
func ParseComicFilter(values url.Values) (models.ComicFilter, error) {
	var f models.ComicFilter

	if v := strings.TrimSpace(values.Get("title")); v != "" {
		f.Title = &v
	}
	if v := strings.TrimSpace(values.Get("author")); v != "" {
		f.Author = &v
	}
	if v := strings.TrimSpace(values.Get("publisher")); v != "" {
		f.Publisher = &v
	}
	if v := strings.TrimSpace(values.Get("volume")); v != "" {
		volume, err := strconv.Atoi(v)
		if err != nil {
			return models.ComicFilter{}, fmt.Errorf("volume must be an integer, got %q", v)
		}
		f.Volume = &volume
	}
	return f, nil
}
