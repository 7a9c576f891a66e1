package validation

import (
	"strings"

	"comicvault/internal/microservices/http-api/dto"
)

// SanitizeComic trims every string field in place. Condition is also
// lower-cased so it matches the enum spelling, and blank tags are dropped.
func SanitizeComic(in *dto.ComicInput) {
	in.Title = strings.TrimSpace(in.Title)
	in.Author = strings.TrimSpace(in.Author)
	trimPtr(in.Publisher)
	trimPtr(in.Genre)
	trimPtr(in.Notes)
	trimPtr(in.ReleaseDate)
	lowerPtr(in.Condition)
	in.Tags = cleanTags(in.Tags)
}

func SanitizeUpdate(in *dto.UpdateComicInput) {
	trimPtr(in.Title)
	trimPtr(in.Author)
	trimPtr(in.Publisher)
	trimPtr(in.Genre)
	trimPtr(in.Notes)
	trimPtr(in.ReleaseDate)
	lowerPtr(in.Condition)
	in.Tags = cleanTags(in.Tags)
}

func trimPtr(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}

func lowerPtr(s *string) {
	if s != nil {
		*s = strings.ToLower(strings.TrimSpace(*s))
	}
}

func cleanTags(tags []string) []string {
	if tags == nil {
		return nil
	}
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
