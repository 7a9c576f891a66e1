package dto

import (
	"time"

	"comicvault/internal/microservices/http-api/models"
)

// DateLayout is the wire format of releaseDate.
const DateLayout = "2006-01-02"

// ComicInput is the body of POST /comics and each element of POST /comics/import.
// Unknown fields are ignored by the JSON decoder.
type ComicInput struct {
	Title         string   `json:"title" validate:"required"`
	Author        string   `json:"author" validate:"required"`
	Issue         *int     `json:"issue,omitempty" validate:"omitnil,gte=0"`
	Volume        *int     `json:"volume,omitempty" validate:"omitnil,gte=0"`
	Rating        *float64 `json:"rating,omitempty" validate:"omitnil,gte=0,lte=10"`
	PurchasePrice *float64 `json:"purchasePrice,omitempty" validate:"omitnil,gte=0"`
	CurrentValue  *float64 `json:"currentValue,omitempty" validate:"omitnil,gte=0"`
	Condition     *string  `json:"condition,omitempty" validate:"omitnil,condition"`
	ReleaseDate   *string  `json:"releaseDate,omitempty" validate:"omitnil,datetime=2006-01-02"`
	Publisher     *string  `json:"publisher,omitempty"`
	IsRead        bool     `json:"isRead"`
	Genre         *string  `json:"genre,omitempty"`
	Tags          []string `json:"tags,omitempty"`
	Notes         *string  `json:"notes,omitempty"`
}

// UpdateComicInput is the body of PUT /comics/:id. Only non-nil fields change.
type UpdateComicInput struct {
	Title         *string  `json:"title,omitempty" validate:"omitnil,min=1"`
	Author        *string  `json:"author,omitempty" validate:"omitnil,min=1"`
	Issue         *int     `json:"issue,omitempty" validate:"omitnil,gte=0"`
	Volume        *int     `json:"volume,omitempty" validate:"omitnil,gte=0"`
	Rating        *float64 `json:"rating,omitempty" validate:"omitnil,gte=0,lte=10"`
	PurchasePrice *float64 `json:"purchasePrice,omitempty" validate:"omitnil,gte=0"`
	CurrentValue  *float64 `json:"currentValue,omitempty" validate:"omitnil,gte=0"`
	Condition     *string  `json:"condition,omitempty" validate:"omitnil,condition"`
	ReleaseDate   *string  `json:"releaseDate,omitempty" validate:"omitnil,datetime=2006-01-02"`
	Publisher     *string  `json:"publisher,omitempty"`
	IsRead        *bool    `json:"isRead,omitempty"`
	Genre         *string  `json:"genre,omitempty"`
	Tags          []string `json:"tags,omitempty"`
	Notes         *string  `json:"notes,omitempty"`
}

// ComicResponse is the JSON shape of a stored comic.
type ComicResponse struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Author        string   `json:"author"`
	Issue         *int     `json:"issue,omitempty"`
	Volume        *int     `json:"volume,omitempty"`
	Publisher     *string  `json:"publisher,omitempty"`
	ReleaseDate   *string  `json:"releaseDate,omitempty"`
	Rating        *float64 `json:"rating,omitempty"`
	PurchasePrice *float64 `json:"purchasePrice,omitempty"`
	CurrentValue  *float64 `json:"currentValue,omitempty"`
	Condition     *string  `json:"condition,omitempty"`
	IsRead        bool     `json:"isRead"`
	Genre         *string  `json:"genre,omitempty"`
	Tags          []string `json:"tags"`
	Notes         *string  `json:"notes,omitempty"`
	CreatedAt     string   `json:"createdAt"`
	UpdatedAt     string   `json:"updatedAt"`
}

// Converters

// ToModel expects an input that already passed validation, so the date and
// condition parse cleanly.
func (d ComicInput) ToModel() models.Comic {
	m := models.Comic{
		Title:         d.Title,
		Author:        d.Author,
		Issue:         d.Issue,
		Volume:        d.Volume,
		Publisher:     d.Publisher,
		Rating:        d.Rating,
		PurchasePrice: d.PurchasePrice,
		CurrentValue:  d.CurrentValue,
		IsRead:        d.IsRead,
		Genre:         d.Genre,
		Tags:          d.Tags,
		Notes:         d.Notes,
	}
	m.ReleaseDate = parseDate(d.ReleaseDate)
	m.Condition = parseCondition(d.Condition)
	if m.Tags == nil {
		m.Tags = []string{}
	}
	return m
}

func (d UpdateComicInput) ToUpdate() models.ComicUpdate {
	return models.ComicUpdate{
		Title:         d.Title,
		Author:        d.Author,
		Issue:         d.Issue,
		Volume:        d.Volume,
		Publisher:     d.Publisher,
		ReleaseDate:   parseDate(d.ReleaseDate),
		Rating:        d.Rating,
		PurchasePrice: d.PurchasePrice,
		CurrentValue:  d.CurrentValue,
		Condition:     parseCondition(d.Condition),
		IsRead:        d.IsRead,
		Genre:         d.Genre,
		Tags:          d.Tags,
		Notes:         d.Notes,
	}
}

func FromModelToResponse(m models.Comic) ComicResponse {
	resp := ComicResponse{
		ID:            m.ID,
		Title:         m.Title,
		Author:        m.Author,
		Issue:         m.Issue,
		Volume:        m.Volume,
		Publisher:     m.Publisher,
		Rating:        m.Rating,
		PurchasePrice: m.PurchasePrice,
		CurrentValue:  m.CurrentValue,
		IsRead:        m.IsRead,
		Genre:         m.Genre,
		Tags:          m.Tags,
		Notes:         m.Notes,
		CreatedAt:     m.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:     m.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if resp.Tags == nil {
		resp.Tags = []string{}
	}
	if m.ReleaseDate != nil {
		s := m.ReleaseDate.Format(DateLayout)
		resp.ReleaseDate = &s
	}
	if m.Condition != nil {
		s := string(*m.Condition)
		resp.Condition = &s
	}
	return resp
}

func FromModelsToResponse(list []models.Comic) []ComicResponse {
	resp := make([]ComicResponse, 0, len(list))
	for _, m := range list {
		resp = append(resp, FromModelToResponse(m))
	}
	return resp
}

func parseDate(raw *string) *time.Time {
	if raw == nil {
		return nil
	}
	t, err := time.Parse(DateLayout, *raw)
	if err != nil {
		return nil
	}
	return &t
}

func parseCondition(raw *string) *models.Condition {
	if raw == nil {
		return nil
	}
	c, err := models.ParseCondition(*raw)
	if err != nil {
		return nil
	}
	return &c
}
