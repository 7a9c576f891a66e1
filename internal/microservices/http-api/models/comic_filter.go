package models

import "time"

// ComicFilter narrows a listing. Nil fields are not part of the query.
// Title, Author and Publisher are case-insensitive substring matches and
// Volume is an exact match.
type ComicFilter struct {
	Title     *string
	Author    *string
	Publisher *string
	Volume    *int
}

func (f ComicFilter) IsEmpty() bool {
	return f.Title == nil && f.Author == nil && f.Publisher == nil && f.Volume == nil
}

// ComicUpdate carries only the fields a partial update supplied.
type ComicUpdate struct {
	Title         *string
	Author        *string
	Issue         *int
	Volume        *int
	Publisher     *string
	ReleaseDate   *time.Time
	Rating        *float64
	PurchasePrice *float64
	CurrentValue  *float64
	Condition     *Condition
	IsRead        *bool
	Genre         *string
	Tags          []string
	Notes         *string
	UpdatedAt     time.Time
}

// ApplyTo copies the supplied fields onto c. ID and CreatedAt never change.
func (u ComicUpdate) ApplyTo(c *Comic) {
	if u.Title != nil {
		c.Title = *u.Title
	}
	if u.Author != nil {
		c.Author = *u.Author
	}
	if u.Issue != nil {
		c.Issue = u.Issue
	}
	if u.Volume != nil {
		c.Volume = u.Volume
	}
	if u.Publisher != nil {
		c.Publisher = u.Publisher
	}
	if u.ReleaseDate != nil {
		c.ReleaseDate = u.ReleaseDate
	}
	if u.Rating != nil {
		c.Rating = u.Rating
	}
	if u.PurchasePrice != nil {
		c.PurchasePrice = u.PurchasePrice
	}
	if u.CurrentValue != nil {
		c.CurrentValue = u.CurrentValue
	}
	if u.Condition != nil {
		c.Condition = u.Condition
	}
	if u.IsRead != nil {
		c.IsRead = *u.IsRead
	}
	if u.Genre != nil {
		c.Genre = u.Genre
	}
	if u.Tags != nil {
		c.Tags = u.Tags
	}
	if u.Notes != nil {
		c.Notes = u.Notes
	}
	if !u.UpdatedAt.IsZero() {
		c.UpdatedAt = u.UpdatedAt
	}
}

// SetFields returns the supplied fields keyed by stored field name, suitable
// for a document $set.
func (u ComicUpdate) SetFields() map[string]any {
	set := make(map[string]any)
	if u.Title != nil {
		set["title"] = *u.Title
	}
	if u.Author != nil {
		set["author"] = *u.Author
	}
	if u.Issue != nil {
		set["issue"] = *u.Issue
	}
	if u.Volume != nil {
		set["volume"] = *u.Volume
	}
	if u.Publisher != nil {
		set["publisher"] = *u.Publisher
	}
	if u.ReleaseDate != nil {
		set["release_date"] = *u.ReleaseDate
	}
	if u.Rating != nil {
		set["rating"] = *u.Rating
	}
	if u.PurchasePrice != nil {
		set["purchase_price"] = *u.PurchasePrice
	}
	if u.CurrentValue != nil {
		set["current_value"] = *u.CurrentValue
	}
	if u.Condition != nil {
		set["condition"] = string(*u.Condition)
	}
	if u.IsRead != nil {
		set["is_read"] = *u.IsRead
	}
	if u.Genre != nil {
		set["genre"] = *u.Genre
	}
	if u.Tags != nil {
		set["tags"] = u.Tags
	}
	if u.Notes != nil {
		set["notes"] = *u.Notes
	}
	if !u.UpdatedAt.IsZero() {
		set["updated_at"] = u.UpdatedAt
	}
	return set
}
