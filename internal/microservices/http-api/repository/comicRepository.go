package repository

import (
	"context"
	"errors"

	"comicvault/internal/microservices/http-api/models"
)

var (
	// ErrNotFound is returned when no comic has the requested id.
	ErrNotFound = errors.New("comic not found")
	// ErrDuplicateID is returned when an insert collides with an existing id.
	ErrDuplicateID = errors.New("comic id already exists")
)

// ComicRepository is the storage contract shared by the Mongo and Postgres
// backends.
type ComicRepository interface {
	FindAll(ctx context.Context) ([]models.Comic, error)
	FindByID(ctx context.Context, id string) (*models.Comic, error)
	Find(ctx context.Context, filter models.ComicFilter) ([]models.Comic, error)
	Insert(ctx context.Context, c *models.Comic) error
	InsertMany(ctx context.Context, comics []models.Comic) (int, error)
	// Update applies the supplied fields and returns the stored result. The
	// service always stamps UpdatedAt, so u is never empty.
	Update(ctx context.Context, id string, u models.ComicUpdate) (*models.Comic, error)
	// Delete removes the comic and returns what was removed.
	Delete(ctx context.Context, id string) (*models.Comic, error)
	Ping(ctx context.Context) error
}
