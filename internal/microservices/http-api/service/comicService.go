package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"comicvault/internal/microservices/http-api/models"
	"comicvault/internal/microservices/http-api/repository"
)

// ErrComicNotFound is returned for a well-formed id with no stored comic.
var ErrComicNotFound = errors.New("comic not found")

type ComicService interface {
	GetAll(ctx context.Context) ([]models.Comic, error)
	GetByID(ctx context.Context, id string) (*models.Comic, error)
	Filter(ctx context.Context, filter models.ComicFilter) ([]models.Comic, error)
	Create(ctx context.Context, c *models.Comic) error
	Import(ctx context.Context, comics []models.Comic) (int, error)
	Update(ctx context.Context, id string, u models.ComicUpdate) (*models.Comic, error)
	Delete(ctx context.Context, id string) (*models.Comic, error)
	Ping(ctx context.Context) error
}

type comicService struct {
	repo repository.ComicRepository
	now  func() time.Time
}

func NewComicService(r repository.ComicRepository) ComicService {
	return &comicService{repo: r, now: time.Now}
}

func (s *comicService) GetAll(ctx context.Context) ([]models.Comic, error) {
	return s.repo.FindAll(ctx)
}

func (s *comicService) GetByID(ctx context.Context, id string) (*models.Comic, error) {
	c, err := s.repo.FindByID(ctx, id)
	return c, notFound(err)
}

// Filter with an empty filter matches every comic.
func (s *comicService) Filter(ctx context.Context, filter models.ComicFilter) ([]models.Comic, error) {
	if filter.IsEmpty() {
		return s.repo.FindAll(ctx)
	}
	return s.repo.Find(ctx, filter)
}

// Create assigns identity and timestamps. Callers validate first.
func (s *comicService) Create(ctx context.Context, c *models.Comic) error {
	s.stamp(c)
	if err := s.repo.Insert(ctx, c); err != nil {
		return fmt.Errorf("create comic: %w", err)
	}
	return nil
}

// Import stores a batch that has already been validated as a whole.
func (s *comicService) Import(ctx context.Context, comics []models.Comic) (int, error) {
	for i := range comics {
		s.stamp(&comics[i])
	}
	n, err := s.repo.InsertMany(ctx, comics)
	if err != nil {
		return n, fmt.Errorf("import comics: %w", err)
	}
	return n, nil
}

func (s *comicService) Update(ctx context.Context, id string, u models.ComicUpdate) (*models.Comic, error) {
	u.UpdatedAt = s.now().UTC()
	c, err := s.repo.Update(ctx, id, u)
	return c, notFound(err)
}

func (s *comicService) Delete(ctx context.Context, id string) (*models.Comic, error) {
	c, err := s.repo.Delete(ctx, id)
	return c, notFound(err)
}

func (s *comicService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

func (s *comicService) stamp(c *models.Comic) {
	now := s.now().UTC()
	c.ID = models.NewID()
	c.CreatedAt = now
	c.UpdatedAt = now
	if c.Tags == nil {
		c.Tags = []string{}
	}
}

func notFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrComicNotFound
	}
	return err
}
