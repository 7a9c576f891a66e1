package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"comicvault/internal/microservices/http-api/models"
)

const uniqueViolation = "23505"

// importBatchSize bounds the rows per INSERT statement during bulk import.
const importBatchSize = 100

type PostgresComicRepo struct {
	db *gorm.DB
}

func NewPostgresComicRepo(db *gorm.DB) *PostgresComicRepo {
	return &PostgresComicRepo{db: db}
}

func (r *PostgresComicRepo) FindAll(ctx context.Context) ([]models.Comic, error) {
	list := make([]models.Comic, 0)
	if err := r.db.WithContext(ctx).Order("created_at desc").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list comics: %w", err)
	}
	return list, nil
}

func (r *PostgresComicRepo) FindByID(ctx context.Context, id string) (*models.Comic, error) {
	var c models.Comic
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get comic %s: %w", id, err)
	}
	return &c, nil
}

// Find runs the filter as ILIKE substring matches on the text fields and an
// exact match on volume. LIKE wildcards in user input are escaped.
func (r *PostgresComicRepo) Find(ctx context.Context, filter models.ComicFilter) ([]models.Comic, error) {
	q := r.db.WithContext(ctx)
	if filter.Title != nil {
		q = q.Where("title ILIKE ?", likePattern(*filter.Title))
	}
	if filter.Author != nil {
		q = q.Where("author ILIKE ?", likePattern(*filter.Author))
	}
	if filter.Publisher != nil {
		q = q.Where("COALESCE(publisher,'') ILIKE ?", likePattern(*filter.Publisher))
	}
	if filter.Volume != nil {
		q = q.Where("volume = ?", *filter.Volume)
	}

	list := make([]models.Comic, 0)
	if err := q.Order("created_at desc").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("filter comics: %w", err)
	}
	return list, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func likePattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

func (r *PostgresComicRepo) Insert(ctx context.Context, c *models.Comic) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return classify("create comic", err)
	}
	return nil
}

func (r *PostgresComicRepo) InsertMany(ctx context.Context, comics []models.Comic) (int, error) {
	if len(comics) == 0 {
		return 0, nil
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(&comics, importBatchSize).Error
	})
	if err != nil {
		return 0, classify("import comics", err)
	}
	return len(comics), nil
}

func (r *PostgresComicRepo) Update(ctx context.Context, id string, u models.ComicUpdate) (*models.Comic, error) {
	var c models.Comic
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&c).Error; err != nil {
			return err
		}
		u.ApplyTo(&c)
		return tx.Save(&c).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update comic %s: %w", id, err)
	}
	return &c, nil
}

func (r *PostgresComicRepo) Delete(ctx context.Context, id string) (*models.Comic, error) {
	var c models.Comic
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&c).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Comic{}, "id = ?", id).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("delete comic %s: %w", id, err)
	}
	return &c, nil
}

func (r *PostgresComicRepo) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func classify(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrDuplicateID
	}
	return fmt.Errorf("%s: %w", op, err)
}
