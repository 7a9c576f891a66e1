package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"comicvault/internal/microservices/http-api/models"
)

type MongoComicRepo struct {
	coll *mongo.Collection
}

func NewMongoComicRepo(coll *mongo.Collection) *MongoComicRepo {
	return &MongoComicRepo{coll: coll}
}

func (r *MongoComicRepo) FindAll(ctx context.Context) ([]models.Comic, error) {
	return r.find(ctx, bson.M{})
}

func (r *MongoComicRepo) FindByID(ctx context.Context, id string) (*models.Comic, error) {
	var c models.Comic
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find comic %s: %w", id, err)
	}
	return &c, nil
}

func (r *MongoComicRepo) Find(ctx context.Context, filter models.ComicFilter) ([]models.Comic, error) {
	return r.find(ctx, MongoFilter(filter))
}

// MongoFilter translates a ComicFilter into a query document. Text fields
// become case-insensitive regexes over the quoted input so user text never
// acts as a pattern.
func MongoFilter(f models.ComicFilter) bson.M {
	q := bson.M{}
	if f.Title != nil {
		q["title"] = containsRegex(*f.Title)
	}
	if f.Author != nil {
		q["author"] = containsRegex(*f.Author)
	}
	if f.Publisher != nil {
		q["publisher"] = containsRegex(*f.Publisher)
	}
	if f.Volume != nil {
		q["volume"] = *f.Volume
	}
	return q
}

func containsRegex(s string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
}

func (r *MongoComicRepo) find(ctx context.Context, query bson.M) ([]models.Comic, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("find comics: %w", err)
	}
	list := make([]models.Comic, 0)
	if err := cur.All(ctx, &list); err != nil {
		return nil, fmt.Errorf("decode comics: %w", err)
	}
	return list, nil
}

func (r *MongoComicRepo) Insert(ctx context.Context, c *models.Comic) error {
	if _, err := r.coll.InsertOne(ctx, c); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateID
		}
		return fmt.Errorf("insert comic: %w", err)
	}
	return nil
}

// InsertMany is an ordered insert without a transaction: a store failure
// midway leaves the earlier documents in place.
func (r *MongoComicRepo) InsertMany(ctx context.Context, comics []models.Comic) (int, error) {
	if len(comics) == 0 {
		return 0, nil
	}
	docs := make([]interface{}, 0, len(comics))
	for i := range comics {
		docs = append(docs, comics[i])
	}
	res, err := r.coll.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true))
	if err != nil {
		inserted := 0
		var bwe mongo.BulkWriteException
		if errors.As(err, &bwe) && len(bwe.WriteErrors) > 0 {
			inserted = bwe.WriteErrors[0].Index
		}
		if mongo.IsDuplicateKeyError(err) {
			return inserted, ErrDuplicateID
		}
		return inserted, fmt.Errorf("insert comics: %w", err)
	}
	return len(res.InsertedIDs), nil
}

func (r *MongoComicRepo) Update(ctx context.Context, id string, u models.ComicUpdate) (*models.Comic, error) {
	set := u.SetFields()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var c models.Comic
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update comic %s: %w", id, err)
	}
	return &c, nil
}

func (r *MongoComicRepo) Delete(ctx context.Context, id string) (*models.Comic, error) {
	var c models.Comic
	if err := r.coll.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("delete comic %s: %w", id, err)
	}
	return &c, nil
}

func (r *MongoComicRepo) Ping(ctx context.Context) error {
	return r.coll.Database().Client().Ping(ctx, readpref.Primary())
}
