// Package mongo implements repository.NewsRepository on MongoDB.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"news-api/internal/domain/entity"
	"news-api/internal/repository"
)

// CollectionName is the collection holding news documents.
const CollectionName = "news"

// newsDocument is the stored shape of an article.
type newsDocument struct {
	ID          primitive.ObjectID `bson:"_id"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Text        string             `bson:"text"`
	Date        time.Time          `bson:"date"`
}

func (d *newsDocument) toEntity() *entity.News {
	return &entity.News{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		Text:        d.Text,
		Date:        entity.StorageTime(d.Date),
	}
}

// NewsRepo stores articles in a single collection.
type NewsRepo struct {
	coll *mongo.Collection
}

var _ repository.NewsRepository = (*NewsRepo)(nil)

// NewNewsRepo creates a repository backed by coll.
func NewNewsRepo(coll *mongo.Collection) repository.NewsRepository {
	return &NewsRepo{coll: coll}
}

func (r *NewsRepo) Find(ctx context.Context, q repository.NewsQuery) ([]*entity.News, error) {
	opts := options.Find().SetSort(buildSort(q.Sort))
	cur, err := r.coll.Find(ctx, buildFilter(q.Filter), opts)
	if err != nil {
		return nil, fmt.Errorf("Find: %w", err)
	}
	defer func() { _ = cur.Close(ctx) }()

	var docs []newsDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("Find: decode: %w", err)
	}

	out := make([]*entity.News, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toEntity())
	}
	return out, nil
}

func (r *NewsRepo) FindByID(ctx context.Context, id string) (*entity.News, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	var doc newsDocument
	err = r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("FindByID: %w", err)
	}
	return doc.toEntity(), nil
}

func (r *NewsRepo) Create(ctx context.Context, n *entity.News) error {
	doc := newsDocument{
		ID:          primitive.NewObjectID(),
		Title:       n.Title,
		Description: n.Description,
		Text:        n.Text,
		Date:        entity.StorageTime(n.Date),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	n.ID = doc.ID.Hex()
	n.Date = doc.Date
	return nil
}

func (r *NewsRepo) UpdateByID(ctx context.Context, id string, patch entity.NewsPatch) (*entity.News, error) {
	if patch.IsEmpty() {
		return r.FindByID(ctx, id)
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.D{{Key: "$set", Value: buildSet(patch)}}

	var doc newsDocument
	err = r.coll.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: oid}}, update, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("UpdateByID: %w", err)
	}
	return doc.toEntity(), nil
}

func (r *NewsRepo) DeleteByID(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}
	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return false, fmt.Errorf("DeleteByID: %w", err)
	}
	return res.DeletedCount > 0, nil
}

func (r *NewsRepo) Count(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	return n, nil
}

func (r *NewsRepo) Ping(ctx context.Context) error {
	if err := r.coll.Database().Client().Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("Ping: %w", err)
	}
	return nil
}
