package assets

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepository implements Repository using a single MongoDB collection.
// Singleton kinds are keyed by "kind", project images by "id".
type MongoRepository struct {
	col *mongo.Collection
}

func NewMongoRepository(col *mongo.Collection) *MongoRepository {
	idx := mongo.IndexModel{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)}
	col.Indexes().CreateOne(context.Background(), idx)
	return &MongoRepository{col: col}
}

func (r *MongoRepository) UpsertByKind(ctx context.Context, f *StoredFile) error {
	set := bson.M{
		"id":          f.ID,
		"kind":        f.Kind,
		"filename":    f.Filename,
		"contentType": f.ContentType,
		"size":        f.Size,
		"data":        f.Data,
		"uploadedAt":  f.UploadedAt,
	}
	_, err := r.col.UpdateOne(ctx, bson.M{"kind": f.Kind}, bson.M{"$set": set}, options.Update().SetUpsert(true))
	return err
}

func (r *MongoRepository) GetByKind(ctx context.Context, kind string) (*StoredFile, error) {
	var f StoredFile
	if err := r.col.FindOne(ctx, bson.M{"kind": kind}).Decode(&f); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &f, nil
}

func (r *MongoRepository) DeleteByKind(ctx context.Context, kind string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"kind": kind})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepository) Insert(ctx context.Context, f *StoredFile) error {
	_, err := r.col.InsertOne(ctx, f)
	return err
}

func (r *MongoRepository) GetByID(ctx context.Context, id string) (*StoredFile, error) {
	var f StoredFile
	if err := r.col.FindOne(ctx, bson.M{"id": id}).Decode(&f); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &f, nil
}
