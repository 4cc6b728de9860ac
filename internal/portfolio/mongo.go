package portfolio

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoProjectRepository implements ProjectRepository using MongoDB.
type MongoProjectRepository struct {
	col *mongo.Collection
}

// NewMongoProjectRepository creates a repository for the given collection and
// ensures the unique index on "id".
func NewMongoProjectRepository(col *mongo.Collection) *MongoProjectRepository {
	idx := mongo.IndexModel{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)}
	col.Indexes().CreateOne(context.Background(), idx)
	return &MongoProjectRepository{col: col}
}

func (r *MongoProjectRepository) Create(ctx context.Context, p *Project) (string, error) {
	now := time.Now().UTC()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.CreatedAt = now
	p.UpdatedAt = now
	if _, err := r.col.InsertOne(ctx, p); err != nil {
		return "", err
	}
	return p.ID, nil
}

func (r *MongoProjectRepository) Get(ctx context.Context, id string) (*Project, error) {
	var p Project
	if err := r.col.FindOne(ctx, bson.M{"id": id}).Decode(&p); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *MongoProjectRepository) List(ctx context.Context) ([]*Project, error) {
	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "order", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []*Project{}
	for cur.Next(ctx) {
		var p Project
		if err := cur.Decode(&p); err != nil {
			return nil, err
		}
		out = append(out, &p)
	}
	return out, cur.Err()
}

func (r *MongoProjectRepository) Update(ctx context.Context, p *Project) error {
	p.UpdatedAt = time.Now().UTC()
	set := bson.M{
		"title":        p.Title,
		"description":  p.Description,
		"technologies": p.Technologies,
		"githubUrl":    p.GithubURL,
		"liveUrl":      p.LiveURL,
		"imageUrl":     p.ImageURL,
		"order":        p.Order,
		"updatedAt":    p.UpdatedAt,
	}
	res, err := r.col.UpdateOne(ctx, bson.M{"id": p.ID}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoProjectRepository) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Reorder rewrites the order field of every listed project in a single ordered
// bulk write so readers never observe a partial reorder.
func (r *MongoProjectRepository) Reorder(ctx context.Context, orderedIDs []string) error {
	if len(orderedIDs) == 0 {
		return nil
	}
	now := time.Now().UTC()
	models := make([]mongo.WriteModel, 0, len(orderedIDs))
	for i, id := range orderedIDs {
		models = append(models, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"id": id}).
			SetUpdate(bson.M{"$set": bson.M{"order": i, "updatedAt": now}}))
	}
	res, err := r.col.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(true))
	if err != nil {
		return err
	}
	if res.MatchedCount != int64(len(orderedIDs)) {
		return ErrNotFound
	}
	return nil
}

// MongoExperienceRepository implements ExperienceRepository using MongoDB.
type MongoExperienceRepository struct {
	col *mongo.Collection
}

func NewMongoExperienceRepository(col *mongo.Collection) *MongoExperienceRepository {
	idx := mongo.IndexModel{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)}
	col.Indexes().CreateOne(context.Background(), idx)
	return &MongoExperienceRepository{col: col}
}

func (r *MongoExperienceRepository) Create(ctx context.Context, e *Experience) (string, error) {
	now := time.Now().UTC()
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	e.CreatedAt = now
	e.UpdatedAt = now
	if _, err := r.col.InsertOne(ctx, e); err != nil {
		return "", err
	}
	return e.ID, nil
}

func (r *MongoExperienceRepository) Get(ctx context.Context, id string) (*Experience, error) {
	var e Experience
	if err := r.col.FindOne(ctx, bson.M{"id": id}).Decode(&e); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *MongoExperienceRepository) List(ctx context.Context) ([]*Experience, error) {
	// newest role first, matching the public site ordering
	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "startDate", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []*Experience{}
	for cur.Next(ctx) {
		var e Experience
		if err := cur.Decode(&e); err != nil {
			return nil, err
		}
		out = append(out, &e)
	}
	return out, cur.Err()
}

func (r *MongoExperienceRepository) Update(ctx context.Context, e *Experience) error {
	e.UpdatedAt = time.Now().UTC()
	set := bson.M{
		"company":       e.Company,
		"position":      e.Position,
		"description":   e.Description,
		"technologies":  e.Technologies,
		"startDate":     e.StartDate,
		"isCurrentRole": e.IsCurrentRole,
		"location":      e.Location,
		"updatedAt":     e.UpdatedAt,
	}
	update := bson.M{"$set": set}
	if e.EndDate != nil {
		set["endDate"] = *e.EndDate
	} else {
		update["$unset"] = bson.M{"endDate": ""}
	}
	res, err := r.col.UpdateOne(ctx, bson.M{"id": e.ID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoExperienceRepository) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// MongoBlogRepository implements BlogRepository using MongoDB.
type MongoBlogRepository struct {
	col *mongo.Collection
}

func NewMongoBlogRepository(col *mongo.Collection) *MongoBlogRepository {
	idx := mongo.IndexModel{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)}
	col.Indexes().CreateOne(context.Background(), idx)
	slugIdx := mongo.IndexModel{Keys: bson.D{{Key: "slug", Value: 1}}}
	col.Indexes().CreateOne(context.Background(), slugIdx)
	return &MongoBlogRepository{col: col}
}

func (r *MongoBlogRepository) Create(ctx context.Context, b *BlogPost) (string, error) {
	now := time.Now().UTC()
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	b.CreatedAt = now
	b.UpdatedAt = now
	if _, err := r.col.InsertOne(ctx, b); err != nil {
		return "", err
	}
	return b.ID, nil
}

func (r *MongoBlogRepository) Get(ctx context.Context, id string) (*BlogPost, error) {
	var b BlogPost
	if err := r.col.FindOne(ctx, bson.M{"id": id}).Decode(&b); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *MongoBlogRepository) GetBySlug(ctx context.Context, slug string) (*BlogPost, error) {
	var b BlogPost
	if err := r.col.FindOne(ctx, bson.M{"slug": slug}).Decode(&b); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *MongoBlogRepository) List(ctx context.Context, publishedOnly bool) ([]*BlogPost, error) {
	filter := bson.M{}
	if publishedOnly {
		filter["published"] = true
	}
	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "publishedAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []*BlogPost{}
	for cur.Next(ctx) {
		var b BlogPost
		if err := cur.Decode(&b); err != nil {
			return nil, err
		}
		out = append(out, &b)
	}
	return out, cur.Err()
}

func (r *MongoBlogRepository) Update(ctx context.Context, b *BlogPost) error {
	b.UpdatedAt = time.Now().UTC()
	set := bson.M{
		"title":     b.Title,
		"slug":      b.Slug,
		"excerpt":   b.Excerpt,
		"content":   b.Content,
		"tags":      b.Tags,
		"published": b.Published,
		"readTime":  b.ReadTime,
		"updatedAt": b.UpdatedAt,
	}
	update := bson.M{"$set": set}
	if b.PublishedAt != nil {
		set["publishedAt"] = *b.PublishedAt
	} else {
		update["$unset"] = bson.M{"publishedAt": ""}
	}
	res, err := r.col.UpdateOne(ctx, bson.M{"id": b.ID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoBlogRepository) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
