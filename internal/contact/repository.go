package contact

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Repository persists contact messages.
type Repository interface {
	Create(ctx context.Context, m *Message) (string, error)
	List(ctx context.Context) ([]*Message, error)
}

// MongoRepository implements Repository using MongoDB.
type MongoRepository struct {
	col *mongo.Collection
}

func NewMongoRepository(col *mongo.Collection) *MongoRepository {
	idx := mongo.IndexModel{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)}
	col.Indexes().CreateOne(context.Background(), idx)
	return &MongoRepository{col: col}
}

func (r *MongoRepository) Create(ctx context.Context, m *Message) (string, error) {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	m.CreatedAt = time.Now().UTC()
	if _, err := r.col.InsertOne(ctx, m); err != nil {
		return "", err
	}
	return m.ID, nil
}

func (r *MongoRepository) List(ctx context.Context) ([]*Message, error) {
	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []*Message{}
	for cur.Next(ctx) {
		var m Message
		if err := cur.Decode(&m); err != nil {
			return nil, err
		}
		out = append(out, &m)
	}
	return out, cur.Err()
}

// MemoryRepository is the in-memory Repository used by unit tests.
type MemoryRepository struct {
	mu    sync.RWMutex
	store map[string]*Message

	failCreate error // when set, Create returns this error
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{store: make(map[string]*Message)}
}

// FailCreates makes every subsequent Create fail with err.
func (m *MemoryRepository) FailCreates(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failCreate = err
}

func (m *MemoryRepository) Create(ctx context.Context, msg *Message) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failCreate != nil {
		return "", m.failCreate
	}
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	msg.CreatedAt = time.Now().UTC()
	cp := *msg
	m.store[msg.ID] = &cp
	return msg.ID, nil
}

func (m *MemoryRepository) List(ctx context.Context) ([]*Message, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Message, 0, len(m.store))
	for _, msg := range m.store {
		cp := *msg
		out = append(out, &cp)
	}
	return out, nil
}

// Get returns a stored message by id (test helper).
func (m *MemoryRepository) Get(id string) *Message {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.store[id]
}
