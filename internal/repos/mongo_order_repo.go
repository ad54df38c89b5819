package repos

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"gearrent/internal/domain"
)

// ConnectMongo dials uri and pings the primary before returning.
func ConnectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	client, err := mongo.Connect(options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

// MongoOrderRepo keeps the order history in the "orders" collection.
// Lines are stored as their JSON encoding so products round-trip with the
// same shape the storefront serves.
type MongoOrderRepo struct{ coll *mongo.Collection }

func NewMongoOrderRepo(client *mongo.Client, database string) *MongoOrderRepo {
	return &MongoOrderRepo{coll: client.Database(database).Collection("orders")}
}

type orderDoc struct {
	ID         string             `bson:"_id"`
	SessionID  string             `bson:"session_id"`
	Renter     domain.UserDetails `bson:"renter"`
	RentalDate string             `bson:"rental_date"`
	Duration   int                `bson:"duration"`
	Total      int64              `bson:"total"`
	Status     string             `bson:"status"`
	LinesJSON  string             `bson:"lines_json"`
	CreatedAt  string             `bson:"created_at"`
}

// EnsureIndexes creates the session history index.
func (r *MongoOrderRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "session_id", Value: 1},
			{Key: "created_at", Value: -1},
		},
		Options: options.Index().SetName("idx_session_orders"),
	})
	return err
}

func (d orderDoc) toDomain() (domain.Order, error) {
	var lines []domain.CartLine
	if err := json.Unmarshal([]byte(d.LinesJSON), &lines); err != nil {
		return domain.Order{}, fmt.Errorf("order %s: bad lines: %w", d.ID, err)
	}
	return domain.Order{
		ID:         d.ID,
		SessionID:  d.SessionID,
		CreatedAt:  d.CreatedAt,
		RentalDate: d.RentalDate,
		Duration:   d.Duration,
		TotalPrice: d.Total,
		Lines:      lines,
		Status:     d.Status,
		Renter:     d.Renter,
	}, nil
}

func (r *MongoOrderRepo) Create(ctx context.Context, o domain.Order) error {
	lines, err := json.Marshal(o.Lines)
	if err != nil {
		return err
	}
	_, err = r.coll.InsertOne(ctx, orderDoc{
		ID:         o.ID,
		SessionID:  o.SessionID,
		Renter:     o.Renter,
		RentalDate: o.RentalDate,
		Duration:   o.Duration,
		Total:      o.TotalPrice,
		Status:     o.Status,
		LinesJSON:  string(lines),
		CreatedAt:  o.CreatedAt,
	})
	return err
}

func (r *MongoOrderRepo) Get(ctx context.Context, id string) (domain.Order, error) {
	var d orderDoc
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.Order{}, ErrNotFound
	}
	if err != nil {
		return domain.Order{}, err
	}
	return d.toDomain()
}

func (r *MongoOrderRepo) ListBySession(ctx context.Context, sessionID string) ([]domain.Order, error) {
	return r.find(ctx, bson.M{"session_id": sessionID}, 0)
}

func (r *MongoOrderRepo) ListLatest(ctx context.Context, limit int) ([]domain.Order, error) {
	if limit <= 0 {
		limit = 100
	}
	return r.find(ctx, bson.M{}, int64(limit))
}

func (r *MongoOrderRepo) find(ctx context.Context, filter bson.M, limit int64) ([]domain.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []orderDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]domain.Order, 0, len(docs))
	for _, d := range docs {
		o, err := d.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, nil
}
