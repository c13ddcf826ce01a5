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

	"github.com/garagely/garage-api/internal/core/domain"
)

const carsCollection = "cars"

// CarRepository persists car records in MongoDB.
type CarRepository struct {
	coll *mongo.Collection
}

func NewCarRepository(db *mongo.Database) *CarRepository {
	return &CarRepository{coll: db.Collection(carsCollection)}
}

type mongoCar struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Make      string             `bson:"make"`
	Model     string             `bson:"model"`
	Year      int                `bson:"year"`
	OwnerID   string             `bson:"owner_id"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (mc *mongoCar) toDomain() *domain.Car {
	return &domain.Car{
		ID:        mc.ID.Hex(),
		Make:      mc.Make,
		Model:     mc.Model,
		Year:      mc.Year,
		OwnerID:   mc.OwnerID,
		CreatedAt: mc.CreatedAt.UTC(),
		UpdatedAt: mc.UpdatedAt.UTC(),
	}
}

func (r *CarRepository) Create(ctx context.Context, car *domain.Car) (*domain.Car, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoCar{
		Make:      car.Make,
		Model:     car.Model,
		Year:      car.Year,
		OwnerID:   car.OwnerID,
		CreatedAt: car.CreatedAt,
		UpdatedAt: car.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert car: %w", err)
	}

	created := *car
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *CarRepository) FindByID(ctx context.Context, id string) (*domain.Car, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrCarNotFound
	}

	var mc mongoCar
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCarNotFound
		}
		return nil, fmt.Errorf("find car: %w", err)
	}
	return mc.toDomain(), nil
}

func (r *CarRepository) List(ctx context.Context) ([]*domain.Car, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list cars: %w", err)
	}
	defer cur.Close(ctx)

	var cars []*domain.Car
	for cur.Next(ctx) {
		var mc mongoCar
		if err := cur.Decode(&mc); err != nil {
			return nil, fmt.Errorf("decode car: %w", err)
		}
		cars = append(cars, mc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list cars: %w", err)
	}
	return cars, nil
}

func (r *CarRepository) Update(ctx context.Context, car *domain.Car) (*domain.Car, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(car.ID)
	if err != nil {
		return nil, domain.ErrCarNotFound
	}

	update := bson.M{"$set": bson.M{
		"make":       car.Make,
		"model":      car.Model,
		"year":       car.Year,
		"owner_id":   car.OwnerID,
		"updated_at": time.Now().UTC(),
	}}

	var mc mongoCar
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&mc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCarNotFound
		}
		return nil, fmt.Errorf("update car: %w", err)
	}
	return mc.toDomain(), nil
}

func (r *CarRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrCarNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete car: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrCarNotFound
	}
	return nil
}

func (r *CarRepository) CountByOwner(ctx context.Context, ownerID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"owner_id": ownerID})
	if err != nil {
		return 0, fmt.Errorf("count cars by owner: %w", err)
	}
	return n, nil
}

// EnsureIndexes creates the owner_id index backing CountByOwner.
func (r *CarRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	model := mongo.IndexModel{
		Keys: bson.D{{Key: "owner_id", Value: 1}},
	}

	_, err := r.coll.Indexes().CreateOne(ctx, model)
	return err
}
