package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/smartview/pkg/errors"
)

// DefaultCollection is the collection trees are stored in.
const DefaultCollection = "trees"

// MongoStore keeps records in a MongoDB collection with a unique index on
// the tree name.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to uri and uses the trees collection of database.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "connect to mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "ping mongodb")
	}

	s := &MongoStore{client: client, coll: client.Database(database).Collection(DefaultCollection)}
	_, err = s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create name index")
	}
	return s, nil
}

func (s *MongoStore) Create(ctx context.Context, rec *Record) error {
	if err := prepare(rec, now()); err != nil {
		return err
	}
	_, err := s.coll.InsertOne(ctx, rec)
	if mongo.IsDuplicateKeyError(err) {
		return conflict(rec.Name)
	}
	return err
}

func (s *MongoStore) Get(ctx context.Context, id string) (*Record, error) {
	return s.findOne(ctx, bson.M{"_id": id}, id)
}

func (s *MongoStore) GetByName(ctx context.Context, name string) (*Record, error) {
	return s.findOne(ctx, bson.M{"name": name}, name)
}

func (s *MongoStore) findOne(ctx context.Context, filter bson.M, what string) (*Record, error) {
	var rec Record
	err := s.coll.FindOne(ctx, filter).Decode(&rec)
	if err == mongo.ErrNoDocuments {
		return nil, notFound(what)
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *MongoStore) List(ctx context.Context) ([]Record, error) {
	cur, err := s.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	recs := []Record{}
	if err := cur.All(ctx, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

func (s *MongoStore) Update(ctx context.Context, rec *Record) error {
	old, err := s.Get(ctx, rec.ID)
	if err != nil {
		return err
	}
	rec.CreatedAt = old.CreatedAt
	if err := prepare(rec, now()); err != nil {
		return err
	}
	res, err := s.coll.ReplaceOne(ctx, bson.M{"_id": rec.ID}, rec)
	if mongo.IsDuplicateKeyError(err) {
		return conflict(rec.Name)
	}
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return notFound(rec.ID)
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return notFound(id)
	}
	return nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// now truncates to the millisecond precision of BSON dates, so records
// read back compare equal to the ones written.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

var _ Store = (*MongoStore)(nil)
