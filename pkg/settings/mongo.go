package settings

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/uofr/moodle-format-topcoll/pkg/core/course"
	"github.com/uofr/moodle-format-topcoll/pkg/errors"
)

// CollectionName is the collection holding one document per course.
const CollectionName = "format_topcoll_settings"

// DefaultDatabase is used when the mongo URI names no database.
const DefaultDatabase = "topcoll"

// settingsDocument is the stored form. The settings fields are inlined so
// documents read like the original course-format options table.
type settingsDocument struct {
	CourseID        string `bson:"courseid"`
	course.Settings `bson:",inline"`
	UpdatedAt       time.Time `bson:"updatedat"`
}

// MongoStore keeps settings in MongoDB.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// DialMongo connects to uri, pings the primary and returns a store on the
// given database. An empty database means DefaultDatabase.
func DialMongo(ctx context.Context, uri, database string) (*MongoStore, error) {
	if uri == "" {
		return nil, fmt.Errorf("mongo: empty uri")
	}
	if database == "" {
		database = DefaultDatabase
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).SetConnectTimeout(5*time.Second))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return NewMongoStore(client, database), nil
}

// NewMongoStore wraps a connected client. The store disconnects the client
// on Close.
func NewMongoStore(client *mongo.Client, database string) *MongoStore {
	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection(CollectionName),
	}
}

func (s *MongoStore) Get(ctx context.Context, courseID string) (course.Settings, bool, error) {
	if err := errors.ValidateCourseID(courseID); err != nil {
		return course.Settings{}, false, err
	}
	doc := settingsDocument{Settings: course.DefaultSettings()}
	err := s.coll.FindOne(ctx, bson.M{"courseid": courseID}).Decode(&doc)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return course.Settings{}, false, nil
	}
	if err != nil {
		return course.Settings{}, false, fmt.Errorf("mongo find settings: %w", err)
	}
	return doc.Settings, true, nil
}

func (s *MongoStore) Put(ctx context.Context, courseID string, st course.Settings) error {
	if err := errors.ValidateCourseID(courseID); err != nil {
		return err
	}
	doc := settingsDocument{CourseID: courseID, Settings: st, UpdatedAt: time.Now().UTC()}
	_, err := s.coll.UpdateOne(ctx,
		bson.M{"courseid": courseID},
		bson.M{"$set": doc},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("mongo upsert settings: %w", err)
	}
	return nil
}

// Close disconnects the client.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
