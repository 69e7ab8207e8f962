package calibration

import (
	"context"
	stderrors "errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/neurokit/morph/pkg/errors"
)

// MongoSource reads specimen metadata documents from a MongoDB
// collection. Documents carry at least:
//
//	{ "specimen_id": 651806289, "z_resolution": 0.33 }
type MongoSource struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// MongoConfig holds MongoDB connection settings.
type MongoConfig struct {
	URI        string // e.g. mongodb://localhost:27017
	Database   string
	Collection string
}

// NewMongoSource connects to MongoDB and verifies the connection.
// Close the source when done to release the client pool.
func NewMongoSource(ctx context.Context, cfg MongoConfig) (*MongoSource, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return &MongoSource{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

type specimenDoc struct {
	SpecimenID  int64   `bson:"specimen_id"`
	ZResolution float64 `bson:"z_resolution"`
}

// ZResolution implements Source.
func (s *MongoSource) ZResolution(ctx context.Context, specimenID int64) (float64, error) {
	var doc specimenDoc
	err := s.coll.FindOne(ctx, bson.M{"specimen_id": specimenID}).Decode(&doc)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return 0, errors.New(errors.ErrCodeCalibrationNotFound, "specimen %d has no metadata document", specimenID)
	}
	if err != nil {
		return 0, err
	}
	return doc.ZResolution, nil
}

// Close disconnects the underlying client.
func (s *MongoSource) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

var _ Source = (*MongoSource)(nil)
