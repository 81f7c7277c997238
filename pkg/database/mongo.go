package database

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// MongoConnection pairs a client with the database the stores live in.
type MongoConnection struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// NewMongoConnection connects and pings. The database name comes from the URI
// path when present, otherwise fallbackDB is used.
func NewMongoConnection(ctx context.Context, uri, fallbackDB string) (*MongoConnection, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to create mongo client: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	name := DatabaseNameFromURI(uri)
	if name == "" {
		name = fallbackDB
	}

	return &MongoConnection{
		Client: client,
		DB:     client.Database(name),
	}, nil
}

func (c *MongoConnection) Ping(ctx context.Context) error {
	return c.Client.Ping(ctx, readpref.Primary())
}

func (c *MongoConnection) Close(ctx context.Context) error {
	return c.Client.Disconnect(ctx)
}

// DatabaseNameFromURI returns the path segment of a mongodb:// URI, or "".
func DatabaseNameFromURI(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return ""
	}
	return strings.Trim(u.Path, "/")
}
