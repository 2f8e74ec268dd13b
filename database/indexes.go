package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func CreateOKRIndexes(db *mongo.Database) error {
	collection := db.Collection("okrs")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		// LISTING: owner filter + newest-first sort
		// Used by: GetOKRs, GetOKRsByOwner
		{
			Keys: bson.D{
				{Key: "owner", Value: 1},
				{Key: "createdAt", Value: -1},
			},
			Options: options.Index().SetName("idx_owner_created_at"),
		},

		// FILTERING: period/year combinations
		// Used by: GetOKRs, GetOKRStats
		{
			Keys: bson.D{
				{Key: "year", Value: 1},
				{Key: "period", Value: 1},
			},
			Options: options.Index().SetName("idx_year_period"),
		},

		// FILTERING: status
		// Used by: GetOKRs, GetOKRsByOwner
		{
			Keys: bson.D{
				{Key: "status", Value: 1},
			},
			Options: options.Index().SetName("idx_status"),
		},

		// SORTING: default newest-first listing with no filter
		{
			Keys: bson.D{
				{Key: "createdAt", Value: -1},
			},
			Options: options.Index().SetName("idx_created_at"),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create OKR indexes: %v", err)
	}

	fmt.Println("OKR indexes created successfully")
	return nil
}

func CreateUserIndexes(db *mongo.Database) error {
	collection := db.Collection("users")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// AUTH: unique email lookup for register/login
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetName("idx_email_unique").SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create user indexes: %v", err)
	}

	fmt.Println("User indexes created successfully")
	return nil
}
