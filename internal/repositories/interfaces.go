package repositories

import (
	"context"

	"propertyhub-api/internal/models"
	"propertyhub-api/internal/search"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Lookups by id return (nil, nil) when no document matches.

type PropertyRepository interface {
	Find(ctx context.Context, q search.Query) ([]models.Property, int64, error)
	FindAll(ctx context.Context, filter bson.D, sort bson.D, limit int64) ([]models.Property, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Property, error)
	IDsByOwner(ctx context.Context, owner primitive.ObjectID) ([]primitive.ObjectID, error)
	IncrementViews(ctx context.Context, id primitive.ObjectID) (*models.Property, error)
	Create(ctx context.Context, property *models.Property) error
	InsertMany(ctx context.Context, properties []models.Property) (int, error)
	Update(ctx context.Context, property *models.Property) error
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Property, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
	DeleteAll(ctx context.Context) (int64, error)
	Count(ctx context.Context, filter bson.D) (int64, error)
	Aggregate(ctx context.Context, pipeline mongo.Pipeline, out interface{}) error
	Recent(ctx context.Context, limit int64) ([]models.Property, error)
}

type UserRepository interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error)
	FindByRoles(ctx context.Context, roles []string) ([]models.User, error)
	// List returns one page of matching users, newest first, and the match count.
	// A zero page.Limit returns every match.
	List(ctx context.Context, filter bson.D, page search.Page) ([]models.User, int64, error)
	Create(ctx context.Context, user *models.User) error
	// Update applies fields with $set and returns the updated document.
	Update(ctx context.Context, id primitive.ObjectID, fields bson.D) (*models.User, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
	// AddSaved and RemoveSaved report whether the saved list changed.
	AddSaved(ctx context.Context, userID, propertyID primitive.ObjectID) (bool, error)
	RemoveSaved(ctx context.Context, userID, propertyID primitive.ObjectID) (bool, error)
	Count(ctx context.Context, filter bson.D) (int64, error)
	Aggregate(ctx context.Context, pipeline mongo.Pipeline, out interface{}) error
	Recent(ctx context.Context, limit int64) ([]models.User, error)
}

type InquiryRepository interface {
	Create(ctx context.Context, inquiry *models.Inquiry) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Inquiry, error)
	// Find returns matches newest first; limit 0 means no limit.
	Find(ctx context.Context, filter bson.D, limit int64) ([]models.Inquiry, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Inquiry, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
	Count(ctx context.Context, filter bson.D) (int64, error)
}

type CityRepository interface {
	FindActive(ctx context.Context) ([]models.City, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.City, error)
	FindBySlug(ctx context.Context, slug string) (*models.City, error)
	// FindByName matches the whole name, ignoring case.
	FindByName(ctx context.Context, name string) (*models.City, error)
	// Upsert inserts or replaces the city with the same slug.
	Upsert(ctx context.Context, city *models.City) error
	DeleteAll(ctx context.Context) (int64, error)
}
