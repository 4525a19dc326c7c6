package repositories

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"propertyhub-api/internal/models"
	"propertyhub-api/internal/utils"
	"propertyhub-api/pkg/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const citiesColl = database.CitiesCollection

type cityRepository struct {
	collection *mongo.Collection
}

func NewCityRepository(db *mongo.Database) CityRepository {
	return &cityRepository{collection: db.Collection(citiesColl)}
}

func (r *cityRepository) FindActive(ctx context.Context) ([]models.City, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

	start := time.Now()
	cursor, err := r.collection.Find(ctx, bson.D{{Key: "isActive", Value: true}}, findOptions)
	utils.ObserveMongo("find", citiesColl, start, err)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	cities := []models.City{}
	start = time.Now()
	err = cursor.All(ctx, &cities)
	utils.ObserveMongo("cursor_all", citiesColl, start, err)
	if err != nil {
		return nil, err
	}
	return cities, nil
}

func (r *cityRepository) findOne(ctx context.Context, filter bson.D) (*models.City, error) {
	start := time.Now()
	var city models.City
	err := r.collection.FindOne(ctx, filter).Decode(&city)
	if errors.Is(err, mongo.ErrNoDocuments) {
		utils.ObserveMongo("find_one", citiesColl, start, nil)
		return nil, nil
	}
	utils.ObserveMongo("find_one", citiesColl, start, err)
	if err != nil {
		return nil, err
	}
	return &city, nil
}

func (r *cityRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.City, error) {
	return r.findOne(ctx, bson.D{{Key: "_id", Value: id}})
}

func (r *cityRepository) FindBySlug(ctx context.Context, slug string) (*models.City, error) {
	return r.findOne(ctx, bson.D{{Key: "slug", Value: strings.ToLower(slug)}})
}

func (r *cityRepository) FindByName(ctx context.Context, name string) (*models.City, error) {
	pattern := primitive.Regex{Pattern: "^" + regexp.QuoteMeta(name) + "$", Options: "i"}
	return r.findOne(ctx, bson.D{{Key: "name", Value: pattern}})
}

func (r *cityRepository) Upsert(ctx context.Context, city *models.City) error {
	now := time.Now().UTC()
	if city.Slug == "" {
		city.Slug = models.Slugify(city.Name)
	}
	city.UpdatedAt = now

	update := bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "name", Value: city.Name},
			{Key: "popularAreas", Value: city.PopularAreas},
			{Key: "isActive", Value: city.IsActive},
			{Key: "updatedAt", Value: now},
		}},
		{Key: "$setOnInsert", Value: bson.D{{Key: "createdAt", Value: now}}},
	}

	start := time.Now()
	_, err := r.collection.UpdateOne(ctx, bson.D{{Key: "slug", Value: city.Slug}}, update, options.Update().SetUpsert(true))
	utils.ObserveMongo("upsert", citiesColl, start, err)
	return err
}

func (r *cityRepository) DeleteAll(ctx context.Context) (int64, error) {
	start := time.Now()
	result, err := r.collection.DeleteMany(ctx, bson.D{})
	utils.ObserveMongo("delete_many", citiesColl, start, err)
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}
