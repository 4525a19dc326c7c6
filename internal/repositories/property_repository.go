package repositories

import (
	"context"
	"errors"
	"time"

	"propertyhub-api/internal/models"
	"propertyhub-api/internal/search"
	"propertyhub-api/internal/utils"
	"propertyhub-api/pkg/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const propertiesColl = database.PropertiesCollection

type propertyRepository struct {
	collection *mongo.Collection
}

func NewPropertyRepository(db *mongo.Database) PropertyRepository {
	return &propertyRepository{
		collection: db.Collection(propertiesColl),
	}
}

func (r *propertyRepository) Find(ctx context.Context, q search.Query) ([]models.Property, int64, error) {
	filter := q.Filter.BSON()

	start := time.Now()
	total, err := r.collection.CountDocuments(ctx, filter)
	utils.ObserveMongo("count_documents", propertiesColl, start, err)
	if err != nil {
		return nil, 0, err
	}

	findOptions := options.Find().
		SetSort(q.Sort.BSON()).
		SetSkip(q.Page.Skip()).
		SetLimit(int64(q.Page.Limit))

	properties, err := r.find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, err
	}
	return properties, total, nil
}

func (r *propertyRepository) FindAll(ctx context.Context, filter bson.D, sort bson.D, limit int64) ([]models.Property, error) {
	findOptions := options.Find()
	if len(sort) > 0 {
		findOptions.SetSort(sort)
	}
	if limit > 0 {
		findOptions.SetLimit(limit)
	}
	return r.find(ctx, filter, findOptions)
}

func (r *propertyRepository) find(ctx context.Context, filter bson.D, opts *options.FindOptions) ([]models.Property, error) {
	if filter == nil {
		filter = bson.D{}
	}

	start := time.Now()
	cursor, err := r.collection.Find(ctx, filter, opts)
	utils.ObserveMongo("find", propertiesColl, start, err)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	properties := []models.Property{}
	start = time.Now()
	err = cursor.All(ctx, &properties)
	utils.ObserveMongo("cursor_all", propertiesColl, start, err)
	if err != nil {
		return nil, err
	}
	return properties, nil
}

func (r *propertyRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Property, error) {
	start := time.Now()
	var property models.Property
	err := r.collection.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&property)
	if errors.Is(err, mongo.ErrNoDocuments) {
		utils.ObserveMongo("find_one", propertiesColl, start, nil)
		return nil, nil
	}
	utils.ObserveMongo("find_one", propertiesColl, start, err)
	if err != nil {
		return nil, err
	}
	return &property, nil
}

func (r *propertyRepository) IDsByOwner(ctx context.Context, owner primitive.ObjectID) ([]primitive.ObjectID, error) {
	start := time.Now()
	raw, err := r.collection.Distinct(ctx, "_id", bson.D{{Key: "owner", Value: owner}})
	utils.ObserveMongo("distinct", propertiesColl, start, err)
	if err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(raw))
	for _, v := range raw {
		if id, ok := v.(primitive.ObjectID); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// IncrementViews bumps the view counter with $inc and returns the updated listing.
func (r *propertyRepository) IncrementViews(ctx context.Context, id primitive.ObjectID) (*models.Property, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.D{{Key: "$inc", Value: bson.D{{Key: "views", Value: 1}}}}

	start := time.Now()
	var property models.Property
	err := r.collection.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: id}}, update, opts).Decode(&property)
	if errors.Is(err, mongo.ErrNoDocuments) {
		utils.ObserveMongo("find_one_and_update", propertiesColl, start, nil)
		return nil, nil
	}
	utils.ObserveMongo("find_one_and_update", propertiesColl, start, err)
	if err != nil {
		return nil, err
	}
	return &property, nil
}

func (r *propertyRepository) Create(ctx context.Context, property *models.Property) error {
	now := time.Now().UTC()
	property.ID = primitive.NewObjectID()
	property.CreatedAt = now
	property.UpdatedAt = now
	if property.Status == "" {
		property.Status = models.StatusActive
	}
	if property.Images == nil {
		property.Images = []string{}
	}

	start := time.Now()
	_, err := r.collection.InsertOne(ctx, property)
	utils.ObserveMongo("insert", propertiesColl, start, err)
	return err
}

func (r *propertyRepository) InsertMany(ctx context.Context, properties []models.Property) (int, error) {
	if len(properties) == 0 {
		return 0, nil
	}

	now := time.Now().UTC()
	docs := make([]interface{}, 0, len(properties))
	for i := range properties {
		p := &properties[i]
		if p.ID.IsZero() {
			p.ID = primitive.NewObjectID()
		}
		p.CreatedAt = now
		p.UpdatedAt = now
		docs = append(docs, p)
	}

	start := time.Now()
	result, err := r.collection.InsertMany(ctx, docs)
	utils.ObserveMongo("insert_many", propertiesColl, start, err)
	if err != nil {
		return 0, err
	}
	return len(result.InsertedIDs), nil
}

// Update replaces the editable fields. Owner, views and createdAt are left alone.
func (r *propertyRepository) Update(ctx context.Context, property *models.Property) error {
	property.UpdatedAt = time.Now().UTC()
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "title", Value: property.Title},
		{Key: "description", Value: property.Description},
		{Key: "purpose", Value: property.Purpose},
		{Key: "propertyType", Value: property.PropertyType},
		{Key: "subType", Value: property.SubType},
		{Key: "price", Value: property.Price},
		{Key: "area", Value: property.Area},
		{Key: "location", Value: property.Location},
		{Key: "features", Value: property.Features},
		{Key: "images", Value: property.Images},
		{Key: "status", Value: property.Status},
		{Key: "featured", Value: property.Featured},
		{Key: "updatedAt", Value: property.UpdatedAt},
	}}}

	start := time.Now()
	result, err := r.collection.UpdateOne(ctx, bson.D{{Key: "_id", Value: property.ID}}, update)
	utils.ObserveMongo("update_one", propertiesColl, start, err)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *propertyRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Property, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "status", Value: status},
		{Key: "updatedAt", Value: time.Now().UTC()},
	}}}

	start := time.Now()
	var property models.Property
	err := r.collection.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: id}}, update, opts).Decode(&property)
	if errors.Is(err, mongo.ErrNoDocuments) {
		utils.ObserveMongo("find_one_and_update", propertiesColl, start, nil)
		return nil, nil
	}
	utils.ObserveMongo("find_one_and_update", propertiesColl, start, err)
	if err != nil {
		return nil, err
	}
	return &property, nil
}

func (r *propertyRepository) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	start := time.Now()
	result, err := r.collection.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	utils.ObserveMongo("delete_one", propertiesColl, start, err)
	if err != nil {
		return false, err
	}
	return result.DeletedCount > 0, nil
}

func (r *propertyRepository) DeleteAll(ctx context.Context) (int64, error) {
	start := time.Now()
	result, err := r.collection.DeleteMany(ctx, bson.D{})
	utils.ObserveMongo("delete_many", propertiesColl, start, err)
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

func (r *propertyRepository) Count(ctx context.Context, filter bson.D) (int64, error) {
	if filter == nil {
		filter = bson.D{}
	}
	start := time.Now()
	n, err := r.collection.CountDocuments(ctx, filter)
	utils.ObserveMongo("count_documents", propertiesColl, start, err)
	return n, err
}

func (r *propertyRepository) Aggregate(ctx context.Context, pipeline mongo.Pipeline, out interface{}) error {
	start := time.Now()
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	utils.ObserveMongo("aggregate", propertiesColl, start, err)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	start = time.Now()
	err = cursor.All(ctx, out)
	utils.ObserveMongo("cursor_all", propertiesColl, start, err)
	return err
}

func (r *propertyRepository) Recent(ctx context.Context, limit int64) ([]models.Property, error) {
	return r.FindAll(ctx, bson.D{}, bson.D{{Key: "createdAt", Value: -1}}, limit)
}
