package repositories

import (
	"context"
	"errors"
	"time"

	"propertyhub-api/internal/models"
	"propertyhub-api/internal/utils"
	"propertyhub-api/pkg/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const inquiriesColl = database.InquiriesCollection

type inquiryRepository struct {
	collection *mongo.Collection
}

func NewInquiryRepository(db *mongo.Database) InquiryRepository {
	return &inquiryRepository{collection: db.Collection(inquiriesColl)}
}

func (r *inquiryRepository) Create(ctx context.Context, inquiry *models.Inquiry) error {
	now := time.Now().UTC()
	inquiry.ID = primitive.NewObjectID()
	inquiry.CreatedAt = now
	inquiry.UpdatedAt = now
	if inquiry.Status == "" {
		inquiry.Status = models.InquiryNew
	}

	start := time.Now()
	_, err := r.collection.InsertOne(ctx, inquiry)
	utils.ObserveMongo("insert", inquiriesColl, start, err)
	return err
}

func (r *inquiryRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Inquiry, error) {
	start := time.Now()
	var inquiry models.Inquiry
	err := r.collection.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&inquiry)
	if errors.Is(err, mongo.ErrNoDocuments) {
		utils.ObserveMongo("find_one", inquiriesColl, start, nil)
		return nil, nil
	}
	utils.ObserveMongo("find_one", inquiriesColl, start, err)
	if err != nil {
		return nil, err
	}
	return &inquiry, nil
}

func (r *inquiryRepository) Find(ctx context.Context, filter bson.D, limit int64) ([]models.Inquiry, error) {
	if filter == nil {
		filter = bson.D{}
	}
	findOptions := options.Find().SetSort(newestFirst)
	if limit > 0 {
		findOptions.SetLimit(limit)
	}

	start := time.Now()
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	utils.ObserveMongo("find", inquiriesColl, start, err)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	inquiries := []models.Inquiry{}
	start = time.Now()
	err = cursor.All(ctx, &inquiries)
	utils.ObserveMongo("cursor_all", inquiriesColl, start, err)
	if err != nil {
		return nil, err
	}
	return inquiries, nil
}

func (r *inquiryRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Inquiry, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "status", Value: status},
		{Key: "updatedAt", Value: time.Now().UTC()},
	}}}

	start := time.Now()
	var inquiry models.Inquiry
	err := r.collection.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: id}}, update, opts).Decode(&inquiry)
	if errors.Is(err, mongo.ErrNoDocuments) {
		utils.ObserveMongo("find_one_and_update", inquiriesColl, start, nil)
		return nil, nil
	}
	utils.ObserveMongo("find_one_and_update", inquiriesColl, start, err)
	if err != nil {
		return nil, err
	}
	return &inquiry, nil
}

func (r *inquiryRepository) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	start := time.Now()
	result, err := r.collection.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	utils.ObserveMongo("delete_one", inquiriesColl, start, err)
	if err != nil {
		return false, err
	}
	return result.DeletedCount > 0, nil
}

func (r *inquiryRepository) Count(ctx context.Context, filter bson.D) (int64, error) {
	if filter == nil {
		filter = bson.D{}
	}
	start := time.Now()
	n, err := r.collection.CountDocuments(ctx, filter)
	utils.ObserveMongo("count_documents", inquiriesColl, start, err)
	return n, err
}
