package repositories

import (
	"context"
	"errors"
	"strings"
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

const usersColl = database.UsersCollection

var newestFirst = bson.D{{Key: "createdAt", Value: -1}}

type userRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(db *mongo.Database) UserRepository {
	return &userRepository{
		collection: db.Collection(usersColl),
	}
}

func (r *userRepository) findOne(ctx context.Context, filter bson.D) (*models.User, error) {
	start := time.Now()
	var user models.User
	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		utils.ObserveMongo("find_one", usersColl, start, nil)
		return nil, nil
	}
	utils.ObserveMongo("find_one", usersColl, start, err)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) find(ctx context.Context, filter bson.D, opts *options.FindOptions) ([]models.User, error) {
	start := time.Now()
	cursor, err := r.collection.Find(ctx, filter, opts)
	utils.ObserveMongo("find", usersColl, start, err)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	start = time.Now()
	err = cursor.All(ctx, &users)
	utils.ObserveMongo("cursor_all", usersColl, start, err)
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return r.findOne(ctx, bson.D{{Key: "_id", Value: id}})
}

// FindByEmail looks the address up in its stored, lower-cased form.
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.D{{Key: "email", Value: strings.ToLower(strings.TrimSpace(email))}})
}

func (r *userRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	if len(ids) == 0 {
		return []models.User{}, nil
	}
	filter := bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}}}
	return r.find(ctx, filter, options.Find())
}

func (r *userRepository) FindByRoles(ctx context.Context, roles []string) ([]models.User, error) {
	filter := bson.D{{Key: "role", Value: bson.D{{Key: "$in", Value: roles}}}}
	return r.find(ctx, filter, options.Find().SetSort(newestFirst))
}

func (r *userRepository) List(ctx context.Context, filter bson.D, page search.Page) ([]models.User, int64, error) {
	if filter == nil {
		filter = bson.D{}
	}

	findOptions := options.Find().SetSort(newestFirst)
	if page.Limit > 0 {
		findOptions.SetSkip(page.Skip()).SetLimit(int64(page.Limit))
	}
	users, err := r.find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, err
	}
	if page.Limit == 0 {
		return users, int64(len(users)), nil
	}

	total, err := r.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	now := time.Now().UTC()
	user.ID = primitive.NewObjectID()
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.SavedProperties == nil {
		user.SavedProperties = []primitive.ObjectID{}
	}

	start := time.Now()
	_, err := r.collection.InsertOne(ctx, user)
	utils.ObserveMongo("insert", usersColl, start, err)
	return err
}

func (r *userRepository) Update(ctx context.Context, id primitive.ObjectID, fields bson.D) (*models.User, error) {
	set := append(bson.D{}, fields...)
	set = append(set, bson.E{Key: "updatedAt", Value: time.Now().UTC()})
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	start := time.Now()
	var user models.User
	err := r.collection.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: id}}, bson.D{{Key: "$set", Value: set}}, opts).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		utils.ObserveMongo("find_one_and_update", usersColl, start, nil)
		return nil, nil
	}
	utils.ObserveMongo("find_one_and_update", usersColl, start, err)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	start := time.Now()
	result, err := r.collection.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	utils.ObserveMongo("delete_one", usersColl, start, err)
	if err != nil {
		return false, err
	}
	return result.DeletedCount > 0, nil
}

func (r *userRepository) updateSaved(ctx context.Context, op string, userID, propertyID primitive.ObjectID) (bool, error) {
	update := bson.D{{Key: op, Value: bson.D{{Key: "savedProperties", Value: propertyID}}}}

	start := time.Now()
	result, err := r.collection.UpdateOne(ctx, bson.D{{Key: "_id", Value: userID}}, update)
	utils.ObserveMongo("update_one", usersColl, start, err)
	if err != nil {
		return false, err
	}
	return result.ModifiedCount > 0, nil
}

func (r *userRepository) AddSaved(ctx context.Context, userID, propertyID primitive.ObjectID) (bool, error) {
	return r.updateSaved(ctx, "$addToSet", userID, propertyID)
}

func (r *userRepository) RemoveSaved(ctx context.Context, userID, propertyID primitive.ObjectID) (bool, error) {
	return r.updateSaved(ctx, "$pull", userID, propertyID)
}

func (r *userRepository) Count(ctx context.Context, filter bson.D) (int64, error) {
	if filter == nil {
		filter = bson.D{}
	}
	start := time.Now()
	n, err := r.collection.CountDocuments(ctx, filter)
	utils.ObserveMongo("count_documents", usersColl, start, err)
	return n, err
}

func (r *userRepository) Aggregate(ctx context.Context, pipeline mongo.Pipeline, out interface{}) error {
	start := time.Now()
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	utils.ObserveMongo("aggregate", usersColl, start, err)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	start = time.Now()
	err = cursor.All(ctx, out)
	utils.ObserveMongo("cursor_all", usersColl, start, err)
	return err
}

func (r *userRepository) Recent(ctx context.Context, limit int64) ([]models.User, error) {
	return r.find(ctx, bson.D{}, options.Find().SetSort(newestFirst).SetLimit(limit))
}
