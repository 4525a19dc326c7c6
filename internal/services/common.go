package services

import (
	"context"
	"net/url"
	"time"

	apperrors "propertyhub-api/internal/errors"
	"propertyhub-api/internal/models"
	"propertyhub-api/internal/repositories"
	"propertyhub-api/internal/search"
	"propertyhub-api/pkg/cache"
	"propertyhub-api/pkg/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// parseID turns a path parameter into an ObjectID or a 400.
func parseID(raw string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, apperrors.NewBadRequest(apperrors.ErrCodeInvalidID, apperrors.MsgInvalidID)
	}
	return id, nil
}

// canManage reports whether caller may change a resource owned by owner.
func canManage(caller *models.User, owner primitive.ObjectID) bool {
	return caller.Role == models.RoleAdmin || caller.ID == owner
}

func idsIn(ids []primitive.ObjectID) bson.D {
	return bson.D{{Key: "$in", Value: ids}}
}

// attachOwners fills OwnerDetails of every listing with one user lookup.
func attachOwners(ctx context.Context, users repositories.UserRepository, properties []models.Property) error {
	if len(properties) == 0 {
		return nil
	}

	seen := make(map[primitive.ObjectID]bool, len(properties))
	ids := make([]primitive.ObjectID, 0, len(properties))
	for _, p := range properties {
		if !seen[p.Owner] {
			seen[p.Owner] = true
			ids = append(ids, p.Owner)
		}
	}

	owners, err := users.FindByIDs(ctx, ids)
	if err != nil {
		return err
	}
	byID := make(map[primitive.ObjectID]*models.UserSummary, len(owners))
	for i := range owners {
		byID[owners[i].ID] = owners[i].Summary()
	}
	for i := range properties {
		properties[i].OwnerDetails = byID[properties[i].Owner]
	}
	return nil
}

func fromCache(ctx context.Context, store cache.Store, key string, dest interface{}) bool {
	return store.Get(ctx, key, dest) == nil
}

// toCache stores value; a failure only costs the next request a database read.
func toCache(ctx context.Context, store cache.Store, key string, value interface{}, ttl time.Duration, tags ...string) {
	if err := store.Set(ctx, key, value, ttl, tags...); err != nil {
		logger.GlobalLogger.Warnf("cache write skipped for %s: %v", key, err)
	}
}

func invalidate(ctx context.Context, store cache.Store, tags ...string) {
	if err := store.Invalidate(ctx, tags...); err != nil {
		logger.GlobalLogger.Errorf("cache invalidation failed for %v: %v", tags, err)
	}
}

func listResponse(data interface{}, count int, total int64, page, pages int) *models.ListResponse {
	return &models.ListResponse{
		Success: true,
		Count:   count,
		Total:   total,
		Page:    page,
		Pages:   pages,
		Data:    data,
	}
}

// ownedListings pages through one owner's listings, newest first, with an optional status filter.
func ownedListings(ctx context.Context, properties repositories.PropertyRepository, owner primitive.ObjectID, values url.Values, defaultLimit int) (*models.ListResponse, error) {
	f := search.Filter{}.With(search.Equal(search.FieldOwner, owner))
	if status := values.Get("status"); status != "" {
		f = f.With(search.Equal(search.FieldStatus, status))
	}

	q := search.Query{Filter: f, Page: search.ParsePage(values, defaultLimit), Sort: search.SortNewest}
	found, total, err := properties.Find(ctx, q)
	if err != nil {
		return nil, err
	}
	return listResponse(found, len(found), total, q.Page.Number, search.Pages(total, q.Page.Limit)), nil
}
