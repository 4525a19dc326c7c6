package services

import (
	"context"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	apperrors "propertyhub-api/internal/errors"
	"propertyhub-api/internal/models"
	"propertyhub-api/internal/repositories"
	"propertyhub-api/internal/search"
	"propertyhub-api/internal/stats"
	"propertyhub-api/internal/validators"
	"propertyhub-api/pkg/cache"
	"propertyhub-api/pkg/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

type AdminService struct {
	users      repositories.UserRepository
	properties repositories.PropertyRepository
	aggregator *stats.Aggregator
	cache      cache.Store
	hashCost   int
}

func NewAdminService(users repositories.UserRepository, properties repositories.PropertyRepository, aggregator *stats.Aggregator, store cache.Store) *AdminService {
	return &AdminService{
		users:      users,
		properties: properties,
		aggregator: aggregator,
		cache:      store,
		hashCost:   bcrypt.DefaultCost,
	}
}

func (s *AdminService) Dashboard(ctx context.Context) (*stats.Dashboard, error) {
	return s.aggregator.Dashboard(ctx)
}

func (s *AdminService) PropertyStats(ctx context.Context) (*stats.PropertyBreakdown, error) {
	return s.aggregator.PropertyBreakdown(ctx)
}

func (s *AdminService) AgentStats(ctx context.Context) ([]stats.OwnerStats, error) {
	return s.aggregator.AgentStats(ctx)
}

func (s *AdminService) OwnerStats(ctx context.Context) ([]stats.OwnerStats, error) {
	return s.aggregator.OwnerStats(ctx)
}

// UserFilter builds the admin user query from role, isActive and search.
func UserFilter(values url.Values) bson.D {
	filter := bson.D{}
	if role := values.Get("role"); role != "" {
		filter = append(filter, bson.E{Key: "role", Value: role})
	}
	if raw := values.Get("isActive"); raw != "" {
		active, _ := strconv.ParseBool(raw)
		filter = append(filter, bson.E{Key: "isActive", Value: active})
	}
	if term := strings.TrimSpace(values.Get("search")); term != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
		filter = append(filter, bson.E{Key: "$or", Value: bson.A{
			bson.D{{Key: "name", Value: pattern}},
			bson.D{{Key: "email", Value: pattern}},
		}})
	}
	return filter
}

func (s *AdminService) ListUsers(ctx context.Context, values url.Values) ([]models.User, error) {
	users, _, err := s.users.List(ctx, UserFilter(values), search.Page{Number: 1})
	return users, err
}

// UserDetail is a user with the number of listings they own.
type UserDetail struct {
	*models.User
	PropertyCount int64 `json:"propertyCount"`
}

func (s *AdminService) loadUser(ctx context.Context, rawID string) (*models.User, error) {
	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NewNotFound("User")
	}
	return user, nil
}

func (s *AdminService) GetUser(ctx context.Context, rawID string) (*UserDetail, error) {
	user, err := s.loadUser(ctx, rawID)
	if err != nil {
		return nil, err
	}
	count, err := s.properties.Count(ctx, bson.D{{Key: "owner", Value: user.ID}})
	if err != nil {
		return nil, err
	}
	return &UserDetail{User: user, PropertyCount: count}, nil
}

func (s *AdminService) emailTaken(ctx context.Context, email string, except primitive.ObjectID) error {
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != except {
		return apperrors.NewBadRequest(apperrors.ErrCodeDuplicate, apperrors.MsgEmailTaken)
	}
	return nil
}

func (s *AdminService) CreateUser(ctx context.Context, in *validators.AdminCreateUserInput) (*models.User, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := s.emailTaken(ctx, in.Email, primitive.NilObjectID); err != nil {
		return nil, err
	}

	hashed, err := hashPassword(in.Password, s.hashCost)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: hashed,
		Phone:    in.Phone,
		Role:     in.Role,
		IsActive: true,
	}
	if user.Role == "" {
		user.Role = models.RoleBuyer
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AdminService) UpdateUser(ctx context.Context, rawID string, in *validators.AdminUpdateUserInput) (*models.User, error) {
	if err := validators.ValidateStruct(in); err != nil {
		return nil, err
	}
	user, err := s.loadUser(ctx, rawID)
	if err != nil {
		return nil, err
	}

	fields := in.Fields(user.Role)
	if len(fields) == 0 {
		return user, nil
	}
	for _, f := range fields {
		if f.Key == "email" && f.Value != user.Email {
			if err := s.emailTaken(ctx, f.Value.(string), user.ID); err != nil {
				return nil, err
			}
		}
	}

	updated, err := s.users.Update(ctx, user.ID, fields)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, apperrors.NewNotFound("User")
	}
	return updated, nil
}

// ToggleStatus flips isActive; admins cannot deactivate themselves.
func (s *AdminService) ToggleStatus(ctx context.Context, caller *models.User, rawID string) (*models.User, error) {
	user, err := s.loadUser(ctx, rawID)
	if err != nil {
		return nil, err
	}
	if user.ID == caller.ID {
		return nil, apperrors.NewBadRequest(apperrors.ErrCodeInvalidParameters, apperrors.MsgSelfDeactivate)
	}

	updated, err := s.users.Update(ctx, user.ID, bson.D{{Key: "isActive", Value: !user.IsActive}})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, apperrors.NewNotFound("User")
	}
	logger.GlobalLogger.Printf("admin %s set user %s active=%t", caller.ID.Hex(), updated.ID.Hex(), updated.IsActive)
	return updated, nil
}

func (s *AdminService) DeleteUser(ctx context.Context, caller *models.User, rawID string) error {
	user, err := s.loadUser(ctx, rawID)
	if err != nil {
		return err
	}
	if user.ID == caller.ID {
		return apperrors.NewBadRequest(apperrors.ErrCodeInvalidParameters, apperrors.MsgSelfDelete)
	}

	deleted, err := s.users.Delete(ctx, user.ID)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.NewNotFound("User")
	}
	return nil
}

// OwnerListings is a user with every listing they own.
type OwnerListings struct {
	*models.User
	Properties    []models.Property `json:"properties"`
	PropertyCount int               `json:"propertyCount"`
}

// withListings loads the listings of all users with one query.
func (s *AdminService) withListings(ctx context.Context, roles []string, dropEmpty bool) ([]OwnerListings, error) {
	users, err := s.users.FindByRoles(ctx, roles)
	if err != nil {
		return nil, err
	}
	out := make([]OwnerListings, 0, len(users))
	if len(users) == 0 {
		return out, nil
	}

	ids := make([]primitive.ObjectID, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	listings, err := s.properties.FindAll(ctx, bson.D{{Key: "owner", Value: idsIn(ids)}}, search.SortNewest.BSON(), 0)
	if err != nil {
		return nil, err
	}
	byOwner := make(map[primitive.ObjectID][]models.Property, len(users))
	for _, p := range listings {
		byOwner[p.Owner] = append(byOwner[p.Owner], p)
	}

	for i := range users {
		owned := byOwner[users[i].ID]
		if len(owned) == 0 {
			if dropEmpty {
				continue
			}
			owned = []models.Property{}
		}
		out = append(out, OwnerListings{User: &users[i], Properties: owned, PropertyCount: len(owned)})
	}
	return out, nil
}

func (s *AdminService) Agents(ctx context.Context) ([]OwnerListings, error) {
	return s.withListings(ctx, []string{models.RoleAgent}, false)
}

// Owners lists sellers and agents with at least one listing.
func (s *AdminService) Owners(ctx context.Context) ([]OwnerListings, error) {
	return s.withListings(ctx, models.OwnerRoles, true)
}

func (s *AdminService) UserProperties(ctx context.Context, rawID string) ([]models.Property, error) {
	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}
	properties, err := s.properties.FindAll(ctx, bson.D{{Key: "owner", Value: id}}, search.SortNewest.BSON(), 0)
	if err != nil {
		return nil, err
	}
	if err := attachOwners(ctx, s.users, properties); err != nil {
		return nil, err
	}
	return properties, nil
}

// Properties lists every listing, optionally filtered by status, purpose and type.
func (s *AdminService) Properties(ctx context.Context, values url.Values) ([]models.Property, error) {
	filter := bson.D{}
	for _, field := range []string{"status", "purpose", "propertyType"} {
		if v := values.Get(field); v != "" {
			filter = append(filter, bson.E{Key: field, Value: v})
		}
	}
	properties, err := s.properties.FindAll(ctx, filter, search.SortNewest.BSON(), 0)
	if err != nil {
		return nil, err
	}
	if err := attachOwners(ctx, s.users, properties); err != nil {
		return nil, err
	}
	return properties, nil
}

func (s *AdminService) UpdatePropertyStatus(ctx context.Context, rawID string, in *validators.StatusInput) (*models.Property, error) {
	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}
	if err := validators.ValidateStruct(in); err != nil {
		return nil, err
	}

	property, err := s.properties.UpdateStatus(ctx, id, in.Status)
	if err != nil {
		return nil, err
	}
	if property == nil {
		return nil, apperrors.NewNotFound("Property")
	}
	invalidate(ctx, s.cache, cache.TagListings, cache.PropertyTag(id.Hex()))

	if owner, err := s.users.FindByID(ctx, property.Owner); err == nil && owner != nil {
		property.OwnerDetails = owner.Summary()
	}
	return property, nil
}

func (s *AdminService) DeleteProperty(ctx context.Context, rawID string) error {
	id, err := parseID(rawID)
	if err != nil {
		return err
	}
	deleted, err := s.properties.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.NewNotFound("Property")
	}
	invalidate(ctx, s.cache, cache.TagListings, cache.PropertyTag(id.Hex()))
	return nil
}
