package services

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	apperrors "propertyhub-api/internal/errors"
	"propertyhub-api/internal/models"
	"propertyhub-api/internal/repositories/mocks"
	"propertyhub-api/internal/search"
	"propertyhub-api/internal/stats"
	"propertyhub-api/internal/validators"
	"propertyhub-api/pkg/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

type adminFixture struct {
	svc        *AdminService
	users      *mocks.UserRepository
	properties *mocks.PropertyRepository
	store      *memStore
}

func newAdminFixture(t *testing.T) adminFixture {
	users := mocks.NewUserRepository(t)
	properties := mocks.NewPropertyRepository(t)
	store := newMemStore()
	svc := NewAdminService(users, properties, stats.NewAggregator(properties, users), store)
	svc.hashCost = bcrypt.MinCost
	return adminFixture{svc: svc, users: users, properties: properties, store: store}
}

func TestUserFilter(t *testing.T) {
	filter := UserFilter(url.Values{"role": {"agent"}, "isActive": {"false"}, "search": {"khan"}})

	require.Len(t, filter, 3)
	assert.Equal(t, bson.E{Key: "role", Value: "agent"}, filter[0])
	assert.Equal(t, bson.E{Key: "isActive", Value: false}, filter[1])
	assert.Equal(t, "$or", filter[2].Key)

	assert.Empty(t, UserFilter(url.Values{}))
}

func TestAdminService_SelfProtection(t *testing.T) {
	admin := &models.User{ID: primitive.NewObjectID(), Role: models.RoleAdmin, IsActive: true}

	t.Run("cannot deactivate self", func(t *testing.T) {
		f := newAdminFixture(t)
		f.users.On("FindByID", mock.Anything, admin.ID).Return(admin, nil).Once()

		_, err := f.svc.ToggleStatus(context.Background(), admin, admin.ID.Hex())
		appErr := requireAppError(t, err, http.StatusBadRequest, apperrors.ErrCodeInvalidParameters)
		assert.Equal(t, apperrors.MsgSelfDeactivate, appErr.UserMessage)
	})

	t.Run("cannot delete self", func(t *testing.T) {
		f := newAdminFixture(t)
		f.users.On("FindByID", mock.Anything, admin.ID).Return(admin, nil).Once()

		err := f.svc.DeleteUser(context.Background(), admin, admin.ID.Hex())
		appErr := requireAppError(t, err, http.StatusBadRequest, apperrors.ErrCodeInvalidParameters)
		assert.Equal(t, apperrors.MsgSelfDelete, appErr.UserMessage)
	})
}

func TestAdminService_ToggleStatus(t *testing.T) {
	f := newAdminFixture(t)
	admin := &models.User{ID: primitive.NewObjectID(), Role: models.RoleAdmin}
	target := &models.User{ID: primitive.NewObjectID(), IsActive: true}
	f.users.On("FindByID", mock.Anything, target.ID).Return(target, nil).Once()
	f.users.On("Update", mock.Anything, target.ID, bson.D{{Key: "isActive", Value: false}}).
		Return(&models.User{ID: target.ID, IsActive: false}, nil).Once()

	got, err := f.svc.ToggleStatus(context.Background(), admin, target.ID.Hex())
	require.NoError(t, err)
	assert.False(t, got.IsActive)
}

func TestAdminService_CreateUser(t *testing.T) {
	inactive := false

	t.Run("duplicate email", func(t *testing.T) {
		f := newAdminFixture(t)
		f.users.On("FindByEmail", mock.Anything, "dup@example.com").Return(&models.User{ID: primitive.NewObjectID()}, nil).Once()

		_, err := f.svc.CreateUser(context.Background(), &validators.AdminCreateUserInput{Name: "Dup", Email: "dup@example.com", Password: "secret1"})
		requireAppError(t, err, http.StatusBadRequest, apperrors.ErrCodeDuplicate)
	})

	t.Run("admin role and inactive flag honoured", func(t *testing.T) {
		f := newAdminFixture(t)
		f.users.On("FindByEmail", mock.Anything, "ops@example.com").Return(nil, nil).Once()
		f.users.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
			return u.Role == models.RoleAdmin && !u.IsActive && u.Password != "secret1"
		})).Return(nil).Once()

		got, err := f.svc.CreateUser(context.Background(), &validators.AdminCreateUserInput{
			Name: "Ops", Email: "OPS@example.com", Password: "secret1", Role: "admin", IsActive: &inactive,
		})
		require.NoError(t, err)
		assert.Equal(t, models.RoleAdmin, got.Role)
	})
}

func TestAdminService_UpdateUser_EmailTakenByOther(t *testing.T) {
	f := newAdminFixture(t)
	target := &models.User{ID: primitive.NewObjectID(), Email: "old@example.com", Role: models.RoleBuyer}
	email := "taken@example.com"
	f.users.On("FindByID", mock.Anything, target.ID).Return(target, nil).Once()
	f.users.On("FindByEmail", mock.Anything, email).Return(&models.User{ID: primitive.NewObjectID()}, nil).Once()

	_, err := f.svc.UpdateUser(context.Background(), target.ID.Hex(), &validators.AdminUpdateUserInput{Email: &email})
	requireAppError(t, err, http.StatusBadRequest, apperrors.ErrCodeDuplicate)
}

func TestAdminService_Owners(t *testing.T) {
	f := newAdminFixture(t)
	seller, agent := primitive.NewObjectID(), primitive.NewObjectID()
	f.users.On("FindByRoles", mock.Anything, models.OwnerRoles).
		Return([]models.User{{ID: seller, Role: models.RoleSeller}, {ID: agent, Role: models.RoleAgent}}, nil).Once()
	f.properties.On("FindAll", mock.Anything, bson.D{{Key: "owner", Value: bson.D{{Key: "$in", Value: []primitive.ObjectID{seller, agent}}}}}, search.SortNewest.BSON(), int64(0)).
		Return([]models.Property{{Owner: seller}, {Owner: seller}}, nil).Once()

	got, err := f.svc.Owners(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, seller, got[0].ID)
	assert.Equal(t, 2, got[0].PropertyCount)
}

func TestAdminService_Agents_KeepsEmpty(t *testing.T) {
	f := newAdminFixture(t)
	agent := primitive.NewObjectID()
	f.users.On("FindByRoles", mock.Anything, []string{models.RoleAgent}).
		Return([]models.User{{ID: agent, Role: models.RoleAgent}}, nil).Once()
	f.properties.On("FindAll", mock.Anything, mock.Anything, mock.Anything, int64(0)).Return([]models.Property{}, nil).Once()

	got, err := f.svc.Agents(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.NotNil(t, got[0].Properties)
	assert.Zero(t, got[0].PropertyCount)
}

func TestAdminService_UpdatePropertyStatus(t *testing.T) {
	t.Run("invalid status", func(t *testing.T) {
		f := newAdminFixture(t)
		_, err := f.svc.UpdatePropertyStatus(context.Background(), primitive.NewObjectID().Hex(), &validators.StatusInput{Status: "pending"})
		requireAppError(t, err, http.StatusBadRequest, apperrors.ErrCodeValidation)
	})

	t.Run("updates and invalidates", func(t *testing.T) {
		f := newAdminFixture(t)
		id, owner := primitive.NewObjectID(), primitive.NewObjectID()
		f.properties.On("UpdateStatus", mock.Anything, id, models.StatusSold).
			Return(&models.Property{ID: id, Owner: owner, Status: models.StatusSold}, nil).Once()
		f.users.On("FindByID", mock.Anything, owner).Return(&models.User{ID: owner, Name: "Seller"}, nil).Once()

		got, err := f.svc.UpdatePropertyStatus(context.Background(), id.Hex(), &validators.StatusInput{Status: "sold"})
		require.NoError(t, err)
		assert.Equal(t, "Seller", got.OwnerDetails.Name)
		assert.Contains(t, f.store.invalidated, cache.TagListings)
	})
}

func TestAdminService_DeleteProperty_Missing(t *testing.T) {
	f := newAdminFixture(t)
	id := primitive.NewObjectID()
	f.properties.On("Delete", mock.Anything, id).Return(false, nil).Once()

	err := f.svc.DeleteProperty(context.Background(), id.Hex())
	requireAppError(t, err, http.StatusNotFound, apperrors.ErrCodePropertyNotFound)
	assert.Empty(t, f.store.invalidated)
}
