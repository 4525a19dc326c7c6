package services

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	apperrors "propertyhub-api/internal/errors"
	"propertyhub-api/internal/models"
	"propertyhub-api/internal/repositories/mocks"
	"propertyhub-api/internal/validators"
	"propertyhub-api/pkg/auth"
	"propertyhub-api/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

var testJWT = config.JWTConfig{Secret: "test-secret", Expire: time.Hour}

func newTestUserService(t *testing.T) (*UserService, *mocks.UserRepository, *mocks.PropertyRepository) {
	users := mocks.NewUserRepository(t)
	properties := mocks.NewPropertyRepository(t)
	svc := NewUserService(users, properties, testJWT)
	svc.hashCost = bcrypt.MinCost
	return svc, users, properties
}

func hashed(t *testing.T, password string) string {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestUserService_Register(t *testing.T) {
	tests := []struct {
		name     string
		in       validators.RegisterInput
		mockCall func(users *mocks.UserRepository)
		wantRole string
		wantErr  string
	}{
		{
			name: "success: defaults to buyer",
			in:   validators.RegisterInput{Name: "Ayesha Khan", Email: " Ayesha@Example.com ", Password: "secret1"},
			mockCall: func(users *mocks.UserRepository) {
				users.On("FindByEmail", mock.Anything, "ayesha@example.com").Return(nil, nil).Once()
				users.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
					return u.Email == "ayesha@example.com" &&
						u.IsActive &&
						bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("secret1")) == nil
				})).Run(func(args mock.Arguments) {
					args.Get(1).(*models.User).ID = primitive.NewObjectID()
				}).Return(nil).Once()
			},
			wantRole: models.RoleBuyer,
		},
		{
			name: "success: agent role kept",
			in:   validators.RegisterInput{Name: "Bilal", Email: "bilal@example.com", Password: "secret1", Role: "agent"},
			mockCall: func(users *mocks.UserRepository) {
				users.On("FindByEmail", mock.Anything, "bilal@example.com").Return(nil, nil).Once()
				users.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
			},
			wantRole: models.RoleAgent,
		},
		{
			name: "error: duplicate email",
			in:   validators.RegisterInput{Name: "Ayesha", Email: "taken@example.com", Password: "secret1"},
			mockCall: func(users *mocks.UserRepository) {
				users.On("FindByEmail", mock.Anything, "taken@example.com").Return(&models.User{}, nil).Once()
			},
			wantErr: apperrors.ErrCodeDuplicate,
		},
		{
			name:     "error: admin role cannot self-register",
			in:       validators.RegisterInput{Name: "Eve", Email: "eve@example.com", Password: "secret1", Role: "admin"},
			mockCall: func(*mocks.UserRepository) {},
			wantErr:  apperrors.ErrCodeValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, users, _ := newTestUserService(t)
			tt.mockCall(users)

			in := tt.in
			got, err := svc.Register(context.Background(), &in)
			if tt.wantErr != "" {
				requireAppError(t, err, http.StatusBadRequest, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Success)
			assert.Equal(t, tt.wantRole, got.User.Role)

			claims, err := auth.ValidateJWT(got.Token, testJWT.Secret)
			require.NoError(t, err)
			assert.Equal(t, got.User.Email, claims.Email)
		})
	}
}

func TestUserService_Login(t *testing.T) {
	active := &models.User{ID: primitive.NewObjectID(), Email: "a@example.com", Password: hashed(t, "secret1"), Role: models.RoleSeller, IsActive: true}
	disabled := &models.User{ID: primitive.NewObjectID(), Email: "d@example.com", Password: hashed(t, "secret1"), IsActive: false}

	tests := []struct {
		name    string
		email   string
		pass    string
		user    *models.User
		wantMsg string
	}{
		{name: "success", email: "A@example.com", pass: "secret1", user: active},
		{name: "error: unknown email", email: "x@example.com", pass: "secret1", wantMsg: apperrors.MsgInvalidCredentials},
		{name: "error: wrong password", email: "a@example.com", pass: "nope123", user: active, wantMsg: apperrors.MsgInvalidCredentials},
		{name: "error: deactivated", email: "d@example.com", pass: "secret1", user: disabled, wantMsg: apperrors.MsgAccountDisabled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, users, _ := newTestUserService(t)
			var found *models.User
			if tt.user != nil {
				found = tt.user
			}
			users.On("FindByEmail", mock.Anything, mock.AnythingOfType("string")).Return(found, nil).Once()

			got, err := svc.Login(context.Background(), &validators.LoginInput{Email: tt.email, Password: tt.pass})
			if tt.wantMsg != "" {
				appErr := requireAppError(t, err, http.StatusUnauthorized, apperrors.ErrCodeUnauthorized)
				assert.Equal(t, tt.wantMsg, appErr.UserMessage)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, got.Token)
			assert.Equal(t, tt.user.ID, got.User.ID)
		})
	}
}

func TestUserService_Authenticate(t *testing.T) {
	user := &models.User{ID: primitive.NewObjectID(), Email: "a@example.com", Role: models.RoleBuyer, IsActive: true}
	token, err := auth.GenerateJWT(user.ID.Hex(), user.Email, user.Role, testJWT.Secret, time.Hour)
	require.NoError(t, err)

	t.Run("active user", func(t *testing.T) {
		svc, users, _ := newTestUserService(t)
		users.On("FindByID", mock.Anything, user.ID).Return(user, nil).Once()

		got, err := svc.Authenticate(context.Background(), token)
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
	})

	t.Run("deleted user", func(t *testing.T) {
		svc, users, _ := newTestUserService(t)
		users.On("FindByID", mock.Anything, user.ID).Return(nil, nil).Once()

		_, err := svc.Authenticate(context.Background(), token)
		requireAppError(t, err, http.StatusUnauthorized, apperrors.ErrCodeUnauthorized)
	})

	t.Run("deactivated user", func(t *testing.T) {
		svc, users, _ := newTestUserService(t)
		users.On("FindByID", mock.Anything, user.ID).Return(&models.User{ID: user.ID}, nil).Once()

		_, err := svc.Authenticate(context.Background(), token)
		appErr := requireAppError(t, err, http.StatusUnauthorized, apperrors.ErrCodeUnauthorized)
		assert.Equal(t, apperrors.MsgAccountDisabled, appErr.UserMessage)
	})

	t.Run("forged token", func(t *testing.T) {
		svc, _, _ := newTestUserService(t)
		forged, err := auth.GenerateJWT(user.ID.Hex(), user.Email, models.RoleAdmin, "other-secret", time.Hour)
		require.NoError(t, err)

		_, err = svc.Authenticate(context.Background(), forged)
		requireAppError(t, err, http.StatusUnauthorized, apperrors.ErrCodeUnauthorized)
	})
}

func TestUserService_ChangePassword(t *testing.T) {
	caller := &models.User{ID: primitive.NewObjectID(), Email: "a@example.com", Password: hashed(t, "old-secret"), IsActive: true}

	t.Run("wrong current password", func(t *testing.T) {
		svc, _, _ := newTestUserService(t)
		_, err := svc.ChangePassword(context.Background(), caller, &validators.PasswordInput{CurrentPassword: "guess", NewPassword: "new-secret"})
		appErr := requireAppError(t, err, http.StatusUnauthorized, apperrors.ErrCodeUnauthorized)
		assert.Equal(t, apperrors.MsgWrongPassword, appErr.UserMessage)
	})

	t.Run("stores a new hash", func(t *testing.T) {
		svc, users, _ := newTestUserService(t)
		users.On("Update", mock.Anything, caller.ID, mock.MatchedBy(func(fields bson.D) bool {
			return len(fields) == 1 &&
				fields[0].Key == "password" &&
				bcrypt.CompareHashAndPassword([]byte(fields[0].Value.(string)), []byte("new-secret")) == nil
		})).Return(caller, nil).Once()

		got, err := svc.ChangePassword(context.Background(), caller, &validators.PasswordInput{CurrentPassword: "old-secret", NewPassword: "new-secret"})
		require.NoError(t, err)
		assert.NotEmpty(t, got.Token)
	})
}

func TestUserService_Favorites(t *testing.T) {
	propertyID := primitive.NewObjectID()
	ownerID := primitive.NewObjectID()

	t.Run("add saves the listing", func(t *testing.T) {
		svc, users, properties := newTestUserService(t)
		caller := &models.User{ID: primitive.NewObjectID()}
		properties.On("FindByID", mock.Anything, propertyID).Return(&models.Property{ID: propertyID}, nil).Once()
		users.On("AddSaved", mock.Anything, caller.ID, propertyID).Return(true, nil).Once()

		saved, err := svc.AddFavorite(context.Background(), caller, propertyID.Hex())
		require.NoError(t, err)
		assert.Equal(t, []primitive.ObjectID{propertyID}, saved)
	})

	t.Run("add twice is rejected", func(t *testing.T) {
		svc, users, properties := newTestUserService(t)
		caller := &models.User{ID: primitive.NewObjectID(), SavedProperties: []primitive.ObjectID{propertyID}}
		properties.On("FindByID", mock.Anything, propertyID).Return(&models.Property{ID: propertyID}, nil).Once()
		users.On("AddSaved", mock.Anything, caller.ID, propertyID).Return(false, nil).Once()

		_, err := svc.AddFavorite(context.Background(), caller, propertyID.Hex())
		appErr := requireAppError(t, err, http.StatusBadRequest, apperrors.ErrCodeDuplicate)
		assert.Equal(t, apperrors.MsgAlreadyFavorite, appErr.UserMessage)
	})

	t.Run("add missing listing", func(t *testing.T) {
		svc, _, properties := newTestUserService(t)
		properties.On("FindByID", mock.Anything, propertyID).Return(nil, nil).Once()

		_, err := svc.AddFavorite(context.Background(), &models.User{}, propertyID.Hex())
		requireAppError(t, err, http.StatusNotFound, apperrors.ErrCodePropertyNotFound)
	})

	t.Run("add with malformed id", func(t *testing.T) {
		svc, _, _ := newTestUserService(t)
		_, err := svc.AddFavorite(context.Background(), &models.User{}, "not-an-id")
		requireAppError(t, err, http.StatusBadRequest, apperrors.ErrCodeInvalidID)
	})

	t.Run("remove unsaved listing", func(t *testing.T) {
		svc, users, _ := newTestUserService(t)
		caller := &models.User{ID: primitive.NewObjectID()}
		users.On("RemoveSaved", mock.Anything, caller.ID, propertyID).Return(false, nil).Once()

		_, err := svc.RemoveFavorite(context.Background(), caller, propertyID.Hex())
		appErr := requireAppError(t, err, http.StatusBadRequest, apperrors.ErrCodeInvalidParameters)
		assert.Equal(t, apperrors.MsgNotFavorite, appErr.UserMessage)
	})

	t.Run("remove saved listing", func(t *testing.T) {
		svc, users, _ := newTestUserService(t)
		other := primitive.NewObjectID()
		caller := &models.User{ID: primitive.NewObjectID(), SavedProperties: []primitive.ObjectID{propertyID, other}}
		users.On("RemoveSaved", mock.Anything, caller.ID, propertyID).Return(true, nil).Once()

		saved, err := svc.RemoveFavorite(context.Background(), caller, propertyID.Hex())
		require.NoError(t, err)
		assert.Equal(t, []primitive.ObjectID{other}, saved)
	})

	t.Run("list expands owners", func(t *testing.T) {
		svc, users, properties := newTestUserService(t)
		caller := &models.User{ID: primitive.NewObjectID(), SavedProperties: []primitive.ObjectID{propertyID}}
		properties.On("FindAll", mock.Anything, mock.Anything, mock.Anything, int64(0)).
			Return([]models.Property{{ID: propertyID, Owner: ownerID}}, nil).Once()
		users.On("FindByIDs", mock.Anything, []primitive.ObjectID{ownerID}).
			Return([]models.User{{ID: ownerID, Name: "Owner"}}, nil).Once()

		got, err := svc.Favorites(context.Background(), caller)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Owner", got[0].OwnerDetails.Name)
	})

	t.Run("list with nothing saved skips the database", func(t *testing.T) {
		svc, _, _ := newTestUserService(t)
		got, err := svc.Favorites(context.Background(), &models.User{})
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestUserService_UpdateProfile_RepositoryError(t *testing.T) {
	svc, users, _ := newTestUserService(t)
	caller := &models.User{ID: primitive.NewObjectID()}
	users.On("Update", mock.Anything, caller.ID, bson.D{{Key: "name", Value: "New Name"}}).
		Return(nil, errors.New("write conflict")).Once()

	_, err := svc.UpdateProfile(context.Background(), caller, &validators.ProfileInput{Name: " New Name "})
	assert.ErrorContains(t, err, "write conflict")
}
