package services

import (
	"context"
	"fmt"
	"net/http"

	apperrors "propertyhub-api/internal/errors"
	"propertyhub-api/internal/models"
	"propertyhub-api/internal/repositories"
	"propertyhub-api/internal/validators"
	"propertyhub-api/pkg/auth"
	"propertyhub-api/pkg/config"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	users      repositories.UserRepository
	properties repositories.PropertyRepository
	jwt        config.JWTConfig
	hashCost   int
}

func NewUserService(users repositories.UserRepository, properties repositories.PropertyRepository, jwt config.JWTConfig) *UserService {
	return &UserService{
		users:      users,
		properties: properties,
		jwt:        jwt,
		hashCost:   bcrypt.DefaultCost,
	}
}

func hashPassword(password string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %v", err)
	}
	return string(hashed), nil
}

func (s *UserService) authResponse(user *models.User) (*models.AuthResponse, error) {
	token, err := auth.GenerateJWT(user.ID.Hex(), user.Email, user.Role, s.jwt.Secret, s.jwt.Expire)
	if err != nil {
		return nil, apperrors.NewInternal("generate token", err)
	}
	return &models.AuthResponse{Success: true, Token: token, User: user.Summary()}, nil
}

func (s *UserService) Register(ctx context.Context, in *validators.RegisterInput) (*models.AuthResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.NewBadRequest(apperrors.ErrCodeDuplicate, apperrors.MsgEmailTaken)
	}

	hashed, err := hashPassword(in.Password, s.hashCost)
	if err != nil {
		return nil, err
	}

	role := in.Role
	if role == "" {
		role = models.RoleBuyer
	}
	user := &models.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: hashed,
		Phone:    in.Phone,
		Role:     role,
		IsActive: true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return s.authResponse(user)
}

func (s *UserService) Login(ctx context.Context, in *validators.LoginInput) (*models.AuthResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	user, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NewUnauthorized(apperrors.MsgInvalidCredentials)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		return nil, apperrors.NewUnauthorized(apperrors.MsgInvalidCredentials)
	}
	if !user.IsActive {
		return nil, apperrors.NewUnauthorized(apperrors.MsgAccountDisabled)
	}
	return s.authResponse(user)
}

// Authenticate resolves a bearer token to an active user.
func (s *UserService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	claims, err := auth.ValidateJWT(token, s.jwt.Secret)
	if err != nil {
		return nil, apperrors.NewAppError(err.Error(), apperrors.MsgNotAuthorized, apperrors.ErrCodeUnauthorized, http.StatusUnauthorized, err)
	}
	id, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return nil, apperrors.NewUnauthorized(apperrors.MsgNotAuthorized)
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NewUnauthorized(apperrors.MsgNotAuthorized)
	}
	if !user.IsActive {
		return nil, apperrors.NewUnauthorized(apperrors.MsgAccountDisabled)
	}
	return user, nil
}

// ChangePassword checks the current password and returns a fresh token.
func (s *UserService) ChangePassword(ctx context.Context, caller *models.User, in *validators.PasswordInput) (*models.AuthResponse, error) {
	if err := validators.ValidateStruct(in); err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(caller.Password), []byte(in.CurrentPassword)); err != nil {
		return nil, apperrors.NewUnauthorized(apperrors.MsgWrongPassword)
	}

	hashed, err := hashPassword(in.NewPassword, s.hashCost)
	if err != nil {
		return nil, err
	}
	user, err := s.users.Update(ctx, caller.ID, bson.D{{Key: "password", Value: hashed}})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NewNotFound("User")
	}
	return s.authResponse(user)
}

// Profile is a user with saved listings expanded.
type Profile struct {
	*models.User
	SavedProperties []models.Property `json:"savedProperties"`
}

func (s *UserService) Profile(ctx context.Context, caller *models.User) (*Profile, error) {
	saved, err := s.Favorites(ctx, caller)
	if err != nil {
		return nil, err
	}
	return &Profile{User: caller, SavedProperties: saved}, nil
}

// UpdateProfile changes name, phone and avatar; empty fields are kept.
func (s *UserService) UpdateProfile(ctx context.Context, caller *models.User, in *validators.ProfileInput) (*models.User, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	fields := in.Fields()
	if len(fields) == 0 {
		return caller, nil
	}

	user, err := s.users.Update(ctx, caller.ID, fields)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NewNotFound("User")
	}
	return user, nil
}

func (s *UserService) Favorites(ctx context.Context, caller *models.User) ([]models.Property, error) {
	if len(caller.SavedProperties) == 0 {
		return []models.Property{}, nil
	}

	filter := bson.D{{Key: "_id", Value: idsIn(caller.SavedProperties)}}
	properties, err := s.properties.FindAll(ctx, filter, nil, 0)
	if err != nil {
		return nil, err
	}
	if err := attachOwners(ctx, s.users, properties); err != nil {
		return nil, err
	}
	return properties, nil
}

// AddFavorite saves a listing for the caller and returns the saved ids.
func (s *UserService) AddFavorite(ctx context.Context, caller *models.User, rawID string) ([]primitive.ObjectID, error) {
	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}

	property, err := s.properties.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if property == nil {
		return nil, apperrors.NewNotFound("Property")
	}

	added, err := s.users.AddSaved(ctx, caller.ID, id)
	if err != nil {
		return nil, err
	}
	if !added {
		return nil, apperrors.NewBadRequest(apperrors.ErrCodeDuplicate, apperrors.MsgAlreadyFavorite)
	}
	return append(append([]primitive.ObjectID{}, caller.SavedProperties...), id), nil
}

func (s *UserService) RemoveFavorite(ctx context.Context, caller *models.User, rawID string) ([]primitive.ObjectID, error) {
	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}

	removed, err := s.users.RemoveSaved(ctx, caller.ID, id)
	if err != nil {
		return nil, err
	}
	if !removed {
		return nil, apperrors.NewBadRequest(apperrors.ErrCodeInvalidParameters, apperrors.MsgNotFavorite)
	}

	remaining := make([]primitive.ObjectID, 0, len(caller.SavedProperties))
	for _, saved := range caller.SavedProperties {
		if saved != id {
			remaining = append(remaining, saved)
		}
	}
	return remaining, nil
}
