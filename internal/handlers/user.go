package handlers

import (
	"net/http"

	"propertyhub-api/internal/services"
	"propertyhub-api/internal/validators"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Register godoc
// @Summary Register a new user
// @Description Creates a buyer, seller or agent account and returns a token
// @Tags Authentication
// @Accept json
// @Produce json
// @Param user body validators.RegisterInput true "Registration data"
// @Success 201 {object} models.AuthResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /auth/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var in validators.RegisterInput
	if !bindJSON(c, &in) {
		return
	}
	resp, err := h.userService.Register(c.Request.Context(), &in)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Login godoc
// @Summary Log in
// @Tags Authentication
// @Accept json
// @Produce json
// @Param credentials body validators.LoginInput true "Credentials"
// @Success 200 {object} models.AuthResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var in validators.LoginInput
	if !bindJSON(c, &in) {
		return
	}
	resp, err := h.userService.Login(c.Request.Context(), &in)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Me godoc
// @Summary Current user
// @Tags Authentication
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.DataResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/me [get]
func (h *UserHandler) Me(c *gin.Context) {
	respond(c, http.StatusOK, currentUser(c))
}

// ChangePassword godoc
// @Summary Change password
// @Description Verifies the current password and returns a fresh token
// @Tags Authentication
// @Accept json
// @Produce json
// @Param body body validators.PasswordInput true "Passwords"
// @Security BearerAuth
// @Success 200 {object} models.AuthResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/update-password [put]
// @Router /auth/password [put]
func (h *UserHandler) ChangePassword(c *gin.Context) {
	var in validators.PasswordInput
	if !bindJSON(c, &in) {
		return
	}
	resp, err := h.userService.ChangePassword(c.Request.Context(), currentUser(c), &in)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetProfile godoc
// @Summary Profile with saved properties
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.DataResponse
// @Router /users/profile [get]
func (h *UserHandler) GetProfile(c *gin.Context) {
	profile, err := h.userService.Profile(c.Request.Context(), currentUser(c))
	if err != nil {
		c.Error(err)
		return
	}
	respond(c, http.StatusOK, profile)
}

// UpdateProfile godoc
// @Summary Update name, phone or avatar
// @Tags Users
// @Accept json
// @Produce json
// @Param body body validators.ProfileInput true "Profile"
// @Security BearerAuth
// @Success 200 {object} models.DataResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /users/profile [put]
// @Router /auth/update-profile [put]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var in validators.ProfileInput
	if !bindJSON(c, &in) {
		return
	}
	user, err := h.userService.UpdateProfile(c.Request.Context(), currentUser(c), &in)
	if err != nil {
		c.Error(err)
		return
	}
	respondMessage(c, "Profile updated successfully", user)
}

// GetFavorites godoc
// @Summary Saved properties
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.DataResponse
// @Router /users/favorites [get]
func (h *UserHandler) GetFavorites(c *gin.Context) {
	properties, err := h.userService.Favorites(c.Request.Context(), currentUser(c))
	if err != nil {
		c.Error(err)
		return
	}
	respondCount(c, len(properties), properties)
}

// AddFavorite godoc
// @Summary Save a property
// @Tags Users
// @Produce json
// @Param propertyId path string true "Property ID"
// @Security BearerAuth
// @Success 200 {object} models.DataResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /users/favorites/{propertyId} [post]
func (h *UserHandler) AddFavorite(c *gin.Context) {
	saved, err := h.userService.AddFavorite(c.Request.Context(), currentUser(c), c.Param("propertyId"))
	if err != nil {
		c.Error(err)
		return
	}
	respondMessage(c, "Property added to favorites", saved)
}

// RemoveFavorite godoc
// @Summary Unsave a property
// @Tags Users
// @Produce json
// @Param propertyId path string true "Property ID"
// @Security BearerAuth
// @Success 200 {object} models.DataResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /users/favorites/{propertyId} [delete]
func (h *UserHandler) RemoveFavorite(c *gin.Context) {
	saved, err := h.userService.RemoveFavorite(c.Request.Context(), currentUser(c), c.Param("propertyId"))
	if err != nil {
		c.Error(err)
		return
	}
	respondMessage(c, "Property removed from favorites", saved)
}
