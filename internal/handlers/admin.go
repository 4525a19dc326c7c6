package handlers

import (
	"net/http"

	"propertyhub-api/internal/services"
	"propertyhub-api/internal/validators"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	adminService *services.AdminService
}

func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// GetDashboard godoc
// @Summary Dashboard totals and recent activity
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.DataResponse
// @Router /admin/stats/dashboard [get]
func (h *AdminHandler) GetDashboard(c *gin.Context) {
	out, err := h.adminService.Dashboard(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	respond(c, http.StatusOK, out)
}

// GetPropertyStats godoc
// @Summary Listings by status, type, purpose and city
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.DataResponse
// @Router /admin/stats/properties [get]
func (h *AdminHandler) GetPropertyStats(c *gin.Context) {
	out, err := h.adminService.PropertyStats(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	respond(c, http.StatusOK, out)
}

// GetAgentStats godoc
// @Summary Listing counts per agent
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.DataResponse
// @Router /admin/stats/agents [get]
func (h *AdminHandler) GetAgentStats(c *gin.Context) {
	out, err := h.adminService.AgentStats(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	respondCount(c, len(out), out)
}

// GetOwnerStats godoc
// @Summary Listing counts per owner with at least one listing
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.DataResponse
// @Router /admin/stats/owners [get]
func (h *AdminHandler) GetOwnerStats(c *gin.Context) {
	out, err := h.adminService.OwnerStats(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	respondCount(c, len(out), out)
}

// GetUsers godoc
// @Summary List users
// @Tags Admin
// @Produce json
// @Param role query string false "Role"
// @Param isActive query bool false "Active flag"
// @Param search query string false "Name or email"
// @Security BearerAuth
// @Success 200 {object} models.DataResponse
// @Router /admin/users [get]
func (h *AdminHandler) GetUsers(c *gin.Context) {
	users, err := h.adminService.ListUsers(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		c.Error(err)
		return
	}
	respondCount(c, len(users), users)
}

// GetUser godoc
// @Summary User with listing count
// @Tags Admin
// @Produce json
// @Param id path string true "User ID"
// @Security BearerAuth
// @Success 200 {object} models.DataResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/users/{id} [get]
func (h *AdminHandler) GetUser(c *gin.Context) {
	user, err := h.adminService.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	respond(c, http.StatusOK, user)
}

// CreateUser godoc
// @Summary Create a user of any role
// @Tags Admin
// @Accept json
// @Produce json
// @Param body body validators.AdminCreateUserInput true "User"
// @Security BearerAuth
// @Success 201 {object} models.DataResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /admin/users [post]
func (h *AdminHandler) CreateUser(c *gin.Context) {
	var in validators.AdminCreateUserInput
	if !bindJSON(c, &in) {
		return
	}
	user, err := h.adminService.CreateUser(c.Request.Context(), &in)
	if err != nil {
		c.Error(err)
		return
	}
	respond(c, http.StatusCreated, user)
}

// UpdateUser godoc
// @Summary Update a user
// @Description Agent fields apply only when the user is or becomes an agent
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param body body validators.AdminUpdateUserInput true "Changes"
// @Security BearerAuth
// @Success 200 {object} models.DataResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/users/{id} [put]
func (h *AdminHandler) UpdateUser(c *gin.Context) {
	var in validators.AdminUpdateUserInput
	if !bindJSON(c, &in) {
		return
	}
	user, err := h.adminService.UpdateUser(c.Request.Context(), c.Param("id"), &in)
	if err != nil {
		c.Error(err)
		return
	}
	respondMessage(c, "User updated successfully", user)
}

// ToggleUserStatus godoc
// @Summary Activate or deactivate a user
// @Tags Admin
// @Produce json
// @Param id path string true "User ID"
// @Security BearerAuth
// @Success 200 {object} models.DataResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /admin/users/{id}/status [patch]
// @Router /admin/users/{id}/toggle-status [patch]
func (h *AdminHandler) ToggleUserStatus(c *gin.Context) {
	user, err := h.adminService.ToggleStatus(c.Request.Context(), currentUser(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	message := "User deactivated successfully"
	if user.IsActive {
		message = "User activated successfully"
	}
	respondMessage(c, message, gin.H{"_id": user.ID, "isActive": user.IsActive})
}

// DeleteUser godoc
// @Summary Delete a user
// @Tags Admin
// @Produce json
// @Param id path string true "User ID"
// @Security BearerAuth
// @Success 200 {object} models.DataResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	if err := h.adminService.DeleteUser(c.Request.Context(), currentUser(c), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	respondMessage(c, "User deleted successfully", nil)
}

// GetAgents godoc
// @Summary Agents with their listings
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.DataResponse
// @Router /admin/agents [get]
func (h *AdminHandler) GetAgents(c *gin.Context) {
	out, err := h.adminService.Agents(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	respondCount(c, len(out), out)
}

// GetOwners godoc
// @Summary Owners with their listings
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.DataResponse
// @Router /admin/owners [get]
func (h *AdminHandler) GetOwners(c *gin.Context) {
	out, err := h.adminService.Owners(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	respondCount(c, len(out), out)
}

// GetUserProperties godoc
// @Summary Listings of one user
// @Tags Admin
// @Produce json
// @Param id path string true "User ID"
// @Security BearerAuth
// @Success 200 {object} models.DataResponse
// @Router /admin/users/{id}/properties [get]
// @Router /admin/properties/{id} [get]
func (h *AdminHandler) GetUserProperties(c *gin.Context) {
	out, err := h.adminService.UserProperties(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	respondCount(c, len(out), out)
}

// GetProperties godoc
// @Summary All listings
// @Tags Admin
// @Produce json
// @Param status query string false "Status"
// @Param purpose query string false "Purpose"
// @Param propertyType query string false "Property type"
// @Security BearerAuth
// @Success 200 {object} models.DataResponse
// @Router /admin/properties [get]
func (h *AdminHandler) GetProperties(c *gin.Context) {
	out, err := h.adminService.Properties(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		c.Error(err)
		return
	}
	respondCount(c, len(out), out)
}

// UpdatePropertyStatus godoc
// @Summary Change listing status
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Property ID"
// @Param body body validators.StatusInput true "Status"
// @Security BearerAuth
// @Success 200 {object} models.DataResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/properties/{id}/status [patch]
func (h *AdminHandler) UpdatePropertyStatus(c *gin.Context) {
	var in validators.StatusInput
	if !bindJSON(c, &in) {
		return
	}
	property, err := h.adminService.UpdatePropertyStatus(c.Request.Context(), c.Param("id"), &in)
	if err != nil {
		c.Error(err)
		return
	}
	respondMessage(c, "Property status updated successfully", property)
}

// DeleteProperty godoc
// @Summary Delete any listing
// @Tags Admin
// @Produce json
// @Param id path string true "Property ID"
// @Security BearerAuth
// @Success 200 {object} models.DataResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/properties/{id} [delete]
func (h *AdminHandler) DeleteProperty(c *gin.Context) {
	if err := h.adminService.DeleteProperty(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	respondMessage(c, "Property deleted successfully", nil)
}
