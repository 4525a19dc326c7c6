package handlers

import (
	"net/http"

	"propertyhub-api/internal/services"
	"propertyhub-api/internal/validators"

	"github.com/gin-gonic/gin"
)

type AgentHandler struct {
	agentService *services.AgentService
}

func NewAgentHandler(agentService *services.AgentService) *AgentHandler {
	return &AgentHandler{agentService: agentService}
}

// GetAgents godoc
// @Summary Agent directory
// @Description Each agent carries its number of active listings
// @Tags Agents
// @Produce json
// @Param search query string false "Name or agency"
// @Param specialization query string false "Specialization"
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(12)
// @Success 200 {object} models.ListResponse
// @Router /agents [get]
func (h *AgentHandler) GetAgents(c *gin.Context) {
	resp, err := h.agentService.List(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetAgent godoc
// @Summary Agent profile with listing counts
// @Tags Agents
// @Produce json
// @Param id path string true "Agent ID"
// @Success 200 {object} models.DataResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /agents/{id} [get]
func (h *AgentHandler) GetAgent(c *gin.Context) {
	profile, err := h.agentService.Profile(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	respond(c, http.StatusOK, profile)
}

// GetAgentProperties godoc
// @Summary Listings of an agent
// @Tags Agents
// @Produce json
// @Param id path string true "Agent ID"
// @Param status query string false "Listing status"
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(12)
// @Success 200 {object} models.ListResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /agents/{id}/properties [get]
func (h *AgentHandler) GetAgentProperties(c *gin.Context) {
	resp, err := h.agentService.Properties(c.Request.Context(), c.Param("id"), c.Request.URL.Query())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetAgentStats godoc
// @Summary Listing and inquiry numbers of an agent
// @Tags Agents
// @Produce json
// @Param id path string true "Agent ID"
// @Success 200 {object} models.DataResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /agents/{id}/stats [get]
func (h *AgentHandler) GetAgentStats(c *gin.Context) {
	out, err := h.agentService.Stats(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	respond(c, http.StatusOK, out)
}

// GetMyStats godoc
// @Summary Agent dashboard numbers
// @Tags Agents
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.DataResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /agents/me/stats [get]
func (h *AgentHandler) GetMyStats(c *gin.Context) {
	out, err := h.agentService.MyStats(c.Request.Context(), currentUser(c))
	if err != nil {
		c.Error(err)
		return
	}
	respond(c, http.StatusOK, out)
}

// UpdateProfile godoc
// @Summary Update agent profile fields
// @Tags Agents
// @Accept json
// @Produce json
// @Param body body validators.AgentProfileInput true "Agent profile"
// @Security BearerAuth
// @Success 200 {object} models.DataResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /agents/profile [put]
// @Router /agents/me/profile [put]
func (h *AgentHandler) UpdateProfile(c *gin.Context) {
	var in validators.AgentProfileInput
	if !bindJSON(c, &in) {
		return
	}
	user, err := h.agentService.UpdateProfile(c.Request.Context(), currentUser(c), &in)
	if err != nil {
		c.Error(err)
		return
	}
	respondMessage(c, "Agent profile updated successfully", user)
}
