package handlers

import (
	"net/http"

	"propertyhub-api/internal/services"
	"propertyhub-api/internal/validators"

	"github.com/gin-gonic/gin"
)

type PropertyHandler struct {
	propertyService *services.PropertyService
}

func NewPropertyHandler(propertyService *services.PropertyService) *PropertyHandler {
	return &PropertyHandler{propertyService: propertyService}
}

// GetProperties godoc
// @Summary Search properties
// @Description Filter, sort and paginate listings. Unparseable numeric filters are ignored.
// @Tags Properties
// @Produce json
// @Param purpose query string false "buy or rent"
// @Param propertyType query string false "home, plot or commercial"
// @Param subType query string false "Sub type"
// @Param city query string false "City, case-insensitive"
// @Param area query string false "Area, punctuation-insensitive"
// @Param minPrice query number false "Minimum price"
// @Param maxPrice query number false "Maximum price"
// @Param minArea query number false "Minimum area"
// @Param maxArea query number false "Maximum area"
// @Param areaUnit query string false "marla, kanal, sq-ft, sq-yard or sq-meter"
// @Param bedrooms query string false "Exact count or N+"
// @Param bathrooms query int false "Exact bathroom count"
// @Param status query string false "Listing status" default(active)
// @Param featured query bool false "Featured only"
// @Param agent query string false "Owner id"
// @Param sort query string false "Sort order" Enums(newest, oldest, price-asc, price-desc, area-asc, area-desc) default(newest)
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(12)
// @Success 200 {object} models.ListResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /properties [get]
func (h *PropertyHandler) GetProperties(c *gin.Context) {
	response, err := h.propertyService.Search(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, response)
}

// GetFeatured godoc
// @Summary Featured properties
// @Tags Properties
// @Produce json
// @Param limit query int false "Number of listings" default(6)
// @Success 200 {object} models.DataResponse
// @Router /properties/featured [get]
func (h *PropertyHandler) GetFeatured(c *gin.Context) {
	properties, err := h.propertyService.Featured(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		c.Error(err)
		return
	}
	respondCount(c, len(properties), properties)
}

// GetStats godoc
// @Summary Public market statistics
// @Description Price summary and breakdowns over active listings
// @Tags Properties
// @Produce json
// @Success 200 {object} models.DataResponse
// @Router /properties/stats [get]
func (h *PropertyHandler) GetStats(c *gin.Context) {
	summary, err := h.propertyService.PublicStats(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	respond(c, http.StatusOK, summary)
}

// GetMyProperties godoc
// @Summary Caller's own listings
// @Tags Properties
// @Produce json
// @Param status query string false "Listing status"
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(10)
// @Security BearerAuth
// @Success 200 {object} models.ListResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /properties/user/my-properties [get]
// @Router /properties/my-properties [get]
// @Router /users/properties [get]
func (h *PropertyHandler) GetMyProperties(c *gin.Context) {
	response, err := h.propertyService.Mine(c.Request.Context(), currentUser(c), c.Request.URL.Query())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, response)
}

// GetPropertyByID godoc
// @Summary Get property by ID
// @Description Returns one listing with its owner and counts the view
// @Tags Properties
// @Produce json
// @Param id path string true "Property ID"
// @Success 200 {object} models.DataResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /properties/{id} [get]
func (h *PropertyHandler) GetPropertyByID(c *gin.Context) {
	property, err := h.propertyService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	respond(c, http.StatusOK, property)
}

// GetSimilar godoc
// @Summary Similar properties
// @Description Same type and city, price within 30%
// @Tags Properties
// @Produce json
// @Param id path string true "Property ID"
// @Success 200 {object} models.DataResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /properties/{id}/similar [get]
func (h *PropertyHandler) GetSimilar(c *gin.Context) {
	similar, err := h.propertyService.Similar(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	respondCount(c, len(similar), similar)
}

// CreateProperty godoc
// @Summary Create a property
// @Tags Properties
// @Accept json
// @Produce json
// @Param property body validators.PropertyInput true "Listing"
// @Security BearerAuth
// @Success 201 {object} models.DataResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /properties [post]
func (h *PropertyHandler) CreateProperty(c *gin.Context) {
	var in validators.PropertyInput
	if !bindJSON(c, &in) {
		return
	}
	property, err := h.propertyService.Create(c.Request.Context(), currentUser(c), &in)
	if err != nil {
		c.Error(err)
		return
	}
	respond(c, http.StatusCreated, property)
}

// UpdateProperty godoc
// @Summary Update a property
// @Description Owner or admin only. Replaces the editable fields; the owner never changes.
// @Tags Properties
// @Accept json
// @Produce json
// @Param id path string true "Property ID"
// @Param property body validators.PropertyInput true "Listing"
// @Security BearerAuth
// @Success 200 {object} models.DataResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /properties/{id} [put]
func (h *PropertyHandler) UpdateProperty(c *gin.Context) {
	var in validators.PropertyInput
	if !bindJSON(c, &in) {
		return
	}
	property, err := h.propertyService.Update(c.Request.Context(), currentUser(c), c.Param("id"), &in)
	if err != nil {
		c.Error(err)
		return
	}
	respond(c, http.StatusOK, property)
}

// DeleteProperty godoc
// @Summary Delete a property
// @Tags Properties
// @Produce json
// @Param id path string true "Property ID"
// @Security BearerAuth
// @Success 200 {object} models.DataResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /properties/{id} [delete]
func (h *PropertyHandler) DeleteProperty(c *gin.Context) {
	if err := h.propertyService.Delete(c.Request.Context(), currentUser(c), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	respondMessage(c, "Property deleted successfully", nil)
}
