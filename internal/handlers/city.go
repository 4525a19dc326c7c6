package handlers

import (
	"net/http"

	"propertyhub-api/internal/models"
	"propertyhub-api/internal/services"

	"github.com/gin-gonic/gin"
)

type CityHandler struct {
	cityService *services.CityService
	seed        []models.City
}

// NewCityHandler serves the city reference data; seed is what POST /cities/seed writes.
func NewCityHandler(cityService *services.CityService, seed []models.City) *CityHandler {
	return &CityHandler{cityService: cityService, seed: seed}
}

// GetCities godoc
// @Summary Active cities
// @Tags Cities
// @Produce json
// @Success 200 {object} models.DataResponse
// @Router /cities [get]
func (h *CityHandler) GetCities(c *gin.Context) {
	cities, err := h.cityService.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	respondCount(c, len(cities), cities)
}

// GetCity godoc
// @Summary City by id or slug
// @Tags Cities
// @Produce json
// @Param identifier path string true "City id or slug"
// @Success 200 {object} models.DataResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /cities/{identifier} [get]
func (h *CityHandler) GetCity(c *gin.Context) {
	city, err := h.cityService.Get(c.Request.Context(), c.Param("identifier"))
	if err != nil {
		c.Error(err)
		return
	}
	respond(c, http.StatusOK, city)
}

// GetCityAreas godoc
// @Summary Popular areas of a city
// @Description The city is matched by id, slug or name
// @Tags Cities
// @Produce json
// @Param identifier path string true "City id, slug or name"
// @Success 200 {object} models.DataResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /cities/{identifier}/areas [get]
func (h *CityHandler) GetCityAreas(c *gin.Context) {
	areas, err := h.cityService.Areas(c.Request.Context(), c.Param("identifier"))
	if err != nil {
		c.Error(err)
		return
	}
	respondCount(c, len(areas), areas)
}

// SeedCities godoc
// @Summary Upsert the built-in city list
// @Tags Cities
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.DataResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /cities/seed [post]
func (h *CityHandler) SeedCities(c *gin.Context) {
	n, err := h.cityService.Seed(c.Request.Context(), h.seed)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, models.DataResponse{Success: true, Count: &n, Message: "Cities seeded successfully"})
}
