package handlers

import (
	"net/http"

	"propertyhub-api/internal/services"
	"propertyhub-api/internal/validators"

	"github.com/gin-gonic/gin"
)

type InquiryHandler struct {
	inquiryService *services.InquiryService
}

func NewInquiryHandler(inquiryService *services.InquiryService) *InquiryHandler {
	return &InquiryHandler{inquiryService: inquiryService}
}

// CreateInquiry godoc
// @Summary Ask about a property
// @Description Notifies the owner. Asking about your own listing is rejected.
// @Tags Inquiries
// @Accept json
// @Produce json
// @Param body body validators.InquiryInput true "Inquiry"
// @Security BearerAuth
// @Success 201 {object} models.DataResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /inquiries [post]
func (h *InquiryHandler) CreateInquiry(c *gin.Context) {
	var in validators.InquiryInput
	if !bindJSON(c, &in) {
		return
	}
	inquiry, err := h.inquiryService.Create(c.Request.Context(), currentUser(c), &in)
	if err != nil {
		c.Error(err)
		return
	}
	respond(c, http.StatusCreated, inquiry)
}

// GetSent godoc
// @Summary Inquiries the caller sent
// @Tags Inquiries
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.DataResponse
// @Router /inquiries/sent [get]
func (h *InquiryHandler) GetSent(c *gin.Context) {
	inquiries, err := h.inquiryService.Sent(c.Request.Context(), currentUser(c))
	if err != nil {
		c.Error(err)
		return
	}
	respondCount(c, len(inquiries), inquiries)
}

// GetReceived godoc
// @Summary Inquiries about the caller's listings
// @Tags Inquiries
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.DataResponse
// @Router /inquiries/received [get]
func (h *InquiryHandler) GetReceived(c *gin.Context) {
	inquiries, err := h.inquiryService.Received(c.Request.Context(), currentUser(c))
	if err != nil {
		c.Error(err)
		return
	}
	respondCount(c, len(inquiries), inquiries)
}

// GetForProperty godoc
// @Summary Inquiries about one listing
// @Tags Inquiries
// @Produce json
// @Param propertyId path string true "Property ID"
// @Security BearerAuth
// @Success 200 {object} models.DataResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /inquiries/property/{propertyId} [get]
func (h *InquiryHandler) GetForProperty(c *gin.Context) {
	inquiries, err := h.inquiryService.ForProperty(c.Request.Context(), currentUser(c), c.Param("propertyId"))
	if err != nil {
		c.Error(err)
		return
	}
	respondCount(c, len(inquiries), inquiries)
}

// UpdateStatus godoc
// @Summary Change inquiry status
// @Tags Inquiries
// @Accept json
// @Produce json
// @Param id path string true "Inquiry ID"
// @Param body body validators.InquiryStatusInput true "Status"
// @Security BearerAuth
// @Success 200 {object} models.DataResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /inquiries/{id} [put]
// @Router /inquiries/{id}/status [put]
func (h *InquiryHandler) UpdateStatus(c *gin.Context) {
	var in validators.InquiryStatusInput
	if !bindJSON(c, &in) {
		return
	}
	inquiry, err := h.inquiryService.UpdateStatus(c.Request.Context(), currentUser(c), c.Param("id"), &in)
	if err != nil {
		c.Error(err)
		return
	}
	respond(c, http.StatusOK, inquiry)
}

// DeleteInquiry godoc
// @Summary Delete an inquiry
// @Tags Inquiries
// @Produce json
// @Param id path string true "Inquiry ID"
// @Security BearerAuth
// @Success 200 {object} models.DataResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /inquiries/{id} [delete]
func (h *InquiryHandler) DeleteInquiry(c *gin.Context) {
	if err := h.inquiryService.Delete(c.Request.Context(), currentUser(c), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	respondMessage(c, "Inquiry deleted successfully", nil)
}
