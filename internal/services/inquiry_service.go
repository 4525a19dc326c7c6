package services

import (
	"context"

	apperrors "propertyhub-api/internal/errors"
	"propertyhub-api/internal/models"
	"propertyhub-api/internal/repositories"
	"propertyhub-api/internal/validators"
	"propertyhub-api/pkg/logger"
	"propertyhub-api/pkg/messaging"
	"propertyhub-api/pkg/metrics"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type InquiryService struct {
	inquiries  repositories.InquiryRepository
	properties repositories.PropertyRepository
	publisher  messaging.Publisher
}

func NewInquiryService(inquiries repositories.InquiryRepository, properties repositories.PropertyRepository, publisher messaging.Publisher) *InquiryService {
	return &InquiryService{inquiries: inquiries, properties: properties, publisher: publisher}
}

// Create records an inquiry about someone else's listing and notifies the owner.
func (s *InquiryService) Create(ctx context.Context, caller *models.User, in *validators.InquiryInput) (*models.Inquiry, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	propertyID, err := parseID(in.Property)
	if err != nil {
		return nil, err
	}

	property, err := s.properties.FindByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if property == nil {
		return nil, apperrors.NewNotFound("Property")
	}
	if property.Owner == caller.ID {
		return nil, apperrors.NewBadRequest(apperrors.ErrCodeInvalidParameters, apperrors.MsgOwnPropertyInquiry)
	}

	inquiry := &models.Inquiry{
		Property: propertyID,
		Sender:   caller.ID,
		Name:     in.Name,
		Email:    in.Email,
		Phone:    in.Phone,
		Message:  in.Message,
		Status:   models.InquiryNew,
	}
	if err := s.inquiries.Create(ctx, inquiry); err != nil {
		return nil, err
	}
	metrics.InquiriesCreatedTotal.Inc()
	inquiry.PropertyDetails = property.Summary()

	s.notifyOwner(ctx, inquiry, property)
	return inquiry, nil
}

// notifyOwner publishes inquiry.created; delivery failures never fail the request.
func (s *InquiryService) notifyOwner(ctx context.Context, inquiry *models.Inquiry, property *models.Property) {
	event := messaging.InquiryCreatedEvent{
		InquiryID:     inquiry.ID.Hex(),
		PropertyID:    property.ID.Hex(),
		PropertyTitle: property.Title,
		OwnerID:       property.Owner.Hex(),
		SenderID:      inquiry.Sender.Hex(),
		SenderName:    inquiry.Name,
		SenderEmail:   inquiry.Email,
		Message:       inquiry.Message,
		CreatedAt:     inquiry.CreatedAt,
	}
	if err := s.publisher.Publish(ctx, messaging.InquiryCreated, event); err != nil {
		logger.GlobalLogger.Warnf("inquiry %s saved but owner notification failed: %v", inquiry.ID.Hex(), err)
	}
}

// attachProperties fills PropertyDetails with one listing lookup.
func (s *InquiryService) attachProperties(ctx context.Context, inquiries []models.Inquiry) error {
	if len(inquiries) == 0 {
		return nil
	}
	seen := make(map[primitive.ObjectID]bool, len(inquiries))
	ids := make([]primitive.ObjectID, 0, len(inquiries))
	for _, q := range inquiries {
		if !seen[q.Property] {
			seen[q.Property] = true
			ids = append(ids, q.Property)
		}
	}

	properties, err := s.properties.FindAll(ctx, bson.D{{Key: "_id", Value: idsIn(ids)}}, nil, 0)
	if err != nil {
		return err
	}
	byID := make(map[primitive.ObjectID]*models.PropertySummary, len(properties))
	for i := range properties {
		byID[properties[i].ID] = properties[i].Summary()
	}
	for i := range inquiries {
		inquiries[i].PropertyDetails = byID[inquiries[i].Property]
	}
	return nil
}

func (s *InquiryService) find(ctx context.Context, filter bson.D) ([]models.Inquiry, error) {
	inquiries, err := s.inquiries.Find(ctx, filter, 0)
	if err != nil {
		return nil, err
	}
	if err := s.attachProperties(ctx, inquiries); err != nil {
		return nil, err
	}
	return inquiries, nil
}

func (s *InquiryService) Sent(ctx context.Context, caller *models.User) ([]models.Inquiry, error) {
	return s.find(ctx, bson.D{{Key: "sender", Value: caller.ID}})
}

// Received lists inquiries about any listing the caller owns.
func (s *InquiryService) Received(ctx context.Context, caller *models.User) ([]models.Inquiry, error) {
	owned, err := s.properties.IDsByOwner(ctx, caller.ID)
	if err != nil {
		return nil, err
	}
	if len(owned) == 0 {
		return []models.Inquiry{}, nil
	}
	return s.find(ctx, bson.D{{Key: "property", Value: idsIn(owned)}})
}

func (s *InquiryService) ForProperty(ctx context.Context, caller *models.User, rawPropertyID string) ([]models.Inquiry, error) {
	id, err := parseID(rawPropertyID)
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
	if !canManage(caller, property.Owner) {
		return nil, apperrors.NewForbidden(apperrors.MsgInquiryForbidden)
	}

	inquiries, err := s.inquiries.Find(ctx, bson.D{{Key: "property", Value: id}}, 0)
	if err != nil {
		return nil, err
	}
	for i := range inquiries {
		inquiries[i].PropertyDetails = property.Summary()
	}
	return inquiries, nil
}

func (s *InquiryService) load(ctx context.Context, rawID string) (*models.Inquiry, error) {
	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}
	inquiry, err := s.inquiries.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inquiry == nil {
		return nil, apperrors.NewNotFound("Inquiry")
	}
	return inquiry, nil
}

// UpdateStatus is reserved for the owner of the listing and admins.
func (s *InquiryService) UpdateStatus(ctx context.Context, caller *models.User, rawID string, in *validators.InquiryStatusInput) (*models.Inquiry, error) {
	if err := validators.ValidateStruct(in); err != nil {
		return nil, err
	}
	inquiry, err := s.load(ctx, rawID)
	if err != nil {
		return nil, err
	}

	if caller.Role != models.RoleAdmin {
		property, err := s.properties.FindByID(ctx, inquiry.Property)
		if err != nil {
			return nil, err
		}
		if property == nil || property.Owner != caller.ID {
			return nil, apperrors.NewForbidden(apperrors.MsgInquiryForbidden)
		}
	}

	updated, err := s.inquiries.UpdateStatus(ctx, inquiry.ID, in.Status)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, apperrors.NewNotFound("Inquiry")
	}
	return updated, nil
}

// Delete is reserved for the sender and admins.
func (s *InquiryService) Delete(ctx context.Context, caller *models.User, rawID string) error {
	inquiry, err := s.load(ctx, rawID)
	if err != nil {
		return err
	}
	if !canManage(caller, inquiry.Sender) {
		return apperrors.NewForbidden(apperrors.MsgInquiryForbidden)
	}

	deleted, err := s.inquiries.Delete(ctx, inquiry.ID)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.NewNotFound("Inquiry")
	}
	return nil
}
