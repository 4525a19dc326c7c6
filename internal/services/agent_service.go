package services

import (
	"context"
	"net/url"
	"regexp"
	"strings"

	apperrors "propertyhub-api/internal/errors"
	"propertyhub-api/internal/models"
	"propertyhub-api/internal/repositories"
	"propertyhub-api/internal/search"
	"propertyhub-api/internal/stats"
	"propertyhub-api/internal/validators"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RecentInquiries is how many inquiries the agent stats include.
const RecentInquiries = 5

type AgentService struct {
	users      repositories.UserRepository
	properties repositories.PropertyRepository
	inquiries  repositories.InquiryRepository
}

func NewAgentService(users repositories.UserRepository, properties repositories.PropertyRepository, inquiries repositories.InquiryRepository) *AgentService {
	return &AgentService{users: users, properties: properties, inquiries: inquiries}
}

// AgentCard is an agent in the public directory.
type AgentCard struct {
	*models.User
	PropertyCount int64 `json:"propertyCount"`
}

// AgentFilter matches agents by name or agency and by specialization.
func AgentFilter(values url.Values) bson.D {
	filter := bson.D{{Key: "role", Value: models.RoleAgent}}
	if term := strings.TrimSpace(values.Get("search")); term != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
		filter = append(filter, bson.E{Key: "$or", Value: bson.A{
			bson.D{{Key: "name", Value: pattern}},
			bson.D{{Key: "agencyName", Value: pattern}},
		}})
	}
	if spec := strings.TrimSpace(values.Get("specialization")); spec != "" {
		filter = append(filter, bson.E{Key: "specialization", Value: spec})
	}
	return filter
}

// List pages through agents, each with its count of active listings.
func (s *AgentService) List(ctx context.Context, values url.Values) (*models.ListResponse, error) {
	page := search.ParsePage(values, search.DefaultLimit)
	agents, total, err := s.users.List(ctx, AgentFilter(values), page)
	if err != nil {
		return nil, err
	}

	rollups, err := s.rollup(ctx, agents)
	if err != nil {
		return nil, err
	}
	cards := make([]AgentCard, 0, len(agents))
	for i := range agents {
		cards = append(cards, AgentCard{User: &agents[i], PropertyCount: rollups[agents[i].ID].Active})
	}
	return listResponse(cards, len(cards), total, page.Number, search.Pages(total, page.Limit)), nil
}

func (s *AgentService) rollup(ctx context.Context, users []models.User) (map[primitive.ObjectID]stats.StatusCounts, error) {
	counts := make(map[primitive.ObjectID]stats.StatusCounts, len(users))
	if len(users) == 0 {
		return counts, nil
	}
	ids := make([]primitive.ObjectID, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}

	var rows []stats.OwnerRollup
	if err := s.properties.Aggregate(ctx, stats.OwnerRollupPipeline(ids), &rows); err != nil {
		return nil, err
	}
	for _, r := range rows {
		counts[r.Owner] = r.StatusCounts
	}
	return counts, nil
}

// AgentProfile is an agent with listing counts.
type AgentProfile struct {
	*models.User
	Stats stats.StatusCounts `json:"stats"`
}

func (s *AgentService) loadAgent(ctx context.Context, rawID string) (*models.User, error) {
	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}
	agent, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if agent == nil {
		return nil, apperrors.NewNotFound("Agent")
	}
	return agent, nil
}

func (s *AgentService) Profile(ctx context.Context, rawID string) (*AgentProfile, error) {
	agent, err := s.loadAgent(ctx, rawID)
	if err != nil {
		return nil, err
	}
	if agent.Role != models.RoleAgent {
		return nil, apperrors.NewBadRequest(apperrors.ErrCodeInvalidParameters, apperrors.MsgNotAnAgent)
	}

	counts, err := s.rollup(ctx, []models.User{*agent})
	if err != nil {
		return nil, err
	}
	return &AgentProfile{User: agent, Stats: counts[agent.ID]}, nil
}

func (s *AgentService) Properties(ctx context.Context, rawID string, values url.Values) (*models.ListResponse, error) {
	agent, err := s.loadAgent(ctx, rawID)
	if err != nil {
		return nil, err
	}
	if agent.Role != models.RoleAgent {
		return nil, apperrors.NewNotFound("Agent")
	}

	resp, err := ownedListings(ctx, s.properties, agent.ID, values, search.DefaultLimit)
	if err != nil {
		return nil, err
	}
	if listings, ok := resp.Data.([]models.Property); ok {
		summary := agent.Summary()
		for i := range listings {
			listings[i].OwnerDetails = summary
		}
	}
	return resp, nil
}

type AgentInquiryStats struct {
	Total  int64            `json:"total"`
	Recent []models.Inquiry `json:"recent"`
}

type AgentStats struct {
	Properties stats.StatusCounts `json:"properties"`
	Inquiries  AgentInquiryStats  `json:"inquiries"`
}

// MyStats summarizes the caller's listings and the inquiries they received.
func (s *AgentService) MyStats(ctx context.Context, caller *models.User) (*AgentStats, error) {
	return s.statsFor(ctx, caller)
}

// Stats is the public form of MyStats for any agent.
func (s *AgentService) Stats(ctx context.Context, rawID string) (*AgentStats, error) {
	agent, err := s.loadAgent(ctx, rawID)
	if err != nil {
		return nil, err
	}
	if agent.Role != models.RoleAgent {
		return nil, apperrors.NewNotFound("Agent")
	}
	return s.statsFor(ctx, agent)
}

func (s *AgentService) statsFor(ctx context.Context, agent *models.User) (*AgentStats, error) {
	counts, err := s.rollup(ctx, []models.User{*agent})
	if err != nil {
		return nil, err
	}
	out := &AgentStats{
		Properties: counts[agent.ID],
		Inquiries:  AgentInquiryStats{Recent: []models.Inquiry{}},
	}

	owned, err := s.properties.IDsByOwner(ctx, agent.ID)
	if err != nil {
		return nil, err
	}
	if len(owned) == 0 {
		return out, nil
	}

	filter := bson.D{{Key: "property", Value: idsIn(owned)}}
	if out.Inquiries.Total, err = s.inquiries.Count(ctx, filter); err != nil {
		return nil, err
	}
	if out.Inquiries.Recent, err = s.inquiries.Find(ctx, filter, RecentInquiries); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *AgentService) UpdateProfile(ctx context.Context, caller *models.User, in *validators.AgentProfileInput) (*models.User, error) {
	if caller.Role != models.RoleAgent {
		return nil, apperrors.NewForbidden(apperrors.MsgAgentsOnly)
	}
	if err := validators.ValidateStruct(in); err != nil {
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
		return nil, apperrors.NewNotFound("Agent")
	}
	return user, nil
}
