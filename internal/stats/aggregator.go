package stats

import (
	"context"
	"fmt"

	"propertyhub-api/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// RecentLimit is how many newest users and listings the dashboard shows.
const RecentLimit = 5

// TopCities caps the by-city breakdown.
const TopCities = 10

// PropertyStore is the part of the listing repository the aggregator reads.
type PropertyStore interface {
	Aggregate(ctx context.Context, pipeline mongo.Pipeline, out interface{}) error
	Recent(ctx context.Context, limit int64) ([]models.Property, error)
}

// UserStore is the part of the user repository the aggregator reads.
type UserStore interface {
	Aggregate(ctx context.Context, pipeline mongo.Pipeline, out interface{}) error
	Count(ctx context.Context, filter bson.D) (int64, error)
	FindByRoles(ctx context.Context, roles []string) ([]models.User, error)
	Recent(ctx context.Context, limit int64) ([]models.User, error)
}

type Aggregator struct {
	properties PropertyStore
	users      UserStore
}

func NewAggregator(properties PropertyStore, users UserStore) *Aggregator {
	return &Aggregator{properties: properties, users: users}
}

// GroupBy counts listings per distinct value of field.
func (a *Aggregator) GroupBy(ctx context.Context, field string, opts GroupOptions) ([]GroupCount, error) {
	var groups []GroupCount
	if err := a.properties.Aggregate(ctx, GroupCountPipeline(field, opts), &groups); err != nil {
		return nil, fmt.Errorf("group properties by %s: %w", field, err)
	}
	if groups == nil {
		groups = []GroupCount{}
	}
	return groups, nil
}

// PropertyBreakdown is the admin listing statistics payload.
type PropertyBreakdown struct {
	Total     int64        `json:"total"`
	ByStatus  []GroupShare `json:"byStatus"`
	ByType    []GroupShare `json:"byType"`
	ByPurpose []GroupShare `json:"byPurpose"`
	ByCity    []GroupShare `json:"byCity"`
}

// PropertyBreakdown groups every listing by status, type, purpose and city.
// The city grouping keeps the TopCities largest buckets.
func (a *Aggregator) PropertyBreakdown(ctx context.Context) (*PropertyBreakdown, error) {
	byStatus, err := a.GroupBy(ctx, "status", GroupOptions{})
	if err != nil {
		return nil, err
	}
	byType, err := a.GroupBy(ctx, "propertyType", GroupOptions{})
	if err != nil {
		return nil, err
	}
	byPurpose, err := a.GroupBy(ctx, "purpose", GroupOptions{})
	if err != nil {
		return nil, err
	}
	byCity, err := a.GroupBy(ctx, "location.city", GroupOptions{SortByCount: true, Limit: TopCities})
	if err != nil {
		return nil, err
	}

	total := SumCounts(byStatus)
	return &PropertyBreakdown{
		Total:     total,
		ByStatus:  WithPercent(byStatus, total),
		ByType:    WithPercent(byType, total),
		ByPurpose: WithPercent(byPurpose, total),
		ByCity:    WithPercent(byCity, total),
	}, nil
}

// OwnerStats is one row of the per-agent or per-owner table.
type OwnerStats struct {
	ID         primitive.ObjectID `json:"_id"`
	Name       string             `json:"name"`
	Email      string             `json:"email"`
	Phone      string             `json:"phone,omitempty"`
	Role       string             `json:"role"`
	AgencyName string             `json:"agencyName,omitempty"`
	StatusCounts
}

// MergeOwnerStats joins rollups onto users, keeping the order of users.
// Users without a rollup get zero counts when includeEmpty is set and are
// dropped otherwise.
func MergeOwnerStats(users []models.User, rollups []OwnerRollup, includeEmpty bool) []OwnerStats {
	byOwner := make(map[primitive.ObjectID]StatusCounts, len(rollups))
	for _, r := range rollups {
		byOwner[r.Owner] = r.StatusCounts
	}

	out := make([]OwnerStats, 0, len(users))
	for _, u := range users {
		counts, ok := byOwner[u.ID]
		if (!ok || counts.Total == 0) && !includeEmpty {
			continue
		}
		out = append(out, OwnerStats{
			ID:           u.ID,
			Name:         u.Name,
			Email:        u.Email,
			Phone:        u.Phone,
			Role:         u.Role,
			AgencyName:   u.AgencyName,
			StatusCounts: counts,
		})
	}
	return out
}

func (a *Aggregator) ownerStats(ctx context.Context, roles []string, includeEmpty bool) ([]OwnerStats, error) {
	users, err := a.users.FindByRoles(ctx, roles)
	if err != nil {
		return nil, fmt.Errorf("load users with roles %v: %w", roles, err)
	}
	if len(users) == 0 {
		return []OwnerStats{}, nil
	}

	ids := make([]primitive.ObjectID, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}

	var rollups []OwnerRollup
	if err := a.properties.Aggregate(ctx, OwnerRollupPipeline(ids), &rollups); err != nil {
		return nil, fmt.Errorf("roll up properties by owner: %w", err)
	}
	return MergeOwnerStats(users, rollups, includeEmpty), nil
}

// AgentStats lists every agent with listing counts, including agents with none.
func (a *Aggregator) AgentStats(ctx context.Context) ([]OwnerStats, error) {
	return a.ownerStats(ctx, []string{models.RoleAgent}, true)
}

// OwnerStats lists sellers and agents that own at least one listing.
func (a *Aggregator) OwnerStats(ctx context.Context) ([]OwnerStats, error) {
	return a.ownerStats(ctx, models.OwnerRoles, false)
}

type UserCounts struct {
	Total    int64            `json:"total"`
	Active   int64            `json:"active"`
	Inactive int64            `json:"inactive"`
	Agents   int64            `json:"agents"`
	Owners   int64            `json:"owners"`
	ByRole   map[string]int64 `json:"byRole"`
}

type PropertyCounts struct {
	Total    int64 `json:"total"`
	Active   int64 `json:"active"`
	Sold     int64 `json:"sold"`
	Rented   int64 `json:"rented"`
	Inactive int64 `json:"inactive"`
}

// NewPropertyCounts derives dashboard counts from a by-status grouping.
// Inactive covers every listing that is not active, sold or rented.
func NewPropertyCounts(byStatus []GroupCount) PropertyCounts {
	c := PropertyCounts{
		Total:  SumCounts(byStatus),
		Active: CountOf(byStatus, models.StatusActive),
		Sold:   CountOf(byStatus, models.StatusSold),
		Rented: CountOf(byStatus, models.StatusRented),
	}
	c.Inactive = c.Total - c.Active - c.Sold - c.Rented
	return c
}

// NewUserCounts derives dashboard counts from a by-role grouping and the active total.
func NewUserCounts(byRole []GroupCount, active int64) UserCounts {
	c := UserCounts{
		Total:  SumCounts(byRole),
		Active: active,
		Agents: CountOf(byRole, models.RoleAgent),
		ByRole: make(map[string]int64, len(byRole)),
	}
	for _, g := range byRole {
		c.ByRole[g.Value] = g.Count
	}
	c.Owners = CountOf(byRole, models.RoleSeller) + c.Agents
	c.Inactive = c.Total - c.Active
	return c
}

type Dashboard struct {
	Users            UserCounts        `json:"users"`
	Properties       PropertyCounts    `json:"properties"`
	RecentUsers      []models.User     `json:"recentUsers"`
	RecentProperties []models.Property `json:"recentProperties"`
}

// Dashboard assembles the admin summary. Any failed query fails the whole call.
func (a *Aggregator) Dashboard(ctx context.Context) (*Dashboard, error) {
	var byRole []GroupCount
	if err := a.users.Aggregate(ctx, GroupCountPipeline("role", GroupOptions{}), &byRole); err != nil {
		return nil, fmt.Errorf("group users by role: %w", err)
	}
	active, err := a.users.Count(ctx, bson.D{{Key: "isActive", Value: true}})
	if err != nil {
		return nil, fmt.Errorf("count active users: %w", err)
	}

	byStatus, err := a.GroupBy(ctx, "status", GroupOptions{})
	if err != nil {
		return nil, err
	}

	recentUsers, err := a.users.Recent(ctx, RecentLimit)
	if err != nil {
		return nil, fmt.Errorf("load recent users: %w", err)
	}
	recentProperties, err := a.properties.Recent(ctx, RecentLimit)
	if err != nil {
		return nil, fmt.Errorf("load recent properties: %w", err)
	}

	return &Dashboard{
		Users:            NewUserCounts(byRole, active),
		Properties:       NewPropertyCounts(byStatus),
		RecentUsers:      recentUsers,
		RecentProperties: recentProperties,
	}, nil
}

// PublicSummary is the unauthenticated market overview.
type PublicSummary struct {
	PriceSummary
	ByCity    []GroupCount `json:"byCity"`
	ByPurpose []GroupCount `json:"byPurpose"`
}

// PublicSummary describes active listings only.
func (a *Aggregator) PublicSummary(ctx context.Context) (*PublicSummary, error) {
	activeOnly := bson.D{{Key: "status", Value: models.StatusActive}}

	var rows []PriceSummary
	if err := a.properties.Aggregate(ctx, PriceSummaryPipeline(activeOnly), &rows); err != nil {
		return nil, fmt.Errorf("summarize active prices: %w", err)
	}
	byCity, err := a.GroupBy(ctx, "location.city", GroupOptions{Match: activeOnly, SortByCount: true, Limit: TopCities})
	if err != nil {
		return nil, err
	}
	byPurpose, err := a.GroupBy(ctx, "purpose", GroupOptions{Match: activeOnly})
	if err != nil {
		return nil, err
	}

	summary := &PublicSummary{ByCity: byCity, ByPurpose: byPurpose}
	if len(rows) > 0 {
		summary.PriceSummary = rows[0]
	}
	return summary, nil
}
