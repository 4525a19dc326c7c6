package services

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	apperrors "propertyhub-api/internal/errors"
	"propertyhub-api/internal/models"
	"propertyhub-api/internal/repositories/mocks"
	"propertyhub-api/internal/search"
	"propertyhub-api/internal/stats"
	"propertyhub-api/internal/validators"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type agentFixture struct {
	svc        *AgentService
	users      *mocks.UserRepository
	properties *mocks.PropertyRepository
	inquiries  *mocks.InquiryRepository
}

func newAgentFixture(t *testing.T) agentFixture {
	f := agentFixture{
		users:      mocks.NewUserRepository(t),
		properties: mocks.NewPropertyRepository(t),
		inquiries:  mocks.NewInquiryRepository(t),
	}
	f.svc = NewAgentService(f.users, f.properties, f.inquiries)
	return f
}

func (f agentFixture) expectRollup(rows []stats.OwnerRollup) {
	f.properties.On("Aggregate", mock.Anything, mock.AnythingOfType("mongo.Pipeline"), mock.Anything).
		Run(func(args mock.Arguments) {
			*args.Get(2).(*[]stats.OwnerRollup) = rows
		}).Return(nil).Once()
}

func TestAgentFilter(t *testing.T) {
	filter := AgentFilter(url.Values{"search": {"prime (pvt)"}, "specialization": {"commercial"}})

	require.Len(t, filter, 3)
	assert.Equal(t, bson.E{Key: "role", Value: models.RoleAgent}, filter[0])
	or := filter[1].Value.(bson.A)
	assert.Equal(t, primitive.Regex{Pattern: `prime \(pvt\)`, Options: "i"}, or[0].(bson.D)[0].Value)
	assert.Equal(t, bson.E{Key: "specialization", Value: "commercial"}, filter[2])
}

func TestAgentService_List_ActiveCounts(t *testing.T) {
	f := newAgentFixture(t)
	busy, idle := primitive.NewObjectID(), primitive.NewObjectID()
	f.users.On("List", mock.Anything, mock.Anything, search.Page{Number: 1, Limit: search.DefaultLimit}).
		Return([]models.User{{ID: busy, Name: "Busy"}, {ID: idle, Name: "Idle"}}, int64(2), nil).Once()
	f.expectRollup([]stats.OwnerRollup{{Owner: busy, StatusCounts: stats.StatusCounts{Total: 5, Active: 3}}})

	got, err := f.svc.List(context.Background(), url.Values{})
	require.NoError(t, err)

	cards := got.Data.([]AgentCard)
	require.Len(t, cards, 2)
	assert.Equal(t, int64(3), cards[0].PropertyCount)
	assert.Zero(t, cards[1].PropertyCount)
	assert.Equal(t, 1, got.Pages)
}

func TestAgentService_Profile(t *testing.T) {
	t.Run("agent with stats", func(t *testing.T) {
		f := newAgentFixture(t)
		agent := &models.User{ID: primitive.NewObjectID(), Role: models.RoleAgent}
		f.users.On("FindByID", mock.Anything, agent.ID).Return(agent, nil).Once()
		f.expectRollup([]stats.OwnerRollup{{Owner: agent.ID, StatusCounts: stats.StatusCounts{Total: 4, Sold: 1, Rented: 1, Active: 2}}})

		got, err := f.svc.Profile(context.Background(), agent.ID.Hex())
		require.NoError(t, err)
		assert.Equal(t, int64(4), got.Stats.Total)
	})

	t.Run("not an agent", func(t *testing.T) {
		f := newAgentFixture(t)
		buyer := &models.User{ID: primitive.NewObjectID(), Role: models.RoleBuyer}
		f.users.On("FindByID", mock.Anything, buyer.ID).Return(buyer, nil).Once()

		_, err := f.svc.Profile(context.Background(), buyer.ID.Hex())
		appErr := requireAppError(t, err, http.StatusBadRequest, apperrors.ErrCodeInvalidParameters)
		assert.Equal(t, apperrors.MsgNotAnAgent, appErr.UserMessage)
	})

	t.Run("unknown", func(t *testing.T) {
		f := newAgentFixture(t)
		id := primitive.NewObjectID()
		f.users.On("FindByID", mock.Anything, id).Return(nil, nil).Once()

		_, err := f.svc.Profile(context.Background(), id.Hex())
		appErr := requireAppError(t, err, http.StatusNotFound, apperrors.ErrCodeNotFound)
		assert.Equal(t, "Agent not found", appErr.UserMessage)
	})
}

func TestAgentService_MyStats(t *testing.T) {
	f := newAgentFixture(t)
	caller := &models.User{ID: primitive.NewObjectID(), Role: models.RoleAgent}
	listing := primitive.NewObjectID()
	f.expectRollup([]stats.OwnerRollup{{Owner: caller.ID, StatusCounts: stats.StatusCounts{Total: 1, Active: 1}}})
	f.properties.On("IDsByOwner", mock.Anything, caller.ID).Return([]primitive.ObjectID{listing}, nil).Once()
	f.inquiries.On("Count", mock.Anything, mock.Anything).Return(int64(9), nil).Once()
	f.inquiries.On("Find", mock.Anything, mock.Anything, int64(RecentInquiries)).
		Return([]models.Inquiry{{Property: listing}}, nil).Once()

	got, err := f.svc.MyStats(context.Background(), caller)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Properties.Active)
	assert.Equal(t, int64(9), got.Inquiries.Total)
	assert.Len(t, got.Inquiries.Recent, 1)
}

func TestAgentService_MyStats_NoListings(t *testing.T) {
	f := newAgentFixture(t)
	caller := &models.User{ID: primitive.NewObjectID(), Role: models.RoleAgent}
	f.expectRollup(nil)
	f.properties.On("IDsByOwner", mock.Anything, caller.ID).Return([]primitive.ObjectID{}, nil).Once()

	got, err := f.svc.MyStats(context.Background(), caller)
	require.NoError(t, err)
	assert.Zero(t, got.Inquiries.Total)
	assert.NotNil(t, got.Inquiries.Recent)
}

func TestAgentService_Stats(t *testing.T) {
	t.Run("any agent by id", func(t *testing.T) {
		f := newAgentFixture(t)
		agent := &models.User{ID: primitive.NewObjectID(), Role: models.RoleAgent}
		f.users.On("FindByID", mock.Anything, agent.ID).Return(agent, nil).Once()
		f.expectRollup([]stats.OwnerRollup{{Owner: agent.ID, StatusCounts: stats.StatusCounts{Total: 3, Sold: 2, Active: 1}}})
		f.properties.On("IDsByOwner", mock.Anything, agent.ID).Return([]primitive.ObjectID{}, nil).Once()

		got, err := f.svc.Stats(context.Background(), agent.ID.Hex())
		require.NoError(t, err)
		assert.Equal(t, int64(3), got.Properties.Total)
		assert.Equal(t, int64(2), got.Properties.Sold)
	})

	t.Run("not an agent", func(t *testing.T) {
		f := newAgentFixture(t)
		seller := &models.User{ID: primitive.NewObjectID(), Role: models.RoleSeller}
		f.users.On("FindByID", mock.Anything, seller.ID).Return(seller, nil).Once()

		_, err := f.svc.Stats(context.Background(), seller.ID.Hex())
		requireAppError(t, err, http.StatusNotFound, apperrors.ErrCodeNotFound)
	})

	t.Run("malformed id", func(t *testing.T) {
		f := newAgentFixture(t)

		_, err := f.svc.Stats(context.Background(), "not-an-id")
		requireAppError(t, err, http.StatusBadRequest, apperrors.ErrCodeInvalidID)
	})
}

func TestAgentService_UpdateProfile(t *testing.T) {
	agency := "Prime Realty"

	t.Run("agents only", func(t *testing.T) {
		f := newAgentFixture(t)
		_, err := f.svc.UpdateProfile(context.Background(), &models.User{Role: models.RoleSeller}, &validators.AgentProfileInput{AgencyName: &agency})
		appErr := requireAppError(t, err, http.StatusForbidden, apperrors.ErrCodeForbidden)
		assert.Equal(t, apperrors.MsgAgentsOnly, appErr.UserMessage)
	})

	t.Run("sets provided fields", func(t *testing.T) {
		f := newAgentFixture(t)
		caller := &models.User{ID: primitive.NewObjectID(), Role: models.RoleAgent}
		f.users.On("Update", mock.Anything, caller.ID, bson.D{{Key: "agencyName", Value: agency}}).
			Return(&models.User{ID: caller.ID, AgencyName: agency}, nil).Once()

		got, err := f.svc.UpdateProfile(context.Background(), caller, &validators.AgentProfileInput{AgencyName: &agency})
		require.NoError(t, err)
		assert.Equal(t, agency, got.AgencyName)
	})
}

