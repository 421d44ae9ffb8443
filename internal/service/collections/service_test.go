package collections

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/parseldesk/backoffice/internal/domain/models"
)

type fakeRepo struct {
	inserted []models.CashCollection
	records  []models.CashCollection
	listErr  error
}

func (r *fakeRepo) Insert(_ context.Context, rec *models.CashCollection) error {
	rec.ID = primitive.NewObjectID()
	r.inserted = append(r.inserted, *rec)
	return nil
}

func (r *fakeRepo) List(_ context.Context, f models.CollectionFilter) ([]models.CashCollection, models.Pagination, error) {
	if r.listErr != nil {
		return nil, models.Pagination{}, r.listErr
	}
	return r.records, models.NewPagination(f.Page, f.Limit, int64(len(r.records))), nil
}

func (r *fakeRepo) FindRange(_ context.Context, _ primitive.ObjectID, from, to time.Time) ([]models.CashCollection, error) {
	var out []models.CashCollection
	for _, rec := range r.records {
		if !rec.CollectionDate.Before(from) && rec.CollectionDate.Before(to) {
			out = append(out, rec)
		}
	}
	return out, nil
}

type fakeAgents struct {
	agents map[primitive.ObjectID]models.DeliveryAgent
}

func (a *fakeAgents) FindByID(_ context.Context, id primitive.ObjectID) (*models.DeliveryAgent, error) {
	agent, ok := a.agents[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &agent, nil
}

func (a *fakeAgents) FindAll(_ context.Context) ([]models.DeliveryAgent, error) {
	out := make([]models.DeliveryAgent, 0, len(a.agents))
	for _, agent := range a.agents {
		out = append(out, agent)
	}
	return out, nil
}

type fakeDCs struct {
	dcs map[primitive.ObjectID]models.DistributionCenter
}

func (d *fakeDCs) FindByID(_ context.Context, id primitive.ObjectID) (*models.DistributionCenter, error) {
	dc, ok := d.dcs[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &dc, nil
}

func i64(v int64) *int64 { return &v }
func iptr(v int) *int    { return &v }

func newFixture() (*Service, *fakeRepo, primitive.ObjectID, primitive.ObjectID) {
	agentID := primitive.NewObjectID()
	dcID := primitive.NewObjectID()
	repo := &fakeRepo{}
	svc := NewService(repo,
		&fakeAgents{agents: map[primitive.ObjectID]models.DeliveryAgent{
			agentID: {ID: agentID, Name: "Rahim", Phone: "01711", IsActive: true},
		}},
		&fakeDCs{dcs: map[primitive.ObjectID]models.DistributionCenter{
			dcID: {ID: dcID, Name: "Mirpur Hub", Status: models.DCStatusActive},
		}},
		nil)
	svc.now = func() time.Time { return time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC) }
	return svc, repo, agentID, dcID
}

func TestCreate_DerivesTotalsFromSplit(t *testing.T) {
	svc, repo, agentID, dcID := newFixture()

	rec, err := svc.Create(context.Background(), models.CollectionInput{
		DeliveryAgent:   agentID.Hex(),
		DC:              dcID.Hex(),
		CollectionDate:  "2025-06-09",
		DeliveredParsal: iptr(12),
		PickupParsal:    iptr(3),
		CashAmount:      i64(700),
		OnlineAmount:    i64(300),
		PayAmount:       i64(650),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1000), rec.TotalAmount)
	assert.Equal(t, int64(1000), rec.CODAmount)
	assert.Equal(t, int64(350), rec.DueAmount)
	require.Len(t, repo.inserted, 1)
}

func TestCreate_OverpaymentLeavesNegativeDue(t *testing.T) {
	svc, _, agentID, dcID := newFixture()

	rec, err := svc.Create(context.Background(), models.CollectionInput{
		DeliveryAgent:   agentID.Hex(),
		DC:              dcID.Hex(),
		CollectionDate:  "2025-06-09",
		DeliveredParsal: iptr(5),
		PickupParsal:    iptr(0),
		CashAmount:      i64(400),
		PayAmount:       i64(500),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(-100), rec.DueAmount)
}

func TestCreate_RejectsTotalMismatch(t *testing.T) {
	svc, repo, agentID, dcID := newFixture()

	_, err := svc.Create(context.Background(), models.CollectionInput{
		DeliveryAgent:   agentID.Hex(),
		DC:              dcID.Hex(),
		CollectionDate:  "2025-06-09",
		DeliveredParsal: iptr(5),
		PickupParsal:    iptr(0),
		CashAmount:      i64(700),
		OnlineAmount:    i64(300),
		TotalAmount:     i64(999),
	})

	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "total_amount")
	assert.Empty(t, repo.inserted, "rejected input must not reach storage")
}

func TestCreate_CollectsAllFieldErrors(t *testing.T) {
	svc, repo, _, _ := newFixture()

	_, err := svc.Create(context.Background(), models.CollectionInput{
		CashAmount: i64(-5),
	})

	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	for _, field := range []string{"deliveryAgent", "dc", "delivered_parsal", "pickup_parsal", "cash_amount", "collectionDate"} {
		assert.Contains(t, verr.Fields, field)
	}
	assert.Empty(t, repo.inserted)
}

func TestCreate_RejectsInactiveAgent(t *testing.T) {
	svc, _, _, dcID := newFixture()
	inactive := primitive.NewObjectID()
	svc.agents.(*fakeAgents).agents[inactive] = models.DeliveryAgent{ID: inactive, Name: "Ex", IsActive: false}

	_, err := svc.Create(context.Background(), models.CollectionInput{
		DeliveryAgent:   inactive.Hex(),
		DC:              dcID.Hex(),
		CollectionDate:  "2025-06-09",
		DeliveredParsal: iptr(1),
		PickupParsal:    iptr(0),
	})

	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Delivery agent is inactive", verr.Fields["deliveryAgent"])
}

func TestList_RequiresDCScope(t *testing.T) {
	svc, _, _, _ := newFixture()

	_, _, err := svc.List(context.Background(), models.CollectionFilter{Agent: "all", Page: 1, Limit: 10})

	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "dc")
}

func TestDailyReport_RejectsBadInputs(t *testing.T) {
	svc, _, _, _ := newFixture()

	_, err := svc.DailyReport(context.Background(), "not-a-date", "")

	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "date")
	assert.Contains(t, verr.Fields, "dc")
}

func TestStats_DefaultsToLastSevenDays(t *testing.T) {
	svc, repo, agentID, dcID := newFixture()

	day := func(s string) time.Time {
		d, err := models.ParseDay(s)
		require.NoError(t, err)
		return d
	}
	repo.records = []models.CashCollection{
		{DeliveryAgent: agentID, DC: dcID, CollectionDate: day("2025-06-01"), TotalAmount: 999, CODAmount: 999}, // outside window
		{DeliveryAgent: agentID, DC: dcID, CollectionDate: day("2025-06-08"), TotalAmount: 100, CODAmount: 100, CashAmount: 100},
		{DeliveryAgent: agentID, DC: dcID, CollectionDate: day("2025-06-10"), TotalAmount: 200, CODAmount: 200, OnlineAmount: 200},
	}

	stats, err := svc.Stats(context.Background(), dcID.Hex(), "", "")
	require.NoError(t, err)

	assert.Equal(t, 2, stats.TotalCollections)
	assert.Equal(t, int64(300), stats.TotalAmount)
	require.Len(t, stats.DailyTrend, 2)
	assert.Equal(t, "2025-06-08", stats.DailyTrend[0].ID)
	assert.Equal(t, "2025-06-10", stats.DailyTrend[1].ID)
}

func TestTotalAmount(t *testing.T) {
	assert.Equal(t, int64(0), TotalAmount(nil, nil))
	assert.Equal(t, int64(700), TotalAmount(i64(700), nil))
	assert.Equal(t, int64(1000), TotalAmount(i64(700), i64(300)))
}

func TestResolveRange_InvalidDates(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	_, _, err := resolveRange("junk", "", now)
	assert.Error(t, err)
	_, _, err = resolveRange("", "junk", now)
	assert.Error(t, err)
}
