package digest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/parseldesk/backoffice/internal/domain/models"
	"github.com/parseldesk/backoffice/internal/service/collections"
)

type fakeCollectionRepo struct {
	records []models.CashCollection
}

func (r *fakeCollectionRepo) Insert(_ context.Context, _ *models.CashCollection) error { return nil }

func (r *fakeCollectionRepo) List(_ context.Context, f models.CollectionFilter) ([]models.CashCollection, models.Pagination, error) {
	return r.records, models.NewPagination(f.Page, f.Limit, int64(len(r.records))), nil
}

func (r *fakeCollectionRepo) FindRange(_ context.Context, dc primitive.ObjectID, from, to time.Time) ([]models.CashCollection, error) {
	var out []models.CashCollection
	for _, rec := range r.records {
		if rec.DC == dc && !rec.CollectionDate.Before(from) && rec.CollectionDate.Before(to) {
			out = append(out, rec)
		}
	}
	return out, nil
}

type fakeAgentDir struct{}

func (fakeAgentDir) FindByID(_ context.Context, _ primitive.ObjectID) (*models.DeliveryAgent, error) {
	return nil, models.ErrNotFound
}

func (fakeAgentDir) FindAll(_ context.Context) ([]models.DeliveryAgent, error) {
	return nil, nil
}

type fakeDCDir struct {
	dcs []models.DistributionCenter
}

func (d *fakeDCDir) FindByID(_ context.Context, id primitive.ObjectID) (*models.DistributionCenter, error) {
	for _, dc := range d.dcs {
		if dc.ID == id {
			return &dc, nil
		}
	}
	return nil, models.ErrNotFound
}

func (d *fakeDCDir) FindActive(_ context.Context) ([]models.DistributionCenter, error) {
	var out []models.DistributionCenter
	for _, dc := range d.dcs {
		if dc.Status == models.DCStatusActive {
			out = append(out, dc)
		}
	}
	return out, nil
}

type fakeExporter struct {
	rows []string
	err  error
}

func (e *fakeExporter) AppendDayTotal(_ context.Context, date, dcName string, _ models.DayTotal) error {
	if e.err != nil {
		return e.err
	}
	e.rows = append(e.rows, date+"/"+dcName)
	return nil
}

type fakeNotifier struct {
	payloads []any
	err      error
}

func (n *fakeNotifier) Post(_ context.Context, payload any) error {
	if n.err != nil {
		return n.err
	}
	n.payloads = append(n.payloads, payload)
	return nil
}

func newFixture(t *testing.T) (*Service, *fakeExporter, *fakeNotifier, *fakeDCDir) {
	t.Helper()

	active := models.DistributionCenter{ID: primitive.NewObjectID(), Name: "Mirpur Hub", Status: models.DCStatusActive}
	dormant := models.DistributionCenter{ID: primitive.NewObjectID(), Name: "Old Depot", Status: models.DCStatusInactive}
	dcDir := &fakeDCDir{dcs: []models.DistributionCenter{active, dormant}}

	yesterday, err := models.ParseDay("2025-06-09")
	require.NoError(t, err)
	repo := &fakeCollectionRepo{records: []models.CashCollection{
		{DC: active.ID, DeliveryAgent: primitive.NewObjectID(), CollectionDate: yesterday,
			CashAmount: 700, OnlineAmount: 300, TotalAmount: 1000, CODAmount: 1000, PayAmount: 650},
	}}

	collectionSvc := collections.NewService(repo, fakeAgentDir{}, dcDir, nil)

	exporter := &fakeExporter{}
	notifier := &fakeNotifier{}
	svc := NewService(collectionSvc, dcDir, exporter, notifier, nil)
	svc.now = func() time.Time { return time.Date(2025, 6, 10, 21, 0, 0, 0, time.UTC) }

	return svc, exporter, notifier, dcDir
}

func TestRun_DeliversToBothSinks(t *testing.T) {
	svc, exporter, notifier, _ := newFixture(t)

	require.NoError(t, svc.Run(context.Background()))

	require.Len(t, exporter.rows, 1, "only active DCs are exported")
	assert.Equal(t, "2025-06-09/Mirpur Hub", exporter.rows[0])

	require.Len(t, notifier.payloads, 1)
	payload := notifier.payloads[0].(Payload)
	assert.Equal(t, "2025-06-09", payload.Date)
	require.Len(t, payload.Entries, 1)
	assert.Equal(t, "Mirpur Hub", payload.Entries[0].DCName)
	assert.Equal(t, int64(350), payload.Entries[0].Report.DayTotal.DueAmount)
}

func TestRun_SinkFailureIsNotFatal(t *testing.T) {
	svc, exporter, notifier, _ := newFixture(t)
	exporter.err = errors.New("quota exceeded")
	notifier.err = errors.New("webhook down")

	assert.NoError(t, svc.Run(context.Background()))
}

func TestRun_NilSinks(t *testing.T) {
	svc, _, _, _ := newFixture(t)
	svc.exporter = nil
	svc.notifier = nil

	assert.NoError(t, svc.Run(context.Background()))
}
