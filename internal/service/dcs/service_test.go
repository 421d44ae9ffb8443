package dcs

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/parseldesk/backoffice/internal/domain/models"
)

type fakeRepo struct {
	dcs map[primitive.ObjectID]models.DistributionCenter
}

func (r *fakeRepo) Insert(_ context.Context, dc *models.DistributionCenter) error {
	dc.ID = primitive.NewObjectID()
	r.dcs[dc.ID] = *dc
	return nil
}

func (r *fakeRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.DistributionCenter, error) {
	dc, ok := r.dcs[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &dc, nil
}

func (r *fakeRepo) List(_ context.Context, f models.DCFilter) ([]models.DistributionCenter, models.Pagination, error) {
	out := make([]models.DistributionCenter, 0, len(r.dcs))
	for _, dc := range r.dcs {
		out = append(out, dc)
	}
	return out, models.NewPagination(f.Page, f.Limit, int64(len(out))), nil
}

func (r *fakeRepo) Update(_ context.Context, id primitive.ObjectID, set bson.M) (*models.DistributionCenter, error) {
	dc, ok := r.dcs[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	if name, ok := set["dc_name"].(string); ok {
		dc.Name = name
	}
	if status, ok := set["status"].(string); ok {
		dc.Status = status
	}
	r.dcs[id] = dc
	return &dc, nil
}

func (r *fakeRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.dcs[id]; !ok {
		return models.ErrNotFound
	}
	delete(r.dcs, id)
	return nil
}

func newService() (*Service, *fakeRepo) {
	repo := &fakeRepo{dcs: map[primitive.ObjectID]models.DistributionCenter{}}
	svc := NewService(repo, nil)
	svc.now = func() time.Time { return time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC) }
	return svc, repo
}

func TestCreate_DefaultsStatusActive(t *testing.T) {
	svc, _ := newService()

	dc, err := svc.Create(context.Background(), models.DCInput{Name: "Mirpur Hub", Area: "Mirpur"})
	require.NoError(t, err)
	assert.Equal(t, models.DCStatusActive, dc.Status)
}

func TestCreate_Validation(t *testing.T) {
	svc, repo := newService()

	_, err := svc.Create(context.Background(), models.DCInput{Status: "closed"})

	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "dc_name")
	assert.Contains(t, verr.Fields, "area")
	assert.Contains(t, verr.Fields, "status")
	assert.Empty(t, repo.dcs)
}

func TestUpdate_ChangesStatus(t *testing.T) {
	svc, _ := newService()

	dc, err := svc.Create(context.Background(), models.DCInput{Name: "Mirpur Hub", Area: "Mirpur"})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), dc.ID.Hex(), models.DCInput{
		Name:   "Mirpur Hub",
		Area:   "Mirpur",
		Status: models.DCStatusInactive,
	})
	require.NoError(t, err)
	assert.Equal(t, models.DCStatusInactive, updated.Status)
}

func TestGetAndDelete_MalformedID(t *testing.T) {
	svc, _ := newService()

	_, err := svc.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, models.ErrNotFound)

	err = svc.Delete(context.Background(), "nope")
	assert.ErrorIs(t, err, models.ErrNotFound)
}
