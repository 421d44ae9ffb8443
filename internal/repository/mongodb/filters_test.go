package mongodb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/parseldesk/backoffice/internal/domain/models"
)

func TestBuildCollectionFilter_ScopesToDC(t *testing.T) {
	dcID := primitive.NewObjectID()

	filter, err := BuildCollectionFilter(models.CollectionFilter{DC: dcID.Hex(), Agent: "all"})
	require.NoError(t, err)

	assert.Equal(t, dcID, filter["dc"])
	assert.NotContains(t, filter, "deliveryAgent", `agent "all" adds no condition`)
}

func TestBuildCollectionFilter_AgentAndDates(t *testing.T) {
	dcID := primitive.NewObjectID()
	agentID := primitive.NewObjectID()

	filter, err := BuildCollectionFilter(models.CollectionFilter{
		DC:        dcID.Hex(),
		Agent:     agentID.Hex(),
		StartDate: "2025-06-01",
		EndDate:   "2025-06-07",
	})
	require.NoError(t, err)

	assert.Equal(t, agentID, filter["deliveryAgent"])

	cond, ok := filter["collectionDate"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), cond["$gte"])
	assert.Equal(t, time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC), cond["$lt"], "end day is included whole")
}

func TestBuildCollectionFilter_Rejects(t *testing.T) {
	_, err := BuildCollectionFilter(models.CollectionFilter{DC: "nope"})
	assert.Error(t, err)

	dcID := primitive.NewObjectID()
	_, err = BuildCollectionFilter(models.CollectionFilter{DC: dcID.Hex(), Agent: "nope"})
	assert.Error(t, err)

	_, err = BuildCollectionFilter(models.CollectionFilter{DC: dcID.Hex(), StartDate: "June 1st"})
	assert.Error(t, err)
}

func TestCollectionSort_Whitelist(t *testing.T) {
	assert.Equal(t, bson.D{{Key: "total_amount", Value: 1}}, CollectionSort("total_amount", "asc"))
	assert.Equal(t, bson.D{{Key: "collectionDate", Value: -1}}, CollectionSort("collectionDate", "desc"))
	assert.Equal(t, bson.D{{Key: "collectionDate", Value: -1}}, CollectionSort("password", "desc"), "unknown field falls back")
	assert.Equal(t, bson.D{{Key: "collectionDate", Value: -1}}, CollectionSort("", ""))
}

func TestBuildAgentFilter(t *testing.T) {
	filter := BuildAgentFilter(models.AgentFilter{Search: "rah", IsActive: "true"})

	or, ok := filter["$or"].(bson.A)
	require.True(t, ok)
	assert.Len(t, or, 2)
	assert.Equal(t, true, filter["isActive"])

	filter = BuildAgentFilter(models.AgentFilter{IsActive: "false"})
	assert.Equal(t, false, filter["isActive"])

	filter = BuildAgentFilter(models.AgentFilter{IsActive: "all"})
	assert.NotContains(t, filter, "isActive")
}

func TestBuildAgentFilter_EscapesRegexInput(t *testing.T) {
	filter := BuildAgentFilter(models.AgentFilter{Search: "a.b*"})

	or := filter["$or"].(bson.A)
	name := or[0].(bson.M)["name"].(primitive.Regex)
	assert.Equal(t, `a\.b\*`, name.Pattern)
	assert.Equal(t, "i", name.Options)
}

func TestBuildDCFilter(t *testing.T) {
	filter := BuildDCFilter(models.DCFilter{Search: "mirpur", Status: "active"})
	assert.Contains(t, filter, "$or")
	assert.Equal(t, "active", filter["status"])

	filter = BuildDCFilter(models.DCFilter{Status: "all"})
	assert.NotContains(t, filter, "status")

	filter = BuildDCFilter(models.DCFilter{Status: "bogus"})
	assert.NotContains(t, filter, "status")
}

func TestBuildExpenseFilter(t *testing.T) {
	filter, err := BuildExpenseFilter(models.ExpenseFilter{
		Search:    "rent",
		Category:  "utilities",
		Status:    "pending",
		MinAmount: "100",
		MaxAmount: "5000",
	})
	require.NoError(t, err)

	assert.Equal(t, "utilities", filter["category"])
	assert.Equal(t, "pending", filter["status"])

	amount, ok := filter["amount"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, int64(100), amount["$gte"])
	assert.Equal(t, int64(5000), amount["$lte"])
}

func TestBuildExpenseFilter_AllIsNoFilter(t *testing.T) {
	filter, err := BuildExpenseFilter(models.ExpenseFilter{Category: "all", Status: "all"})
	require.NoError(t, err)
	assert.Empty(t, filter)
}

func TestBuildExpenseFilter_BadAmount(t *testing.T) {
	_, err := BuildExpenseFilter(models.ExpenseFilter{MinAmount: "lots"})
	assert.Error(t, err)
}

func TestSortDirection(t *testing.T) {
	assert.Equal(t, 1, sortDirection("asc"))
	assert.Equal(t, -1, sortDirection("desc"))
	assert.Equal(t, -1, sortDirection(""))
}

func TestNormalizeLimitAndPage(t *testing.T) {
	assert.Equal(t, 10, models.NormalizeLimit(0))
	assert.Equal(t, 10, models.NormalizeLimit(37))
	assert.Equal(t, 20, models.NormalizeLimit(20))
	assert.Equal(t, 50, models.NormalizeLimit(50))

	assert.Equal(t, 1, models.NormalizePage(0))
	assert.Equal(t, 1, models.NormalizePage(-3))
	assert.Equal(t, 7, models.NormalizePage(7))
}

func TestNewPagination(t *testing.T) {
	p := models.NewPagination(2, 10, 45)
	assert.Equal(t, 2, p.Page)
	assert.Equal(t, 10, p.Limit)
	assert.Equal(t, int64(45), p.Total)
	assert.Equal(t, 5, p.Pages)

	p = models.NewPagination(1, 10, 0)
	assert.Zero(t, p.Pages)
}
