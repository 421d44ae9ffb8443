package collections

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/parseldesk/backoffice/internal/domain/models"
)

func rec(agent primitive.ObjectID, date string, cash, online, pay int64) models.CashCollection {
	d, _ := models.ParseDay(date)
	total := cash + online
	return models.CashCollection{
		ID:             primitive.NewObjectID(),
		DeliveryAgent:  agent,
		CollectionDate: d,
		CashAmount:     cash,
		OnlineAmount:   online,
		TotalAmount:    total,
		CODAmount:      total,
		PayAmount:      pay,
		DueAmount:      total - pay,
	}
}

func TestBuildDailyReport_DueArithmetic(t *testing.T) {
	agent := primitive.NewObjectID()
	names := map[string]models.DeliveryAgent{
		agent.Hex(): {ID: agent, Name: "Karim", Phone: "01822", IsActive: true},
	}

	report := BuildDailyReport([]models.CashCollection{
		rec(agent, "2025-06-09", 700, 300, 650),
	}, names)

	assert.Equal(t, int64(1000), report.DayTotal.CODAmount)
	assert.Equal(t, int64(650), report.DayTotal.ReceivedAmount)
	assert.Equal(t, int64(350), report.DayTotal.DueAmount)

	require.Len(t, report.AgentCollections, 1)
	agg := report.AgentCollections[0]
	assert.Equal(t, "Karim", agg.AgentName)
	assert.Equal(t, int64(350), agg.DueAmount)
}

func TestBuildDailyReport_DayDueIsSumOfAgentDues(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()
	names := map[string]models.DeliveryAgent{
		a.Hex(): {ID: a, Name: "Asha"},
		b.Hex(): {ID: b, Name: "Babul"},
	}

	report := BuildDailyReport([]models.CashCollection{
		rec(a, "2025-06-09", 500, 0, 400),
		rec(a, "2025-06-09", 200, 100, 300),
		rec(b, "2025-06-09", 0, 800, 900), // overpaid
	}, names)

	var sum int64
	for _, agg := range report.AgentCollections {
		sum += agg.DueAmount
	}
	assert.Equal(t, report.DayTotal.DueAmount, sum)
	assert.Equal(t, int64(0), sum, "agent dues 100 and -100 net to zero")
}

func TestBuildDailyReport_SortsAgentsByName(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()
	names := map[string]models.DeliveryAgent{
		a.Hex(): {ID: a, Name: "Zahir"},
		b.Hex(): {ID: b, Name: "Anik"},
	}

	report := BuildDailyReport([]models.CashCollection{
		rec(a, "2025-06-09", 100, 0, 100),
		rec(b, "2025-06-09", 100, 0, 100),
	}, names)

	require.Len(t, report.AgentCollections, 2)
	assert.Equal(t, "Anik", report.AgentCollections[0].AgentName)
	assert.Equal(t, "Zahir", report.AgentCollections[1].AgentName)
}

func TestBuildDailyReport_UnknownAgentKept(t *testing.T) {
	gone := primitive.NewObjectID()

	report := BuildDailyReport([]models.CashCollection{
		rec(gone, "2025-06-09", 100, 0, 100),
	}, map[string]models.DeliveryAgent{})

	require.Len(t, report.AgentCollections, 1)
	assert.Equal(t, gone.Hex(), report.AgentCollections[0].AgentID)
	assert.Empty(t, report.AgentCollections[0].AgentName)
}

func TestBuildStats_SplitsCashAndDigital(t *testing.T) {
	agent := primitive.NewObjectID()

	stats := BuildStats([]models.CashCollection{
		rec(agent, "2025-06-09", 100, 0, 100),
		rec(agent, "2025-06-09", 0, 200, 200),
	})

	assert.Equal(t, 2, stats.TotalCollections)
	assert.Equal(t, int64(100), stats.CashAmount)
	assert.Equal(t, int64(200), stats.DigitalAmount)
	assert.Equal(t, int64(300), stats.TotalAmount)

	require.Len(t, stats.DailyTrend, 1)
	point := stats.DailyTrend[0]
	assert.Equal(t, "2025-06-09", point.ID)
	assert.Equal(t, 2, point.CollectionCount)
	assert.Equal(t, int64(100), point.CashAmount)
	assert.Equal(t, int64(200), point.DigitalAmount)
	assert.Equal(t, int64(300), point.TotalAmount)
}

func TestBuildStats_TrendOrderedByDate(t *testing.T) {
	agent := primitive.NewObjectID()

	stats := BuildStats([]models.CashCollection{
		rec(agent, "2025-06-10", 100, 0, 100),
		rec(agent, "2025-06-08", 100, 0, 100),
		rec(agent, "2025-06-09", 100, 0, 100),
	})

	require.Len(t, stats.DailyTrend, 3)
	assert.Equal(t, "2025-06-08", stats.DailyTrend[0].ID)
	assert.Equal(t, "2025-06-09", stats.DailyTrend[1].ID)
	assert.Equal(t, "2025-06-10", stats.DailyTrend[2].ID)
}

func TestBuildStats_Empty(t *testing.T) {
	stats := BuildStats(nil)
	assert.Zero(t, stats.TotalCollections)
	assert.NotNil(t, stats.DailyTrend)
	assert.Empty(t, stats.DailyTrend)
}
