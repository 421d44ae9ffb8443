package collections

import (
	"sort"

	"github.com/parseldesk/backoffice/internal/domain/models"
)

// addTo folds one record into a running day total. Due is carried as
// cod minus received; summing per-record dues gives the same number, so the
// aggregate invariant dueAmount = codAmount - receivedAmount holds by
// construction.
func addTo(t *models.DayTotal, rec models.CashCollection) {
	t.TotalCollections++
	t.CODAmount += rec.CODAmount
	t.TotalAmount += rec.TotalAmount
	t.CashAmount += rec.CashAmount
	t.DigitalAmount += rec.OnlineAmount
	t.ReceivedAmount += rec.PayAmount
	t.DueAmount = t.CODAmount - t.ReceivedAmount
}

// BuildDailyReport folds a day's records into the day total plus a
// per-agent breakdown, sorted by agent name. Overpayment shows up as a
// negative due, never clamped.
func BuildDailyReport(recs []models.CashCollection, agents map[string]models.DeliveryAgent) models.DailyReport {
	report := models.DailyReport{AgentCollections: []models.AgentAggregate{}}

	perAgent := map[string]*models.AgentAggregate{}
	for _, rec := range recs {
		addTo(&report.DayTotal, rec)

		key := rec.DeliveryAgent.Hex()
		agg, ok := perAgent[key]
		if !ok {
			agg = &models.AgentAggregate{AgentID: key}
			if a, found := agents[key]; found {
				agg.AgentName = a.Name
				agg.Phone = a.Phone
				agg.IsActive = a.IsActive
			}
			perAgent[key] = agg
		}

		agg.TotalCollections++
		agg.CODAmount += rec.CODAmount
		agg.TotalAmount += rec.TotalAmount
		agg.CashAmount += rec.CashAmount
		agg.DigitalAmount += rec.OnlineAmount
		agg.ReceivedAmount += rec.PayAmount
		agg.DueAmount = agg.CODAmount - agg.ReceivedAmount
	}

	for _, agg := range perAgent {
		report.AgentCollections = append(report.AgentCollections, *agg)
	}
	sort.Slice(report.AgentCollections, func(i, j int) bool {
		return report.AgentCollections[i].AgentName < report.AgentCollections[j].AgentName
	})

	return report
}

// BuildStats folds a range of records into the overview aggregate plus the
// per-day trend, ordered by date ascending.
func BuildStats(recs []models.CashCollection) models.CollectionStats {
	stats := models.CollectionStats{DailyTrend: []models.TrendPoint{}}

	var overall models.DayTotal
	perDay := map[string]*models.TrendPoint{}
	for _, rec := range recs {
		addTo(&overall, rec)

		key := models.DayKey(rec.CollectionDate)
		point, ok := perDay[key]
		if !ok {
			point = &models.TrendPoint{ID: key}
			perDay[key] = point
		}

		point.CollectionCount++
		point.CODAmount += rec.CODAmount
		point.TotalAmount += rec.TotalAmount
		point.CashAmount += rec.CashAmount
		point.DigitalAmount += rec.OnlineAmount
		point.ReceivedAmount += rec.PayAmount
		point.DueAmount = point.CODAmount - point.ReceivedAmount
	}

	stats.TotalCollections = overall.TotalCollections
	stats.CODAmount = overall.CODAmount
	stats.TotalAmount = overall.TotalAmount
	stats.CashAmount = overall.CashAmount
	stats.DigitalAmount = overall.DigitalAmount
	stats.ReceivedAmount = overall.ReceivedAmount
	stats.DueAmount = overall.DueAmount

	for _, point := range perDay {
		stats.DailyTrend = append(stats.DailyTrend, *point)
	}
	sort.Slice(stats.DailyTrend, func(i, j int) bool {
		return stats.DailyTrend[i].ID < stats.DailyTrend[j].ID
	})

	return stats
}
