package agents

import (
	"sort"

	"github.com/parseldesk/backoffice/internal/domain/models"
)

// BuildAgentStats folds collection records into the fleet overview plus a
// per-agent breakdown covering every known agent, busiest first.
func BuildAgentStats(agents []models.DeliveryAgent, recs []models.CashCollection) models.AgentStats {
	stats := models.AgentStats{Agents: []models.AgentAggregate{}}

	perAgent := make(map[string]*models.AgentAggregate, len(agents))
	for _, a := range agents {
		stats.Overall.TotalAgents++
		if a.IsActive {
			stats.Overall.ActiveAgents++
		}
		perAgent[a.ID.Hex()] = &models.AgentAggregate{
			AgentID:   a.ID.Hex(),
			AgentName: a.Name,
			Phone:     a.Phone,
			IsActive:  a.IsActive,
		}
	}

	for _, rec := range recs {
		stats.Overall.TotalRevenue += rec.TotalAmount
		stats.Overall.TotalCashCollected += rec.CashAmount
		stats.Overall.TotalOnlineAmount += rec.OnlineAmount
		stats.Overall.ReceivedAmount += rec.PayAmount
		stats.Overall.TotalDueAmount += rec.CODAmount - rec.PayAmount

		key := rec.DeliveryAgent.Hex()
		agg, ok := perAgent[key]
		if !ok {
			// Collections can outlive a deleted agent; keep their money visible.
			agg = &models.AgentAggregate{AgentID: key}
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
		stats.Agents = append(stats.Agents, *agg)
	}
	sort.Slice(stats.Agents, func(i, j int) bool {
		if stats.Agents[i].TotalAmount != stats.Agents[j].TotalAmount {
			return stats.Agents[i].TotalAmount > stats.Agents[j].TotalAmount
		}
		return stats.Agents[i].AgentName < stats.Agents[j].AgentName
	})

	return stats
}

// BuildPerformance folds one agent's records into a single aggregate.
// Average-per-collection is left to the caller so a zero count never
// divides anything here.
func BuildPerformance(recs []models.CashCollection) models.CashPerformance {
	var perf models.CashPerformance
	for _, rec := range recs {
		perf.Count++
		perf.TotalAmount += rec.TotalAmount
		perf.CashAmount += rec.CashAmount
		perf.DigitalAmount += rec.OnlineAmount
		perf.ReceivedAmount += rec.PayAmount
		perf.DueAmount = perf.TotalAmount - perf.ReceivedAmount
	}
	return perf
}
