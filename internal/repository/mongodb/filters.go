package mongodb

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/parseldesk/backoffice/internal/domain/models"
)

// dateRange adds an inclusive [start, end] day-range condition on field.
// Either bound may be empty. End is widened to the end of its day so records
// stamped anywhere inside the last day still match.
func dateRange(filter bson.M, field, start, end string) error {
	cond := bson.M{}
	if start != "" {
		from, err := models.ParseDay(start)
		if err != nil {
			return err
		}
		cond["$gte"] = from
	}
	if end != "" {
		to, err := models.ParseDay(end)
		if err != nil {
			return err
		}
		cond["$lt"] = to.AddDate(0, 0, 1)
	}
	if len(cond) > 0 {
		filter[field] = cond
	}
	return nil
}

// BuildCollectionFilter translates the list query into a Mongo filter.
// The DC scope is mandatory; the caller validates its presence first.
func BuildCollectionFilter(f models.CollectionFilter) (bson.M, error) {
	dcID, err := primitive.ObjectIDFromHex(f.DC)
	if err != nil {
		return nil, fmt.Errorf("invalid dc id %q: %w", f.DC, err)
	}

	filter := bson.M{"dc": dcID}

	if f.Agent != "" && f.Agent != "all" {
		agentID, err := primitive.ObjectIDFromHex(f.Agent)
		if err != nil {
			return nil, fmt.Errorf("invalid agent id %q: %w", f.Agent, err)
		}
		filter["deliveryAgent"] = agentID
	}

	if err := dateRange(filter, "collectionDate", f.StartDate, f.EndDate); err != nil {
		return nil, err
	}

	return filter, nil
}

// CollectionSort maps the sortBy/sortOrder pair to a Mongo sort document,
// defaulting to newest collection date first.
func CollectionSort(sortBy, sortOrder string) bson.D {
	field := "collectionDate"
	switch sortBy {
	case "collectionDate", "total_amount", "createdAt":
		field = sortBy
	}
	return bson.D{{Key: field, Value: sortDirection(sortOrder)}}
}

// BuildAgentFilter translates the agent list query into a Mongo filter.
func BuildAgentFilter(f models.AgentFilter) bson.M {
	filter := bson.M{}

	if f.Search != "" {
		rx := primitive.Regex{Pattern: regexEscape(f.Search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"name": rx},
			bson.M{"phone": rx},
		}
	}

	switch f.IsActive {
	case "true":
		filter["isActive"] = true
	case "false":
		filter["isActive"] = false
	}

	return filter
}

// AgentSort maps the agent sortBy/sortOrder pair to a Mongo sort document.
func AgentSort(sortBy, sortOrder string) bson.D {
	field := "createdAt"
	switch sortBy {
	case "name", "joiningDate", "commissionRate", "createdAt":
		field = sortBy
	}
	return bson.D{{Key: field, Value: sortDirection(sortOrder)}}
}

// BuildDCFilter translates the DC list query into a Mongo filter.
func BuildDCFilter(f models.DCFilter) bson.M {
	filter := bson.M{}

	if f.Search != "" {
		rx := primitive.Regex{Pattern: regexEscape(f.Search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"dc_name": rx},
			bson.M{"area": rx},
		}
	}

	if f.Status == models.DCStatusActive || f.Status == models.DCStatusInactive {
		filter["status"] = f.Status
	}

	return filter
}

// DCSort maps the DC sortBy/sortOrder pair to a Mongo sort document.
func DCSort(sortBy, sortOrder string) bson.D {
	field := "createdAt"
	switch sortBy {
	case "dc_name", "area", "createdAt":
		field = sortBy
	}
	return bson.D{{Key: field, Value: sortDirection(sortOrder)}}
}

// BuildExpenseFilter translates the expense list query into a Mongo filter.
func BuildExpenseFilter(f models.ExpenseFilter) (bson.M, error) {
	filter := bson.M{}

	if f.Search != "" {
		rx := primitive.Regex{Pattern: regexEscape(f.Search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"title": rx},
			bson.M{"paidTo": rx},
			bson.M{"expenseId": rx},
		}
	}

	if f.Category != "" && f.Category != "all" {
		filter["category"] = f.Category
	}
	if f.Status != "" && f.Status != "all" {
		filter["status"] = f.Status
	}

	if err := dateRange(filter, "expenseDate", f.StartDate, f.EndDate); err != nil {
		return nil, err
	}

	amount := bson.M{}
	if f.MinAmount != "" {
		min, err := parseAmount(f.MinAmount)
		if err != nil {
			return nil, err
		}
		amount["$gte"] = min
	}
	if f.MaxAmount != "" {
		max, err := parseAmount(f.MaxAmount)
		if err != nil {
			return nil, err
		}
		amount["$lte"] = max
	}
	if len(amount) > 0 {
		filter["amount"] = amount
	}

	return filter, nil
}

// ExpenseSort maps the expense sortBy/sortOrder pair to a Mongo sort document.
func ExpenseSort(sortBy, sortOrder string) bson.D {
	field := "expenseDate"
	switch sortBy {
	case "expenseDate", "amount", "title", "createdAt":
		field = sortBy
	}
	return bson.D{{Key: field, Value: sortDirection(sortOrder)}}
}

func sortDirection(order string) int {
	if order == "asc" {
		return 1
	}
	return -1
}

func parseAmount(s string) (int64, error) {
	var v int64
	if _, err := fmt.Sscanf(s, "%d", &v); err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return v, nil
}

// regexEscape neutralizes regex metacharacters in user search input.
func regexEscape(s string) string {
	const meta = `\.+*?()|[]{}^$`
	out := make([]rune, 0, len(s))
	for _, r := range s {
		for _, m := range meta {
			if r == m {
				out = append(out, '\\')
				break
			}
		}
		out = append(out, r)
	}
	return string(out)
}
