package expenses

import (
	"sort"

	"github.com/parseldesk/backoffice/internal/domain/models"
)

// BuildStats folds expenses into the summary block, splitting amounts by
// status.
func BuildStats(exps []models.Expense) models.ExpenseStats {
	var stats models.ExpenseStats
	for _, exp := range exps {
		stats.Total++
		stats.TotalAmount += exp.Amount
		switch exp.Status {
		case models.ExpenseStatusPaid:
			stats.PaidAmount += exp.Amount
		case models.ExpenseStatusPending:
			stats.PendingAmount += exp.Amount
		case models.ExpenseStatusApproved:
			stats.ApprovedAmount += exp.Amount
		case models.ExpenseStatusRejected:
			stats.RejectedAmount += exp.Amount
		}
	}
	return stats
}

// BuildMonthlyReport folds one month's expenses into per-category totals,
// largest first.
func BuildMonthlyReport(year, month int, exps []models.Expense) models.MonthlyExpenseReport {
	report := models.MonthlyExpenseReport{
		Year:       year,
		Month:      month,
		Categories: []models.CategoryTotal{},
	}

	perCategory := map[string]*models.CategoryTotal{}
	for _, exp := range exps {
		report.Total++
		report.TotalAmount += exp.Amount

		ct, ok := perCategory[exp.Category]
		if !ok {
			ct = &models.CategoryTotal{Category: exp.Category}
			perCategory[exp.Category] = ct
		}
		ct.Count++
		ct.Amount += exp.Amount
	}

	for _, ct := range perCategory {
		report.Categories = append(report.Categories, *ct)
	}
	sort.Slice(report.Categories, func(i, j int) bool {
		if report.Categories[i].Amount != report.Categories[j].Amount {
			return report.Categories[i].Amount > report.Categories[j].Amount
		}
		return report.Categories[i].Category < report.Categories[j].Category
	})

	return report
}
