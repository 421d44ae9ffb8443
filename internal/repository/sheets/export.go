package sheets

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/parseldesk/backoffice/internal/config"
	"github.com/parseldesk/backoffice/internal/domain/models"
)

// Exporter appends daily collection report rows to a spreadsheet the
// business owner reads. It is an optional sink; the digest job skips it
// when unconfigured.
type Exporter interface {
	AppendDayTotal(ctx context.Context, date string, dcName string, total models.DayTotal) error
}

// GoogleSheetExporter implements Exporter using the official Sheets API.
type GoogleSheetExporter struct {
	service       *sheetsapi.Service
	spreadsheetID string
	sheetRange    string
	logger        *zap.Logger
}

// NewGoogleSheetExporter builds a Sheets-backed exporter instance.
func NewGoogleSheetExporter(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (*GoogleSheetExporter, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &GoogleSheetExporter{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		sheetRange:    "DailyCollections!A:I",
		logger:        logger,
	}, nil
}

// AppendDayTotal appends one day-and-DC aggregate row.
func (e *GoogleSheetExporter) AppendDayTotal(ctx context.Context, date string, dcName string, total models.DayTotal) error {
	row := []interface{}{
		date,
		dcName,
		total.TotalCollections,
		total.CODAmount,
		total.TotalAmount,
		total.CashAmount,
		total.DigitalAmount,
		total.ReceivedAmount,
		total.DueAmount,
	}

	payload := &sheetsapi.ValueRange{Values: [][]interface{}{row}}

	call := e.service.Spreadsheets.Values.Append(e.spreadsheetID, e.sheetRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append day total for %s/%s: %w", date, dcName, err)
	}

	e.logger.Debug("day total appended to sheet",
		zap.String("date", date),
		zap.String("dc", dcName))
	return nil
}
