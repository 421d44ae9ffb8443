package digest

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/parseldesk/backoffice/internal/domain/models"
	"github.com/parseldesk/backoffice/internal/repository/sheets"
	"github.com/parseldesk/backoffice/internal/service/collections"
	"github.com/parseldesk/backoffice/pkg/clients/webhook"
)

// DCSource lists the distribution centers to report on.
type DCSource interface {
	FindActive(ctx context.Context) ([]models.DistributionCenter, error)
}

// Entry is one DC's slice of the digest payload.
type Entry struct {
	DCName string              `json:"dcName"`
	Report *models.DailyReport `json:"report"`
}

// Payload is the webhook body for one digest run.
type Payload struct {
	Date    string  `json:"date"`
	Entries []Entry `json:"entries"`
}

// Service builds the previous day's collection digest per active DC and
// pushes it to the configured sinks. Both sinks are optional; a failing
// sink is logged and skipped, never fatal.
type Service struct {
	collections *collections.Service
	dcs         DCSource
	exporter    sheets.Exporter
	notifier    webhook.Client
	logger      *zap.Logger
	now         func() time.Time
}

// NewService wires the digest service. Exporter and notifier may be nil.
func NewService(collectionSvc *collections.Service, dcs DCSource, exporter sheets.Exporter, notifier webhook.Client, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		collections: collectionSvc,
		dcs:         dcs,
		exporter:    exporter,
		notifier:    notifier,
		logger:      logger,
		now:         time.Now,
	}
}

// Run produces and delivers yesterday's digest.
func (s *Service) Run(ctx context.Context) error {
	date := models.DayKey(s.now().UTC().AddDate(0, 0, -1))

	dcs, err := s.dcs.FindActive(ctx)
	if err != nil {
		return err
	}

	payload := Payload{Date: date, Entries: []Entry{}}
	for _, dc := range dcs {
		report, err := s.collections.DailyReport(ctx, date, dc.ID.Hex())
		if err != nil {
			s.logger.Error("daily report failed for digest",
				zap.String("dc", dc.ID.Hex()), zap.Error(err))
			continue
		}

		payload.Entries = append(payload.Entries, Entry{DCName: dc.Name, Report: report})

		if s.exporter != nil {
			if err := s.exporter.AppendDayTotal(ctx, date, dc.Name, report.DayTotal); err != nil {
				s.logger.Error("sheet export failed",
					zap.String("dc", dc.Name), zap.Error(err))
			}
		}
	}

	if s.notifier != nil && len(payload.Entries) > 0 {
		if err := s.notifier.Post(ctx, payload); err != nil {
			s.logger.Error("digest webhook failed", zap.Error(err))
		}
	}

	s.logger.Info("digest run completed",
		zap.String("date", date),
		zap.Int("dcs", len(payload.Entries)))
	return nil
}
