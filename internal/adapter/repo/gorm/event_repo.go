package gormrepo

import (
	"context"
	"encoding/json"

	"github.com/Farini/SkyNation-sub005/internal/adapter/repo/gorm/model"
	"github.com/Farini/SkyNation-sub005/internal/app/ports"
	"github.com/Farini/SkyNation-sub005/internal/domain/station"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EventRepo struct {
	db *gorm.DB
}

func NewEventRepo(db *gorm.DB) EventRepo {
	return EventRepo{db: db}
}

func (r EventRepo) Append(ctx context.Context, stationID string, events []station.Event) error {
	if len(events) == 0 {
		return nil
	}
	rows := make([]model.StationEvent, 0, len(events))
	for _, e := range events {
		var payload []byte
		if len(e.Payload) > 0 {
			b, err := json.Marshal(e.Payload)
			if err != nil {
				return err
			}
			payload = b
		}
		rows = append(rows, model.StationEvent{
			StationID:  stationID,
			Type:       e.Type,
			Tick:       e.Tick,
			Message:    e.Message,
			OccurredAt: e.OccurredAt.UTC(),
			Payload:    payload,
		})
	}
	return getDBFromCtx(ctx, r.db).WithContext(ctx).Create(&rows).Error
}

func (r EventRepo) ListByStation(ctx context.Context, stationID string, q ports.EventQuery) ([]station.Event, error) {
	db := getDBFromCtx(ctx, r.db).WithContext(ctx)
	rows := []model.StationEvent{}
	query := db.Where(&model.StationEvent{StationID: stationID, Type: q.Type})
	if !q.From.IsZero() {
		query = query.Where("occurred_at >= ?", q.From.UTC())
	}
	if !q.To.IsZero() {
		query = query.Where("occurred_at <= ?", q.To.UTC())
	}
	query = query.Clauses(clause.OrderBy{
		Columns: []clause.OrderByColumn{
			{Column: clause.Column{Name: "occurred_at"}, Desc: true},
			{Column: clause.Column{Name: "id"}, Desc: true},
		},
	})
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		var count int64
		if err := db.Model(&model.StationEvent{}).Where(&model.StationEvent{StationID: stationID}).Limit(1).Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, ports.ErrNotFound
		}
	}

	out := make([]station.Event, 0, len(rows))
	for _, row := range rows {
		var payload map[string]any
		if len(row.Payload) > 0 {
			_ = json.Unmarshal(row.Payload, &payload)
		}
		out = append(out, station.Event{
			Type:       row.Type,
			OccurredAt: row.OccurredAt.UTC(),
			Tick:       row.Tick,
			Message:    row.Message,
			Payload:    payload,
		})
	}
	return out, nil
}
