package gormrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Farini/SkyNation-sub005/internal/adapter/repo/gorm/model"
	"github.com/Farini/SkyNation-sub005/internal/app/ports"
	"github.com/Farini/SkyNation-sub005/internal/domain/station"

	"gorm.io/gorm"
)

// StationRepo keeps one row per station plus one table per child collection.
// Children are rewritten on every save; the stations row carries the version.
type StationRepo struct {
	db *gorm.DB
}

func NewStationRepo(db *gorm.DB) StationRepo {
	return StationRepo{db: db}
}

func (r StationRepo) Get(ctx context.Context, stationID string) (station.Station, error) {
	db := getDBFromCtx(ctx, r.db).WithContext(ctx)
	var root model.Station
	if err := db.Where("id = ?", stationID).First(&root).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return station.Station{}, ports.ErrNotFound
		}
		return station.Station{}, err
	}
	var rows stationRows
	byStation := func(dest any) error {
		return db.Where("station_id = ?", stationID).Order("position").Find(dest).Error
	}
	for _, dest := range []any{&rows.modules, &rows.tanks, &rows.boxes, &rows.batteries, &rows.peripherals, &rows.outposts, &rows.bioboxes, &rows.people} {
		if err := byStation(dest); err != nil {
			return station.Station{}, err
		}
	}
	if err := db.Where("station_id = ?", stationID).Find(&rows.produce).Error; err != nil {
		return station.Station{}, err
	}
	return fromRows(root, rows)
}

func (r StationRepo) SaveWithVersion(ctx context.Context, st station.Station, expectedVersion int64) error {
	root, rows, err := toRows(st)
	if err != nil {
		return err
	}
	return getDBFromCtx(ctx, r.db).WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if expectedVersion == 0 {
			if err := tx.Create(&root).Error; err != nil {
				return err
			}
		} else {
			updates := map[string]any{
				"seed":           root.Seed,
				"last_accounted": root.LastAccounted,
				"air_volume":     root.AirVolume,
				"air_o2":         root.AirO2,
				"air_co2":        root.AirCo2,
				"air_n2":         root.AirN2,
				"air_vapor":      root.AirVapor,
				"solar_panels":   root.SolarPanels,
				"tick_count":     root.TickCount,
				"version":        root.Version,
				"updated_at":     root.UpdatedAt,
			}
			res := tx.Model(&model.Station{}).
				Where("id = ? AND version = ?", st.ID, expectedVersion).
				Updates(updates)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ports.ErrConflict
			}
		}
		return replaceChildren(tx, st.ID, rows)
	})
}

func (r StationRepo) ListIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := getDBFromCtx(ctx, r.db).WithContext(ctx).
		Model(&model.Station{}).
		Order("id").
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func replaceChildren(tx *gorm.DB, stationID string, rows stationRows) error {
	children := []struct {
		model any
		rows  any
		n     int
	}{
		{&model.StationModule{}, &rows.modules, len(rows.modules)},
		{&model.StationTank{}, &rows.tanks, len(rows.tanks)},
		{&model.StationBox{}, &rows.boxes, len(rows.boxes)},
		{&model.StationBattery{}, &rows.batteries, len(rows.batteries)},
		{&model.StationPeripheral{}, &rows.peripherals, len(rows.peripherals)},
		{&model.StationOutpost{}, &rows.outposts, len(rows.outposts)},
		{&model.StationBiobox{}, &rows.bioboxes, len(rows.bioboxes)},
		{&model.StationPerson{}, &rows.people, len(rows.people)},
		{&model.StationProduce{}, &rows.produce, len(rows.produce)},
	}
	for _, c := range children {
		if err := tx.Where("station_id = ?", stationID).Delete(c.model).Error; err != nil {
			return fmt.Errorf("clear %T: %w", c.model, err)
		}
		if c.n == 0 {
			continue
		}
		if err := tx.Create(c.rows).Error; err != nil {
			return fmt.Errorf("insert %T: %w", c.model, err)
		}
	}
	return nil
}

func marshalJSON(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode column: %w", err)
	}
	return b, nil
}
