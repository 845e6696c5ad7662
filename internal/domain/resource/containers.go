package resource

import "github.com/Farini/SkyNation-sub005/internal/domain/catalog"

type Tank struct {
	ID   string           `json:"id"`
	Type catalog.TankType `json:"type"`
	Level
}

type StorageBox struct {
	ID         string             `json:"id"`
	Ingredient catalog.Ingredient `json:"ingredient"`
	Level
}

type Battery struct {
	ID string `json:"id"`
	Level
}

// NewTank sizes the tank from the catalog. A prefill beyond capacity is clamped.
func NewTank(id string, t catalog.TankType, cat catalog.Catalog, prefill int) Tank {
	return Tank{ID: id, Type: t, Level: newLevel(cat.TankCapacity(t), prefill)}
}

func NewStorageBox(id string, ing catalog.Ingredient, cat catalog.Catalog, prefill int) StorageBox {
	return StorageBox{ID: id, Ingredient: ing, Level: newLevel(cat.BoxCapacity(ing), prefill)}
}

func NewBattery(id string, cat catalog.Catalog, prefill int) Battery {
	return Battery{ID: id, Level: newLevel(cat.Tuning.BatteryCapacity, prefill)}
}
