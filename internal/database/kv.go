package database

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KeyValue is a durable string slot stored next to the record stores.
type KeyValue struct {
	Slot      string `gorm:"primaryKey"`
	Value     string `gorm:"not null"`
	UpdatedAt time.Time
}

// TableName overrides the gorm default.
func (KeyValue) TableName() string { return "kv_entries" }

// GetValue returns the value stored under slot or ErrKeyNotFound.
func (c *Client) GetValue(ctx context.Context, slot string) (string, error) {
	var kv KeyValue
	if err := c.db.WithContext(ctx).Where("slot = ?", slot).First(&kv).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrKeyNotFound
		}
		log.Error("failed to get value", "slot", slot, "error", err)
		return "", err
	}
	return kv.Value, nil
}

// SetValue stores value under slot, replacing the previous value.
func (c *Client) SetValue(ctx context.Context, slot, value string) error {
	kv := KeyValue{Slot: slot, Value: value}
	err := c.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slot"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&kv).Error
	if err != nil {
		log.Error("failed to set value", "slot", slot, "error", err)
		return err
	}
	return nil
}

// DeleteValue removes slot. Deleting an empty slot is not an error.
func (c *Client) DeleteValue(ctx context.Context, slot string) error {
	if err := c.db.WithContext(ctx).Where("slot = ?", slot).Delete(&KeyValue{}).Error; err != nil {
		log.Error("failed to delete value", "slot", slot, "error", err)
		return err
	}
	return nil
}

// SchemaVersion returns the schema version recorded in the database.
func (c *Client) SchemaVersion(ctx context.Context) (int, error) {
	return c.storedVersion(c.db.WithContext(ctx))
}
