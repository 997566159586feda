package model

import "time"

// Slot is one named entry of the key-value store. Value holds a complete
// JSON snapshot and is overwritten as a whole.
type Slot struct {
	Name      string `gorm:"primaryKey"`
	Value     string
	UpdatedAt time.Time
}
