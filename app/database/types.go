package database

import (
	"time"
)

type Region struct {
	ID        string // Configuration region identifier derived from filename
	Name      string
	Country   string
	Lat       float64
	Lng       float64
	Feeds     []Feed // Ordered by position
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Feed struct {
	URL      string
	Category string // Editorial hint, not used for item classification
}
