package domain

import (
	"errors"
	"time"
)

var ErrPlanNotFound = errors.New("plan not found")
var ErrPlanNameTaken = errors.New("plan name already exists")
var ErrPlanInUse = errors.New("plan has active subscriptions")

// Plan is a subscription tier. MaxProfiles caps how many viewing profiles a
// subscribed user may create.
type Plan struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Price        float64   `json:"price"`
	MaxProfiles  int       `json:"max_profiles"`
	MaxDevices   int       `json:"max_devices"`
	VideoQuality string    `json:"video_quality"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
