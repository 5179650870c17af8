package utils

import "time"

// Application Constants
const (
	AppName    = "Skyfence"
	AppVersion = "1.0.0"

	// Default values
	DefaultTimeZone = "UTC"

	// Pagination
	DefaultPageSize = 50
	MaxPageSize     = 100
	MinPageSize     = 1

	// Zones
	MaxTimeWindowLength = 255

	// Cache
	ZoneCacheTTL     = 10 * time.Minute
	ZoneListCacheTTL = 1 * time.Minute

	// Collections
	ZonesCollection     = "flight_zones"
	SchedulesCollection = "flight_schedules"
)

// Response Status
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Error Messages
const (
	ErrValidationFailed = "Validation failed"
	ErrInternalServer   = "Internal server error"
	ErrUnauthorized     = "Unauthorized access"
	ErrForbidden        = "Access forbidden"
)

// Cache Key Prefixes
const (
	CacheZonePrefix     = "zone:"
	CacheZoneListKey    = "zones:list"
	CacheSchedulePrefix = "schedule:"
)
