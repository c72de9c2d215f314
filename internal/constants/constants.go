// Package constants contains application-wide constants to avoid magic numbers and strings.
package constants

import "time"

// Application defaults
const (
	DefaultPort           = "3000"
	DefaultTransitPort    = "3001"
	DefaultDBPath         = "database/mekkompis.db"
	DefaultUploadDir      = "uploads"
	DefaultAllowedOrigins = "http://localhost:5173"
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "text"
	DefaultHTTPTimeout    = 10 * time.Second
	DefaultRetryCount     = 3
	DefaultRetryBase      = 1 * time.Second
	ShutdownTimeout       = 5 * time.Second
)

// Authentication
const (
	TokenLifetime      = 7 * 24 * time.Hour
	TokenLifetimeLabel = "7d"
	BcryptCost         = 10
	LoginRatePerMinute = 5
	LoginBurst         = 5
)

// Uploads
const (
	UploadField       = "image"
	MaxUploadBytes    = 10 << 20 // 10 MiB
	MaxFilenameLength = 255
	SweepGracePeriod  = 1 * time.Hour
)

// Västtrafik
const (
	DefaultTransitAuthURL  = "https://ext-api.vasttrafik.se/token"
	DefaultTransitAPIBase  = "https://ext-api.vasttrafik.se/pr/v4"
	TransitTokenMargin     = 5 * time.Minute
	TransitSearchLimit     = 10
	TransitSearchCacheTTL  = 5 * time.Minute
	DefaultDepartureLimit  = 20
	DefaultDepartureWindow = 60
	MaxDepartureLimit      = 100
	MaxDepartureWindow     = 1440
	TransitMinInterval     = 100 * time.Millisecond
)

// Validation
const (
	MinVehicleYear = 1900
	MinQuantity    = 1
)

// File Permissions
const (
	DirPermissions  = 0755
	FilePermissions = 0644
)

// Date layout used for job dates
const DateLayout = "2006-01-02"

// Characters allowed in stored upload names; everything else becomes '_'
const AllowedFilenameChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789._-"
