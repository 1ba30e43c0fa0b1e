package env

import (
	"os"
	"strconv"
	"time"

	"github.com/ayitek/borlette-pos/internal/shared/logger"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Values holds every setting the process reads from the environment.
type Values struct {
	BackendURL string
	ServerPort int
	Timezone   string
	DebugMode  bool

	// Printer settings
	PrinterAddress *string
	DryRunMode     bool
	BestQuality    bool
	Dither         bool
	AutoRotate     bool
	BlackPoint     float32
	RotatePrint    bool

	// Offline cache
	CacheVersion string

	location *time.Location
}

// Value is populated by LoadEnv and read everywhere else.
var Value Values

// LoadEnv reads .env (if present) and the process environment into Value.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		logger.Debug("No .env file found, using process environment only")
	}

	Value = Values{
		BackendURL:   getString("BACKEND_URL", "https://api.lesly-pam.com"),
		ServerPort:   getInt("SERVER_PORT", 8080),
		Timezone:     getString("TIMEZONE", "America/Port-au-Prince"),
		DebugMode:    getBool("DEBUG_MODE", false),
		DryRunMode:   getBool("DRY_RUN_MODE", true),
		BestQuality:  getBool("BEST_QUALITY", true),
		Dither:       getBool("DITHER", false),
		AutoRotate:   getBool("AUTO_ROTATE", false),
		BlackPoint:   float32(getFloat("BLACK_POINT", 0)),
		RotatePrint:  getBool("ROTATE_PRINT", false),
		CacheVersion: getString("CACHE_VERSION", "v1"),
	}

	if addr := os.Getenv("PRINTER_ADDRESS"); addr != "" {
		Value.PrinterAddress = &addr
	}

	loc, err := time.LoadLocation(Value.Timezone)
	if err != nil {
		logger.Warn("Invalid TIMEZONE, falling back to local time",
			zap.String("timezone", Value.Timezone), zap.Error(err))
		loc = time.Local
	}
	Value.location = loc
}

// Location returns the POS timezone. Draw times are compared in this
// zone, never the host locale.
func (v *Values) Location() *time.Location {
	if v.location == nil {
		return time.Local
	}
	return v.location
}

func getString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		logger.Warn("Invalid integer env value", zap.String("key", key), zap.String("value", v))
		return fallback
	}
	return n
}

func getFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		logger.Warn("Invalid float env value", zap.String("key", key), zap.String("value", v))
		return fallback
	}
	return f
}

func getBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v == "true" || v == "1"
}
