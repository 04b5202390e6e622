package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds service configuration.
type Config struct {
	ServerAddr    string
	DatabaseURL   string
	Administrator string
	Treasury      string
	AdminSecret   string
	EscalationFee int64
	StartHeight   uint64
	Participants  []string
	AlertRules    string
}

// Load reads configuration from environment. DATABASE_URL is optional; with
// it unset the service runs without the archive mirror.
func Load() (*Config, error) {
	return &Config{
		ServerAddr:    getenv("SERVER_ADDR", "0.0.0.0:8080"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		Administrator: getenv("ADMIN_PRINCIPAL", "admin"),
		Treasury:      getenv("TREASURY_PRINCIPAL", "treasury"),
		AdminSecret:   os.Getenv("ADMIN_SECRET"),
		EscalationFee: parseInt64(os.Getenv("ESCALATION_FEE"), 100),
		StartHeight:   uint64(parseInt64(os.Getenv("START_HEIGHT"), 0)),
		Participants:  splitList(os.Getenv("PARTICIPANTS")),
		AlertRules:    os.Getenv("ALERT_RULES"),
	}, nil
}

func getenv(key, def string) string {
	val := os.Getenv(key)
	if val == "" {
		return def
	}
	return val
}

func parseInt64(val string, def int64) int64 {
	if val == "" {
		return def
	}
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return def
	}
	return n
}

func splitList(val string) []string {
	var out []string
	for _, part := range strings.Split(val, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
