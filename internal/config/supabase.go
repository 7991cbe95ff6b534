package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

type SupabaseConfig struct {
	URL            string
	ServiceRoleKey string
	Timeout        time.Duration
	RateLimit      float64
}

var (
	supabaseConfig *SupabaseConfig
	supabaseOnce   sync.Once
)

func LoadSupabaseConfig() *SupabaseConfig {
	supabaseOnce.Do(func() {
		timeout, err := time.ParseDuration(getEnv("SUPABASE_TIMEOUT", "15s"))
		if err != nil || timeout <= 0 {
			timeout = 15 * time.Second
		}
		rateLimit, err := strconv.ParseFloat(getEnv("SUPABASE_RATE_LIMIT", "10"), 64)
		if err != nil || rateLimit <= 0 {
			rateLimit = 10
		}
		supabaseConfig = &SupabaseConfig{
			URL:            strings.TrimRight(os.Getenv("SUPABASE_URL"), "/"),
			ServiceRoleKey: os.Getenv("SUPABASE_SERVICE_ROLE_KEY"),
			Timeout:        timeout,
			RateLimit:      rateLimit,
		}
	})
	return supabaseConfig
}

// Validate reports missing credentials; the server cannot do anything useful without them.
func (c *SupabaseConfig) Validate() error {
	if c.URL == "" || c.ServiceRoleKey == "" {
		return errors.New("SUPABASE_URL or SUPABASE_SERVICE_ROLE_KEY is missing from the environment")
	}
	return nil
}

func (c *SupabaseConfig) RESTURL() string {
	return c.URL + "/rest/v1"
}

func (c *SupabaseConfig) AuthAdminURL() string {
	return c.URL + "/auth/v1/admin/users"
}
