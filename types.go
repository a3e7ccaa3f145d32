package passgenvaultplugin

import (
	"time"

	"github.com/passgen-vault-plugin/passgen"
)

// ConfigEntry holds engine-wide generation limits and defaults.
type ConfigEntry struct {
	DefaultLength int     `json:"default_length"`
	MaxLength     int     `json:"max_length"`
	MaxCount      int     `json:"max_count"`
	MinEntropy    float64 `json:"min_entropy,omitempty"`
	DefaultPool   string  `json:"default_pool,omitempty"`
}

func defaultConfig() *ConfigEntry {
	return &ConfigEntry{
		DefaultLength: 32,
		MaxLength:     1024,
		MaxCount:      100,
	}
}

// PoolEntry is a named character pool. Chars serialises as a plain string.
type PoolEntry struct {
	Chars *passgen.Pool `json:"chars"`
}

// RoleEntry binds a static credential to a named pool.
type RoleEntry struct {
	Pool           string        `json:"pool"`
	Length         int           `json:"length,omitempty"`
	RotationPeriod time.Duration `json:"rotation_period,omitempty"`
	Password       string        `json:"password,omitempty"`
	LastRotated    time.Time     `json:"last_rotated,omitempty"`
}
