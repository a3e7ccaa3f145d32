package passgenvaultplugin

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hashicorp/vault/sdk/logical"
)

const (
	configStoragePath = "config"
	poolStoragePrefix = "pools/"
	roleStoragePrefix = "roles/"
)

func getEntry[T any](ctx context.Context, s logical.Storage, path string) (*T, error) {
	entry, err := s.Get(ctx, path)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, nil
	}
	var result T
	if err := json.Unmarshal(entry.Value, &result); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return &result, nil
}

func putEntry(ctx context.Context, s logical.Storage, path string, data interface{}) error {
	entry, err := logical.StorageEntryJSON(path, data)
	if err != nil {
		return err
	}
	return s.Put(ctx, entry)
}

// getConfig never returns a nil config: missing storage yields the defaults.
func getConfig(ctx context.Context, s logical.Storage) (*ConfigEntry, error) {
	config, err := getEntry[ConfigEntry](ctx, s, configStoragePath)
	if err != nil {
		return nil, err
	}
	if config == nil {
		return defaultConfig(), nil
	}
	return config, nil
}

func putConfig(ctx context.Context, s logical.Storage, config *ConfigEntry) error {
	return putEntry(ctx, s, configStoragePath, config)
}

func deleteConfig(ctx context.Context, s logical.Storage) error {
	return s.Delete(ctx, configStoragePath)
}

func getPool(ctx context.Context, s logical.Storage, name string) (*PoolEntry, error) {
	return getEntry[PoolEntry](ctx, s, poolStoragePrefix+name)
}

func putPool(ctx context.Context, s logical.Storage, name string, pool *PoolEntry) error {
	return putEntry(ctx, s, poolStoragePrefix+name, pool)
}

func deletePool(ctx context.Context, s logical.Storage, name string) error {
	return s.Delete(ctx, poolStoragePrefix+name)
}

func listPools(ctx context.Context, s logical.Storage) ([]string, error) {
	return s.List(ctx, poolStoragePrefix)
}

func getRole(ctx context.Context, s logical.Storage, name string) (*RoleEntry, error) {
	return getEntry[RoleEntry](ctx, s, roleStoragePrefix+name)
}

func putRole(ctx context.Context, s logical.Storage, name string, role *RoleEntry) error {
	return putEntry(ctx, s, roleStoragePrefix+name, role)
}

func deleteRole(ctx context.Context, s logical.Storage, name string) error {
	return s.Delete(ctx, roleStoragePrefix+name)
}

func listRoles(ctx context.Context, s logical.Storage) ([]string, error) {
	return s.List(ctx, roleStoragePrefix)
}

// rolesUsingPool returns the names of roles that reference the named pool.
func rolesUsingPool(ctx context.Context, s logical.Storage, pool string) ([]string, error) {
	names, err := listRoles(ctx, s)
	if err != nil {
		return nil, err
	}
	var using []string
	for _, name := range names {
		role, err := getRole(ctx, s, name)
		if err != nil {
			return nil, err
		}
		if role != nil && role.Pool == pool {
			using = append(using, name)
		}
	}
	return using, nil
}
