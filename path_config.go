package passgenvaultplugin

import (
	"context"

	"github.com/hashicorp/vault/sdk/framework"
	"github.com/hashicorp/vault/sdk/logical"
)

func pathConfig(b *passgenBackend) []*framework.Path {
	return []*framework.Path{
		{
			Pattern: "config",
			Fields: map[string]*framework.FieldSchema{
				"default_length": {
					Type:        framework.TypeInt,
					Description: "Password length used when a request or role does not set one.",
				},
				"max_length": {
					Type:        framework.TypeInt,
					Description: "Largest password length a request may ask for.",
				},
				"max_count": {
					Type:        framework.TypeInt,
					Description: "Largest number of passwords a single generate request may return.",
				},
				"min_entropy": {
					Type:        framework.TypeFloat,
					Description: "Minimum entropy in bits a generated password must reach. 0 disables the check.",
				},
				"default_pool": {
					Type:        framework.TypeString,
					Description: "Pool used by roles that do not name one.",
				},
			},
			Operations: map[logical.Operation]framework.OperationHandler{
				logical.CreateOperation: &framework.PathOperation{
					Callback: b.pathConfigWrite,
				},
				logical.UpdateOperation: &framework.PathOperation{
					Callback: b.pathConfigWrite,
				},
				logical.ReadOperation: &framework.PathOperation{
					Callback: b.pathConfigRead,
				},
				logical.DeleteOperation: &framework.PathOperation{
					Callback: b.pathConfigDelete,
				},
			},
			ExistenceCheck:  b.pathConfigExistenceCheck,
			HelpSynopsis:    "Configure generation defaults and limits.",
			HelpDescription: "Set the default password length, request limits, a minimum entropy and the default pool for roles.",
		},
	}
}

func (b *passgenBackend) pathConfigExistenceCheck(ctx context.Context, req *logical.Request, d *framework.FieldData) (bool, error) {
	entry, err := req.Storage.Get(ctx, configStoragePath)
	if err != nil {
		return false, err
	}
	return entry != nil, nil
}

func (b *passgenBackend) pathConfigWrite(ctx context.Context, req *logical.Request, d *framework.FieldData) (*logical.Response, error) {
	config, err := getConfig(ctx, req.Storage)
	if err != nil {
		return nil, err
	}

	if v, ok := d.GetOk("default_length"); ok {
		config.DefaultLength = v.(int)
	}
	if v, ok := d.GetOk("max_length"); ok {
		config.MaxLength = v.(int)
	}
	if v, ok := d.GetOk("max_count"); ok {
		config.MaxCount = v.(int)
	}
	if v, ok := d.GetOk("min_entropy"); ok {
		config.MinEntropy = v.(float64)
	}
	if v, ok := d.GetOk("default_pool"); ok {
		config.DefaultPool = v.(string)
	}

	if config.DefaultLength <= 0 {
		return logical.ErrorResponse("default_length must be positive"), nil
	}
	if config.MaxLength < config.DefaultLength {
		return logical.ErrorResponse("max_length %d is smaller than default_length %d", config.MaxLength, config.DefaultLength), nil
	}
	if config.MaxCount <= 0 {
		return logical.ErrorResponse("max_count must be positive"), nil
	}
	if config.MinEntropy < 0 {
		return logical.ErrorResponse("min_entropy must not be negative"), nil
	}
	if config.DefaultPool != "" {
		pool, err := getPool(ctx, req.Storage, config.DefaultPool)
		if err != nil {
			return nil, err
		}
		if pool == nil {
			return logical.ErrorResponse("pool %q not found", config.DefaultPool), nil
		}
	}

	if err := putConfig(ctx, req.Storage, config); err != nil {
		return nil, err
	}

	return nil, nil
}

func (b *passgenBackend) pathConfigRead(ctx context.Context, req *logical.Request, d *framework.FieldData) (*logical.Response, error) {
	config, err := getConfig(ctx, req.Storage)
	if err != nil {
		return nil, err
	}

	return &logical.Response{
		Data: map[string]interface{}{
			"default_length": config.DefaultLength,
			"max_length":     config.MaxLength,
			"max_count":      config.MaxCount,
			"min_entropy":    config.MinEntropy,
			"default_pool":   config.DefaultPool,
		},
	}, nil
}

func (b *passgenBackend) pathConfigDelete(ctx context.Context, req *logical.Request, d *framework.FieldData) (*logical.Response, error) {
	if err := deleteConfig(ctx, req.Storage); err != nil {
		return nil, err
	}

	return nil, nil
}
