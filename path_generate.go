package passgenvaultplugin

import (
	"context"
	"errors"
	"math"

	"github.com/hashicorp/vault/sdk/framework"
	"github.com/hashicorp/vault/sdk/logical"

	"github.com/passgen-vault-plugin/passgen"
)

func pathGenerate(b *passgenBackend) []*framework.Path {
	return []*framework.Path{
		{
			Pattern: "generate/" + framework.GenericNameRegex("pool"),
			Fields: map[string]*framework.FieldSchema{
				"pool": {
					Type:        framework.TypeString,
					Description: "Name of the pool to draw characters from.",
					Required:    true,
				},
				"length": {
					Type:        framework.TypeInt,
					Description: "Number of characters per password. Defaults to the configured default_length.",
				},
				"count": {
					Type:        framework.TypeInt,
					Description: "Number of passwords to generate.",
					Default:     1,
				},
			},
			Operations: map[logical.Operation]framework.OperationHandler{
				logical.UpdateOperation: &framework.PathOperation{
					Callback: b.pathGenerateWrite,
				},
			},
			HelpSynopsis:    "Generate passwords from a named pool.",
			HelpDescription: "Draws each character independently and uniformly from the pool. Characters may repeat within a password.",
		},
	}
}

func (b *passgenBackend) pathGenerateWrite(ctx context.Context, req *logical.Request, d *framework.FieldData) (*logical.Response, error) {
	name := d.Get("pool").(string)

	config, err := getConfig(ctx, req.Storage)
	if err != nil {
		return nil, err
	}

	length := config.DefaultLength
	if v, ok := d.GetOk("length"); ok {
		length = v.(int)
	}
	count := d.Get("count").(int)

	if length < 0 || length > config.MaxLength {
		return logical.ErrorResponse("length must be between 0 and %d, got %d", config.MaxLength, length), nil
	}
	if count < 0 || count > config.MaxCount {
		return logical.ErrorResponse("count must be between 0 and %d, got %d", config.MaxCount, count), nil
	}

	pool, resp, err := b.loadPool(ctx, req.Storage, name)
	if resp != nil || err != nil {
		return resp, err
	}

	if resp := minEntropyResponse(config, name, pool, length); resp != nil {
		return resp, nil
	}
	entropy := passgen.PoolEntropy(pool, length)

	passwords, err := b.generator.Passwords(pool, length, count)
	if errors.Is(err, passgen.ErrEmptyPool) {
		return logical.ErrorResponse("pool %q contains no characters", name), nil
	}
	if err != nil {
		return nil, err
	}

	return &logical.Response{
		Data: map[string]interface{}{
			"passwords": passwords,
			"pool_size": pool.Len(),
			"entropy":   jsonFloat(entropy),
		},
	}, nil
}

// loadPool returns the named pool, or an error response when it does not
// exist.
func (b *passgenBackend) loadPool(ctx context.Context, s logical.Storage, name string) (*passgen.Pool, *logical.Response, error) {
	entry, err := getPool(ctx, s, name)
	if err != nil {
		return nil, nil, err
	}
	if entry == nil || entry.Chars == nil {
		return nil, logical.ErrorResponse("pool %q not found", name), nil
	}
	return entry.Chars, nil, nil
}

// minEntropyResponse returns an error response when length characters from
// pool fall short of the configured min_entropy, and nil otherwise.
func minEntropyResponse(config *ConfigEntry, name string, pool *passgen.Pool, length int) *logical.Response {
	if config.MinEntropy <= 0 {
		return nil
	}
	entropy := passgen.PoolEntropy(pool, length)
	if entropy >= config.MinEntropy {
		return nil
	}

	need := passgen.CalculateLength(config.MinEntropy, float64(pool.Len()))
	if math.IsInf(need, 0) || math.IsNaN(need) || need <= 0 {
		return logical.ErrorResponse("pool %q has %d distinct characters and cannot reach min_entropy %.2f at any length",
			name, pool.Len(), config.MinEntropy)
	}
	return logical.ErrorResponse("%d characters from pool %q give %.2f bits of entropy, below min_entropy %.2f; use at least %v characters",
		length, name, entropy, config.MinEntropy, need)
}
