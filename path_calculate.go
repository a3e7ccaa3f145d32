package passgenvaultplugin

import (
	"context"
	"math"
	"strconv"

	"github.com/hashicorp/vault/sdk/framework"
	"github.com/hashicorp/vault/sdk/logical"

	"github.com/passgen-vault-plugin/passgen"
)

func pathCalculate(b *passgenBackend) []*framework.Path {
	return []*framework.Path{
		{
			Pattern: "calculate/entropy",
			Fields: map[string]*framework.FieldSchema{
				"length": {
					Type:        framework.TypeInt,
					Description: "Password length in characters.",
					Required:    true,
				},
				"pool_size": {
					Type:        framework.TypeInt,
					Description: "Number of distinct characters. Ignored when pool is set.",
				},
				"pool": {
					Type:        framework.TypeString,
					Description: "Name of a stored pool whose size is used.",
				},
			},
			Operations: map[logical.Operation]framework.OperationHandler{
				logical.UpdateOperation: &framework.PathOperation{
					Callback: b.pathCalculateEntropy,
				},
			},
			HelpSynopsis:    "Calculate the entropy of a password.",
			HelpDescription: "Returns length * log2(pool_size) in bits. Degenerate pool sizes yield -Inf or 0 rather than an error.",
		},
		{
			Pattern: "calculate/length",
			Fields: map[string]*framework.FieldSchema{
				"entropy": {
					Type:        framework.TypeFloat,
					Description: "Target entropy in bits.",
					Required:    true,
				},
				"pool_size": {
					Type:        framework.TypeFloat,
					Description: "Number of distinct characters. Ignored when pool is set.",
				},
				"pool": {
					Type:        framework.TypeString,
					Description: "Name of a stored pool whose size is used.",
				},
			},
			Operations: map[logical.Operation]framework.OperationHandler{
				logical.UpdateOperation: &framework.PathOperation{
					Callback: b.pathCalculateLength,
				},
			},
			HelpSynopsis:    "Calculate the length needed for a target entropy.",
			HelpDescription: "Returns ceil(entropy / log2(pool_size)). Degenerate pool sizes yield +Inf or NaN rather than an error.",
		},
	}
}

func (b *passgenBackend) pathCalculateEntropy(ctx context.Context, req *logical.Request, d *framework.FieldData) (*logical.Response, error) {
	length := d.Get("length").(int)
	if length < 0 {
		return logical.ErrorResponse("length must not be negative"), nil
	}

	poolSize := d.Get("pool_size").(int)
	if name := d.Get("pool").(string); name != "" {
		pool, resp, err := b.loadPool(ctx, req.Storage, name)
		if resp != nil || err != nil {
			return resp, err
		}
		poolSize = pool.Len()
	}
	if poolSize < 0 {
		return logical.ErrorResponse("pool_size must not be negative"), nil
	}

	return &logical.Response{
		Data: map[string]interface{}{
			"entropy":   jsonFloat(passgen.CalculateEntropy(length, poolSize)),
			"length":    length,
			"pool_size": poolSize,
		},
	}, nil
}

func (b *passgenBackend) pathCalculateLength(ctx context.Context, req *logical.Request, d *framework.FieldData) (*logical.Response, error) {
	entropy := d.Get("entropy").(float64)

	poolSize := d.Get("pool_size").(float64)
	if name := d.Get("pool").(string); name != "" {
		pool, resp, err := b.loadPool(ctx, req.Storage, name)
		if resp != nil || err != nil {
			return resp, err
		}
		poolSize = float64(pool.Len())
	}

	return &logical.Response{
		Data: map[string]interface{}{
			"length":    jsonFloat(passgen.CalculateLength(entropy, poolSize)),
			"entropy":   entropy,
			"pool_size": poolSize,
		},
	}, nil
}

// jsonFloat returns f unchanged when JSON can encode it and its strconv
// spelling ("+Inf", "-Inf", "NaN") otherwise. Negative zero becomes 0.
func jsonFloat(f float64) interface{} {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	if f == 0 {
		return 0.0
	}
	return f
}
