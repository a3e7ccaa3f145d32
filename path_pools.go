package passgenvaultplugin

import (
	"context"
	"strings"

	"github.com/hashicorp/vault/sdk/framework"
	"github.com/hashicorp/vault/sdk/logical"

	"github.com/passgen-vault-plugin/passgen"
)

func pathPools(b *passgenBackend) []*framework.Path {
	return []*framework.Path{
		{
			Pattern: "pools/" + framework.GenericNameRegex("name"),
			Fields: map[string]*framework.FieldSchema{
				"name": {
					Type:        framework.TypeString,
					Description: "Name of the pool.",
					Required:    true,
				},
				"chars": {
					Type:        framework.TypeString,
					Description: "Literal characters to include. Duplicates are ignored; first occurrence keeps its position.",
				},
				"classes": {
					Type:        framework.TypeCommaStringSlice,
					Description: "Character classes to append after chars: " + strings.Join(passgen.Classes(), ", ") + ".",
				},
				"exclude": {
					Type:        framework.TypeString,
					Description: "Characters to remove from the pool, e.g. look-alikes such as 0O1lI.",
				},
				"sort": {
					Type:        framework.TypeBool,
					Description: "Store the pool in ascending code point order.",
					Default:     false,
				},
			},
			Operations: map[logical.Operation]framework.OperationHandler{
				logical.CreateOperation: &framework.PathOperation{
					Callback: b.pathPoolsWrite,
				},
				logical.UpdateOperation: &framework.PathOperation{
					Callback: b.pathPoolsWrite,
				},
				logical.ReadOperation: &framework.PathOperation{
					Callback: b.pathPoolsRead,
				},
				logical.DeleteOperation: &framework.PathOperation{
					Callback: b.pathPoolsDelete,
				},
			},
			ExistenceCheck:  b.pathPoolsExistenceCheck,
			HelpSynopsis:    "Manage named character pools.",
			HelpDescription: "Create, read, update, or delete a named pool of unique characters that passwords are drawn from.",
		},
		{
			Pattern: "pools/?$",
			Operations: map[logical.Operation]framework.OperationHandler{
				logical.ListOperation: &framework.PathOperation{
					Callback: b.pathPoolsList,
				},
			},
			HelpSynopsis:    "List configured pools.",
			HelpDescription: "List the names of all configured character pools.",
		},
	}
}

func (b *passgenBackend) pathPoolsExistenceCheck(ctx context.Context, req *logical.Request, d *framework.FieldData) (bool, error) {
	name := d.Get("name").(string)
	pool, err := getPool(ctx, req.Storage, name)
	if err != nil {
		return false, err
	}
	return pool != nil, nil
}

func (b *passgenBackend) pathPoolsWrite(ctx context.Context, req *logical.Request, d *framework.FieldData) (*logical.Response, error) {
	name := d.Get("name").(string)

	pool := passgen.Parse(d.Get("chars").(string))
	if classes := d.Get("classes").([]string); len(classes) > 0 {
		classPool, err := passgen.ClassPool(classes...)
		if err != nil {
			return logical.ErrorResponse("invalid classes: %s", err), nil
		}
		pool.Extend(classPool.All())
	}
	pool.RemoveAll(d.Get("exclude").(string))
	if d.Get("sort").(bool) {
		pool.Sort()
	}

	if pool.IsEmpty() {
		return logical.ErrorResponse("pool %q would contain no characters; set chars or classes", name), nil
	}

	if err := putPool(ctx, req.Storage, name, &PoolEntry{Chars: pool}); err != nil {
		return nil, err
	}

	return nil, nil
}

func (b *passgenBackend) pathPoolsRead(ctx context.Context, req *logical.Request, d *framework.FieldData) (*logical.Response, error) {
	name := d.Get("name").(string)

	entry, err := getPool(ctx, req.Storage, name)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, nil
	}

	return &logical.Response{
		Data: map[string]interface{}{
			"chars":         entry.Chars.String(),
			"length":        entry.Chars.Len(),
			"bits_per_char": jsonFloat(passgen.PoolEntropy(entry.Chars, 1)),
		},
	}, nil
}

func (b *passgenBackend) pathPoolsDelete(ctx context.Context, req *logical.Request, d *framework.FieldData) (*logical.Response, error) {
	name := d.Get("name").(string)

	roles, err := rolesUsingPool(ctx, req.Storage, name)
	if err != nil {
		return nil, err
	}
	if len(roles) > 0 {
		return logical.ErrorResponse("pool %q is used by roles: %s", name, strings.Join(roles, ", ")), nil
	}

	config, err := getConfig(ctx, req.Storage)
	if err != nil {
		return nil, err
	}
	if config.DefaultPool == name {
		return logical.ErrorResponse("pool %q is the configured default_pool", name), nil
	}

	if err := deletePool(ctx, req.Storage, name); err != nil {
		return nil, err
	}

	return nil, nil
}

func (b *passgenBackend) pathPoolsList(ctx context.Context, req *logical.Request, d *framework.FieldData) (*logical.Response, error) {
	pools, err := listPools(ctx, req.Storage)
	if err != nil {
		return nil, err
	}

	return logical.ListResponse(pools), nil
}
