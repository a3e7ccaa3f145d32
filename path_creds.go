package passgenvaultplugin

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/hashicorp/vault/sdk/framework"
	"github.com/hashicorp/vault/sdk/logical"

	"github.com/passgen-vault-plugin/passgen"
)

func pathCreds(b *passgenBackend) []*framework.Path {
	return []*framework.Path{
		{
			Pattern: "creds/" + framework.GenericNameRegex("name"),
			Fields: map[string]*framework.FieldSchema{
				"name": {
					Type:        framework.TypeString,
					Description: "Name of the role.",
					Required:    true,
				},
			},
			Operations: map[logical.Operation]framework.OperationHandler{
				logical.ReadOperation: &framework.PathOperation{
					Callback: b.pathCredsRead,
				},
			},
			HelpSynopsis:    "Read the current password of a role.",
			HelpDescription: "Returns the most recently rotated password for the named role, its entropy in bits, and when it is next due for rotation.",
		},
	}
}

func (b *passgenBackend) pathCredsRead(ctx context.Context, req *logical.Request, d *framework.FieldData) (*logical.Response, error) {
	name := d.Get("name").(string)

	b.roleMutex.RLock()
	defer b.roleMutex.RUnlock()

	role, err := getRole(ctx, req.Storage, name)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return logical.ErrorResponse("role %q not found", name), nil
	}

	if role.Password == "" {
		return logical.ErrorResponse("password for role %q has not been rotated yet; run rotate-role/%s first", name, name), nil
	}

	length := utf8.RuneCountInString(role.Password)
	data := map[string]interface{}{
		"password": role.Password,
		"pool":     role.Pool,
		"length":   length,
	}

	entry, err := getPool(ctx, req.Storage, role.Pool)
	if err != nil {
		return nil, err
	}
	if entry != nil && entry.Chars != nil {
		data["entropy"] = jsonFloat(passgen.PoolEntropy(entry.Chars, length))
	}

	if !role.LastRotated.IsZero() {
		data["last_rotated"] = role.LastRotated.Format(time.RFC3339)
		if role.RotationPeriod > 0 {
			next := role.LastRotated.Add(role.RotationPeriod)
			data["next_rotation"] = next.Format(time.RFC3339)
			data["ttl"] = int(max(next.Sub(b.now()), 0).Seconds())
		}
	}

	return &logical.Response{Data: data}, nil
}
