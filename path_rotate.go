package passgenvaultplugin

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/vault/sdk/framework"
	"github.com/hashicorp/vault/sdk/logical"

	"github.com/passgen-vault-plugin/passgen"
)

func pathRotateRole(b *passgenBackend) []*framework.Path {
	return []*framework.Path{
		{
			Pattern: "rotate-role/" + framework.GenericNameRegex("name"),
			Fields: map[string]*framework.FieldSchema{
				"name": {
					Type:        framework.TypeString,
					Description: "Name of the role to rotate.",
					Required:    true,
				},
			},
			Operations: map[logical.Operation]framework.OperationHandler{
				logical.CreateOperation: &framework.PathOperation{
					Callback: b.pathRotateRoleWrite,
				},
				logical.UpdateOperation: &framework.PathOperation{
					Callback: b.pathRotateRoleWrite,
				},
			},
			ExistenceCheck:  b.pathRotateRoleExistenceCheck,
			HelpSynopsis:    "Rotate the password of a role.",
			HelpDescription: "Draws a new password from the role's pool and stores it as the role's current credential.",
		},
	}
}

func (b *passgenBackend) pathRotateRoleExistenceCheck(ctx context.Context, req *logical.Request, d *framework.FieldData) (bool, error) {
	name := d.Get("name").(string)
	role, err := getRole(ctx, req.Storage, name)
	if err != nil {
		return false, err
	}
	return role != nil, nil
}

func (b *passgenBackend) pathRotateRoleWrite(ctx context.Context, req *logical.Request, d *framework.FieldData) (*logical.Response, error) {
	name := d.Get("name").(string)
	return b.rotateRole(ctx, req.Storage, name)
}

func (b *passgenBackend) rotateRole(ctx context.Context, s logical.Storage, name string) (*logical.Response, error) {
	b.roleMutex.Lock()
	defer b.roleMutex.Unlock()

	role, err := getRole(ctx, s, name)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return logical.ErrorResponse("role %q not found", name), nil
	}

	pool, resp, err := b.loadPool(ctx, s, role.Pool)
	if err != nil {
		return nil, err
	}
	if resp != nil {
		return logical.ErrorResponse("pool %q not found for role %q", role.Pool, name), nil
	}

	config, err := getConfig(ctx, s)
	if err != nil {
		return nil, err
	}
	length := role.Length
	if length == 0 {
		length = config.DefaultLength
	}
	if resp := minEntropyResponse(config, role.Pool, pool, length); resp != nil {
		return resp, nil
	}

	newPassword, err := b.generator.Password(pool, length)
	if errors.Is(err, passgen.ErrEmptyPool) {
		return logical.ErrorResponse("pool %q for role %q contains no characters", role.Pool, name), nil
	}
	if err != nil {
		return nil, fmt.Errorf("generating password: %w", err)
	}

	role.Password = newPassword
	role.LastRotated = b.now().UTC()

	if err := putRole(ctx, s, name, role); err != nil {
		b.Logger().Error("failed to store rotated password",
			"role", name,
			"pool", role.Pool,
			"error", err,
		)
		return nil, fmt.Errorf("storing rotated password for %q: %w", name, err)
	}

	return nil, nil
}
