package passgenvaultplugin

import (
	"context"
	"time"

	"github.com/hashicorp/vault/sdk/framework"
	"github.com/hashicorp/vault/sdk/logical"
)

func pathRoles(b *passgenBackend) []*framework.Path {
	return []*framework.Path{
		{
			Pattern: "roles/" + framework.GenericNameRegex("name"),
			Fields: map[string]*framework.FieldSchema{
				"name": {
					Type:        framework.TypeString,
					Description: "Name of the role.",
					Required:    true,
				},
				"pool": {
					Type:        framework.TypeString,
					Description: "Name of the pool to draw the password from. Defaults to the configured default_pool.",
				},
				"length": {
					Type:        framework.TypeInt,
					Description: "Password length. 0 uses the configured default_length at rotation time.",
					Default:     0,
				},
				"rotation_period": {
					Type:        framework.TypeDurationSecond,
					Description: "How often to rotate the password, in seconds. 0 disables automatic rotation.",
					Default:     0,
				},
			},
			Operations: map[logical.Operation]framework.OperationHandler{
				logical.CreateOperation: &framework.PathOperation{
					Callback: b.pathRolesWrite,
				},
				logical.UpdateOperation: &framework.PathOperation{
					Callback: b.pathRolesWrite,
				},
				logical.ReadOperation: &framework.PathOperation{
					Callback: b.pathRolesRead,
				},
				logical.DeleteOperation: &framework.PathOperation{
					Callback: b.pathRolesDelete,
				},
			},
			ExistenceCheck:  b.pathRolesExistenceCheck,
			HelpSynopsis:    "Manage static roles backed by a pool.",
			HelpDescription: "Create, read, update, or delete a role whose password is drawn from a named pool and rotated on demand or on a schedule.",
		},
		{
			Pattern: "roles/?$",
			Operations: map[logical.Operation]framework.OperationHandler{
				logical.ListOperation: &framework.PathOperation{
					Callback: b.pathRolesList,
				},
			},
			HelpSynopsis:    "List configured roles.",
			HelpDescription: "List the names of all configured roles.",
		},
	}
}

func (b *passgenBackend) pathRolesExistenceCheck(ctx context.Context, req *logical.Request, d *framework.FieldData) (bool, error) {
	name := d.Get("name").(string)
	role, err := getRole(ctx, req.Storage, name)
	if err != nil {
		return false, err
	}
	return role != nil, nil
}

func (b *passgenBackend) pathRolesWrite(ctx context.Context, req *logical.Request, d *framework.FieldData) (*logical.Response, error) {
	name := d.Get("name").(string)

	config, err := getConfig(ctx, req.Storage)
	if err != nil {
		return nil, err
	}

	b.roleMutex.Lock()
	defer b.roleMutex.Unlock()

	existing, err := getRole(ctx, req.Storage, name)
	if err != nil {
		return nil, err
	}

	// Updates keep the stored password, last_rotated, and any field the
	// request leaves out
	role := &RoleEntry{}
	if existing != nil {
		*role = *existing
	}

	if v, ok := d.GetOk("pool"); ok {
		role.Pool = v.(string)
	}
	if v, ok := d.GetOk("length"); ok {
		role.Length = v.(int)
	}
	if v, ok := d.GetOk("rotation_period"); ok {
		role.RotationPeriod = time.Duration(v.(int)) * time.Second
	}

	if role.Pool == "" && existing == nil {
		role.Pool = config.DefaultPool
	}
	if role.Pool == "" {
		return logical.ErrorResponse("pool is required when no default_pool is configured"), nil
	}
	if role.Length < 0 || role.Length > config.MaxLength {
		return logical.ErrorResponse("length must be between 0 and %d, got %d", config.MaxLength, role.Length), nil
	}
	if role.RotationPeriod < 0 {
		return logical.ErrorResponse("rotation_period must not be negative"), nil
	}

	pool, resp, err := b.loadPool(ctx, req.Storage, role.Pool)
	if resp != nil || err != nil {
		return resp, err
	}

	length := role.Length
	if length == 0 {
		length = config.DefaultLength
	}
	if resp := minEntropyResponse(config, role.Pool, pool, length); resp != nil {
		return resp, nil
	}

	if err := putRole(ctx, req.Storage, name, role); err != nil {
		return nil, err
	}

	return nil, nil
}

func (b *passgenBackend) pathRolesRead(ctx context.Context, req *logical.Request, d *framework.FieldData) (*logical.Response, error) {
	name := d.Get("name").(string)

	role, err := getRole(ctx, req.Storage, name)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, nil
	}

	data := map[string]interface{}{
		"pool":            role.Pool,
		"length":          role.Length,
		"rotation_period": int(role.RotationPeriod.Seconds()),
	}
	if !role.LastRotated.IsZero() {
		data["last_rotated"] = role.LastRotated.Format(time.RFC3339)
	}

	return &logical.Response{Data: data}, nil
}

func (b *passgenBackend) pathRolesDelete(ctx context.Context, req *logical.Request, d *framework.FieldData) (*logical.Response, error) {
	name := d.Get("name").(string)

	b.roleMutex.Lock()
	defer b.roleMutex.Unlock()

	if err := deleteRole(ctx, req.Storage, name); err != nil {
		return nil, err
	}

	return nil, nil
}

func (b *passgenBackend) pathRolesList(ctx context.Context, req *logical.Request, d *framework.FieldData) (*logical.Response, error) {
	roles, err := listRoles(ctx, req.Storage)
	if err != nil {
		return nil, err
	}

	return logical.ListResponse(roles), nil
}
