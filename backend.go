package passgenvaultplugin

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/vault/sdk/framework"
	"github.com/hashicorp/vault/sdk/logical"

	"github.com/passgen-vault-plugin/passgen"
)

const backendHelp = `The passgen secrets engine generates random passwords from named character pools.
It can also manage static role passwords that rotate on a schedule.`

type passgenBackend struct {
	*framework.Backend

	// roleMutex serialises rotation against credential reads.
	roleMutex sync.RWMutex
	generator *passgen.Generator
	now       func() time.Time
}

func Factory(ctx context.Context, conf *logical.BackendConfig) (logical.Backend, error) {
	b := backend()
	if err := b.Setup(ctx, conf); err != nil {
		return nil, err
	}
	return b, nil
}

func backend() *passgenBackend {
	b := &passgenBackend{
		generator: passgen.NewGenerator(passgen.CryptoSource()),
		now:       time.Now,
	}

	b.Backend = &framework.Backend{
		Help:        backendHelp,
		BackendType: logical.TypeLogical,
		PathsSpecial: &logical.Paths{
			SealWrapStorage: []string{
				"config",
				"roles/*",
			},
		},
		Paths: framework.PathAppend(
			pathConfig(b),
			pathPools(b),
			pathGenerate(b),
			pathCalculate(b),
			pathRoles(b),
			pathCreds(b),
			pathRotateRole(b),
		),
		PeriodicFunc: b.periodicFunc,
	}

	return b
}

// periodicFunc rotates every role whose rotation period has elapsed. Roles
// that were never rotated are rotated on the first tick. A failing role is
// logged and skipped.
func (b *passgenBackend) periodicFunc(ctx context.Context, req *logical.Request) error {
	names, err := listRoles(ctx, req.Storage)
	if err != nil {
		return err
	}

	now := b.now()
	for _, name := range names {
		role, err := getRole(ctx, req.Storage, name)
		if err != nil {
			b.Logger().Error("reading role for periodic rotation", "role", name, "error", err)
			continue
		}
		if role == nil || role.RotationPeriod <= 0 {
			continue
		}
		if !role.LastRotated.IsZero() && now.Sub(role.LastRotated) < role.RotationPeriod {
			continue
		}

		resp, err := b.rotateRole(ctx, req.Storage, name)
		if err != nil {
			b.Logger().Error("periodic rotation failed", "role", name, "error", err)
			continue
		}
		if resp != nil && resp.IsError() {
			b.Logger().Warn("periodic rotation skipped", "role", name, "reason", resp.Error())
			continue
		}
		b.Logger().Debug("rotated role password", "role", name)
	}

	return nil
}
