package passgenvaultplugin

import (
	"context"
	"testing"
	"unicode/utf8"

	"github.com/hashicorp/vault/sdk/logical"
)

func rotate(t *testing.T, b logical.Backend, storage logical.Storage, name string) {
	t.Helper()
	req := &logical.Request{
		Operation: logical.UpdateOperation,
		Path:      "rotate-role/" + name,
		Storage:   storage,
	}
	resp, err := b.HandleRequest(context.Background(), req)
	if err != nil || (resp != nil && resp.IsError()) {
		t.Fatalf("rotate: err=%v, resp=%v", err, resp)
	}
}

func setupRotationTest(t *testing.T) (logical.Backend, logical.Storage) {
	t.Helper()

	b, storage := getTestBackend(t)
	writePool(t, b, storage, "vowels", map[string]interface{}{"chars": "aeiou"})
	writeRole(t, b, storage, "test-role", map[string]interface{}{
		"pool":   "vowels",
		"length": 40,
	})

	return b, storage
}

func TestPathRotate_Success(t *testing.T) {
	b, storage := setupRotationTest(t)
	ctx := context.Background()

	rotate(t, b, storage, "test-role")

	// Verify password was stored
	role, err := getRole(ctx, storage, "test-role")
	if err != nil {
		t.Fatalf("getRole: %v", err)
	}
	if n := utf8.RuneCountInString(role.Password); n != 40 {
		t.Errorf("password length = %d, want 40", n)
	}
	for _, c := range role.Password {
		if c != 'a' && c != 'e' && c != 'i' && c != 'o' && c != 'u' {
			t.Errorf("password contains character outside the pool: %c", c)
		}
	}
	if role.LastRotated.IsZero() {
		t.Error("last_rotated should be set after rotation")
	}

	first := role.Password
	rotate(t, b, storage, "test-role")
	role, err = getRole(ctx, storage, "test-role")
	if err != nil {
		t.Fatalf("getRole: %v", err)
	}
	if role.Password == first {
		t.Error("password should change on every rotation")
	}
}

func TestPathRotate_DefaultLength(t *testing.T) {
	b, storage := getTestBackend(t)
	ctx := context.Background()

	writePool(t, b, storage, "alnum", map[string]interface{}{"classes": "alnum"})
	writeConfig(t, b, storage, map[string]interface{}{"default_length": 48})
	writeRole(t, b, storage, "test-role", map[string]interface{}{"pool": "alnum"})

	rotate(t, b, storage, "test-role")

	role, err := getRole(ctx, storage, "test-role")
	if err != nil {
		t.Fatalf("getRole: %v", err)
	}
	if len(role.Password) != 48 {
		t.Errorf("password length = %d, want 48", len(role.Password))
	}
}

func TestPathRotate_RoleNotFound(t *testing.T) {
	b, storage := getTestBackend(t)
	ctx := context.Background()

	req := &logical.Request{
		Operation: logical.CreateOperation,
		Path:      "rotate-role/nonexistent",
		Storage:   storage,
	}
	resp, err := b.HandleRequest(ctx, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp == nil || !resp.IsError() {
		t.Error("expected error response for nonexistent role")
	}
}

func TestPathRotate_PoolNotFound(t *testing.T) {
	b, storage := setupRotationTest(t)
	ctx := context.Background()

	// Orphan the role behind the API's back
	if err := deletePool(ctx, storage, "vowels"); err != nil {
		t.Fatalf("deletePool: %v", err)
	}

	req := &logical.Request{
		Operation: logical.UpdateOperation,
		Path:      "rotate-role/test-role",
		Storage:   storage,
	}
	resp, err := b.HandleRequest(ctx, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp == nil || !resp.IsError() {
		t.Error("expected error response for orphaned role")
	}
}

func TestPathRotate_MinEntropy(t *testing.T) {
	b, storage := getTestBackend(t)
	ctx := context.Background()

	writePool(t, b, storage, "ab", map[string]interface{}{"chars": "ab"})
	writeRole(t, b, storage, "weak-role", map[string]interface{}{
		"pool":   "ab",
		"length": 16,
	})

	// Raising the floor afterwards must stop the role from rotating
	writeConfig(t, b, storage, map[string]interface{}{"min_entropy": 128})

	req := &logical.Request{
		Operation: logical.UpdateOperation,
		Path:      "rotate-role/weak-role",
		Storage:   storage,
	}
	resp, err := b.HandleRequest(ctx, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp == nil || !resp.IsError() {
		t.Fatal("expected error response below min_entropy")
	}

	role, err := getRole(ctx, storage, "weak-role")
	if err != nil {
		t.Fatalf("getRole: %v", err)
	}
	if role.Password != "" {
		t.Errorf("password = %q, want none stored", role.Password)
	}

	writeRole(t, b, storage, "weak-role", map[string]interface{}{"length": 128})
	rotate(t, b, storage, "weak-role")
}
