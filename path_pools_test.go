package passgenvaultplugin

import (
	"context"
	"testing"

	"github.com/hashicorp/vault/sdk/logical"
)

func getTestBackend(t *testing.T) (logical.Backend, logical.Storage) {
	t.Helper()
	config := logical.TestBackendConfig()
	config.StorageView = &logical.InmemStorage{}

	b, err := Factory(context.Background(), config)
	if err != nil {
		t.Fatalf("Factory: %v", err)
	}
	return b, config.StorageView
}

func writePool(t *testing.T, b logical.Backend, storage logical.Storage, name string, data map[string]interface{}) {
	t.Helper()
	req := &logical.Request{
		Operation: logical.CreateOperation,
		Path:      "pools/" + name,
		Storage:   storage,
		Data:      data,
	}
	resp, err := b.HandleRequest(context.Background(), req)
	if err != nil || (resp != nil && resp.IsError()) {
		t.Fatalf("writePool: err=%v, resp=%v", err, resp)
	}
}

func TestPathPools_WriteReadDeleteList(t *testing.T) {
	b, storage := getTestBackend(t)
	ctx := context.Background()

	writePool(t, b, storage, "hex", map[string]interface{}{
		"chars": "0123456789abcdefabc",
	})

	// Read pool
	req := &logical.Request{
		Operation: logical.ReadOperation,
		Path:      "pools/hex",
		Storage:   storage,
	}
	resp, err := b.HandleRequest(ctx, req)
	if err != nil || resp == nil {
		t.Fatalf("read: err=%v, resp=%v", err, resp)
	}
	if resp.Data["chars"] != "0123456789abcdef" {
		t.Errorf("chars = %v, want 0123456789abcdef", resp.Data["chars"])
	}
	if resp.Data["length"] != 16 {
		t.Errorf("length = %v, want 16", resp.Data["length"])
	}
	if resp.Data["bits_per_char"] != 4.0 {
		t.Errorf("bits_per_char = %v, want 4", resp.Data["bits_per_char"])
	}

	// List pools
	req = &logical.Request{
		Operation: logical.ListOperation,
		Path:      "pools/",
		Storage:   storage,
	}
	resp, err = b.HandleRequest(ctx, req)
	if err != nil || resp == nil {
		t.Fatalf("list: err=%v, resp=%v", err, resp)
	}
	keys := resp.Data["keys"].([]string)
	if len(keys) != 1 || keys[0] != "hex" {
		t.Errorf("keys = %v, want [hex]", keys)
	}

	// Delete pool
	req = &logical.Request{
		Operation: logical.DeleteOperation,
		Path:      "pools/hex",
		Storage:   storage,
	}
	resp, err = b.HandleRequest(ctx, req)
	if err != nil || (resp != nil && resp.IsError()) {
		t.Fatalf("delete: err=%v, resp=%v", err, resp)
	}

	// Verify deleted
	req = &logical.Request{
		Operation: logical.ReadOperation,
		Path:      "pools/hex",
		Storage:   storage,
	}
	resp, err = b.HandleRequest(ctx, req)
	if err != nil {
		t.Fatalf("read after delete: %v", err)
	}
	if resp != nil {
		t.Error("expected nil response after delete")
	}
}

func TestPathPools_ClassesExcludeSort(t *testing.T) {
	b, storage := getTestBackend(t)
	ctx := context.Background()

	writePool(t, b, storage, "pin", map[string]interface{}{
		"chars":   "9",
		"classes": "digits",
		"exclude": "05",
		"sort":    true,
	})

	entry, err := getPool(ctx, storage, "pin")
	if err != nil {
		t.Fatalf("getPool: %v", err)
	}
	if got := entry.Chars.String(); got != "12346789" {
		t.Errorf("chars = %q, want 12346789", got)
	}
}

func TestPathPools_UnknownClass(t *testing.T) {
	b, storage := getTestBackend(t)

	req := &logical.Request{
		Operation: logical.CreateOperation,
		Path:      "pools/bad",
		Storage:   storage,
		Data: map[string]interface{}{
			"classes": "lower,emoji",
		},
	}
	resp, err := b.HandleRequest(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp == nil || !resp.IsError() {
		t.Error("expected error response for unknown class")
	}
}

func TestPathPools_EmptyPoolRejected(t *testing.T) {
	b, storage := getTestBackend(t)
	ctx := context.Background()

	for _, data := range []map[string]interface{}{
		{},
		{"chars": "abc", "exclude": "cba"},
	} {
		req := &logical.Request{
			Operation: logical.CreateOperation,
			Path:      "pools/empty",
			Storage:   storage,
			Data:      data,
		}
		resp, err := b.HandleRequest(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp == nil || !resp.IsError() {
			t.Errorf("expected error response for data %v", data)
		}
	}

	entry, err := getPool(ctx, storage, "empty")
	if err != nil {
		t.Fatalf("getPool: %v", err)
	}
	if entry != nil {
		t.Error("empty pool should not be stored")
	}
}

func TestPathPools_DeleteInUse(t *testing.T) {
	b, storage := getTestBackend(t)
	ctx := context.Background()

	writePool(t, b, storage, "alnum", map[string]interface{}{"classes": "alnum"})
	writeRole(t, b, storage, "svc", map[string]interface{}{"pool": "alnum"})

	req := &logical.Request{
		Operation: logical.DeleteOperation,
		Path:      "pools/alnum",
		Storage:   storage,
	}
	resp, err := b.HandleRequest(ctx, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp == nil || !resp.IsError() {
		t.Fatal("expected error response when deleting a pool used by a role")
	}

	entry, err := getPool(ctx, storage, "alnum")
	if err != nil {
		t.Fatalf("getPool: %v", err)
	}
	if entry == nil {
		t.Error("pool should still exist")
	}
}
