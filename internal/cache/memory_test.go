package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemorySetGet(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	m.Set(ctx, "k", []byte("v"), time.Minute)
	got, ok := m.Get(ctx, "k")
	if !ok || string(got) != "v" {
		t.Fatalf("expected cached value, got %q ok=%v", got, ok)
	}

	if _, ok := m.Get(ctx, "missing"); ok {
		t.Fatal("expected miss for unknown key")
	}
}

func TestMemoryExpiry(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	m.Set(ctx, "k", []byte("v"), 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	if _, ok := m.Get(ctx, "k"); ok {
		t.Fatal("expected entry to expire")
	}
}

func TestMemoryDelete(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	m.Set(ctx, "a", []byte("1"), time.Minute)
	m.Set(ctx, "b", []byte("2"), time.Minute)
	m.Delete(ctx, "a", "b")
	if _, ok := m.Get(ctx, "a"); ok {
		t.Fatal("expected key a deleted")
	}
	if _, ok := m.Get(ctx, "b"); ok {
		t.Fatal("expected key b deleted")
	}
}

func TestKey(t *testing.T) {
	if got := Key("lowstock"); got != "eqms:lowstock" {
		t.Fatalf("unexpected key: %s", got)
	}
	if got := Key("parts:list", "MT", "전체"); got != "eqms:parts:list:MT:전체" {
		t.Fatalf("unexpected key: %s", got)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	type payload struct {
		Total int64 `json:"total"`
	}

	SetJSON(ctx, m, "p", payload{Total: 42}, time.Minute)
	var out payload
	if !GetJSON(ctx, m, "p", &out) {
		t.Fatal("expected cache hit")
	}
	if out.Total != 42 {
		t.Fatalf("expected 42, got %d", out.Total)
	}

	// 깨진 값은 미스로 처리하고 버린다.
	m.Set(ctx, "bad", []byte("{not json"), time.Minute)
	if GetJSON(ctx, m, "bad", &out) {
		t.Fatal("expected miss for corrupt value")
	}
	if _, ok := m.Get(ctx, "bad"); ok {
		t.Fatal("corrupt value should be evicted")
	}
}
