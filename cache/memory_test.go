package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryRemember_HitSkipsProducer(t *testing.T) {
	m := NewMemory(time.Minute)
	calls := 0
	producer := func(ctx context.Context) (string, error) {
		calls++
		return "<html>payload</html>", nil
	}

	first, err := m.Remember(context.Background(), "k", time.Minute, producer)
	if err != nil {
		t.Fatalf("first Remember: %v", err)
	}
	second, err := m.Remember(context.Background(), "k", time.Minute, producer)
	if err != nil {
		t.Fatalf("second Remember: %v", err)
	}

	if first != second || first != "<html>payload</html>" {
		t.Errorf("values = %q / %q", first, second)
	}
	if calls != 1 {
		t.Errorf("producer ran %d times, want 1", calls)
	}
}

func TestMemoryRemember_BlankNotStored(t *testing.T) {
	m := NewMemory(time.Minute)
	calls := 0
	producer := func(ctx context.Context) (string, error) {
		calls++
		if calls == 1 {
			return "  \n", nil
		}
		return "recovered", nil
	}

	if v, err := m.Remember(context.Background(), "k", time.Minute, producer); err != nil || v != "  \n" {
		t.Fatalf("first Remember = %q, %v", v, err)
	}
	// A blank response must not pin the key; the next call retries.
	if v, err := m.Remember(context.Background(), "k", time.Minute, producer); err != nil || v != "recovered" {
		t.Errorf("second Remember = %q, %v, want the fresh value", v, err)
	}
	if calls != 2 {
		t.Errorf("producer ran %d times, want 2", calls)
	}
}

func TestMemoryRemember_ProducerErrorNotStored(t *testing.T) {
	m := NewMemory(time.Minute)
	boom := errors.New("upstream down")
	calls := 0
	producer := func(ctx context.Context) (string, error) {
		calls++
		if calls == 1 {
			return "", boom
		}
		return "ok", nil
	}

	if _, err := m.Remember(context.Background(), "k", time.Minute, producer); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want the producer error", err)
	}
	if v, err := m.Remember(context.Background(), "k", time.Minute, producer); err != nil || v != "ok" {
		t.Errorf("retry = %q, %v", v, err)
	}
}

func TestMemoryRemember_DistinctKeys(t *testing.T) {
	m := NewMemory(time.Minute)
	for _, kv := range []struct{ key, value string }{{"a", "1"}, {"b", "2"}} {
		kv := kv
		got, err := m.Remember(context.Background(), kv.key, time.Minute, func(ctx context.Context) (string, error) {
			return kv.value, nil
		})
		if err != nil || got != kv.value {
			t.Errorf("Remember(%q) = %q, %v", kv.key, got, err)
		}
	}
}

func TestKey_Deterministic(t *testing.T) {
	a := Key("woolworths_australia", "detail", "257360")
	b := Key("woolworths_australia", "detail", "257360")
	if a != b {
		t.Error("same parts must yield the same key")
	}
	if a == Key("woolworths_australia", "detail", "257361") {
		t.Error("different parts must yield different keys")
	}
	// Part boundaries matter: ("ab","c") and ("a","bc") are distinct inputs.
	if Key("ab", "c") == Key("a", "bc") {
		t.Error("keys must be sensitive to part boundaries")
	}
}
