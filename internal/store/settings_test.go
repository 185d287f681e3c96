package store

import (
	"context"
	"errors"
	"testing"

	"github.com/moneytree/moneytree/internal/domain"
)

func TestGetSettingMissing(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.GetSetting(ctx, "currency")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestSetSettingRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	if err := s.SetSetting(ctx, "currency", "EUR"); err != nil {
		t.Fatalf("SetSetting: %v", err)
	}
	got, err := s.GetSetting(ctx, "currency")
	if err != nil {
		t.Fatalf("GetSetting: %v", err)
	}
	if string(got) != `"EUR"` {
		t.Errorf("value = %s, want JSON-encoded string", got)
	}

	// Settings are singletons: a second set replaces the value.
	if err := s.SetSetting(ctx, "currency", map[string]any{"code": "USD"}); err != nil {
		t.Fatalf("SetSetting replace: %v", err)
	}
	got, err = s.GetSetting(ctx, "currency")
	if err != nil {
		t.Fatalf("GetSetting after replace: %v", err)
	}
	if string(got) != `{"code":"USD"}` {
		t.Errorf("value = %s, want replaced object", got)
	}
}
