package clock

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestSystemNow(t *testing.T) {
	got, err := New().Now(context.Background())
	if err != nil {
		t.Fatalf("Now failed: %v", err)
	}
	if d := time.Since(got); d < 0 || d > time.Second {
		t.Errorf("system clock off by %v", d)
	}
	if got.Location() != time.UTC {
		t.Errorf("expected UTC, got %v", got.Location())
	}
}

func TestFixedNow(t *testing.T) {
	c := NewFixedUnix(1111111109)
	got, err := c.Now(context.Background())
	if err != nil {
		t.Fatalf("Now failed: %v", err)
	}
	if got.Unix() != 1111111109 {
		t.Errorf("Now() = %d, want 1111111109", got.Unix())
	}
}

func TestOffsetNow(t *testing.T) {
	c := NewOffset(NewFixedUnix(1000), 30*time.Second)
	got, err := c.Now(context.Background())
	if err != nil {
		t.Fatalf("Now failed: %v", err)
	}
	if got.Unix() != 1030 {
		t.Errorf("Now() = %d, want 1030", got.Unix())
	}

	neg := NewOffset(NewFixedUnix(1000), -90*time.Second)
	got, _ = neg.Now(context.Background())
	if got.Unix() != 910 {
		t.Errorf("Now() = %d, want 910", got.Unix())
	}
}

func TestCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sources := map[string]Source{
		"system": New(),
		"fixed":  NewFixedUnix(59),
		"offset": NewOffset(nil, time.Minute),
	}

	for name, src := range sources {
		t.Run(name, func(t *testing.T) {
			if _, err := src.Now(ctx); !errors.Is(err, context.Canceled) {
				t.Errorf("expected context.Canceled, got %v", err)
			}
		})
	}
}

func TestSourceFunc(t *testing.T) {
	want := time.Unix(42, 0).UTC()
	src := SourceFunc(func(context.Context) (time.Time, error) { return want, nil })
	got, err := src.Now(context.Background())
	if err != nil || !got.Equal(want) {
		t.Errorf("Now() = %v, %v; want %v", got, err, want)
	}
}
