package clock

import (
	"context"
	"time"
)

// Source supplies the current UTC time.
type Source interface {
	Now(ctx context.Context) (time.Time, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context) (time.Time, error)

// Now calls f(ctx).
func (f SourceFunc) Now(ctx context.Context) (time.Time, error) {
	return f(ctx)
}

// System is the production clock backed by time.Now.
type System struct{}

// New returns a System clock.
func New() *System {
	return &System{}
}

// Now returns the current system time in UTC.
func (*System) Now(ctx context.Context) (time.Time, error) {
	if err := ctx.Err(); err != nil {
		return time.Time{}, err
	}
	return time.Now().UTC(), nil
}

// Fixed always reports the same instant.
type Fixed struct {
	t time.Time
}

// NewFixed returns a clock frozen at t.
func NewFixed(t time.Time) *Fixed {
	return &Fixed{t: t.UTC()}
}

// NewFixedUnix returns a clock frozen at the given Unix time in seconds.
func NewFixedUnix(sec int64) *Fixed {
	return NewFixed(time.Unix(sec, 0))
}

// Now returns the frozen instant.
func (f *Fixed) Now(ctx context.Context) (time.Time, error) {
	if err := ctx.Err(); err != nil {
		return time.Time{}, err
	}
	return f.t, nil
}

// Offset shifts another source by a constant duration, e.g. the difference
// between a server's clock and the local one.
type Offset struct {
	src    Source
	offset time.Duration
}

// NewOffset wraps src. A nil src uses the system clock.
func NewOffset(src Source, offset time.Duration) *Offset {
	if src == nil {
		src = New()
	}
	return &Offset{src: src, offset: offset}
}

// Now returns the wrapped source's time plus the offset.
func (o *Offset) Now(ctx context.Context) (time.Time, error) {
	t, err := o.src.Now(ctx)
	if err != nil {
		return time.Time{}, err
	}
	return t.Add(o.offset), nil
}

var (
	_ Source = (*System)(nil)
	_ Source = (*Fixed)(nil)
	_ Source = (*Offset)(nil)
	_ Source = SourceFunc(nil)
)
