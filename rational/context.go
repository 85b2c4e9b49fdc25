package rational

// Copyright (c) 2025 Colin McRae

import (
	"fmt"
	"log/slog"
	"math"
)

// DefaultCapacity bounds numerators and denominators in Fixed mode unless a
// smaller capacity is configured.
const DefaultCapacity = math.MaxInt32

// Store is a collection of Values, such as a tableau, that a Context must
// re-encode when it promotes or demotes.
type Store interface {
	EachValue(fn func(v *Value))
}

// Context owns the arithmetic mode of one conversion. It is not safe for
// concurrent use; concurrent conversions each use their own Context.
type Context struct {
	mode           Mode
	limit          int64
	allowPromotion bool
	allowDemotion  bool
	overflow       bool
	stores         []Store
	promotions     int
	demotions      int
	logger         *slog.Logger
}

// Option configures a Context.
type Option func(*Context)

// WithCapacity sets the Fixed mode capacity. Values outside [1, DefaultCapacity]
// are clamped.
func WithCapacity(limit int64) Option {
	return func(ctx *Context) {
		switch {
		case limit < 1:
			ctx.limit = 1
		case limit > DefaultCapacity:
			ctx.limit = DefaultCapacity
		default:
			ctx.limit = limit
		}
	}
}

// WithArbitraryPrecision starts the Context in Arbitrary mode.
func WithArbitraryPrecision() Option {
	return func(ctx *Context) {
		ctx.mode = Arbitrary
	}
}

// WithPromotion enables or disables promotion to Arbitrary mode on overflow.
// Promotion is enabled by default.
func WithPromotion(allow bool) Option {
	return func(ctx *Context) {
		ctx.allowPromotion = allow
	}
}

// WithDemotion enables or disables TryDemote. Demotion is disabled by default.
func WithDemotion(allow bool) Option {
	return func(ctx *Context) {
		ctx.allowDemotion = allow
	}
}

// WithLogger sets the logger used to report mode changes.
func WithLogger(logger *slog.Logger) Option {
	return func(ctx *Context) {
		ctx.logger = logger
	}
}

// NewContext returns a Context in Fixed mode with the default capacity and
// promotion enabled, modified by opts.
func NewContext(opts ...Option) *Context {
	ctx := &Context{
		mode:           Fixed,
		limit:          DefaultCapacity,
		allowPromotion: true,
	}
	for _, opt := range opts {
		opt(ctx)
	}
	if ctx.logger == nil {
		ctx.logger = slog.New(slog.DiscardHandler)
	}
	return ctx
}

// Mode returns the current arithmetic mode.
func (ctx *Context) Mode() Mode {
	return ctx.mode
}

// Capacity returns the Fixed mode bound on numerators and denominators.
func (ctx *Context) Capacity() int64 {
	return ctx.limit
}

// Promotions returns the number of switches from Fixed to Arbitrary mode.
func (ctx *Context) Promotions() int {
	return ctx.promotions
}

// Demotions returns the number of switches from Arbitrary to Fixed mode.
func (ctx *Context) Demotions() int {
	return ctx.demotions
}

// Overflowed returns the overflow flag, which is set by Fixed mode arithmetic
// and cleared by Promote or Do.
func (ctx *Context) Overflowed() bool {
	return ctx.overflow
}

// Arith returns the strategy for the current mode. The returned Arith must not
// be used across a mode change.
func (ctx *Context) Arith() Arith {
	if ctx.mode == Arbitrary {
		return bigArith{}
	}
	return fixedArith{ctx: ctx}
}

// Track registers s for re-encoding on promotion and demotion.
func (ctx *Context) Track(s Store) {
	ctx.stores = append(ctx.stores, s)
}

// Untrack removes s from the registered stores.
func (ctx *Context) Untrack(s Store) {
	for i, t := range ctx.stores {
		if t == s {
			ctx.stores = append(ctx.stores[:i], ctx.stores[i+1:]...)
			return
		}
	}
}

// Do runs op with the current Arith. If op overflows Fixed mode arithmetic,
// the Context is promoted and op is run again, so op must write its results
// only to storage that it fully overwrites on each run. Do returns
// ErrArithmeticOverflow if op overflows and promotion is disabled.
func (ctx *Context) Do(op func(arith Arith)) error {
	for {
		ctx.overflow = false
		op(ctx.Arith())
		if !ctx.overflow {
			return nil
		}
		if err := ctx.Promote(); err != nil {
			return err
		}
	}
}

// Promote re-encodes every registered store in Arbitrary mode and switches
// the Context to Arbitrary mode. It returns ErrArithmeticOverflow if
// promotion is disabled.
func (ctx *Context) Promote() error {
	ctx.overflow = false
	if ctx.mode == Arbitrary {
		return nil
	}
	if !ctx.allowPromotion {
		return fmt.Errorf("Promote: capacity %d: %w", ctx.limit, ErrArithmeticOverflow)
	}
	for _, s := range ctx.stores {
		s.EachValue(func(v *Value) {
			*v = v.toBig()
		})
	}
	ctx.mode = Arbitrary
	ctx.promotions++
	ctx.logger.Info("promoted to arbitrary precision", "capacity", ctx.limit, "promotions", ctx.promotions)
	return nil
}

// TryDemote switches back to Fixed mode if demotion is enabled and every
// Value in every registered store fits the capacity. It returns whether the
// Context was demoted.
func (ctx *Context) TryDemote() bool {
	if ctx.mode == Fixed || !ctx.allowDemotion {
		return false
	}
	for _, s := range ctx.stores {
		fits := true
		s.EachValue(func(v *Value) {
			if fits && !v.fits(ctx.limit) {
				fits = false
			}
		})
		if !fits {
			return false
		}
	}
	for _, s := range ctx.stores {
		s.EachValue(func(v *Value) {
			*v = v.compact()
		})
	}
	ctx.mode = Fixed
	ctx.demotions++
	ctx.logger.Info("demoted to fixed width", "capacity", ctx.limit, "demotions", ctx.demotions)
	return true
}

// Fits returns whether v can be used in Fixed mode without raising the
// overflow flag.
func (ctx *Context) Fits(v Value) bool {
	return v.fits(ctx.limit)
}

// Admit promotes the Context if some Value of s does not fit the capacity.
// Stores are admitted after they are filled with input and before any
// arithmetic on them.
func (ctx *Context) Admit(s Store) error {
	if ctx.mode == Arbitrary {
		return nil
	}
	fits := true
	s.EachValue(func(v *Value) {
		if fits && !v.fits(ctx.limit) {
			fits = false
		}
	})
	if fits {
		return nil
	}
	if err := ctx.Promote(); err != nil {
		return fmt.Errorf("Admit: input exceeds capacity: %w", err)
	}
	return nil
}
