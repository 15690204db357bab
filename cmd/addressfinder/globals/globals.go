package globals

import (
	"context"

	"addressfinder-backend/internal/config"
	"addressfinder-backend/internal/finder"
)

type key struct{}

type Value struct {
	Config config.Config
	Finder *finder.Finder
}

func Set(ctx context.Context, value *Value) context.Context {
	return context.WithValue(ctx, key{}, value)
}

func Get(ctx context.Context) *Value {
	return ctx.Value(key{}).(*Value)
}
