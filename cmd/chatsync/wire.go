//go:build wireinject
// +build wireinject

package main

import (
	"context"
	"log/slog"

	"github.com/PaulBabatuyi/chatsync/internal/app"
	"github.com/google/wire"
)

func initializeApp(ctx context.Context, cfg *app.Config, log *slog.Logger) (*app.App, func(), error) {
	wire.Build(app.Set)
	return nil, nil, nil
}
