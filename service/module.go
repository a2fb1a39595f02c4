package service

import (
	"fmt"
	"log/slog"
	"net/http"

	"go.uber.org/fx"
)

// NewModule provides the service as the http.Handler named name, which is
// what listener.NewModule(name) serves. The container's *slog.Logger is used
// unless WithLogger is given.
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func NewModule(name string, opts ...Option) fx.Option {
	constructor := func(logger *slog.Logger) http.Handler {
		return NewHandler(append([]Option{WithLogger(logger)}, opts...)...)
	}

	return fx.Module("service",
		fx.Provide(fx.Annotate(constructor, fx.ResultTags(fmt.Sprintf(`name:"%s"`, name)))),
	)
}
