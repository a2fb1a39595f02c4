package listener

import (
	"fmt"
	"log/slog"
	"net/http"

	"go.uber.org/fx"
)

// NewModule creates an Fx module serving the http.Handler named name.
//
// Config comes from opts when any are given. Otherwise a Config tagged with
// the same name must be in the container, for example one produced by
// config.Provider from a key=value file.
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func NewModule(name string, opts ...Option) fx.Option {
	if name == "" {
		return fx.Error(ErrEmptyName)
	}

	tag := nameTag(name)

	var moduleOpts []fx.Option

	if len(opts) > 0 {
		var cfg Config

		for _, apply := range opts {
			apply(&cfg)
		}

		moduleOpts = append(moduleOpts, fx.Supply(fx.Annotate(cfg, fx.ResultTags(tag))))
	}

	register := func(lifecycle fx.Lifecycle, shutdowner fx.Shutdowner, handler http.Handler, cfg Config) error {
		srv, err := NewServer(name, handler, cfg, func() {
			shutdownErr := shutdowner.Shutdown()
			if shutdownErr != nil {
				slog.Error("failed to trigger shutdown", "listener", name, "error", shutdownErr)
			}
		})
		if err != nil {
			return err
		}

		lifecycle.Append(fx.Hook{
			OnStart: srv.Start,
			OnStop:  srv.Stop,
		})

		return nil
	}

	moduleOpts = append(moduleOpts, fx.Invoke(fx.Annotate(register, fx.ParamTags("", "", tag, tag))))

	return fx.Module(name, moduleOpts...)
}

func nameTag(name string) string {
	return fmt.Sprintf(`name:"%s"`, name)
}
