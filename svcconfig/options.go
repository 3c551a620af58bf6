package svcconfig

import (
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/sectrean/svcrepo"
	"github.com/sectrean/svcrepo/internal/errors"
)

// Option is used to configure a new [Loader] when calling [NewLoader].
type Option interface {
	applyLoader(*Loader) error
}

type loaderOption func(*Loader) error

func (o loaderOption) applyLoader(l *Loader) error {
	return o(l)
}

// WithLogger sets the logger passed to the registry and every service built by the [Loader].
func WithLogger(logger *zap.Logger) Option {
	return loaderOption(func(l *Loader) error {
		if logger == nil {
			return errors.New("WithLogger: logger is nil")
		}

		l.logger = logger
		return nil
	})
}

// WithObserver sets the observer passed to every service built by the [Loader].
func WithObserver(o svcrepo.Observer) Option {
	return loaderOption(func(l *Loader) error {
		if o == nil {
			return errors.New("WithObserver: observer is nil")
		}

		l.observer = o
		return nil
	})
}

// WithEnvFiles reads variables from dotenv files for expanding string arguments.
//
// Variables from the files take precedence over the process environment,
// and later files take precedence over earlier ones. The process environment
// is not modified.
func WithEnvFiles(paths ...string) Option {
	return loaderOption(func(l *Loader) error {
		for _, path := range paths {
			vars, err := godotenv.Read(path)
			if err != nil {
				return errors.Wrapf(err, "WithEnvFiles %q", path)
			}

			for k, v := range vars {
				l.env[k] = v
			}
		}

		return nil
	})
}
