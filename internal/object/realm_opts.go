package object

import (
	"github.com/sirupsen/logrus"

	"github.com/leonardinius/esvalue/internal/value"
)

type realmOpts struct {
	log               *logrus.Entry
	symbolsAsWeakKeys bool
	registry          *value.SymbolRegistry
}

var defaultRealmOpts = realmOpts{
	symbolsAsWeakKeys: false,
}

type RealmOption func(*realmOpts)

// WithSymbolsAsWeakKeys lets non-registered symbols be weak map keys and weak
// reference targets.
func WithSymbolsAsWeakKeys(enabled bool) RealmOption {
	return func(opts *realmOpts) {
		opts.symbolsAsWeakKeys = enabled
	}
}

// WithSymbolRegistry shares a Symbol.for registry between realms.
func WithSymbolRegistry(registry *value.SymbolRegistry) RealmOption {
	return func(opts *realmOpts) {
		opts.registry = registry
	}
}

func WithLogger(log *logrus.Entry) RealmOption {
	return func(opts *realmOpts) {
		opts.log = log
	}
}

func newRealmOpts(options ...RealmOption) *realmOpts {
	opts := defaultRealmOpts
	for _, opt := range options {
		opt(&opts)
	}

	if opts.log == nil {
		opts.log = logrus.StandardLogger().WithField("component", "realm")
	}

	if opts.registry == nil {
		opts.registry = value.NewSymbolRegistry()
	}

	return &opts
}
