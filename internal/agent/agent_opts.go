package agent

import (
	"github.com/sirupsen/logrus"

	"github.com/leonardinius/esvalue/internal/promise"
)

type agentOpts struct {
	log           *logrus.Entry
	newCapability func(a *Agent) *promise.Capability
}

var defaultAgentOpts = agentOpts{
	newCapability: func(a *Agent) *promise.Capability {
		return promise.NewCapability(a.realm, a)
	},
}

type Option func(*agentOpts)

func WithLogger(log *logrus.Entry) Option {
	return func(opts *agentOpts) {
		opts.log = log
	}
}

// WithPromiseCapabilityHook replaces the allocator behind NewPromiseCapability.
func WithPromiseCapabilityHook(hook func(a *Agent) *promise.Capability) Option {
	return func(opts *agentOpts) {
		opts.newCapability = hook
	}
}

func newAgentOpts(options ...Option) *agentOpts {
	opts := defaultAgentOpts
	for _, opt := range options {
		opt(&opts)
	}

	if opts.log == nil {
		opts.log = logrus.StandardLogger().WithField("component", "agent")
	}

	return &opts
}
