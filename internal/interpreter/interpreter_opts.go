package interpreter

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/leonardinius/esvalue/internal/agent"
	"github.com/leonardinius/esvalue/internal/jserrors"
	"github.com/leonardinius/esvalue/internal/object"
)

type interpreterOpts struct {
	agent    *agent.Agent
	log      *logrus.Entry
	stdin    io.Reader
	stdout   io.Writer
	stderr   io.Writer
	reporter jserrors.ErrReporter
}

var defaultInterpreterOpts = interpreterOpts{
	stdin:    os.Stdin,
	stdout:   os.Stdout,
	stderr:   os.Stderr,
	reporter: jserrors.NewErrReporter(os.Stderr),
}

type InterpreterOption func(*interpreterOpts)

// WithAgent runs scripts on ag and its realm. By default a fresh realm and
// agent are created.
func WithAgent(ag *agent.Agent) InterpreterOption {
	return func(opts *interpreterOpts) {
		opts.agent = ag
	}
}

func WithLogger(log *logrus.Entry) InterpreterOption {
	return func(opts *interpreterOpts) {
		opts.log = log
	}
}

func WithStdin(stdin io.Reader) InterpreterOption {
	return func(opts *interpreterOpts) {
		opts.stdin = stdin
	}
}

func WithStdout(stdout io.Writer) InterpreterOption {
	return func(opts *interpreterOpts) {
		opts.stdout = stdout
	}
}

func WithStderr(stderr io.Writer) InterpreterOption {
	return func(opts *interpreterOpts) {
		opts.stderr = stderr
	}
}

func WithErrorReporter(r jserrors.ErrReporter) InterpreterOption {
	return func(opts *interpreterOpts) {
		opts.reporter = r
	}
}

func newInterpreterOpts(options ...InterpreterOption) *interpreterOpts {
	opts := defaultInterpreterOpts
	for _, opt := range options {
		opt(&opts)
	}

	if opts.log == nil {
		opts.log = logrus.StandardLogger().WithField("component", "interpreter")
	}

	if opts.agent == nil {
		realm := object.NewRealm(object.WithLogger(opts.log.WithField("component", "realm")))
		opts.agent = agent.New(realm, agent.WithLogger(opts.log.WithField("component", "agent")))
	}

	return &opts
}
