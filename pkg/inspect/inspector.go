// Package inspect runs a plugin binary through the host side of the VST3
// lifecycle and gathers what it reports about itself.
//
// The flow is: resolve the bundle, load the module, read the factory and its
// classes, pick the audio class, drive a Session over it, and aggregate the
// result into a report.Report. All foreign objects are reached through the
// interfaces of package vst3, so every step can run against Go fakes.
package inspect

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/oklog/ulid/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/justyntemme/vst3info/pkg/bundle"
	"github.com/justyntemme/vst3info/pkg/com"
	"github.com/justyntemme/vst3info/pkg/debug"
	"github.com/justyntemme/vst3info/pkg/host"
	"github.com/justyntemme/vst3info/pkg/module"
	"github.com/justyntemme/vst3info/pkg/native"
	"github.com/justyntemme/vst3info/pkg/report"
	"github.com/justyntemme/vst3info/pkg/vst3"
)

// Binary is a loaded plugin module.
type Binary interface {
	// Factory returns the root factory with one reference owned by the
	// caller.
	Factory() (vst3.IPluginFactory, error)
	Close() error
}

// Opener loads the binary at a resolved path.
type Opener func(path string) (Binary, error)

// HostFactory creates the host object handed to the component, with one
// reference owned by the caller.
type HostFactory func() (vst3.FUnknown, error)

// Resolver maps a user-supplied path to a loadable binary.
type Resolver func(path string) (string, error)

type moduleBinary struct {
	m *module.Module
}

func (b moduleBinary) Factory() (vst3.IPluginFactory, error) {
	ptr, err := b.m.Factory()
	if err != nil {
		return nil, err
	}
	return native.NewFactory(ptr), nil
}

func (b moduleBinary) Close() error {
	return b.m.Close()
}

// OpenModule loads a real plugin module.
func OpenModule(path string) (Binary, error) {
	m, err := module.Load(path)
	if err != nil {
		return nil, err
	}
	return moduleBinary{m: m}, nil
}

// NewHostApplication creates the real host callback object.
func NewHostApplication() (vst3.FUnknown, error) {
	app, err := host.New()
	if err != nil {
		return nil, err
	}
	return app, nil
}

// Inspector inspects plugin binaries. It holds no per-run state and may be
// reused, but runs in one process must not overlap.
type Inspector struct {
	open    Opener
	newHost HostFactory
	resolve Resolver
	logger  *slog.Logger
	tracer  trace.Tracer
}

// Option configures an Inspector.
type Option func(*Inspector)

// WithOpener replaces the module loader.
func WithOpener(o Opener) Option {
	return func(i *Inspector) { i.open = o }
}

// WithHost replaces the host object factory.
func WithHost(h HostFactory) Option {
	return func(i *Inspector) { i.newHost = h }
}

// WithResolver replaces bundle path resolution.
func WithResolver(r Resolver) Option {
	return func(i *Inspector) { i.resolve = r }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(i *Inspector) { i.logger = l }
}

// WithTracer sets the tracer.
func WithTracer(t trace.Tracer) Option {
	return func(i *Inspector) { i.tracer = t }
}

// New creates an Inspector that loads real modules.
func New(opts ...Option) *Inspector {
	i := &Inspector{
		open:    OpenModule,
		newHost: NewHostApplication,
		resolve: bundle.Resolve,
		logger:  debug.Discard(),
		tracer:  otel.Tracer("github.com/justyntemme/vst3info/inspect"),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Inspect runs one plugin and returns its report. Every foreign reference is
// released, and the module closed, before Inspect returns.
func (i *Inspector) Inspect(ctx context.Context, path string) (rep *report.Report, err error) {
	runID := ulid.Make().String()
	ctx = debug.WithRunID(ctx, runID)

	ctx, span := i.tracer.Start(ctx, "vst3info.inspect",
		trace.WithAttributes(
			attribute.String("vst3.path", path),
			attribute.String("vst3info.run_id", runID),
		))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			i.logger.ErrorContext(ctx, "inspection failed", "path", path, "code", vst3.CodeOf(err), "error", err)
		}
		span.End()
	}()

	binPath, err := i.resolve(path)
	if err != nil {
		return nil, err
	}
	i.logger.DebugContext(ctx, "loading module", "path", binPath)

	bin, err := i.open(binPath)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := bin.Close(); cerr != nil {
			i.logger.WarnContext(ctx, "module close failed", "error", cerr)
		}
	}()

	rawFactory, err := bin.Factory()
	if err != nil {
		return nil, err
	}
	factory := com.Adopt(rawFactory)
	defer factory.Release()

	info, err := ReadFactoryInfo(factory.Get())
	if err != nil {
		return nil, err
	}

	classes, skipped := EnumerateClasses(factory)
	i.logger.DebugContext(ctx, "classes enumerated", "count", len(classes), "skipped", skipped)

	audio, err := FindAudioClass(classes)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("vst3.class_name", audio.Name))

	hostObj, err := i.newHost()
	if err != nil {
		return nil, err
	}
	hostRef := com.Adopt(hostObj)
	defer hostRef.Release()

	session := NewSession(factory.Get(), audio.CID, hostObj,
		WithSessionLogger(i.logger.With("class", audio.Name)),
		WithSessionTracer(i.tracer))
	insp, err := session.Run(ctx)
	i.logger.DebugContext(ctx, "lifecycle timings", "steps", session.Timings())
	if err != nil {
		return nil, err
	}
	if skipped > 0 {
		insp.Degradations = append([]string{
			fmt.Sprintf("skipped %d of %d classes", skipped, len(classes)+skipped),
		}, insp.Degradations...)
	}

	rep = Aggregate(info, classes, audio, insp)
	i.logger.InfoContext(ctx, "plugin inspected",
		"name", rep.Name,
		"controller", rep.ControllerKind,
		"parameters", len(rep.Parameters),
		"degradations", len(rep.Degradations),
		"lifecycle", session.Timings().Total())
	return rep, nil
}
