package inspect

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/justyntemme/vst3info/pkg/com"
	"github.com/justyntemme/vst3info/pkg/debug"
	"github.com/justyntemme/vst3info/pkg/vst3"
)

// State is a step of the plugin lifecycle.
type State int

const (
	StateCreated State = iota
	StateComponentInitialized
	StateControllerAcquired
	StateConnected
	StateActive
	StateInspected
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateComponentInitialized:
		return "component-initialized"
	case StateControllerAcquired:
		return "controller-acquired"
	case StateConnected:
		return "connected"
	case StateActive:
		return "active"
	case StateInspected:
		return "inspected"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// ControllerSource records how the controller was obtained. It is decided
// once per run.
type ControllerSource int

const (
	ControllerNone ControllerSource = iota
	// ControllerSingle: the component object is its own controller.
	ControllerSingle
	// ControllerSeparate: the controller is a second object created from
	// the class id the component reports.
	ControllerSeparate
)

func (s ControllerSource) String() string {
	switch s {
	case ControllerSingle:
		return "single"
	case ControllerSeparate:
		return "separate"
	default:
		return "none"
	}
}

// Session drives one component through its lifecycle. A Session is used for
// a single Run.
type Session struct {
	factory vst3.IPluginFactory
	classID vst3.TUID
	host    vst3.FUnknown
	logger  *slog.Logger
	tracer  trace.Tracer

	state       State
	transitions []State
	timings     *debug.Timings

	component            *com.Ptr[vst3.IComponent]
	componentInitialized bool

	controller            *com.Ptr[vst3.IEditController]
	controllerInitialized bool
	source                ControllerSource

	componentCP  *com.Ptr[vst3.IConnectionPoint]
	controllerCP *com.Ptr[vst3.IConnectionPoint]
	connected    bool

	active       bool
	terminated   bool
	degradations []string
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithSessionLogger sets the logger for lifecycle events.
func WithSessionLogger(l *slog.Logger) SessionOption {
	return func(s *Session) { s.logger = l }
}

// WithSessionTracer sets the tracer used for per-step spans.
func WithSessionTracer(t trace.Tracer) SessionOption {
	return func(s *Session) { s.tracer = t }
}

// NewSession prepares a run for class classID of factory. host is passed to
// the component's initialize and may be nil.
func NewSession(factory vst3.IPluginFactory, classID vst3.TUID, host vst3.FUnknown, opts ...SessionOption) *Session {
	s := &Session{
		factory:     factory,
		classID:     classID,
		host:        host,
		logger:      debug.Discard(),
		tracer:      noop.NewTracerProvider().Tracer(""),
		state:       StateCreated,
		transitions: []State{StateCreated},
		timings:     debug.NewTimings(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	return s.state
}

// Transitions returns every state entered so far, in order.
func (s *Session) Transitions() []State {
	return append([]State(nil), s.transitions...)
}

// Timings returns how long the session spent reaching each state.
func (s *Session) Timings() *debug.Timings {
	return s.timings
}

// Run creates and initializes the component, acquires its controller,
// connects and activates them, inspects, and tears everything down again.
// Only component creation, component initialization and controller
// acquisition are fatal. Whatever happens, every initialized object is
// terminated and every reference is released before Run returns.
func (s *Session) Run(ctx context.Context) (*Inspection, error) {
	defer s.release()

	if err := s.initializeComponent(ctx); err != nil {
		return nil, err
	}
	if err := s.acquireController(ctx); err != nil {
		s.terminate(ctx)
		return nil, err
	}
	s.connect(ctx)
	s.activate(ctx)

	insp := introspect(s.component, s.controller)
	insp.Controller = s.source
	s.enter(ctx, StateInspected)

	s.terminate(ctx)
	insp.Degradations = append(insp.Degradations, s.degradations...)
	return insp, nil
}

func (s *Session) enter(ctx context.Context, st State) {
	s.state = st
	s.transitions = append(s.transitions, st)
	s.timings.Mark(st.String())
	s.logger.DebugContext(ctx, "lifecycle transition", "state", st.String())
}

func (s *Session) degrade(ctx context.Context, msg string, attrs ...any) {
	s.degradations = append(s.degradations, msg)
	s.logger.WarnContext(ctx, msg, attrs...)
}

func (s *Session) fail(ctx context.Context, span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	s.logger.ErrorContext(ctx, "lifecycle aborted", "state", s.state.String(), "error", err)
	return err
}

func (s *Session) initializeComponent(ctx context.Context) error {
	ctx, span := s.tracer.Start(ctx, "vst3.component.initialize",
		trace.WithAttributes(attribute.String("vst3.class_id", s.classID.String())))
	defer span.End()

	obj, res := s.factory.CreateInstance(s.classID, vst3.IIDIComponent)
	if !res.OK() || obj == nil {
		return s.fail(ctx, span, vst3.NewComponentCreateFailedError(s.classID, res))
	}
	comp, ok := obj.(vst3.IComponent)
	if !ok {
		obj.Release()
		return s.fail(ctx, span, vst3.NewComponentCreateFailedError(s.classID, vst3.ResultNoInterface))
	}
	s.component = com.Adopt(comp)

	if res := comp.Initialize(s.host); !res.OK() {
		return s.fail(ctx, span, vst3.NewComponentInitFailedError(s.classID, res))
	}
	s.componentInitialized = true
	s.enter(ctx, StateComponentInitialized)
	return nil
}

func (s *Session) acquireController(ctx context.Context) error {
	ctx, span := s.tracer.Start(ctx, "vst3.controller.acquire")
	defer span.End()

	if ctrl, ok := com.Cast[vst3.IEditController](s.component, vst3.IIDIEditController); ok {
		s.controller = ctrl
		s.source = ControllerSingle
	} else {
		if err := s.createController(); err != nil {
			return s.fail(ctx, span, err)
		}
		s.source = ControllerSeparate
	}

	span.SetAttributes(attribute.String("vst3.controller", s.source.String()))
	s.enter(ctx, StateControllerAcquired)
	return nil
}

func (s *Session) createController() error {
	cid, res := s.component.Get().ControllerClassID()
	if !res.OK() {
		return vst3.NewNoControllerError("component reports no controller class", res)
	}
	if cid.IsZero() {
		return vst3.NewNoControllerError("controller class id is empty", res)
	}

	obj, res := s.factory.CreateInstance(cid, vst3.IIDIEditController)
	if !res.OK() || obj == nil {
		return vst3.NewNoControllerError("factory cannot create controller "+cid.String(), res)
	}
	ctrl, ok := obj.(vst3.IEditController)
	if !ok {
		obj.Release()
		return vst3.NewNoControllerError("controller lacks the edit controller interface", vst3.ResultNoInterface)
	}
	s.controller = com.Adopt(ctrl)

	if res := ctrl.Initialize(nil); !res.OK() {
		return vst3.NewNoControllerError("controller rejected initialization", res)
	}
	s.controllerInitialized = true
	return nil
}

// connect wires a separate controller to the component in both directions.
// A half-made connection is undone.
func (s *Session) connect(ctx context.Context) {
	if s.source != ControllerSeparate {
		return
	}
	ctx, span := s.tracer.Start(ctx, "vst3.connect")
	defer span.End()

	compCP, ok1 := com.Cast[vst3.IConnectionPoint](s.component, vst3.IIDIConnectionPoint)
	ctrlCP, ok2 := com.Cast[vst3.IConnectionPoint](s.controller, vst3.IIDIConnectionPoint)
	if !ok1 || !ok2 {
		compCP.Release()
		ctrlCP.Release()
		s.logger.DebugContext(ctx, "no connection points, skipping connect")
		return
	}

	r1 := compCP.Get().Connect(ctrlCP.Get())
	r2 := ctrlCP.Get().Connect(compCP.Get())
	if !r1.OK() || !r2.OK() {
		if r1.OK() {
			compCP.Get().Disconnect(ctrlCP.Get())
		}
		if r2.OK() {
			ctrlCP.Get().Disconnect(compCP.Get())
		}
		compCP.Release()
		ctrlCP.Release()

		err := vst3.NewConnectionFailedError(r1, r2)
		span.RecordError(err)
		s.degrade(ctx, fmt.Sprintf("connection failed: component->controller=%s, controller->component=%s", r1, r2),
			"error", err)
		return
	}

	s.componentCP, s.controllerCP = compCP, ctrlCP
	s.connected = true
	s.enter(ctx, StateConnected)
}

// activate is lenient: buses and parameters can be read from an inactive
// component.
func (s *Session) activate(ctx context.Context) {
	if res := s.component.Get().SetActive(true); !res.OK() {
		s.degrade(ctx, "activation failed: "+res.String(), "result", res.String())
		return
	}
	s.active = true
	s.enter(ctx, StateActive)
}

// terminate undoes everything that succeeded, newest first: activation,
// connection, controller, component. It runs at most once.
func (s *Session) terminate(ctx context.Context) {
	if s.terminated {
		return
	}
	s.terminated = true

	ctx, span := s.tracer.Start(ctx, "vst3.terminate")
	defer span.End()

	if s.active {
		if res := s.component.Get().SetActive(false); !res.OK() {
			s.degrade(ctx, "deactivation failed: "+res.String())
		}
		s.active = false
	}

	if s.connected {
		if res := s.componentCP.Get().Disconnect(s.controllerCP.Get()); !res.OK() {
			s.degrade(ctx, "component disconnect failed: "+res.String())
		}
		if res := s.controllerCP.Get().Disconnect(s.componentCP.Get()); !res.OK() {
			s.degrade(ctx, "controller disconnect failed: "+res.String())
		}
		s.connected = false
	}

	if s.controllerInitialized {
		if res := s.controller.Get().Terminate(); !res.OK() {
			s.degrade(ctx, "controller terminate failed: "+res.String())
		}
		s.controllerInitialized = false
	}

	if s.componentInitialized {
		if res := s.component.Get().Terminate(); !res.OK() {
			s.degrade(ctx, "component terminate failed: "+res.String())
		}
		s.componentInitialized = false
	}

	s.enter(ctx, StateTerminated)
}

// release drops every reference in reverse order of acquisition.
func (s *Session) release() {
	s.controllerCP.Release()
	s.componentCP.Release()
	s.controller.Release()
	s.component.Release()
}
