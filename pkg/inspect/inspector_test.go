package inspect

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/justyntemme/vst3info/internal/testplugin"
	"github.com/justyntemme/vst3info/pkg/debug"
	"github.com/justyntemme/vst3info/pkg/host"
	"github.com/justyntemme/vst3info/pkg/report"
	"github.com/justyntemme/vst3info/pkg/vst3"
)

type fakeBinary struct {
	factory    *fakeFactory
	factoryErr error
	closed     int
	refsAtExit int
}

func (b *fakeBinary) Factory() (vst3.IPluginFactory, error) {
	if b.factoryErr != nil {
		return nil, b.factoryErr
	}
	return b.factory, nil
}

func (b *fakeBinary) Close() error {
	b.closed++
	b.refsAtExit = b.factory.refs
	return nil
}

func newTestInspector(bin *fakeBinary, opts ...Option) *Inspector {
	base := []Option{
		WithResolver(func(p string) (string, error) { return p + "/binary", nil }),
		WithOpener(func(string) (Binary, error) { return bin, nil }),
		WithHost(func() (vst3.FUnknown, error) { return &fakeHost{refs: 1}, nil }),
	}
	return New(append(base, opts...)...)
}

func TestInspectorInspect(t *testing.T) {
	defer goleak.VerifyNone(t)

	fx := newSeparateFixture()
	fx.factory.factory2 = true
	bin := &fakeBinary{factory: fx.factory}

	rep, err := newTestInspector(bin).Inspect(context.Background(), "/plugins/Gain.vst3")
	require.NoError(t, err)

	assert.Equal(t, "Gain", rep.Name)
	assert.Equal(t, "Fake Audio", rep.Vendor)
	assert.Equal(t, "1.2.3", rep.Version)
	assert.Equal(t, "https://fake.example", rep.URL)
	assert.Len(t, rep.Classes, 2)
	assert.Equal(t, report.ControllerSeparate, rep.ControllerKind)
	assert.Equal(t, int32(3), rep.CountParameters)
	require.Len(t, rep.Parameters, 2, "MIDI CC parameter is filtered out")
	assert.Equal(t, "Gain", rep.Parameters[0].Title)
	assert.Equal(t, "Bypass", rep.Parameters[1].Title)
	assert.True(t, rep.SupportsProcessing)
	assert.Empty(t, rep.Degradations)

	assert.Equal(t, 1, bin.closed)
	assert.Zero(t, bin.refsAtExit, "factory must be released before the module closes")
	assert.Zero(t, fx.component.refs)
	assert.Zero(t, fx.controller.refs)

	var buf bytes.Buffer
	require.NoError(t, report.Encode(&buf, rep, report.FormatJSON, false))
	assert.NoError(t, report.Validate(buf.Bytes()))
}

func TestInspectorSkippedClassesDegrade(t *testing.T) {
	fx := newSeparateFixture()
	fx.factory.classes = append([]vst3.ClassInfo{{Name: "broken"}}, fx.factory.classes...)
	fx.factory.classFail[0] = true

	rep, err := newTestInspector(&fakeBinary{factory: fx.factory}).Inspect(context.Background(), "x")
	require.NoError(t, err)
	require.NotEmpty(t, rep.Degradations)
	assert.Equal(t, "skipped 1 of 3 classes", rep.Degradations[0])
}

func TestInspectorErrors(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(fx *separateFixture, bin *fakeBinary) []Option
		wantCode string
		closed   int
	}{
		{
			name: "bundle invalid",
			setup: func(_ *separateFixture, _ *fakeBinary) []Option {
				return []Option{WithResolver(func(p string) (string, error) {
					return "", vst3.NewBundleInvalidError(p, "nope")
				})}
			},
			wantCode: vst3.ErrCodeBundleInvalid,
		},
		{
			name: "load failure",
			setup: func(_ *separateFixture, _ *fakeBinary) []Option {
				return []Option{WithOpener(func(p string) (Binary, error) {
					return nil, vst3.NewLoadFailureError(p, errors.New("bad ELF"))
				})}
			},
			wantCode: vst3.ErrCodeLoadFailure,
		},
		{
			name: "symbol missing",
			setup: func(_ *separateFixture, bin *fakeBinary) []Option {
				bin.factoryErr = vst3.NewSymbolMissingError("x", vst3.FactorySymbol)
				return nil
			},
			wantCode: vst3.ErrCodeSymbolMissing,
			closed:   1,
		},
		{
			name: "factory info unavailable",
			setup: func(fx *separateFixture, _ *fakeBinary) []Option {
				fx.factory.infoResult = vst3.ResultFalse
				return nil
			},
			wantCode: vst3.ErrCodeFactoryInfoUnavailable,
			closed:   1,
		},
		{
			name: "no audio class",
			setup: func(fx *separateFixture, _ *fakeBinary) []Option {
				fx.factory.classes = fx.factory.classes[:1]
				return nil
			},
			wantCode: vst3.ErrCodeNoAudioClass,
			closed:   1,
		},
		{
			name: "host unavailable",
			setup: func(_ *separateFixture, _ *fakeBinary) []Option {
				return []Option{WithHost(func() (vst3.FUnknown, error) {
					return nil, vst3.NewHostUnavailableError()
				})}
			},
			wantCode: vst3.ErrCodeHostUnavailable,
			closed:   1,
		},
		{
			name: "component init failed",
			setup: func(fx *separateFixture, _ *fakeBinary) []Option {
				fx.component.initResult = vst3.ResultFalse
				return nil
			},
			wantCode: vst3.ErrCodeComponentInitFailed,
			closed:   1,
		},
		{
			name: "no controller",
			setup: func(fx *separateFixture, _ *fakeBinary) []Option {
				fx.component.controllerCIDResult = vst3.ResultNotImplemented
				return nil
			},
			wantCode: vst3.ErrCodeNoController,
			closed:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newSeparateFixture()
			bin := &fakeBinary{factory: fx.factory}
			opts := tt.setup(fx, bin)

			rep, err := newTestInspector(bin, opts...).Inspect(context.Background(), "/plugins/Gain.vst3")
			require.Error(t, err)
			assert.Nil(t, rep)
			assert.Equal(t, tt.wantCode, vst3.CodeOf(err))
			assert.Equal(t, tt.closed, bin.closed)
			if tt.closed > 0 && bin.factoryErr == nil {
				assert.Zero(t, bin.refsAtExit)
			}
			assert.Zero(t, fx.component.refs)
		})
	}
}

func TestInspectorWithRealHost(t *testing.T) {
	before := host.Live()

	fx := newSeparateFixture()
	bin := &fakeBinary{factory: fx.factory}
	insp := newTestInspector(bin, WithHost(NewHostApplication))

	_, err := insp.Inspect(context.Background(), "/plugins/Gain.vst3")
	require.NoError(t, err)

	assert.Equal(t, host.Name, fx.component.hostName)
	assert.Equal(t, before, host.Live(), "host object must be freed after the run")
}

func TestInspectorRealModuleLoadFailure(t *testing.T) {
	_, err := New(WithResolver(func(p string) (string, error) { return p, nil })).
		Inspect(context.Background(), t.TempDir()+"/missing.so")
	require.Error(t, err)
	assert.Equal(t, vst3.ErrCodeLoadFailure, vst3.CodeOf(err))
}

func TestInspectFixtureModule(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := testplugin.Build(t)
	live := host.Live()

	var logs bytes.Buffer
	rep, err := New(WithLogger(debug.Setup("json", debug.LogLevelDebug, &logs))).
		Inspect(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, live, host.Live(), "host application must be freed")

	assert.Equal(t, testplugin.ClassName, rep.Name)
	assert.Equal(t, testplugin.Vendor, rep.Vendor)
	assert.Equal(t, testplugin.Version, rep.Version)
	assert.Equal(t, testplugin.URL, rep.URL)
	assert.Equal(t, testplugin.Email, rep.Email)
	assert.Equal(t, testplugin.FactoryFlags, rep.FactoryFlags)
	require.Len(t, rep.Classes, 2)
	assert.Equal(t, testplugin.ComponentCID.String(), rep.Classes[1].CID)
	assert.Equal(t, testplugin.SDKVersion, rep.Classes[1].SDKVersion)

	assert.Equal(t, int32(2), rep.CountInputs)
	assert.Equal(t, int32(1), rep.CountOutputs)
	require.Len(t, rep.AudioInputs, 1)
	assert.Equal(t, host.Name, rep.AudioInputs[0].Name, "plugin read the host name during initialize")
	require.Len(t, rep.AudioOutputs, 1)
	assert.Equal(t, "Output", rep.AudioOutputs[0].Name)
	require.Len(t, rep.EventInputs, 1)
	assert.Equal(t, "aux", rep.EventInputs[0].BusType)
	assert.Empty(t, rep.EventOutputs)
	assert.True(t, rep.SupportsProcessing)

	assert.Equal(t, report.ControllerSeparate, rep.ControllerKind)
	assert.Equal(t, int32(testplugin.ParameterCount), rep.CountParameters)
	require.Len(t, rep.Parameters, 2)
	assert.Equal(t, "Gain", rep.Parameters[0].Title)
	assert.Equal(t, int32(0), rep.Parameters[0].Index)
	assert.Equal(t, testplugin.GainValue, rep.Parameters[0].Value)
	assert.Equal(t, "0.75", rep.Parameters[0].Display)
	assert.Equal(t, "Bypass", rep.Parameters[1].Title)
	assert.Equal(t, int32(2), rep.Parameters[1].Index, "filtered parameters leave a gap")
	assert.Equal(t, "On", rep.Parameters[1].Display)
	assert.Empty(t, rep.Degradations)

	assert.Contains(t, logs.String(), "plugin inspected")
	assert.Contains(t, logs.String(), "lifecycle timings")

	var buf bytes.Buffer
	require.NoError(t, report.Encode(&buf, rep, report.FormatJSON, false))
	assert.NoError(t, report.Validate(buf.Bytes()))
}
