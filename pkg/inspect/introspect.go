package inspect

import (
	"fmt"

	"github.com/justyntemme/vst3info/pkg/com"
	"github.com/justyntemme/vst3info/pkg/vst3"
)

// Parameter is one parameter as read from the controller.
type Parameter struct {
	Index   int32
	Info    vst3.ParameterInfo
	Value   float64
	Display string
}

// Inspection is everything read from an initialized plugin.
type Inspection struct {
	AudioInputs  []vst3.BusInfo
	AudioOutputs []vst3.BusInfo
	EventInputs  []vst3.BusInfo
	EventOutputs []vst3.BusInfo

	// Reported bus counts, audio plus event. Negative reports count as 0.
	InputCount  int32
	OutputCount int32

	Parameters     []Parameter
	ParameterCount int32

	SupportsProcessing bool
	Controller         ControllerSource
	Degradations       []string
}

// busQuery is one (media type, direction) combination.
type busQuery struct {
	media     vst3.MediaType
	direction vst3.BusDirection
}

func (q busQuery) String() string {
	return q.media.String() + " " + q.direction.String()
}

var busQueries = [...]busQuery{
	{vst3.MediaTypeAudio, vst3.BusDirectionInput},
	{vst3.MediaTypeAudio, vst3.BusDirectionOutput},
	{vst3.MediaTypeEvent, vst3.BusDirectionInput},
	{vst3.MediaTypeEvent, vst3.BusDirectionOutput},
}

// Reported counts come from the plugin; lists grow only with entries that
// were actually read.
func collectBuses(c vst3.IComponent, q busQuery) (buses []vst3.BusInfo, reported int32, skipped int) {
	reported = c.BusCount(q.media, q.direction)
	if reported < 0 {
		reported = 0
	}
	buses = []vst3.BusInfo{}
	for i := int32(0); i < reported; i++ {
		bus, res := c.BusInfo(q.media, q.direction, i)
		if !res.OK() {
			skipped++
			continue
		}
		buses = append(buses, bus)
	}
	return buses, reported, skipped
}

func collectParameters(ctrl vst3.IEditController) (params []Parameter, reported int32, skipped int) {
	reported = ctrl.ParameterCount()
	if reported < 0 {
		reported = 0
	}
	params = []Parameter{}
	for i := int32(0); i < reported; i++ {
		info, res := ctrl.ParameterInfo(i)
		if !res.OK() {
			skipped++
			continue
		}
		p := Parameter{Index: i, Info: info, Value: ctrl.ParamNormalized(info.ID)}
		if s, res := ctrl.ParamStringByValue(info.ID, p.Value); res.OK() {
			p.Display = s
		}
		params = append(params, p)
	}
	return params, reported, skipped
}

// introspect reads buses, parameters and the processing capability. Every
// failure here shortens the result instead of failing it.
func introspect(component *com.Ptr[vst3.IComponent], controller *com.Ptr[vst3.IEditController]) *Inspection {
	insp := &Inspection{}
	c := component.Get()

	lists := [...]*[]vst3.BusInfo{&insp.AudioInputs, &insp.AudioOutputs, &insp.EventInputs, &insp.EventOutputs}
	for i, q := range busQueries {
		buses, reported, skipped := collectBuses(c, q)
		*lists[i] = buses
		if q.direction == vst3.BusDirectionInput {
			insp.InputCount += reported
		} else {
			insp.OutputCount += reported
		}
		if skipped > 0 {
			insp.Degradations = append(insp.Degradations,
				fmt.Sprintf("skipped %d of %d %s buses", skipped, reported, q))
		}
	}

	params, reported, skipped := collectParameters(controller.Get())
	insp.Parameters = params
	insp.ParameterCount = reported
	if skipped > 0 {
		insp.Degradations = append(insp.Degradations,
			fmt.Sprintf("skipped %d of %d parameters", skipped, reported))
	}

	insp.SupportsProcessing = com.Supports(component, vst3.IIDIAudioProcessor)
	return insp
}
