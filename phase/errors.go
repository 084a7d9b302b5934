package phase

import "fmt"

// ConfigError reports an invalid run configuration. Fatal for the run.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string {
	return "phase config: " + e.Msg
}

// AlignmentError reports a typed-marker-to-reference mapping that points
// outside the panel or repeats a reference marker. Fatal for the run.
type AlignmentError struct {
	TypedIndex int
	RefIndex   int
	Msg        string
}

func (e *AlignmentError) Error() string {
	return fmt.Sprintf("marker alignment: typed marker %d -> reference %d: %s", e.TypedIndex, e.RefIndex, e.Msg)
}

// PanelError reports a reference panel that cannot support diploid pair
// selection in some window. Fatal for the run.
type PanelError struct {
	Window int
	Msg    string
}

func (e *PanelError) Error() string {
	return fmt.Sprintf("reference panel: window %d: %s", e.Window, e.Msg)
}

// SampleError reports a sample whose phasing could not complete. In strict
// mode it aborts the run; in lenient mode the sample is excluded from both
// outputs and flagged in Result.Failed.
type SampleError struct {
	Sample int
	Window int
	Msg    string
}

func (e *SampleError) Error() string {
	return fmt.Sprintf("sample %d: window %d: %s", e.Sample, e.Window, e.Msg)
}
