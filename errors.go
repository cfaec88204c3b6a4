package hybridsim

import "fmt"

// throwf terminates the current goroutine immediately due to an
// unrecoverable configuration or programming error, mirroring the source
// system's throwf helper.
func throwf(format string, a ...interface{}) {
	panic(fmt.Errorf(format, a...))
}

// ConfigError reports a bad optimizer or objective configuration, e.g. a
// GAConfig run without parameter bounds, an OptimizerConfig with an unknown
// Kind, or a simulator model that does not implement OptModel. Invalid
// StepperConfig values panic through throwf instead.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("hybridsim: bad configuration for %s: %s", e.Field, e.Message)
}

// ObservationError reports an observation record that cannot be matched
// against a simulation's state vector or sample times.
type ObservationError struct {
	Message string
}

func (e *ObservationError) Error() string {
	return fmt.Sprintf("hybridsim: invalid observation: %s", e.Message)
}
