package feeds

import (
	"fmt"

	"github.com/pkg/errors"
)

// A ConfigError reports a manifest which can't be resolved into a complete feed. Macro and
// Channel are empty when the problem isn't specific to a macro or a channel.
type ConfigError struct {
	Macro   string
	Channel string
	Reason  string
}

func (e *ConfigError) Error() string {
	switch {
	case e.Macro != "" && e.Channel != "":
		return fmt.Sprintf(
			"invalid configuration of channel %s of macro %s: %s", e.Channel, e.Macro, e.Reason,
		)
	case e.Macro != "":
		return fmt.Sprintf("invalid configuration of macro %s: %s", e.Macro, e.Reason)
	default:
		return fmt.Sprintf("invalid feed configuration: %s", e.Reason)
	}
}

// IsConfigError checks whether err was caused by a [ConfigError].
func IsConfigError(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}

func ErrsWrap(errs []error, message string) []error {
	wrapped := make([]error, 0, len(errs))
	for _, err := range errs {
		wrapped = append(wrapped, errors.Wrap(err, message))
	}
	return wrapped
}

func ErrsWrapf(errs []error, format string, a ...any) []error {
	wrapped := make([]error, 0, len(errs))
	for _, err := range errs {
		wrapped = append(wrapped, errors.Wrapf(err, format, a...))
	}
	return wrapped
}
