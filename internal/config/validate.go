package config

import (
	"fmt"
	"strings"
)

var validLogLevels = map[string]struct{}{
	"trace": {},
	"debug": {},
	"info":  {},
	"warn":  {},
	"error": {},
}

// Validate checks configuration values for correctness. Existence of the
// OCIO base config is deliberately not checked here; the generator verifies
// it at construction time so a config file can be written before the base
// config lands on disk.
func (c *Config) Validate() error {
	var problems []string

	if _, ok := validLogLevels[c.Logging.Level]; !ok {
		problems = append(problems, fmt.Sprintf("logging.level %q is not one of trace, debug, info, warn, error", c.Logging.Level))
	}

	for _, v := range c.Environment {
		if !validVarName(v.Name) {
			problems = append(problems, fmt.Sprintf("environment variable name %q is not a valid identifier", v.Name))
		}
	}

	if (c.Output.Width != 0) != (c.Output.Height != 0) && c.Output.Fit != "" {
		// A fit mode with one free dimension is fine for --resize but makes
		// --fit guess; require both or neither when a fit mode is set.
		problems = append(problems, "output.fit requires both output.width and output.height")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func validVarName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_':
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
