package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeOCIO(); err != nil {
		return err
	}
	c.normalizeEnvironment()
	c.normalizeOutput()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.StagingDir) == "" {
		c.Paths.StagingDir = defaultStagingDir
	}
	if c.Paths.StagingDir, err = expandPath(c.Paths.StagingDir); err != nil {
		return fmt.Errorf("paths.staging_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeOCIO() error {
	c.OCIO.BaseConfig = strings.TrimSpace(c.OCIO.BaseConfig)
	if c.OCIO.BaseConfig == "" {
		if value, ok := os.LookupEnv("OCIO"); ok {
			c.OCIO.BaseConfig = strings.TrimSpace(value)
		}
	}
	if c.OCIO.BaseConfig != "" {
		expanded, err := expandPath(c.OCIO.BaseConfig)
		if err != nil {
			return fmt.Errorf("ocio.base_config: %w", err)
		}
		c.OCIO.BaseConfig = expanded
	}

	c.OCIO.WorkingSpace = strings.TrimSpace(c.OCIO.WorkingSpace)
	if c.OCIO.WorkingSpace == "" {
		c.OCIO.WorkingSpace = defaultWorkingSpace
	}
	c.OCIO.Family = strings.TrimSpace(c.OCIO.Family)
	if c.OCIO.Family == "" {
		c.OCIO.Family = defaultFamily
	}

	views := make([]string, 0, len(c.OCIO.Views))
	for _, view := range c.OCIO.Views {
		if view = strings.TrimSpace(view); view != "" {
			views = append(views, view)
		}
	}
	c.OCIO.Views = views
	return nil
}

func (c *Config) normalizeEnvironment() {
	vars := make([]EnvVar, 0, len(c.Environment))
	seen := make(map[string]struct{}, len(c.Environment))
	for _, v := range c.Environment {
		name := strings.TrimSpace(v.Name)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		vars = append(vars, EnvVar{Name: name, Value: strings.TrimSpace(v.Value)})
	}
	c.Environment = vars
}

func (c *Config) normalizeOutput() {
	c.Output.Fit = strings.ToLower(strings.TrimSpace(c.Output.Fit))
	if c.Output.Width < 0 {
		c.Output.Width = 0
	}
	if c.Output.Height < 0 {
		c.Output.Height = 0
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
