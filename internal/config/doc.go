// Package config loads and validates the lutforge TOML configuration.
//
// Load resolves the config path (explicit flag, then the user config dir,
// then a project-local file), parses it over the defaults, expands tilde
// paths, and validates the result. A missing file is not an error: the
// defaults apply and the OCIO base config falls back to the $OCIO
// environment variable.
package config
