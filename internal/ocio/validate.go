package ocio

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"lutforge/internal/faults"
)

// Validate checks the document for structural errors: duplicate color space
// or look names, and dangling references from looks and display views.
func (c *Config) Validate() error {
	spaces := map[string]bool{}
	for _, name := range c.ColorSpaceNames() {
		if spaces[name] {
			return faults.Wrap(faults.ErrValidation, "ocio", "validate",
				fmt.Sprintf("duplicate color space %q", name), nil)
		}
		spaces[name] = true
	}

	roles := c.roles()
	known := func(name string) bool {
		if spaces[name] {
			return true
		}
		_, ok := roles[name]
		return ok
	}

	looks := map[string]bool{}
	for _, name := range c.LookNames() {
		if looks[name] {
			return faults.Wrap(faults.ErrValidation, "ocio", "validate",
				fmt.Sprintf("duplicate look %q", name), nil)
		}
		looks[name] = true
	}
	if err := c.validateLookSpaces(known); err != nil {
		return err
	}
	return c.validateDisplays(known, looks)
}

func (c *Config) validateLookSpaces(known func(string) bool) error {
	seq := c.value("looks")
	if seq == nil || seq.Kind != yaml.SequenceNode {
		return nil
	}
	for _, item := range seq.Content {
		name, process := mapStr(item, "name"), mapStr(item, "process_space")
		if process != "" && !known(process) {
			return faults.Wrap(faults.ErrValidation, "ocio", "validate",
				fmt.Sprintf("look %q references unknown process space %q", name, process), nil)
		}
	}
	return nil
}

func (c *Config) validateDisplays(known func(string) bool, looks map[string]bool) error {
	displays := c.value("displays")
	if displays == nil || displays.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i < len(displays.Content); i += 2 {
		display := displays.Content[i].Value
		views := displays.Content[i+1]
		if views.Kind != yaml.SequenceNode {
			continue
		}
		for _, view := range views.Content {
			name, space := mapStr(view, "name"), mapStr(view, "colorspace")
			if space != "" && !known(space) {
				return faults.Wrap(faults.ErrValidation, "ocio", "validate",
					fmt.Sprintf("view %q on display %q references unknown color space %q", name, display, space), nil)
			}
			for _, ref := range splitLookRefs(mapStr(view, "looks")) {
				if !looks[ref] {
					return faults.Wrap(faults.ErrValidation, "ocio", "validate",
						fmt.Sprintf("view %q on display %q references unknown look %q", name, display, ref), nil)
				}
			}
		}
	}
	return nil
}

// splitLookRefs splits a view's look list, dropping the +/- application
// prefixes the look syntax allows.
func splitLookRefs(refs string) []string {
	var out []string
	for _, ref := range strings.Split(refs, ",") {
		ref = strings.TrimSpace(ref)
		ref = strings.TrimLeft(ref, "+-")
		if ref != "" {
			out = append(out, ref)
		}
	}
	return out
}

func mapStr(node *yaml.Node, key string) string {
	if node == nil || node.Kind != yaml.MappingNode {
		return ""
	}
	for i := 0; i < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1].Value
		}
	}
	return ""
}
