package ocio

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"lutforge/internal/faults"
)

// Config is a mutable OCIO configuration document. Always load a fresh copy
// per synthesis pass; the type has no copy-on-write semantics.
type Config struct {
	root *yaml.Node

	// searchPaths is authoritative. Serialize writes only the first entry
	// into the document (the bulk search-path setter of the upstream config
	// object never serialized more than one); callers reinstate the rest by
	// patching the serialized text.
	searchPaths []string
}

// LoadConfig reads and parses a configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, faults.Wrap(faults.ErrConfiguration, "ocio", "load config", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, faults.Wrap(faults.ErrConfiguration, "ocio", "parse config", path, err)
	}
	return cfg, nil
}

// Parse decodes configuration text into a Config.
func Parse(data []byte) (*Config, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, fmt.Errorf("config root is not a mapping")
	}
	cfg := &Config{root: doc.Content[0]}
	cfg.searchPaths = cfg.searchPathsFromDoc()
	return cfg, nil
}

// Description returns the config description text.
func (c *Config) Description() string {
	if node := c.value("description"); node != nil {
		return node.Value
	}
	return ""
}

// SetDescription replaces the config description.
func (c *Config) SetDescription(desc string) {
	c.setValue("description", strScalar(desc))
}

// AddEnvironmentVar registers a config-level environment variable.
func (c *Config) AddEnvironmentVar(name, value string) {
	env := c.value("environment")
	if env == nil || env.Kind != yaml.MappingNode {
		env = &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		c.setValue("environment", env)
	}
	for i := 0; i < len(env.Content); i += 2 {
		if env.Content[i].Value == name {
			env.Content[i+1] = strScalar(value)
			return
		}
	}
	env.Content = append(env.Content, strScalar(name), strScalar(value))
}

// EnvironmentVars returns the configured environment variables.
func (c *Config) EnvironmentVars() map[string]string {
	vars := map[string]string{}
	env := c.value("environment")
	if env == nil || env.Kind != yaml.MappingNode {
		return vars
	}
	for i := 0; i < len(env.Content); i += 2 {
		vars[env.Content[i].Value] = env.Content[i+1].Value
	}
	return vars
}

// SearchPaths returns every registered search path.
func (c *Config) SearchPaths() []string {
	out := make([]string, len(c.searchPaths))
	copy(out, c.searchPaths)
	return out
}

// SetSearchPath replaces the search-path list with a single entry.
func (c *Config) SetSearchPath(path string) {
	c.searchPaths = []string{path}
}

// AppendSearchPath adds one search path to the end of the list.
func (c *Config) AppendSearchPath(path string) {
	c.searchPaths = append(c.searchPaths, path)
}

// ActiveDisplays returns the active display names. When the document names
// none, the display mapping order decides.
func (c *Config) ActiveDisplays() []string {
	if names := c.stringList("active_displays"); len(names) > 0 {
		return names
	}
	displays := c.value("displays")
	if displays == nil || displays.Kind != yaml.MappingNode {
		return nil
	}
	var names []string
	for i := 0; i < len(displays.Content); i += 2 {
		names = append(names, displays.Content[i].Value)
	}
	return names
}

// ActiveViews returns the active view names.
func (c *Config) ActiveViews() []string {
	return c.stringList("active_views")
}

// SetActiveViews replaces the active view list.
func (c *Config) SetActiveViews(views []string) {
	node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Style: yaml.FlowStyle}
	for _, view := range views {
		node.Content = append(node.Content, strScalar(view))
	}
	c.setValue("active_views", node)
}

// ColorSpace describes a synthesized color space entry.
type ColorSpace struct {
	Name          string
	Family        string
	Description   string
	FromReference Transform
	ToReference   Transform
}

// AddColorSpace appends a color space to the document.
func (c *Config) AddColorSpace(cs ColorSpace) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!<ColorSpace>"}
	put := func(key string, value *yaml.Node) {
		node.Content = append(node.Content, strScalar(key), value)
	}
	put("name", strScalar(cs.Name))
	put("family", strScalar(cs.Family))
	put("bitdepth", strScalar("32f"))
	if cs.Description != "" {
		put("description", strScalar(cs.Description))
	}
	put("isdata", &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: "false"})
	put("allocation", strScalar("uniform"))
	if cs.ToReference != nil {
		put("to_reference", cs.ToReference.transformNode())
	}
	if cs.FromReference != nil {
		put("from_reference", cs.FromReference.transformNode())
	}
	c.appendToSequence("colorspaces", node)
}

// Look describes a synthesized look entry.
type Look struct {
	Name         string
	ProcessSpace string
	Transform    Transform
}

// AddLook appends a look to the document.
func (c *Config) AddLook(look Look) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!<Look>"}
	node.Content = append(node.Content,
		strScalar("name"), strScalar(look.Name),
		strScalar("process_space"), strScalar(look.ProcessSpace),
	)
	if look.Transform != nil {
		node.Content = append(node.Content, strScalar("transform"), look.Transform.transformNode())
	}
	c.appendToSequence("looks", node)
}

// AddDisplayView registers a view under the named display, creating the
// display when absent.
func (c *Config) AddDisplayView(display, view, colorspace, looks string) {
	displays := c.value("displays")
	if displays == nil || displays.Kind != yaml.MappingNode {
		displays = &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		c.setValue("displays", displays)
	}
	var views *yaml.Node
	for i := 0; i < len(displays.Content); i += 2 {
		if displays.Content[i].Value == display {
			views = displays.Content[i+1]
			break
		}
	}
	if views == nil {
		views = &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		displays.Content = append(displays.Content, strScalar(display), views)
	}
	pairs := []any{"name", strScalar(view), "colorspace", strScalar(colorspace)}
	if looks != "" {
		pairs = append(pairs, "looks", strScalar(looks))
	}
	views.Content = append(views.Content, taggedFlowMapping("View", pairs...))
}

// ColorSpaceNames lists the names of every color space in document order.
func (c *Config) ColorSpaceNames() []string {
	return c.entryNames("colorspaces")
}

// LookNames lists the names of every look in document order.
func (c *Config) LookNames() []string {
	return c.entryNames("looks")
}

func (c *Config) entryNames(section string) []string {
	seq := c.value(section)
	if seq == nil || seq.Kind != yaml.SequenceNode {
		return nil
	}
	var names []string
	for _, item := range seq.Content {
		if item.Kind != yaml.MappingNode {
			continue
		}
		for i := 0; i < len(item.Content); i += 2 {
			if item.Content[i].Value == "name" {
				names = append(names, item.Content[i+1].Value)
				break
			}
		}
	}
	return names
}

func (c *Config) roles() map[string]string {
	out := map[string]string{}
	roles := c.value("roles")
	if roles == nil || roles.Kind != yaml.MappingNode {
		return out
	}
	for i := 0; i < len(roles.Content); i += 2 {
		out[roles.Content[i].Value] = roles.Content[i+1].Value
	}
	return out
}

func (c *Config) searchPathsFromDoc() []string {
	node := c.value("search_path")
	if node == nil {
		return nil
	}
	switch node.Kind {
	case yaml.ScalarNode:
		var paths []string
		for _, p := range strings.Split(node.Value, ":") {
			if p = strings.TrimSpace(p); p != "" {
				paths = append(paths, p)
			}
		}
		return paths
	case yaml.SequenceNode:
		var paths []string
		for _, item := range node.Content {
			if item.Value != "" {
				paths = append(paths, item.Value)
			}
		}
		return paths
	default:
		return nil
	}
}

func (c *Config) stringList(key string) []string {
	node := c.value(key)
	if node == nil {
		return nil
	}
	switch node.Kind {
	case yaml.ScalarNode:
		var out []string
		for _, v := range strings.Split(node.Value, ",") {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
		return out
	case yaml.SequenceNode:
		var out []string
		for _, item := range node.Content {
			if item.Value != "" {
				out = append(out, item.Value)
			}
		}
		return out
	default:
		return nil
	}
}

func (c *Config) appendToSequence(key string, node *yaml.Node) {
	seq := c.value(key)
	if seq == nil || seq.Kind != yaml.SequenceNode {
		seq = &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		c.setValue(key, seq)
	}
	seq.Content = append(seq.Content, node)
}

func (c *Config) value(key string) *yaml.Node {
	for i := 0; i < len(c.root.Content); i += 2 {
		if c.root.Content[i].Value == key {
			return c.root.Content[i+1]
		}
	}
	return nil
}

func (c *Config) setValue(key string, value *yaml.Node) {
	for i := 0; i < len(c.root.Content); i += 2 {
		if c.root.Content[i].Value == key {
			c.root.Content[i+1] = value
			return
		}
	}
	c.root.Content = append(c.root.Content, strScalar(key), value)
}
