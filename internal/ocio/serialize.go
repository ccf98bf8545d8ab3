package ocio

import (
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Serialize renders the document as OCIO-flavored YAML text.
//
// Only the first search path is written; this mirrors the serialization
// defect of the upstream config object so the line-level patch applied by the
// generator stays load-bearing either way.
func (c *Config) Serialize() string {
	if len(c.searchPaths) > 0 {
		c.setValue("search_path", strScalar(c.searchPaths[0]))
	}

	var sb strings.Builder
	for i := 0; i < len(c.root.Content); i += 2 {
		if i > 0 {
			sb.WriteString("\n")
		}
		writeEntry(&sb, c.root.Content[i].Value, c.root.Content[i+1], 0)
	}
	return sb.String()
}

func writeEntry(sb *strings.Builder, key string, value *yaml.Node, indent int) {
	pad := strings.Repeat(" ", indent)
	switch {
	case flowable(value):
		sb.WriteString(pad + key + ": " + flowText(value) + "\n")
	case value.Kind == yaml.MappingNode && hasCustomTag(value):
		sb.WriteString(pad + key + ": !<" + cleanTag(value.Tag) + ">\n")
		writeMapping(sb, value, indent+2)
	case value.Kind == yaml.MappingNode:
		sb.WriteString(pad + key + ":\n")
		writeMapping(sb, value, indent+2)
	case value.Kind == yaml.SequenceNode:
		sb.WriteString(pad + key + ":\n")
		writeSequence(sb, value, indent+2)
	default:
		sb.WriteString(pad + key + ": " + flowText(value) + "\n")
	}
}

func writeMapping(sb *strings.Builder, node *yaml.Node, indent int) {
	for i := 0; i < len(node.Content); i += 2 {
		writeEntry(sb, node.Content[i].Value, node.Content[i+1], indent)
	}
}

func writeSequence(sb *strings.Builder, node *yaml.Node, indent int) {
	pad := strings.Repeat(" ", indent)
	for _, item := range node.Content {
		switch {
		case flowable(item):
			sb.WriteString(pad + "- " + flowText(item) + "\n")
		case item.Kind == yaml.MappingNode:
			if hasCustomTag(item) {
				sb.WriteString(pad + "- !<" + cleanTag(item.Tag) + ">\n")
			} else {
				sb.WriteString(pad + "-\n")
			}
			writeMapping(sb, item, indent+2)
		case item.Kind == yaml.SequenceNode:
			sb.WriteString(pad + "-\n")
			writeSequence(sb, item, indent+2)
		}
	}
}

// flowable reports whether a node can render on one line: scalars, sequences
// of scalars, and mappings whose values are themselves flowable and contain
// no nested mappings.
func flowable(node *yaml.Node) bool {
	switch node.Kind {
	case yaml.ScalarNode, yaml.AliasNode:
		return true
	case yaml.SequenceNode:
		for _, item := range node.Content {
			if item.Kind != yaml.ScalarNode {
				return false
			}
		}
		return true
	case yaml.MappingNode:
		for i := 1; i < len(node.Content); i += 2 {
			value := node.Content[i]
			if value.Kind == yaml.MappingNode {
				return false
			}
			if !flowable(value) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func flowText(node *yaml.Node) string {
	switch node.Kind {
	case yaml.ScalarNode:
		return scalarText(node)
	case yaml.SequenceNode:
		parts := make([]string, 0, len(node.Content))
		for _, item := range node.Content {
			parts = append(parts, flowText(item))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case yaml.MappingNode:
		parts := make([]string, 0, len(node.Content)/2)
		for i := 0; i < len(node.Content); i += 2 {
			parts = append(parts, node.Content[i].Value+": "+flowText(node.Content[i+1]))
		}
		text := "{" + strings.Join(parts, ", ") + "}"
		if hasCustomTag(node) {
			return "!<" + cleanTag(node.Tag) + "> " + text
		}
		return text
	default:
		return ""
	}
}

func scalarText(node *yaml.Node) string {
	if node.Tag != "" && node.Tag != "!!str" {
		if node.Value == "" && node.Tag == "!!null" {
			return "~"
		}
		return node.Value
	}
	if needsQuote(node.Value) {
		return strconv.Quote(node.Value)
	}
	return node.Value
}

func needsQuote(s string) bool {
	if s == "" {
		return true
	}
	if strings.ContainsAny(s, ":#{}[],&*?|>%@`\"'\\\n") {
		return true
	}
	if strings.HasPrefix(s, "!") || strings.HasPrefix(s, "-") || strings.HasPrefix(s, " ") || strings.HasSuffix(s, " ") {
		return true
	}
	switch strings.ToLower(s) {
	case "true", "false", "yes", "no", "on", "off", "null", "~":
		return true
	}
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return true
	}
	return false
}

func hasCustomTag(node *yaml.Node) bool {
	return node.Tag != "" && !strings.HasPrefix(node.Tag, "!!")
}
