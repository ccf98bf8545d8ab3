package effect

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"lutforge/internal/faults"
	"lutforge/internal/logging"
	"lutforge/internal/ocio"
	"lutforge/internal/operator"
)

// Options adjust how documents are loaded.
type Options struct {
	// TargetDir overrides file reference resolution: when set, every file
	// reference is rewritten into this directory by basename.
	TargetDir string
	Logger    *slog.Logger
}

// Compiler turns an effect-stack document into ordered operator lists.
type Compiler struct {
	filePath  string
	targetDir string
	log       *slog.Logger

	colorOps []operator.ColorOperator
	repoOps  []operator.RepositionOperator
}

// NewCompiler returns a compiler for the given effect document path.
func NewCompiler(path string, opts Options) *Compiler {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Compiler{
		filePath:  path,
		targetDir: opts.TargetDir,
		log:       logger,
	}
}

// FilePath returns the effect document path.
func (c *Compiler) FilePath() string {
	return c.filePath
}

// Clear resets both operator lists.
func (c *Compiler) Clear() {
	c.colorOps = nil
	c.repoOps = nil
}

// ColorOperators returns the decoded color operators in source order.
func (c *Compiler) ColorOperators() []operator.ColorOperator {
	return c.colorOps
}

// RepositionOperators returns the decoded reposition operators in source
// order.
func (c *Compiler) RepositionOperators() []operator.RepositionOperator {
	return c.repoOps
}

type stackNode struct {
	Class         string         `json:"class"`
	SubTrackIndex int            `json:"subTrackIndex"`
	Node          map[string]any `json:"node"`
}

// Load reads the effect document and rebuilds both operator lists. Operators
// already held are cleared first, so reloading is idempotent. A parse
// failure or missing document is fatal and leaves both lists empty.
func (c *Compiler) Load() error {
	c.Clear()

	data, err := os.ReadFile(c.filePath)
	if err != nil {
		return faults.Wrap(faults.ErrConfiguration, "effect", "load", c.filePath, err)
	}

	nodes, err := scanStackNodes(data)
	if err != nil {
		return faults.Wrap(faults.ErrConfiguration, "effect", "parse", c.filePath, err)
	}
	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].SubTrackIndex < nodes[j].SubTrackIndex
	})

	var siblings map[string]string
	var colorOps []operator.ColorOperator
	var repoOps []operator.RepositionOperator
	for _, node := range nodes {
		if !operator.Known(node.Class) {
			c.log.Debug("skipping unknown node class", logging.Args(logging.String("class", node.Class))...)
			continue
		}
		if len(node.Node) == 0 {
			continue
		}
		if file, ok := node.Node["file"].(string); ok && file != "" {
			if siblings == nil {
				siblings = siblingFiles(filepath.Dir(c.filePath))
			}
			node.Node["file"] = c.resolveFile(file, siblings)
		}
		op, ok := operator.Decode(node.Class, node.Node)
		if !ok {
			continue
		}
		switch typed := op.(type) {
		case operator.ColorOperator:
			colorOps = append(colorOps, typed)
		case operator.RepositionOperator:
			repoOps = append(repoOps, typed)
		}
	}

	c.colorOps = colorOps
	c.repoOps = repoOps
	return nil
}

// resolveFile resolves one file reference: a path that exists verbatim wins,
// then the target-directory override, then a recursive basename lookup among
// the document's sibling files (first match wins, which is lossy when
// duplicate basenames exist). An unresolvable reference keeps the literal
// path.
func (c *Compiler) resolveFile(file string, siblings map[string]string) string {
	if _, err := os.Stat(file); err == nil {
		if abs, err := filepath.Abs(file); err == nil {
			return filepath.ToSlash(abs)
		}
		return filepath.ToSlash(file)
	}

	base := filepath.Base(file)
	if c.targetDir != "" {
		resolved := filepath.ToSlash(filepath.Join(c.targetDir, base))
		c.log.Debug("file reference redirected to target dir", logging.Args(logging.String("file", resolved))...)
		return resolved
	}
	if match, ok := siblings[base]; ok {
		c.log.Warn("file not found, using sibling with same name",
			logging.Args(logging.String("file", file), logging.String("sibling", match))...)
		return match
	}

	c.log.Warn("file reference could not be resolved, keeping literal path",
		logging.Args(logging.String("file", file))...)
	return file
}

// OCIOTransforms expands every color operator into its native transforms,
// preserving order.
func (c *Compiler) OCIOTransforms() []ocio.Transform {
	var transforms []ocio.Transform
	for _, op := range c.colorOps {
		transforms = append(transforms, op.OCIOTransforms()...)
	}
	return transforms
}

// OiiotoolArgs returns the literal oiiotool arguments for the compiled
// effect: color transforms first, reposition operators after.
func (c *Compiler) OiiotoolArgs() []string {
	var args []string
	for _, transform := range c.OCIOTransforms() {
		switch typed := transform.(type) {
		case *ocio.FileTransform:
			args = append(args, "--ociofiletransform", typed.Src)
		case *ocio.ColorSpaceTransform:
			args = append(args, "--colorconvert", typed.Src, typed.Dst)
		}
	}
	for _, op := range c.repoOps {
		args = append(args, op.OiiotoolArgs()...)
	}
	return args
}

// scanStackNodes walks the top-level JSON object in document order and
// decodes every value that is itself an object. Document order matters: it
// breaks sub-track index ties during the stable sort.
func scanStackNodes(data []byte) ([]stackNode, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("effect document root is not an object")
	}

	var nodes []stackNode
	for dec.More() {
		if _, err := dec.Token(); err != nil { // key
			return nil, err
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
		trimmed := bytes.TrimLeft(raw, " \t\r\n")
		if len(trimmed) == 0 || trimmed[0] != '{' {
			continue
		}
		var node stackNode
		if err := json.Unmarshal(raw, &node); err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

// siblingFiles maps basenames onto absolute slash paths for every file below
// dir. WalkDir visits lexically, so the first occurrence of a duplicate
// basename wins.
func siblingFiles(dir string) map[string]string {
	files := map[string]string{}
	_ = filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil || entry.IsDir() {
			return nil
		}
		name := entry.Name()
		if _, seen := files[name]; seen {
			return nil
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		files[name] = filepath.ToSlash(abs)
		return nil
	})
	return files
}
