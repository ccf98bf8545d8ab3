package ociogen

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"lutforge/internal/faults"
	"lutforge/internal/logging"
	"lutforge/internal/ocio"
	"lutforge/internal/operator"
)

const configFileName = "config.ocio"

// Var is one environment variable carried into the synthesized config. Order
// matters: path substitution tries variables in declaration order and stops
// at the first match.
type Var struct {
	Name  string
	Value string
}

// Options configure a Generator. Context is required; everything else has a
// default.
type Options struct {
	// Context names the shot. It becomes the synthesized color space, look,
	// and display-view name, so it must be unique per generated config.
	Context string

	// Family groups the synthesized color space. Defaults to "lutforge".
	Family string

	// WorkingSpace is the space the color pipeline operates in. Defaults to
	// "ACES - ACEScg".
	WorkingSpace string

	// Views become the active views after the context view. When empty the
	// base config's active views are kept.
	Views []string

	Description string

	// ConfigPath locates the base config. Defaults to $OCIO. The file must
	// exist at construction time.
	ConfigPath string

	// StagingDir receives the config when CreateConfig gets no destination.
	// Defaults to a fresh unique directory under the system temp dir.
	StagingDir string

	Vars   []Var
	Logger *slog.Logger
}

// Generator builds shot configs from a base OCIO configuration.
type Generator struct {
	context      string
	family       string
	workingSpace string
	views        []string
	description  string
	configPath   string
	stagingDir   string
	vars         []Var
	log          *slog.Logger

	operators []operator.ColorOperator
	destPath  string
}

// New validates options and returns a generator. A missing context or an
// unreadable base config is fatal.
func New(opts Options, operators ...operator.ColorOperator) (*Generator, error) {
	if opts.Context == "" {
		return nil, faults.Wrap(faults.ErrConfiguration, "ociogen", "new",
			"context is required", nil)
	}

	configPath := opts.ConfigPath
	if configPath == "" {
		configPath = os.Getenv("OCIO")
	}
	if configPath == "" {
		return nil, faults.Wrap(faults.ErrConfiguration, "ociogen", "new",
			"no base config: set ConfigPath or the OCIO environment variable", nil)
	}
	if info, err := os.Stat(configPath); err != nil || info.IsDir() {
		return nil, faults.Wrap(faults.ErrConfiguration, "ociogen", "new",
			"base config not found: "+configPath, err)
	}

	stagingDir := opts.StagingDir
	if stagingDir == "" {
		stagingDir = filepath.Join(os.TempDir(), "lutforge", uuid.NewString())
	}

	family := opts.Family
	if family == "" {
		family = "lutforge"
	}
	workingSpace := opts.WorkingSpace
	if workingSpace == "" {
		workingSpace = "ACES - ACEScg"
	}
	description := opts.Description
	if description == "" {
		description = "lutforge generated config"
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	return &Generator{
		context:      opts.Context,
		family:       family,
		workingSpace: workingSpace,
		views:        append([]string(nil), opts.Views...),
		description:  description,
		configPath:   filepath.ToSlash(configPath),
		stagingDir:   filepath.ToSlash(stagingDir),
		vars:         append([]Var(nil), opts.Vars...),
		log:          logger,
		operators:    operators,
	}, nil
}

// SetOperators replaces the color operator list.
func (g *Generator) SetOperators(operators ...operator.ColorOperator) {
	g.operators = operators
}

// AppendOperators adds color operators to the end of the list.
func (g *Generator) AppendOperators(operators ...operator.ColorOperator) {
	g.operators = append(g.operators, operators...)
}

// ConfigPath returns the destination of the last written config.
func (g *Generator) ConfigPath() string {
	return g.destPath
}

// CreateConfig synthesizes and writes the shot config. An empty dest lands
// the file in the staging directory. The base config is reloaded on every
// call, so repeated calls produce identical output.
func (g *Generator) CreateConfig(dest string) (string, error) {
	if dest == "" {
		dest = filepath.Join(g.stagingDir, configFileName)
	}
	if abs, err := filepath.Abs(dest); err == nil {
		dest = abs
	}
	dest = filepath.ToSlash(dest)

	cfg, err := ocio.LoadConfig(g.configPath)
	if err != nil {
		return "", err
	}

	// Expanding the operators yields fresh transform values, so the src and
	// cccid rewrites below never leak into the next call.
	var transforms []ocio.Transform
	for _, op := range g.operators {
		transforms = append(transforms, op.OCIOTransforms()...)
	}

	searchPaths := g.collectSearchPaths(cfg, transforms)
	g.rewriteFileTransforms(transforms)

	for _, v := range g.vars {
		cfg.AddEnvironmentVar(v.Name, v.Value)
	}
	cfg.SetDescription(g.description)

	displays := cfg.ActiveDisplays()
	if len(displays) == 0 {
		return "", faults.Wrap(faults.ErrValidation, "ociogen", "create config",
			"base config has no display to attach the view to", nil)
	}

	cfg.AddColorSpace(ocio.ColorSpace{
		Name:          g.context,
		Family:        g.family,
		FromReference: &ocio.GroupTransform{Children: transforms},
	})
	cfg.AddLook(ocio.Look{
		Name:         g.context,
		ProcessSpace: g.workingSpace,
		Transform:    &ocio.ColorSpaceTransform{Src: g.workingSpace, Dst: g.context},
	})
	cfg.AddDisplayView(displays[0], g.context, g.workingSpace, g.context)

	views := g.views
	if len(views) == 0 {
		views = cfg.ActiveViews()
	}
	cfg.SetActiveViews(append([]string{g.context}, views...))

	if len(searchPaths) > 0 {
		cfg.SetSearchPath(searchPaths[0])
		for _, p := range searchPaths[1:] {
			cfg.AppendSearchPath(p)
		}
	}

	if err := cfg.Validate(); err != nil {
		return "", err
	}

	text := patchSearchPaths(cfg.Serialize(), searchPaths)
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return "", faults.Wrap(faults.ErrConfiguration, "ociogen", "create config", dest, err)
	}
	if err := os.WriteFile(dest, []byte(text), 0o644); err != nil {
		return "", faults.Wrap(faults.ErrConfiguration, "ociogen", "create config", dest, err)
	}

	g.destPath = dest
	g.log.Info("wrote shot config", logging.Args(
		logging.String("context", g.context),
		logging.String("path", dest))...)
	return dest, nil
}

// collectSearchPaths resolves the base config's search paths plus every file
// reference carried by a transform into deduplicated absolute directories,
// keeping first-seen order, then substitutes variable placeholders. Paths
// that resolve to nothing on disk are dropped with a warning.
func (g *Generator) collectSearchPaths(cfg *ocio.Config, transforms []ocio.Transform) []string {
	raw := cfg.SearchPaths()
	for _, transform := range transforms {
		if file, ok := transform.(*ocio.FileTransform); ok {
			raw = append(raw, file.Src)
		}
	}

	baseDir := filepath.Dir(g.configPath)
	seen := map[string]bool{}
	var out []string
	for _, p := range raw {
		resolved := p
		if !filepath.IsAbs(resolved) {
			resolved = filepath.Join(baseDir, resolved)
		}
		info, err := os.Stat(resolved)
		if err != nil {
			g.log.Warn("search path not found, dropping",
				logging.Args(logging.String("path", p))...)
			continue
		}
		if !info.IsDir() {
			resolved = filepath.Dir(resolved)
		}
		if abs, err := filepath.Abs(resolved); err == nil {
			resolved = abs
		}
		resolved = filepath.ToSlash(resolved)
		if seen[resolved] {
			continue
		}
		seen[resolved] = true
		out = append(out, g.swapVariables(resolved))
	}
	return out
}

// rewriteFileTransforms reduces every file transform's src to its substituted
// basename; the directory part lives in the search paths. A non-empty cccid
// gets the same substitution.
func (g *Generator) rewriteFileTransforms(transforms []ocio.Transform) {
	for _, transform := range transforms {
		file, ok := transform.(*ocio.FileTransform)
		if !ok {
			continue
		}
		if _, err := os.Stat(file.Src); err != nil {
			g.log.Warn("file transform source not found",
				logging.Args(logging.String("src", file.Src))...)
		}
		if file.CCCID != "" {
			file.CCCID = g.swapVariables(file.CCCID)
		}
		file.Src = g.swapVariables(filepath.Base(file.Src))
	}
}

// swapVariables substitutes the first declared variable whose value prefixes
// the text with its $NAME placeholder. Substitution is not cumulative.
func (g *Generator) swapVariables(text string) string {
	for _, v := range g.vars {
		if v.Value != "" && strings.HasPrefix(text, v.Value) {
			return "$" + v.Name + text[len(v.Value):]
		}
	}
	return text
}

// patchSearchPaths replaces the serialized single-entry search_path line with
// a block listing every path. Config text without a search_path line passes
// through untouched.
func patchSearchPaths(text string, paths []string) string {
	entries := make([]string, 0, len(paths))
	for _, p := range paths {
		entries = append(entries, "  - "+p)
	}

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if !strings.Contains(line, "search_path") {
			lines = append(lines, line)
			continue
		}
		lines = append(lines, "")
		lines = append(lines, "search_path:")
		lines = append(lines, entries...)
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

// OiiotoolCmd returns the fixed argument vector that applies the synthesized
// look through the written config.
func (g *Generator) OiiotoolCmd() []string {
	return []string{
		"--colorconfig",
		g.destPath,
		`--ociolook:from="` + g.workingSpace + `":to="` + g.workingSpace + `"`,
		g.context,
	}
}
