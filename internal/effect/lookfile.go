package effect

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"lutforge/internal/faults"
	"lutforge/internal/logging"
	"lutforge/internal/ocio"
	"lutforge/internal/operator"
)

// lookSchemaVersion is the only look-product document version understood.
const lookSchemaVersion = 1

// LookFile loads a look-product document: an ordered list of LUT descriptors
// plus the working space they operate around.
type LookFile struct {
	filePath   string
	targetPath string
	log        *slog.Logger

	product operator.LookProduct
}

// NewLookFile returns a loader for the given look document path. When
// opts.TargetDir is set it acts as the target path whose stem names missing
// item files.
func NewLookFile(path string, opts Options) *LookFile {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	return &LookFile{
		filePath:   path,
		targetPath: opts.TargetDir,
		log:        logger,
	}
}

// FilePath returns the look document path.
func (l *LookFile) FilePath() string {
	return l.filePath
}

// Product returns the decoded look product.
func (l *LookFile) Product() operator.LookProduct {
	return l.product
}

type lookDocument struct {
	Version *int           `json:"version"`
	Data    map[string]any `json:"data"`
}

// Load reads the look document, fixes up missing item file references, and
// decodes the look product. A schema version other than 1 is fatal.
func (l *LookFile) Load() error {
	l.product = operator.LookProduct{}

	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return faults.Wrap(faults.ErrConfiguration, "look", "load", l.filePath, err)
	}
	var doc lookDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return faults.Wrap(faults.ErrConfiguration, "look", "parse", l.filePath, err)
	}
	version := lookSchemaVersion
	if doc.Version != nil {
		version = *doc.Version
	}
	if version != lookSchemaVersion {
		return faults.Wrap(faults.ErrConfiguration, "look", "parse",
			fmt.Sprintf("schema version %d is not supported", version), nil)
	}

	items, _ := doc.Data["ocioLookItems"].([]any)
	var siblings map[string]string
	for _, raw := range items {
		fields, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		if siblings == nil {
			siblings = siblingFiles(filepath.Dir(l.filePath))
		}
		l.sanitizeItem(fields, siblings)
	}

	l.product = operator.DecodeLookProduct(doc.Data)
	return nil
}

// sanitizeItem fills a missing file reference: the target path stem plus the
// item extension when a target is set, otherwise the first sibling file with
// a matching extension.
func (l *LookFile) sanitizeItem(fields map[string]any, siblings map[string]string) {
	if file, ok := fields["file"].(string); ok && file != "" {
		return
	}
	ext, _ := fields["ext"].(string)

	if l.targetPath != "" {
		stem := strings.TrimSuffix(filepath.Base(l.targetPath), filepath.Ext(l.targetPath))
		fields["file"] = stem + "." + ext
		l.log.Info("added missing look item file path",
			logging.Args(logging.String("file", fields["file"].(string)))...)
		return
	}

	for _, path := range sortedValues(siblings) {
		if strings.HasSuffix(path, "."+ext) {
			fields["file"] = path
			l.log.Info("added missing look item file path",
				logging.Args(logging.String("file", path))...)
			return
		}
	}

	name, _ := fields["name"].(string)
	l.log.Warn("look item file not found",
		logging.Args(logging.String("name", name), logging.String("ext", ext))...)
}

// sortedValues returns map values ordered by key, keeping sibling scans
// deterministic.
func sortedValues(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, m[k])
	}
	return out
}

// OiiotoolArgs returns the literal oiiotool arguments for the look product.
func (l *LookFile) OiiotoolArgs() []string {
	var args []string
	for _, transform := range l.product.OCIOTransforms() {
		switch typed := transform.(type) {
		case *ocio.FileTransform:
			args = append(args, "--ociofiletransform", typed.Src)
		case *ocio.ColorSpaceTransform:
			args = append(args, "--colorconvert", typed.Src, typed.Dst)
		}
	}
	return args
}
