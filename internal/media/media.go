package media

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"lutforge/internal/faults"
)

// Defaults applied by NewImageInfo for fields the caller leaves zero.
const (
	DefaultWidth    = 1920
	DefaultHeight   = 1080
	DefaultChannels = 3
	DefaultFPS      = 24.0
	DefaultPAR      = 1.0
	DefaultTimecode = "00:00:00:00"
)

// ImageInfo is externally supplied metadata for one frame file.
type ImageInfo struct {
	Path string

	Width         int
	Height        int
	OriginX       int
	OriginY       int
	DisplayWidth  int
	DisplayHeight int
	Channels      int
	PAR           float64
	FPS           float64
	Timecode      string
}

// NewImageInfo returns metadata for the given frame path with every unset
// field defaulted. The path is required.
func NewImageInfo(path string, info ImageInfo) (ImageInfo, error) {
	if path == "" {
		return ImageInfo{}, faults.Wrap(faults.ErrValidation, "media", "new image info",
			"path is required", nil)
	}
	info.Path = filepath.ToSlash(path)
	if info.Width == 0 {
		info.Width = DefaultWidth
	}
	if info.Height == 0 {
		info.Height = DefaultHeight
	}
	if info.DisplayWidth == 0 {
		info.DisplayWidth = info.Width
	}
	if info.DisplayHeight == 0 {
		info.DisplayHeight = info.Height
	}
	if info.Channels == 0 {
		info.Channels = DefaultChannels
	}
	if info.PAR == 0 {
		info.PAR = DefaultPAR
	}
	if info.FPS == 0 {
		info.FPS = DefaultFPS
	}
	if info.Timecode == "" {
		info.Timecode = DefaultTimecode
	}
	return info, nil
}

// Filename returns the file name with extension.
func (i ImageInfo) Filename() string {
	return filepath.Base(i.Path)
}

// Extension returns the file extension including the dot.
func (i ImageInfo) Extension() string {
	return filepath.Ext(i.Path)
}

var frameNumberPattern = regexp.MustCompile(`\.(\d+)\.`)

// FrameNumber extracts the frame number from a "name.0001.ext" style
// filename. More than one numeric segment is ambiguous and rejected.
func (i ImageInfo) FrameNumber() (int, error) {
	matches := frameNumberPattern.FindAllStringSubmatch(i.Filename(), -1)
	switch len(matches) {
	case 0:
		return 0, faults.Wrap(faults.ErrValidation, "media", "frame number",
			"no frame number in "+i.Filename(), nil)
	case 1:
		return strconv.Atoi(matches[0][1])
	default:
		return 0, faults.Wrap(faults.ErrValidation, "media", "frame number",
			"multiple frame numbers in "+i.Filename(), nil)
	}
}

// Sequence is an ordered run of frames sharing one basename in one directory.
type Sequence struct {
	Dir    string
	Frames []ImageInfo
}

// Scan groups the EXR files directly under dir into sequences keyed by their
// leading basename segment. Frames inside each sequence are ordered by frame
// number; files without a parseable frame number are skipped.
func Scan(dir string) ([]Sequence, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, faults.Wrap(faults.ErrConfiguration, "media", "scan", dir, err)
	}

	groups := map[string][]ImageInfo{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".exr") {
			continue
		}
		info, err := NewImageInfo(filepath.Join(dir, entry.Name()), ImageInfo{})
		if err != nil {
			continue
		}
		if _, err := info.FrameNumber(); err != nil {
			continue
		}
		key := strings.SplitN(entry.Name(), ".", 2)[0]
		groups[key] = append(groups[key], info)
	}

	keys := make([]string, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	sequences := make([]Sequence, 0, len(keys))
	for _, key := range keys {
		frames := groups[key]
		sort.Slice(frames, func(i, j int) bool {
			a, _ := frames[i].FrameNumber()
			b, _ := frames[j].FrameNumber()
			return a < b
		})
		sequences = append(sequences, Sequence{Dir: filepath.ToSlash(dir), Frames: frames})
	}
	return sequences, nil
}

// StartFrame returns the lowest frame number.
func (s Sequence) StartFrame() int {
	if len(s.Frames) == 0 {
		return 0
	}
	n, _ := s.Frames[0].FrameNumber()
	return n
}

// EndFrame returns the highest frame number.
func (s Sequence) EndFrame() int {
	if len(s.Frames) == 0 {
		return 0
	}
	n, _ := s.Frames[len(s.Frames)-1].FrameNumber()
	return n
}

// Padding returns the digit count of the first frame's number as written in
// its filename.
func (s Sequence) Padding() int {
	if len(s.Frames) == 0 {
		return 0
	}
	match := frameNumberPattern.FindStringSubmatch(s.Frames[0].Filename())
	if match == nil {
		return 0
	}
	return len(match[1])
}

// FramesMissing reports whether the frame range has gaps.
func (s Sequence) FramesMissing() bool {
	if len(s.Frames) == 0 {
		return false
	}
	expected := s.EndFrame() - s.StartFrame() + 1
	return expected != len(s.Frames)
}

func (s Sequence) basename() string {
	return strings.SplitN(s.Frames[0].Filename(), ".", 2)[0]
}

// FormatString returns the printf-style frame pattern ffmpeg consumes, for
// example "plate.%04d.exr".
func (s Sequence) FormatString() string {
	if len(s.Frames) == 0 {
		return ""
	}
	return fmt.Sprintf("%s.%%0%dd%s", s.basename(), s.Padding(), s.Frames[0].Extension())
}

// HashString returns the range pattern oiiotool consumes, for example
// "plate.1001-1096#.exr".
func (s Sequence) HashString() string {
	if len(s.Frames) == 0 {
		return ""
	}
	return fmt.Sprintf("%s.%d-%d#%s", s.basename(), s.StartFrame(), s.EndFrame(), s.Frames[0].Extension())
}
