package preprocess

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bimmerbailey/squash/internal/pattern"
)

var (
	// binaryImageRegex matches a load range: "0x1000 - 0x1fff <image>".
	binaryImageRegex = regexp.MustCompile(`^\s*0x[a-fA-F0-9]+\s+-\s+0x[a-fA-F0-9]+\s+`)

	systemImageRegex = regexp.MustCompile(`/System/Library/|/usr/lib/`)
)

// BinaryImagesHeader introduces the trailing binary images section.
const BinaryImagesHeader = "=== Binary Images ==="

// BinaryImages holds the load-range lines split out of a report.
type BinaryImages struct {
	// App lists application and plugin images verbatim, in input order.
	App []string `json:"app,omitempty" yaml:"app,omitempty"`

	// System counts images loaded from the OS library paths.
	System int `json:"system_omitted,omitempty" yaml:"system_omitted,omitempty"`
}

// IsBinaryImage reports whether line is a binary image load range.
func IsBinaryImage(line string) bool {
	return binaryImageRegex.MatchString(line)
}

// SplitBinaryImages separates binary image lines from the rest. The
// remaining lines keep their order.
func SplitBinaryImages(lines []string) ([]string, BinaryImages) {
	var images BinaryImages
	rest := make([]string, 0, len(lines))

	for _, line := range lines {
		switch {
		case !IsBinaryImage(line):
			rest = append(rest, line)
		case systemImageRegex.MatchString(line):
			images.System++
		default:
			images.App = append(images.App, line)
		}
	}
	return rest, images
}

// Empty reports whether no image was found.
func (b BinaryImages) Empty() bool {
	return len(b.App) == 0 && b.System == 0
}

// Lines returns the section lines: the header, every application image with
// its addresses folded to their display form, then the system image count.
func (b BinaryImages) Lines() []string {
	if b.Empty() {
		return nil
	}

	lines := []string{BinaryImagesHeader}
	for _, img := range b.App {
		lines = append(lines, foldAddresses(img))
	}
	if b.System > 0 {
		lines = append(lines, fmt.Sprintf("[%d system libraries omitted]", b.System))
	}
	return lines
}

func foldAddresses(line string) string {
	tokens := strings.Fields(line)
	for i, tok := range tokens {
		tokens[i] = pattern.Classify(tok).Display
	}
	return strings.Join(tokens, " ")
}
