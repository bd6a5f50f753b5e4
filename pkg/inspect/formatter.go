package inspect

import (
	"errors"
	"fmt"
	"strings"

	"github.com/multibody-modeling/mbm-go/pkg/feature"
	"github.com/multibody-modeling/mbm-go/pkg/placement"
)

// Formatter formats inspection output.
type Formatter struct {
	// ShowPlacement includes required placement types and bound values
	ShowPlacement bool

	// ShowIndices includes subfeature indices alongside names
	ShowIndices bool

	// IndentWidth is the number of spaces per indent level
	IndentWidth int
}

// NewFormatter creates a new Formatter with default settings.
func NewFormatter() *Formatter {
	return &Formatter{
		ShowPlacement: true,
		ShowIndices:   true,
		IndentWidth:   2,
	}
}

// Indent returns the content with indentation.
func (f *Formatter) Indent(depth int, content string) string {
	width := f.IndentWidth
	if width == 0 {
		width = 2
	}
	indent := strings.Repeat(" ", depth*width)
	return indent + content
}

// FormatValue formats a placement value for display.
func (f *Formatter) FormatValue(v placement.Value) string {
	if v == nil {
		return "unplaced"
	}
	return v.String()
}

// FormatPlacement formats the placement column of a feature line.
func (f *Formatter) FormatPlacement(info *FeatureInfo) string {
	if info.Placement.IsNone() {
		return "-"
	}
	return fmt.Sprintf("%s = %s", info.Placement, f.FormatValue(info.Value))
}

// FormatFeatureLine formats a single feature without its subfeatures.
func (f *Formatter) FormatFeatureLine(info *FeatureInfo) string {
	var sb strings.Builder
	if f.ShowIndices && info.Index >= 0 {
		sb.WriteString(fmt.Sprintf("[%d] ", info.Index))
	}
	sb.WriteString(info.Name)
	sb.WriteString(" : ")
	sb.WriteString(info.TypeName)
	if info.Joint != "" {
		sb.WriteString(fmt.Sprintf("(%s)", info.Joint))
	}
	if f.ShowPlacement {
		sb.WriteString("  ")
		sb.WriteString(f.FormatPlacement(info))
	}
	return sb.String()
}

// FormatFeature formats a feature and its recorded subfeatures as an
// indented tree.
func (f *Formatter) FormatFeature(info *FeatureInfo) string {
	var sb strings.Builder
	f.writeFeature(&sb, info, 0)
	return sb.String()
}

func (f *Formatter) writeFeature(sb *strings.Builder, info *FeatureInfo, depth int) {
	sb.WriteString(f.Indent(depth, f.FormatFeatureLine(info)))
	sb.WriteString("\n")
	for idx := range info.Subfeatures {
		f.writeFeature(sb, &info.Subfeatures[idx], depth+1)
	}
}

// FormatTree formats a complete tree with a summary header.
func (f *Formatter) FormatTree(tree *TreeInfo) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Tree %s (%d features, %d unplaced)\n", tree.TreeID, tree.Count, tree.Unplaced))
	f.writeFeature(&sb, &tree.Root, 1)
	return sb.String()
}

// FormatCheck formats the result of a placement check, one line per
// unplaced feature.
func (f *Formatter) FormatCheck(err error) string {
	if err == nil {
		return "all required placements bound"
	}

	errs := []error{err}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		errs = joined.Unwrap()
	}

	var sb strings.Builder
	for _, e := range errs {
		if errors.Is(e, feature.ErrUnplacedRequiredFeature) {
			sb.WriteString("  unplaced: ")
		} else {
			sb.WriteString("  error: ")
		}
		sb.WriteString(e.Error())
		sb.WriteString("\n")
	}
	return sb.String()
}

// FormatKinds lists every constructible kind with its required placement.
func (f *Formatter) FormatKinds() string {
	var sb strings.Builder
	for _, k := range feature.ConcreteKinds() {
		sb.WriteString(f.Indent(1, fmt.Sprintf("%-15s %s", k, k.RequiredPlacementType())))
		sb.WriteString("\n")
	}
	return sb.String()
}
