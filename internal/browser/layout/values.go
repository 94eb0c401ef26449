// File: internal/browser/layout/values.go
package layout

import (
	"math"

	"github.com/Pablo96/robinson/internal/browser/parser"
	"github.com/Pablo96/robinson/internal/browser/style"
	"github.com/Pablo96/robinson/internal/observability"
	"go.uber.org/zap"
)

// Border width keywords, as mapped by common engines.
const (
	borderThin   = 1.0
	borderMedium = 3.0
	borderThick  = 5.0
)

// length resolves a property to pixels against reference. The auto
// keyword yields NaN. Anything else that does not resolve yields 0.
func length(sn *style.StyledNode, property string, reference float64) float64 {
	if sn == nil {
		return 0
	}
	v, ok := sn.Value(property)
	if !ok {
		return 0
	}
	if v.IsAuto() {
		return auto
	}
	px, ok := v.ToPx(reference)
	if !ok {
		observability.GetLogger().Debug("Unresolved length treated as zero",
			zap.String("property", property), zap.Stringer("value", v))
		return 0
	}
	return px
}

// edge resolves a padding or margin side where auto is not meaningful.
func edge(sn *style.StyledNode, property string, reference float64) float64 {
	if v := length(sn, property, reference); !isAuto(v) {
		return v
	}
	return 0
}

// borderWidth resolves border-<side>-width. Percentages are not valid
// border widths and resolve to 0.
func borderWidth(sn *style.StyledNode, side string) float64 {
	if sn == nil {
		return 0
	}
	v, ok := sn.Value("border-" + side + "-width")
	if !ok {
		return 0
	}
	switch {
	case v.IsKeyword("thin"):
		return borderThin
	case v.IsKeyword("medium"):
		return borderMedium
	case v.IsKeyword("thick"):
		return borderThick
	case v.Kind == parser.LengthValue && v.Unit == parser.UnitPx:
		return nonNegative(v.Length)
	}
	return 0
}

func nonNegative(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	return v
}

// zeroIfAuto treats auto as 0 when summing.
func zeroIfAuto(v float64) float64 {
	if isAuto(v) {
		return 0
	}
	return v
}

// resolveColors copies the paint colors of the styled node into the box.
// A border color of currentcolor takes the value of the color property.
func (b *LayoutBox) resolveColors() {
	sn := b.styled
	if sn == nil {
		return
	}
	if v, ok := sn.Value("background-color"); ok && v.Kind == parser.ColorValue && v.Color.A > 0 {
		c := v.Color
		b.Background = &c
	}
	v, ok := sn.Value("border-color")
	if !ok || v.IsKeyword("currentcolor") {
		v, ok = sn.Value("color")
	}
	if ok && v.Kind == parser.ColorValue && v.Color.A > 0 {
		c := v.Color
		b.BorderColor = &c
	}
}

// resolveVerticalEdges fills the top and bottom edges. Percentages resolve
// against the containing block width and auto margins are 0.
func (b *LayoutBox) resolveVerticalEdges(cb Rect) {
	sn := b.styled
	d := &b.Dimensions
	d.Margin.Top = edge(sn, "margin-top", cb.Width)
	d.Margin.Bottom = edge(sn, "margin-bottom", cb.Width)
	d.Border.Top = borderWidth(sn, "top")
	d.Border.Bottom = borderWidth(sn, "bottom")
	d.Padding.Top = nonNegative(edge(sn, "padding-top", cb.Width))
	d.Padding.Bottom = nonNegative(edge(sn, "padding-bottom", cb.Width))
}

// specifiedHeight returns the explicit content height, or NaN when the
// height is auto. Percentages need a definite containing block height.
func (b *LayoutBox) specifiedHeight(cb Rect) float64 {
	if b.styled == nil {
		return auto
	}
	v, ok := b.styled.Value("height")
	if !ok || v.IsAuto() {
		return auto
	}
	if v.Kind == parser.LengthValue && v.Unit == parser.UnitPercent && isAuto(cb.Height) {
		return auto
	}
	return nonNegative(length(b.styled, "height", cb.Height))
}
