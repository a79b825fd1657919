package svgicon

import (
	"image/color"
	"strings"
	"testing"
)

func parseIcon(t *testing.T, svg string, mode ErrorMode) *SvgIcon {
	t.Helper()
	icon, err := ReadIconStream(strings.NewReader(svg), mode)
	if err != nil {
		t.Fatal(err)
	}
	return icon
}

func TestParseShapes(t *testing.T) {
	icon := parseIcon(t, `<svg viewBox="0 0 100 100">
		<rect x="10" y="10" width="50" height="30" fill="#ff0000"/>
		<circle cx="50" cy="50" r="20"/>
		<line x1="0" y1="0" x2="100" y2="100"/>
		<polygon points="10,10 90,10 50,90"/>
		<path d="M 10 10 L 90 90 Z"/>
	</svg>`, StrictErrorMode)

	if len(icon.Elements) != 5 {
		t.Fatalf("got %d elements, want 5", len(icon.Elements))
	}
	for i, el := range icon.Elements {
		if el.Kind != KindPath {
			t.Errorf("element %d: kind %d, want KindPath", i, el.Kind)
		}
		if len(el.Path) == 0 {
			t.Errorf("element %d: empty path", i)
		}
	}
	red, ok := icon.Elements[0].Style.FillerColor.(PlainColor)
	if !ok || red.R != 0xFF || red.G != 0 || red.B != 0 {
		t.Errorf("rect fill: got %v, want plain red", icon.Elements[0].Style.FillerColor)
	}
	if icon.ViewBox.W != 100 || icon.ViewBox.H != 100 {
		t.Errorf("viewBox: got %v", icon.ViewBox)
	}
}

func TestParseArcPath(t *testing.T) {
	icon := parseIcon(t, `<svg viewBox="0 0 20 10">
		<path d="M 0 0 A 5 5 0 0 1 10 0"/>
	</svg>`, StrictErrorMode)
	if len(icon.Elements) != 1 {
		t.Fatalf("got %d elements, want 1", len(icon.Elements))
	}
	d := icon.Elements[0].Path.ToSVGPath()
	if !strings.HasPrefix(d, "M") || strings.Count(d, "L") < 3 {
		t.Errorf("arc should flatten to a polyline, got %q", d)
	}
}

func TestParseGradient(t *testing.T) {
	icon := parseIcon(t, `<svg viewBox="0 0 100 100">
		<defs>
			<linearGradient id="g" x1="0" y1="0" x2="1" y2="0">
				<stop offset="0%" stop-color="#ff0000"/>
				<stop offset="100%" stop-color="#0000ff" stop-opacity="0.5"/>
			</linearGradient>
		</defs>
		<rect width="100" height="100" fill="url(#g)"/>
	</svg>`, StrictErrorMode)

	if len(icon.Elements) != 1 {
		t.Fatalf("got %d elements, want 1", len(icon.Elements))
	}
	grad, ok := icon.Elements[0].Style.FillerColor.(Gradient)
	if !ok {
		t.Fatalf("fill: got %T, want Gradient", icon.Elements[0].Style.FillerColor)
	}
	if grad.IsRadial() {
		t.Error("gradient should be linear")
	}
	if len(grad.Stops) != 2 {
		t.Fatalf("got %d stops, want 2", len(grad.Stops))
	}
	if grad.Stops[1].Offset != 1 || grad.Stops[1].Opacity != 0.5 {
		t.Errorf("second stop: %+v", grad.Stops[1])
	}
}

func TestParseUseDefs(t *testing.T) {
	icon := parseIcon(t, `<svg viewBox="0 0 10 10">
		<defs><rect id="r" x="0" y="0" width="4" height="4"/></defs>
		<use href="#r" x="2" y="2"/>
	</svg>`, StrictErrorMode)
	if len(icon.Elements) != 1 {
		t.Fatalf("got %d elements, want 1", len(icon.Elements))
	}
	d := icon.Elements[0].Path.ToSVGPath()
	// the use offset shifts the replayed rectangle
	if !strings.Contains(d, "M2.000,2.000") {
		t.Errorf("use offset not applied: %q", d)
	}
}

func TestParseImageElement(t *testing.T) {
	icon := parseIcon(t, `<svg viewBox="0 0 10 10">
		<image href="photo.png" x="1" y="2" width="3" height="4"/>
	</svg>`, StrictErrorMode)
	if len(icon.Elements) != 1 {
		t.Fatalf("got %d elements, want 1", len(icon.Elements))
	}
	el := icon.Elements[0]
	if el.Kind != KindImage {
		t.Fatalf("kind: got %d, want KindImage", el.Kind)
	}
	// attributes stay unresolved until render time
	for attr, want := range map[string]string{
		"href": "photo.png", "x": "1", "y": "2", "width": "3", "height": "4",
	} {
		if el.Attrs[attr] != want {
			t.Errorf("attr %s: got %q, want %q", attr, el.Attrs[attr], want)
		}
	}
}

func TestParseStyleAttributes(t *testing.T) {
	icon := parseIcon(t, `<svg viewBox="0 0 100 100">
		<rect width="10" height="10"
			style="fill:none;stroke:#00ff00;stroke-width:3;stroke-linecap:round"
			opacity="0.5"/>
	</svg>`, StrictErrorMode)
	style := icon.Elements[0].Style
	if style.FillerColor != nil {
		t.Errorf("fill none: got %v", style.FillerColor)
	}
	green, ok := style.LinerColor.(PlainColor)
	if !ok || green.G != 0xFF {
		t.Errorf("stroke: got %v", style.LinerColor)
	}
	if style.LineWidth != 3 {
		t.Errorf("stroke-width: got %g", style.LineWidth)
	}
	if style.Join.TrailLineCap != RoundCap {
		t.Errorf("linecap: got %v", style.Join.TrailLineCap)
	}
	if style.FillOpacity != 0.5 || style.LineOpacity != 0.5 {
		t.Errorf("opacity: got %g, %g", style.FillOpacity, style.LineOpacity)
	}
}

func TestErrorModes(t *testing.T) {
	const badIcon = `<svg viewBox="0 0 10 10"><video src="x"/></svg>`
	if _, err := ReadIconStream(strings.NewReader(badIcon), StrictErrorMode); err == nil {
		t.Error("strict mode should reject unknown elements")
	}
	if _, err := ReadIconStream(strings.NewReader(badIcon), IgnoreErrorMode); err != nil {
		t.Errorf("ignore mode: %s", err)
	}
	if _, err := ReadIconStream(strings.NewReader("not xml at all"), IgnoreErrorMode); err == nil {
		t.Error("non-XML input should be rejected")
	}
}

func TestParseLength(t *testing.T) {
	for _, c := range []struct {
		in        string
		reference float64
		want      float64
	}{
		{"10", 100, 10},
		{"10px", 100, 10},
		{"50%", 200, 100},
		{"72pt", 0, 96},
		{"1in", 0, 96},
		{"2.54cm", 0, 96},
	} {
		got, err := ParseLength(c.in, c.reference)
		if err != nil {
			t.Errorf("ParseLength(%q): %s", c.in, err)
			continue
		}
		if diff := got - c.want; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("ParseLength(%q, %g): got %g, want %g", c.in, c.reference, got, c.want)
		}
	}
	if _, err := ParseLength("wide", 100); err == nil {
		t.Error("malformed length should be an error")
	}
}

func TestParseSVGColor(t *testing.T) {
	for _, c := range []struct {
		in         string
		want       [4]uint8
		wantNoDraw bool
	}{
		{in: "#fff", want: [4]uint8{255, 255, 255, 255}},
		{in: "#ff0000", want: [4]uint8{255, 0, 0, 255}},
		{in: "rgb(0, 128, 255)", want: [4]uint8{0, 128, 255, 255}},
		{in: "rgb(100%, 0%, 0%)", want: [4]uint8{255, 0, 0, 255}},
		{in: "rgba(10, 20, 30, 0.5)", want: [4]uint8{10, 20, 30, 127}},
		{in: "steelblue", want: [4]uint8{70, 130, 180, 255}},
		{in: "none", wantNoDraw: true},
		{in: "transparent", wantNoDraw: true},
	} {
		got, err := parseSVGColor(c.in)
		if err != nil {
			t.Errorf("parseSVGColor(%q): %s", c.in, err)
			continue
		}
		if got.valid == c.wantNoDraw {
			t.Errorf("parseSVGColor(%q): valid = %v", c.in, got.valid)
			continue
		}
		if !c.wantNoDraw && got.color != (color.NRGBA{R: c.want[0], G: c.want[1], B: c.want[2], A: c.want[3]}) {
			t.Errorf("parseSVGColor(%q): got %v, want %v", c.in, got.color, c.want)
		}
	}
	for _, bad := range []string{"#ff00", "rgb(1,2)", "sort-of-blue"} {
		if _, err := parseSVGColor(bad); err == nil {
			t.Errorf("parseSVGColor(%q): expected an error", bad)
		}
	}
}

func TestParsePercentageAxes(t *testing.T) {
	// horizontal percentages resolve against the viewBox width,
	// vertical ones against its height
	icon := parseIcon(t, `<svg viewBox="0 0 200 100">
		<rect x="10%" y="10%" width="50%" height="50%"/>
	</svg>`, StrictErrorMode)
	d := icon.Elements[0].Path.ToSVGPath()
	if !strings.Contains(d, "M20.000,10.000") {
		t.Errorf("percentages resolved against the wrong axis: %q", d)
	}
}
