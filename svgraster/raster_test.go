package svgraster

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"svgrender/svgicon"
)

// onePixelPNG returns a data URI holding a 1x1 image of the given color.
func onePixelPNG(t *testing.T, c color.RGBA) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.SetRGBA(0, 0, c)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestDecodeDataURI(t *testing.T) {
	for _, c := range []struct {
		uri  string
		want string
	}{
		{"data:image/png;base64,QUJD", "ABC"},
		{"data:text/plain,hello", "hello"},
		{"data:image/svg+xml,<svg></svg>", "<svg></svg>"},
	} {
		if got := decodeDataURI(c.uri); string(got) != c.want {
			t.Errorf("decodeDataURI(%q): got %q, want %q", c.uri, got, c.want)
		}
	}
	for _, bad := range []string{
		"data:image/png;base64",          // no payload at all
		"data:image/png;base64,!!not64!", // broken base64
	} {
		if got := decodeDataURI(bad); got != nil {
			t.Errorf("decodeDataURI(%q): got %q, want nil", bad, got)
		}
	}
}

func TestIsVectorDocument(t *testing.T) {
	for _, c := range []struct {
		data string
		want bool
	}{
		{`<svg viewBox="0 0 1 1"></svg>`, true},
		{`<?xml version="1.0"?><svg></svg>`, true},
		{`</svg><svg`, false}, // closing tag must follow the opening one
		{`<svg without an end`, false},
		{"\x89PNG\r\n\x1a\n", false},
	} {
		if got := isVectorDocument([]byte(c.data)); got != c.want {
			t.Errorf("isVectorDocument(%q): got %v, want %v", c.data, got, c.want)
		}
	}
}

func TestResolveAxes(t *testing.T) {
	c := &Context{Width: 200, Height: 100}
	if x, err := c.ResolveX("10%"); err != nil || x != 20 {
		t.Errorf("ResolveX: got %g, %v", x, err)
	}
	if y, err := c.ResolveY("10%"); err != nil || y != 10 {
		t.Errorf("ResolveY: got %g, %v", y, err)
	}
	if x, err := c.ResolveX("42"); err != nil || x != 42 {
		t.Errorf("ResolveX plain: got %g, %v", x, err)
	}
}

func TestRenderPaths(t *testing.T) {
	const doc = `<svg viewBox="0 0 10 10"><rect width="10" height="10" fill="#00ff00"/></svg>`
	img, err := RasterSVGIconToImage(strings.NewReader(doc), nil)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 10 || img.Bounds().Dy() != 10 {
		t.Fatalf("canvas: got %v", img.Bounds())
	}
	px := img.RGBAAt(5, 5)
	if px.G < 200 || px.A < 200 {
		t.Errorf("center pixel: got %v, want green", px)
	}
}

func TestRenderGradient(t *testing.T) {
	const doc = `<svg viewBox="0 0 100 10">
		<defs>
			<linearGradient id="g" x1="0" y1="0" x2="1" y2="0">
				<stop offset="0" stop-color="#ff0000"/>
				<stop offset="1" stop-color="#0000ff"/>
			</linearGradient>
		</defs>
		<rect width="100" height="10" fill="url(#g)"/>
	</svg>`
	img, err := RasterSVGIconToImage(strings.NewReader(doc), nil)
	if err != nil {
		t.Fatal(err)
	}
	left, right := img.RGBAAt(5, 5), img.RGBAAt(95, 5)
	if left.R <= left.B {
		t.Errorf("left edge: got %v, want mostly red", left)
	}
	if right.B <= right.R {
		t.Errorf("right edge: got %v, want mostly blue", right)
	}
}

func TestRenderStroke(t *testing.T) {
	const doc = `<svg viewBox="0 0 20 20">
		<line x1="0" y1="10" x2="20" y2="10" style="stroke:#000000;stroke-width:4"/>
	</svg>`
	img, err := RasterSVGIconToImage(strings.NewReader(doc), nil)
	if err != nil {
		t.Fatal(err)
	}
	if px := img.RGBAAt(10, 10); px.A < 200 {
		t.Errorf("on the stroke: got %v, want opaque", px)
	}
	if px := img.RGBAAt(10, 2); px.A != 0 {
		t.Errorf("off the stroke: got %v, want transparent", px)
	}
}

func TestRenderRasterImage(t *testing.T) {
	uri := onePixelPNG(t, color.RGBA{R: 0xFF, A: 0xFF})
	doc := fmt.Sprintf(`<svg viewBox="0 0 100 50">
		<image href="%s" x="0" y="0" width="50" height="25"/>
	</svg>`, uri)
	img, err := RasterSVGIconToImage(strings.NewReader(doc), nil)
	if err != nil {
		t.Fatal(err)
	}
	if px := img.RGBAAt(25, 12); px.R < 200 || px.A < 200 {
		t.Errorf("inside the image: got %v, want red", px)
	}
	if px := img.RGBAAt(75, 40); px.A != 0 {
		t.Errorf("outside the image: got %v, want transparent", px)
	}
}

func TestRenderImagePercentGeometry(t *testing.T) {
	// width resolves against the canvas width, height against its height
	uri := onePixelPNG(t, color.RGBA{B: 0xFF, A: 0xFF})
	doc := fmt.Sprintf(`<svg viewBox="0 0 200 100">
		<image href="%s" width="50%%" height="50%%"/>
	</svg>`, uri)
	img, err := RasterSVGIconToImage(strings.NewReader(doc), nil)
	if err != nil {
		t.Fatal(err)
	}
	if px := img.RGBAAt(99, 49); px.B < 200 {
		t.Errorf("inside the 100x50 image: got %v, want blue", px)
	}
	if px := img.RGBAAt(120, 20); px.A != 0 {
		t.Errorf("beyond the image width: got %v, want transparent", px)
	}
	if px := img.RGBAAt(50, 70); px.A != 0 {
		t.Errorf("beyond the image height: got %v, want transparent", px)
	}
}

func TestRenderNestedSVGImage(t *testing.T) {
	// a literal (not base64) svg payload triggers the recursive path
	const doc = `<svg viewBox="0 0 40 40">
		<image href="data:image/svg+xml,&lt;svg viewBox='0 0 10 10'&gt;&lt;rect width='10' height='10' fill='#0000ff'/&gt;&lt;/svg&gt;"
			x="0" y="0" width="20" height="20"/>
	</svg>`
	img, err := RasterSVGIconToImage(strings.NewReader(doc), nil)
	if err != nil {
		t.Fatal(err)
	}
	if px := img.RGBAAt(10, 10); px.B < 200 || px.A < 200 {
		t.Errorf("inside the nested svg: got %v, want blue", px)
	}
	if px := img.RGBAAt(30, 30); px.A != 0 {
		t.Errorf("outside the nested svg: got %v, want transparent", px)
	}
}

func TestRenderImageZeroSize(t *testing.T) {
	// zero or missing dimensions skip the element without error
	uri := onePixelPNG(t, color.RGBA{R: 0xFF, A: 0xFF})
	doc := fmt.Sprintf(`<svg viewBox="0 0 10 10">
		<image href="%s" width="0" height="5"/>
		<image href="%s"/>
	</svg>`, uri, uri)
	img, err := RasterSVGIconToImage(strings.NewReader(doc), nil)
	if err != nil {
		t.Fatal(err)
	}
	for x := 0; x < 10; x++ {
		for y := 0; y < 10; y++ {
			if px := img.RGBAAt(x, y); px.A != 0 {
				t.Fatalf("pixel %d,%d: got %v, want transparent", x, y, px)
			}
		}
	}
}

func TestRenderImageBrokenPayload(t *testing.T) {
	// an undecodable payload skips the element, the rest still renders
	const doc = `<svg viewBox="0 0 10 10">
		<image href="data:image/png;base64,QUJD" width="10" height="10"/>
		<rect width="10" height="10" fill="#ff0000"/>
	</svg>`
	img, err := RasterSVGIconToImage(strings.NewReader(doc), nil)
	if err != nil {
		t.Fatal(err)
	}
	if px := img.RGBAAt(5, 5); px.R < 200 {
		t.Errorf("rect after the broken image: got %v, want red", px)
	}
}

func TestRenderImageLoaderError(t *testing.T) {
	// loader failures are real errors, not skipped elements
	const doc = `<svg viewBox="0 0 10 10">
		<image href="missing.png" width="10" height="10"/>
	</svg>`
	wantErr := fmt.Errorf("missing.png is gone")
	loader := func(href string) ([]byte, error) { return nil, wantErr }
	if _, err := RasterSVGIconToImage(strings.NewReader(doc), loader); err != wantErr {
		t.Errorf("got %v, want the loader error", err)
	}
}

func TestRenderImageCycle(t *testing.T) {
	// a document embedding itself must terminate on the depth guard
	doc := []byte(`<svg viewBox="0 0 10 10">
		<image href="self.svg" width="10" height="10"/>
	</svg>`)
	loader := func(href string) ([]byte, error) { return doc, nil }

	if _, err := RasterSVGIconToImage(bytes.NewReader(doc), loader); err != nil {
		t.Errorf("ignore mode should swallow the depth limit: %s", err)
	}

	icon, err := svgicon.ReadIconStream(bytes.NewReader(doc), svgicon.StrictErrorMode)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := renderToImage(icon, 10, 10, loader, svgicon.StrictErrorMode, 0); err == nil {
		t.Error("strict mode should surface the depth limit")
	}
}
