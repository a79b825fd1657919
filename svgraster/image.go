package svgraster

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"io"
	"net/http"
	"os"
	"strings"

	xdraw "golang.org/x/image/draw"

	"svgrender/svgicon"

	// pixel formats an image element may reference
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// maxImageDepth bounds the nesting of SVG documents through image
// elements, cutting reference cycles.
const maxImageDepth = 8

// Loader fetches the bytes behind an image href. Data URIs never
// reach the loader: they are decoded in place.
type Loader func(href string) ([]byte, error)

// defaultLoader reads local files, and fetches http(s) urls.
func defaultLoader(href string) ([]byte, error) {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		resp, err := http.Get(href)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("fetching image %s: %s", href, resp.Status)
		}
		return io.ReadAll(resp.Body)
	}
	return os.ReadFile(href)
}

// decodeDataURI returns the payload of a data: URI, or nil if the
// URI is malformed. The payload is everything after the first comma,
// base64-decoded when the media type declares it.
func decodeDataURI(uri string) []byte {
	comma := strings.Index(uri, ",")
	if comma == -1 {
		return nil
	}
	meta, payload := uri[:comma], uri[comma+1:]
	if strings.Contains(meta, ";base64") {
		out, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil
		}
		return out
	}
	return []byte(payload)
}

// isVectorDocument sniffs the payload for an SVG document, which must
// be rendered recursively instead of decoded as pixels.
func isVectorDocument(data []byte) bool {
	start := bytes.Index(data, []byte("<svg"))
	return start != -1 && bytes.Contains(data[start:], []byte("</svg>"))
}

// imageRenderer composites embedded images onto the canvas. The
// element geometry is resolved lazily against the canvas dimensions,
// each coordinate along its own axis.
type imageRenderer struct{}

func (imageRenderer) render(c *Context, opts svgicon.Options, element *svgicon.Element) error {
	href := opts["href"]
	if href == "" {
		return c.handleError("image element without href is not drawn")
	}
	x, err := resolveAttr(opts, "x", c.ResolveX)
	if err != nil {
		return err
	}
	y, err := resolveAttr(opts, "y", c.ResolveY)
	if err != nil {
		return err
	}
	w, err := resolveAttr(opts, "width", c.ResolveX)
	if err != nil {
		return err
	}
	h, err := resolveAttr(opts, "height", c.ResolveY)
	if err != nil {
		return err
	}
	if w <= 0 || h <= 0 {
		// zero sized images are legal, just invisible
		return nil
	}
	x += c.Dx
	y += c.Dy

	var data []byte
	if strings.HasPrefix(href, "data:") {
		if data = decodeDataURI(href); data == nil {
			return c.handleError("invalid data URI in image element")
		}
	} else if data, err = c.loader(href); err != nil {
		// a missing resource is a real error, unlike a broken payload
		return err
	}

	if isVectorDocument(data) {
		if c.depth >= maxImageDepth {
			return c.handleError("image elements nest SVG documents deeper than %d", maxImageDepth)
		}
		nested, err := svgicon.ReadIconStream(bytes.NewReader(data), c.errorMode)
		if err != nil {
			return c.handleError("invalid nested SVG image: %s", err)
		}
		src, err := renderToImage(nested, int(w), int(h), c.loader, c.errorMode, c.depth+1)
		if err != nil {
			return err
		}
		c.compose(src, x, y, w, h)
		return nil
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		// a broken payload skips the element rather than failing the render
		return c.handleError("decoding image %s: %s", href, err)
	}
	c.compose(src, x, y, w, h)
	return nil
}

// resolveAttr resolves one length attribute, missing attributes
// defaulting to zero.
func resolveAttr(opts svgicon.Options, name string, resolve func(string) (float64, error)) (float64, error) {
	v, ok := opts[name]
	if !ok || v == "" {
		return 0, nil
	}
	return resolve(v)
}

// compose resamples src into the x, y, w, h rectangle of the canvas,
// compositing over what is already drawn.
func (c *Context) compose(src image.Image, x, y, w, h float64) {
	dst := image.Rect(int(x), int(y), int(x+w), int(y+h))
	xdraw.ApproxBiLinear.Scale(c.Img, dst, src, src.Bounds(), xdraw.Over, nil)
}
