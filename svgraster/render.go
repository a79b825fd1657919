package svgraster

import (
	"fmt"
	"image"
	"log"

	"svgrender/svgicon"
	"svgrender/svgpath"
)

// Context carries the state shared by the element renderers: the
// target pixel surface, its dimensions, and the resources needed to
// resolve lazy references such as image hrefs.
type Context struct {
	// Width and Height are the canvas dimensions, in pixels.
	// Horizontal percentages resolve against Width, vertical ones
	// against Height.
	Width, Height float64

	// Dx and Dy shift image placement on the canvas.
	Dx, Dy float64

	// Img is the surface every element draws onto.
	Img *image.RGBA

	driver    *Renderer
	loader    Loader
	errorMode svgicon.ErrorMode
	transform svgpath.Matrix2D
	depth     int
}

// renderer draws one kind of element onto the context surface.
type renderer interface {
	render(c *Context, opts svgicon.Options, element *svgicon.Element) error
}

// renderers maps each element kind to its implementation: dispatch is
// a pure lookup, without type inspection of the element payload.
var renderers = map[svgicon.Kind]renderer{
	svgicon.KindPath:  pathRenderer{},
	svgicon.KindImage: imageRenderer{},
}

// renderIcon walks the document elements in order, so that later
// elements paint over earlier ones.
func (c *Context) renderIcon(icon *svgicon.SvgIcon) error {
	for i := range icon.Elements {
		element := &icon.Elements[i]
		r, ok := renderers[element.Kind]
		if !ok {
			if err := c.handleError("no renderer for element kind %d", element.Kind); err != nil {
				return err
			}
			continue
		}
		if err := r.render(c, element.Attrs, element); err != nil {
			return err
		}
	}
	return nil
}

// ResolveX resolves a horizontal length against the canvas width.
func (c *Context) ResolveX(v string) (float64, error) {
	return svgicon.ParseLength(v, c.Width)
}

// ResolveY resolves a vertical length against the canvas height.
func (c *Context) ResolveY(v string) (float64, error) {
	return svgicon.ParseLength(v, c.Height)
}

func (c *Context) handleError(format string, args ...interface{}) error {
	switch c.errorMode {
	case svgicon.StrictErrorMode:
		return fmt.Errorf(format, args...)
	case svgicon.WarnErrorMode:
		log.Printf(format, args...)
	}
	return nil
}

// pathRenderer rasterizes compiled path geometry through the rasterx
// driver; the heavy lifting lives in svgicon.DrawTransformed.
type pathRenderer struct{}

func (pathRenderer) render(c *Context, opts svgicon.Options, element *svgicon.Element) error {
	element.DrawTransformed(c.driver, 1.0, c.transform)
	return nil
}
