// Package textbook holds the reading state of the course textbook viewer:
// the current page, zoom level and rotation.
package textbook

import (
	"fmt"

	"github.com/xamuil2/digitalludus/internal/catalog"
)

const (
	MinZoom      = 50
	MaxZoom      = 200
	ZoomStep     = 25
	DefaultZoom  = 100
	RotationStep = 90
)

// View is an immutable viewer state. Pages is the page count of the
// document, or 0 when it is not known and only the lower bound applies.
type View struct {
	Page     int `json:"page"`
	Pages    int `json:"pages,omitempty"`
	Zoom     int `json:"zoom"`
	Rotation int `json:"rotation"`
}

// NewView opens a document of the given page count at page 1.
func NewView(pages int) View {
	return View{Page: 1, Pages: max(pages, 0), Zoom: DefaultZoom}
}

// Normalize builds a valid view from untrusted values: the page is clamped
// to the document, zoom is snapped to a step inside [MinZoom, MaxZoom] and
// rotation to a multiple of RotationStep in [0, 360).
func Normalize(page, zoom, rotation, pages int) View {
	v := NewView(pages)
	v = v.GoTo(page)
	v.Zoom = snapZoom(zoom)
	v.Rotation = snapRotation(rotation)
	return v
}

// GoTo moves to page p, clamped to the document.
func (v View) GoTo(p int) View {
	p = max(p, 1)
	if v.Pages > 0 {
		p = min(p, v.Pages)
	}
	v.Page = p
	return v
}

// Next and Prev turn one page.
func (v View) Next() View { return v.GoTo(v.Page + 1) }
func (v View) Prev() View { return v.GoTo(v.Page - 1) }

// HasPrev reports whether there is a page before the current one.
func (v View) HasPrev() bool { return v.Page > 1 }

// HasNext reports whether there is a page after the current one.
func (v View) HasNext() bool { return v.Pages == 0 || v.Page < v.Pages }

// ZoomIn and ZoomOut change the zoom by one step within the limits.
func (v View) ZoomIn() View {
	v.Zoom = min(v.Zoom+ZoomStep, MaxZoom)
	return v
}

func (v View) ZoomOut() View {
	v.Zoom = max(v.Zoom-ZoomStep, MinZoom)
	return v
}

// Rotate turns the page a quarter clockwise.
func (v View) Rotate() View {
	v.Rotation = (v.Rotation + RotationStep) % 360
	return v
}

// OpenLesson jumps to the first textbook page of a lesson. Lessons with
// no page references leave the view unchanged.
func (v View) OpenLesson(l catalog.Lesson) View {
	if p := l.FirstPage(); p > 0 {
		return v.GoTo(p)
	}
	return v
}

// Scale is the zoom as a factor.
func (v View) Scale() float64 { return float64(v.Zoom) / 100 }

// Label renders the position line shown above the page.
func (v View) Label() string {
	if v.Pages > 0 {
		return fmt.Sprintf("Page %d of %d • %d%% zoom", v.Page, v.Pages, v.Zoom)
	}
	return fmt.Sprintf("Page %d • %d%% zoom", v.Page, v.Zoom)
}

func snapZoom(z int) int {
	if z == 0 {
		return DefaultZoom
	}
	z = min(max(z, MinZoom), MaxZoom)
	// round to the nearest step
	return MinZoom + ((z-MinZoom)+ZoomStep/2)/ZoomStep*ZoomStep
}

func snapRotation(r int) int {
	r %= 360
	if r < 0 {
		r += 360
	}
	return (r + RotationStep/2) / RotationStep * RotationStep % 360
}
