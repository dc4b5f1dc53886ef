package textbook

import (
	"testing"

	"github.com/xamuil2/digitalludus/internal/catalog"
)

func TestZoomLimits(t *testing.T) {
	v := NewView(10)
	for range 10 {
		v = v.ZoomIn()
	}
	if v.Zoom != MaxZoom {
		t.Errorf("zoom = %d, want %d", v.Zoom, MaxZoom)
	}
	for range 10 {
		v = v.ZoomOut()
	}
	if v.Zoom != MinZoom {
		t.Errorf("zoom = %d, want %d", v.Zoom, MinZoom)
	}
	if v.ZoomIn().Zoom != 75 {
		t.Errorf("one step up from 50 = %d, want 75", v.ZoomIn().Zoom)
	}
}

func TestRotate(t *testing.T) {
	v := NewView(0)
	want := []int{90, 180, 270, 0, 90}
	for i, w := range want {
		v = v.Rotate()
		if v.Rotation != w {
			t.Errorf("rotation after %d turns = %d, want %d", i+1, v.Rotation, w)
		}
	}
}

func TestPaging(t *testing.T) {
	v := NewView(3)
	if v.HasPrev() || v.Prev().Page != 1 {
		t.Errorf("prev from first page = %d", v.Prev().Page)
	}
	v = v.Next().Next().Next()
	if v.Page != 3 || v.HasNext() {
		t.Errorf("page = %d hasNext = %v, want 3 false", v.Page, v.HasNext())
	}
	if got := v.GoTo(-5).Page; got != 1 {
		t.Errorf("GoTo(-5) = %d, want 1", got)
	}

	open := NewView(0).GoTo(500)
	if open.Page != 500 || !open.HasNext() {
		t.Errorf("unknown page count should not cap: %+v", open)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		page, zoom, rotation, pages int
		want                        View
	}{
		{0, 0, 0, 0, View{Page: 1, Zoom: 100}},
		{5, 110, 45, 10, View{Page: 5, Pages: 10, Zoom: 100, Rotation: 90}},
		{50, 20, -90, 10, View{Page: 10, Pages: 10, Zoom: 50, Rotation: 270}},
		{2, 999, 360, 0, View{Page: 2, Zoom: 200, Rotation: 0}},
		{3, 63, 315, 0, View{Page: 3, Zoom: 75, Rotation: 0}},
	}
	for _, tt := range tests {
		got := Normalize(tt.page, tt.zoom, tt.rotation, tt.pages)
		if got != tt.want {
			t.Errorf("Normalize(%d, %d, %d, %d) = %+v, want %+v", tt.page, tt.zoom, tt.rotation, tt.pages, got, tt.want)
		}
	}
}

func TestOpenLesson(t *testing.T) {
	v := NewView(0).OpenLesson(catalog.Lesson{PageNumbers: []int{12, 13}})
	if v.Page != 12 {
		t.Errorf("page = %d, want 12", v.Page)
	}
	if got := v.OpenLesson(catalog.Lesson{}).Page; got != 12 {
		t.Errorf("lesson without pages moved the view to %d", got)
	}
}

func TestLabel(t *testing.T) {
	if got := NewView(0).Label(); got != "Page 1 • 100% zoom" {
		t.Errorf("label = %q", got)
	}
	if got := NewView(8).GoTo(2).ZoomIn().Label(); got != "Page 2 of 8 • 125% zoom" {
		t.Errorf("label = %q", got)
	}
}
