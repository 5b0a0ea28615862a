package markup

import (
	"strings"
	"testing"
)

func TestConverter_ImageSources(t *testing.T) {
	converter := NewConverter(false)

	body := `<p>Intro</p>
<img src="http://example.com/a.jpg" alt="a">
<div><img src="/wp-content/uploads/b.png"><img alt="no source"></div>
<p><img src="http://example.com/a.jpg"></p>`

	srcs, err := converter.ImageSources(body)
	if err != nil {
		t.Fatal(err)
	}

	want := []string{
		"http://example.com/a.jpg",
		"/wp-content/uploads/b.png",
		"http://example.com/a.jpg",
	}
	if len(srcs) != len(want) {
		t.Fatalf("Expected %d sources, got %d: %v", len(want), len(srcs), srcs)
	}
	for i := range want {
		if srcs[i] != want[i] {
			t.Errorf("Source %d: expected '%s', got '%s'", i, want[i], srcs[i])
		}
	}
}

func TestConverter_ImageSources_MalformedHTML(t *testing.T) {
	converter := NewConverter(false)

	body := `<div><p>Unclosed <b>bold <img src="x.gif"><table><tr><td>cell</div>`

	srcs, err := converter.ImageSources(body)
	if err != nil {
		t.Fatalf("Malformed HTML should be tolerated, got %v", err)
	}
	if len(srcs) != 1 || srcs[0] != "x.gif" {
		t.Errorf("Expected [x.gif], got %v", srcs)
	}
}

func TestConverter_ImageSources_Empty(t *testing.T) {
	srcs, err := NewConverter(true).ImageSources("   ")
	if err != nil {
		t.Fatal(err)
	}
	if len(srcs) != 0 {
		t.Errorf("Expected no sources, got %v", srcs)
	}
}

func TestConverter_RenderHTML(t *testing.T) {
	body := `<p>Hello <strong>world</strong></p>`

	got, err := NewConverter(true).Render(body)
	if err != nil {
		t.Fatal(err)
	}
	if got != body {
		t.Errorf("Expected body verbatim, got %q", got)
	}
}

func TestConverter_RenderMarkdown(t *testing.T) {
	body := `<h2>Title</h2><p>Hello <strong>world</strong></p><p><a href="http://example.com">link</a></p>`

	got, err := NewConverter(false).Render(body)
	if err != nil {
		t.Fatal(err)
	}

	if strings.Contains(got, "<strong>") {
		t.Errorf("Expected HTML tags to be converted, got %q", got)
	}
	if !strings.Contains(got, "**world**") {
		t.Errorf("Expected bold markdown, got %q", got)
	}
	if !strings.Contains(got, "[link](http://example.com)") {
		t.Errorf("Expected markdown link, got %q", got)
	}
	if !strings.Contains(got, "## Title") {
		t.Errorf("Expected markdown heading, got %q", got)
	}
}
