package view

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/livya/movie-blog/internal/model"
)

func TestNewParsesRealTemplates(t *testing.T) {
	r, err := New("../../web/templates")
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	post := model.Post{
		ID:        "abc",
		Title:     "An Analysis: Interstellar!",
		Slug:      "an-analysis-interstellar",
		Content:   "<p>The docking scene is a masterclass in tension.</p>",
		CreatedAt: time.Date(2026, time.March, 14, 12, 0, 0, 0, time.UTC),
	}

	var buf bytes.Buffer
	err = r.Render(&buf, "blog_index", struct {
		Posts  []model.Post
		Author string
	}{Posts: []model.Post{post}, Author: "Livya"}, nil)
	if err != nil {
		t.Fatalf("render blog_index: %v", err)
	}
	html := buf.String()
	if !strings.Contains(html, "An Analysis: Interstellar!") {
		t.Error("listing missing post title")
	}
	if !strings.Contains(html, "/blog/an-analysis-interstellar") {
		t.Error("listing missing post link")
	}
	if strings.Contains(html, "<p>The docking scene") {
		t.Error("excerpt must strip markup")
	}

	buf.Reset()
	err = r.Render(&buf, "blog_index", struct {
		Posts  []model.Post
		Author string
	}{Posts: []model.Post{}, Author: "Livya"}, nil)
	if err != nil {
		t.Fatalf("render empty blog_index: %v", err)
	}
	if !strings.Contains(buf.String(), "No Posts Yet") {
		t.Error("empty listing missing its empty state")
	}

	buf.Reset()
	err = r.Render(&buf, "blog_show", struct {
		Post   model.Post
		Author string
	}{Post: post, Author: "Livya"}, nil)
	if err != nil {
		t.Fatalf("render blog_show: %v", err)
	}
	html = buf.String()
	if !strings.Contains(html, "March 14, 2026") {
		t.Error("post page missing formatted date")
	}
	if !strings.Contains(html, "<p>The docking scene is a masterclass in tension.</p>") {
		t.Error("post page must render editor HTML unescaped")
	}
}

func TestTemplateHelpers(t *testing.T) {
	fm := funcs()

	year := fm["year"].(func(string) string)
	if got := year("2014-11-05"); got != "2014" {
		t.Errorf("year = %q", got)
	}
	if got := year("2014"); got != "2014" {
		t.Errorf("year without dashes = %q", got)
	}

	excerpt := fm["excerpt"].(func(string, int) string)
	if got := excerpt("<p>Hello   <b>world</b></p>", 100); got != "Hello world" {
		t.Errorf("excerpt = %q", got)
	}
	if got := excerpt("abcdefghij", 4); got != "abcd..." {
		t.Errorf("truncated excerpt = %q", got)
	}

	initial := fm["initial"].(func(string) string)
	if got := initial("livya"); got != "L" {
		t.Errorf("initial = %q", got)
	}
	if got := initial(""); got != "?" {
		t.Errorf("initial of empty = %q", got)
	}
}
