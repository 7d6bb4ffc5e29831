package markup

import (
	"testing"
	"time"
)

type countingObserver struct {
	hits, misses int
}

func (c *countingObserver) ObserveRenderCache(hit bool) {
	if hit {
		c.hits++
		return
	}
	c.misses++
}

func TestPipelineCachesByContent(t *testing.T) {
	observer := &countingObserver{}
	pipeline := NewPipeline(nil, PipelineConfig{TTL: time.Minute}, WithCacheObserver(observer))

	content := "# Title\n\nbody"
	first := pipeline.Process(content)
	second := pipeline.Process(content)

	if first.HTML != second.HTML || len(first.Headings) != len(second.Headings) {
		t.Fatalf("expected cached document to match, got %+v and %+v", first, second)
	}
	if observer.hits != 1 || observer.misses != 1 {
		t.Fatalf("expected 1 hit and 1 miss, got %+v", observer)
	}
	if pipeline.Len() != 1 {
		t.Fatalf("expected one cached document, got %d", pipeline.Len())
	}

	second.Headings[0].AnchorID = "mutated"
	if third := pipeline.Process(content); third.Headings[0].AnchorID != "title" {
		t.Fatalf("expected cache to be isolated from callers, got %q", third.Headings[0].AnchorID)
	}

	pipeline.Purge()
	if pipeline.Len() != 0 {
		t.Fatalf("expected purge to empty cache, got %d", pipeline.Len())
	}
}

func TestPipelineWithoutCache(t *testing.T) {
	observer := &countingObserver{}
	pipeline := NewPipeline(NewRenderer(), PipelineConfig{}, WithCacheObserver(observer))

	doc := pipeline.Process("## Only")
	if doc.HTML != "<h2 id=\"only\">Only</h2>\n" || len(doc.Headings) != 1 {
		t.Fatalf("unexpected document %+v", doc)
	}
	if observer.hits+observer.misses != 0 || pipeline.Len() != 0 {
		t.Fatalf("expected cache to be disabled, got observer %+v len %d", observer, pipeline.Len())
	}
}
