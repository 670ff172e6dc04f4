package services_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"hugo-exporter/pkg/models"
	"hugo-exporter/pkg/services"
)

// testReporter collects progress lines for assertions.
type testReporter struct {
	lines []string
}

func (r *testReporter) Eventf(format string, args ...any) {
	r.lines = append(r.lines, fmt.Sprintf(format, args...))
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newExporter(t *testing.T, siteURL string, reporter *testReporter) *services.BundleExporter {
	t.Helper()
	localizer := services.NewAssetLocalizer(siteURL, "webp", 5*time.Second)
	return services.NewBundleExporter(localizer, reporter, discardLogger())
}

func TestExportSkipsUnrecognizedType(t *testing.T) {
	baseDir := t.TempDir()
	reporter := &testReporter{}
	exporter := newExporter(t, "http://localhost", reporter)

	record := testRecord()
	record.Type = "attachment"

	outcome := exporter.Export(context.Background(), record, baseDir)
	if outcome.Status != models.OutcomeSkipped {
		t.Fatalf("expected skip, got %+v", outcome)
	}

	entries, err := os.ReadDir(baseDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatalf("skip wrote files: %v", entries)
	}
}

func TestExportArticleEndToEnd(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("image-bytes"))
	})

	record := testRecord()
	imgURL := srv.URL + "/a.png"
	record.Body = fmt.Sprintf(`<p>Intro</p><img src="%s">`, imgURL)

	baseDir := t.TempDir()
	reporter := &testReporter{}
	exporter := newExporter(t, srv.URL, reporter)

	outcome := exporter.Export(context.Background(), record, baseDir)
	if outcome.Status != models.OutcomeExported {
		t.Fatalf("expected success, got %+v", outcome)
	}
	if outcome.AssetsOK != 1 || outcome.AssetFailures != 0 {
		t.Fatalf("unexpected asset counts: %+v", outcome)
	}

	indexPath := filepath.Join(baseDir, "content", "posts", "hello-world", "index.md")
	content, err := os.ReadFile(indexPath)
	if err != nil {
		t.Fatalf("index.md not written: %v", err)
	}
	doc := string(content)

	for _, want := range []string{
		"layout: post\n",
		"slug: \"hello-world\"\n",
		"images:\n- a.png.webp\n",
		`{{< img src="a.png.webp" alt="image" >}}`,
	} {
		if !strings.Contains(doc, want) {
			t.Fatalf("missing %q in:\n%s", want, doc)
		}
	}

	asset, err := os.ReadFile(filepath.Join(baseDir, "content", "posts", "hello-world", "a.png.webp"))
	if err != nil {
		t.Fatalf("asset not in bundle: %v", err)
	}
	if string(asset) != "image-bytes" {
		t.Fatalf("unexpected asset content: %q", asset)
	}
}

func TestExportReexportIsByteIdentical(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("image-bytes"))
	})

	record := testRecord()
	record.Body = fmt.Sprintf(`<img src="%s/a.png">`, srv.URL)

	baseDir := t.TempDir()
	exporter := newExporter(t, srv.URL, &testReporter{})

	if out := exporter.Export(context.Background(), record, baseDir); out.Status != models.OutcomeExported {
		t.Fatalf("first export failed: %+v", out)
	}
	indexPath := filepath.Join(baseDir, "content", "posts", "hello-world", "index.md")
	first, err := os.ReadFile(indexPath)
	if err != nil {
		t.Fatal(err)
	}

	if out := exporter.Export(context.Background(), record, baseDir); out.Status != models.OutcomeExported {
		t.Fatalf("second export failed: %+v", out)
	}
	second, err := os.ReadFile(indexPath)
	if err != nil {
		t.Fatal(err)
	}

	if string(first) != string(second) {
		t.Fatalf("re-export not byte identical:\n%s\nvs:\n%s", first, second)
	}
}

func TestExportSurvivesAssetFetchFailure(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	record := testRecord()
	imgURL := srv.URL + "/gone.png"
	record.Body = fmt.Sprintf(`<img src="%s" alt="cat">`, imgURL)

	baseDir := t.TempDir()
	reporter := &testReporter{}
	exporter := newExporter(t, srv.URL, reporter)

	outcome := exporter.Export(context.Background(), record, baseDir)
	if outcome.Status != models.OutcomeExported {
		t.Fatalf("asset failure must not fail the record: %+v", outcome)
	}
	if outcome.AssetsOK != 0 || outcome.AssetFailures != 1 {
		t.Fatalf("unexpected asset counts: %+v", outcome)
	}

	content, err := os.ReadFile(filepath.Join(baseDir, "content", "posts", "hello-world", "index.md"))
	if err != nil {
		t.Fatalf("index.md not written: %v", err)
	}
	doc := string(content)

	if strings.Contains(doc, "images:") {
		t.Fatalf("failed asset listed in front matter:\n%s", doc)
	}
	// The broken link stays in the body untouched.
	if !strings.Contains(doc, fmt.Sprintf(`<img src="%s" alt="cat">`, imgURL)) {
		t.Fatalf("broken image tag was modified:\n%s", doc)
	}

	var sawFailure bool
	for _, line := range reporter.lines {
		if strings.HasPrefix(line, "download failed: ") {
			sawFailure = true
		}
	}
	if !sawFailure {
		t.Fatalf("download failure not reported: %v", reporter.lines)
	}
}

func TestExportFeaturedImageNotInline(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("x"))
	})

	record := testRecord()
	record.Body = "<p>No images inline.</p>"
	record.FeaturedImage = srv.URL + "/cover.jpg"

	baseDir := t.TempDir()
	exporter := newExporter(t, srv.URL, &testReporter{})

	outcome := exporter.Export(context.Background(), record, baseDir)
	if outcome.Status != models.OutcomeExported || outcome.AssetsOK != 1 {
		t.Fatalf("unexpected outcome: %+v", outcome)
	}

	content, err := os.ReadFile(filepath.Join(baseDir, "content", "posts", "hello-world", "index.md"))
	if err != nil {
		t.Fatal(err)
	}
	doc := string(content)

	if !strings.Contains(doc, "featuredImage: cover.jpg.webp\n") {
		t.Fatalf("featured image missing:\n%s", doc)
	}
	if !strings.Contains(doc, "<p>No images inline.</p>") {
		t.Fatalf("body altered:\n%s", doc)
	}
}

func TestExportClassifiesWriteFailure(t *testing.T) {
	baseDir := t.TempDir()

	// A regular file where the bundle directory should go makes MkdirAll fail.
	postsDir := filepath.Join(baseDir, "content", "posts")
	if err := os.MkdirAll(postsDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(postsDir, "hello-world"), []byte("not a dir"), 0644); err != nil {
		t.Fatal(err)
	}

	exporter := newExporter(t, "http://localhost", &testReporter{})
	outcome := exporter.Export(context.Background(), testRecord(), baseDir)

	if outcome.Status != models.OutcomeFailed {
		t.Fatalf("expected failure, got %+v", outcome)
	}
	if kind := services.ErrorKind(outcome.Err); kind != services.KindWriteFailed {
		t.Fatalf("got kind %q want %q", kind, services.KindWriteFailed)
	}
}

func TestExportDerivesSlugFromTitle(t *testing.T) {
	record := testRecord()
	record.Slug = ""
	record.Title = "Hello World"

	baseDir := t.TempDir()
	exporter := newExporter(t, "http://localhost", &testReporter{})

	outcome := exporter.Export(context.Background(), record, baseDir)
	if outcome.Status != models.OutcomeExported {
		t.Fatalf("unexpected outcome: %+v", outcome)
	}
	if _, err := os.Stat(filepath.Join(baseDir, "content", "posts", "hello-world", "index.md")); err != nil {
		t.Fatalf("expected bundle under derived slug: %v", err)
	}
}
