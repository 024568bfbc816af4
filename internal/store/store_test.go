package store

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/alnah/go-narrate/internal/content"
)

var testDocs = []content.Document{
	{
		ID:      "12",
		Title:   "Hello",
		Content: `<!-- wp:paragraph {"marker":"m1"} --><p>B</p><!-- /wp:paragraph -->`,
		Excerpt: "Hi.",
		Status:  content.StatusPublished,
	},
	{
		ID:             "7",
		Title:          "Draft",
		Content:        "  Hello.  ",
		Status:         content.StatusDraft,
		SummaryVoiceID: content.IntPtr(4),
	},
}

// resolverFactory builds a seeded Resolver for the shared contract tests.
type resolverFactory func(t *testing.T, docs []content.Document) Resolver

func resolverFactories() map[string]resolverFactory {
	return map[string]resolverFactory{
		"memory": func(t *testing.T, docs []content.Document) Resolver {
			return NewMemoryStore(docs...)
		},
		"sqlite": func(t *testing.T, docs []content.Document) Resolver {
			t.Helper()
			s, err := OpenSQLite(MemoryPath)
			if err != nil {
				t.Fatalf("OpenSQLite() error = %v", err)
			}
			t.Cleanup(func() { _ = s.Close() })
			for _, d := range docs {
				if err := s.Put(context.Background(), d); err != nil {
					t.Fatalf("Put() error = %v", err)
				}
			}
			return s
		},
	}
}

func TestResolverDocument(t *testing.T) {
	t.Parallel()

	for name, factory := range resolverFactories() {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			r := factory(t, testDocs)
			for _, want := range testDocs {
				got, err := r.Document(context.Background(), want.ID)
				if err != nil {
					t.Fatalf("Document(%q) error = %v", want.ID, err)
				}
				if !reflect.DeepEqual(got, want) {
					t.Errorf("Document(%q) = %+v, want %+v", want.ID, got, want)
				}
			}
		})
	}
}

func TestResolverNotFound(t *testing.T) {
	t.Parallel()

	for name, factory := range resolverFactories() {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			r := factory(t, testDocs)
			_, err := r.Document(context.Background(), "missing")
			if !errors.Is(err, ErrNotFound) {
				t.Errorf("Document() error = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestResolverCanceledContext(t *testing.T) {
	t.Parallel()

	for name, factory := range resolverFactories() {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			r := factory(t, testDocs)
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			_, err := r.Document(ctx, "12")
			if !errors.Is(err, context.Canceled) {
				t.Errorf("Document() error = %v, want context.Canceled", err)
			}
		})
	}
}

func TestMemoryStorePutAndIDs(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore(testDocs...)
	s.Put(content.Document{ID: "1"})
	s.Put(content.Document{ID: "12", Title: "Replaced"})

	if got, want := s.IDs(), []string{"1", "12", "7"}; !reflect.DeepEqual(got, want) {
		t.Errorf("IDs() = %v, want %v", got, want)
	}

	doc, err := s.Document(context.Background(), "12")
	if err != nil {
		t.Fatalf("Document() error = %v", err)
	}
	if doc.Title != "Replaced" {
		t.Errorf("Title = %q, want %q", doc.Title, "Replaced")
	}
}

func TestSQLiteStoreFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "docs.sqlite")
	ctx := context.Background()

	s, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite() error = %v", err)
	}
	for _, d := range testDocs {
		if err := s.Put(ctx, d); err != nil {
			t.Fatalf("Put() error = %v", err)
		}
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	// Reopen to check the data was persisted.
	s, err = OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer s.Close()

	ids, err := s.IDs(ctx)
	if err != nil {
		t.Fatalf("IDs() error = %v", err)
	}
	if want := []string{"12", "7"}; !reflect.DeepEqual(ids, want) {
		t.Errorf("IDs() = %v, want %v", ids, want)
	}

	doc, err := s.Document(ctx, "7")
	if err != nil {
		t.Fatalf("Document() error = %v", err)
	}
	if doc.SummaryVoiceID == nil || *doc.SummaryVoiceID != 4 {
		t.Errorf("SummaryVoiceID = %v, want 4", doc.SummaryVoiceID)
	}
}

func TestSQLiteStoreReplace(t *testing.T) {
	t.Parallel()

	s, err := OpenSQLite(MemoryPath)
	if err != nil {
		t.Fatalf("OpenSQLite() error = %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	if err := s.Put(ctx, content.Document{ID: "1", Title: "v1", SummaryVoiceID: content.IntPtr(2)}); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if err := s.Put(ctx, content.Document{ID: "1", Title: "v2"}); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	doc, err := s.Document(ctx, "1")
	if err != nil {
		t.Fatalf("Document() error = %v", err)
	}
	if doc.Title != "v2" || doc.SummaryVoiceID != nil {
		t.Errorf("Document() = %+v, want replaced row without voice id", doc)
	}
	if doc.Status != content.StatusDraft {
		t.Errorf("Status = %q, want %q", doc.Status, content.StatusDraft)
	}
}

func TestOpenSQLiteBadPath(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "missing", "dir", "docs.sqlite")
	if _, err := OpenSQLite(path); !errors.Is(err, ErrStoreOpen) {
		t.Errorf("OpenSQLite() error = %v, want ErrStoreOpen", err)
	}
}
