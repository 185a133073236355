package events_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"testing"
	"time"

	"github.com/testersconnect/site/internal/events"
	"github.com/testersconnect/site/pkg/logging"
	"github.com/testersconnect/site/pkg/pagination"
	"github.com/testersconnect/site/pkg/storage"
	"github.com/testersconnect/site/pkg/uploads"
	"github.com/testersconnect/site/pkg/validation"
)

var fixedNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func testSettings() events.Settings {
	return events.Settings{
		Bucket:     "event-covers",
		Location:   time.UTC,
		Pagination: pagination.Config{DefaultPageSize: 6, MaxPageSize: 50},
		CoverPolicy: uploads.Policy{
			Types:       []string{uploads.TypePNG, uploads.TypeJPEG, uploads.TypeWEBP},
			MaxBytes:    3 << 20,
			TypeMessage: "Cover must be PNG, JPG, or WEBP",
			SizeMessage: "Cover image must be under 3MB",
		},
		Now: func() time.Time { return fixedNow },
	}
}

func newStore(t *testing.T) (*storage.Filesystem, string) {
	t.Helper()
	dir := t.TempDir()
	fs, err := storage.NewFilesystem(&storage.Config{
		BasePath:      dir,
		PublicBaseURL: "http://localhost:8080/storage",
	}, logging.Discard())
	if err != nil {
		t.Fatalf("NewFilesystem failed: %v", err)
	}
	return fs, dir
}

func seeded() *memRepo {
	m := &memRepo{}
	m.seed("kickoff", "2026-03-10", true)
	m.seed("retro", "2026-03-14", true)
	m.seed("today-meetup", "2026-03-15", true)
	m.seed("workshop", "2026-03-20", true)
	m.seed("conference", "2026-04-01", true)
	m.seed("draft", "2026-03-30", false)
	return m
}

func newSystem(t *testing.T, repo events.Repository) events.System {
	t.Helper()
	store, _ := newStore(t)
	return events.New(repo, store, testSettings(), logging.Discard())
}

func slugs(items []events.Event) []string {
	out := make([]string, len(items))
	for i, e := range items {
		out[i] = e.Slug
	}
	return out
}

func TestPage_Partitions(t *testing.T) {
	sys := newSystem(t, seeded())
	ctx := context.Background()

	tests := []struct {
		name       string
		view       events.View
		page       pagination.PageRequest
		wantSlugs  []string
		wantTotal  int
		wantPages  int
		wantPageSz int
	}{
		{
			name:       "upcoming includes today soonest first",
			view:       events.ViewUpcoming,
			page:       pagination.PageRequest{Page: 1, PageSize: 2},
			wantSlugs:  []string{"today-meetup", "workshop"},
			wantTotal:  3,
			wantPages:  2,
			wantPageSz: 2,
		},
		{
			name:       "upcoming second page",
			view:       events.ViewUpcoming,
			page:       pagination.PageRequest{Page: 2, PageSize: 2},
			wantSlugs:  []string{"conference"},
			wantTotal:  3,
			wantPages:  2,
			wantPageSz: 2,
		},
		{
			name:       "past most recent first",
			view:       events.ViewPast,
			page:       pagination.PageRequest{Page: 1},
			wantSlugs:  []string{"retro", "kickoff"},
			wantTotal:  2,
			wantPages:  1,
			wantPageSz: 6,
		},
		{
			name:       "page past the end is empty",
			view:       events.ViewUpcoming,
			page:       pagination.PageRequest{Page: 9, PageSize: 2},
			wantSlugs:  []string{},
			wantTotal:  3,
			wantPages:  2,
			wantPageSz: 2,
		},
		{
			name:       "page size clamped",
			view:       events.ViewPast,
			page:       pagination.PageRequest{Page: -3, PageSize: 500},
			wantSlugs:  []string{"retro", "kickoff"},
			wantTotal:  2,
			wantPages:  1,
			wantPageSz: 50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := sys.Page(ctx, tt.view, tt.page)
			if err != nil {
				t.Fatalf("Page failed: %v", err)
			}
			if got := slugs(result.Items); !reflect.DeepEqual(got, tt.wantSlugs) {
				t.Errorf("items = %v, want %v", got, tt.wantSlugs)
			}
			if result.TotalCount != tt.wantTotal {
				t.Errorf("TotalCount = %d, want %d", result.TotalCount, tt.wantTotal)
			}
			if result.TotalPages != tt.wantPages {
				t.Errorf("TotalPages = %d, want %d", result.TotalPages, tt.wantPages)
			}
			if result.PageSize != tt.wantPageSz {
				t.Errorf("PageSize = %d, want %d", result.PageSize, tt.wantPageSz)
			}
		})
	}
}

func TestPage_PartitionsAreDisjointAndComplete(t *testing.T) {
	repo := seeded()
	sys := newSystem(t, repo)
	ctx := context.Background()

	seen := map[string]events.View{}
	for _, view := range []events.View{events.ViewUpcoming, events.ViewPast} {
		for page := 1; ; page++ {
			result, err := sys.Page(ctx, view, pagination.PageRequest{Page: page, PageSize: 1})
			if err != nil {
				t.Fatalf("Page failed: %v", err)
			}
			for _, e := range result.Items {
				if prev, ok := seen[e.Slug]; ok {
					t.Fatalf("%s appears in %s and %s", e.Slug, prev, view)
				}
				seen[e.Slug] = view
			}
			if page >= result.TotalPages {
				break
			}
		}
	}

	published, err := sys.Published(ctx)
	if err != nil {
		t.Fatalf("Published failed: %v", err)
	}
	if len(seen) != len(published) {
		t.Errorf("partitions cover %d events, published set has %d", len(seen), len(published))
	}
	if _, ok := seen["draft"]; ok {
		t.Error("unpublished event leaked into a partition")
	}
}

func TestPage_TodayFollowsConfiguredZone(t *testing.T) {
	repo := seeded()
	store, _ := newStore(t)

	settings := testSettings()
	settings.Location = time.FixedZone("WAT", 3600)
	settings.Now = func() time.Time { return time.Date(2026, 3, 15, 23, 30, 0, 0, time.UTC) }
	sys := events.New(repo, store, settings, logging.Discard())

	result, err := sys.Page(context.Background(), events.ViewPast, pagination.PageRequest{Page: 1})
	if err != nil {
		t.Fatalf("Page failed: %v", err)
	}
	if got := slugs(result.Items); len(got) == 0 || got[0] != "today-meetup" {
		t.Errorf("past = %v, want today-meetup first once the zone has rolled over", got)
	}
}

func TestSidebar(t *testing.T) {
	repo := &memRepo{}
	for i := range 10 {
		repo.seed("event-"+string(rune('a'+i)), "2026-04-0"+string(rune('1'+i%9)), true)
	}
	sys := newSystem(t, repo)

	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"default", 0, 6},
		{"explicit", 3, 3},
		{"negative clamps to one", -5, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := sys.Sidebar(context.Background(), events.ViewUpcoming, tt.limit)
			if err != nil {
				t.Fatalf("Sidebar failed: %v", err)
			}
			if len(items) != tt.want {
				t.Errorf("len = %d, want %d", len(items), tt.want)
			}
		})
	}
}

func TestFind(t *testing.T) {
	sys := newSystem(t, seeded())

	e, err := sys.Find(context.Background(), "workshop")
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if e.EventDate.String() != "2026-03-20" {
		t.Errorf("EventDate = %s, want 2026-03-20", e.EventDate)
	}

	if _, err := sys.Find(context.Background(), "draft"); !errors.Is(err, events.ErrNotFound) {
		t.Errorf("unpublished Find error = %v, want ErrNotFound", err)
	}
}

func decodeBody(t *testing.T, body string) map[string]json.RawMessage {
	t.Helper()
	var m map[string]json.RawMessage
	if err := json.Unmarshal([]byte(body), &m); err != nil {
		t.Fatalf("bad test body: %v", err)
	}
	return m
}

func TestCreate_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"missing title", `{"slug":"a","event_date":"2026-05-01"}`, "Missing title, slug, or event_date"},
		{"missing slug", `{"title":"A","event_date":"2026-05-01"}`, "Missing title, slug, or event_date"},
		{"missing date", `{"title":"A","slug":"a"}`, "Missing title, slug, or event_date"},
		{"bad slug", `{"title":"A","slug":"Not A Slug","event_date":"2026-05-01"}`, "slug must contain only lowercase letters, numbers and hyphens"},
		{"bad date", `{"title":"A","slug":"a","event_date":"May 1st"}`, "event_date must be a date in YYYY-MM-DD form"},
		{"bad mode", `{"title":"A","slug":"a","event_date":"2026-05-01","mode":"Hybrid"}`, "mode must be Online or In-person"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &memRepo{}
			sys := newSystem(t, repo)

			cmd, err := events.DecodeCreate(decodeBody(t, tt.body))
			if err != nil {
				t.Fatalf("DecodeCreate failed: %v", err)
			}

			_, err = sys.Create(context.Background(), cmd)
			verr, ok := validation.As(err)
			if !ok {
				t.Fatalf("error = %v, want validation error", err)
			}
			if verr.Message != tt.want {
				t.Errorf("message = %q, want %q", verr.Message, tt.want)
			}
			if len(repo.events) != 0 {
				t.Error("rejected create reached the repository")
			}
		})
	}
}

func TestCreate_Defaults(t *testing.T) {
	sys := newSystem(t, &memRepo{})

	cmd, err := events.DecodeCreate(decodeBody(t, `{"title":" Intro ","slug":"intro","event_date":"2026-05-01"}`))
	if err != nil {
		t.Fatalf("DecodeCreate failed: %v", err)
	}

	e, err := sys.Create(context.Background(), cmd)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if e.Title != "Intro" {
		t.Errorf("Title = %q, want trimmed", e.Title)
	}
	if e.Mode != events.ModeOnline {
		t.Errorf("Mode = %q, want Online", e.Mode)
	}
	if e.Tags == nil || len(e.Tags) != 0 {
		t.Errorf("Tags = %#v, want empty", e.Tags)
	}
	if !e.IsPublished {
		t.Error("IsPublished = false, want true")
	}

	if _, err := sys.Create(context.Background(), cmd); !errors.Is(err, events.ErrDuplicate) {
		t.Errorf("duplicate create error = %v, want ErrDuplicate", err)
	}
}

func TestUpdate_SparsePatchIsIdempotent(t *testing.T) {
	repo := seeded()
	sys := newSystem(t, repo)
	ctx := context.Background()

	before, err := sys.Find(ctx, "workshop")
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}

	slug, patch, err := events.DecodePatch(decodeBody(t, `{"slug":"workshop","city":"Lagos"}`))
	if err != nil {
		t.Fatalf("DecodePatch failed: %v", err)
	}

	first, err := sys.Update(ctx, slug, patch)
	if err != nil {
		t.Fatalf("first Update failed: %v", err)
	}
	second, err := sys.Update(ctx, slug, patch)
	if err != nil {
		t.Fatalf("second Update failed: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("second apply changed the row:\n%+v\n%+v", first, second)
	}
	if first.City == nil || *first.City != "Lagos" {
		t.Errorf("City = %v, want Lagos", first.City)
	}

	want := *before
	want.City = first.City
	if !reflect.DeepEqual(*first, want) {
		t.Errorf("untouched fields changed:\n got %+v\nwant %+v", *first, want)
	}
}

func TestUpdate_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		message string
		target  error
	}{
		{name: "missing slug", body: `{"city":"Lagos"}`, message: "Missing slug"},
		{name: "nothing to update", body: `{"slug":"workshop"}`, message: "Nothing to update"},
		{name: "blank title", body: `{"slug":"workshop","title":"  "}`, message: "title cannot be empty"},
		{name: "bad mode", body: `{"slug":"workshop","mode":"Hybrid"}`, message: "mode must be Online or In-person"},
		{name: "unknown slug", body: `{"slug":"nope","city":"Lagos"}`, target: events.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys := newSystem(t, seeded())

			slug, patch, err := events.DecodePatch(decodeBody(t, tt.body))
			if err != nil {
				t.Fatalf("DecodePatch failed: %v", err)
			}

			_, err = sys.Update(context.Background(), slug, patch)
			if tt.target != nil {
				if !errors.Is(err, tt.target) {
					t.Errorf("error = %v, want %v", err, tt.target)
				}
				return
			}
			verr, ok := validation.As(err)
			if !ok || verr.Message != tt.message {
				t.Errorf("error = %v, want %q", err, tt.message)
			}
		})
	}
}

func TestDelete(t *testing.T) {
	repo := seeded()
	sys := newSystem(t, repo)
	ctx := context.Background()

	if err := sys.Delete(ctx, "workshop"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := sys.Find(ctx, "workshop"); !errors.Is(err, events.ErrNotFound) {
		t.Errorf("Find after delete = %v, want ErrNotFound", err)
	}

	if err := sys.Delete(ctx, "missing"); err != nil {
		t.Errorf("Delete of unknown slug = %v, want nil", err)
	}

	if _, ok := validation.As(sys.Delete(ctx, "")); !ok {
		t.Error("Delete without slug should be a validation error")
	}
}

func TestUploadCover(t *testing.T) {
	store, dir := newStore(t)
	sys := events.New(&memRepo{}, store, testSettings(), logging.Discard())

	file := &uploads.File{
		Name:        "my cover  final.png",
		ContentType: uploads.TypePNG,
		Size:        4,
		Data:        []byte{1, 2, 3, 4},
	}

	cover, err := sys.UploadCover(context.Background(), "intro", file)
	if err != nil {
		t.Fatalf("UploadCover failed: %v", err)
	}

	wantKey := "intro/" + strconv.FormatInt(fixedNow.UnixMilli(), 10) + "-my-cover-final.png"
	if cover.Path != wantKey {
		t.Errorf("Path = %q, want %q", cover.Path, wantKey)
	}
	if cover.URL != "http://localhost:8080/storage/event-covers/"+wantKey {
		t.Errorf("URL = %q", cover.URL)
	}
	if _, err := os.Stat(filepath.Join(dir, "event-covers", wantKey)); err != nil {
		t.Errorf("stored object missing: %v", err)
	}
}

func TestUploadCover_Rejections(t *testing.T) {
	png := &uploads.File{Name: "a.png", ContentType: uploads.TypePNG, Size: 1, Data: []byte{1}}

	tests := []struct {
		name string
		slug string
		file *uploads.File
		want string
	}{
		{"missing slug", " ", png, "Add a slug before uploading an image."},
		{"unslugged title", "My Event", png, "slug must contain only lowercase letters, numbers and hyphens"},
		{"nested path", "intro/../other", png, "slug must contain only lowercase letters, numbers and hyphens"},
		{"missing file", "intro", nil, "Choose an image to upload."},
		{"wrong type", "intro", &uploads.File{Name: "a.gif", ContentType: "image/gif", Size: 1}, "Cover must be PNG, JPG, or WEBP"},
		{"too large", "intro", &uploads.File{Name: "a.png", ContentType: uploads.TypePNG, Size: 4 << 20}, "Cover image must be under 3MB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys := newSystem(t, &memRepo{})
			_, err := sys.UploadCover(context.Background(), tt.slug, tt.file)
			verr, ok := validation.As(err)
			if !ok || verr.Message != tt.want {
				t.Errorf("error = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestCoverKey(t *testing.T) {
	at := time.UnixMilli(1700000000000)
	if got := events.CoverKey("intro", "../../etc/my file.png", at); got != "intro/1700000000000-my-file.png" {
		t.Errorf("CoverKey = %q", got)
	}
}
