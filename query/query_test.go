package query

import (
	"testing"
	"time"
)

func intPtr(n int) *int { return &n }

func TestNormalizeDefaults(t *testing.T) {
	q := Params{}.Normalize()
	if q.Skip != 0 || q.Limit != 10 || q.SortBy != FieldCreatedAt || q.SortOrder != Desc {
		t.Fatalf("unexpected defaults: %+v", q)
	}
	if q.SortColumn() != "created_at" || !q.Descending() {
		t.Fatalf("unexpected sort: %s desc=%v", q.SortColumn(), q.Descending())
	}
}

func TestNormalizeSortFallback(t *testing.T) {
	q := Params{SortBy: "duration", SortOrder: Asc}.Normalize(FieldName, FieldCreatedAt)
	if q.SortBy != FieldCreatedAt {
		t.Fatalf("expected fallback to createdAt, got %q", q.SortBy)
	}
	if q.SortOrder != Asc {
		t.Fatalf("expected asc, got %q", q.SortOrder)
	}

	q = Params{SortBy: "name; DROP TABLE"}.Normalize()
	if q.SortColumn() != "created_at" {
		t.Fatalf("unknown field should map to created_at, got %q", q.SortColumn())
	}

	q = Params{SortBy: FieldDuration}.Normalize()
	if q.SortColumn() != "duration" {
		t.Fatalf("expected duration column, got %q", q.SortColumn())
	}
}

func TestNegativeSkipIsCarried(t *testing.T) {
	q := Params{Skip: intPtr(-3), Limit: intPtr(5)}.Normalize()
	if q.Skip != -3 {
		t.Fatalf("skip should be carried as given, got %d", q.Skip)
	}
	if q.Offset() != 0 {
		t.Fatalf("offset should clamp to 0, got %d", q.Offset())
	}

	p := NewPage([]string{"a"}, 3, q)
	if p.Skip != -3 {
		t.Fatalf("page should echo raw skip, got %d", p.Skip)
	}
	// The raw skip feeds hasMore: -3 + 5 < 3.
	if !p.HasMore {
		t.Fatal("expected hasMore=true")
	}
}

func TestHasMore(t *testing.T) {
	cases := []struct {
		skip, limit int
		total       int64
		want        bool
	}{
		{0, 5, 5, false},
		{0, 5, 6, true},
		{5, 5, 6, false},
		{0, 10, 0, false},
		{2, 3, 10, true},
	}
	for _, c := range cases {
		q := Params{Skip: intPtr(c.skip), Limit: intPtr(c.limit)}.Normalize()
		if got := NewPage[int](nil, c.total, q).HasMore; got != c.want {
			t.Errorf("skip=%d limit=%d total=%d: hasMore=%v, want %v", c.skip, c.limit, c.total, got, c.want)
		}
	}
}

func TestNewPageNeverNilData(t *testing.T) {
	p := NewPage[string](nil, 0, Params{}.Normalize())
	if p.Data == nil {
		t.Fatal("data should be an empty slice")
	}
}

func TestMatches(t *testing.T) {
	q := Params{Search: "SCRIPT"}.Normalize()
	if !q.Matches("JavaScript", "") {
		t.Fatal("expected case-insensitive name match")
	}
	if !q.Matches("Go", "no typescript here") {
		t.Fatal("expected description match")
	}
	if q.Matches("Go", "systems") {
		t.Fatal("did not expect a match")
	}

	q = Params{Search: "c++"}.Normalize()
	if !q.Matches("Modern C++", "") {
		t.Fatal("search must be a literal substring")
	}
}

type row struct {
	name    string
	created time.Time
}

func key(r row, field string) any {
	if field == FieldName {
		return r.name
	}
	return r.created
}

func TestSortAndWindow(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := []row{
		{"b", base.Add(2 * time.Hour)},
		{"a", base},
		{"c", base.Add(time.Hour)},
	}

	Sort(rows, Params{}.Normalize(), key)
	if rows[0].name != "b" || rows[1].name != "c" || rows[2].name != "a" {
		t.Fatalf("unexpected createdAt desc order: %v", rows)
	}

	Sort(rows, Params{SortBy: FieldName, SortOrder: Asc}.Normalize(), key)
	if rows[0].name != "a" || rows[2].name != "c" {
		t.Fatalf("unexpected name asc order: %v", rows)
	}

	got := Window(rows, Params{Skip: intPtr(1), Limit: intPtr(1)}.Normalize())
	if len(got) != 1 || got[0].name != "b" {
		t.Fatalf("unexpected window: %v", got)
	}
	if got := Window(rows, Params{Skip: intPtr(3)}.Normalize()); len(got) != 0 {
		t.Fatalf("expected empty window, got %v", got)
	}
	if got := Window(rows, Params{Skip: intPtr(-1), Limit: intPtr(2)}.Normalize()); len(got) != 2 || got[0].name != "a" {
		t.Fatalf("negative skip should read from the start, got %v", got)
	}
}

func TestMap(t *testing.T) {
	p := NewPage([]int{1, 2}, 7, Params{}.Normalize())
	out := Map(p, func(n int) string { return string(rune('a' + n)) })
	if out.Total != 7 || out.Data[0] != "b" || out.Data[1] != "c" {
		t.Fatalf("unexpected mapped page: %+v", out)
	}
}
