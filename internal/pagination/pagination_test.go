package pagination

import "testing"

func TestParseCursorOffset(t *testing.T) {
	cases := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"", 0, false},
		{"   ", 0, false},
		{"0", 0, true},
		{"10", 10, true},
		{" 10 ", 10, true},
		{"10abc", 10, true},
		{"25.5", 25, true},
		{"+7", 7, true},
		{"-0", 0, true},
		{"-1", 0, false},
		{"abc10", 0, false},
		{"NaN", 0, false},
		{"Infinity", 0, false},
		{"-", 0, false},
		{"99999999999999999999999999", 0, false},
	}
	for _, tc := range cases {
		got, ok := ParseCursorOffset(tc.in)
		if got != tc.want || ok != tc.wantOK {
			t.Fatalf("ParseCursorOffset(%q) = %d, %v; want %d, %v", tc.in, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestBuildOffsetRequest_CoercesLimit(t *testing.T) {
	cases := []struct {
		name         string
		limit        int
		defaultLimit int
		wantLimit    int
	}{
		{"explicit", 10, DefaultLimit, 10},
		{"zero uses default", 0, DefaultLimit, 25},
		{"negative uses default", -4, 12, 12},
		{"bad default floors at one", 0, 0, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := BuildOffsetRequest(tc.limit, "", tc.defaultLimit)
			if req.Limit != tc.wantLimit {
				t.Fatalf("Limit = %d, want %d", req.Limit, tc.wantLimit)
			}
			if req.RequestLimit != tc.wantLimit+1 {
				t.Fatalf("RequestLimit = %d, want %d", req.RequestLimit, tc.wantLimit+1)
			}
			if req.HasOffset {
				t.Fatalf("HasOffset = true for empty cursor")
			}
		})
	}
}

func TestFinalizeOffset_NoFalseHasMore(t *testing.T) {
	for n := 0; n <= 5; n++ {
		data := make([]int, n)
		page := FinalizeOffset(data, 5, 0)
		if page.HasMore || page.NextCursor != "" {
			t.Fatalf("len=%d: HasMore=%v NextCursor=%q, want none", n, page.HasMore, page.NextCursor)
		}
		if len(page.Items) != n {
			t.Fatalf("len=%d: items = %d", n, len(page.Items))
		}
	}
}

func TestFinalizeOffset_TrimsAndAdvances(t *testing.T) {
	page := FinalizeOffset([]int{1, 2, 3, 4}, 3, 6)
	if !page.HasMore {
		t.Fatalf("HasMore = false, want true")
	}
	if len(page.Items) != 3 || page.Items[2] != 3 {
		t.Fatalf("Items = %v, want [1 2 3]", page.Items)
	}
	if page.NextCursor != "9" {
		t.Fatalf("NextCursor = %q, want 9", page.NextCursor)
	}
}

func TestCursorRoundTrip(t *testing.T) {
	for _, start := range []string{"", "0", "25", "40"} {
		req := BuildOffsetRequest(20, start, DefaultLimit)
		data := make([]int, req.RequestLimit)
		page := FinalizeOffset(data, req.Limit, req.Offset)
		next := BuildOffsetRequest(20, page.NextCursor, DefaultLimit)
		if !next.HasOffset || next.Offset != req.Offset+req.Limit {
			t.Fatalf("start %q: next offset = %d (%v), want %d", start, next.Offset, next.HasOffset, req.Offset+req.Limit)
		}
	}
}

func TestFromServerCursor(t *testing.T) {
	page := FromServerCursor([]string{"a"}, "  ")
	if page.HasMore || page.NextCursor != "" {
		t.Fatalf("blank server cursor should end pagination: %+v", page)
	}
	page = FromServerCursor([]string{"a"}, "tok_2")
	if !page.HasMore || page.NextCursor != "tok_2" {
		t.Fatalf("server cursor not preserved: %+v", page)
	}
}

func TestWindow(t *testing.T) {
	all := []int{0, 1, 2, 3, 4, 5, 6}
	got := Window(all, BuildOffsetRequest(2, "3", DefaultLimit))
	if len(got) != 3 || got[0] != 3 {
		t.Fatalf("Window = %v, want [3 4 5]", got)
	}
	got = Window(all, BuildOffsetRequest(2, "100", DefaultLimit))
	if len(got) != 0 {
		t.Fatalf("Window past end = %v, want empty", got)
	}
}
