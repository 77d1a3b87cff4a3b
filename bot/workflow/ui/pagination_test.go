package ui

import "testing"

func TestGetPageSlice(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	if got := GetPageSlice(items, 1, 3); len(got) != 3 || got[0] != 1 {
		t.Errorf("page 1 = %v", got)
	}
	if got := GetPageSlice(items, 3, 3); len(got) != 1 || got[0] != 7 {
		t.Errorf("last partial page = %v", got)
	}
	if got := GetPageSlice(items, 9, 3); got != nil {
		t.Errorf("page past the end = %v, want nil", got)
	}
	if got := GetPageSlice(items, 0, 3); len(got) != 3 {
		t.Errorf("page below 1 should clamp to the first page, got %v", got)
	}
}

func TestCalculateTotalPages(t *testing.T) {
	cases := []struct{ items, per, want int }{
		{0, 5, 1},
		{5, 5, 1},
		{6, 5, 2},
		{11, 5, 3},
		{3, 0, 1},
	}
	for _, c := range cases {
		if got := CalculateTotalPages(c.items, c.per); got != c.want {
			t.Errorf("CalculateTotalPages(%d, %d) = %d, want %d", c.items, c.per, got, c.want)
		}
	}
}

func TestPaginatedList_NavRow(t *testing.T) {
	items := []SelectableItem{{ID: "a", Text: "A"}, {ID: "b", Text: "B"}}

	single := PaginatedList(items, 1, 1)
	if len(single.InlineKeyboard) != 2 {
		t.Errorf("single page keyboard has %d rows, want items only", len(single.InlineKeyboard))
	}

	paged := PaginatedList(items, 2, 3)
	rows := paged.InlineKeyboard
	nav := rows[len(rows)-1]
	if len(nav) != 3 {
		t.Fatalf("nav row has %d buttons, want 3", len(nav))
	}
	if nav[0].CallbackData != "wf:page:1" || nav[2].CallbackData != "wf:page:3" {
		t.Errorf("nav callbacks = %q, %q", nav[0].CallbackData, nav[2].CallbackData)
	}
	if nav[1].CallbackData != "wf:noop" {
		t.Errorf("page indicator callback = %q, want noop", nav[1].CallbackData)
	}
}
