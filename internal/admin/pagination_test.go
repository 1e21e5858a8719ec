package admin

import "testing"

func TestPaginate(t *testing.T) {
	cases := []struct {
		name       string
		n          int
		pageSize   int
		page       int
		wantPage   int
		wantTotal  int
		wantStart  int
		wantEnd    int
	}{
		{name: "emptyListStillHasOnePage", n: 0, pageSize: 10, page: 1, wantPage: 1, wantTotal: 1, wantStart: 0, wantEnd: 0},
		{name: "singlePartialPage", n: 7, pageSize: 10, page: 1, wantPage: 1, wantTotal: 1, wantStart: 0, wantEnd: 7},
		{name: "exactMultiple", n: 20, pageSize: 10, page: 2, wantPage: 2, wantTotal: 2, wantStart: 10, wantEnd: 20},
		{name: "lastPagePartial", n: 25, pageSize: 10, page: 3, wantPage: 3, wantTotal: 3, wantStart: 20, wantEnd: 25},
		{name: "pageClampedHigh", n: 25, pageSize: 10, page: 9, wantPage: 3, wantTotal: 3, wantStart: 20, wantEnd: 25},
		{name: "pageClampedLow", n: 25, pageSize: 10, page: 0, wantPage: 1, wantTotal: 3, wantStart: 0, wantEnd: 10},
		{name: "pageSizeFloorsToOne", n: 3, pageSize: 0, page: 2, wantPage: 2, wantTotal: 3, wantStart: 1, wantEnd: 2},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pv := paginate(tc.n, tc.pageSize, tc.page)
			if pv.Page != tc.wantPage {
				t.Errorf("Page = %d, want %d", pv.Page, tc.wantPage)
			}
			if pv.TotalPages != tc.wantTotal {
				t.Errorf("TotalPages = %d, want %d", pv.TotalPages, tc.wantTotal)
			}
			if pv.Start != tc.wantStart {
				t.Errorf("Start = %d, want %d", pv.Start, tc.wantStart)
			}
			if pv.End != tc.wantEnd {
				t.Errorf("End = %d, want %d", pv.End, tc.wantEnd)
			}
		})
	}
}

func TestPaginateWindowNeverOverruns(t *testing.T) {
	for n := 0; n <= 35; n++ {
		for page := -1; page <= 6; page++ {
			pv := paginate(n, 10, page)
			if pv.Start < 0 || pv.End > n || pv.Start > pv.End {
				t.Fatalf("paginate(%d, 10, %d) produced window [%d, %d)", n, page, pv.Start, pv.End)
			}
		}
	}
}
