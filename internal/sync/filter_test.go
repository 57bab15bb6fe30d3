package sync_test

import (
	"testing"

	"github.com/recipeway/recipeway/internal/recipe"
	"github.com/recipeway/recipeway/internal/sync"
)

func TestFilterSnapshot_Match(t *testing.T) {
	r := recipe.Record{
		Title:        "מרק עדשים",
		Ingredients:  []string{"עדשים אדומות", "בצל"},
		Instructions: []string{"לבשל על אש קטנה"},
		Categories:   []string{"מרקים", "טבעוני"},
	}

	tests := []struct {
		name string
		f    sync.FilterSnapshot
		want bool
	}{
		{"empty matches", sync.FilterSnapshot{}, true},
		{"title search", sync.FilterSnapshot{Search: "עדשים"}, true},
		{"ingredient search", sync.FilterSnapshot{Search: "בצל"}, true},
		{"instruction search", sync.FilterSnapshot{Search: "אש קטנה"}, true},
		{"no match", sync.FilterSnapshot{Search: "שוקולד"}, false},
		{"single category", sync.FilterSnapshot{Categories: []string{"מרקים"}}, true},
		{"all categories required", sync.FilterSnapshot{Categories: []string{"מרקים", "חגים"}}, false},
		{"search and category", sync.FilterSnapshot{Search: "עדשים", Categories: []string{"טבעוני"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.f.Match(r); got != tt.want {
				t.Errorf("Match = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilterSnapshot_Apply(t *testing.T) {
	records := []recipe.Record{
		{ID: "1", Title: "מרק עדשים", Categories: []string{"מרקים"}},
		{ID: "2", Title: "עוגת שוקולד", Categories: []string{"קינוחים"}},
		{ID: "3", Title: "מרק ירקות", Categories: []string{"מרקים", "טבעוני"}},
	}

	got := sync.FilterSnapshot{Search: "מרק", Categories: []string{"מרקים"}}.Apply(records)
	if len(got) != 2 || got[0].ID != "1" || got[1].ID != "3" {
		t.Errorf("Apply = %v", got)
	}
}
