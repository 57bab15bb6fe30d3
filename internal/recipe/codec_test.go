package recipe_test

import (
	"slices"
	"testing"

	"github.com/recipeway/recipeway/internal/recipe"
)

func TestDecode_Basic(t *testing.T) {
	got := recipe.Decode("Pasta\nקטגוריה:\nפסטה\nמרכיבים:\n* pasta\n* salt\nהוראות הכנה:\n1. boil\n")

	if got.Title != "Pasta" {
		t.Errorf("title = %q, want %q", got.Title, "Pasta")
	}
	if !slices.Equal(got.Categories, []string{"פסטה"}) {
		t.Errorf("categories = %v, want [פסטה]", got.Categories)
	}
	if !slices.Equal(got.Ingredients, []string{"pasta", "salt"}) {
		t.Errorf("ingredients = %v, want [pasta salt]", got.Ingredients)
	}
	if !slices.Equal(got.Instructions, []string{"boil"}) {
		t.Errorf("instructions = %v, want [boil]", got.Instructions)
	}
}

func TestDecode_RoundTrip(t *testing.T) {
	r := recipe.Record{
		Title:        "מרק עדשים",
		Categories:   []string{"מרקים", "טבעוני"},
		Ingredients:  []string{"עדשים", "בצל", "מים"},
		Instructions: []string{"לטגן את הבצל", "להוסיף עדשים ומים", "לבשל 40 דקות"},
		URL:          "https://example.com/soup",
		Notes:        "אפשר להוסיף כמון",
	}

	got := recipe.Decode(recipe.Encode(r))

	if got.Title != r.Title {
		t.Errorf("title = %q, want %q", got.Title, r.Title)
	}
	if !slices.Equal(got.Ingredients, r.Ingredients) {
		t.Errorf("ingredients = %v, want %v", got.Ingredients, r.Ingredients)
	}
	if !slices.Equal(got.Instructions, r.Instructions) {
		t.Errorf("instructions = %v, want %v", got.Instructions, r.Instructions)
	}
	if !slices.Equal(got.Categories, r.Categories) {
		t.Errorf("categories = %v, want %v", got.Categories, r.Categories)
	}
	if got.URL != r.URL {
		t.Errorf("url = %q, want %q", got.URL, r.URL)
	}
	if got.Notes != r.Notes {
		t.Errorf("notes = %q, want %q", got.Notes, r.Notes)
	}
}

func TestDecode_CategoriesNormalized(t *testing.T) {
	got := recipe.Decode("עוגה\nקטגוריה:\n קינוחים , מאפים ,\nמרכיבים:\n* קמח\nהוראות הכנה:\n1. לערבב\n")
	if !slices.Equal(got.Categories, []string{"קינוחים", "מאפים"}) {
		t.Errorf("categories = %v, want [קינוחים מאפים]", got.Categories)
	}
}

func TestDecode_SkipsUnmarkedLines(t *testing.T) {
	text := "שקשוקה\n" +
		"קטגוריה:\n" +
		"ארוחות בוקר\n" +
		"מרכיבים:\n" +
		"* ביצים\n" +
		"הערה שאינה מרכיב\n" +
		"* עגבניות\n" +
		"הוראות הכנה:\n" +
		"בלי מספור\n" +
		"1. לחמם מחבת\n" +
		"2. לשבור ביצים\n"

	got := recipe.Decode(text)
	if !slices.Equal(got.Ingredients, []string{"ביצים", "עגבניות"}) {
		t.Errorf("ingredients = %v", got.Ingredients)
	}
	if !slices.Equal(got.Instructions, []string{"לחמם מחבת", "לשבור ביצים"}) {
		t.Errorf("instructions = %v", got.Instructions)
	}
}

func TestDecode_MalformedNeverFails(t *testing.T) {
	for _, text := range []string{"", "\n\n\n", "מרכיבים:\n* לבד"} {
		got := recipe.Decode(text)
		if err := got.Validate(); err == nil {
			t.Errorf("Decode(%q) produced a record that validates; want incomplete", text)
		}
	}
}

func TestDecode_TitleOnlyFirstLine(t *testing.T) {
	// The first non-blank line is always the title, even when it looks like
	// section content.
	got := recipe.Decode("* לא מרכיב\nמרכיבים:\n* קמח\n")
	if got.Title != "* לא מרכיב" {
		t.Errorf("title = %q", got.Title)
	}
	if !slices.Equal(got.Ingredients, []string{"קמח"}) {
		t.Errorf("ingredients = %v", got.Ingredients)
	}

	// Even a marker as the first line reads as the title.
	got = recipe.Decode("מרכיבים:\nקטגוריה:\nמרקים\n")
	if got.Title != "מרכיבים:" {
		t.Errorf("title = %q", got.Title)
	}
}

func TestEqual_OrderInsensitiveCategories(t *testing.T) {
	a := recipe.Record{ID: "1", Title: "x", Categories: []string{"עוף", "חגים"}}
	b := recipe.Record{ID: "1", Title: "x", Categories: []string{"חגים", "עוף"}}
	if !recipe.Equal(a, b) {
		t.Error("records differing only in category order should be equal")
	}

	b.Ingredients = []string{"משהו"}
	if recipe.Equal(a, b) {
		t.Error("records with different ingredients should not be equal")
	}
}

func TestValidate(t *testing.T) {
	r := recipe.Record{Title: "t", Ingredients: []string{"i"}, Instructions: []string{"s"}}
	if err := r.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	r.Title = ""
	if err := r.Validate(); err == nil {
		t.Fatal("expected error for empty title")
	}
}
