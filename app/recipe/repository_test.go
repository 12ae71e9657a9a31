package recipe

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func writeRecord(t *testing.T, dir, slug string, categories []string, extra string) {
	t.Helper()

	if extra != "" {
		extra = ", " + extra
	}
	categoriesJSON := "["
	for i, category := range categories {
		if i > 0 {
			categoriesJSON += ", "
		}
		categoriesJSON += fmt.Sprintf("%q", category)
	}
	categoriesJSON += "]"

	content := fmt.Sprintf(`{
		"slug": %q,
		"title": "Recipe %s",
		"description": "Test recipe",
		"categories": %s,
		"tags": ["test"],
		"instructions": [{"step": 1, "text": "Do the thing."}],
		"image": {"hero": "images/%s.jpg", "thumbnail": "images/%s-thumb.jpg"}%s
	}`, slug, slug, categoriesJSON, slug, slug, extra)

	if err := os.WriteFile(filepath.Join(dir, slug+".json"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func loadedRepository(t *testing.T, dir string) *Repository {
	t.Helper()

	repo := NewRepository(dir)
	if err := repo.Load(LoadPartial); err != nil {
		t.Fatal(err)
	}
	return repo
}

func TestLoadDirectory(t *testing.T) {
	dir := t.TempDir()
	writeRecord(t, dir, "apple-crisp", []string{"Baked"}, "")
	writeRecord(t, dir, "banana-bites", []string{"Vegan", "No-Bake"}, "")

	repo := NewRepository(dir)
	if repo.State() != StateUnloaded {
		t.Errorf("Expected state unloaded before Load, got %s", repo.State())
	}

	if err := repo.Load(LoadPartial); err != nil {
		t.Fatal(err)
	}

	if repo.State() != StateLoaded {
		t.Errorf("Expected state loaded, got %s", repo.State())
	}
	if repo.Count() != 2 {
		t.Errorf("Expected 2 records, got %d", repo.Count())
	}

	// Collection order follows sorted filenames
	all := repo.All()
	if all[0].Slug != "apple-crisp" || all[1].Slug != "banana-bites" {
		t.Errorf("Unexpected collection order: %s, %s", all[0].Slug, all[1].Slug)
	}
}

func TestLoadPartialSkipsMalformedRecords(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 9; i++ {
		writeRecord(t, dir, fmt.Sprintf("recipe-%d", i), []string{"Vegan"}, "")
	}
	if err := os.WriteFile(filepath.Join(dir, "zz-broken.json"), []byte(`{"slug":`), 0644); err != nil {
		t.Fatal(err)
	}

	repo := NewRepository(dir)
	if err := repo.Load(LoadPartial); err != nil {
		t.Fatalf("Partial load must not abort on a malformed record: %v", err)
	}

	if repo.Count() != 9 {
		t.Errorf("Expected 9 loaded records, got %d", repo.Count())
	}
	if len(repo.LoadErrors()) != 1 {
		t.Errorf("Expected 1 recorded load error, got %d", len(repo.LoadErrors()))
	}
}

func TestLoadStrictFailsOnMalformedRecord(t *testing.T) {
	dir := t.TempDir()
	writeRecord(t, dir, "apple-crisp", []string{"Baked"}, "")
	if err := os.WriteFile(filepath.Join(dir, "broken.json"), []byte(`not json`), 0644); err != nil {
		t.Fatal(err)
	}

	repo := NewRepository(dir)
	if err := repo.Load(LoadStrict); err == nil {
		t.Fatal("Strict load should fail on a malformed record")
	}
	if repo.State() != StateError {
		t.Errorf("Expected state error after failed strict load, got %s", repo.State())
	}
}

func TestLoadMissingDataPath(t *testing.T) {
	repo := NewRepository(filepath.Join(t.TempDir(), "absent"))
	if err := repo.Load(LoadPartial); err == nil {
		t.Error("Missing data path should fail the load in partial mode too")
	}
}

func TestLoadAggregateFile(t *testing.T) {
	dir := t.TempDir()
	content := `{
		"categories": ["Vegan", "Baked"],
		"recipes": [
			{
				"slug": "banana-bites",
				"title": "Banana Bites",
				"categories": ["Vegan"],
				"instructions": [{"step": 1, "text": "Freeze."}],
				"image": {"hero": "images/a.jpg", "thumbnail": "images/b.jpg"}
			}
		]
	}`
	path := filepath.Join(dir, "recipes.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	repo := NewRepository(path)
	if err := repo.Load(LoadPartial); err != nil {
		t.Fatal(err)
	}

	if repo.Count() != 1 {
		t.Errorf("Expected 1 record, got %d", repo.Count())
	}

	categories := repo.Categories()
	if len(categories) != 2 || categories[0] != "Vegan" || categories[1] != "Baked" {
		t.Errorf("Aggregate category list should be honored, got %v", categories)
	}
}

func TestGetBySlug(t *testing.T) {
	dir := t.TempDir()
	writeRecord(t, dir, "banana-bites", []string{"Vegan"}, "")
	repo := loadedRepository(t, dir)

	rec, err := repo.GetBySlug("banana-bites")
	if err != nil {
		t.Fatal(err)
	}
	if rec.Slug != "banana-bites" {
		t.Errorf("Unexpected record: %s", rec.Slug)
	}

	_, err = repo.GetBySlug("missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestFilterByCategory(t *testing.T) {
	dir := t.TempDir()
	writeRecord(t, dir, "apple-crisp", []string{"Baked"}, "")
	writeRecord(t, dir, "banana-bites", []string{"Vegan", "No-Bake"}, "")
	repo := loadedRepository(t, dir)

	matches := repo.FilterByCategory("vegan")
	if len(matches) != 1 || matches[0].Slug != "banana-bites" {
		t.Errorf("Case-normalized category filter failed: %v", matches)
	}

	if len(repo.FilterByCategory("Gluten-Free")) != 0 {
		t.Error("Expected no matches for unknown category")
	}
}

func TestSearch(t *testing.T) {
	dir := t.TempDir()
	writeRecord(t, dir, "apple-crisp", []string{"Baked"}, "")
	writeRecord(t, dir, "banana-bites", []string{"Vegan"}, "")
	repo := loadedRepository(t, dir)

	if got := repo.Search(""); len(got) != 0 {
		t.Errorf("Empty query must yield an empty result set, got %d results", len(got))
	}
	if got := repo.Search("   "); len(got) != 0 {
		t.Errorf("Whitespace query must yield an empty result set, got %d results", len(got))
	}

	upper := repo.Search("VEGAN")
	lower := repo.Search("vegan")
	if len(upper) != len(lower) || len(upper) != 1 {
		t.Fatalf("Search must be case-insensitive: VEGAN=%d vegan=%d", len(upper), len(lower))
	}
	if upper[0].Slug != lower[0].Slug {
		t.Error("Case variants must yield identical result sets")
	}

	// Substring match against titles
	if got := repo.Search("crisp"); len(got) != 1 || got[0].Slug != "apple-crisp" {
		t.Errorf("Title substring search failed: %v", got)
	}
}

func TestRelatedTo(t *testing.T) {
	dir := t.TempDir()
	writeRecord(t, dir, "banana-bites", []string{"Vegan", "No-Bake"}, "")
	writeRecord(t, dir, "chia-pudding", []string{"Vegan"}, "")
	writeRecord(t, dir, "date-truffles", []string{"Vegan"}, "")
	writeRecord(t, dir, "roast-chicken", []string{"Dinner"}, "")
	repo := loadedRepository(t, dir)

	rec, err := repo.GetBySlug("banana-bites")
	if err != nil {
		t.Fatal(err)
	}

	related := repo.RelatedTo(rec, 0)
	if len(related) != 2 {
		t.Fatalf("Expected exactly 2 related records, got %d", len(related))
	}
	// Collection order, self excluded
	if related[0].Slug != "chia-pudding" || related[1].Slug != "date-truffles" {
		t.Errorf("Unexpected related order: %s, %s", related[0].Slug, related[1].Slug)
	}
	for _, relatedRec := range related {
		if relatedRec.Slug == rec.Slug {
			t.Error("RelatedTo must never include the record itself")
		}
	}

	if got := repo.RelatedTo(rec, 1); len(got) != 1 {
		t.Errorf("RelatedTo must respect the limit, got %d", len(got))
	}
}

func TestFlagFilters(t *testing.T) {
	dir := t.TempDir()
	writeRecord(t, dir, "banana-bites", []string{"Vegan"}, `"featured": true, "popular": true`)
	writeRecord(t, dir, "chia-pudding", []string{"Vegan"}, `"viral": true`)
	repo := loadedRepository(t, dir)

	if got := repo.Featured(); len(got) != 1 || got[0].Slug != "banana-bites" {
		t.Errorf("Featured filter failed: %v", got)
	}
	if got := repo.Popular(); len(got) != 1 {
		t.Errorf("Popular filter failed: %v", got)
	}
	if got := repo.Viral(); len(got) != 1 || got[0].Slug != "chia-pudding" {
		t.Errorf("Viral filter failed: %v", got)
	}
}

func TestDuplicateSlug(t *testing.T) {
	dir := t.TempDir()
	writeRecord(t, dir, "banana-bites", []string{"Vegan"}, "")

	duplicate := `{
		"slug": "banana-bites",
		"title": "Duplicate",
		"instructions": [{"step": 1, "text": "x"}],
		"image": {"hero": "images/a.jpg", "thumbnail": "images/b.jpg"}
	}`
	if err := os.WriteFile(filepath.Join(dir, "zz-duplicate.json"), []byte(duplicate), 0644); err != nil {
		t.Fatal(err)
	}

	repo := NewRepository(dir)
	if err := repo.Load(LoadPartial); err != nil {
		t.Fatal(err)
	}
	if repo.Count() != 1 {
		t.Errorf("Duplicate slug should be skipped in partial mode, got %d records", repo.Count())
	}
	if len(repo.LoadErrors()) != 1 {
		t.Errorf("Duplicate slug should be recorded as a load error")
	}
}
