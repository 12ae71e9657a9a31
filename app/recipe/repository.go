package recipe

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// ErrNotFound is returned when no record matches a requested slug.
var ErrNotFound = errors.New("recipe not found")

// DefaultRelatedLimit caps RelatedTo results when no limit is given.
const DefaultRelatedLimit = 3

// State is the repository load lifecycle.
type State int

const (
	StateUnloaded State = iota
	StateLoading
	StateLoaded
	StateError
)

func (s State) String() string {
	switch s {
	case StateUnloaded:
		return "unloaded"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// LoadMode selects the failure policy for Load.
type LoadMode int

const (
	// LoadPartial skips malformed records, recording an error for each.
	LoadPartial LoadMode = iota
	// LoadStrict aborts the load on the first record failure.
	LoadStrict
)

// aggregateFile is the legacy single-file collection shape.
type aggregateFile struct {
	Recipes    []json.RawMessage `json:"recipes"`
	Categories []string          `json:"categories"`
}

// Repository loads the recipe collection and answers lookup, filter
// and search queries. It is an explicit instance handed to callers,
// with the loaded collection treated as read-only after Load.
type Repository struct {
	dataPath string

	mu         sync.RWMutex
	state      State
	records    []*Record
	bySlug     map[string]*Record
	categories []string
	warnings   []string
	loadErrs   []error
}

func NewRepository(dataPath string) *Repository {
	return &Repository{
		dataPath: dataPath,
		state:    StateUnloaded,
		bySlug:   make(map[string]*Record),
	}
}

// Load reads the collection from the data path: a directory of
// per-recipe JSON files, or a legacy aggregate recipes.json file.
// A missing data path fails the load in both modes.
func (r *Repository) Load(mode LoadMode) error {
	r.mu.Lock()
	r.state = StateLoading
	r.records = nil
	r.bySlug = make(map[string]*Record)
	r.categories = nil
	r.warnings = nil
	r.loadErrs = nil
	r.mu.Unlock()

	info, err := os.Stat(r.dataPath)
	if err != nil {
		r.setState(StateError)
		return fmt.Errorf("recipe data path %s: %w", r.dataPath, err)
	}

	var loadErr error
	if info.IsDir() {
		loadErr = r.loadDirectory(mode)
	} else {
		loadErr = r.loadAggregate(mode)
	}

	if loadErr != nil {
		r.setState(StateError)
		return loadErr
	}

	r.setState(StateLoaded)
	return nil
}

func (r *Repository) loadDirectory(mode LoadMode) error {
	files, err := filepath.Glob(filepath.Join(r.dataPath, "*.json"))
	if err != nil {
		return fmt.Errorf("failed to list recipe files: %w", err)
	}
	sort.Strings(files)

	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			if mode == LoadStrict {
				return fmt.Errorf("failed to read %s: %w", file, err)
			}
			r.recordLoadError(file, err)
			continue
		}

		if err := r.addRecord(data, file, mode); err != nil {
			return err
		}
	}

	return nil
}

func (r *Repository) loadAggregate(mode LoadMode) error {
	data, err := os.ReadFile(r.dataPath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", r.dataPath, err)
	}

	var aggregate aggregateFile
	if err := json.Unmarshal(data, &aggregate); err != nil {
		return &ParseError{Source: r.dataPath, Err: err}
	}

	r.mu.Lock()
	r.categories = append(r.categories, aggregate.Categories...)
	r.mu.Unlock()

	for i, raw := range aggregate.Recipes {
		source := fmt.Sprintf("%s#%d", r.dataPath, i)
		if err := r.addRecord(raw, source, mode); err != nil {
			return err
		}
	}

	return nil
}

func (r *Repository) addRecord(data []byte, source string, mode LoadMode) error {
	rec, warnings, err := ParseRecord(data, source)
	if err != nil {
		if mode == LoadStrict {
			return err
		}
		r.recordLoadError(source, err)
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if rec.Slug != "" {
		if _, exists := r.bySlug[rec.Slug]; exists {
			err := fmt.Errorf("duplicate slug %q in %s", rec.Slug, source)
			if mode == LoadStrict {
				return err
			}
			r.loadErrs = append(r.loadErrs, err)
			slog.Warn("Skipping record", "source", source, "error", err)
			return nil
		}
		r.bySlug[rec.Slug] = rec
	}

	for _, warning := range warnings {
		r.warnings = append(r.warnings, fmt.Sprintf("%s: %s", source, warning))
		slog.Warn("Record validation warning", "source", source, "warning", warning)
	}

	r.records = append(r.records, rec)

	for _, category := range rec.Categories {
		if !containsFold(r.categories, category) {
			r.categories = append(r.categories, category)
		}
	}

	return nil
}

func (r *Repository) recordLoadError(source string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loadErrs = append(r.loadErrs, err)
	slog.Warn("Skipping record", "source", source, "error", err)
}

func (r *Repository) setState(s State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = s
}

// State returns the current load lifecycle state.
func (r *Repository) State() State {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state
}

// Warnings returns validation warnings recorded during the last load.
func (r *Repository) Warnings() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.warnings...)
}

// LoadErrors returns per-record errors recorded during a partial load.
func (r *Repository) LoadErrors() []error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]error(nil), r.loadErrs...)
}

// All returns every loaded record in collection order.
func (r *Repository) All() []*Record {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*Record(nil), r.records...)
}

// Count returns the number of loaded records.
func (r *Repository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}

// GetBySlug returns the record with the given slug, or ErrNotFound.
func (r *Repository) GetBySlug(slug string) (*Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.bySlug[slug]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, slug)
	}
	return rec, nil
}

// FilterByCategory returns records whose categories contain the given
// category, case-normalized, in collection order.
func (r *Repository) FilterByCategory(category string) []*Record {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matches := make([]*Record, 0)
	for _, rec := range r.records {
		if containsFold(rec.Categories, category) {
			matches = append(matches, rec)
		}
	}
	return matches
}

// Search returns records whose title, description, tags or categories
// contain the query, case-insensitive. An empty query matches nothing.
// Results keep collection order; no relevance ranking is applied.
func (r *Repository) Search(query string) []*Record {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	matches := make([]*Record, 0)
	for _, rec := range r.records {
		if r.matchesQuery(rec, query) {
			matches = append(matches, rec)
		}
	}
	return matches
}

func (r *Repository) matchesQuery(rec *Record, query string) bool {
	fields := []string{
		rec.Title,
		rec.Description,
		strings.Join(rec.Tags, " "),
		strings.Join(rec.Categories, " "),
	}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

// RelatedTo returns records sharing at least one category with rec,
// excluding rec itself, truncated to limit (DefaultRelatedLimit when
// limit is not positive), in collection order.
func (r *Repository) RelatedTo(rec *Record, limit int) []*Record {
	if limit <= 0 {
		limit = DefaultRelatedLimit
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	matches := make([]*Record, 0, limit)
	for _, candidate := range r.records {
		if candidate == rec || (candidate.Slug != "" && candidate.Slug == rec.Slug) {
			continue
		}
		if sharesCategory(candidate.Categories, rec.Categories) {
			matches = append(matches, candidate)
			if len(matches) == limit {
				break
			}
		}
	}
	return matches
}

// Featured returns records flagged for the homepage featured section.
func (r *Repository) Featured() []*Record {
	return r.filterFlag(func(rec *Record) bool { return rec.Featured })
}

// Popular returns records flagged as popular.
func (r *Repository) Popular() []*Record {
	return r.filterFlag(func(rec *Record) bool { return rec.Popular })
}

// Viral returns records flagged as viral.
func (r *Repository) Viral() []*Record {
	return r.filterFlag(func(rec *Record) bool { return rec.Viral })
}

func (r *Repository) filterFlag(match func(*Record) bool) []*Record {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matches := make([]*Record, 0)
	for _, rec := range r.records {
		if match(rec) {
			matches = append(matches, rec)
		}
	}
	return matches
}

// Categories returns the distinct categories of the collection in
// first-seen order. A legacy aggregate category list is honored first.
func (r *Repository) Categories() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.categories...)
}

func containsFold(values []string, target string) bool {
	for _, value := range values {
		if strings.EqualFold(value, target) {
			return true
		}
	}
	return false
}

func sharesCategory(a, b []string) bool {
	for _, category := range a {
		if containsFold(b, category) {
			return true
		}
	}
	return false
}
