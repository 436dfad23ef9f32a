package catalog

import (
	"catreport/internal/core/apperror"
	"catreport/internal/core/id"
)

// Paths maps category ids to resolved "Root > Child" paths.
type Paths map[id.Key]string

// PathResolver computes category paths over the categories arena.
// Each path is computed at most once; parents are reached by id through the
// arena, and ids on the current descent are tracked to reject cycles.
type PathResolver struct {
	categories *Table[Category]
	memo       Paths
	active     map[id.Key]int
	stack      []id.Key

	// computed counts path computations; each category is computed once.
	computed int
}

// NewPathResolver creates a resolver over categories.
func NewPathResolver(categories *Table[Category]) *PathResolver {
	return &PathResolver{
		categories: categories,
		memo:       make(Paths, categories.Len()),
		active:     make(map[id.Key]int),
	}
}

// Resolve returns the path of the category with the given id.
func (r *PathResolver) Resolve(key id.Key) (string, error) {
	return r.resolve(key, "")
}

// ResolveAll resolves every category and returns the memo.
func (r *PathResolver) ResolveAll() (Paths, error) {
	for key := range r.categories.All() {
		if _, err := r.Resolve(key); err != nil {
			return nil, err
		}
	}
	out := make(Paths, len(r.memo))
	for k, v := range r.memo {
		out[k] = v
	}
	return out, nil
}

func (r *PathResolver) resolve(key, from id.Key) (string, error) {
	if path, ok := r.memo[key]; ok {
		return path, nil
	}

	c, ok := r.categories.Get(key)
	if !ok {
		return "", apperror.NewUnresolvedReference(TableCategories, key.String(), from.String())
	}

	if pos, visiting := r.active[key]; visiting {
		cycle := make([]string, 0, len(r.stack)-pos+1)
		for _, k := range r.stack[pos:] {
			cycle = append(cycle, k.String())
		}
		return "", apperror.NewCategoryCycle(append(cycle, key.String()))
	}

	r.active[key] = len(r.stack)
	r.stack = append(r.stack, key)
	defer func() {
		delete(r.active, key)
		r.stack = r.stack[:len(r.stack)-1]
	}()

	path := c.DisplayName
	if !c.IsRoot() {
		parent, err := r.resolve(*c.ParentID, key)
		if err != nil {
			return "", err
		}
		path = parent + PathSeparator + c.DisplayName
	}

	r.memo[key] = path
	r.computed++
	return path, nil
}
