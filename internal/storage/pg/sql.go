package pg

import (
	"fmt"
	"strings"

	"github.com/DjordjeVuckovic/book-hunter/internal/catalog"
	"github.com/DjordjeVuckovic/book-hunter/internal/domain/query"
	"github.com/google/uuid"
)

const bookColumns = "id, title, author, isbn, description, cover_image_url, categories, tags, average_rating, ratings_count, created_at"

// facetColumns whitelists the array columns that can be listed.
var facetColumns = map[catalog.Facet]string{
	catalog.FacetCategories: "categories",
	catalog.FacetTags:       "tags",
}

// likeEscaper escapes LIKE wildcards so the term is matched literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// whereBuilder accumulates positional parameters ($1, $2, ...) alongside their clauses.
type whereBuilder struct {
	clauses []string
	args    []interface{}
}

func (w *whereBuilder) param(v interface{}) string {
	w.args = append(w.args, v)
	return fmt.Sprintf("$%d", len(w.args))
}

func (w *whereBuilder) add(format string, v interface{}) {
	w.clauses = append(w.clauses, fmt.Sprintf(format, w.param(v)))
}

func (w *whereBuilder) sql() string {
	if len(w.clauses) == 0 {
		return "TRUE"
	}
	return strings.Join(w.clauses, " AND ")
}

// buildWhere composes the filter clauses in text, category, rating, tag order.
func buildWhere(f catalog.Filter) (string, []interface{}) {
	w := &whereBuilder{}

	if f.Text != "" {
		w.add(`(title ILIKE %[1]s ESCAPE '\' OR author ILIKE %[1]s ESCAPE '\' OR isbn ILIKE %[1]s ESCAPE '\' OR description ILIKE %[1]s ESCAPE '\')`,
			"%"+likeEscaper.Replace(f.Text)+"%")
	}
	if f.Category != "" {
		w.add("%s = ANY(categories)", f.Category)
	}
	if f.MinRating != nil {
		w.add("(average_rating IS NOT NULL AND average_rating >= %s)", *f.MinRating)
	}
	if f.Tag != "" {
		w.add("%s = ANY(tags)", f.Tag)
	}
	if len(f.AnyCategory) > 0 {
		w.add("categories && %s::text[]", f.AnyCategory)
	}
	if f.ExcludeID != uuid.Nil {
		w.add("id <> %s", f.ExcludeID)
	}

	return w.sql(), w.args
}

// orderBy maps a sort key to an ORDER BY list. Every ordering ends with id ASC.
func orderBy(key query.SortKey) string {
	switch key {
	case query.SortPopularity:
		return "ratings_count DESC, id ASC"
	case query.SortRating:
		return "average_rating DESC NULLS LAST, id ASC"
	case query.SortTitle:
		return `title COLLATE "C" ASC, id ASC`
	case query.SortRecent:
		return "created_at DESC, id ASC"
	default:
		return "created_at ASC, id ASC"
	}
}
