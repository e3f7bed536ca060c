package web

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"slices"
	"strconv"

	"go.uber.org/zap"

	"cardapio/internal/application/commands"
	"cardapio/internal/domain"
	"cardapio/internal/urlstate"
)

//go:embed templates/*.html
var tmplFS embed.FS

var listTmpl = template.Must(template.ParseFS(tmplFS, "templates/list.html"))

// link is an anchor whose href is the current page with one filter changed
type link struct {
	Label  string
	Href   string
	Active bool
}

type itemView struct {
	domain.ListItem
	Category string
	Glyph    string
	Diets    []string
}

type hiddenField struct {
	Name  string
	Value string
}

type listPageData struct {
	Kind       domain.Kind
	Kinds      []link
	Self       string
	Clear      string
	Title      string
	Hidden     []hiddenField
	Categories []link
	Diets      []link
	Sorts      []link
	Items      []itemView
	Meta       domain.PaginationMeta
	Next       string
	Filtered   bool
	Err        error
}

func (s *Server) listPage(w http.ResponseWriter, r *http.Request) {
	kind, ok := kindVar(w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	path := "/" + kind.Path()
	query := urlstate.Canonical(r.URL.RawQuery)
	filters := domain.ParseFilterState(query)

	// The list renders without filter choices rather than failing the page
	tax, err := commands.NewLoadTaxonomyCommand(s.backend).Execute(ctx)
	if err != nil {
		s.log.Warn("failed to load taxonomy", zap.Error(err))
		tax = &domain.Taxonomy{}
	}

	data := listPageData{
		Kind:     kind,
		Kinds:    kindLinks(kind),
		Self:     urlstate.Target(path, query),
		Clear:    path,
		Title:    filters.Title(),
		Hidden:   hiddenFields(filters),
		Filtered: filters.Without(domain.FilterPage).Len() > 0,
	}
	data.Categories = categoryLinks(path, query, filters, tax.Categories)
	data.Diets = dietLinks(path, query, filters, tax.DietTags)
	data.Sorts = sortLinks(path, query, filters)

	status := http.StatusOK
	page, err := s.listCommand(kind, filters).Execute(ctx)
	if err != nil {
		s.log.Warn("list fetch failed", zap.String("url", data.Self), zap.Error(err))
		data.Err = err
		status = statusFor(err)
	} else {
		data.Meta = page.Meta
		data.Items = itemViews(page.Data, tax)
		if page.Meta.HasNext() {
			data.Next = urlstate.Target(path, urlstate.Set(query, domain.FilterPage, strconv.Itoa(page.Meta.NextPage())))
		}
	}

	var buf bytes.Buffer
	if err := listTmpl.Execute(&buf, data); err != nil {
		s.log.Error("template error", zap.Error(err))
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		s.log.Debug("error writing response", zap.Error(err))
	}
}

func kindLinks(current domain.Kind) []link {
	kinds := []domain.Kind{domain.KindRecipe, domain.KindPost, domain.KindFavorite}
	links := make([]link, 0, len(kinds))
	for _, k := range kinds {
		links = append(links, link{Label: k.Path(), Href: "/" + k.Path(), Active: k == current})
	}
	return links
}

// hiddenFields carries the other filters through the search form. The page
// is dropped so a new search starts from the first page.
func hiddenFields(filters domain.FilterState) []hiddenField {
	var fields []hiddenField
	for _, k := range filters.Keys() {
		if k == domain.FilterTitle || k == domain.FilterPage {
			continue
		}
		v, _ := filters.Get(k)
		fields = append(fields, hiddenField{Name: k, Value: v})
	}
	return fields
}

// filterHref changes one filter and goes back to the first page
func filterHref(path, query, key, value string) string {
	return urlstate.Target(path, urlstate.SetAll(query, map[string]string{key: value, domain.FilterPage: ""}))
}

func categoryLinks(path, query string, filters domain.FilterState, categories []domain.Category) []link {
	current, _ := filters.CategoryID()
	links := make([]link, 0, len(categories))
	for _, c := range categories {
		active := c.ID == current
		value := strconv.FormatInt(c.ID, 10)
		if active {
			value = ""
		}
		links = append(links, link{
			Label:  c.Icon.Glyph() + " " + c.Name,
			Href:   filterHref(path, query, domain.FilterCategory, value),
			Active: active,
		})
	}
	return links
}

func dietLinks(path, query string, filters domain.FilterState, tags []domain.DietTag) []link {
	selected := filters.DietIDs()
	links := make([]link, 0, len(tags))
	for _, d := range tags {
		active := slices.Contains(selected, d.ID)
		var next []int64
		if active {
			next = slices.DeleteFunc(slices.Clone(selected), func(id int64) bool { return id == d.ID })
		} else {
			next = append(slices.Clone(selected), d.ID)
		}
		links = append(links, link{
			Label:  d.Name,
			Href:   filterHref(path, query, domain.FilterDiet, domain.JoinIDs(next)),
			Active: active,
		})
	}
	return links
}

func sortLinks(path, query string, filters domain.FilterState) []link {
	current := filters.Sort()
	links := make([]link, 0, len(domain.SortKeys))
	for _, k := range domain.SortKeys {
		links = append(links, link{
			Label:  string(k),
			Href:   filterHref(path, query, domain.FilterSort, string(k)),
			Active: k == current,
		})
	}
	return links
}

func itemViews(items []domain.ListItem, tax *domain.Taxonomy) []itemView {
	views := make([]itemView, 0, len(items))
	for _, it := range items {
		v := itemView{ListItem: it, Glyph: domain.IconNone.Glyph()}
		if c, ok := tax.Category(it.CategoryID); ok {
			v.Category = c.Name
			v.Glyph = c.Icon.Glyph()
		}
		for _, id := range it.DietTagIDs {
			if name := tax.DietTagName(id); name != "" {
				v.Diets = append(v.Diets, name)
			}
		}
		views = append(views, v)
	}
	return views
}
