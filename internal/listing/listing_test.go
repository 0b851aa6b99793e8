package listing

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/Zachkp/portfolio/internal/content"
)

func sampleItems(n int) []content.Item {
	items := make([]content.Item, n)
	for i := range items {
		items[i] = content.Item{ID: fmt.Sprintf("item-%d", i+1), Title: fmt.Sprintf("Item %d", i+1)}
	}
	return items
}

func pageIDs(p Page) []string {
	out := []string{}
	for _, it := range p.Items {
		out = append(out, it.ID)
	}
	return out
}

func TestApply_Pagination(t *testing.T) {
	items := sampleItems(7)

	tests := []struct {
		name string
		page int
		want []string
	}{
		{"first page", 1, []string{"item-1", "item-2", "item-3"}},
		{"middle page", 2, []string{"item-4", "item-5", "item-6"}},
		{"last page", 3, []string{"item-7"}},
		{"past the end", 5, []string{}},
		{"zero", 0, []string{}},
		{"negative", -1, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Apply(items, Filter{}, tt.page, 3)
			if p.TotalPages != 3 {
				t.Fatalf("expected 3 pages, got %d", p.TotalPages)
			}
			if p.Total != 7 {
				t.Fatalf("expected 7 matches, got %d", p.Total)
			}
			if got := pageIDs(p); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			if p.Items == nil {
				t.Fatal("expected non-nil items")
			}
		})
	}
}

func TestApply_DefaultPageSize(t *testing.T) {
	p := Apply(sampleItems(4), Filter{}, 2, 0)
	if p.Size != DefaultPageSize || p.TotalPages != 2 || len(p.Items) != 1 {
		t.Fatalf("unexpected page: %+v", p)
	}
}

func TestApply_Empty(t *testing.T) {
	p := Apply(nil, Filter{Query: "x"}, 1, 3)
	if p.TotalPages != 0 || len(p.Items) != 0 {
		t.Fatalf("unexpected page: %+v", p)
	}
	if len(p.Pages()) != 0 || p.HasNext() || p.HasPrev() {
		t.Fatalf("unexpected navigation for empty page: %+v", p)
	}
}

func blogItems() []content.Item {
	return []content.Item{
		{ID: "eda", Title: "Beyond Basic EDA", Excerpt: "Hidden patterns", Category: "Data Science", Tags: []string{"Statistics", "Python"}},
		{ID: "mlops", Title: "Why Models Fail", Excerpt: "Production pitfalls", Category: "Machine Learning", Tags: []string{"MLOps"}},
		{ID: "pipelines", Title: "Fast Pipelines", Excerpt: "Speed up python jobs", Category: "Data Engineering", Tags: []string{"Performance"}},
		{ID: "viz", Title: "Charts", Excerpt: "Visual storytelling", Category: "Data Science", Tags: []string{"Visualization"}},
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"no filter", Filter{}, []string{"eda", "mlops", "pipelines", "viz"}},
		{"title match is case-insensitive", Filter{Query: "WHY"}, []string{"mlops"}},
		{"excerpt match", Filter{Query: "python"}, []string{"eda", "pipelines"}},
		{"tag substring", Filter{Query: "ops"}, []string{"mlops"}},
		{"whitespace query ignored", Filter{Query: "   "}, []string{"eda", "mlops", "pipelines", "viz"}},
		{"category exact", Filter{Category: "Data Science"}, []string{"eda", "viz"}},
		{"category is case-sensitive", Filter{Category: "data science"}, []string{}},
		{"tag exact", Filter{Tag: "Python"}, []string{"eda"}},
		{"tag is not substring", Filter{Tag: "Pyth"}, []string{}},
		{"query and category", Filter{Query: "python", Category: "Data Science"}, []string{"eda"}},
		{"category and tag", Filter{Category: "Data Science", Tag: "Visualization"}, []string{"viz"}},
		{"no results", Filter{Query: "kubernetes"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := []string{}
			for _, it := range Match(blogItems(), tt.filter) {
				got = append(got, it.ID)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestApply_FilterThenPaginate(t *testing.T) {
	p := Apply(blogItems(), Filter{Category: "Data Science"}, 1, 1)
	if p.TotalPages != 2 || !reflect.DeepEqual(pageIDs(p), []string{"eda"}) {
		t.Fatalf("unexpected page: %+v", p)
	}
	if !p.HasNext() || p.HasPrev() {
		t.Fatalf("unexpected navigation: next=%v prev=%v", p.HasNext(), p.HasPrev())
	}
	if !reflect.DeepEqual(p.Pages(), []int{1, 2}) {
		t.Fatalf("unexpected pages: %v", p.Pages())
	}
}

func TestFacets(t *testing.T) {
	items := blogItems()
	if got := Categories(items); !reflect.DeepEqual(got, []string{"Data Engineering", "Data Science", "Machine Learning"}) {
		t.Errorf("unexpected categories: %v", got)
	}
	if got := Tags(items); !reflect.DeepEqual(got, []string{"MLOps", "Performance", "Python", "Statistics", "Visualization"}) {
		t.Errorf("unexpected tags: %v", got)
	}
}

func TestFilter_Active(t *testing.T) {
	if (Filter{}).Active() || (Filter{Query: " "}).Active() {
		t.Error("empty filter reported active")
	}
	if !(Filter{Tag: "Go"}).Active() {
		t.Error("tag filter reported inactive")
	}
}
