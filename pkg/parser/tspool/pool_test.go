package tspool_test

import (
	"context"
	"sync"
	"testing"

	"github.com/specvital/cy2pw/pkg/domain"
	"github.com/specvital/cy2pw/pkg/parser/tspool"
)

func TestParse_RaceFree(t *testing.T) {
	t.Parallel()

	const goroutines = 50
	source := []byte("cy.visit('/');")

	var wg sync.WaitGroup
	wg.Add(goroutines)

	errCh := make(chan error, goroutines)

	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			tree, err := tspool.Parse(context.Background(), domain.LanguageJavaScript, source)
			if err != nil {
				errCh <- err
				return
			}
			defer tree.Close()
		}()
	}

	wg.Wait()
	close(errCh)

	for err := range errCh {
		t.Errorf("Parse failed: %v", err)
	}
}

func TestGetLanguage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		lang domain.Language
		want domain.Language
	}{
		{name: "should use the javascript grammar", lang: domain.LanguageJavaScript, want: domain.LanguageJavaScript},
		{name: "should use the tsx grammar", lang: domain.LanguageTSX, want: domain.LanguageTSX},
		{name: "should fall back to typescript", lang: domain.Language("coffee"), want: domain.LanguageTypeScript},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := tspool.GetLanguage(tt.lang)
			if got == nil || got != tspool.GetLanguage(tt.want) {
				t.Errorf("GetLanguage(%q) did not resolve to the %s grammar", tt.lang, tt.want)
			}
		})
	}
}

func TestFirstError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		source  string
		wantNil bool
		wantRow uint32
	}{
		{name: "should return nil for valid source", source: "cy.visit('/');\n", wantNil: true},
		{name: "should locate the first broken statement", source: "cy.visit('/');\ncy.get('a').click(;\n", wantRow: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tree, err := tspool.Parse(context.Background(), domain.LanguageJavaScript, []byte(tt.source))
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			defer tree.Close()

			bad := tspool.FirstError(tree.RootNode())
			if tt.wantNil {
				if bad != nil {
					t.Errorf("FirstError() = %s, want nil", bad.Type())
				}
				return
			}
			if bad == nil {
				t.Fatal("FirstError() = nil, want a node")
			}
			if row := bad.StartPoint().Row; row != tt.wantRow {
				t.Errorf("FirstError() row = %d, want %d", row, tt.wantRow)
			}
		})
	}
}

func TestParse_TypeScriptSyntax(t *testing.T) {
	t.Parallel()

	source := []byte("function visit(id: string): void { cy.visit('/' + id); }")

	tree, err := tspool.Parse(context.Background(), domain.LanguageTypeScript, source)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	defer tree.Close()

	if tree.RootNode().HasError() {
		t.Errorf("unexpected syntax error in %s", tree.RootNode().String())
	}
}

func TestQueryWithCache(t *testing.T) {
	t.Parallel()

	source := []byte("cy.get('a').click();\nCypress.Commands.add('login', () => {});")

	tree, err := tspool.Parse(context.Background(), domain.LanguageJavaScript, source)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	defer tree.Close()

	const query = `(member_expression object: (identifier) @object)`

	results, err := tspool.QueryWithCache(tree.RootNode(), source, domain.LanguageJavaScript, query)
	if err != nil {
		t.Fatalf("QueryWithCache failed: %v", err)
	}

	var objects []string
	for _, r := range results {
		objects = append(objects, r.Captures["object"].Content(source))
	}

	want := map[string]bool{"cy": true, "Cypress": true}
	for _, obj := range objects {
		if !want[obj] {
			t.Errorf("unexpected captured object %q", obj)
		}
	}
	if len(objects) != 2 {
		t.Errorf("captured %d objects, want 2 (%v)", len(objects), objects)
	}

	again, err := tspool.QueryWithCache(tree.RootNode(), source, domain.LanguageJavaScript, query)
	if err != nil {
		t.Fatalf("cached QueryWithCache failed: %v", err)
	}
	if len(again) != len(results) {
		t.Errorf("cached query returned %d results, want %d", len(again), len(results))
	}
}

func TestQueryWithCache_Predicates(t *testing.T) {
	t.Parallel()

	source := []byte("cy.visit('/');\npage.goto('/');\nCypress.env('x');")

	tree, err := tspool.Parse(context.Background(), domain.LanguageJavaScript, source)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	defer tree.Close()

	const query = `((member_expression object: (identifier) @object) (#eq? @object "page"))`

	results, err := tspool.QueryWithCache(tree.RootNode(), source, domain.LanguageJavaScript, query)
	if err != nil {
		t.Fatalf("QueryWithCache failed: %v", err)
	}
	if len(results) != 1 || results[0].Node.Content(source) != "page" {
		t.Errorf("results = %+v, want a single page capture", results)
	}
}

func TestQueryWithCache_InvalidQuery(t *testing.T) {
	t.Parallel()

	source := []byte("cy.visit('/');")

	tree, err := tspool.Parse(context.Background(), domain.LanguageJavaScript, source)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	defer tree.Close()

	for i := 0; i < 2; i++ {
		if _, err := tspool.QueryWithCache(tree.RootNode(), source, domain.LanguageJavaScript, "(not_a_node) @x"); err == nil {
			t.Fatalf("attempt %d: expected error for invalid node type", i)
		}
	}
}
