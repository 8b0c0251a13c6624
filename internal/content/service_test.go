package content

import (
	"context"
	"testing"
	"time"
)

func seedRepo() *MemoryRepository {
	repo := NewMemoryRepository()
	repo.AddFAQ(&FAQ{Question: "¿Atienden emergencias?", Answer: "Sí, de 9 a 19.", Category: "servicios", Order: 2})
	repo.AddFAQ(&FAQ{Question: "¿Dónde están ubicados?", Answer: "Av. Principal 123.", Category: "general", Order: 1})
	repo.AddFAQ(&FAQ{Question: "¿Hacen vacunación?", Answer: "Sí.", Category: "servicios", Order: 1})

	repo.AddPost(&Post{Title: "Cuidados de invierno", Slug: "cuidados-invierno", Category: "salud",
		PublishedAt: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)})
	repo.AddPost(&Post{Title: "Alimentación felina", Slug: "alimentacion-felina", Category: "nutricion",
		PublishedAt: time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)})
	repo.AddPost(&Post{Title: "Desparasitación", Slug: "desparasitacion", Category: "salud",
		PublishedAt: time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC)})
	return repo
}

func TestFAQs_Ordering(t *testing.T) {
	svc := NewService(seedRepo())
	faqs, err := svc.FAQs(context.Background())
	if err != nil {
		t.Fatalf("faqs failed: %v", err)
	}
	if len(faqs) != 3 {
		t.Fatalf("expected 3 faqs, got %d", len(faqs))
	}
	// category asc, then order asc within category
	want := []string{"¿Dónde están ubicados?", "¿Hacen vacunación?", "¿Atienden emergencias?"}
	for i, q := range want {
		if faqs[i].Question != q {
			t.Fatalf("faq %d: got %q, want %q", i, faqs[i].Question, q)
		}
	}
}

func TestPosts_NewestFirstAndFilter(t *testing.T) {
	svc := NewService(seedRepo())
	ctx := context.Background()

	all, err := svc.Posts(ctx, "")
	if err != nil {
		t.Fatalf("posts failed: %v", err)
	}
	if len(all) != 3 || all[0].Slug != "desparasitacion" {
		t.Fatalf("expected newest first, got %+v", all)
	}

	salud, err := svc.Posts(ctx, "salud")
	if err != nil {
		t.Fatalf("posts failed: %v", err)
	}
	if len(salud) != 2 {
		t.Fatalf("expected 2 salud posts, got %d", len(salud))
	}
	for _, p := range salud {
		if p.Category != "salud" {
			t.Fatalf("filter leaked category %s", p.Category)
		}
	}
}

func TestPostBySlug(t *testing.T) {
	svc := NewService(seedRepo())
	ctx := context.Background()

	p, err := svc.PostBySlug(ctx, "cuidados-invierno")
	if err != nil {
		t.Fatalf("slug lookup failed: %v", err)
	}
	if p.Title != "Cuidados de invierno" {
		t.Fatalf("wrong post: %s", p.Title)
	}

	if _, err := svc.PostBySlug(ctx, "no-existe"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
