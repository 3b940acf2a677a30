package web

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Klikmok/django-sprint4/internal/database"
)

// categoryPosts - страница категории со списком её живых публикаций.
// Снятая с публикации категория отдаёт 404 вместе со всеми публикациями,
// независимо от их собственных флагов.
func (app *app) categoryPosts(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "category_slug")

	category, err := app.CategoryService.GetPublishedBySlug(slug)
	if err != nil {
		if errors.Is(err, database.ErrCategoryNotFound) {
			app.NotFound(w)
			return
		}
		app.ServerError(w, err)
		return
	}

	now := time.Now()

	posts, err := app.PostService.ListByCategory(category.ID, now)
	if err != nil {
		app.ServerError(w, err)
		return
	}

	data := &HTMLData{
		Title:    category.Title,
		Category: category,
		Page:     paginate(posts, pageNumber(r)),
	}

	app.RenderHTML(w, r, "category.page.html", data)
}
