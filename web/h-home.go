package web

import (
	"net/http"
	"time"
)

// home - главная страница со списком живых публикаций
func (app *app) home(w http.ResponseWriter, r *http.Request) {
	now := time.Now()

	posts, err := app.PostService.ListPublic(now)
	if err != nil {
		app.ServerError(w, err)
		return
	}

	data := &HTMLData{
		Title: "Главная",
		Page:  paginate(posts, pageNumber(r)),
	}

	app.RenderHTML(w, r, "index.page.html", data)
}
