package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (app *app) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	fileServer := http.FileServer(http.Dir(app.StaticDir))
	r.Handle("/static/*", http.StripPrefix("/static", fileServer))

	mediaServer := http.FileServer(http.Dir(app.MediaDir))
	r.Handle("/media/*", http.StripPrefix("/media", mediaServer))

	r.Get("/", app.home)
	r.Get("/category/{category_slug}", app.categoryPosts)
	r.Get("/profile/{username}", app.profile)
	r.Get("/posts/{post_id}", app.postDetail)

	// Маршруты только для гостей (неавторизованных)
	r.HandleFunc("/auth/registration", app.requireGuest(app.register))
	r.HandleFunc("/auth/login", app.requireGuest(app.login))

	// Маршруты только для авторизованных пользователей
	r.Post("/auth/logout", app.requireAuth(app.logout))
	r.HandleFunc("/profile/edit", app.requireAuth(app.editProfile))

	r.HandleFunc("/posts/create", app.requireAuth(app.createPost))
	r.HandleFunc("/posts/{post_id}/edit", app.requireAuth(app.editPost))
	r.HandleFunc("/posts/{post_id}/delete", app.requireAuth(app.deletePost))

	r.Post("/posts/{post_id}/comment", app.requireAuth(app.addComment))
	r.HandleFunc("/posts/{post_id}/comment/{comment_id}/edit", app.requireAuth(app.editComment))
	r.HandleFunc("/posts/{post_id}/comment/{comment_id}/delete", app.requireAuth(app.deleteComment))

	return r
}
