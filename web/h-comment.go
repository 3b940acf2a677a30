package web

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Klikmok/django-sprint4/internal/database"
	"github.com/Klikmok/django-sprint4/internal/forms"
	"github.com/Klikmok/django-sprint4/internal/models"
)

// commentID читает идентификатор комментария из пути
func commentID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "comment_id"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// getPostComment находит комментарий, принадлежащий публикации из пути.
// Комментарий чужой публикации или несуществующей пары (post, comment)
// отдаёт nil: обработчик отвечает 404.
func (app *app) getPostComment(r *http.Request, viewer *models.User, now time.Time) (*models.Post, *models.Comment) {
	pid, ok := postID(r)
	if !ok {
		return nil, nil
	}
	cid, ok := commentID(r)
	if !ok {
		return nil, nil
	}

	post, err := app.PostService.GetForViewer(pid, viewerID(viewer), now)
	if err != nil {
		return nil, nil
	}

	comment, err := app.CommentService.Get(cid)
	if err != nil || comment.PostID != post.ID {
		return nil, nil
	}

	return post, comment
}

// addComment добавляет комментарий к публикации
func (app *app) addComment(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(r)
	if !ok {
		app.NotFound(w)
		return
	}

	user := app.getCurrentUser(r)
	if user == nil {
		http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
		return
	}

	now := time.Now()

	post, err := app.PostService.GetForViewer(id, user.ID, now)
	if err != nil {
		if errors.Is(err, database.ErrPostNotFound) {
			app.NotFound(w)
			return
		}
		app.ServerError(w, err)
		return
	}

	form := &forms.CommentForm{Text: r.FormValue("text")}
	if !form.Validate() {
		// Перерисовываем страницу публикации с ошибками формы
		comments, err := app.CommentService.ListByPost(post.ID)
		if err != nil {
			app.ServerError(w, err)
			return
		}

		data := &HTMLData{
			Title:       post.Title,
			CurrentUser: user,
			Post:        post,
			Comments:    comments,
			FormErrors:  form.Errors,
			FormData:    map[string]string{"text": form.Text},
		}
		app.RenderHTML(w, r, "detail.page.html", data)
		return
	}

	comment, err := app.CommentService.Create(form.Text, post.ID, user.ID)
	if err != nil {
		app.ServerError(w, err)
		return
	}

	app.infoLog.Printf("Comment created: ID=%d, Post=%d, Author=%q",
		comment.ID, post.ID, user.Username)

	http.Redirect(w, r, "/posts/"+strconv.Itoa(post.ID), http.StatusSeeOther)
}

// editComment редактирует комментарий
func (app *app) editComment(w http.ResponseWriter, r *http.Request) {
	user := app.getCurrentUser(r)
	if user == nil {
		http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
		return
	}

	post, comment := app.getPostComment(r, user, time.Now())
	if comment == nil {
		app.NotFound(w)
		return
	}

	detailURL := "/posts/" + strconv.Itoa(post.ID)

	// Мягкий отказ: не автор комментария уводится на страницу публикации
	if comment.UserID != user.ID {
		http.Redirect(w, r, detailURL, http.StatusSeeOther)
		return
	}

	if r.Method != http.MethodPost {
		data := &HTMLData{
			Title:       "Редактировать комментарий",
			CurrentUser: user,
			Post:        post,
			Comments:    []*models.Comment{comment},
			FormData:    map[string]string{"text": comment.Text},
		}
		app.RenderHTML(w, r, "comment.page.html", data)
		return
	}

	form := &forms.CommentForm{Text: r.FormValue("text")}
	if !form.Validate() {
		data := &HTMLData{
			Title:       "Редактировать комментарий",
			CurrentUser: user,
			Post:        post,
			Comments:    []*models.Comment{comment},
			FormErrors:  form.Errors,
			FormData:    map[string]string{"text": form.Text},
		}
		app.RenderHTML(w, r, "comment.page.html", data)
		return
	}

	if err := app.CommentService.Update(comment.ID, form.Text, user.ID); err != nil {
		app.ServerError(w, err)
		return
	}

	app.infoLog.Printf("Comment updated: ID=%d, Author=%q", comment.ID, user.Username)

	http.Redirect(w, r, detailURL, http.StatusSeeOther)
}

// deleteComment удаляет комментарий
func (app *app) deleteComment(w http.ResponseWriter, r *http.Request) {
	user := app.getCurrentUser(r)
	if user == nil {
		http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
		return
	}

	post, comment := app.getPostComment(r, user, time.Now())
	if comment == nil {
		app.NotFound(w)
		return
	}

	detailURL := "/posts/" + strconv.Itoa(post.ID)

	// Мягкий отказ для не-автора: комментарий остаётся на месте
	if comment.UserID != user.ID {
		http.Redirect(w, r, detailURL, http.StatusSeeOther)
		return
	}

	if r.Method != http.MethodPost {
		// Страница подтверждения удаления
		data := &HTMLData{
			Title:       "Удалить комментарий",
			CurrentUser: user,
			Post:        post,
			Comments:    []*models.Comment{comment},
		}
		app.RenderHTML(w, r, "comment.page.html", data)
		return
	}

	if err := app.CommentService.Delete(comment.ID, user.ID); err != nil {
		app.ServerError(w, err)
		return
	}

	app.infoLog.Printf("Comment deleted: ID=%d, Author=%q", comment.ID, user.Username)

	http.Redirect(w, r, detailURL, http.StatusSeeOther)
}
