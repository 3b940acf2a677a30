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

// postID читает идентификатор публикации из пути
func postID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "post_id"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// postDetail - страница отдельной публикации с комментариями.
// Автор видит свою публикацию в любом состоянии (предпросмотр),
// для остальных скрытая публикация неотличима от несуществующей.
func (app *app) postDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(r)
	if !ok {
		app.NotFound(w)
		return
	}

	viewer := app.getCurrentUser(r)
	now := time.Now()

	post, err := app.PostService.GetForViewer(id, viewerID(viewer), now)
	if err != nil {
		if errors.Is(err, database.ErrPostNotFound) {
			app.NotFound(w)
			return
		}
		app.ServerError(w, err)
		return
	}

	comments, err := app.CommentService.ListByPost(post.ID)
	if err != nil {
		app.ServerError(w, err)
		return
	}

	data := &HTMLData{
		Title:       post.Title,
		CurrentUser: viewer,
		Post:        post,
		Comments:    comments,
	}

	app.RenderHTML(w, r, "detail.page.html", data)
}

// postFormChoices загружает справочники для формы публикации
func (app *app) postFormChoices(w http.ResponseWriter) ([]*models.Category, []*models.Location, bool) {
	categories, err := app.CategoryService.ListPublished()
	if err != nil {
		app.ServerError(w, err)
		return nil, nil, false
	}

	locations, err := app.LocationService.ListPublished()
	if err != nil {
		app.ServerError(w, err)
		return nil, nil, false
	}

	return categories, locations, true
}

// parsePostForm читает форму публикации из запроса
func parsePostForm(r *http.Request) *forms.PostForm {
	// Форма с изображением приходит как multipart
	if err := r.ParseMultipartForm(maxUploadSize); err != nil && err != http.ErrNotMultipart {
		r.ParseForm()
	}

	return &forms.PostForm{
		Title:       r.FormValue("title"),
		Text:        r.FormValue("text"),
		PubDate:     r.FormValue("pub_date"),
		CategoryID:  r.FormValue("category"),
		LocationID:  r.FormValue("location"),
		IsPublished: r.FormValue("is_published") != "",
	}
}

func postFormData(form *forms.PostForm) map[string]string {
	isPublished := ""
	if form.IsPublished {
		isPublished = "1"
	}
	return map[string]string{
		"title":        form.Title,
		"text":         form.Text,
		"pub_date":     form.PubDate,
		"category":     form.CategoryID,
		"location":     form.LocationID,
		"is_published": isPublished,
	}
}

// createPost создает новую публикацию
func (app *app) createPost(w http.ResponseWriter, r *http.Request) {
	user := app.getCurrentUser(r)
	if user == nil {
		http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
		return
	}

	categories, locations, ok := app.postFormChoices(w)
	if !ok {
		return
	}

	if r.Method != http.MethodPost {
		data := &HTMLData{
			Title:       "Новая публикация",
			CurrentUser: user,
			Categories:  categories,
			Locations:   locations,
			FormData: map[string]string{
				"pub_date":     time.Now().Format("2006-01-02T15:04"),
				"is_published": "1",
			},
		}
		app.RenderHTML(w, r, "create-post.page.html", data)
		return
	}

	form := parsePostForm(r)

	renderAgain := func(formError string, formErrors forms.Errors) {
		data := &HTMLData{
			Title:       "Новая публикация",
			CurrentUser: user,
			Categories:  categories,
			Locations:   locations,
			FormError:   formError,
			FormErrors:  formErrors,
			FormData:    postFormData(form),
		}
		app.RenderHTML(w, r, "create-post.page.html", data)
	}

	if !form.Validate() {
		renderAgain("", form.Errors)
		return
	}

	image, err := app.saveImage(r)
	if err != nil {
		renderAgain("Не удалось сохранить изображение", nil)
		return
	}

	post, err := app.PostService.Create(form.Title, form.Text, form.ParsedPubDate,
		user.ID, form.ParsedLocationID, form.ParsedCategoryID, form.IsPublished, image)
	if err != nil {
		renderAgain(err.Error(), nil)
		return
	}

	app.infoLog.Printf("Post created: ID=%d, Title=%q, Author=%q",
		post.ID, post.Title, user.Username)

	http.Redirect(w, r, "/profile/"+user.Username, http.StatusSeeOther)
}

// editPost редактирует публикацию
func (app *app) editPost(w http.ResponseWriter, r *http.Request) {
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

	// Не автор - мягкий отказ: публикация не меняется,
	// пользователя уводим на страницу публикации
	if post.UserID != user.ID {
		http.Redirect(w, r, "/posts/"+strconv.Itoa(id), http.StatusSeeOther)
		return
	}

	categories, locations, ok := app.postFormChoices(w)
	if !ok {
		return
	}

	if r.Method != http.MethodPost {
		form := &forms.PostForm{
			Title:       post.Title,
			Text:        post.Text,
			PubDate:     post.PubDate.Format("2006-01-02T15:04"),
			IsPublished: post.IsPublished,
		}
		if post.CategoryID != nil {
			form.CategoryID = strconv.Itoa(*post.CategoryID)
		}
		if post.LocationID != nil {
			form.LocationID = strconv.Itoa(*post.LocationID)
		}

		data := &HTMLData{
			Title:       "Редактировать публикацию",
			CurrentUser: user,
			Post:        post,
			Categories:  categories,
			Locations:   locations,
			FormData:    postFormData(form),
		}
		app.RenderHTML(w, r, "create-post.page.html", data)
		return
	}

	form := parsePostForm(r)

	renderAgain := func(formError string, formErrors forms.Errors) {
		data := &HTMLData{
			Title:       "Редактировать публикацию",
			CurrentUser: user,
			Post:        post,
			Categories:  categories,
			Locations:   locations,
			FormError:   formError,
			FormErrors:  formErrors,
			FormData:    postFormData(form),
		}
		app.RenderHTML(w, r, "create-post.page.html", data)
	}

	if !form.Validate() {
		renderAgain("", form.Errors)
		return
	}

	image, err := app.saveImage(r)
	if err != nil {
		renderAgain("Не удалось сохранить изображение", nil)
		return
	}
	if image == "" {
		// Новое изображение не прислано - оставляем прежнее
		image = post.Image
	}

	err = app.PostService.Update(id, form.Title, form.Text, form.ParsedPubDate,
		form.ParsedLocationID, form.ParsedCategoryID, form.IsPublished, image, user.ID)
	if err != nil {
		renderAgain(err.Error(), nil)
		return
	}

	app.infoLog.Printf("Post updated: ID=%d, Title=%q, Author=%q",
		id, form.Title, user.Username)

	http.Redirect(w, r, "/posts/"+strconv.Itoa(id), http.StatusSeeOther)
}

// deletePost удаляет публикацию
func (app *app) deletePost(w http.ResponseWriter, r *http.Request) {
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

	// Мягкий отказ для не-автора
	if post.UserID != user.ID {
		http.Redirect(w, r, "/posts/"+strconv.Itoa(id), http.StatusSeeOther)
		return
	}

	if r.Method != http.MethodPost {
		// Страница подтверждения удаления
		data := &HTMLData{
			Title:       "Удалить публикацию",
			CurrentUser: user,
			Post:        post,
		}
		app.RenderHTML(w, r, "delete-post.page.html", data)
		return
	}

	if err := app.PostService.Delete(id, user.ID); err != nil {
		app.ServerError(w, err)
		return
	}

	app.infoLog.Printf("Post deleted: ID=%d, Author=%q", id, user.Username)

	http.Redirect(w, r, "/profile/"+user.Username, http.StatusSeeOther)
}
