package web

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Klikmok/django-sprint4/internal/database"
	"github.com/Klikmok/django-sprint4/internal/forms"
)

// profile - страница пользователя с его публикациями.
// Владелец видит все свои публикации, включая скрытые и отложенные.
func (app *app) profile(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	author, err := app.UserService.GetByUsername(username)
	if err != nil {
		if errors.Is(err, database.ErrUserNotFound) {
			app.NotFound(w)
			return
		}
		app.ServerError(w, err)
		return
	}

	viewer := app.getCurrentUser(r)
	now := time.Now()

	posts, err := app.PostService.ListByAuthor(author.ID, viewerID(viewer), now)
	if err != nil {
		app.ServerError(w, err)
		return
	}

	data := &HTMLData{
		Title:       author.Username,
		CurrentUser: viewer,
		Profile:     author,
		Page:        paginate(posts, pageNumber(r)),
	}

	app.RenderHTML(w, r, "profile.page.html", data)
}

// editProfile - форма редактирования собственного профиля
func (app *app) editProfile(w http.ResponseWriter, r *http.Request) {
	user := app.getCurrentUser(r)
	if user == nil {
		http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
		return
	}

	if r.Method != http.MethodPost {
		data := &HTMLData{
			Title:       "Редактировать профиль",
			CurrentUser: user,
			FormData: map[string]string{
				"username":   user.Username,
				"email":      user.Email,
				"first_name": user.FirstName,
				"last_name":  user.LastName,
			},
		}
		app.RenderHTML(w, r, "user.page.html", data)
		return
	}

	form := &forms.ProfileForm{
		Username:  r.FormValue("username"),
		Email:     r.FormValue("email"),
		FirstName: r.FormValue("first_name"),
		LastName:  r.FormValue("last_name"),
	}

	renderAgain := func(formError string, formErrors forms.Errors) {
		data := &HTMLData{
			Title:       "Редактировать профиль",
			CurrentUser: user,
			FormError:   formError,
			FormErrors:  formErrors,
			FormData: map[string]string{
				"username":   form.Username,
				"email":      form.Email,
				"first_name": form.FirstName,
				"last_name":  form.LastName,
			},
		}
		app.RenderHTML(w, r, "user.page.html", data)
	}

	if !form.Validate() {
		renderAgain("", form.Errors)
		return
	}

	err := app.UserService.UpdateProfile(user.ID, form.Username, form.Email,
		form.FirstName, form.LastName)
	if err != nil {
		renderAgain(err.Error(), nil)
		return
	}

	app.infoLog.Printf("Profile updated: ID=%d, Username=%q", user.ID, form.Username)

	http.Redirect(w, r, "/profile/"+form.Username, http.StatusSeeOther)
}
