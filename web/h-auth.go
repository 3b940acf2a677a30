package web

import (
	"net/http"
)

func (app *app) register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		data := &HTMLData{
			Title: "Регистрация",
		}
		app.RenderHTML(w, r, "register.page.html", data)
		return
	}

	username := r.FormValue("username")
	email := r.FormValue("email")
	password := r.FormValue("password")

	app.infoLog.Printf("Attempting to register user: username=%q email=%q", username, email)

	user, err := app.UserService.Create(username, email, password)
	if err != nil {
		data := &HTMLData{
			Title:     "Регистрация",
			FormError: err.Error(),
			FormData: map[string]string{
				"username": username,
				"email":    email,
			},
		}
		app.RenderHTML(w, r, "register.page.html", data)
		return
	}

	app.infoLog.Printf("Successfully registered user: %q (ID %d)", user.Username, user.ID)

	// Создаем сессию для нового пользователя
	session, err := app.SessionService.CreateSession(user.ID)
	if err != nil {
		app.errorLog.Printf("Failed to create session for user %d: %v", user.ID, err)
		// Переадресуем на login при ошибке создания сессии
		http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
		return
	}

	app.setSessionCookie(w, session.Token)

	app.infoLog.Printf("Session created for user %q", user.Username)

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (app *app) login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		data := &HTMLData{
			Title: "Войти",
		}
		app.RenderHTML(w, r, "login.page.html", data)
		return
	}

	email := r.FormValue("email")
	password := r.FormValue("password")

	app.infoLog.Printf("Attempting to login user: email=%q", email)

	user, err := app.UserService.Verify(email, password)
	if err != nil {
		data := &HTMLData{
			Title:     "Войти",
			FormError: err.Error(),
			FormData: map[string]string{
				"email": email,
			},
		}
		app.RenderHTML(w, r, "login.page.html", data)
		return
	}

	app.infoLog.Printf("Login successful: id=%d, username=%q", user.ID, user.Username)

	session, err := app.SessionService.CreateSession(user.ID)
	if err != nil {
		app.errorLog.Printf("Failed to create session for user %d: %v", user.ID, err)
		app.ServerError(w, err)
		return
	}

	app.setSessionCookie(w, session.Token)

	app.infoLog.Printf("Session created for user %q", user.Username)

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (app *app) logout(w http.ResponseWriter, r *http.Request) {
	token := app.getSessionToken(r)
	if token != "" {
		if err := app.SessionService.DeleteSession(token); err != nil {
			app.errorLog.Printf("Failed to delete session: %v", err)
		}
	}

	app.clearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
