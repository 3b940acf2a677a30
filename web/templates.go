package web

import (
	"bytes"
	"html/template"
	"net/http"
	"path/filepath"
	"time"
	"unicode"

	"github.com/Klikmok/django-sprint4/internal/forms"
	"github.com/Klikmok/django-sprint4/internal/models"
)

type HTMLData struct {
	Title       string
	Path        string
	FormError   string            // общая ошибка формы
	FormErrors  forms.Errors      // ошибки по полям
	FormData    map[string]string // для хранения введённых значений в форму
	CurrentUser *models.User
	Post        *models.Post
	Page        *Page
	Comments    []*models.Comment
	Category    *models.Category
	Categories  []*models.Category
	Locations   []*models.Location
	Profile     *models.User
}

var functions = template.FuncMap{
	"cap": func(str string) string {
		if str == "" {
			return ""
		}
		runes := []rune(str)
		runes[0] = unicode.ToUpper(runes[0])
		return string(runes)
	},
	"formatDate": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("02 Jan 2006, 15:04")
	},
}

func (app *app) RenderHTML(w http.ResponseWriter, r *http.Request, pageFile string, data *HTMLData) {
	if data == nil {
		data = &HTMLData{}
	}

	data.Path = r.URL.Path

	// Добавляем текущего пользователя, если он не установлен
	if data.CurrentUser == nil {
		data.CurrentUser = app.getCurrentUser(r)
	}

	layoutFile := "base.layout.html"

	files := []string{
		filepath.Join(app.HTMLDir, layoutFile),
		filepath.Join(app.HTMLDir, pageFile),
	}

	ts, err := template.New("").Funcs(functions).ParseFiles(files...)
	if err != nil {
		app.ServerError(w, err)
		return
	}

	ts, err = ts.ParseGlob(filepath.Join(app.HTMLDir, "*.partial.html"))
	if err != nil {
		app.ServerError(w, err)
		return
	}

	// Рендерим во временный буфер: в ответ уходит либо страница целиком,
	// либо ошибка
	buf := new(bytes.Buffer)
	if err := ts.ExecuteTemplate(buf, "base", data); err != nil {
		app.ServerError(w, err)
		return
	}

	buf.WriteTo(w)
}
