package web

import (
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Klikmok/django-sprint4/internal/database"
	"github.com/Klikmok/django-sprint4/internal/models"
)

func newTestApp(t *testing.T) *app {
	t.Helper()

	db, err := database.New(":memory:", "../blogicum.sql")
	require.NoError(t, err)

	// Одно соединение, чтобы in-memory база не исчезала между запросами
	db.DBConn.SetMaxOpenConns(1)
	db.DBConn.SetMaxIdleConns(1)

	t.Cleanup(func() { db.Close() })

	discard := log.New(io.Discard, "", 0)

	return &app{
		infoLog:         discard,
		errorLog:        discard,
		HTMLDir:         "../ui/html",
		StaticDir:       "../ui/static",
		MediaDir:        t.TempDir(),
		Database:        db,
		UserService:     database.NewUserService(db),
		SessionService:  database.NewSessionService(db),
		PostService:     database.NewPostService(db),
		CommentService:  database.NewCommentService(db),
		CategoryService: database.NewCategoryService(db),
		LocationService: database.NewLocationService(db),
	}
}

func registerUser(t *testing.T, app *app, username string) *models.User {
	t.Helper()

	user, err := app.UserService.Create(username, username+"@example.com", "secret-1")
	require.NoError(t, err)
	return user
}

// sessionCookie создает сессию пользователя и возвращает cookie для запросов
func sessionCookie(t *testing.T, app *app, user *models.User) *http.Cookie {
	t.Helper()

	session, err := app.SessionService.CreateSession(user.ID)
	require.NoError(t, err)
	return &http.Cookie{Name: SessionCookieName, Value: session.Token}
}

func seedLivePost(t *testing.T, app *app, author *models.User, categoryID int, pubDate time.Time) *models.Post {
	t.Helper()

	post, err := app.PostService.Create("Заголовок", "Текст", pubDate,
		author.ID, nil, &categoryID, true, "")
	require.NoError(t, err)
	return post
}

func get(app *app, target string, cookie *http.Cookie) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodGet, target, nil)
	if cookie != nil {
		r.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	app.routes().ServeHTTP(w, r)
	return w
}

func postForm(app *app, target string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		r.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	app.routes().ServeHTTP(w, r)
	return w
}

func TestLoginRequiredRedirects(t *testing.T) {
	app := newTestApp(t)

	for _, target := range []string{"/posts/create", "/profile/edit", "/posts/1/edit"} {
		w := get(app, target, nil)
		assert.Equal(t, http.StatusSeeOther, w.Code, target)
		assert.Equal(t, "/auth/login", w.Header().Get("Location"), target)
	}
}

func TestHomePage(t *testing.T) {
	app := newTestApp(t)

	author := registerUser(t, app, "author")
	category, err := app.CategoryService.Create("Путешествия", "travel", "", true)
	require.NoError(t, err)

	seedLivePost(t, app, author, category.ID, time.Now().Add(-time.Hour))
	// Отложенная публикация в ленту не попадает
	seedLivePost(t, app, author, category.ID, time.Now().Add(time.Hour))

	w := get(app, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Equal(t, 1, strings.Count(body, `<article class="post-card">`))
}

func TestHomePaginationClamps(t *testing.T) {
	app := newTestApp(t)

	author := registerUser(t, app, "author")
	category, err := app.CategoryService.Create("Путешествия", "travel", "", true)
	require.NoError(t, err)

	for i := 0; i < 25; i++ {
		seedLivePost(t, app, author, category.ID,
			time.Now().Add(-time.Duration(i+1)*time.Hour))
	}

	w := get(app, "/?page=4", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Страница 3 из 3")
}

func TestCategoryPage(t *testing.T) {
	app := newTestApp(t)

	_, err := app.CategoryService.Create("Путешествия", "travel", "", true)
	require.NoError(t, err)
	_, err = app.CategoryService.Create("Черновики", "drafts", "", false)
	require.NoError(t, err)

	// Опубликованная категория без живых публикаций - пустая страница
	w := get(app, "/category/travel", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Скрытая или несуществующая категория - 404
	w = get(app, "/category/drafts", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = get(app, "/category/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUnknownProfileIs404(t *testing.T) {
	app := newTestApp(t)

	w := get(app, "/profile/ghost", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestScheduledPostVisibleOnlyToAuthor(t *testing.T) {
	app := newTestApp(t)

	author := registerUser(t, app, "author")
	stranger := registerUser(t, app, "stranger")
	category, err := app.CategoryService.Create("Путешествия", "travel", "", true)
	require.NoError(t, err)

	post := seedLivePost(t, app, author, category.ID, time.Now().Add(24*time.Hour))
	target := "/posts/" + strconv.Itoa(post.ID)

	// Автор видит предпросмотр
	w := get(app, target, sessionCookie(t, app, author))
	assert.Equal(t, http.StatusOK, w.Code)

	// Для остальных публикация неотличима от несуществующей
	w = get(app, target, sessionCookie(t, app, stranger))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = get(app, target, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAddComment(t *testing.T) {
	app := newTestApp(t)

	author := registerUser(t, app, "author")
	reader := registerUser(t, app, "reader")
	category, err := app.CategoryService.Create("Путешествия", "travel", "", true)
	require.NoError(t, err)

	post := seedLivePost(t, app, author, category.ID, time.Now().Add(-time.Hour))
	detail := "/posts/" + strconv.Itoa(post.ID)

	w := postForm(app, detail+"/comment",
		url.Values{"text": {"Отличный пост!"}}, sessionCookie(t, app, reader))

	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, detail, w.Header().Get("Location"))

	comments, err := app.CommentService.ListByPost(post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "reader", comments[0].Username)
}

func TestForeignCommentDeleteIsSoftDenied(t *testing.T) {
	app := newTestApp(t)

	author := registerUser(t, app, "author")
	intruder := registerUser(t, app, "intruder")
	category, err := app.CategoryService.Create("Путешествия", "travel", "", true)
	require.NoError(t, err)

	post := seedLivePost(t, app, author, category.ID, time.Now().Add(-time.Hour))
	comment, err := app.CommentService.Create("Мой комментарий", post.ID, author.ID)
	require.NoError(t, err)

	detail := "/posts/" + strconv.Itoa(post.ID)
	target := detail + "/comment/" + strconv.Itoa(comment.ID) + "/delete"

	// Не автор получает мягкий отказ: редирект на публикацию
	w := postForm(app, target, url.Values{}, sessionCookie(t, app, intruder))
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, detail, w.Header().Get("Location"))

	// Комментарий остался на месте
	got, err := app.CommentService.Get(comment.ID)
	require.NoError(t, err)
	assert.Equal(t, "Мой комментарий", got.Text)
}

func TestForeignPostEditIsSoftDenied(t *testing.T) {
	app := newTestApp(t)

	author := registerUser(t, app, "author")
	intruder := registerUser(t, app, "intruder")
	category, err := app.CategoryService.Create("Путешествия", "travel", "", true)
	require.NoError(t, err)

	post := seedLivePost(t, app, author, category.ID, time.Now().Add(-time.Hour))
	detail := "/posts/" + strconv.Itoa(post.ID)

	w := get(app, detail+"/edit", sessionCookie(t, app, intruder))
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, detail, w.Header().Get("Location"))

	w = postForm(app, detail+"/delete", url.Values{}, sessionCookie(t, app, intruder))
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, detail, w.Header().Get("Location"))

	// Публикация не пострадала
	_, err = app.PostService.GetForViewer(post.ID, author.ID, time.Now())
	require.NoError(t, err)
}

func TestCreatePostFlow(t *testing.T) {
	app := newTestApp(t)

	author := registerUser(t, app, "author")
	category, err := app.CategoryService.Create("Путешествия", "travel", "", true)
	require.NoError(t, err)

	cookie := sessionCookie(t, app, author)

	form := url.Values{
		"title":        {"Новая запись"},
		"text":         {"Текст записи"},
		"pub_date":     {"2024-06-01T12:00"},
		"category":     {strconv.Itoa(category.ID)},
		"is_published": {"1"},
	}

	w := postForm(app, "/posts/create", form, cookie)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/profile/author", w.Header().Get("Location"))

	posts, err := app.PostService.ListByAuthor(author.ID, author.ID, time.Now())
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "Новая запись", posts[0].Title)
}

func TestCreatePostValidationReRendersForm(t *testing.T) {
	app := newTestApp(t)

	author := registerUser(t, app, "author")
	cookie := sessionCookie(t, app, author)

	form := url.Values{
		"title":    {""},
		"text":     {"Текст записи"},
		"pub_date": {"2024-06-01T12:00"},
	}

	w := postForm(app, "/posts/create", form, cookie)

	// Форма перерисована с ошибкой, ничего не сохранено
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Заголовок не может быть пустым")
	assert.Contains(t, w.Body.String(), "Текст записи")

	posts, err := app.PostService.ListByAuthor(author.ID, author.ID, time.Now())
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestRegistrationAndLogin(t *testing.T) {
	app := newTestApp(t)

	w := postForm(app, "/auth/registration", url.Values{
		"username": {"newbie"},
		"email":    {"newbie@example.com"},
		"password": {"secret-1"},
	}, nil)

	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	// Cookie сессии установлена сразу после регистрации
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, SessionCookieName, cookies[0].Name)

	w = postForm(app, "/auth/login", url.Values{
		"email":    {"newbie@example.com"},
		"password": {"wrong"},
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "неверный пароль")
}
