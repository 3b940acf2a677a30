package web

import (
	"net/http"
	"strconv"

	"github.com/Klikmok/django-sprint4/internal/models"
)

// Количество публикаций на странице
const PostsPerPage = 10

// Page — одна страница списка публикаций
type Page struct {
	Items    []*models.Post
	Number   int // Номер текущей страницы (с единицы)
	NumPages int // Общее число страниц
}

func (p *Page) HasPrev() bool { return p.Number > 1 }
func (p *Page) HasNext() bool { return p.Number < p.NumPages }
func (p *Page) PrevNumber() int { return p.Number - 1 }
func (p *Page) NextNumber() int { return p.Number + 1 }

// paginate нарезает упорядоченный список на страницы по PostsPerPage.
// Номер страницы вне диапазона приводится к ближайшей существующей
// странице, а не считается ошибкой. Пустой список — одна пустая страница.
func paginate(posts []*models.Post, number int) *Page {
	numPages := (len(posts) + PostsPerPage - 1) / PostsPerPage
	if numPages == 0 {
		numPages = 1
	}

	if number < 1 {
		number = 1
	}
	if number > numPages {
		number = numPages
	}

	start := (number - 1) * PostsPerPage
	end := start + PostsPerPage
	if end > len(posts) {
		end = len(posts)
	}

	return &Page{
		Items:    posts[start:end],
		Number:   number,
		NumPages: numPages,
	}
}

// pageNumber читает параметр ?page= из запроса
func pageNumber(r *http.Request) int {
	number, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil {
		return 1
	}
	return number
}
