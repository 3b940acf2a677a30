// Package forms проверяет поля HTML-форм.
// Каждая форма наполняется сырыми значениями из запроса; Validate
// возвращает true либо заполняет Errors сообщениями по полям,
// и обработчик перерисовывает ту же форму без сохранения.
package forms

import (
	"strconv"
	"strings"
	"time"
)

// Errors — отображение "поле → сообщение"
type Errors map[string]string

const (
	MaxTitleLen   = 256
	MaxTextLen    = 10000
	MaxCommentLen = 2000
	MaxNameLen    = 150
)

// Форматы поля даты публикации (datetime-local и обычный date)
var pubDateLayouts = []string{"2006-01-02T15:04", "2006-01-02 15:04", "2006-01-02"}

type PostForm struct {
	Title       string
	Text        string
	PubDate     string
	CategoryID  string
	LocationID  string
	IsPublished bool

	// Разобранные значения, заполняются в Validate
	ParsedPubDate    time.Time
	ParsedCategoryID *int
	ParsedLocationID *int

	Errors Errors
}

// Validate проверяет поля формы публикации
func (f *PostForm) Validate() bool {
	f.Errors = Errors{}

	f.Title = strings.TrimSpace(f.Title)
	f.Text = strings.TrimSpace(f.Text)

	if f.Title == "" {
		f.Errors["title"] = "Заголовок не может быть пустым"
	} else if len([]rune(f.Title)) > MaxTitleLen {
		f.Errors["title"] = "Заголовок не должен превышать 256 символов"
	}

	if f.Text == "" {
		f.Errors["text"] = "Текст публикации не может быть пустым"
	} else if len([]rune(f.Text)) > MaxTextLen {
		f.Errors["text"] = "Текст публикации слишком длинный"
	}

	if strings.TrimSpace(f.PubDate) == "" {
		f.Errors["pub_date"] = "Укажите дату публикации"
	} else {
		parsed, ok := parsePubDate(f.PubDate)
		if !ok {
			f.Errors["pub_date"] = "Неверный формат даты"
		} else {
			f.ParsedPubDate = parsed
		}
	}

	f.ParsedCategoryID = parseOptionalID(f.CategoryID, "category", f.Errors)
	f.ParsedLocationID = parseOptionalID(f.LocationID, "location", f.Errors)

	return len(f.Errors) == 0
}

type CommentForm struct {
	Text string

	Errors Errors
}

// Validate проверяет поля формы комментария
func (f *CommentForm) Validate() bool {
	f.Errors = Errors{}

	f.Text = strings.TrimSpace(f.Text)

	if f.Text == "" {
		f.Errors["text"] = "Комментарий не может быть пустым"
	} else if len([]rune(f.Text)) > MaxCommentLen {
		f.Errors["text"] = "Комментарий не должен превышать 2000 символов"
	}

	return len(f.Errors) == 0
}

type ProfileForm struct {
	Username  string
	Email     string
	FirstName string
	LastName  string

	Errors Errors
}

// Validate проверяет поля формы профиля.
// Уникальность имени и email проверяет UserService при сохранении.
func (f *ProfileForm) Validate() bool {
	f.Errors = Errors{}

	f.Username = strings.TrimSpace(f.Username)
	f.Email = strings.TrimSpace(f.Email)
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)

	if f.Username == "" {
		f.Errors["username"] = "Имя пользователя не может быть пустым"
	}
	if f.Email == "" {
		f.Errors["email"] = "Email не может быть пустым"
	}
	if len([]rune(f.FirstName)) > MaxNameLen {
		f.Errors["first_name"] = "Имя слишком длинное"
	}
	if len([]rune(f.LastName)) > MaxNameLen {
		f.Errors["last_name"] = "Фамилия слишком длинная"
	}

	return len(f.Errors) == 0
}

func parsePubDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	for _, layout := range pubDateLayouts {
		if parsed, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// parseOptionalID разбирает необязательное поле выбора.
// Пустое значение — это отсутствие выбора, а не ошибка.
func parseOptionalID(value, field string, errs Errors) *int {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	id, err := strconv.Atoi(value)
	if err != nil || id <= 0 {
		errs[field] = "Неверное значение"
		return nil
	}
	return &id
}
