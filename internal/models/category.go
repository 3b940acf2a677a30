package models

import "time"

type Category struct {
	ID          int       // Уникальный идентификатор
	Title       string    // Заголовок
	Slug        string    // Идентификатор для URL (уникален)
	Description string    // Описание
	IsPublished bool      // Опубликована ли категория
	Created     time.Time // Дата добавления
}
