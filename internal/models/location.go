package models

import "time"

type Location struct {
	ID          int       // Уникальный идентификатор
	Name        string    // Название места
	IsPublished bool      // Опубликовано ли место
	Created     time.Time // Дата добавления
}
