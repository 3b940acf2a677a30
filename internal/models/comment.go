package models

import "time"

type Comment struct {
	ID      int       // Уникальный идентификатор
	Text    string    // Текст комментария
	PostID  int       // ID публикации к которой привязан комментарий
	UserID  int       // ID автора комментария
	Created time.Time // Дата создания
	// Данные автора (для JOIN запросов)
	Username string // Имя автора
}
