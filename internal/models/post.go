package models

import "time"

type Post struct {
	ID          int       // Уникальный идентификатор
	Title       string    // Заголовок публикации
	Text        string    // Текст публикации
	PubDate     time.Time // Дата и время публикации (может быть в будущем)
	UserID      int       // ID автора
	LocationID  *int      // ID местоположения (необязательно)
	CategoryID  *int      // ID категории (необязательно)
	IsPublished bool      // Опубликована ли публикация
	Image       string    // Путь к загруженному изображению (может быть пустым)
	Created     time.Time // Дата создания записи

	// Данные связанных таблиц (для JOIN запросов)
	Username      string  // Имя автора
	LocationName  *string // Название места
	CategoryTitle *string // Заголовок категории
	CategorySlug  *string // Slug категории
	CommentCount  int     // Количество комментариев
}
