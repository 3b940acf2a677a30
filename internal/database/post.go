package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Klikmok/django-sprint4/internal/models"
)

var (
	ErrPostNotFound     = errors.New("публикация не найдена")
	ErrPostCreateFailed = errors.New("ошибка создания публикации")
	ErrPostUpdateFailed = errors.New("ошибка обновления публикации")
	ErrPostDeleteFailed = errors.New("ошибка удаления публикации")
	ErrNotPostAuthor    = errors.New("только автор может изменять публикацию")
)

type PostService struct {
	db *Database
}

func NewPostService(db *Database) *PostService {
	return &PostService{db: db}
}

// scanPost читает одну строку общей выборки postSelect
func scanPost(row interface{ Scan(...any) error }) (*models.Post, error) {
	var post models.Post
	err := row.Scan(
		&post.ID, &post.Title, &post.Text, &post.PubDate, &post.UserID,
		&post.LocationID, &post.CategoryID, &post.IsPublished, &post.Image,
		&post.Created, &post.Username, &post.LocationName,
		&post.CategoryTitle, &post.CategorySlug, &post.CommentCount)
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func collectPosts(rows *sql.Rows) ([]*models.Post, error) {
	defer rows.Close()

	var posts []*models.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return posts, nil
}

// ListPublic получает все живые публикации для главной страницы
func (ps *PostService) ListPublic(now time.Time) ([]*models.Post, error) {
	query := postSelect + ` WHERE ` + postIsLive + postOrder

	rows, err := ps.db.DBConn.Query(query, now)
	if err != nil {
		return nil, err
	}
	return collectPosts(rows)
}

// ListByCategory получает живые публикации категории
func (ps *PostService) ListByCategory(categoryID int, now time.Time) ([]*models.Post, error) {
	query := postSelect + ` WHERE ` + postIsLive + ` AND p.category_id = ?` + postOrder

	rows, err := ps.db.DBConn.Query(query, now, categoryID)
	if err != nil {
		return nil, err
	}
	return collectPosts(rows)
}

// ListByAuthor получает публикации автора для страницы профиля.
// Владелец профиля видит все свои публикации, остальные — только живые.
func (ps *PostService) ListByAuthor(authorID, viewerID int, now time.Time) ([]*models.Post, error) {
	var query string
	var args []any

	if viewerID == authorID {
		query = postSelect + ` WHERE p.user_id = ?` + postOrder
		args = []any{authorID}
	} else {
		query = postSelect + ` WHERE ` + postIsLive + ` AND p.user_id = ?` + postOrder
		args = []any{now, authorID}
	}

	rows, err := ps.db.DBConn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	return collectPosts(rows)
}

// GetForViewer получает публикацию для страницы деталей.
// Автор видит свою публикацию в любом состоянии, остальные получают
// ErrPostNotFound, если публикация не живая: скрытая публикация
// неотличима от несуществующей.
func (ps *PostService) GetForViewer(id, viewerID int, now time.Time) (*models.Post, error) {
	query := `SELECT CASE WHEN ` + postIsLive + ` THEN 1 ELSE 0 END AS is_live,
	       p.id, p.title, p.text, p.pub_date, p.user_id,
	       p.location_id, p.category_id, p.is_published, p.image, p.created,
	       u.username, l.name, c.title, c.slug,
	       (SELECT COUNT(*) FROM comments cm WHERE cm.post_id = p.id) AS comment_count
	FROM posts p
	JOIN users u ON p.user_id = u.id
	LEFT JOIN locations l ON p.location_id = l.id
	LEFT JOIN categories c ON p.category_id = c.id
	WHERE p.id = ?`

	var post models.Post
	var isLive bool
	err := ps.db.DBConn.QueryRow(query, now, id).Scan(
		&isLive,
		&post.ID, &post.Title, &post.Text, &post.PubDate, &post.UserID,
		&post.LocationID, &post.CategoryID, &post.IsPublished, &post.Image,
		&post.Created, &post.Username, &post.LocationName,
		&post.CategoryTitle, &post.CategorySlug, &post.CommentCount)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	if !isLive && post.UserID != viewerID {
		return nil, ErrPostNotFound
	}

	return &post, nil
}

// Create создает новую публикацию
func (ps *PostService) Create(title, text string, pubDate time.Time, userID int,
	locationID, categoryID *int, isPublished bool, image string) (*models.Post, error) {

	query := `INSERT INTO posts (title, text, pub_date, user_id, location_id, category_id, is_published, image, created)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING id, created`

	var post models.Post
	now := time.Now()

	err := ps.db.DBConn.QueryRow(query, title, text, pubDate, userID,
		locationID, categoryID, isPublished, image, now).Scan(&post.ID, &post.Created)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPostCreateFailed, err)
	}

	post.Title = title
	post.Text = text
	post.PubDate = pubDate
	post.UserID = userID
	post.LocationID = locationID
	post.CategoryID = categoryID
	post.IsPublished = isPublished
	post.Image = image

	return &post, nil
}

// Update обновляет публикацию (только автор может изменять)
func (ps *PostService) Update(id int, title, text string, pubDate time.Time,
	locationID, categoryID *int, isPublished bool, image string, userID int) error {

	if !ps.IsAuthor(id, userID) {
		return ErrNotPostAuthor
	}

	query := `UPDATE posts SET title = ?, text = ?, pub_date = ?, location_id = ?,
			  category_id = ?, is_published = ?, image = ? WHERE id = ?`
	_, err := ps.db.DBConn.Exec(query, title, text, pubDate, locationID,
		categoryID, isPublished, image, id)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPostUpdateFailed, err)
	}

	return nil
}

// Delete удаляет публикацию (только автор может удалять)
func (ps *PostService) Delete(id, userID int) error {
	if !ps.IsAuthor(id, userID) {
		return ErrNotPostAuthor
	}

	query := `DELETE FROM posts WHERE id = ?`
	result, err := ps.db.DBConn.Exec(query, id)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPostDeleteFailed, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrPostNotFound
	}

	return nil
}

// IsAuthor проверяет, является ли пользователь автором публикации
func (ps *PostService) IsAuthor(postID, userID int) bool {
	var authorID int
	query := `SELECT user_id FROM posts WHERE id = ?`
	err := ps.db.DBConn.QueryRow(query, postID).Scan(&authorID)
	if err != nil {
		return false
	}
	return authorID == userID
}
