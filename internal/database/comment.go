package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Klikmok/django-sprint4/internal/models"
)

var (
	ErrCommentNotFound     = errors.New("комментарий не найден")
	ErrCommentCreateFailed = errors.New("ошибка создания комментария")
	ErrCommentUpdateFailed = errors.New("ошибка обновления комментария")
	ErrCommentDeleteFailed = errors.New("ошибка удаления комментария")
	ErrNotCommentAuthor    = errors.New("только автор может изменять комментарий")
)

type CommentService struct {
	db *Database
}

func NewCommentService(db *Database) *CommentService {
	return &CommentService{db: db}
}

// Create создает новый комментарий
func (cs *CommentService) Create(text string, postID, userID int) (*models.Comment, error) {
	query := `INSERT INTO comments (text, post_id, user_id, created)
			  VALUES (?, ?, ?, ?) RETURNING id, created`

	var comment models.Comment
	now := time.Now()

	err := cs.db.DBConn.QueryRow(query, text, postID, userID, now).Scan(
		&comment.ID, &comment.Created)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCommentCreateFailed, err)
	}

	comment.Text = text
	comment.PostID = postID
	comment.UserID = userID

	return &comment, nil
}

// Get получает комментарий по ID с информацией об авторе
func (cs *CommentService) Get(id int) (*models.Comment, error) {
	query := `SELECT c.id, c.text, c.post_id, c.user_id, c.created, u.username
			  FROM comments c
			  JOIN users u ON c.user_id = u.id
			  WHERE c.id = ?`

	var comment models.Comment
	err := cs.db.DBConn.QueryRow(query, id).Scan(
		&comment.ID, &comment.Text, &comment.PostID, &comment.UserID,
		&comment.Created, &comment.Username)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}

	return &comment, nil
}

// ListByPost получает все комментарии публикации, старые первыми
func (cs *CommentService) ListByPost(postID int) ([]*models.Comment, error) {
	query := `SELECT c.id, c.text, c.post_id, c.user_id, c.created, u.username
			  FROM comments c
			  JOIN users u ON c.user_id = u.id
			  WHERE c.post_id = ?
			  ORDER BY c.created ASC, c.id ASC`

	rows, err := cs.db.DBConn.Query(query, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []*models.Comment
	for rows.Next() {
		var comment models.Comment
		err := rows.Scan(&comment.ID, &comment.Text, &comment.PostID,
			&comment.UserID, &comment.Created, &comment.Username)
		if err != nil {
			return nil, err
		}
		comments = append(comments, &comment)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return comments, nil
}

// Update обновляет комментарий (только автор может изменять)
func (cs *CommentService) Update(commentID int, text string, userID int) error {
	if !cs.IsAuthor(commentID, userID) {
		return ErrNotCommentAuthor
	}

	query := `UPDATE comments SET text = ? WHERE id = ?`
	result, err := cs.db.DBConn.Exec(query, text, commentID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCommentUpdateFailed, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrCommentNotFound
	}

	return nil
}

// Delete удаляет комментарий (только автор может удалять)
func (cs *CommentService) Delete(id, userID int) error {
	if !cs.IsAuthor(id, userID) {
		return ErrNotCommentAuthor
	}

	query := `DELETE FROM comments WHERE id = ?`
	result, err := cs.db.DBConn.Exec(query, id)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCommentDeleteFailed, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrCommentNotFound
	}

	return nil
}

// IsAuthor проверяет, является ли пользователь автором комментария.
// Сравниваются идентификаторы владельцев, а не имя пользователя.
func (cs *CommentService) IsAuthor(commentID, userID int) bool {
	var authorID int
	query := `SELECT user_id FROM comments WHERE id = ?`
	err := cs.db.DBConn.QueryRow(query, commentID).Scan(&authorID)
	if err != nil {
		return false
	}
	return authorID == userID
}
