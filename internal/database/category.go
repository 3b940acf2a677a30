package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Klikmok/django-sprint4/internal/models"
)

var (
	ErrCategoryNotFound     = errors.New("категория не найдена")
	ErrSlugExists           = errors.New("категория с таким slug уже существует")
	ErrCategoryCreateFailed = errors.New("ошибка создания категории")
	ErrCategoryUpdateFailed = errors.New("ошибка обновления категории")
)

// CategoryService управляет справочником категорий.
// Категории создаются администратором, публичных форм для них нет.
type CategoryService struct {
	db *Database
}

func NewCategoryService(db *Database) *CategoryService {
	return &CategoryService{db: db}
}

// Create создает новую категорию
func (cs *CategoryService) Create(title, slug, description string, isPublished bool) (*models.Category, error) {
	var exists int
	err := cs.db.DBConn.QueryRow(`SELECT 1 FROM categories WHERE slug = ?`, slug).Scan(&exists)
	if err != sql.ErrNoRows {
		if err == nil {
			return nil, ErrSlugExists
		}
		return nil, fmt.Errorf("ошибка проверки уникальности slug: %v", err)
	}

	query := `INSERT INTO categories (title, slug, description, is_published, created)
			  VALUES (?, ?, ?, ?, ?) RETURNING id, created`

	var category models.Category
	now := time.Now()

	err = cs.db.DBConn.QueryRow(query, title, slug, description, isPublished, now).Scan(
		&category.ID, &category.Created)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCategoryCreateFailed, err)
	}

	category.Title = title
	category.Slug = slug
	category.Description = description
	category.IsPublished = isPublished

	return &category, nil
}

// GetPublishedBySlug получает опубликованную категорию по slug.
// Снятая с публикации категория неотличима от несуществующей:
// администратор скрывает её вместе со всеми публикациями.
func (cs *CategoryService) GetPublishedBySlug(slug string) (*models.Category, error) {
	var category models.Category
	query := `SELECT id, title, slug, description, is_published, created
			  FROM categories WHERE slug = ? AND is_published = 1`

	err := cs.db.DBConn.QueryRow(query, slug).Scan(
		&category.ID, &category.Title, &category.Slug,
		&category.Description, &category.IsPublished, &category.Created)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	return &category, nil
}

// ListPublished получает опубликованные категории для формы публикации
func (cs *CategoryService) ListPublished() ([]*models.Category, error) {
	query := `SELECT id, title, slug, description, is_published, created
			  FROM categories WHERE is_published = 1 ORDER BY title ASC`

	rows, err := cs.db.DBConn.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*models.Category
	for rows.Next() {
		var category models.Category
		err := rows.Scan(&category.ID, &category.Title, &category.Slug,
			&category.Description, &category.IsPublished, &category.Created)
		if err != nil {
			return nil, err
		}
		categories = append(categories, &category)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return categories, nil
}

// SetPublished скрывает или показывает категорию целиком
func (cs *CategoryService) SetPublished(id int, isPublished bool) error {
	result, err := cs.db.DBConn.Exec(
		`UPDATE categories SET is_published = ? WHERE id = ?`, isPublished, id)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCategoryUpdateFailed, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrCategoryNotFound
	}

	return nil
}
