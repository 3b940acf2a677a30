package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Klikmok/django-sprint4/internal/models"
)

var (
	ErrLocationNotFound     = errors.New("местоположение не найдено")
	ErrLocationCreateFailed = errors.New("ошибка создания местоположения")
	ErrLocationDeleteFailed = errors.New("ошибка удаления местоположения")
)

// LocationService управляет справочником мест.
// Как и категории, места создаются только администратором.
type LocationService struct {
	db *Database
}

func NewLocationService(db *Database) *LocationService {
	return &LocationService{db: db}
}

// Create создает новое место
func (ls *LocationService) Create(name string, isPublished bool) (*models.Location, error) {
	query := `INSERT INTO locations (name, is_published, created)
			  VALUES (?, ?, ?) RETURNING id, created`

	var location models.Location
	now := time.Now()

	err := ls.db.DBConn.QueryRow(query, name, isPublished, now).Scan(
		&location.ID, &location.Created)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLocationCreateFailed, err)
	}

	location.Name = name
	location.IsPublished = isPublished

	return &location, nil
}

// Get получает место по ID
func (ls *LocationService) Get(id int) (*models.Location, error) {
	var location models.Location
	query := `SELECT id, name, is_published, created FROM locations WHERE id = ?`

	err := ls.db.DBConn.QueryRow(query, id).Scan(
		&location.ID, &location.Name, &location.IsPublished, &location.Created)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrLocationNotFound
		}
		return nil, err
	}

	return &location, nil
}

// ListPublished получает опубликованные места для формы публикации
func (ls *LocationService) ListPublished() ([]*models.Location, error) {
	query := `SELECT id, name, is_published, created
			  FROM locations WHERE is_published = 1 ORDER BY name ASC`

	rows, err := ls.db.DBConn.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var locations []*models.Location
	for rows.Next() {
		var location models.Location
		err := rows.Scan(&location.ID, &location.Name,
			&location.IsPublished, &location.Created)
		if err != nil {
			return nil, err
		}
		locations = append(locations, &location)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return locations, nil
}

// Delete удаляет место. Публикации при этом не удаляются:
// location_id у них обнуляется (ON DELETE SET NULL в схеме).
func (ls *LocationService) Delete(id int) error {
	result, err := ls.db.DBConn.Exec(`DELETE FROM locations WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLocationDeleteFailed, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrLocationNotFound
	}

	return nil
}
