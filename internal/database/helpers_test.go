package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Klikmok/django-sprint4/internal/models"
)

// newTestDB открывает чистую базу в памяти со схемой проекта.
// Одно соединение, чтобы in-memory база не исчезала между запросами.
func newTestDB(t *testing.T) *Database {
	t.Helper()

	db, err := New(":memory:", "../../blogicum.sql")
	require.NoError(t, err)

	db.DBConn.SetMaxOpenConns(1)
	db.DBConn.SetMaxIdleConns(1)

	t.Cleanup(func() { db.Close() })

	return db
}

func seedUser(t *testing.T, db *Database, username string) *models.User {
	t.Helper()

	user, err := NewUserService(db).Create(username, username+"@example.com", "secret-1")
	require.NoError(t, err)
	return user
}

func seedCategory(t *testing.T, db *Database, slug string, published bool) *models.Category {
	t.Helper()

	category, err := NewCategoryService(db).Create("Категория "+slug, slug, "", published)
	require.NoError(t, err)
	return category
}

func seedLocation(t *testing.T, db *Database, name string) *models.Location {
	t.Helper()

	location, err := NewLocationService(db).Create(name, true)
	require.NoError(t, err)
	return location
}

func seedPost(t *testing.T, db *Database, userID int, categoryID *int,
	pubDate time.Time, published bool) *models.Post {
	t.Helper()

	post, err := NewPostService(db).Create("Заголовок", "Текст", pubDate,
		userID, nil, categoryID, published, "")
	require.NoError(t, err)
	return post
}

func intPtr(v int) *int { return &v }
