package database

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Klikmok/django-sprint4/internal/models"
)

var (
	ErrUserNotFound       = errors.New("пользователь не найден")
	ErrUsernameExists     = errors.New("пользователь с таким именем уже существует")
	ErrEmailExists        = errors.New("пользователь с таким email уже существует")
	ErrEmptyEmail         = errors.New("email не может быть пустым")
	ErrLongEmail          = errors.New("email не должен превышать 255 символов")
	ErrInvalidUsername    = errors.New("имя пользователя может содержать только буквы, цифры, подчеркивание и дефис")
	ErrShortUsername      = errors.New("имя пользователя должно содержать минимум 3 символа")
	ErrLongUsername       = errors.New("имя пользователя не должно превышать 50 символов")
	ErrShortPassword      = errors.New("пароль должен содержать минимум 6 символов")
	ErrLongPassword       = errors.New("пароль не должен превышать 128 символов")
	ErrPasswordHashFailed = errors.New("ошибка хеширования пароля")
	ErrUserCreateFailed   = errors.New("ошибка создания пользователя")
	ErrUserUpdateFailed   = errors.New("ошибка обновления пользователя")
	ErrEmailNotFound      = errors.New("пользователь с таким email не найден")
	ErrIncorrectPassword  = errors.New("неверный пароль")
)

var usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

type UserService struct {
	db *Database
}

func NewUserService(db *Database) *UserService {
	return &UserService{db: db}
}

// Create регистрирует нового пользователя
func (us *UserService) Create(username, email, password string) (*models.User, error) {
	if err := us.validateUserData(username, email, password); err != nil {
		return nil, err
	}

	if err := us.checkUniqueness(username, email, 0); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPasswordHashFailed, err)
	}

	query := `INSERT INTO users (username, email, password, created)
			  VALUES (?, ?, ?, ?) RETURNING id, created`

	var user models.User
	now := time.Now()

	err = us.db.DBConn.QueryRow(query, username, email, hashedPassword, now).Scan(&user.ID, &user.Created)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUserCreateFailed, err)
	}

	user.Username = username
	user.Email = email
	user.Password = hashedPassword

	return &user, nil
}

// Verify проверяет пару email/пароль и возвращает пользователя
func (us *UserService) Verify(email, password string) (*models.User, error) {
	var user models.User

	query := `SELECT id, username, email, password, first_name, last_name, created
			  FROM users WHERE email = ?`
	err := us.db.DBConn.QueryRow(query, email).Scan(
		&user.ID, &user.Username, &user.Email, &user.Password,
		&user.FirstName, &user.LastName, &user.Created)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrEmailNotFound
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword(user.Password, []byte(password)); err != nil {
		return nil, ErrIncorrectPassword
	}

	return &user, nil
}

// GetByUsername получает пользователя по имени для страницы профиля
func (us *UserService) GetByUsername(username string) (*models.User, error) {
	var user models.User

	query := `SELECT id, username, email, password, first_name, last_name, created
			  FROM users WHERE username = ?`
	err := us.db.DBConn.QueryRow(query, username).Scan(
		&user.ID, &user.Username, &user.Email, &user.Password,
		&user.FirstName, &user.LastName, &user.Created)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return &user, nil
}

// UpdateProfile обновляет данные профиля пользователя
func (us *UserService) UpdateProfile(id int, username, email, firstName, lastName string) error {
	if err := us.validateUsername(username); err != nil {
		return err
	}
	if err := us.validateEmail(email); err != nil {
		return err
	}
	if err := us.checkUniqueness(username, email, id); err != nil {
		return err
	}

	query := `UPDATE users SET username = ?, email = ?, first_name = ?, last_name = ? WHERE id = ?`
	result, err := us.db.DBConn.Exec(query, username, email, firstName, lastName, id)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUserUpdateFailed, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// checkUniqueness проверяет уникальность username и email.
// selfID исключает самого пользователя при обновлении профиля.
func (us *UserService) checkUniqueness(username, email string, selfID int) error {
	var exists int

	query := `SELECT 1 FROM users WHERE username = ? AND id != ?`
	err := us.db.DBConn.QueryRow(query, username, selfID).Scan(&exists)
	if err != sql.ErrNoRows {
		if err == nil {
			return ErrUsernameExists
		}
		return fmt.Errorf("ошибка проверки уникальности username: %v", err)
	}

	query = `SELECT 1 FROM users WHERE email = ? AND id != ?`
	err = us.db.DBConn.QueryRow(query, email, selfID).Scan(&exists)
	if err != sql.ErrNoRows {
		if err == nil {
			return ErrEmailExists
		}
		return fmt.Errorf("ошибка проверки уникальности email: %v", err)
	}

	return nil
}

// validateUserData валидирует все данные пользователя
func (us *UserService) validateUserData(username, email, password string) error {
	if err := us.validateUsername(username); err != nil {
		return err
	}
	if err := us.validateEmail(email); err != nil {
		return err
	}
	if err := us.validatePassword(password); err != nil {
		return err
	}
	return nil
}

func (us *UserService) validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if len(email) == 0 {
		return ErrEmptyEmail
	}
	if len(email) > 255 {
		return ErrLongEmail
	}
	return nil
}

func (us *UserService) validateUsername(username string) error {
	username = strings.TrimSpace(username)
	if len(username) < 3 {
		return ErrShortUsername
	}
	if len(username) > 50 {
		return ErrLongUsername
	}
	if !usernameRe.MatchString(username) {
		return ErrInvalidUsername
	}
	return nil
}

func (us *UserService) validatePassword(password string) error {
	if len(password) < 6 {
		return ErrShortPassword
	}
	if len(password) > 128 {
		return ErrLongPassword
	}
	return nil
}
