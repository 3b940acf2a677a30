package models

import "time"

type User struct {
	ID        int       // Уникальный идентификатор
	Username  string    // Имя пользователя (уникально)
	Email     string    // Email (уникален)
	Password  []byte    // Хешированный пароль
	FirstName string    // Имя
	LastName  string    // Фамилия
	Created   time.Time // Дата регистрации
}

// FullName возвращает отображаемое имя для страницы профиля
func (u *User) FullName() string {
	name := u.FirstName
	if u.LastName != "" {
		if name != "" {
			name += " "
		}
		name += u.LastName
	}
	if name == "" {
		return u.Username
	}
	return name
}
