package web

import (
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Максимальный размер загружаемой формы с изображением - 10 МБ
const maxUploadSize = 10 << 20

// saveImage сохраняет загруженное изображение в каталог медиа и
// возвращает имя файла. Пустая строка без ошибки — файл не прислан.
func (app *app) saveImage(r *http.Request) (string, error) {
	file, header, err := r.FormFile("image")
	if err != nil {
		// Обычная форма без файла - это не ошибка
		if err == http.ErrMissingFile || err == http.ErrNotMultipart {
			return "", nil
		}
		return "", err
	}
	defer file.Close()

	// Имя файла генерируем сами: имя от клиента не используется
	name := uuid.NewString() + filepath.Ext(header.Filename)

	if err := os.MkdirAll(app.MediaDir, 0o755); err != nil {
		return "", err
	}

	dst, err := os.Create(filepath.Join(app.MediaDir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		os.Remove(dst.Name())
		return "", err
	}

	return name, nil
}
