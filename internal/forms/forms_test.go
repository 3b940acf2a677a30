package forms

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostFormValid(t *testing.T) {
	form := &PostForm{
		Title:      "  Поездка в горы  ",
		Text:       "Длинный рассказ",
		PubDate:    "2024-06-01T12:30",
		CategoryID: "3",
	}

	require.True(t, form.Validate())

	assert.Equal(t, "Поездка в горы", form.Title)
	assert.Equal(t, time.Date(2024, 6, 1, 12, 30, 0, 0, time.Local), form.ParsedPubDate)
	require.NotNil(t, form.ParsedCategoryID)
	assert.Equal(t, 3, *form.ParsedCategoryID)
	assert.Nil(t, form.ParsedLocationID)
}

func TestPostFormErrors(t *testing.T) {
	form := &PostForm{
		Title:      "",
		Text:       "   ",
		PubDate:    "не дата",
		CategoryID: "abc",
	}

	require.False(t, form.Validate())

	assert.Contains(t, form.Errors, "title")
	assert.Contains(t, form.Errors, "text")
	assert.Contains(t, form.Errors, "pub_date")
	assert.Contains(t, form.Errors, "category")
}

func TestPostFormTitleTooLong(t *testing.T) {
	form := &PostForm{
		Title:   strings.Repeat("а", MaxTitleLen+1),
		Text:    "Текст",
		PubDate: "2024-06-01",
	}

	require.False(t, form.Validate())
	assert.Contains(t, form.Errors, "title")
}

func TestPostFormDateOnly(t *testing.T) {
	form := &PostForm{
		Title:   "Заголовок",
		Text:    "Текст",
		PubDate: "2024-06-01",
	}

	require.True(t, form.Validate())
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local), form.ParsedPubDate)
}

func TestCommentForm(t *testing.T) {
	form := &CommentForm{Text: "  привет  "}
	require.True(t, form.Validate())
	assert.Equal(t, "привет", form.Text)

	form = &CommentForm{Text: "   "}
	require.False(t, form.Validate())
	assert.Contains(t, form.Errors, "text")

	form = &CommentForm{Text: strings.Repeat("б", MaxCommentLen+1)}
	require.False(t, form.Validate())
	assert.Contains(t, form.Errors, "text")
}

func TestProfileForm(t *testing.T) {
	form := &ProfileForm{Username: "reader", Email: "reader@example.com"}
	require.True(t, form.Validate())

	form = &ProfileForm{Username: "", Email: ""}
	require.False(t, form.Validate())
	assert.Contains(t, form.Errors, "username")
	assert.Contains(t, form.Errors, "email")
}
