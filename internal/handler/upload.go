package handler

import (
	"mime/multipart"

	"github.com/labstack/echo/v4"

	apperrors "github.com/Adarsh108-tech/MyTaskManager/internal/errors"
	"github.com/Adarsh108-tech/MyTaskManager/internal/service"
)

// imageFormField is the multipart field clients upload images under.
const imageFormField = "image"

type formUpload struct {
	*service.ImageUpload
	file multipart.File
}

func (u *formUpload) close() {
	if u.file != nil {
		_ = u.file.Close()
	}
}

// imageFromForm extracts the uploaded image from the request's multipart
// form. A missing or unreadable field maps to ErrNoImage.
func imageFromForm(c echo.Context) (*formUpload, error) {
	fileHeader, err := c.FormFile(imageFormField)
	if err != nil {
		return nil, apperrors.ErrNoImage
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, apperrors.ErrNoImage
	}

	return &formUpload{
		ImageUpload: &service.ImageUpload{
			Filename:    fileHeader.Filename,
			ContentType: fileHeader.Header.Get("Content-Type"),
			Body:        file,
		},
		file: file,
	}, nil
}
