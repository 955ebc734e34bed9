package controllers

import (
	"mime/multipart"

	"clipstream-backend/internal/storage"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
)

// Uploader is re-exported so controller constructors read naturally.
type Uploader = storage.Uploader

// uploadFormFile streams one multipart file straight to the blob store and
// returns its public URL. Nothing is spooled to disk.
func uploadFormFile(c fiber.Ctx, uploads Uploader, fh *multipart.FileHeader, prefix string) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	objectName := storage.ObjectName(prefix, fh.Filename)
	return uploads.Upload(c.Context(), objectName, src, fh.Size, contentType)
}

// removeBlob drops a superseded object. The request already succeeded, so a
// failed removal only logs.
func removeBlob(c fiber.Ctx, uploads Uploader, url string) {
	if url == "" {
		return
	}
	if err := uploads.Remove(c.Context(), url); err != nil {
		logrus.WithError(err).WithField("url", url).Warn("could not remove stale object")
	}
}
