package middleware

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"marketplace-backend/internal/common"
	"marketplace-backend/internal/storage"
)

const ctxFiles = "files"

// Files buffers every multipart part named field into memory for the controller.
// A part over maxSize aborts with 413; non-multipart requests carry no files.
func Files(field string, maxSize int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !strings.HasPrefix(c.ContentType(), "multipart/form-data") {
			c.Set(ctxFiles, []storage.File{})
			c.Next()
			return
		}

		form, err := c.MultipartForm()
		if err != nil {
			common.Fail(c, common.BadRequest(common.MsgInvalidInput, err))
			return
		}

		headers := form.File[field]
		files := make([]storage.File, 0, len(headers))
		for _, fh := range headers {
			if fh.Size > maxSize {
				common.Fail(c, common.TooLarge(common.MsgFileTooLarge))
				return
			}
			f, err := readPart(fh, maxSize)
			if err != nil {
				common.Fail(c, err)
				return
			}
			files = append(files, f)
		}

		c.Set(ctxFiles, files)
		c.Next()
	}
}

func readPart(fh *multipart.FileHeader, maxSize int64) (storage.File, error) {
	src, err := fh.Open()
	if err != nil {
		return storage.File{}, common.BadRequest(common.MsgInvalidInput, err)
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, maxSize+1))
	if err != nil {
		return storage.File{}, common.BadRequest(common.MsgInvalidInput, fmt.Errorf("read %s: %w", fh.Filename, err))
	}
	if int64(len(data)) > maxSize {
		return storage.File{}, common.TooLarge(common.MsgFileTooLarge)
	}

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	return storage.File{Name: fh.Filename, ContentType: contentType, Data: data}, nil
}

// UploadedFiles returns what Files attached to the request.
func UploadedFiles(c *gin.Context) []storage.File {
	v, ok := c.Get(ctxFiles)
	if !ok {
		return nil
	}
	files, _ := v.([]storage.File)
	return files
}
