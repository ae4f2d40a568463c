package media

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/xyz-asif/tradehub/internal/pkg/cloudinary"
)

type fakeUploader struct {
	got  []byte
	fail bool
}

func (f *fakeUploader) UploadImage(_ context.Context, file multipart.File, originalName, mimetype string) (*cloudinary.UploadResult, error) {
	if f.fail {
		return nil, errors.New("cloudinary down")
	}
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	f.got = data
	return &cloudinary.UploadResult{
		URL:          "https://res.cloudinary.com/demo/image/upload/x1.png",
		Filename:     "x1.png",
		OriginalName: originalName,
		Path:         "https://res.cloudinary.com/demo/image/upload/x1.png",
		Size:         int64(len(data)),
		Mimetype:     mimetype,
	}, nil
}

func setupRouter(uploader Uploader) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	RegisterRoutes(router.Group("/api/v1"), NewHandler(uploader), func(c *gin.Context) { c.Next() })
	return router
}

func upload(router *gin.Engine, filename, contentType string, data []byte) *httptest.ResponseRecorder {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if filename != "" {
		h := textproto.MIMEHeader{}
		h.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
		h.Set("Content-Type", contentType)
		part, _ := mw.CreatePart(h)
		_, _ = part.Write(data)
	}
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/media/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestUploadReturnsImageMetadata(t *testing.T) {
	fake := &fakeUploader{}
	router := setupRouter(fake)

	w := upload(router, "pet.png", "image/png", []byte("pngbytes"))
	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, []byte("pngbytes"), fake.got)
	body := w.Body.String()
	require.Contains(t, body, `"originalName":"pet.png"`)
	require.Contains(t, body, `"mimetype":"image/png"`)
	require.Contains(t, body, `"size":8`)
}

func TestUploadRejectsBadInput(t *testing.T) {
	router := setupRouter(&fakeUploader{})

	w := upload(router, "", "", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "MISSING_FILE")

	w = upload(router, "notes.txt", "text/plain", []byte("hi"))
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "INVALID_FILE")
}

func TestUploadFailures(t *testing.T) {
	w := upload(setupRouter(&fakeUploader{fail: true}), "pet.png", "image/png", []byte("x"))
	require.Equal(t, http.StatusInternalServerError, w.Code)

	w = upload(setupRouter(nil), "pet.png", "image/png", []byte("x"))
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
}
