package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/catalog"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/user"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/directory"
)

// MaxUploadBytes caps the multipart body of image uploads.
const MaxUploadBytes = 10 << 20

type ImageUploader interface {
	Upload(ctx context.Context, folder string, r io.Reader) (string, error)
}

var errMissingImage = httperr.ErrValidation("missing_image", "An image file is required in the \"image\" field")

// UploadHandler stores staff and service pictures and records their URL.
type UploadHandler struct {
	uploader ImageUploader
	users    *directory.Users
	services *directory.Services
}

func NewUploadHandler(uploader ImageUploader, users *directory.Users, services *directory.Services) *UploadHandler {
	return &UploadHandler{uploader: uploader, users: users, services: services}
}

func (h *UploadHandler) store(c *gin.Context, folder string) (string, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxUploadBytes)

	fh, err := c.FormFile("image")
	if err != nil {
		httperr.Respond(c, errMissingImage)
		return "", false
	}

	f, err := fh.Open()
	if err != nil {
		httperr.Respond(c, errMissingImage)
		return "", false
	}
	defer f.Close()

	url, err := h.uploader.Upload(c.Request.Context(), folder, f)
	if err != nil {
		httperr.Respond(c, err)
		return "", false
	}
	return url, true
}

func (h *UploadHandler) Staff(c *gin.Context) {
	id, ok := uuidParam(c, "id", user.ErrStaffNotFound)
	if !ok {
		return
	}
	// reject before storing anything
	if _, err := h.users.Get(c.Request.Context(), user.RoleStaff, id); err != nil {
		httperr.Respond(c, err)
		return
	}

	url, ok := h.store(c, "staff")
	if !ok {
		return
	}

	u, err := h.users.SetImage(c.Request.Context(), user.RoleStaff, id, url)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, gin.H{"imageUrl": url, "staff": u})
}

func (h *UploadHandler) Service(c *gin.Context) {
	id, ok := uuidParam(c, "id", catalog.ErrNotFound)
	if !ok {
		return
	}
	if _, err := h.services.Get(c.Request.Context(), id); err != nil {
		httperr.Respond(c, err)
		return
	}

	url, ok := h.store(c, "services")
	if !ok {
		return
	}

	svc, err := h.services.SetImage(c.Request.Context(), id, url)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, gin.H{"imageUrl": url, "service": svc})
}
