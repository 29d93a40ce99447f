package handlers

import (
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/corpvm/vendorhub/internal/storage"
	"github.com/gin-gonic/gin"
)

// CertificateFiles is the slice of the certificate store the handlers
// need; the concrete store lives in internal/storage.
type CertificateFiles interface {
	Save(originalName string, src io.Reader) (string, error)
	List() ([]storage.StoredFile, error)
	Resolve(filename string) (string, error)
}

type CertificatesHandler struct {
	store          CertificateFiles
	maxUploadBytes int64
	log            *slog.Logger
}

func NewCertificatesHandler(store CertificateFiles, maxUploadBytes int64, log *slog.Logger) *CertificatesHandler {
	return &CertificatesHandler{store: store, maxUploadBytes: maxUploadBytes, log: log}
}

// Upload accepts a single multipart file under the cert-file field and
// streams it to the store.
func (h *CertificatesHandler) Upload(ctx *gin.Context) {
	if h.maxUploadBytes > 0 {
		ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, h.maxUploadBytes)
	}

	fileHeader, err := ctx.FormFile("cert-file")

	if err != nil {
		RespondBadRequest(ctx, "No file uploaded.", nil)
		return
	}

	src, err := fileHeader.Open()

	if err != nil {
		h.log.Error("open upload", "err", err, "filename", fileHeader.Filename)
		RespondInternal(ctx, "Failed to store file.")
		return
	}

	defer src.Close()

	path, err := h.store.Save(fileHeader.Filename, src)

	if err != nil {
		h.log.Error("save certificate", "err", err, "filename", fileHeader.Filename)
		RespondInternal(ctx, "Failed to store file.")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":  "File uploaded successfully!",
		"filePath": path,
	})
}

func (h *CertificatesHandler) ListCertifications(ctx *gin.Context) {
	files, err := h.store.List()

	if err != nil {
		h.log.Error("list certificates", "err", err)
		RespondInternal(ctx, "Failed to list certifications.")
		return
	}

	ctx.JSON(http.StatusOK, files)
}

// Download serves one stored certificate by filename. Resolution only
// honours the base name, so traversal segments are ignored.
func (h *CertificatesHandler) Download(ctx *gin.Context) {
	path, err := h.store.Resolve(ctx.Param("filename"))

	if err != nil {
		if os.IsNotExist(err) {
			RespondNotFound(ctx, "File not found.")
			return
		}

		h.log.Error("resolve certificate", "err", err)
		RespondInternal(ctx, "Failed to fetch file.")
		return
	}

	ctx.File(path)
}
