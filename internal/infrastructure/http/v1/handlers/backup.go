package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"lumbertrace/internal/core/apperror"
	"lumbertrace/internal/infrastructure/snapshot"
)

// MaxRestoreBytes bounds the size of an uploaded archive.
const MaxRestoreBytes = 64 << 20

// BackupHandler exports and restores snapshot archives.
type BackupHandler struct {
	*BaseHandler
	snapshots *snapshot.Service
}

// NewBackupHandler creates a new backup handler.
func NewBackupHandler(base *BaseHandler, snapshots *snapshot.Service) *BackupHandler {
	return &BackupHandler{BaseHandler: base, snapshots: snapshots}
}

// Export handles GET /backup.
func (h *BackupHandler) Export(c *gin.Context) {
	var buf bytes.Buffer
	if _, err := h.snapshots.Export(c.Request.Context(), &buf); err != nil {
		h.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, snapshot.FileName(time.Now())))
	c.Data(http.StatusOK, "application/zstd", buf.Bytes())
}

// Restore handles POST /backup/restore with the archive as request body.
func (h *BackupHandler) Restore(c *gin.Context) {
	body := http.MaxBytesReader(c.Writer, c.Request.Body, MaxRestoreBytes)

	stats, err := h.snapshots.Import(c.Request.Context(), body)
	if err != nil {
		if apperror.IsAppError(err) {
			h.Error(c, err)
			return
		}
		h.Error(c, apperror.NewValidation("invalid backup archive").WithCause(err))
		return
	}
	h.OK(c, stats)
}
