package api

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"

	"shogun-be/internal/attachment"
	"shogun-be/internal/comment"
	"shogun-be/internal/storage"

	"github.com/gin-gonic/gin"
)

// multipart framing allowance on top of the file size limit
const multipartOverhead = 1 << 20

// Comentarios

func (s *Server) listComments(c *gin.Context) {
	items, err := s.deps.Comments.List(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, "listComments", err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (s *Server) createComment(c *gin.Context) {
	var in comment.CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, msgInvalidJSON)
		return
	}

	who := callerOf(c)
	created, err := s.deps.Comments.Create(c.Request.Context(), c.Param("id"),
		comment.Author{Email: who.Email, Nombre: who.Nombre}, in)
	if err != nil {
		fail(c, "createComment", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "comentario": created})
}

func (s *Server) deleteComment(c *gin.Context) {
	if err := s.deps.Comments.Delete(c.Request.Context(), c.Param("id"), c.Param("comentarioId")); err != nil {
		fail(c, "deleteComment", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Adjuntos

func (s *Server) listAttachments(c *gin.Context) {
	items, err := s.deps.Attachments.List(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, "listAttachments", err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (s *Server) uploadAttachment(c *gin.Context) {
	maxBytes := s.deps.Attachments.MaxBytes()
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes+multipartOverhead)

	fh, err := c.FormFile("archivo")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			fail(c, "uploadAttachment", attachment.FileTooLarge(maxBytes>>20))
			return
		}
		fail(c, "uploadAttachment", attachment.ErrFileRequired)
		return
	}
	if fh.Size > maxBytes {
		fail(c, "uploadAttachment", attachment.FileTooLarge(maxBytes>>20))
		return
	}

	f, err := fh.Open()
	if err != nil {
		fail(c, "uploadAttachment", err)
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxBytes+1))
	if err != nil {
		fail(c, "uploadAttachment", err)
		return
	}

	who := callerOf(c)
	created, err := s.deps.Attachments.Upload(c.Request.Context(), c.Param("id"),
		attachment.Uploader{Email: who.Email, Nombre: who.Nombre},
		attachment.Upload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
		})
	if err != nil {
		fail(c, "uploadAttachment", err)
		return
	}
	s.deps.Metrics.Uploads.Inc()

	c.JSON(http.StatusCreated, gin.H{"success": true, "adjunto": created})
}

func (s *Server) downloadAttachment(c *gin.Context) {
	url, a, err := s.deps.Attachments.DownloadURL(c.Request.Context(), c.Param("id"), c.Param("adjuntoId"))
	if err != nil {
		fail(c, "downloadAttachment", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "url": url, "nombre": a.NombreOriginal})
}

func (s *Server) deleteAttachment(c *gin.Context) {
	if err := s.deps.Attachments.Delete(c.Request.Context(), c.Param("id"), c.Param("adjuntoId")); err != nil {
		fail(c, "deleteAttachment", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// serveFile streams a locally stored attachment for a valid download token.
func (s *Server) serveFile(c *gin.Context) {
	full, err := s.deps.Files.Locate(c.Request.Context(), c.Param("token"))
	if err != nil {
		if errors.Is(err, storage.ErrLinkNotFound) || errors.Is(err, storage.ErrObjectNotFound) ||
			errors.Is(err, storage.ErrInvalidPath) {
			notFound(c, "Enlace inválido o expirado")
			return
		}
		fail(c, "serveFile", err)
		return
	}
	c.FileAttachment(full, originalName(filepath.Base(full)))
}

// originalName drops the uuid8_ prefix storage names carry.
func originalName(base string) string {
	if len(base) > 9 && base[8] == '_' {
		return base[9:]
	}
	return base
}
