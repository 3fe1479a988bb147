package server

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/omnimind-research/omnimind/internal/store"
	"github.com/omnimind-research/omnimind/internal/vault"
)

// VaultHandler serves the encrypted personal document vault.
// All routes require authentication.
type VaultHandler struct {
	Store  *store.Store
	Cipher *vault.Cipher
}

func (h *VaultHandler) Register(g *echo.Group) {
	g.POST("/documents", h.create)
	g.GET("/documents", h.list)
	g.POST("/decrypt", h.decrypt)
}

func (h *VaultHandler) create(c echo.Context) error {
	var req DocumentCreateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Title == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title is required")
	}
	encrypted := true
	if req.IsEncrypted != nil {
		encrypted = *req.IsEncrypted
	}
	content := req.Content
	if encrypted {
		var err error
		content, err = h.Cipher.Encrypt(req.Content)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}
	doc, err := h.Store.CreateDocument(c.Request().Context(), userID(c), req.Title, content, req.Tags, encrypted)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, doc)
}

func (h *VaultHandler) list(c echo.Context) error {
	docs, err := h.Store.ListDocuments(c.Request().Context(), userID(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if docs == nil {
		docs = []store.Document{}
	}
	return c.JSON(http.StatusOK, docs)
}

func (h *VaultHandler) decrypt(c echo.Context) error {
	var req DecryptRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.DocumentID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "document_id is required")
	}
	doc, err := h.Store.GetDocument(c.Request().Context(), req.DocumentID, userID(c))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return echo.NewHTTPError(http.StatusNotFound, "document not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if !doc.IsEncrypted {
		return c.JSON(http.StatusOK, DecryptResponse{DecryptedContent: doc.Content})
	}
	plain, err := h.Cipher.Decrypt(doc.Content)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "decryption failed")
	}
	return c.JSON(http.StatusOK, DecryptResponse{DecryptedContent: plain})
}

// userID returns the subject stored by the auth middleware.
func userID(c echo.Context) string {
	if id, ok := c.Get("user_id").(string); ok {
		return id
	}
	return ""
}
