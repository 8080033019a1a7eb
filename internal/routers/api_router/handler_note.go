package api_router

import (
	"strconv"

	"github.com/inkwells/smart-note-service/internal/dto"
	pkgapp "github.com/inkwells/smart-note-service/pkg/app"
	"github.com/inkwells/smart-note-service/pkg/code"

	"github.com/gin-gonic/gin"
)

// NoteHandler 笔记相关处理器
type NoteHandler struct {
	*Handler
}

func NewNoteHandler(base *Handler) *NoteHandler {
	return &NoteHandler{Handler: base}
}

// noteID parses the :id path parameter
// noteID 解析 :id 路径参数
func (h *NoteHandler) noteID(c *gin.Context) (int64, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		response := pkgapp.NewResponse(c)
		response.ToErrorResponse(code.ErrorInvalidParams.WithInput(raw).WithReason("note id must be a positive integer"))
		return 0, false
	}
	return id, true
}

// Create POST /v1/notes/
func (h *NoteHandler) Create(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	params := &dto.NoteCreateRequest{}
	if valid, errs := pkgapp.BindAndValid(c, params); !valid {
		response.ToValidationErrorResponse(errs)
		return
	}

	note, err := h.app.NoteService.Create(c.Request.Context(), pkgapp.GetUID(c), params)
	if err != nil {
		h.respondError(c, "note create failed", err)
		return
	}
	response.ToCreatedResponse(note)
}

// List GET /v1/notes/
func (h *NoteHandler) List(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	notes, err := h.app.NoteService.List(c.Request.Context(), pkgapp.GetUID(c))
	if err != nil {
		h.respondError(c, "note list failed", err)
		return
	}
	response.ToResponse(notes)
}

// Get GET /v1/notes/:id
func (h *NoteHandler) Get(c *gin.Context) {
	id, ok := h.noteID(c)
	if !ok {
		return
	}
	response := pkgapp.NewResponse(c)

	note, err := h.app.NoteService.Get(c.Request.Context(), id, pkgapp.GetUID(c))
	if err != nil {
		h.respondError(c, "note get failed", err)
		return
	}
	response.ToResponse(note)
}

// Update PATCH /v1/notes/:id
func (h *NoteHandler) Update(c *gin.Context) {
	id, ok := h.noteID(c)
	if !ok {
		return
	}
	response := pkgapp.NewResponse(c)

	params := &dto.NoteUpdateRequest{}
	if valid, errs := pkgapp.BindAndValid(c, params); !valid {
		response.ToValidationErrorResponse(errs)
		return
	}

	note, err := h.app.NoteService.Update(c.Request.Context(), id, pkgapp.GetUID(c), params)
	if err != nil {
		h.respondError(c, "note update failed", err)
		return
	}
	response.ToResponse(note)
}

// Delete DELETE /v1/notes/:id
func (h *NoteHandler) Delete(c *gin.Context) {
	id, ok := h.noteID(c)
	if !ok {
		return
	}
	response := pkgapp.NewResponse(c)

	found, err := h.app.NoteService.Delete(c.Request.Context(), id, pkgapp.GetUID(c))
	if err != nil {
		h.respondError(c, "note delete failed", err)
		return
	}
	if !found {
		response.ToErrorResponse(code.ErrorNoteNotFound.WithInput(id))
		return
	}
	response.ToNoContentResponse()
}

// History GET /v1/notes/history/:id
func (h *NoteHandler) History(c *gin.Context) {
	id, ok := h.noteID(c)
	if !ok {
		return
	}
	response := pkgapp.NewResponse(c)

	note, err := h.app.NoteService.GetWithHistory(c.Request.Context(), id, pkgapp.GetUID(c))
	if err != nil {
		h.respondError(c, "note history failed", err)
		return
	}
	response.ToResponse(note)
}
