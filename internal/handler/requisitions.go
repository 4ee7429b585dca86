package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/CroSSer23/spa-procurement/internal/apierror"
	"github.com/CroSSer23/spa-procurement/internal/dto"
	"github.com/CroSSer23/spa-procurement/internal/service"
)

type RequisitionsHandler struct {
	svc    service.RequisitionService
	export service.ExportService
	auth   service.AuthService
}

func NewRequisitionsHandler(svc service.RequisitionService, export service.ExportService, auth service.AuthService) *RequisitionsHandler {
	return &RequisitionsHandler{svc: svc, export: export, auth: auth}
}

// Create godoc
// @Summary Create a requisition (submitted, or draft with draft=true)
// @Tags requisitions
// @Accept json
// @Produce json
// @Param body body dto.CreateRequisitionRequest true "Requisition"
// @Success 201 {object} dto.RequisitionResponse
// @Failure 400 {object} apierror.APIError
// @Failure 403 {object} apierror.APIError
// @Router /v1/requisitions [post]
func (h *RequisitionsHandler) Create(c *gin.Context) {
	actor, ok := resolveActor(c, h.auth)
	if !ok {
		return
	}
	var req dto.CreateRequisitionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *RequisitionsHandler) List(c *gin.Context) {
	actor, ok := resolveActor(c, h.auth)
	if !ok {
		return
	}
	var filter dto.RequisitionFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), actor, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RequisitionsHandler) Get(c *gin.Context) {
	actor, ok := resolveActor(c, h.auth)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Submit moves a draft to SUBMITTED. The version token guards against a
// concurrent edit between the client's read and this call.
func (h *RequisitionsHandler) Submit(c *gin.Context) {
	actor, ok := resolveActor(c, h.auth)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.SubmitRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Submit(c.Request.Context(), actor, id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RequisitionsHandler) EditItems(c *gin.Context) {
	actor, ok := resolveActor(c, h.auth)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.EditItemsRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.EditItems(c.Request.Context(), actor, id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RequisitionsHandler) ReceiveItems(c *gin.Context) {
	actor, ok := resolveActor(c, h.auth)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.ReceiveItemsRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ReceiveItems(c.Request.Context(), actor, id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RequisitionsHandler) ChangeStatus(c *gin.Context) {
	actor, ok := resolveActor(c, h.auth)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.ChangeStatusRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ChangeStatus(c.Request.Context(), actor, id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RequisitionsHandler) AddComment(c *gin.Context) {
	actor, ok := resolveActor(c, h.auth)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.CommentRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AddComment(c.Request.Context(), actor, id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *RequisitionsHandler) AddAttachment(c *gin.Context) {
	actor, ok := resolveActor(c, h.auth)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.CreateAttachmentRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AddAttachment(c.Request.Context(), actor, id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *RequisitionsHandler) Delete(c *gin.Context) {
	actor, ok := resolveActor(c, h.auth)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), actor, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Export streams the filtered requisition list as an xlsx workbook.
// Staff-only; the route gate enforces the role.
func (h *RequisitionsHandler) Export(c *gin.Context) {
	var filter dto.RequisitionFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	data, err := h.export.RequisitionsXLSX(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	filename := fmt.Sprintf("requisitions-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
