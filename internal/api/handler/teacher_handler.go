package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"rollcall/internal/dto"
	"rollcall/internal/service"
	"rollcall/pkg/response"
)

// TeacherHandler 教师模块 HTTP 处理器
type TeacherHandler struct {
	teacherSvc service.TeacherService
}

// NewTeacherHandler 创建 TeacherHandler
func NewTeacherHandler(teacherSvc service.TeacherService) *TeacherHandler {
	return &TeacherHandler{teacherSvc: teacherSvc}
}

// ListTeachers 获取教师列表
// GET /api/v1/teachers
func (h *TeacherHandler) ListTeachers(c *gin.Context) {
	teachers, err := h.teacherSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": teachers})
}

// GetTeacher 获取教师详情
// GET /api/v1/teachers/:id
func (h *TeacherHandler) GetTeacher(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "教师ID不能为空")
		return
	}

	teacher, err := h.teacherSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleTeacherError(c, err)
		return
	}

	response.OK(c, teacher)
}

// CreateTeacher 创建教师
// POST /api/v1/teachers
func (h *TeacherHandler) CreateTeacher(c *gin.Context) {
	var req dto.CreateTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	teacher, err := h.teacherSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleTeacherError(c, err)
		return
	}

	response.Created(c, teacher)
}

// UpdateTeacher 更新教师资料（管理员或本人）
// PATCH /api/v1/teachers/:id
func (h *TeacherHandler) UpdateTeacher(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "教师ID不能为空")
		return
	}

	var req dto.UpdateTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	callerRole, ok := MustGetRole(c)
	if !ok {
		return
	}

	teacher, err := h.teacherSvc.Update(c.Request.Context(), id, &req, callerID, callerRole)
	if err != nil {
		h.handleTeacherError(c, err)
		return
	}

	response.OK(c, teacher)
}

// DeleteTeacher 删除教师
// DELETE /api/v1/teachers/:id
func (h *TeacherHandler) DeleteTeacher(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "教师ID不能为空")
		return
	}

	if err := h.teacherSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleTeacherError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleTeacherError 统一处理教师模块业务错误
func (h *TeacherHandler) handleTeacherError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTeacherNotFound):
		response.NotFound(c, 13001, "教师不存在")
	case errors.Is(err, service.ErrTeacherEmailExists):
		response.BadRequest(c, 13002, "邮箱已被使用")
	case errors.Is(err, service.ErrTeacherMobileExists):
		response.BadRequest(c, 13003, "手机号已被使用")
	case errors.Is(err, service.ErrTeacherUpdateNotAllow):
		response.Forbidden(c, 13004, "仅管理员或本人可修改教师资料")
	case errors.Is(err, service.ErrDepartmentNotFound):
		response.NotFound(c, 14001, "部门不存在")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/teacher_handler.go
