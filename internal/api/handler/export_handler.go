package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"slotswap/internal/dto"
	"slotswap/internal/service"
	"slotswap/pkg/response"
)

// ExportHandler 导入导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// Export 导出我的时间槽
// GET /api/v1/events/export?format=ics|xlsx
func (h *ExportHandler) Export(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ExportEventsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 14001, "format 仅支持 ics 或 xlsx")
		return
	}

	buf, filename, contentType, err := h.exportSvc.ExportEvents(c.Request.Context(), userID, req.Format)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	// 设置下载响应头
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

// Import 从 ICS 文件导入时间槽
// POST /api/v1/events/import (multipart, 字段 file)
func (h *ExportHandler) Import(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, 14001, "请上传 ICS 文件")
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.BadRequest(c, 14001, "读取上传文件失败")
		return
	}
	defer f.Close()

	result, err := h.exportSvc.ImportICS(c.Request.Context(), userID, f)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	response.OK(c, result)
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExportUnsupportedFormat):
		response.BadRequest(c, 14101, "不支持的导出格式")
	case errors.Is(err, service.ErrImportTooLarge):
		response.Error(c, http.StatusRequestEntityTooLarge, 14102, "ICS 文件超过 5MB 限制")
	case errors.Is(err, service.ErrImportInvalidICS):
		response.BadRequest(c, 14103, "ICS 格式解析失败")
	default:
		response.InternalError(c)
	}
}
