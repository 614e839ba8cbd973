package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"slotswap/internal/dto"
	"slotswap/internal/model"
	"slotswap/internal/repository"
)

// ── 导入导出模块业务错误 ──

var (
	ErrExportUnsupportedFormat = errors.New("不支持的导出格式")
	ErrExportGenerateFail      = errors.New("生成导出文件失败")
	ErrImportTooLarge          = errors.New("ICS 文件超过 5MB 限制")
	ErrImportInvalidICS        = errors.New("ICS 格式解析失败")
)

const (
	ExportFormatICS  = "ics"
	ExportFormatXLSX = "xlsx"

	contentTypeICS  = "text/calendar; charset=utf-8"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ExportService 时间槽导入导出接口
//
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置响应头后写入
//   - ICS 导出只包含起止时间可按 RFC 3339 解析的时间槽
//   - ICS 导入的时间槽一律为 BUSY
type ExportService interface {
	// ExportEvents 导出调用者的全部时间槽，返回内容、建议文件名与 Content-Type
	ExportEvents(ctx context.Context, ownerID, format string) (*bytes.Buffer, string, string, error)
	// ImportICS 从 ICS 数据流导入时间槽
	ImportICS(ctx context.Context, ownerID string, r io.Reader) (*dto.ImportEventsResponse, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportEvents 导出时间槽
// ═══════════════════════════════════════════════════════════

func (s *exportService) ExportEvents(ctx context.Context, ownerID, format string) (*bytes.Buffer, string, string, error) {
	if format == "" {
		format = ExportFormatICS
	}
	if format != ExportFormatICS && format != ExportFormatXLSX {
		return nil, "", "", ErrExportUnsupportedFormat
	}

	events, err := s.repo.Event.ListByOwner(ctx, ownerID)
	if err != nil {
		s.logger.Error("查询时间槽失败", zap.String("owner_id", ownerID), zap.Error(err))
		return nil, "", "", err
	}

	stamp := time.Now().UTC().Format("20060102")

	if format == ExportFormatICS {
		buf, skipped, err := buildCalendar(events)
		if err != nil {
			s.logger.Error("生成 ICS 失败", zap.Error(err))
			return nil, "", "", ErrExportGenerateFail
		}
		if skipped > 0 {
			s.logger.Warn("部分时间槽时间格式无法解析，已跳过",
				zap.String("owner_id", ownerID),
				zap.Int("skipped", skipped),
			)
		}
		return buf, fmt.Sprintf("slots_%s.ics", stamp), contentTypeICS, nil
	}

	buf, err := buildWorkbook(events)
	if err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", "", ErrExportGenerateFail
	}
	return buf, fmt.Sprintf("slots_%s.xlsx", stamp), contentTypeXLSX, nil
}

// buildWorkbook 单 Sheet：标题 | 开始 | 结束 | 状态 | 创建时间
// 时间列原样输出
func buildWorkbook(events []model.Event) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "时间槽"
	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 30)
	f.SetColWidth(sheetName, "B", "C", 26)
	f.SetColWidth(sheetName, "D", "D", 16)
	f.SetColWidth(sheetName, "E", "E", 24)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	headers := []string{"标题", "开始时间", "结束时间", "状态", "创建时间"}
	for i, h := range headers {
		f.SetCellValue(sheetName, cell(colName(i), 1), h)
	}
	f.SetCellStyle(sheetName, "A1", cell(colName(len(headers)-1), 1), headerStyle)

	for i, e := range events {
		row := i + 2
		f.SetCellValue(sheetName, cell("A", row), e.Title)
		f.SetCellValue(sheetName, cell("B", row), e.StartTime)
		f.SetCellValue(sheetName, cell("C", row), e.EndTime)
		f.SetCellValue(sheetName, cell("D", row), string(e.Status))
		f.SetCellValue(sheetName, cell("E", row), formatTime(e.CreatedAt))
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// ═══════════════════════════════════════════════════════════
// ImportICS 导入 ICS
// ═══════════════════════════════════════════════════════════

func (s *exportService) ImportICS(ctx context.Context, ownerID string, r io.Reader) (*dto.ImportEventsResponse, error) {
	data, err := io.ReadAll(io.LimitReader(r, icsMaxFileSize+1))
	if err != nil {
		return nil, ErrImportInvalidICS
	}
	if len(data) > icsMaxFileSize {
		return nil, ErrImportTooLarge
	}

	parsed, skipped, err := parseCalendar(bytes.NewReader(data))
	if err != nil {
		return nil, ErrImportInvalidICS
	}

	// 整批导入在同一事务中，任一失败则全部回滚
	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		for _, p := range parsed {
			event := &model.Event{
				UserID:    ownerID,
				Title:     p.Title,
				StartTime: formatTime(p.Start),
				EndTime:   formatTime(p.End),
				Status:    model.EventStatusBusy,
			}
			if err := tx.Event.Create(ctx, event); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("导入时间槽失败", zap.String("owner_id", ownerID), zap.Error(err))
		return nil, err
	}
	imported := len(parsed)

	s.logger.Info("ICS 导入完成",
		zap.String("owner_id", ownerID),
		zap.Int("imported", imported),
		zap.Int("skipped", skipped),
	)

	return &dto.ImportEventsResponse{Imported: imported, Skipped: skipped}, nil
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
