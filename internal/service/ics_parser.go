package service

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	ics "github.com/arran4/golang-ical"

	"slotswap/internal/model"
)

// ── ICS 编解码 ──────────────────────────────────────────────
//
// 导出：每个时间槽一个 VEVENT，UID 取时间槽 ID，状态写入 X-SLOTSWAP-STATUS。
// 导入：需要 SUMMARY（不超过 200 字符）与 DTSTART，缺少 DTEND 时按 DURATION 推算，
// 任一缺失或无法解析的 VEVENT 计入 skipped。
// ─────────────────────────────────────────────────────────────

const (
	icsMaxFileSize   = 5 * 1024 * 1024 // 5MB
	icsProductID     = "-//slotswap//slots//EN"
	icsStatusProp    = "X-SLOTSWAP-STATUS"
	icsDefaultLength = time.Hour
	icsMaxTitleLen   = 200 // 与 events.title varchar(200) 一致
)

// parsedSlot ICS 解析中间结构
type parsedSlot struct {
	Title string
	Start time.Time
	End   time.Time
}

// buildCalendar 将时间槽序列化为 ICS，返回被跳过（时间无法解析）的数量
func buildCalendar(events []model.Event) (*bytes.Buffer, int, error) {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(icsProductID)

	now := time.Now().UTC()
	skipped := 0
	for _, e := range events {
		start, err := time.Parse(time.RFC3339, e.StartTime)
		if err != nil {
			skipped++
			continue
		}
		end, err := time.Parse(time.RFC3339, e.EndTime)
		if err != nil {
			skipped++
			continue
		}

		ve := cal.AddEvent(e.EventID)
		ve.SetDtStampTime(now)
		ve.SetStartAt(start.UTC())
		ve.SetEndAt(end.UTC())
		ve.SetSummary(e.Title)
		ve.SetProperty(ics.ComponentProperty(icsStatusProp), string(e.Status))
	}

	buf := new(bytes.Buffer)
	if err := cal.SerializeTo(buf); err != nil {
		return nil, 0, err
	}
	return buf, skipped, nil
}

// parseCalendar 解析 ICS，返回可导入的时间槽与跳过数量
func parseCalendar(r io.Reader) ([]parsedSlot, int, error) {
	cal, err := ics.ParseCalendar(r)
	if err != nil {
		return nil, 0, fmt.Errorf("ICS 格式解析失败: %w", err)
	}

	var result []parsedSlot
	skipped := 0
	for _, ve := range cal.Events() {
		slot, ok := parseVEvent(ve)
		if !ok {
			skipped++
			continue
		}
		result = append(result, slot)
	}
	return result, skipped, nil
}

// parseVEvent 解析单个 VEVENT
func parseVEvent(ve *ics.VEvent) (parsedSlot, bool) {
	summary := ve.GetProperty(ics.ComponentPropertySummary)
	if summary == nil {
		return parsedSlot{}, false
	}
	title := strings.TrimSpace(summary.Value)
	if title == "" || utf8.RuneCountInString(title) > icsMaxTitleLen {
		return parsedSlot{}, false
	}

	start, err := ve.GetStartAt()
	if err != nil {
		return parsedSlot{}, false
	}

	end, err := ve.GetEndAt()
	if err != nil {
		end = start.Add(parseDuration(ve))
	}
	if !end.After(start) {
		return parsedSlot{}, false
	}

	return parsedSlot{
		Title: title,
		Start: start,
		End:   end,
	}, true
}

// parseDuration 解析 DURATION（仅支持 PTnHnMnS 与 PnD），缺省一小时
func parseDuration(ve *ics.VEvent) time.Duration {
	prop := ve.GetProperty(ics.ComponentPropertyDuration)
	if prop == nil {
		return icsDefaultLength
	}
	v := strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(prop.Value)), "+")
	if !strings.HasPrefix(v, "P") {
		return icsDefaultLength
	}
	v = v[1:]

	var total time.Duration
	datePart, timePart, _ := strings.Cut(v, "T")
	if datePart != "" {
		var days int
		if _, err := fmt.Sscanf(datePart, "%dD", &days); err == nil {
			total += time.Duration(days) * 24 * time.Hour
		}
	}
	if timePart != "" {
		d, err := time.ParseDuration(strings.ToLower(timePart))
		if err == nil {
			total += d
		}
	}
	if total <= 0 {
		return icsDefaultLength
	}
	return total
}
