package render

import (
	"bytes"
	"image/color"
	"strconv"
	"time"

	"github.com/Nopass0/repitnew_backend/internal/formatting"
	"github.com/Nopass0/repitnew_backend/internal/model"
	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"
)

// Константы размеров и отступов
const (
	imageWidth       = 1400
	imageHeight      = 900
	headerHeight     = 100
	leftLabelsWidth  = 80
	legendWidth      = 120
	dayPaddingX      = 8
	minSlotHeight    = 8.0
	slotBorderRadius = 6.0
	totalDaysInWeek  = 7
	hourPaddingTop   = 2
	hourPaddingBot   = 2
	defaultMinHour   = 8
	defaultMaxHour   = 20
)

// Цветовая схема
var (
	bgColor        = color.RGBA{245, 246, 248, 255}
	textColor      = color.RGBA{80, 85, 90, 220}
	hourLabelColor = color.RGBA{110, 115, 120, 200}
	todayBgColor   = color.NRGBA{255, 99, 71, 125}
	evenDayColor   = color.NRGBA{240, 240, 240, 255}
	oddDayColor    = color.NRGBA{220, 220, 220, 255}

	slotPaidColor      = color.RGBA{133, 193, 85, 220}
	slotUnpaidColor    = color.RGBA{255, 182, 193, 255} // Светло-розовый для неоплаченных
	slotCancelledColor = color.RGBA{158, 158, 158, 200}
	slotTextColor      = color.RGBA{20, 24, 28, 230}

	legendItemColor = color.RGBA{70, 74, 78, 220}
)

// hourRange содержит диапазон часов для отображения
type hourRange struct {
	start int
	end   int
	total int
}

// WeekRenderer рисует недельный календарь уроков
type WeekRenderer struct {
	fontPath string // пусто — basicfont
}

func NewWeekRenderer(fontPath string) *WeekRenderer {
	return &WeekRenderer{fontPath: fontPath}
}

// setFont устанавливает шрифт указанного размера или basicfont как fallback
func (wr *WeekRenderer) setFont(dc *gg.Context, size float64) {
	if wr.fontPath != "" {
		if err := dc.LoadFontFace(wr.fontPath, size); err == nil {
			return
		}
	}
	dc.SetFontFace(basicfont.Face7x13)
}

// RenderWeek генерирует PNG недели с уроками, раскрашенными по статусу оплаты
func (wr *WeekRenderer) RenderWeek(date time.Time, lessons []model.Lesson) ([]byte, error) {
	week := BuildWeek(date, lessons)
	today := time.Now()
	todayKey := today.Format("2006-01-02")

	hours := calculateHourRange(lessons)

	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetColor(bgColor)
	dc.Clear()

	dayWidth := (imageWidth - leftLabelsWidth - legendWidth) / totalDaysInWeek
	dayHeight := imageHeight - headerHeight
	cellHeight := float64(dayHeight) / float64(hours.total)

	wr.drawHeader(dc, week)
	wr.drawHourLabels(dc, hours, cellHeight)

	for dayIndex, cell := range week.Days {
		x := float64(leftLabelsWidth + dayIndex*dayWidth)

		// Фон дня, сегодняшний подсвечивается
		dayColor := evenDayColor
		if dayIndex%2 == 1 {
			dayColor = oddDayColor
		}
		if cell.Date.Format("2006-01-02") == todayKey {
			dayColor = todayBgColor
		}
		dc.SetColor(dayColor)
		dc.DrawRectangle(x, headerHeight, float64(dayWidth), float64(dayHeight))
		dc.Fill()

		// Подпись дня
		wr.setFont(dc, 27)
		dc.SetColor(textColor)
		label := formatting.GetWeekdayShort(int(cell.Date.Weekday())) + " " + strconv.Itoa(cell.Date.Day())
		dc.DrawStringAnchored(label, x+float64(dayWidth)/2, float64(headerHeight)-20, 0.5, 0.5)

		wr.drawDayLessons(dc, cell, hours, x, float64(dayWidth), cellHeight)
	}

	wr.drawLegend(dc)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// drawHeader рисует заголовок с названием месяца
func (wr *WeekRenderer) drawHeader(dc *gg.Context, week CalendarWeek) {
	end := week.Start.AddDate(0, 0, 6)

	title := formatting.GetMonthName(week.Start.Month())
	if week.Start.Month() != end.Month() {
		title += " - " + formatting.GetMonthName(end.Month())
	}

	wr.setFont(dc, 25)
	dc.SetColor(textColor)
	w, h := dc.MeasureString(title)
	dc.DrawStringAnchored(title, w/2+20, float64(headerHeight)/8+h/2, 0, 0)
}

// drawHourLabels рисует колонку с часами слева
func (wr *WeekRenderer) drawHourLabels(dc *gg.Context, hours hourRange, cellHeight float64) {
	wr.setFont(dc, 18)
	dc.SetColor(hourLabelColor)

	for hIdx := 0; hIdx < hours.total; hIdx++ {
		actualHour := hours.start + hIdx
		y := float64(headerHeight) + float64(hIdx)*cellHeight
		timeLabel := strconv.Itoa(actualHour) + ":00"
		dc.DrawStringAnchored(timeLabel, float64(leftLabelsWidth)-10, y, 1, 0.5)
	}
}

// drawDayLessons рисует уроки одного дня
func (wr *WeekRenderer) drawDayLessons(dc *gg.Context, cell CalendarCell, hours hourRange, x, dayWidth, cellHeight float64) {
	for i := range cell.Lessons {
		l := &cell.Lessons[i]

		startMin, endMin, err := (model.TimeRange{Start: l.StartTime, End: l.EndTime}).Minutes()
		if err != nil {
			continue
		}

		top := float64(headerHeight) + (float64(startMin)/60-float64(hours.start))*cellHeight
		height := (float64(endMin-startMin) / 60) * cellHeight
		if height < minSlotHeight {
			height = minSlotHeight
		}

		dc.SetColor(lessonFillColor(l))
		dc.DrawRoundedRectangle(x+dayPaddingX, top, dayWidth-2*dayPaddingX, height, slotBorderRadius)
		dc.Fill()

		wr.setFont(dc, 17)
		dc.SetColor(slotTextColor)
		caption := formatting.FormatTimeRange(l.StartTime, l.EndTime) + " " + l.SubjectName
		dc.DrawStringAnchored(caption, x+dayWidth/2, top+height/2, 0.5, 0.5)
	}
}

// drawLegend рисует легенду статусов справа
func (wr *WeekRenderer) drawLegend(dc *gg.Context) {
	type legendItem struct {
		label string
		fill  color.Color
	}
	items := []legendItem{
		{"Оплачено", slotPaidColor},
		{"Не оплачено", slotUnpaidColor},
		{"Отменено", slotCancelledColor},
	}

	x := float64(imageWidth - legendWidth + 10)
	y := float64(headerHeight + 20)

	wr.setFont(dc, 12)
	for _, item := range items {
		dc.SetColor(item.fill)
		dc.DrawRoundedRectangle(x, y, 16, 16, 3)
		dc.Fill()

		dc.SetColor(legendItemColor)
		dc.DrawStringAnchored(item.label, x+24, y+8, 0, 0.5)
		y += 28
	}
}

// calculateHourRange определяет диапазон часов для отображения
func calculateHourRange(lessons []model.Lesson) hourRange {
	minHour := 24
	maxHour := 0

	for i := range lessons {
		startMin, endMin, err := (model.TimeRange{Start: lessons[i].StartTime, End: lessons[i].EndTime}).Minutes()
		if err != nil {
			continue
		}
		startH := startMin / 60
		endH := endMin / 60
		if endMin%60 > 0 {
			endH++
		}
		if startH < minHour {
			minHour = startH
		}
		if endH > maxHour {
			maxHour = endH
		}
	}

	if minHour == 24 {
		minHour = defaultMinHour
		maxHour = defaultMaxHour
	}

	startHour := minHour - hourPaddingTop
	endHour := maxHour + hourPaddingBot
	if startHour < 0 {
		startHour = 0
	}
	if endHour > 23 {
		endHour = 23
	}

	return hourRange{
		start: startHour,
		end:   endHour,
		total: endHour - startHour + 1,
	}
}

func lessonFillColor(l *model.Lesson) color.Color {
	switch {
	case l.IsCancelled || l.EventType == model.LessonCancelled:
		return slotCancelledColor
	case l.EventType == model.LessonPaid:
		return slotPaidColor
	default:
		return slotUnpaidColor
	}
}
