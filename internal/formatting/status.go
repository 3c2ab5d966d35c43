package formatting

import (
	"fmt"

	"github.com/Nopass0/repitnew_backend/internal/model"
)

// LessonStatusDisplay представляет отображение статуса урока
type LessonStatusDisplay struct {
	Emoji string
	Text  string
}

// GetLessonStatusDisplay возвращает emoji и текст для статуса урока
func GetLessonStatusDisplay(eventType model.LessonEventType) LessonStatusDisplay {
	displays := map[model.LessonEventType]LessonStatusDisplay{
		model.LessonPaid:      {"🟢", "Оплачено"},
		model.LessonUnpaid:    {"🔴", "Не оплачено"},
		model.LessonCancelled: {"⚫️", "Отменено"},
	}

	if display, ok := displays[eventType]; ok {
		return display
	}

	return LessonStatusDisplay{"❓", "Неизвестно"}
}

// FormatLessonInfo форматирует информацию об уроке
func FormatLessonInfo(lesson *model.Lesson) string {
	display := GetLessonStatusDisplay(lesson.EventType)

	return fmt.Sprintf(
		"%s <b>%s</b>\n"+
			"📅 %s, %s\n"+
			"🕐 %s\n"+
			"💰 %s | остаток предоплаты %s",
		display.Emoji,
		lesson.SubjectName,
		GetWeekdayName(int(lesson.DateTime.Weekday())),
		FormatDate(lesson.DateTime),
		FormatTimeRange(lesson.StartTime, lesson.EndTime),
		FormatPriceShort(lesson.PaymentAmount),
		FormatPriceShort(lesson.RemainingPrepayment),
	)
}

// FormatStatsSummary форматирует сводку агрегатов
func FormatStatsSummary(stats model.Stats) string {
	return fmt.Sprintf(
		"📊 <b>Сводка</b>\n\n"+
			"Всего: %d %s на %s\n"+
			"Проведено: %d\n"+
			"Оплачено: %d на %s\n"+
			"Не оплачено: %d на %s\n"+
			"Долг: %s",
		stats.TotalLessons,
		PluralizeLessons(stats.TotalLessons),
		FormatPriceShort(stats.TotalAmount),
		stats.CompletedLessons,
		stats.PaidLessons,
		FormatPriceShort(stats.PaidAmount),
		stats.UnpaidLessons,
		FormatPriceShort(stats.UnpaidAmount),
		FormatPrice(stats.Debt),
	)
}
