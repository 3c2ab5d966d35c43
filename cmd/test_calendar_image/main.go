package main

import (
	"fmt"
	"os"
	"time"

	"github.com/Nopass0/repitnew_backend/internal/model"
	"github.com/Nopass0/repitnew_backend/internal/render"
	"github.com/google/uuid"
)

func main() {
	// Создаем тестовые данные
	now := time.Now()
	startDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	// Начинаем с понедельника текущей недели
	for startDate.Weekday() != time.Monday {
		startDate = startDate.AddDate(0, 0, -1)
	}

	lessons := []model.Lesson{
		// Понедельник
		{
			ID:            uuid.New(),
			DateTime:      startDate.Add(9 * time.Hour),
			StartTime:     "09:00",
			EndTime:       "10:00",
			SubjectName:   "Математика",
			PaymentAmount: 100000,
			EventType:     model.LessonPaid,
		},
		{
			ID:            uuid.New(),
			DateTime:      startDate.Add(14 * time.Hour),
			StartTime:     "14:00",
			EndTime:       "15:00",
			SubjectName:   "Математика",
			PaymentAmount: 100000,
			EventType:     model.LessonUnpaid,
		},
		// Вторник
		{
			ID:            uuid.New(),
			DateTime:      startDate.AddDate(0, 0, 1).Add(10 * time.Hour),
			StartTime:     "10:00",
			EndTime:       "11:30",
			SubjectName:   "Физика",
			PaymentAmount: 120000,
			EventType:     model.LessonUnpaid,
		},
		// Четверг, отменённый урок
		{
			ID:            uuid.New(),
			DateTime:      startDate.AddDate(0, 0, 3).Add(16 * time.Hour),
			StartTime:     "16:00",
			EndTime:       "17:00",
			SubjectName:   "Физика",
			PaymentAmount: 120000,
			EventType:     model.LessonCancelled,
			IsCancelled:   true,
		},
	}

	renderer := render.NewWeekRenderer(os.Getenv("FONT_PATH"))
	png, err := renderer.RenderWeek(startDate, lessons)
	if err != nil {
		fmt.Fprintf(os.Stderr, "render week: %v\n", err)
		os.Exit(1)
	}

	if err := os.WriteFile("week.png", png, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "write week.png: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("week.png written")
}
