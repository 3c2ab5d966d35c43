package service

import (
	"sort"
	"time"

	"github.com/Nopass0/repitnew_backend/internal/model"
)

// RefreshPassage пересчитывает признак прошедшего урока по дате
// относительно now (строго "раньше"; урок ровно в now ещё не прошёл).
// Обновляет срез на месте и возвращает индексы изменившихся уроков.
// Генератор делает это только для уроков, совпавших с расписанием,
// поэтому уроки, добавленные вручную, пересчитываются здесь
func RefreshPassage(lessons []model.Lesson, now time.Time) []int {
	var changed []int
	for i := range lessons {
		passed := lessons[i].DateTime.Before(now)
		if passed != lessons[i].HasPassed {
			lessons[i].HasPassed = passed
			changed = append(changed, i)
		}
	}
	return changed
}

// Reconcile выполняет хронологическую сверку уроков с предоплатами.
//
// Алгоритм — один проход вперёд по урокам в порядке возрастания даты:
// предоплаты с датой <= даты урока зачисляются в баланс до оценки этого
// урока (при равенстве дат предоплата успевает первой); отменённый урок
// не списывает ничего; урок списывается целиком, только если баланса
// хватает на всю цену — частичного списания нет, баланс никогда не
// уходит в минус. На каждой записи фиксируется остаток после операции.
//
// Функция чистая: вход не мутируется, возвращаются копии уроков в
// исходном порядке. Прежние значения EventType и RemainingPrepayment
// игнорируются и пересчитываются заново.
func Reconcile(lessons []model.Lesson, prepayments []model.Prepayment) []model.Lesson {
	out := make([]model.Lesson, len(lessons))
	copy(out, lessons)

	order := make([]int, len(out))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return out[order[i]].DateTime.Before(out[order[j]].DateTime)
	})

	sorted := make([]model.Prepayment, len(prepayments))
	copy(sorted, prepayments)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DateTime.Before(sorted[j].DateTime)
	})

	balance := 0
	cursor := 0
	for _, idx := range order {
		l := &out[idx]

		for cursor < len(sorted) && !sorted[cursor].DateTime.After(l.DateTime) {
			balance += sorted[cursor].Amount
			cursor++
		}

		switch {
		case l.IsCancelled:
			l.EventType = model.LessonCancelled
		case balance >= l.PaymentAmount:
			balance -= l.PaymentAmount
			l.EventType = model.LessonPaid
		default:
			l.EventType = model.LessonUnpaid
		}
		l.RemainingPrepayment = balance
	}

	// Предоплаты позже последнего урока остаются незачисленными:
	// они попадут в баланс, когда появится более поздний урок
	return out
}
