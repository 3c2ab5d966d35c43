package model

// Stats — агрегаты по занятиям, отменённые уроки не учитываются
type Stats struct {
	TotalLessons     int `json:"total_lessons"`
	TotalAmount      int `json:"total_amount"`
	CompletedLessons int `json:"completed_lessons"`
	PaidLessons      int `json:"paid_lessons"`
	PaidAmount       int `json:"paid_amount"`
	UnpaidLessons    int `json:"unpaid_lessons"`
	UnpaidAmount     int `json:"unpaid_amount"`
	Debt             int `json:"debt"` // неоплаченная сумма по уже прошедшим урокам
}
