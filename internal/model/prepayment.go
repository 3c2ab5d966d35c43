package model

import (
	"time"

	"github.com/google/uuid"
)

// Prepayment — внесённая предоплата, списывается сверкой в хронологическом порядке
type Prepayment struct {
	ID       uuid.UUID `json:"id"`
	Amount   int       `json:"amount"` // в копейках/центах, > 0
	DateTime time.Time `json:"date_time"`
}
