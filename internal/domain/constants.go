package domain

import "errors"

// Форматы даты и времени
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Границы бизнес-валидации
const (
	MinSlotDurationMinutes = 5
	MaxSlotDurationMinutes = 480 // 8 часов
	MinSlotCapacity        = 1
	MaxSlotCapacity        = 500
	MaxCancelReasonLength  = 500

	DefaultHorizonDays = 28
	MaxHorizonDays     = 92
)

// Ошибки доменной валидации, общие для нескольких пакетов
var (
	// ErrMissingCancelReason возвращается при отмене с типом other без текста причины
	ErrMissingCancelReason = errors.New("domain: cancel reason text is required")

	// ErrInvalidCancelReasonType возвращается при неизвестном типе причины отмены
	ErrInvalidCancelReasonType = errors.New("domain: invalid cancel reason type")
)
