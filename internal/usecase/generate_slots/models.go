package generate_slots

import "time"

// Request модель запроса на генерацию слотов расписания
type Request struct {
	ScheduleID int64     // ID расписания
	FromDate   time.Time // начало горизонта (включительно)
	ToDate     time.Time // конец горизонта (включительно)
}

// Response модель ответа с результатом генерации
type Response struct {
	ScheduleID int64 // ID расписания
	Created    int   // количество созданных слотов
	Deleted    int   // количество удаленных устаревших слотов
	Total      int   // итоговое количество слотов на горизонте
}
