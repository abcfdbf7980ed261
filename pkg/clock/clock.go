package clock

import "time"

// Clock - абстракция текущего времени. Внедряется в сервисы, чтобы тесты
// детерминированно управляли "сейчас" (окно дедупликации, метки статусов).
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

// New возвращает часы на основе системного времени (UTC)
func New() Clock {
	return realClock{}
}
