// Package security servicios de seguridad en memoria: bitácora acotada de eventos
// y monitor de sesiones inactivas. Se construyen en main y se inyectan.
package security

import (
	"sync"
	"time"

	"github.com/jhoicas/Obrix-api/pkg/logger"
)

// Tipos de evento.
const (
	EventLoginFailed    = "login_failed"
	EventInvalidToken   = "invalid_token"
	EventForbidden      = "forbidden"
	EventFeatureDenied  = "feature_denied"
	EventSessionExpired = "session_expired"
	EventInputSanitized = "input_sanitized"
)

// DefaultEventBuffer cantidad de eventos que conserva la bitácora.
const DefaultEventBuffer = 100

// Event evento de seguridad.
type Event struct {
	Type      string
	UserID    string
	CompanyID string
	IP        string
	Detail    string
	At        time.Time
}

// Recorder registra eventos; lo usan middlewares y casos de uso.
type Recorder interface {
	Record(e Event)
}

// EventLog buffer circular con los últimos N eventos. Seguro para uso concurrente.
type EventLog struct {
	mu   sync.Mutex
	buf  []Event
	next int
	full bool
	log  *logger.Logger
	now  func() time.Time
}

var _ Recorder = (*EventLog)(nil)

// NewEventLog crea la bitácora; size ≤ 0 usa DefaultEventBuffer.
func NewEventLog(size int, log *logger.Logger) *EventLog {
	if size <= 0 {
		size = DefaultEventBuffer
	}
	return &EventLog{buf: make([]Event, size), log: log, now: time.Now}
}

// Record agrega el evento (descarta el más antiguo si está lleno) y lo envía al log.
func (l *EventLog) Record(e Event) {
	if e.At.IsZero() {
		e.At = l.now().UTC()
	}
	l.mu.Lock()
	l.buf[l.next] = e
	l.next = (l.next + 1) % len(l.buf)
	if l.next == 0 {
		l.full = true
	}
	l.mu.Unlock()

	l.log.Warn().
		Str("event", e.Type).
		Str("user_id", e.UserID).
		Str("company_id", e.CompanyID).
		Str("ip", e.IP).
		Str("detail", e.Detail).
		Msg("evento de seguridad")
}

// Len cantidad de eventos guardados.
func (l *EventLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.full {
		return len(l.buf)
	}
	return l.next
}

// Recent devuelve hasta limit eventos, el más reciente primero. limit ≤ 0 = todos.
// companyID no vacío filtra por empresa.
func (l *EventLog) Recent(limit int, companyID string) []Event {
	l.mu.Lock()
	defer l.mu.Unlock()

	n := l.next
	if l.full {
		n = len(l.buf)
	}
	out := make([]Event, 0, n)
	for i := 0; i < n; i++ {
		idx := (l.next - 1 - i + len(l.buf)) % len(l.buf)
		e := l.buf[idx]
		if companyID != "" && e.CompanyID != companyID {
			continue
		}
		out = append(out, e)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}
