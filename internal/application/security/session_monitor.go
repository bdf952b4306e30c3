package security

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/Obrix-api/internal/domain"
	"github.com/jhoicas/Obrix-api/pkg/logger"
)

// SessionMonitor vence las sesiones sin actividad por más de idle.
//
// Una sesión vencida revoca los tokens emitidos antes del vencimiento: el usuario
// debe volver a iniciar sesión. El barrido periódico corre entre Start y Stop;
// Check también vence de inmediato una sesión inactiva aunque el barrido no haya pasado.
type SessionMonitor struct {
	mu       sync.Mutex
	idle     time.Duration
	interval time.Duration
	tokenTTL time.Duration
	lastSeen map[string]time.Time // userID → última actividad
	revoked  map[string]time.Time // userID → tokens con iat anterior son inválidos
	events   Recorder
	log      *logger.Logger
	now      func() time.Time

	stop chan struct{}
	done chan struct{}
}

// NewSessionMonitor crea el monitor. events puede ser nil.
func NewSessionMonitor(idle, interval time.Duration, events Recorder, log *logger.Logger) *SessionMonitor {
	if idle <= 0 {
		idle = 30 * time.Minute
	}
	if interval <= 0 {
		interval = time.Minute
	}
	return &SessionMonitor{
		idle:     idle,
		interval: interval,
		tokenTTL: 24 * time.Hour,
		lastSeen: make(map[string]time.Time),
		revoked:  make(map[string]time.Time),
		events:   events,
		log:      log,
		now:      time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (m *SessionMonitor) WithClock(now func() time.Time) *SessionMonitor {
	m.now = now
	return m
}

// WithTokenLifetime vida máxima de un JWT. Una revocación se descarta en el barrido
// cuando ya pasó idle + ttl: los tokens que bloqueaba ya vencieron por sí mismos.
func (m *SessionMonitor) WithTokenLifetime(ttl time.Duration) *SessionMonitor {
	if ttl > 0 {
		m.tokenTTL = ttl
	}
	return m
}

// Begin registra el inicio de sesión (login).
func (m *SessionMonitor) Begin(userID string) {
	m.mu.Lock()
	m.lastSeen[userID] = m.now()
	m.mu.Unlock()
}

// Check valida la sesión del token (iat = issuedAt) y registra la actividad.
// Devuelve domain.ErrSessionExpired si el token fue revocado o la sesión quedó inactiva.
func (m *SessionMonitor) Check(userID string, issuedAt time.Time) error {
	m.mu.Lock()
	now := m.now()
	if cut, ok := m.revoked[userID]; ok && issuedAt.Before(cut) {
		m.mu.Unlock()
		return domain.ErrSessionExpired
	}
	if last, ok := m.lastSeen[userID]; ok && now.Sub(last) > m.idle {
		m.expireLocked(userID, now)
		m.mu.Unlock()
		m.record(userID, "inactividad detectada en request")
		return domain.ErrSessionExpired
	}
	m.lastSeen[userID] = now
	m.mu.Unlock()
	return nil
}

// End cierra la sesión (logout): los tokens emitidos hasta ahora dejan de valer.
func (m *SessionMonitor) End(userID string) {
	m.mu.Lock()
	m.expireLocked(userID, m.now())
	m.mu.Unlock()
}

// Active cantidad de sesiones vigentes.
func (m *SessionMonitor) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.lastSeen)
}

// Revocations cantidad de usuarios con tokens revocados en memoria.
func (m *SessionMonitor) Revocations() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.revoked)
}

// Sweep vence las sesiones inactivas y descarta revocaciones viejas; devuelve cuántas sesiones venció.
func (m *SessionMonitor) Sweep() int {
	m.mu.Lock()
	now := m.now()
	for userID, cut := range m.revoked {
		if now.Sub(cut) > m.idle+m.tokenTTL {
			delete(m.revoked, userID)
		}
	}
	var expired []string
	for userID, last := range m.lastSeen {
		if now.Sub(last) > m.idle {
			m.expireLocked(userID, now)
			expired = append(expired, userID)
		}
	}
	m.mu.Unlock()

	for _, userID := range expired {
		m.record(userID, "inactividad detectada en barrido")
	}
	return len(expired)
}

// Start lanza el barrido periódico. Llamar Stop para detenerlo.
func (m *SessionMonitor) Start(ctx context.Context) {
	m.mu.Lock()
	if m.stop != nil {
		m.mu.Unlock()
		return
	}
	m.stop = make(chan struct{})
	m.done = make(chan struct{})
	stop, done := m.stop, m.done
	m.mu.Unlock()

	go func() {
		defer close(done)
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-stop:
				return
			case <-ticker.C:
				if n := m.Sweep(); n > 0 {
					m.log.Info().Int("expired", n).Msg("sesiones vencidas por inactividad")
				}
			}
		}
	}()
	m.log.Info().Dur("idle", m.idle).Dur("interval", m.interval).Msg("monitor de sesiones iniciado")
}

// Stop detiene el barrido y espera a que termine. Es idempotente.
func (m *SessionMonitor) Stop() {
	m.mu.Lock()
	stop, done := m.stop, m.done
	m.stop, m.done = nil, nil
	m.mu.Unlock()
	if stop == nil {
		return
	}
	close(stop)
	<-done
}

// expireLocked requiere m.mu. La marca se trunca al segundo porque iat del JWT
// tiene resolución de segundos: un login en el mismo segundo sigue siendo válido.
func (m *SessionMonitor) expireLocked(userID string, now time.Time) {
	delete(m.lastSeen, userID)
	m.revoked[userID] = now.Truncate(time.Second)
}

func (m *SessionMonitor) record(userID, detail string) {
	if m.events == nil {
		return
	}
	m.events.Record(Event{Type: EventSessionExpired, UserID: userID, Detail: detail})
}
