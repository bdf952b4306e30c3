package security_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Obrix-api/internal/application/security"
	"github.com/jhoicas/Obrix-api/internal/domain"
	"github.com/jhoicas/Obrix-api/pkg/logger"
)

func TestEventLog_AcotadoACien(t *testing.T) {
	l := security.NewEventLog(0, logger.Nop())
	for i := 0; i < 250; i++ {
		l.Record(security.Event{Type: security.EventLoginFailed, Detail: fmt.Sprintf("intento %d", i)})
	}
	assert.Equal(t, security.DefaultEventBuffer, l.Len())

	recent := l.Recent(0, "")
	require.Len(t, recent, 100)
	assert.Equal(t, "intento 249", recent[0].Detail, "el más reciente primero")
	assert.Equal(t, "intento 150", recent[99].Detail, "los más antiguos se descartan")
	assert.False(t, recent[0].At.IsZero())
}

func TestEventLog_FiltroYLimite(t *testing.T) {
	l := security.NewEventLog(10, logger.Nop())
	l.Record(security.Event{Type: security.EventForbidden, CompanyID: "a"})
	l.Record(security.Event{Type: security.EventForbidden, CompanyID: "b"})
	l.Record(security.Event{Type: security.EventInvalidToken, CompanyID: "a"})

	assert.Len(t, l.Recent(0, "a"), 2)
	got := l.Recent(1, "")
	require.Len(t, got, 1)
	assert.Equal(t, security.EventInvalidToken, got[0].Type)
}

func TestEventLog_Concurrente(t *testing.T) {
	l := security.NewEventLog(50, logger.Nop())
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				l.Record(security.Event{Type: security.EventForbidden})
				_ = l.Recent(5, "")
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, l.Len())
}

type clock struct{ t time.Time }

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestSessionMonitor_VenceTrasInactividad(t *testing.T) {
	c := &clock{t: time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)}
	events := security.NewEventLog(10, logger.Nop())
	m := security.NewSessionMonitor(30*time.Minute, time.Minute, events, logger.Nop()).WithClock(c.now)

	issued := c.t
	m.Begin("u1")
	require.NoError(t, m.Check("u1", issued))

	c.advance(29 * time.Minute)
	require.NoError(t, m.Check("u1", issued), "actividad dentro del límite renueva la sesión")

	c.advance(31 * time.Minute)
	assert.ErrorIs(t, m.Check("u1", issued), domain.ErrSessionExpired)
	assert.ErrorIs(t, m.Check("u1", issued), domain.ErrSessionExpired, "el token viejo queda revocado")
	assert.Equal(t, 1, events.Len())

	// Nuevo login: token emitido ahora
	m.Begin("u1")
	assert.NoError(t, m.Check("u1", c.t))
}

func TestSessionMonitor_BarridoYCierre(t *testing.T) {
	c := &clock{t: time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)}
	m := security.NewSessionMonitor(10*time.Minute, time.Minute, nil, logger.Nop()).WithClock(c.now)

	m.Begin("a")
	c.advance(5 * time.Minute)
	m.Begin("b")
	assert.Equal(t, 2, m.Active())

	c.advance(6 * time.Minute)
	assert.Equal(t, 1, m.Sweep())
	assert.Equal(t, 1, m.Active())

	issued := c.t.Add(-time.Minute)
	m.End("b")
	assert.ErrorIs(t, m.Check("b", issued), domain.ErrSessionExpired)
	assert.Equal(t, 0, m.Active())
}

func TestSessionMonitor_BarridoDescartaRevocacionesVencidas(t *testing.T) {
	c := &clock{t: time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)}
	m := security.NewSessionMonitor(30*time.Minute, time.Minute, nil, logger.Nop()).
		WithClock(c.now).
		WithTokenLifetime(time.Hour)

	issued := c.t.Add(-time.Minute)
	for i := 0; i < 100; i++ {
		m.End(fmt.Sprintf("u%d", i))
	}
	assert.Equal(t, 100, m.Revocations())

	c.advance(80 * time.Minute)
	m.Sweep()
	assert.Equal(t, 100, m.Revocations(), "los tokens revocados aún podrían estar vigentes")
	assert.ErrorIs(t, m.Check("u1", issued), domain.ErrSessionExpired)

	c.advance(11 * time.Minute)
	m.Sweep()
	assert.Equal(t, 0, m.Revocations())
}

func TestSessionMonitor_StartStop(t *testing.T) {
	m := security.NewSessionMonitor(time.Millisecond, 5*time.Millisecond, nil, logger.Nop())
	m.Begin("u")
	m.Start(context.Background())
	m.Start(context.Background())

	assert.Eventually(t, func() bool { return m.Active() == 0 }, time.Second, 5*time.Millisecond)
	m.Stop()
	m.Stop()
}
