package service

import (
	"strings"
	"sync"
	"time"
)

// LoginRateLimiter limita los intentos fallidos de login por clave
// (email normalizado + IP del cliente). Un login exitoso limpia el contador.
type LoginRateLimiter interface {
	Allow(key string) bool
	RecordFailure(key string)
	Reset(key string)
}

// LoginAttemptKey arma la clave del limiter; vacía si falta el email.
func LoginAttemptKey(clientIP, email string) string {
	email = normalizeEmail(email)
	if email == "" {
		return ""
	}
	return email + "|" + strings.TrimSpace(clientIP)
}

type memoryLoginRateLimiter struct {
	mu        sync.Mutex
	window    time.Duration
	max       int
	failures  map[string][]time.Time
	lastSweep time.Time
	now       func() time.Time
}

// NewLoginRateLimiter crea un limiter en memoria con ventana deslizante.
func NewLoginRateLimiter(window time.Duration, max int) LoginRateLimiter {
	if max <= 0 {
		max = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return &memoryLoginRateLimiter{
		window:   window,
		max:      max,
		failures: make(map[string][]time.Time),
		now:      time.Now,
	}
}

func (l *memoryLoginRateLimiter) Allow(key string) bool {
	key = normalizeLimiterKey(key)
	if key == "" {
		return false
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now().UTC()
	l.sweep(now)
	return len(l.recent(key, now)) < l.max
}

func (l *memoryLoginRateLimiter) RecordFailure(key string) {
	key = normalizeLimiterKey(key)
	if key == "" {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now().UTC()
	l.failures[key] = append(l.recent(key, now), now)
}

func (l *memoryLoginRateLimiter) Reset(key string) {
	key = normalizeLimiterKey(key)
	l.mu.Lock()
	delete(l.failures, key)
	l.mu.Unlock()
}

// recent descarta los fallos fuera de la ventana y borra la clave si no queda ninguno.
func (l *memoryLoginRateLimiter) recent(key string, now time.Time) []time.Time {
	cutoff := now.Add(-l.window)
	entries := l.failures[key]
	kept := entries[:0]
	for _, ts := range entries {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	if len(kept) == 0 {
		delete(l.failures, key)
		return nil
	}
	l.failures[key] = kept
	return kept
}

// sweep recorre todas las claves como mucho una vez por ventana.
func (l *memoryLoginRateLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.window {
		return
	}
	l.lastSweep = now
	for key := range l.failures {
		l.recent(key, now)
	}
}

func normalizeLimiterKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}
