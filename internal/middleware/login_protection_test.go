// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestLoginProtection(t *testing.T, maxAttempts int, lockout, window time.Duration) (*LoginProtection, *fakeClock) {
	t.Helper()
	lp := NewLoginProtection(LoginProtectionConfig{
		IPRateLimit:       10,
		IPBurst:           100,
		MaxFailedAttempts: maxAttempts,
		LockoutDuration:   lockout,
		AttemptWindow:     window,
	})
	t.Cleanup(lp.Stop)
	clock := &fakeClock{t: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	lp.now = clock.now
	return lp, clock
}

func TestNewLoginProtectionDefaultValues(t *testing.T) {
	lp := NewLoginProtection(LoginProtectionConfig{})
	defer lp.Stop()

	if lp.maxFailedAttempts != 5 {
		t.Errorf("maxFailedAttempts = %d, want 5", lp.maxFailedAttempts)
	}
	if lp.lockoutDuration != 15*time.Minute {
		t.Errorf("lockoutDuration = %v, want 15m", lp.lockoutDuration)
	}
	if lp.attemptWindow != 15*time.Minute {
		t.Errorf("attemptWindow = %v, want 15m", lp.attemptWindow)
	}
}

func TestLoginProtection_LocksAfterMaxAttempts(t *testing.T) {
	lp, clock := newTestLoginProtection(t, 3, time.Minute, 10*time.Minute)
	email := "head@school.test"

	for i := 1; i < 3; i++ {
		if locked, _ := lp.RecordFailedAttempt(email); locked {
			t.Fatalf("attempt %d locked the account early", i)
		}
	}
	locked, d := lp.RecordFailedAttempt(email)
	if !locked || d != time.Minute {
		t.Fatalf("third attempt = (%v, %v), want (true, 1m)", locked, d)
	}

	if locked, remaining := lp.IsAccountLocked("HEAD@school.test "); !locked || remaining != time.Minute {
		t.Errorf("IsAccountLocked = (%v, %v), want (true, 1m)", locked, remaining)
	}

	clock.advance(time.Minute + time.Second)
	if locked, _ := lp.IsAccountLocked(email); locked {
		t.Error("account still locked after lockout expired")
	}
}

func TestLoginProtection_ExponentialBackoff(t *testing.T) {
	lp, clock := newTestLoginProtection(t, 2, time.Minute, time.Hour)
	email := "head@school.test"

	lp.RecordFailedAttempt(email)
	_, first := lp.RecordFailedAttempt(email)
	clock.advance(first)

	lp.RecordFailedAttempt(email)
	_, second := lp.RecordFailedAttempt(email)

	if second != 2*first {
		t.Errorf("second lockout = %v, want %v", second, 2*first)
	}
}

func TestLoginProtection_BackoffCapped(t *testing.T) {
	lp, _ := newTestLoginProtection(t, 1, 10*time.Hour, time.Hour)
	email := "head@school.test"

	lp.RecordFailedAttempt(email)
	lp.RecordFailedAttempt(email)
	_, d := lp.RecordFailedAttempt(email)
	if d != maxLockout {
		t.Errorf("lockout = %v, want %v", d, maxLockout)
	}
}

func TestLoginProtection_RemainingAttempts(t *testing.T) {
	lp, clock := newTestLoginProtection(t, 5, time.Minute, 10*time.Minute)
	email := "head@school.test"

	if got := lp.RemainingAttempts(email); got != 5 {
		t.Errorf("RemainingAttempts = %d, want 5", got)
	}
	lp.RecordFailedAttempt(email)
	lp.RecordFailedAttempt(email)
	if got := lp.RemainingAttempts(email); got != 3 {
		t.Errorf("RemainingAttempts = %d, want 3", got)
	}

	clock.advance(11 * time.Minute)
	if got := lp.RemainingAttempts(email); got != 5 {
		t.Errorf("RemainingAttempts after window = %d, want 5", got)
	}
}

func TestLoginProtection_SuccessfulLoginClears(t *testing.T) {
	lp, _ := newTestLoginProtection(t, 3, time.Minute, time.Minute)
	email := "head@school.test"

	lp.RecordFailedAttempt(email)
	lp.RecordFailedAttempt(email)
	lp.RecordSuccessfulLogin(email)

	if got := lp.RemainingAttempts(email); got != 3 {
		t.Errorf("RemainingAttempts = %d, want 3", got)
	}
}

func TestLoginProtection_CleanupStaleEntries(t *testing.T) {
	lp, clock := newTestLoginProtection(t, 5, time.Minute, time.Minute)
	lp.RecordFailedAttempt("a@school.test")

	clock.advance(2 * time.Minute)
	lp.cleanupStaleEntries()

	lp.attemptsMu.RLock()
	n := len(lp.failedAttempts)
	lp.attemptsMu.RUnlock()
	if n != 0 {
		t.Errorf("failedAttempts has %d entries, want 0", n)
	}
}

func TestLoginProtection_Middleware(t *testing.T) {
	lp := NewLoginProtection(LoginProtectionConfig{IPRateLimit: 0.001, IPBurst: 1})
	defer lp.Stop()
	handler := lp.Middleware(okHandler())

	post := func() int {
		req := httptest.NewRequest(http.MethodPost, "/admin/login", nil)
		req.RemoteAddr = "203.0.113.7:5000"
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		return rr.Code
	}

	if code := post(); code != http.StatusOK {
		t.Errorf("first POST = %d, want 200", code)
	}
	if code := post(); code != http.StatusTooManyRequests {
		t.Errorf("second POST = %d, want 429", code)
	}

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/login", nil)
	req.RemoteAddr = "203.0.113.7:5000"
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Errorf("GET = %d, want 200", rr.Code)
	}
}
