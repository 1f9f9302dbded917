package memory

import (
	"context"
	"slices"

	"github.com/magabrotheeeer/fashion-admin/internal/models"
)

// AdminByUsername returns the dashboard admin with username.
func (s *Store) AdminByUsername(ctx context.Context, username string) (models.AdminUser, error) {
	const op = "storage.memory.AdminByUsername"
	if err := checkCtx(ctx, op); err != nil {
		return models.AdminUser{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	i := slices.IndexFunc(s.admins, func(a models.AdminUser) bool { return a.Username == username })
	if i < 0 {
		return models.AdminUser{}, models.NotFound("Admin")
	}
	return s.admins[i], nil
}

// SaveAdmin inserts admin or replaces the admin with the same username.
// New admins get the next free id.
func (s *Store) SaveAdmin(ctx context.Context, admin models.AdminUser) (models.AdminUser, error) {
	const op = "storage.memory.SaveAdmin"
	if err := checkCtx(ctx, op); err != nil {
		return models.AdminUser{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.admins, func(a models.AdminUser) bool { return a.Username == admin.Username })
	if i >= 0 {
		admin.ID = s.admins[i].ID
		s.admins[i] = admin
		return admin, nil
	}
	admin.ID = len(s.admins) + 1
	s.admins = append(s.admins, admin)
	return admin, nil
}

// AddLoginAttempt records a login try.
func (s *Store) AddLoginAttempt(ctx context.Context, attempt models.LoginAttempt) error {
	const op = "storage.memory.AddLoginAttempt"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loginAttempts = append(s.loginAttempts, attempt)
	return nil
}

// LoginAttempts returns at most limit attempts, newest first. A limit below 1 returns all.
func (s *Store) LoginAttempts(ctx context.Context, limit int) ([]models.LoginAttempt, error) {
	const op = "storage.memory.LoginAttempts"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return newestFirst(s.loginAttempts, limit), nil
}

// AddSession stores a new session.
func (s *Store) AddSession(ctx context.Context, session models.Session) error {
	const op = "storage.memory.AddSession"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = append(s.sessions, session)
	return nil
}

// SessionByTokenID returns the session bound to the refresh token tokenID.
func (s *Store) SessionByTokenID(ctx context.Context, tokenID string) (models.Session, error) {
	const op = "storage.memory.SessionByTokenID"
	if err := checkCtx(ctx, op); err != nil {
		return models.Session{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	i := slices.IndexFunc(s.sessions, func(sess models.Session) bool { return sess.TokenID == tokenID })
	if i < 0 {
		return models.Session{}, models.NotFound("Session")
	}
	return s.sessions[i], nil
}

// UpdateSession replaces the session with the same id.
func (s *Store) UpdateSession(ctx context.Context, session models.Session) error {
	const op = "storage.memory.UpdateSession"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.sessions, func(sess models.Session) bool { return sess.ID == session.ID })
	if i < 0 {
		return models.NotFound("Session")
	}
	s.sessions[i] = session
	return nil
}

// SessionsByUsername returns the sessions of username, newest first.
func (s *Store) SessionsByUsername(ctx context.Context, username string) ([]models.Session, error) {
	const op = "storage.memory.SessionsByUsername"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Session{}
	for i := len(s.sessions) - 1; i >= 0; i-- {
		if s.sessions[i].Username == username {
			out = append(out, s.sessions[i])
		}
	}
	return out, nil
}

// AddNotification records a sent notification.
func (s *Store) AddNotification(ctx context.Context, n models.Notification) error {
	const op = "storage.memory.AddNotification"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = append(s.notifications, n)
	return nil
}

// Notifications returns at most limit notifications, newest first.
func (s *Store) Notifications(ctx context.Context, limit int) ([]models.Notification, error) {
	const op = "storage.memory.Notifications"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return newestFirst(s.notifications, limit), nil
}

// AddAuditEntry appends to the audit log.
func (s *Store) AddAuditEntry(ctx context.Context, e models.AuditEntry) error {
	const op = "storage.memory.AddAuditEntry"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.audit = append(s.audit, e)
	return nil
}

// AuditEntries returns at most limit audit entries, newest first.
func (s *Store) AuditEntries(ctx context.Context, limit int) ([]models.AuditEntry, error) {
	const op = "storage.memory.AuditEntries"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return newestFirst(s.audit, limit), nil
}

func newestFirst[T any](items []T, limit int) []T {
	out := slices.Clone(items)
	slices.Reverse(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	if out == nil {
		out = []T{}
	}
	return out
}
