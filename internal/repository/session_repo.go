package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"starpro_store/internal/kv"
	"starpro_store/internal/model"
)

// SessionHolder keeps the single current session under its own key,
// independent of the record collections. A new session overwrites the old one.
type SessionHolder struct {
	kv     kv.Store
	logger *slog.Logger
}

func NewSessionHolder(store kv.Store, logger *slog.Logger) *SessionHolder {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionHolder{kv: store, logger: logger}
}

// Current returns the current session, or nil when none is stored or the
// stored value does not decode.
func (h *SessionHolder) Current(ctx context.Context) (*model.Session, error) {
	raw, ok, err := h.kv.Get(ctx, KeySession)
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	if !ok {
		return nil, nil
	}
	var sess model.Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil || sess.Username == "" {
		h.logger.Warn("ignoring unreadable session record", "error", err)
		return nil, nil
	}
	return &sess, nil
}

func (h *SessionHolder) Set(ctx context.Context, sess model.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := h.kv.Set(ctx, KeySession, string(data)); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	return nil
}

func (h *SessionHolder) Clear(ctx context.Context) error {
	if err := h.kv.Remove(ctx, KeySession); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
