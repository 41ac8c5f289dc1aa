package notifications

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"ecashclient/storage"
)

const (
	TELEGRAM = "telegram"
	EMAIL    = "email"
)

type Notifier interface {
	Send(string)
	IsEnabled() bool
}

// NotificationHandler fans solve/commit events out to whichever notifiers
// the user configured through the web UI.
type NotificationHandler struct {
	Notifiers map[string]Notifier
	Storage   *storage.Storage
}

func NewHandler(db *storage.Storage) (*NotificationHandler, error) {

	h := &NotificationHandler{
		Notifiers: make(map[string]Notifier, 2),
		Storage:   db,
	}

	if err := h.loadNotifiers(); err != nil {
		return nil, errors.Wrap(err, "Failed to load notifiers")
	}

	return h, nil
}

func (h *NotificationHandler) loadNotifiers() error {

	for _, kind := range []string{TELEGRAM, EMAIL} {

		config, err := h.Storage.GetNotifiersConfig(kind)
		if err != nil {
			return errors.Wrapf(err, "Unable to load %s config", kind)
		}

		// Never configured; nothing to set up
		if config == nil {
			continue
		}

		// Don't save what we just loaded
		if err := h.Configure(kind, config, false); err != nil {
			return errors.Wrapf(err, "Unable to init %s", kind)
		}
	}

	return nil
}

// Configure creates a notifier from a JSON config blob, provided by either
// DB lookup on startup or the web UI. If saveConfig is true the config is
// written back to the DB; the UI path wants this, the startup path does not.
func (h *NotificationHandler) Configure(kind string, config []byte, saveConfig bool) error {

	switch kind {
	case TELEGRAM:
		nt, err := h.NewTelegram(config, saveConfig)
		if err != nil {
			return err
		}
		h.Notifiers[TELEGRAM] = nt

	case EMAIL:
		ne, err := h.NewEmail(config, saveConfig)
		if err != nil {
			return err
		}
		h.Notifiers[EMAIL] = ne

	default:
		return errors.Errorf("Unknown notification type: %s", kind)
	}

	return nil
}

// SendAll delivers a message through every enabled notifier. Delivery is
// best-effort and off the caller's path.
func (h *NotificationHandler) SendAll(msg string) {

	for kind, n := range h.Notifiers {
		if !n.IsEnabled() {
			log.WithField("Notifier", kind).Debug("Notifier disabled; skipping")
			continue
		}
		go n.Send(msg)
	}
}
