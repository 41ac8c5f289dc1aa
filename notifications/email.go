package notifications

import (
	"encoding/json"
	"fmt"
	"net/smtp"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"ecashclient/storage"
)

type NotifyEmail struct {
	Username string           `json:"username"`
	Password string           `json:"password"`
	SMTPHost string           `json:"smtphost"`
	SMTPPort int              `json:"smtpport"`
	To       string           `json:"to"`
	Enabled  bool             `json:"enabled"`
	Storage  *storage.Storage `json:"-"`
}

// NewEmail creates an email notifier from a JSON config byte-stream.
func (h *NotificationHandler) NewEmail(config []byte, saveConfig bool) (*NotifyEmail, error) {

	ne := &NotifyEmail{
		Enabled: true,
		Storage: h.Storage,
	}

	if config != nil {
		if err := json.Unmarshal(config, ne); err != nil {
			return nil, errors.Wrap(err, "Unable to unmarshal email config")
		}
	}

	if saveConfig {
		if err := ne.SaveConfig(); err != nil {
			return nil, err
		}
	}

	return ne, nil
}

func (n *NotifyEmail) IsEnabled() bool {
	return n.Enabled
}

func (n *NotifyEmail) Send(msg string) {

	addr := fmt.Sprintf("%s:%d", n.SMTPHost, n.SMTPPort)
	auth := smtp.PlainAuth("", n.Username, n.Password, n.SMTPHost)

	body := fmt.Sprintf("To: %s\r\nSubject: eCash Client\r\n\r\n%s\r\n", n.To, msg)

	if err := smtp.SendMail(addr, auth, n.Username, []string{n.To}, []byte(body)); err != nil {
		log.WithError(err).WithField("To", n.To).Error("Unable to send email notification")
		return
	}

	log.WithField("To", n.To).Info("Sent email notification")
}

func (n *NotifyEmail) SaveConfig() error {

	config, err := json.Marshal(n)
	if err != nil {
		return errors.Wrap(err, "Unable to marshal email config")
	}

	if err := n.Storage.SaveNotifiersConfig(EMAIL, config); err != nil {
		return errors.Wrap(err, "Unable to save email config")
	}

	return nil
}
