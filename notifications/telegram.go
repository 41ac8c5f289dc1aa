package notifications

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"ecashclient/storage"
)

type NotifyTelegram struct {
	ChatIDs []int            `json:"chatids"`
	APIKey  string           `json:"apikey"`
	Enabled bool             `json:"enabled"`
	Storage *storage.Storage `json:"-"`
}

// NewTelegram creates a telegram notifier from a JSON config byte-stream.
func (h *NotificationHandler) NewTelegram(config []byte, saveConfig bool) (*NotifyTelegram, error) {

	nt := &NotifyTelegram{
		Enabled: true,
		Storage: h.Storage,
	}

	if config != nil {
		if err := json.Unmarshal(config, nt); err != nil {
			return nil, errors.Wrap(err, "Unable to unmarshal telegram config")
		}
	}

	if saveConfig {
		if err := nt.SaveConfig(); err != nil {
			return nil, err
		}
	}

	return nt, nil
}

func (n *NotifyTelegram) IsEnabled() bool {
	return n.Enabled
}

func (n *NotifyTelegram) Send(msg string) {
	// curl -G \
	//  --data-urlencode "chat_id=111112233" \
	//  --data-urlencode "text=$message" \
	//  https://api.telegram.org/bot${TOKEN}/sendMessage

	req, err := http.NewRequest("GET", fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", n.APIKey), nil)
	if err != nil {
		log.WithError(err).Error("Unable to make telegram request")
		return
	}

	req.Header.Add("Content-type", "application/x-www-form-urlencoded")

	q := req.URL.Query()
	q.Add("text", msg)

	// HTTP client 10s timeout
	client := &http.Client{
		Timeout: time.Second * 10,
	}

	for _, id := range n.ChatIDs {
		sendMessage(client, req, q, id)
	}

	log.WithField("MSG", msg).Info("Sent Telegram Message(s)")
}

func sendMessage(client *http.Client, req *http.Request, queryParams url.Values, chatID int) {

	queryParams.Set("chat_id", strconv.Itoa(chatID))
	req.URL.RawQuery = queryParams.Encode()

	resp, err := client.Do(req)
	if err != nil {
		log.WithField("ChatId", chatID).WithError(err).Error("Unable to send telegram message")
		return
	}
	defer resp.Body.Close()

	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		log.WithField("ChatId", chatID).WithError(err).Error("Unable to read telegram message response")
		return
	}

	log.WithField("Resp", string(body)).Debug("Telegram Reply")
}

func (n *NotifyTelegram) SaveConfig() error {

	config, err := json.Marshal(n)
	if err != nil {
		return errors.Wrap(err, "Unable to marshal telegram config")
	}

	if err := n.Storage.SaveNotifiersConfig(TELEGRAM, config); err != nil {
		return errors.Wrap(err, "Unable to save telegram config")
	}

	return nil
}
