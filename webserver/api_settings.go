package webserver

import (
	"encoding/json"
	"io/ioutil"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"ecashclient/util"
)

var errNotifierUnavailable = errors.New("notification handler not running")

//
// Player address: the 20-byte identity mixed into every commit hash
// ------------------------------------------------------------------------------------

func (ws *WebServer) getAddress(w http.ResponseWriter, r *http.Request) {

	address, err := ws.storage.GetPlayerAddress()
	if err != nil {
		apiError(w, http.StatusInternalServerError, err)
		return
	}

	json.NewEncoder(w).Encode(map[string]string{"address": address})
}

func (ws *WebServer) setAddress(w http.ResponseWriter, r *http.Request) {

	log.Debug("API - setAddress")

	if r.Method == http.MethodOptions {
		return
	}

	var req map[string]string
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apiError(w, http.StatusBadRequest, err)
		return
	}

	// Validate before storing; a bad address here would poison every
	// later commit hash
	addressBytes, err := util.HexToAddress(req["address"])
	if err != nil {
		apiError(w, http.StatusBadRequest, err)
		return
	}

	address := util.EncodeHex(addressBytes)
	if err := ws.storage.SetPlayerAddress(address); err != nil {
		log.WithError(err).Error("API setAddress")
		apiError(w, http.StatusInternalServerError, err)
		return
	}

	log.WithField("Address", address).Info("Set player address")
	json.NewEncoder(w).Encode(map[string]string{"address": address})
}

//
// Notifier configuration: body is the notifier's own JSON config
// ------------------------------------------------------------------------------------

func (ws *WebServer) configureNotifier(w http.ResponseWriter, r *http.Request) {

	log.Debug("API - configureNotifier")

	if r.Method == http.MethodOptions {
		return
	}

	kind := strings.ToLower(mux.Vars(r)["kind"])

	body, err := ioutil.ReadAll(r.Body)
	if err != nil {
		apiError(w, http.StatusBadRequest, err)
		return
	}

	if ws.notifier == nil {
		apiError(w, http.StatusServiceUnavailable, errNotifierUnavailable)
		return
	}

	// Configure and save to DB
	if err := ws.notifier.Configure(kind, body, true); err != nil {
		log.WithError(err).WithField("Kind", kind).Error("API configureNotifier")
		apiError(w, http.StatusBadRequest, err)
		return
	}

	log.WithField("Kind", kind).Info("Configured notifier")
	json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}
