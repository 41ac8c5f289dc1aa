package webserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"ecashclient/protocol"
	"ecashclient/storage"
	"ecashclient/util"
)

type ApiError struct {
	Error string `json:"error"`
}

func apiError(w http.ResponseWriter, status int, err error) {
	e, _ := json.Marshal(ApiError{err.Error()})
	http.Error(w, string(e), status)
}

func (ws *WebServer) health(w http.ResponseWriter, r *http.Request) {
	json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

//
// Puzzle import and listing
// ------------------------------------------------------------------------------------

type importPuzzleRequest struct {
	PuzzleID uint64 `json:"puzzle_id"`
	protocol.PuzzleBlob
}

func (ws *WebServer) importPuzzle(w http.ResponseWriter, r *http.Request) {

	log.Debug("API - importPuzzle")

	// CORS preflight
	if r.Method == http.MethodOptions {
		return
	}

	var req importPuzzleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apiError(w, http.StatusBadRequest, err)
		return
	}

	// Reject malformed blobs at the door; a bad import would otherwise
	// surface much later as a confusing decode error on first guess
	if err := req.PuzzleBlob.Validate(); err != nil {
		apiError(w, http.StatusBadRequest, err)
		return
	}

	if err := ws.storage.SavePuzzle(req.PuzzleID, req.PuzzleBlob); err != nil {
		log.WithError(err).Error("API importPuzzle")
		apiError(w, http.StatusInternalServerError, err)
		return
	}

	log.WithField("PuzzleId", req.PuzzleID).Info("Imported puzzle")
	json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

func (ws *WebServer) listPuzzles(w http.ResponseWriter, r *http.Request) {

	puzzles, err := ws.storage.GetPuzzles()
	if err != nil {
		log.WithError(err).Error("API listPuzzles")
		apiError(w, http.StatusInternalServerError, err)
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{"puzzles": puzzles})
}

//
// Guess testing: run the local decryption oracle against a stored puzzle
// ------------------------------------------------------------------------------------

type guessRequest struct {
	PuzzleID uint64 `json:"puzzle_id"`
	Guess    string `json:"guess"`
}

func (ws *WebServer) tryGuess(w http.ResponseWriter, r *http.Request) {

	log.Debug("API - tryGuess")

	if r.Method == http.MethodOptions {
		return
	}

	var req guessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apiError(w, http.StatusBadRequest, err)
		return
	}

	blob, err := ws.storage.GetPuzzle(req.PuzzleID)
	if err != nil {
		apiError(w, http.StatusInternalServerError, err)
		return
	}
	if blob == nil {
		apiError(w, http.StatusNotFound, fmt.Errorf("no puzzle with id %d", req.PuzzleID))
		return
	}

	// The derivation inside costs a few hundred ms; that is the protocol's
	// anti-brute-force control, not something to optimize away here
	result, err := protocol.TryDecrypt(req.PuzzleID, req.Guess, *blob)
	if err != nil {
		apiError(w, http.StatusBadRequest, err)
		return
	}

	if result.Success {
		log.WithFields(log.Fields{
			"PuzzleId": req.PuzzleID, "Answer": result.Normalized,
		}).Info("Puzzle solved")

		if ws.notifier != nil {
			ws.notifier.SendAll(fmt.Sprintf("Puzzle %d solved! Answer: %q", req.PuzzleID, result.Normalized))
		}
	}

	json.NewEncoder(w).Encode(result)
}

//
// Commitments: generate a secret, bind the answer, remember everything
// needed for the later on-chain reveal
// ------------------------------------------------------------------------------------

type commitRequest struct {
	PuzzleID uint64 `json:"puzzle_id"`
	Answer   string `json:"answer"`
	Salt     string `json:"salt"`
}

func (ws *WebServer) createCommitment(w http.ResponseWriter, r *http.Request) {

	log.Debug("API - createCommitment")

	if r.Method == http.MethodOptions {
		return
	}

	var req commitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apiError(w, http.StatusBadRequest, err)
		return
	}

	// One commitment per puzzle; overwriting would discard a secret that
	// may already be committed on-chain
	existing, err := ws.storage.GetCommitment(req.PuzzleID)
	if err != nil {
		apiError(w, http.StatusInternalServerError, err)
		return
	}
	if existing != nil {
		apiError(w, http.StatusConflict, fmt.Errorf("commitment for puzzle %d already exists", req.PuzzleID))
		return
	}

	addressHex, err := ws.storage.GetPlayerAddress()
	if err != nil {
		apiError(w, http.StatusInternalServerError, err)
		return
	}
	if addressHex == "" {
		apiError(w, http.StatusBadRequest, fmt.Errorf("no player address configured"))
		return
	}

	address, err := util.HexToAddress(addressHex)
	if err != nil {
		apiError(w, http.StatusInternalServerError, err)
		return
	}

	salt, err := util.HexToBytes32(req.Salt)
	if err != nil {
		apiError(w, http.StatusBadRequest, err)
		return
	}

	secret, err := protocol.GenerateSecret()
	if err != nil {
		// Entropy failure; nothing sane to do but refuse
		log.WithError(err).Error("API createCommitment")
		apiError(w, http.StatusInternalServerError, err)
		return
	}

	normalized := protocol.Normalize(req.Answer)

	commitHash, err := protocol.ComputeCommitHash(normalized, salt, secret, address)
	if err != nil {
		apiError(w, http.StatusBadRequest, err)
		return
	}

	commitment := storage.Commitment{
		PuzzleID:   req.PuzzleID,
		Answer:     normalized,
		Salt:       util.EncodeHex(salt),
		Secret:     util.EncodeHex(secret),
		Address:    addressHex,
		CommitHash: commitHash.Hex(),
		CreatedAt:  time.Now().UTC(),
	}

	if err := ws.storage.SaveCommitment(commitment); err != nil {
		log.WithError(err).Error("API createCommitment")
		apiError(w, http.StatusInternalServerError, err)
		return
	}

	log.WithFields(log.Fields{
		"PuzzleId": req.PuzzleID, "CommitHash": commitment.CommitHash,
	}).Info("Created commitment")

	if ws.notifier != nil {
		ws.notifier.SendAll(fmt.Sprintf("Commitment created for puzzle %d: %s", req.PuzzleID, commitment.CommitHash))
	}

	json.NewEncoder(w).Encode(commitment)
}

func (ws *WebServer) listCommitments(w http.ResponseWriter, r *http.Request) {

	commitments, err := ws.storage.GetCommitments()
	if err != nil {
		log.WithError(err).Error("API listCommitments")
		apiError(w, http.StatusInternalServerError, err)
		return
	}

	json.NewEncoder(w).Encode(map[string][]storage.Commitment{"commitments": commitments})
}

type revealRequest struct {
	Tx string `json:"tx"`
}

func (ws *WebServer) recordReveal(w http.ResponseWriter, r *http.Request) {

	log.Debug("API - recordReveal")

	if r.Method == http.MethodOptions {
		return
	}

	puzzleID, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		apiError(w, http.StatusBadRequest, err)
		return
	}

	var req revealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apiError(w, http.StatusBadRequest, err)
		return
	}

	if err := ws.storage.SetRevealTx(puzzleID, req.Tx); err != nil {
		apiError(w, http.StatusNotFound, err)
		return
	}

	log.WithFields(log.Fields{
		"PuzzleId": puzzleID, "Tx": req.Tx,
	}).Info("Recorded reveal")

	json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}
