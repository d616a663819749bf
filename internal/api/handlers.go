package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sort"

	"rsmg/internal/game"
)

// maxBodyBytes bounds request bodies; every payload here is tiny.
const maxBodyBytes = 4 << 10

// Handler methods for routerHandlers
// These are used by both the standalone router (for testing) and the full Server.

func (h *routerHandlers) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{
		"status": "ok",
		"runId":  h.engine.RunID(),
	})
}

func (h *routerHandlers) handleGetState(w http.ResponseWriter, r *http.Request) {
	snap := h.engine.GetSnapshot()
	if snap == nil {
		writeError(w, "no snapshot yet", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, snap)
}

func (h *routerHandlers) handleGetLevel(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.engine.LevelInfo())
}

type levelEntry struct {
	Number   int    `json:"number"`
	Name     string `json:"name"`
	Unlocked bool   `json:"unlocked"`
}

func (h *routerHandlers) handleGetLevels(w http.ResponseWriter, r *http.Request) {
	unlocked := h.engine.UnlockedLevels()
	levels := make([]levelEntry, 0, len(h.levelNames))
	for i, name := range h.levelNames {
		levels = append(levels, levelEntry{
			Number:   i + 1,
			Name:     name,
			Unlocked: i+1 <= unlocked,
		})
	}
	writeJSON(w, levels)
}

func (h *routerHandlers) handleGetProgress(w http.ResponseWriter, r *http.Request) {
	info := h.engine.LevelInfo()
	writeJSON(w, map[string]interface{}{
		"unlockedLevels": h.engine.UnlockedLevels(),
		"levelCount":     info.Count,
		"currentLevel":   info.Number,
	})
}

func (h *routerHandlers) handleGetWeapons(w http.ResponseWriter, r *http.Request) {
	specs := make([]game.WeaponSpec, 0, len(game.WeaponSpecs))
	for _, s := range game.WeaponSpecs {
		specs = append(specs, s)
	}
	sort.Slice(specs, func(i, j int) bool { return specs[i].ID < specs[j].ID })
	writeJSON(w, specs)
}

type inputRequest struct {
	Intents []string `json:"intents"`
}

func (h *routerHandlers) handleInput(w http.ResponseWriter, r *http.Request) {
	var req inputRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if len(req.Intents) == 0 {
		writeError(w, "intents required", http.StatusBadRequest)
		return
	}

	intents, err := game.ParseIntents(req.Intents)
	if err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !h.engine.QueueIntents(intents) {
		writeError(w, "input queue full", http.StatusServiceUnavailable)
		return
	}

	writeJSONStatus(w, http.StatusAccepted, map[string]int{"queued": len(intents)})
}

type loadLevelRequest struct {
	Level int `json:"level"`
}

func (h *routerHandlers) handleLoadLevel(w http.ResponseWriter, r *http.Request) {
	var req loadLevelRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Level < 1 {
		writeError(w, "level must be 1 or higher", http.StatusBadRequest)
		return
	}

	if err := h.engine.LoadLevel(req.Level); err != nil {
		writeLevelError(w, err)
		return
	}
	writeJSON(w, h.engine.LevelInfo())
}

func (h *routerHandlers) handleRestartLevel(w http.ResponseWriter, r *http.Request) {
	if err := h.engine.RestartLevel(); err != nil {
		writeLevelError(w, err)
		return
	}
	writeJSON(w, h.engine.LevelInfo())
}

// Helper functions (package-level for reuse)

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, "invalid JSON body", http.StatusBadRequest)
		return false
	}
	return true
}

func writeLevelError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, game.ErrLevelLocked):
		writeError(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, game.ErrNoSuchLevel):
		writeError(w, err.Error(), http.StatusNotFound)
	default:
		log.Printf("❌ Level change failed: %v", err)
		writeError(w, "level change failed", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func writeJSONStatus(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
