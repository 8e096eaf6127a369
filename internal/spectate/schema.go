package spectate

import (
	"encoding/json"
	"net/http"

	"github.com/invopop/jsonschema"

	"github.com/tomz197/orbitdefense/internal/game"
)

// Schema describes the frames sent to watchers.
func Schema() *jsonschema.Schema {
	r := jsonschema.Reflector{
		AllowAdditionalProperties: true,
		DoNotReference:            true,
	}
	s := r.Reflect(new(game.Snapshot))
	s.Title = "Orbit Defense snapshot"
	s.Description = "One frame of the spectator stream."
	return s
}

// ServeSchema writes Schema as JSON.
func (h *Hub) ServeSchema(w http.ResponseWriter, _ *http.Request) {
	data, err := json.MarshalIndent(Schema(), "", "  ")
	if err != nil {
		h.log.WithError(err).Error("marshal schema")
		http.Error(w, "schema unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/schema+json")
	_, _ = w.Write(append(data, '\n'))
}
