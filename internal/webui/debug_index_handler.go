package webui

import (
	"net/http"

	"github.com/davecgh/go-spew/spew"
	"horaris.manresa.cat/internal/timetable"
)

type debugData struct {
	Title string
	Pre   string
}

func writeDebugData(w http.ResponseWriter, title string, data interface{}) {
	content := spew.Sdump(data)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	err := debugTemplate.Execute(w, debugData{
		Title: title,
		Pre:   content,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// DebugIndexHandler dumps the loaded document or the selection derived from
// the query string.
func (webUI *WebUI) DebugIndexHandler(w http.ResponseWriter, r *http.Request) {
	dataType := r.URL.Query().Get("dataType")
	snap := webUI.Manager.Snapshot()

	if snap.State != timetable.Ready {
		writeDebugData(w, "Schedule - "+snap.State.String(), map[string]interface{}{
			"state": snap.State.String(),
			"error": snap.Err,
		})
		return
	}

	var data interface{}
	var title string

	switch dataType {
	case "document":
		data = snap.Document
		title = "Schedule - Document"
	case "keys":
		data = snap.Controller.Keys()
		title = "Schedule - Selection Keys"
	case "bindings":
		data = snap.Controller.Bindings()
		title = "Schedule - Picker Bindings"
	case "state":
		data = snap.Controller.Apply(r.URL.Query())
		title = "Schedule - Selection State"
	default:
		data = map[string]string{
			"error": "Please use one of the following: document, keys, bindings, state.",
		}
		title = "Choose a data type"
	}

	writeDebugData(w, title, data)
}
