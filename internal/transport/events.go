package transport

import (
	"encoding/json"
	"fmt"

	"github.com/BVTRay/vioflow/internal/state"
)

// EventEnvelope is the wire form of a UI event posted by a client.
type EventEnvelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// DecodeEvent translates an envelope into a store event. Only navigation and
// workbench events are accepted here; domain mutations go through the REST
// routes so they hit persistence.
func DecodeEvent(env EventEnvelope) (state.Event, error) {
	payload := env.Payload
	if len(payload) == 0 {
		payload = json.RawMessage("{}")
	}

	switch env.Type {
	case "select_project":
		var p struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(payload, &p); err != nil {
			return nil, fmt.Errorf("decode %s: %w", env.Type, err)
		}
		return state.SelectProject{ID: p.ID}, nil

	case "select_video":
		var p struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(payload, &p); err != nil {
			return nil, fmt.Errorf("decode %s: %w", env.Type, err)
		}
		return state.SelectVideo{ID: p.ID}, nil

	case "select_group":
		var p struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(payload, &p); err != nil {
			return nil, fmt.Errorf("decode %s: %w", env.Type, err)
		}
		return state.SelectGroup{Name: p.Name}, nil

	case "explorer_back":
		return state.ExplorerBack{}, nil

	case "toggle_retrieval_panel":
		return state.ToggleRetrievalPanel{}, nil

	case "set_group_tag":
		var p struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(payload, &p); err != nil {
			return nil, fmt.Errorf("decode %s: %w", env.Type, err)
		}
		return state.SetGroupTag{Name: p.Name}, nil

	case "toggle_group_tag_multi":
		var p struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(payload, &p); err != nil {
			return nil, fmt.Errorf("decode %s: %w", env.Type, err)
		}
		return state.ToggleGroupTagMultiSelect{Name: p.Name}, nil

	case "open_upload":
		var p struct {
			ProjectID  string `json:"project_id"`
			VideoID    string `json:"video_id"`
			Provenance string `json:"provenance"`
			Quick      bool   `json:"quick"`
		}
		if err := json.Unmarshal(payload, &p); err != nil {
			return nil, fmt.Errorf("decode %s: %w", env.Type, err)
		}
		return state.OpenUpload{
			ProjectID:  p.ProjectID,
			VideoID:    p.VideoID,
			Provenance: p.Provenance,
			Quick:      p.Quick,
		}, nil

	case "open_new_project":
		var p struct {
			PendingGroup string `json:"pending_group"`
		}
		if err := json.Unmarshal(payload, &p); err != nil {
			return nil, fmt.Errorf("decode %s: %w", env.Type, err)
		}
		return state.OpenNewProject{PendingGroup: p.PendingGroup}, nil

	case "open_project_settings":
		var p struct {
			ProjectID string `json:"project_id"`
		}
		if err := json.Unmarshal(payload, &p); err != nil {
			return nil, fmt.Errorf("decode %s: %w", env.Type, err)
		}
		return state.OpenProjectSettings{ProjectID: p.ProjectID}, nil

	case "show_version_history":
		var p struct {
			BaseName  string `json:"base_name"`
			ProjectID string `json:"project_id"`
			Mode      string `json:"mode"`
		}
		if err := json.Unmarshal(payload, &p); err != nil {
			return nil, fmt.Errorf("decode %s: %w", env.Type, err)
		}
		return state.ShowVersionHistory{
			BaseName:  p.BaseName,
			ProjectID: p.ProjectID,
			Mode:      state.DisplayMode(p.Mode),
		}, nil

	case "hide_version_history":
		return state.HideVersionHistory{}, nil

	case "close_workbench":
		return state.CloseWorkbench{}, nil

	case "mark_notification_read":
		var p struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(payload, &p); err != nil {
			return nil, fmt.Errorf("decode %s: %w", env.Type, err)
		}
		return state.MarkNotificationRead{ID: p.ID}, nil
	}

	return nil, fmt.Errorf("unknown event type %q", env.Type)
}
