package transport

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/BVTRay/vioflow/internal/state"
)

func TestDecodeEvent(t *testing.T) {
	tests := []struct {
		name    string
		env     EventEnvelope
		want    state.Event
		wantErr bool
	}{
		{
			name: "select project",
			env:  EventEnvelope{Type: "select_project", Payload: json.RawMessage(`{"id":"p1"}`)},
			want: state.SelectProject{ID: "p1"},
		},
		{
			name: "select group",
			env:  EventEnvelope{Type: "select_group", Payload: json.RawMessage(`{"name":"commercials"}`)},
			want: state.SelectGroup{Name: "commercials"},
		},
		{
			name: "explorer back without payload",
			env:  EventEnvelope{Type: "explorer_back"},
			want: state.ExplorerBack{},
		},
		{
			name: "toggle retrieval panel",
			env:  EventEnvelope{Type: "toggle_retrieval_panel"},
			want: state.ToggleRetrievalPanel{},
		},
		{
			name: "open upload",
			env:  EventEnvelope{Type: "open_upload", Payload: json.RawMessage(`{"project_id":"p1","quick":true}`)},
			want: state.OpenUpload{ProjectID: "p1", Quick: true},
		},
		{
			name: "show version history",
			env:  EventEnvelope{Type: "show_version_history", Payload: json.RawMessage(`{"base_name":"teaser.mp4","project_id":"p1","mode":"grid"}`)},
			want: state.ShowVersionHistory{BaseName: "teaser.mp4", ProjectID: "p1", Mode: state.DisplayGrid},
		},
		{
			name: "hide version history",
			env:  EventEnvelope{Type: "hide_version_history"},
			want: state.HideVersionHistory{},
		},
		{
			name: "multi select tag",
			env:  EventEnvelope{Type: "toggle_group_tag_multi", Payload: json.RawMessage(`{"name":"social"}`)},
			want: state.ToggleGroupTagMultiSelect{Name: "social"},
		},
		{
			name:    "unknown type",
			env:     EventEnvelope{Type: "reticulate_splines"},
			wantErr: true,
		},
		{
			name:    "malformed payload",
			env:     EventEnvelope{Type: "select_project", Payload: json.RawMessage(`{`)},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeEvent(tt.env)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}
