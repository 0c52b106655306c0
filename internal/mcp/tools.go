package mcp

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/BVTRay/vioflow/internal/domain/activity"
	"github.com/BVTRay/vioflow/internal/domain/delivery"
	"github.com/BVTRay/vioflow/internal/domain/project"
	"github.com/BVTRay/vioflow/internal/domain/video"
)

type emptyInput struct{}

type listProjectsOutput struct {
	Projects []project.Summary `json:"projects"`
}

type projectInput struct {
	ProjectID string `json:"project_id" jsonschema:"the project identifier"`
}

type readinessOutput struct {
	Ready              bool     `json:"ready"`
	MissingFlags       []string `json:"missing_flags,omitempty"`
	MainDeliveryCount  int      `json:"main_delivery_count"`
	UntaggedDeliveries []string `json:"untagged_deliveries,omitempty"`
}

type projectOutput struct {
	Project *project.Project `json:"project"`
}

type seriesInput struct {
	ProjectID string `json:"project_id" jsonschema:"the project identifier"`
	BaseName  string `json:"base_name" jsonschema:"the series base filename, version prefix stripped"`
}

type seriesEntry struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Version int    `json:"version"`
	Status  string `json:"status"`
}

type seriesOutput struct {
	Versions    []seriesEntry `json:"versions"`
	NextVersion int           `json:"next_version"`
}

type recentActivityInput struct {
	ProjectID string `json:"project_id,omitempty" jsonschema:"optionally restrict to one project"`
	Limit     int    `json:"limit,omitempty" jsonschema:"maximum entries to return"`
}

type recentActivityOutput struct {
	Entries []activity.Entry `json:"entries"`
}

func registerTools(server *sdkmcp.Server, svcs Services) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_projects",
		Description: "List all projects with their workflow status and video counts",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, _ emptyInput) (*sdkmcp.CallToolResult, listProjectsOutput, error) {
		summaries, err := svcs.Projects.List(ctx)
		if err != nil {
			return nil, listProjectsOutput{}, err
		}
		return nil, listProjectsOutput{Projects: summaries}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "check_delivery_readiness",
		Description: "Report whether a project can be delivered and what is still missing",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in projectInput) (*sdkmcp.CallToolResult, readinessOutput, error) {
		snap := svcs.Store.Snapshot()
		if _, ok := snap.Project(in.ProjectID); !ok {
			return nil, readinessOutput{}, fmt.Errorf("project %q not found", in.ProjectID)
		}

		out := readinessOutput{Ready: snap.ReadyForDelivery(in.ProjectID)}

		if cl, ok := snap.Checklist(in.ProjectID); ok {
			for _, f := range requiredFlags() {
				if !cl.Flag(f) {
					out.MissingFlags = append(out.MissingFlags, string(f))
				}
			}
		} else {
			out.MissingFlags = []string{"checklist missing: finalize the project first"}
		}

		mains := delivery.MainDeliveryVideos(snap.ProjectVideos(in.ProjectID))
		out.MainDeliveryCount = len(mains)
		for _, v := range mains {
			if !v.HasTags() {
				out.UntaggedDeliveries = append(out.UntaggedDeliveries, v.Name)
			}
		}
		return nil, out, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "finalize_project",
		Description: "Finalize an active project, creating its delivery checklist",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in projectInput) (*sdkmcp.CallToolResult, projectOutput, error) {
		proj, err := svcs.Projects.Finalize(ctx, in.ProjectID)
		if err != nil {
			return nil, projectOutput{}, err
		}
		return nil, projectOutput{Project: proj}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "complete_delivery",
		Description: "Mark a finalized project delivered; refused until the readiness gate passes",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in projectInput) (*sdkmcp.CallToolResult, projectOutput, error) {
		proj, err := svcs.Projects.CompleteDelivery(ctx, in.ProjectID)
		if err != nil {
			return nil, projectOutput{}, err
		}
		return nil, projectOutput{Project: proj}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_versions",
		Description: "List a video series newest first and preview the next version number",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in seriesInput) (*sdkmcp.CallToolResult, seriesOutput, error) {
		snap := svcs.Store.Snapshot()
		series := video.Series(snap.ProjectVideos(in.ProjectID), in.BaseName)

		out := seriesOutput{NextVersion: snap.NextVersion(in.ProjectID, in.BaseName)}
		for _, v := range series {
			out.Versions = append(out.Versions, seriesEntry{
				ID:      v.ID,
				Name:    v.Name,
				Version: v.Version,
				Status:  string(v.Status),
			})
		}
		return nil, out, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "recent_activity",
		Description: "Show the most recent workflow audit entries",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in recentActivityInput) (*sdkmcp.CallToolResult, recentActivityOutput, error) {
		entries, err := svcs.Activity.Recent(ctx, activity.ListOptions{
			ProjectID: in.ProjectID,
			Limit:     in.Limit,
		})
		if err != nil {
			return nil, recentActivityOutput{}, err
		}
		return nil, recentActivityOutput{Entries: entries}, nil
	})
}

// requiredFlags are the checklist fields the delivery gate enforces. The
// remaining fields are advisory.
func requiredFlags() []delivery.Field {
	return []delivery.Field{
		delivery.FieldCleanFeed,
		delivery.FieldTechReview,
		delivery.FieldCopyrightCheck,
		delivery.FieldMetadata,
	}
}
