package mcp

import (
	"context"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/BVTRay/vioflow/internal/domain/activity"
	"github.com/BVTRay/vioflow/internal/domain/project"
	"github.com/BVTRay/vioflow/internal/state"
)

const serverInstructions = `Vioflow exposes a video production workflow: projects move
active -> finalized -> delivered -> archived, videos are grouped into version
series by base filename, and a delivery checklist gates the delivered stage.
Use check_delivery_readiness before complete_delivery; finalize_project must
come first and creates the checklist.`

// ProjectService defines project operations needed by MCP.
type ProjectService interface {
	List(ctx context.Context) ([]project.Summary, error)
	Finalize(ctx context.Context, id string) (*project.Project, error)
	CompleteDelivery(ctx context.Context, id string) (*project.Project, error)
}

// ActivityService defines activity operations needed by MCP.
type ActivityService interface {
	Recent(ctx context.Context, opts activity.ListOptions) ([]activity.Entry, error)
}

// Services contains all domain services needed by MCP.
type Services struct {
	Projects ProjectService
	Activity ActivityService
	Store    *state.Store
}

// Config contains server configuration.
type Config struct {
	Services Services
	Logger   *slog.Logger
}

// NewServer creates and configures an MCP server with all tools.
func NewServer(cfg Config) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "vioflow",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerTools(server, cfg.Services)

	return server
}
