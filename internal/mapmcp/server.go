// Package mapmcp exposes the scenario engine over the Model Context
// Protocol, so an assistant can inspect an avalanche directory and run
// scenario filters without touching the output folder.
package mapmcp

import (
	"context"
	"fmt"
	"sync"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/OpenNHM/AvaScenarioMapper/internal/avadir"
	"github.com/OpenNHM/AvaScenarioMapper/internal/config"
	"github.com/OpenNHM/AvaScenarioMapper/internal/legend"
	"github.com/OpenNHM/AvaScenarioMapper/internal/logging"
	"github.com/OpenNHM/AvaScenarioMapper/internal/scenario"
)

// Server wraps the MCP SDK server around one mapper configuration. The
// directory table is loaded lazily on first use and cached; it is treated
// as read-only afterwards, so concurrent tool calls share it safely.
type Server struct {
	MCPServer *sdkmcp.Server

	cfg    *config.Config
	matrix *legend.Matrix

	mu    sync.Mutex
	table *avadir.Table
}

// NewServer creates the MCP server with the scenario tools registered.
func NewServer(cfg *config.Config) *Server {
	s := &Server{cfg: cfg, matrix: legend.Default()}
	s.MCPServer = sdkmcp.NewServer(
		&sdkmcp.Implementation{Name: "avascenmapper", Version: "dev"},
		nil,
	)
	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "list_scenarios",
		Description: "List the scenario definitions of the loaded mapper configuration.",
	}, s.handleListScenarios)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "inspect_directory",
		Description: "Summarize the filterable attributes of the avalanche directory (value ranges, category sets, unique PRA count).",
	}, s.handleInspectDirectory)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "run_scenario",
		Description: "Run one configured scenario filter and return its event count and findings. Does not write output files.",
	}, s.handleRunScenario)
}

// --- Tool input/output types ---

type listScenariosInput struct{}

type scenarioInfo struct {
	Name        string   `json:"name"`
	LKRegions   []string `json:"lk_regions,omitempty"`
	LWDRegions  []string `json:"lwd_regions,omitempty"`
	RegionMode  string   `json:"region_mode,omitempty"`
	Sectors     []string `json:"sectors,omitempty"`
	Flows       []string `json:"flows,omitempty"`
	ElevMin     *int     `json:"elev_min,omitempty"`
	ElevMax     *int     `json:"elev_max,omitempty"`
	SingleRSize bool     `json:"single_rsize"`
}

type listScenariosOutput struct {
	Scenarios []scenarioInfo `json:"scenarios"`
}

type inspectDirectoryInput struct {
	Path string `json:"path,omitempty" jsonschema:"directory file path (default: paths.avaDirectoryResults from the config)"`
}

type inspectDirectoryOutput struct {
	Summary avadir.Summary `json:"summary"`
}

type runScenarioInput struct {
	Scenario string `json:"scenario" jsonschema:"name of a configured scenario"`
}

type runScenarioOutput struct {
	Scenario string             `json:"scenario"`
	Events   int                `json:"events"`
	Records  int                `json:"records"`
	Findings []scenario.Finding `json:"findings,omitempty"`
}

// --- Tool handlers ---

func (s *Server) handleListScenarios(_ context.Context, _ *sdkmcp.CallToolRequest, _ listScenariosInput) (*sdkmcp.CallToolResult, listScenariosOutput, error) {
	out := listScenariosOutput{}
	for _, sc := range s.cfg.Scenarios {
		single := sc.SingleRSize == nil || *sc.SingleRSize
		out.Scenarios = append(out.Scenarios, scenarioInfo{
			Name:        sc.Name,
			LKRegions:   sc.LKRegions,
			LWDRegions:  sc.LWDRegions,
			RegionMode:  sc.Criteria().RegionMode.String(),
			Sectors:     sc.Sectors,
			Flows:       sc.Flows,
			ElevMin:     sc.ElevMin,
			ElevMax:     sc.ElevMax,
			SingleRSize: single,
		})
	}
	return nil, out, nil
}

func (s *Server) handleInspectDirectory(_ context.Context, _ *sdkmcp.CallToolRequest, input inspectDirectoryInput) (*sdkmcp.CallToolResult, inspectDirectoryOutput, error) {
	table, err := s.loadTable(input.Path)
	if err != nil {
		return nil, inspectDirectoryOutput{}, err
	}
	return nil, inspectDirectoryOutput{Summary: avadir.Summarize(table)}, nil
}

func (s *Server) handleRunScenario(ctx context.Context, _ *sdkmcp.CallToolRequest, input runScenarioInput) (*sdkmcp.CallToolResult, runScenarioOutput, error) {
	var crit *scenario.Criteria
	for _, sc := range s.cfg.Scenarios {
		if sc.Name == input.Scenario {
			c := sc.Criteria()
			crit = &c
			break
		}
	}
	if crit == nil {
		return nil, runScenarioOutput{}, fmt.Errorf("unknown scenario %q", input.Scenario)
	}

	table, err := s.loadTable("")
	if err != nil {
		return nil, runScenarioOutput{}, err
	}

	if err := ctx.Err(); err != nil {
		return nil, runScenarioOutput{}, err
	}
	res, err := scenario.NewEngine(*crit, s.matrix).Run(table)
	if err != nil {
		return nil, runScenarioOutput{}, fmt.Errorf("run scenario %q: %w", input.Scenario, err)
	}

	logging.New("mcp").Info("scenario run via MCP",
		"scenario", res.Scenario, "events", res.Events, "findings", len(res.Findings))
	return nil, runScenarioOutput{
		Scenario: res.Scenario,
		Events:   res.Events,
		Records:  len(res.Records),
		Findings: res.Findings,
	}, nil
}

// loadTable returns the cached directory table, loading it on first use.
// An explicit path bypasses the cache so inspect_directory can look at
// other files.
func (s *Server) loadTable(path string) (*avadir.Table, error) {
	if path != "" {
		return avadir.Load(path)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.table != nil {
		return s.table, nil
	}
	if s.cfg.Paths.AvaDirectoryResults == "" {
		return nil, fmt.Errorf("no directory file configured (paths.avaDirectoryResults)")
	}
	t, err := avadir.Load(s.cfg.Paths.AvaDirectoryResults)
	if err != nil {
		return nil, err
	}
	s.table = t
	return t, nil
}
