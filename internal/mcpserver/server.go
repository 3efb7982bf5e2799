// Package mcpserver exposes the Audacity automation surface as MCP tools
// over stdio, so agents can drive a running Audacity through audx.
package mcpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"audx/internal/config"
	"audx/internal/export"
	"audx/internal/fsutil"
	"audx/internal/pipe"
	"audx/internal/script"
)

// Run starts the stdio MCP server. Called when argv[1] == "__mcp".
// All tools share one pipe connection; the connection's own discipline
// keeps concurrent tool calls from interleaving commands.
func Run(version string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if verr := config.Validate(cfg); verr != nil {
		return fmt.Errorf("invalid config: %w", verr)
	}

	conn := pipe.New(pipe.Options{
		To:           cfg.Pipe.To,
		From:         cfg.Pipe.From,
		Timeout:      cfg.Pipe.TimeoutDuration(),
		PollInterval: cfg.Pipe.PollIntervalDuration(),
	})
	defer conn.Close()

	h := &handlers{cfg: cfg, session: script.NewSession(conn)}

	srv := server.NewMCPServer("audx", version, server.WithToolCapabilities(false))
	registerTools(srv, h)

	return server.ServeStdio(srv)
}

type handlers struct {
	cfg     *config.Config
	session *script.Session
}

func registerTools(srv *server.MCPServer, h *handlers) {
	srv.AddTool(mcp.NewTool("list_tracks",
		mcp.WithDescription("List the open project's tracks with their mute and solo flags."),
	), h.listTracks)

	srv.AddTool(mcp.NewTool("list_clips",
		mcp.WithDescription("List the open project's audio clips with owning track and time range."),
	), h.listClips)

	srv.AddTool(mcp.NewTool("export_tracks",
		mcp.WithDescription("Export every track to its own audio file, soloing each in turn. Restores mute state afterwards."),
		mcp.WithString("dir", mcp.Required(), mcp.Description("Output directory; created if missing.")),
		mcp.WithString("base", mcp.Description("Filename base; files are base_1.ext, base_2.ext, … (default track).")),
		mcp.WithString("format", mcp.Description("Output extension such as wav, flac or mp3 (default wav).")),
		mcp.WithNumber("channels", mcp.Description("1 = mono, 2 = stereo (default 2).")),
	), h.exportTracks)

	srv.AddTool(mcp.NewTool("export_clips",
		mcp.WithDescription("Export every clip on an unmuted track to its own file via a staging track."),
		mcp.WithString("dir", mcp.Required(), mcp.Description("Output directory; created if missing.")),
		mcp.WithString("prefix", mcp.Description("Optional filename prefix.")),
		mcp.WithString("format", mcp.Description("Output extension such as wav, flac or mp3 (default wav).")),
		mcp.WithNumber("channels", mcp.Description("1 = mono, 2 = stereo (default 2).")),
		mcp.WithBoolean("rm_scratch", mcp.Description("Remove the staging track after the run.")),
	), h.exportClips)

	srv.AddTool(mcp.NewTool("do_command",
		mcp.WithDescription("Send a raw mod-script-pipe command line and return Audacity's reply."),
		mcp.WithString("command", mcp.Required(), mcp.Description("Command text, e.g. Help: Command=Amplify")),
	), h.doCommand)
}

func (h *handlers) listTracks(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tracks, err := h.session.Tracks(ctx)
	if err != nil {
		return toolErr(err), nil
	}
	return jsonResult(tracks)
}

func (h *handlers) listClips(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	clips, err := h.session.Clips(ctx)
	if err != nil {
		return toolErr(err), nil
	}
	return jsonResult(clips)
}

func (h *handlers) exportTracks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dir, err := req.RequireString("dir")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := fsutil.EnsureDir(dir); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("creating %s: %v", dir, err)), nil
	}

	var log bytes.Buffer
	report, err := export.ExportTracks(ctx, h.session, export.TrackOptions{
		Dir:      dir,
		Base:     req.GetString("base", h.baseDefault()),
		Ext:      req.GetString("format", h.formatDefault()),
		Channels: int(req.GetFloat("channels", float64(h.channelsDefault()))),
	}, &log)
	if err != nil {
		return toolErr(err), nil
	}
	return reportResult(report, &log), nil
}

func (h *handlers) exportClips(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dir, err := req.RequireString("dir")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := fsutil.EnsureDir(dir); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("creating %s: %v", dir, err)), nil
	}

	var log bytes.Buffer
	report, err := export.ExportClips(ctx, h.session, export.ClipOptions{
		Dir:           dir,
		Prefix:        req.GetString("prefix", h.cfg.Export.Prefix),
		Ext:           req.GetString("format", h.formatDefault()),
		Channels:      int(req.GetFloat("channels", float64(h.channelsDefault()))),
		RemoveScratch: req.GetBool("rm_scratch", false),
	}, &log)
	if err != nil {
		return toolErr(err), nil
	}
	return reportResult(report, &log), nil
}

func (h *handlers) doCommand(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	command, err := req.RequireString("command")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	reply, err := h.session.Raw(ctx, command)
	if err != nil {
		return toolErr(err), nil
	}
	return mcp.NewToolResultText(reply), nil
}

func (h *handlers) baseDefault() string {
	if h.cfg.Export.Base != "" {
		return h.cfg.Export.Base
	}
	return config.DefaultBase
}

func (h *handlers) formatDefault() string {
	if h.cfg.Export.Format != "" {
		return h.cfg.Export.Format
	}
	return config.DefaultFormat
}

func (h *handlers) channelsDefault() int {
	if h.cfg.Export.Channels != 0 {
		return h.cfg.Export.Channels
	}
	return config.DefaultChannels
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(data)), nil
}

func reportResult(report export.Report, log *bytes.Buffer) *mcp.CallToolResult {
	summary := fmt.Sprintf("exported %d/%d (skipped %d)\n\n%s",
		report.Exported, report.Total, report.Skipped, log.String())
	if report.Total > 0 && report.Exported < report.Total {
		return mcp.NewToolResultError(summary)
	}
	return mcp.NewToolResultText(summary)
}

// toolErr maps pipe-level failures to tool errors with remediation text.
func toolErr(err error) *mcp.CallToolResult {
	if pipeDown(err) {
		return mcp.NewToolResultError(err.Error() +
			"\nEnsure Audacity is running with mod-script-pipe enabled, then retry.")
	}
	return mcp.NewToolResultError(err.Error())
}

func pipeDown(err error) bool {
	return errors.Is(err, pipe.ErrNotRunning) || errors.Is(err, pipe.ErrTimeout)
}
