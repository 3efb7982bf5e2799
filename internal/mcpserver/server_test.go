package mcpserver

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"audx/internal/config"
	"audx/internal/export"
	"audx/internal/pipe"
	"audx/internal/script"
)

func newToolRequest(args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{Arguments: args},
	}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	var parts []string
	for _, c := range result.Content {
		switch tc := c.(type) {
		case mcp.TextContent:
			parts = append(parts, tc.Text)
		case *mcp.TextContent:
			parts = append(parts, tc.Text)
		}
	}
	return strings.Join(parts, "\n")
}

type fakeConn struct {
	responses map[string]string
}

func (f *fakeConn) Do(_ context.Context, command string) (string, error) {
	resp, ok := f.responses[command]
	if !ok {
		return "", fmt.Errorf("unexpected command %q", command)
	}
	return resp, nil
}

func TestListTracksReturnsJSON(t *testing.T) {
	h := &handlers{
		cfg: &config.Config{},
		session: script.NewSession(&fakeConn{responses: map[string]string{
			"GetInfo: Type=Tracks": `[{"name":"Vocals","mute":0,"solo":1}]`,
		}}),
	}

	result, err := h.listTracks(context.Background(), newToolRequest(nil))
	if err != nil {
		t.Fatalf("listTracks() error = %v", err)
	}
	if result.IsError {
		t.Fatalf("listTracks() returned tool error: %+v", result)
	}
	text := resultText(t, result)
	if !strings.Contains(text, `"Vocals"`) || !strings.Contains(text, `"Solo": true`) {
		t.Fatalf("listTracks() text = %q, want track JSON", text)
	}
}

func TestDoCommandRequiresCommand(t *testing.T) {
	h := &handlers{cfg: &config.Config{}, session: script.NewSession(&fakeConn{})}

	result, err := h.doCommand(context.Background(), newToolRequest(map[string]any{}))
	if err != nil {
		t.Fatalf("doCommand() error = %v", err)
	}
	if !result.IsError {
		t.Fatal("doCommand() without command did not return a tool error")
	}
}

func TestReportResult(t *testing.T) {
	var log bytes.Buffer
	log.WriteString("details\n")

	ok := reportResult(export.Report{Exported: 2, Total: 2}, &log)
	if ok.IsError {
		t.Fatal("reportResult(2/2) marked as error")
	}

	partial := reportResult(export.Report{Exported: 1, Total: 2}, &log)
	if !partial.IsError {
		t.Fatal("reportResult(1/2) not marked as error")
	}

	empty := reportResult(export.Report{}, &log)
	if empty.IsError {
		t.Fatal("reportResult(nothing to export) marked as error")
	}
}

func TestToolErrAddsRemediationForPipeFailures(t *testing.T) {
	result := toolErr(fmt.Errorf("connect: %w", pipe.ErrNotRunning))
	if !result.IsError {
		t.Fatal("toolErr() result not marked as error")
	}
	if !strings.Contains(resultText(t, result), "mod-script-pipe") {
		t.Fatalf("toolErr() text = %q, want remediation hint", resultText(t, result))
	}
}
