// Package mcp exposes the table converter as a Model Context Protocol tool
// served over stdio.
package mcp

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	clierrors "github.com/salmonumbrella/tabtex/internal/errors"
	"github.com/salmonumbrella/tabtex/internal/latex"
	"github.com/salmonumbrella/tabtex/internal/table"
)

// ToolName is the name clients call the converter by.
const ToolName = "csv_to_latex"

const instructions = `Use csv_to_latex to turn delimited text (CSV, TSV, ...) into a LaTeX table float.
The first line of "csv" must name the columns.`

// NewServer builds an MCP server exposing the converter. defaults supplies
// values for arguments the client omits.
func NewServer(version string, defaults latex.Options) *server.MCPServer {
	s := server.NewMCPServer("tabtex", version,
		server.WithToolCapabilities(false),
		server.WithInstructions(instructions),
		server.WithRecovery(),
	)
	s.AddTool(converterTool(defaults), HandleConvert(defaults))
	return s
}

// Serve runs the server over the given streams until ctx is canceled or
// stdin closes.
func Serve(ctx context.Context, version string, defaults latex.Options, stdin io.Reader, stdout io.Writer) error {
	stdio := server.NewStdioServer(NewServer(version, defaults))
	stdio.SetErrorLogger(slog.NewLogLogger(slog.Default().Handler(), slog.LevelError))
	err := stdio.Listen(ctx, stdin, stdout)
	if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func converterTool(defaults latex.Options) mcp.Tool {
	round := float64(latex.DefaultRound)
	if defaults.Round != nil {
		round = float64(*defaults.Round)
	}
	return mcp.NewTool(ToolName,
		mcp.WithDescription("Convert delimited tabular text into a LaTeX table environment"),
		mcp.WithString("csv", mcp.Required(), mcp.Description("Delimited text; the first line holds column names")),
		mcp.WithString("delimiter", mcp.Description(`Field delimiter (default ","; "tab" or "\t" for TAB)`)),
		mcp.WithNumber("round", mcp.Description("Decimal places for float cells"), mcp.DefaultNumber(round)),
		mcp.WithBoolean("no_round", mcp.Description("Leave float cells unrounded")),
		mcp.WithArray("columns", mcp.Description("Columns to include, in order"), mcp.WithStringItems()),
		mcp.WithString("align", mcp.Description(`Tabular column specification, e.g. "l|c|r"`)),
		mcp.WithString("caption", mcp.Description("Table caption"), mcp.DefaultString(defaults.Caption)),
		mcp.WithString("label", mcp.Description("Label suffix for \\label{table:...}"), mcp.DefaultString(defaults.Label)),
		mcp.WithString("location", mcp.Description("Float placement, e.g. t, h, b"), mcp.DefaultString(defaults.Location)),
		mcp.WithBoolean("escape", mcp.Description("Escape LaTeX special characters in cells and headers")),
	)
}

// HandleConvert returns the tool handler. Conversion failures are reported
// as tool errors so the client sees the message.
func HandleConvert(defaults latex.Options) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		src, err := req.RequireString("csv")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		tbl, err := table.Load(strings.NewReader(src), req.GetString("delimiter", ""))
		if err != nil {
			return toolError(err), nil
		}

		opts := defaults
		opts.Template = ""
		opts.TemplateName = ""
		opts.Columns = req.GetStringSlice("columns", defaults.Columns)
		opts.Align = req.GetString("align", defaults.Align)
		opts.Caption = req.GetString("caption", defaults.Caption)
		opts.Label = req.GetString("label", defaults.Label)
		opts.Location = req.GetString("location", defaults.Location)
		opts.Escape = req.GetBool("escape", defaults.Escape)
		if req.GetBool("no_round", false) {
			opts.Round = nil
		} else if _, ok := req.GetArguments()["round"]; ok {
			opts.Round = latex.Places(req.GetInt("round", latex.DefaultRound))
		}

		out, err := latex.Render(tbl, opts)
		if err != nil {
			return toolError(err), nil
		}
		slog.Debug("mcp tool rendered table", "rows", tbl.NumRows(), "columns", tbl.NumCols())
		return mcp.NewToolResultText(out), nil
	}
}

func toolError(err error) *mcp.CallToolResult {
	msg := err.Error()
	if hint := clierrors.UserSuggestion(err); hint != "" {
		msg += "\n" + hint
	}
	return mcp.NewToolResultError(msg)
}
