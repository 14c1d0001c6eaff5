package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/mindease/pkg/mood"
	"tableflip.dev/mindease/pkg/timeutil"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerSaveEntryTool(srv, svc)
	registerListEntriesTool(srv, svc)
	registerGetEntryTool(srv, svc)
	registerUpdateEntryTool(srv, svc)
	registerDeleteEntryTool(srv, svc)
	registerMoodStatsTool(srv, svc)
	registerChatTool(srv, svc)
}

func moodEnum() mcp.PropertyOption {
	return mcp.Enum(mood.Nouns()...)
}

func registerSaveEntryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"save_entry",
		mcp.WithDescription("Save a new journal entry, optionally tagged with a mood."),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Journal text. Leading and trailing whitespace is trimmed."),
		),
		mcp.WithString("mood",
			mcp.Description("Mood tag; any leaves the entry untagged."),
			moodEnum(),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Text string `json:"text"`
			Mood string `json:"mood"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		dto, err := svc.SaveEntry(ctx, args.Text, args.Mood)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerListEntriesTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_entries",
		mcp.WithDescription("List journal entries newest first, filtered by search text and mood."),
		mcp.WithString("query",
			mcp.Description("Case-insensitive text matched against entry text and creation time."),
		),
		mcp.WithString("mood",
			mcp.Description("Only entries with this mood; any for all."),
			moodEnum(),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of entries to return (default 50)."),
			mcp.Min(1),
			mcp.Max(500),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query := request.GetString("query", "")
		moodName := request.GetString("mood", "")
		limit := request.GetInt("limit", 50)

		results, err := svc.ListEntries(ctx, query, moodName, limit)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"query":   query,
			"mood":    moodName,
			"entries": results,
			"count":   len(results),
		})
	})
}

func registerGetEntryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_entry",
		mcp.WithDescription("Fetch a single entry by identifier."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Entry identifier to fetch."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := requireID(request)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.EntryByID(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerUpdateEntryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"update_entry",
		mcp.WithDescription("Replace the text and/or mood of an entry, keeping its id and creation time."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Entry identifier to update."),
		),
		mcp.WithString("text",
			mcp.Description("New text; omit to keep the current text."),
		),
		mcp.WithString("mood",
			mcp.Description("New mood; omit to keep the current mood."),
			moodEnum(),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := requireID(request)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.UpdateEntry(ctx, id, request.GetString("text", ""), request.GetString("mood", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerDeleteEntryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"delete_entry",
		mcp.WithDescription("Delete an entry. Deleting an unknown id is not an error."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Entry identifier to delete."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := requireID(request)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if err := svc.DeleteEntry(ctx, id); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{"deleted": id})
	})
}

func registerMoodStatsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"mood_stats",
		mcp.WithDescription("Mood distribution and average mood score (0-5) across the journal."),
		mcp.WithString("window",
			mcp.Description("Trailing window such as 7d or 2w; all or empty for the whole journal."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		window, label, err := timeutil.ParseWindow(request.GetString("window", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.MoodStats(ctx, window, label)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerChatTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"chat",
		mcp.WithDescription("Send a message to Clara, the supportive companion."),
		mcp.WithString("message",
			mcp.Required(),
			mcp.Description("What you want to say."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		message, err := request.RequireString("message")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		reply, err := svc.Chat(ctx, message)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(reply)
	})
}

// requireID accepts the id as a string or a JSON number.
func requireID(request mcp.CallToolRequest) (int64, error) {
	if s := strings.TrimSpace(request.GetString("id", "")); s != "" {
		return parseID(s)
	}
	if f := request.GetFloat("id", 0); f > 0 {
		return int64(f), nil
	}
	return 0, fmt.Errorf("required argument \"id\" not found")
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid entry id %q", s)
	}
	return id, nil
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
