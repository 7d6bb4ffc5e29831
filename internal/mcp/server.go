package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/goliatone/go-docs/internal/logging"
	"github.com/goliatone/go-docs/internal/markup"
	"github.com/goliatone/go-docs/internal/navigation"
	"github.com/goliatone/go-docs/internal/pages"
	"github.com/goliatone/go-docs/internal/site"
	"github.com/goliatone/go-docs/pkg/interfaces"
)

const (
	DefaultName    = "go-docs"
	DefaultVersion = "0.1.0"
)

var ErrTransportUnknown = errors.New("mcp: unknown transport")

// Config names the server and picks its transport.
type Config struct {
	Name    string
	Version string
	// Transport is "stdio" or "http".
	Transport string
	Addr      string
}

type ListTreeRequest struct {
	IncludeDrafts bool `json:"include_drafts"`
}

type treeSection struct {
	Title string     `json:"title"`
	Slug  string     `json:"slug"`
	Pages []treePage `json:"pages"`
}

type treePage struct {
	Title     string `json:"title"`
	Path      string `json:"path"`
	Published bool   `json:"published"`
}

type GetPageRequest struct {
	Path string `json:"path"`
}

type GetPageResponse struct {
	Path     string           `json:"path"`
	Title    string           `json:"title"`
	Markup   string           `json:"markup"`
	Headings []markup.Heading `json:"headings"`
	Prev     *navigation.Link `json:"prev,omitempty"`
	Next     *navigation.Link `json:"next,omitempty"`
}

type GetTOCRequest struct {
	Content string `json:"content"`
}

type ActiveHeadingRequest struct {
	Content string    `json:"content"`
	Offsets []float64 `json:"offsets"`
	Scroll  float64   `json:"scroll"`
}

type ActiveHeadingResponse struct {
	AnchorID string `json:"anchor_id,omitempty"`
	Active   bool   `json:"active"`
}

// Dependencies are the services the tools read from.
type Dependencies struct {
	Navigation navigation.Service
	Site       site.Service
	Logger     interfaces.Logger
}

// NewServer registers the documentation tools. Tools whose service is
// missing are left out.
func NewServer(cfg Config, deps Dependencies) *server.MCPServer {
	name := strings.TrimSpace(cfg.Name)
	if name == "" {
		name = DefaultName
	}
	version := strings.TrimSpace(cfg.Version)
	if version == "" {
		version = DefaultVersion
	}
	logger := logging.OrNoOp(deps.Logger)

	s := server.NewMCPServer(name, version, server.WithToolCapabilities(false))

	if deps.Navigation != nil {
		s.AddTool(mcp.NewTool("list_tree",
			mcp.WithDescription("List documentation folders and their pages in navigation order"),
			mcp.WithBoolean("include_drafts",
				mcp.Description("Include unpublished pages and empty folders"),
			),
		), mcp.NewTypedToolHandler(listTreeHandler(deps.Navigation, logger)))
	}

	s.AddTool(mcp.NewTool("get_toc",
		mcp.WithDescription("Extract the heading outline (level, text, anchor) from documentation markup"),
		mcp.WithString("content",
			mcp.Required(),
			mcp.Description("Raw page markup"),
		),
	), mcp.NewTypedToolHandler(getTOCHandler()))

	if deps.Site != nil {
		s.AddTool(mcp.NewTool("get_page",
			mcp.WithDescription("Fetch a published page by route with its markup and outline"),
			mcp.WithString("path",
				mcp.Required(),
				mcp.Description("Page route in the form /{folder}/{page}"),
			),
		), mcp.NewTypedToolHandler(getPageHandler(deps.Site, logger)))

		s.AddTool(mcp.NewTool("active_heading",
			mcp.WithDescription("Determine which heading is active for a scroll position"),
			mcp.WithString("content",
				mcp.Required(),
				mcp.Description("Raw page markup whose headings are tracked"),
			),
			mcp.WithArray("offsets",
				mcp.Required(),
				mcp.Description("Vertical offset of each heading, in document order"),
				mcp.Items(map[string]any{"type": "number"}),
			),
			mcp.WithNumber("scroll",
				mcp.Required(),
				mcp.Description("Current scroll position"),
			),
		), mcp.NewTypedToolHandler(activeHeadingHandler(deps.Site)))
	}

	logger.Debug("mcp.server.ready", "name", name, "version", version)
	return s
}

// Serve runs s on the configured transport until it stops. The http
// transport shuts down when ctx is cancelled.
func Serve(ctx context.Context, s *server.MCPServer, cfg Config) error {
	switch strings.ToLower(strings.TrimSpace(cfg.Transport)) {
	case "", "stdio":
		return server.ServeStdio(s)
	case "http":
		httpServer := server.NewStreamableHTTPServer(s)
		errCh := make(chan error, 1)
		go func() {
			errCh <- httpServer.Start(cfg.Addr)
		}()
		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
			return httpServer.Shutdown(context.Background())
		}
	default:
		return fmt.Errorf("%w: %s", ErrTransportUnknown, cfg.Transport)
	}
}

func listTreeHandler(nav navigation.Service, logger interfaces.Logger) func(ctx context.Context, request mcp.CallToolRequest, args ListTreeRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, _ mcp.CallToolRequest, args ListTreeRequest) (*mcp.CallToolResult, error) {
		tree, err := nav.Tree(ctx, navigation.BuildOptions{PublishedOnly: !args.IncludeDrafts})
		if err != nil {
			logger.Error("mcp.list_tree.failed", "error", err)
			return mcp.NewToolResultError(fmt.Sprintf("failed to load tree: %v", err)), nil
		}
		sections := make([]treeSection, 0, len(tree))
		for _, section := range tree {
			entry := treeSection{Title: section.Folder.Name, Slug: section.Folder.Slug, Pages: make([]treePage, 0, len(section.Pages))}
			for _, page := range section.Pages {
				entry.Pages = append(entry.Pages, treePage{
					Title:     page.Title,
					Path:      navigation.PagePath(section.Folder, page),
					Published: page.IsPublished,
				})
			}
			sections = append(sections, entry)
		}
		return jsonResult(sections)
	}
}

func getPageHandler(siteSvc site.Service, logger interfaces.Logger) func(ctx context.Context, request mcp.CallToolRequest, args GetPageRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, _ mcp.CallToolRequest, args GetPageRequest) (*mcp.CallToolResult, error) {
		if strings.TrimSpace(args.Path) == "" {
			return mcp.NewToolResultError("path is required"), nil
		}
		doc, err := siteSvc.ResolvePath(ctx, args.Path)
		if err != nil {
			if pages.IsNotFound(err) {
				return mcp.NewToolResultError(fmt.Sprintf("page %s not found", args.Path)), nil
			}
			logger.Error("mcp.get_page.failed", "path", args.Path, "error", err)
			return mcp.NewToolResultError(fmt.Sprintf("failed to get page: %v", err)), nil
		}
		headings := doc.Headings
		if headings == nil {
			headings = []markup.Heading{}
		}
		return jsonResult(GetPageResponse{
			Path:     doc.Path,
			Title:    doc.Page.Title,
			Markup:   doc.Page.Content,
			Headings: headings,
			Prev:     doc.Prev,
			Next:     doc.Next,
		})
	}
}

func getTOCHandler() func(ctx context.Context, request mcp.CallToolRequest, args GetTOCRequest) (*mcp.CallToolResult, error) {
	return func(_ context.Context, _ mcp.CallToolRequest, args GetTOCRequest) (*mcp.CallToolResult, error) {
		headings := markup.Extract(args.Content)
		if headings == nil {
			headings = []markup.Heading{}
		}
		return jsonResult(headings)
	}
}

func activeHeadingHandler(siteSvc site.Service) func(ctx context.Context, request mcp.CallToolRequest, args ActiveHeadingRequest) (*mcp.CallToolResult, error) {
	return func(_ context.Context, _ mcp.CallToolRequest, args ActiveHeadingRequest) (*mcp.CallToolResult, error) {
		anchor, ok := siteSvc.ActiveHeading(markup.Extract(args.Content), args.Offsets, args.Scroll)
		return jsonResult(ActiveHeadingResponse{AnchorID: anchor, Active: ok})
	}
}

func jsonResult(payload any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
