package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// productResponse mirrors the shelfwatch API product response.
type productResponse struct {
	Success bool            `json:"success"`
	Product json.RawMessage `json:"product"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// searchResponse mirrors the shelfwatch API search response.
type searchResponse struct {
	Success  bool              `json:"success"`
	Query    string            `json:"query"`
	Page     int               `json:"page"`
	LastPage int               `json:"last_page"`
	Count    int               `json:"count"`
	Products []json.RawMessage `json:"products"`
	Error    *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func main() {
	apiURL := os.Getenv("SHELFWATCH_API_URL")
	if apiURL == "" {
		apiURL = "http://127.0.0.1:8080"
	}
	apiKey := os.Getenv("SHELFWATCH_API_KEY")

	s := server.NewMCPServer(
		"shelfwatch",
		"0.1.0",
		server.WithToolCapabilities(false),
	)

	findProductTool := mcp.NewTool("find_product",
		mcp.WithDescription("Look up one Woolworths Australia product by its identifier (SKU). Returns the full structured record: name, price, unit price, availability, brand, images."),
		mcp.WithString("identifier",
			mcp.Required(),
			mcp.Description("The product identifier, e.g. '257360'"),
		),
	)
	s.AddTool(findProductTool, handleFindProduct(apiURL, apiKey))

	searchProductsTool := mcp.NewTool("search_products",
		mcp.WithDescription("Search Woolworths Australia products by keywords. Returns one results page, or every page merged and de-duplicated when all_pages is true."),
		mcp.WithString("keywords",
			mcp.Required(),
			mcp.Description("Search keywords, e.g. 'tuna'"),
		),
		mcp.WithNumber("page",
			mcp.Description("1-based results page to fetch (default: 1)"),
		),
		mcp.WithBoolean("all_pages",
			mcp.Description("Traverse and merge every results page (default: false)"),
		),
	)
	s.AddTool(searchProductsTool, handleSearchProducts(apiURL, apiKey))

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

// apiGet sends a GET request to the shelfwatch API and returns the body.
func apiGet(ctx context.Context, client *http.Client, apiURL, apiKey, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	return io.ReadAll(resp.Body)
}

func handleFindProduct(apiURL, apiKey string) server.ToolHandlerFunc {
	client := &http.Client{Timeout: 60 * time.Second}

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		identifier, err := request.RequireString("identifier")
		if err != nil {
			return mcp.NewToolResultError("identifier is required"), nil
		}

		body, err := apiGet(ctx, client, apiURL, apiKey, "/api/v1/products/"+url.PathEscape(identifier))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		var resp productResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to parse response: %v", err)), nil
		}
		if !resp.Success {
			msg := "product lookup failed"
			if resp.Error != nil {
				msg = resp.Error.Message
			}
			return mcp.NewToolResultError(msg), nil
		}

		return mcp.NewToolResultText(string(resp.Product)), nil
	}
}

func handleSearchProducts(apiURL, apiKey string) server.ToolHandlerFunc {
	client := &http.Client{Timeout: 300 * time.Second}

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		keywords, err := request.RequireString("keywords")
		if err != nil {
			return mcp.NewToolResultError("keywords is required"), nil
		}

		page := request.GetInt("page", 1)
		if request.GetBool("all_pages", false) {
			page = 0
		}

		path := "/api/v1/search?q=" + url.QueryEscape(keywords) + "&page=" + strconv.Itoa(page)
		body, err := apiGet(ctx, client, apiURL, apiKey, path)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		var resp searchResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to parse response: %v", err)), nil
		}
		if !resp.Success {
			msg := "search failed"
			if resp.Error != nil {
				msg = resp.Error.Message
			}
			return mcp.NewToolResultError(msg), nil
		}

		return mcp.NewToolResultText(string(body)), nil
	}
}
