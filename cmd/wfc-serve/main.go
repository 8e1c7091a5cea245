// Command wfc-serve exposes the collapse engine as an HTTP Cloud
// Function: POST a pattern and field dimensions, get back a solved grid.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/GoogleCloudPlatform/functions-framework-go/funcframework"

	"wavecollapse.dev/wfc/catalog"
	"wavecollapse.dev/wfc/engine"
)

type collapseRequest struct {
	PatternName string   `json:"patternName"`
	Rows        []string `json:"rows"`
	TileWidth   int      `json:"tileWidth"`
	TileHeight  int      `json:"tileHeight"`
	Width       int      `json:"width"`
	Height      int      `json:"height"`
	Seed        uint64   `json:"seed"`
	SaveSeedAs  string   `json:"saveSeedAs"`
}

type collapseResponse struct {
	Success bool   `json:"success"`
	Grid    string `json:"grid,omitempty"`
	Seed    uint64 `json:"seed,omitempty"`
	Tiles   int    `json:"tiles,omitempty"`
	Error   string `json:"error,omitempty"`
}

func rowsToPattern(rows []string) ([]rune, int, int, error) {
	if len(rows) == 0 {
		return nil, 0, 0, fmt.Errorf("rows must not be empty")
	}
	width := len([]rune(rows[0]))
	pattern := make([]rune, 0, width*len(rows))
	for i, row := range rows {
		r := []rune(row)
		if len(r) != width {
			return nil, 0, 0, fmt.Errorf("row %d has length %d, want %d", i, len(r), width)
		}
		pattern = append(pattern, r...)
	}
	return pattern, width, len(rows), nil
}

func execute(ctx context.Context, req collapseRequest) (collapseResponse, error) {
	if req.Width <= 0 || req.Height <= 0 {
		return collapseResponse{}, fmt.Errorf("width and height must be positive")
	}
	if req.TileWidth <= 0 || req.TileHeight <= 0 {
		return collapseResponse{}, fmt.Errorf("tileWidth and tileHeight must be positive")
	}

	e, err := engine.New[rune](req.Width, req.Height)
	if err != nil {
		return collapseResponse{}, fmt.Errorf("engine.New: %w", err)
	}

	if req.PatternName != "" {
		cat, err := catalogFromEnv(ctx)
		if err != nil {
			return collapseResponse{}, err
		}
		defer cat.Close()

		p, err := cat.LoadPattern(ctx, req.PatternName)
		if err != nil {
			return collapseResponse{}, fmt.Errorf("catalog.LoadPattern: %w", err)
		}
		if err := e.InitFromPattern(p.Values, p.Width, p.Height, req.TileWidth, req.TileHeight, req.Seed); err != nil {
			return collapseResponse{}, fmt.Errorf("InitFromPattern: %w", err)
		}
	} else {
		pattern, pw, ph, err := rowsToPattern(req.Rows)
		if err != nil {
			return collapseResponse{}, fmt.Errorf("rowsToPattern: %w", err)
		}
		if err := e.InitFromPattern(pattern, pw, ph, req.TileWidth, req.TileHeight, req.Seed); err != nil {
			return collapseResponse{}, fmt.Errorf("InitFromPattern: %w", err)
		}
	}

	e.Collapse(false, nil)

	if req.SaveSeedAs != "" {
		cat, err := catalogFromEnv(ctx)
		if err != nil {
			return collapseResponse{}, err
		}
		defer cat.Close()

		if err := cat.StoreSeed(ctx, req.SaveSeedAs, e.SeedRecord()); err != nil {
			return collapseResponse{}, fmt.Errorf("catalog.StoreSeed: %w", err)
		}
	}

	return collapseResponse{
		Success: true,
		Grid:    e.Grid().Repr(),
		Seed:    e.Seed(),
		Tiles:   len(e.Tiles()),
	}, nil
}

func catalogFromEnv(ctx context.Context) (*catalog.Catalog, error) {
	project := os.Getenv("WFC_PROJECT")
	dataset := os.Getenv("WFC_DATASET")
	if project == "" || dataset == "" {
		return nil, fmt.Errorf("WFC_PROJECT and WFC_DATASET must be set to use pattern/seed persistence")
	}
	return catalog.Open(ctx, project, dataset)
}

func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Content-Type", "application/json")
}

func collapseHandler(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)

	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		fmt.Fprintf(w, `{"success": false, "error": "Method %s not allowed"}`, r.Method)
		return
	}

	var req collapseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(collapseResponse{Error: fmt.Sprintf("invalid JSON: %v", err)})
		return
	}

	resp, err := execute(r.Context(), req)
	if err != nil {
		resp.Error = err.Error()
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"success": false, "error": "internal server error"}`)
	}
}

func main() {
	funcframework.RegisterHTTPFunction("/collapse", collapseHandler)

	port := "8080"
	if envPort := os.Getenv("PORT"); envPort != "" {
		port = envPort
	}
	hostname := ""
	if strings.EqualFold(os.Getenv("LOCAL_ONLY"), "true") {
		hostname = "127.0.0.1"
	}
	if err := funcframework.StartHostPort(hostname, port); err != nil {
		log.Fatalf("funcframework.StartHostPort: %v\n", err)
	}
}
