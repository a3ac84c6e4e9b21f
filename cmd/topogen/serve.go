package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"topoforge/internal/config"
	"topoforge/internal/graph"
	"topoforge/internal/pipeline"
)

type generateResponse struct {
	Routers    string `json:"routers"`
	L3Cores    string `json:"l3cores"`
	L2Switches string `json:"l2switches"`
	All        string `json:"all"`
	Report     string `json:"report"`
	Simulator  string `json:"simulator"`
	WLAN       string `json:"wlan,omitempty"`
}

func newServeCmd(log *slog.Logger) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a minimal HTTP demo server exposing POST /api/generate",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			mux := http.NewServeMux()
			mux.HandleFunc("/api/generate", handleGenerate(log, cfg.BaseNetworkOctet, cfg.Mode, cfg.CoordScale))

			log.Info("serving", "addr", addr)
			return http.ListenAndServe(addr, mux)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", envOr("PORT_ADDR", ":8080"), "address to listen on")
	return cmd
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func handleGenerate(log *slog.Logger, defaultOctet int, defaultMode string, coordScale float64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		defer r.Body.Close()

		var raw graph.RawTopology
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
			return
		}
		if raw.BaseNetworkOctet == 0 {
			raw.BaseNetworkOctet = defaultOctet
		}
		if raw.Mode == "" {
			raw.Mode = defaultMode
		}

		result, err := pipeline.Generate(r.Context(), raw, coordScale)
		if err != nil {
			log.Warn("generate failed", "err", err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		resp := generateResponse{
			Routers:    result.Bundles.Routers,
			L3Cores:    result.Bundles.L3Cores,
			L2Switches: result.Bundles.L2Switches,
			All:        result.Bundles.All,
			Report:     result.Report,
			Simulator:  result.Simulator,
			WLAN:       result.WLAN,
		}
		w.Header().Set("Content-Type", "application/json")
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		_ = enc.Encode(resp)
	}
}
