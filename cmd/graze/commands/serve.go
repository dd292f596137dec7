package commands

import (
	"log"
	"net/http"

	"graze/internal/api"
	"graze/internal/auth"
	"graze/internal/config"
	"graze/internal/middleware"
	"graze/internal/resource"
	"graze/internal/store/sqlstore"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()

		s, err := sqlstore.New(cfg.DBDriver, cfg.DBConn)
		if err != nil {
			return err
		}
		defer s.Close()

		handlers := api.NewHandlers(s)

		mux := http.NewServeMux()
		handlers.Register(mux, resource.Registry())

		verifier := auth.NewVerifier(cfg.APIToken, cfg.APITokenHash)
		if !verifier.Enabled() {
			log.Println("API_TOKEN not set, bearer auth disabled")
		}

		var protected []string
		for _, d := range resource.Registry() {
			if d.RequireAuth {
				protected = append(protected, "/api/"+d.Path)
			}
		}

		handler := middleware.Logging(middleware.Auth(verifier, protected, mux))

		log.Printf("Server started at :%s", cfg.Port)
		return http.ListenAndServe(":"+cfg.Port, handler)
	},
}

func loadConfig() *config.Config {
	cfg := config.FromEnv()
	if dbDriver != "" {
		cfg.DBDriver = dbDriver
	}
	if dbConn != "" {
		cfg.DBConn = dbConn
	}
	return cfg
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
