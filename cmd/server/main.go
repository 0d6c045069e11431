package main

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"diabetes-outcome-eval/internal/api"
)

func main() {
	cfg := api.Config{
		ModelPath: strings.TrimSpace(os.Getenv("MODEL_PATH")),
		DBPath:    strings.TrimSpace(os.Getenv("DB_PATH")),
	}

	if origins := strings.TrimSpace(os.Getenv("ALLOWED_ORIGINS")); origins != "" {
		for _, origin := range strings.Split(origins, ",") {
			if trimmed := strings.TrimSpace(origin); trimmed != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
			}
		}
	}

	server, err := api.NewServer(cfg)
	if err != nil {
		logrus.Fatalf("create server: %v", err)
	}
	defer server.Close()

	router, err := server.Router()
	if err != nil {
		logrus.Fatalf("configure router: %v", err)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}

	logrus.Infof("starting diabetes outcome predictor on :%s", port)
	if err := router.Run(":" + port); err != nil {
		logrus.Fatalf("server exited: %v", err)
	}
}
