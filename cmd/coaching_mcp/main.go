// Package main runs the coaching MCP server over stdio.
// The same server is mounted on the portal at /mcp over HTTP.
package main

import (
	"context"
	"flag"
	"log"

	coachingmcp "github.com/2beens/coachportal/internal/coaching/mcp"
	"github.com/2beens/coachportal/internal/coaching/programs"
	"github.com/2beens/coachportal/internal/config"
	"github.com/2beens/coachportal/internal/db"
	"github.com/2beens/coachportal/internal/docstore"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path to TOML config file")
	flag.Parse()

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	secrets, err := config.LoadSecrets()
	if err != nil {
		log.Fatalf("load secrets: %v", err)
	}

	ctx := context.Background()
	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         cfg.PostgresHost,
		DBPort:         cfg.PostgresPort,
		DBUser:         cfg.PostgresUser,
		DBPassword:     secrets.PostgresPassword,
		DBName:         cfg.PostgresDBName,
		TracingEnabled: false,
	})
	if err != nil {
		log.Fatalf("db pool: %v", err)
	}
	defer dbPool.Close()

	programsRepo := programs.NewRepo(docstore.NewPsqlStore(dbPool), nil)
	server := coachingmcp.NewServer(programsRepo)

	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		log.Fatal(err)
	}
}
