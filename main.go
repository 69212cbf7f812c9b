package main

import (
	"context"
	"flag"
	"log"

	"github.com/joho/godotenv"

	"github.com/starter-squad/lms-portal/internal/config"
	"github.com/starter-squad/lms-portal/internal/credstore"
	"github.com/starter-squad/lms-portal/internal/gateway"
	"github.com/starter-squad/lms-portal/internal/navigation"
	"github.com/starter-squad/lms-portal/internal/session"
	"github.com/starter-squad/lms-portal/internal/webserver"
)

func main() {
	// Optional .env for local development, real config lives in TOML
	godotenv.Load()

	confPath := flag.String("config", "config.toml", "Path to config file")
	flag.Parse()

	conf, err := config.LoadFromTomlFileAndValidate(*confPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	store, err := credstore.FromConfig(conf)
	if err != nil {
		log.Fatalf("Failed to open credential store: %v", err)
	}

	gw := gateway.New(conf.APIBaseURL, store)
	manager := session.NewManager(store, gw)
	nav := navigation.Policy{ServerBaseURL: conf.APIBaseURL}

	server := webserver.New(conf, manager, nav, gw)

	// Startup verification runs concurrently with the server; the route
	// guard defers protected navigations until it resolves.
	go manager.Initialize(context.Background())

	server.Run()
}
