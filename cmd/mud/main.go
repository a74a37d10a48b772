package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/blackbirdsmud/blackbirds/internal/config"
	"github.com/blackbirdsmud/blackbirds/internal/database"
	"github.com/blackbirdsmud/blackbirds/internal/logger"
	"github.com/blackbirdsmud/blackbirds/internal/server"
	"github.com/blackbirdsmud/blackbirds/internal/species"
	"github.com/blackbirdsmud/blackbirds/internal/world"
)

func main() {
	port := flag.Int("port", 4000, "Telnet server port")
	wsPort := flag.Int("wsport", 4443, "WebSocket server port")
	serverConfigFile := flag.String("config", "data/server.yaml", "Path to server config YAML file")
	loggingConfig := flag.String("logging", "data/logging.yaml", "Path to logging config YAML file")
	dbFile := flag.String("db", "data/blackbirds.db", "Path to player database file (sqlite)")
	dbDriver := flag.String("db-driver", "sqlite", "Database driver: sqlite or postgres")
	pgHost := flag.String("pg-host", "localhost", "PostgreSQL host")
	pgPort := flag.Int("pg-port", 5432, "PostgreSQL port")
	pgUser := flag.String("pg-user", "blackbirds", "PostgreSQL user")
	pgPassword := flag.String("pg-password", "", "PostgreSQL password (or PGPASSWORD env)")
	pgDatabase := flag.String("pg-database", "blackbirds", "PostgreSQL database name")
	makeAdmin := flag.String("make-admin", "", "Promote an existing account to admin and exit (requires username)")
	flag.Parse()

	dbConfig := database.DefaultConfig(*dbFile)
	if *dbDriver == "postgres" {
		dbConfig.Driver = "postgres"
		dbConfig.Postgres = database.DefaultPostgresConfig()
		dbConfig.Postgres.Host = *pgHost
		dbConfig.Postgres.Port = *pgPort
		dbConfig.Postgres.User = *pgUser
		dbConfig.Postgres.Database = *pgDatabase
		dbConfig.Postgres.Password = *pgPassword
		if dbConfig.Postgres.Password == "" {
			dbConfig.Postgres.Password = os.Getenv("PGPASSWORD")
		}
	}

	if *makeAdmin != "" {
		handleMakeAdmin(*makeAdmin, dbConfig)
		return
	}

	// Initialize logger first (before any logging)
	logConfig, _ := logger.LoadConfig(*loggingConfig)
	logger.Initialize(logConfig)

	logger.Info("starting Blackbirds server")

	// The admin reload command shuts the server down with the reload
	// flag set; the loop rebuilds everything from disk and goes again.
	for {
		reload, reason := run(*port, *wsPort, *serverConfigFile, dbConfig)
		if !reload {
			break
		}
		logger.Info("reloading server", "reason", reason)
	}

	logger.Info("server stopped")
}

// run builds the world and serves until shutdown. Returns whether a
// reload was requested.
func run(port, wsPort int, serverConfigFile string, dbConfig database.Config) (bool, string) {
	serverCfg, err := config.LoadConfig(serverConfigFile)
	if err != nil {
		logger.Warning("failed to load server config, using defaults", "path", serverConfigFile, "error", err)
		serverCfg = config.DefaultConfig()
	}

	if serverCfg.Game.SpeciesFile != "" {
		if _, err := species.LoadFromYAML(serverCfg.Game.SpeciesFile); err != nil {
			log.Fatalf("Failed to load species config: %v", err)
		}
		logger.Info("species loaded", "path", serverCfg.Game.SpeciesFile)
	}
	if err := species.Validate(); err != nil {
		log.Fatalf("Species validation failed: %v", err)
	}

	gameWorld, err := loadWorld(serverCfg)
	if err != nil {
		log.Fatalf("Failed to load world: %v", err)
	}
	logger.Info("world loaded", "rooms", len(gameWorld.Rooms()))

	db, err := database.OpenWithConfig(dbConfig)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()
	logger.Info("player database initialized", "driver", dbConfig.Driver)

	addr := fmt.Sprintf(":%d", port)
	srv := server.NewServer(addr, gameWorld, db, serverCfg)

	if len(serverCfg.WebSocket.AllowedOrigins) == 0 {
		logger.Info("websocket CORS policy", "mode", "same-origin")
	} else if len(serverCfg.WebSocket.AllowedOrigins) == 1 && serverCfg.WebSocket.AllowedOrigins[0] == "*" {
		logger.Warning("websocket CORS allows all origins (not recommended for production)")
	} else {
		logger.Info("websocket CORS policy", "allowed_origins", serverCfg.WebSocket.AllowedOrigins)
	}

	serverDone := make(chan error, 1)
	go func() {
		serverDone <- srv.Start()
	}()

	wsAddr := fmt.Sprintf(":%d", wsPort)
	go func() {
		if err := srv.StartWebSocket(wsAddr); err != nil {
			log.Fatalf("WebSocket server error: %v", err)
		}
	}()

	logger.Info("server running", "telnet_port", port, "websocket_port", wsPort)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case <-sigChan:
		logger.Info("shutting down server")
		srv.Shutdown()
		<-serverDone
	case err := <-serverDone:
		if err != nil {
			log.Fatalf("Telnet server error: %v", err)
		}
	}

	return srv.ReloadRequested()
}

// loadWorld builds the room graph from the configured world file, or
// the built-in default when none is configured.
func loadWorld(cfg *config.ServerConfig) (*world.World, error) {
	var (
		w   *world.World
		err error
	)
	if cfg.Game.WorldFile != "" {
		w, err = world.LoadFromYAML(cfg.Game.WorldFile)
		if err != nil {
			return nil, err
		}
	} else {
		w = world.NewDefaultWorld()
	}

	if cfg.Game.SpawnRoom != "" || cfg.Game.ChargenRoom != "" {
		spawn := cfg.Game.SpawnRoom
		chargen := cfg.Game.ChargenRoom
		if spawn == "" && w.SpawnRoom() != nil {
			spawn = w.SpawnRoom().ID
		}
		if chargen == "" && w.ChargenRoom() != nil {
			chargen = w.ChargenRoom().ID
		}
		w.SetSpawnRooms(spawn, chargen)
	}

	if w.SpawnRoom() == nil {
		return nil, fmt.Errorf("world has no spawn room")
	}
	return w, nil
}

// handleMakeAdmin promotes an account to admin and exits.
func handleMakeAdmin(username string, dbConfig database.Config) {
	db, err := database.OpenWithConfig(dbConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	account, err := db.GetAccountByUsername(username)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Account '%s' not found\n", username)
		os.Exit(1)
	}

	if account.IsAdmin {
		fmt.Printf("Account '%s' is already an admin.\n", username)
		os.Exit(0)
	}

	if err := db.SetAdmin(account.ID, true); err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to promote account: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Account '%s' has been promoted to admin.\n", username)
}
