package main

import (
	"context"
	"fmt"

	"clubbot/config"
	"clubbot/pkg/logger"
	"clubbot/storage/postgres"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.ServiceName)
	pg, err := postgres.New(context.Background(), cfg, log)

	if err != nil {
		panic(err)
	}
	defer pg.Close()

	// Wipe participants and their visit requests. The admin roster is
	// operator-managed data and stays.
	_, err = pg.GetPool().Exec(context.Background(), "TRUNCATE TABLE users, visit_requests RESTART IDENTITY CASCADE")
	if err != nil {
		log.Error(fmt.Sprintf("Failed to truncate tables: %v", err))
	} else {
		log.Info("Successfully truncated users and visit_requests tables.")
	}
}
