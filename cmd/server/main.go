// Command server runs the housekeeper document store: the gRPC API, the
// notification WebSocket and the metrics endpoint.
package main

import (
	"context"
	"log"

	"github.com/dmitrijs2005/housekeeper/internal/server"
	"github.com/dmitrijs2005/housekeeper/internal/server/config"
)

func main() {
	ctx := context.Background()

	app, err := server.NewApp(ctx, config.LoadConfig())
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}

	app.Run(ctx)
}
