package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/shopit/shopclient/internal/config"
	"github.com/shopit/shopclient/internal/domain"
	"github.com/shopit/shopclient/internal/receipt"
	"github.com/shopit/shopclient/internal/storage"
)

func main() {
	outDir := "."
	if len(os.Args) > 1 {
		outDir = os.Args[1]
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	// Open the persisted slot store
	var slots storage.SlotStore
	if cfg.Storage.Driver == "postgres" {
		slots, err = storage.NewPostgresStore(cfg.Storage.Database, logger)
	} else {
		slots, err = storage.NewFileStore(cfg.Storage.Dir, logger)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open slot storage: %v\n", err)
		os.Exit(1)
	}

	// Read the cached last order
	data, err := slots.Get(context.Background(), storage.SlotLastOrder)
	if err != nil {
		fmt.Fprintln(os.Stderr, "No recent order found. Place an order first.")
		os.Exit(1)
	}

	var order domain.OrderPayload
	if err := json.Unmarshal(data, &order); err != nil {
		fmt.Fprintf(os.Stderr, "Cached order is unreadable: %v\n", err)
		os.Exit(1)
	}

	path, err := receipt.WriteFile(&order, outDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write receipt: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Receipt written to %s\n", path)
	fmt.Printf("Order ID: %s\n", order.OrderID)
	fmt.Printf("Total: %s\n", receipt.FormatINR(order.Total))
}
