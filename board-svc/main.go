package main

import (
	"context"
	"log"
	"os"

	httpapi "orderboard/board-svc/internal/api/http"
	"orderboard/board-svc/internal/broker"
	"orderboard/board-svc/internal/realtime"
	"orderboard/board-svc/internal/service"
	"orderboard/board-svc/internal/state"
	"orderboard/board-svc/internal/storage"
	"orderboard/config"
)

func main() {
	db := config.MustInitPostgres()
	defer db.Close()

	rdb := config.MustInitRedis()
	defer rdb.Close()

	kafkaWriter := config.NewKafkaWriter("orders")
	defer kafkaWriter.Close()

	blobs := storage.NewBlobRepository(db)
	if err := blobs.EnsureSchema(); err != nil {
		log.Fatal("Failed to ensure schema:", err)
	}

	board := service.NewBoardService(blobs, broker.NewPublisher(rdb), broker.NewOrderFeed(kafkaWriter))

	mirror := state.NewStore()
	recon := realtime.NewReconciler(mirror)

	restaurants, orders, err := board.State()
	if err != nil {
		log.Fatal("Failed to load initial state:", err)
	}
	recon.Resync(restaurants, orders)
	log.Printf("Loaded %d restaurants and %d orders", len(restaurants), len(orders))

	go func() {
		if err := recon.Run(context.Background(), broker.NewSubscriber(rdb)); err != nil {
			log.Printf("Broadcast listener stopped: %v", err)
		}
	}()

	handler := httpapi.NewHandler(
		board,
		mirror,
		recon,
		storage.NewAnalyticsReader(rdb),
		service.DefaultQRGenerator{BaseURL: os.Getenv("BOARD_BASE_URL")},
	)

	addr := os.Getenv("BOARD_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	httpapi.StartServer(addr, httpapi.NewRouter(handler))
}
