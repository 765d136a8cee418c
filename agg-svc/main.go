package main

import (
	"context"

	"orderboard/agg-svc/internal/service"
	"orderboard/agg-svc/internal/storage"
	"orderboard/config"
)

func main() {
	rdb := config.MustInitRedis()
	defer rdb.Close()

	reader := config.NewKafkaReader("orders", "agg-svc-consumer")
	defer reader.Close()

	consumer := service.NewConsumer(reader, storage.NewStore(rdb))
	consumer.Start(context.Background())
}
