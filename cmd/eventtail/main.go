package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"campus-guide-be/internal/config"
	"campus-guide-be/pkg/events"
	pktNats "campus-guide-be/pkg/nats"

	"github.com/fatih/color"
)

// Prints guide events from the NATS stream, e.g. to watch deviations live.
func main() {
	eventType := flag.String("type", ">", "event type to follow, e.g. GUIDE_DEVIATION")
	durable := flag.String("durable", "eventtail", "durable consumer name")
	flag.Parse()

	cfg := config.Load()
	if cfg.App.NatsURL == "" {
		log.Fatal("Error: NATS_URL is not set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Fatalf("Failed to connect to NATS: %v", err)
	}
	defer sub.Close()

	err = sub.Subscribe(ctx, pktNats.Subject(*eventType), *durable, func(ctx context.Context, e events.Event) error {
		line := color.New(color.FgGreen)
		if e.EventType() == "GUIDE_DEVIATION" {
			line = color.New(color.FgRed)
		}
		line.Printf("%s %-30s session=%s %v\n", e.Timestamp().Format("15:04:05"), e.EventType(), events.SessionID(e), e.Payload())
		return nil
	})
	if err != nil {
		log.Fatalf("Subscribe failed: %v", err)
	}

	<-ctx.Done()
}
