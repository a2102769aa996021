package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/annel0/blockverse/internal/eventbus"
	"github.com/annel0/blockverse/internal/replay"
	"github.com/annel0/blockverse/internal/world"
)

const (
	defaultNatsURL = "nats://127.0.0.1:4222"
	timeFormat     = "2006-01-02T15:04:05Z"
)

func main() {
	var (
		natsURL    = flag.String("nats", defaultNatsURL, "NATS server URL")
		stream     = flag.String("stream", eventbus.DefaultStream, "JetStream stream name")
		command    = flag.String("cmd", "tail", "Command: tail, replay")
		eventTypes = flag.String("types", "", "Event types filter (comma-separated)")
		sources    = flag.String("sources", "", "Event sources filter (comma-separated)")
		file       = flag.String("file", "", "Replay file for cmd=replay")
		limit      = flag.Int("limit", 0, "Maximum number of events/frames (0 = unlimited)")
	)
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch *command {
	case "tail":
		bus, err := eventbus.NewJetStreamBus(*natsURL, *stream, 24*time.Hour)
		if err != nil {
			log.Fatalf("❌ Failed to connect to NATS: %v", err)
		}
		defer bus.Close()

		filter := eventbus.Filter{
			Types:   parseStringList(*eventTypes),
			Sources: parseStringList(*sources),
		}
		if err := tailEvents(ctx, bus, filter, *limit); err != nil {
			log.Fatalf("❌ Tail failed: %v", err)
		}

	case "replay":
		if *file == "" {
			log.Fatal("❌ -file is required for cmd=replay")
		}
		if err := showReplay(*file, *limit); err != nil {
			log.Fatalf("❌ Replay failed: %v", err)
		}

	default:
		fmt.Printf("❌ Unknown command: %s\n", *command)
		fmt.Println("Available commands: tail, replay")
		os.Exit(1)
	}
}

// tailEvents выводит события изменения блоков в реальном времени
func tailEvents(ctx context.Context, bus eventbus.EventBus, filter eventbus.Filter, limit int) error {
	fmt.Printf("🎬 Tailing events (types: %v, limit: %d)\n", filter.Types, limit)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	received := make(chan struct{}, 64)
	sub, err := bus.Subscribe(ctx, filter, func(ctx context.Context, ev *eventbus.Envelope) {
		printEvent(ev)
		select {
		case received <- struct{}{}:
		default:
		}
	})
	if err != nil {
		return err
	}
	defer sub.Unsubscribe()

	count := 0
	for {
		select {
		case <-ctx.Done():
			fmt.Printf("\n📊 Received %d events\n", count)
			return nil
		case <-received:
			count++
			if limit > 0 && count >= limit {
				cancel()
			}
		}
	}
}

func printEvent(ev *eventbus.Envelope) {
	ts := ev.Timestamp.UTC().Format(timeFormat)

	var payload world.BlockEventPayload
	if err := json.Unmarshal(ev.Payload, &payload); err != nil {
		fmt.Printf("[%s] %-12s src=%s %s\n", ts, ev.EventType, ev.Source, ev.Payload)
		return
	}
	fmt.Printf("[%s] %-12s src=%s block=%-7s at (%d, %d, %d) chunk (%d, %d)\n",
		ts, ev.EventType, ev.Source, payload.Block,
		payload.X, payload.Y, payload.Z, payload.ChunkX, payload.ChunkZ)
}

// showReplay печатает кадры записи и сводку по нажатым клавишам
func showReplay(path string, limit int) error {
	p, err := replay.OpenPlayer(path)
	if err != nil {
		return err
	}
	defer p.Close()

	stats := make(map[string]int)
	frames := 0
	for limit <= 0 || frames < limit {
		f, err := p.Next()
		if errors.Is(err, replay.ErrEndOfReplay) {
			break
		}
		if err != nil {
			return err
		}
		frames++

		if f.Input.Idle() && f.PointerDX == 0 && f.PointerDY == 0 {
			stats["idle"]++
			continue
		}

		keys := pressedKeys(f)
		for _, k := range keys {
			stats[k]++
		}
		fmt.Printf("tick %6d  %-30s pointer=(%.1f, %.1f)\n",
			f.Tick, strings.Join(keys, "+"), f.PointerDX, f.PointerDY)
	}

	fmt.Printf("\n📊 Frames: %d\n", frames)
	names := make([]string, 0, len(stats))
	for name := range stats {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("   %-8s %d\n", name, stats[name])
	}
	return nil
}

func pressedKeys(f replay.Frame) []string {
	in := f.Input
	var keys []string
	add := func(pressed bool, name string) {
		if pressed {
			keys = append(keys, name)
		}
	}
	add(in.Forward, "forward")
	add(in.Back, "back")
	add(in.Left, "left")
	add(in.Right, "right")
	add(in.Jump, "jump")
	add(in.Sprint, "sprint")
	add(in.Break, "break")
	add(in.Place, "place")
	add(in.Scroll != 0, "scroll")
	return keys
}

// parseStringList парсит строку с разделителями-запятыми
func parseStringList(s string) []string {
	if s == "" {
		return nil
	}

	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
