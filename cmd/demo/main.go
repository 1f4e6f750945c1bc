package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"statechartx"
	"statechartx/internal/core"
	"statechartx/internal/production"
)

func main() {
	b := statechartx.NewMachineBuilder("traffic-light", "traffic.red")
	b.State("traffic").Compound("traffic.red")
	b.State("traffic.red").On("timer", "traffic.green", nil, nil)
	b.State("traffic.green").On("timer", "traffic.yellow", nil, nil)
	b.State("traffic.yellow").On("timer", "traffic.red", nil, nil)

	machine, err := b.Build()
	if err != nil {
		panic(err)
	}

	persister, err := production.NewJSONPersister("/tmp")
	if err != nil {
		panic(err)
	}

	publishChan := make(chan production.TransitionRecord, 100)
	publisher := production.NewChannelPublisher(publishChan)

	visualizer := &production.DefaultVisualizer{}

	if err := machine.Start(); err != nil {
		panic(err)
	}
	defer machine.Stop()

	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	cycles := 0
	for {
		select {
		case <-ticker.C:
			if err := machine.Send("timer", nil); err != nil {
				fmt.Printf("Send error: %v\n", err)
			}
			fmt.Printf("\n--- Cycle %d ---\n", cycles+1)
			fmt.Println("Current states:", machine.Configuration())
			fmt.Println("DOT:\n" + visualizer.ExportDOT(machine.Tree(), machine.Configuration()))

			_ = publisher.Publish(context.Background(), machine.ID(), core.NewExternalEvent("timer", nil), time.Now())
			select {
			case pub := <-publishChan:
				fmt.Printf("Published: %s\n", pub.Event.Name)
			default:
			}

			if err := persister.Save(context.Background(), machine.ID(), machine.Snapshot()); err != nil {
				fmt.Printf("Persist error: %v\n", err)
			}

			cycles++
			if cycles >= 12 {
				fmt.Println("Demo complete after 12 cycles.")
				return
			}
		case <-sig:
			fmt.Println("\nShutting down gracefully...")
			return
		}
	}
}
