// cmd/mauser-monitor/main.go
package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/Wyzincsmarthome/mauser-monitor/internal/cli"
)

func main() {
	// A run is meant to finish; interrupting it loses the whole run's
	// state updates, so say so before exiting.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigCh
		log.Warn().Msg("Interrupt received, run abandoned without saving state")
		os.Exit(1)
	}()

	cli.Execute()
}
