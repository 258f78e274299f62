// cmd/activities/main.go
package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/law-makers/activities/internal/cli"
	"github.com/rs/zerolog/log"
)

func main() {
	// An interrupted scrape leaves the previous snapshot in place: the open
	// transaction is rolled back when the connection drops.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigCh
		log.Warn().Msg("Interrupt received, shutting down")
		os.Exit(130)
	}()

	os.Exit(cli.Execute())
}
