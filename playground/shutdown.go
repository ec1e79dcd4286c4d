package playground

import (
	"log"
	"os"
	"os/signal"
	"syscall"
)

func InterceptShutdownSignals(shutdown func()) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	go func() {
		<-c
		signal.Reset()
		log.Println("shutting down, interrupt again to force quit")
		shutdown()
	}()
}
