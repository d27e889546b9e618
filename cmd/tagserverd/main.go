// Command tagserverd is the server entrypoint: it binds the tag
// registry, the TCP listener, and the admin HTTP API, mirroring
// krd/main.go's socket-setup-then-signal-wait shape.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/op/go-logging"

	"fillwire.dev/fillwire/config"
	"fillwire.dev/fillwire/internal/admin"
	"fillwire.dev/fillwire/internal/notify"
	"fillwire.dev/fillwire/internal/obslog"
	"fillwire.dev/fillwire/registry"
	"fillwire.dev/fillwire/server"
)

func useDebugLogging() bool {
	return os.Getenv("FILLWIRE_DEBUG") == "true"
}

func main() {
	level := logging.INFO
	if useDebugLogging() {
		level = logging.DEBUG
	}
	log := obslog.Setup("tagserverd", level)

	defer func() {
		if x := recover(); x != nil {
			log.Error(fmt.Sprintf("run time panic: %v", x))
			panic(x)
		}
	}()

	config.LoadEnvFile(".env")
	cfg, err := config.ServerConfigFromEnv()
	if err != nil {
		log.Fatal(err)
	}

	notifier, err := notify.New(cfg.SnsTopic)
	if err != nil {
		log.Error("notify.New: " + err.Error())
	}

	reg := registry.NewMemoryRegistry(0)
	srv := server.New(cfg.Port, reg, server.WithLogger(log), server.WithNotifier(notifier))

	adminServer := admin.New(reg)
	go func() {
		if err := adminServer.ListenAndServe(cfg.AdminAddr); err != nil {
			log.Error("admin server: " + err.Error())
		}
	}()

	go func() {
		if err := srv.ListenAndServe(); err != nil {
			log.Fatal(err)
		}
	}()

	log.Noticef("tagserverd listening on port %d, admin API on %s", cfg.Port, cfg.AdminAddr)

	stopSignal := make(chan os.Signal, 1)
	signal.Notify(stopSignal, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	sig := <-stopSignal
	log.Notice("stopping with signal", sig)
	srv.Shutdown()
}
