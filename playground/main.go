package playground

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/andreyvit/httpserver"

	"github.com/submitguard/submitguard/director"
)

// Main is the playground's entry point; cmd/submitguard-playground delegates
// here so the whole app lives in one package.
func Main() {
	log.SetOutput(os.Stderr)
	log.SetFlags(0)

	ge := DefaultConfiguration()

	var env string
	flag.Usage = func() {
		base := filepath.Base(os.Args[0])
		fmt.Printf("Usage: %s [options]\n\n", base)
		fmt.Printf("Options:\n")
		flag.PrintDefaults()
		fmt.Printf("\nMost options are set in %s.\n", ge.ConfigFileName)
	}
	flag.StringVar(&env, "e", "local", fmt.Sprintf("environment to run, one of %s", strings.Join(ge.ValidEnvs(), ", ")))
	flag.Parse()

	if ge.Envs[env] == nil {
		log.Fatalf("** invalid environment %q, must be one of: %s", env, strings.Join(ge.ValidEnvs(), ", "))
	}
	settings := LoadConfig(ge, env)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	InterceptShutdownSignals(cancel)

	app, err := NewApp(settings, AppOptions{})
	if err != nil {
		log.Fatalf("** %v", err)
	}
	defer app.Close()

	dir := director.New()
	ensure(dir.Start(ctx, &director.Component{
		Name:         "http",
		RestartDelay: time.Second,
	}, func(ctx context.Context, quitf func(err error)) error {
		_, err := httpserver.Start(ctx, app, quitf, httpserver.Options{
			DebugName:               "http",
			Addr:                    settings.BindAddr,
			Port:                    settings.BindPort,
			AcmeEnabled:             false,
			Logf:                    log.Printf,
			GracefulShutdownTimeout: 10 * time.Second,
		})
		if err == nil {
			log.Printf("%v listening on %s port %d", settings.AppName, settings.BindAddr, settings.BindPort)
		}
		return err
	}))
	dir.Wait()
}
