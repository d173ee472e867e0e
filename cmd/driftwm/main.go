// Command driftwm is the entrypoint: load config, set up logging, connect,
// and run the reactor, in the cmd/ + internal/ split
// _examples/esimov-caire and _examples/noisetorch-NoiseTorch both use to
// keep main() thin.
package main

import (
	"flag"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/driftwm/driftwm/internal/config"
	"github.com/driftwm/driftwm/internal/reactor"
	"github.com/driftwm/driftwm/internal/wmlog"
)

func main() {
	display := flag.String("display", "", "X display to connect to (defaults to $DISPLAY)")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	if *verbose {
		wmlog.SetLevel(logrus.DebugLevel)
	}
	log := wmlog.Log

	cfg, err := config.Load(config.Dir())
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}

	r, err := reactor.Boot(*display, cfg, log)
	if err != nil {
		log.WithError(err).Fatal("failed to start driftwm")
	}

	if err := r.Run(); err != nil {
		log.WithError(err).Error("reactor exited with an error")
		os.Exit(1)
	}
}
