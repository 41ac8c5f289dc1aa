package main

import (
	"flag"
	"os"
	"os/signal"
	"sync"
	"syscall"

	log "github.com/sirupsen/logrus"

	"ecashclient/notifications"
	"ecashclient/storage"
	"ecashclient/webserver"
)

var (
	version    = "1.0"
	commitHash = "dev"
)

type ECashServer struct {
	*notifications.NotificationHandler
	*webserver.WebServer
	*storage.Storage
	Flags
}

// Flags Server flags
type Flags struct {
	logDebug  bool
	logTrace  bool
	webUIAddr string
	webUIPort int
	dataDir   string

	// one-shot solve mode
	puzzleID uint64
	guess    string
	blobFile string
}

func main() {

	var (
		err error
		wg  sync.WaitGroup
	)

	server := new(ECashServer)
	server.parseArgs()

	// Logging
	setupLogging(server.logDebug, server.logTrace)

	// Clean exits
	shutdownChannel := setupCloseChannel()

	// Open/Init database
	server.Storage, err = storage.InitStorage(server.dataDir)
	if err != nil {
		log.WithError(err).Fatal("Could not open storage")
	}

	log.Infof("=== eCash Client v%s (%s) ===", version, commitHash)

	// One-shot mode: test a single guess locally and exit
	if server.guess != "" {
		os.Exit(server.runOneShot())
	}

	// Global notification handler
	server.NotificationHandler, err = notifications.NewHandler(server.Storage)
	if err != nil {
		log.WithError(err).Error("Unable to load notifiers")
	}

	// VERSION checking
	go RunVersionCheck()

	// Start web UI
	wg.Add(1)
	args := webserver.WebServerArgs{
		Storage:         server.Storage,
		Notifier:        server.NotificationHandler,
		BindAddr:        server.webUIAddr,
		BindPort:        server.webUIPort,
		ShutdownChannel: shutdownChannel,
		WG:              &wg,
	}

	server.WebServer, err = webserver.Start(args)
	if err != nil {
		log.WithError(err).Error("Unable to start webserver")
		os.Exit(1)
	}

	// Block until interrupted
	<-shutdownChannel
	log.Warn("Shutting things down...")

	// Wait for threads to finish
	wg.Wait()

	// Clean close DB, logs
	server.Storage.Close()
	closeLogging()

	os.Exit(0)
}

func setupCloseChannel() chan interface{} {

	// Create channels for signals
	signalChan := make(chan os.Signal, 1)
	closingChan := make(chan interface{}, 1)

	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-signalChan
		close(closingChan)
	}()

	return closingChan
}

func (s *ECashServer) parseArgs() {

	// Args
	flag.BoolVar(&s.logDebug, "debug", false, "Enable debug-level logging")
	flag.BoolVar(&s.logTrace, "trace", false, "Enable trace-level logging")

	flag.StringVar(&s.webUIAddr, "webuiaddr", "127.0.0.1", "Address on which to bind web UI server")
	flag.IntVar(&s.webUIPort, "webuiport", 8082, "Port on which to bind web UI server")

	flag.StringVar(&s.dataDir, "datadir", "./", "Location of database")

	flag.Uint64Var(&s.puzzleID, "puzzle", 0, "Puzzle id for one-shot guess testing")
	flag.StringVar(&s.guess, "guess", "", "Test a single guess against -puzzle and exit")
	flag.StringVar(&s.blobFile, "blob-file", "", "JSON file holding {blob, nonce, tag}; overrides the stored puzzle")

	printVersion := flag.Bool("version", false, "Show version and exit")

	flag.Parse()

	// Handle print version and exit
	if *printVersion {
		log.Printf("eCash Client %s (%s)", version, commitHash)
		os.Exit(0)
	}
}
