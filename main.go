package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"fyne.io/fyne/v2/app"
	"github.com/hashicorp/go-retryablehttp"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/opencode-ai/desktop/internal/appdirs"
	"github.com/opencode-ai/desktop/internal/github"
	"github.com/opencode-ai/desktop/internal/server"
	"github.com/opencode-ai/desktop/internal/singleinstance"
	"github.com/opencode-ai/desktop/internal/updater"
)

const (
	appID    = "ai.opencode.desktop"
	lockName = "opencode-desktop"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "0.0.0"

func main() {
	flag.Parse()
	slog.SetLogLoggerLevel(levelFlag.value)
	if *versionFlag {
		fmt.Println(version)
		return
	}
	ad, err := appdirs.New()
	if err != nil {
		log.Fatal(err)
	}
	if *showDirsFlag {
		for _, s := range ad.Describe() {
			fmt.Println(s)
		}
		return
	}
	if *uninstallFlag {
		fmt.Print("Are you sure you want to uninstall this app and delete all user files (y/N)?")
		var input string
		fmt.Scanln(&input)
		if strings.ToLower(input) == "y" {
			if err := ad.DeleteAll(); err != nil {
				log.Fatal(err)
			}
			fmt.Println("App uninstalled")
		} else {
			fmt.Println("Aborted")
		}
		return
	}
	if *logFileFlag {
		log.SetOutput(&lumberjack.Logger{
			Filename:   ad.LogFile(),
			MaxSize:    50, // megabytes
			MaxBackups: 3,
		})
	}
	release, err := singleinstance.Lock(lockName)
	if errors.Is(err, singleinstance.ErrAlreadyRunning) {
		fmt.Println("opencode desktop is already running")
		os.Exit(1)
	}
	if err != nil {
		log.Fatal(err)
	}
	defer release()

	rhc := retryablehttp.NewClient()
	rhc.Logger = slog.Default()
	rhc.ResponseLogHook = logResponse
	rhc.RetryMax = 2

	p, err := newPlatform(ad)
	if err != nil {
		log.Fatal(err)
	}
	fyneApp := app.NewWithID(appID)
	s := newShell(fyneApp, p, server.NewClient(rhc), updater.New(github.NewClient(rhc), version))
	s.init()
	go func() {
		if err := s.startupChecks(context.Background(), *serverFlag); err != nil {
			slog.Warn("Startup checks failed", "error", err)
		}
	}()
	s.showAndRun()
}
