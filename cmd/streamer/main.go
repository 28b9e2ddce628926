package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/livecard/larkstream/internal/app"
	"github.com/livecard/larkstream/internal/config"
	"github.com/livecard/larkstream/internal/logger"
	"github.com/livecard/larkstream/internal/session"
	"github.com/livecard/larkstream/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

// streamer reads lines from stdin and streams the accumulated text to one
// recipient as a single live card, finalizing the card on EOF.
func main() {
	printBuildInfo()

	log := logger.NewLogger("larkstream")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	runtime := app.New(cfg, log)

	creds := models.Credentials{
		AppID:     cfg.App.AppID,
		AppSecret: cfg.App.AppSecret,
		Domain:    cfg.App.Domain,
	}

	sess, err := runtime.Session(cfg.App.AccountID, creds, session.Options{
		Throttle: cfg.Stream.UpdateThrottle,
		OnError: func(err error) {
			log.Warn().Err(err).Msg("card update failed")
		},
		Logger: log.WithSession(cfg.App.AccountID),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("create session")
	}

	ctx := context.Background()
	idType := models.ReceiveIDType(cfg.Stream.ReceiveIDType)
	if err = sess.Start(ctx, cfg.Stream.ReceiveID, idType); err != nil {
		log.Fatal().Err(err).Msg("start session")
	}

	var body strings.Builder
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		body.WriteString(scanner.Text())
		body.WriteByte('\n')
		sess.Update(body.String())
	}
	if err = scanner.Err(); err != nil {
		log.Error().Err(err).Msg("read stdin")
	}

	sess.Close()
	log.Info().
		Str("card_id", sess.CardID()).
		Str("message_id", sess.MessageID()).
		Int("delivery_errors", sess.ErrorCount()).
		Msg("stream finished")
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
