package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/user/albumgram/internal/album"
	"github.com/user/albumgram/internal/batch"
	"github.com/user/albumgram/internal/session"
	"github.com/user/albumgram/internal/telegram"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the albumgram daemon",
	RunE:  runServe,
}

func writePIDFile(dataDir string) (string, error) {
	pidPath := filepath.Join(dataDir, "albumgram.pid")
	pid := os.Getpid()
	if err := os.WriteFile(pidPath, []byte(strconv.Itoa(pid)+"\n"), 0644); err != nil {
		return "", fmt.Errorf("write PID file: %w", err)
	}
	return pidPath, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	setupLogging(cfg)

	if cfg.Telegram.Token == "" {
		return fmt.Errorf("telegram token not configured (set telegram.token or TELEGRAM_BOT_TOKEN)")
	}

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	pidPath, err := writePIDFile(cfg.DataDir)
	if err != nil {
		return err
	}
	defer os.Remove(pidPath)

	bot, err := telegram.NewBot(cfg.Telegram.Token)
	if err != nil {
		return fmt.Errorf("create telegram bot: %w", err)
	}
	transport := telegram.NewTransport(bot)

	sessions := session.NewStore(cfg.IdleTimeout(), cfg.SweepInterval())
	sessions.Start()
	defer sessions.Stop()

	scheduler := batch.NewScheduler(int64(cfg.Album.MaxConcurrentFlushes), func(chatID int64) {
		transport.SendText(chatID, "❌ An error occurred while creating the album. Please try again.")
	})
	defer scheduler.Stop()

	dispatcher := album.NewDispatcher(transport, sessions, scheduler, album.DispatcherConfig{
		Debounce:     cfg.Debounce(),
		MaxPerAlbum:  cfg.Album.MaxItemsPerAlbum,
		CleanupDelay: cfg.CleanupDelay(),
	})
	captions := album.NewCaptionBinder(transport, sessions)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	adapter := telegram.NewAdapter(bot, dispatcher, captions)
	go adapter.Start(ctx)

	slog.Info("albumgram started",
		"data_dir", cfg.DataDir,
		"log_level", cfg.LogLevel,
		"debounce_seconds", cfg.Album.DebounceSeconds,
		"max_items_per_album", cfg.Album.MaxItemsPerAlbum,
		"idle_timeout_minutes", cfg.Session.IdleTimeoutMinutes,
		"pid_file", pidPath,
	)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan

	slog.Info("shutting down", "signal", sig)
	return nil
}
