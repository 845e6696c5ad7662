package main

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/Farini/SkyNation-sub005/internal/app/stationbuild"
	"github.com/Farini/SkyNation-sub005/internal/bootstrap"
	"github.com/Farini/SkyNation-sub005/internal/config"
	"github.com/Farini/SkyNation-sub005/internal/domain/catalog"
)

func TestResolveConfigPath_UsesEnv(t *testing.T) {
	t.Setenv("SKYNATION_CONFIG", " /etc/skynation.yaml ")
	if got := resolveConfigPath(); got != "/etc/skynation.yaml" {
		t.Fatalf("resolveConfigPath()=%q want %q", got, "/etc/skynation.yaml")
	}
	t.Setenv("SKYNATION_CONFIG", "")
	if got := resolveConfigPath(); got != "" {
		t.Fatalf("resolveConfigPath()=%q want empty", got)
	}
}

func TestAccountPeriodically_StopsWithContext(t *testing.T) {
	cfg := config.Default()
	cat := catalog.Default()
	repos, err := bootstrap.OpenRepos(context.Background(), cfg)
	if err != nil {
		t.Fatalf("OpenRepos error: %v", err)
	}
	past := time.Now().Add(-3 * time.Hour)
	st, err := stationbuild.Starter("beta", 3, past, cat)
	if err != nil {
		t.Fatalf("starter: %v", err)
	}
	if _, err := bootstrap.CreateStation(context.Background(), repos.Stations, st); err != nil {
		t.Fatalf("create: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	uc := bootstrap.AccountingUseCase(cfg, cat, repos, logger)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		accountPeriodically(ctx, uc, 10*time.Millisecond, logger)
		close(done)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for {
		got, err := repos.Stations.Get(context.Background(), "beta")
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.Version > 1 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("scheduled pass never ran")
		}
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("accountPeriodically did not stop")
	}
}
