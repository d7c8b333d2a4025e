package app

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/five82/takedown/internal/athlete"
	"github.com/five82/takedown/internal/catalog"
	"github.com/five82/takedown/internal/config"
	"github.com/five82/takedown/internal/state"
)

func TestResolveConfig_Overrides(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	missing := filepath.Join(home, "none.toml")

	tests := []struct {
		name       string
		opts       Options
		wantSource string
		wantLayout string
	}{
		{"defaults", Options{ConfigPath: missing}, config.SourceFixture, "admin"},
		{"catalog implies file", Options{ConfigPath: missing, CatalogPath: "~/c.yaml"}, config.SourceFile, "admin"},
		{"remote implies remote", Options{ConfigPath: missing, RemoteURL: "10.0.0.1:7611"}, config.SourceRemote, "admin"},
		{"explicit source wins", Options{ConfigPath: missing, Source: "fixture", RemoteURL: "x:1"}, config.SourceFixture, "admin"},
		{"layout", Options{ConfigPath: missing, Layout: "Review"}, config.SourceFixture, "review"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ResolveConfig(tt.opts)
			if err != nil {
				t.Fatalf("ResolveConfig returned error: %v", err)
			}
			if cfg.Source != tt.wantSource || cfg.Layout != tt.wantLayout {
				t.Fatalf("source=%q layout=%q, want %q %q", cfg.Source, cfg.Layout, tt.wantSource, tt.wantLayout)
			}
		})
	}

	cfg, _ := ResolveConfig(Options{ConfigPath: missing, CatalogPath: "~/c.yaml"})
	if cfg.CatalogPath != filepath.Join(home, "c.yaml") {
		t.Fatalf("CatalogPath = %q", cfg.CatalogPath)
	}
}

func TestResolveConfig_RejectsBadOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	for _, opts := range []Options{{Source: "db"}, {Layout: "grid"}} {
		if _, err := ResolveConfig(opts); !errors.Is(err, config.ErrInvalidConfig) {
			t.Fatalf("ResolveConfig(%+v) error = %v, want ErrInvalidConfig", opts, err)
		}
	}
}

func TestBuildSource(t *testing.T) {
	src, static, err := BuildSource(config.Config{Source: config.SourceFixture})
	if err != nil || static != nil {
		t.Fatalf("fixture: static=%v err=%v", static, err)
	}
	cat, err := src.FetchCatalog(context.Background())
	if err != nil || cat.Primary.Name != "Jordan Burroughs" {
		t.Fatalf("fixture catalog = %v, %v", cat, err)
	}

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := catalog.Write(path, athlete.Fixture()); err != nil {
		t.Fatalf("Write: %v", err)
	}
	_, static, err = BuildSource(config.Config{Source: config.SourceFile, CatalogPath: path})
	if err != nil || static == nil {
		t.Fatalf("file: static=%v err=%v", static, err)
	}

	if _, _, err := BuildSource(config.Config{Source: config.SourceFile, CatalogPath: path + ".missing"}); err == nil {
		t.Fatal("expected error for missing catalog file")
	}

	src, _, err = BuildSource(config.Config{Source: config.SourceRemote, RemoteURL: "127.0.0.1:1"})
	if err != nil {
		t.Fatalf("remote: %v", err)
	}
	if _, ok := src.(*athlete.Client); !ok {
		t.Fatalf("remote source type = %T", src)
	}
}

func TestSourceLabel(t *testing.T) {
	if got := SourceLabel(config.Config{Source: config.SourceRemote, RemoteURL: "h:1"}); got != "remote h:1" {
		t.Fatalf("SourceLabel = %q", got)
	}
	if got := SourceLabel(config.Config{}); got != "fixture" {
		t.Fatalf("SourceLabel = %q", got)
	}
}

func TestWatchCatalog_PublishesReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := catalog.Write(path, athlete.Fixture()); err != nil {
		t.Fatalf("Write: %v", err)
	}

	static := athlete.NewStatic(athlete.Fixture())
	store := &state.Store{}

	ctx, cancel := context.WithCancel(context.Background())
	poller := StartPoller(ctx, store, static, time.Hour, nil)
	done, err := watchCatalog(ctx, path, static, store, poller, zap.NewNop())
	if err != nil {
		t.Fatalf("watchCatalog: %v", err)
	}

	updated := athlete.Fixture()
	updated.Primary.WeightClass = "79 kg"
	if err := catalog.Write(path, updated); err != nil {
		t.Fatalf("Write: %v", err)
	}

	waitFor(t, func() bool {
		snap := store.Snapshot()
		return snap.HasCatalog && snap.Catalog.Primary.WeightClass == "79 kg"
	})

	cancel()
	<-done
	<-poller.Done()
}
