package main

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// App wires the deck, calculator session and exporter together. The two
// halves share no state; App only decides when the deck should move after
// a calculator action.
type App struct {
	Config   *Config
	Logger   *zap.Logger
	Deck     *Deck
	Session  *Session
	Records  *RecordStore
	Exporter *Exporter

	closers []func() error
}

// NewApp builds the application from config. A nil scheduler uses real timers.
func NewApp(config *Config, logger *zap.Logger, scheduler Scheduler) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	app := &App{Config: config, Logger: logger}

	kv, err := app.openStorage(config.Storage)
	if err != nil {
		return nil, err
	}
	app.Records = NewRecordStore(kv, config.Storage.Key, logger.Named("store"))
	app.Session = NewSession(app.Records, config.TierSet(), config.Pricing.DefaultTier)

	slides, err := LoadSlides(config.Deck.SlidesFile)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Deck = NewDeck(BuildPages(slides), config.Deck.SettleDelay(), scheduler)

	renderer, err := RendererFor(config.Report.Format)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Exporter = &Exporter{
		Renderer: renderer,
		Saver:    DirSaver{Dir: config.Report.ExportDir},
		Opener:   SystemOpener{},
		Brand:    config.Brand,
		Share:    config.Share,
		Currency: config.Report.CurrencyLabel,
		Logger:   logger.Named("export"),
	}
	return app, nil
}

func (a *App) openStorage(sc StorageConfig) (KVStore, error) {
	switch sc.Backend {
	case BackendMemory:
		return NewMemoryKV(), nil
	case BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:         sc.Redis.Addr,
			Password:     sc.Redis.Password,
			DB:           sc.Redis.DB,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, fmt.Errorf("redis ping failed: %w", err)
		}
		kv := NewRedisKV(client)
		a.closers = append(a.closers, kv.Close)
		return kv, nil
	case BackendFile, "":
		return NewFileKV(sc.Path), nil
	}
	return nil, fmt.Errorf("unknown storage backend %q", sc.Backend)
}

// Navigate runs a deck command and counts accepted turns
func (a *App) Navigate(cmd Command) bool {
	ok := a.Deck.Dispatch(cmd)
	if ok {
		direction := "forward"
		if cmd == CommandRetreat {
			direction = "backward"
		}
		pageTurns.WithLabelValues(direction).Inc()
	}
	return ok
}

// HandleKey runs the command the mounted deck binds to key
func (a *App) HandleKey(key string) bool {
	cmd, ok := a.Deck.Binding(key)
	if !ok {
		return false
	}
	return a.Navigate(cmd)
}

// SaveForm saves the form and, when the form page is showing, turns to the
// calculator so the saved figures are visible.
func (a *App) SaveForm(ctx context.Context) (BusinessRecord, error) {
	record, err := a.Session.Save(ctx)
	if err != nil {
		return BusinessRecord{}, err
	}
	recordsSaved.Inc()
	a.Logger.Info("restaurant saved", zap.String("restaurant", record.RestaurantName))

	if a.Deck.Current().Kind == PageForm {
		a.Navigate(CommandAdvance)
	}
	return record, nil
}

// Download exports the current record's report through the exporter's saver
func (a *App) Download(ctx context.Context) (ExportResult, error) {
	return a.Exporter.Download(ctx, a.Session.Current(), a.Session.Tier())
}

// Share exports the current record's report and opens the share link
func (a *App) Share(ctx context.Context) (ShareResult, error) {
	return a.Exporter.ShareViaMessage(ctx, a.Session.Current(), a.Session.Tier())
}

// Close unmounts the deck and releases storage connections
func (a *App) Close() error {
	if a.Deck != nil {
		a.Deck.Close()
	}
	var firstErr error
	for _, c := range a.closers {
		if err := c(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	a.closers = nil
	return firstErr
}
