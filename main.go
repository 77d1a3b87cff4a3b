package main

import (
	"flag"
	"log/slog"
	"time"

	"FarmBot/bot"
	"FarmBot/bot/views"
	"FarmBot/bot/workflow"
	"FarmBot/bot/workflows/addcrop"
	"FarmBot/bot/workflows/editcrop"
	"FarmBot/bot/workflows/expense"
	"FarmBot/bot/workflows/harvest"
	"FarmBot/bot/workflows/payment"
	"FarmBot/bot/workflows/registration"
	"FarmBot/bot/workflows/treatment"
	"FarmBot/internal/config"
	repository "FarmBot/internal/database"
	"FarmBot/internal/farmcore"
	"FarmBot/internal/http-server/api"
	"FarmBot/internal/lib/logger"
	"FarmBot/internal/lib/sl"
	"FarmBot/internal/service/advisor"
	"FarmBot/internal/ws"
)

func main() {

	configPath := flag.String("conf", "config.yml", "path to config file")
	logPath := flag.String("log", "", "path to log file")
	flag.Parse()

	conf := config.MustLoad(*configPath)
	lg := logger.SetupLogger(conf.Env, *logPath)

	lg.Info("starting farmbot", slog.String("config", *configPath), slog.String("env", conf.Env))
	lg.Debug("debug messages enabled")

	store := farmStore(conf, lg)

	db, err := repository.NewMongoClient(conf, lg)
	if err != nil {
		lg.With(sl.Err(err)).Error("mongo client")
	}

	var storage workflow.StateStorage
	if db != nil {
		storage = workflow.NewMongoStateStorage(db)
		lg.With(
			slog.String("host", conf.Mongo.Host),
			slog.String("port", conf.Mongo.Port),
			slog.String("database", conf.Mongo.Database),
		).Info("mongo draft storage initialized")
	} else {
		storage = workflow.NewMemoryStateStorage()
		lg.Warn("mongo disabled, drafts held in memory")
	}

	hub := ws.NewHub(lg.With(sl.Module("ws")))
	go hub.Run()

	engine := workflow.NewWorkflowEngine(storage, lg.With(sl.Module("engine")))
	engine.RegisterWorkflow(registration.NewRegistrationWorkflow(store, lg))
	engine.RegisterWorkflow(addcrop.NewAddCropWorkflow(store, lg))
	engine.RegisterWorkflow(editcrop.NewEditCropWorkflow(store, lg))
	engine.RegisterWorkflow(harvest.NewHarvestWorkflow(store, hub, lg))
	engine.RegisterWorkflow(treatment.NewTreatmentWorkflow(store, lg))
	engine.RegisterWorkflow(expense.NewExpenseWorkflow(store, lg))
	engine.RegisterWorkflow(payment.NewPaymentWorkflow(store, hub, lg))

	screens := views.New(store, engine, lg.With(sl.Module("views")))

	adviser := advisor.New(conf, store, lg)
	if adviser != nil {
		lg.With(sl.Secret("openai_key", conf.OpenAI.ApiKey)).Info("advisor initialized")
	}

	if conf.Telegram.Enabled {
		farmBot, err := bot.NewFarmBot(conf.Telegram.BotName, conf.Telegram.ApiKey, engine, screens, store, advisorOrNil(adviser), lg)
		if err != nil {
			lg.With(sl.Err(err)).Error("failed to initialize telegram bot")
		} else {
			go func() {
				if err := farmBot.Start(); err != nil {
					lg.With(sl.Err(err)).Error("telegram bot error")
				}
			}()
		}
	}

	if db == nil {
		lg.Error("admin api needs mongo for api keys, not starting")
		select {}
	}

	// *** blocking start with http server ***
	err = api.New(conf, lg, store, db, hub)
	if err != nil {
		lg.Error("server start", sl.Err(err))
		return
	}
	lg.Error("service stopped")
}

func farmStore(conf *config.Config, lg *slog.Logger) *farmcore.Service {
	timeout := time.Duration(conf.Supabase.Timeout) * time.Second
	return farmcore.New(conf.Supabase.BaseURL, conf.Supabase.ApiKey, timeout, lg)
}

// advisorOrNil keeps a nil *Service from turning into a non-nil
// interface value.
func advisorOrNil(s *advisor.Service) bot.Advisor {
	if s == nil {
		return nil
	}
	return s
}
