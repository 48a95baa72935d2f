package main

import (
	"context"

	"github.com/socialmux/socialmux/events"
	"github.com/socialmux/socialmux/server"
	"github.com/socialmux/socialmux/server/middlewares"
	"github.com/socialmux/socialmux/server/rest"
	. "github.com/socialmux/socialmux/utils"
	"github.com/socialmux/socialmux/utils/dotenv"
	. "github.com/socialmux/socialmux/utils/log"
)

func init() {
	// Middlewares
	middlewares.Setup()

	Log.Info("api server initialized")
}

func cleanup() {
	CloseProfiler()
	CloseTracer()
	Log.Info("api server shutdown")
}

func main() {
	defer cleanup()

	if err := dotenv.LoadDotEnvs(); err != nil {
		panic(err)
	}

	db, err := GetDBConnection()
	if err != nil {
		Log.Fatalln("cannot connect to DB: ", err)
	}
	DatabaseSetupAndMigration(db)

	// Redis only decorates responses with read status. The server still works
	// without it, so a failed connection only degrades, never aborts.
	statusStore, err := GetRedisStatusStore()
	if err != nil {
		Log.Warnln("redis unavailable, read status decoration disabled: ", err)
		statusStore = nil
	}

	bus := events.NewEventBus()
	recorder := events.NewNotificationRecorder(db, bus)
	go func() {
		if err := recorder.Run(context.Background()); err != nil {
			Log.Errorln("notification recorder stopped: ", err)
		}
	}()

	router := server.NewRouter(&rest.Handler{
		DB:          db,
		StatusStore: statusStore,
		EventBus:    bus,
	})

	Log.Info("api server starts up")
	router.Run(":8080")
}
