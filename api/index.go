package api

import (
	"context"
	"net/http"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/DivyaPradhan23/grocery-backend/app"
	"github.com/DivyaPradhan23/grocery-backend/config"
)

var (
	application *app.App
	initErr     error
	once        sync.Once
)

func initApp() {
	once.Do(func() {
		cfg, err := config.Load()
		if err != nil {
			initErr = err
			return
		}
		config.SetupLogger(cfg)
		application, initErr = app.New(context.Background(), cfg)
	})
}

// Handler is the serverless entry point; the application is built once per
// instance and reused across invocations.
func Handler(w http.ResponseWriter, r *http.Request) {
	initApp()
	if initErr != nil {
		log.WithError(initErr).Error("application failed to start")
		http.Error(w, `{"success":false,"message":"Service unavailable"}`, http.StatusServiceUnavailable)
		return
	}
	application.Router.ServeHTTP(w, r)
}
