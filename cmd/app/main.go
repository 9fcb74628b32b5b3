package main

import (
	"github.com/humanbelnik/kinoswipe/internal/app"
	"github.com/humanbelnik/kinoswipe/internal/config"
)

//go:generate swag init -d ../.. -g cmd/app/main.go -o ../../docs --outputTypes json,yaml --parseInternal

// @title KinoSwipe API
// @version 1.0
// @description Совместный выбор фильма из библиотеки Plex: комнаты, свайпы, совпадения.
// @BasePath /api/v1
// @securityDefinitions.apikey UserToken
// @in header
// @name X-user-token
func main() {
	app.Go(config.Load())
}
