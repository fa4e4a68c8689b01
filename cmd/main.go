package main

import (
	"github.com/foodfetch/storefront/internal/app"
	"github.com/foodfetch/storefront/internal/config"
)

func main() {
	config.MustInit()
	app.MustNewApp().Run()
}
