package main

import (
	"github.com/webstore/storefront/internal/app"
	"github.com/webstore/storefront/internal/config"
)

func main() {
	config.MustInit()
	app.MustNewApp().Run()
}
