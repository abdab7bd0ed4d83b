package main

import "storefront_backend/internal/app"

func main() {
	app.Run()
}
