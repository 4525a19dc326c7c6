// @title PropertyHub API
// @version 1.0
// @description Real-estate listing marketplace: listings, search, favorites, inquiries, agents and administration.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

func main() {
	cfg := loadSettings()

	app := NewApp(cfg)
	defer app.cleanup()

	app.InitializeServer()
	app.StartServer()
}
