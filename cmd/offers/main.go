package main

import (
	"voyago/internal/offers/handler"
	"voyago/internal/offers/repository"
	"voyago/internal/offers/service"
	"voyago/pkg/app"
	"voyago/pkg/config"
)

const ServiceName = "offers"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Offers service")
	offerService := initServices(cfg)
	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewOfferHandler(offerService, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config) service.OfferService {
	offerRepo := repository.NewMongoOfferRepository(cfg)
	offerService := service.NewOfferService(offerRepo, cfg)

	cfg.Log.Info("Offer service initialized", "database", cfg.MongoDatabaseName)
	return offerService
}
