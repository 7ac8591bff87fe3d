package main

import (
	offersrepository "voyago/internal/offers/repository"
	offersservice "voyago/internal/offers/service"
	"voyago/internal/reservations/events"
	"voyago/internal/reservations/handler"
	"voyago/internal/reservations/repository"
	"voyago/internal/reservations/service"
	"voyago/pkg/app"
	"voyago/pkg/config"
	"voyago/pkg/kafka"
	kafka_config "voyago/pkg/kafka/config"
)

const (
	ServiceName = "reservations"

	EventsTopic    = "voyago.reservations.events"
	EventsDLQTopic = "voyago.reservations.events.dlq"
)

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Reservations service")

	publisher, producer := initPublisher(cfg)
	if producer != nil {
		defer func() {
			if err := producer.Close(); err != nil {
				cfg.Log.Error("Failed to close Kafka producer", "error", err)
			}
		}()
	}

	reservationService := initServices(cfg, publisher)
	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewReservationHandler(reservationService, cfg.Log))
	serverApp.Run()
}

func initPublisher(cfg *config.Config) (events.Publisher, *kafka.Producer) {
	kafkaCfg := kafka_config.Load()
	if !kafkaCfg.Enabled() {
		cfg.Log.Info("Kafka brokers not configured, reservation events disabled")
		return events.NewNoopPublisher(), nil
	}

	producer, err := kafka.NewProducer(kafkaCfg, EventsTopic, EventsDLQTopic)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}

	cfg.Log.Info("Kafka producer initialized", "topic", EventsTopic, "brokers", kafkaCfg.Brokers)
	return events.NewKafkaPublisher(producer, cfg.Log), producer
}

func initServices(cfg *config.Config, publisher events.Publisher) service.ReservationService {
	offerRepo := offersrepository.NewMongoOfferRepository(cfg)
	offerService := offersservice.NewOfferService(offerRepo, cfg)

	reservationRepo := repository.NewMongoReservationRepository(cfg)
	lockRepo := repository.NewMongoReservationLockRepository(cfg)
	reservationService := service.NewReservationService(
		reservationRepo,
		lockRepo,
		offerService,
		publisher,
		cfg,
	)

	cfg.Log.Info("Reservation service initialized", "database", cfg.MongoDatabaseName)
	return reservationService
}
