package appointmentRepo

import (
	"zapagenda/database"

	"go.mongodb.org/mongo-driver/mongo"
)

// MongoAppointmentRepo implements AppointmentRepository using MongoDB.
type MongoAppointmentRepo struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoAppointmentRepo constructs a new instance of MongoAppointmentRepo.
func NewMongoAppointmentRepo() *MongoAppointmentRepo {
	db := database.MongoClient.Database("zapagenda")
	return &MongoAppointmentRepo{
		client: database.MongoClient,
		coll:   db.Collection("appointments"),
	}
}
