package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"zapagenda/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (repo *MongoAppointmentRepo) find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := repo.coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("error querying appointments: %w", err)
	}
	defer cursor.Close(ctx)

	var appts []models.Appointment
	for cursor.Next(ctx) {
		var a models.Appointment
		if err := cursor.Decode(&a); err != nil {
			return nil, fmt.Errorf("error decoding appointment: %w", err)
		}
		appts = append(appts, a)
	}
	return appts, cursor.Err()
}

// ListByWindow returns appointments whose start lies in [start, end),
// ordered chronologically.
func (repo *MongoAppointmentRepo) ListByWindow(ctx context.Context, start, end time.Time) ([]models.Appointment, error) {
	filter := bson.M{"start_time": bson.M{"$gte": start, "$lt": end}}
	return repo.find(ctx, filter, options.Find().SetSort(bson.M{"start_time": 1}))
}

// ListScheduledBetween returns scheduled appointments with a client phone
// whose start lies in (after, until].
func (repo *MongoAppointmentRepo) ListScheduledBetween(ctx context.Context, after, until time.Time) ([]models.Appointment, error) {
	filter := bson.M{
		"start_time":   bson.M{"$gt": after, "$lte": until},
		"status":       models.StatusScheduled,
		"client_phone": bson.M{"$ne": ""},
	}
	return repo.find(ctx, filter, options.Find().SetSort(bson.M{"start_time": 1}))
}

// FindAwaitingByPhone returns the earliest awaiting-confirmation
// appointment for the phone.
func (repo *MongoAppointmentRepo) FindAwaitingByPhone(ctx context.Context, phone string) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"client_phone": phone, "status": models.StatusAwaiting}
	opts := options.FindOne().SetSort(bson.M{"start_time": 1})

	var appt models.Appointment
	if err := repo.coll.FindOne(ctx, filter, opts).Decode(&appt); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching awaiting appointment for %s: %w", phone, err)
	}
	return &appt, nil
}

// NextScheduledByPhone returns the nearest future scheduled appointment
// for the phone.
func (repo *MongoAppointmentRepo) NextScheduledByPhone(ctx context.Context, phone string, now time.Time) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"client_phone": phone,
		"status":       models.StatusScheduled,
		"start_time":   bson.M{"$gte": now},
	}
	opts := options.FindOne().SetSort(bson.M{"start_time": 1})

	var appt models.Appointment
	if err := repo.coll.FindOne(ctx, filter, opts).Decode(&appt); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching next appointment for %s: %w", phone, err)
	}
	return &appt, nil
}

// ListAll returns every appointment ordered by start time.
func (repo *MongoAppointmentRepo) ListAll(ctx context.Context) ([]models.Appointment, error) {
	return repo.find(ctx, bson.M{}, options.Find().SetSort(bson.M{"start_time": 1}))
}
