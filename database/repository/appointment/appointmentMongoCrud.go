package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"zapagenda/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Create inserts a new appointment. The overlap re-check and the insert
// run inside one transaction so two concurrent bookings for the same
// window cannot both succeed.
func (repo *MongoAppointmentRepo) Create(ctx context.Context, appt *models.Appointment) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	session, err := repo.client.StartSession()
	if err != nil {
		return fmt.Errorf("error starting session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		filter := bson.M{
			"start_time": bson.M{"$lt": appt.End},
			"end_time":   bson.M{"$gt": appt.Start},
			"status":     bson.M{"$ne": models.StatusCanceled},
		}
		n, err := repo.coll.CountDocuments(sc, filter)
		if err != nil {
			return nil, fmt.Errorf("error checking overlap: %w", err)
		}
		if n > 0 {
			return nil, ErrSlotConflict
		}
		if _, err := repo.coll.InsertOne(sc, appt); err != nil {
			return nil, fmt.Errorf("error creating appointment: %w", err)
		}
		return nil, nil
	})
	return err
}

// GetByID retrieves an appointment by its ID.
func (repo *MongoAppointmentRepo) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var appt models.Appointment
	if err := repo.coll.FindOne(ctx, bson.M{"id": id}).Decode(&appt); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching appointment %s: %w", id, err)
	}
	return &appt, nil
}

// UpdateStatus transitions an appointment from one status to another.
// The filter carries the expected source status so a stale transition
// fails with ErrStatusMismatch instead of overwriting.
func (repo *MongoAppointmentRepo) UpdateStatus(ctx context.Context, id, from, to string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := repo.coll.UpdateOne(ctx,
		bson.M{"id": id, "status": from},
		bson.M{"$set": bson.M{"status": to}},
	)
	if err != nil {
		return fmt.Errorf("error updating status for %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrStatusMismatch
	}
	return nil
}

// Delete removes an appointment record.
func (repo *MongoAppointmentRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := repo.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("error deleting appointment %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
