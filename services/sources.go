package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/MEMOUE/PrrojetMgh/models"
)

// RoomSource is the room catalog collaborator.
type RoomSource interface {
	FetchRooms(ctx context.Context) ([]models.Room, error)
}

// ReservationSource is the reservation repository collaborator.
type ReservationSource interface {
	FetchReservations(ctx context.Context) ([]models.Reservation, error)
}

// GormRoomSource reads the room catalog from Postgres.
type GormRoomSource struct {
	DB *gorm.DB
}

func (s GormRoomSource) FetchRooms(ctx context.Context) ([]models.Room, error) {
	var rooms []models.Room
	if err := s.DB.WithContext(ctx).Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}

// GormReservationSource reads reservations from Postgres with their client,
// which the planning board displays on each stay bar.
type GormReservationSource struct {
	DB *gorm.DB
}

func (s GormReservationSource) FetchReservations(ctx context.Context) ([]models.Reservation, error) {
	var reservations []models.Reservation
	if err := s.DB.WithContext(ctx).Preload("Client").Find(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}
