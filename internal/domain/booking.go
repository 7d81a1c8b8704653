package domain

import "time"

// RoomBooking is a room reservation made by an authenticated user.
type RoomBooking struct {
	Reference  string
	Username   string
	Room       int
	ClientName string
	Phone      string
	CreatedAt  time.Time
}

// FoodOrder is a restaurant order made by an authenticated user.
type FoodOrder struct {
	Reference  string
	Username   string
	Category   int
	ClientName string
	Phone      string
	CreatedAt  time.Time
}

// EventBooking is a banquet or event reservation.
type EventBooking struct {
	Reference  string
	Username   string
	EventType  int
	ClientName string
	Phone      string
	Date       time.Time
	Guests     int
	CreatedAt  time.Time
}

// Rooms are the bookable room types, numbered from 1.
var Rooms = []string{
	"Tower Exclusive",
	"ITC One (single occupancy)",
	"Luxury Suite",
	"ITC Royal",
	"Tower Exclusive (single occupancy)",
}

// FoodCategories are the menu sections, numbered from 1.
var FoodCategories = []string{
	"Drinks",
	"Vegetarian food",
	"Non-vegetarian food",
	"Chinese food",
}

// EventTypes are the events the hotel organizes, numbered from 1.
var EventTypes = []string{
	"Birthday party",
	"Wedding",
	"Anniversary",
	"Holiday party",
	"Conference",
}
