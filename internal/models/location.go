package models

import "strings"

type Location struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Price int    `json:"price"`
}

// Locations is the fixed list of fields sessions can be booked at.
var Locations = []Location{
	{ID: 1, Name: "Centennial Field", Price: 0},
	{ID: 2, Name: "Schusler", Price: 5},
	{ID: 3, Name: "Hannover Estates Park", Price: 10},
}

func FindLocationByID(id int64) *Location {
	for i := range Locations {
		if Locations[i].ID == id {
			loc := Locations[i]
			return &loc
		}
	}
	return nil
}

// FindLocationByName matches on the display name, which is what bookings carry.
func FindLocationByName(name string) *Location {
	name = strings.TrimSpace(name)
	for i := range Locations {
		if strings.EqualFold(Locations[i].Name, name) {
			loc := Locations[i]
			return &loc
		}
	}
	return nil
}
