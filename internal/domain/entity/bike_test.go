package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmount_UnmarshalJSON(t *testing.T) {
	var bike Bike
	require.NoError(t, json.Unmarshal([]byte(`{"bikeId":"b1","ratePerHour":"4.5"}`), &bike))
	assert.Equal(t, Amount(4.5), bike.RatePerHour)

	require.NoError(t, json.Unmarshal([]byte(`{"bikeId":"b1","ratePerHour":3}`), &bike))
	assert.Equal(t, Amount(3), bike.RatePerHour)

	require.NoError(t, json.Unmarshal([]byte(`{"bikeId":"b1","ratePerHour":null}`), &bike))
	assert.Equal(t, Amount(0), bike.RatePerHour)

	assert.Error(t, json.Unmarshal([]byte(`{"ratePerHour":"cheap"}`), &bike))
}

func TestBike_Labels(t *testing.T) {
	assert.Equal(t, "AVAILABLE", Bike{Status: "available"}.StatusLabel())
	assert.Equal(t, "IN MAINTENANCE", Bike{Status: "in_maintenance"}.StatusLabel())
	assert.Equal(t, "4.50", Amount(4.5).Label())
	assert.Equal(t, "N/A", Amount(0).Label())
}

func TestBikeDraft_DetailKeys(t *testing.T) {
	draft := BikeDraft{Details: []DetailPair{
		{Key: " battery ", Value: " 48V "},
		{Key: "", Value: "ignored"},
		{Key: "range", Value: "40km"},
	}}

	assert.False(t, draft.HasDuplicateDetailKeys())
	assert.Equal(t, map[string]string{"battery": "48V", "range": "40km"}, draft.DetailsMap())

	draft.Details = append(draft.Details, DetailPair{Key: "battery  ", Value: "52V"})
	assert.True(t, draft.HasDuplicateDetailKeys())
}

func TestDraftFromBike(t *testing.T) {
	draft := DraftFromBike(Bike{
		Model:       "Segway",
		Location:    "Halifax",
		RatePerHour: 6.25,
		Details:     map[string]string{"range": "30km", "battery": "36V"},
	})

	assert.Equal(t, "6.25", draft.RatePerHour)
	assert.Equal(t, BikeStatusAvailable, draft.Status)
	assert.Equal(t, []DetailPair{{Key: "battery", Value: "36V"}, {Key: "range", Value: "30km"}}, draft.Details)
	assert.True(t, draft.RequiredFilled())
}

func TestNewCatalog(t *testing.T) {
	bikes := []Bike{
		{BikeID: "1", Model: "Segway", Location: "Halifax"},
		{BikeID: "2", Model: "eBikes", Location: "Dartmouth"},
		{BikeID: "3", Model: "Segway", Location: "Dartmouth"},
		{BikeID: "4", Model: "Gyroscooter", Location: "Halifax"},
	}

	catalog := NewCatalog(bikes, BikeFilter{Location: "Dartmouth", Model: "Segway"})

	require.Len(t, catalog.Bikes, 1)
	assert.Equal(t, "3", catalog.Bikes[0].BikeID)
	assert.Equal(t, []string{"Dartmouth", "Halifax"}, catalog.Locations)
	assert.Equal(t, []string{"Gyroscooter", "Segway", "eBikes"}, catalog.Models)

	assert.Len(t, NewCatalog(bikes, BikeFilter{}).Bikes, 4)
}
