package entity

import (
	"bytes"
	"encoding/json"
	"slices"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// BikeModels are the scooter types an operator can pick.
var BikeModels = []string{"Gyroscooter", "eBikes", "Segway"}

// BikeStatuses are the statuses an operator can set.
var BikeStatuses = []string{"available", "in_maintenance", "rented", "retired"}

const BikeStatusAvailable = "available"

// Amount is a price the backend sends either as a JSON number or a numeric string.
type Amount float64

// UnmarshalJSON accepts 3.5, "3.5" and null.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*a = 0

		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return errors.WithStack(err)
		}
		if strings.TrimSpace(s) == "" {
			*a = 0

			return nil
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return errors.Wrapf(err, "amount %q", s)
		}
		*a = Amount(v)

		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return errors.WithStack(err)
	}
	*a = Amount(v)

	return nil
}

// Label formats the amount with two decimals, or N/A when unset.
func (a Amount) Label() string {
	if a == 0 {
		return "N/A"
	}

	return strconv.FormatFloat(float64(a), 'f', 2, 64)
}

// Bike is a rentable vehicle as returned by the rental API.
type Bike struct {
	BikeID      string            `json:"bikeId"`
	Model       string            `json:"model"`
	Location    string            `json:"location"`
	RatePerHour Amount            `json:"ratePerHour"`
	Description string            `json:"description,omitempty"`
	Status      string            `json:"status"`
	Details     map[string]string `json:"details,omitempty"`
}

// StatusLabel renders the bike status for display.
func (b Bike) StatusLabel() string {
	if b.Status == BikeStatusAvailable {
		return "AVAILABLE"
	}

	return strings.ToUpper(strings.ReplaceAll(b.Status, "_", " "))
}

// DetailPair is one row of the free-form bike details editor.
type DetailPair struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// DetailsToPairs converts a details map into sorted editor rows.
func DetailsToPairs(details map[string]string) []DetailPair {
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	pairs := make([]DetailPair, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, DetailPair{Key: k, Value: details[k]})
	}

	return pairs
}

// BikeDraft is the add/edit form of an operator.
type BikeDraft struct {
	Model       string       `json:"model"`
	Location    string       `json:"location"`
	RatePerHour string       `json:"ratePerHour"`
	Description string       `json:"description"`
	Status      string       `json:"status"`
	Details     []DetailPair `json:"details"`
}

// DraftFromBike fills the edit form from an existing bike.
func DraftFromBike(b Bike) BikeDraft {
	status := b.Status
	if status == "" {
		status = BikeStatusAvailable
	}

	rate := ""
	if b.RatePerHour != 0 {
		rate = strconv.FormatFloat(float64(b.RatePerHour), 'f', -1, 64)
	}

	return BikeDraft{
		Model:       b.Model,
		Location:    b.Location,
		RatePerHour: rate,
		Description: b.Description,
		Status:      status,
		Details:     DetailsToPairs(b.Details),
	}
}

// RequiredFilled reports whether model, location, rate and status are set.
func (d BikeDraft) RequiredFilled() bool {
	return d.Model != "" && d.Location != "" && d.RatePerHour != "" && d.Status != ""
}

// DetailKeys returns the trimmed, non-empty detail keys in form order.
func (d BikeDraft) DetailKeys() []string {
	keys := make([]string, 0, len(d.Details))
	for _, pair := range d.Details {
		if key := strings.TrimSpace(pair.Key); key != "" {
			keys = append(keys, key)
		}
	}

	return keys
}

// HasDuplicateDetailKeys reports whether two rows share a trimmed key.
func (d BikeDraft) HasDuplicateDetailKeys() bool {
	keys := d.DetailKeys()
	seen := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			return true
		}
		seen[k] = struct{}{}
	}

	return false
}

// DetailsMap builds the details object. Rows with an empty key are skipped.
func (d BikeDraft) DetailsMap() map[string]string {
	details := make(map[string]string, len(d.Details))
	for _, pair := range d.Details {
		key := strings.TrimSpace(pair.Key)
		if key == "" {
			continue
		}
		details[key] = strings.TrimSpace(pair.Value)
	}

	return details
}

// BikeInput is the body of POST /bikes and PUT /bikes/{id}.
type BikeInput struct {
	Model       string            `json:"model"`
	Location    string            `json:"location"`
	RatePerHour float64           `json:"ratePerHour"`
	Description string            `json:"description"`
	Status      string            `json:"status"`
	Details     map[string]string `json:"details"`
}

// BikeFilter narrows the public catalogue. Empty fields match everything.
type BikeFilter struct {
	Location string `json:"location" query:"location"`
	Model    string `json:"model" query:"model"`
}

// Matches reports whether a bike passes the filter (exact match).
func (f BikeFilter) Matches(b Bike) bool {
	if f.Location != "" && b.Location != f.Location {
		return false
	}
	if f.Model != "" && b.Model != f.Model {
		return false
	}

	return true
}

// Catalog is the public bike listing with its filter options.
type Catalog struct {
	Bikes     []Bike     `json:"bikes"`
	Locations []string   `json:"locations"`
	Models    []string   `json:"models"`
	Filter    BikeFilter `json:"filter"`
}

// NewCatalog filters bikes and collects the sorted unique options of the full list.
func NewCatalog(all []Bike, filter BikeFilter) Catalog {
	locations := make([]string, 0)
	models := make([]string, 0)
	filtered := make([]Bike, 0, len(all))

	for _, b := range all {
		if !slices.Contains(locations, b.Location) {
			locations = append(locations, b.Location)
		}
		if !slices.Contains(models, b.Model) {
			models = append(models, b.Model)
		}
		if filter.Matches(b) {
			filtered = append(filtered, b)
		}
	}
	slices.Sort(locations)
	slices.Sort(models)

	return Catalog{
		Bikes:     filtered,
		Locations: locations,
		Models:    models,
		Filter:    filter,
	}
}
