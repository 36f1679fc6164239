package itinerary

import (
	"fmt"
	"strings"

	"winetrail/models"
)

// SelectionError rejects a selection that does not fit the winery's catalog entry.
type SelectionError struct {
	WineryID string
	Field    string
	Reason   string
}

func (e *SelectionError) Error() string {
	if e.WineryID == "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("winery %s: %s: %s", e.WineryID, e.Field, e.Reason)
}

func selectionErr(w models.Winery, field, reason string) error {
	return &SelectionError{WineryID: w.ID, Field: field, Reason: reason}
}

// ResolveSelection checks next against the winery and returns the selection to commit.
// A time must be one of the active tasting's slots and fixes the date. A date that is not
// one of the slot dates rejects the whole update: prev is returned as is, so the store
// sees no change. Option prices are taken from the catalog.
func ResolveSelection(w models.Winery, idx *SlotIndex, prev, next models.BookingSelection) (models.BookingSelection, error) {
	tasting, ok := w.Tasting(next.TastingIndex)
	if !ok {
		return prev, selectionErr(w, "selectedTastingIndex", fmt.Sprintf("no tasting at index %d", next.TastingIndex))
	}

	out := models.BookingSelection{TastingIndex: next.TastingIndex}
	switch {
	case next.Time != "":
		date, ok := idx.DateOf(next.Time)
		if !ok {
			return prev, selectionErr(w, "selectedTime", fmt.Sprintf("%q is not an available slot", next.Time))
		}
		out.Time = next.Time
		out.Date = date
	case next.Date != "":
		date, accepted := idx.SelectDate(prev.Date, next.Date)
		if !accepted {
			return prev, nil
		}
		out.Date = date
	}

	var err error
	if out.FoodPairings, err = resolveFoodPairings(w, tasting, next.FoodPairings); err != nil {
		return prev, err
	}
	if out.Tours, err = resolveTours(w, tasting, next.Tours); err != nil {
		return prev, err
	}
	if out.OtherFeatures, err = resolveOtherFeatures(w, tasting, next.OtherFeatures); err != nil {
		return prev, err
	}
	return out, nil
}

func resolveFoodPairings(w models.Winery, t models.TastingInfo, chosen []models.ChosenOption) ([]models.ChosenOption, error) {
	var out []models.ChosenOption
	seen := make(map[string]bool)
	for _, c := range chosen {
		key := normalizeName(c.Name)
		if seen[key] {
			continue
		}
		found := false
		for _, opt := range t.FoodPairingOptions {
			if normalizeName(opt.Name) == key || (opt.ID != "" && opt.ID == c.Name) {
				out = append(out, models.ChosenOption{Name: opt.Name, Price: opt.Price})
				found = true
				break
			}
		}
		if !found {
			return nil, selectionErr(w, "foodPairings", fmt.Sprintf("unknown food pairing %q", c.Name))
		}
		seen[key] = true
	}
	return out, nil
}

func resolveTours(w models.Winery, t models.TastingInfo, chosen []models.ChosenOption) ([]models.ChosenOption, error) {
	var out []models.ChosenOption
	seen := make(map[string]bool)
	for _, c := range chosen {
		key := normalizeName(c.Name)
		if seen[key] {
			continue
		}
		found := false
		for _, opt := range t.Tours.Options {
			if normalizeName(opt.Description) == key || (opt.ID != "" && opt.ID == c.Name) {
				out = append(out, models.ChosenOption{Name: opt.Description, Price: opt.Cost})
				found = true
				break
			}
		}
		// Tastings with a single flat tour price have no options to match against.
		if !found && t.Tours.Available && len(t.Tours.Options) == 0 {
			out = append(out, models.ChosenOption{Name: c.Name, Price: t.Tours.TourPrice})
			found = true
		}
		if !found {
			return nil, selectionErr(w, "tours", fmt.Sprintf("unknown tour %q", c.Name))
		}
		seen[key] = true
	}
	return out, nil
}

func resolveOtherFeatures(w models.Winery, t models.TastingInfo, chosen []models.ChosenOption) ([]models.ChosenOption, error) {
	var out []models.ChosenOption
	seen := make(map[string]bool)
	for _, c := range chosen {
		key := normalizeName(c.Name)
		if seen[key] {
			continue
		}
		found := false
		for _, opt := range t.OtherFeatures {
			if normalizeName(opt.Description) == key || (opt.ID != "" && opt.ID == c.Name) {
				out = append(out, models.ChosenOption{Name: opt.Description, Price: opt.Cost})
				found = true
				break
			}
		}
		if !found {
			return nil, selectionErr(w, "otherFeature", fmt.Sprintf("unknown feature %q", c.Name))
		}
		seen[key] = true
	}
	return out, nil
}

func normalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Finalize re-resolves every entry for checkout and requires a selected time on each.
// It fails on the first invalid entry so nothing is persisted or charged.
func Finalize(it models.Itinerary) (models.Itinerary, error) {
	if len(it.Entries) == 0 {
		return it, &SelectionError{Field: "itinerary", Reason: "no wineries selected"}
	}
	out := models.Itinerary{Entries: make([]models.ItineraryEntry, 0, len(it.Entries))}
	for _, e := range it.Entries {
		if e.Selection.Time == "" {
			return it, selectionErr(e.Winery, "selectedTime", "a time must be selected")
		}
		tasting, ok := e.Winery.Tasting(e.Selection.TastingIndex)
		if !ok {
			return it, selectionErr(e.Winery, "selectedTastingIndex", fmt.Sprintf("no tasting at index %d", e.Selection.TastingIndex))
		}
		sel, err := ResolveSelection(e.Winery, GroupByDate(tasting.Slots()), models.BookingSelection{}, e.Selection)
		if err != nil {
			return it, err
		}
		out.Entries = append(out.Entries, models.ItineraryEntry{Winery: e.Winery, Selection: sel})
	}
	return out, nil
}
