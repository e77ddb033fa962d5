// Package bulkops holds the merchant-selection state feeding bulk bill
// downloads: a full merchant list scoped by city, narrowed by free-text
// search, with an ordered set of selected user ids.
package bulkops

import (
	"sort"
	"strconv"
	"strings"

	"brokerage-dashboard-service/internal/brokerage"
)

// AllCities is the synthetic city filter entry matching every merchant.
const AllCities = "All"

// Workspace is owned by exactly one dashboard session; nothing else mutates
// it. The selected set is always a subset of the loaded merchant list.
type Workspace struct {
	Merchants []brokerage.Merchant `json:"merchants"`
	City      string               `json:"city"`
	Search    string               `json:"search"`
	Selected  []int64              `json:"selected"`
}

func NewWorkspace(merchants []brokerage.Merchant) *Workspace {
	return &Workspace{
		Merchants: merchants,
		City:      AllCities,
		Selected:  []int64{},
	}
}

// Cities returns the distinct cities observed in the merchant list, sorted,
// with AllCities prepended.
func (w *Workspace) Cities() []string {
	seen := make(map[string]bool, len(w.Merchants))
	cities := make([]string, 0, len(w.Merchants))
	for _, merchant := range w.Merchants {
		if merchant.City == "" || seen[merchant.City] {
			continue
		}
		seen[merchant.City] = true
		cities = append(cities, merchant.City)
	}
	sort.Strings(cities)
	return append([]string{AllCities}, cities...)
}

// FilteredMerchants applies the city scope and then the search term:
// case-insensitive substring match against firm name or stringified user id.
// Recomputed on every call; an empty term is a no-op filter.
func (w *Workspace) FilteredMerchants() []brokerage.Merchant {
	term := strings.ToLower(strings.TrimSpace(w.Search))

	out := make([]brokerage.Merchant, 0, len(w.Merchants))
	for _, merchant := range w.Merchants {
		if w.City != AllCities && merchant.City != w.City {
			continue
		}
		if term != "" {
			firm := strings.ToLower(merchant.FirmName)
			id := strconv.FormatInt(merchant.UserID, 10)
			if !strings.Contains(firm, term) && !strings.Contains(id, term) {
				continue
			}
		}
		out = append(out, merchant)
	}
	return out
}

// SetCity switches the city scope and unconditionally clears both the
// selection and the search term: selections never silently persist across an
// incompatible scope.
func (w *Workspace) SetCity(city string) {
	w.City = city
	w.Search = ""
	w.Selected = []int64{}
}

func (w *Workspace) SetSearch(term string) {
	w.Search = term
}

// Select adds a user id to the selection. Ids not present in the loaded
// merchant list are ignored, as are duplicates.
func (w *Workspace) Select(userID int64) {
	if !w.knownMerchant(userID) || w.isSelected(userID) {
		return
	}
	w.Selected = append(w.Selected, userID)
}

func (w *Workspace) Deselect(userID int64) {
	out := w.Selected[:0]
	for _, id := range w.Selected {
		if id != userID {
			out = append(out, id)
		}
	}
	w.Selected = out
}

// ToggleSelectAll operates on the currently filtered view only: if every
// filtered merchant is already selected the selection empties, otherwise it
// becomes exactly the filtered id set.
func (w *Workspace) ToggleSelectAll() {
	filtered := w.FilteredMerchants()
	if len(filtered) > 0 && len(w.Selected) == len(filtered) {
		w.Selected = []int64{}
		return
	}
	selected := make([]int64, 0, len(filtered))
	for _, merchant := range filtered {
		selected = append(selected, merchant.UserID)
	}
	w.Selected = selected
}

// SelectedIDs returns a copy of the ordered selection.
func (w *Workspace) SelectedIDs() []int64 {
	out := make([]int64, len(w.Selected))
	copy(out, w.Selected)
	return out
}

func (w *Workspace) knownMerchant(userID int64) bool {
	for _, merchant := range w.Merchants {
		if merchant.UserID == userID {
			return true
		}
	}
	return false
}

func (w *Workspace) isSelected(userID int64) bool {
	for _, id := range w.Selected {
		if id == userID {
			return true
		}
	}
	return false
}
