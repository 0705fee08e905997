package domain

// Positional merge helpers. Both directions overlay local data on top of the
// remote record: non-empty local fields win, remote-only fields are always
// taken from the restaurant service.

func pick(local, remote string) string {
	if local != "" {
		return local
	}
	return remote
}

func pickLocation(local, remote Location) Location {
	if !local.IsZero() {
		return local
	}
	return remote
}

// MergeCourseInfo builds the entry for a freshly submitted course stop.
// The restaurant id always comes from the remote record.
func MergeCourseInfo(remote RestaurantDetail, info CourseInfo) EnrichedEntry {
	return EnrichedEntry{
		PersonalMapEntry: PersonalMapEntry{
			RestaurantId:   remote.Identifier(),
			RestaurantName: pick(info.RestaurantName, remote.RestaurantName),
			Address:        pick(info.Address, remote.Address),
			Location:       pickLocation(info.Location, remote.Location),
			ImgUrl:         info.ImgUrl,
			Description:    info.Description,
		},
		PhoneNumber: remote.PhoneNumber,
		OpeningDays: remote.OpeningDays,
		Version:     remote.Version,
	}
}

// MergeStored overlays a stored entry on the live remote record, so a stale
// remote description never clobbers the user's annotation.
func MergeStored(remote RestaurantDetail, stored PersonalMapEntry) EnrichedEntry {
	merged := stored
	merged.RestaurantId = pick(stored.RestaurantId, remote.Identifier())
	merged.RestaurantName = pick(stored.RestaurantName, remote.RestaurantName)
	merged.Address = pick(stored.Address, remote.Address)
	merged.Location = pickLocation(stored.Location, remote.Location)
	return EnrichedEntry{
		PersonalMapEntry: merged,
		PhoneNumber:      remote.PhoneNumber,
		OpeningDays:      remote.OpeningDays,
		Version:          remote.Version,
	}
}
