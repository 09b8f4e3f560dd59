package fleet

// validateSelection rejects an empty device selection before any network
// activity.
func validateSelection(addresses []string) error {
	if len(addresses) == 0 {
		return ErrNoDevices
	}
	return nil
}

// validateMetadata checks the caller-supplied asset metadata. All failures
// here are request-level: nothing has been dispatched yet, so rejecting is
// total, never partial.
func validateMetadata(meta AssetMetadata) error {
	if meta.Name == "" || meta.StartDate == "" || meta.EndDate == "" {
		return ErrMissingMetadata
	}
	if meta.Duration < 0 {
		return ErrInvalidDuration
	}
	if meta.File != nil && meta.URL != "" {
		return ErrConflictingSources
	}
	return nil
}
