package service

import "github.com/Dan9191/finance-insights/internal/models"

// Authorize checks every required domain against the caller's permission map.
// A domain absent from perms is denied, the same as an explicit false.
// Missing domains are returned in the order they were required.
func Authorize(required []models.Domain, perms map[string]bool) (bool, []models.Domain) {
	var missing []models.Domain
	for _, d := range required {
		granted, present := perms[string(d)]
		if !present || !granted {
			missing = append(missing, d)
		}
	}
	return len(missing) == 0, missing
}
