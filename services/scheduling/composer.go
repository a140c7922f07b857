package scheduling

import "slotify/models"

// ComposeSegments lays the requested services out back to back from a
// single start time: each segment begins where the previous one ended.
func ComposeSegments(services []models.ServiceSpec, start int) []models.Segment {
	segments := make([]models.Segment, 0, len(services))
	cursor := start
	for _, svc := range services {
		segments = append(segments, models.Segment{
			ServiceID: svc.ServiceID,
			Start:     cursor,
			End:       cursor + svc.Duration,
		})
		cursor += svc.Duration
	}
	return segments
}

// validateSegments runs the conflict detector over every segment of a
// composed chain with the same forceOverride semantics as a single
// booking. The first failing segment aborts the whole composition; no
// partial chain is ever accepted.
func validateSegments(hours []models.Interval, appts []models.Appointment, date, today string, segments []models.Segment, forceOverride bool) error {
	for _, seg := range segments {
		window := models.Interval{Start: seg.Start, End: seg.End}
		if err := CheckWindow(hours, appts, date, today, window, forceOverride); err != nil {
			return err
		}
	}
	return nil
}
